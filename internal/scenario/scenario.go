// Package scenario generates randomized journal-entry problems and derives their answer keys.
package scenario

import (
	"errors"
	"fmt"
	"math/rand"

	"LedgerDrill/internal/model"

	"github.com/shopspring/decimal"
)

// ErrUnknownKind is returned for a scenario kind with no registered generator.
var ErrUnknownKind = errors.New("unknown scenario kind")

// Scenario is one problem family: how to draw parameters, which accounts are asked for,
// and how the correct amounts follow from the parameters.
type Scenario interface {
	Kind() model.ScenarioKind
	Title() string
	// Generate draws a valid parameter set. All range constraints hold by construction.
	Generate(rng *rand.Rand) model.Parameters
	// AnswerKey is a pure function of the parameters.
	AnswerKey(p model.Parameters) model.AnswerKey
	Layout() []model.EntryLayout
	// Prompt states the problem in words.
	Prompt(p model.Parameters) string
	// Solution lists the worked calculation steps.
	Solution(p model.Parameters) []string
}

var registry = map[model.ScenarioKind]Scenario{
	model.KindDepreciation: Depreciation{},
	model.KindAssetSale:    AssetSale{},
	model.KindNotePayable:  NotePayable{},
	model.KindPayroll:      Payroll{},
	model.KindBondPremium:  BondPremium{},
}

// Lookup returns the scenario for a kind.
func Lookup(kind model.ScenarioKind) (Scenario, error) {
	s, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return s, nil
}

// All returns every scenario in presentation order.
func All() []Scenario {
	out := make([]Scenario, 0, len(model.AllKinds))
	for _, k := range model.AllKinds {
		out = append(out, registry[k])
	}
	return out
}

// ParseKind accepts a kind name or a short alias such as "bond" or "note".
func ParseKind(s string) (model.ScenarioKind, error) {
	switch s {
	case "depreciation", "dep", "1":
		return model.KindDepreciation, nil
	case "asset_sale", "sale", "asset", "2":
		return model.KindAssetSale, nil
	case "note_payable", "note", "3":
		return model.KindNotePayable, nil
	case "payroll", "4":
		return model.KindPayroll, nil
	case "bond_premium", "bond", "bonds", "5":
		return model.KindBondPremium, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// buildKey fills a layout with amounts, marking every cell without an amount not applicable.
// amounts is keyed by entry key, then account, then side.
func buildKey(layout []model.EntryLayout, amounts map[string]map[string]map[model.Side]decimal.Decimal) model.AnswerKey {
	entries := make([]model.JournalEntry, 0, len(layout))
	for _, l := range layout {
		e := model.JournalEntry{Key: l.Key, Title: l.Title}
		for _, account := range l.Accounts {
			line := model.JournalLine{Account: account}
			if sides, ok := amounts[l.Key][account]; ok {
				if d, ok := sides[model.Debit]; ok {
					line.Debit = model.Amount(d)
				}
				if c, ok := sides[model.Credit]; ok {
					line.Credit = model.Amount(c)
				}
			}
			e.Lines = append(e.Lines, line)
		}
		entries = append(entries, e)
	}
	return model.NewAnswerKey(entries)
}

func dr(d decimal.Decimal) map[model.Side]decimal.Decimal {
	return map[model.Side]decimal.Decimal{model.Debit: d}
}

func cr(d decimal.Decimal) map[model.Side]decimal.Decimal {
	return map[model.Side]decimal.Decimal{model.Credit: d}
}
