package scenario

import (
	"fmt"
	"math/rand"

	"LedgerDrill/internal/model"
	"LedgerDrill/internal/money"

	"github.com/shopspring/decimal"
)

const (
	ParamCost    = "cost"
	ParamSalvage = "salvage"
	ParamLife    = "life"

	accountDepExpense = "Depreciation Expense"
	accountAccumDep   = "Accumulated Depreciation"
)

// Depreciation asks for one year of straight-line depreciation.
// cost: 30k~100k in 1k steps; salvage: 5%~15% of cost in $100 steps; life: 3~5 years.
type Depreciation struct{}

func (Depreciation) Kind() model.ScenarioKind { return model.KindDepreciation }
func (Depreciation) Title() string            { return "Depreciation" }

func (Depreciation) Generate(rng *rand.Rand) model.Parameters {
	cost := between(rng, 30, 100) * 1000
	// salvage in hundreds, within [5%, 15%] of cost
	lo := ceilDiv(cost*5, 100*100)
	hi := floorDiv(cost*15, 100*100)
	salvage := between(rng, lo, hi) * 100
	life := between(rng, 3, 5)

	return DepreciationParams(cost, salvage, life)
}

// DepreciationParams builds a parameter set from explicit values.
func DepreciationParams(cost, salvage, life int64) model.Parameters {
	return model.Parameters{
		Kind: model.KindDepreciation,
		Values: map[string]decimal.Decimal{
			ParamCost:    money.Int(cost),
			ParamSalvage: money.Int(salvage),
			ParamLife:    money.Int(life),
		},
	}
}

func (Depreciation) Layout() []model.EntryLayout {
	return []model.EntryLayout{
		{Key: "adjusting", Title: "Straight-line depreciation (one year)", Accounts: []string{accountDepExpense, accountAccumDep}},
	}
}

func straightLine(p model.Parameters) decimal.Decimal {
	life := p.Get(ParamLife)
	if life.IsZero() {
		return decimal.Zero
	}
	return money.Round2(p.Get(ParamCost).Sub(p.Get(ParamSalvage)).Div(life))
}

func (d Depreciation) AnswerKey(p model.Parameters) model.AnswerKey {
	sl := straightLine(p)
	return buildKey(d.Layout(), map[string]map[string]map[model.Side]decimal.Decimal{
		"adjusting": {
			accountDepExpense: dr(sl),
			accountAccumDep:   cr(sl),
		},
	})
}

func (Depreciation) Prompt(p model.Parameters) string {
	return fmt.Sprintf("An asset is purchased for %s. It has a %s salvage value and a %s-year useful life. Record one year of straight-line depreciation.",
		money.FormatWhole(p.Get(ParamCost)), money.FormatWhole(p.Get(ParamSalvage)), p.Get(ParamLife).String())
}

func (Depreciation) Solution(p model.Parameters) []string {
	return []string{
		fmt.Sprintf("(%s - %s) / %s years = %s",
			money.FormatWhole(p.Get(ParamCost)), money.FormatWhole(p.Get(ParamSalvage)),
			p.Get(ParamLife).String(), money.Format(straightLine(p))),
		"Debit Depreciation Expense and credit Accumulated Depreciation (a contra-asset) for that amount.",
	}
}
