package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScenarioKind selects one of the practice problem families.
type ScenarioKind string

const (
	KindDepreciation ScenarioKind = "depreciation"
	KindAssetSale    ScenarioKind = "asset_sale"
	KindNotePayable  ScenarioKind = "note_payable"
	KindPayroll      ScenarioKind = "payroll"
	KindBondPremium  ScenarioKind = "bond_premium"
)

// AllKinds lists the scenario kinds in presentation order.
var AllKinds = []ScenarioKind{
	KindDepreciation,
	KindAssetSale,
	KindNotePayable,
	KindPayroll,
	KindBondPremium,
}

// Parameters holds the randomized inputs of one problem instance.
type Parameters struct {
	Kind   ScenarioKind
	Values map[string]decimal.Decimal
}

// Get returns the named value, or zero if it is absent.
func (p Parameters) Get(name string) decimal.Decimal {
	if v, ok := p.Values[name]; ok {
		return v
	}
	return decimal.Zero
}

// Clone returns a deep copy so callers cannot mutate a live problem.
func (p Parameters) Clone() Parameters {
	values := make(map[string]decimal.Decimal, len(p.Values))
	for k, v := range p.Values {
		values[k] = v
	}
	return Parameters{Kind: p.Kind, Values: values}
}

// Problem is a generated problem together with its answer key.
type Problem struct {
	ID        string
	Kind      ScenarioKind
	Title     string
	Params    Parameters
	Key       AnswerKey
	CreatedAt time.Time
}
