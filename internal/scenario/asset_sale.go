package scenario

import (
	"fmt"
	"math/rand"

	"LedgerDrill/internal/model"
	"LedgerDrill/internal/money"

	"github.com/shopspring/decimal"
)

const (
	ParamAccumDep  = "accum_dep"
	ParamSalePrice = "sale_price"

	AccountCash      = "Cash"
	AccountLoss      = "Loss on Sale"
	AccountEquipment = "Equipment"
	AccountGain      = "Gain on Sale"
)

// AssetSale asks for the disposal entry of equipment sold for cash.
// cost: 50k~100k in 1k steps; accumulated depreciation: 20%~80% of cost;
// sale price: 60%~140% of book value and never equal to it, so exactly one
// of gain or loss is populated.
type AssetSale struct{}

func (AssetSale) Kind() model.ScenarioKind { return model.KindAssetSale }
func (AssetSale) Title() string            { return "Asset Sale" }

func (AssetSale) Generate(rng *rand.Rand) model.Parameters {
	cost := between(rng, 50, 100) * 1000
	accumDep := between(rng, cost*20/100, cost*80/100)
	bookValue := cost - accumDep

	lo := ceilDiv(bookValue*60, 100)
	hi := floorDiv(bookValue*140, 100)
	salePrice := between(rng, lo, hi)
	for salePrice == bookValue {
		salePrice = between(rng, lo, hi)
	}
	return AssetSaleParams(cost, accumDep, salePrice)
}

// AssetSaleParams builds a parameter set from explicit values.
func AssetSaleParams(cost, accumDep, salePrice int64) model.Parameters {
	return model.Parameters{
		Kind: model.KindAssetSale,
		Values: map[string]decimal.Decimal{
			ParamCost:      money.Int(cost),
			ParamAccumDep:  money.Int(accumDep),
			ParamSalePrice: money.Int(salePrice),
		},
	}
}

func (AssetSale) Layout() []model.EntryLayout {
	return []model.EntryLayout{
		{Key: "sale", Title: "Sale of equipment", Accounts: []string{
			AccountCash, accountAccumDep, AccountLoss, AccountEquipment, AccountGain,
		}},
	}
}

// BookValue is cost less accumulated depreciation.
func BookValue(p model.Parameters) decimal.Decimal {
	return p.Get(ParamCost).Sub(p.Get(ParamAccumDep))
}

// gainLoss is positive for a gain, negative for a loss.
func gainLoss(p model.Parameters) decimal.Decimal {
	return money.Round2(p.Get(ParamSalePrice).Sub(BookValue(p)))
}

func (a AssetSale) AnswerKey(p model.Parameters) model.AnswerKey {
	lines := map[string]map[model.Side]decimal.Decimal{
		AccountCash:      dr(p.Get(ParamSalePrice)),
		accountAccumDep:  dr(p.Get(ParamAccumDep)),
		AccountEquipment: cr(p.Get(ParamCost)),
	}
	gl := gainLoss(p)
	switch {
	case gl.IsPositive():
		lines[AccountGain] = cr(gl)
	case gl.IsNegative():
		lines[AccountLoss] = dr(gl.Abs())
	}
	return buildKey(a.Layout(), map[string]map[string]map[model.Side]decimal.Decimal{"sale": lines})
}

func (AssetSale) Prompt(p model.Parameters) string {
	return fmt.Sprintf("An asset with an original cost of %s and accumulated depreciation of %s is sold for %s cash. Record the sale.",
		money.FormatWhole(p.Get(ParamCost)), money.FormatWhole(p.Get(ParamAccumDep)), money.FormatWhole(p.Get(ParamSalePrice)))
}

func (AssetSale) Solution(p model.Parameters) []string {
	bv := BookValue(p)
	gl := gainLoss(p)
	outcome := "Gain"
	if gl.IsNegative() {
		outcome = "Loss"
	}
	return []string{
		fmt.Sprintf("Book value = %s - %s = %s",
			money.FormatWhole(p.Get(ParamCost)), money.FormatWhole(p.Get(ParamAccumDep)), money.FormatWhole(bv)),
		fmt.Sprintf("%s = %s - %s = %s",
			outcome, money.FormatWhole(p.Get(ParamSalePrice)), money.FormatWhole(bv), money.Format(gl.Abs())),
		"Remove the asset at cost and its accumulated depreciation; the difference to cash is the " + outcome + " on Sale. The other line stays blank.",
	}
}
