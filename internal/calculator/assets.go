package calculator

import (
	"math"

	"github.com/go-playground/validator/v10"
)

// DepreciationInput compares straight-line with double-declining balance.
type DepreciationInput struct {
	Cost    float64 `json:"cost" validate:"gte=10000,lte=500000"`
	Salvage float64 `json:"salvage" validate:"gte=0"`
	Life    float64 `json:"life" validate:"gte=3,lte=20"`
}

type DepreciationResult struct {
	DepreciableCost float64
	StraightLine    float64
	DDBRate         float64
	DDBYear1        float64
	DDBYear2        float64
}

// Depreciation: (cost - salvage) / life; DDB rate is 2/life applied to book value.
func Depreciation(in DepreciationInput) DepreciationResult {
	depreciable := math.Max(0, in.Cost-in.Salvage)
	rate := 2 * div(1, in.Life)
	y1 := in.Cost * rate
	return DepreciationResult{
		DepreciableCost: depreciable,
		StraightLine:    div(depreciable, in.Life),
		DDBRate:         rate,
		DDBYear1:        y1,
		DDBYear2:        (in.Cost - y1) * rate,
	}
}

// UnitsOfActivityInput spreads depreciable cost over estimated production.
type UnitsOfActivityInput struct {
	Cost          float64 `json:"cost" validate:"gte=10000,lte=200000"`
	Salvage       float64 `json:"salvage" validate:"gte=0"`
	TotalUnits    float64 `json:"total_units" validate:"gte=10000,lte=500000"`
	UnitsThisYear float64 `json:"units_this_year" validate:"gte=0"`
}

type UnitsOfActivityResult struct {
	DepreciableCost float64
	RatePerUnit     float64
	Expense         float64
}

func UnitsOfActivity(in UnitsOfActivityInput) UnitsOfActivityResult {
	depreciable := in.Cost - in.Salvage
	rate := div(depreciable, in.TotalUnits)
	return UnitsOfActivityResult{
		DepreciableCost: depreciable,
		RatePerUnit:     rate,
		Expense:         rate * in.UnitsThisYear,
	}
}

// AssetSaleInput disposes of equipment for cash.
type AssetSaleInput struct {
	Cost      float64 `json:"cost" validate:"gte=10000,lte=100000"`
	AccumDep  float64 `json:"accum_dep" validate:"gte=0,ltefield=Cost"`
	SalePrice float64 `json:"sale_price" validate:"gte=0,lte=100000"`
}

type AssetSaleResult struct {
	BookValue float64
	// GainLoss is positive for a gain and negative for a loss.
	GainLoss float64
	Journal  Journal
}

func AssetSale(in AssetSaleInput) AssetSaleResult {
	bv := in.Cost - in.AccumDep
	gl := in.SalePrice - bv
	lines := []JournalLine{
		{Account: "Cash", Debit: in.SalePrice},
		{Account: "Accumulated Depreciation", Debit: in.AccumDep},
	}
	if gl < 0 {
		lines = append(lines, JournalLine{Account: "Loss on Sale", Debit: -gl})
	}
	lines = append(lines, JournalLine{Account: "Equipment", Credit: in.Cost})
	if gl > 0 {
		lines = append(lines, JournalLine{Account: "Gain on Sale", Credit: gl})
	}
	return AssetSaleResult{
		BookValue: bv,
		GainLoss:  gl,
		Journal:   Journal{Title: "Sale of equipment", Lines: lines},
	}
}

func depreciationBounds(sl validator.StructLevel) {
	in := sl.Current().Interface().(DepreciationInput)
	if in.Salvage > in.Cost*0.5 {
		sl.ReportError(in.Salvage, "salvage", "Salvage", "max_half_cost", "")
	}
}

func unitsBounds(sl validator.StructLevel) {
	in := sl.Current().Interface().(UnitsOfActivityInput)
	if in.Salvage > in.Cost*0.5 {
		sl.ReportError(in.Salvage, "salvage", "Salvage", "max_half_cost", "")
	}
	if in.UnitsThisYear > in.TotalUnits*0.5 {
		sl.ReportError(in.UnitsThisYear, "units_this_year", "UnitsThisYear", "max_half_total_units", "")
	}
}

func init() {
	validate.RegisterStructValidation(depreciationBounds, DepreciationInput{})
	validate.RegisterStructValidation(unitsBounds, UnitsOfActivityInput{})

	register("depreciation", "Depreciation Method Visualizer",
		DepreciationInput{Cost: 100000, Salvage: 10000, Life: 5},
		func(in DepreciationInput) Result {
			r := Depreciation(in)
			return Result{Figures: []Figure{
				{Label: "Straight-line / year", Value: r.StraightLine, Unit: Currency},
				{Label: "DDB rate", Value: r.DDBRate * 100, Unit: Percent},
				{Label: "Double-declining (year 1)", Value: r.DDBYear1, Unit: Currency},
				{Label: "Double-declining (year 2)", Value: r.DDBYear2, Unit: Currency},
			}}
		})

	register("units_of_activity", "Units-of-Activity Depreciation",
		UnitsOfActivityInput{Cost: 80000, Salvage: 5000, TotalUnits: 100000, UnitsThisYear: 16000},
		func(in UnitsOfActivityInput) Result {
			r := UnitsOfActivity(in)
			return Result{Figures: []Figure{
				{Label: "Depreciable cost", Value: r.DepreciableCost, Unit: Currency},
				{Label: "Rate per unit", Value: r.RatePerUnit, Unit: Currency},
				{Label: "Depreciation expense", Value: r.Expense, Unit: Currency},
			}}
		})

	register("asset_sale", "Asset Sale (Gain/Loss)",
		AssetSaleInput{Cost: 50000, AccumDep: 30000, SalePrice: 25000},
		func(in AssetSaleInput) Result {
			r := AssetSale(in)
			outcome := Figure{Label: "Gain on sale", Value: r.GainLoss, Unit: Currency}
			if r.GainLoss < 0 {
				outcome = Figure{Label: "Loss on sale", Value: -r.GainLoss, Unit: Currency}
			}
			return Result{
				Figures: []Figure{
					{Label: "Book value", Value: r.BookValue, Unit: Currency},
					outcome,
				},
				Journals: []Journal{r.Journal},
			}
		})
}
