package calculator

// LiquidityInput feeds the short-term solvency ratios.
type LiquidityInput struct {
	CurrentAssets      float64 `json:"current_assets" validate:"gte=10000,lte=100000"`
	QuickAssets        float64 `json:"quick_assets" validate:"gte=5000,ltefield=CurrentAssets"`
	CurrentLiabilities float64 `json:"current_liabilities" validate:"gte=10000,lte=100000"`
}

type LiquidityResult struct {
	WorkingCapital float64
	CurrentRatio   float64
	QuickRatio     float64
	CurrentBand    Band
	QuickBand      Band
}

func Liquidity(in LiquidityInput) LiquidityResult {
	current := div(in.CurrentAssets, in.CurrentLiabilities)
	quick := div(in.QuickAssets, in.CurrentLiabilities)
	return LiquidityResult{
		WorkingCapital: in.CurrentAssets - in.CurrentLiabilities,
		CurrentRatio:   current,
		QuickRatio:     quick,
		CurrentBand:    bandAtLeast(current, 2, 1),
		QuickBand:      bandAtLeast(quick, 1, 0.5),
	}
}

// SolvencyInput feeds the long-term solvency ratios.
type SolvencyInput struct {
	TotalLiabilities float64 `json:"total_liabilities" validate:"gte=50000,lte=500000"`
	TotalEquity      float64 `json:"total_equity" validate:"gte=50000,lte=500000"`
	EBIT             float64 `json:"ebit" validate:"gte=10000,lte=100000"`
	InterestExpense  float64 `json:"interest_expense" validate:"gte=5000,ltefield=EBIT"`
}

type SolvencyResult struct {
	DebtToEquity        float64
	TimesInterestEarned float64
	DebtToEquityBand    Band
	TimesInterestBand   Band
}

func Solvency(in SolvencyInput) SolvencyResult {
	de := div(in.TotalLiabilities, in.TotalEquity)
	tie := div(in.EBIT, in.InterestExpense)
	r := SolvencyResult{
		DebtToEquity:        de,
		TimesInterestEarned: tie,
		DebtToEquityBand:    BandGood,
		TimesInterestBand:   BandGood,
	}
	if de > 1.5 {
		r.DebtToEquityBand = BandPoor
	}
	if tie < 3 {
		r.TimesInterestBand = BandPoor
	}
	return r
}

// ROAInput decomposes return on assets into margin and turnover.
type ROAInput struct {
	ProfitMargin  float64 `json:"profit_margin" validate:"gte=1,lte=30"`
	AssetTurnover float64 `json:"asset_turnover" validate:"gte=0.1,lte=5"`
}

// ROA returns profit margin (percent) x asset turnover, as a fraction.
func ROA(in ROAInput) float64 {
	return in.ProfitMargin * in.AssetTurnover / 100
}

func bandAtLeast(v, good, caution float64) Band {
	switch {
	case v >= good:
		return BandGood
	case v >= caution:
		return BandCaution
	default:
		return BandPoor
	}
}

func init() {
	register("liquidity", "Liquidity Ratios",
		LiquidityInput{CurrentAssets: 50000, QuickAssets: 30000, CurrentLiabilities: 25000},
		func(in LiquidityInput) Result {
			r := Liquidity(in)
			wc := BandGood
			if r.WorkingCapital < 0 {
				wc = BandPoor
			}
			return Result{Figures: []Figure{
				{Label: "Working capital", Value: r.WorkingCapital, Unit: Currency, Band: wc},
				{Label: "Current ratio", Value: r.CurrentRatio, Unit: Ratio, Band: r.CurrentBand},
				{Label: "Quick ratio", Value: r.QuickRatio, Unit: Ratio, Band: r.QuickBand},
			}}
		})

	register("solvency", "Solvency Ratios",
		SolvencyInput{TotalLiabilities: 150000, TotalEquity: 100000, EBIT: 40000, InterestExpense: 10000},
		func(in SolvencyInput) Result {
			r := Solvency(in)
			return Result{Figures: []Figure{
				{Label: "Debt-to-equity", Value: r.DebtToEquity, Unit: Ratio, Band: r.DebtToEquityBand},
				{Label: "Times interest earned", Value: r.TimesInterestEarned, Unit: Ratio, Band: r.TimesInterestBand},
			}}
		})

	register("roa", "Return on Assets (ROA)",
		ROAInput{ProfitMargin: 10, AssetTurnover: 1.5},
		func(in ROAInput) Result {
			return Result{Figures: []Figure{
				{Label: "Profit margin", Value: in.ProfitMargin, Unit: Percent},
				{Label: "Asset turnover", Value: in.AssetTurnover, Unit: Ratio},
				{Label: "Return on assets", Value: ROA(in) * 100, Unit: Percent},
			}}
		})
}
