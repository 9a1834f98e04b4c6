package scenario

import (
	"fmt"
	"math/rand"

	"LedgerDrill/internal/model"
	"LedgerDrill/internal/money"

	"github.com/shopspring/decimal"
)

const (
	ParamFace       = "face"
	ParamStatedRate = "stated_rate"
	ParamMarketRate = "market_rate"
	ParamIssuePrice = "issue_price"

	accountPremium      = "Premium on Bonds Payable"
	accountBondsPayable = "Bonds Payable"

	bondFace = 100000
)

// BondPremium asks for the issuance of a bond above face and its first semiannual
// interest payment. face: 100000; stated: 8, 10 or 12%; market: stated-2;
// issue price: 102k~107k whole dollars.
type BondPremium struct{}

func (BondPremium) Kind() model.ScenarioKind { return model.KindBondPremium }
func (BondPremium) Title() string            { return "Bonds (Premium)" }

func (BondPremium) Generate(rng *rand.Rand) model.Parameters {
	stated := between(rng, 4, 6) * 2
	issuePrice := between(rng, 102000, 107000)
	return BondPremiumParams(bondFace, stated, stated-2, issuePrice)
}

// BondPremiumParams builds a parameter set; rates are annual, in percent.
func BondPremiumParams(face, statedPct, marketPct, issuePrice int64) model.Parameters {
	return model.Parameters{
		Kind: model.KindBondPremium,
		Values: map[string]decimal.Decimal{
			ParamFace:       money.Int(face),
			ParamStatedRate: money.Int(statedPct),
			ParamMarketRate: money.Int(marketPct),
			ParamIssuePrice: money.Int(issuePrice),
		},
	}
}

func (BondPremium) Layout() []model.EntryLayout {
	return []model.EntryLayout{
		{Key: "issuance", Title: "Issue the bonds", Accounts: []string{AccountCash, accountPremium, accountBondsPayable}},
		{Key: "interest", Title: "First semiannual interest payment", Accounts: []string{accountInterestExpense, accountPremium, AccountCash}},
	}
}

type bondAmounts struct {
	premium      decimal.Decimal
	cashPaid     decimal.Decimal
	expense      decimal.Decimal
	amortization decimal.Decimal
}

var two = decimal.NewFromInt(2)

func bondSchedule(p model.Parameters) bondAmounts {
	face := p.Get(ParamFace)
	issue := p.Get(ParamIssuePrice)
	cash := money.Round2(face.Mul(money.Percent(p.Get(ParamStatedRate))).Div(two))
	expense := money.Round2(issue.Mul(money.Percent(p.Get(ParamMarketRate))).Div(two))
	return bondAmounts{
		premium:      issue.Sub(face),
		cashPaid:     cash,
		expense:      expense,
		amortization: money.Round2(cash.Sub(expense)),
	}
}

func (b BondPremium) AnswerKey(p model.Parameters) model.AnswerKey {
	s := bondSchedule(p)
	return buildKey(b.Layout(), map[string]map[string]map[model.Side]decimal.Decimal{
		"issuance": {
			AccountCash:         dr(p.Get(ParamIssuePrice)),
			accountPremium:      cr(s.premium),
			accountBondsPayable: cr(p.Get(ParamFace)),
		},
		"interest": {
			accountInterestExpense: dr(s.expense),
			accountPremium:         dr(s.amortization),
			AccountCash:            cr(s.cashPaid),
		},
	})
}

func (BondPremium) Prompt(p model.Parameters) string {
	return fmt.Sprintf("Issue a %s, %s%% bond for %s cash. The market rate is %s%%. The bond pays interest semiannually.",
		money.FormatWhole(p.Get(ParamFace)), p.Get(ParamStatedRate).String(),
		money.FormatWhole(p.Get(ParamIssuePrice)), p.Get(ParamMarketRate).String())
}

func (BondPremium) Solution(p model.Parameters) []string {
	s := bondSchedule(p)
	half := func(name string) string { return p.Get(name).Div(two).String() + "%" }
	return []string{
		fmt.Sprintf("Premium = %s - %s = %s",
			money.FormatWhole(p.Get(ParamIssuePrice)), money.FormatWhole(p.Get(ParamFace)), money.FormatWhole(s.premium)),
		fmt.Sprintf("Cash paid = face x stated/2 = %s x %s = %s",
			money.FormatWhole(p.Get(ParamFace)), half(ParamStatedRate), money.Format(s.cashPaid)),
		fmt.Sprintf("Interest expense = carrying value x market/2 = %s x %s = %s",
			money.FormatWhole(p.Get(ParamIssuePrice)), half(ParamMarketRate), money.Format(s.expense)),
		fmt.Sprintf("Premium amortization = %s - %s = %s",
			money.Format(s.cashPaid), money.Format(s.expense), money.Format(s.amortization)),
	}
}
