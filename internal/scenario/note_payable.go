package scenario

import (
	"fmt"
	"math/rand"

	"LedgerDrill/internal/model"
	"LedgerDrill/internal/money"

	"github.com/shopspring/decimal"
)

const (
	ParamPrincipal        = "principal"
	ParamRate             = "rate"
	ParamMonthsAccrued    = "months_accrued"
	ParamMonthsToMaturity = "months_to_maturity"

	accountNotesPayable    = "Notes Payable"
	accountInterestExpense = "Interest Expense"
	accountInterestPayable = "Interest Payable"

	notePayableMonthsAccrued    = 4 // Sept 1 -> Dec 31
	notePayableMonthsToMaturity = 6
)

// NotePayable asks for the issuance, year-end accrual and maturity of an interest-bearing note.
// principal: 50k~150k in 10k steps; rate: 4%~8% whole percent.
type NotePayable struct{}

func (NotePayable) Kind() model.ScenarioKind { return model.KindNotePayable }
func (NotePayable) Title() string            { return "Note Payable" }

func (NotePayable) Generate(rng *rand.Rand) model.Parameters {
	principal := between(rng, 5, 15) * 10000
	rate := between(rng, 4, 8)
	return NotePayableParams(principal, rate)
}

// NotePayableParams builds a parameter set with the fixed 4-month accrual and 6-month term.
func NotePayableParams(principal, ratePercent int64) model.Parameters {
	return model.Parameters{
		Kind: model.KindNotePayable,
		Values: map[string]decimal.Decimal{
			ParamPrincipal:        money.Int(principal),
			ParamRate:             money.Int(ratePercent),
			ParamMonthsAccrued:    money.Int(notePayableMonthsAccrued),
			ParamMonthsToMaturity: money.Int(notePayableMonthsToMaturity),
		},
	}
}

func (NotePayable) Layout() []model.EntryLayout {
	return []model.EntryLayout{
		{Key: "issuance", Title: "Sept. 1: issue the note", Accounts: []string{AccountCash, accountNotesPayable}},
		{Key: "accrual", Title: "Dec. 31: accrue interest", Accounts: []string{accountInterestExpense, accountInterestPayable}},
		{Key: "maturity", Title: "Maturity: pay the note", Accounts: []string{
			accountNotesPayable, accountInterestPayable, accountInterestExpense, AccountCash,
		}},
	}
}

// noteInterest is principal x rate x months/12, rounded to cents.
func noteInterest(p model.Parameters, months decimal.Decimal) decimal.Decimal {
	return money.Round2(p.Get(ParamPrincipal).
		Mul(money.Percent(p.Get(ParamRate))).
		Mul(months).
		Div(decimal.NewFromInt(12)))
}

type noteAmounts struct {
	accrued    decimal.Decimal
	total      decimal.Decimal
	atMaturity decimal.Decimal
	cash       decimal.Decimal
}

func noteSchedule(p model.Parameters) noteAmounts {
	accrued := noteInterest(p, p.Get(ParamMonthsAccrued))
	total := noteInterest(p, p.Get(ParamMonthsToMaturity))
	return noteAmounts{
		accrued:    accrued,
		total:      total,
		atMaturity: money.Round2(total.Sub(accrued)),
		cash:       money.Round2(p.Get(ParamPrincipal).Add(total)),
	}
}

func (n NotePayable) AnswerKey(p model.Parameters) model.AnswerKey {
	principal := p.Get(ParamPrincipal)
	s := noteSchedule(p)
	return buildKey(n.Layout(), map[string]map[string]map[model.Side]decimal.Decimal{
		"issuance": {
			AccountCash:         dr(principal),
			accountNotesPayable: cr(principal),
		},
		"accrual": {
			accountInterestExpense: dr(s.accrued),
			accountInterestPayable: cr(s.accrued),
		},
		"maturity": {
			accountNotesPayable:    dr(principal),
			accountInterestPayable: dr(s.accrued),
			accountInterestExpense: dr(s.atMaturity),
			AccountCash:            cr(s.cash),
		},
	})
}

func (NotePayable) Prompt(p model.Parameters) string {
	return fmt.Sprintf("On Sept. 1, borrow %s cash by signing a %s-month, %s%% note payable. Interest is payable at maturity. Year-end is Dec. 31.",
		money.FormatWhole(p.Get(ParamPrincipal)), p.Get(ParamMonthsToMaturity).String(), p.Get(ParamRate).String())
}

func (NotePayable) Solution(p model.Parameters) []string {
	s := noteSchedule(p)
	principal := money.FormatWhole(p.Get(ParamPrincipal))
	rate := p.Get(ParamRate).String()
	return []string{
		fmt.Sprintf("Accrued interest at Dec. 31 = %s x %s%% x %s/12 = %s",
			principal, rate, p.Get(ParamMonthsAccrued).String(), money.Format(s.accrued)),
		fmt.Sprintf("Total interest = %s x %s%% x %s/12 = %s",
			principal, rate, p.Get(ParamMonthsToMaturity).String(), money.Format(s.total)),
		fmt.Sprintf("Interest expense in the new year = %s - %s = %s",
			money.Format(s.total), money.Format(s.accrued), money.Format(s.atMaturity)),
		fmt.Sprintf("Cash paid at maturity = %s + %s = %s", principal, money.Format(s.total), money.Format(s.cash)),
	}
}
