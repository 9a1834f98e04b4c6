package scenario

import (
	"fmt"
	"math/rand"

	"LedgerDrill/internal/model"
	"LedgerDrill/internal/money"

	"github.com/shopspring/decimal"
)

const (
	ParamSalaries         = "salaries"
	ParamIncomeTaxRate    = "income_tax_rate"
	ParamFICARate         = "fica_rate"
	ParamUnemploymentRate = "unemployment_rate"

	accountSalariesExpense     = "Salaries Expense"
	accountIncomeTaxPayable    = "Income Tax Payable"
	accountFICAPayable         = "FICA Tax Payable"
	accountSalariesPayable     = "Salaries Payable"
	accountPayrollTaxExpense   = "Payroll Tax Expense"
	accountFICAPayableER       = "FICA Tax Payable (ER)"
	accountUnemploymentPayable = "Unemployment Tax Payable"
)

// FICARate is charged on both the employee and employer side, in percent.
var FICARate = decimal.RequireFromString("7.65")

// Payroll asks for the employee-side and employer-side payroll entries.
// salaries: 500k~1M in 10k steps; income tax: 15%~25%; unemployment: 2.0%~5.0% in 0.1% steps.
type Payroll struct{}

func (Payroll) Kind() model.ScenarioKind { return model.KindPayroll }
func (Payroll) Title() string            { return "Payroll" }

func (Payroll) Generate(rng *rand.Rand) model.Parameters {
	salaries := between(rng, 50, 100) * 10000
	incomeTaxPct := between(rng, 15, 25)
	unemploymentTenths := between(rng, 20, 50)
	return PayrollParams(salaries, decimal.NewFromInt(incomeTaxPct), decimal.New(unemploymentTenths, -1))
}

// PayrollParams builds a parameter set; rates are in percent.
func PayrollParams(salaries int64, incomeTaxPct, unemploymentPct decimal.Decimal) model.Parameters {
	return model.Parameters{
		Kind: model.KindPayroll,
		Values: map[string]decimal.Decimal{
			ParamSalaries:         money.Int(salaries),
			ParamIncomeTaxRate:    incomeTaxPct,
			ParamFICARate:         FICARate,
			ParamUnemploymentRate: unemploymentPct,
		},
	}
}

func (Payroll) Layout() []model.EntryLayout {
	return []model.EntryLayout{
		{Key: "employee", Title: "Record the payroll (employee side)", Accounts: []string{
			accountSalariesExpense, accountIncomeTaxPayable, accountFICAPayable, accountSalariesPayable,
		}},
		{Key: "employer", Title: "Record employer payroll taxes", Accounts: []string{
			accountPayrollTaxExpense, accountFICAPayableER, accountUnemploymentPayable,
		}},
	}
}

type payrollAmounts struct {
	salaries     decimal.Decimal
	incomeTax    decimal.Decimal
	fica         decimal.Decimal
	unemployment decimal.Decimal
	net          decimal.Decimal
	payrollTax   decimal.Decimal
}

func payrollSchedule(p model.Parameters) payrollAmounts {
	salaries := p.Get(ParamSalaries)
	incomeTax := money.Round2(salaries.Mul(money.Percent(p.Get(ParamIncomeTaxRate))))
	fica := money.Round2(salaries.Mul(money.Percent(p.Get(ParamFICARate))))
	unemployment := money.Round2(salaries.Mul(money.Percent(p.Get(ParamUnemploymentRate))))
	return payrollAmounts{
		salaries:     salaries,
		incomeTax:    incomeTax,
		fica:         fica,
		unemployment: unemployment,
		net:          money.Round2(salaries.Sub(incomeTax).Sub(fica)),
		payrollTax:   money.Round2(fica.Add(unemployment)),
	}
}

func (pr Payroll) AnswerKey(p model.Parameters) model.AnswerKey {
	s := payrollSchedule(p)
	return buildKey(pr.Layout(), map[string]map[string]map[model.Side]decimal.Decimal{
		"employee": {
			accountSalariesExpense:  dr(s.salaries),
			accountIncomeTaxPayable: cr(s.incomeTax),
			accountFICAPayable:      cr(s.fica),
			accountSalariesPayable:  cr(s.net),
		},
		"employer": {
			accountPayrollTaxExpense:   dr(s.payrollTax),
			accountFICAPayableER:       cr(s.fica),
			accountUnemploymentPayable: cr(s.unemployment),
		},
	})
}

func (Payroll) Prompt(p model.Parameters) string {
	s := payrollSchedule(p)
	return fmt.Sprintf("Total employee salaries are %s. Withholdings are %s for income tax. FICA is %s%% (both sides). Unemployment tax is %s.",
		money.FormatWhole(s.salaries), money.Format(s.incomeTax), p.Get(ParamFICARate).String(), money.Format(s.unemployment))
}

func (Payroll) Solution(p model.Parameters) []string {
	s := payrollSchedule(p)
	return []string{
		fmt.Sprintf("FICA = %s x %s%% = %s", money.FormatWhole(s.salaries), p.Get(ParamFICARate).String(), money.Format(s.fica)),
		fmt.Sprintf("Salaries payable = %s - %s - %s = %s",
			money.FormatWhole(s.salaries), money.Format(s.incomeTax), money.Format(s.fica), money.Format(s.net)),
		fmt.Sprintf("Employer payroll tax = %s FICA + %s unemployment = %s",
			money.Format(s.fica), money.Format(s.unemployment), money.Format(s.payrollTax)),
	}
}
