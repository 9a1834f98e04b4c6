package calculator

import (
	"math"

	"github.com/go-playground/validator/v10"
)

// FICARate is the employee and employer FICA rate, in percent.
const FICARate = 7.65

// InterestInput accrues simple interest on a note.
type InterestInput struct {
	Principal float64 `json:"principal" validate:"gte=10000,lte=500000"`
	Rate      float64 `json:"rate" validate:"gte=1,lte=15"`
	Months    float64 `json:"months" validate:"gte=1,lte=12"`
}

type InterestResult struct {
	Interest float64
	Journal  Journal
}

// Interest is principal x rate x months/12.
func Interest(in InterestInput) InterestResult {
	interest := in.Principal * (in.Rate / 100) * (in.Months / 12)
	return InterestResult{
		Interest: interest,
		Journal: Journal{Title: "Accrue interest", Lines: []JournalLine{
			{Account: "Interest Expense", Debit: interest},
			{Account: "Interest Payable", Credit: interest},
		}},
	}
}

// BondPricingInput compares the coupon with the market rate at issue.
type BondPricingInput struct {
	StatedRate float64 `json:"stated_rate" validate:"gte=4,lte=12"`
	MarketRate float64 `json:"market_rate" validate:"gte=4,lte=12"`
}

// BondPricing reports whether a bond sells at a premium, a discount or face value.
func BondPricing(in BondPricingInput) string {
	switch {
	case in.StatedRate > in.MarketRate:
		return "Premium"
	case in.StatedRate < in.MarketRate:
		return "Discount"
	default:
		return "Face Value"
	}
}

// BondInterestInput is one semiannual interest payment under the effective-interest method.
type BondInterestInput struct {
	Face       float64 `json:"face" validate:"eq=100000"`
	StatedRate float64 `json:"stated_rate" validate:"gte=4,lte=12"`
	MarketRate float64 `json:"market_rate" validate:"gte=4,lte=12"`
	BookValue  float64 `json:"book_value" validate:"gte=0"`
}

type BondInterestResult struct {
	CashPaid        float64
	InterestExpense float64
	Amortization    float64
	Discount        bool
	Journal         Journal
}

func BondInterest(in BondInterestInput) BondInterestResult {
	cash := in.Face * (in.StatedRate / 100 / 2)
	expense := in.BookValue * (in.MarketRate / 100 / 2)
	amort := math.Abs(expense - cash)
	discount := in.BookValue < in.Face

	lines := []JournalLine{{Account: "Interest Expense", Debit: expense}}
	if discount {
		lines = append(lines, JournalLine{Account: "Discount on Bonds Payable", Credit: amort})
	} else {
		lines = append(lines, JournalLine{Account: "Premium on Bonds Payable", Debit: amort})
	}
	lines = append(lines, JournalLine{Account: "Cash", Credit: cash})

	return BondInterestResult{
		CashPaid:        cash,
		InterestExpense: expense,
		Amortization:    amort,
		Discount:        discount,
		Journal:         Journal{Title: "Semiannual interest payment", Lines: lines},
	}
}

// PayrollInput splits gross salaries into withholdings and employer taxes.
type PayrollInput struct {
	Salary           float64 `json:"salary" validate:"gte=50000,lte=1000000"`
	IncomeTaxRate    float64 `json:"income_tax" validate:"gte=10,lte=35"`
	UnemploymentRate float64 `json:"unemployment" validate:"gte=1,lte=6"`
}

type PayrollResult struct {
	IncomeTax       float64
	FICAEmployee    float64
	TakeHome        float64
	FICAEmployer    float64
	Unemployment    float64
	PayrollTax      float64
	TotalCost       float64
	EmployeeJournal Journal
	EmployerJournal Journal
}

func Payroll(in PayrollInput) PayrollResult {
	r := PayrollResult{
		IncomeTax:    in.Salary * (in.IncomeTaxRate / 100),
		FICAEmployee: in.Salary * (FICARate / 100),
		FICAEmployer: in.Salary * (FICARate / 100),
		Unemployment: in.Salary * (in.UnemploymentRate / 100),
	}
	r.TakeHome = in.Salary - r.IncomeTax - r.FICAEmployee
	r.PayrollTax = r.FICAEmployer + r.Unemployment
	r.TotalCost = in.Salary + r.PayrollTax
	r.EmployeeJournal = Journal{Title: "Record payroll (employee side)", Lines: []JournalLine{
		{Account: "Salaries Expense", Debit: in.Salary},
		{Account: "Income Tax Payable", Credit: r.IncomeTax},
		{Account: "FICA Tax Payable", Credit: r.FICAEmployee},
		{Account: "Salaries Payable", Credit: r.TakeHome},
	}}
	r.EmployerJournal = Journal{Title: "Record employer payroll taxes", Lines: []JournalLine{
		{Account: "Payroll Tax Expense", Debit: r.PayrollTax},
		{Account: "FICA Tax Payable", Credit: r.FICAEmployer},
		{Account: "Unemployment Tax Payable", Credit: r.Unemployment},
	}}
	return r
}

// WarrantyInput estimates warranty expense as a share of sales.
type WarrantyInput struct {
	Sales float64 `json:"sales" validate:"gte=100000,lte=2000000"`
	Rate  float64 `json:"rate" validate:"gte=1,lte=10"`
}

type WarrantyResult struct {
	Expense float64
	Journal Journal
}

func Warranty(in WarrantyInput) WarrantyResult {
	expense := in.Sales * (in.Rate / 100)
	return WarrantyResult{
		Expense: expense,
		Journal: Journal{Title: "Estimate warranty liability", Lines: []JournalLine{
			{Account: "Warranty Expense", Debit: expense},
			{Account: "Warranty Liability", Credit: expense},
		}},
	}
}

// InstallmentNoteInput is one annual payment on an installment note.
type InstallmentNoteInput struct {
	Principal float64 `json:"principal" validate:"gte=10000,lte=100000"`
	Rate      float64 `json:"rate" validate:"gte=1,lte=12"`
	Payment   float64 `json:"payment" validate:"gt=0"`
}

type InstallmentNoteResult struct {
	Interest           float64
	PrincipalReduction float64
	EndingPrincipal    float64
	Journal            Journal
}

func InstallmentNote(in InstallmentNoteInput) InstallmentNoteResult {
	interest := in.Principal * (in.Rate / 100)
	reduction := in.Payment - interest
	return InstallmentNoteResult{
		Interest:           interest,
		PrincipalReduction: reduction,
		EndingPrincipal:    in.Principal - reduction,
		Journal: Journal{Title: "Annual installment payment", Lines: []JournalLine{
			{Account: "Interest Expense", Debit: interest},
			{Account: "Notes Payable", Debit: reduction},
			{Account: "Cash", Credit: in.Payment},
		}},
	}
}

func bondInterestBounds(sl validator.StructLevel) {
	in := sl.Current().Interface().(BondInterestInput)
	if in.BookValue < in.Face*0.9 || in.BookValue > in.Face*1.1 {
		sl.ReportError(in.BookValue, "book_value", "BookValue", "within_10pct_of_face", "")
	}
}

func installmentBounds(sl validator.StructLevel) {
	in := sl.Current().Interface().(InstallmentNoteInput)
	// the payment must cover the year's interest and stay within half the principal
	if in.Payment <= in.Principal*(in.Rate/100) {
		sl.ReportError(in.Payment, "payment", "Payment", "exceeds_interest", "")
	}
	if in.Payment > in.Principal*0.5 {
		sl.ReportError(in.Payment, "payment", "Payment", "max_half_principal", "")
	}
}

func init() {
	validate.RegisterStructValidation(bondInterestBounds, BondInterestInput{})
	validate.RegisterStructValidation(installmentBounds, InstallmentNoteInput{})

	register("interest", "Interest Accrual",
		InterestInput{Principal: 100000, Rate: 6, Months: 4},
		func(in InterestInput) Result {
			r := Interest(in)
			return Result{
				Figures:  []Figure{{Label: "Accrued interest", Value: r.Interest, Unit: Currency}},
				Journals: []Journal{r.Journal},
			}
		})

	register("bond_pricing", "Bond Pricing (Stated vs. Market)",
		BondPricingInput{StatedRate: 8, MarketRate: 8},
		func(in BondPricingInput) Result {
			return Result{Figures: []Figure{
				{Label: "Stated rate", Value: in.StatedRate, Unit: Percent},
				{Label: "Market rate", Value: in.MarketRate, Unit: Percent},
				{Label: "Bond sells at", Unit: Label, Text: BondPricing(in)},
			}}
		})

	register("bond_interest", "Bond Interest Payment (Discount/Premium)",
		BondInterestInput{Face: 100000, StatedRate: 8, MarketRate: 10, BookValue: 95000},
		func(in BondInterestInput) Result {
			r := BondInterest(in)
			label := "Premium amortization"
			if r.Discount {
				label = "Discount amortization"
			}
			return Result{
				Figures: []Figure{
					{Label: "Cash paid", Value: r.CashPaid, Unit: Currency},
					{Label: "Interest expense", Value: r.InterestExpense, Unit: Currency},
					{Label: label, Value: r.Amortization, Unit: Currency},
				},
				Journals: []Journal{r.Journal},
			}
		})

	register("payroll", "Payroll Liabilities",
		PayrollInput{Salary: 100000, IncomeTaxRate: 15, UnemploymentRate: 2},
		func(in PayrollInput) Result {
			r := Payroll(in)
			return Result{
				Figures: []Figure{
					{Label: "Income tax withheld", Value: r.IncomeTax, Unit: Currency},
					{Label: "FICA withheld", Value: r.FICAEmployee, Unit: Currency},
					{Label: "Take-home pay", Value: r.TakeHome, Unit: Currency},
					{Label: "Employer payroll tax", Value: r.PayrollTax, Unit: Currency},
					{Label: "Total cost to employer", Value: r.TotalCost, Unit: Currency},
				},
				Journals: []Journal{r.EmployeeJournal, r.EmployerJournal},
			}
		})

	register("warranty", "Estimated Warranty Liability",
		WarrantyInput{Sales: 500000, Rate: 3},
		func(in WarrantyInput) Result {
			r := Warranty(in)
			return Result{
				Figures:  []Figure{{Label: "Warranty expense", Value: r.Expense, Unit: Currency}},
				Journals: []Journal{r.Journal},
			}
		})

	register("installment_note", "Installment Note Payment",
		InstallmentNoteInput{Principal: 50000, Rate: 6, Payment: 11000},
		func(in InstallmentNoteInput) Result {
			r := InstallmentNote(in)
			return Result{
				Figures: []Figure{
					{Label: "Interest expense", Value: r.Interest, Unit: Currency},
					{Label: "Principal reduction", Value: r.PrincipalReduction, Unit: Currency},
					{Label: "Ending principal", Value: r.EndingPrincipal, Unit: Currency},
				},
				Journals: []Journal{r.Journal},
			}
		})
}
