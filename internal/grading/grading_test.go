package grading

import (
	"testing"
	"time"

	"LedgerDrill/internal/model"
	"LedgerDrill/internal/scenario"

	"github.com/shopspring/decimal"
)

func amount(s string) model.Expected {
	return model.Amount(decimal.RequireFromString(s))
}

func TestGrade(t *testing.T) {
	tests := []struct {
		name     string
		expected model.Expected
		text     string
		want     model.GradeStatus
	}{
		{"exact", amount("13500"), "13500", model.StatusCorrect},
		{"formatted", amount("13500"), " $13,500.00 ", model.StatusCorrect},
		{"off by 0.009", amount("4160"), "4160.009", model.StatusCorrect},
		{"off by -0.009", amount("4160"), "4159.991", model.StatusCorrect},
		{"off by 0.011", amount("4160"), "4160.011", model.StatusIncorrect},
		{"off by exactly 0.01", amount("4160"), "4160.01", model.StatusIncorrect},
		{"blank with amount expected", amount("840"), "", model.StatusIncorrect},
		{"garbage with amount expected", amount("840"), "eight forty", model.StatusIncorrect},
		{"wrong sign", amount("840"), "-840", model.StatusIncorrect},
		{"not applicable blank", model.NotApplicable(), "", model.StatusCorrect},
		{"not applicable whitespace", model.NotApplicable(), "   ", model.StatusCorrect},
		{"not applicable zero", model.NotApplicable(), "0", model.StatusCorrect},
		{"not applicable 0.00", model.NotApplicable(), "0.00", model.StatusCorrect},
		{"not applicable garbage", model.NotApplicable(), "n/a", model.StatusCorrect},
		{"not applicable value", model.NotApplicable(), "5000", model.StatusIncorrect},
		{"zero expected blank", amount("0"), "", model.StatusCorrect},
		{"zero expected value", amount("0"), "12", model.StatusIncorrect},
		{"scientific notation", amount("13500"), "1.35e4", model.StatusCorrect},
		{"huge exponent", amount("13500"), "1e100000000", model.StatusIncorrect},
		{"huge negative exponent", amount("13500"), "1e-100000000", model.StatusIncorrect},
		{"not applicable huge exponent", model.NotApplicable(), "1e1000000000", model.StatusCorrect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Grade(tt.expected, tt.text); got != tt.want {
				t.Errorf("Grade(%v, %q) = %s, want %s", tt.expected, tt.text, got, tt.want)
			}
		})
	}
}

func TestGrade_HugeExponentReturnsQuickly(t *testing.T) {
	start := time.Now()
	for _, text := range []string{"1e100000000", "1E1000000000", "-1e999999999", "$1e100000000"} {
		if got := Grade(amount("13500"), text); got != model.StatusIncorrect {
			t.Errorf("Grade(%q) = %s, want incorrect", text, got)
		}
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("grading huge exponents took %v", elapsed)
	}
}

func lossKey() model.AnswerKey {
	// book value 30,000 sold for 25,000: loss of 5,000
	return scenario.AssetSale{}.AnswerKey(scenario.AssetSaleParams(50000, 20000, 25000))
}

var gainCell = model.LineID{Entry: "sale", Account: scenario.AccountGain, Side: model.Credit}

func TestCheck_BlankGainOnLossIsCorrect(t *testing.T) {
	for _, text := range []string{"", "0"} {
		res := Check(lossKey(), map[model.LineID]string{gainCell: text})
		if s := res.Status(gainCell); s != model.StatusCorrect {
			t.Errorf("gain %q: expected correct, got %s", text, s)
		}
	}
	res := Check(lossKey(), map[model.LineID]string{gainCell: "5000"})
	if s := res.Status(gainCell); s != model.StatusIncorrect {
		t.Errorf("nonzero gain: expected incorrect, got %s", s)
	}
}

func TestCheck_FullyCorrectSale(t *testing.T) {
	entries := map[model.LineID]string{
		{Entry: "sale", Account: scenario.AccountCash, Side: model.Debit}:       "25000",
		{Entry: "sale", Account: "Accumulated Depreciation", Side: model.Debit}: "20,000",
		{Entry: "sale", Account: scenario.AccountLoss, Side: model.Debit}:       "5000.00",
		{Entry: "sale", Account: scenario.AccountEquipment, Side: model.Credit}: "$50,000",
	}
	res := Check(lossKey(), entries)
	if !res.AllCorrect() {
		t.Fatalf("expected all correct, got %d/%d (%d incorrect)", res.Correct, res.Total, res.Incorrect)
	}
	if res.Total != 10 {
		t.Errorf("expected 10 cells, got %d", res.Total)
	}
}

func TestCheck_EmptyEntries(t *testing.T) {
	key := lossKey()
	res := Check(key, nil)
	for _, id := range key.Cells() {
		expected, _ := key.Lookup(id)
		want := model.StatusIncorrect
		if expected.IsZero() {
			want = model.StatusCorrect
		}
		if got := res.Status(id); got != want {
			t.Errorf("%+v: expected %s, got %s", id, want, got)
		}
	}
	if res.Incorrect != 4 {
		t.Errorf("expected 4 incorrect cells, got %d", res.Incorrect)
	}
	if res.AmountCells != 4 || res.AmountCorrect != 0 {
		t.Errorf("expected 0 of 4 amount cells, got %d of %d", res.AmountCorrect, res.AmountCells)
	}
}

func TestCheck_Idempotent(t *testing.T) {
	key := scenario.BondPremium{}.AnswerKey(scenario.BondPremiumParams(100000, 10, 8, 104000))
	entries := map[model.LineID]string{
		{Entry: "interest", Account: "Interest Expense", Side: model.Debit}:         "4160",
		{Entry: "interest", Account: "Cash", Side: model.Credit}:                    "5,000",
		{Entry: "interest", Account: "Premium on Bonds Payable", Side: model.Debit}: "800",
	}
	first := Check(key, entries)
	second := Check(key, entries)
	if !first.Equal(second) {
		t.Error("repeated checks disagree")
	}
	if len(entries) != 3 {
		t.Error("Check modified the entries")
	}
	if !key.Equal(scenario.BondPremium{}.AnswerKey(scenario.BondPremiumParams(100000, 10, 8, 104000))) {
		t.Error("Check modified the answer key")
	}
}
