package scenario

import (
	"fmt"
	"testing"

	"LedgerDrill/internal/model"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func expectAmount(t *testing.T, key model.AnswerKey, id model.LineID, want string) {
	t.Helper()
	got, ok := key.Lookup(id)
	if !ok {
		t.Fatalf("%+v: line not in key", id)
	}
	if !got.Applicable {
		t.Fatalf("%+v: expected amount %s, got not applicable", id, want)
	}
	if !got.Amount.Equal(dec(want)) {
		t.Errorf("%+v: expected %s, got %s", id, want, got.Amount.StringFixed(2))
	}
}

func expectNotApplicable(t *testing.T, key model.AnswerKey, id model.LineID) {
	t.Helper()
	got, ok := key.Lookup(id)
	if !ok {
		t.Fatalf("%+v: line not in key", id)
	}
	if got.Applicable {
		t.Errorf("%+v: expected not applicable, got %s", id, got.Amount.StringFixed(2))
	}
}

func TestDepreciation_StraightLineExample(t *testing.T) {
	key := Depreciation{}.AnswerKey(DepreciationParams(60000, 6000, 4))
	expectAmount(t, key, model.LineID{Entry: "adjusting", Account: "Depreciation Expense", Side: model.Debit}, "13500.00")
	expectAmount(t, key, model.LineID{Entry: "adjusting", Account: "Accumulated Depreciation", Side: model.Credit}, "13500.00")
	expectNotApplicable(t, key, model.LineID{Entry: "adjusting", Account: "Depreciation Expense", Side: model.Credit})
	expectNotApplicable(t, key, model.LineID{Entry: "adjusting", Account: "Accumulated Depreciation", Side: model.Debit})
}

func TestDepreciation_RoundsToCents(t *testing.T) {
	// 60000 / 7 = 8571.428...
	key := Depreciation{}.AnswerKey(DepreciationParams(65000, 5000, 7))
	expectAmount(t, key, model.LineID{Entry: "adjusting", Account: "Depreciation Expense", Side: model.Debit}, "8571.43")
}

func TestBondPremium_InterestExample(t *testing.T) {
	key := BondPremium{}.AnswerKey(BondPremiumParams(100000, 10, 8, 104000))
	expectAmount(t, key, model.LineID{Entry: "interest", Account: "Cash", Side: model.Credit}, "5000.00")
	expectAmount(t, key, model.LineID{Entry: "interest", Account: "Interest Expense", Side: model.Debit}, "4160.00")
	expectAmount(t, key, model.LineID{Entry: "interest", Account: "Premium on Bonds Payable", Side: model.Debit}, "840.00")
	expectAmount(t, key, model.LineID{Entry: "issuance", Account: "Cash", Side: model.Debit}, "104000")
	expectAmount(t, key, model.LineID{Entry: "issuance", Account: "Premium on Bonds Payable", Side: model.Credit}, "4000")
	expectAmount(t, key, model.LineID{Entry: "issuance", Account: "Bonds Payable", Side: model.Credit}, "100000")
}

func TestNotePayable_ChainedEntries(t *testing.T) {
	// 90,000 at 6%: 4 months = 1,800; 6 months = 2,700.
	key := NotePayable{}.AnswerKey(NotePayableParams(90000, 6))
	expectAmount(t, key, model.LineID{Entry: "issuance", Account: "Cash", Side: model.Debit}, "90000")
	expectAmount(t, key, model.LineID{Entry: "issuance", Account: "Notes Payable", Side: model.Credit}, "90000")
	expectAmount(t, key, model.LineID{Entry: "accrual", Account: "Interest Expense", Side: model.Debit}, "1800")
	expectAmount(t, key, model.LineID{Entry: "accrual", Account: "Interest Payable", Side: model.Credit}, "1800")
	expectAmount(t, key, model.LineID{Entry: "maturity", Account: "Notes Payable", Side: model.Debit}, "90000")
	expectAmount(t, key, model.LineID{Entry: "maturity", Account: "Interest Payable", Side: model.Debit}, "1800")
	expectAmount(t, key, model.LineID{Entry: "maturity", Account: "Interest Expense", Side: model.Debit}, "900")
	expectAmount(t, key, model.LineID{Entry: "maturity", Account: "Cash", Side: model.Credit}, "92700")
}

func TestNotePayable_FractionalInterest(t *testing.T) {
	// 70,000 at 7% for 4 months = 1,633.333.. -> 1,633.33
	key := NotePayable{}.AnswerKey(NotePayableParams(70000, 7))
	expectAmount(t, key, model.LineID{Entry: "accrual", Account: "Interest Expense", Side: model.Debit}, "1633.33")
	// 6 months = 2,450.00; remaining = 816.67
	expectAmount(t, key, model.LineID{Entry: "maturity", Account: "Interest Expense", Side: model.Debit}, "816.67")
	expectAmount(t, key, model.LineID{Entry: "maturity", Account: "Cash", Side: model.Credit}, "72450")
}

func TestPayroll_EmployeeAndEmployerSides(t *testing.T) {
	key := Payroll{}.AnswerKey(PayrollParams(500000, dec("20"), dec("3.2")))
	expectAmount(t, key, model.LineID{Entry: "employee", Account: "Salaries Expense", Side: model.Debit}, "500000")
	expectAmount(t, key, model.LineID{Entry: "employee", Account: "Income Tax Payable", Side: model.Credit}, "100000")
	expectAmount(t, key, model.LineID{Entry: "employee", Account: "FICA Tax Payable", Side: model.Credit}, "38250")
	expectAmount(t, key, model.LineID{Entry: "employee", Account: "Salaries Payable", Side: model.Credit}, "361750")
	expectAmount(t, key, model.LineID{Entry: "employer", Account: "Payroll Tax Expense", Side: model.Debit}, "54250")
	expectAmount(t, key, model.LineID{Entry: "employer", Account: "FICA Tax Payable (ER)", Side: model.Credit}, "38250")
	expectAmount(t, key, model.LineID{Entry: "employer", Account: "Unemployment Tax Payable", Side: model.Credit}, "16000")
}

func TestAssetSale_LossLeavesGainBlank(t *testing.T) {
	// book value 30,000, sold for 25,000
	key := AssetSale{}.AnswerKey(AssetSaleParams(50000, 20000, 25000))
	expectAmount(t, key, model.LineID{Entry: "sale", Account: "Loss on Sale", Side: model.Debit}, "5000")
	expectNotApplicable(t, key, model.LineID{Entry: "sale", Account: "Gain on Sale", Side: model.Credit})
	expectAmount(t, key, model.LineID{Entry: "sale", Account: "Equipment", Side: model.Credit}, "50000")
}

func TestAssetSale_GainLeavesLossBlank(t *testing.T) {
	key := AssetSale{}.AnswerKey(AssetSaleParams(50000, 30000, 26000))
	expectAmount(t, key, model.LineID{Entry: "sale", Account: "Gain on Sale", Side: model.Credit}, "6000")
	expectNotApplicable(t, key, model.LineID{Entry: "sale", Account: "Loss on Sale", Side: model.Debit})
}

func within(v, lo, hi decimal.Decimal) bool {
	return v.GreaterThanOrEqual(lo) && v.LessThanOrEqual(hi)
}

func TestGenerate_InvariantsHoldAcrossSeeds(t *testing.T) {
	for i := 0; i < 500; i++ {
		rng := NewRand(fmt.Sprintf("invariants-%d", i))

		d := Depreciation{}.Generate(rng)
		cost, salvage, life := d.Get(ParamCost), d.Get(ParamSalvage), d.Get(ParamLife)
		if !within(cost, dec("30000"), dec("100000")) || !cost.Mod(dec("1000")).IsZero() {
			t.Fatalf("depreciation cost out of range: %s", cost)
		}
		if !within(salvage, cost.Mul(dec("0.05")), cost.Mul(dec("0.15"))) || salvage.GreaterThan(cost) {
			t.Fatalf("salvage %s not within 5%%~15%% of %s", salvage, cost)
		}
		if !within(life, dec("3"), dec("5")) {
			t.Fatalf("life out of range: %s", life)
		}

		a := AssetSale{}.Generate(rng)
		cost, accum, sale := a.Get(ParamCost), a.Get(ParamAccumDep), a.Get(ParamSalePrice)
		bv := BookValue(a)
		if !within(cost, dec("50000"), dec("100000")) {
			t.Fatalf("asset cost out of range: %s", cost)
		}
		if !within(accum, cost.Mul(dec("0.2")), cost.Mul(dec("0.8"))) {
			t.Fatalf("accumulated depreciation %s not within 20%%~80%% of %s", accum, cost)
		}
		if !within(sale, bv.Mul(dec("0.6")), bv.Mul(dec("1.4"))) {
			t.Fatalf("sale price %s not within 60%%~140%% of book value %s", sale, bv)
		}
		key := AssetSale{}.AnswerKey(a)
		gain, _ := key.Lookup(model.LineID{Entry: "sale", Account: "Gain on Sale", Side: model.Credit})
		loss, _ := key.Lookup(model.LineID{Entry: "sale", Account: "Loss on Sale", Side: model.Debit})
		if gain.Applicable == loss.Applicable {
			t.Fatalf("exactly one of gain/loss must be populated (sale %s, book value %s)", sale, bv)
		}

		n := NotePayable{}.Generate(rng)
		if p := n.Get(ParamPrincipal); !within(p, dec("50000"), dec("150000")) || !p.Mod(dec("10000")).IsZero() {
			t.Fatalf("principal out of range: %s", p)
		}
		if r := n.Get(ParamRate); !within(r, dec("4"), dec("8")) {
			t.Fatalf("rate out of range: %s", r)
		}

		p := Payroll{}.Generate(rng)
		if s := p.Get(ParamSalaries); !within(s, dec("500000"), dec("1000000")) {
			t.Fatalf("salaries out of range: %s", s)
		}
		if r := p.Get(ParamIncomeTaxRate); !within(r, dec("15"), dec("25")) {
			t.Fatalf("income tax rate out of range: %s", r)
		}
		if r := p.Get(ParamUnemploymentRate); !within(r, dec("2"), dec("5")) {
			t.Fatalf("unemployment rate out of range: %s", r)
		}
		if !p.Get(ParamFICARate).Equal(dec("7.65")) {
			t.Fatalf("FICA rate must be fixed at 7.65, got %s", p.Get(ParamFICARate))
		}

		b := BondPremium{}.Generate(rng)
		stated := b.Get(ParamStatedRate)
		if !b.Get(ParamFace).Equal(dec("100000")) {
			t.Fatalf("face must be 100000, got %s", b.Get(ParamFace))
		}
		if !(stated.Equal(dec("8")) || stated.Equal(dec("10")) || stated.Equal(dec("12"))) {
			t.Fatalf("stated rate must be 8, 10 or 12, got %s", stated)
		}
		if !b.Get(ParamMarketRate).Equal(stated.Sub(dec("2"))) {
			t.Fatalf("market rate must be stated-2, got %s", b.Get(ParamMarketRate))
		}
		if ip := b.Get(ParamIssuePrice); !within(ip, dec("102000"), dec("107000")) {
			t.Fatalf("issue price out of range: %s", ip)
		}
	}
}

func TestGenerate_SameSeedSameProblems(t *testing.T) {
	for _, s := range All() {
		p1 := s.Generate(NewRand("repeatable"))
		p2 := s.Generate(NewRand("repeatable"))
		for name, v := range p1.Values {
			if !p2.Get(name).Equal(v) {
				t.Errorf("%s: %s differs between runs: %s vs %s", s.Kind(), name, v, p2.Get(name))
			}
		}
	}
}

func TestAnswerKey_IsPure(t *testing.T) {
	rng := NewRand("pure")
	for _, s := range All() {
		p := s.Generate(rng)
		k1 := s.AnswerKey(p)
		k2 := s.AnswerKey(p.Clone())
		if !k1.Equal(k2) {
			t.Errorf("%s: answer key differs for identical parameters", s.Kind())
		}
	}
}

func TestAnswerKey_EntriesBalance(t *testing.T) {
	rng := NewRand("balance")
	for i := 0; i < 100; i++ {
		for _, s := range All() {
			key := s.AnswerKey(s.Generate(rng))
			for _, e := range key.Entries() {
				debits, credits := decimal.Zero, decimal.Zero
				for _, l := range e.Lines {
					debits = debits.Add(l.Debit.Amount)
					credits = credits.Add(l.Credit.Amount)
				}
				if !debits.Equal(credits) {
					t.Fatalf("%s/%s: debits %s != credits %s", s.Kind(), e.Key, debits, credits)
				}
			}
		}
	}
}

func TestAnswerKey_MatchesLayout(t *testing.T) {
	rng := NewRand("layout")
	for _, s := range All() {
		key := s.AnswerKey(s.Generate(rng))
		layout := s.Layout()
		entries := key.Entries()
		if len(entries) != len(layout) {
			t.Fatalf("%s: %d entries, layout has %d", s.Kind(), len(entries), len(layout))
		}
		for i, l := range layout {
			if entries[i].Key != l.Key || len(entries[i].Lines) != len(l.Accounts) {
				t.Errorf("%s: entry %d does not follow layout", s.Kind(), i)
			}
		}
	}
}

func TestAnswerKey_EntriesReturnsCopy(t *testing.T) {
	key := Depreciation{}.AnswerKey(DepreciationParams(60000, 6000, 4))
	entries := key.Entries()
	entries[0].Lines[0].Debit = model.Amount(dec("1"))
	expectAmount(t, key, model.LineID{Entry: "adjusting", Account: "Depreciation Expense", Side: model.Debit}, "13500")
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want model.ScenarioKind
	}{
		{"depreciation", model.KindDepreciation},
		{"sale", model.KindAssetSale},
		{"note", model.KindNotePayable},
		{"4", model.KindPayroll},
		{"bond", model.KindBondPremium},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseKind(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseKind("inventory"); err == nil {
		t.Error("expected error for unknown kind")
	}
	if _, err := Lookup("inventory"); err == nil {
		t.Error("expected error for unknown lookup")
	}
}
