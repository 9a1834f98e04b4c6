package report

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"LedgerDrill/internal/calculator"
	"LedgerDrill/internal/grading"
	"LedgerDrill/internal/model"
	"LedgerDrill/internal/scenario"

	"github.com/xuri/excelize/v2"
)

func bondView(entries map[model.LineID]string, checked bool) ProblemView {
	s := scenario.BondPremium{}
	params := scenario.BondPremiumParams(100000, 10, 8, 104000)
	p := model.Problem{ID: "p-1", Kind: s.Kind(), Title: s.Title(), Params: params, Key: s.AnswerKey(params)}
	v := ProblemView{Problem: p, Prompt: s.Prompt(params), Entries: entries}
	if checked {
		v.State = model.Checked
		v.Result = grading.Check(p.Key, entries)
	}
	return v
}

func TestFormatProblem_NumbersRowsAcrossEntries(t *testing.T) {
	out := FormatProblem(bondView(nil, false))
	for _, want := range []string{" 1. Cash", " 3. Bonds Payable", " 4. Interest Expense", " 6. Cash", "$104,000"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Score") {
		t.Error("unchecked problem should not show a score")
	}
}

func TestFormatProblem_MarksAfterCheck(t *testing.T) {
	entries := map[model.LineID]string{
		{Entry: "interest", Account: "Interest Expense", Side: model.Debit}: "4160",
	}
	v := bondView(entries, true)
	v.Stale = true
	out := FormatProblem(v)
	if !strings.Contains(out, "4160") || !strings.Contains(out, "✅") || !strings.Contains(out, "❌") {
		t.Errorf("expected typed value and marks in:\n%s", out)
	}
	if !strings.Contains(out, "Score:") || !strings.Contains(out, "changed since the last check") {
		t.Errorf("expected score and stale note in:\n%s", out)
	}
}

func TestFormatSolution(t *testing.T) {
	v := bondView(nil, false)
	out := FormatSolution(v.Problem, scenario.BondPremium{}.Solution(v.Problem.Params))
	for _, want := range []string{"$840", "$4,160", "$5,000", "Premium on Bonds Payable"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestFormatCalc(t *testing.T) {
	c, err := calculator.Lookup("liquidity")
	if err != nil {
		t.Fatal(err)
	}
	res, err := c.Run(map[string]float64{"current_liabilities": 40000})
	if err != nil {
		t.Fatal(err)
	}
	out := FormatCalc(res)
	if !strings.Contains(out, "Current ratio") || !strings.Contains(out, "1.25") || !strings.Contains(out, "🟡") {
		t.Errorf("unexpected calculator output:\n%s", out)
	}

	c, _ = calculator.Lookup("warranty")
	res, _ = c.Run(nil)
	out = FormatCalc(res)
	if !strings.Contains(out, "Warranty Liability") || !strings.Contains(out, "$15,000") {
		t.Errorf("expected journal in:\n%s", out)
	}
}

func TestFormatProgress(t *testing.T) {
	state := model.ProgressState{
		MasteryStreak: 3,
		Kinds: map[model.ScenarioKind]model.KindProgress{
			model.KindPayroll: {Attempts: 4, FullyCorrect: 3, CurrentStreak: 3, BestStreak: 3, Mastered: true},
		},
	}
	titles := map[model.ScenarioKind]string{model.KindPayroll: "Payroll"}
	out := FormatProgress(state, titles)
	if !strings.Contains(out, "75.0%") || !strings.Contains(out, "1 of 5 scenarios mastered") {
		t.Errorf("unexpected progress output:\n%s", out)
	}
}

func TestFormatWeeklySummary_CountsSince(t *testing.T) {
	now := time.Now()
	records := []model.AttemptRecord{
		{Kind: model.KindPayroll, Correct: 7, Total: 7, CheckedAt: now.Add(-time.Hour)},
		{Kind: model.KindPayroll, Correct: 5, Total: 7, CheckedAt: now.Add(-2 * time.Hour)},
		{Kind: model.KindPayroll, Correct: 7, Total: 7, CheckedAt: now.Add(-10 * 24 * time.Hour)},
	}
	out := FormatWeeklySummary(model.ProgressState{}, records, now.Add(-7*24*time.Hour), nil)
	if !strings.Contains(out, "this week: 2 (1 fully correct)") {
		t.Errorf("unexpected summary:\n%s", out)
	}
}

func TestExportAttempts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attempts.xlsx")
	records := []model.AttemptRecord{
		{ID: "a-1", ProblemID: "p-1", Kind: model.KindDepreciation, Correct: 4, Total: 4,
			AmountCells: 2, AmountCorrect: 2, CheckedAt: time.Now()},
		// blank submission: only the not-applicable cells pass
		{ID: "a-2", ProblemID: "p-2", Kind: model.KindDepreciation, Correct: 2, Incorrect: 2, Total: 4,
			AmountCells: 2, AmountCorrect: 0, CheckedAt: time.Now()},
		{ID: "a-3", ProblemID: "p-3", Kind: model.KindAssetSale, Correct: 8, Incorrect: 2, Total: 10,
			AmountCells: 4, AmountCorrect: 3, CheckedAt: time.Now()},
	}
	if err := ExportAttempts(path, records, model.ProgressState{}); err != nil {
		t.Fatalf("ExportAttempts: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if v, _ := f.GetCellValue(attemptsSheet, "A1"); v != "CheckedAt" {
		t.Errorf("expected heading CheckedAt, got %q", v)
	}
	if v, _ := f.GetCellValue(attemptsSheet, "B4"); v != "asset_sale" {
		t.Errorf("expected asset_sale in B4, got %q", v)
	}
	for cell, want := range map[string]string{"F2": "1", "F3": "0", "F4": "0.75"} {
		if v, _ := f.GetCellValue(attemptsSheet, cell); v != want {
			t.Errorf("expected score %s in %s, got %q", want, cell, v)
		}
	}
	if v, _ := f.GetCellValue(attemptsSheet, "H2"); v != "a-1" {
		t.Errorf("expected attempt id in H2, got %q", v)
	}
	if v, _ := f.GetCellValue(progressSheet, "A6"); v != "bond_premium" {
		t.Errorf("expected bond_premium in progress A6, got %q", v)
	}
}
