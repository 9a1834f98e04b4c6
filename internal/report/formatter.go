// Package report renders problems, grades, calculator runs and progress as plain text
// for the terminal and the chat bot, and exports attempt history to a spreadsheet.
package report

import (
	"fmt"
	"strings"
	"time"

	"LedgerDrill/internal/calculator"
	"LedgerDrill/internal/model"
	"LedgerDrill/internal/money"
)

// ProblemView is everything needed to print the working state of one problem.
type ProblemView struct {
	Problem model.Problem
	Prompt  string
	Entries map[model.LineID]string
	Result  model.GradeResult
	State   model.CheckState
	Stale   bool
}

const accountWidth = 28

// FormatProblem prints the prompt and every journal line with a row number,
// the typed amounts and, once checked, a mark per cell.
func FormatProblem(v ProblemView) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📝 %s\n", v.Problem.Title))
	b.WriteString(v.Prompt)
	b.WriteString("\n")

	row := 0
	for _, e := range v.Problem.Key.Entries() {
		b.WriteString(fmt.Sprintf("\n%s\n", e.Title))
		for _, l := range e.Lines {
			row++
			dr := model.LineID{Entry: e.Key, Account: l.Account, Side: model.Debit}
			cr := model.LineID{Entry: e.Key, Account: l.Account, Side: model.Credit}
			b.WriteString(fmt.Sprintf("%2d. %-*s Dr %s  Cr %s\n", row, accountWidth, l.Account,
				cell(v, dr), cell(v, cr)))
		}
	}

	if v.State == model.Checked {
		b.WriteString("\n")
		b.WriteString(FormatGrade(v.Result))
		if v.Stale {
			b.WriteString("\n(entries changed since the last check)")
		}
	}
	return b.String()
}

func cell(v ProblemView, id model.LineID) string {
	text := v.Entries[id]
	if text == "" {
		text = "_"
	}
	if v.State != model.Checked {
		return fmt.Sprintf("%-12s", text)
	}
	return fmt.Sprintf("%-12s%s", text, mark(v.Result.Status(id)))
}

func mark(s model.GradeStatus) string {
	switch s {
	case model.StatusCorrect:
		return "✅"
	case model.StatusIncorrect:
		return "❌"
	default:
		return "  "
	}
}

// FormatGrade summarizes a check.
func FormatGrade(res model.GradeResult) string {
	if res.AllCorrect() {
		return fmt.Sprintf("🎉 All %d cells correct!", res.Total)
	}
	return fmt.Sprintf("Score: %d/%d correct, %d incorrect", res.Correct, res.Total, res.Incorrect)
}

// FormatSolution prints the worked steps followed by the full answer key.
func FormatSolution(p model.Problem, steps []string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("💡 Solution: %s\n\n", p.Title))
	for _, s := range steps {
		b.WriteString("• ")
		b.WriteString(s)
		b.WriteString("\n")
	}
	for _, e := range p.Key.Entries() {
		b.WriteString(fmt.Sprintf("\n%s\n", e.Title))
		for _, l := range e.Lines {
			b.WriteString(fmt.Sprintf("    %-*s Dr %-12s Cr %s\n", accountWidth, l.Account,
				expected(l.Debit), expected(l.Credit)))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func expected(e model.Expected) string {
	if !e.Applicable {
		return "-"
	}
	return money.Format(e.Amount)
}

// FormatCalc prints a calculator run.
func FormatCalc(res calculator.Result) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🧮 %s\n", res.Title))
	for _, f := range res.Figures {
		b.WriteString(fmt.Sprintf("  %-26s %s%s\n", f.Label, figure(f), band(f.Band)))
	}
	for _, j := range res.Journals {
		b.WriteString(fmt.Sprintf("\n  %s\n", j.Title))
		for _, l := range j.Lines {
			b.WriteString(fmt.Sprintf("    %-*s Dr %-14s Cr %s\n", accountWidth, l.Account, amount(l.Debit), amount(l.Credit)))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func figure(f calculator.Figure) string {
	switch f.Unit {
	case calculator.Currency:
		return money.FormatFloat(f.Value)
	case calculator.Percent:
		return fmt.Sprintf("%.1f%%", f.Value)
	case calculator.Ratio:
		return fmt.Sprintf("%.2f", f.Value)
	case calculator.Label:
		return f.Text
	default:
		return fmt.Sprintf("%.0f", f.Value)
	}
}

func band(b calculator.Band) string {
	switch b {
	case calculator.BandGood:
		return " 🟢"
	case calculator.BandCaution:
		return " 🟡"
	case calculator.BandPoor:
		return " 🔴"
	default:
		return ""
	}
}

func amount(v float64) string {
	if v == 0 {
		return "-"
	}
	return money.FormatFloat(v)
}

// FormatCalculators lists the available calculators with their default inputs.
func FormatCalculators(calcs []calculator.Calculator) string {
	var b strings.Builder
	b.WriteString("🧮 Calculators\n")
	for _, c := range calcs {
		params := make([]string, 0, len(c.Params))
		for _, p := range c.Params {
			params = append(params, fmt.Sprintf("%s=%g", p.Name, p.Default))
		}
		b.WriteString(fmt.Sprintf("  %s: %s\n", c.Name, strings.Join(params, " ")))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatProgress prints one row per scenario kind.
func FormatProgress(state model.ProgressState, titles map[model.ScenarioKind]string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📈 Progress (mastery = %d correct in a row)\n\n", state.MasteryStreak))
	mastered := 0
	for _, k := range model.AllKinds {
		kp := state.Kinds[k]
		flag := "  "
		if kp.Mastered {
			flag = "⭐"
			mastered++
		}
		b.WriteString(fmt.Sprintf("%s %-18s %3d tries  %5.1f%%  streak %d (best %d)\n",
			flag, titles[k], kp.Attempts, kp.Accuracy()*100, kp.CurrentStreak, kp.BestStreak))
	}
	b.WriteString(fmt.Sprintf("\n%d of %d scenarios mastered", mastered, len(model.AllKinds)))
	return b.String()
}

// FormatAttempts lists recent attempts, newest first.
func FormatAttempts(records []model.AttemptRecord) string {
	if len(records) == 0 {
		return "No attempts recorded yet."
	}
	var b strings.Builder
	b.WriteString("🗂 Recent attempts\n")
	for _, r := range records {
		b.WriteString(fmt.Sprintf("  %s  %-14s %d/%d\n", r.CheckedAt.Format("2006-01-02 15:04"), r.Kind, r.Correct, r.Total))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatWeeklySummary reports the attempts checked since a point in time.
func FormatWeeklySummary(state model.ProgressState, records []model.AttemptRecord, since time.Time, titles map[model.ScenarioKind]string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📅 Weekly summary | %s\n\n", time.Now().Format("2006-01-02")))

	attempts, perfect := 0, 0
	for _, r := range records {
		if r.CheckedAt.Before(since) {
			continue
		}
		attempts++
		if r.Total > 0 && r.Correct == r.Total {
			perfect++
		}
	}
	b.WriteString(fmt.Sprintf("Problems checked this week: %d (%d fully correct)\n\n", attempts, perfect))
	b.WriteString(FormatProgress(state, titles))
	return b.String()
}
