package report

import (
	"fmt"

	"LedgerDrill/internal/model"

	"github.com/xuri/excelize/v2"
)

const (
	attemptsSheet = "Attempts"
	progressSheet = "Progress"
)

var attemptHeadings = []string{"CheckedAt", "Kind", "Correct", "Incorrect", "Total", "Score", "ProblemID", "AttemptID"}

var progressHeadings = []string{"Kind", "Attempts", "FullyCorrect", "Accuracy", "CurrentStreak", "BestStreak", "Mastered"}

// ExportAttempts writes attempt history and the progress table to an .xlsx workbook.
func ExportAttempts(filename string, records []model.AttemptRecord, state model.ProgressState) error {
	f := excelize.NewFile()
	defer f.Close()

	// rename the default sheet instead of leaving an empty Sheet1 behind
	if err := f.SetSheetName("Sheet1", attemptsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(progressSheet); err != nil {
		return fmt.Errorf("add progress sheet: %w", err)
	}

	if err := writeRow(f, attemptsSheet, 1, toCells(attemptHeadings)); err != nil {
		return err
	}
	for i, r := range records {
		row := []any{
			r.CheckedAt.Format("2006-01-02 15:04:05"), string(r.Kind),
			r.Correct, r.Incorrect, r.Total, r.Score(), r.ProblemID, r.ID,
		}
		if err := writeRow(f, attemptsSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := writeRow(f, progressSheet, 1, toCells(progressHeadings)); err != nil {
		return err
	}
	for i, k := range model.AllKinds {
		kp := state.Kinds[k]
		row := []any{string(k), kp.Attempts, kp.FullyCorrect, kp.Accuracy(), kp.CurrentStreak, kp.BestStreak, kp.Mastered}
		if err := writeRow(f, progressSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("save %s: %w", filename, err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNo int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, rowNo)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func toCells(headings []string) []any {
	out := make([]any, len(headings))
	for i, h := range headings {
		out[i] = h
	}
	return out
}
