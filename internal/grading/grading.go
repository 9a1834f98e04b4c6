// Package grading compares typed journal amounts against an answer key.
package grading

import (
	"LedgerDrill/internal/model"
	"LedgerDrill/internal/money"

	"github.com/shopspring/decimal"
)

// Tolerance is the largest absolute difference, exclusive, still graded correct.
var Tolerance = decimal.RequireFromString("0.01")

// Grade classifies one cell. Unparseable text counts as zero; Grade never fails.
//
//   - not applicable: correct when blank or zero, incorrect otherwise
//   - amount: correct when within Tolerance of the typed value (blank is zero)
//
// A cell that is not expected to hold a value and was left blank is never incorrect.
func Grade(expected model.Expected, text string) model.GradeStatus {
	v, typed := money.ParseEntry(text)

	if !expected.Applicable {
		if v.IsZero() {
			return model.StatusCorrect
		}
		return model.StatusIncorrect
	}

	if v.Sub(expected.Amount).Abs().LessThan(Tolerance) {
		return model.StatusCorrect
	}
	if (typed && !v.IsZero()) || !expected.Amount.IsZero() {
		return model.StatusIncorrect
	}
	return model.StatusNotGraded
}

// Check grades every cell of key against entries. Missing entries are blank.
// Neither argument is modified.
func Check(key model.AnswerKey, entries map[model.LineID]string) model.GradeResult {
	cells := key.Cells()
	res := model.GradeResult{
		Statuses: make(map[model.LineID]model.GradeStatus, len(cells)),
		Total:    len(cells),
	}
	for _, id := range cells {
		expected, _ := key.Lookup(id)
		status := Grade(expected, entries[id])
		res.Statuses[id] = status
		if expected.Applicable {
			res.AmountCells++
			if status == model.StatusCorrect {
				res.AmountCorrect++
			}
		}
		switch status {
		case model.StatusCorrect:
			res.Correct++
		case model.StatusIncorrect:
			res.Incorrect++
		}
	}
	return res
}
