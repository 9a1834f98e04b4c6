package recorder

import (
	"time"

	"LedgerDrill/internal/model"

	"github.com/google/uuid"
)

// AttemptLine is one graded cell of an attempt.
type AttemptLine struct {
	Line     model.LineID
	Expected model.Expected
	Entry    string
	Status   model.GradeStatus
}

// Attempt is one check of a problem with every graded cell.
type Attempt struct {
	model.AttemptRecord
	Lines []AttemptLine
}

// NewAttempt builds an attempt from a checked problem. Cells are stored in key order.
func NewAttempt(p model.Problem, entries map[model.LineID]string, res model.GradeResult, at time.Time) *Attempt {
	a := &Attempt{AttemptRecord: model.AttemptRecord{
		ID:        uuid.New().String(),
		ProblemID: p.ID,
		Kind:      p.Kind,
		Correct:   res.Correct,
		Incorrect: res.Incorrect,
		Total:     res.Total,

		AmountCells:   res.AmountCells,
		AmountCorrect: res.AmountCorrect,
		CheckedAt:     at,
	}}
	for _, id := range p.Key.Cells() {
		expected, _ := p.Key.Lookup(id)
		a.Lines = append(a.Lines, AttemptLine{
			Line:     id,
			Expected: expected,
			Entry:    entries[id],
			Status:   res.Status(id),
		})
	}
	return a
}

// Recorder persists generated problems and checked attempts for later review.
type Recorder interface {
	RecordProblem(p *model.Problem) error
	RecordAttempt(a *Attempt) error
	// ListAttempts returns the most recent attempts first; limit <= 0 returns all.
	ListAttempts(limit int) ([]model.AttemptRecord, error)
	Close() error
}
