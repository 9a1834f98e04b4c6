package model

// GradeStatus classifies one cell after a check.
type GradeStatus string

const (
	StatusNotGraded GradeStatus = "not_graded"
	StatusCorrect   GradeStatus = "correct"
	StatusIncorrect GradeStatus = "incorrect"
)

// CheckState is the per-problem state machine: unchecked until the first check.
type CheckState int

const (
	Unchecked CheckState = iota
	Checked
)

func (s CheckState) String() string {
	if s == Checked {
		return "checked"
	}
	return "unchecked"
}

// GradeResult holds the status of every cell in an answer key.
type GradeResult struct {
	Statuses  map[LineID]GradeStatus
	Correct   int
	Incorrect int
	Total     int

	// AmountCells counts the cells that expect an amount; AmountCorrect those graded correct.
	AmountCells   int
	AmountCorrect int
}

// Status returns the status of a cell, not graded when unknown.
func (r GradeResult) Status(id LineID) GradeStatus {
	if s, ok := r.Statuses[id]; ok {
		return s
	}
	return StatusNotGraded
}

// AllCorrect reports whether every cell graded correct.
func (r GradeResult) AllCorrect() bool {
	return r.Total > 0 && r.Correct == r.Total
}

// Equal compares two results cell by cell.
func (r GradeResult) Equal(other GradeResult) bool {
	if r.Correct != other.Correct || r.Incorrect != other.Incorrect || r.Total != other.Total {
		return false
	}
	if r.AmountCells != other.AmountCells || r.AmountCorrect != other.AmountCorrect {
		return false
	}
	if len(r.Statuses) != len(other.Statuses) {
		return false
	}
	for id, s := range r.Statuses {
		if other.Statuses[id] != s {
			return false
		}
	}
	return true
}
