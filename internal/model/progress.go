package model

import "time"

// KindProgress tracks practice results for one scenario kind.
type KindProgress struct {
	Attempts      int       `json:"attempts"`
	FullyCorrect  int       `json:"fully_correct"`
	CurrentStreak int       `json:"current_streak"`
	BestStreak    int       `json:"best_streak"`
	Mastered      bool      `json:"mastered"`
	LastAttemptAt time.Time `json:"last_attempt_at"`
}

// Accuracy is the share of attempts graded fully correct (0.0 ~ 1.0).
func (k KindProgress) Accuracy() float64 {
	if k.Attempts == 0 {
		return 0
	}
	return float64(k.FullyCorrect) / float64(k.Attempts)
}

// ProgressState is the persisted study progress across all kinds.
type ProgressState struct {
	MasteryStreak int                           `json:"mastery_streak"`
	Kinds         map[ScenarioKind]KindProgress `json:"kinds"`
	UpdatedAt     time.Time                     `json:"updated_at"`
}

// AttemptRecord is one stored check of a problem.
type AttemptRecord struct {
	ID            string
	ProblemID     string
	Kind          ScenarioKind
	Correct       int
	Incorrect     int
	Total         int
	AmountCells   int // cells a correct answer fills in
	AmountCorrect int
	CheckedAt     time.Time
}

// Score is the share of amount cells answered correctly (0.0 ~ 1.0).
func (r AttemptRecord) Score() float64 {
	if r.AmountCells == 0 {
		return 0
	}
	return float64(r.AmountCorrect) / float64(r.AmountCells)
}
