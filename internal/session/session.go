// Package session holds one learner's working problem: the typed entries, the
// unchecked/checked state and the most recent grade.
package session

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"LedgerDrill/internal/grading"
	"LedgerDrill/internal/model"
	"LedgerDrill/internal/scenario"

	"github.com/google/uuid"
)

var (
	// ErrNoProblem is returned by operations that need a current problem.
	ErrNoProblem = errors.New("no problem generated yet")
	// ErrUnknownLine is returned when an entry names a cell outside the current answer key.
	ErrUnknownLine = errors.New("line is not part of the current problem")
)

// Session is not safe for concurrent use; callers serialize access.
type Session struct {
	rng *rand.Rand
	now func() time.Time

	scn     scenario.Scenario
	problem *model.Problem

	entries map[model.LineID]string
	state   model.CheckState
	result  model.GradeResult
	// snapshot of entries taken by the last check
	checked map[model.LineID]string
}

// New creates an empty session drawing problems from rng.
func New(rng *rand.Rand) *Session {
	return &Session{
		rng:     rng,
		now:     time.Now,
		entries: make(map[model.LineID]string),
	}
}

// Generate replaces the current problem with a fresh one of the given kind.
// Entries and the previous grade are discarded.
func (s *Session) Generate(kind model.ScenarioKind) (model.Parameters, error) {
	scn, err := scenario.Lookup(kind)
	if err != nil {
		return model.Parameters{}, err
	}
	params := scn.Generate(s.rng)
	s.load(scn, params)
	return params.Clone(), nil
}

// Load makes a problem from explicit parameters current, e.g. a textbook example.
func (s *Session) Load(params model.Parameters) error {
	scn, err := scenario.Lookup(params.Kind)
	if err != nil {
		return err
	}
	s.load(scn, params.Clone())
	return nil
}

func (s *Session) load(scn scenario.Scenario, params model.Parameters) {
	s.scn = scn
	s.problem = &model.Problem{
		ID:        uuid.New().String(),
		Kind:      scn.Kind(),
		Title:     scn.Title(),
		Params:    params,
		Key:       scn.AnswerKey(params),
		CreatedAt: s.now(),
	}
	s.clear()
}

// ResetForNewProblem regenerates a problem of the current kind.
func (s *Session) ResetForNewProblem() (model.Parameters, error) {
	if s.problem == nil {
		return model.Parameters{}, ErrNoProblem
	}
	return s.Generate(s.problem.Kind)
}

func (s *Session) clear() {
	s.entries = make(map[model.LineID]string)
	s.checked = nil
	s.state = model.Unchecked
	s.result = model.GradeResult{}
}

// UpdateEntry stores the raw text typed into one cell. Blank text clears the cell.
// An existing grade is kept until the next check.
func (s *Session) UpdateEntry(id model.LineID, text string) error {
	if s.problem == nil {
		return ErrNoProblem
	}
	if _, ok := s.problem.Key.Lookup(id); !ok {
		return fmt.Errorf("%w: %s / %s / %s", ErrUnknownLine, id.Entry, id.Account, id.Side)
	}
	if text == "" {
		delete(s.entries, id)
		return nil
	}
	s.entries[id] = text
	return nil
}

// CheckAnswers grades the entries as they stand now and moves the problem to checked.
func (s *Session) CheckAnswers() (model.GradeResult, error) {
	if s.problem == nil {
		return model.GradeResult{}, ErrNoProblem
	}
	s.checked = copyEntries(s.entries)
	s.result = grading.Check(s.problem.Key, s.checked)
	s.state = model.Checked
	return s.result, nil
}

// Current returns a copy of the current problem.
func (s *Session) Current() (model.Problem, bool) {
	if s.problem == nil {
		return model.Problem{}, false
	}
	p := *s.problem
	p.Params = p.Params.Clone()
	return p, true
}

// Scenario returns the generator of the current problem, nil before the first Generate.
func (s *Session) Scenario() scenario.Scenario { return s.scn }

// State reports whether the current problem has been checked.
func (s *Session) State() model.CheckState { return s.state }

// Result returns the grade from the last check; every cell is not graded before that.
func (s *Session) Result() model.GradeResult { return s.result }

// Entries returns a copy of the typed entries.
func (s *Session) Entries() map[model.LineID]string { return copyEntries(s.entries) }

// Entry returns the raw text of one cell.
func (s *Session) Entry(id model.LineID) string { return s.entries[id] }

// Stale reports whether entries changed since the last check.
func (s *Session) Stale() bool {
	if s.state != model.Checked {
		return false
	}
	if len(s.entries) != len(s.checked) {
		return true
	}
	for id, text := range s.entries {
		if prev, ok := s.checked[id]; !ok || prev != text {
			return true
		}
	}
	return false
}

// LineID resolves a 1-based row number, as printed next to each account, and a side.
func (s *Session) LineID(n int, side model.Side) (model.LineID, error) {
	if s.problem == nil {
		return model.LineID{}, ErrNoProblem
	}
	entry, account, ok := s.problem.Key.LineAt(n)
	if !ok {
		return model.LineID{}, fmt.Errorf("%w: row %d", ErrUnknownLine, n)
	}
	return model.LineID{Entry: entry, Account: account, Side: side}, nil
}

func copyEntries(in map[model.LineID]string) map[model.LineID]string {
	out := make(map[model.LineID]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
