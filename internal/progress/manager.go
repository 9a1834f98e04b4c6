// Package progress tracks per-scenario practice results and mastery.
package progress

import (
	"math/rand"
	"sync"
	"time"

	"LedgerDrill/internal/model"

	"github.com/sirupsen/logrus"
)

// DefaultMasteryStreak is used when the configured streak is not positive.
const DefaultMasteryStreak = 3

// Manager records checked attempts with concurrency safety.
// An empty file path keeps progress in memory only.
type Manager struct {
	mu       sync.Mutex
	state    *model.ProgressState
	filePath string
	log      logrus.FieldLogger
}

// NewManager creates a Manager, loading existing progress from disk.
func NewManager(filePath string, masteryStreak int, log logrus.FieldLogger) (*Manager, error) {
	state := &model.ProgressState{Kinds: map[model.ScenarioKind]model.KindProgress{}}
	if filePath != "" {
		loaded, err := LoadState(filePath)
		if err != nil {
			return nil, err
		}
		state = loaded
	}

	if masteryStreak <= 0 {
		masteryStreak = DefaultMasteryStreak
	}
	state.MasteryStreak = masteryStreak

	m := &Manager{state: state, filePath: filePath, log: log}
	if err := m.save(); err != nil {
		return nil, err
	}
	return m, nil
}

// Record folds one checked attempt into the kind's tally and returns the new tally.
// A fully correct attempt extends the streak; anything else resets it.
// Mastery, once reached, is kept.
func (m *Manager) Record(kind model.ScenarioKind, res model.GradeResult, at time.Time) model.KindProgress {
	m.mu.Lock()
	defer m.mu.Unlock()

	kp := m.state.Kinds[kind]
	kp.Attempts++
	kp.LastAttemptAt = at
	if res.AllCorrect() {
		kp.FullyCorrect++
		kp.CurrentStreak++
		if kp.CurrentStreak > kp.BestStreak {
			kp.BestStreak = kp.CurrentStreak
		}
	} else {
		kp.CurrentStreak = 0
	}
	if kp.CurrentStreak >= m.state.MasteryStreak && !kp.Mastered {
		kp.Mastered = true
		m.log.WithField("kind", kind).Info("scenario mastered")
	}
	m.state.Kinds[kind] = kp

	if err := m.save(); err != nil {
		m.log.WithError(err).Error("failed to save progress state")
	}
	return kp
}

// Get returns the tally for one kind.
func (m *Manager) Get(kind model.ScenarioKind) model.KindProgress {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Kinds[kind]
}

// GetState returns a copy of the full progress state.
func (m *Manager) GetState() model.ProgressState {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := *m.state
	out.Kinds = make(map[model.ScenarioKind]model.KindProgress, len(m.state.Kinds))
	for k, v := range m.state.Kinds {
		out.Kinds[k] = v
	}
	return out
}

// MasteredCount returns how many kinds are mastered.
func (m *Manager) MasteredCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, k := range model.AllKinds {
		if m.state.Kinds[k].Mastered {
			n++
		}
	}
	return n
}

// NextKind picks a random kind that is not yet mastered, or any kind once all are.
func (m *Manager) NextKind(rng *rand.Rand) model.ScenarioKind {
	m.mu.Lock()
	defer m.mu.Unlock()

	var open []model.ScenarioKind
	for _, k := range model.AllKinds {
		if !m.state.Kinds[k].Mastered {
			open = append(open, k)
		}
	}
	if len(open) == 0 {
		open = model.AllKinds
	}
	return open[rng.Intn(len(open))]
}

// Reset clears every tally.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.Kinds = map[model.ScenarioKind]model.KindProgress{}
	if err := m.save(); err != nil {
		m.log.WithError(err).Error("failed to save progress state after reset")
	}
}

func (m *Manager) save() error {
	if m.filePath == "" {
		return nil
	}
	return SaveState(m.filePath, m.state)
}
