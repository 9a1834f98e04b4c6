package progress

import (
	"path/filepath"
	"testing"
	"time"

	"LedgerDrill/internal/model"
	"LedgerDrill/internal/scenario"

	"github.com/sirupsen/logrus/hooks/test"
)

var (
	pass = model.GradeResult{Correct: 4, Total: 4}
	fail = model.GradeResult{Correct: 3, Incorrect: 1, Total: 4}
)

func TestRecord_StreaksAndMastery(t *testing.T) {
	log, hook := test.NewNullLogger()
	m, err := NewManager("", 3, log)
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

	m.Record(model.KindPayroll, pass, now)
	m.Record(model.KindPayroll, pass, now)
	kp := m.Record(model.KindPayroll, fail, now)
	if kp.CurrentStreak != 0 || kp.BestStreak != 2 || kp.Mastered {
		t.Fatalf("unexpected tally after a miss: %+v", kp)
	}

	for i := 0; i < 3; i++ {
		kp = m.Record(model.KindPayroll, pass, now)
	}
	if !kp.Mastered || kp.BestStreak != 3 || kp.Attempts != 6 || kp.FullyCorrect != 5 {
		t.Fatalf("expected mastery after 3 in a row: %+v", kp)
	}
	if len(hook.Entries) != 1 || hook.LastEntry().Message != "scenario mastered" {
		t.Errorf("expected one mastery log entry, got %d", len(hook.Entries))
	}

	kp = m.Record(model.KindPayroll, fail, now)
	if !kp.Mastered {
		t.Error("mastery should survive a later miss")
	}
	if !kp.LastAttemptAt.Equal(now) {
		t.Errorf("expected last attempt %v, got %v", now, kp.LastAttemptAt)
	}
}

func TestManager_PersistsAcrossRestarts(t *testing.T) {
	log, _ := test.NewNullLogger()
	path := filepath.Join(t.TempDir(), "progress.json")

	m, err := NewManager(path, 2, log)
	if err != nil {
		t.Fatal(err)
	}
	m.Record(model.KindBondPremium, pass, time.Now())
	m.Record(model.KindBondPremium, pass, time.Now())

	reopened, err := NewManager(path, 2, log)
	if err != nil {
		t.Fatal(err)
	}
	kp := reopened.Get(model.KindBondPremium)
	if kp.Attempts != 2 || !kp.Mastered {
		t.Errorf("expected persisted mastery, got %+v", kp)
	}
	if reopened.MasteredCount() != 1 {
		t.Errorf("expected 1 mastered kind, got %d", reopened.MasteredCount())
	}
}

func TestNextKind_SkipsMastered(t *testing.T) {
	log, _ := test.NewNullLogger()
	m, _ := NewManager("", 1, log)
	for _, k := range model.AllKinds {
		if k != model.KindNotePayable {
			m.Record(k, pass, time.Now())
		}
	}
	rng := scenario.NewRand("next")
	for i := 0; i < 20; i++ {
		if k := m.NextKind(rng); k != model.KindNotePayable {
			t.Fatalf("expected the only open kind, got %s", k)
		}
	}

	m.Record(model.KindNotePayable, pass, time.Now())
	seen := map[model.ScenarioKind]bool{}
	for i := 0; i < 200; i++ {
		seen[m.NextKind(rng)] = true
	}
	if len(seen) != len(model.AllKinds) {
		t.Errorf("expected every kind once all are mastered, saw %d", len(seen))
	}
}

func TestGetState_ReturnsCopy(t *testing.T) {
	log, _ := test.NewNullLogger()
	m, _ := NewManager("", 0, log)
	m.Record(model.KindDepreciation, pass, time.Now())

	st := m.GetState()
	if st.MasteryStreak != DefaultMasteryStreak {
		t.Errorf("expected default mastery streak, got %d", st.MasteryStreak)
	}
	st.Kinds[model.KindDepreciation] = model.KindProgress{}
	if m.Get(model.KindDepreciation).Attempts != 1 {
		t.Error("GetState exposed internal state")
	}

	m.Reset()
	if m.Get(model.KindDepreciation).Attempts != 0 {
		t.Error("Reset kept tallies")
	}
}
