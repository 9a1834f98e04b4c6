package scheduler

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type fakeSender struct {
	sent []string
	err  error
}

func (f *fakeSender) SendWithRetry(_ context.Context, text string, _ int) error {
	f.sent = append(f.sent, text)
	return f.err
}

type fakeCoach struct {
	lines []string
	since time.Time
}

func (f *fakeCoach) Handle(line string) string {
	f.lines = append(f.lines, line)
	if strings.TrimSpace(line) == "" {
		return ""
	}
	return "reply to " + line
}

func (f *fakeCoach) Drill() string { return "drill" }

func (f *fakeCoach) WeeklySummary(since time.Time) string {
	f.since = since
	return "summary"
}

func newScheduler(sender *fakeSender, coach *fakeCoach) (*Scheduler, *test.Hook) {
	log, hook := test.NewNullLogger()
	s := NewScheduler(context.Background(), coach, sender, log)
	s.now = func() time.Time { return time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC) }
	return s, hook
}

func TestRegisterAll(t *testing.T) {
	tests := []struct {
		name    string
		drill   string
		summary string
		jobs    int
		wantErr bool
	}{
		{"both", "0 0 8 * * *", "0 0 18 * * 0", 2, false},
		{"drill only", "0 0 8 * * *", "", 1, false},
		{"none", "", "", 0, false},
		{"bad drill", "every morning", "", 0, true},
		{"bad summary", "0 0 8 * * *", "0 0 18 * *", 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newScheduler(&fakeSender{}, &fakeCoach{})
			err := s.RegisterAll(tt.drill, tt.summary)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RegisterAll() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got := len(s.Cron.Entries()); got != tt.jobs {
				t.Errorf("expected %d jobs, got %d", tt.jobs, got)
			}
		})
	}
}

func TestTasksSend(t *testing.T) {
	sender := &fakeSender{}
	coach := &fakeCoach{}
	s, _ := newScheduler(sender, coach)

	s.RunDrillNow()
	s.summaryTask()

	if len(sender.sent) != 2 || sender.sent[0] != "drill" || sender.sent[1] != "summary" {
		t.Fatalf("unexpected messages %q", sender.sent)
	}
	want := time.Date(2024, 3, 3, 18, 0, 0, 0, time.UTC)
	if !coach.since.Equal(want) {
		t.Errorf("expected summary since %v, got %v", want, coach.since)
	}
}

func TestSendFailureIsLogged(t *testing.T) {
	sender := &fakeSender{err: errors.New("telegram down")}
	s, hook := newScheduler(sender, &fakeCoach{})

	s.RunDrillNow()

	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.ErrorLevel {
		t.Fatalf("expected an error log, got %+v", entry)
	}
	if entry.Message != "telegram down" || entry.Data["context"] != "send notification" {
		t.Errorf("unexpected log entry %q %v", entry.Message, entry.Data)
	}
}

func TestHandleCommand(t *testing.T) {
	coach := &fakeCoach{}
	s, _ := newScheduler(&fakeSender{}, coach)

	if got := s.HandleCommand("/check"); got != "reply to /check" {
		t.Errorf("unexpected reply %q", got)
	}
	if got := s.HandleCommand(""); got != "reply to help" {
		t.Errorf("expected help for an empty message, got %q", got)
	}
}
