package scheduler

import (
	"context"
	"fmt"
	"time"

	"LedgerDrill/internal/config"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const sendRetries = 3

// Sender delivers a message to the learner.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Coach is the part of the drill coach the scheduler drives.
type Coach interface {
	Handle(line string) string
	Drill() string
	WeeklySummary(since time.Time) string
}

// Scheduler pushes the daily drill and weekly summary on cron and answers chat commands.
type Scheduler struct {
	Cron   *cron.Cron
	Coach  Coach
	Sender Sender
	Ctx    context.Context
	log    logrus.FieldLogger
	now    func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, coach Coach, sender Sender, log logrus.FieldLogger) *Scheduler {
	return &Scheduler{
		Cron:   cron.New(cron.WithSeconds()),
		Coach:  coach,
		Sender: sender,
		Ctx:    ctx,
		log:    log,
		now:    time.Now,
	}
}

// RegisterAll registers the drill and summary tasks. An empty spec skips that task.
func (s *Scheduler) RegisterAll(drillCron, summaryCron string) error {
	if drillCron != "" {
		if _, err := s.Cron.AddFunc(drillCron, s.drillTask); err != nil {
			return fmt.Errorf("register drill task: %w", err)
		}
	}
	if summaryCron != "" {
		if _, err := s.Cron.AddFunc(summaryCron, s.summaryTask); err != nil {
			return fmt.Errorf("register summary task: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.WithField("jobs", len(s.Cron.Entries())).Info("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// RunDrillNow executes the drill task immediately.
func (s *Scheduler) RunDrillNow() {
	s.drillTask()
}

func (s *Scheduler) drillTask() {
	s.log.Info("running drill task")
	s.trySend(s.Coach.Drill())
}

func (s *Scheduler) summaryTask() {
	s.log.Info("running weekly summary")
	s.trySend(s.Coach.WeeklySummary(s.now().AddDate(0, 0, -7)))
}

// HandleCommand processes a chat command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	reply := s.Coach.Handle(command)
	if reply == "" {
		return s.Coach.Handle("help")
	}
	return reply
}

func (s *Scheduler) trySend(text string) {
	if err := s.Sender.SendWithRetry(s.Ctx, text, sendRetries); err != nil {
		config.LogError(s.log, "scheduler", "trySend", "send notification", nil, err)
	}
}
