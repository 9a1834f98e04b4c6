package recorder

import "LedgerDrill/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

var _ Recorder = (*NoopRecorder)(nil)

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordProblem(_ *model.Problem) error              { return nil }
func (n *NoopRecorder) RecordAttempt(_ *Attempt) error                    { return nil }
func (n *NoopRecorder) ListAttempts(_ int) ([]model.AttemptRecord, error) { return nil, nil }
func (n *NoopRecorder) Close() error                                      { return nil }
