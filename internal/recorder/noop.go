package recorder

import "TokenSentinel/internal/model"

// NoopRecorder is used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(_ string, _ model.RunSummary, _ []model.DayRecord) error {
	return nil
}
func (n *NoopRecorder) RecordMonteCarlo(_ *model.MonteCarloReport) error { return nil }
func (n *NoopRecorder) Close() error                                     { return nil }
