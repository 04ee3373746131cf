package recorder

import "TokenSentinel/internal/model"

// Recorder persists simulation output for later analysis.
type Recorder interface {
	RecordRun(scenario string, summary model.RunSummary, history []model.DayRecord) error
	RecordMonteCarlo(report *model.MonteCarloReport) error
	Close() error
}
