// Package export writes simulation results to JSON files for downstream
// tooling (charting, notebooks).
package export

import (
	"encoding/json"
	"fmt"
	"os"

	"TokenSentinel/internal/model"
)

type runResult struct {
	Params  model.SimParams   `json:"params"`
	Summary model.RunSummary  `json:"summary"`
	History []model.DayRecord `json:"history"`
}

// WriteRunResult writes a single run (parameters, closing summary, full daily
// history) to path.
func WriteRunResult(path string, p model.SimParams, summary model.RunSummary, history []model.DayRecord) error {
	return write(path, runResult{Params: p, Summary: summary, History: history})
}

type monteCarloResult struct {
	BaseParams model.SimParams         `json:"base_params"`
	Report     *model.MonteCarloReport `json:"statistics"`
	Records    []model.RunRecord       `json:"runs,omitempty"`
}

// WriteMonteCarloResult writes the aggregated batch statistics, optionally
// with the per-run records, to path.
func WriteMonteCarloResult(path string, base model.SimParams, report *model.MonteCarloReport, records []model.RunRecord) error {
	return write(path, monteCarloResult{BaseParams: base, Report: report, Records: records})
}

func write(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
