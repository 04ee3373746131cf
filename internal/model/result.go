package model

import (
	"encoding/json"
	"math"
)

// RunSummary captures the closing state and headline metrics of a single
// scenario run.
type RunSummary struct {
	Days int `json:"days"`

	Circulating float64 `json:"circulating"`
	Staked      float64 `json:"staked"`
	Burned      float64 `json:"burned"`
	Treasury    float64 `json:"treasury"`

	// Pool sizes as percentages of total supply.
	CirculatingPct float64 `json:"circulating_pct"`
	StakedPct      float64 `json:"staked_pct"`
	BurnedPct      float64 `json:"burned_pct"`
	TreasuryPct    float64 `json:"treasury_pct"`

	TotalRevenue      float64 `json:"total_revenue"`
	FinalDailyRevenue float64 `json:"final_daily_revenue"`

	StakingRatio   float64 `json:"staking_ratio"`
	BurnRateActual float64 `json:"burn_rate_actual"`
	PriceIndex     float64 `json:"price_index"`

	// YearlyBurn annualizes the cumulative burn; YearsToHalf is +Inf when the
	// burn rate cannot halve the supply.
	YearlyBurn  float64 `json:"yearly_burn"`
	YearsToHalf float64 `json:"years_to_half"`
}

// MarshalJSON encodes an infinite YearsToHalf as null, since JSON has no
// representation for +Inf.
func (s RunSummary) MarshalJSON() ([]byte, error) {
	type alias RunSummary
	out := struct {
		alias
		YearsToHalf *float64 `json:"years_to_half"`
	}{alias: alias(s)}
	if !math.IsInf(s.YearsToHalf, 0) {
		out.YearsToHalf = &s.YearsToHalf
	}
	return json.Marshal(out)
}

// SampledParams is the subset of randomized fields recorded per Monte Carlo run.
type SampledParams struct {
	BurnRate              float64 `json:"burn_rate"`
	StakingAPR            float64 `json:"staking_apr"`
	InitialStakedFraction float64 `json:"initial_staked_fraction"`
	DailyTasks            int     `json:"daily_tasks"`
	AvgTaskFee            float64 `json:"avg_task_fee"`
	TaskGrowthRate        float64 `json:"task_growth_rate"`
}

// FinalMetrics is the subset of closing metrics recorded per Monte Carlo run.
type FinalMetrics struct {
	Circulating    float64 `json:"circulating"`
	Staked         float64 `json:"staked"`
	Burned         float64 `json:"burned"`
	Treasury       float64 `json:"treasury"`
	PriceIndex     float64 `json:"price_index"`
	StakingRatio   float64 `json:"staking_ratio"`
	BurnRateActual float64 `json:"burn_rate_actual"`
}

// RunRecord is one completed Monte Carlo run: the parameters it was sampled
// with and the final metrics it produced.
type RunRecord struct {
	Params SampledParams `json:"params"`
	Final  FinalMetrics  `json:"final"`
}

// MetricStats holds descriptive statistics for one tracked metric.
type MetricStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	P5     float64 `json:"p5"`
	P95    float64 `json:"p95"`
}

// RiskLevel classifies a Monte Carlo batch.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// MonteCarloReport aggregates a full Monte Carlo batch: per-metric statistics,
// adverse-scenario counts, and the overall risk verdict. Statistics cover
// completed runs only; Failed reports how many runs were excluded.
type MonteCarloReport struct {
	Runs   int `json:"runs"`
	Failed int `json:"failed"`

	BurnRatePct     MetricStats `json:"burn_rate"`
	StakingRatioPct MetricStats `json:"staking_ratio"`
	PriceIndex      MetricStats `json:"price_index"`

	LowPrice   int `json:"low_price_scenarios"`
	HighBurn   int `json:"high_burn_scenarios"`
	LowStaking int `json:"low_staking_scenarios"`

	RiskScore float64   `json:"risk_score"`
	Risk      RiskLevel `json:"risk_level"`
}
