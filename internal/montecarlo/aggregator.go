package montecarlo

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"TokenSentinel/internal/economy"
	"TokenSentinel/internal/model"
)

// Adverse-outcome thresholds for the risk score.
const (
	lowPriceThreshold   = 80 // price index below baseline territory
	highBurnThreshold   = 15 // cumulative burn above 15% of supply
	lowStakingThreshold = 15 // staking ratio below 15% of supply
)

// Aggregator runs many independent simulations over randomly sampled
// parameters and condenses them into distribution statistics and a risk score.
type Aggregator struct {
	base    model.SimParams
	ranges  Ranges
	runs    int
	workers int
	seed    int64
}

// NewAggregator validates the base parameters and sampler ranges eagerly so a
// batch never partially executes on invalid input. workers <= 0 defaults to
// the number of CPUs.
func NewAggregator(base model.SimParams, ranges Ranges, runs, workers int, seed int64) (*Aggregator, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}
	if err := ranges.Validate(); err != nil {
		return nil, err
	}
	if runs <= 0 {
		return nil, &model.ConfigError{Field: "runs", Reason: "must be positive"}
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Aggregator{base: base, ranges: ranges, runs: runs, workers: workers, seed: seed}, nil
}

// Run executes the batch on a bounded worker pool. Each run owns its own
// sampler seeded from the batch seed and the run index, so results are
// reproducible regardless of scheduling. A run that violates a state
// invariant is excluded and counted; cancellation aborts the batch.
func (a *Aggregator) Run(ctx context.Context) (*model.MonteCarloReport, []model.RunRecord, error) {
	results := make([]*model.RunRecord, a.runs)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i := 0; i < a.runs; i++ {
		g.Go(func() error {
			rng := rand.New(rand.NewSource(a.seed + int64(i)))
			sampler := &Sampler{base: a.base, ranges: a.ranges, rng: rng}
			p := sampler.Sample()

			econ := economy.New(p)
			if err := econ.Run(gctx); err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				// Only a completed run is eligible for aggregation.
				log.Printf("[WARN] monte carlo run %d failed: %v", i, err)
				return nil
			}

			last := econ.History[len(econ.History)-1]
			results[i] = &model.RunRecord{
				Params: model.SampledParams{
					BurnRate:              p.BurnRate,
					StakingAPR:            p.StakingAPR,
					InitialStakedFraction: p.InitialStakedFraction,
					DailyTasks:            p.DailyTasks,
					AvgTaskFee:            p.AvgTaskFee,
					TaskGrowthRate:        p.TaskGrowthRate,
				},
				Final: model.FinalMetrics{
					Circulating:    econ.State.Circulating,
					Staked:         econ.State.Staked,
					Burned:         econ.State.Burned,
					Treasury:       econ.State.Treasury,
					PriceIndex:     last.PriceIndex,
					StakingRatio:   last.StakingRatio,
					BurnRateActual: last.BurnRateActual,
				},
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	records := make([]model.RunRecord, 0, a.runs)
	for _, r := range results {
		if r != nil {
			records = append(records, *r)
		}
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("all %d monte carlo runs failed", a.runs)
	}

	report := Aggregate(records)
	report.Failed = a.runs - len(records)
	return report, records, nil
}

// Aggregate computes distribution statistics and the risk verdict over a set
// of completed run records.
func Aggregate(records []model.RunRecord) *model.MonteCarloReport {
	n := len(records)
	burnPct := make([]float64, n)
	stakingPct := make([]float64, n)
	priceIndex := make([]float64, n)
	for i, r := range records {
		burnPct[i] = r.Final.BurnRateActual * 100
		stakingPct[i] = r.Final.StakingRatio * 100
		priceIndex[i] = r.Final.PriceIndex
	}

	report := &model.MonteCarloReport{
		Runs:            n,
		BurnRatePct:     Describe(burnPct),
		StakingRatioPct: Describe(stakingPct),
		PriceIndex:      Describe(priceIndex),
	}

	for i := range records {
		if priceIndex[i] < lowPriceThreshold {
			report.LowPrice++
		}
		if burnPct[i] > highBurnThreshold {
			report.HighBurn++
		}
		if stakingPct[i] < lowStakingThreshold {
			report.LowStaking++
		}
	}

	report.RiskScore = float64(report.LowPrice+report.HighBurn+report.LowStaking) / float64(3*n) * 100
	report.Risk = classifyRisk(report.RiskScore)
	return report
}

// classifyRisk maps a risk score to a band. Upper bounds are exclusive: a
// score of exactly 10.0 is Medium, 25.0 is High.
func classifyRisk(score float64) model.RiskLevel {
	switch {
	case score < 10:
		return model.RiskLow
	case score < 25:
		return model.RiskMedium
	default:
		return model.RiskHigh
	}
}
