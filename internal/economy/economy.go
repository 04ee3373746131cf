package economy

import (
	"context"
	"math"

	"TokenSentinel/internal/model"
)

// Economy drives the day transition over a full horizon, accumulating the
// chronological history of daily records.
type Economy struct {
	Params  model.SimParams
	State   model.EconomyState
	History []model.DayRecord
}

// New creates an Economy with a freshly initialized state.
func New(p model.SimParams) *Economy {
	e := &Economy{Params: p}
	e.Reset()
	return e
}

// Reset re-initializes the state from the parameter set and clears history.
func (e *Economy) Reset() {
	e.State = NewState(e.Params)
	e.History = nil
}

// NewState builds the initial economy state: circulating and staked pools
// sized by their initial fractions, burned and treasury empty.
func NewState(p model.SimParams) model.EconomyState {
	return model.EconomyState{
		Circulating: p.TotalSupply * p.InitialCirculatingFraction,
		Staked:      p.TotalSupply * p.InitialStakedFraction,
	}
}

// Run executes the configured number of days sequentially. The recurrence is
// strictly sequential; ctx is checked between days so an in-flight run can be
// aborted without publishing a partial result.
func (e *Economy) Run(ctx context.Context) error {
	return e.RunDays(ctx, e.Params.Days)
}

// RunDays executes days transitions. A failing transition aborts the run with
// the day's error; the state reflects the last completed day.
func (e *Economy) RunDays(ctx context.Context, days int) error {
	for i := 0; i < days; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, err := AdvanceDay(&e.State, e.Params)
		if err != nil {
			return err
		}
		e.History = append(e.History, rec)
	}
	return nil
}

// Summary produces the closing summary for the run so far.
func (e *Economy) Summary() model.RunSummary {
	p := e.Params
	s := model.RunSummary{
		Days:        e.State.Day,
		Circulating: e.State.Circulating,
		Staked:      e.State.Staked,
		Burned:      e.State.Burned,
		Treasury:    e.State.Treasury,

		CirculatingPct: e.State.Circulating / p.TotalSupply * 100,
		StakedPct:      e.State.Staked / p.TotalSupply * 100,
		BurnedPct:      e.State.Burned / p.TotalSupply * 100,
		TreasuryPct:    e.State.Treasury / p.TotalSupply * 100,

		YearsToHalf: math.Inf(1),
	}

	for _, r := range e.History {
		s.TotalRevenue += r.DailyRevenue
	}
	if n := len(e.History); n > 0 {
		last := e.History[n-1]
		s.FinalDailyRevenue = last.DailyRevenue
		s.StakingRatio = last.StakingRatio
		s.BurnRateActual = last.BurnRateActual
		s.PriceIndex = last.PriceIndex
	} else {
		s.StakingRatio = e.State.Staked / p.TotalSupply
		s.BurnRateActual = e.State.Burned / p.TotalSupply
	}

	if e.State.Day > 0 {
		s.YearlyBurn = e.State.Burned / (float64(e.State.Day) / 365)
		// Log1p(0) = 0 when nothing burns; YearsToHalf stays +Inf.
		if growth := math.Log1p(s.YearlyBurn / p.TotalSupply); growth > 0 {
			s.YearsToHalf = math.Ln2 / growth
		}
	}
	return s
}
