package model

// EconomyState is the mutable per-run state: a day counter and the four token
// pools. Mutated only by the day transition, one day at a time.
type EconomyState struct {
	Day         int     `json:"day"`
	Circulating float64 `json:"circulating"`
	Staked      float64 `json:"staked"`
	Burned      float64 `json:"burned"`
	Treasury    float64 `json:"treasury"`
}

// DayRecord is an immutable snapshot of one simulated day, appended to the
// run's chronological history.
type DayRecord struct {
	Day            int     `json:"day"`
	DailyTasks     int     `json:"daily_tasks"`
	DailyRevenue   float64 `json:"daily_revenue"`
	Circulating    float64 `json:"circulating"`
	Staked         float64 `json:"staked"`
	Burned         float64 `json:"burned"`
	Treasury       float64 `json:"treasury"`
	BurnRateActual float64 `json:"burn_rate_actual"`
	StakingRatio   float64 `json:"staking_ratio"`
	PriceIndex     float64 `json:"price_index"`
}
