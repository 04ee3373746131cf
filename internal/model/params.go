package model

import "math"

// shareSumEpsilon is the tolerance for the revenue-share sum check.
const shareSumEpsilon = 1e-9

// SimParams holds all tunable rates, shares, and horizons for one simulation
// run. Construct via DefaultParams and validate with Validate before use;
// treat as immutable afterwards.
type SimParams struct {
	TotalSupply                float64 `yaml:"total_supply" json:"total_supply"`
	InitialCirculatingFraction float64 `yaml:"initial_circulating_fraction" json:"initial_circulating_fraction"`
	InitialStakedFraction      float64 `yaml:"initial_staked_fraction" json:"initial_staked_fraction"`

	BurnRate    float64 `yaml:"burn_rate" json:"burn_rate"`
	BurnEnabled bool    `yaml:"burn_enabled" json:"burn_enabled"`

	StakingAPR       float64 `yaml:"staking_apr" json:"staking_apr"`
	AvgMultiplier    float64 `yaml:"avg_multiplier" json:"avg_multiplier"`
	AutoCompoundRate float64 `yaml:"auto_compound_rate" json:"auto_compound_rate"`

	DailyTasks int     `yaml:"daily_tasks" json:"daily_tasks"`
	AvgTaskFee float64 `yaml:"avg_task_fee" json:"avg_task_fee"`

	AgentShare    float64 `yaml:"agent_share" json:"agent_share"`
	NodeShare     float64 `yaml:"node_share" json:"node_share"`
	ProtocolShare float64 `yaml:"protocol_share" json:"protocol_share"`
	BurnShare     float64 `yaml:"burn_share" json:"burn_share"`

	TaskGrowthRate float64 `yaml:"task_growth_rate" json:"task_growth_rate"`

	Days int `yaml:"days" json:"days"`
}

// DefaultParams returns the base-case parameter set: 10B total supply, 30%
// circulating, 20% staked, 5% transfer burn, 20% APR with a 1.5x blended lock
// multiplier, 1000 tasks/day at 10 tokens each, 5% monthly task growth, over
// a two-year horizon.
func DefaultParams() SimParams {
	return SimParams{
		TotalSupply:                10_000_000_000,
		InitialCirculatingFraction: 0.30,
		InitialStakedFraction:      0.20,
		BurnRate:                   0.05,
		BurnEnabled:                true,
		StakingAPR:                 0.20,
		AvgMultiplier:              1.5,
		AutoCompoundRate:           0.50,
		DailyTasks:                 1000,
		AvgTaskFee:                 10,
		AgentShare:                 0.70,
		NodeShare:                  0.20,
		ProtocolShare:              0.05,
		BurnShare:                  0.05,
		TaskGrowthRate:             0.05,
		Days:                       365 * 2,
	}
}

// Validate checks every field against its documented range. It returns a
// *ConfigError naming the first offending field.
func (p SimParams) Validate() error {
	if p.TotalSupply <= 0 {
		return &ConfigError{Field: "total_supply", Reason: "must be positive"}
	}
	fractions := []struct {
		name  string
		value float64
	}{
		{"initial_circulating_fraction", p.InitialCirculatingFraction},
		{"initial_staked_fraction", p.InitialStakedFraction},
		{"burn_rate", p.BurnRate},
		{"auto_compound_rate", p.AutoCompoundRate},
		{"agent_share", p.AgentShare},
		{"node_share", p.NodeShare},
		{"protocol_share", p.ProtocolShare},
		{"burn_share", p.BurnShare},
	}
	for _, f := range fractions {
		if f.value < 0 || f.value > 1 {
			return &ConfigError{Field: f.name, Reason: "must be in [0, 1]"}
		}
	}
	if p.StakingAPR < 0 {
		return &ConfigError{Field: "staking_apr", Reason: "must be >= 0"}
	}
	if p.AvgMultiplier < 1 {
		return &ConfigError{Field: "avg_multiplier", Reason: "must be >= 1"}
	}
	if p.DailyTasks <= 0 {
		return &ConfigError{Field: "daily_tasks", Reason: "must be positive"}
	}
	if p.AvgTaskFee <= 0 {
		return &ConfigError{Field: "avg_task_fee", Reason: "must be positive"}
	}
	if p.Days <= 0 {
		return &ConfigError{Field: "days", Reason: "must be positive"}
	}
	sum := p.AgentShare + p.NodeShare + p.ProtocolShare + p.BurnShare
	if math.Abs(sum-1) > shareSumEpsilon {
		return &ConfigError{Field: "agent_share+node_share+protocol_share+burn_share", Reason: "must sum to 1"}
	}
	return nil
}
