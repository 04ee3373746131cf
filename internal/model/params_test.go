package model

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultParamsValid(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("default params should validate: %v", err)
	}
}

func TestValidate_RejectsBadFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SimParams)
		field  string
	}{
		{"zero supply", func(p *SimParams) { p.TotalSupply = 0 }, "total_supply"},
		{"negative supply", func(p *SimParams) { p.TotalSupply = -1 }, "total_supply"},
		{"circulating fraction above one", func(p *SimParams) { p.InitialCirculatingFraction = 1.2 }, "initial_circulating_fraction"},
		{"negative staked fraction", func(p *SimParams) { p.InitialStakedFraction = -0.1 }, "initial_staked_fraction"},
		{"burn rate above one", func(p *SimParams) { p.BurnRate = 1.5 }, "burn_rate"},
		{"negative apr", func(p *SimParams) { p.StakingAPR = -0.01 }, "staking_apr"},
		{"multiplier below one", func(p *SimParams) { p.AvgMultiplier = 0.9 }, "avg_multiplier"},
		{"compound rate above one", func(p *SimParams) { p.AutoCompoundRate = 2 }, "auto_compound_rate"},
		{"zero tasks", func(p *SimParams) { p.DailyTasks = 0 }, "daily_tasks"},
		{"zero fee", func(p *SimParams) { p.AvgTaskFee = 0 }, "avg_task_fee"},
		{"zero days", func(p *SimParams) { p.Days = 0 }, "days"},
		{"shares do not sum to one", func(p *SimParams) { p.AgentShare = 0.60 }, "agent_share"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			err := p.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			var cfg *ConfigError
			if !errors.As(err, &cfg) {
				t.Fatalf("expected *ConfigError, got %T", err)
			}
			if !strings.Contains(cfg.Field, tt.field) {
				t.Errorf("error names field %q, want %q", cfg.Field, tt.field)
			}
		})
	}
}

func TestValidate_ShareSumTolerance(t *testing.T) {
	p := DefaultParams()
	// Accumulated float error within epsilon must pass.
	p.AgentShare = 0.7 + 1e-12
	if err := p.Validate(); err != nil {
		t.Errorf("share sum within epsilon rejected: %v", err)
	}
}
