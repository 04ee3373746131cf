package economy

import (
	"math"

	"TokenSentinel/internal/model"
)

const (
	// dailyUnstakeRate is the fixed fraction of the staked pool that exits
	// each day. Long lock durations keep this low.
	dailyUnstakeRate = 0.0003

	// transferFraction of agent/node rewards moves between wallets each day
	// and is subject to the transfer burn.
	transferFraction = 0.5

	// stakeFraction of agent/node rewards enters the staked pool each day.
	stakeFraction = 0.50

	// claimRestakeFraction of claimed staking rewards is immediately re-staked.
	claimRestakeFraction = 0.30

	daysPerMonth = 30
	daysPerYear  = 365
)

// AdvanceDay executes one day of economic activity against st. The sub-steps
// run in a fixed order; later steps read pool values mutated by earlier steps
// within the same day, so the order determines the numeric outcome.
//
// Revenue shares routed to the treasury and to the staking/claim flows are
// exogenous inflows paid by task requesters; they are not debited from the
// circulating pool first. Total accounted supply therefore grows over a run.
//
// On success the state is mutated and the day's record returned. If any pool
// would go negative, st is left untouched and a *model.InvariantError is
// returned.
func AdvanceDay(st *model.EconomyState, p model.SimParams) (model.DayRecord, error) {
	// Task volume compounds monthly.
	growth := math.Pow(1+p.TaskGrowthRate, float64(st.Day)/daysPerMonth)
	dailyTasks := int(float64(p.DailyTasks) * growth)
	dailyRevenue := float64(dailyTasks) * p.AvgTaskFee

	agentRewards := dailyRevenue * p.AgentShare
	nodeRewards := dailyRevenue * p.NodeShare
	protocolRevenue := dailyRevenue * p.ProtocolShare
	burnAmount := dailyRevenue * p.BurnShare

	circulating := st.Circulating
	staked := st.Staked
	burned := st.Burned
	treasury := st.Treasury

	// Fee burn: the burn share of revenue leaves circulation for good.
	burned += burnAmount
	circulating -= burnAmount

	// Treasury credit.
	treasury += protocolRevenue

	// Transfer burn: half the reward flow moves between wallets and pays the
	// transfer burn rate.
	if p.BurnEnabled {
		transferred := transferFraction * (agentRewards + nodeRewards)
		transferBurn := transferred * p.BurnRate
		burned += transferBurn
		circulating -= transferBurn
	}

	// Staking inflow from rewards.
	newlyStaked := stakeFraction * (agentRewards + nodeRewards)
	staked += newlyStaked
	circulating -= newlyStaked

	// Daily unstaking.
	unstaked := staked * dailyUnstakeRate
	staked -= unstaked
	circulating += unstaked

	// Yield accrues on the post-unstake staked pool.
	effectiveAPR := p.StakingAPR * p.AvgMultiplier
	dailyStakingRewards := staked * (effectiveAPR / daysPerYear)

	// Auto-compounding keeps part of the yield staked; a share of claimed
	// rewards is re-staked, the rest enters circulation.
	compounded := dailyStakingRewards * p.AutoCompoundRate
	staked += compounded
	claimed := dailyStakingRewards - compounded
	restaked := claimed * claimRestakeFraction
	staked += restaked
	circulating += claimed - restaked

	if err := checkPools(st.Day+1, circulating, staked, burned, treasury); err != nil {
		return model.DayRecord{}, err
	}

	stakingRatio := staked / p.TotalSupply
	burnRateActual := burned / p.TotalSupply
	priceIndex := 100 *
		(1 + stakingRatio*2) *
		(1 + burnRateActual*3) *
		(1 + float64(dailyTasks)/float64(p.DailyTasks)) /
		(1 + circulating/p.TotalSupply)

	st.Circulating = circulating
	st.Staked = staked
	st.Burned = burned
	st.Treasury = treasury
	st.Day++

	return model.DayRecord{
		Day:            st.Day,
		DailyTasks:     dailyTasks,
		DailyRevenue:   dailyRevenue,
		Circulating:    circulating,
		Staked:         staked,
		Burned:         burned,
		Treasury:       treasury,
		BurnRateActual: burnRateActual,
		StakingRatio:   stakingRatio,
		PriceIndex:     priceIndex,
	}, nil
}

func checkPools(day int, circulating, staked, burned, treasury float64) error {
	pools := []struct {
		name  string
		value float64
	}{
		{"circulating", circulating},
		{"staked", staked},
		{"burned", burned},
		{"treasury", treasury},
	}
	for _, pool := range pools {
		if pool.value < 0 {
			return &model.InvariantError{Day: day, Pool: pool.name, Value: pool.value}
		}
	}
	return nil
}
