package notifier

import (
	"fmt"
	"math"
	"strings"
	"time"

	"TokenSentinel/internal/model"
	"TokenSentinel/internal/scenario"
)

// FormatRunReport formats a single scenario run for display.
func FormatRunReport(name string, p model.SimParams, s model.RunSummary) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>Simulation: %s</b> | %s\n\n", name, time.Now().Format("2006-01-02")))

	b.WriteString(fmt.Sprintf("Total supply: %.0f\n", p.TotalSupply))
	b.WriteString(fmt.Sprintf("Horizon: %d days\n\n", s.Days))

	b.WriteString("🪙 <b>Final pools:</b>\n")
	b.WriteString(fmt.Sprintf("  Circulating: %.0f (%.2f%%)\n", s.Circulating, s.CirculatingPct))
	b.WriteString(fmt.Sprintf("  Staked: %.0f (%.2f%%)\n", s.Staked, s.StakedPct))
	b.WriteString(fmt.Sprintf("  Burned: %.0f (%.2f%%)\n", s.Burned, s.BurnedPct))
	b.WriteString(fmt.Sprintf("  Treasury: %.0f (%.2f%%)\n\n", s.Treasury, s.TreasuryPct))

	b.WriteString("📈 <b>Economic metrics:</b>\n")
	b.WriteString(fmt.Sprintf("  Total revenue: %.0f\n", s.TotalRevenue))
	b.WriteString(fmt.Sprintf("  Final daily revenue: %.0f\n", s.FinalDailyRevenue))
	b.WriteString(fmt.Sprintf("  Staking ratio: %.2f%%\n", s.StakingRatio*100))
	b.WriteString(fmt.Sprintf("  Burn rate: %.2f%%\n", s.BurnRateActual*100))
	b.WriteString(fmt.Sprintf("  Price index: %.2f (100 = baseline)\n\n", s.PriceIndex))

	b.WriteString(fmt.Sprintf("🔥 Yearly burn: %.0f/year (%.2f%% of supply)\n", s.YearlyBurn, s.YearlyBurn/p.TotalSupply*100))
	if math.IsInf(s.YearsToHalf, 1) {
		b.WriteString("⏳ Years to half supply: never at this rate\n")
	} else {
		b.WriteString(fmt.Sprintf("⏳ Years to half supply: %.1f\n", s.YearsToHalf))
	}

	return b.String()
}

// FormatComparison formats the scenario comparison table.
func FormatComparison(results []scenario.Result) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔬 <b>Scenario comparison</b> | %s\n\n<pre>", time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("%-15s %9s %9s %11s\n", "Scenario", "Burned", "Staked", "Price Index"))
	b.WriteString(strings.Repeat("-", 48) + "\n")
	for _, r := range results {
		b.WriteString(fmt.Sprintf("%-15s %8.2f%% %8.2f%% %11.2f\n",
			r.Name, r.Summary.BurnedPct, r.Summary.StakedPct, r.Summary.PriceIndex))
	}
	b.WriteString("</pre>")
	return b.String()
}

// FormatMonteCarloReport formats the aggregated batch statistics.
func FormatMonteCarloReport(r *model.MonteCarloReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🎲 <b>Monte Carlo analysis</b> | %d runs", r.Runs))
	if r.Failed > 0 {
		b.WriteString(fmt.Sprintf(" (%d failed, excluded)", r.Failed))
	}
	b.WriteString("\n\n")

	writeStats := func(title, unit string, s model.MetricStats) {
		b.WriteString(fmt.Sprintf("<b>%s:</b>\n", title))
		b.WriteString(fmt.Sprintf("  Mean: %.2f%s | Median: %.2f%s | Std: %.2f%s\n", s.Mean, unit, s.Median, unit, s.Std, unit))
		b.WriteString(fmt.Sprintf("  5th-95th percentile: %.2f%s - %.2f%s\n\n", s.P5, unit, s.P95, unit))
	}
	writeStats("Burned tokens (% of supply)", "%", r.BurnRatePct)
	writeStats("Staking ratio", "%", r.StakingRatioPct)
	writeStats("Price index", "", r.PriceIndex)

	b.WriteString("🎯 <b>Risk assessment:</b>\n")
	b.WriteString(fmt.Sprintf("  Low price (&lt;80): %d (%.1f%%)\n", r.LowPrice, pct(r.LowPrice, r.Runs)))
	b.WriteString(fmt.Sprintf("  High burn (&gt;15%%): %d (%.1f%%)\n", r.HighBurn, pct(r.HighBurn, r.Runs)))
	b.WriteString(fmt.Sprintf("  Low staking (&lt;15%%): %d (%.1f%%)\n\n", r.LowStaking, pct(r.LowStaking, r.Runs)))
	b.WriteString(fmt.Sprintf("  Risk score: %.1f%% — %s\n", r.RiskScore, riskVerdict(r.Risk)))

	return b.String()
}

// FormatRiskAlert formats the short high-risk alert message.
func FormatRiskAlert(r *model.MonteCarloReport) string {
	return fmt.Sprintf("🚨 <b>High tokenomics risk</b>\n\nRisk score: %.1f%% over %d runs\nLow price: %d | High burn: %d | Low staking: %d\nConsider adjusting parameters.",
		r.RiskScore, r.Runs, r.LowPrice, r.HighBurn, r.LowStaking)
}

func pct(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

func riskVerdict(level model.RiskLevel) string {
	switch level {
	case model.RiskLow:
		return "✅ Low risk, tokenomics appear robust"
	case model.RiskMedium:
		return "⚠️ Medium risk, monitor closely"
	default:
		return "❌ High risk"
	}
}
