package stats

import (
	"fmt"

	"github.com/kharcha/kharcha/internal/utils"
)

type HealthStatus string

const (
	HealthExcellent      HealthStatus = "Excellent"
	HealthCritical       HealthStatus = "Critical"
	HealthNeedsAttention HealthStatus = "Needs Attention"
)

const currency = "NPR"

// PercentUsed returns budget utilization clamped at 100. The second return is
// false when no budget is set, in which case utilization is undefined.
func PercentUsed(spent, budget utils.Money) (float64, bool) {
	if budget <= 0 {
		return 0, false
	}
	percent := spent.Float64() / budget.Float64() * 100
	if percent > 100 {
		percent = 100
	}
	return percent, true
}

// BarColor maps utilization to the progress-bar color: >90% red, >70% yellow,
// otherwise blue.
func BarColor(percent float64) string {
	switch {
	case percent > 90:
		return "red"
	case percent > 70:
		return "yellow"
	default:
		return "blue"
	}
}

// Health derives the overall verdict from the weekly and monthly periods only.
// A period with no budget set counts as satisfied.
func Health(weekly, monthly PeriodStatus) HealthStatus {
	weeklyOk := weekly.Budget == 0 || weekly.Spent <= weekly.Budget
	monthlyOk := monthly.Budget == 0 || monthly.Spent <= monthly.Budget

	switch {
	case weeklyOk && monthlyOk:
		return HealthExcellent
	case !weeklyOk && !monthlyOk:
		return HealthCritical
	default:
		return HealthNeedsAttention
	}
}

// Narrative builds the one-sentence report for a period, naming the exact
// overage or remainder.
func Narrative(period Period, status PeriodStatus) string {
	if status.Budget == 0 {
		return fmt.Sprintf("For your %s expenses, you have spent %s %s so far. No budget limit has been set for this period.",
			period, currency, status.Spent)
	}

	percent := status.Spent.Float64() / status.Budget.Float64() * 100
	if status.Spent > status.Budget {
		overage := status.Spent - status.Budget
		return fmt.Sprintf("For your %s budget, you are currently over budget. You have spent %s %s against a limit of %s %s, exceeding it by %s %s. This is a utilization of %.1f%%.",
			period, currency, status.Spent, currency, status.Budget, currency, overage, percent)
	}

	remainder := status.Budget - status.Spent
	return fmt.Sprintf("For your %s budget, you are on track. You have spent %s %s out of %s %s, leaving you with %s %s (%.1f%%) remaining.",
		period, currency, status.Spent, currency, status.Budget, currency, remainder, 100-percent)
}
