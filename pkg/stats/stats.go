package stats

import (
	"time"

	"github.com/kharcha/kharcha/internal/utils"
)

type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

func IsValidPeriod(period Period) bool {
	switch period {
	case PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// CategoryTotal is one row of the monthly summary: confirmed spending per
// category.
type CategoryTotal struct {
	CategoryName string
	Total        utils.Money
}

type MonthlySummary struct {
	Year       int
	Month      time.Month
	Categories []CategoryTotal
	Total      utils.Money
}

// ExpenseSummary holds confirmed spending in the current week (Monday start),
// calendar month, and calendar year.
type ExpenseSummary struct {
	Week  utils.Money
	Month utils.Money
	Year  utils.Money
}

type DailyTotal struct {
	Date  time.Time
	Total utils.Money
}

type SourceTotal struct {
	Source string
	Total  utils.Money
}

// BalanceSheet sets income by source against expenses by category for one
// period.
type BalanceSheet struct {
	Period       Period
	StartDate    time.Time
	EndDate      time.Time
	IncomeRows   []SourceTotal
	ExpenseRows  []CategoryTotal
	TotalIncome  utils.Money
	TotalExpense utils.Money
	NetBalance   utils.Money
}

// PeriodStatus pairs what was spent in a period with the active budget entry
// for it. A zero Budget means no limit is set.
type PeriodStatus struct {
	Spent  utils.Money
	Budget utils.Money
}

// FinancialReport is the dashboard health report: per-period spending against
// the active budget entries, an overall health verdict, and one narrative
// sentence per period.
type FinancialReport struct {
	Weekly     PeriodStatus
	Monthly    PeriodStatus
	Yearly     PeriodStatus
	Health     HealthStatus
	Narratives map[Period]string
}
