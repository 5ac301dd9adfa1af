package stats

import (
	"context"
	"testing"
	"time"

	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/budget"
	"github.com/kharcha/kharcha/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	return user.WithUser(context.Background(), user.User{Id: 123, Username: "test_user"})
}

func day(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return parsed
}

// 2025-03-12 is a Wednesday; its week runs 2025-03-10 through 2025-03-16.
var testNow = time.Date(2025, 3, 12, 14, 0, 0, 0, time.UTC)

func newTestService(repo *StubStatsRepo, budgets BudgetReader) *StatsServiceImpl {
	if budgets == nil {
		budgets = &StubBudgetReader{}
	}
	return NewStatsService(repo, budgets, &utils.MockClock{FixedNow: testNow})
}

func TestStatsService_GetMonthlySummary(t *testing.T) {
	t.Run("should total the current month per category", func(t *testing.T) {
		// given
		repo := NewStubStatsRepo()
		repo.AddExpense("Food", day("2025-03-05"), 45000)
		repo.AddExpense("Food", day("2025-03-11"), 30000)
		repo.AddExpense("Transport", day("2025-03-08"), 20000)
		repo.AddExpense("Food", day("2025-02-28"), 99900) // previous month
		service := newTestService(repo, nil)

		// when
		summary, err := service.GetMonthlySummary(testContext())

		// then
		require.NoError(t, err)
		assert.Equal(t, 2025, summary.Year)
		assert.Equal(t, time.March, summary.Month)
		require.Len(t, summary.Categories, 2)
		assert.Equal(t, utils.Money(75000), summary.Categories[0].Total)
		assert.Equal(t, utils.Money(95000), summary.Total)
	})
}

func TestStatsService_GetExpenseSummary(t *testing.T) {
	t.Run("should total week, month, and year independently", func(t *testing.T) {
		// given
		repo := NewStubStatsRepo()
		repo.AddExpense("Food", day("2025-03-10"), 10000)  // this week
		repo.AddExpense("Food", day("2025-03-16"), 15000)  // this week (Sunday)
		repo.AddExpense("Food", day("2025-03-03"), 20000)  // this month, previous week
		repo.AddExpense("Food", day("2025-01-15"), 100000) // this year only
		repo.AddExpense("Food", day("2024-12-31"), 999900) // previous year
		service := newTestService(repo, nil)

		// when
		summary, err := service.GetExpenseSummary(testContext())

		// then
		require.NoError(t, err)
		assert.Equal(t, utils.Money(25000), summary.Week)
		assert.Equal(t, utils.Money(45000), summary.Month)
		assert.Equal(t, utils.Money(145000), summary.Year)
	})
}

func TestStatsService_GetDailyTrend(t *testing.T) {
	t.Run("should zero-fill days without spending", func(t *testing.T) {
		// given
		repo := NewStubStatsRepo()
		repo.AddExpense("Food", day("2025-03-12"), 45000)
		repo.AddExpense("Food", day("2025-03-10"), 20000)
		service := newTestService(repo, nil)

		// when
		trend, err := service.GetDailyTrend(testContext(), 7)

		// then
		require.NoError(t, err)
		require.Len(t, trend, 7)
		assert.Equal(t, day("2025-03-06"), trend[0].Date)
		assert.Zero(t, trend[0].Total)
		assert.Equal(t, utils.Money(20000), trend[4].Total)
		assert.Equal(t, utils.Money(45000), trend[6].Total)
	})
}

func TestStatsService_GetBalanceSheet(t *testing.T) {
	t.Run("should net income against expenses for the period", func(t *testing.T) {
		// given
		repo := NewStubStatsRepo()
		repo.AddIncome("Salary", day("2025-03-01"), 5000000)
		repo.AddIncome("Freelance", day("2025-03-15"), 500000)
		repo.AddExpense("Food", day("2025-03-05"), 45000)
		repo.AddExpense("Transport", day("2025-03-08"), 20000)
		service := newTestService(repo, nil)

		// when
		sheet, err := service.GetBalanceSheet(testContext(), PeriodMonthly)

		// then
		require.NoError(t, err)
		assert.Equal(t, utils.Money(5500000), sheet.TotalIncome)
		assert.Equal(t, utils.Money(65000), sheet.TotalExpense)
		assert.Equal(t, utils.Money(5435000), sheet.NetBalance)
		assert.Len(t, sheet.IncomeRows, 2)
		assert.Len(t, sheet.ExpenseRows, 2)
	})

	t.Run("should reject an unknown period", func(t *testing.T) {
		service := newTestService(NewStubStatsRepo(), nil)

		_, err := service.GetBalanceSheet(testContext(), "daily")

		require.ErrorIs(t, err, ErrInvalidPeriod)
	})
}

func TestStatsService_GetFinancialReport(t *testing.T) {
	t.Run("should flag mixed budget compliance as needs attention", func(t *testing.T) {
		// given
		repo := NewStubStatsRepo()
		repo.AddExpense("Food", day("2025-03-10"), 50000)  // week: 500 spent
		repo.AddExpense("Food", day("2025-03-03"), 450000) // month adds up to 5000
		budgets := &StubBudgetReader{Entries: map[budget.EntryType]budget.Entry{
			budget.EntryTypeWeekly:  {ID: 1, Type: budget.EntryTypeWeekly, Amount: 60000},
			budget.EntryTypeMonthly: {ID: 2, Type: budget.EntryTypeMonthly, Amount: 400000},
		}}
		service := newTestService(repo, budgets)

		// when
		report, err := service.GetFinancialReport(testContext())

		// then
		require.NoError(t, err)
		assert.Equal(t, HealthNeedsAttention, report.Health)
		assert.Equal(t, utils.Money(50000), report.Weekly.Spent)
		assert.Equal(t, utils.Money(500000), report.Monthly.Spent)
		assert.Contains(t, report.Narratives[PeriodWeekly], "on track")
		assert.Contains(t, report.Narratives[PeriodMonthly], "over budget")
		assert.Contains(t, report.Narratives[PeriodYearly], "No budget limit")
	})

	t.Run("should be excellent with no budgets set", func(t *testing.T) {
		repo := NewStubStatsRepo()
		repo.AddExpense("Food", day("2025-03-10"), 50000)
		service := newTestService(repo, nil)

		report, err := service.GetFinancialReport(testContext())

		require.NoError(t, err)
		assert.Equal(t, HealthExcellent, report.Health)
	})
}
