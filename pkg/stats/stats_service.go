package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/budget"
	"github.com/kharcha/kharcha/pkg/user"
)

var ErrInvalidPeriod = errors.New("unknown period")

const defaultTrendDays = 30

type StatsService interface {
	// GetMonthlySummary breaks the current calendar month's confirmed spending
	// down by category.
	GetMonthlySummary(ctx context.Context) (MonthlySummary, error)
	// GetExpenseSummary totals confirmed spending in the current week, month,
	// and year.
	GetExpenseSummary(ctx context.Context) (ExpenseSummary, error)
	// GetDailyTrend lists per-day totals for the trailing days, zero-filled so
	// every day is present.
	GetDailyTrend(ctx context.Context, days int) ([]DailyTotal, error)
	GetBalanceSheet(ctx context.Context, period Period) (BalanceSheet, error)
	// GetFinancialReport composes spending against the active budget entries
	// into the health report.
	GetFinancialReport(ctx context.Context) (FinancialReport, error)
}

// BudgetReader exposes the active budget entry per period type.
type BudgetReader interface {
	Current(ctx context.Context) (map[budget.EntryType]budget.Entry, error)
}

type StatsServiceImpl struct {
	repo    StatsRepo
	budgets BudgetReader
	clock   utils.Clock
}

func NewStatsService(repo StatsRepo, budgets BudgetReader, clock utils.Clock) *StatsServiceImpl {
	return &StatsServiceImpl{repo: repo, budgets: budgets, clock: clock}
}

func (s *StatsServiceImpl) GetMonthlySummary(ctx context.Context) (MonthlySummary, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return MonthlySummary{}, fmt.Errorf("failed to get current user: %w", err)
	}

	now := s.clock.Now().UTC()
	from, to := monthRange(now)
	categories, err := s.repo.ExpenseTotalsByCategory(ctx, userId, from, to)
	if err != nil {
		return MonthlySummary{}, err
	}

	summary := MonthlySummary{
		Year:       now.Year(),
		Month:      now.Month(),
		Categories: categories,
	}
	for _, category := range categories {
		summary.Total += category.Total
	}
	return summary, nil
}

func (s *StatsServiceImpl) GetExpenseSummary(ctx context.Context) (ExpenseSummary, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return ExpenseSummary{}, fmt.Errorf("failed to get current user: %w", err)
	}

	now := s.clock.Now().UTC()
	var summary ExpenseSummary

	weekFrom, weekTo := weekRange(now)
	if summary.Week, err = s.repo.ExpenseTotal(ctx, userId, weekFrom, weekTo); err != nil {
		return ExpenseSummary{}, err
	}
	monthFrom, monthTo := monthRange(now)
	if summary.Month, err = s.repo.ExpenseTotal(ctx, userId, monthFrom, monthTo); err != nil {
		return ExpenseSummary{}, err
	}
	yearFrom, yearTo := yearRange(now)
	if summary.Year, err = s.repo.ExpenseTotal(ctx, userId, yearFrom, yearTo); err != nil {
		return ExpenseSummary{}, err
	}
	return summary, nil
}

func (s *StatsServiceImpl) GetDailyTrend(ctx context.Context, days int) ([]DailyTotal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if days <= 0 {
		days = defaultTrendDays
	}

	to := dateOnly(s.clock.Now().UTC())
	from := to.AddDate(0, 0, -(days - 1))
	stored, err := s.repo.ExpenseTotalsByDay(ctx, userId, from, to)
	if err != nil {
		return nil, err
	}

	byDay := map[time.Time]utils.Money{}
	for _, total := range stored {
		byDay[total.Date] = total.Total
	}

	trend := make([]DailyTotal, 0, days)
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		trend = append(trend, DailyTotal{Date: day, Total: byDay[day]})
	}
	return trend, nil
}

func (s *StatsServiceImpl) GetBalanceSheet(ctx context.Context, period Period) (BalanceSheet, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return BalanceSheet{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if !IsValidPeriod(period) {
		return BalanceSheet{}, ErrInvalidPeriod
	}

	from, to := periodRange(s.clock.Now().UTC(), period)
	incomeRows, err := s.repo.IncomeTotalsBySource(ctx, userId, from, to)
	if err != nil {
		return BalanceSheet{}, err
	}
	expenseRows, err := s.repo.ExpenseTotalsByCategory(ctx, userId, from, to)
	if err != nil {
		return BalanceSheet{}, err
	}

	sheet := BalanceSheet{
		Period:      period,
		StartDate:   from,
		EndDate:     to,
		IncomeRows:  incomeRows,
		ExpenseRows: expenseRows,
	}
	for _, row := range incomeRows {
		sheet.TotalIncome += row.Total
	}
	for _, row := range expenseRows {
		sheet.TotalExpense += row.Total
	}
	sheet.NetBalance = sheet.TotalIncome - sheet.TotalExpense
	return sheet, nil
}

func (s *StatsServiceImpl) GetFinancialReport(ctx context.Context) (FinancialReport, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return FinancialReport{}, fmt.Errorf("failed to get current user: %w", err)
	}

	current, err := s.budgets.Current(ctx)
	if err != nil {
		return FinancialReport{}, err
	}

	now := s.clock.Now().UTC()
	report := FinancialReport{Narratives: map[Period]string{}}

	for _, item := range []struct {
		period    Period
		entryType budget.EntryType
		status    *PeriodStatus
	}{
		{PeriodWeekly, budget.EntryTypeWeekly, &report.Weekly},
		{PeriodMonthly, budget.EntryTypeMonthly, &report.Monthly},
		{PeriodYearly, budget.EntryTypeYearly, &report.Yearly},
	} {
		from, to := periodRange(now, item.period)
		spent, err := s.repo.ExpenseTotal(ctx, userId, from, to)
		if err != nil {
			return FinancialReport{}, err
		}
		item.status.Spent = spent
		if entry, ok := current[item.entryType]; ok {
			item.status.Budget = entry.Amount
		}
		report.Narratives[item.period] = Narrative(item.period, *item.status)
	}

	report.Health = Health(report.Weekly, report.Monthly)
	return report, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// weekRange spans Monday through Sunday of the week containing t.
func weekRange(t time.Time) (time.Time, time.Time) {
	day := dateOnly(t)
	offset := (int(day.Weekday()) + 6) % 7
	from := day.AddDate(0, 0, -offset)
	return from, from.AddDate(0, 0, 6)
}

func monthRange(t time.Time) (time.Time, time.Time) {
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, -1)
}

func yearRange(t time.Time) (time.Time, time.Time) {
	from := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return from, time.Date(t.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
}

func periodRange(t time.Time, period Period) (time.Time, time.Time) {
	switch period {
	case PeriodWeekly:
		return weekRange(t)
	case PeriodYearly:
		return yearRange(t)
	default:
		return monthRange(t)
	}
}
