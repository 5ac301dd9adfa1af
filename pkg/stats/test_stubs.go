package stats

import (
	"context"
	"time"

	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/budget"
)

// stubExpense is one seeded record for the StubStatsRepo.
type stubExpense struct {
	categoryName string
	date         time.Time
	amount       utils.Money
}

type stubIncome struct {
	source string
	date   time.Time
	amount utils.Money
}

// StubStatsRepo computes the aggregates in memory over seeded records.
type StubStatsRepo struct {
	expenses []stubExpense
	incomes  []stubIncome
}

func NewStubStatsRepo() *StubStatsRepo {
	return &StubStatsRepo{}
}

func (s *StubStatsRepo) AddExpense(categoryName string, date time.Time, amount utils.Money) {
	s.expenses = append(s.expenses, stubExpense{categoryName, date, amount})
}

func (s *StubStatsRepo) AddIncome(source string, date time.Time, amount utils.Money) {
	s.incomes = append(s.incomes, stubIncome{source, date, amount})
}

func (s *StubStatsRepo) ExpenseTotalsByCategory(_ context.Context, _ int, from, to time.Time) ([]CategoryTotal, error) {
	byCategory := map[string]utils.Money{}
	var order []string
	for _, expense := range s.expenses {
		if inRange(expense.date, from, to) {
			if _, seen := byCategory[expense.categoryName]; !seen {
				order = append(order, expense.categoryName)
			}
			byCategory[expense.categoryName] += expense.amount
		}
	}
	totals := make([]CategoryTotal, 0, len(order))
	for _, name := range order {
		totals = append(totals, CategoryTotal{CategoryName: name, Total: byCategory[name]})
	}
	return totals, nil
}

func (s *StubStatsRepo) ExpenseTotal(_ context.Context, _ int, from, to time.Time) (utils.Money, error) {
	var total utils.Money
	for _, expense := range s.expenses {
		if inRange(expense.date, from, to) {
			total += expense.amount
		}
	}
	return total, nil
}

func (s *StubStatsRepo) ExpenseTotalsByDay(_ context.Context, _ int, from, to time.Time) ([]DailyTotal, error) {
	byDay := map[time.Time]utils.Money{}
	for _, expense := range s.expenses {
		if inRange(expense.date, from, to) {
			byDay[expense.date] += expense.amount
		}
	}
	var totals []DailyTotal
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if total, ok := byDay[day]; ok {
			totals = append(totals, DailyTotal{Date: day, Total: total})
		}
	}
	return totals, nil
}

func (s *StubStatsRepo) IncomeTotalsBySource(_ context.Context, _ int, from, to time.Time) ([]SourceTotal, error) {
	bySource := map[string]utils.Money{}
	var order []string
	for _, income := range s.incomes {
		if inRange(income.date, from, to) {
			if _, seen := bySource[income.source]; !seen {
				order = append(order, income.source)
			}
			bySource[income.source] += income.amount
		}
	}
	totals := make([]SourceTotal, 0, len(order))
	for _, source := range order {
		totals = append(totals, SourceTotal{Source: source, Total: bySource[source]})
	}
	return totals, nil
}

func inRange(day, from, to time.Time) bool {
	return !day.Before(from) && !day.After(to)
}

// StubBudgetReader serves fixed active entries.
type StubBudgetReader struct {
	Entries map[budget.EntryType]budget.Entry
}

func (s *StubBudgetReader) Current(_ context.Context) (map[budget.EntryType]budget.Entry, error) {
	if s.Entries == nil {
		return map[budget.EntryType]budget.Entry{}, nil
	}
	return s.Entries, nil
}
