package expense

import (
	"context"
	"sort"
	"time"
)

// StubRepository is an in-memory Repository for service tests.
type StubRepository struct {
	expenses map[int]Expense
	owners   map[int]int
	nextId   int
}

func NewStubRepository() *StubRepository {
	return &StubRepository{
		expenses: map[int]Expense{},
		owners:   map[int]int{},
		nextId:   1,
	}
}

func (s *StubRepository) Store(_ context.Context, userId int, expense Expense) (int, error) {
	expense.ID = s.nextId
	s.nextId++
	s.expenses[expense.ID] = expense
	s.owners[expense.ID] = userId
	return expense.ID, nil
}

func (s *StubRepository) Get(_ context.Context, userId int, id int) (Expense, error) {
	expense, ok := s.expenses[id]
	if !ok || s.owners[id] != userId {
		return Expense{}, ErrExpenseNotFound
	}
	return expense, nil
}

func (s *StubRepository) GetByStatus(_ context.Context, userId int, status Status, limit int) ([]Expense, error) {
	var result []Expense
	for id, expense := range s.expenses {
		if s.owners[id] == userId && expense.Status == status {
			result = append(result, expense)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if status == StatusScheduled {
			if !result[i].Date.Equal(result[j].Date) {
				return result[i].Date.Before(result[j].Date)
			}
			return result[i].ID < result[j].ID
		}
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].ID > result[j].ID
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *StubRepository) GetDue(_ context.Context, userId int, onOrBefore time.Time) ([]Expense, error) {
	var result []Expense
	for id, expense := range s.expenses {
		if s.owners[id] == userId && expense.Status == StatusScheduled && !expense.Date.After(onOrBefore) {
			result = append(result, expense)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *StubRepository) GetDueForAllUsers(_ context.Context, day time.Time) (map[int][]Expense, error) {
	result := map[int][]Expense{}
	for id, expense := range s.expenses {
		if expense.Status == StatusScheduled && expense.Date.Equal(day) {
			owner := s.owners[id]
			result[owner] = append(result[owner], expense)
		}
	}
	for _, expenses := range result {
		sort.Slice(expenses, func(i, j int) bool { return expenses[i].ID < expenses[j].ID })
	}
	return result, nil
}

func (s *StubRepository) Update(_ context.Context, userId int, expense Expense) (bool, error) {
	if _, ok := s.expenses[expense.ID]; !ok || s.owners[expense.ID] != userId {
		return false, nil
	}
	s.expenses[expense.ID] = expense
	return true, nil
}

func (s *StubRepository) Delete(_ context.Context, userId int, id int) (bool, error) {
	if _, ok := s.expenses[id]; !ok || s.owners[id] != userId {
		return false, nil
	}
	delete(s.expenses, id)
	delete(s.owners, id)
	return true, nil
}
