package income

import (
	"context"
	"sort"
)

// StubRepository is an in-memory Repository for service tests.
type StubRepository struct {
	incomes map[int]Income
	owners  map[int]int
	nextId  int
}

func NewStubRepository() *StubRepository {
	return &StubRepository{
		incomes: map[int]Income{},
		owners:  map[int]int{},
		nextId:  1,
	}
}

func (s *StubRepository) Store(_ context.Context, userId int, income Income) (int, error) {
	income.ID = s.nextId
	s.nextId++
	s.incomes[income.ID] = income
	s.owners[income.ID] = userId
	return income.ID, nil
}

func (s *StubRepository) Get(_ context.Context, userId int, id int) (Income, error) {
	income, ok := s.incomes[id]
	if !ok || s.owners[id] != userId {
		return Income{}, ErrIncomeNotFound
	}
	return income, nil
}

func (s *StubRepository) GetAll(_ context.Context, userId int) ([]Income, error) {
	var result []Income
	for id, income := range s.incomes {
		if s.owners[id] == userId {
			result = append(result, income)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (s *StubRepository) Update(_ context.Context, userId int, income Income) (bool, error) {
	if _, ok := s.incomes[income.ID]; !ok || s.owners[income.ID] != userId {
		return false, nil
	}
	s.incomes[income.ID] = income
	return true, nil
}

func (s *StubRepository) Delete(_ context.Context, userId int, id int) (bool, error) {
	if _, ok := s.incomes[id]; !ok || s.owners[id] != userId {
		return false, nil
	}
	delete(s.incomes, id)
	delete(s.owners, id)
	return true, nil
}
