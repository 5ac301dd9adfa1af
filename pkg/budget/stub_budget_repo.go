package budget

import (
	"context"
	"sort"

	"github.com/kharcha/kharcha/internal/utils"
)

// StubBudgetRepo is an in-memory BudgetRepo for service tests.
type StubBudgetRepo struct {
	entries         map[int]Entry
	entryOwners     map[int]int
	categoryBudgets map[int]map[int]CategoryBudget
	nextId          int
}

func NewStubBudgetRepo() *StubBudgetRepo {
	return &StubBudgetRepo{
		entries:         map[int]Entry{},
		entryOwners:     map[int]int{},
		categoryBudgets: map[int]map[int]CategoryBudget{},
		nextId:          1,
	}
}

func (s *StubBudgetRepo) Store(_ context.Context, userId int, entry Entry) (int, error) {
	entry.ID = s.nextId
	s.nextId++
	s.entries[entry.ID] = entry
	s.entryOwners[entry.ID] = userId
	return entry.ID, nil
}

func (s *StubBudgetRepo) Get(_ context.Context, userId int, id int) (Entry, error) {
	entry, ok := s.entries[id]
	if !ok || s.entryOwners[id] != userId {
		return Entry{}, ErrEntryNotFound
	}
	return entry, nil
}

func (s *StubBudgetRepo) GetAll(_ context.Context, userId int) ([]Entry, error) {
	var result []Entry
	for id, entry := range s.entries {
		if s.entryOwners[id] == userId {
			result = append(result, entry)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (s *StubBudgetRepo) GetLatestByType(_ context.Context, userId int, entryType EntryType) (Entry, error) {
	latest := Entry{}
	for id, entry := range s.entries {
		if s.entryOwners[id] == userId && entry.Type == entryType && entry.ID > latest.ID {
			latest = entry
		}
	}
	if latest.ID == 0 {
		return Entry{}, ErrEntryNotFound
	}
	return latest, nil
}

func (s *StubBudgetRepo) UpdateAmount(_ context.Context, userId int, id int, amount utils.Money) (bool, error) {
	entry, ok := s.entries[id]
	if !ok || s.entryOwners[id] != userId {
		return false, nil
	}
	entry.Amount = amount
	s.entries[id] = entry
	return true, nil
}

func (s *StubBudgetRepo) Delete(_ context.Context, userId int, id int) (bool, error) {
	if _, ok := s.entries[id]; !ok || s.entryOwners[id] != userId {
		return false, nil
	}
	delete(s.entries, id)
	delete(s.entryOwners, id)
	return true, nil
}

func (s *StubBudgetRepo) SetCategoryBudget(_ context.Context, userId int, categoryBudget CategoryBudget) error {
	if s.categoryBudgets[userId] == nil {
		s.categoryBudgets[userId] = map[int]CategoryBudget{}
	}
	s.categoryBudgets[userId][categoryBudget.CategoryID] = categoryBudget
	return nil
}

func (s *StubBudgetRepo) GetCategoryBudgets(_ context.Context, userId int) ([]CategoryBudget, error) {
	var result []CategoryBudget
	for _, categoryBudget := range s.categoryBudgets[userId] {
		result = append(result, categoryBudget)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CategoryID < result[j].CategoryID })
	return result, nil
}
