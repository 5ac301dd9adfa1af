package activity

import "context"

// StubRepository is an in-memory Repository for service tests.
type StubRepository struct {
	entries map[int][]Entry
	nextId  int
}

func NewStubRepository() *StubRepository {
	return &StubRepository{entries: map[int][]Entry{}, nextId: 1}
}

func (s *StubRepository) Append(_ context.Context, userId int, entry Entry) (int, error) {
	entry.ID = s.nextId
	s.nextId++
	s.entries[userId] = append(s.entries[userId], entry)
	return entry.ID, nil
}

func (s *StubRepository) GetAll(_ context.Context, userId int, limit int) ([]Entry, error) {
	stored := s.entries[userId]
	result := make([]Entry, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		result = append(result, stored[i])
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}
