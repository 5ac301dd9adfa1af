package planner

import (
	"context"
	"sort"
	"time"
)

type planKey struct {
	kind  PlanKind
	year  int
	month time.Month
}

// StubRepository is an in-memory Repository for service tests.
type StubRepository struct {
	plans map[int]map[planKey]MonthlyPlan
}

func NewStubRepository() *StubRepository {
	return &StubRepository{plans: map[int]map[planKey]MonthlyPlan{}}
}

func (s *StubRepository) Upsert(_ context.Context, userId int, plan MonthlyPlan) error {
	if s.plans[userId] == nil {
		s.plans[userId] = map[planKey]MonthlyPlan{}
	}
	s.plans[userId][planKey{plan.Kind, plan.Year, plan.Month}] = plan
	return nil
}

func (s *StubRepository) GetYear(_ context.Context, userId int, kind PlanKind, year int) ([]MonthlyPlan, error) {
	var result []MonthlyPlan
	for key, plan := range s.plans[userId] {
		if key.kind == kind && key.year == year {
			result = append(result, plan)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month < result[j].Month })
	return result, nil
}
