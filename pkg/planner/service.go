package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kharcha/kharcha/internal/event_bus"
	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/user"
	log "github.com/sirupsen/logrus"
)

var (
	ErrInvalidPlanKind = errors.New("unknown plan kind")
	ErrInvalidMonth    = errors.New("month must be between 1 and 12")
)

type Service interface {
	// SetMonthlyPlan upserts one grid cell. When a weekly breakdown is given,
	// the total is derived as the sum of the four components and any total in
	// the input is ignored.
	SetMonthlyPlan(ctx context.Context, plan MonthlyPlan) (MonthlyPlan, error)
	// GetYearlyPlan always returns 12 entries, months without a stored plan
	// zero-filled.
	GetYearlyPlan(ctx context.Context, kind PlanKind, year int) ([]MonthlyPlan, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) SetMonthlyPlan(ctx context.Context, plan MonthlyPlan) (MonthlyPlan, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return MonthlyPlan{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if !IsValidPlanKind(plan.Kind) {
		return MonthlyPlan{}, ErrInvalidPlanKind
	}
	if plan.Month < time.January || plan.Month > time.December {
		return MonthlyPlan{}, ErrInvalidMonth
	}
	if plan.Week1 < 0 || plan.Week2 < 0 || plan.Week3 < 0 || plan.Week4 < 0 || plan.Total < 0 {
		return MonthlyPlan{}, utils.ErrInvalidAmount
	}

	if plan.HasWeeklyBreakdown() {
		plan.Total = plan.Week1 + plan.Week2 + plan.Week3 + plan.Week4
	}

	if err := s.repo.Upsert(ctx, userId, plan); err != nil {
		return MonthlyPlan{}, err
	}

	if s.eventBus != nil {
		err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.MonthlyPlanSetEvent, event_bus.MonthlyPlanChanged{
			Kind:  string(plan.Kind),
			Year:  plan.Year,
			Month: plan.Month,
			Total: plan.Total,
		}))
		if err != nil {
			log.Errorf("failed to publish %s event: %v", event_bus.MonthlyPlanSetEvent, err)
		}
	}
	return plan, nil
}

func (s *ServiceImpl) GetYearlyPlan(ctx context.Context, kind PlanKind, year int) ([]MonthlyPlan, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if !IsValidPlanKind(kind) {
		return nil, ErrInvalidPlanKind
	}

	stored, err := s.repo.GetYear(ctx, userId, kind, year)
	if err != nil {
		return nil, err
	}

	byMonth := map[time.Month]MonthlyPlan{}
	for _, plan := range stored {
		byMonth[plan.Month] = plan
	}

	plans := make([]MonthlyPlan, 0, 12)
	for month := time.January; month <= time.December; month++ {
		if plan, ok := byMonth[month]; ok {
			plans = append(plans, plan)
			continue
		}
		plans = append(plans, MonthlyPlan{Kind: kind, Year: year, Month: month})
	}
	return plans, nil
}
