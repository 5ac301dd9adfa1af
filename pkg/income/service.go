package income

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kharcha/kharcha/internal/event_bus"
	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/user"
	log "github.com/sirupsen/logrus"
)

var ErrEmptySource = errors.New("income source cannot be empty")

type Service interface {
	Create(ctx context.Context, income Income) (Income, error)
	Update(ctx context.Context, income Income) (Income, error)
	Delete(ctx context.Context, id int) error
	GetAll(ctx context.Context) ([]Income, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
	clock    utils.Clock
}

func NewService(repo Repository, eventBus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus, clock: clock}
}

func (s *ServiceImpl) Create(ctx context.Context, income Income) (Income, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Income{}, fmt.Errorf("failed to get current user: %w", err)
	}
	income.Source = strings.TrimSpace(income.Source)
	if income.Source == "" {
		return Income{}, ErrEmptySource
	}
	if income.Amount <= 0 {
		return Income{}, utils.ErrInvalidAmount
	}
	if income.Date.IsZero() {
		income.Date = s.clock.Now()
	}
	income.CreatedAt = s.clock.Now()

	id, err := s.repo.Store(ctx, userId, income)
	if err != nil {
		return Income{}, err
	}
	income.ID = id

	s.publish(ctx, event_bus.IncomeAddedEvent, income)
	return income, nil
}

func (s *ServiceImpl) Update(ctx context.Context, income Income) (Income, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Income{}, fmt.Errorf("failed to get current user: %w", err)
	}
	income.Source = strings.TrimSpace(income.Source)
	if income.Source == "" {
		return Income{}, ErrEmptySource
	}
	if income.Amount <= 0 {
		return Income{}, utils.ErrInvalidAmount
	}

	existing, err := s.repo.Get(ctx, userId, income.ID)
	if err != nil {
		return Income{}, err
	}
	income.CreatedAt = existing.CreatedAt

	updated, err := s.repo.Update(ctx, userId, income)
	if err != nil {
		return Income{}, err
	}
	if !updated {
		log.Warnf("income not updated, probably because it does not exist (%d) or the user (%d) is not the owner", income.ID, userId)
		return Income{}, ErrIncomeNotFound
	}

	s.publish(ctx, event_bus.IncomeUpdatedEvent, income)
	return income, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}

	existing, err := s.repo.Get(ctx, userId, id)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrIncomeNotFound
	}

	s.publish(ctx, event_bus.IncomeDeletedEvent, existing)
	return nil
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Income, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, income Income) {
	if s.eventBus == nil {
		return
	}
	err := s.eventBus.Publish(event_bus.NewEvent(ctx, eventType, event_bus.IncomeChanged{
		Id:     income.ID,
		Source: income.Source,
		Amount: income.Amount,
	}))
	if err != nil {
		log.Errorf("failed to publish %s event: %v", eventType, err)
	}
}
