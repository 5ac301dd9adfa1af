package expense

import (
	"context"
	"errors"
	"fmt"

	"github.com/kharcha/kharcha/internal/event_bus"
	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/category"
	"github.com/kharcha/kharcha/pkg/user"
	log "github.com/sirupsen/logrus"
)

var (
	ErrInvalidSource      = errors.New("unknown payment source")
	ErrDescriptionTooLong = fmt.Errorf("description too long (max %d chars)", MaxScheduledDescriptionLen)
	ErrNotScheduled       = errors.New("expense is not scheduled")
)

// recentLimit is how many confirmed records the dashboard's recent list shows.
const recentLimit = 5

type Service interface {
	// Create persists a new expense. A record dated strictly after today is
	// stored as scheduled; same-day and past dates confirm immediately.
	Create(ctx context.Context, expense Expense) (Expense, error)
	// Update replaces the editable fields of a record. The status is kept even
	// when the new date crosses the today boundary.
	Update(ctx context.Context, expense Expense) (Expense, error)
	// Confirm moves a scheduled record to the ledger: status becomes confirmed,
	// the date is reset to today, and a non-zero amount revises the stored one.
	Confirm(ctx context.Context, id int, amount utils.Money) (Expense, error)
	Delete(ctx context.Context, id int) error
	All(ctx context.Context) ([]Expense, error)
	Recent(ctx context.Context) ([]Expense, error)
	Pending(ctx context.Context) ([]Expense, error)
	Due(ctx context.Context) ([]Expense, error)
}

type CategoryReader interface {
	Get(ctx context.Context, id int) (category.Category, error)
}

type ServiceImpl struct {
	repo       Repository
	categories CategoryReader
	eventBus   *event_bus.EventBus
	clock      utils.Clock
}

func NewService(repo Repository, categories CategoryReader, eventBus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, categories: categories, eventBus: eventBus, clock: clock}
}

func (s *ServiceImpl) Create(ctx context.Context, expense Expense) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if expense.Amount <= 0 {
		return Expense{}, utils.ErrInvalidAmount
	}
	if !IsValidSource(expense.Source) {
		return Expense{}, ErrInvalidSource
	}

	cat, err := s.categories.Get(ctx, expense.CategoryID)
	if err != nil {
		return Expense{}, err
	}

	today := DateOnly(s.clock.Now())
	if expense.Date.IsZero() {
		expense.Date = today
	} else {
		expense.Date = DateOnly(expense.Date)
	}

	// A same-day or past date never schedules; the record confirms right away.
	if expense.Date.After(today) {
		if len(expense.Description) > MaxScheduledDescriptionLen {
			return Expense{}, ErrDescriptionTooLong
		}
		expense.Status = StatusScheduled
	} else {
		expense.Status = StatusConfirmed
	}
	expense.CreatedAt = s.clock.Now()

	id, err := s.repo.Store(ctx, userId, expense)
	if err != nil {
		return Expense{}, err
	}
	expense.ID = id

	s.publish(ctx, event_bus.ExpenseCreatedEvent, expense, cat.Name)
	return expense, nil
}

func (s *ServiceImpl) Update(ctx context.Context, expense Expense) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if expense.Amount <= 0 {
		return Expense{}, utils.ErrInvalidAmount
	}
	if !IsValidSource(expense.Source) {
		return Expense{}, ErrInvalidSource
	}

	existing, err := s.repo.Get(ctx, userId, expense.ID)
	if err != nil {
		return Expense{}, err
	}
	cat, err := s.categories.Get(ctx, expense.CategoryID)
	if err != nil {
		return Expense{}, err
	}

	// Field update only: editing the date across the today boundary does not
	// transition the lifecycle.
	expense.Status = existing.Status
	expense.CreatedAt = existing.CreatedAt
	if expense.Date.IsZero() {
		expense.Date = existing.Date
	} else {
		expense.Date = DateOnly(expense.Date)
	}

	updated, err := s.repo.Update(ctx, userId, expense)
	if err != nil {
		return Expense{}, err
	}
	if !updated {
		log.Warnf("expense not updated, probably because it does not exist (%d) or the user (%d) is not the owner", expense.ID, userId)
		return Expense{}, ErrExpenseNotFound
	}

	s.publish(ctx, event_bus.ExpenseUpdatedEvent, expense, cat.Name)
	return expense, nil
}

func (s *ServiceImpl) Confirm(ctx context.Context, id int, amount utils.Money) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to get current user: %w", err)
	}

	existing, err := s.repo.Get(ctx, userId, id)
	if err != nil {
		return Expense{}, err
	}
	if existing.Status != StatusScheduled {
		return Expense{}, ErrNotScheduled
	}
	if amount > 0 {
		existing.Amount = amount
	}
	existing.Status = StatusConfirmed
	existing.Date = DateOnly(s.clock.Now())

	updated, err := s.repo.Update(ctx, userId, existing)
	if err != nil {
		return Expense{}, err
	}
	if !updated {
		return Expense{}, ErrExpenseNotFound
	}

	categoryName := ""
	if cat, err := s.categories.Get(ctx, existing.CategoryID); err == nil {
		categoryName = cat.Name
	}
	s.publish(ctx, event_bus.ExpenseConfirmedEvent, existing, categoryName)
	return existing, nil
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
		log.Warnf("expense not deleted, probably because it does not exist (%d) or the user (%d) is not the owner", id, userId)
		return ErrExpenseNotFound
	}

	categoryName := ""
	if cat, err := s.categories.Get(ctx, existing.CategoryID); err == nil {
		categoryName = cat.Name
	}
	s.publish(ctx, event_bus.ExpenseDeletedEvent, existing, categoryName)
	return nil
}

func (s *ServiceImpl) All(ctx context.Context) ([]Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetByStatus(ctx, userId, StatusConfirmed, 0)
}

func (s *ServiceImpl) Recent(ctx context.Context) ([]Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetByStatus(ctx, userId, StatusConfirmed, recentLimit)
}

func (s *ServiceImpl) Pending(ctx context.Context) ([]Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetByStatus(ctx, userId, StatusScheduled, 0)
}

func (s *ServiceImpl) Due(ctx context.Context) ([]Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetDue(ctx, userId, DateOnly(s.clock.Now()))
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, expense Expense, categoryName string) {
	if s.eventBus == nil {
		return
	}
	err := s.eventBus.Publish(event_bus.NewEvent(ctx, eventType, event_bus.ExpenseChanged{
		Id:           expense.ID,
		Amount:       expense.Amount,
		CategoryName: categoryName,
		Date:         expense.Date,
		Scheduled:    expense.Status == StatusScheduled,
	}))
	if err != nil {
		log.Errorf("failed to publish %s event: %v", eventType, err)
	}
}
