package budget

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

var ErrInvalidEntryType = errors.New("unknown budget entry type")

type BudgetService interface {
	// Set appends a new entry for the type, making it the active one.
	Set(ctx context.Context, entryType EntryType, amount utils.Money) (Entry, error)
	// Current returns the active entry per type. Types without any entry are
	// absent from the result.
	Current(ctx context.Context) (map[EntryType]Entry, error)
	// History lists all entries ever set, newest first.
	History(ctx context.Context) ([]Entry, error)
	Update(ctx context.Context, id int, amount utils.Money) (Entry, error)
	Delete(ctx context.Context, id int) error

	SetCategoryBudget(ctx context.Context, categoryBudget CategoryBudget) error
	GetCategoryBudgets(ctx context.Context) ([]CategoryBudget, error)
}

type BudgetServiceImpl struct {
	repo       BudgetRepo
	categories CategoryReader
	eventBus   *event_bus.EventBus
	clock      utils.Clock
}

// CategoryReader validates targets of category budgets and resolves their
// names for events.
type CategoryReader interface {
	Get(ctx context.Context, id int) (category.Category, error)
}

func NewBudgetService(repo BudgetRepo, categories CategoryReader, eventBus *event_bus.EventBus, clock utils.Clock) *BudgetServiceImpl {
	return &BudgetServiceImpl{repo: repo, categories: categories, eventBus: eventBus, clock: clock}
}

func (s *BudgetServiceImpl) Set(ctx context.Context, entryType EntryType, amount utils.Money) (Entry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if !IsValidEntryType(entryType) {
		return Entry{}, ErrInvalidEntryType
	}
	if amount <= 0 {
		return Entry{}, utils.ErrInvalidAmount
	}

	entry := Entry{
		Type:      entryType,
		Amount:    amount,
		CreatedAt: s.clock.Now(),
	}
	id, err := s.repo.Store(ctx, userId, entry)
	if err != nil {
		return Entry{}, err
	}
	entry.ID = id

	s.publish(ctx, event_bus.BudgetSetEvent, entry)
	return entry, nil
}

func (s *BudgetServiceImpl) Current(ctx context.Context) (map[EntryType]Entry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	current := map[EntryType]Entry{}
	for _, entryType := range []EntryType{EntryTypeWeekly, EntryTypeMonthly, EntryTypeYearly} {
		entry, err := s.repo.GetLatestByType(ctx, userId, entryType)
		if errors.Is(err, ErrEntryNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		current[entryType] = entry
	}
	return current, nil
}

func (s *BudgetServiceImpl) History(ctx context.Context) ([]Entry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *BudgetServiceImpl) Update(ctx context.Context, id int, amount utils.Money) (Entry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if amount <= 0 {
		return Entry{}, utils.ErrInvalidAmount
	}

	updated, err := s.repo.UpdateAmount(ctx, userId, id, amount)
	if err != nil {
		return Entry{}, err
	}
	if !updated {
		log.Warnf("budget entry not updated, probably because it does not exist (%d) or the user (%d) is not the owner", id, userId)
		return Entry{}, ErrEntryNotFound
	}

	entry, err := s.repo.Get(ctx, userId, id)
	if err != nil {
		return Entry{}, err
	}
	s.publish(ctx, event_bus.BudgetUpdatedEvent, entry)
	return entry, nil
}

func (s *BudgetServiceImpl) Delete(ctx context.Context, id int) error {
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
		return ErrEntryNotFound
	}

	s.publish(ctx, event_bus.BudgetDeletedEvent, existing)
	return nil
}

func (s *BudgetServiceImpl) SetCategoryBudget(ctx context.Context, categoryBudget CategoryBudget) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	if categoryBudget.Amount <= 0 {
		return utils.ErrInvalidAmount
	}

	cat, err := s.categories.Get(ctx, categoryBudget.CategoryID)
	if err != nil {
		return err
	}

	if err := s.repo.SetCategoryBudget(ctx, userId, categoryBudget); err != nil {
		return err
	}

	if s.eventBus != nil {
		err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.CategoryBudgetSetEvent, event_bus.CategoryBudgetChanged{
			CategoryName: cat.Name,
			Amount:       categoryBudget.Amount,
		}))
		if err != nil {
			log.Errorf("failed to publish %s event: %v", event_bus.CategoryBudgetSetEvent, err)
		}
	}
	return nil
}

func (s *BudgetServiceImpl) GetCategoryBudgets(ctx context.Context) ([]CategoryBudget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetCategoryBudgets(ctx, userId)
}

func (s *BudgetServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, entry Entry) {
	if s.eventBus == nil {
		return
	}
	err := s.eventBus.Publish(event_bus.NewEvent(ctx, eventType, event_bus.BudgetChanged{
		Id:     entry.ID,
		Type:   string(entry.Type),
		Amount: entry.Amount,
	}))
	if err != nil {
		log.Errorf("failed to publish %s event: %v", eventType, err)
	}
}
