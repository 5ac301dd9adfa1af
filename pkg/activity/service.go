package activity

import (
	"context"
	"fmt"

	"github.com/kharcha/kharcha/internal/event_bus"
	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/user"
	log "github.com/sirupsen/logrus"
)

// currency prefixes every amount in the details sentences.
const currency = "NPR"

const defaultLimit = 50

type Service interface {
	// GetLog lists the newest entries, most recent first.
	GetLog(ctx context.Context, limit int) ([]Entry, error)
}

type ServiceImpl struct {
	repo  Repository
	clock utils.Clock
}

// NewService wires the log to the event bus: every mutation event published by
// a feature package becomes one appended entry, attributed to the user carried
// in the event context.
func NewService(repo Repository, eventBus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	service := &ServiceImpl{repo: repo, clock: clock}

	subscribeExpense := func(eventType event_bus.EventType, action string, details func(event_bus.ExpenseChanged) string) {
		event_bus.SubscribeTyped[event_bus.ExpenseChanged](eventBus, eventType,
			func(e event_bus.EventT[event_bus.ExpenseChanged]) error {
				return service.record(e.Context(), action, details(e.Data))
			})
	}
	subscribeExpense(event_bus.ExpenseCreatedEvent, ActionExpenseAdded, func(data event_bus.ExpenseChanged) string {
		if data.Scheduled {
			return fmt.Sprintf("Scheduled expense of %s %s in %s", currency, data.Amount, data.CategoryName)
		}
		return fmt.Sprintf("Added expense of %s %s in %s", currency, data.Amount, data.CategoryName)
	})
	subscribeExpense(event_bus.ExpenseUpdatedEvent, ActionExpenseUpdated, func(data event_bus.ExpenseChanged) string {
		return fmt.Sprintf("Updated expense of %s %s in %s", currency, data.Amount, data.CategoryName)
	})
	subscribeExpense(event_bus.ExpenseConfirmedEvent, ActionExpenseConfirmed, func(data event_bus.ExpenseChanged) string {
		return fmt.Sprintf("Confirmed scheduled expense of %s %s in %s", currency, data.Amount, data.CategoryName)
	})
	subscribeExpense(event_bus.ExpenseDeletedEvent, ActionExpenseDeleted, func(data event_bus.ExpenseChanged) string {
		return fmt.Sprintf("Deleted expense of %s %s in %s", currency, data.Amount, data.CategoryName)
	})
	subscribeExpense(event_bus.ExpenseDueEvent, ActionExpenseDue, func(data event_bus.ExpenseChanged) string {
		return fmt.Sprintf("Scheduled expense of %s %s is due today", currency, data.Amount)
	})

	subscribeIncome := func(eventType event_bus.EventType, action string, verb string) {
		event_bus.SubscribeTyped[event_bus.IncomeChanged](eventBus, eventType,
			func(e event_bus.EventT[event_bus.IncomeChanged]) error {
				details := fmt.Sprintf("%s income of %s %s from %s", verb, currency, e.Data.Amount, e.Data.Source)
				return service.record(e.Context(), action, details)
			})
	}
	subscribeIncome(event_bus.IncomeAddedEvent, ActionIncomeAdded, "Added")
	subscribeIncome(event_bus.IncomeUpdatedEvent, ActionIncomeUpdated, "Updated")
	subscribeIncome(event_bus.IncomeDeletedEvent, ActionIncomeDeleted, "Deleted")

	subscribeBudget := func(eventType event_bus.EventType, action string, details func(event_bus.BudgetChanged) string) {
		event_bus.SubscribeTyped[event_bus.BudgetChanged](eventBus, eventType,
			func(e event_bus.EventT[event_bus.BudgetChanged]) error {
				return service.record(e.Context(), action, details(e.Data))
			})
	}
	subscribeBudget(event_bus.BudgetSetEvent, ActionBudgetSet, func(data event_bus.BudgetChanged) string {
		return fmt.Sprintf("Set %s budget to %s %s", data.Type, currency, data.Amount)
	})
	subscribeBudget(event_bus.BudgetUpdatedEvent, ActionBudgetUpdated, func(data event_bus.BudgetChanged) string {
		return fmt.Sprintf("Updated %s budget to %s %s", data.Type, currency, data.Amount)
	})
	subscribeBudget(event_bus.BudgetDeletedEvent, ActionBudgetDeleted, func(data event_bus.BudgetChanged) string {
		return fmt.Sprintf("Deleted %s budget of %s %s", data.Type, currency, data.Amount)
	})

	event_bus.SubscribeTyped[event_bus.CategoryBudgetChanged](eventBus, event_bus.CategoryBudgetSetEvent,
		func(e event_bus.EventT[event_bus.CategoryBudgetChanged]) error {
			details := fmt.Sprintf("Set budget for %s to %s %s", e.Data.CategoryName, currency, e.Data.Amount)
			return service.record(e.Context(), ActionCategoryBudgetSet, details)
		})

	event_bus.SubscribeTyped[event_bus.MonthlyPlanChanged](eventBus, event_bus.MonthlyPlanSetEvent,
		func(e event_bus.EventT[event_bus.MonthlyPlanChanged]) error {
			details := fmt.Sprintf("Set %s plan for %s %d to %s %s",
				e.Data.Kind, e.Data.Month, e.Data.Year, currency, e.Data.Total)
			return service.record(e.Context(), ActionPlanSet, details)
		})

	subscribeCategory := func(eventType event_bus.EventType, action string, format string) {
		event_bus.SubscribeTyped[event_bus.CategoryChanged](eventBus, eventType,
			func(e event_bus.EventT[event_bus.CategoryChanged]) error {
				return service.record(e.Context(), action, fmt.Sprintf(format, e.Data.Name))
			})
	}
	subscribeCategory(event_bus.CategoryCreatedEvent, ActionCategoryAdded, "Added category %s")
	subscribeCategory(event_bus.CategoryRenamedEvent, ActionCategoryRenamed, "Renamed category to %s")
	subscribeCategory(event_bus.CategoryDeletedEvent, ActionCategoryDeleted, "Deleted category %s")
	subscribeCategory(event_bus.SubCategoryCreatedEvent, ActionSubCategoryAdded, "Added sub-category %s")
	subscribeCategory(event_bus.SubCategoryRenamedEvent, ActionSubCategoryRenamed, "Renamed sub-category to %s")
	subscribeCategory(event_bus.SubCategoryDeletedEvent, ActionSubCategoryDeleted, "Deleted sub-category %s")

	return service
}

func (s *ServiceImpl) GetLog(ctx context.Context, limit int) ([]Entry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	return s.repo.GetAll(ctx, userId, limit)
}

func (s *ServiceImpl) record(ctx context.Context, action string, details string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		// Events without a user context cannot be attributed; skip them
		// instead of failing the publishing mutation.
		log.Warnf("activity entry without user context dropped: %s", action)
		return nil
	}

	_, err = s.repo.Append(ctx, userId, Entry{
		Action:    action,
		Details:   details,
		CreatedAt: s.clock.Now(),
	})
	if err != nil {
		log.Errorf("failed to append activity entry: %v", err)
	}
	return err
}
