package event_bus

import (
	"time"

	"github.com/kharcha/kharcha/internal/utils"
)

// Event types published by the feature packages. pkg/activity subscribes to
// all of them to build the append-only activity log.
const (
	ExpenseCreatedEvent   EventType = "expense.created"
	ExpenseUpdatedEvent   EventType = "expense.updated"
	ExpenseConfirmedEvent EventType = "expense.confirmed"
	ExpenseDeletedEvent   EventType = "expense.deleted"
	ExpenseDueEvent       EventType = "expense.due"

	IncomeAddedEvent   EventType = "income.added"
	IncomeUpdatedEvent EventType = "income.updated"
	IncomeDeletedEvent EventType = "income.deleted"

	BudgetSetEvent         EventType = "budget.set"
	BudgetUpdatedEvent     EventType = "budget.updated"
	BudgetDeletedEvent     EventType = "budget.deleted"
	CategoryBudgetSetEvent EventType = "budget.category.set"

	MonthlyPlanSetEvent EventType = "plan.month.set"

	CategoryCreatedEvent    EventType = "category.created"
	CategoryRenamedEvent    EventType = "category.renamed"
	CategoryDeletedEvent    EventType = "category.deleted"
	SubCategoryCreatedEvent EventType = "category.sub.created"
	SubCategoryRenamedEvent EventType = "category.sub.renamed"
	SubCategoryDeletedEvent EventType = "category.sub.deleted"
)

type ExpenseChanged struct {
	Id           int
	Amount       utils.Money
	CategoryName string
	Date         time.Time
	Scheduled    bool
}

type IncomeChanged struct {
	Id     int
	Source string
	Amount utils.Money
}

type BudgetChanged struct {
	Id     int
	Type   string
	Amount utils.Money
}

type CategoryBudgetChanged struct {
	CategoryName string
	Amount       utils.Money
}

type MonthlyPlanChanged struct {
	Kind  string
	Year  int
	Month time.Month
	Total utils.Money
}

type CategoryChanged struct {
	Id   int
	Name string
}
