package activity

import "time"

// Entry is one line of the activity log: a machine-readable action tag and a
// human-readable details sentence. Entries are append-only; users never edit
// or delete them.
type Entry struct {
	ID        int
	Action    string
	Details   string
	CreatedAt time.Time
}

const (
	ActionExpenseAdded     = "EXPENSE_ADDED"
	ActionExpenseUpdated   = "EXPENSE_UPDATED"
	ActionExpenseConfirmed = "EXPENSE_CONFIRMED"
	ActionExpenseDeleted   = "EXPENSE_DELETED"
	ActionExpenseDue       = "EXPENSE_DUE"

	ActionIncomeAdded   = "INCOME_ADDED"
	ActionIncomeUpdated = "INCOME_UPDATED"
	ActionIncomeDeleted = "INCOME_DELETED"

	ActionBudgetSet         = "BUDGET_SET"
	ActionBudgetUpdated     = "BUDGET_UPDATED"
	ActionBudgetDeleted     = "BUDGET_DELETED"
	ActionCategoryBudgetSet = "CATEGORY_BUDGET_SET"

	ActionPlanSet = "PLAN_SET"

	ActionCategoryAdded      = "CATEGORY_ADDED"
	ActionCategoryRenamed    = "CATEGORY_RENAMED"
	ActionCategoryDeleted    = "CATEGORY_DELETED"
	ActionSubCategoryAdded   = "SUBCATEGORY_ADDED"
	ActionSubCategoryRenamed = "SUBCATEGORY_RENAMED"
	ActionSubCategoryDeleted = "SUBCATEGORY_DELETED"
)
