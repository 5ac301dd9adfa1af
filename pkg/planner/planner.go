package planner

import (
	"time"

	"github.com/kharcha/kharcha/internal/utils"
)

type PlanKind string

const (
	PlanKindBudget PlanKind = "budget"
	PlanKindIncome PlanKind = "income"
)

// MonthlyPlan is one cell of the yearly planner grid: a target amount for a
// calendar month, optionally broken into four weekly components. When the
// weekly breakdown is present, Total is their sum, fixed at write time.
type MonthlyPlan struct {
	Kind  PlanKind
	Year  int
	Month time.Month
	Week1 utils.Money
	Week2 utils.Money
	Week3 utils.Money
	Week4 utils.Money
	Total utils.Money
}

// HasWeeklyBreakdown reports whether any weekly component is set.
func (p MonthlyPlan) HasWeeklyBreakdown() bool {
	return p.Week1 != 0 || p.Week2 != 0 || p.Week3 != 0 || p.Week4 != 0
}

func IsValidPlanKind(kind PlanKind) bool {
	return kind == PlanKindBudget || kind == PlanKindIncome
}
