package app

import (
	"database/sql"
	"time"

	"github.com/kharcha/kharcha/internal/auth"
	"github.com/kharcha/kharcha/internal/config"
	"github.com/kharcha/kharcha/internal/event_bus"
	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/activity"
	"github.com/kharcha/kharcha/pkg/budget"
	"github.com/kharcha/kharcha/pkg/category"
	"github.com/kharcha/kharcha/pkg/expense"
	"github.com/kharcha/kharcha/pkg/income"
	"github.com/kharcha/kharcha/pkg/planner"
	"github.com/kharcha/kharcha/pkg/stats"
	"github.com/kharcha/kharcha/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock
	Tokens   *auth.TokenIssuer

	UserService user.Service
	UserHandler *user.Handler

	CategoryService *category.ServiceImpl
	CategoryHandler *category.Handler

	ExpenseService *expense.ServiceImpl
	ExpenseHandler *expense.Handler
	DueReminder    *expense.DueReminder

	IncomeService *income.ServiceImpl
	IncomeHandler *income.Handler

	BudgetService *budget.BudgetServiceImpl
	BudgetHandler *budget.BudgetHandler

	PlannerService *planner.ServiceImpl
	PlannerHandler *planner.Handler

	StatsService *stats.StatsServiceImpl
	StatsHandler *stats.StatsHandler

	ActivityService *activity.ServiceImpl
	ActivityHandler *activity.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}
	deps.Tokens = auth.NewTokenIssuer(cfg.Auth.Secret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	deps.UserService = user.NewUserService(user.NewUserRepo(db), deps.Clock)
	deps.UserHandler = user.NewHandler(deps.UserService, deps.Tokens)

	deps.CategoryService = category.NewService(category.NewRepository(db), deps.EventBus)
	deps.CategoryHandler = category.NewHandler(deps.CategoryService)

	expenseRepo := expense.NewRepository(db)
	deps.ExpenseService = expense.NewService(expenseRepo, deps.CategoryService, deps.EventBus, deps.Clock)
	deps.ExpenseHandler = expense.NewHandler(deps.ExpenseService)
	deps.DueReminder = expense.NewDueReminder(expenseRepo, deps.EventBus, deps.Clock)

	deps.IncomeService = income.NewService(income.NewRepository(db), deps.EventBus, deps.Clock)
	deps.IncomeHandler = income.NewHandler(deps.IncomeService)

	deps.BudgetService = budget.NewBudgetService(budget.NewBudgetRepo(db), deps.CategoryService, deps.EventBus, deps.Clock)
	deps.BudgetHandler = budget.NewBudgetHandler(deps.BudgetService)

	deps.PlannerService = planner.NewService(planner.NewRepository(db), deps.EventBus)
	deps.PlannerHandler = planner.NewHandler(deps.PlannerService)

	deps.StatsService = stats.NewStatsService(stats.NewStatsRepo(db), deps.BudgetService, deps.Clock)
	deps.StatsHandler = stats.NewStatsHandler(deps.StatsService, stats.NewCsvBalanceRenderer())

	// Registering the activity service subscribes it to all domain events.
	deps.ActivityService = activity.NewService(activity.NewRepository(db), deps.EventBus, deps.Clock)
	deps.ActivityHandler = activity.NewHandler(deps.ActivityService)

	return deps
}
