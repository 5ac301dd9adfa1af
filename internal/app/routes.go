package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Auth
	r.HandleFunc("/api/auth/register", deps.UserHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", deps.UserHandler.Login).Methods("POST")

	// User profile
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateProfile).Methods("PUT")
	r.HandleFunc("/api/user/current/password", deps.UserHandler.ChangePassword).Methods("PUT")

	// Categories
	r.HandleFunc("/api/category", deps.CategoryHandler.List).Methods("GET")
	r.HandleFunc("/api/category", deps.CategoryHandler.Create).Methods("POST")
	r.HandleFunc("/api/category/{id}", deps.CategoryHandler.Rename).Methods("PUT")
	r.HandleFunc("/api/category/{id}", deps.CategoryHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/category/{id}/sub", deps.CategoryHandler.CreateSub).Methods("POST")
	r.HandleFunc("/api/category/{id}/sub/{subId}", deps.CategoryHandler.RenameSub).Methods("PUT")
	r.HandleFunc("/api/category/{id}/sub/{subId}", deps.CategoryHandler.DeleteSub).Methods("DELETE")

	// Expenses
	r.HandleFunc("/api/expense", deps.ExpenseHandler.List).Methods("GET")
	r.HandleFunc("/api/expense", deps.ExpenseHandler.Create).Methods("POST")
	r.HandleFunc("/api/expense/{id}", deps.ExpenseHandler.Update).Methods("PUT")
	r.HandleFunc("/api/expense/{id}", deps.ExpenseHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/expense/{id}/confirm", deps.ExpenseHandler.Confirm).Methods("POST")

	// Incomes
	r.HandleFunc("/api/income", deps.IncomeHandler.List).Methods("GET")
	r.HandleFunc("/api/income", deps.IncomeHandler.Create).Methods("POST")
	r.HandleFunc("/api/income/{id}", deps.IncomeHandler.Update).Methods("PUT")
	r.HandleFunc("/api/income/{id}", deps.IncomeHandler.Delete).Methods("DELETE")

	// Budgets
	r.HandleFunc("/api/budget", deps.BudgetHandler.Set).Methods("POST")
	r.HandleFunc("/api/budget/current", deps.BudgetHandler.Current).Methods("GET")
	r.HandleFunc("/api/budget/history", deps.BudgetHandler.History).Methods("GET")
	r.HandleFunc("/api/budget/category", deps.BudgetHandler.GetCategoryBudgets).Methods("GET")
	r.HandleFunc("/api/budget/category", deps.BudgetHandler.SetCategoryBudget).Methods("PUT")
	r.HandleFunc("/api/budget/{id}", deps.BudgetHandler.Update).Methods("PUT")
	r.HandleFunc("/api/budget/{id}", deps.BudgetHandler.Delete).Methods("DELETE")

	// Monthly planner
	r.HandleFunc("/api/plan", deps.PlannerHandler.SetMonthlyPlan).Methods("PUT")
	r.HandleFunc("/api/plan", deps.PlannerHandler.GetYearlyPlan).Methods("GET")

	// Stats and reports
	r.HandleFunc("/api/stats/monthly-summary", deps.StatsHandler.GetMonthlySummary).Methods("GET")
	r.HandleFunc("/api/stats/expense-summary", deps.StatsHandler.GetExpenseSummary).Methods("GET")
	r.HandleFunc("/api/stats/daily-trend", deps.StatsHandler.GetDailyTrend).Methods("GET")
	r.HandleFunc("/api/stats/balance-sheet", deps.StatsHandler.GetBalanceSheet).Methods("GET")
	r.HandleFunc("/api/stats/report", deps.StatsHandler.GetFinancialReport).Methods("GET")

	// Activity log
	r.HandleFunc("/api/activity", deps.ActivityHandler.GetLog).Methods("GET")
}
