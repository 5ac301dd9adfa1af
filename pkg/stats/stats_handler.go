package stats

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
)

type CategoryTotalDTO struct {
	CategoryName string `json:"categoryName"`
	Total        string `json:"total"`
}

type MonthlySummaryDTO struct {
	Year       int                `json:"year"`
	Month      int                `json:"month"`
	Categories []CategoryTotalDTO `json:"categories"`
	Total      string             `json:"total"`
}

type ExpenseSummaryDTO struct {
	Week  string `json:"week"`
	Month string `json:"month"`
	Year  string `json:"year"`
}

type DailyTotalDTO struct {
	Date  string `json:"date"`
	Total string `json:"total"`
}

type SourceTotalDTO struct {
	Source string `json:"source"`
	Total  string `json:"total"`
}

type BalanceSheetDTO struct {
	Period       Period             `json:"period"`
	StartDate    string             `json:"startDate"`
	EndDate      string             `json:"endDate"`
	IncomeRows   []SourceTotalDTO   `json:"incomeRows"`
	ExpenseRows  []CategoryTotalDTO `json:"expenseRows"`
	TotalIncome  string             `json:"totalIncome"`
	TotalExpense string             `json:"totalExpense"`
	NetBalance   string             `json:"netBalance"`
}

type PeriodStatusDTO struct {
	Spent       string  `json:"spent"`
	Budget      string  `json:"budget"`
	PercentUsed float64 `json:"percentUsed"`
	BarColor    string  `json:"barColor"`
}

type FinancialReportDTO struct {
	Weekly     PeriodStatusDTO   `json:"weekly"`
	Monthly    PeriodStatusDTO   `json:"monthly"`
	Yearly     PeriodStatusDTO   `json:"yearly"`
	Health     HealthStatus      `json:"health"`
	Narratives map[Period]string `json:"narratives"`
}

type StatsHandler struct {
	statsService StatsService
	csvRenderer  BalanceRenderer
}

func NewStatsHandler(statsService StatsService, csvRenderer BalanceRenderer) *StatsHandler {
	return &StatsHandler{statsService: statsService, csvRenderer: csvRenderer}
}

func (handler *StatsHandler) GetMonthlySummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	summary, err := handler.statsService.GetMonthlySummary(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dto := MonthlySummaryDTO{
		Year:       summary.Year,
		Month:      int(summary.Month),
		Categories: categoryTotalsToDTO(summary.Categories),
		Total:      summary.Total.String(),
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *StatsHandler) GetExpenseSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	summary, err := handler.statsService.GetExpenseSummary(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dto := ExpenseSummaryDTO{
		Week:  summary.Week.String(),
		Month: summary.Month.String(),
		Year:  summary.Year.String(),
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *StatsHandler) GetDailyTrend(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	days := 0
	if param := r.URL.Query().Get("days"); param != "" {
		parsed, err := strconv.Atoi(param)
		if err != nil || parsed < 0 {
			http.Error(w, "invalid days", http.StatusBadRequest)
			return
		}
		days = parsed
	}

	trend, err := handler.statsService.GetDailyTrend(r.Context(), days)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]DailyTotalDTO, 0, len(trend))
	for _, total := range trend {
		dtos = append(dtos, DailyTotalDTO{
			Date:  total.Date.Format(dateLayout),
			Total: total.Total.String(),
		})
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetBalanceSheet responds with JSON, or CSV when the client sends
// Accept: text/csv.
func (handler *StatsHandler) GetBalanceSheet(w http.ResponseWriter, r *http.Request) {
	period := Period(r.URL.Query().Get("period"))
	if period == "" {
		period = PeriodMonthly
	}

	sheet, err := handler.statsService.GetBalanceSheet(r.Context(), period)
	if err != nil {
		if errors.Is(err, ErrInvalidPeriod) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		csv, err := handler.csvRenderer.RenderBalanceSheet(sheet)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if _, err := w.Write([]byte(csv)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	incomeRows := make([]SourceTotalDTO, 0, len(sheet.IncomeRows))
	for _, row := range sheet.IncomeRows {
		incomeRows = append(incomeRows, SourceTotalDTO{Source: row.Source, Total: row.Total.String()})
	}
	dto := BalanceSheetDTO{
		Period:       sheet.Period,
		StartDate:    sheet.StartDate.Format(dateLayout),
		EndDate:      sheet.EndDate.Format(dateLayout),
		IncomeRows:   incomeRows,
		ExpenseRows:  categoryTotalsToDTO(sheet.ExpenseRows),
		TotalIncome:  sheet.TotalIncome.String(),
		TotalExpense: sheet.TotalExpense.String(),
		NetBalance:   sheet.NetBalance.String(),
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *StatsHandler) GetFinancialReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	report, err := handler.statsService.GetFinancialReport(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dto := FinancialReportDTO{
		Weekly:     periodStatusToDTO(report.Weekly),
		Monthly:    periodStatusToDTO(report.Monthly),
		Yearly:     periodStatusToDTO(report.Yearly),
		Health:     report.Health,
		Narratives: report.Narratives,
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func categoryTotalsToDTO(totals []CategoryTotal) []CategoryTotalDTO {
	dtos := make([]CategoryTotalDTO, 0, len(totals))
	for _, total := range totals {
		dtos = append(dtos, CategoryTotalDTO{
			CategoryName: total.CategoryName,
			Total:        total.Total.String(),
		})
	}
	return dtos
}

func periodStatusToDTO(status PeriodStatus) PeriodStatusDTO {
	percent, _ := PercentUsed(status.Spent, status.Budget)
	return PeriodStatusDTO{
		Spent:       status.Spent.String(),
		Budget:      status.Budget.String(),
		PercentUsed: percent,
		BarColor:    BarColor(percent),
	}
}
