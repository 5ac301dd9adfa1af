package planner

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/kharcha/kharcha/internal/utils"
)

type MonthlyPlanDTO struct {
	Kind  PlanKind `json:"kind"`
	Year  int      `json:"year"`
	Month int      `json:"month"`
	Week1 string   `json:"week1,omitempty"`
	Week2 string   `json:"week2,omitempty"`
	Week3 string   `json:"week3,omitempty"`
	Week4 string   `json:"week4,omitempty"`
	Total string   `json:"total"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// SetMonthlyPlan godoc
// @Summary Set one planner grid cell
// @Description Upserts a month's target. A weekly breakdown in the body overrides the total with the sum of the four weeks.
// @Tags Planner
// @Accept json
// @Produce json
// @Param plan body MonthlyPlanDTO true "Monthly plan"
// @Success 200 {object} MonthlyPlanDTO
// @Failure 400 {string} string "Invalid kind, month, or amount"
// @Router /api/plan [put]
func (h *Handler) SetMonthlyPlan(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto MonthlyPlanDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	plan, err := dtoToPlan(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	stored, err := h.service.SetMonthlyPlan(r.Context(), plan)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(planToDTO(stored)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetYearlyPlan responds with 12 grid cells for ?kind= and ?year=.
func (h *Handler) GetYearlyPlan(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	kind := PlanKind(r.URL.Query().Get("kind"))
	if kind == "" {
		kind = PlanKindBudget
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		http.Error(w, "invalid year", http.StatusBadRequest)
		return
	}

	plans, err := h.service.GetYearlyPlan(r.Context(), kind, year)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	dtos := make([]MonthlyPlanDTO, 0, len(plans))
	for _, plan := range plans {
		dtos = append(dtos, planToDTO(plan))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func planToDTO(plan MonthlyPlan) MonthlyPlanDTO {
	dto := MonthlyPlanDTO{
		Kind:  plan.Kind,
		Year:  plan.Year,
		Month: int(plan.Month),
		Total: plan.Total.String(),
	}
	if plan.HasWeeklyBreakdown() {
		dto.Week1 = plan.Week1.String()
		dto.Week2 = plan.Week2.String()
		dto.Week3 = plan.Week3.String()
		dto.Week4 = plan.Week4.String()
	}
	return dto
}

func dtoToPlan(dto MonthlyPlanDTO) (MonthlyPlan, error) {
	plan := MonthlyPlan{
		Kind:  dto.Kind,
		Year:  dto.Year,
		Month: time.Month(dto.Month),
	}
	var err error
	if plan.Week1, err = optionalMoney(dto.Week1); err != nil {
		return MonthlyPlan{}, err
	}
	if plan.Week2, err = optionalMoney(dto.Week2); err != nil {
		return MonthlyPlan{}, err
	}
	if plan.Week3, err = optionalMoney(dto.Week3); err != nil {
		return MonthlyPlan{}, err
	}
	if plan.Week4, err = optionalMoney(dto.Week4); err != nil {
		return MonthlyPlan{}, err
	}
	if plan.Total, err = optionalMoney(dto.Total); err != nil {
		return MonthlyPlan{}, err
	}
	return plan, nil
}

// optionalMoney parses an amount that may be absent or explicitly zero.
func optionalMoney(value string) (utils.Money, error) {
	if value == "" || value == "0" || value == "0.00" {
		return 0, nil
	}
	return utils.ParseMoney(value)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidPlanKind),
		errors.Is(err, ErrInvalidMonth),
		errors.Is(err, utils.ErrInvalidAmount):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
