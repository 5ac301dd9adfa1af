package expense

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/category"
	log "github.com/sirupsen/logrus"
)

// ExpenseDTO carries amounts as decimal strings ("450.00") so the two decimal
// place validation survives the JSON round trip.
type ExpenseDTO struct {
	ID            int    `json:"id"`
	Amount        string `json:"amount"`
	CategoryID    int    `json:"categoryId"`
	SubCategoryID int    `json:"subCategoryId,omitempty"`
	Date          string `json:"date"`
	Source        Source `json:"source"`
	Description   string `json:"description,omitempty"`
	Status        Status `json:"status"`
}

type confirmDTO struct {
	Amount string `json:"amount,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Create godoc
// @Summary Record a new expense
// @Description A future-dated expense is stored as scheduled; any other date is confirmed immediately.
// @Tags Expense
// @Accept json
// @Produce json
// @Param expense body ExpenseDTO true "Expense"
// @Success 201 {object} ExpenseDTO
// @Failure 400 {string} string "Invalid amount, date, or source"
// @Router /api/expense [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new expense")
	w.Header().Set("Content-Type", "application/json")

	var dto ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	expense, err := DTOToExpense(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), expense)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ExpenseToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// List godoc
// @Summary List expenses
// @Description filter=all|recent|pending|due selects the view; default is all confirmed records.
// @Tags Expense
// @Produce json
// @Success 200 {array} ExpenseDTO
// @Router /api/expense [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var expenses []Expense
	var err error
	switch r.URL.Query().Get("filter") {
	case "", "all":
		expenses, err = h.service.All(r.Context())
	case "recent":
		expenses, err = h.service.Recent(r.Context())
	case "pending":
		expenses, err = h.service.Pending(r.Context())
	case "due":
		expenses, err = h.service.Due(r.Context())
	default:
		http.Error(w, "unknown filter", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ExpenseDTO, 0, len(expenses))
	for _, expense := range expenses {
		dtos = append(dtos, ExpenseToDTO(expense))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := pathId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var dto ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.ID != 0 && dto.ID != id {
		http.Error(w, "Invalid expense id in request body", http.StatusBadRequest)
		return
	}
	expense, err := DTOToExpense(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	expense.ID = id

	updated, err := h.service.Update(r.Context(), expense)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ExpenseToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Confirm godoc
// @Summary Confirm a scheduled expense
// @Description Moves a scheduled record to the ledger with today's date; an amount in the body revises the stored one.
// @Tags Expense
// @Accept json
// @Produce json
// @Success 200 {object} ExpenseDTO
// @Failure 404 {string} string "Expense not found or not scheduled"
// @Router /api/expense/{id}/confirm [post]
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := pathId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// The body is optional; confirming without one keeps the stored amount.
	var dto confirmDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var amount utils.Money
	if dto.Amount != "" {
		amount, err = utils.ParseMoney(dto.Amount)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	confirmed, err := h.service.Confirm(r.Context(), id, amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ExpenseToDTO(confirmed)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func ExpenseToDTO(expense Expense) ExpenseDTO {
	return ExpenseDTO{
		ID:            expense.ID,
		Amount:        expense.Amount.String(),
		CategoryID:    expense.CategoryID,
		SubCategoryID: expense.SubCategoryID,
		Date:          expense.Date.Format(dateLayout),
		Source:        expense.Source,
		Description:   expense.Description,
		Status:        expense.Status,
	}
}

func DTOToExpense(dto ExpenseDTO) (Expense, error) {
	amount, err := utils.ParseMoney(dto.Amount)
	if err != nil {
		return Expense{}, err
	}
	var date time.Time
	if dto.Date != "" {
		date, err = time.Parse(dateLayout, dto.Date)
		if err != nil {
			return Expense{}, err
		}
	}
	return Expense{
		ID:            dto.ID,
		Amount:        amount,
		CategoryID:    dto.CategoryID,
		SubCategoryID: dto.SubCategoryID,
		Date:          date,
		Source:        dto.Source,
		Description:   dto.Description,
	}, nil
}

func pathId(r *http.Request) (int, error) {
	value, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return int(value), err
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, utils.ErrInvalidAmount),
		errors.Is(err, ErrInvalidSource),
		errors.Is(err, ErrDescriptionTooLong):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrExpenseNotFound),
		errors.Is(err, ErrNotScheduled),
		errors.Is(err, category.ErrCategoryNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
