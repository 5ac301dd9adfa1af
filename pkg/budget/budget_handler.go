package budget

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/category"
	log "github.com/sirupsen/logrus"
)

type EntryDTO struct {
	ID     int       `json:"id"`
	Type   EntryType `json:"type"`
	Amount string    `json:"amount"`
}

type CategoryBudgetDTO struct {
	CategoryID int    `json:"categoryId"`
	Amount     string `json:"amount"`
}

type BudgetHandler struct {
	service BudgetService
}

func NewBudgetHandler(service BudgetService) *BudgetHandler {
	return &BudgetHandler{service: service}
}

// Set godoc
// @Summary Set a budget for a period type
// @Description Appends a new entry; the latest entry per type is the active one.
// @Tags Budget
// @Accept json
// @Produce json
// @Param entry body EntryDTO true "Budget entry"
// @Success 201 {object} EntryDTO
// @Failure 400 {string} string "Invalid type or amount"
// @Router /api/budget [post]
func (h *BudgetHandler) Set(w http.ResponseWriter, r *http.Request) {
	log.Debug("Setting budget entry")
	w.Header().Set("Content-Type", "application/json")

	var dto EntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	amount, err := utils.ParseMoney(dto.Amount)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := h.service.Set(r.Context(), dto.Type, amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(entryToDTO(entry)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Current returns the active entry per period type, keyed by type.
func (h *BudgetHandler) Current(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	current, err := h.service.Current(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := map[EntryType]EntryDTO{}
	for entryType, entry := range current {
		dtos[entryType] = entryToDTO(entry)
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *BudgetHandler) History(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	entries, err := h.service.History(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, entryToDTO(entry))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *BudgetHandler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := pathId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var dto EntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	amount, err := utils.ParseMoney(dto.Amount)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := h.service.Update(r.Context(), id, amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(entryToDTO(entry)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func (h *BudgetHandler) SetCategoryBudget(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto CategoryBudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	amount, err := utils.ParseMoney(dto.Amount)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = h.service.SetCategoryBudget(r.Context(), CategoryBudget{
		CategoryID: dto.CategoryID,
		Amount:     amount,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BudgetHandler) GetCategoryBudgets(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	budgets, err := h.service.GetCategoryBudgets(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]CategoryBudgetDTO, 0, len(budgets))
	for _, categoryBudget := range budgets {
		dtos = append(dtos, CategoryBudgetDTO{
			CategoryID: categoryBudget.CategoryID,
			Amount:     categoryBudget.Amount.String(),
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func entryToDTO(entry Entry) EntryDTO {
	return EntryDTO{
		ID:     entry.ID,
		Type:   entry.Type,
		Amount: entry.Amount.String(),
	}
}

func pathId(r *http.Request) (int, error) {
	value, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return int(value), err
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, utils.ErrInvalidAmount), errors.Is(err, ErrInvalidEntryType):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrEntryNotFound), errors.Is(err, category.ErrCategoryNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
