package expense

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest() (*Handler, *ServiceImpl) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	service, _, _ := newTestService(now)
	return NewHandler(service), service
}

func confirmRequest(t *testing.T, handler *Handler, id int, body string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body == "" {
		reader = &bytes.Buffer{}
	} else {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/expense/%d/confirm", id), reader)
	req = req.WithContext(testContext())
	req = mux.SetURLVars(req, map[string]string{"id": fmt.Sprintf("%d", id)})
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.Confirm(w, req)
	return w
}

func TestHandler_Confirm(t *testing.T) {
	scheduled := Expense{
		Amount:     45000,
		CategoryID: 1,
		Date:       day("2025-03-20"),
		Source:     SourceCash,
	}

	t.Run("should confirm with an empty body keeping the amount", func(t *testing.T) {
		// given
		handler, service := setupHandlerTest()
		created, err := service.Create(testContext(), scheduled)
		require.NoError(t, err)

		// when
		w := confirmRequest(t, handler, created.ID, "")

		// then
		require.Equal(t, http.StatusOK, w.Code)
		var dto ExpenseDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
		assert.Equal(t, "450.00", dto.Amount)
		assert.Equal(t, StatusConfirmed, dto.Status)
	})

	t.Run("should revise the amount from the body", func(t *testing.T) {
		handler, service := setupHandlerTest()
		created, err := service.Create(testContext(), scheduled)
		require.NoError(t, err)

		w := confirmRequest(t, handler, created.ID, `{"amount":"500.00"}`)

		require.Equal(t, http.StatusOK, w.Code)
		var dto ExpenseDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
		assert.Equal(t, "500.00", dto.Amount)
	})

	t.Run("should reject a malformed body", func(t *testing.T) {
		handler, service := setupHandlerTest()
		created, err := service.Create(testContext(), scheduled)
		require.NoError(t, err)

		w := confirmRequest(t, handler, created.ID, `{"amount":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should reject a malformed amount", func(t *testing.T) {
		handler, service := setupHandlerTest()
		created, err := service.Create(testContext(), scheduled)
		require.NoError(t, err)

		w := confirmRequest(t, handler, created.ID, `{"amount":"4.-5"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.True(t, strings.Contains(w.Body.String(), "amount"))
	})
}
