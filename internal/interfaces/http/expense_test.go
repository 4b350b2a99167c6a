package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensemanager/internal/domain"
	"expensemanager/internal/domain/expense"
)

func newExpenseHandler(repo *MockExpenseRepo) *ExpenseHandler {
	return NewExpenseHandler(expense.NewService(repo), nullLogger())
}

func storedExpense(id, userID int64) *expense.Expense {
	return &expense.Expense{
		ID:       id,
		UserID:   userID,
		Datetime: time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC),
		Category: "Food",
		Title:    "Lunch",
		Amount:   decimal.RequireFromString("15.50"),
		Mode:     "cash",
		Month:    9,
		Year:     2024,
	}
}

func TestHandleCreateExpense(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		userID         int64
		expectedStatus int
	}{
		{
			name:           "Success With String Amount",
			body:           `{"datetime":"2024-09-01T10:00:00Z","category":"Food","title":"Lunch","amount":"15.50","mode":"cash"}`,
			userID:         1,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Success With Numeric Amount",
			body:           `{"datetime":"2024-09-01T10:00:00+02:00","category":"Food","title":"Lunch","amount":15.5,"mode":"cash"}`,
			userID:         1,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing Amount",
			body:           `{"datetime":"2024-09-01T10:00:00Z","category":"Food","title":"Lunch","mode":"cash"}`,
			userID:         1,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Bad Timestamp",
			body:           `{"datetime":"01/09/2024","category":"Food","title":"Lunch","amount":"1","mode":"cash"}`,
			userID:         1,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Negative Amount",
			body:           `{"datetime":"2024-09-01T10:00:00Z","category":"Food","title":"Lunch","amount":"-1","mode":"cash"}`,
			userID:         1,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Unauthorized",
			body:           `{}`,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockExpenseRepo{
				CreateFunc: func(ctx context.Context, e *expense.Expense) (*expense.Expense, error) {
					if e.UserID != tt.userID {
						t.Errorf("UserID = %d, want %d", e.UserID, tt.userID)
					}
					out := *e
					out.ID = 99
					return &out, nil
				},
			}
			rr := httptest.NewRecorder()

			newExpenseHandler(repo).HandleCreate(rr, newRequest(http.MethodPost, "/expenses", tt.body, tt.userID, nil))

			require.Equal(t, tt.expectedStatus, rr.Code, rr.Body.String())
			if rr.Code == http.StatusCreated {
				body := decodeBody[ExpenseResponse](t, rr)
				assert.Equal(t, int64(99), body.ID)
				assert.Equal(t, 9, body.Month)
				assert.Equal(t, 2024, body.Year)
				assert.True(t, body.Amount.Equal(decimal.RequireFromString("15.5")))
			}
		})
	}
}

func TestHandleGetExpense(t *testing.T) {
	repo := &MockExpenseRepo{
		GetByIDFunc: func(ctx context.Context, id, userID int64) (*expense.Expense, error) {
			if id == 10 && userID == 1 {
				return storedExpense(10, 1), nil
			}
			return nil, nil
		},
	}
	handler := newExpenseHandler(repo)

	rr := httptest.NewRecorder()
	handler.HandleGet(rr, newRequest(http.MethodGet, "/expenses/10", "", 1, map[string]string{"id": "10"}))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Lunch", decodeBody[ExpenseResponse](t, rr).Title)

	// another user's expense looks exactly like a missing one
	rr = httptest.NewRecorder()
	handler.HandleGet(rr, newRequest(http.MethodGet, "/expenses/10", "", 2, map[string]string{"id": "10"}))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	handler.HandleGet(rr, newRequest(http.MethodGet, "/expenses/11", "", 1, map[string]string{"id": "11"}))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandleListExpensesByMonth(t *testing.T) {
	tests := []struct {
		name           string
		vars           map[string]string
		expectedStatus int
		expectedLen    int
	}{
		{name: "Success", vars: map[string]string{"month": "9", "year": "2024"}, expectedStatus: http.StatusOK, expectedLen: 1},
		{name: "Empty Period", vars: map[string]string{"month": "1", "year": "2020"}, expectedStatus: http.StatusOK, expectedLen: 0},
		{name: "Invalid Month", vars: map[string]string{"month": "13", "year": "2024"}, expectedStatus: http.StatusBadRequest},
		{name: "Invalid Year", vars: map[string]string{"month": "9", "year": "999"}, expectedStatus: http.StatusBadRequest},
	}

	repo := &MockExpenseRepo{
		ListByMonthFunc: func(ctx context.Context, userID int64, month, year int) ([]*expense.Expense, error) {
			if month == 9 && year == 2024 {
				return []*expense.Expense{storedExpense(10, userID)}, nil
			}
			return []*expense.Expense{}, nil
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			newExpenseHandler(repo).HandleListByMonth(rr, newRequest(http.MethodGet, "/expenses/monthly", "", 1, tt.vars))

			require.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedStatus == http.StatusOK {
				body := decodeBody[[]ExpenseResponse](t, rr)
				assert.Len(t, body, tt.expectedLen)
				assert.NotNil(t, body)
			}
		})
	}
}

func TestHandleListExpenses_EmptyIsArray(t *testing.T) {
	rr := httptest.NewRecorder()
	newExpenseHandler(&MockExpenseRepo{}).HandleList(rr, newRequest(http.MethodGet, "/expenses", "", 1, nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestHandleListExpensesByCategory(t *testing.T) {
	var gotCategory string
	repo := &MockExpenseRepo{
		ListByCategoryFunc: func(ctx context.Context, userID int64, category string) ([]*expense.Expense, error) {
			gotCategory = category
			return []*expense.Expense{storedExpense(1, userID)}, nil
		},
	}

	rr := httptest.NewRecorder()
	newExpenseHandler(repo).HandleListByCategory(rr, newRequest(http.MethodGet, "/expenses/category/Eating%20Out", "", 1, map[string]string{"category": "Eating Out"}))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Eating Out", gotCategory)
}

func TestHandleCategoryTotals(t *testing.T) {
	repo := &MockExpenseRepo{
		SumByCategoryFunc: func(ctx context.Context, userID int64) ([]expense.CategoryTotal, error) {
			return []expense.CategoryTotal{
				{Category: "Food", Total: decimal.RequireFromString("50.25")},
				{Category: "Transport", Total: decimal.RequireFromString("10")},
			}, nil
		},
	}

	rr := httptest.NewRecorder()
	newExpenseHandler(repo).HandleCategoryTotals(rr, newRequest(http.MethodGet, "/expenses/category-wise", "", 1, nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"category":"Food","totalAmount":"50.25"},{"category":"Transport","totalAmount":"10"}]`, rr.Body.String())
}

func TestHandleUpdateExpense(t *testing.T) {
	var updated *expense.Expense
	repo := &MockExpenseRepo{
		GetByIDFunc: func(ctx context.Context, id, userID int64) (*expense.Expense, error) {
			if id == 10 && userID == 1 {
				return storedExpense(10, 1), nil
			}
			return nil, nil
		},
		UpdateFunc: func(ctx context.Context, e *expense.Expense) (*expense.Expense, error) {
			updated = e
			return e, nil
		},
	}
	handler := newExpenseHandler(repo)

	t.Run("Moves To Another Month", func(t *testing.T) {
		rr := httptest.NewRecorder()
		body := `{"datetime":"2024-03-15T08:00:00Z","amount":"20.00"}`
		handler.HandleUpdate(rr, newRequest(http.MethodPut, "/expenses/update/10", body, 1, map[string]string{"id": "10"}))

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		resp := decodeBody[ExpenseResponse](t, rr)
		assert.Equal(t, 3, resp.Month)
		assert.Equal(t, "Lunch", resp.Title)
		require.NotNil(t, updated)
		assert.Equal(t, 3, updated.Month)
		assert.True(t, updated.Amount.Equal(decimal.NewFromInt(20)))
	})

	t.Run("Foreign Expense", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.HandleUpdate(rr, newRequest(http.MethodPut, "/expenses/update/10", `{"title":"x"}`, 2, map[string]string{"id": "10"}))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Blank Title", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.HandleUpdate(rr, newRequest(http.MethodPut, "/expenses/update/10", `{"title":"  "}`, 1, map[string]string{"id": "10"}))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHandleDeleteExpense(t *testing.T) {
	tests := []struct {
		name           string
		deleteErr      error
		expectedStatus int
	}{
		{name: "Success", expectedStatus: http.StatusNoContent},
		{name: "Not Found", deleteErr: expense.ErrExpenseNotFound, expectedStatus: http.StatusNotFound},
		{name: "Storage Error", deleteErr: domain.Storage("delete expense", errors.New("db error")), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockExpenseRepo{
				DeleteFunc: func(ctx context.Context, id, userID int64) error {
					assert.Equal(t, int64(10), id)
					assert.Equal(t, int64(1), userID)
					return tt.deleteErr
				},
			}
			rr := httptest.NewRecorder()

			newExpenseHandler(repo).HandleDelete(rr, newRequest(http.MethodDelete, "/expenses/delete/10", "", 1, map[string]string{"id": "10"}))

			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}
