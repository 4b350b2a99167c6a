package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"expensemanager/internal/domain/budget"
	"expensemanager/internal/domain/expense"
	"expensemanager/internal/domain/user"
	"expensemanager/internal/shared/middleware"
)

// MockUserRepo implements user.Repository for testing
type MockUserRepo struct {
	CreateFunc        func(ctx context.Context, params user.CreateUserParams) (*user.User, error)
	GetByIDFunc       func(ctx context.Context, id int64) (*user.User, error)
	GetByUsernameFunc func(ctx context.Context, username string) (*user.User, error)
}

func (m *MockUserRepo) Create(ctx context.Context, params user.CreateUserParams) (*user.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return nil, nil
}

// MockExpenseRepo implements expense.Repository for testing
type MockExpenseRepo struct {
	CreateFunc                func(ctx context.Context, e *expense.Expense) (*expense.Expense, error)
	GetByIDFunc               func(ctx context.Context, id, userID int64) (*expense.Expense, error)
	ListByUserIDFunc          func(ctx context.Context, userID int64) ([]*expense.Expense, error)
	ListByMonthFunc           func(ctx context.Context, userID int64, month, year int) ([]*expense.Expense, error)
	ListByCategoryFunc        func(ctx context.Context, userID int64, category string) ([]*expense.Expense, error)
	UpdateFunc                func(ctx context.Context, e *expense.Expense) (*expense.Expense, error)
	DeleteFunc                func(ctx context.Context, id, userID int64) error
	SumByCategoryFunc         func(ctx context.Context, userID int64) ([]expense.CategoryTotal, error)
	SumByCategoryForMonthFunc func(ctx context.Context, userID int64, month, year int) ([]expense.CategoryTotal, error)
}

func (m *MockExpenseRepo) Create(ctx context.Context, e *expense.Expense) (*expense.Expense, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, e)
	}
	return e, nil
}

func (m *MockExpenseRepo) GetByID(ctx context.Context, id, userID int64) (*expense.Expense, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id, userID)
	}
	return nil, nil
}

func (m *MockExpenseRepo) ListByUserID(ctx context.Context, userID int64) ([]*expense.Expense, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID)
	}
	return []*expense.Expense{}, nil
}

func (m *MockExpenseRepo) ListByMonth(ctx context.Context, userID int64, month, year int) ([]*expense.Expense, error) {
	if m.ListByMonthFunc != nil {
		return m.ListByMonthFunc(ctx, userID, month, year)
	}
	return []*expense.Expense{}, nil
}

func (m *MockExpenseRepo) ListByCategory(ctx context.Context, userID int64, category string) ([]*expense.Expense, error) {
	if m.ListByCategoryFunc != nil {
		return m.ListByCategoryFunc(ctx, userID, category)
	}
	return []*expense.Expense{}, nil
}

func (m *MockExpenseRepo) Update(ctx context.Context, e *expense.Expense) (*expense.Expense, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, e)
	}
	return e, nil
}

func (m *MockExpenseRepo) Delete(ctx context.Context, id, userID int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, userID)
	}
	return nil
}

func (m *MockExpenseRepo) SumByCategory(ctx context.Context, userID int64) ([]expense.CategoryTotal, error) {
	if m.SumByCategoryFunc != nil {
		return m.SumByCategoryFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockExpenseRepo) SumByCategoryForMonth(ctx context.Context, userID int64, month, year int) ([]expense.CategoryTotal, error) {
	if m.SumByCategoryForMonthFunc != nil {
		return m.SumByCategoryForMonthFunc(ctx, userID, month, year)
	}
	return nil, nil
}

// MockBudgetRepo implements budget.Repository for testing
type MockBudgetRepo struct {
	UpsertFunc      func(ctx context.Context, userID int64, params budget.UpsertParams) (*budget.Budget, error)
	ListByMonthFunc func(ctx context.Context, userID int64, month, year int) ([]*budget.Budget, error)
	DeleteFunc      func(ctx context.Context, id, userID int64) error
}

func (m *MockBudgetRepo) Upsert(ctx context.Context, userID int64, params budget.UpsertParams) (*budget.Budget, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, userID, params)
	}
	return nil, nil
}

func (m *MockBudgetRepo) ListByMonth(ctx context.Context, userID int64, month, year int) ([]*budget.Budget, error) {
	if m.ListByMonthFunc != nil {
		return m.ListByMonthFunc(ctx, userID, month, year)
	}
	return nil, nil
}

func (m *MockBudgetRepo) Delete(ctx context.Context, id, userID int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, userID)
	}
	return nil
}

func nullLogger() logrus.FieldLogger {
	log, _ := test.NewNullLogger()
	return log
}

// newRequest builds a request authenticated as userID (0 means anonymous)
// carrying the given route variables.
func newRequest(method, target, body string, userID int64, vars map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if userID != 0 {
		req = req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, userID))
	}
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rr.Body.String(), err)
	}
	return v
}
