package expense

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"expensemanager/internal/domain"
)

var (
	expenseMeter       = otel.Meter("expensemanager/expense")
	expensesCreated, _ = expenseMeter.Int64Counter("expense.created",
		metric.WithDescription("Expenses recorded"),
	)
)

// Service contains the business logic for the expense ledger
type Service struct {
	repo Repository
}

// NewService creates a new expense service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates params, derives the period from the timestamp and stores the expense
func (s *Service) Create(ctx context.Context, userID int64, params CreateParams) (*Expense, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	e := &Expense{
		UserID:      userID,
		Datetime:    params.Datetime,
		Category:    params.Category,
		Title:       params.Title,
		Description: params.Description,
		Amount:      params.Amount,
		Mode:        params.Mode,
	}
	e.Month, e.Year = DeriveMonthYear(e.Datetime)

	created, err := s.repo.Create(ctx, e)
	if err != nil {
		return nil, err
	}
	expensesCreated.Add(ctx, 1)
	return created, nil
}

func (s *Service) ListAll(ctx context.Context, userID int64) ([]*Expense, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// GetByID returns ErrExpenseNotFound for missing expenses and for expenses of other users
func (s *Service) GetByID(ctx context.Context, userID, id int64) (*Expense, error) {
	return domain.FindOwned(ctx, s.repo.GetByID, id, userID, ErrExpenseNotFound)
}

func (s *Service) ListByMonth(ctx context.Context, userID int64, month, year int) ([]*Expense, error) {
	if err := domain.ValidatePeriod(month, year); err != nil {
		return nil, err
	}
	return s.repo.ListByMonth(ctx, userID, month, year)
}

// ListByCategory matches the category exactly, case included
func (s *Service) ListByCategory(ctx context.Context, userID int64, category string) ([]*Expense, error) {
	if category == "" {
		return nil, domain.Invalid("category", "is required")
	}
	return s.repo.ListByCategory(ctx, userID, category)
}

// Update merges params into the stored expense and re-derives its period
func (s *Service) Update(ctx context.Context, userID, id int64, params UpdateParams) (*Expense, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	existing, err := domain.FindOwned(ctx, s.repo.GetByID, id, userID, ErrExpenseNotFound)
	if err != nil {
		return nil, err
	}

	params.apply(existing)
	return s.repo.Update(ctx, existing)
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	return s.repo.Delete(ctx, id, userID)
}

// AggregateByCategory sums all expenses of the user per category, across all periods
func (s *Service) AggregateByCategory(ctx context.Context, userID int64) ([]CategoryTotal, error) {
	return s.repo.SumByCategory(ctx, userID)
}
