package budget

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"expensemanager/internal/domain"
)

var (
	budgetMeter        = otel.Meter("expensemanager/budget")
	budgetsUpserted, _ = budgetMeter.Int64Counter("budget.upserted",
		metric.WithDescription("Budgets created or replaced"),
	)
)

// Service contains the business logic for the budget ledger
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Upsert sets the budget of a category for a period, replacing any previous amount
func (s *Service) Upsert(ctx context.Context, userID int64, params UpsertParams) (*Budget, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	b, err := s.repo.Upsert(ctx, userID, params)
	if err != nil {
		return nil, err
	}
	budgetsUpserted.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("budget.overall", b.IsOverall()),
	))
	return b, nil
}

// ListByMonth returns every budget of the period, the Overall one included
func (s *Service) ListByMonth(ctx context.Context, userID int64, month, year int) ([]*Budget, error) {
	if err := domain.ValidatePeriod(month, year); err != nil {
		return nil, err
	}
	return s.repo.ListByMonth(ctx, userID, month, year)
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	return s.repo.Delete(ctx, id, userID)
}
