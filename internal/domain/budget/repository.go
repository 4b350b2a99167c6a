package budget

import "context"

// Repository defines persistence for budgets.
type Repository interface {
	// Upsert inserts the budget or replaces the amount of the existing
	// (user, category, month, year) row in a single statement.
	Upsert(ctx context.Context, userID int64, params UpsertParams) (*Budget, error)
	ListByMonth(ctx context.Context, userID int64, month, year int) ([]*Budget, error)
	Delete(ctx context.Context, id, userID int64) error
}
