package expense

import "context"

// Repository defines persistence for expenses. Every query is scoped to the
// owning user; GetByID returns nil when no matching row exists.
type Repository interface {
	Create(ctx context.Context, e *Expense) (*Expense, error)
	GetByID(ctx context.Context, id, userID int64) (*Expense, error)
	ListByUserID(ctx context.Context, userID int64) ([]*Expense, error)
	ListByMonth(ctx context.Context, userID int64, month, year int) ([]*Expense, error)
	ListByCategory(ctx context.Context, userID int64, category string) ([]*Expense, error)
	Update(ctx context.Context, e *Expense) (*Expense, error)
	Delete(ctx context.Context, id, userID int64) error
	SumByCategory(ctx context.Context, userID int64) ([]CategoryTotal, error)
	SumByCategoryForMonth(ctx context.Context, userID int64, month, year int) ([]CategoryTotal, error)
}
