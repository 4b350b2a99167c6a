package postgres

import (
	"context"

	"expensemanager/internal/domain"
	"expensemanager/internal/domain/budget"
)

type BudgetRepository struct {
	db *DB
}

func NewBudgetRepository(db *DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

const budgetColumns = `id, user_id, category, amount, month, year, created_at, updated_at`

// Upsert relies on the (user_id, category, month, year) unique constraint so
// concurrent calls for the same key leave exactly one row.
func (r *BudgetRepository) Upsert(ctx context.Context, userID int64, params budget.UpsertParams) (*budget.Budget, error) {
	query := `
		INSERT INTO budgets (user_id, category, amount, month, year)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, category, month, year) DO UPDATE SET
			amount = EXCLUDED.amount,
			updated_at = CURRENT_TIMESTAMP
		RETURNING ` + budgetColumns

	var b budget.Budget
	err := r.db.QueryRowContext(ctx, query,
		userID, params.Category, params.Amount, params.Month, params.Year,
	).Scan(&b.ID, &b.UserID, &b.Category, &b.Amount, &b.Month, &b.Year, &b.CreatedAt, &b.UpdatedAt)
	if isForeignKeyViolation(err) {
		return nil, domain.Invalid("user", "does not exist")
	}
	if err != nil {
		return nil, domain.Storage("upsert budget", err)
	}
	return &b, nil
}

func (r *BudgetRepository) ListByMonth(ctx context.Context, userID int64, month, year int) ([]*budget.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE user_id = $1 AND month = $2 AND year = $3
		ORDER BY category`

	rows, err := r.db.QueryContext(ctx, query, userID, month, year)
	if err != nil {
		return nil, domain.Storage("list budgets", err)
	}
	defer rows.Close()

	budgets := []*budget.Budget{}
	for rows.Next() {
		var b budget.Budget
		err := rows.Scan(&b.ID, &b.UserID, &b.Category, &b.Amount, &b.Month, &b.Year, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return nil, domain.Storage("scan budget", err)
		}
		budgets = append(budgets, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storage("iterate budgets", err)
	}
	return budgets, nil
}

func (r *BudgetRepository) Delete(ctx context.Context, id, userID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return domain.Storage("delete budget", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return domain.Storage("delete budget", err)
	}
	if rows == 0 {
		return budget.ErrBudgetNotFound
	}
	return nil
}
