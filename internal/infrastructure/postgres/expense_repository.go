package postgres

import (
	"context"
	"database/sql"
	"errors"

	"expensemanager/internal/domain"
	"expensemanager/internal/domain/expense"
)

type ExpenseRepository struct {
	db *DB
}

func NewExpenseRepository(db *DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

const expenseColumns = `id, user_id, datetime, category, title, description, amount, mode, month, year, created_at, updated_at`

func scanExpense(row interface{ Scan(...any) error }) (*expense.Expense, error) {
	var e expense.Expense
	err := row.Scan(
		&e.ID, &e.UserID, &e.Datetime, &e.Category, &e.Title, &e.Description,
		&e.Amount, &e.Mode, &e.Month, &e.Year, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ExpenseRepository) Create(ctx context.Context, e *expense.Expense) (*expense.Expense, error) {
	query := `
		INSERT INTO expenses (user_id, datetime, category, title, description, amount, mode, month, year)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + expenseColumns

	created, err := scanExpense(r.db.QueryRowContext(ctx, query,
		e.UserID, e.Datetime, e.Category, e.Title, e.Description, e.Amount, e.Mode, e.Month, e.Year,
	))
	if isForeignKeyViolation(err) {
		return nil, domain.Invalid("user", "does not exist")
	}
	if err != nil {
		return nil, domain.Storage("create expense", err)
	}
	return created, nil
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id, userID int64) (*expense.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1 AND user_id = $2`

	e, err := scanExpense(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.Storage("get expense", err)
	}
	return e, nil
}

func (r *ExpenseRepository) ListByUserID(ctx context.Context, userID int64) ([]*expense.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE user_id = $1
		ORDER BY datetime DESC, id DESC`

	return r.list(ctx, "list expenses", query, userID)
}

func (r *ExpenseRepository) ListByMonth(ctx context.Context, userID int64, month, year int) ([]*expense.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE user_id = $1 AND month = $2 AND year = $3
		ORDER BY datetime DESC, id DESC`

	return r.list(ctx, "list expenses by month", query, userID, month, year)
}

func (r *ExpenseRepository) ListByCategory(ctx context.Context, userID int64, category string) ([]*expense.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE user_id = $1 AND category = $2
		ORDER BY datetime DESC, id DESC`

	return r.list(ctx, "list expenses by category", query, userID, category)
}

func (r *ExpenseRepository) list(ctx context.Context, op, query string, args ...any) ([]*expense.Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.Storage(op, err)
	}
	defer rows.Close()

	expenses := []*expense.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, domain.Storage(op, err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storage(op, err)
	}
	return expenses, nil
}

// Update writes every mutable column of e. The row must belong to e.UserID.
func (r *ExpenseRepository) Update(ctx context.Context, e *expense.Expense) (*expense.Expense, error) {
	query := `
		UPDATE expenses
		SET datetime = $1,
		    category = $2,
		    title = $3,
		    description = $4,
		    amount = $5,
		    mode = $6,
		    month = $7,
		    year = $8,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $9 AND user_id = $10
		RETURNING ` + expenseColumns

	updated, err := scanExpense(r.db.QueryRowContext(ctx, query,
		e.Datetime, e.Category, e.Title, e.Description, e.Amount, e.Mode, e.Month, e.Year,
		e.ID, e.UserID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, expense.ErrExpenseNotFound
	}
	if err != nil {
		return nil, domain.Storage("update expense", err)
	}
	return updated, nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id, userID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return domain.Storage("delete expense", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return domain.Storage("delete expense", err)
	}
	if rows == 0 {
		return expense.ErrExpenseNotFound
	}
	return nil
}

func (r *ExpenseRepository) SumByCategory(ctx context.Context, userID int64) ([]expense.CategoryTotal, error) {
	query := `
		SELECT category, SUM(amount)
		FROM expenses
		WHERE user_id = $1
		GROUP BY category
		ORDER BY category`

	return r.sums(ctx, "sum expenses by category", query, userID)
}

func (r *ExpenseRepository) SumByCategoryForMonth(ctx context.Context, userID int64, month, year int) ([]expense.CategoryTotal, error) {
	query := `
		SELECT category, SUM(amount)
		FROM expenses
		WHERE user_id = $1 AND month = $2 AND year = $3
		GROUP BY category
		ORDER BY category`

	return r.sums(ctx, "sum monthly expenses by category", query, userID, month, year)
}

func (r *ExpenseRepository) sums(ctx context.Context, op, query string, args ...any) ([]expense.CategoryTotal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.Storage(op, err)
	}
	defer rows.Close()

	totals := []expense.CategoryTotal{}
	for rows.Next() {
		var t expense.CategoryTotal
		if err := rows.Scan(&t.Category, &t.Total); err != nil {
			return nil, domain.Storage(op, err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storage(op, err)
	}
	return totals, nil
}
