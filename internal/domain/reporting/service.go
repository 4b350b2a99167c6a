package reporting

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"expensemanager/internal/domain"
	"expensemanager/internal/domain/budget"
	"expensemanager/internal/domain/expense"
)

var hundred = decimal.NewFromInt(100)

// ExpenseTotals sums a user's expenses per category for one period.
type ExpenseTotals interface {
	SumByCategoryForMonth(ctx context.Context, userID int64, month, year int) ([]expense.CategoryTotal, error)
}

// BudgetLister lists a user's budgets for one period.
type BudgetLister interface {
	ListByMonth(ctx context.Context, userID int64, month, year int) ([]*budget.Budget, error)
}

// Service builds read-only reports over the expense and budget ledgers
type Service struct {
	expenses ExpenseTotals
	budgets  BudgetLister
}

func NewService(expenses ExpenseTotals, budgets BudgetLister) *Service {
	return &Service{expenses: expenses, budgets: budgets}
}

// CategoryBreakdown returns, for every category that has expenses or a budget in
// the period, the spent total next to the budgeted amount. Rows are sorted by category.
func (s *Service) CategoryBreakdown(ctx context.Context, userID int64, month, year int) ([]CategorySummary, error) {
	totals, budgets, err := s.load(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string]*CategorySummary, len(totals)+len(budgets))
	row := func(category string) *CategorySummary {
		if r, ok := byCategory[category]; ok {
			return r
		}
		r := &CategorySummary{Category: category, TotalExpenses: decimal.Zero, TotalBudget: decimal.Zero}
		byCategory[category] = r
		return r
	}

	for _, t := range totals {
		r := row(t.Category)
		r.TotalExpenses = r.TotalExpenses.Add(t.Total)
	}
	for _, b := range budgets {
		row(b.Category).TotalBudget = b.Amount
	}

	out := make([]CategorySummary, 0, len(byCategory))
	for _, r := range byCategory {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

// ExpensePercentageBreakdown returns each category's share of the period's
// spending, rounded to two decimals. Shares are zero when nothing was spent.
func (s *Service) ExpensePercentageBreakdown(ctx context.Context, userID int64, month, year int) (*PercentageBreakdown, error) {
	if err := domain.ValidatePeriod(month, year); err != nil {
		return nil, err
	}

	totals, err := s.expenses.SumByCategoryForMonth(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}

	grand := sum(totals)
	shares := make([]CategoryShare, 0, len(totals))
	for _, t := range totals {
		shares = append(shares, CategoryShare{
			Category:      t.Category,
			TotalExpenses: t.Total,
			Percentage:    percentage(t.Total, grand),
		})
	}

	return &PercentageBreakdown{
		TotalOverallExpense: grand,
		Categories:          shares,
	}, nil
}

// OverallStatus compares the period's total spending with its Overall budget.
func (s *Service) OverallStatus(ctx context.Context, userID int64, month, year int) (*OverallStatus, error) {
	totals, budgets, err := s.load(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}

	status := &OverallStatus{TotalExpenses: sum(totals)}
	for _, b := range budgets {
		if !b.IsOverall() {
			continue
		}
		amount := b.Amount
		remaining := amount.Sub(status.TotalExpenses)
		status.OverallBudget = &amount
		status.Remaining = &remaining
		break
	}
	return status, nil
}

// load reads the expense totals and the budgets of a period concurrently.
func (s *Service) load(ctx context.Context, userID int64, month, year int) ([]expense.CategoryTotal, []*budget.Budget, error) {
	if err := domain.ValidatePeriod(month, year); err != nil {
		return nil, nil, err
	}

	var (
		totals  []expense.CategoryTotal
		budgets []*budget.Budget
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = s.expenses.SumByCategoryForMonth(gctx, userID, month, year)
		return err
	})
	g.Go(func() error {
		var err error
		budgets, err = s.budgets.ListByMonth(gctx, userID, month, year)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return totals, budgets, nil
}

func sum(totals []expense.CategoryTotal) decimal.Decimal {
	total := decimal.Zero
	for _, t := range totals {
		total = total.Add(t.Total)
	}
	return total
}

func percentage(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole).Round(2)
}
