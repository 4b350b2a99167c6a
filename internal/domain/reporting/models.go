package reporting

import "github.com/shopspring/decimal"

// CategorySummary compares what was spent in a category with its budget.
// Either side is zero when the category only appears on the other.
type CategorySummary struct {
	Category      string
	TotalExpenses decimal.Decimal
	TotalBudget   decimal.Decimal
}

type CategoryShare struct {
	Category      string
	TotalExpenses decimal.Decimal
	Percentage    decimal.Decimal
}

type PercentageBreakdown struct {
	TotalOverallExpense decimal.Decimal
	Categories          []CategoryShare
}

// OverallStatus reports spending against the Overall budget of a period.
// OverallBudget and Remaining are nil when no Overall budget was set.
type OverallStatus struct {
	TotalExpenses decimal.Decimal
	OverallBudget *decimal.Decimal
	Remaining     *decimal.Decimal
}
