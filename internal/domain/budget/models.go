package budget

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"expensemanager/internal/domain"
)

// OverallCategory labels the whole-month budget of a user.
const OverallCategory = "Overall"

const maxCategoryLength = 100

var ErrBudgetNotFound = fmt.Errorf("budget %w", domain.ErrNotFound)

type Budget struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"-"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Month     int             `json:"month"`
	Year      int             `json:"year"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (b *Budget) OwnerID() int64 { return b.UserID }

// IsOverall reports whether b is the whole-month budget.
func (b *Budget) IsOverall() bool {
	return b.Category == OverallCategory
}

type UpsertParams struct {
	Category string
	Amount   decimal.Decimal
	Month    int
	Year     int
}

func (p *UpsertParams) Validate() error {
	if strings.TrimSpace(p.Category) == "" {
		return domain.Invalid("category", "is required")
	}
	if utf8.RuneCountInString(p.Category) > maxCategoryLength {
		return domain.Invalid("category", fmt.Sprintf("must be %d characters or less", maxCategoryLength))
	}
	if err := domain.ValidatePeriod(p.Month, p.Year); err != nil {
		return err
	}
	return domain.ValidateAmount("amount", p.Amount)
}
