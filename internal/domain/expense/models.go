package expense

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"expensemanager/internal/domain"
)

var ErrExpenseNotFound = fmt.Errorf("expense %w", domain.ErrNotFound)

const (
	maxCategoryLength = 100
	maxTitleLength    = 255
	maxModeLength     = 50
)

type Expense struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"-"`
	Datetime    time.Time       `json:"datetime"`
	Category    string          `json:"category"`
	Title       string          `json:"title"`
	Description *string         `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Mode        string          `json:"mode"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (e *Expense) OwnerID() int64 { return e.UserID }

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// DeriveMonthYear returns the calendar month and year of ts in UTC.
func DeriveMonthYear(ts time.Time) (month, year int) {
	u := ts.UTC()
	return int(u.Month()), u.Year()
}

type CreateParams struct {
	Datetime    time.Time
	Category    string
	Title       string
	Description *string
	Amount      decimal.Decimal
	Mode        string
}

func (p *CreateParams) Validate() error {
	if p.Datetime.IsZero() {
		return domain.Invalid("datetime", "is required")
	}
	if err := validateText("category", p.Category, maxCategoryLength); err != nil {
		return err
	}
	if err := validateText("title", p.Title, maxTitleLength); err != nil {
		return err
	}
	if err := validateText("mode", p.Mode, maxModeLength); err != nil {
		return err
	}
	return domain.ValidateAmount("amount", p.Amount)
}

// UpdateParams carries a partial update; nil fields keep their stored value.
type UpdateParams struct {
	Datetime    *time.Time
	Category    *string
	Title       *string
	Description *string
	Amount      *decimal.Decimal
	Mode        *string
}

func (p *UpdateParams) Validate() error {
	if p.Datetime != nil && p.Datetime.IsZero() {
		return domain.Invalid("datetime", "must be a valid timestamp")
	}
	if p.Category != nil {
		if err := validateText("category", *p.Category, maxCategoryLength); err != nil {
			return err
		}
	}
	if p.Title != nil {
		if err := validateText("title", *p.Title, maxTitleLength); err != nil {
			return err
		}
	}
	if p.Mode != nil {
		if err := validateText("mode", *p.Mode, maxModeLength); err != nil {
			return err
		}
	}
	if p.Amount != nil {
		return domain.ValidateAmount("amount", *p.Amount)
	}
	return nil
}

// apply merges the supplied fields into e and keeps month and year in step
// with the timestamp.
func (p *UpdateParams) apply(e *Expense) {
	if p.Datetime != nil {
		e.Datetime = *p.Datetime
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = p.Description
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Mode != nil {
		e.Mode = *p.Mode
	}
	e.Month, e.Year = DeriveMonthYear(e.Datetime)
}

func validateText(field, value string, max int) error {
	if strings.TrimSpace(value) == "" {
		return domain.Invalid(field, "is required")
	}
	if utf8.RuneCountInString(value) > max {
		return domain.Invalid(field, fmt.Sprintf("must be %d characters or less", max))
	}
	return nil
}
