package user

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"expensemanager/internal/domain"
)

var (
	ErrUserNotFound       = fmt.Errorf("user %w", domain.ErrNotFound)
	ErrUsernameTaken      = fmt.Errorf("username already taken: %w", domain.ErrConflict)
	ErrInvalidCredentials = fmt.Errorf("invalid username or password: %w", domain.ErrUnauthenticated)
)

const minPasswordLength = 6

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CreateUserParams struct {
	Name         string
	Username     string
	PasswordHash string
}

type RegisterParams struct {
	Name     string
	Username string
	Password string
}

func (p *RegisterParams) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return domain.Invalid("name", "is required")
	}
	if utf8.RuneCountInString(p.Name) > 100 {
		return domain.Invalid("name", "must be 100 characters or less")
	}
	if strings.TrimSpace(p.Username) == "" {
		return domain.Invalid("username", "is required")
	}
	if strings.ContainsAny(p.Username, " \t\n") {
		return domain.Invalid("username", "must not contain whitespace")
	}
	if utf8.RuneCountInString(p.Username) > 50 {
		return domain.Invalid("username", "must be 50 characters or less")
	}
	if len(p.Password) < minPasswordLength {
		return domain.Invalid("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}
	// bcrypt ignores everything past 72 bytes
	if len(p.Password) > 72 {
		return domain.Invalid("password", "must be 72 bytes or less")
	}
	return nil
}
