package user

import "context"

// Repository defines the interface for user data access
type Repository interface {
	// Create returns ErrUsernameTaken when the username is already registered
	Create(ctx context.Context, params CreateUserParams) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	// GetByUsername returns nil when no user has that username
	GetByUsername(ctx context.Context, username string) (*User, error)
}
