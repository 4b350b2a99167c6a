package user

import (
	"context"

	"expensemanager/internal/shared/auth"
)

// Service handles registration and credential checks
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register hashes the password and stores a new user
func (s *Service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, CreateUserParams{
		Name:         params.Name,
		Username:     params.Username,
		PasswordHash: hash,
	})
}

// Authenticate returns the user matching the credentials. Unknown usernames and
// wrong passwords both yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := auth.VerifyPassword(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
