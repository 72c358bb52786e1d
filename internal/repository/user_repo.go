// internal/repository/user_repo.go
package repository

import (
	"context"

	"sportsbook/internal/domain"
)

// UserRepository defines the interface for account data operations.
type UserRepository interface {
	// CreateUser adds a new account using the provided DBExecutor.
	CreateUser(ctx context.Context, q DBExecutor, user *domain.User) error
	// GetUserByID retrieves an account by its ID.
	GetUserByID(ctx context.Context, q DBExecutor, id string) (*domain.User, error)
	// GetUserByEmail retrieves an account by email, matched case-insensitively.
	GetUserByEmail(ctx context.Context, q DBExecutor, email string) (*domain.User, error)
}
