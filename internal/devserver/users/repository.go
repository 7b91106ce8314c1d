// Package users holds the devserver's account storage and business logic:
// signup, password and OAuth login, and the role/profile mutations the
// client's onboarding drives.
package users

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

// Repository is the account store. Implementations: memory (default) and
// postgres (selected by DSN).
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) (*User, error)

	// InTx runs fn against a transactional view of the store, so a
	// read-modify-write sequence observes and applies a consistent state.
	InTx(ctx context.Context, fn func(Repository) error) error
}
