package ports

import (
	"context"

	"topup/internal/core/domain/model/identity"
)

// UserCredentials is a stored account together with its password hash.
type UserCredentials struct {
	Identity     identity.Identity
	PasswordHash []byte
}

// UserRepository stores storefront accounts.
type UserRepository interface {
	// Add stores a new account. Returns errs.ErrConflict when the username is taken.
	Add(ctx context.Context, user UserCredentials) error

	// GetByUsername returns the account or errs.ErrObjectNotFound.
	GetByUsername(ctx context.Context, username string) (UserCredentials, error)
}
