// Package identity describes who is performing an operation. An Identity is
// built per request from the session and passed explicitly into every use case.
package identity

import (
	"fmt"

	"topup/internal/core/domain/model/kernel"
	"topup/internal/pkg/errs"
)

// Role is the capability level of an authenticated user.
type Role string

const (
	RoleBuyer Role = "buyer"
	RoleAdmin Role = "admin"
)

// ParseRole accepts the persisted role names.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleBuyer, RoleAdmin:
		return Role(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%q is not a known role", s))
	}
}

// Identity is an authenticated user. The zero value means "nobody".
type Identity struct {
	UserID      kernel.UUID
	Username    string
	DisplayName string
	Role        Role
}

// Anonymous is the identity of a request without a session.
var Anonymous = Identity{}

// IsAuthenticated reports whether the identity refers to a user.
func (i Identity) IsAuthenticated() bool {
	return !i.UserID.IsZero()
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.IsAuthenticated() && i.Role == RoleAdmin
}

// Owns reports whether the identity is the given buyer.
func (i Identity) Owns(buyerID kernel.UUID) bool {
	return i.IsAuthenticated() && i.UserID.IsEqual(buyerID)
}

// RequireAuthenticated returns errs.ErrUnauthenticated for the anonymous identity.
func RequireAuthenticated(i Identity) error {
	if !i.IsAuthenticated() {
		return errs.ErrUnauthenticated
	}
	return nil
}

// RequireRole returns errs.ErrUnauthenticated without a user and
// errs.ErrForbidden when the user has a different role.
func RequireRole(i Identity, role Role) error {
	if err := RequireAuthenticated(i); err != nil {
		return err
	}
	if i.Role != role {
		return fmt.Errorf("%w: %s role required", errs.ErrForbidden, role)
	}
	return nil
}
