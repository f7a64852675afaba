// Package userrepo stores storefront accounts with GORM.
package userrepo

import (
	"context"
	"errors"
	"fmt"

	"topup/internal/core/domain/model/identity"
	"topup/internal/core/domain/model/kernel"
	"topup/internal/core/ports"
	"topup/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserDTO is the row layout of the users table.
type UserDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null"`
	DisplayName  string
	Role         string `gorm:"type:varchar(16);not null"`
	PasswordHash []byte `gorm:"not null"`
}

func (UserDTO) TableName() string {
	return "users"
}

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Add inserts a new account; a taken username yields errs.ErrConflict.
func (r *GormUserRepository) Add(ctx context.Context, user ports.UserCredentials) error {
	if err := user.Identity.UserID.Validate(); err != nil {
		return err
	}
	if user.Identity.Username == "" {
		return errs.NewValueIsRequiredError("username")
	}
	if len(user.PasswordHash) == 0 {
		return errs.NewValueIsRequiredError("password hash")
	}

	dto := UserDTO{
		ID:           user.Identity.UserID.Bytes(),
		Username:     user.Identity.Username,
		DisplayName:  user.Identity.DisplayName,
		Role:         string(user.Identity.Role),
		PasswordHash: user.PasswordHash,
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "username"}}, DoNothing: true}).
		Create(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConflictErrorWithCause("username", fmt.Errorf("%q is already taken", user.Identity.Username))
	}
	return nil
}

// GetByUsername loads an account with its password hash.
func (r *GormUserRepository) GetByUsername(ctx context.Context, username string) (ports.UserCredentials, error) {
	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.UserCredentials{}, errs.NewObjectNotFoundError("user", username)
		}
		return ports.UserCredentials{}, err
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.UserCredentials{}, err
	}
	role, err := identity.ParseRole(dto.Role)
	if err != nil {
		return ports.UserCredentials{}, err
	}

	return ports.UserCredentials{
		Identity: identity.Identity{
			UserID:      id,
			Username:    dto.Username,
			DisplayName: dto.DisplayName,
			Role:        role,
		},
		PasswordHash: dto.PasswordHash,
	}, nil
}
