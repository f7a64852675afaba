package postgres

import (
	"topup/internal/adapters/out/postgres/catalogrepo"
	"topup/internal/adapters/out/postgres/orderrepo"
	"topup/internal/adapters/out/postgres/userrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the storefront uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&catalogrepo.EntryDTO{},
		&userrepo.UserDTO{},
	)
}
