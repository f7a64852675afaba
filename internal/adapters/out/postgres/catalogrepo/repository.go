// Package catalogrepo stores catalog entries with GORM.
package catalogrepo

import (
	"context"
	"errors"

	"topup/internal/core/domain/model/catalog"
	"topup/internal/core/domain/model/kernel"
	"topup/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EntryDTO is the row layout of the catalog table.
type EntryDTO struct {
	Name     string `gorm:"primaryKey"`
	Price    int64  `gorm:"not null"`
	ImageRef string
}

func (EntryDTO) TableName() string {
	return "catalog_entries"
}

func fromDomain(entry catalog.Entry) EntryDTO {
	return EntryDTO{
		Name:     entry.Name(),
		Price:    entry.Price().Amount(),
		ImageRef: entry.ImageRef(),
	}
}

func toDomain(dto EntryDTO) (catalog.Entry, error) {
	price, err := kernel.NewPrice(dto.Price)
	if err != nil {
		return catalog.Entry{}, err
	}
	return catalog.NewEntry(dto.Name, price, dto.ImageRef)
}

// GormCatalogRepository implements CatalogRepository using GORM.
type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// Get looks an entry up by its exact name.
func (r *GormCatalogRepository) Get(ctx context.Context, name string) (catalog.Entry, error) {
	var dto EntryDTO
	if err := r.db.WithContext(ctx).First(&dto, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalog.Entry{}, errs.NewObjectNotFoundError("package", name)
		}
		return catalog.Entry{}, err
	}

	return toDomain(dto)
}

// List returns the catalog cheapest first.
func (r *GormCatalogRepository) List(ctx context.Context) ([]catalog.Entry, error) {
	var dtos []EntryDTO
	if err := r.db.WithContext(ctx).Order("price, name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]catalog.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Add inserts the entry unless one with the same name exists.
func (r *GormCatalogRepository) Add(ctx context.Context, entry catalog.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
}
