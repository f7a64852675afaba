package queries

import (
	"context"

	"topup/internal/core/ports"
)

// CatalogItemView is one package as shown on the storefront.
type CatalogItemView struct {
	Name     string
	Price    int64
	ImageRef string
}

type GetCatalogQueryHandler struct {
	catalog ports.CatalogRepository
}

func NewGetCatalogQueryHandler(catalog ports.CatalogRepository) GetCatalogQueryHandler {
	return GetCatalogQueryHandler{catalog: catalog}
}

func (h GetCatalogQueryHandler) Handle(ctx context.Context, query GetCatalogQuery) ([]CatalogItemView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries, err := h.catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]CatalogItemView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, CatalogItemView{
			Name:     entry.Name(),
			Price:    entry.Price().Amount(),
			ImageRef: entry.ImageRef(),
		})
	}
	return views, nil
}
