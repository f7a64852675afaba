package queries

import (
	"context"
	"errors"

	"topup/internal/core/domain/model/catalog"
	"topup/internal/core/domain/services"
	"topup/internal/core/ports"
	"topup/internal/pkg/errs"

	"gorm.io/gorm"
)

// BestSellerView is one ranked package with its current catalog data.
type BestSellerView struct {
	Name          string
	Price         int64
	ImageRef      string
	PurchaseCount int
}

// GetBestSellersQueryHandler tallies orders per package name in SQL and
// leaves ranking and the catalog join to services.BestSellerRanker.
type GetBestSellersQueryHandler struct {
	db      *gorm.DB
	catalog ports.CatalogRepository
	ranker  services.BestSellerRanker
}

func NewGetBestSellersQueryHandler(db *gorm.DB, catalog ports.CatalogRepository) GetBestSellersQueryHandler {
	return GetBestSellersQueryHandler{
		db:      db,
		catalog: catalog,
		ranker:  services.NewBestSellerRanker(),
	}
}

func (h GetBestSellersQueryHandler) Handle(ctx context.Context, query GetBestSellersQuery) ([]BestSellerView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tallies, err := h.tally(ctx)
	if err != nil {
		return nil, err
	}

	ranked, err := h.ranker.Rank(tallies, query.Limit())
	if err != nil {
		return nil, err
	}

	sellers, err := h.ranker.Join(ranked, func(name string) (catalog.Entry, bool, error) {
		entry, err := h.catalog.Get(ctx, name)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return catalog.Entry{}, false, nil
		}
		if err != nil {
			return catalog.Entry{}, false, err
		}
		return entry, true, nil
	})
	if err != nil {
		return nil, err
	}

	views := make([]BestSellerView, 0, len(sellers))
	for _, seller := range sellers {
		views = append(views, BestSellerView{
			Name:          seller.Entry.Name(),
			Price:         seller.Entry.Price().Amount(),
			ImageRef:      seller.Entry.ImageRef(),
			PurchaseCount: seller.PurchaseCount,
		})
	}
	return views, nil
}

func (h GetBestSellersQueryHandler) tally(ctx context.Context) ([]services.PurchaseTally, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			package_name,
			COUNT(*),
			MIN(created_at)
		FROM orders
		GROUP BY package_name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tallies := make([]services.PurchaseTally, 0)
	for rows.Next() {
		var tally services.PurchaseTally
		if err := rows.Scan(&tally.PackageName, &tally.Count, &tally.FirstOrderedAt); err != nil {
			return nil, err
		}
		tallies = append(tallies, tally)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tallies, nil
}
