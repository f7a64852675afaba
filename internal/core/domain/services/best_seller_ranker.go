package services

import (
	"cmp"
	"slices"
	"time"

	"topup/internal/core/domain/model/catalog"
	"topup/internal/pkg/errs"
)

const (
	// DefaultBestSellerLimit is how many packages the storefront shows.
	DefaultBestSellerLimit = 6
	// MaxBestSellerLimit caps the size of a requested listing.
	MaxBestSellerLimit = 100
)

// PurchaseTally is the number of orders placed for one package name.
// FirstOrderedAt is the creation time of the oldest of those orders.
type PurchaseTally struct {
	PackageName    string
	Count          int
	FirstOrderedAt time.Time
}

// BestSeller is a ranked package joined with its current catalog entry.
type BestSeller struct {
	Entry         catalog.Entry
	PurchaseCount int
}

// BestSellerRanker orders purchase tallies for display.
//
// Business rules:
//   - Every order counts, whatever its status
//   - Higher count ranks first; ties go to the package ordered first, then by name
//   - The list is cut to the requested size before the catalog join
//   - Packages missing from the catalog are dropped, so fewer than n may remain
type BestSellerRanker struct{}

func NewBestSellerRanker() BestSellerRanker {
	return BestSellerRanker{}
}

// ValidateLimit checks that n is within [1, MaxBestSellerLimit].
func (BestSellerRanker) ValidateLimit(n int) error {
	if n < 1 || n > MaxBestSellerLimit {
		return errs.NewValueIsOutOfRangeError("limit", n, 1, MaxBestSellerLimit)
	}
	return nil
}

// Rank sorts and truncates tallies to at most n entries. The input is not modified.
func (r BestSellerRanker) Rank(tallies []PurchaseTally, n int) ([]PurchaseTally, error) {
	if err := r.ValidateLimit(n); err != nil {
		return nil, err
	}

	ranked := slices.Clone(tallies)
	slices.SortStableFunc(ranked, func(a, b PurchaseTally) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		if c := a.FirstOrderedAt.Compare(b.FirstOrderedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.PackageName, b.PackageName)
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}

// Join attaches catalog entries to ranked tallies, silently dropping names the
// lookup does not know. lookup returns ok=false for missing names.
func (BestSellerRanker) Join(
	ranked []PurchaseTally,
	lookup func(name string) (catalog.Entry, bool, error),
) ([]BestSeller, error) {
	result := make([]BestSeller, 0, len(ranked))
	for _, tally := range ranked {
		entry, ok, err := lookup(tally.PackageName)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		result = append(result, BestSeller{
			Entry:         entry,
			PurchaseCount: tally.Count,
		})
	}
	return result, nil
}
