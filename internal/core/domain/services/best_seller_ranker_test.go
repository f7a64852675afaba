package services_test

import (
	"errors"
	"testing"
	"time"

	"topup/internal/core/domain/model/catalog"
	"topup/internal/core/domain/model/kernel"
	"topup/internal/core/domain/services"
	"topup/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func tally(name string, count int, firstOffset time.Duration) services.PurchaseTally {
	return services.PurchaseTally{PackageName: name, Count: count, FirstOrderedAt: t0.Add(firstOffset)}
}

func catalogLookup(t *testing.T, names ...string) func(string) (catalog.Entry, bool, error) {
	t.Helper()
	entries := make(map[string]catalog.Entry, len(names))
	for i, name := range names {
		price, err := kernel.NewPrice(int64(1000 * (i + 1)))
		require.NoError(t, err)
		entry, err := catalog.NewEntry(name, price, name+".png")
		require.NoError(t, err)
		entries[name] = entry
	}
	return func(name string) (catalog.Entry, bool, error) {
		e, ok := entries[name]
		return e, ok, nil
	}
}

func TestBestSellerRanker_Rank(t *testing.T) {
	ranker := services.NewBestSellerRanker()

	t.Run("sorts by count descending and truncates", func(t *testing.T) {
		tallies := []services.PurchaseTally{
			tally("50 Gems", 1, 0),
			tally("100 Gems", 2, time.Minute),
			tally("500 Gems", 5, 2*time.Minute),
		}

		ranked, err := ranker.Rank(tallies, 2)

		require.NoError(t, err)
		require.Len(t, ranked, 2)
		assert.Equal(t, "500 Gems", ranked[0].PackageName)
		assert.Equal(t, "100 Gems", ranked[1].PackageName)
		assert.Equal(t, "50 Gems", tallies[0].PackageName, "input must not be reordered")
	})

	t.Run("breaks ties by first purchase then name", func(t *testing.T) {
		tallies := []services.PurchaseTally{
			tally("B", 3, time.Hour),
			tally("C", 3, 0),
			tally("A", 3, time.Hour),
		}

		ranked, err := ranker.Rank(tallies, 3)

		require.NoError(t, err)
		assert.Equal(t, []string{"C", "A", "B"}, names(ranked))
	})

	t.Run("returns fewer when there are fewer packages", func(t *testing.T) {
		ranked, err := ranker.Rank([]services.PurchaseTally{tally("A", 1, 0)}, 6)

		require.NoError(t, err)
		assert.Len(t, ranked, 1)
	})

	t.Run("rejects out of range limits", func(t *testing.T) {
		for _, n := range []int{0, -1, services.MaxBestSellerLimit + 1} {
			_, err := ranker.Rank(nil, n)
			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		}
	})
}

func TestBestSellerRanker_Join(t *testing.T) {
	ranker := services.NewBestSellerRanker()

	t.Run("scenario: two orders for 100 Gems and one for 50 Gems, top 1", func(t *testing.T) {
		ranked, err := ranker.Rank([]services.PurchaseTally{
			tally("100 Gems", 2, 0),
			tally("50 Gems", 1, time.Second),
		}, 1)
		require.NoError(t, err)

		result, err := ranker.Join(ranked, catalogLookup(t, "100 Gems", "50 Gems"))

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "100 Gems", result[0].Entry.Name())
		assert.Equal(t, 2, result[0].PurchaseCount)
	})

	t.Run("drops packages missing from catalog after truncation", func(t *testing.T) {
		ranked, err := ranker.Rank([]services.PurchaseTally{
			tally("Retired Pack", 9, 0),
			tally("100 Gems", 2, 0),
			tally("50 Gems", 1, 0),
		}, 2)
		require.NoError(t, err)

		result, err := ranker.Join(ranked, catalogLookup(t, "100 Gems", "50 Gems"))

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "100 Gems", result[0].Entry.Name())
	})

	t.Run("propagates lookup errors", func(t *testing.T) {
		boom := errors.New("catalog unavailable")

		_, err := ranker.Join([]services.PurchaseTally{tally("A", 1, 0)}, func(string) (catalog.Entry, bool, error) {
			return catalog.Entry{}, false, boom
		})

		require.ErrorIs(t, err, boom)
	})
}

func names(tallies []services.PurchaseTally) []string {
	out := make([]string, 0, len(tallies))
	for _, t := range tallies {
		out = append(out, t.PackageName)
	}
	return out
}
