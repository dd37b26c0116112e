package catalog

import (
	"slices"

	"github.com/angelmondragon/luxehair/pkg/enums"
)

// Sort returns a reordered copy of products. Price and rating orderings are
// stable for ties; bestseller and featured are stable partitions with the
// flagged products first. Unknown keys sort as featured.
func Sort(products []Product, key enums.SortKey) []Product {
	sorted := append([]Product(nil), products...)
	switch key {
	case enums.SortPriceLow:
		slices.SortStableFunc(sorted, func(a, b Product) int { return a.Price.Cmp(b.Price) })
	case enums.SortPriceHigh:
		slices.SortStableFunc(sorted, func(a, b Product) int { return b.Price.Cmp(a.Price) })
	case enums.SortRating:
		slices.SortStableFunc(sorted, func(a, b Product) int { return compareFloat(b.Rating, a.Rating) })
	case enums.SortBestseller:
		return partition(sorted, func(p Product) bool { return p.BestSeller })
	default:
		return partition(sorted, func(p Product) bool { return p.Featured })
	}
	return sorted
}

func partition(products []Product, flagged func(Product) bool) []Product {
	out := make([]Product, 0, len(products))
	rest := make([]Product, 0, len(products))
	for _, p := range products {
		if flagged(p) {
			out = append(out, p)
		} else {
			rest = append(rest, p)
		}
	}
	return append(out, rest...)
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
