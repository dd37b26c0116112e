package catalog

import "github.com/angelmondragon/luxehair/pkg/enums"

// Default limits used by the storefront's home page sections.
const (
	DefaultFeaturedLimit    = 6
	DefaultTrendingLimit    = 6
	DefaultBestSellingLimit = 4
	DefaultNewArrivalsLimit = 8
	DefaultRelatedLimit     = 4
	DefaultRecentLimit      = 5
)

// Featured returns up to limit featured products in catalog order.
func (s *Store) Featured(limit int) []Product {
	return s.take(func(p Product) bool { return p.Featured }, limit)
}

// Trending returns up to limit trending products.
func (s *Store) Trending(limit int) []Product {
	return s.take(func(p Product) bool { return p.Trending }, limit)
}

// BestSelling returns up to limit best sellers.
func (s *Store) BestSelling(limit int) []Product {
	return s.take(func(p Product) bool { return p.BestSeller }, limit)
}

// NewArrivals returns up to limit new arrivals.
func (s *Store) NewArrivals(limit int) []Product {
	return s.take(func(p Product) bool { return p.NewArrival }, limit)
}

// ByCategory returns products in category; limit <= 0 returns all of them.
func (s *Store) ByCategory(category enums.ProductCategory, limit int) []Product {
	return s.take(func(p Product) bool { return p.Category == category }, limit)
}

// Related returns other products in the same category as id. Unknown ids
// yield an empty result.
func (s *Store) Related(id string, limit int) []Product {
	source, ok := s.Lookup(id)
	if !ok {
		return []Product{}
	}
	return s.take(func(p Product) bool {
		return p.ID != id && p.Category == source.Category
	}, limit)
}

// take filters in catalog order, truncating when limit > 0.
func (s *Store) take(keep func(Product) bool, limit int) []Product {
	out := make([]Product, 0)
	for _, p := range s.products {
		if limit > 0 && len(out) >= limit {
			break
		}
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
