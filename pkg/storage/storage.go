package storage

import (
	"context"
)

// Fixed keys the storefront keeps on the shopper's device.
const (
	KeyCart             = "cart"
	KeySelectedCurrency = "selectedCurrency"
	KeyWishlist         = "wishlist"
	KeyRecentlyViewed   = "recentlyViewed"
	KeyComparison       = "comparison"
	KeyUserID           = "userId"
)

// Storage is the durable key/value collaborator behind every store.
// Load reports ok=false when the key has never been written.
type Storage interface {
	Load(ctx context.Context, key string) (value string, ok bool, err error)
	Save(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
