package enums

import "fmt"

// ProductCategory represents the top-level shelves of the catalog.
type ProductCategory string

const (
	ProductCategoryWigs     ProductCategory = "wigs"
	ProductCategoryBundles  ProductCategory = "bundles"
	ProductCategoryFrontals ProductCategory = "frontals"
	ProductCategoryClosures ProductCategory = "closures"
	ProductCategoryCare     ProductCategory = "care"
)

var validProductCategories = []ProductCategory{
	ProductCategoryWigs,
	ProductCategoryBundles,
	ProductCategoryFrontals,
	ProductCategoryClosures,
	ProductCategoryCare,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

// ProductCategories lists the categories in shelf order.
func ProductCategories() []ProductCategory {
	out := make([]ProductCategory, len(validProductCategories))
	copy(out, validProductCategories)
	return out
}

// SortKey selects the ordering applied to catalog listings.
type SortKey string

const (
	SortFeatured   SortKey = "featured"
	SortBestseller SortKey = "bestseller"
	SortPriceLow   SortKey = "price-low"
	SortPriceHigh  SortKey = "price-high"
	SortRating     SortKey = "rating"
)

// DefaultSortKey is applied when no sort is requested.
const DefaultSortKey = SortFeatured

var validSortKeys = []SortKey{
	SortFeatured,
	SortBestseller,
	SortPriceLow,
	SortPriceHigh,
	SortRating,
}

// String implements fmt.Stringer.
func (k SortKey) String() string {
	return string(k)
}

// IsValid reports whether the value is a known SortKey.
func (k SortKey) IsValid() bool {
	for _, candidate := range validSortKeys {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseSortKey converts raw input into a SortKey.
func ParseSortKey(value string) (SortKey, error) {
	for _, candidate := range validSortKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q", value)
}

// Interaction names a shopper action recorded by analytics.
type Interaction string

const (
	InteractionAddToCart      Interaction = "add_to_cart"
	InteractionRemoveFromCart Interaction = "remove_from_cart"
	InteractionAddToWishlist  Interaction = "add_to_wishlist"
	InteractionQuickView      Interaction = "quick_view"
	InteractionCompare        Interaction = "compare"
	InteractionCheckout       Interaction = "initiate_checkout"
)

var validInteractions = []Interaction{
	InteractionAddToCart,
	InteractionRemoveFromCart,
	InteractionAddToWishlist,
	InteractionQuickView,
	InteractionCompare,
	InteractionCheckout,
}

// String implements fmt.Stringer.
func (i Interaction) String() string {
	return string(i)
}

// IsValid reports whether the value is a known Interaction.
func (i Interaction) IsValid() bool {
	for _, candidate := range validInteractions {
		if candidate == i {
			return true
		}
	}
	return false
}
