package catalog

import (
	"strings"

	"github.com/angelmondragon/luxehair/pkg/enums"
	"github.com/shopspring/decimal"
)

// Variant dimension keys as they appear in catalog data.
const (
	VariantLengths  = "lengths"
	VariantTextures = "textures"
	VariantColors   = "colors"
)

// Product is a read-only catalog record.
type Product struct {
	ID             string                `json:"id" validate:"required"`
	Name           string                `json:"name" validate:"required"`
	Category       enums.ProductCategory `json:"category" validate:"required,category"`
	Subcategory    string                `json:"subcategory,omitempty"`
	Brand          string                `json:"brand" validate:"required"`
	Price          decimal.Decimal       `json:"price"`
	OriginalPrice  *decimal.Decimal      `json:"originalPrice,omitempty"`
	Currency       enums.Currency        `json:"currency" validate:"required,currency"`
	Description    string                `json:"description"`
	Images         []string              `json:"images" validate:"dive,required"`
	Thumbnail      string                `json:"thumbnail,omitempty"`
	Variants       map[string][]string   `json:"variants,omitempty"`
	Specifications map[string]any        `json:"specifications,omitempty"`
	Features       []string              `json:"features,omitempty"`
	Rating         float64               `json:"rating" validate:"gte=0,lte=5"`
	ReviewCount    int                   `json:"reviewCount" validate:"gte=0"`
	InStock        bool                  `json:"inStock"`
	Inventory      int                   `json:"inventory" validate:"gte=0"`
	Tags           []string              `json:"tags,omitempty"`
	SEOTitle       string                `json:"seoTitle,omitempty"`
	SEODescription string                `json:"seoDescription,omitempty"`
	Featured       bool                  `json:"featured,omitempty"`
	Trending       bool                  `json:"trending,omitempty"`
	NewArrival     bool                  `json:"newArrival,omitempty"`
	BestSeller     bool                  `json:"bestSeller,omitempty"`
	OnSale         bool                  `json:"onSale,omitempty"`
}

// Spec returns a string-valued specification, or "" when absent or not text.
func (p Product) Spec(key string) string {
	if p.Specifications == nil {
		return ""
	}
	value, ok := p.Specifications[key].(string)
	if !ok {
		return ""
	}
	return value
}

// Texture is the primary texture specification.
func (p Product) Texture() string {
	return p.Spec("texture")
}

// HairType is the hairType specification.
func (p Product) HairType() string {
	return p.Spec("hairType")
}

// VariantValues returns the ordered values for a dimension.
func (p Product) VariantValues(dimension string) []string {
	if p.Variants == nil {
		return nil
	}
	return p.Variants[dimension]
}

// HasVariantValue reports whether value is one of the dimension's options.
func (p Product) HasVariantValue(dimension, value string) bool {
	for _, candidate := range p.VariantValues(dimension) {
		if candidate == value {
			return true
		}
	}
	return false
}

// PrimaryImage is the first product image, falling back to the thumbnail.
func (p Product) PrimaryImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return p.Thumbnail
}

// Category describes one top-level catalog section.
type Category struct {
	ID            enums.ProductCategory `json:"id" validate:"required,category"`
	Name          string                `json:"name" validate:"required"`
	Icon          string                `json:"icon,omitempty"`
	Subcategories []string              `json:"subcategories,omitempty"`
}

// HasSubcategory reports whether name is a listed subcategory.
func (c Category) HasSubcategory(name string) bool {
	for _, sub := range c.Subcategories {
		if strings.EqualFold(sub, name) {
			return true
		}
	}
	return false
}

// Deal is a fixed-price bundle of catalog products.
type Deal struct {
	ID            string          `json:"id" validate:"required"`
	Name          string          `json:"name" validate:"required"`
	Description   string          `json:"description"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	BundlePrice   decimal.Decimal `json:"bundlePrice"`
	Savings       decimal.Decimal `json:"savings"`
	Products      []string        `json:"products" validate:"min=1,dive,required"`
	Image         string          `json:"image,omitempty"`
}

// Data is the decoded shape of the embedded catalog document.
type Data struct {
	Products   []Product  `json:"products"`
	Categories []Category `json:"categories"`
	Deals      []Deal     `json:"deals"`
}
