package catalog

import (
	"strings"

	"github.com/angelmondragon/luxehair/pkg/enums"
	"github.com/shopspring/decimal"
)

// All disables a selector when used as its value.
const All = "all"

// Criteria selects products. Empty selectors behave like All and a zero
// PriceMax means no upper bound. Sort orders the result; an empty key keeps
// catalog order.
type Criteria struct {
	Category string
	PriceMin decimal.Decimal
	PriceMax decimal.Decimal
	Length   string
	Texture  string
	Brand    string
	Sort     enums.SortKey
}

// DefaultCriteria matches every product priced within [0, 1000] and keeps
// catalog order.
func DefaultCriteria() Criteria {
	return Criteria{
		Category: All,
		PriceMin: decimal.Zero,
		PriceMax: decimal.NewFromInt(1000),
		Length:   All,
		Texture:  All,
		Brand:    All,
	}
}

// WithSort returns a copy of c ordered by key.
func (c Criteria) WithSort(key enums.SortKey) Criteria {
	c.Sort = key
	return c
}

// Matches applies the predicates in order: category, inclusive price range,
// length substring, texture, brand.
func (c Criteria) Matches(p Product) bool {
	if active(c.Category) && p.Category.String() != c.Category {
		return false
	}
	if p.Price.LessThan(c.PriceMin) {
		return false
	}
	if !c.PriceMax.IsZero() && p.Price.GreaterThan(c.PriceMax) {
		return false
	}
	if active(c.Length) {
		lengths := p.VariantValues(VariantLengths)
		// products without length options are not excluded
		if len(lengths) > 0 && !anyContains(lengths, c.Length) {
			return false
		}
	}
	if active(c.Texture) {
		texture := p.Texture()
		if texture != "" && !strings.EqualFold(texture, c.Texture) {
			return false
		}
	}
	if active(c.Brand) && p.Brand != c.Brand {
		return false
	}
	return true
}

// Filter returns matching products ordered by criteria.Sort.
func (s *Store) Filter(criteria Criteria) []Product {
	matched := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if criteria.Matches(p) {
			matched = append(matched, p)
		}
	}
	if criteria.Sort == "" {
		return matched
	}
	return Sort(matched, criteria.Sort)
}

func active(selector string) bool {
	selector = strings.TrimSpace(selector)
	return selector != "" && selector != All
}

func anyContains(values []string, token string) bool {
	for _, v := range values {
		if strings.Contains(v, token) {
			return true
		}
	}
	return false
}
