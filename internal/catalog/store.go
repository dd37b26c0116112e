package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	pkgerrors "github.com/angelmondragon/luxehair/pkg/errors"
	"github.com/angelmondragon/luxehair/pkg/enums"
	"github.com/angelmondragon/luxehair/pkg/logger"
	"github.com/angelmondragon/luxehair/pkg/validate"
	"go.uber.org/multierr"
)

//go:embed data/catalog.json
var embeddedCatalog []byte

// Store answers read-only queries over the product catalog. All returned
// slices are fresh copies; the products' variant and specification maps are
// shared and must not be modified by callers.
type Store struct {
	products   []Product
	index      map[string]int
	categories []Category
	deals      []Deal
}

var defaultStore = sync.OnceValues(func() (*Store, error) {
	return Decode(embeddedCatalog)
})

// Default returns the store over the catalog embedded at build time.
func Default() (*Store, error) {
	return defaultStore()
}

// Decode parses a catalog document and builds a validated store.
func Decode(raw []byte) (*Store, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	var data Data
	if err := decoder.Decode(&data); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDataError, err, "decode catalog")
	}
	return NewStore(data)
}

// NewStore validates data and returns a store over it. Invalid records are
// reported, never corrected: every violation found is combined into a single
// DATA_ERROR.
func NewStore(data Data) (*Store, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	s := &Store{
		products:   append([]Product(nil), data.Products...),
		index:      make(map[string]int, len(data.Products)),
		categories: append([]Category(nil), data.Categories...),
		deals:      append([]Deal(nil), data.Deals...),
	}
	for i, p := range s.products {
		s.index[p.ID] = i
	}
	return s, nil
}

// Validate checks every catalog record and cross-reference.
func Validate(data Data) error {
	var errs error
	seen := make(map[string]struct{}, len(data.Products))
	for i, p := range data.Products {
		if err := validateProduct(p); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("product[%d] %q: %w", i, p.ID, err))
		}
		if _, dup := seen[p.ID]; dup && p.ID != "" {
			errs = multierr.Append(errs, fmt.Errorf("product[%d]: duplicate id %q", i, p.ID))
		}
		seen[p.ID] = struct{}{}
	}

	for i, c := range data.Categories {
		if err := validate.Struct(c); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("category[%d] %q: %w", i, c.ID, err))
		}
	}

	for i, d := range data.Deals {
		if err := validateDeal(d, seen); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("deal[%d] %q: %w", i, d.ID, err))
		}
	}

	if errs == nil {
		return nil
	}
	violations := multierr.Errors(errs)
	messages := make([]string, 0, len(violations))
	for _, v := range violations {
		messages = append(messages, v.Error())
	}
	return pkgerrors.Wrap(pkgerrors.CodeDataError, errs, "catalog data is invalid").
		WithDetails(map[string]any{"violations": messages})
}

func validateProduct(p Product) error {
	err := validate.Struct(p)
	if p.Price.IsNegative() {
		err = multierr.Append(err, fmt.Errorf("price %s is negative", p.Price))
	}
	if p.OriginalPrice != nil && p.OriginalPrice.LessThan(p.Price) {
		err = multierr.Append(err, fmt.Errorf("originalPrice %s is below price %s", p.OriginalPrice, p.Price))
	}
	return err
}

func validateDeal(d Deal, productIDs map[string]struct{}) error {
	err := validate.Struct(d)
	if !d.BundlePrice.IsPositive() {
		err = multierr.Append(err, fmt.Errorf("bundlePrice %s must be positive", d.BundlePrice))
	}
	if !d.OriginalPrice.Sub(d.BundlePrice).Equal(d.Savings) {
		err = multierr.Append(err, fmt.Errorf("savings %s do not equal %s - %s", d.Savings, d.OriginalPrice, d.BundlePrice))
	}
	for _, id := range d.Products {
		if _, ok := productIDs[id]; !ok {
			err = multierr.Append(err, fmt.Errorf("references unknown product %q", id))
		}
	}
	return err
}

// ListAll returns every product in catalog order.
func (s *Store) ListAll() []Product {
	return append([]Product(nil), s.products...)
}

// Len reports the number of products.
func (s *Store) Len() int {
	return len(s.products)
}

// FindByID returns the product with id or NOT_FOUND.
func (s *Store) FindByID(id string) (Product, error) {
	i, ok := s.index[id]
	if !ok {
		return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
			WithDetails(map[string]any{"product_id": id})
	}
	return s.products[i], nil
}

// Lookup is FindByID without the error value.
func (s *Store) Lookup(id string) (Product, bool) {
	i, ok := s.index[id]
	if !ok {
		return Product{}, false
	}
	return s.products[i], true
}

// ProductsByID resolves ids in order, skipping those not in the catalog.
func (s *Store) ProductsByID(ids []string) []Product {
	out := make([]Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.Lookup(id); ok {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the category taxonomy in display order.
func (s *Store) Categories() []Category {
	return append([]Category(nil), s.categories...)
}

// Category returns the taxonomy entry for id.
func (s *Store) Category(id enums.ProductCategory) (Category, error) {
	for _, c := range s.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, pkgerrors.New(pkgerrors.CodeNotFound, "category not found").
		WithDetails(map[string]any{"category": id.String()})
}

// Deals returns the bundle deals.
func (s *Store) Deals() []Deal {
	return append([]Deal(nil), s.deals...)
}

// DealProducts resolves the products a deal contains.
func (s *Store) DealProducts(dealID string) ([]Product, error) {
	for _, d := range s.deals {
		if d.ID == dealID {
			return s.ProductsByID(d.Products), nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "deal not found").
		WithDetails(map[string]any{"deal_id": dealID})
}

// IsInStock reports whether id is flagged in stock with positive inventory.
// Unknown ids are out of stock.
func (s *Store) IsInStock(id string) bool {
	p, ok := s.Lookup(id)
	return ok && p.InStock && p.Inventory > 0
}

// StockLevel returns the inventory count for id, zero when unknown.
func (s *Store) StockLevel(id string) int {
	p, ok := s.Lookup(id)
	if !ok {
		return 0
	}
	return p.Inventory
}

// LogSummary writes catalog sizes at info level.
func (s *Store) LogSummary(ctx context.Context, logg *logger.Logger) {
	ctx = logg.WithFields(ctx, map[string]any{
		"products":   len(s.products),
		"categories": len(s.categories),
		"deals":      len(s.deals),
	})
	logg.Info(ctx, "catalog loaded")
}
