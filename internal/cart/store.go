package cart

import (
	"context"
	"sync"
	"time"

	"github.com/angelmondragon/luxehair/internal/catalog"
	"github.com/angelmondragon/luxehair/internal/pricing"
	pkgerrors "github.com/angelmondragon/luxehair/pkg/errors"
	"github.com/angelmondragon/luxehair/pkg/enums"
	"github.com/angelmondragon/luxehair/pkg/logger"
	"github.com/angelmondragon/luxehair/pkg/metrics"
	"github.com/angelmondragon/luxehair/pkg/storage"
	"github.com/angelmondragon/luxehair/pkg/validate"
	"github.com/shopspring/decimal"
)

const metricsStore = "cart"

// Params groups dependencies for the cart store.
type Params struct {
	Storage         storage.Storage
	Pricing         *pricing.Engine
	Logger          *logger.Logger
	Metrics         *metrics.StoreMetrics
	DefaultCurrency enums.Currency
	Now             func() time.Time
}

// AddInput describes a product selection being put in the cart.
type AddInput struct {
	ProductID     string            `json:"productId" validate:"required"`
	Name          string            `json:"name" validate:"required"`
	UnitPrice     decimal.Decimal   `json:"price"`
	OriginalPrice *decimal.Decimal  `json:"originalPrice"`
	Image         string            `json:"image"`
	Category      string            `json:"category"`
	Variant       map[string]string `json:"variant"`
	Quantity      int               `json:"quantity"`
}

// FromProduct builds the input for adding quantity of p with the given
// selection, pricing the line with the selected length's multiplier.
func FromProduct(engine *pricing.Engine, p catalog.Product, variant map[string]string, quantity int) AddInput {
	variant = normalizeVariant(variant)
	unit := engine.ApplyVariantMultiplier(p.Price, DimensionLength, variant[DimensionLength])
	var original *decimal.Decimal
	if p.OriginalPrice != nil {
		o := engine.ApplyVariantMultiplier(*p.OriginalPrice, DimensionLength, variant[DimensionLength])
		original = &o
	}
	return AddInput{
		ProductID:     p.ID,
		Name:          p.Name,
		UnitPrice:     unit,
		OriginalPrice: original,
		Image:         p.PrimaryImage(),
		Category:      p.Category.String(),
		Variant:       variant,
		Quantity:      quantity,
	}
}

// Store is the shopper's cart: an ordered list of lines plus the selected
// display currency, written through to storage after every change. A failed
// write is returned as PERSISTENCE_FAILURE but the change is kept in memory.
type Store struct {
	mu       sync.RWMutex
	items    []Item
	currency enums.Currency

	storage storage.Storage
	pricing *pricing.Engine
	logg    *logger.Logger
	metrics *metrics.StoreMetrics
	now     func() time.Time
}

// NewStore builds a cart store and loads any persisted state.
func NewStore(ctx context.Context, params Params) (*Store, error) {
	if params.Storage == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storage is required")
	}
	if params.Pricing == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pricing engine is required")
	}
	currency := params.DefaultCurrency
	if currency == "" {
		currency = params.Pricing.Base()
	}
	if !params.Pricing.Supports(currency) {
		return nil, pkgerrors.New(pkgerrors.CodeUnknownCurrency, "default currency is not supported").
			WithDetails(map[string]any{"currency": currency.String()})
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}

	s := &Store{
		items:    []Item{},
		currency: currency,
		storage:  params.Storage,
		pricing:  params.Pricing,
		logg:     params.Logger,
		metrics:  params.Metrics,
		now:      now,
	}
	s.load(ctx)
	return s, nil
}

func (s *Store) load(ctx context.Context) {
	var items []Item
	keyCtx := s.logg.WithStorageKey(ctx, storage.KeyCart)
	status, err := storage.LoadJSON(ctx, s.storage, storage.KeyCart, &items)
	switch {
	case err != nil:
		s.logg.WarnErr(keyCtx, "cart could not be loaded, starting empty", err)
	case status == storage.StatusMalformed:
		s.logg.Warn(keyCtx, "stored cart is malformed, starting empty")
	case status == storage.StatusFound:
		s.items = sanitize(items)
	}

	currencyCtx := s.logg.WithStorageKey(ctx, storage.KeySelectedCurrency)
	raw, ok, err := storage.LoadString(ctx, s.storage, storage.KeySelectedCurrency)
	if err != nil {
		s.logg.WarnErr(currencyCtx, "selected currency could not be loaded", err)
		return
	}
	if !ok || raw == "" {
		return
	}
	currency, err := s.pricing.ParseCurrency(raw)
	if err != nil {
		s.logg.WarnErr(s.logg.WithField(currencyCtx, "currency", raw), "stored currency is not supported, keeping default", err)
		return
	}
	s.currency = currency
}

// sanitize drops lines that could never have been added and folds lines
// sharing an identity into the first one. Ids are re-derived so payloads that
// keyed every line by product id get one distinct id per selection.
func sanitize(items []Item) []Item {
	out := make([]Item, 0, len(items))
	positions := make(map[string]int, len(items))
	for _, item := range items {
		if item.ProductID == "" || item.Quantity < 1 {
			continue
		}
		item.Variant = normalizeVariant(item.Variant)
		item.ID = LineID(item.ProductID, item.Variant)
		if idx, ok := positions[item.ID]; ok {
			out[idx].Quantity += item.Quantity
			continue
		}
		positions[item.ID] = len(out)
		out = append(out, item)
	}
	return out
}

// AddItem merges in into an existing line with the same identity or appends
// a new line. It returns the resulting line.
func (s *Store) AddItem(ctx context.Context, in AddInput) (Item, error) {
	if in.Quantity < 1 {
		return Item{}, pkgerrors.New(pkgerrors.CodeInvalidQuantity, "quantity must be at least 1").
			WithDetails(map[string]any{"quantity": in.Quantity})
	}
	if err := validate.Struct(in); err != nil {
		return Item{}, err
	}
	if in.UnitPrice.IsNegative() {
		return Item{}, pkgerrors.New(pkgerrors.CodeInvalidPrice, "price must not be negative").
			WithDetails(map[string]any{"price": in.UnitPrice.String()})
	}
	variant := normalizeVariant(in.Variant)

	s.mu.Lock()
	var line Item
	merged := false
	for idx := range s.items {
		if sameIdentity(s.items[idx], in.ProductID, variant) {
			s.items[idx].Quantity += in.Quantity
			line = s.items[idx].clone()
			merged = true
			break
		}
	}
	if !merged {
		line = newItem(in, variant, s.now().UTC())
		s.items = append(s.items, line)
		line = line.clone()
	}
	err := s.persistLocked(ctx)
	s.mu.Unlock()

	s.metrics.IncMutation(metricsStore, "add")
	s.logg.Debug(s.logg.WithFields(s.logg.WithProductID(ctx, in.ProductID), map[string]any{
		"line_id":  line.ID,
		"quantity": line.Quantity,
		"merged":   merged,
	}), "cart line added")
	return line, err
}

// AddOne adds a single unit of p with the given selection.
func (s *Store) AddOne(ctx context.Context, p catalog.Product, variant map[string]string) (Item, error) {
	return s.AddItem(ctx, FromProduct(s.pricing, p, variant, 1))
}

func newItem(in AddInput, variant map[string]string, addedAt time.Time) Item {
	original := in.UnitPrice
	if in.OriginalPrice != nil {
		original = *in.OriginalPrice
	}
	image := in.Image
	if image == "" {
		image = defaultImage
	}
	category := in.Category
	if category == "" {
		category = defaultCategory
	}
	return Item{
		ID:            LineID(in.ProductID, variant),
		ProductID:     in.ProductID,
		Name:          in.Name,
		Price:         in.UnitPrice,
		OriginalPrice: original,
		Image:         image,
		Category:      category,
		Variant:       variant,
		Quantity:      in.Quantity,
		AddedAt:       addedAt,
	}
}

// RemoveItem deletes the line with id. Removing an absent line is a no-op.
func (s *Store) RemoveItem(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	err := s.persistLocked(ctx)
	s.mu.Unlock()

	s.metrics.IncMutation(metricsStore, "remove")
	return err
}

// SetQuantity overwrites a line's quantity; quantity <= 0 removes the line.
// Unknown ids are ignored.
func (s *Store) SetQuantity(ctx context.Context, id string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, id)
	}
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	s.items[idx].Quantity = quantity
	err := s.persistLocked(ctx)
	s.mu.Unlock()

	s.metrics.IncMutation(metricsStore, "set_quantity")
	return err
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.items = []Item{}
	err := s.persistLocked(ctx)
	s.mu.Unlock()

	s.metrics.IncMutation(metricsStore, "clear")
	return err
}

// SetCurrency switches the display currency and persists the choice.
func (s *Store) SetCurrency(ctx context.Context, currency enums.Currency) error {
	if !s.pricing.Supports(currency) {
		return pkgerrors.New(pkgerrors.CodeUnknownCurrency, "currency is not supported").
			WithDetails(map[string]any{"currency": currency.String()})
	}
	s.mu.Lock()
	s.currency = currency
	s.mu.Unlock()

	s.metrics.IncMutation(metricsStore, "set_currency")
	if err := storage.SaveString(ctx, s.storage, storage.KeySelectedCurrency, currency.String()); err != nil {
		s.persistFailed(ctx, storage.KeySelectedCurrency, err)
		return err
	}
	return nil
}

// Currency is the active display currency.
func (s *Store) Currency() enums.Currency {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currency
}

// Total sums price times quantity over all lines, in the base currency.
func (s *Store) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return totalOf(s.items)
}

// FormattedTotal renders Total in the active display currency.
func (s *Store) FormattedTotal() (string, error) {
	items, currency := s.Snapshot()
	return s.pricing.Format(totalOf(items), currency)
}

// ItemCount sums quantities across lines.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines.
func (s *Store) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items) == 0
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []Item {
	items, _ := s.Snapshot()
	return items
}

// Snapshot returns the lines and the display currency read together.
func (s *Store) Snapshot() ([]Item, enums.Currency) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item.clone())
	}
	return out, s.currency
}

// Item returns the line with id or NOT_FOUND.
func (s *Store) Item(id string) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return Item{}, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found").
			WithDetails(map[string]any{"item_id": id})
	}
	return s.items[idx].clone(), nil
}

// TotalOf sums price times quantity over items.
func TotalOf(items []Item) decimal.Decimal {
	return totalOf(items)
}

func totalOf(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (s *Store) indexLocked(id string) int {
	for idx, item := range s.items {
		if item.ID == id {
			return idx
		}
	}
	return -1
}

func (s *Store) persistLocked(ctx context.Context) error {
	if err := storage.SaveJSON(ctx, s.storage, storage.KeyCart, s.items); err != nil {
		s.persistFailed(ctx, storage.KeyCart, err)
		return err
	}
	return nil
}

func (s *Store) persistFailed(ctx context.Context, key string, err error) {
	s.metrics.IncPersistenceFailure(key)
	s.logg.WarnErr(s.logg.WithStorageKey(ctx, key), "cart change kept in memory but not saved", err)
}
