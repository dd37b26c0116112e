package cart

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Variant dimensions rendered in the checkout message.
const (
	DimensionLength  = "length"
	DimensionTexture = "texture"
)

const (
	defaultImage    = "/assets/images/placeholder.jpg"
	defaultCategory = "Hair"
)

var lineNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("luxehair:cart-line"))

// Item is one cart line. Its identity is the product id together with the
// selected variant; the display fields are captured when the line is added.
type Item struct {
	ID            string
	ProductID     string
	Name          string
	Price         decimal.Decimal
	OriginalPrice decimal.Decimal
	Image         string
	Category      string
	Variant       map[string]string
	Quantity      int
	AddedAt       time.Time
}

// Length is the selected length, or "".
func (i Item) Length() string {
	return i.Variant[DimensionLength]
}

// Texture is the selected texture, or "".
func (i Item) Texture() string {
	return i.Variant[DimensionTexture]
}

// Subtotal is unit price times quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (i Item) clone() Item {
	if i.Variant != nil {
		variant := make(map[string]string, len(i.Variant))
		for k, v := range i.Variant {
			variant[k] = v
		}
		i.Variant = variant
	}
	return i
}

// itemJSON keeps the flat length/texture fields older payloads carry.
type itemJSON struct {
	ID            string            `json:"id"`
	ProductID     string            `json:"productId,omitempty"`
	Name          string            `json:"name"`
	Price         decimal.Decimal   `json:"price"`
	OriginalPrice decimal.Decimal   `json:"originalPrice"`
	Image         string            `json:"image"`
	Category      string            `json:"category"`
	Length        string            `json:"length,omitempty"`
	Texture       string            `json:"texture,omitempty"`
	Variant       map[string]string `json:"variant,omitempty"`
	Quantity      int               `json:"quantity"`
	AddedAt       time.Time         `json:"addedAt"`
}

func (i Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(itemJSON{
		ID:            i.ID,
		ProductID:     i.ProductID,
		Name:          i.Name,
		Price:         i.Price,
		OriginalPrice: i.OriginalPrice,
		Image:         i.Image,
		Category:      i.Category,
		Length:        i.Length(),
		Texture:       i.Texture(),
		Variant:       i.Variant,
		Quantity:      i.Quantity,
		AddedAt:       i.AddedAt,
	})
}

func (i *Item) UnmarshalJSON(data []byte) error {
	var raw itemJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	variant := normalizeVariant(raw.Variant)
	if raw.Length != "" {
		if variant == nil {
			variant = map[string]string{}
		}
		if _, ok := variant[DimensionLength]; !ok {
			variant[DimensionLength] = raw.Length
		}
	}
	if raw.Texture != "" {
		if variant == nil {
			variant = map[string]string{}
		}
		if _, ok := variant[DimensionTexture]; !ok {
			variant[DimensionTexture] = raw.Texture
		}
	}
	productID := raw.ProductID
	if productID == "" {
		productID = raw.ID
	}
	*i = Item{
		ID:            raw.ID,
		ProductID:     productID,
		Name:          raw.Name,
		Price:         raw.Price,
		OriginalPrice: raw.OriginalPrice,
		Image:         raw.Image,
		Category:      raw.Category,
		Variant:       variant,
		Quantity:      raw.Quantity,
		AddedAt:       raw.AddedAt,
	}
	return nil
}

// normalizeVariant lower-cases dimension names and drops empty selections.
func normalizeVariant(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		k = strings.ToLower(strings.TrimSpace(k))
		v = strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// signature renders a variant selection in a stable order.
func signature(variant map[string]string) string {
	keys := make([]string, 0, len(variant))
	for k := range variant {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+variant[k])
	}
	return strings.Join(parts, "&")
}

// LineID derives the deterministic line id for a product and selection.
func LineID(productID string, variant map[string]string) string {
	key := productID + "|" + signature(normalizeVariant(variant))
	return uuid.NewSHA1(lineNamespace, []byte(key)).String()
}

func sameIdentity(item Item, productID string, variant map[string]string) bool {
	return item.ProductID == productID && signature(item.Variant) == signature(variant)
}
