package checkout

import (
	"fmt"
	"strings"

	"github.com/angelmondragon/luxehair/internal/cart"
	"github.com/angelmondragon/luxehair/internal/pricing"
	"github.com/angelmondragon/luxehair/pkg/enums"
)

// EmptyCartMessage is the inquiry sent when there is nothing to order.
const EmptyCartMessage = "Hello! I would like to inquire about your hair products."

// render writes the order message. Lines without a length or texture
// selection skip those rows.
func render(engine *pricing.Engine, business string, items []cart.Item, currency enums.Currency) (string, error) {
	if len(items) == 0 {
		return EmptyCartMessage, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s! 👋\n\n", business)
	b.WriteString("I'd like to place an order for the following items:\n\n")

	for i, item := range items {
		unit, err := engine.Format(item.Price, currency)
		if err != nil {
			return "", err
		}
		subtotal, err := engine.Format(item.Subtotal(), currency)
		if err != nil {
			return "", err
		}

		fmt.Fprintf(&b, "%d. *%s*\n", i+1, item.Name)
		if length := item.Length(); length != "" {
			fmt.Fprintf(&b, "   Length: %s\n", length)
		}
		if texture := item.Texture(); texture != "" {
			fmt.Fprintf(&b, "   Texture: %s\n", texture)
		}
		fmt.Fprintf(&b, "   Quantity: %d\n", item.Quantity)
		fmt.Fprintf(&b, "   Price: %s each\n", unit)
		fmt.Fprintf(&b, "   Subtotal: %s\n\n", subtotal)
	}

	total, err := engine.Format(cart.TotalOf(items), currency)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(&b, "💰 *Total: %s*\n\n", total)
	b.WriteString("📍 Please confirm:\n")
	b.WriteString("✅ Product availability\n")
	b.WriteString("🚚 Delivery options and cost\n")
	b.WriteString("💳 Payment methods\n\n")
	b.WriteString("Thank you! 😊")
	return b.String(), nil
}
