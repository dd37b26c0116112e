package checkout

import (
	"context"
	"strings"

	"github.com/angelmondragon/luxehair/internal/cart"
	"github.com/angelmondragon/luxehair/internal/pricing"
	pkgerrors "github.com/angelmondragon/luxehair/pkg/errors"
	"github.com/angelmondragon/luxehair/pkg/enums"
	"github.com/angelmondragon/luxehair/pkg/logger"
	"github.com/angelmondragon/luxehair/pkg/metrics"
)

const whatsAppBaseURL = "https://wa.me/"

// Params groups dependencies for the checkout builder.
type Params struct {
	BusinessName string
	Phone        string
	Pricing      *pricing.Engine
	Logger       *logger.Logger
	Metrics      *metrics.StoreMetrics
}

// Outbound is what the messaging collaborator needs to open a chat.
type Outbound struct {
	Phone       string
	Text        string
	EncodedText string
	URL         string
}

// Builder turns cart contents into a WhatsApp order message.
type Builder struct {
	business string
	phone    string
	pricing  *pricing.Engine
	logg     *logger.Logger
	metrics  *metrics.StoreMetrics
}

// NewBuilder validates params and returns a builder.
func NewBuilder(params Params) (*Builder, error) {
	if strings.TrimSpace(params.BusinessName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business name is required")
	}
	phone := digitsOnly(params.Phone)
	if phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "whatsapp phone is required")
	}
	if params.Pricing == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pricing engine is required")
	}
	return &Builder{
		business: strings.TrimSpace(params.BusinessName),
		phone:    phone,
		pricing:  params.Pricing,
		logg:     params.Logger,
		metrics:  params.Metrics,
	}, nil
}

// Phone is the normalized destination number.
func (b *Builder) Phone() string {
	return b.phone
}

// Build renders the order message for items in currency. The output
// depends only on its inputs.
func (b *Builder) Build(items []cart.Item, currency enums.Currency) (string, error) {
	return render(b.pricing, b.business, items, currency)
}

// Link builds the outbound order message. An empty cart is rejected so the
// caller can tell the shopper; use InquiryLink for a general question.
func (b *Builder) Link(ctx context.Context, items []cart.Item, currency enums.Currency) (Outbound, error) {
	if len(items) == 0 {
		return Outbound{}, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	text, err := b.Build(items, currency)
	if err != nil {
		return Outbound{}, err
	}

	b.metrics.IncCheckout(currency.String())
	b.logg.Info(b.logg.WithFields(ctx, map[string]any{
		"lines":    len(items),
		"currency": currency.String(),
		"total":    cart.TotalOf(items).String(),
	}), "checkout initiated")

	return b.outbound(text), nil
}

// LinkFor builds the order link from the cart's current contents.
func (b *Builder) LinkFor(ctx context.Context, c *cart.Store) (Outbound, error) {
	items, currency := c.Snapshot()
	return b.Link(ctx, items, currency)
}

// InquiryLink opens a chat with the generic product inquiry.
func (b *Builder) InquiryLink() Outbound {
	return b.outbound(EmptyCartMessage)
}

func (b *Builder) outbound(text string) Outbound {
	encoded := encodeComponent(text)
	return Outbound{
		Phone:       b.phone,
		Text:        text,
		EncodedText: encoded,
		URL:         whatsAppBaseURL + b.phone + "?text=" + encoded,
	}
}

func digitsOnly(phone string) string {
	var out strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			out.WriteRune(r)
		}
	}
	return out.String()
}
