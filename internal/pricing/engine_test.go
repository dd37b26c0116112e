package pricing

import (
	"testing"

	pkgerrors "github.com/angelmondragon/luxehair/pkg/errors"
	"github.com/angelmondragon/luxehair/pkg/enums"
	"github.com/shopspring/decimal"
)

func TestFormat(t *testing.T) {
	engine := Default()

	tests := []struct {
		name     string
		amount   string
		currency enums.Currency
		want     string
	}{
		{name: "usd two decimals", amount: "200", currency: enums.CurrencyUSD, want: "$200.00"},
		{name: "usd grouping", amount: "1234.5", currency: enums.CurrencyUSD, want: "$1,234.50"},
		{name: "usd rounds half away", amount: "0.005", currency: enums.CurrencyUSD, want: "$0.01"},
		{name: "zwl converted no decimals", amount: "200", currency: enums.CurrencyZWL, want: "ZWL$170,000"},
		{name: "zwl rounds", amount: "0.99", currency: enums.CurrencyZWL, want: "ZWL$842"},
		{name: "zero", amount: "0", currency: enums.CurrencyUSD, want: "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.Format(decimal.RequireFromString(tt.amount), tt.currency)
			if err != nil {
				t.Fatalf("Format returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFormatInDoesNotConvert(t *testing.T) {
	engine := Default()
	got, err := engine.FormatIn(decimal.NewFromInt(170000), enums.CurrencyZWL)
	if err != nil {
		t.Fatalf("FormatIn returned error: %v", err)
	}
	if got != "ZWL$170,000" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestUnknownCurrency(t *testing.T) {
	engine := Default()

	if _, err := engine.Format(decimal.NewFromInt(1), enums.Currency("EUR")); !pkgerrors.IsCode(err, pkgerrors.CodeUnknownCurrency) {
		t.Fatalf("expected UNKNOWN_CURRENCY from Format, got %v", err)
	}
	if _, err := engine.Convert(decimal.NewFromInt(1), enums.CurrencyUSD, enums.Currency("GBP")); !pkgerrors.IsCode(err, pkgerrors.CodeUnknownCurrency) {
		t.Fatalf("expected UNKNOWN_CURRENCY from Convert, got %v", err)
	}
	if _, err := engine.ParseCurrency("eur"); !pkgerrors.IsCode(err, pkgerrors.CodeUnknownCurrency) {
		t.Fatalf("expected UNKNOWN_CURRENCY from ParseCurrency, got %v", err)
	}
	if got, err := engine.ParseCurrency(" zwl "); err != nil || got != enums.CurrencyZWL {
		t.Fatalf("expected ZWL, got %q (%v)", got, err)
	}
}

func TestConvert(t *testing.T) {
	engine := Default()

	got, err := engine.Convert(decimal.NewFromInt(2), enums.CurrencyUSD, enums.CurrencyZWL)
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if !got.Equal(decimal.NewFromInt(1700)) {
		t.Fatalf("expected 1700, got %s", got)
	}

	back, err := engine.Convert(got, enums.CurrencyZWL, enums.CurrencyUSD)
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if !back.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("expected round trip to 2, got %s", back)
	}
}

func TestNewEngineValidatesRates(t *testing.T) {
	if _, err := NewEngine(nil); err == nil {
		t.Fatal("expected empty rates to fail")
	}
	if _, err := NewEngine(Rates{enums.CurrencyUSD: decimal.NewFromInt(1), enums.CurrencyZWL: decimal.Zero}); err == nil {
		t.Fatal("expected zero rate to fail")
	}
	if _, err := NewEngine(Rates{enums.CurrencyZWL: decimal.NewFromInt(850)}); err == nil {
		t.Fatal("expected missing base rate to fail")
	}

	engine, err := NewEngine(DefaultRates())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	currencies := engine.Currencies()
	if len(currencies) != 2 || currencies[0] != enums.CurrencyUSD {
		t.Fatalf("expected base currency first, got %v", currencies)
	}
}

func TestApplyVariantMultiplier(t *testing.T) {
	engine := Default()
	base := decimal.NewFromInt(100)

	tests := []struct {
		dimension string
		value     string
		want      string
	}{
		{dimension: "length", value: `16"`, want: "100"},
		{dimension: "length", value: `18"`, want: "110"},
		{dimension: "lengths", value: `22"`, want: "130"},
		{dimension: "Length", value: `26"`, want: "150"},
		{dimension: "length", value: `30"`, want: "100"},
		{dimension: "texture", value: `18"`, want: "100"},
	}

	for _, tt := range tests {
		got := engine.ApplyVariantMultiplier(base, tt.dimension, tt.value)
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Fatalf("%s=%s: expected %s, got %s", tt.dimension, tt.value, tt.want, got)
		}
	}
}

func TestDiscountPercent(t *testing.T) {
	got, err := DiscountPercent(decimal.NewFromInt(400), decimal.NewFromInt(300))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 25 {
		t.Fatalf("expected 25, got %d", got)
	}

	got, err = DiscountPercent(decimal.NewFromInt(299), decimal.NewFromInt(249))
	if err != nil || got != 17 {
		t.Fatalf("expected 17, got %d (%v)", got, err)
	}

	if _, err := DiscountPercent(decimal.Zero, decimal.NewFromInt(100)); !pkgerrors.IsCode(err, pkgerrors.CodeInvalidPrice) {
		t.Fatalf("expected INVALID_PRICE, got %v", err)
	}
	if _, err := DiscountPercent(decimal.NewFromInt(-5), decimal.Zero); !pkgerrors.IsCode(err, pkgerrors.CodeInvalidPrice) {
		t.Fatalf("expected INVALID_PRICE for negative original, got %v", err)
	}
}

func TestDiscountPercentRejectsSaleOutsideRange(t *testing.T) {
	original := decimal.NewFromInt(100)

	for _, sale := range []int64{150, 101, -1} {
		_, err := DiscountPercent(original, decimal.NewFromInt(sale))
		if !pkgerrors.IsCode(err, pkgerrors.CodeInvalidPrice) {
			t.Fatalf("sale %d: expected INVALID_PRICE, got %v", sale, err)
		}
	}

	bounds := []struct {
		sale int64
		want int
	}{
		{sale: 0, want: 100},
		{sale: 100, want: 0},
	}
	for _, tt := range bounds {
		got, err := DiscountPercent(original, decimal.NewFromInt(tt.sale))
		if err != nil || got != tt.want {
			t.Fatalf("sale %d: expected %d, got %d (%v)", tt.sale, tt.want, got, err)
		}
	}
}

func TestSaleDiscount(t *testing.T) {
	price := decimal.NewFromInt(300)
	original := decimal.NewFromInt(400)

	if got := SaleDiscount(price, &original); got != 25 {
		t.Fatalf("expected 25, got %d", got)
	}
	if got := SaleDiscount(price, nil); got != 0 {
		t.Fatalf("expected 0 without original, got %d", got)
	}
	if got := SaleDiscount(price, &price); got != 0 {
		t.Fatalf("expected 0 when not marked down, got %d", got)
	}
}
