package enums

import "fmt"

// Currency represents the display currencies the storefront can price in.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyZWL Currency = "ZWL"
)

// BaseCurrency is the denomination every catalog price is stored in.
const BaseCurrency = CurrencyUSD

var validCurrencies = []Currency{
	CurrencyUSD,
	CurrencyZWL,
}

// String implements fmt.Stringer.
func (c Currency) String() string {
	return string(c)
}

// IsValid reports whether the currency is recognized.
func (c Currency) IsValid() bool {
	for _, candidate := range validCurrencies {
		if candidate == c {
			return true
		}
	}
	return false
}

// IsBase reports whether the currency is the catalog's base currency.
func (c Currency) IsBase() bool {
	return c == BaseCurrency
}

// ParseCurrency converts a raw string into a Currency.
func ParseCurrency(value string) (Currency, error) {
	for _, candidate := range validCurrencies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid currency %q", value)
}

// Currencies lists the supported currencies in display order.
func Currencies() []Currency {
	out := make([]Currency, len(validCurrencies))
	copy(out, validCurrencies)
	return out
}
