package pricing

import (
	"fmt"
	"sort"
	"strings"

	pkgerrors "github.com/angelmondragon/luxehair/pkg/errors"
	"github.com/angelmondragon/luxehair/pkg/enums"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Rates maps a currency to the number of its units per one base-currency unit.
type Rates map[enums.Currency]decimal.Decimal

// DefaultRates are the sample rates the storefront ships with.
func DefaultRates() Rates {
	return Rates{
		enums.CurrencyUSD: decimal.NewFromInt(1),
		enums.CurrencyZWL: decimal.NewFromInt(850),
	}
}

var symbols = map[enums.Currency]string{
	enums.CurrencyUSD: "$",
	enums.CurrencyZWL: "ZWL$",
}

// Engine converts and renders monetary amounts.
type Engine struct {
	rates Rates
	base  enums.Currency
	tag   language.Tag
}

// NewEngine validates rates and returns an engine over them. The base
// currency must be present with a rate of exactly one.
func NewEngine(rates Rates) (*Engine, error) {
	if len(rates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "exchange rates are required")
	}
	copied := make(Rates, len(rates))
	for currency, rate := range rates {
		if !rate.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("rate for %s must be positive", currency)).
				WithDetails(map[string]any{"currency": currency.String(), "rate": rate.String()})
		}
		copied[currency] = rate
	}
	baseRate, ok := copied[enums.BaseCurrency]
	if !ok || !baseRate.Equal(decimal.NewFromInt(1)) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("base currency %s must have rate 1", enums.BaseCurrency))
	}
	return &Engine{rates: copied, base: enums.BaseCurrency, tag: language.AmericanEnglish}, nil
}

// Default returns an engine over DefaultRates.
func Default() *Engine {
	engine, err := NewEngine(DefaultRates())
	if err != nil {
		panic(err)
	}
	return engine
}

// Base returns the currency catalog prices and cart totals are held in.
func (e *Engine) Base() enums.Currency {
	return e.base
}

// Supports reports whether currency has a configured rate.
func (e *Engine) Supports(currency enums.Currency) bool {
	_, ok := e.rates[currency]
	return ok
}

// Currencies lists the supported currencies, base first.
func (e *Engine) Currencies() []enums.Currency {
	out := make([]enums.Currency, 0, len(e.rates))
	for currency := range e.rates {
		out = append(out, currency)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i] == e.base || out[j] == e.base {
			return out[i] == e.base
		}
		return out[i] < out[j]
	})
	return out
}

// ParseCurrency resolves a code against the configured rates.
func (e *Engine) ParseCurrency(code string) (enums.Currency, error) {
	currency := enums.Currency(strings.ToUpper(strings.TrimSpace(code)))
	if !e.Supports(currency) {
		return "", unknownCurrency(currency)
	}
	return currency, nil
}

func (e *Engine) rate(currency enums.Currency) (decimal.Decimal, error) {
	rate, ok := e.rates[currency]
	if !ok {
		return decimal.Zero, unknownCurrency(currency)
	}
	return rate, nil
}

// Convert expresses amount, held in from, in to.
func (e *Engine) Convert(amount decimal.Decimal, from, to enums.Currency) (decimal.Decimal, error) {
	fromRate, err := e.rate(from)
	if err != nil {
		return decimal.Zero, err
	}
	toRate, err := e.rate(to)
	if err != nil {
		return decimal.Zero, err
	}
	if from == to {
		return amount, nil
	}
	return amount.Mul(toRate).Div(fromRate), nil
}

// Format converts a base-currency amount into currency and renders it.
func (e *Engine) Format(amount decimal.Decimal, currency enums.Currency) (string, error) {
	converted, err := e.Convert(amount, e.base, currency)
	if err != nil {
		return "", err
	}
	return e.FormatIn(converted, currency)
}

// FormatIn renders an amount already expressed in currency: symbol prefix,
// en-US digit grouping, two decimals for the base currency and none for the
// others.
func (e *Engine) FormatIn(amount decimal.Decimal, currency enums.Currency) (string, error) {
	if !e.Supports(currency) {
		return "", unknownCurrency(currency)
	}
	places := e.decimalPlaces(currency)
	rounded := amount.Round(places)
	printer := message.NewPrinter(e.tag)
	number := printer.Sprintf(fmt.Sprintf("%%.%df", places), rounded.InexactFloat64())
	return Symbol(currency) + number, nil
}

// MustFormat is Format for currencies already validated by the caller.
func (e *Engine) MustFormat(amount decimal.Decimal, currency enums.Currency) string {
	out, err := e.Format(amount, currency)
	if err != nil {
		panic(err)
	}
	return out
}

func (e *Engine) decimalPlaces(currency enums.Currency) int32 {
	if currency == e.base {
		return 2
	}
	return 0
}

// Symbol returns the display prefix for currency. Currencies without a
// dedicated symbol fall back to the code followed by "$".
func Symbol(currency enums.Currency) string {
	if symbol, ok := symbols[currency]; ok {
		return symbol
	}
	return currency.String() + "$"
}

func unknownCurrency(currency enums.Currency) error {
	return pkgerrors.New(pkgerrors.CodeUnknownCurrency, fmt.Sprintf("currency %q is not supported", currency.String())).
		WithDetails(map[string]any{"currency": currency.String()})
}
