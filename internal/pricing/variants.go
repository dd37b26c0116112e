package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

var lengthMultipliers = map[string]decimal.Decimal{
	`16"`: decimal.RequireFromString("1"),
	`18"`: decimal.RequireFromString("1.1"),
	`20"`: decimal.RequireFromString("1.2"),
	`22"`: decimal.RequireFromString("1.3"),
	`24"`: decimal.RequireFromString("1.4"),
	`26"`: decimal.RequireFromString("1.5"),
}

// Multiplier returns the price factor for a variant selection. Only the
// length dimension ("length" or "lengths") carries a premium; anything else,
// including unlisted lengths, is priced at the base.
func Multiplier(dimension, value string) decimal.Decimal {
	if !isLengthDimension(dimension) {
		return decimal.NewFromInt(1)
	}
	if m, ok := lengthMultipliers[strings.TrimSpace(value)]; ok {
		return m
	}
	return decimal.NewFromInt(1)
}

// ApplyVariantMultiplier prices base for the selected variant value.
func (e *Engine) ApplyVariantMultiplier(base decimal.Decimal, dimension, value string) decimal.Decimal {
	return base.Mul(Multiplier(dimension, value))
}

func isLengthDimension(dimension string) bool {
	switch strings.ToLower(strings.TrimSpace(dimension)) {
	case "length", "lengths":
		return true
	default:
		return false
	}
}
