package pricing

import (
	pkgerrors "github.com/angelmondragon/luxehair/pkg/errors"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DiscountPercent returns round(((original - sale) / original) * 100). The sale
// price must lie within [0, original] so the result stays within [0, 100].
func DiscountPercent(original, sale decimal.Decimal) (int, error) {
	if !original.IsPositive() {
		return 0, pkgerrors.New(pkgerrors.CodeInvalidPrice, "original price must be greater than zero").
			WithDetails(map[string]any{"original": original.String()})
	}
	if sale.IsNegative() || sale.GreaterThan(original) {
		return 0, pkgerrors.New(pkgerrors.CodeInvalidPrice, "sale price must be between zero and the original price").
			WithDetails(map[string]any{"original": original.String(), "sale": sale.String()})
	}
	pct := original.Sub(sale).Div(original).Mul(hundred).Round(0)
	return int(pct.IntPart()), nil
}

// DiscountPercent is the engine-bound form of the package function.
func (e *Engine) DiscountPercent(original, sale decimal.Decimal) (int, error) {
	return DiscountPercent(original, sale)
}

// SaleDiscount reports the markdown for a price pair, returning zero when
// there is no usable original price.
func SaleDiscount(price decimal.Decimal, original *decimal.Decimal) int {
	if original == nil || !original.GreaterThan(price) {
		return 0
	}
	pct, err := DiscountPercent(*original, price)
	if err != nil {
		return 0
	}
	return pct
}
