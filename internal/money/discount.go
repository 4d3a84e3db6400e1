// Package money holds the discount arithmetic shared by quote pricing and
// financial analytics. Amounts are never clamped or rounded here.
package money

import (
	"github.com/shopspring/decimal"
	"github.com/straye-as/relation-core/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// DiscountAmount returns the amount a discount removes from base.
// Percentage discounts are base*amount/100; fixed discounts are amount itself.
// Any kind other than percentage is treated as fixed.
func DiscountAmount(base, amount decimal.Decimal, kind domain.DiscountKind) decimal.Decimal {
	if kind == domain.DiscountPercentage {
		return base.Mul(amount).Div(hundred)
	}
	return amount
}

// ApplyDiscount returns base minus its discount. A discount larger than the
// base yields a negative result.
func ApplyDiscount(base, amount decimal.Decimal, kind domain.DiscountKind) decimal.Decimal {
	return base.Sub(DiscountAmount(base, amount, kind))
}

// Percent returns part as a percentage of whole, or zero when whole is zero.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole)
}

// AddPercent returns base plus rate percent of base.
func AddPercent(base, rate decimal.Decimal) decimal.Decimal {
	return base.Add(base.Mul(rate).Div(hundred))
}
