package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/straye-as/relation-core/internal/domain"
	"github.com/straye-as/relation-core/internal/money"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestApplyDiscount(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		amount   string
		kind     domain.DiscountKind
		expected string
	}{
		{"ten percent of 200", "200", "10", domain.DiscountPercentage, "180"},
		{"fixed 50 off 200", "200", "50", domain.DiscountFixed, "150"},
		{"zero percent is identity", "123.45", "0", domain.DiscountPercentage, "123.45"},
		{"zero fixed is identity", "123.45", "0", domain.DiscountFixed, "123.45"},
		{"fixed larger than base goes negative", "100", "150", domain.DiscountFixed, "-50"},
		{"percentage above 100 goes negative", "100", "120", domain.DiscountPercentage, "-20"},
		{"unknown kind is treated as fixed", "100", "30", domain.DiscountKind(""), "70"},
		{"fractional percentage", "99.99", "12.5", domain.DiscountPercentage, "87.49125"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := money.ApplyDiscount(d(tt.base), d(tt.amount), tt.kind)
			assert.True(t, d(tt.expected).Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestApplyDiscount_ZeroPercentageIsIdentity(t *testing.T) {
	for _, base := range []string{"0", "1", "-42.5", "1000000.01", "0.0001"} {
		got := money.ApplyDiscount(d(base), decimal.Zero, domain.DiscountPercentage)
		assert.True(t, d(base).Equal(got), "base %s changed to %s", base, got)
	}
}

func TestDiscountAmount(t *testing.T) {
	assert.True(t, d("20").Equal(money.DiscountAmount(d("200"), d("10"), domain.DiscountPercentage)))
	assert.True(t, d("10").Equal(money.DiscountAmount(d("200"), d("10"), domain.DiscountFixed)))
}

func TestPercent(t *testing.T) {
	assert.True(t, d("25").Equal(money.Percent(d("250"), d("1000"))))
	assert.True(t, decimal.Zero.Equal(money.Percent(d("250"), decimal.Zero)))
	assert.True(t, d("-50").Equal(money.Percent(d("-500"), d("1000"))))
}

func TestAddPercent(t *testing.T) {
	assert.True(t, d("1044").Equal(money.AddPercent(d("900"), d("16"))))
	assert.True(t, d("900").Equal(money.AddPercent(d("900"), decimal.Zero)))
}
