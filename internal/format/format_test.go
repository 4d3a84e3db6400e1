package format_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/straye-as/relation-core/internal/format"
	"github.com/stretchr/testify/assert"
)

func TestFormatter_Amount(t *testing.T) {
	f := format.New("en-US", "USD")

	assert.Equal(t, "1,044.00", f.Amount(decimal.NewFromInt(1044)))
	assert.Equal(t, "166.67", f.Amount(decimal.RequireFromString("166.666666")))
	assert.Equal(t, "-50.00", f.Amount(decimal.NewFromInt(-50)))
	assert.Equal(t, "0.00", f.Amount(decimal.Zero))
}

func TestFormatter_Money(t *testing.T) {
	assert.Equal(t, "1,234,567.89 USD", format.New("en-US", "USD").Money(decimal.RequireFromString("1234567.891")))
	assert.Equal(t, "12.00", format.New("en-US", "").Money(decimal.NewFromInt(12)))
}

func TestFormatter_Percent(t *testing.T) {
	f := format.New("en", "")
	assert.Equal(t, "90.0%", f.Percent(decimal.NewFromInt(90)))
	assert.Equal(t, "33.3%", f.Percent(decimal.RequireFromString("33.3333")))
}

func TestFormatter_UnknownLocaleFallsBack(t *testing.T) {
	f := format.New("not a locale!!", "MXN")
	assert.Equal(t, "1,000.00 MXN", f.Money(decimal.NewFromInt(1000)))
}
