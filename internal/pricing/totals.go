package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/straye-as/relation-core/internal/domain"
	"github.com/straye-as/relation-core/internal/money"
)

// QuoteTotals is the result of pricing a list of quote items.
// Subtotal and Total are the headline figures; the rest is the breakdown
// between them.
type QuoteTotals struct {
	Subtotal             decimal.Decimal `json:"subtotal"`
	GlobalDiscountAmount decimal.Decimal `json:"globalDiscountAmount"`
	TaxableBase          decimal.Decimal `json:"taxableBase"`
	TaxAmount            decimal.Decimal `json:"taxAmount"`
	Total                decimal.Decimal `json:"total"`
}

// ComputeLineTotal returns quantity*unitPrice minus the item's own discount
func ComputeLineTotal(item domain.QuoteItem) decimal.Decimal {
	gross := decimal.NewFromInt(int64(item.Quantity)).Mul(item.UnitPrice)
	return money.ApplyDiscount(gross, item.Discount, item.DiscountKind)
}

// ComputeQuoteTotals prices a quote in a fixed order: line discounts, then the
// global discount on the subtotal, then tax on the discounted subtotal.
// Negative results are returned as-is.
func ComputeQuoteTotals(items []domain.QuoteItem, globalDiscount decimal.Decimal, globalDiscountKind domain.DiscountKind, taxRate decimal.Decimal) QuoteTotals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(ComputeLineTotal(item))
	}

	discounted := money.ApplyDiscount(subtotal, globalDiscount, globalDiscountKind)
	total := money.AddPercent(discounted, taxRate)

	return QuoteTotals{
		Subtotal:             subtotal,
		GlobalDiscountAmount: subtotal.Sub(discounted),
		TaxableBase:          discounted,
		TaxAmount:            total.Sub(discounted),
		Total:                total,
	}
}

// Price returns a copy of the quote with every line total, the subtotal and the
// total recalculated. The input quote is not modified.
func Price(q *domain.Quote) *domain.Quote {
	priced := *q
	priced.Items = make([]domain.QuoteItem, len(q.Items))
	for i, item := range q.Items {
		item.LineTotal = ComputeLineTotal(item)
		priced.Items[i] = item
	}
	if q.History != nil {
		priced.History = append([]domain.QuoteStatusChange(nil), q.History...)
	}

	totals := ComputeQuoteTotals(priced.Items, q.GlobalDiscount, q.GlobalDiscountKind, q.TaxRate)
	priced.Subtotal = totals.Subtotal
	priced.Total = totals.Total
	return &priced
}
