package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/straye-as/relation-core/internal/config"
	"github.com/straye-as/relation-core/internal/domain"
	"go.uber.org/zap"
)

// Service prices quote drafts and assigns quote numbers using the configured
// prefix, tax rate and validity. It holds no state between calls.
type Service struct {
	cfg    config.PricingConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new pricing Service
func NewService(cfg *config.PricingConfig, logger *zap.Logger) *Service {
	c := *cfg
	if c.QuoteNumberPrefix == "" {
		c.QuoteNumberPrefix = DefaultQuotePrefix
	}
	return &Service{
		cfg:    c,
		logger: logger,
		now:    time.Now,
	}
}

// SetClock replaces the clock used for draft dates (tests use a fixed time)
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// NextNumber returns the next quote number for the given year
func (s *Service) NextNumber(sources QuoteSources, year int) string {
	number := GenerateQuoteNumberWithPrefix(sources, s.cfg.QuoteNumberPrefix, year)

	if IsNumberTaken(sources, number) {
		// Count-based numbering collides after deletions; surface it without changing the result.
		s.logger.Warn("generated quote number is already in use",
			zap.String("number", number),
			zap.Int("year", year))
	}

	s.logger.Debug("generated quote number",
		zap.String("number", number),
		zap.Int("year", year))

	return number
}

// NewDraft creates a Draft quote for a client, dated now, valid for the
// configured number of days and numbered from the known quotes.
func (s *Service) NewDraft(clientID uuid.UUID, sources QuoteSources) *domain.Quote {
	now := s.now()
	q := &domain.Quote{
		ID:                 uuid.New(),
		Number:             s.NextNumber(sources, now.Year()),
		ClientID:           clientID,
		Date:               now,
		ValidUntil:         now.AddDate(0, 0, s.cfg.ValidityDays),
		Items:              []domain.QuoteItem{},
		GlobalDiscount:     decimal.Zero,
		GlobalDiscountKind: domain.DiscountPercentage,
		TaxRate:            decimal.NewFromFloat(s.cfg.DefaultTaxRate),
		Status:             domain.QuoteStatusDraft,
		Subtotal:           decimal.Zero,
		Total:              decimal.Zero,
		History: []domain.QuoteStatusChange{
			{To: domain.QuoteStatusDraft, ChangedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.logger.Info("created quote draft",
		zap.String("quote_id", q.ID.String()),
		zap.String("number", q.Number),
		zap.String("client_id", clientID.String()))

	return q
}

// NewItem builds a quote item with a fresh id and a percentage discount kind
func (s *Service) NewItem(description string, quantity int, unitPrice, discount decimal.Decimal) domain.QuoteItem {
	item := domain.QuoteItem{
		ID:           uuid.New(),
		Description:  description,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		Discount:     discount,
		DiscountKind: domain.DiscountPercentage,
	}
	item.LineTotal = ComputeLineTotal(item)
	return item
}

// Price recalculates a quote's line totals, subtotal and total and returns the
// priced copy. UpdatedAt is stamped with the service clock.
func (s *Service) Price(q *domain.Quote) *domain.Quote {
	priced := Price(q)
	priced.UpdatedAt = s.now()

	if priced.Total.IsNegative() {
		s.logger.Warn("quote total is negative",
			zap.String("quote_id", q.ID.String()),
			zap.String("number", q.Number),
			zap.String("total", priced.Total.String()))
	}

	return priced
}
