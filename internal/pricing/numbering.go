package pricing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/straye-as/relation-core/internal/domain"
)

// DefaultQuotePrefix is the prefix used for quote numbers when none is configured
const DefaultQuotePrefix = "COT"

// QuoteSources gathers every place a quote can be known from: the flat quote
// list and the quotes embedded under clients and prospects.
type QuoteSources struct {
	Quotes  []*domain.Quote
	Clients []*domain.Client
}

// All returns every known quote once. A quote reachable from both the flat list
// and a client (same pointer or same non-nil id) is the same entity and is
// returned a single time.
func (s QuoteSources) All() []*domain.Quote {
	seenPtr := make(map[*domain.Quote]struct{})
	seenID := make(map[uuid.UUID]struct{})
	var all []*domain.Quote

	add := func(q *domain.Quote) {
		if q == nil {
			return
		}
		if _, ok := seenPtr[q]; ok {
			return
		}
		seenPtr[q] = struct{}{}
		if q.ID != uuid.Nil {
			if _, ok := seenID[q.ID]; ok {
				return
			}
			seenID[q.ID] = struct{}{}
		}
		all = append(all, q)
	}

	for _, q := range s.Quotes {
		add(q)
	}
	for _, c := range s.Clients {
		if c == nil {
			continue
		}
		for _, q := range c.Quotes {
			add(q)
		}
	}
	return all
}

// GenerateQuoteNumber returns the next quote number for year using the default prefix.
// Format: COT-{YEAR}-{SEQUENCE} e.g., "COT-2024-001"
func GenerateQuoteNumber(sources QuoteSources, year int) string {
	return GenerateQuoteNumberWithPrefix(sources, DefaultQuotePrefix, year)
}

// GenerateQuoteNumberWithPrefix counts every known quote whose number contains
// the year and returns {PREFIX}-{YEAR}-{count+1}, zero-padded to 3 digits.
//
// The sequence is count-based, not max-based: deleting a quote or creating two
// quotes from the same snapshot can yield a number that is already in use.
// Callers that need uniqueness must check with IsNumberTaken.
func GenerateQuoteNumberWithPrefix(sources QuoteSources, prefix string, year int) string {
	return FormatQuoteNumber(prefix, year, CountQuotesForYear(sources, year)+1)
}

// CountQuotesForYear counts known quotes whose number contains the year as a substring
func CountQuotesForYear(sources QuoteSources, year int) int {
	yearStr := strconv.Itoa(year)
	count := 0
	for _, q := range sources.All() {
		if strings.Contains(q.Number, yearStr) {
			count++
		}
	}
	return count
}

// FormatQuoteNumber formats PREFIX-YYYY-NNN (zero-padded to 3 digits)
func FormatQuoteNumber(prefix string, year, seq int) string {
	return fmt.Sprintf("%s-%d-%03d", prefix, year, seq)
}

// IsNumberTaken reports whether any known quote already carries number
func IsNumberTaken(sources QuoteSources, number string) bool {
	for _, q := range sources.All() {
		if q.Number == number {
			return true
		}
	}
	return false
}
