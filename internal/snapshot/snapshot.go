// Package snapshot decodes the in-memory collections the engines operate on
// from a JSON document.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/straye-as/relation-core/internal/domain"
	"github.com/straye-as/relation-core/internal/pricing"
)

// Snapshot is a point-in-time copy of clients, quotes and projects
type Snapshot struct {
	Clients  []*domain.Client `json:"clients"`
	Quotes   []*domain.Quote  `json:"quotes"`
	Projects []domain.Project `json:"projects"`
}

// Load reads and links a snapshot from a JSON file
func Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads and links a snapshot from r
func Decode(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	s.Link()
	return &s, nil
}

// Link makes the flat quote list and the quotes embedded under clients refer
// to the same entities. A quote present in both places by id is kept once
// (the flat list's copy wins); a quote known only from one place is added to
// the other.
func (s *Snapshot) Link() {
	byID := make(map[uuid.UUID]*domain.Quote, len(s.Quotes))
	for _, q := range s.Quotes {
		if q != nil && q.ID != uuid.Nil {
			byID[q.ID] = q
		}
	}

	clientsByID := make(map[uuid.UUID]*domain.Client, len(s.Clients))
	for _, c := range s.Clients {
		if c == nil {
			continue
		}
		clientsByID[c.ID] = c

		for i, q := range c.Quotes {
			if q == nil {
				continue
			}
			if shared, ok := byID[q.ID]; ok {
				c.Quotes[i] = shared
				continue
			}
			if q.ClientID == uuid.Nil {
				q.ClientID = c.ID
			}
			s.Quotes = append(s.Quotes, q)
			if q.ID != uuid.Nil {
				byID[q.ID] = q
			}
		}
	}

	for _, q := range s.Quotes {
		if q == nil {
			continue
		}
		c, ok := clientsByID[q.ClientID]
		if !ok || containsQuote(c.Quotes, q) {
			continue
		}
		c.Quotes = append(c.Quotes, q)
	}
}

// QuoteSources returns every quote view of the snapshot for numbering
func (s *Snapshot) QuoteSources() pricing.QuoteSources {
	return pricing.QuoteSources{Quotes: s.Quotes, Clients: s.Clients}
}

// Client returns the client with the given id
func (s *Snapshot) Client(id uuid.UUID) (*domain.Client, error) {
	for _, c := range s.Clients {
		if c != nil && c.ID == id {
			return c, nil
		}
	}
	return nil, domain.NewNotFoundError("client", id)
}

// Project returns the project with the given id
func (s *Snapshot) Project(id uuid.UUID) (*domain.Project, error) {
	for i := range s.Projects {
		if s.Projects[i].ID == id {
			return &s.Projects[i], nil
		}
	}
	return nil, domain.NewNotFoundError("project", id)
}

func containsQuote(quotes []*domain.Quote, q *domain.Quote) bool {
	for _, existing := range quotes {
		if existing == q {
			return true
		}
	}
	return false
}
