// Package leads turns raw inbound lead data into prospects.
package leads

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/straye-as/relation-core/internal/domain"
	"go.uber.org/zap"
)

// Lead is raw contact data captured by an external integration
type Lead struct {
	Name              string    `json:"name" validate:"required,max=200"`
	Phone             string    `json:"phone" validate:"required_without=Email,max=50"`
	Email             string    `json:"email" validate:"omitempty,email,max=255"`
	Platform          string    `json:"platform" validate:"required,max=50"`
	ServiceOfInterest string    `json:"serviceOfInterest" validate:"max=200"`
	ContactDate       time.Time `json:"contactDate"`
}

// Service creates prospects from leads
type Service struct {
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a new lead intake Service
func NewService(logger *zap.Logger) *Service {
	return &Service{
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
}

// SetClock replaces the clock used for creation timestamps
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// CreateProspect validates a lead and returns a new prospect client. A lead
// whose email or phone already belongs to one of existing is a conflict.
// A zero ContactDate defaults to now.
func (s *Service) CreateProspect(lead Lead, existing []*domain.Client) (*domain.Client, error) {
	lead = normalize(lead)

	if err := s.validate.Struct(lead); err != nil {
		s.logger.Debug("rejected lead", zap.Error(err))
		return nil, domain.NewValidationError(err)
	}

	if dup := findDuplicate(lead, existing); dup != nil {
		s.logger.Info("lead matches existing client",
			zap.String("client_id", dup.ID.String()),
			zap.String("platform", lead.Platform))
		return nil, fmt.Errorf("%w: lead matches client %s", domain.ErrConflict, dup.ID)
	}

	now := s.now()
	contactDate := lead.ContactDate
	if contactDate.IsZero() {
		contactDate = now
	}

	prospect := &domain.Client{
		ID:                uuid.New(),
		Kind:              domain.ClientKindProspect,
		Name:              lead.Name,
		Email:             lead.Email,
		Phone:             lead.Phone,
		Platform:          lead.Platform,
		ServiceOfInterest: lead.ServiceOfInterest,
		ContactDate:       &contactDate,
		Quotes:            []*domain.Quote{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	s.logger.Info("created prospect from lead",
		zap.String("client_id", prospect.ID.String()),
		zap.String("platform", prospect.Platform))

	return prospect, nil
}

func normalize(lead Lead) Lead {
	lead.Name = strings.TrimSpace(lead.Name)
	lead.Phone = strings.TrimSpace(lead.Phone)
	lead.Email = strings.ToLower(strings.TrimSpace(lead.Email))
	lead.Platform = strings.ToLower(strings.TrimSpace(lead.Platform))
	lead.ServiceOfInterest = strings.TrimSpace(lead.ServiceOfInterest)
	return lead
}

func findDuplicate(lead Lead, existing []*domain.Client) *domain.Client {
	for _, c := range existing {
		if c == nil {
			continue
		}
		if lead.Email != "" && strings.EqualFold(c.Email, lead.Email) {
			return c
		}
		if lead.Phone != "" && digits(c.Phone) != "" && digits(c.Phone) == digits(lead.Phone) {
			return c
		}
	}
	return nil
}

// digits strips everything but digits so "+1 (555) 010-0000" matches "15550100000"
func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
