// Package schedule answers time-windowed questions over a project snapshot:
// what is due soon and what is late. Every query is a read-only projection;
// stored statuses are never changed, so an item past its due date is reported
// without being marked overdue.
package schedule

import (
	"sort"
	"time"

	"github.com/straye-as/relation-core/internal/domain"
	"go.uber.org/zap"
)

// Service runs scheduling queries relative to its clock
type Service struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new scheduling Service
func NewService(logger *zap.Logger) *Service {
	return &Service{
		logger: logger,
		now:    time.Now,
	}
}

// SetClock replaces the clock queries are evaluated against
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// horizon returns now plus the given number of days
func horizon(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, days)
}

// UpcomingPayments returns pending payments due on or before now+days, earliest
// first. Pending payments already past due are included.
func (s *Service) UpcomingPayments(projects []domain.Project, days int) []domain.PaymentSchedule {
	cutoff := horizon(s.now(), days)

	var result []domain.PaymentSchedule
	for _, p := range projects {
		for _, payment := range p.Payments {
			if payment.Status == domain.PaymentStatusPending && !payment.DueDate.After(cutoff) {
				result = append(result, payment)
			}
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DueDate.Before(result[j].DueDate)
	})

	s.logger.Debug("computed upcoming payments",
		zap.Int("days", days),
		zap.Int("count", len(result)))

	return result
}

// UpcomingMeetings returns scheduled meetings on or before now+days, earliest first
func (s *Service) UpcomingMeetings(projects []domain.Project, days int) []domain.Meeting {
	cutoff := horizon(s.now(), days)

	var result []domain.Meeting
	for _, p := range projects {
		for _, m := range p.Meetings {
			if m.Status == domain.MeetingStatusScheduled && !m.ScheduledDate.After(cutoff) {
				result = append(result, m)
			}
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ScheduledDate.Before(result[j].ScheduledDate)
	})

	s.logger.Debug("computed upcoming meetings",
		zap.Int("days", days),
		zap.Int("count", len(result)))

	return result
}

// OverdueMilestones returns milestones that are not completed and whose due
// date is strictly before now, earliest first. The stored status does not have
// to be overdue.
func (s *Service) OverdueMilestones(projects []domain.Project) []domain.Milestone {
	now := s.now()

	var result []domain.Milestone
	for _, p := range projects {
		for _, m := range p.Milestones {
			if m.Status != domain.MilestoneStatusCompleted && m.DueDate.Before(now) {
				result = append(result, m)
			}
		}
	}

	sortMilestones(result)

	s.logger.Debug("computed overdue milestones", zap.Int("count", len(result)))

	return result
}

// UpcomingMilestones returns milestones that are not completed and fall due
// between now and now+days inclusive, earliest first.
func (s *Service) UpcomingMilestones(projects []domain.Project, days int) []domain.Milestone {
	now := s.now()
	cutoff := horizon(now, days)

	var result []domain.Milestone
	for _, p := range projects {
		for _, m := range p.Milestones {
			if m.Status == domain.MilestoneStatusCompleted {
				continue
			}
			if !m.DueDate.Before(now) && !m.DueDate.After(cutoff) {
				result = append(result, m)
			}
		}
	}

	sortMilestones(result)
	return result
}

// ExpiringQuotes returns Sent quotes whose validity ends between now and
// now+days inclusive, soonest first.
func (s *Service) ExpiringQuotes(quotes []*domain.Quote, days int) []*domain.Quote {
	now := s.now()
	cutoff := horizon(now, days)

	var result []*domain.Quote
	for _, q := range quotes {
		if q == nil || q.Status != domain.QuoteStatusSent {
			continue
		}
		if !q.ValidUntil.Before(now) && !q.ValidUntil.After(cutoff) {
			result = append(result, q)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ValidUntil.Before(result[j].ValidUntil)
	})
	return result
}

func sortMilestones(ms []domain.Milestone) {
	sort.SliceStable(ms, func(i, j int) bool {
		return ms[i].DueDate.Before(ms[j].DueDate)
	})
}
