// Package lifecycle applies status changes to quotes, payments, milestones,
// meetings and projects.
//
// Any known status may be set from any other; there is no transition table.
// The only derived status is a quote's effective Expired status, which is
// computed at read time and never written back.
package lifecycle

import (
	"fmt"
	"time"

	"github.com/straye-as/relation-core/internal/domain"
)

const (
	// completedProgress is the progress forced on a completed milestone
	completedProgress = 100
	// startedProgress is the heuristic progress given to a milestone entering in-progress
	startedProgress = 50
)

// EffectiveQuoteStatus returns the status a quote should be shown with.
// A Sent quote past its ValidUntil reads as Expired; the stored status is left untouched.
func EffectiveQuoteStatus(q *domain.Quote, now time.Time) domain.QuoteStatus {
	if IsExpired(q, now) {
		return domain.QuoteStatusExpired
	}
	return q.Status
}

// IsExpired reports whether a Sent quote has passed its validity date
func IsExpired(q *domain.Quote, now time.Time) bool {
	return q.Status == domain.QuoteStatusSent && now.After(q.ValidUntil)
}

// SetQuoteStatus stores a new status on the quote and appends the change to
// its history. Setting the current status again records nothing.
func SetQuoteStatus(q *domain.Quote, to domain.QuoteStatus, changedBy, note string, now time.Time) error {
	if !to.IsValid() {
		return fmt.Errorf("%w: quote status %q", domain.ErrInvalidStatus, to)
	}
	if q.Status == to {
		return nil
	}

	var from *domain.QuoteStatus
	if q.Status != "" {
		prev := q.Status
		from = &prev
	}

	q.Status = to
	q.UpdatedAt = now
	q.History = append(q.History, domain.QuoteStatusChange{
		From:      from,
		To:        to,
		ChangedAt: now,
		ChangedBy: changedBy,
		Note:      note,
	})
	return nil
}

// SetMilestoneStatus stores a new milestone status and applies its side effects:
//   - completed: CompletedDate is set to now and Progress to 100
//   - in-progress: Progress becomes 50 unless the milestone was already in progress
//   - leaving completed clears CompletedDate
func SetMilestoneStatus(m *domain.Milestone, to domain.MilestoneStatus, now time.Time) error {
	if !to.IsValid() {
		return fmt.Errorf("%w: milestone status %q", domain.ErrInvalidStatus, to)
	}

	from := m.Status
	switch to {
	case domain.MilestoneStatusCompleted:
		if from != domain.MilestoneStatusCompleted || m.CompletedDate == nil {
			completed := now
			m.CompletedDate = &completed
		}
		m.Progress = completedProgress
	case domain.MilestoneStatusInProgress:
		if from != domain.MilestoneStatusInProgress {
			m.Progress = startedProgress
		}
		m.CompletedDate = nil
	default:
		m.CompletedDate = nil
	}

	m.Status = to
	return nil
}

// SetPaymentStatus stores a new payment status. Paid sets PaidDate to now when
// it is unset; every other status clears PaidDate.
func SetPaymentStatus(p *domain.PaymentSchedule, to domain.PaymentStatus, now time.Time) error {
	if !to.IsValid() {
		return fmt.Errorf("%w: payment status %q", domain.ErrInvalidStatus, to)
	}

	if to == domain.PaymentStatusPaid {
		if p.PaidDate == nil {
			paid := now
			p.PaidDate = &paid
		}
	} else {
		p.PaidDate = nil
	}

	p.Status = to
	return nil
}

// SetMeetingStatus stores a new meeting status
func SetMeetingStatus(m *domain.Meeting, to domain.MeetingStatus) error {
	if !to.IsValid() {
		return fmt.Errorf("%w: meeting status %q", domain.ErrInvalidStatus, to)
	}
	m.Status = to
	return nil
}

// RescheduleMeeting moves a meeting to a new date and marks it rescheduled
func RescheduleMeeting(m *domain.Meeting, newDate time.Time) {
	m.ScheduledDate = newDate
	m.Status = domain.MeetingStatusRescheduled
}

// SetProjectStatus stores a new project status and touches UpdatedAt
func SetProjectStatus(p *domain.Project, to domain.ProjectStatus, now time.Time) error {
	if !to.IsValid() {
		return fmt.Errorf("%w: project status %q", domain.ErrInvalidStatus, to)
	}
	p.Status = to
	p.UpdatedAt = now
	return nil
}
