package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/relation-core/internal/analytics"
	"github.com/straye-as/relation-core/internal/config"
	"github.com/straye-as/relation-core/internal/domain"
	"github.com/straye-as/relation-core/internal/lifecycle"
	"github.com/straye-as/relation-core/internal/schedule"
	"github.com/straye-as/relation-core/internal/snapshot"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Dashboard is the combined read model shown on the overview screen
type Dashboard struct {
	AsOf               time.Time                     `json:"asOf"`
	Sales              domain.SalesMetrics           `json:"sales"`
	UpcomingPayments   []domain.PaymentSchedule      `json:"upcomingPayments"`
	UpcomingMeetings   []domain.Meeting              `json:"upcomingMeetings"`
	UpcomingMilestones []domain.Milestone            `json:"upcomingMilestones"`
	OverdueMilestones  []domain.Milestone            `json:"overdueMilestones"`
	ExpiringQuotes     []*domain.Quote               `json:"expiringQuotes"`
	QuotesByStatus     map[domain.QuoteStatus]int    `json:"quotesByStatus"`
	Budgets            map[uuid.UUID][]domain.Budget `json:"budgets"`
}

// Service assembles dashboards from snapshots
type Service struct {
	analytics *analytics.Service
	schedule  *schedule.Service
	windows   config.ScheduleConfig
	logger    *zap.Logger
	now       func() time.Time
}

// NewService creates a new dashboard Service
func NewService(
	analyticsService *analytics.Service,
	scheduleService *schedule.Service,
	windows *config.ScheduleConfig,
	logger *zap.Logger,
) *Service {
	return &Service{
		analytics: analyticsService,
		schedule:  scheduleService,
		windows:   *windows,
		logger:    logger,
		now:       time.Now,
	}
}

// SetClock replaces the clock used for the as-of time and quote expiry
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Build computes every dashboard section concurrently. The snapshot is only
// read, so the sections can share it without locking.
func (s *Service) Build(ctx context.Context, snap *snapshot.Snapshot) (*Dashboard, error) {
	var data Dashboard
	data.AsOf = s.now()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		data.Sales = s.analytics.SalesMetrics(snap.Projects, snap.Clients)
		return nil
	})

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		data.UpcomingPayments = s.schedule.UpcomingPayments(snap.Projects, s.windows.PaymentWindowDays)
		return nil
	})

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		data.UpcomingMeetings = s.schedule.UpcomingMeetings(snap.Projects, s.windows.MeetingWindowDays)
		return nil
	})

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		data.UpcomingMilestones = s.schedule.UpcomingMilestones(snap.Projects, s.windows.MilestoneWindowDays)
		data.OverdueMilestones = s.schedule.OverdueMilestones(snap.Projects)
		return nil
	})

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		data.ExpiringQuotes = s.schedule.ExpiringQuotes(snap.Quotes, s.windows.QuoteWindowDays)
		data.QuotesByStatus = countByEffectiveStatus(snap.Quotes, data.AsOf)
		return nil
	})

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		budgets := make(map[uuid.UUID][]domain.Budget, len(snap.Projects))
		for i := range snap.Projects {
			budgets[snap.Projects[i].ID] = s.analytics.ProjectBudgets(&snap.Projects[i])
		}
		data.Budgets = budgets
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	s.logger.Info("built dashboard",
		zap.Int("projects", len(snap.Projects)),
		zap.Int("upcoming_payments", len(data.UpcomingPayments)),
		zap.Int("upcoming_meetings", len(data.UpcomingMeetings)),
		zap.Int("overdue_milestones", len(data.OverdueMilestones)),
		zap.Int("expiring_quotes", len(data.ExpiringQuotes)))

	return &data, nil
}

// countByEffectiveStatus counts quotes by the status they display with, so
// lapsed Sent quotes are counted as Expired.
func countByEffectiveStatus(quotes []*domain.Quote, now time.Time) map[domain.QuoteStatus]int {
	counts := make(map[domain.QuoteStatus]int)
	for _, q := range quotes {
		if q == nil {
			continue
		}
		counts[lifecycle.EffectiveQuoteStatus(q, now)]++
	}
	return counts
}
