package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/relation-core/internal/dashboard"
	"github.com/straye-as/relation-core/internal/domain"
	"github.com/straye-as/relation-core/internal/format"
	"github.com/straye-as/relation-core/internal/logger"
	"github.com/straye-as/relation-core/internal/snapshot"
	"go.uber.org/zap"
)

// DigestJobName is the name of the daily digest job
const DigestJobName = "digest"

// SnapshotLoader returns the current ledger state. The digest reloads it on
// every run so edits to the snapshot are picked up without a restart.
type SnapshotLoader func() (*snapshot.Snapshot, error)

// DigestJob builds the dashboard from a fresh snapshot and logs a summary of
// what needs attention.
type DigestJob struct {
	load      SnapshotLoader
	dashboard *dashboard.Service
	formatter *format.Formatter
	logger    *zap.Logger
	timeout   time.Duration
}

// NewDigestJob creates a new digest job.
// The timeout bounds a single run.
func NewDigestJob(load SnapshotLoader, dashboardService *dashboard.Service, formatter *format.Formatter, logger *zap.Logger, timeout time.Duration) *DigestJob {
	return &DigestJob{
		load:      load,
		dashboard: dashboardService,
		formatter: formatter,
		logger:    logger,
		timeout:   timeout,
	}
}

// Run executes the digest job.
// This is called by the scheduler according to the cron expression.
func (j *DigestJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	log := logger.WithJob(j.logger, DigestJobName, uuid.NewString())

	start := time.Now()
	lines, err := j.RunOnce(ctx)
	if err != nil {
		log.Error("digest job failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	for _, line := range lines {
		log.Info(line)
	}
	log.Info("digest job completed",
		zap.Int("lines", len(lines)),
		zap.Duration("duration", time.Since(start)))
}

// RunOnce loads the snapshot, builds the dashboard and returns the rendered
// digest lines.
func (j *DigestJob) RunOnce(ctx context.Context) ([]string, error) {
	snap, err := j.load()
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	d, err := j.dashboard.Build(ctx, snap)
	if err != nil {
		return nil, err
	}

	return RenderDigest(d, j.formatter), nil
}

// RenderDigest turns a dashboard into human readable lines
func RenderDigest(d *dashboard.Dashboard, f *format.Formatter) []string {
	lines := []string{
		fmt.Sprintf("Digest as of %s", d.AsOf.Format("2006-01-02")),
		fmt.Sprintf("Revenue this month: %s (year: %s, margin %s)",
			f.Money(d.Sales.MonthlyRevenue),
			f.Money(d.Sales.YearlyRevenue),
			f.Percent(d.Sales.ProfitMargin)),
	}

	for _, p := range d.UpcomingPayments {
		lines = append(lines, fmt.Sprintf("Payment due %s: %s %s",
			p.DueDate.Format("2006-01-02"), f.Money(p.Amount), p.Description))
	}
	for _, m := range d.UpcomingMeetings {
		lines = append(lines, fmt.Sprintf("Meeting %s: %s",
			m.ScheduledDate.Format("2006-01-02 15:04"), m.Title))
	}
	for _, m := range d.OverdueMilestones {
		lines = append(lines, fmt.Sprintf("Overdue milestone since %s: %s",
			m.DueDate.Format("2006-01-02"), m.Title))
	}
	for _, m := range d.UpcomingMilestones {
		lines = append(lines, fmt.Sprintf("Milestone due %s: %s",
			m.DueDate.Format("2006-01-02"), m.Title))
	}
	for _, q := range d.ExpiringQuotes {
		lines = append(lines, fmt.Sprintf("Quote %s expires %s: %s",
			q.Number, q.ValidUntil.Format("2006-01-02"), f.Money(q.Total)))
	}

	if n := d.QuotesByStatus[domain.QuoteStatusExpired]; n > 0 {
		lines = append(lines, fmt.Sprintf("%d sent quote(s) lapsed without an answer", n))
	}

	return lines
}
