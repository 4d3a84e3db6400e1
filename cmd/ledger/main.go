package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/straye-as/relation-core/internal/analytics"
	"github.com/straye-as/relation-core/internal/config"
	"github.com/straye-as/relation-core/internal/dashboard"
	"github.com/straye-as/relation-core/internal/format"
	"github.com/straye-as/relation-core/internal/jobs"
	"github.com/straye-as/relation-core/internal/leads"
	"github.com/straye-as/relation-core/internal/logger"
	"github.com/straye-as/relation-core/internal/pricing"
	"github.com/straye-as/relation-core/internal/schedule"
	"github.com/straye-as/relation-core/internal/snapshot"
	"go.uber.org/zap"
)

const usage = "usage: ledger [metrics|budgets|report <type> <start> <end>|schedule|quote-number [year]|invoice <projectID> <paymentID>|lead < lead.json|digest]"

// digestTimeout bounds a single scheduled digest run
const digestTimeout = 2 * time.Minute

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	args := os.Args[1:]
	if len(args) == 0 {
		return errors.New(usage)
	}

	command := args[0]
	arguments := args[1:]
	log = logger.WithCommand(log, command)

	a := newApp(cfg, log)

	if command == "digest" {
		return a.serveDigest()
	}

	snap, err := snapshot.Load(cfg.Digest.SnapshotPath)
	if err != nil {
		return err
	}

	log.Debug("loaded snapshot",
		zap.String("path", cfg.Digest.SnapshotPath),
		zap.Int("clients", len(snap.Clients)),
		zap.Int("quotes", len(snap.Quotes)),
		zap.Int("projects", len(snap.Projects)))

	switch command {
	case "metrics":
		return a.metrics(snap)
	case "budgets":
		return a.budgets(snap)
	case "report":
		return a.report(snap, arguments)
	case "schedule":
		return a.schedule(snap)
	case "quote-number":
		return a.quoteNumber(snap, arguments)
	case "invoice":
		return a.invoice(snap, arguments)
	case "lead":
		return a.lead(snap, os.Stdin)
	default:
		return fmt.Errorf("unknown command: %s\n%s", command, usage)
	}
}

// app wires the services used by every command
type app struct {
	cfg        *config.Config
	log        *zap.Logger
	out        io.Writer
	formatter  *format.Formatter
	pricing    *pricing.Service
	scheduling *schedule.Service
	analytics  *analytics.Service
	dashboard  *dashboard.Service
	leads      *leads.Service
}

func newApp(cfg *config.Config, log *zap.Logger) *app {
	analyticsService := analytics.NewService(cfg.Reports.GeneratedBy, log)
	scheduleService := schedule.NewService(log)

	return &app{
		cfg:        cfg,
		log:        log,
		out:        os.Stdout,
		formatter:  format.New(cfg.App.Locale, cfg.App.Currency),
		pricing:    pricing.NewService(&cfg.Pricing, log),
		scheduling: scheduleService,
		analytics:  analyticsService,
		dashboard:  dashboard.NewService(analyticsService, scheduleService, &cfg.Schedule, log),
		leads:      leads.NewService(log),
	}
}

// serveDigest runs the digest job on its cron schedule until interrupted
func (a *app) serveDigest() error {
	if !a.cfg.Digest.Enabled {
		a.log.Warn("digest job is disabled, set DIGEST_ENABLED=true to schedule it")
		return nil
	}

	path := a.cfg.Digest.SnapshotPath
	job := jobs.NewDigestJob(func() (*snapshot.Snapshot, error) {
		return snapshot.Load(path)
	}, a.dashboard, a.formatter, a.log, digestTimeout)

	scheduler := jobs.NewScheduler(a.log)
	if err := scheduler.AddJob(jobs.DigestJobName, a.cfg.Digest.Cron, job.Run); err != nil {
		return err
	}
	scheduler.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.log.Info("shutting down digest scheduler")

	ctx, cancel := context.WithTimeout(context.Background(), digestTimeout)
	defer cancel()

	select {
	case <-scheduler.Stop().Done():
	case <-ctx.Done():
		a.log.Warn("digest job did not finish before shutdown")
	}
	return nil
}
