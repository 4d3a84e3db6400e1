package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Logging  LoggingConfig
	Pricing  PricingConfig
	Schedule ScheduleConfig
	Reports  ReportsConfig
	Digest   DigestConfig
}

type AppConfig struct {
	Name        string
	Environment string
	// Locale is a BCP 47 tag used when formatting amounts for display
	Locale string
	// Currency is the ISO 4217 code printed next to formatted amounts
	Currency string
}

type LoggingConfig struct {
	Level  string
	Format string
}

// PricingConfig holds defaults applied to new quote drafts
type PricingConfig struct {
	// QuoteNumberPrefix is the first segment of generated quote numbers (COT-2024-001)
	QuoteNumberPrefix string
	// DefaultTaxRate is the tax percentage applied to new drafts
	DefaultTaxRate float64
	// ValidityDays is how long a new draft stays valid
	ValidityDays int
}

// ScheduleConfig holds the day windows used by the scheduling queries
type ScheduleConfig struct {
	PaymentWindowDays   int
	MeetingWindowDays   int
	MilestoneWindowDays int
	QuoteWindowDays     int
}

type ReportsConfig struct {
	// GeneratedBy is stamped on reports and invoices when the caller gives no name
	GeneratedBy string
}

// DigestConfig controls the scheduled digest job
type DigestConfig struct {
	Enabled bool
	// Cron is a 6-field (with seconds) cron expression
	Cron string
	// SnapshotPath is the JSON snapshot the digest reads on every run
	SnapshotPath string
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Digest.SnapshotPath == "" {
		cfg.Digest.SnapshotPath = v.GetString("SNAPSHOT_PATH")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "Relation Core")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.locale", "en-US")
	v.SetDefault("app.currency", "USD")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Pricing defaults
	v.SetDefault("pricing.quoteNumberPrefix", "COT")
	v.SetDefault("pricing.defaultTaxRate", 16)
	v.SetDefault("pricing.validityDays", 30)

	// Scheduling windows (days)
	v.SetDefault("schedule.paymentWindowDays", 30)
	v.SetDefault("schedule.meetingWindowDays", 7)
	v.SetDefault("schedule.milestoneWindowDays", 7)
	v.SetDefault("schedule.quoteWindowDays", 7)

	// Report defaults
	v.SetDefault("reports.generatedBy", "system")

	// Digest job defaults
	v.SetDefault("digest.enabled", false)
	v.SetDefault("digest.cron", "0 0 8 * * *") // every day at 08:00:00
	v.SetDefault("digest.snapshotPath", "./snapshot.json")
}
