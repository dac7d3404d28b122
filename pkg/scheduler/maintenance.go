package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/fadedpez/bankroll/internal/logging"
)

// Default maintenance intervals
const (
	PruneInterval   = 24 * time.Hour
	EconomyInterval = 5 * time.Minute
	SweepInterval   = 10 * time.Minute
	LimiterIdle     = 30 * time.Minute
)

// AnalyticsPruner deletes analytics documents older than a cutoff
type AnalyticsPruner interface {
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// EconomySource reports the number of records and the currency in circulation
type EconomySource interface {
	Economy(ctx context.Context) (records int64, total int64, err error)
}

// EconomyGauge publishes economy totals
type EconomyGauge interface {
	SetEconomy(records, total int64)
}

// LimiterSweeper drops idle rate limiters
type LimiterSweeper interface {
	Sweep(now time.Time, idle time.Duration) int
}

// MaintenanceConfig selects which maintenance tasks run. Nil collaborators
// disable their task.
type MaintenanceConfig struct {
	Analytics AnalyticsPruner
	Retention time.Duration

	Economy EconomySource
	Gauge   EconomyGauge

	Limiter LimiterSweeper

	Now func() time.Time
}

// MaintenanceScheduler runs the bot's periodic housekeeping
type MaintenanceScheduler struct {
	scheduler *Scheduler
	config    MaintenanceConfig
	logger    *logging.Logger
}

// NewMaintenanceScheduler creates a scheduler for the configured tasks
func NewMaintenanceScheduler(cfg MaintenanceConfig, logger *logging.Logger) *MaintenanceScheduler {
	if logger == nil {
		logger = logging.Default
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &MaintenanceScheduler{
		scheduler: NewScheduler(logger),
		config:    cfg,
		logger:    logger,
	}
}

// Start schedules the enabled tasks and starts running them
func (m *MaintenanceScheduler) Start(ctx context.Context) {
	if m.config.Analytics != nil && m.config.Retention > 0 {
		m.scheduler.AddTask("analytics_pruning", PruneInterval, m.pruneAnalytics)
	}
	if m.config.Economy != nil && m.config.Gauge != nil {
		m.scheduler.AddTask("economy_gauges", EconomyInterval, m.refreshEconomy)
	}
	if m.config.Limiter != nil {
		m.scheduler.AddTask("limiter_sweep", SweepInterval, m.sweepLimiters)
	}

	m.scheduler.Start(ctx)
}

// Stop stops the maintenance tasks
func (m *MaintenanceScheduler) Stop() {
	m.scheduler.Stop()
}

func (m *MaintenanceScheduler) pruneAnalytics(ctx context.Context) error {
	cutoff := m.config.Now().Add(-m.config.Retention)
	deleted, err := m.config.Analytics.PruneOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to prune analytics: %w", err)
	}
	if deleted > 0 {
		m.logger.Info("Pruned %d analytics documents older than %s", deleted, cutoff.Format(time.RFC3339))
	}
	return nil
}

func (m *MaintenanceScheduler) refreshEconomy(ctx context.Context) error {
	records, total, err := m.config.Economy.Economy(ctx)
	if err != nil {
		return fmt.Errorf("failed to read economy totals: %w", err)
	}
	m.config.Gauge.SetEconomy(records, total)
	return nil
}

func (m *MaintenanceScheduler) sweepLimiters(ctx context.Context) error {
	if removed := m.config.Limiter.Sweep(m.config.Now(), LimiterIdle); removed > 0 {
		m.logger.Debug("Removed %d idle rate limiters", removed)
	}
	return nil
}
