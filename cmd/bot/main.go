package main

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fadedpez/bankroll/internal/bot"
	"github.com/fadedpez/bankroll/internal/config"
	"github.com/fadedpez/bankroll/internal/discord"
	"github.com/fadedpez/bankroll/internal/i18n"
	"github.com/fadedpez/bankroll/internal/logging"
	"github.com/fadedpez/bankroll/pkg/discord/commands"
	"github.com/fadedpez/bankroll/pkg/metrics"
	"github.com/fadedpez/bankroll/pkg/repositories/analytics"
	"github.com/fadedpez/bankroll/pkg/scheduler"
	currencysvc "github.com/fadedpez/bankroll/pkg/services/currency"
	"github.com/fadedpez/bankroll/pkg/services/errorreport"
	"github.com/fadedpez/bankroll/pkg/services/games"
	optoutsvc "github.com/fadedpez/bankroll/pkg/services/optout"
	"github.com/fadedpez/bankroll/pkg/services/ratelimit"
	"github.com/fadedpez/bankroll/pkg/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logging.Default.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(logging.ParseLevel(cfg.LogLevel))
	logging.Default = logger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Bot exited with error: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *logging.Logger) error {
	// Storage
	stores, err := storage.Open(ctx, &storage.Options{
		Type:          cfg.StorageType,
		Path:          cfg.DatabasePath(),
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	})
	if err != nil {
		return err
	}
	defer stores.Close()
	logger.Info("Using %s storage", cfg.StorageType)

	// Analytics
	var sink analytics.Sink = analytics.NewMemorySink()
	if cfg.AnalyticsEnabled() {
		esSink, err := analytics.NewElasticsearchSink(ctx, &analytics.ElasticsearchConfig{
			URL:         cfg.ElasticsearchURL,
			Username:    cfg.ElasticsearchUsername,
			Password:    cfg.ElasticsearchPassword,
			IndexPrefix: cfg.ElasticsearchPrefix,
		})
		if err != nil {
			return err
		}
		sink = esSink
		logger.Info("Indexing plays to %s and errors to %s", esSink.PlaysIndex(), esSink.ErrorsIndex())
	}

	// Metrics
	registry := metrics.NewRegistry()
	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           registry.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed: %v", err)
		}
	}()
	defer metricsServer.Close()

	translator, err := i18n.NewTranslator()
	if err != nil {
		return err
	}

	session, err := discord.NewSession(cfg.Token)
	if err != nil {
		return err
	}

	currency := currencysvc.NewService(stores.Currency, sink, currencysvc.WithLogger(logger))
	limiter := ratelimit.NewRegistry(cfg.GamesPerMinute, ratelimit.DefaultBurst)

	reporterOpts := []errorreport.Option{errorreport.WithMetrics(registry)}
	if cfg.DebugChannelID != "" {
		reporterOpts = append(reporterOpts, errorreport.WithDebugChannel(session, cfg.DebugChannelID))
	}

	currencyCommand := commands.NewCurrencyCommand(commands.CurrencyDeps{
		Currency:       currency,
		OptOuts:        optoutsvc.NewService(stores.OptOuts),
		Engine:         games.NewEngine(rand.New(rand.NewSource(time.Now().UnixNano()))),
		Limiter:        limiter,
		Reporter:       errorreport.NewReporter(logger, sink, reporterOpts...),
		Translator:     translator,
		Metrics:        registry,
		Logger:         logger,
		ClaimChannelID: cfg.ClaimChannelID,
	})

	maintenance := scheduler.NewMaintenanceScheduler(scheduler.MaintenanceConfig{
		Analytics: sink,
		Retention: cfg.AnalyticsRetention,
		Economy:   currency,
		Gauge:     registry,
		Limiter:   limiter,
	}, logger)

	b := bot.New(cfg, session, logger, currencyCommand)
	if err := b.Start(); err != nil {
		return err
	}
	maintenance.Start(ctx)

	logger.Info("Bot is now running. Press CTRL-C to exit.")
	<-ctx.Done()

	logger.Info("Shutting down...")
	maintenance.Stop()
	b.Shutdown()
	return nil
}
