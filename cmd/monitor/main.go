package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/MichalMitros/price-monitor/cmd/monitor/config"
	"github.com/MichalMitros/price-monitor/internal/aggregator"
	"github.com/MichalMitros/price-monitor/internal/alerts"
	"github.com/MichalMitros/price-monitor/internal/fetcher"
	"github.com/MichalMitros/price-monitor/internal/handler"
	"github.com/MichalMitros/price-monitor/internal/ingest"
	"github.com/MichalMitros/price-monitor/internal/notify"
	"github.com/MichalMitros/price-monitor/internal/platform/metrics"
	"github.com/MichalMitros/price-monitor/internal/platform/rabbitmq"
	"github.com/MichalMitros/price-monitor/internal/platform/redislock"
	"github.com/MichalMitros/price-monitor/internal/platform/storage"
	"github.com/MichalMitros/price-monitor/internal/scheduler"
	"github.com/MichalMitros/price-monitor/internal/scraper"
	"github.com/MichalMitros/price-monitor/internal/tasks"
	"github.com/caarlos0/env/v6"
	_ "github.com/lib/pq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 30 * time.Second

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	var cfg config.Config
	if err := env.Parse(&cfg); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't parse env variables")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	amqpConnection, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ connection")
	}

	conn, err := rabbitmq.NewRabbitMQ(amqpConnection, cfg.RabbitMQ.Exchange, rabbitmq.WithPrefetch(cfg.RabbitMQ.Prefetch))
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ channel")
	}

	if err := conn.DeclareQueue(cfg.RabbitMQ.Queue, cfg.RabbitMQ.RoutingKey); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't declare commands queue")
	}

	pgDB, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open Postgres connection")
	}
	db := storage.NewPostgres(pgDB)

	if err := db.Migrate(ctx); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't migrate database")
	}

	fetcherOptions := []fetcher.Option{
		fetcher.WithTimeout(cfg.Scraper.HTTPTimeout),
		fetcher.WithRetries(cfg.Scraper.Retries, cfg.Scraper.InitialBackOff, cfg.Scraper.MaxBackOff),
		fetcher.WithHostRateLimit(cfg.Scraper.HostInterval, cfg.Scraper.HostBurst),
	}

	var browser *fetcher.Browser
	if !cfg.Scraper.BrowserDisabled {
		browser = fetcher.NewBrowser(fetcher.BrowserConfig{
			Bin:         cfg.Browser.Bin,
			Headless:    cfg.Browser.Headless,
			UserAgent:   cfg.Scraper.UserAgent,
			IdleWindow:  cfg.Browser.IdleWindow,
			SettleDelay: cfg.Browser.SettleDelay,
		})
		fetcherOptions = append(fetcherOptions, fetcher.WithRenderer(browser))
	}

	scr := scraper.NewScraper(
		fetcher.NewFetcher(&http.Client{Timeout: cfg.Scraper.HTTPTimeout}, cfg.Scraper.UserAgent, fetcherOptions...),
		ingest.NewIngester(db),
		db,
		&logger,
		scraper.WithConcurrency(cfg.Scraper.Concurrency),
	)

	agg := aggregator.NewAggregator(db, &logger, aggregator.WithRetention(cfg.Aggregator.Retention))

	var deliverer alerts.Notifier = notify.NewLog(&logger)
	if cfg.SMTP.Enabled() {
		deliverer = notify.NewSMTPEmail(cfg.SMTP)
	} else {
		logger.Warn().Msg("smtp not configured, alerts will only be logged")
	}
	notifier := notify.NewAsync(deliverer, &logger)

	engine := alerts.NewEngine(db, notifier, &logger, alerts.WithLookback(cfg.Alerts.Lookback))

	monitorTasks := tasks.NewTasks(scr, agg, engine, &logger)

	var rdb *redis.Client
	schedulerOptions := []scheduler.Option{}
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		schedulerOptions = append(schedulerOptions, scheduler.WithLocker(redislock.NewLocker(rdb), cfg.Redis.LockTTL))
	}

	sched, err := scheduler.NewScheduler(monitorTasks.Jobs(), &logger, schedulerOptions...)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't create scheduler")
	}

	if cfg.SchedulerEnabled {
		sched.Start(ctx)

		for _, entry := range sched.Entries() {
			logger.Info().
				Str("job", entry.Name).
				Str("spec", entry.Spec).
				Time("next", entry.Next).
				Msg("job scheduled")
		}
	}

	for _, name := range cfg.RunOnStart {
		go func() {
			if err := sched.Trigger(ctx, name); err != nil {
				logger.Error().
					Err(err).
					Str("job", name).
					Msg("can't run job on start")
			}
		}()
	}

	han := handler.NewHandler(conn, monitorTasks, &logger)

	// start consuming and handling commands
	err = han.Start(ctx, cfg.RabbitMQ.Queue)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't start consuming")
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().
				Err(err).
				Msg("metrics server failed")
		}
	}()

	logger.Info().Msg("price monitor up and running")

	// handle graceful shutdown and context cancellation
	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-termChan:
	case <-ctx.Done():
	}

	logger.Info().Msg("graceful shutdown start")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if cfg.SchedulerEnabled {
		if err := sched.Stop(shutdownCtx); err != nil {
			logger.Error().
				Err(err).
				Msg("can't stop scheduler")
		}
	}

	cancel()

	// wait for consumer to finish
	<-conn.Done()
	notifier.Wait()

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().
			Err(err).
			Msg("can't stop metrics server")
	}

	// close connections
	wg := sync.WaitGroup{}

	closers := map[string]func() error{
		"Postgres": pgDB.Close,
		"RabbitMQ": func() error {
			if err := conn.Close(); err != nil {
				logger.Error().
					Err(err).
					Msg("can't close RabbitMQ channel")
			}
			return amqpConnection.Close()
		},
	}
	if rdb != nil {
		closers["Redis"] = rdb.Close
	}
	if browser != nil {
		closers["browser"] = browser.Close
	}

	for name, closeFn := range closers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := closeFn(); err != nil {
				logger.Error().
					Err(err).
					Msgf("can't close %s connection", name)
			}
		}()
	}

	wg.Wait()

	logger.Info().Msg("graceful shutdown successful")
}
