package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/MichalMitros/price-monitor/internal/platform/models"
	"github.com/MichalMitros/price-monitor/internal/platform/rabbitmq"
	"github.com/MichalMitros/price-monitor/internal/platform/storage"
	"github.com/MichalMitros/price-monitor/internal/trigger"
	"github.com/MichalMitros/price-monitor/pkg/v1/commander"
	"github.com/caarlos0/env/v6"
	_ "github.com/lib/pq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const usage = `usage: monitorctl <command> [flags]

commands:
  scrape  [-product id] [-source id]   enqueue scrape job
  job     -id id                       show scrape job and its units
  task    -type type [-date yyyy-mm-dd] run product_stats, source_stats, mapping_changes,
                                       evaluate_alerts or cleanup
  alert   -rule id                     evaluate single alert rule
`

// Config holds monitorctl configuration.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required"`
	RabbitMQ    struct {
		URL        string `env:"RABBITMQ_URL,required"`
		Exchange   string `env:"RABBITMQ_EXCHANGE" envDefault:"price-monitor-ex"`
		RoutingKey string `env:"RABBITMQ_ROUTING_KEY" envDefault:"price-monitor.command"`
	}
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't parse env variables")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	amqpConnection, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ connection")
	}
	defer amqpConnection.Close()

	conn, err := rabbitmq.NewRabbitMQ(amqpConnection, cfg.RabbitMQ.Exchange)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ channel")
	}
	defer conn.Close()

	pgDB, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open Postgres connection")
	}
	defer pgDB.Close()

	cmndr := commander.NewCommander(commander.NewRabbitMQSender(conn, cfg.RabbitMQ.RoutingKey))
	trg := trigger.NewTrigger(storage.NewPostgres(pgDB), cmndr, &logger)

	if err := run(ctx, os.Args[1], os.Args[2:], trg, cmndr); err != nil {
		logger.Error().
			Err(err).
			Str("command", os.Args[1]).
			Msg("command failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, name string, args []string, trg *trigger.Trigger, cmndr commander.Commander) error {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)

	switch name {
	case "scrape":
		productID := flags.Int64("product", 0, "product id")
		sourceID := flags.Int64("source", 0, "source id")
		if err := flags.Parse(args); err != nil {
			return err
		}

		scope := models.Scope{}
		if *productID != 0 {
			scope.ProductID = productID
		}
		if *sourceID != 0 {
			scope.SourceID = sourceID
		}

		job, err := trg.EnqueueScrape(ctx, scope)
		if err != nil {
			return err
		}
		return printJSON(job)

	case "job":
		jobID := flags.Int64("id", 0, "scrape job id")
		if err := flags.Parse(args); err != nil {
			return err
		}

		result, err := trg.JobStatus(ctx, *jobID)
		if err != nil {
			return err
		}
		return printJSON(result)

	case "task":
		taskType := flags.String("type", "", "task type")
		date := flags.String("date", "", "aggregated day, previous day by default")
		if err := flags.Parse(args); err != nil {
			return err
		}

		day := time.Time{}
		if *date != "" {
			parsed, err := time.Parse(time.DateOnly, *date)
			if err != nil {
				return fmt.Errorf("can't parse date: %w", err)
			}
			day = parsed
		}

		return cmndr.SendTaskCommand(ctx, commander.CommandType(*taskType), day)

	case "alert":
		ruleID := flags.Int64("rule", 0, "alert rule id")
		if err := flags.Parse(args); err != nil {
			return err
		}

		return cmndr.SendEvaluateAlertCommand(ctx, *ruleID)

	default:
		fmt.Fprint(os.Stderr, usage)
		return errors.New("unknown command " + name)
	}
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
