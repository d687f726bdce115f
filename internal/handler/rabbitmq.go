package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MichalMitros/price-monitor/internal/platform/rabbitmq"
	"github.com/MichalMitros/price-monitor/pkg/v1/commander"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Tasks --filename tasks.go
//go:generate mockery --name Consumer --filename consumer.go

// Tasks runs monitor tasks.
type Tasks interface {
	RunScrapeJob(ctx context.Context, jobID int64) error
	ProductStats(ctx context.Context, date time.Time) error
	SourceStats(ctx context.Context, date time.Time) error
	MappingChanges(ctx context.Context) error
	EvaluateAlerts(ctx context.Context) error
	EvaluateAlert(ctx context.Context, ruleID int64) error
	Cleanup(ctx context.Context) error
}

// Consumer consumes messages from queue.
type Consumer interface {
	Consume(ctx context.Context, queue string, handler rabbitmq.HandlerFunc) (<-chan error, error)
}

// RMQHandler handles RMQ command messages.
type RMQHandler struct {
	consumer Consumer
	tasks    Tasks
	logger   *zerolog.Logger
}

// NewHandler returns new RMQHandler.
func NewHandler(consumer Consumer, tasks Tasks, logger *zerolog.Logger) *RMQHandler {
	return &RMQHandler{
		consumer: consumer,
		tasks:    tasks,
		logger:   logger,
	}
}

// Start starts consuming and handling commands from RMQ.
func (h *RMQHandler) Start(ctx context.Context, queue string) error {
	errorsChan, err := h.consumer.Consume(ctx, queue, h.Handle)
	if err != nil {
		return err
	}

	go func() {
		for err := range errorsChan {
			h.logger.Error().
				Err(err).
				Msg("can't handle message")
		}
	}()

	return nil
}

// Handle decodes command message and runs its task.
func (h *RMQHandler) Handle(ctx context.Context, message []byte) error {
	cmd, err := decodeMessage(message)
	if err != nil {
		return err
	}

	logger := h.logger.With().
		Str("command", string(cmd.Type)).
		Logger()

	logger.Debug().Msg("command started")

	if err := h.run(ctx, cmd); err != nil {
		return fmt.Errorf("%s command failed: %w", cmd.Type, err)
	}

	logger.Debug().Msg("command finished")

	return nil
}

func (h *RMQHandler) run(ctx context.Context, cmd *commander.Command) error {
	date, _ := cmd.Day()

	switch cmd.Type {
	case commander.CommandScrape:
		return h.tasks.RunScrapeJob(ctx, cmd.JobID)
	case commander.CommandProductStats:
		return h.tasks.ProductStats(ctx, date)
	case commander.CommandSourceStats:
		return h.tasks.SourceStats(ctx, date)
	case commander.CommandMappingChanges:
		return h.tasks.MappingChanges(ctx)
	case commander.CommandEvaluateAlerts:
		return h.tasks.EvaluateAlerts(ctx)
	case commander.CommandEvaluateAlert:
		return h.tasks.EvaluateAlert(ctx, cmd.RuleID)
	case commander.CommandCleanup:
		return h.tasks.Cleanup(ctx)
	}

	return nil
}

func decodeMessage(msg []byte) (*commander.Command, error) {
	var cmd commander.Command
	if err := json.Unmarshal(msg, &cmd); err != nil {
		return nil, fmt.Errorf("can't decode command: %w", err)
	}

	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("can't handle command: %w", err)
	}

	return &cmd, nil
}
