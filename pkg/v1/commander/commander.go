package commander

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidCommand is returned for commands missing required fields.
var ErrInvalidCommand = errors.New("invalid command")

// CommandType is type of monitor command.
type CommandType string

// Command types.
const (
	// CommandScrape runs queued scrape job.
	CommandScrape         CommandType = "scrape"
	CommandProductStats   CommandType = "product_stats"
	CommandSourceStats    CommandType = "source_stats"
	CommandMappingChanges CommandType = "mapping_changes"
	CommandEvaluateAlerts CommandType = "evaluate_alerts"
	// CommandEvaluateAlert evaluates single alert rule.
	CommandEvaluateAlert CommandType = "evaluate_alert"
	CommandCleanup       CommandType = "cleanup"
)

// Command is monitor command message.
type Command struct {
	Type   CommandType `json:"type"`
	JobID  int64       `json:"jobId,omitempty"`
	Date   string      `json:"date,omitempty"`
	RuleID int64       `json:"ruleId,omitempty"`
}

// Validate checks whether command carries fields required by its type.
func (c Command) Validate() error {
	switch c.Type {
	case CommandScrape:
		if c.JobID <= 0 {
			return fmt.Errorf("%w: %s command without job id", ErrInvalidCommand, c.Type)
		}
	case CommandEvaluateAlert:
		if c.RuleID <= 0 {
			return fmt.Errorf("%w: %s command without rule id", ErrInvalidCommand, c.Type)
		}
	case CommandProductStats, CommandSourceStats:
		if c.Date == "" {
			return nil
		}
		if _, err := time.Parse(time.DateOnly, c.Date); err != nil {
			return fmt.Errorf("%w: %s command with malformed date: %w", ErrInvalidCommand, c.Type, err)
		}
	case CommandMappingChanges, CommandEvaluateAlerts, CommandCleanup:
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidCommand, c.Type)
	}

	return nil
}

// Day returns command's date. Reports false when date isn't set.
func (c Command) Day() (time.Time, bool) {
	day, err := time.Parse(time.DateOnly, c.Date)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

//go:generate mockery --name Sender --filename sender.go

// Sender sends messages.
type Sender interface {
	Send(context.Context, []byte) error
}

// Commander sends monitor commands.
type Commander struct {
	sender Sender
}

// NewCommander returns new Commander using provided sender for sending messages.
func NewCommander(sender Sender) Commander {
	return Commander{
		sender: sender,
	}
}

// Send validates and sends command.
func (c Commander) Send(ctx context.Context, cmd Command) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	cmdMsg, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("can't marshal %s command: %w", cmd.Type, err)
	}

	if err := c.sender.Send(ctx, cmdMsg); err != nil {
		return fmt.Errorf("can't send %s command: %w", cmd.Type, err)
	}

	return nil
}

// SendScrapeCommand sends command running queued scrape job.
func (c Commander) SendScrapeCommand(ctx context.Context, jobID int64) error {
	return c.Send(ctx, Command{Type: CommandScrape, JobID: jobID})
}

// SendTaskCommand sends command of maintenance task type. Zero date means task's default day.
func (c Commander) SendTaskCommand(ctx context.Context, cmdType CommandType, date time.Time) error {
	cmd := Command{Type: cmdType}
	if !date.IsZero() {
		cmd.Date = date.Format(time.DateOnly)
	}

	return c.Send(ctx, cmd)
}

// SendEvaluateAlertCommand sends command evaluating single alert rule.
func (c Commander) SendEvaluateAlertCommand(ctx context.Context, ruleID int64) error {
	return c.Send(ctx, Command{Type: CommandEvaluateAlert, RuleID: ruleID})
}
