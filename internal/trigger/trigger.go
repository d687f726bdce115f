package trigger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MichalMitros/price-monitor/internal/platform/models"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// ErrInvalidScope is returned for scopes referencing non-positive ids.
var ErrInvalidScope = errors.New("invalid scope")

//go:generate mockery --name Storage --filename storage.go
//go:generate mockery --name Commander --filename commander.go

// Storage is scrape jobs storage.
type Storage interface {
	CreateJob(ctx context.Context, job *models.ScrapeJob) error
	FinishJob(ctx context.Context, job *models.ScrapeJob) error
	GetJob(ctx context.Context, id int64) (*models.ScrapeJob, error)
	ListJobAttempts(ctx context.Context, jobID int64) ([]models.ScrapeAttempt, error)
}

// Commander sends commands to monitor workers.
type Commander interface {
	SendScrapeCommand(ctx context.Context, jobID int64) error
}

// JobResult is scrape job with outcomes of its settled units.
type JobResult struct {
	Job      *models.ScrapeJob
	Attempts []models.ScrapeAttempt
}

// Trigger enqueues scrape jobs for asynchronous processing.
type Trigger struct {
	storage   Storage
	commander Commander
	logger    *zerolog.Logger
	now       func() time.Time
}

// NewTrigger returns new Trigger.
func NewTrigger(storage Storage, commander Commander, logger *zerolog.Logger) *Trigger {
	return &Trigger{
		storage:   storage,
		commander: commander,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// EnqueueScrape creates queued job of the scope and sends command running it.
// Job whose command can't be sent is marked failed.
func (t Trigger) EnqueueScrape(ctx context.Context, scope models.Scope) (*models.ScrapeJob, error) {
	if err := validateScope(scope); err != nil {
		return nil, err
	}

	job := &models.ScrapeJob{
		Type:   scope.JobType(),
		Scope:  scope,
		Status: models.JobStatusQueued,
	}

	if err := t.storage.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("can't enqueue scrape job: %w", err)
	}

	if err := t.commander.SendScrapeCommand(ctx, job.ID); err != nil {
		job.Status = models.JobStatusFailed
		job.CompletedAt = lo.ToPtr(t.now())
		job.ErrorMessage = lo.ToPtr(err.Error())

		if finishErr := t.storage.FinishJob(context.WithoutCancel(ctx), job); finishErr != nil {
			return job, fmt.Errorf("can't finish failed scrape job: %w (fail reason: %w)", finishErr, err)
		}

		return job, fmt.Errorf("can't enqueue scrape job: %w", err)
	}

	t.logger.Info().
		Int64("jobId", job.ID).
		Str("jobType", string(job.Type)).
		Msg("scrape job enqueued")

	return job, nil
}

// JobStatus returns job with provided id and its logged unit outcomes.
func (t Trigger) JobStatus(ctx context.Context, jobID int64) (*JobResult, error) {
	job, err := t.storage.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	attempts, err := t.storage.ListJobAttempts(ctx, jobID)
	if err != nil {
		return nil, err
	}

	return &JobResult{
		Job:      job,
		Attempts: attempts,
	}, nil
}

func validateScope(scope models.Scope) error {
	if scope.ProductID != nil && *scope.ProductID <= 0 {
		return fmt.Errorf("%w: product id %d", ErrInvalidScope, *scope.ProductID)
	}
	if scope.SourceID != nil && *scope.SourceID <= 0 {
		return fmt.Errorf("%w: source id %d", ErrInvalidScope, *scope.SourceID)
	}
	return nil
}
