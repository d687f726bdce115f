package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MichalMitros/price-monitor/internal/adapter"
	"github.com/MichalMitros/price-monitor/internal/fetcher"
	"github.com/MichalMitros/price-monitor/internal/platform/metrics"
	"github.com/MichalMitros/price-monitor/internal/platform/models"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const maxSummaryErrors = 5

// Skip reasons.
const (
	ReasonSourceInactive = "source inactive"
	ReasonJobAborted     = "job aborted"
)

//go:generate mockery --name Fetcher --filename fetcher.go
//go:generate mockery --name Ingester --filename ingester.go
//go:generate mockery --name Storage --filename storage.go

// Fetcher fetches page content.
type Fetcher interface {
	Fetch(ctx context.Context, req fetcher.Request) (string, error)
}

// Ingester stores extracted prices as observations.
type Ingester interface {
	Ingest(ctx context.Context, mapping models.Mapping, extraction adapter.Extraction) (models.Observation, error)
}

// Clock provides times.
type Clock interface {
	// Now returns current UTC time.
	Now() *time.Time
}

// Storage is mappings and scrape jobs storage.
type Storage interface {
	// StartJob marks job as running. Job without ID is created, queued job is loaded and started.
	StartJob(ctx context.Context, job *models.ScrapeJob) error
	// FinishJob updates job's final status and counters.
	FinishJob(ctx context.Context, job *models.ScrapeJob) error
	// ListMappings returns active mappings matching the scope, with their sources.
	ListMappings(ctx context.Context, scope models.Scope) ([]models.Mapping, error)
	// RecordAttempt logs outcome of single unit.
	RecordAttempt(ctx context.Context, attempt models.ScrapeAttempt) error
}

// UnitResult is outcome of single mapping's fetch, parse and ingest.
type UnitResult struct {
	MappingID int64
	ProductID int64
	SourceID  int64
	Status    models.UnitStatus
	Price     *decimal.Decimal
	// Reason is set for skipped units.
	Reason string
	// ErrorKind and Err are set for failed units.
	ErrorKind string
	Err       error
}

// Report is finished scrape job with its units' outcomes.
type Report struct {
	Job   *models.ScrapeJob
	Units []UnitResult
}

// Option is custom configuration of Scraper.
type Option func(s *Scraper)

// Scraper scrapes prices of mappings with bounded concurrency and tracks scrape jobs.
type Scraper struct {
	fetcher     Fetcher
	ingester    Ingester
	storage     Storage
	logger      *zerolog.Logger
	concurrency int
	clock       Clock
}

// NewScraper returns new Scraper processing at most 5 mappings at once.
func NewScraper(fetcher Fetcher, ingester Ingester, storage Storage, logger *zerolog.Logger, ops ...Option) *Scraper {
	s := &Scraper{
		fetcher:     fetcher,
		ingester:    ingester,
		storage:     storage,
		logger:      logger,
		concurrency: 5,
		clock:       systemClock{},
	}

	for _, op := range ops {
		op(s)
	}

	return s
}

// Scrape creates running job for the scope and processes all its mappings.
// Failing units don't fail the job, only failure to enumerate mappings does.
func (s Scraper) Scrape(ctx context.Context, scope models.Scope) (*Report, error) {
	job := &models.ScrapeJob{
		Type:      scope.JobType(),
		Scope:     scope,
		StartedAt: s.clock.Now(),
	}

	if err := s.storage.StartJob(ctx, job); err != nil {
		return nil, fmt.Errorf("can't start scrape job: %w", err)
	}

	return s.run(ctx, job)
}

// RunQueued starts queued job with provided id and processes all mappings of its scope.
func (s Scraper) RunQueued(ctx context.Context, jobID int64) (*Report, error) {
	job := &models.ScrapeJob{
		ID:        jobID,
		StartedAt: s.clock.Now(),
	}

	if err := s.storage.StartJob(ctx, job); err != nil {
		return nil, fmt.Errorf("can't start scrape job %d: %w", jobID, err)
	}

	return s.run(ctx, job)
}

func (s Scraper) run(ctx context.Context, job *models.ScrapeJob) (*Report, error) {
	logger := s.logger.With().
		Int64("jobId", job.ID).
		Str("jobType", string(job.Type)).
		Logger()

	logger.Info().Msg("scrape job started")

	mappings, err := s.storage.ListMappings(ctx, job.Scope)
	if err != nil {
		report := &Report{Job: job}
		return report, s.finishJob(ctx, job, fmt.Errorf("can't list mappings: %w", err))
	}

	units := make([]UnitResult, len(mappings))

	errGroup := errgroup.Group{}
	errGroup.SetLimit(s.concurrency)

	for ix, mapping := range mappings {
		errGroup.Go(func() error {
			units[ix] = s.processUnit(ctx, job.ID, mapping)
			s.logUnit(&logger, units[ix])
			return nil
		})
	}

	// units never return errors, waiting only settles them.
	_ = errGroup.Wait()

	summarize(job, units)

	var status error
	if ctx.Err() != nil {
		status = fmt.Errorf("scrape job aborted: %w", ctx.Err())
	}

	err = s.finishJob(ctx, job, status)

	logger.Info().
		Int32("processed", job.ProcessedCount).
		Int32("pricesFound", job.PricesFound).
		Int32("failed", job.FailedCount).
		Int32("skipped", job.SkippedCount).
		Str("status", string(job.Status)).
		Msg("scrape job finished")

	return &Report{Job: job, Units: units}, err
}

func (s Scraper) processUnit(ctx context.Context, jobID int64, mapping models.Mapping) UnitResult {
	result := UnitResult{
		MappingID: mapping.ID,
		ProductID: mapping.ProductID,
		SourceID:  mapping.SourceID,
	}

	if ctx.Err() != nil {
		result.Status = models.UnitStatusSkipped
		result.Reason = ReasonJobAborted
		return result
	}

	if !mapping.Source.IsActive {
		result.Status = models.UnitStatusSkipped
		result.Reason = ReasonSourceInactive
		s.recordAttempt(ctx, jobID, mapping, result)
		return result
	}

	observation, err := s.scrapeMapping(ctx, mapping)
	switch {
	case err != nil && ctx.Err() != nil:
		result.Status = models.UnitStatusSkipped
		result.Reason = ReasonJobAborted
		return result
	case err != nil:
		result.Status = models.UnitStatusError
		result.ErrorKind = errorKind(err)
		result.Err = err
	default:
		result.Status = models.UnitStatusSuccess
		result.Price = &observation.Price
	}

	s.recordAttempt(ctx, jobID, mapping, result)

	return result
}

func (s Scraper) scrapeMapping(ctx context.Context, mapping models.Mapping) (models.Observation, error) {
	adp := adapter.Select(mapping.Source.Name, mapping.EffectiveConfig())
	if err := adp.Validate(); err != nil {
		return models.Observation{}, &ValidationError{MappingID: mapping.ID, Err: err}
	}

	req := fetcher.Request{
		URL:             mapping.URL,
		Strategy:        fetcher.Lightweight,
		WaitForSelector: adp.WaitForSelector(),
	}
	if adp.UseBrowser() {
		req.Strategy = fetcher.Rendered
	}

	content, err := s.fetcher.Fetch(ctx, req)
	if err != nil {
		return models.Observation{}, fmt.Errorf("can't fetch page: %w", err)
	}

	extraction, err := adp.Extract(content, mapping.URL)
	if err != nil {
		return models.Observation{}, fmt.Errorf("can't extract price with %s adapter: %w", adp.Name(), err)
	}

	observation, err := s.ingester.Ingest(ctx, mapping, extraction)
	if err != nil {
		return models.Observation{}, fmt.Errorf("can't ingest price: %w", err)
	}

	return observation, nil
}

func (s Scraper) recordAttempt(ctx context.Context, jobID int64, mapping models.Mapping, result UnitResult) {
	metrics.RecordScrapeUnit(mapping.Source.Name, string(result.Status))

	attempt := models.ScrapeAttempt{
		JobID:       lo.ToPtr(jobID),
		MappingID:   mapping.ID,
		ProductID:   mapping.ProductID,
		SourceID:    mapping.SourceID,
		Status:      result.Status,
		Price:       result.Price,
		AttemptedAt: *s.clock.Now(),
	}
	if jobID == 0 {
		attempt.JobID = nil
	}
	if result.Err != nil {
		attempt.ErrorKind = lo.ToPtr(result.ErrorKind)
		attempt.Message = lo.ToPtr(result.Err.Error())
	}
	if result.Reason != "" {
		attempt.Message = lo.ToPtr(result.Reason)
	}

	if err := s.storage.RecordAttempt(context.WithoutCancel(ctx), attempt); err != nil {
		s.logger.Warn().
			Err(err).
			Int64("mappingId", mapping.ID).
			Msg("can't record scrape attempt")
	}
}

func (s Scraper) logUnit(logger *zerolog.Logger, result UnitResult) {
	switch result.Status {
	case models.UnitStatusError:
		logger.Warn().
			Err(result.Err).
			Int64("mappingId", result.MappingID).
			Str("errorKind", result.ErrorKind).
			Msg("scrape unit failed")
	case models.UnitStatusSkipped:
		logger.Debug().
			Int64("mappingId", result.MappingID).
			Str("reason", result.Reason).
			Msg("scrape unit skipped")
	default:
		logger.Debug().
			Int64("mappingId", result.MappingID).
			Stringer("price", result.Price).
			Msg("scrape unit succeeded")
	}
}

// summarize sets job's counters and error summary from settled units.
func summarize(job *models.ScrapeJob, units []UnitResult) {
	job.ProcessedCount = int32(len(units))
	job.PricesFound, job.FailedCount, job.SkippedCount = 0, 0, 0

	messages := make([]string, 0, maxSummaryErrors)
	for _, unit := range units {
		switch unit.Status {
		case models.UnitStatusSuccess:
			job.PricesFound++
		case models.UnitStatusSkipped:
			job.SkippedCount++
		case models.UnitStatusError:
			job.FailedCount++
			if len(messages) < maxSummaryErrors {
				messages = append(messages, fmt.Sprintf("mapping %d: %s", unit.MappingID, unit.Err))
			}
		}
	}

	if job.FailedCount > 0 {
		summary := fmt.Sprintf("%d of %d units failed: %s", job.FailedCount, job.ProcessedCount, strings.Join(messages, "; "))
		job.ErrorMessage = &summary
	}
}

func (s Scraper) finishJob(ctx context.Context, job *models.ScrapeJob, status error) error {
	job.Status = models.JobStatusCompleted
	if status != nil {
		job.Status = models.JobStatusFailed
		job.ErrorMessage = lo.ToPtr(strings.Join(lo.Compact([]string{status.Error(), lo.FromPtr(job.ErrorMessage)}), "; "))
	}
	job.CompletedAt = s.clock.Now()

	err := s.storage.FinishJob(context.WithoutCancel(ctx), job)
	if err != nil && status == nil {
		return fmt.Errorf("can't finish scrape job: %w", err)
	}

	if err != nil && status != nil {
		return fmt.Errorf("can't finish failed scrape job: %w (fail reason: %w)", err, status)
	}

	return status
}

// WithConcurrency sets maximal number of mappings processed at once.
func WithConcurrency(n int) Option {
	return func(s *Scraper) {
		s.concurrency = max(n, 1)
	}
}

// WithClock sets Scraper's custom Clock.
func WithClock(c Clock) Option {
	return func(s *Scraper) {
		s.clock = c
	}
}
