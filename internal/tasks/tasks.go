package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/MichalMitros/price-monitor/internal/alerts"
	"github.com/MichalMitros/price-monitor/internal/platform/models"
	"github.com/MichalMitros/price-monitor/internal/scheduler"
	"github.com/MichalMitros/price-monitor/internal/scraper"
	"github.com/rs/zerolog"
)

// Job names.
const (
	JobScrapeAll      = "scrape_all"
	JobProductStats   = "product_stats"
	JobSourceStats    = "source_stats"
	JobMappingChanges = "mapping_changes"
	JobEvaluateAlerts = "evaluate_alerts"
	JobCleanup        = "cleanup"
)

// Cron specs of scheduled jobs, UTC.
const (
	SpecScrapeAll      = "0 2 * * *"
	SpecProductStats   = "0 3 * * *"
	SpecSourceStats    = "30 3 * * *"
	SpecMappingChanges = "0 4 * * *"
	SpecEvaluateAlerts = "0 * * * *"
	SpecCleanup        = "0 5 * * 0"
)

//go:generate mockery --name Scraper --filename scraper.go
//go:generate mockery --name Aggregator --filename aggregator.go
//go:generate mockery --name AlertEngine --filename alertengine.go

// Scraper runs scrape jobs.
type Scraper interface {
	Scrape(ctx context.Context, scope models.Scope) (*scraper.Report, error)
	RunQueued(ctx context.Context, jobID int64) (*scraper.Report, error)
}

// Aggregator computes daily statistics and cleans up old data.
type Aggregator interface {
	PreviousDay() time.Time
	ProductStats(ctx context.Context, date time.Time) (int, error)
	SourceStats(ctx context.Context, date time.Time) (int, error)
	RecomputeMappingChanges(ctx context.Context) (int, error)
	Cleanup(ctx context.Context) (int64, int64, error)
}

// AlertEngine evaluates alert rules.
type AlertEngine interface {
	Evaluate(ctx context.Context, ruleID int64) (alerts.Result, error)
	EvaluateAll(ctx context.Context) (alerts.Summary, error)
}

// Tasks are monitor's periodic and on-demand tasks.
type Tasks struct {
	scraper    Scraper
	aggregator Aggregator
	alerts     AlertEngine
	logger     *zerolog.Logger
}

// NewTasks returns new Tasks.
func NewTasks(scraper Scraper, aggregator Aggregator, alerts AlertEngine, logger *zerolog.Logger) *Tasks {
	return &Tasks{
		scraper:    scraper,
		aggregator: aggregator,
		alerts:     alerts,
		logger:     logger,
	}
}

// Jobs returns scheduled jobs of all periodic tasks.
func (t Tasks) Jobs() []scheduler.Job {
	return []scheduler.Job{
		{Name: JobScrapeAll, Spec: SpecScrapeAll, Run: t.ScrapeAll},
		{Name: JobProductStats, Spec: SpecProductStats, Run: func(ctx context.Context) error {
			return t.ProductStats(ctx, time.Time{})
		}},
		{Name: JobSourceStats, Spec: SpecSourceStats, Run: func(ctx context.Context) error {
			return t.SourceStats(ctx, time.Time{})
		}},
		{Name: JobMappingChanges, Spec: SpecMappingChanges, Run: t.MappingChanges},
		{Name: JobEvaluateAlerts, Spec: SpecEvaluateAlerts, Run: t.EvaluateAlerts},
		{Name: JobCleanup, Spec: SpecCleanup, Run: t.Cleanup},
	}
}

// ScrapeAll scrapes all active mappings in a new job.
func (t Tasks) ScrapeAll(ctx context.Context) error {
	report, err := t.scraper.Scrape(ctx, models.Scope{})
	if err != nil {
		return err
	}

	t.logReport(report)

	return nil
}

// RunScrapeJob runs queued scrape job.
func (t Tasks) RunScrapeJob(ctx context.Context, jobID int64) error {
	report, err := t.scraper.RunQueued(ctx, jobID)
	if err != nil {
		return err
	}

	t.logReport(report)

	return nil
}

func (t Tasks) logReport(report *scraper.Report) {
	t.logger.Info().
		Int64("jobId", report.Job.ID).
		Int32("pricesFound", report.Job.PricesFound).
		Int32("failed", report.Job.FailedCount).
		Int32("skipped", report.Job.SkippedCount).
		Msg("scrape task finished")
}

// ProductStats aggregates product stats of the date, zero date means previous day.
func (t Tasks) ProductStats(ctx context.Context, date time.Time) error {
	_, err := t.aggregator.ProductStats(ctx, t.day(date))
	return err
}

// SourceStats aggregates source stats of the date, zero date means previous day.
func (t Tasks) SourceStats(ctx context.Context, date time.Time) error {
	_, err := t.aggregator.SourceStats(ctx, t.day(date))
	return err
}

func (t Tasks) day(date time.Time) time.Time {
	if date.IsZero() {
		return t.aggregator.PreviousDay()
	}
	return date
}

// MappingChanges recomputes 1, 7 and 30 day price changes of mappings.
func (t Tasks) MappingChanges(ctx context.Context) error {
	_, err := t.aggregator.RecomputeMappingChanges(ctx)
	return err
}

// EvaluateAlerts evaluates all active alert rules. Failed rules are logged and don't fail the task.
func (t Tasks) EvaluateAlerts(ctx context.Context) error {
	summary, err := t.alerts.EvaluateAll(ctx)
	if err != nil {
		return err
	}

	for _, failed := range summary.Failed {
		t.logger.Warn().
			Err(failed.Err).
			Int64("ruleId", failed.RuleID).
			Msg("alert rule evaluation failed")
	}

	return nil
}

// EvaluateAlert evaluates single alert rule.
func (t Tasks) EvaluateAlert(ctx context.Context, ruleID int64) error {
	result, err := t.alerts.Evaluate(ctx, ruleID)
	if err != nil {
		return fmt.Errorf("can't evaluate alert rule %d: %w", ruleID, err)
	}

	t.logger.Info().
		Int64("ruleId", ruleID).
		Bool("triggered", result.Triggered).
		Msg("alert rule evaluated")

	return nil
}

// Cleanup deletes data older than retention period.
func (t Tasks) Cleanup(ctx context.Context) error {
	_, _, err := t.aggregator.Cleanup(ctx)
	return err
}
