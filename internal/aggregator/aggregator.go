package aggregator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MichalMitros/price-monitor/internal/platform/models"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	oneDay = 24 * time.Hour
	// baselineWindow is maximal distance between baseline observation and its target time.
	baselineWindow = 12 * time.Hour
)

//go:generate mockery --name Storage --filename storage.go

// Storage is observations, daily stats and mappings storage.
type Storage interface {
	// ListObservations returns observations captured in [from, to) ordered by capture time.
	ListObservations(ctx context.Context, from, to time.Time) ([]models.Observation, error)
	// ListPairObservations returns observations of product in source captured in [from, to).
	ListPairObservations(ctx context.Context, productID, sourceID int64, from, to time.Time) ([]models.Observation, error)
	// ListDailyProductStats returns all products' stats of provided date.
	ListDailyProductStats(ctx context.Context, date time.Time) ([]models.DailyProductStats, error)
	// UpsertDailyProductStats inserts or overwrites product's stats of the day.
	UpsertDailyProductStats(ctx context.Context, stats models.DailyProductStats) error
	// UpsertDailySourceStats inserts or overwrites source's stats of the day.
	UpsertDailySourceStats(ctx context.Context, stats models.DailySourceStats) error
	// CountAttempts returns per source numbers of scrape units settled in [from, to).
	CountAttempts(ctx context.Context, from, to time.Time) (map[int64]models.AttemptCounts, error)
	// ListMappings returns active mappings matching the scope.
	ListMappings(ctx context.Context, scope models.Scope) ([]models.Mapping, error)
	// UpdateMappingChanges writes mapping's non-nil price changes.
	UpdateMappingChanges(ctx context.Context, mappingID int64, changes models.PriceChanges) error
	// DeleteObservationsBefore deletes observations captured before provided time.
	DeleteObservationsBefore(ctx context.Context, before time.Time) (int64, error)
	// DeleteAttemptsBefore deletes scrape attempts logged before provided time.
	DeleteAttemptsBefore(ctx context.Context, before time.Time) (int64, error)
}

// Clock provides times.
type Clock interface {
	// Now returns current UTC time.
	Now() *time.Time
}

// Option is custom configuration of Aggregator.
type Option func(a *Aggregator)

// Aggregator computes daily statistics and mappings' price changes.
type Aggregator struct {
	storage     Storage
	logger      *zerolog.Logger
	concurrency int
	retention   time.Duration
	clock       Clock
}

// NewAggregator returns new Aggregator keeping 365 days of observations.
func NewAggregator(storage Storage, logger *zerolog.Logger, ops ...Option) *Aggregator {
	a := &Aggregator{
		storage:     storage,
		logger:      logger,
		concurrency: 4,
		retention:   365 * oneDay,
		clock:       systemClock{},
	}

	for _, op := range ops {
		op(a)
	}

	return a
}

// PreviousDay returns UTC midnight of the calendar day before current time.
func (a Aggregator) PreviousDay() time.Time {
	return Day(a.clock.Now().Add(-oneDay))
}

// Day returns UTC midnight of t's calendar day.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ProductStats computes and upserts stats of every product observed during the day.
// Returns number of upserted rows. Re-running for the same day overwrites the rows.
// Failed upsert of one product doesn't stop the others, failures are joined into returned error.
func (a Aggregator) ProductStats(ctx context.Context, date time.Time) (int, error) {
	date = Day(date)

	observations, err := a.storage.ListObservations(ctx, date, date.Add(oneDay))
	if err != nil {
		return 0, fmt.Errorf("can't aggregate product stats: %w", err)
	}

	previous, err := a.storage.ListDailyProductStats(ctx, date.Add(-oneDay))
	if err != nil {
		return 0, fmt.Errorf("can't aggregate product stats: %w", err)
	}
	previousByProduct := lo.KeyBy(previous, func(s models.DailyProductStats) int64 { return s.ProductID })

	byProduct := lo.GroupBy(observations, func(o models.Observation) int64 { return o.ProductID })

	var (
		mu       sync.Mutex
		failures []error
	)

	errGroup := errgroup.Group{}
	errGroup.SetLimit(a.concurrency)

	for productID, productObservations := range byProduct {
		var prev *models.DailyProductStats
		if p, ok := previousByProduct[productID]; ok {
			prev = &p
		}
		stats := ComputeProductStats(productID, date, productObservations, prev)

		errGroup.Go(func() error {
			if err := a.storage.UpsertDailyProductStats(ctx, stats); err != nil {
				err = fmt.Errorf("can't save stats of product %d: %w", productID, err)
				a.logger.Warn().Err(err).Int64("productId", productID).Msg("product stats not saved")

				mu.Lock()
				defer mu.Unlock()
				failures = append(failures, err)
			}
			return nil
		})
	}

	// upsert errors are collected in failures.
	_ = errGroup.Wait()

	saved := len(byProduct) - len(failures)

	a.logger.Info().
		Str("date", date.Format(time.DateOnly)).
		Int("products", saved).
		Int("failed", len(failures)).
		Msg("product stats aggregated")

	if len(failures) > 0 {
		return saved, fmt.Errorf("can't save product stats: %w", errors.Join(failures...))
	}

	return saved, nil
}

// SourceStats computes and upserts stats of every source observed or attempted during the day.
// Returns number of upserted rows. Failed upsert of one source doesn't stop the others.
func (a Aggregator) SourceStats(ctx context.Context, date time.Time) (int, error) {
	date = Day(date)

	observations, err := a.storage.ListObservations(ctx, date, date.Add(oneDay))
	if err != nil {
		return 0, fmt.Errorf("can't aggregate source stats: %w", err)
	}

	previousDay, err := a.storage.ListObservations(ctx, date.Add(-oneDay), date)
	if err != nil {
		return 0, fmt.Errorf("can't aggregate source stats: %w", err)
	}

	counts, err := a.storage.CountAttempts(ctx, date, date.Add(oneDay))
	if err != nil {
		return 0, fmt.Errorf("can't aggregate source stats: %w", err)
	}

	// previous day observations are ordered by capture time, first one wins.
	baselines := make(map[pair]models.Observation, len(previousDay))
	for _, o := range previousDay {
		key := pair{productID: o.ProductID, sourceID: o.SourceID}
		if _, ok := baselines[key]; !ok {
			baselines[key] = o
		}
	}

	bySource := lo.GroupBy(observations, func(o models.Observation) int64 { return o.SourceID })
	sourceIDs := lo.Union(lo.Keys(bySource), lo.Keys(counts))

	var failures []error
	for _, sourceID := range sourceIDs {
		stats := computeSourceStats(sourceID, date, bySource[sourceID], baselines, counts[sourceID])
		if err := a.storage.UpsertDailySourceStats(ctx, stats); err != nil {
			err = fmt.Errorf("can't save stats of source %d: %w", sourceID, err)
			a.logger.Warn().Err(err).Int64("sourceId", sourceID).Msg("source stats not saved")
			failures = append(failures, err)
		}
	}

	saved := len(sourceIDs) - len(failures)

	a.logger.Info().
		Str("date", date.Format(time.DateOnly)).
		Int("sources", saved).
		Int("failed", len(failures)).
		Msg("source stats aggregated")

	if len(failures) > 0 {
		return saved, fmt.Errorf("can't save source stats: %w", errors.Join(failures...))
	}

	return saved, nil
}

// RecomputeMappingChanges updates 1, 7 and 30 day price changes of every active mapping with known last price.
// Baseline is the pair's observation closest to exactly 1, 7 or 30 days ago, at most 12 hours away from it.
// Missing baselines leave the change untouched. Returns number of updated mappings.
func (a Aggregator) RecomputeMappingChanges(ctx context.Context) (int, error) {
	mappings, err := a.storage.ListMappings(ctx, models.Scope{})
	if err != nil {
		return 0, fmt.Errorf("can't recompute mapping changes: %w", err)
	}

	now := *a.clock.Now()
	updated := 0

	for _, mapping := range mappings {
		if mapping.LastPrice == nil {
			continue
		}

		changes := models.PriceChanges{}
		for _, period := range []struct {
			days   int
			change **decimal.Decimal
		}{
			{days: 1, change: &changes.Day},
			{days: 7, change: &changes.Week},
			{days: 30, change: &changes.Month},
		} {
			target := now.Add(-time.Duration(period.days) * oneDay)
			baseline, err := a.closestObservation(ctx, mapping, target)
			if err != nil {
				return updated, fmt.Errorf("can't recompute changes of mapping %d: %w", mapping.ID, err)
			}
			if baseline == nil {
				continue
			}
			if change, ok := models.PercentChange(baseline.Price, *mapping.LastPrice); ok {
				*period.change = &change
			}
		}

		if changes == (models.PriceChanges{}) {
			continue
		}

		if err := a.storage.UpdateMappingChanges(ctx, mapping.ID, changes); err != nil {
			return updated, fmt.Errorf("can't recompute mapping changes: %w", err)
		}
		updated++
	}

	a.logger.Info().
		Int("mappings", len(mappings)).
		Int("updated", updated).
		Msg("mapping price changes recomputed")

	return updated, nil
}

func (a Aggregator) closestObservation(ctx context.Context, mapping models.Mapping, target time.Time) (*models.Observation, error) {
	observations, err := a.storage.ListPairObservations(
		ctx,
		mapping.ProductID,
		mapping.SourceID,
		target.Add(-baselineWindow),
		target.Add(baselineWindow),
	)
	if err != nil {
		return nil, err
	}
	if len(observations) == 0 {
		return nil, nil
	}

	closest := lo.MinBy(observations, func(o, best models.Observation) bool {
		return distance(o.CapturedAt, target) < distance(best.CapturedAt, target)
	})

	return &closest, nil
}

func distance(a, b time.Time) time.Duration {
	d := a.Sub(b)
	if d < 0 {
		return -d
	}
	return d
}

// Cleanup deletes observations and scrape attempts older than retention period.
// Daily stats are kept forever. Returns numbers of deleted observations and attempts.
func (a Aggregator) Cleanup(ctx context.Context) (int64, int64, error) {
	cutoff := a.clock.Now().Add(-a.retention)

	observations, err := a.storage.DeleteObservationsBefore(ctx, cutoff)
	if err != nil {
		return 0, 0, fmt.Errorf("can't clean up observations: %w", err)
	}

	attempts, err := a.storage.DeleteAttemptsBefore(ctx, cutoff)
	if err != nil {
		return observations, 0, fmt.Errorf("can't clean up scrape attempts: %w", err)
	}

	a.logger.Info().
		Time("cutoff", cutoff).
		Int64("observations", observations).
		Int64("attempts", attempts).
		Msg("old data cleaned up")

	return observations, attempts, nil
}

// WithConcurrency sets maximal number of concurrent stats writes.
func WithConcurrency(n int) Option {
	return func(a *Aggregator) {
		a.concurrency = max(n, 1)
	}
}

// WithRetention sets how long observations are kept.
func WithRetention(retention time.Duration) Option {
	return func(a *Aggregator) {
		a.retention = retention
	}
}

// WithClock sets Aggregator's custom Clock.
func WithClock(c Clock) Option {
	return func(a *Aggregator) {
		a.clock = c
	}
}
