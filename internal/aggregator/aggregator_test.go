package aggregator_test

import (
	"context"
	"testing"
	"time"

	"github.com/MichalMitros/price-monitor/internal/aggregator"
	"github.com/MichalMitros/price-monitor/internal/aggregator/mocks"
	"github.com/MichalMitros/price-monitor/internal/platform/models"
	"github.com/MichalMitros/price-monitor/internal/platform/models/modelstesting"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	logger = zerolog.Nop()
	now    = time.Date(2024, time.March, 10, 4, 0, 0, 0, time.UTC)
)

func TestUnitPreviousDay(t *testing.T) {
	agg := aggregator.NewAggregator(mocks.NewStorage(t), &logger, aggregator.WithClock(fakeClock{now: &now}))

	assert.Equal(t, date, agg.PreviousDay(), "should return midnight of previous day")
}

func TestUnitProductStats(t *testing.T) {
	otherProductID := productID + 1
	observations := []models.Observation{
		observation(1, "100", true, 1),
		observation(2, "80", true, 2),
		modelstesting.FakeObservation(func(o *models.Observation) {
			o.ProductID = otherProductID
			o.Price = decimal.NewFromInt(50)
			o.CapturedAt = date.Add(time.Hour)
		}),
	}
	previous := []models.DailyProductStats{
		{ProductID: productID, Date: date.AddDate(0, 0, -1), AvgPrice: decimal.NewFromInt(100)},
	}

	storage := mocks.NewStorage(t)
	storage.On("ListObservations", mock.Anything, date, date.AddDate(0, 0, 1)).Return(observations, nil).Twice()
	storage.On("ListDailyProductStats", mock.Anything, date.AddDate(0, 0, -1)).Return(previous, nil).Twice()

	var upserted []models.DailyProductStats
	storage.On("UpsertDailyProductStats", mock.Anything, mock.AnythingOfType("models.DailyProductStats")).
		Run(func(args mock.Arguments) {
			upserted = append(upserted, args.Get(1).(models.DailyProductStats))
		}).
		Return(nil).
		Times(4)

	agg := aggregator.NewAggregator(storage, &logger, aggregator.WithConcurrency(1))

	// any time of the day aggregates the whole day
	count, err := agg.ProductStats(context.TODO(), date.Add(13*time.Hour))
	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, 2, count, "should aggregate every observed product")

	_, err = agg.ProductStats(context.TODO(), date)
	require.NoError(t, err, "shouldn't return any error")

	byProduct := lo.GroupBy(upserted, func(s models.DailyProductStats) int64 { return s.ProductID })
	require.Len(t, byProduct[productID], 2, "should upsert product stats on every run")
	assert.Equal(t, byProduct[productID][0], byProduct[productID][1], "should compute identical rows when re-run")

	stats := byProduct[productID][0]
	assertDecimal(t, "90", stats.AvgPrice, "avg price")
	assertOptionalDecimal(t, lo.ToPtr("-10"), stats.ChangeFromPrevious, "change from previous")
	assertOptionalDecimal(t, lo.ToPtr("-10"), stats.ChangePercentage, "change percentage")

	other := byProduct[otherProductID][0]
	assert.Nil(t, other.ChangeFromPrevious, "change should be null without previous day row")
	assert.Nil(t, other.ChangePercentage, "change percentage should be null without previous day row")
}

func TestUnitProductStatsStorageError(t *testing.T) {
	t.Run("list observations error", func(t *testing.T) {
		storage := mocks.NewStorage(t)
		storage.On("ListObservations", mock.Anything, mock.Anything, mock.Anything).Return(nil, assert.AnError).Once()

		_, err := aggregator.NewAggregator(storage, &logger).ProductStats(context.TODO(), date)

		require.ErrorIs(t, err, assert.AnError, "should return error containing assert.AnError")
	})

	t.Run("upsert error", func(t *testing.T) {
		storage := mocks.NewStorage(t)
		storage.On("ListObservations", mock.Anything, mock.Anything, mock.Anything).
			Return([]models.Observation{observation(1, "10", true, 1)}, nil).Once()
		storage.On("ListDailyProductStats", mock.Anything, mock.Anything).Return(nil, nil).Once()
		storage.On("UpsertDailyProductStats", mock.Anything, mock.Anything).Return(assert.AnError).Once()

		_, err := aggregator.NewAggregator(storage, &logger).ProductStats(context.TODO(), date)

		require.ErrorContains(t, err, "can't save product stats", "should return error about failed save")
		require.ErrorIs(t, err, assert.AnError, "should return error containing assert.AnError")
	})

	t.Run("upsert error doesn't stop other products", func(t *testing.T) {
		otherProductID := productID + 1
		observations := []models.Observation{
			observation(1, "10", true, 1),
			modelstesting.FakeObservation(func(o *models.Observation) {
				o.ProductID = otherProductID
				o.CapturedAt = date.Add(time.Hour)
			}),
		}

		storage := mocks.NewStorage(t)
		storage.On("ListObservations", mock.Anything, mock.Anything, mock.Anything).Return(observations, nil).Once()
		storage.On("ListDailyProductStats", mock.Anything, mock.Anything).Return(nil, nil).Once()
		storage.On("UpsertDailyProductStats", mock.Anything, mock.MatchedBy(func(s models.DailyProductStats) bool {
			return s.ProductID == productID
		})).Return(assert.AnError).Once()
		storage.On("UpsertDailyProductStats", mock.Anything, mock.MatchedBy(func(s models.DailyProductStats) bool {
			return s.ProductID == otherProductID
		})).Return(nil).Once()

		count, err := aggregator.NewAggregator(storage, &logger).ProductStats(context.TODO(), date)

		require.ErrorIs(t, err, assert.AnError, "should return error containing assert.AnError")
		assert.Equal(t, 1, count, "should count only saved products")
	})
}

func TestUnitSourceStatsUpsertError(t *testing.T) {
	observations := []models.Observation{observation(1, "10", true, 1), observation(2, "20", true, 2)}

	storage := mocks.NewStorage(t)
	storage.On("ListObservations", mock.Anything, date, date.AddDate(0, 0, 1)).Return(observations, nil).Once()
	storage.On("ListObservations", mock.Anything, date.AddDate(0, 0, -1), date).Return(nil, nil).Once()
	storage.On("CountAttempts", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Once()
	storage.On("UpsertDailySourceStats", mock.Anything, mock.MatchedBy(func(s models.DailySourceStats) bool {
		return s.SourceID == 1
	})).Return(assert.AnError).Once()
	storage.On("UpsertDailySourceStats", mock.Anything, mock.MatchedBy(func(s models.DailySourceStats) bool {
		return s.SourceID == 2
	})).Return(nil).Once()

	count, err := aggregator.NewAggregator(storage, &logger).SourceStats(context.TODO(), date)

	require.ErrorContains(t, err, "can't save source stats", "should return error about failed save")
	require.ErrorIs(t, err, assert.AnError, "should return error containing assert.AnError")
	assert.Equal(t, 1, count, "should save remaining sources")
}

func TestUnitSourceStats(t *testing.T) {
	const (
		sourceID       = int64(1)
		failingSource  = int64(2)
		otherProductID = int64(12)
	)

	previousDay := []models.Observation{
		observation(sourceID, "100", true, 1),
		// later observation of the same pair is ignored
		observation(sourceID, "50", true, 30),
		modelstesting.FakeObservation(func(o *models.Observation) {
			o.ProductID = otherProductID
			o.SourceID = sourceID
			o.Price = decimal.NewFromInt(40)
		}),
	}
	today := []models.Observation{
		observation(sourceID, "110", true, 1),
		observation(sourceID, "90", false, 2),
		modelstesting.FakeObservation(func(o *models.Observation) {
			o.ProductID = otherProductID
			o.SourceID = sourceID
			o.Price = decimal.NewFromInt(40)
		}),
		// no baseline for this product
		modelstesting.FakeObservation(func(o *models.Observation) {
			o.ProductID = otherProductID + 1
			o.SourceID = sourceID
		}),
	}
	counts := map[int64]models.AttemptCounts{
		sourceID:      {Attempts: 5, Successes: 4, Failures: 1},
		failingSource: {Attempts: 2, Failures: 2},
	}

	storage := mocks.NewStorage(t)
	storage.On("ListObservations", mock.Anything, date, date.AddDate(0, 0, 1)).Return(today, nil).Once()
	storage.On("ListObservations", mock.Anything, date.AddDate(0, 0, -1), date).Return(previousDay, nil).Once()
	storage.On("CountAttempts", mock.Anything, date, date.AddDate(0, 0, 1)).Return(counts, nil).Once()

	upserted := map[int64]models.DailySourceStats{}
	storage.On("UpsertDailySourceStats", mock.Anything, mock.AnythingOfType("models.DailySourceStats")).
		Run(func(args mock.Arguments) {
			stats := args.Get(1).(models.DailySourceStats)
			upserted[stats.SourceID] = stats
		}).
		Return(nil).
		Twice()

	count, err := aggregator.NewAggregator(storage, &logger).SourceStats(context.TODO(), date)

	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, 2, count, "should aggregate observed and attempted sources")

	stats := upserted[sourceID]
	assert.Equal(t, date, stats.Date, "should set date")
	assert.Equal(t, int32(5), stats.ScrapeAttempts, "should count attempts")
	assert.Equal(t, int32(4), stats.SuccessfulScrapes, "should count observations as successes")
	assert.Equal(t, int32(1), stats.FailedScrapes, "should count failures")
	assert.Equal(t, int32(3), stats.ProductsScraped, "should count distinct products")
	assert.Equal(t, int32(1), stats.UnavailableCount, "should count unavailable observations")
	assert.Equal(t, int32(1), stats.PriceIncreases, "should count increases")
	assert.Equal(t, int32(1), stats.PriceDecreases, "should count decreases")
	// (+10% - 10% + 0%) / 3
	assertOptionalDecimal(t, lo.ToPtr("0"), stats.AvgPriceChange, "avg price change")

	failing := upserted[failingSource]
	assert.Equal(t, int32(2), failing.ScrapeAttempts, "should count attempts of failing source")
	assert.Equal(t, int32(2), failing.FailedScrapes, "should count failures of failing source")
	assert.Zero(t, failing.SuccessfulScrapes, "failing source has no successes")
	assert.Nil(t, failing.AvgPriceChange, "avg change should be null without comparisons")
}

func TestUnitRecomputeMappingChanges(t *testing.T) {
	withBaselines := modelstesting.FakeMapping(func(m *models.Mapping) {
		m.LastPrice = lo.ToPtr(decimal.NewFromInt(90))
	})
	withoutBaselines := modelstesting.FakeMapping(func(m *models.Mapping) {
		m.LastPrice = lo.ToPtr(decimal.NewFromInt(10))
	})
	neverScraped := modelstesting.FakeMapping()

	pairObservation := func(m models.Mapping, price int64, capturedAt time.Time) models.Observation {
		return modelstesting.FakeObservation(func(o *models.Observation) {
			o.ProductID = m.ProductID
			o.SourceID = m.SourceID
			o.Price = decimal.NewFromInt(price)
			o.CapturedAt = capturedAt
		})
	}

	dayAgo := now.AddDate(0, 0, -1)
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)
	window := 12 * time.Hour

	storage := mocks.NewStorage(t)
	storage.On("ListMappings", mock.Anything, models.Scope{}).
		Return([]models.Mapping{withBaselines, withoutBaselines, neverScraped}, nil).Once()

	storage.On("ListPairObservations", mock.Anything, withBaselines.ProductID, withBaselines.SourceID,
		dayAgo.Add(-window), dayAgo.Add(window)).
		Return([]models.Observation{
			pairObservation(withBaselines, 80, dayAgo.Add(-10*time.Hour)),
			pairObservation(withBaselines, 100, dayAgo.Add(time.Hour)),
			pairObservation(withBaselines, 70, dayAgo.Add(3*time.Hour)),
		}, nil).Once()
	storage.On("ListPairObservations", mock.Anything, withBaselines.ProductID, withBaselines.SourceID,
		weekAgo.Add(-window), weekAgo.Add(window)).
		Return(nil, nil).Once()
	storage.On("ListPairObservations", mock.Anything, withBaselines.ProductID, withBaselines.SourceID,
		monthAgo.Add(-window), monthAgo.Add(window)).
		Return([]models.Observation{pairObservation(withBaselines, 60, monthAgo)}, nil).Once()
	storage.On("ListPairObservations", mock.Anything, withoutBaselines.ProductID, withoutBaselines.SourceID,
		mock.Anything, mock.Anything).
		Return(nil, nil).Times(3)

	storage.On("UpdateMappingChanges", mock.Anything, withBaselines.ID, mock.MatchedBy(func(c models.PriceChanges) bool {
		return c.Day != nil && c.Day.Equal(decimal.NewFromInt(-10)) &&
			c.Week == nil &&
			c.Month != nil && c.Month.Equal(decimal.NewFromInt(50))
	})).Return(nil).Once()

	agg := aggregator.NewAggregator(storage, &logger, aggregator.WithClock(fakeClock{now: &now}))

	updated, err := agg.RecomputeMappingChanges(context.TODO())

	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, 1, updated, "should update only mappings with baselines")
}

func TestUnitCleanup(t *testing.T) {
	cutoff := now.AddDate(0, 0, -30)

	storage := mocks.NewStorage(t)
	storage.On("DeleteObservationsBefore", mock.Anything, cutoff).Return(int64(12), nil).Once()
	storage.On("DeleteAttemptsBefore", mock.Anything, cutoff).Return(int64(3), nil).Once()

	agg := aggregator.NewAggregator(
		storage,
		&logger,
		aggregator.WithClock(fakeClock{now: &now}),
		aggregator.WithRetention(30*24*time.Hour),
	)

	observations, attempts, err := agg.Cleanup(context.TODO())

	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, int64(12), observations, "should return number of deleted observations")
	assert.Equal(t, int64(3), attempts, "should return number of deleted attempts")
}

type fakeClock struct {
	now *time.Time
}

func (c fakeClock) Now() *time.Time {
	return c.now
}
