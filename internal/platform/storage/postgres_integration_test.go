package storage_test

import (
	"context"
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/MichalMitros/price-monitor/internal/platform"
	"github.com/MichalMitros/price-monitor/internal/platform/models"
	"github.com/MichalMitros/price-monitor/internal/platform/storage"
	pgmodels "github.com/MichalMitros/price-monitor/internal/platform/storage/gen/postgres/public/model"
	"github.com/MichalMitros/price-monitor/internal/platform/storage/storagetesting"
	"github.com/go-faker/faker/v4"
	_ "github.com/lib/pq"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var day = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

func TestPostgresIntegration(t *testing.T) {
	suite.Run(t, new(PostgresTestSuite))
}

type PostgresTestSuite struct {
	suite.Suite
	DB *sql.DB
}

func (s *PostgresTestSuite) SetupSuite() {
	s.DB = storagetesting.Open(s.T())
	s.Require().NoError(storage.NewPostgres(s.DB).Migrate(context.Background()))
	storagetesting.CleanupData(s.T(), s.DB)
}

func (s *PostgresTestSuite) TearDownSuite() {
	storagetesting.CleanupData(s.T(), s.DB)
	if err := s.DB.Close(); err != nil {
		s.FailNow("close DB", err)
	}
}

func (s *PostgresTestSuite) insertPair(productActive, mappingActive bool) (productID, sourceID, mappingID int64) {
	productID = storagetesting.InsertProduct(s.T(), s.DB, pgmodels.Product{
		Name:     faker.Word(),
		IsActive: productActive,
	})
	sourceID = storagetesting.InsertSource(s.T(), s.DB, pgmodels.Source{
		Name:          faker.Word() + faker.UUIDDigit(),
		BaseURL:       faker.URL(),
		ScraperConfig: `{"price_selector":".price"}`,
		IsActive:      true,
	})
	mappingID = storagetesting.InsertMapping(s.T(), s.DB, pgmodels.ProductSource{
		ProductID: productID,
		SourceID:  sourceID,
		URL:       faker.URL(),
		IsActive:  mappingActive,
	})
	return productID, sourceID, mappingID
}

func (s *PostgresTestSuite) TestIntegrationJobLifecycle() {
	storagetesting.CleanupData(s.T(), s.DB)
	ctx := context.Background()
	pg := storage.NewPostgres(s.DB)
	startedAt := day.Add(2 * time.Hour)

	queued := &models.ScrapeJob{
		Type:   models.JobTypeScrapeProduct,
		Scope:  models.Scope{ProductID: lo.ToPtr(int64(12))},
		Status: models.JobStatusQueued,
	}
	require.NoError(s.T(), pg.CreateJob(ctx, queued))
	require.NotZero(s.T(), queued.ID)
	assert.False(s.T(), queued.CreatedAt.IsZero())

	s.Run("start queued job loads its scope", func() {
		job := &models.ScrapeJob{ID: queued.ID, StartedAt: &startedAt}
		require.NoError(s.T(), pg.StartJob(ctx, job))

		assert.Equal(s.T(), models.JobStatusRunning, job.Status)
		assert.Equal(s.T(), models.JobTypeScrapeProduct, job.Type)
		assert.Equal(s.T(), int64(12), lo.FromPtr(job.Scope.ProductID))
		assert.True(s.T(), startedAt.Equal(lo.FromPtr(job.StartedAt)))
	})

	s.Run("job can't be started twice", func() {
		job := &models.ScrapeJob{ID: queued.ID, StartedAt: &startedAt}
		assert.ErrorIs(s.T(), pg.StartJob(ctx, job), platform.ErrJobNotQueued)
	})

	s.Run("start unknown job", func() {
		job := &models.ScrapeJob{ID: queued.ID + 1000, StartedAt: &startedAt}
		assert.ErrorIs(s.T(), pg.StartJob(ctx, job), platform.ErrNotFound)
	})

	s.Run("start job without id creates running job", func() {
		job := &models.ScrapeJob{Type: models.JobTypeScrapeAll, StartedAt: &startedAt}
		require.NoError(s.T(), pg.StartJob(ctx, job))
		require.NotZero(s.T(), job.ID)

		stored, err := pg.GetJob(ctx, job.ID)
		require.NoError(s.T(), err)
		assert.Equal(s.T(), models.JobStatusRunning, stored.Status)
		assert.Nil(s.T(), stored.Scope.ProductID)
	})

	s.Run("finish job", func() {
		completedAt := startedAt.Add(time.Minute)
		job, err := pg.GetJob(ctx, queued.ID)
		require.NoError(s.T(), err)

		job.Status = models.JobStatusCompleted
		job.CompletedAt = &completedAt
		job.ProcessedCount = 3
		job.PricesFound = 2
		job.FailedCount = 1
		require.NoError(s.T(), pg.FinishJob(ctx, job))

		stored, err := pg.GetJob(ctx, queued.ID)
		require.NoError(s.T(), err)
		assert.Equal(s.T(), models.JobStatusCompleted, stored.Status)
		assert.Equal(s.T(), int32(3), stored.ProcessedCount)
		assert.Equal(s.T(), int32(2), stored.PricesFound)
		assert.Equal(s.T(), int32(1), stored.FailedCount)
		assert.True(s.T(), completedAt.Equal(lo.FromPtr(stored.CompletedAt)))
	})

	s.Run("finish unknown job", func() {
		err := pg.FinishJob(ctx, &models.ScrapeJob{ID: queued.ID + 1000, Status: models.JobStatusFailed})
		assert.ErrorIs(s.T(), err, platform.ErrNotFound)
	})

	s.Run("get unknown job", func() {
		_, err := pg.GetJob(ctx, queued.ID+1000)
		assert.ErrorIs(s.T(), err, platform.ErrNotFound)
	})

	s.Run("job attempts", func() {
		require.NoError(s.T(), pg.RecordAttempt(ctx, models.ScrapeAttempt{
			JobID:       &queued.ID,
			MappingID:   1,
			ProductID:   12,
			SourceID:    2,
			Status:      models.UnitStatusSuccess,
			Price:       lo.ToPtr(decimal.RequireFromString("19.99")),
			AttemptedAt: startedAt,
		}))
		require.NoError(s.T(), pg.RecordAttempt(ctx, models.ScrapeAttempt{
			JobID:       &queued.ID,
			MappingID:   2,
			ProductID:   12,
			SourceID:    3,
			Status:      models.UnitStatusError,
			ErrorKind:   lo.ToPtr("fetch"),
			Message:     lo.ToPtr("status 503"),
			AttemptedAt: startedAt,
		}))

		attempts, err := pg.ListJobAttempts(ctx, queued.ID)
		require.NoError(s.T(), err)
		require.Len(s.T(), attempts, 2)
		assert.Equal(s.T(), models.UnitStatusSuccess, attempts[0].Status)
		assert.Equal(s.T(), "19.99", attempts[0].Price.StringFixed(2))
		assert.Equal(s.T(), models.UnitStatusError, attempts[1].Status)
		assert.Equal(s.T(), "fetch", lo.FromPtr(attempts[1].ErrorKind))
	})
}

func (s *PostgresTestSuite) TestIntegrationListMappings() {
	storagetesting.CleanupData(s.T(), s.DB)
	ctx := context.Background()
	pg := storage.NewPostgres(s.DB)

	productID, sourceID, mappingID := s.insertPair(true, true)
	otherProductID, _, otherMappingID := s.insertPair(true, true)
	s.insertPair(true, false)
	s.insertPair(false, true)

	otherSourceMappingID := storagetesting.InsertMapping(s.T(), s.DB, pgmodels.ProductSource{
		ProductID:      otherProductID,
		SourceID:       sourceID,
		URL:            faker.URL(),
		SelectorConfig: `{"price_selector":"#price","use_browser":true}`,
		IsActive:       true,
	})

	tests := map[string]struct {
		scope       models.Scope
		wantMapping []int64
	}{
		"all active": {
			wantMapping: []int64{mappingID, otherMappingID, otherSourceMappingID},
		},
		"single product": {
			scope:       models.Scope{ProductID: &productID},
			wantMapping: []int64{mappingID},
		},
		"single source": {
			scope:       models.Scope{SourceID: &sourceID},
			wantMapping: []int64{mappingID, otherSourceMappingID},
		},
		"unknown product": {
			scope:       models.Scope{ProductID: lo.ToPtr(productID + 1000)},
			wantMapping: []int64{},
		},
	}

	for name, tt := range tests {
		s.Run(name, func() {
			mappings, err := pg.ListMappings(ctx, tt.scope)
			require.NoError(s.T(), err)

			ids := lo.Map(mappings, func(m models.Mapping, _ int) int64 { return m.ID })
			assert.ElementsMatch(s.T(), tt.wantMapping, ids)
		})
	}

	s.Run("mapping carries source and selector config", func() {
		mappings, err := pg.ListMappings(ctx, models.Scope{ProductID: &otherProductID})
		require.NoError(s.T(), err)

		m, ok := lo.Find(mappings, func(m models.Mapping) bool { return m.ID == otherSourceMappingID })
		require.True(s.T(), ok)
		assert.Equal(s.T(), sourceID, m.Source.ID)
		assert.Equal(s.T(), ".price", m.Source.ScraperConfig.PriceSelector)
		assert.Equal(s.T(), "#price", m.EffectiveConfig().PriceSelector)
		assert.True(s.T(), m.EffectiveConfig().UseBrowser)
	})
}

func (s *PostgresTestSuite) TestIntegrationRecordObservation() {
	storagetesting.CleanupData(s.T(), s.DB)
	ctx := context.Background()
	pg := storage.NewPostgres(s.DB)

	productID, sourceID, mappingID := s.insertPair(true, true)
	capturedAt := day.Add(2*time.Hour + 5*time.Minute)

	observation := &models.Observation{
		ProductID:     productID,
		SourceID:      sourceID,
		Price:         decimal.RequireFromString("1299.00"),
		Currency:      models.DefaultCurrency,
		IsAvailable:   true,
		ShippingCost:  lo.ToPtr(decimal.RequireFromString("9.99")),
		StockQuantity: lo.ToPtr(int32(4)),
		CapturedAt:    capturedAt,
	}
	require.NoError(s.T(), pg.RecordObservation(ctx, mappingID, observation))
	assert.NotZero(s.T(), observation.ID)

	stored := storagetesting.GetObservations(s.T(), s.DB, productID)
	require.Len(s.T(), stored, 1)
	assert.Equal(s.T(), "1299.00", stored[0].Price.StringFixed(2))
	assert.Equal(s.T(), "9.99", stored[0].ShippingCost.StringFixed(2))
	assert.Equal(s.T(), int32(4), lo.FromPtr(stored[0].StockQuantity))

	mapping := storagetesting.GetMapping(s.T(), s.DB, mappingID)
	assert.True(s.T(), capturedAt.Equal(lo.FromPtr(mapping.LastChecked)))
	assert.Equal(s.T(), "1299.00", mapping.LastPrice.StringFixed(2))

	s.Run("unknown mapping rolls back observation", func() {
		err := pg.RecordObservation(ctx, mappingID+1000, &models.Observation{
			ProductID:  productID,
			SourceID:   sourceID,
			Price:      decimal.NewFromInt(1),
			Currency:   models.DefaultCurrency,
			CapturedAt: capturedAt,
		})
		assert.ErrorIs(s.T(), err, platform.ErrNotFound)
		assert.Len(s.T(), storagetesting.GetObservations(s.T(), s.DB, productID), 1)
	})
}

func (s *PostgresTestSuite) TestIntegrationObservationQueries() {
	storagetesting.CleanupData(s.T(), s.DB)
	ctx := context.Background()
	pg := storage.NewPostgres(s.DB)

	productID, sourceID, _ := s.insertPair(true, true)
	_, otherSourceID, _ := s.insertPair(true, true)

	observation := func(sourceID int64, price string, capturedAt time.Time) pgmodels.PriceObservation {
		return pgmodels.PriceObservation{
			ProductID:   productID,
			SourceID:    sourceID,
			Price:       decimal.RequireFromString(price),
			Currency:    models.DefaultCurrency,
			IsAvailable: true,
			CapturedAt:  capturedAt,
		}
	}
	storagetesting.InsertObservations(s.T(), s.DB,
		observation(sourceID, "100", day.Add(-22*time.Hour)),
		observation(sourceID, "90", day.Add(2*time.Hour)),
		observation(otherSourceID, "95", day.Add(3*time.Hour)),
		observation(sourceID, "85", day.Add(26*time.Hour)),
	)

	s.Run("observations of day", func() {
		observations, err := pg.ListObservations(ctx, day, day.Add(24*time.Hour))
		require.NoError(s.T(), err)
		require.Len(s.T(), observations, 2)
		assert.Equal(s.T(), "90.00", observations[0].Price.StringFixed(2))
		assert.Equal(s.T(), "95.00", observations[1].Price.StringFixed(2))
	})

	s.Run("observations of pair", func() {
		observations, err := pg.ListPairObservations(ctx, productID, sourceID, day.Add(-24*time.Hour), day.Add(48*time.Hour))
		require.NoError(s.T(), err)
		prices := lo.Map(observations, func(o models.Observation, _ int) string { return o.Price.StringFixed(2) })
		assert.Equal(s.T(), []string{"100.00", "90.00", "85.00"}, prices)
	})

	s.Run("latest observations", func() {
		observations, err := pg.LatestObservations(ctx, productID, 2)
		require.NoError(s.T(), err)
		prices := lo.Map(observations, func(o models.Observation, _ int) string { return o.Price.StringFixed(2) })
		assert.Equal(s.T(), []string{"85.00", "95.00"}, prices)
	})

	s.Run("latest observation before", func() {
		o, err := pg.LatestObservationBefore(ctx, productID, day.Add(2*time.Hour))
		require.NoError(s.T(), err)
		assert.Equal(s.T(), "90.00", o.Price.StringFixed(2))
		assert.Equal(s.T(), time.UTC, o.CapturedAt.Location())

		_, err = pg.LatestObservationBefore(ctx, productID, day.Add(-48*time.Hour))
		assert.ErrorIs(s.T(), err, platform.ErrNotFound)
	})

	s.Run("delete observations before", func() {
		deleted, err := pg.DeleteObservationsBefore(ctx, day)
		require.NoError(s.T(), err)
		assert.Equal(s.T(), int64(1), deleted)
		assert.Len(s.T(), storagetesting.GetObservations(s.T(), s.DB, productID), 3)
	})
}

func (s *PostgresTestSuite) TestIntegrationUpsertStats() {
	storagetesting.CleanupData(s.T(), s.DB)
	ctx := context.Background()
	pg := storage.NewPostgres(s.DB)

	productID, sourceID, mappingID := s.insertPair(true, true)

	stats := models.DailyProductStats{
		ProductID:           productID,
		Date:                day,
		MinPrice:            decimal.RequireFromString("90"),
		MaxPrice:            decimal.RequireFromString("110"),
		AvgPrice:            decimal.RequireFromString("100"),
		MedianPrice:         decimal.RequireFromString("100"),
		SourcesAvailable:    3,
		TotalSourcesChecked: 3,
		BestPrice:           lo.ToPtr(decimal.RequireFromString("90")),
		BestSourceID:        &sourceID,
	}

	s.Run("upsert product stats is idempotent", func() {
		require.NoError(s.T(), pg.UpsertDailyProductStats(ctx, stats))

		stats.MinPrice = decimal.RequireFromString("80")
		stats.ChangeFromPrevious = lo.ToPtr(decimal.RequireFromString("-5"))
		require.NoError(s.T(), pg.UpsertDailyProductStats(ctx, stats))

		stored := storagetesting.GetProductStats(s.T(), s.DB, productID)
		require.Len(s.T(), stored, 1)
		assert.Equal(s.T(), "80.00", stored[0].MinPrice.StringFixed(2))
		assert.Equal(s.T(), "-5.00", stored[0].ChangeFromPrevious.StringFixed(2))

		listed, err := pg.ListDailyProductStats(ctx, day)
		require.NoError(s.T(), err)
		require.Len(s.T(), listed, 1)
		assert.Equal(s.T(), productID, listed[0].ProductID)
		assert.Equal(s.T(), sourceID, lo.FromPtr(listed[0].BestSourceID))

		product := storagetesting.GetProduct(s.T(), s.DB, productID)
		assert.Equal(s.T(), "80.00", product.CurrentMinPrice.StringFixed(2))
		assert.Equal(s.T(), "110.00", product.CurrentMaxPrice.StringFixed(2))
		assert.Equal(s.T(), "100.00", product.CurrentAvgPrice.StringFixed(2))
	})

	s.Run("upsert product stats with large change percentage", func() {
		// 0.01 to 9999999999.99 is the widest change prices can express
		stats.ChangePercentage = lo.ToPtr(decimal.RequireFromString("99999999999900"))
		require.NoError(s.T(), pg.UpsertDailyProductStats(ctx, stats))

		stored := storagetesting.GetProductStats(s.T(), s.DB, productID)
		require.Len(s.T(), stored, 1)
		assert.Equal(s.T(), "99999999999900.0000", stored[0].ChangePercentage.StringFixed(4))
	})

	s.Run("upsert source stats is idempotent", func() {
		sourceStats := models.DailySourceStats{
			SourceID:          sourceID,
			Date:              day,
			ScrapeAttempts:    4,
			SuccessfulScrapes: 3,
			FailedScrapes:     1,
			ProductsScraped:   3,
		}
		require.NoError(s.T(), pg.UpsertDailySourceStats(ctx, sourceStats))

		sourceStats.PriceDecreases = 2
		require.NoError(s.T(), pg.UpsertDailySourceStats(ctx, sourceStats))

		var count int
		err := s.DB.QueryRow(
			"SELECT count(*) FROM daily_source_stats WHERE source_id = $1 AND price_decreases = 2",
			sourceID,
		).Scan(&count)
		require.NoError(s.T(), err)
		assert.Equal(s.T(), 1, count)
	})

	s.Run("update mapping changes keeps unset columns", func() {
		require.NoError(s.T(), pg.UpdateMappingChanges(ctx, mappingID, models.PriceChanges{
			Day:  lo.ToPtr(decimal.RequireFromString("-2.5")),
			Week: lo.ToPtr(decimal.RequireFromString("4")),
		}))
		require.NoError(s.T(), pg.UpdateMappingChanges(ctx, mappingID, models.PriceChanges{
			Day: lo.ToPtr(decimal.RequireFromString("1")),
		}))

		mapping := storagetesting.GetMapping(s.T(), s.DB, mappingID)
		assert.Equal(s.T(), "1.00", mapping.PriceChange1d.StringFixed(2))
		assert.Equal(s.T(), "4.00", mapping.PriceChange7d.StringFixed(2))
		assert.Nil(s.T(), mapping.PriceChange30d)
	})
}

func (s *PostgresTestSuite) TestIntegrationCountAttempts() {
	storagetesting.CleanupData(s.T(), s.DB)
	ctx := context.Background()
	pg := storage.NewPostgres(s.DB)

	sourceID := rand.Int63n(1_000_000) + 1
	otherSourceID := sourceID + 1

	attempt := func(sourceID int64, status models.UnitStatus, at time.Time) pgmodels.ScrapeAttempt {
		return pgmodels.ScrapeAttempt{
			MappingID:   rand.Int63n(1_000_000) + 1,
			ProductID:   rand.Int63n(1_000_000) + 1,
			SourceID:    sourceID,
			Status:      string(status),
			AttemptedAt: at,
		}
	}
	storagetesting.InsertAttempts(s.T(), s.DB,
		attempt(sourceID, models.UnitStatusSuccess, day.Add(2*time.Hour)),
		attempt(sourceID, models.UnitStatusSuccess, day.Add(2*time.Hour)),
		attempt(sourceID, models.UnitStatusError, day.Add(2*time.Hour)),
		attempt(sourceID, models.UnitStatusSkipped, day.Add(2*time.Hour)),
		attempt(sourceID, models.UnitStatusSuccess, day.Add(-2*time.Hour)),
		attempt(otherSourceID, models.UnitStatusError, day.Add(23*time.Hour)),
	)

	counts, err := pg.CountAttempts(ctx, day, day.Add(24*time.Hour))
	require.NoError(s.T(), err)
	assert.Equal(s.T(), map[int64]models.AttemptCounts{
		sourceID:      {Attempts: 3, Successes: 2, Failures: 1},
		otherSourceID: {Attempts: 1, Failures: 1},
	}, counts)

	deleted, err := pg.DeleteAttemptsBefore(ctx, day)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), deleted)
}

func (s *PostgresTestSuite) TestIntegrationRules() {
	storagetesting.CleanupData(s.T(), s.DB)
	ctx := context.Background()
	pg := storage.NewPostgres(s.DB)

	productID, _, _ := s.insertPair(true, true)
	email := faker.Email()
	userID := storagetesting.InsertUser(s.T(), s.DB, email)

	activeID := storagetesting.InsertRule(s.T(), s.DB, pgmodels.AlertRule{
		UserID:    userID,
		ProductID: &productID,
		AlertType: string(models.AlertTypePriceDrop),
		ConditionParams: storage.EncodeCondition(models.AlertCondition{
			Percentage: lo.ToPtr(decimal.NewFromInt(10)),
		}),
		IsActive: true,
	})
	inactiveID := storagetesting.InsertRule(s.T(), s.DB, pgmodels.AlertRule{
		UserID:    userID,
		ProductID: &productID,
		AlertType: string(models.AlertTypeAvailability),
	})

	s.Run("list active rules", func() {
		rules, err := pg.ListActiveRules(ctx)
		require.NoError(s.T(), err)
		require.Len(s.T(), rules, 1)
		assert.Equal(s.T(), activeID, rules[0].ID)
		assert.Equal(s.T(), models.AlertTypePriceDrop, rules[0].Type)
		assert.Equal(s.T(), "10", rules[0].Condition.Percentage.String())
	})

	s.Run("get rule", func() {
		rule, err := pg.GetRule(ctx, inactiveID)
		require.NoError(s.T(), err)
		assert.False(s.T(), rule.IsActive)
		assert.Equal(s.T(), productID, lo.FromPtr(rule.ProductID))

		_, err = pg.GetRule(ctx, inactiveID+1000)
		assert.ErrorIs(s.T(), err, platform.ErrNotFound)
	})

	s.Run("get product and user", func() {
		product, err := pg.GetProduct(ctx, productID)
		require.NoError(s.T(), err)
		assert.True(s.T(), product.IsActive)

		got, err := pg.GetUserEmail(ctx, userID)
		require.NoError(s.T(), err)
		assert.Equal(s.T(), email, got)

		_, err = pg.GetUserEmail(ctx, userID+1000)
		assert.ErrorIs(s.T(), err, platform.ErrNotFound)
	})

	s.Run("mark rule triggered", func() {
		at := day.Add(9 * time.Hour)
		require.NoError(s.T(), pg.MarkRuleTriggered(ctx, activeID, at))
		require.NoError(s.T(), pg.MarkRuleTriggered(ctx, activeID, at.Add(time.Hour)))

		rule := storagetesting.GetRule(s.T(), s.DB, activeID)
		assert.Equal(s.T(), int32(2), rule.TriggerCount)
		assert.True(s.T(), at.Add(time.Hour).Equal(lo.FromPtr(rule.LastTriggered)))

		assert.ErrorIs(s.T(), pg.MarkRuleTriggered(ctx, activeID+1000, at), platform.ErrNotFound)
	})
}
