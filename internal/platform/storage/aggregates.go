package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MichalMitros/price-monitor/internal/platform/models"
	"github.com/MichalMitros/price-monitor/internal/platform/storage/gen/postgres/public/table"
	"github.com/samber/lo"

	pgmodels "github.com/MichalMitros/price-monitor/internal/platform/storage/gen/postgres/public/model"
	pg "github.com/go-jet/jet/v2/postgres"
)

// ListObservations returns observations captured in [from, to) ordered by capture time.
func (p Postgres) ListObservations(ctx context.Context, from, to time.Time) ([]models.Observation, error) {
	var observations []pgmodels.PriceObservation
	err := table.PriceObservation.SELECT(table.PriceObservation.AllColumns).
		WHERE(pg.AND(
			table.PriceObservation.CapturedAt.GT_EQ(pg.TimestampzT(from)),
			table.PriceObservation.CapturedAt.LT(pg.TimestampzT(to)),
		)).
		ORDER_BY(table.PriceObservation.CapturedAt.ASC(), table.PriceObservation.ID.ASC()).
		QueryContext(ctx, p.db, &observations)
	if err != nil {
		return nil, fmt.Errorf("can't get observations from database: %w", err)
	}

	return toObservations(observations), nil
}

// ListPairObservations returns observations of product in source captured in [from, to).
func (p Postgres) ListPairObservations(
	ctx context.Context,
	productID int64,
	sourceID int64,
	from time.Time,
	to time.Time,
) ([]models.Observation, error) {
	var observations []pgmodels.PriceObservation
	err := table.PriceObservation.SELECT(table.PriceObservation.AllColumns).
		WHERE(pg.AND(
			table.PriceObservation.ProductID.EQ(pg.Int64(productID)),
			table.PriceObservation.SourceID.EQ(pg.Int64(sourceID)),
			table.PriceObservation.CapturedAt.GT_EQ(pg.TimestampzT(from)),
			table.PriceObservation.CapturedAt.LT(pg.TimestampzT(to)),
		)).
		ORDER_BY(table.PriceObservation.CapturedAt.ASC(), table.PriceObservation.ID.ASC()).
		QueryContext(ctx, p.db, &observations)
	if err != nil {
		return nil, fmt.Errorf("can't get observations of product %d in source %d: %w", productID, sourceID, err)
	}

	return toObservations(observations), nil
}

// ListDailyProductStats returns all products' stats of provided date.
func (p Postgres) ListDailyProductStats(ctx context.Context, date time.Time) ([]models.DailyProductStats, error) {
	var stats []pgmodels.DailyProductStats
	err := table.DailyProductStats.SELECT(table.DailyProductStats.AllColumns).
		WHERE(table.DailyProductStats.StatsDate.EQ(pg.DateT(date))).
		QueryContext(ctx, p.db, &stats)
	if err != nil {
		return nil, fmt.Errorf("can't get daily product stats from database: %w", err)
	}

	return lo.Map(stats, func(_ pgmodels.DailyProductStats, ix int) models.DailyProductStats {
		return toDailyProductStats(&stats[ix])
	}), nil
}

// UpsertDailyProductStats inserts or overwrites product's stats of the day
// and refreshes product's cached current prices.
func (p Postgres) UpsertDailyProductStats(ctx context.Context, stats models.DailyProductStats) error {
	columnList := table.DailyProductStats.MutableColumns

	excludedExpressions := make([]pg.Expression, 0, len(columnList))
	for _, col := range table.DailyProductStats.EXCLUDED.MutableColumns {
		excludedExpressions = append(excludedExpressions, col)
	}

	dbStats := toDBDailyProductStats(&stats)
	dbStats.UpdatedAt = time.Now().UTC()

	return runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		_, err := table.DailyProductStats.INSERT(columnList).
			MODEL(dbStats).
			ON_CONFLICT(table.DailyProductStats.ProductID, table.DailyProductStats.StatsDate).
			DO_UPDATE(
				pg.SET(
					columnList.SET(pg.ROW(excludedExpressions...)),
				),
			).
			ExecContext(ctx, tx)
		if err != nil {
			return fmt.Errorf("can't upsert stats of product %d: %w", stats.ProductID, err)
		}

		_, err = table.Product.UPDATE(
			table.Product.CurrentMinPrice,
			table.Product.CurrentMaxPrice,
			table.Product.CurrentAvgPrice,
		).
			MODEL(pgmodels.Product{
				CurrentMinPrice: &stats.MinPrice,
				CurrentMaxPrice: &stats.MaxPrice,
				CurrentAvgPrice: &stats.AvgPrice,
			}).
			WHERE(table.Product.ID.EQ(pg.Int64(stats.ProductID))).
			ExecContext(ctx, tx)
		if err != nil {
			return fmt.Errorf("can't update cached prices of product %d: %w", stats.ProductID, err)
		}

		return nil
	})
}

// UpsertDailySourceStats inserts or overwrites source's stats of the day.
func (p Postgres) UpsertDailySourceStats(ctx context.Context, stats models.DailySourceStats) error {
	columnList := table.DailySourceStats.MutableColumns

	excludedExpressions := make([]pg.Expression, 0, len(columnList))
	for _, col := range table.DailySourceStats.EXCLUDED.MutableColumns {
		excludedExpressions = append(excludedExpressions, col)
	}

	dbStats := toDBDailySourceStats(&stats)
	dbStats.UpdatedAt = time.Now().UTC()

	_, err := table.DailySourceStats.INSERT(columnList).
		MODEL(dbStats).
		ON_CONFLICT(table.DailySourceStats.SourceID, table.DailySourceStats.StatsDate).
		DO_UPDATE(
			pg.SET(
				columnList.SET(pg.ROW(excludedExpressions...)),
			),
		).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't upsert stats of source %d: %w", stats.SourceID, err)
	}

	return nil
}

// CountAttempts returns per source numbers of scrape units settled in [from, to).
// Skipped units are not attempts.
func (p Postgres) CountAttempts(ctx context.Context, from, to time.Time) (map[int64]models.AttemptCounts, error) {
	var rows []struct {
		SourceID int64  `alias:"scrape_attempt.source_id"`
		Status   string `alias:"scrape_attempt.status"`
		Count    int32  `alias:"count"`
	}
	err := table.ScrapeAttempt.SELECT(
		table.ScrapeAttempt.SourceID,
		table.ScrapeAttempt.Status,
		pg.COUNT(pg.STAR).AS("count"),
	).
		WHERE(pg.AND(
			table.ScrapeAttempt.AttemptedAt.GT_EQ(pg.TimestampzT(from)),
			table.ScrapeAttempt.AttemptedAt.LT(pg.TimestampzT(to)),
			table.ScrapeAttempt.Status.NOT_EQ(pg.String(string(models.UnitStatusSkipped))),
		)).
		GROUP_BY(table.ScrapeAttempt.SourceID, table.ScrapeAttempt.Status).
		QueryContext(ctx, p.db, &rows)
	if err != nil {
		return nil, fmt.Errorf("can't count scrape attempts: %w", err)
	}

	counts := make(map[int64]models.AttemptCounts)
	for _, row := range rows {
		c := counts[row.SourceID]
		c.Attempts += row.Count
		switch models.UnitStatus(row.Status) {
		case models.UnitStatusSuccess:
			c.Successes += row.Count
		case models.UnitStatusError:
			c.Failures += row.Count
		}
		counts[row.SourceID] = c
	}

	return counts, nil
}

// UpdateMappingChanges writes mapping's non-nil price changes, other fields stay untouched.
func (p Postgres) UpdateMappingChanges(ctx context.Context, mappingID int64, changes models.PriceChanges) error {
	var (
		columnList pg.ColumnList
		model      pgmodels.ProductSource
	)

	if changes.Day != nil {
		columnList = append(columnList, table.ProductSource.PriceChange1d)
		model.PriceChange1d = changes.Day
	}
	if changes.Week != nil {
		columnList = append(columnList, table.ProductSource.PriceChange7d)
		model.PriceChange7d = changes.Week
	}
	if changes.Month != nil {
		columnList = append(columnList, table.ProductSource.PriceChange30d)
		model.PriceChange30d = changes.Month
	}

	if len(columnList) == 0 {
		return nil
	}

	_, err := table.ProductSource.UPDATE(columnList).
		MODEL(model).
		WHERE(table.ProductSource.ID.EQ(pg.Int64(mappingID))).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't update price changes of mapping %d: %w", mappingID, err)
	}

	return nil
}

// DeleteObservationsBefore deletes observations captured before provided time.
// Returns number of deleted observations.
func (p Postgres) DeleteObservationsBefore(ctx context.Context, before time.Time) (int64, error) {
	result, err := table.PriceObservation.DELETE().
		WHERE(table.PriceObservation.CapturedAt.LT(pg.TimestampzT(before))).
		ExecContext(ctx, p.db)
	if err != nil {
		return 0, fmt.Errorf("can't delete old observations: %w", err)
	}

	return result.RowsAffected()
}

// DeleteAttemptsBefore deletes scrape attempts logged before provided time.
// Returns number of deleted attempts.
func (p Postgres) DeleteAttemptsBefore(ctx context.Context, before time.Time) (int64, error) {
	result, err := table.ScrapeAttempt.DELETE().
		WHERE(table.ScrapeAttempt.AttemptedAt.LT(pg.TimestampzT(before))).
		ExecContext(ctx, p.db)
	if err != nil {
		return 0, fmt.Errorf("can't delete old scrape attempts: %w", err)
	}

	return result.RowsAffected()
}
