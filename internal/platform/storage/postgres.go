package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/MichalMitros/price-monitor/internal/platform"
	"github.com/MichalMitros/price-monitor/internal/platform/models"
	"github.com/MichalMitros/price-monitor/internal/platform/storage/gen/postgres/public/table"
	"github.com/samber/lo"

	pgmodels "github.com/MichalMitros/price-monitor/internal/platform/storage/gen/postgres/public/model"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

// Schema is database schema the storage works on.
//
//go:embed schema.sql
var Schema string

// Postgres is storage for mappings, observations, daily stats, alert rules and scrape jobs.
type Postgres struct {
	db *sql.DB
}

// NewPostgres returns new Postgres.
func NewPostgres(db *sql.DB) Postgres {
	return Postgres{
		db: db,
	}
}

// Migrate creates missing tables and indexes.
func (p Postgres) Migrate(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("can't migrate database schema: %w", err)
	}

	return nil
}

// CreateJob inserts new scrape job with job's status and sets its ID and creation time.
func (p Postgres) CreateJob(ctx context.Context, job *models.ScrapeJob) error {
	dbJob := toDBScrapeJob(job)

	err := table.ScrapeJob.INSERT(
		table.ScrapeJob.JobType,
		table.ScrapeJob.ProductID,
		table.ScrapeJob.SourceID,
		table.ScrapeJob.Status,
		table.ScrapeJob.StartedAt,
	).
		MODEL(dbJob).
		RETURNING(table.ScrapeJob.ID, table.ScrapeJob.CreatedAt).
		QueryContext(ctx, p.db, dbJob)
	if err != nil {
		return fmt.Errorf("can't insert scrape job into database: %w", err)
	}

	job.ID = dbJob.ID
	job.CreatedAt = dbJob.CreatedAt

	return nil
}

// StartJob marks job as running.
// Job without ID is created in running state, existing job must be queued,
// otherwise ErrJobNotQueued is returned. Scope and type of existing job are loaded from database.
func (p Postgres) StartJob(ctx context.Context, job *models.ScrapeJob) error {
	job.Status = models.JobStatusRunning

	if job.ID == 0 {
		return p.CreateJob(ctx, job)
	}

	var dbJob pgmodels.ScrapeJob
	err := table.ScrapeJob.UPDATE().
		SET(
			table.ScrapeJob.Status.SET(pg.String(string(models.JobStatusRunning))),
			table.ScrapeJob.StartedAt.SET(pg.TimestampzT(lo.FromPtr(job.StartedAt))),
		).
		WHERE(pg.AND(
			table.ScrapeJob.ID.EQ(pg.Int64(job.ID)),
			table.ScrapeJob.Status.EQ(pg.String(string(models.JobStatusQueued))),
		)).
		RETURNING(table.ScrapeJob.AllColumns).
		QueryContext(ctx, p.db, &dbJob)
	if errors.Is(err, qrm.ErrNoRows) {
		if _, getErr := p.GetJob(ctx, job.ID); getErr != nil {
			return getErr
		}
		return fmt.Errorf("can't start job %d: %w", job.ID, platform.ErrJobNotQueued)
	}
	if err != nil {
		return fmt.Errorf("can't start job %d: %w", job.ID, err)
	}

	*job = *toScrapeJob(&dbJob)

	return nil
}

// FinishJob updates job's status, completion time, counters and error message.
func (p Postgres) FinishJob(ctx context.Context, job *models.ScrapeJob) error {
	result, err := table.ScrapeJob.UPDATE(
		table.ScrapeJob.Status,
		table.ScrapeJob.CompletedAt,
		table.ScrapeJob.ProcessedCount,
		table.ScrapeJob.PricesFound,
		table.ScrapeJob.FailedCount,
		table.ScrapeJob.SkippedCount,
		table.ScrapeJob.ErrorMessage,
	).
		MODEL(toDBScrapeJob(job)).
		WHERE(table.ScrapeJob.ID.EQ(pg.Int64(job.ID))).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't update scrape job: %w", err)
	}

	if rowsAffected, err := result.RowsAffected(); rowsAffected == 0 || err != nil {
		return fmt.Errorf("can't update scrape job %d: %w", job.ID, errors.Join(platform.ErrNotFound, err))
	}

	return nil
}

// GetJob returns scrape job with provided id or ErrNotFound.
func (p Postgres) GetJob(ctx context.Context, id int64) (*models.ScrapeJob, error) {
	var dbJob pgmodels.ScrapeJob
	err := table.ScrapeJob.SELECT(table.ScrapeJob.AllColumns).
		WHERE(table.ScrapeJob.ID.EQ(pg.Int64(id))).
		QueryContext(ctx, p.db, &dbJob)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("can't get scrape job %d: %w", id, platform.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("can't get scrape job %d: %w", id, err)
	}

	return toScrapeJob(&dbJob), nil
}

// ListJobAttempts returns logged unit outcomes of scrape job.
func (p Postgres) ListJobAttempts(ctx context.Context, jobID int64) ([]models.ScrapeAttempt, error) {
	var attempts []pgmodels.ScrapeAttempt
	err := table.ScrapeAttempt.SELECT(table.ScrapeAttempt.AllColumns).
		WHERE(table.ScrapeAttempt.JobID.EQ(pg.Int64(jobID))).
		ORDER_BY(table.ScrapeAttempt.ID.ASC()).
		QueryContext(ctx, p.db, &attempts)
	if err != nil {
		return nil, fmt.Errorf("can't get attempts of scrape job %d: %w", jobID, err)
	}

	return lo.Map(attempts, func(_ pgmodels.ScrapeAttempt, ix int) models.ScrapeAttempt {
		return toScrapeAttempt(&attempts[ix])
	}), nil
}

// RecordAttempt logs outcome of single scrape unit.
func (p Postgres) RecordAttempt(ctx context.Context, attempt models.ScrapeAttempt) error {
	_, err := table.ScrapeAttempt.INSERT(table.ScrapeAttempt.MutableColumns).
		MODEL(toDBScrapeAttempt(&attempt)).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't insert scrape attempt: %w", err)
	}

	return nil
}

// ListMappings returns active mappings of active products matching the scope, with their sources.
func (p Postgres) ListMappings(ctx context.Context, scope models.Scope) ([]models.Mapping, error) {
	conditions := []pg.BoolExpression{
		table.ProductSource.IsActive.EQ(pg.Bool(true)),
		table.Product.IsActive.EQ(pg.Bool(true)),
	}
	if scope.ProductID != nil {
		conditions = append(conditions, table.ProductSource.ProductID.EQ(pg.Int64(*scope.ProductID)))
	}
	if scope.SourceID != nil {
		conditions = append(conditions, table.ProductSource.SourceID.EQ(pg.Int64(*scope.SourceID)))
	}

	var rows []struct {
		pgmodels.ProductSource

		Source pgmodels.Source
	}
	err := pg.SELECT(table.ProductSource.AllColumns, table.Source.AllColumns).
		FROM(
			table.ProductSource.
				INNER_JOIN(table.Source, table.Source.ID.EQ(table.ProductSource.SourceID)).
				INNER_JOIN(table.Product, table.Product.ID.EQ(table.ProductSource.ProductID)),
		).
		WHERE(pg.AND(conditions...)).
		ORDER_BY(table.ProductSource.ID.ASC()).
		QueryContext(ctx, p.db, &rows)
	if err != nil {
		return nil, fmt.Errorf("can't get mappings from database: %w", err)
	}

	mappings := make([]models.Mapping, 0, len(rows))
	for ix := range rows {
		mapping, err := toMapping(&rows[ix].ProductSource, &rows[ix].Source)
		if err != nil {
			return nil, err
		}
		mappings = append(mappings, mapping)
	}

	return mappings, nil
}

// RecordObservation appends observation and updates mapping's last checked time and last price.
// Observation's ID is set after insert.
func (p Postgres) RecordObservation(ctx context.Context, mappingID int64, observation *models.Observation) error {
	return runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		dbObservation := toDBObservation(observation)
		err := table.PriceObservation.INSERT(table.PriceObservation.MutableColumns).
			MODEL(dbObservation).
			RETURNING(table.PriceObservation.ID).
			QueryContext(ctx, tx, dbObservation)
		if err != nil {
			return fmt.Errorf("can't insert observation into database: %w", err)
		}

		observation.ID = dbObservation.ID

		result, err := table.ProductSource.UPDATE(table.ProductSource.LastChecked, table.ProductSource.LastPrice).
			MODEL(pgmodels.ProductSource{
				LastChecked: &observation.CapturedAt,
				LastPrice:   &observation.Price,
			}).
			WHERE(table.ProductSource.ID.EQ(pg.Int64(mappingID))).
			ExecContext(ctx, tx)
		if err != nil {
			return fmt.Errorf("can't update mapping %d: %w", mappingID, err)
		}

		if rowsAffected, err := result.RowsAffected(); rowsAffected == 0 || err != nil {
			return fmt.Errorf("can't update mapping %d: %w", mappingID, errors.Join(platform.ErrNotFound, err))
		}

		return nil
	})
}

func runInTransaction(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	var (
		tx  *sql.Tx
		err error
	)

	if tx, err = db.BeginTx(ctx, nil); err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("can't rollback transaction: %w (rollback reason: %w)", rbErr, err)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit transaction: %w", err)
	}

	return nil
}
