package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MichalMitros/price-monitor/internal/platform"
	"github.com/MichalMitros/price-monitor/internal/platform/models"
	"github.com/MichalMitros/price-monitor/internal/platform/storage/gen/postgres/public/table"

	pgmodels "github.com/MichalMitros/price-monitor/internal/platform/storage/gen/postgres/public/model"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

// ListActiveRules returns all active alert rules.
func (p Postgres) ListActiveRules(ctx context.Context) ([]models.AlertRule, error) {
	var dbRules []pgmodels.AlertRule
	err := table.AlertRule.SELECT(table.AlertRule.AllColumns).
		WHERE(table.AlertRule.IsActive.EQ(pg.Bool(true))).
		ORDER_BY(table.AlertRule.ID.ASC()).
		QueryContext(ctx, p.db, &dbRules)
	if err != nil {
		return nil, fmt.Errorf("can't get alert rules from database: %w", err)
	}

	rules := make([]models.AlertRule, 0, len(dbRules))
	for ix := range dbRules {
		rule, err := toAlertRule(&dbRules[ix])
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

// GetRule returns alert rule with provided id or ErrNotFound.
func (p Postgres) GetRule(ctx context.Context, id int64) (*models.AlertRule, error) {
	var dbRule pgmodels.AlertRule
	err := table.AlertRule.SELECT(table.AlertRule.AllColumns).
		WHERE(table.AlertRule.ID.EQ(pg.Int64(id))).
		QueryContext(ctx, p.db, &dbRule)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("can't get alert rule %d: %w", id, platform.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("can't get alert rule %d: %w", id, err)
	}

	rule, err := toAlertRule(&dbRule)
	if err != nil {
		return nil, err
	}

	return &rule, nil
}

// GetProduct returns product with provided id or ErrNotFound.
func (p Postgres) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var dbProduct pgmodels.Product
	err := table.Product.SELECT(table.Product.AllColumns).
		WHERE(table.Product.ID.EQ(pg.Int64(id))).
		QueryContext(ctx, p.db, &dbProduct)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("can't get product %d: %w", id, platform.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("can't get product %d: %w", id, err)
	}

	product := toProduct(&dbProduct)

	return &product, nil
}

// GetUserEmail returns email address of user with provided id or ErrNotFound.
func (p Postgres) GetUserEmail(ctx context.Context, userID int64) (string, error) {
	var user pgmodels.AppUser
	err := table.AppUser.SELECT(table.AppUser.AllColumns).
		WHERE(table.AppUser.ID.EQ(pg.Int64(userID))).
		QueryContext(ctx, p.db, &user)
	if errors.Is(err, qrm.ErrNoRows) {
		return "", fmt.Errorf("can't get user %d: %w", userID, platform.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("can't get user %d: %w", userID, err)
	}

	return user.Email, nil
}

// LatestObservations returns up to limit most recent observations of product, newest first.
func (p Postgres) LatestObservations(ctx context.Context, productID int64, limit int) ([]models.Observation, error) {
	var observations []pgmodels.PriceObservation
	err := table.PriceObservation.SELECT(table.PriceObservation.AllColumns).
		WHERE(table.PriceObservation.ProductID.EQ(pg.Int64(productID))).
		ORDER_BY(table.PriceObservation.CapturedAt.DESC(), table.PriceObservation.ID.DESC()).
		LIMIT(int64(limit)).
		QueryContext(ctx, p.db, &observations)
	if err != nil {
		return nil, fmt.Errorf("can't get latest observations of product %d: %w", productID, err)
	}

	return toObservations(observations), nil
}

// LatestObservationBefore returns most recent observation of product captured not later than provided time
// or ErrNotFound.
func (p Postgres) LatestObservationBefore(
	ctx context.Context,
	productID int64,
	before time.Time,
) (*models.Observation, error) {
	var observation pgmodels.PriceObservation
	err := table.PriceObservation.SELECT(table.PriceObservation.AllColumns).
		WHERE(pg.AND(
			table.PriceObservation.ProductID.EQ(pg.Int64(productID)),
			table.PriceObservation.CapturedAt.LT_EQ(pg.TimestampzT(before)),
		)).
		ORDER_BY(table.PriceObservation.CapturedAt.DESC(), table.PriceObservation.ID.DESC()).
		LIMIT(1).
		QueryContext(ctx, p.db, &observation)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("can't get observation of product %d before %s: %w",
			productID, before.Format(time.RFC3339), platform.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("can't get observation of product %d: %w", productID, err)
	}

	result := toObservation(&observation)

	return &result, nil
}

// MarkRuleTriggered sets rule's last triggered time and increments its trigger count.
func (p Postgres) MarkRuleTriggered(ctx context.Context, ruleID int64, at time.Time) error {
	result, err := table.AlertRule.UPDATE().
		SET(
			table.AlertRule.LastTriggered.SET(pg.TimestampzT(at)),
			table.AlertRule.TriggerCount.SET(table.AlertRule.TriggerCount.ADD(pg.Int32(1))),
		).
		WHERE(table.AlertRule.ID.EQ(pg.Int64(ruleID))).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't mark alert rule %d as triggered: %w", ruleID, err)
	}

	if rowsAffected, err := result.RowsAffected(); rowsAffected == 0 || err != nil {
		return fmt.Errorf("can't mark alert rule %d as triggered: %w", ruleID, errors.Join(platform.ErrNotFound, err))
	}

	return nil
}
