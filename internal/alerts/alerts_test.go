package alerts_test

import (
	"context"
	"testing"
	"time"

	"github.com/MichalMitros/price-monitor/internal/alerts"
	"github.com/MichalMitros/price-monitor/internal/alerts/mocks"
	"github.com/MichalMitros/price-monitor/internal/platform"
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
	now    = time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)
	email  = "owner@example.com"
)

func TestUnitEvaluatePriceChange(t *testing.T) {
	tests := map[string]struct {
		alertType     models.AlertType
		condition     models.AlertCondition
		current       string
		baseline      *string
		wantTriggered bool
		wantMessage   string
	}{
		"drop by percentage": {
			alertType:     models.AlertTypePriceDrop,
			condition:     models.AlertCondition{Percentage: decimalPtr("10")},
			current:       "90",
			baseline:      lo.ToPtr("100"),
			wantTriggered: true,
			wantMessage:   "Price dropped by 10.00% to 90.00 PLN",
		},
		"second drop by percentage": {
			alertType:     models.AlertTypePriceDrop,
			condition:     models.AlertCondition{Percentage: decimalPtr("10")},
			current:       "80",
			baseline:      lo.ToPtr("90"),
			wantTriggered: true,
			wantMessage:   "Price dropped by 11.11% to 80.00 PLN",
		},
		"drop smaller than percentage": {
			alertType: models.AlertTypePriceDrop,
			condition: models.AlertCondition{Percentage: decimalPtr("10")},
			current:   "95",
			baseline:  lo.ToPtr("100"),
		},
		"drop below threshold": {
			alertType:     models.AlertTypePriceDrop,
			condition:     models.AlertCondition{Threshold: decimalPtr("50")},
			current:       "49.99",
			baseline:      lo.ToPtr("60"),
			wantTriggered: true,
			wantMessage:   "Price dropped to 49.99 PLN (threshold: 50.00)",
		},
		"price equal to threshold": {
			alertType: models.AlertTypePriceDrop,
			condition: models.AlertCondition{Threshold: decimalPtr("50")},
			current:   "50",
			baseline:  lo.ToPtr("60"),
		},
		"drop without baseline": {
			alertType: models.AlertTypePriceDrop,
			condition: models.AlertCondition{Threshold: decimalPtr("50")},
			current:   "10",
		},
		"increase by percentage": {
			alertType:     models.AlertTypePriceIncrease,
			condition:     models.AlertCondition{Percentage: decimalPtr("20")},
			current:       "120",
			baseline:      lo.ToPtr("100"),
			wantTriggered: true,
			wantMessage:   "Price increased by 20.00% to 120.00 PLN",
		},
		"increase above threshold": {
			alertType:     models.AlertTypePriceIncrease,
			condition:     models.AlertCondition{Threshold: decimalPtr("100")},
			current:       "101",
			baseline:      lo.ToPtr("99"),
			wantTriggered: true,
			wantMessage:   "Price increased to 101.00 PLN (threshold: 100.00)",
		},
		"increase on price drop": {
			alertType: models.AlertTypePriceIncrease,
			condition: models.AlertCondition{Percentage: decimalPtr("1")},
			current:   "80",
			baseline:  lo.ToPtr("100"),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rule := modelstesting.FakeRule(tt.alertType, func(r *models.AlertRule) {
				r.Condition = tt.condition
			})
			product := fakeProduct(rule)

			storage := mocks.NewStorage(t)
			notifier := mocks.NewNotifier(t)

			storage.On("GetRule", mock.Anything, rule.ID).Return(&rule, nil).Once()
			storage.On("GetProduct", mock.Anything, product.ID).Return(&product, nil).Once()
			storage.On("LatestObservations", mock.Anything, product.ID, 1).
				Return([]models.Observation{productObservation(product.ID, tt.current)}, nil).Once()

			if tt.baseline != nil {
				baseline := productObservation(product.ID, *tt.baseline)
				storage.On("LatestObservationBefore", mock.Anything, product.ID, now.Add(-24*time.Hour)).
					Return(&baseline, nil).Once()
			} else {
				storage.On("LatestObservationBefore", mock.Anything, product.ID, now.Add(-24*time.Hour)).
					Return(nil, platform.ErrNotFound).Once()
			}

			if tt.wantTriggered {
				mockFire(storage, notifier, rule, product)
			}

			result, err := newEngine(storage, notifier).Evaluate(context.TODO(), rule.ID)

			require.NoError(t, err, "shouldn't return any error")
			assert.Equal(t, tt.wantTriggered, result.Triggered, "should report whether rule triggered")
			assert.Equal(t, tt.wantMessage, result.Message, "should return alert message")
		})
	}
}

func TestUnitEvaluateAvailability(t *testing.T) {
	tests := map[string]struct {
		target        *bool
		available     bool
		wantTriggered bool
	}{
		"back in stock by default": {
			available:     true,
			wantTriggered: true,
		},
		"still out of stock": {
			available: false,
		},
		"went out of stock": {
			target:        lo.ToPtr(false),
			available:     false,
			wantTriggered: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rule := modelstesting.FakeRule(models.AlertTypeAvailability, func(r *models.AlertRule) {
				r.Condition.Available = tt.target
			})
			product := fakeProduct(rule)
			latest := productObservation(product.ID, "10")
			latest.IsAvailable = tt.available

			storage := mocks.NewStorage(t)
			notifier := mocks.NewNotifier(t)

			storage.On("GetRule", mock.Anything, rule.ID).Return(&rule, nil).Once()
			storage.On("GetProduct", mock.Anything, product.ID).Return(&product, nil).Once()
			storage.On("LatestObservations", mock.Anything, product.ID, 1).
				Return([]models.Observation{latest}, nil).Once()

			if tt.wantTriggered {
				mockFire(storage, notifier, rule, product)
			}

			result, err := newEngine(storage, notifier).Evaluate(context.TODO(), rule.ID)

			require.NoError(t, err, "shouldn't return any error")
			assert.Equal(t, tt.wantTriggered, result.Triggered, "should report whether rule triggered")
		})
	}
}

func TestUnitEvaluateCompetitor(t *testing.T) {
	tests := map[string]struct {
		prices        []string
		lookback      int
		wantLookback  int
		wantTriggered bool
	}{
		"competitor below reference minus margin": {
			prices:        []string{"46", "44"},
			wantLookback:  10,
			wantTriggered: true,
		},
		"competitors within margin": {
			prices:       []string{"46", "45"},
			wantLookback: 10,
		},
		"custom lookback": {
			prices:       []string{"47"},
			lookback:     3,
			wantLookback: 3,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rule := modelstesting.FakeRule(models.AlertTypeCompetitor, func(r *models.AlertRule) {
				r.Condition.Margin = decimalPtr("5")
				r.Condition.Lookback = tt.lookback
			})
			product := fakeProduct(rule)
			product.ReferencePrice = decimalPtr("50")

			observations := lo.Map(tt.prices, func(price string, _ int) models.Observation {
				return productObservation(product.ID, price)
			})

			storage := mocks.NewStorage(t)
			notifier := mocks.NewNotifier(t)

			storage.On("GetRule", mock.Anything, rule.ID).Return(&rule, nil).Once()
			storage.On("GetProduct", mock.Anything, product.ID).Return(&product, nil).Once()
			storage.On("LatestObservations", mock.Anything, product.ID, tt.wantLookback).Return(observations, nil).Once()

			if tt.wantTriggered {
				mockFire(storage, notifier, rule, product)
			}

			result, err := newEngine(storage, notifier).Evaluate(context.TODO(), rule.ID)

			require.NoError(t, err, "shouldn't return any error")
			assert.Equal(t, tt.wantTriggered, result.Triggered, "should report whether rule triggered")
		})
	}

	t.Run("product without reference price", func(t *testing.T) {
		rule := modelstesting.FakeRule(models.AlertTypeCompetitor)
		product := fakeProduct(rule)

		storage := mocks.NewStorage(t)
		storage.On("GetRule", mock.Anything, rule.ID).Return(&rule, nil).Once()
		storage.On("GetProduct", mock.Anything, product.ID).Return(&product, nil).Once()

		result, err := newEngine(storage, mocks.NewNotifier(t)).Evaluate(context.TODO(), rule.ID)

		require.NoError(t, err, "shouldn't return any error")
		assert.False(t, result.Triggered, "shouldn't trigger without reference price")
	})
}

func TestUnitEvaluateInactiveRule(t *testing.T) {
	rule := modelstesting.FakeRule(models.AlertTypeAvailability, func(r *models.AlertRule) {
		r.IsActive = false
	})

	storage := mocks.NewStorage(t)
	storage.On("GetRule", mock.Anything, rule.ID).Return(&rule, nil).Once()

	result, err := newEngine(storage, mocks.NewNotifier(t)).Evaluate(context.TODO(), rule.ID)

	require.NoError(t, err, "shouldn't return any error")
	assert.False(t, result.Triggered, "inactive rule shouldn't trigger")
}

func TestUnitEvaluateUnknownType(t *testing.T) {
	rule := modelstesting.FakeRule("price_watch")
	product := fakeProduct(rule)

	storage := mocks.NewStorage(t)
	storage.On("GetRule", mock.Anything, rule.ID).Return(&rule, nil).Once()
	storage.On("GetProduct", mock.Anything, product.ID).Return(&product, nil).Once()

	_, err := newEngine(storage, mocks.NewNotifier(t)).Evaluate(context.TODO(), rule.ID)

	require.ErrorIs(t, err, alerts.ErrUnknownType, "should return unknown type error")
}

func TestUnitEvaluateNotificationFailure(t *testing.T) {
	rule := modelstesting.FakeRule(models.AlertTypeAvailability)
	product := fakeProduct(rule)

	storage := mocks.NewStorage(t)
	notifier := mocks.NewNotifier(t)

	storage.On("GetRule", mock.Anything, rule.ID).Return(&rule, nil).Once()
	storage.On("GetProduct", mock.Anything, product.ID).Return(&product, nil).Once()
	storage.On("LatestObservations", mock.Anything, product.ID, 1).
		Return([]models.Observation{productObservation(product.ID, "10")}, nil).Once()
	storage.On("GetUserEmail", mock.Anything, rule.UserID).Return(email, nil).Once()
	notifier.On("Send", mock.Anything, email, mock.Anything, mock.Anything).Return(assert.AnError).Once()
	storage.On("MarkRuleTriggered", mock.Anything, rule.ID, now).Return(nil).Once()

	result, err := newEngine(storage, notifier).Evaluate(context.TODO(), rule.ID)

	require.NoError(t, err, "failed delivery shouldn't fail evaluation")
	assert.True(t, result.Triggered, "rule should be triggered despite failed delivery")
}

func TestUnitEvaluateAll(t *testing.T) {
	failing := modelstesting.FakeRule(models.AlertTypeAvailability)
	firing := modelstesting.FakeRule(models.AlertTypeAvailability)
	quiet := modelstesting.FakeRule(models.AlertTypeAvailability)
	firingProduct := fakeProduct(firing)
	quietProduct := fakeProduct(quiet)

	unavailable := productObservation(quietProduct.ID, "10")
	unavailable.IsAvailable = false

	storage := mocks.NewStorage(t)
	notifier := mocks.NewNotifier(t)

	storage.On("ListActiveRules", mock.Anything).Return([]models.AlertRule{failing, firing, quiet}, nil).Once()

	storage.On("GetProduct", mock.Anything, *failing.ProductID).Return(nil, assert.AnError).Once()

	storage.On("GetProduct", mock.Anything, firingProduct.ID).Return(&firingProduct, nil).Once()
	storage.On("LatestObservations", mock.Anything, firingProduct.ID, 1).
		Return([]models.Observation{productObservation(firingProduct.ID, "10")}, nil).Once()
	mockFire(storage, notifier, firing, firingProduct)

	storage.On("GetProduct", mock.Anything, quietProduct.ID).Return(&quietProduct, nil).Once()
	storage.On("LatestObservations", mock.Anything, quietProduct.ID, 1).
		Return([]models.Observation{unavailable}, nil).Once()

	summary, err := newEngine(storage, notifier).EvaluateAll(context.TODO())

	require.NoError(t, err, "rule failure shouldn't fail evaluation of all rules")
	assert.Equal(t, 3, summary.Checked, "should check every active rule")
	assert.Equal(t, 1, summary.Triggered, "should count triggered rules")
	require.Len(t, summary.Failed, 1, "should report failed rule")
	assert.Equal(t, failing.ID, summary.Failed[0].RuleID, "should report id of failed rule")
	assert.ErrorIs(t, summary.Failed[0].Err, assert.AnError, "should report cause of failure")
}

func TestUnitEvaluateAllListError(t *testing.T) {
	storage := mocks.NewStorage(t)
	storage.On("ListActiveRules", mock.Anything).Return(nil, assert.AnError).Once()

	_, err := newEngine(storage, mocks.NewNotifier(t)).EvaluateAll(context.TODO())

	require.ErrorIs(t, err, assert.AnError, "should return error containing assert.AnError")
}

func newEngine(storage alerts.Storage, notifier alerts.Notifier) *alerts.Engine {
	return alerts.NewEngine(storage, notifier, &logger, alerts.WithClock(fakeClock{now: &now}), alerts.WithConcurrency(1))
}

func mockFire(storage *mocks.Storage, notifier *mocks.Notifier, rule models.AlertRule, product models.Product) {
	storage.On("GetUserEmail", mock.Anything, rule.UserID).Return(email, nil).Once()
	notifier.On("Send", mock.Anything, email, "Price Alert: "+product.Name, mock.MatchedBy(func(body string) bool {
		return len(body) > 0
	})).Return(nil).Once()
	storage.On("MarkRuleTriggered", mock.Anything, rule.ID, now).Return(nil).Once()
}

func fakeProduct(rule models.AlertRule) models.Product {
	return models.Product{
		ID:       *rule.ProductID,
		Name:     "Product " + decimal.NewFromInt(*rule.ProductID).String(),
		URL:      lo.ToPtr("https://example.com/product"),
		IsActive: true,
	}
}

func productObservation(productID int64, price string) models.Observation {
	return modelstesting.FakeObservation(func(o *models.Observation) {
		o.ProductID = productID
		o.Price = decimal.RequireFromString(price)
	})
}

func decimalPtr(value string) *decimal.Decimal {
	return lo.ToPtr(decimal.RequireFromString(value))
}

type fakeClock struct {
	now *time.Time
}

func (c fakeClock) Now() *time.Time {
	return c.now
}
