package alerts

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MichalMitros/price-monitor/internal/platform"
	"github.com/MichalMitros/price-monitor/internal/platform/metrics"
	"github.com/MichalMitros/price-monitor/internal/platform/models"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

const (
	// baselineAge is minimal age of observation used as price change baseline.
	baselineAge     = 24 * time.Hour
	defaultLookback = 10
)

// ErrUnknownType is returned for rules of unsupported type.
var ErrUnknownType = errors.New("unknown alert type")

//go:generate mockery --name Storage --filename storage.go
//go:generate mockery --name Notifier --filename notifier.go

// Storage is alert rules, products and observations storage.
type Storage interface {
	ListActiveRules(ctx context.Context) ([]models.AlertRule, error)
	GetRule(ctx context.Context, id int64) (*models.AlertRule, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	GetUserEmail(ctx context.Context, userID int64) (string, error)
	// LatestObservations returns up to limit most recent observations of product, newest first.
	LatestObservations(ctx context.Context, productID int64, limit int) ([]models.Observation, error)
	// LatestObservationBefore returns most recent observation captured not later than before or ErrNotFound.
	LatestObservationBefore(ctx context.Context, productID int64, before time.Time) (*models.Observation, error)
	// MarkRuleTriggered sets rule's last triggered time and increments its trigger count.
	MarkRuleTriggered(ctx context.Context, ruleID int64, at time.Time) error
}

// Notifier delivers alert messages. Delivery is fire-and-forget.
type Notifier interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// Clock provides times.
type Clock interface {
	// Now returns current UTC time.
	Now() *time.Time
}

// Result is outcome of single rule evaluation.
type Result struct {
	RuleID    int64
	Triggered bool
	Message   string
	Err       error
}

// Summary is outcome of evaluating all active rules.
type Summary struct {
	Checked   int
	Triggered int
	Failed    []Result
}

// Option is custom configuration of Engine.
type Option func(e *Engine)

// Engine evaluates alert rules against observation history and notifies rule owners.
type Engine struct {
	storage     Storage
	notifier    Notifier
	logger      *zerolog.Logger
	lookback    int
	concurrency int
	clock       Clock
}

// NewEngine returns new Engine.
func NewEngine(storage Storage, notifier Notifier, logger *zerolog.Logger, ops ...Option) *Engine {
	e := &Engine{
		storage:     storage,
		notifier:    notifier,
		logger:      logger,
		lookback:    defaultLookback,
		concurrency: 4,
		clock:       systemClock{},
	}

	for _, op := range ops {
		op(e)
	}

	return e
}

// Evaluate evaluates single rule. Inactive rule is never triggered.
func (e Engine) Evaluate(ctx context.Context, ruleID int64) (Result, error) {
	rule, err := e.storage.GetRule(ctx, ruleID)
	if err != nil {
		return Result{RuleID: ruleID, Err: err}, fmt.Errorf("can't evaluate rule: %w", err)
	}

	if !rule.IsActive {
		return Result{RuleID: ruleID}, nil
	}

	result := e.evaluate(ctx, *rule)

	return result, result.Err
}

// EvaluateAll evaluates every active rule independently.
// Rule failures are reported in summary, only failure to list rules is returned as error.
func (e Engine) EvaluateAll(ctx context.Context) (Summary, error) {
	rules, err := e.storage.ListActiveRules(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("can't list alert rules: %w", err)
	}

	var (
		mu      sync.Mutex
		summary = Summary{Checked: len(rules)}
	)

	errGroup := errgroup.Group{}
	errGroup.SetLimit(e.concurrency)

	for _, rule := range rules {
		errGroup.Go(func() error {
			result := e.evaluate(ctx, rule)

			mu.Lock()
			defer mu.Unlock()

			if result.Triggered {
				summary.Triggered++
			}
			if result.Err != nil {
				summary.Failed = append(summary.Failed, result)
			}

			return nil
		})
	}

	// rule errors are collected in summary.
	_ = errGroup.Wait()

	e.logger.Info().
		Int("checked", summary.Checked).
		Int("triggered", summary.Triggered).
		Int("failed", len(summary.Failed)).
		Msg("alert rules evaluated")

	return summary, nil
}

func (e Engine) evaluate(ctx context.Context, rule models.AlertRule) Result {
	result := Result{RuleID: rule.ID}

	logger := e.logger.With().
		Int64("ruleId", rule.ID).
		Str("alertType", string(rule.Type)).
		Logger()

	if rule.ProductID == nil {
		logger.Debug().Msg("rule without product skipped")
		return result
	}

	product, err := e.storage.GetProduct(ctx, *rule.ProductID)
	if err != nil {
		result.Err = fmt.Errorf("can't evaluate rule %d: %w", rule.ID, err)
		logger.Warn().Err(result.Err).Msg("rule evaluation failed")
		return result
	}

	now := *e.clock.Now()

	decision, err := e.check(ctx, rule, product, now)
	if err != nil {
		result.Err = fmt.Errorf("can't evaluate rule %d: %w", rule.ID, err)
		logger.Warn().Err(result.Err).Msg("rule evaluation failed")
		return result
	}

	if !decision.triggered {
		return result
	}

	if err := e.fire(ctx, rule, product, decision, now); err != nil {
		result.Err = fmt.Errorf("can't trigger rule %d: %w", rule.ID, err)
		logger.Warn().Err(result.Err).Msg("rule triggering failed")
		return result
	}

	result.Triggered = true
	result.Message = decision.message

	logger.Info().
		Str("message", decision.message).
		Msg("alert rule triggered")

	return result
}

func (e Engine) fire(ctx context.Context, rule models.AlertRule, product *models.Product, d decision, now time.Time) error {
	recipient, err := e.storage.GetUserEmail(ctx, rule.UserID)
	if err != nil {
		return err
	}

	subject, body, err := renderMessage(rule, product, d)
	if err != nil {
		return err
	}

	if err := e.notifier.Send(ctx, recipient, subject, body); err != nil {
		e.logger.Warn().
			Err(err).
			Int64("ruleId", rule.ID).
			Msg("can't send alert notification")
	}

	if err := e.storage.MarkRuleTriggered(ctx, rule.ID, now); err != nil {
		return err
	}

	metrics.RecordAlert(string(rule.Type))

	return nil
}

type decision struct {
	triggered   bool
	message     string
	observation *models.Observation
}

func (e Engine) check(ctx context.Context, rule models.AlertRule, product *models.Product, now time.Time) (decision, error) {
	switch rule.Type {
	case models.AlertTypePriceDrop, models.AlertTypePriceIncrease:
		return e.checkPriceChange(ctx, rule, product, now)
	case models.AlertTypeAvailability:
		return e.checkAvailability(ctx, rule, product)
	case models.AlertTypeCompetitor:
		return e.checkCompetitor(ctx, rule, product)
	default:
		return decision{}, fmt.Errorf("%w: %q", ErrUnknownType, rule.Type)
	}
}

func (e Engine) latest(ctx context.Context, productID int64) (*models.Observation, error) {
	observations, err := e.storage.LatestObservations(ctx, productID, 1)
	if err != nil {
		return nil, err
	}
	if len(observations) == 0 {
		return nil, nil
	}
	return &observations[0], nil
}

func (e Engine) checkPriceChange(
	ctx context.Context,
	rule models.AlertRule,
	product *models.Product,
	now time.Time,
) (decision, error) {
	current, err := e.latest(ctx, product.ID)
	if err != nil || current == nil {
		return decision{}, err
	}

	baseline, err := e.storage.LatestObservationBefore(ctx, product.ID, now.Add(-baselineAge))
	if errors.Is(err, platform.ErrNotFound) {
		return decision{}, nil
	}
	if err != nil {
		return decision{}, err
	}

	drop := rule.Type == models.AlertTypePriceDrop
	cond := rule.Condition

	if cond.Threshold != nil {
		if drop && current.Price.LessThan(*cond.Threshold) {
			return decision{
				triggered:   true,
				message:     fmt.Sprintf("Price dropped to %s %s (threshold: %s)", current.Price.StringFixed(2), current.Currency, cond.Threshold.StringFixed(2)),
				observation: current,
			}, nil
		}
		if !drop && current.Price.GreaterThan(*cond.Threshold) {
			return decision{
				triggered:   true,
				message:     fmt.Sprintf("Price increased to %s %s (threshold: %s)", current.Price.StringFixed(2), current.Currency, cond.Threshold.StringFixed(2)),
				observation: current,
			}, nil
		}
	}

	if cond.Percentage == nil {
		return decision{}, nil
	}

	change, ok := models.PercentChange(baseline.Price, current.Price)
	if !ok {
		return decision{}, nil
	}

	if drop && change.LessThanOrEqual(cond.Percentage.Neg()) {
		return decision{
			triggered:   true,
			message:     fmt.Sprintf("Price dropped by %s%% to %s %s", change.Abs().StringFixed(2), current.Price.StringFixed(2), current.Currency),
			observation: current,
		}, nil
	}
	if !drop && change.GreaterThanOrEqual(*cond.Percentage) {
		return decision{
			triggered:   true,
			message:     fmt.Sprintf("Price increased by %s%% to %s %s", change.StringFixed(2), current.Price.StringFixed(2), current.Currency),
			observation: current,
		}, nil
	}

	return decision{}, nil
}

func (e Engine) checkAvailability(ctx context.Context, rule models.AlertRule, product *models.Product) (decision, error) {
	current, err := e.latest(ctx, product.ID)
	if err != nil || current == nil {
		return decision{}, err
	}

	target := lo.FromPtrOr(rule.Condition.Available, true)
	if current.IsAvailable != target {
		return decision{}, nil
	}

	status := "unavailable"
	if target {
		status = "available"
	}

	return decision{
		triggered:   true,
		message:     "Product is now " + status,
		observation: current,
	}, nil
}

func (e Engine) checkCompetitor(ctx context.Context, rule models.AlertRule, product *models.Product) (decision, error) {
	if product.ReferencePrice == nil {
		return decision{}, nil
	}

	lookback := rule.Condition.Lookback
	if lookback <= 0 {
		lookback = e.lookback
	}

	observations, err := e.storage.LatestObservations(ctx, product.ID, lookback)
	if err != nil {
		return decision{}, err
	}

	limit := *product.ReferencePrice
	if rule.Condition.Margin != nil {
		limit = limit.Sub(*rule.Condition.Margin)
	}

	for ix := range observations {
		o := &observations[ix]
		if o.Price.LessThan(limit) {
			return decision{
				triggered: true,
				message: fmt.Sprintf("Source %d has lower price: %s %s (your price: %s)",
					o.SourceID, o.Price.StringFixed(2), o.Currency, product.ReferencePrice.StringFixed(2)),
				observation: o,
			}, nil
		}
	}

	return decision{}, nil
}

// WithLookback sets default number of observations checked by competitor rules.
func WithLookback(n int) Option {
	return func(e *Engine) {
		e.lookback = max(n, 1)
	}
}

// WithConcurrency sets maximal number of rules evaluated at once.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		e.concurrency = max(n, 1)
	}
}

// WithClock sets Engine's custom Clock.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}
