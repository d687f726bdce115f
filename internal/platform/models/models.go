package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is currency assumed when price text doesn't carry one.
const DefaultCurrency = "PLN"

// Product is catalog product model.
type Product struct {
	ID              int64
	Name            string
	URL             *string
	ReferencePrice  *decimal.Decimal
	CurrentMinPrice *decimal.Decimal
	CurrentMaxPrice *decimal.Decimal
	CurrentAvgPrice *decimal.Decimal
	IsActive        bool
	CreatedAt       time.Time
}

// Source is external price source (shop or marketplace) model.
type Source struct {
	ID            int64
	Name          string
	BaseURL       string
	ScraperConfig SelectorConfig
	IsActive      bool
}

// SelectorConfig is extraction configuration of a source or a single mapping.
// Unknown keys are ignored when decoding.
type SelectorConfig struct {
	PriceSelector        string `json:"price_selector,omitempty"`
	AvailabilitySelector string `json:"availability_selector,omitempty"`
	NameSelector         string `json:"name_selector,omitempty"`
	ImageSelector        string `json:"image_selector,omitempty"`
	UseBrowser           bool   `json:"use_browser,omitempty"`
	WaitForSelector      string `json:"wait_for_selector,omitempty"`
}

// IsZero reports whether config has no keys set.
func (c SelectorConfig) IsZero() bool {
	return c == SelectorConfig{}
}

// Mapping is association of one product with one source.
type Mapping struct {
	ID              int64
	ProductID       int64
	SourceID        int64
	URL             string
	SourceProductID *string
	SelectorConfig  SelectorConfig
	IsActive        bool
	LastChecked     *time.Time
	LastPrice       *decimal.Decimal
	PriceChange1d   *decimal.Decimal
	PriceChange7d   *decimal.Decimal
	PriceChange30d  *decimal.Decimal

	Source Source
}

// EffectiveConfig returns mapping's own selector config or, when it is empty, source's config.
func (m Mapping) EffectiveConfig() SelectorConfig {
	if !m.SelectorConfig.IsZero() {
		return m.SelectorConfig
	}
	return m.Source.ScraperConfig
}

// PriceChanges holds mapping's percentage price changes. Nil fields are left untouched in storage.
type PriceChanges struct {
	Day   *decimal.Decimal
	Week  *decimal.Decimal
	Month *decimal.Decimal
}

// Observation is single immutable price reading.
type Observation struct {
	ID            int64
	ProductID     int64
	SourceID      int64
	Price         decimal.Decimal
	Currency      string
	IsAvailable   bool
	ShippingCost  *decimal.Decimal
	Discount      *decimal.Decimal
	StockQuantity *int32
	CapturedAt    time.Time
}

// DailyProductStats is per product and day aggregate.
type DailyProductStats struct {
	ProductID           int64
	Date                time.Time
	MinPrice            decimal.Decimal
	MaxPrice            decimal.Decimal
	AvgPrice            decimal.Decimal
	MedianPrice         decimal.Decimal
	SourcesAvailable    int32
	TotalSourcesChecked int32
	BestPrice           *decimal.Decimal
	BestSourceID        *int64
	ChangeFromPrevious  *decimal.Decimal
	ChangePercentage    *decimal.Decimal
}

// DailySourceStats is per source and day aggregate.
type DailySourceStats struct {
	SourceID          int64
	Date              time.Time
	ScrapeAttempts    int32
	SuccessfulScrapes int32
	FailedScrapes     int32
	ProductsScraped   int32
	UnavailableCount  int32
	AvgPriceChange    *decimal.Decimal
	PriceIncreases    int32
	PriceDecreases    int32
}

// AttemptCounts holds number of settled scrape units of a source.
type AttemptCounts struct {
	Attempts  int32
	Successes int32
	Failures  int32
}

// AlertType is type of alert rule.
type AlertType string

// Alert types.
const (
	AlertTypePriceDrop     AlertType = "price_drop"
	AlertTypePriceIncrease AlertType = "price_increase"
	AlertTypeAvailability  AlertType = "availability"
	AlertTypeCompetitor    AlertType = "competitor"
)

// AlertCondition holds alert rule parameters.
type AlertCondition struct {
	Threshold  *decimal.Decimal `json:"threshold,omitempty"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
	Margin     *decimal.Decimal `json:"margin,omitempty"`
	Available  *bool            `json:"available,omitempty"`
	Lookback   int              `json:"lookback,omitempty"`
}

// AlertRule is user-defined alert rule.
type AlertRule struct {
	ID            int64
	UserID        int64
	ProductID     *int64
	Type          AlertType
	Condition     AlertCondition
	IsActive      bool
	LastTriggered *time.Time
	TriggerCount  int32
	CreatedAt     time.Time
}

// JobType is type of scrape job.
type JobType string

// Scrape job types.
const (
	JobTypeScrapeAll     JobType = "scrape_all"
	JobTypeScrapeProduct JobType = "scrape_product"
	JobTypeScrapeSource  JobType = "scrape_source"
)

// JobStatus is status of scrape job.
type JobStatus string

// Scrape job statuses.
const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// Scope selects mappings processed by a scrape job.
// Empty scope means all active mappings, ProductID with optional SourceID means one product,
// SourceID alone means one source.
type Scope struct {
	ProductID *int64
	SourceID  *int64
}

// JobType returns scrape job type matching the scope.
func (s Scope) JobType() JobType {
	switch {
	case s.ProductID != nil:
		return JobTypeScrapeProduct
	case s.SourceID != nil:
		return JobTypeScrapeSource
	default:
		return JobTypeScrapeAll
	}
}

// ScrapeJob is single scrape orchestration run.
type ScrapeJob struct {
	ID             int64
	Type           JobType
	Scope          Scope
	Status         JobStatus
	CreatedAt      time.Time
	StartedAt      *time.Time
	CompletedAt    *time.Time
	ProcessedCount int32
	PricesFound    int32
	FailedCount    int32
	SkippedCount   int32
	ErrorMessage   *string
}

// UnitStatus is outcome of single scrape unit.
type UnitStatus string

// Scrape unit outcomes.
const (
	UnitStatusSuccess UnitStatus = "success"
	UnitStatusSkipped UnitStatus = "skipped"
	UnitStatusError   UnitStatus = "error"
)

// ScrapeAttempt is logged outcome of single scrape unit.
type ScrapeAttempt struct {
	ID          int64
	JobID       *int64
	MappingID   int64
	ProductID   int64
	SourceID    int64
	Status      UnitStatus
	ErrorKind   *string
	Message     *string
	Price       *decimal.Decimal
	AttemptedAt time.Time
}
