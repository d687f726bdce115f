package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/MichalMitros/price-monitor/internal/adapter"
	"github.com/MichalMitros/price-monitor/internal/platform/models"
)

//go:generate mockery --name Storage --filename storage.go

// Storage is observations storage.
type Storage interface {
	// RecordObservation appends observation and updates mapping's last checked time and last price atomically.
	RecordObservation(ctx context.Context, mappingID int64, observation *models.Observation) error
}

// Option is custom configuration of Ingester.
type Option func(i *Ingester)

// Ingester turns extracted page data into price observations.
type Ingester struct {
	storage Storage
	now     func() time.Time
}

// NewIngester returns new Ingester.
func NewIngester(storage Storage, ops ...Option) *Ingester {
	ing := &Ingester{
		storage: storage,
		now:     func() time.Time { return time.Now().UTC() },
	}

	for _, op := range ops {
		op(ing)
	}

	return ing
}

// Ingest appends observation of mapping's product in mapping's source and returns it.
func (i Ingester) Ingest(ctx context.Context, mapping models.Mapping, extraction adapter.Extraction) (models.Observation, error) {
	currency := extraction.Currency
	if currency == "" {
		currency = models.DefaultCurrency
	}

	observation := models.Observation{
		ProductID:   mapping.ProductID,
		SourceID:    mapping.SourceID,
		Price:       extraction.Price,
		Currency:    currency,
		IsAvailable: extraction.IsAvailable,
		CapturedAt:  i.now(),
	}

	if err := i.storage.RecordObservation(ctx, mapping.ID, &observation); err != nil {
		return models.Observation{}, fmt.Errorf("can't record observation of mapping %d: %w", mapping.ID, err)
	}

	return observation, nil
}

// WithNow sets Ingester's source of capture times.
func WithNow(now func() time.Time) Option {
	return func(i *Ingester) {
		i.now = now
	}
}
