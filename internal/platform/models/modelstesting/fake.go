package modelstesting

import (
	"math/rand"
	"time"

	"github.com/MichalMitros/price-monitor/internal/platform/models"
	"github.com/go-faker/faker/v4"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// FakeSource returns active models.Source with fake data and empty scraper config.
func FakeSource(ops ...func(s *models.Source)) models.Source {
	source := models.Source{
		ID:       rand.Int63n(1_000_000) + 1,
		Name:     faker.Word(),
		BaseURL:  faker.URL(),
		IsActive: true,
	}

	for _, op := range ops {
		op(&source)
	}

	return source
}

// FakeMapping returns active models.Mapping with fake data and generic price selector.
func FakeMapping(ops ...func(m *models.Mapping)) models.Mapping {
	source := FakeSource()
	mapping := models.Mapping{
		ID:        rand.Int63n(1_000_000) + 1,
		ProductID: rand.Int63n(1_000_000) + 1,
		SourceID:  source.ID,
		URL:       faker.URL(),
		SelectorConfig: models.SelectorConfig{
			PriceSelector: ".price",
		},
		IsActive: true,
		Source:   source,
	}

	for _, op := range ops {
		op(&mapping)
	}

	return mapping
}

// FakeObservation returns available models.Observation with random price.
func FakeObservation(ops ...func(o *models.Observation)) models.Observation {
	observation := models.Observation{
		ID:          rand.Int63n(1_000_000) + 1,
		ProductID:   rand.Int63n(1_000_000) + 1,
		SourceID:    rand.Int63n(1_000_000) + 1,
		Price:       decimal.New(rand.Int63n(100_000)+1, -2),
		Currency:    models.DefaultCurrency,
		IsAvailable: true,
		CapturedAt:  time.Now().UTC().Truncate(time.Second),
	}

	for _, op := range ops {
		op(&observation)
	}

	return observation
}

// FakeRule returns active models.AlertRule of provided type for random product.
func FakeRule(alertType models.AlertType, ops ...func(r *models.AlertRule)) models.AlertRule {
	rule := models.AlertRule{
		ID:        rand.Int63n(1_000_000) + 1,
		UserID:    rand.Int63n(1_000_000) + 1,
		ProductID: lo.ToPtr(rand.Int63n(1_000_000) + 1),
		Type:      alertType,
		IsActive:  true,
	}

	for _, op := range ops {
		op(&rule)
	}

	return rule
}

// FakeProduct returns active models.Product with fake name.
func FakeProduct(ops ...func(p *models.Product)) models.Product {
	product := models.Product{
		ID:       rand.Int63n(1_000_000) + 1,
		Name:     faker.Word(),
		URL:      lo.ToPtr(faker.URL()),
		IsActive: true,
	}

	for _, op := range ops {
		op(&product)
	}

	return product
}
