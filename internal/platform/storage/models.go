package storage

import (
	"encoding/json"
	"fmt"

	"github.com/MichalMitros/price-monitor/internal/platform/models"
	"github.com/samber/lo"

	pgmodels "github.com/MichalMitros/price-monitor/internal/platform/storage/gen/postgres/public/model"
)

//go:generate make -C ../../../ generate-db

func toProduct(p *pgmodels.Product) models.Product {
	return models.Product{
		ID:              p.ID,
		Name:            p.Name,
		URL:             p.URL,
		ReferencePrice:  p.ReferencePrice,
		CurrentMinPrice: p.CurrentMinPrice,
		CurrentMaxPrice: p.CurrentMaxPrice,
		CurrentAvgPrice: p.CurrentAvgPrice,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
	}
}

func toSource(s *pgmodels.Source) (models.Source, error) {
	cfg, err := decodeSelectorConfig(s.ScraperConfig)
	if err != nil {
		return models.Source{}, fmt.Errorf("can't decode scraper config of source %d: %w", s.ID, err)
	}

	return models.Source{
		ID:            s.ID,
		Name:          s.Name,
		BaseURL:       s.BaseURL,
		ScraperConfig: cfg,
		IsActive:      s.IsActive,
	}, nil
}

func toMapping(m *pgmodels.ProductSource, s *pgmodels.Source) (models.Mapping, error) {
	cfg, err := decodeSelectorConfig(m.SelectorConfig)
	if err != nil {
		return models.Mapping{}, fmt.Errorf("can't decode selector config of mapping %d: %w", m.ID, err)
	}

	source, err := toSource(s)
	if err != nil {
		return models.Mapping{}, err
	}

	return models.Mapping{
		ID:              m.ID,
		ProductID:       m.ProductID,
		SourceID:        m.SourceID,
		URL:             m.URL,
		SourceProductID: m.SourceProductID,
		SelectorConfig:  cfg,
		IsActive:        m.IsActive,
		LastChecked:     m.LastChecked,
		LastPrice:       m.LastPrice,
		PriceChange1d:   m.PriceChange1d,
		PriceChange7d:   m.PriceChange7d,
		PriceChange30d:  m.PriceChange30d,
		Source:          source,
	}, nil
}

func toDBObservation(o *models.Observation) *pgmodels.PriceObservation {
	return &pgmodels.PriceObservation{
		ID:            o.ID,
		ProductID:     o.ProductID,
		SourceID:      o.SourceID,
		Price:         o.Price,
		Currency:      o.Currency,
		IsAvailable:   o.IsAvailable,
		ShippingCost:  o.ShippingCost,
		Discount:      o.Discount,
		StockQuantity: o.StockQuantity,
		CapturedAt:    o.CapturedAt,
	}
}

func toObservation(o *pgmodels.PriceObservation) models.Observation {
	return models.Observation{
		ID:            o.ID,
		ProductID:     o.ProductID,
		SourceID:      o.SourceID,
		Price:         o.Price,
		Currency:      o.Currency,
		IsAvailable:   o.IsAvailable,
		ShippingCost:  o.ShippingCost,
		Discount:      o.Discount,
		StockQuantity: o.StockQuantity,
		CapturedAt:    o.CapturedAt.UTC(),
	}
}

func toObservations(dbObservations []pgmodels.PriceObservation) []models.Observation {
	return lo.Map(dbObservations, func(_ pgmodels.PriceObservation, ix int) models.Observation {
		return toObservation(&dbObservations[ix])
	})
}

func toDBDailyProductStats(s *models.DailyProductStats) *pgmodels.DailyProductStats {
	return &pgmodels.DailyProductStats{
		ProductID:           s.ProductID,
		StatsDate:           s.Date,
		MinPrice:            s.MinPrice,
		MaxPrice:            s.MaxPrice,
		AvgPrice:            s.AvgPrice,
		MedianPrice:         s.MedianPrice,
		SourcesAvailable:    s.SourcesAvailable,
		TotalSourcesChecked: s.TotalSourcesChecked,
		BestPrice:           s.BestPrice,
		BestSourceID:        s.BestSourceID,
		ChangeFromPrevious:  s.ChangeFromPrevious,
		ChangePercentage:    s.ChangePercentage,
	}
}

func toDailyProductStats(s *pgmodels.DailyProductStats) models.DailyProductStats {
	return models.DailyProductStats{
		ProductID:           s.ProductID,
		Date:                s.StatsDate,
		MinPrice:            s.MinPrice,
		MaxPrice:            s.MaxPrice,
		AvgPrice:            s.AvgPrice,
		MedianPrice:         s.MedianPrice,
		SourcesAvailable:    s.SourcesAvailable,
		TotalSourcesChecked: s.TotalSourcesChecked,
		BestPrice:           s.BestPrice,
		BestSourceID:        s.BestSourceID,
		ChangeFromPrevious:  s.ChangeFromPrevious,
		ChangePercentage:    s.ChangePercentage,
	}
}

func toDBDailySourceStats(s *models.DailySourceStats) *pgmodels.DailySourceStats {
	return &pgmodels.DailySourceStats{
		SourceID:          s.SourceID,
		StatsDate:         s.Date,
		ScrapeAttempts:    s.ScrapeAttempts,
		SuccessfulScrapes: s.SuccessfulScrapes,
		FailedScrapes:     s.FailedScrapes,
		ProductsScraped:   s.ProductsScraped,
		UnavailableCount:  s.UnavailableCount,
		AvgPriceChange:    s.AvgPriceChange,
		PriceIncreases:    s.PriceIncreases,
		PriceDecreases:    s.PriceDecreases,
	}
}

func toAlertRule(r *pgmodels.AlertRule) (models.AlertRule, error) {
	var condition models.AlertCondition
	if r.ConditionParams != "" {
		if err := json.Unmarshal([]byte(r.ConditionParams), &condition); err != nil {
			return models.AlertRule{}, fmt.Errorf("can't decode condition of alert rule %d: %w", r.ID, err)
		}
	}

	return models.AlertRule{
		ID:            r.ID,
		UserID:        r.UserID,
		ProductID:     r.ProductID,
		Type:          models.AlertType(r.AlertType),
		Condition:     condition,
		IsActive:      r.IsActive,
		LastTriggered: r.LastTriggered,
		TriggerCount:  r.TriggerCount,
		CreatedAt:     r.CreatedAt,
	}, nil
}

func toDBScrapeJob(job *models.ScrapeJob) *pgmodels.ScrapeJob {
	return &pgmodels.ScrapeJob{
		ID:             job.ID,
		JobType:        string(job.Type),
		ProductID:      job.Scope.ProductID,
		SourceID:       job.Scope.SourceID,
		Status:         string(job.Status),
		CreatedAt:      job.CreatedAt,
		StartedAt:      job.StartedAt,
		CompletedAt:    job.CompletedAt,
		ProcessedCount: job.ProcessedCount,
		PricesFound:    job.PricesFound,
		FailedCount:    job.FailedCount,
		SkippedCount:   job.SkippedCount,
		ErrorMessage:   job.ErrorMessage,
	}
}

func toScrapeJob(job *pgmodels.ScrapeJob) *models.ScrapeJob {
	return &models.ScrapeJob{
		ID:   job.ID,
		Type: models.JobType(job.JobType),
		Scope: models.Scope{
			ProductID: job.ProductID,
			SourceID:  job.SourceID,
		},
		Status:         models.JobStatus(job.Status),
		CreatedAt:      job.CreatedAt,
		StartedAt:      job.StartedAt,
		CompletedAt:    job.CompletedAt,
		ProcessedCount: job.ProcessedCount,
		PricesFound:    job.PricesFound,
		FailedCount:    job.FailedCount,
		SkippedCount:   job.SkippedCount,
		ErrorMessage:   job.ErrorMessage,
	}
}

func toDBScrapeAttempt(a *models.ScrapeAttempt) *pgmodels.ScrapeAttempt {
	return &pgmodels.ScrapeAttempt{
		JobID:       a.JobID,
		MappingID:   a.MappingID,
		ProductID:   a.ProductID,
		SourceID:    a.SourceID,
		Status:      string(a.Status),
		ErrorKind:   a.ErrorKind,
		Message:     a.Message,
		Price:       a.Price,
		AttemptedAt: a.AttemptedAt,
	}
}

func toScrapeAttempt(a *pgmodels.ScrapeAttempt) models.ScrapeAttempt {
	return models.ScrapeAttempt{
		ID:          a.ID,
		JobID:       a.JobID,
		MappingID:   a.MappingID,
		ProductID:   a.ProductID,
		SourceID:    a.SourceID,
		Status:      models.UnitStatus(a.Status),
		ErrorKind:   a.ErrorKind,
		Message:     a.Message,
		Price:       a.Price,
		AttemptedAt: a.AttemptedAt,
	}
}

func decodeSelectorConfig(raw string) (models.SelectorConfig, error) {
	var cfg models.SelectorConfig
	if raw == "" {
		return cfg, nil
	}

	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// EncodeSelectorConfig encodes selector config as JSON document stored in jsonb columns.
func EncodeSelectorConfig(cfg models.SelectorConfig) string {
	encoded, err := json.Marshal(cfg)
	if err != nil {
		return "{}"
	}
	return string(encoded)
}

// EncodeCondition encodes alert condition as JSON document stored in jsonb column.
func EncodeCondition(condition models.AlertCondition) string {
	encoded, err := json.Marshal(condition)
	if err != nil {
		return "{}"
	}
	return string(encoded)
}
