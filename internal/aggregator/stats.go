package aggregator

import (
	"sort"
	"time"

	"github.com/MichalMitros/price-monitor/internal/platform/models"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const avgPlaces = 4

// ComputeProductStats returns stats of product's observations captured during the day.
// Previous is the product's stats of the day before, nil when there is none.
// Observations must not be empty.
func ComputeProductStats(
	productID int64,
	day time.Time,
	observations []models.Observation,
	previous *models.DailyProductStats,
) models.DailyProductStats {
	prices := lo.Map(observations, func(o models.Observation, _ int) decimal.Decimal { return o.Price })
	sort.Slice(prices, func(i, j int) bool { return prices[i].LessThan(prices[j]) })

	stats := models.DailyProductStats{
		ProductID:           productID,
		Date:                day,
		MinPrice:            prices[0],
		MaxPrice:            prices[len(prices)-1],
		AvgPrice:            decimal.Avg(prices[0], prices[1:]...).Round(avgPlaces),
		MedianPrice:         prices[(len(prices)-1)/2],
		TotalSourcesChecked: int32(len(observations)),
	}

	var best *models.Observation
	for ix := range observations {
		o := &observations[ix]
		if !o.IsAvailable {
			continue
		}
		stats.SourcesAvailable++
		if best == nil || betterOffer(o, best) {
			best = o
		}
	}

	if best != nil {
		stats.BestPrice = lo.ToPtr(best.Price)
		stats.BestSourceID = lo.ToPtr(best.SourceID)
	}

	if previous != nil {
		change := stats.AvgPrice.Sub(previous.AvgPrice)
		stats.ChangeFromPrevious = &change
		stats.ChangePercentage = lo.ToPtr(decimal.Zero)
		if percentage, ok := models.PercentChange(previous.AvgPrice, stats.AvgPrice); ok {
			stats.ChangePercentage = &percentage
		}
	}

	return stats
}

// betterOffer reports whether o is cheaper than best, ties are won by earlier capture, then lower source id.
func betterOffer(o, best *models.Observation) bool {
	if cmp := o.Price.Cmp(best.Price); cmp != 0 {
		return cmp < 0
	}
	if !o.CapturedAt.Equal(best.CapturedAt) {
		return o.CapturedAt.Before(best.CapturedAt)
	}
	return o.SourceID < best.SourceID
}

type pair struct {
	productID int64
	sourceID  int64
}

// computeSourceStats returns stats of source's observations captured during the day.
// Baselines hold the earliest observation of each product and source pair captured the day before.
func computeSourceStats(
	sourceID int64,
	day time.Time,
	observations []models.Observation,
	baselines map[pair]models.Observation,
	counts models.AttemptCounts,
) models.DailySourceStats {
	stats := models.DailySourceStats{
		SourceID:          sourceID,
		Date:              day,
		SuccessfulScrapes: int32(len(observations)),
		FailedScrapes:     counts.Failures,
	}
	stats.ScrapeAttempts = stats.SuccessfulScrapes + stats.FailedScrapes

	products := make(map[int64]struct{}, len(observations))
	changes := make([]decimal.Decimal, 0, len(observations))

	for _, o := range observations {
		products[o.ProductID] = struct{}{}
		if !o.IsAvailable {
			stats.UnavailableCount++
		}

		baseline, ok := baselines[pair{productID: o.ProductID, sourceID: o.SourceID}]
		if !ok {
			continue
		}
		change, ok := models.PercentChange(baseline.Price, o.Price)
		if !ok {
			continue
		}

		changes = append(changes, change)
		switch change.Sign() {
		case 1:
			stats.PriceIncreases++
		case -1:
			stats.PriceDecreases++
		}
	}

	stats.ProductsScraped = int32(len(products))
	if len(changes) > 0 {
		stats.AvgPriceChange = lo.ToPtr(decimal.Avg(changes[0], changes[1:]...).Round(models.PercentPlaces))
	}

	return stats
}
