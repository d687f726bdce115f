package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "price_monitor"

var (
	scrapeUnits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scrape_units_total",
			Help:      "Settled scrape units by source and outcome.",
		},
		[]string{"source", "status"},
	)
	fetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of single page fetch attempts.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"strategy", "outcome"},
	)
	alertsFired = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_fired_total",
			Help:      "Fired alert rules by rule type.",
		},
		[]string{"type"},
	)
	taskDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "task_duration_seconds",
			Help:      "Duration of scheduled and manually triggered tasks.",
			Buckets:   []float64{1, 5, 15, 60, 300, 900, 3600},
		},
		[]string{"task", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(scrapeUnits)
	prometheus.MustRegister(fetchDuration)
	prometheus.MustRegister(alertsFired)
	prometheus.MustRegister(taskDuration)
}

// RecordScrapeUnit counts settled scrape unit.
func RecordScrapeUnit(source, status string) {
	scrapeUnits.WithLabelValues(source, status).Inc()
}

// RecordFetch observes duration of single fetch attempt.
func RecordFetch(strategy string, err error, duration time.Duration) {
	fetchDuration.WithLabelValues(strategy, outcome(err)).Observe(duration.Seconds())
}

// RecordAlert counts fired alert rule.
func RecordAlert(alertType string) {
	alertsFired.WithLabelValues(alertType).Inc()
}

// RecordTask observes duration of a task run.
func RecordTask(task string, err error, duration time.Duration) {
	taskDuration.WithLabelValues(task, outcome(err)).Observe(duration.Seconds())
}

// Handler returns HTTP handler exposing metrics in Prometheus format.
func Handler() http.Handler {
	return promhttp.Handler()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
