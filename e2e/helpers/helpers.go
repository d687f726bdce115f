package helpers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MichalMitros/price-monitor/internal/platform/models"
	"github.com/MichalMitros/price-monitor/internal/platform/storage"
	pgmodels "github.com/MichalMitros/price-monitor/internal/platform/storage/gen/postgres/public/model"
	"github.com/MichalMitros/price-monitor/internal/platform/storage/gen/postgres/public/table"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
)

const (
	contentType = "Content-Type"
	waitTimeout = 30 * time.Second
)

// Page is product page served by mocked shop.
type Page struct {
	Price     string
	Available bool
	Status    int
}

// WaitForJobToBeFinished is blocking helper function, returns job after it is completed or failed.
func WaitForJobToBeFinished(t *testing.T, db storage.Postgres, jobID int64) *models.ScrapeJob {
	t.Helper()

	deadline := time.After(waitTimeout)
	for {
		select {
		case <-deadline:
			require.FailNow(t, "scrape job not finished in time", jobID)
		case <-time.After(250 * time.Millisecond):
		}

		job, err := db.GetJob(context.Background(), jobID)
		require.NoError(t, err)

		if job.Status == models.JobStatusCompleted || job.Status == models.JobStatusFailed {
			return job
		}
	}
}

// WaitForProductStats is blocking helper function, returns product's stats of the day after they are computed.
func WaitForProductStats(t *testing.T, queryable qrm.Queryable, productID int64, date time.Time) pgmodels.DailyProductStats {
	t.Helper()

	deadline := time.After(waitTimeout)
	for {
		select {
		case <-deadline:
			require.FailNow(t, "product stats not computed in time", productID)
		case <-time.After(250 * time.Millisecond):
		}

		var stats []pgmodels.DailyProductStats
		err := table.DailyProductStats.SELECT(table.DailyProductStats.AllColumns).
			WHERE(pg.AND(
				table.DailyProductStats.ProductID.EQ(pg.Int64(productID)),
				table.DailyProductStats.StatsDate.EQ(pg.DateT(date)),
			)).
			Query(queryable, &stats)
		require.NoError(t, err)

		if len(stats) > 0 {
			return stats[0]
		}
	}
}

// PrepareMockedShop is helper function for mocking shop serving product pages under /products/{id}.
func PrepareMockedShop(t *testing.T, pages map[string]Page) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /products/{id}", func(wrt http.ResponseWriter, req *http.Request) {
		page, ok := pages[req.PathValue("id")]
		if !ok {
			http.NotFound(wrt, req)
			return
		}

		status := page.Status
		if status == 0 {
			status = http.StatusOK
		}

		availability := "Dostępny"
		if !page.Available {
			availability = "Niedostępny"
		}

		wrt.Header().Add(contentType, "text/html; charset=utf-8")
		wrt.WriteHeader(status)
		_, _ = fmt.Fprintf(wrt, `<html><head><title>Product %s</title></head><body>
<h1 class="name">Product %s</h1>
<span class="price">%s</span>
<div class="availability">%s</div>
</body></html>`, req.PathValue("id"), req.PathValue("id"), page.Price, availability)
	})

	srv := httptest.NewServer(mux)

	t.Cleanup(func() {
		srv.Close()
	})

	return srv
}

// DeleteRMQQueueOnCleanup is helper function for deleting RMQ queue after test is finished.
func DeleteRMQQueueOnCleanup(t *testing.T, channel *amqp.Channel, queueName string) {
	t.Helper()

	t.Cleanup(func() {
		_, err := channel.QueueDelete(queueName, false, false, true)
		if err != nil {
			require.FailNow(t, "can't delete queue", queueName, err)
		}
	})
}
