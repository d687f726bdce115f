package storagetesting

import (
	"database/sql"
	"os"
	"testing"

	pgmodels "github.com/MichalMitros/price-monitor/internal/platform/storage/gen/postgres/public/model"
	"github.com/MichalMitros/price-monitor/internal/platform/storage/gen/postgres/public/table"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"

	_ "github.com/lib/pq"
)

// Open opens connection to DB.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("please provide database URL via DATABASE_URL environment variable")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		t.Fatalf("can't open connection to %q: %s", dbURL, err)
	}

	return db
}

// InsertProduct is a helper test function to insert product. Returns product's ID.
func InsertProduct(t *testing.T, db qrm.Queryable, product pgmodels.Product) int64 {
	t.Helper()

	err := table.Product.INSERT(table.Product.MutableColumns.Except(table.Product.CreatedAt)).
		MODEL(product).
		RETURNING(table.Product.ID).
		Query(db, &product)
	if err != nil {
		t.Fatal("can't insert product", err)
	}

	return product.ID
}

// InsertSource is a helper test function to insert source. Returns source's ID.
func InsertSource(t *testing.T, db qrm.Queryable, source pgmodels.Source) int64 {
	t.Helper()

	if source.ScraperConfig == "" {
		source.ScraperConfig = "{}"
	}

	err := table.Source.INSERT(table.Source.MutableColumns).
		MODEL(source).
		RETURNING(table.Source.ID).
		Query(db, &source)
	if err != nil {
		t.Fatal("can't insert source", err)
	}

	return source.ID
}

// InsertMapping is a helper test function to insert product source mapping. Returns mapping's ID.
func InsertMapping(t *testing.T, db qrm.Queryable, mapping pgmodels.ProductSource) int64 {
	t.Helper()

	if mapping.SelectorConfig == "" {
		mapping.SelectorConfig = "{}"
	}

	err := table.ProductSource.INSERT(table.ProductSource.MutableColumns).
		MODEL(mapping).
		RETURNING(table.ProductSource.ID).
		Query(db, &mapping)
	if err != nil {
		t.Fatal("can't insert mapping", err)
	}

	return mapping.ID
}

// InsertObservations is a helper test function to insert price observations.
func InsertObservations(t *testing.T, exc qrm.Executable, observations ...pgmodels.PriceObservation) {
	t.Helper()

	if len(observations) == 0 {
		return
	}

	_, err := table.PriceObservation.INSERT(table.PriceObservation.MutableColumns).MODELS(observations).Exec(exc)
	if err != nil {
		t.Fatal("can't insert observations", err)
	}
}

// InsertUser is a helper test function to insert user. Returns user's ID.
func InsertUser(t *testing.T, db qrm.Queryable, email string) int64 {
	t.Helper()

	user := pgmodels.AppUser{Email: email}
	err := table.AppUser.INSERT(table.AppUser.Email).
		MODEL(user).
		RETURNING(table.AppUser.ID).
		Query(db, &user)
	if err != nil {
		t.Fatal("can't insert user", err)
	}

	return user.ID
}

// InsertRule is a helper test function to insert alert rule. Returns rule's ID.
func InsertRule(t *testing.T, db qrm.Queryable, rule pgmodels.AlertRule) int64 {
	t.Helper()

	if rule.ConditionParams == "" {
		rule.ConditionParams = "{}"
	}

	err := table.AlertRule.INSERT(table.AlertRule.MutableColumns.Except(table.AlertRule.CreatedAt)).
		MODEL(rule).
		RETURNING(table.AlertRule.ID).
		Query(db, &rule)
	if err != nil {
		t.Fatal("can't insert alert rule", err)
	}

	return rule.ID
}

// InsertAttempts is a helper test function to insert scrape attempts.
func InsertAttempts(t *testing.T, exc qrm.Executable, attempts ...pgmodels.ScrapeAttempt) {
	t.Helper()

	if len(attempts) == 0 {
		return
	}

	_, err := table.ScrapeAttempt.INSERT(table.ScrapeAttempt.MutableColumns).MODELS(attempts).Exec(exc)
	if err != nil {
		t.Fatal("can't insert scrape attempts", err)
	}
}

// GetMapping is a helper test function to get mapping by ID.
func GetMapping(t *testing.T, queryable qrm.Queryable, id int64) pgmodels.ProductSource {
	t.Helper()

	var mapping pgmodels.ProductSource
	err := table.ProductSource.SELECT(table.ProductSource.AllColumns).
		WHERE(table.ProductSource.ID.EQ(pg.Int64(id))).
		Query(queryable, &mapping)
	if err != nil {
		t.Fatal("can't get mapping", err)
	}

	return mapping
}

// GetProduct is a helper test function to get product by ID.
func GetProduct(t *testing.T, queryable qrm.Queryable, id int64) pgmodels.Product {
	t.Helper()

	var product pgmodels.Product
	err := table.Product.SELECT(table.Product.AllColumns).
		WHERE(table.Product.ID.EQ(pg.Int64(id))).
		Query(queryable, &product)
	if err != nil {
		t.Fatal("can't get product", err)
	}

	return product
}

// GetRule is a helper test function to get alert rule by ID.
func GetRule(t *testing.T, queryable qrm.Queryable, id int64) pgmodels.AlertRule {
	t.Helper()

	var rule pgmodels.AlertRule
	err := table.AlertRule.SELECT(table.AlertRule.AllColumns).
		WHERE(table.AlertRule.ID.EQ(pg.Int64(id))).
		Query(queryable, &rule)
	if err != nil {
		t.Fatal("can't get alert rule", err)
	}

	return rule
}

// GetObservations is a helper test function to get all observations of product.
func GetObservations(t *testing.T, queryable qrm.Queryable, productID int64) []pgmodels.PriceObservation {
	t.Helper()

	observations := []pgmodels.PriceObservation{}
	err := table.PriceObservation.SELECT(table.PriceObservation.AllColumns).
		WHERE(table.PriceObservation.ProductID.EQ(pg.Int64(productID))).
		ORDER_BY(table.PriceObservation.CapturedAt.ASC()).
		Query(queryable, &observations)
	if err != nil {
		t.Fatal("can't get observations", err)
	}

	return observations
}

// GetProductStats is a helper test function to get all daily stats of product.
func GetProductStats(t *testing.T, queryable qrm.Queryable, productID int64) []pgmodels.DailyProductStats {
	t.Helper()

	stats := []pgmodels.DailyProductStats{}
	err := table.DailyProductStats.SELECT(table.DailyProductStats.AllColumns).
		WHERE(table.DailyProductStats.ProductID.EQ(pg.Int64(productID))).
		ORDER_BY(table.DailyProductStats.StatsDate.ASC()).
		Query(queryable, &stats)
	if err != nil {
		t.Fatal("can't get daily product stats", err)
	}

	return stats
}

// CleanupData is a helper test function to delete all data.
func CleanupData(t *testing.T, exc qrm.Executable) {
	t.Helper()

	for _, tbl := range []interface {
		DELETE() pg.DeleteStatement
	}{
		table.ScrapeAttempt,
		table.ScrapeJob,
		table.AlertRule,
		table.AppUser,
		table.DailySourceStats,
		table.DailyProductStats,
		table.PriceObservation,
		table.ProductSource,
		table.Source,
		table.Product,
	} {
		if _, err := tbl.DELETE().WHERE(pg.Bool(true)).Exec(exc); err != nil {
			t.Fatal("can't delete data", err)
		}
	}
}
