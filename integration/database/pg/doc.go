// Package pg provides the relational store for an application: a single
// PostgreSQL connection (jackc/pgx) opened with retries and a small facade that runs statements and returns rows as maps.
//
// # Configuration
//
//	type Config struct {
//		ConnectionString string        `env:"PG_CONN_URL,required"`
//		RetryAttempts    int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
//		RetryInterval    time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"`
//	}
//
// # Usage
//
//	db, err := pg.Open(ctx, cfg, pg.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	defer db.Close(context.Background())
//
//	err = db.Execute(ctx, "INSERT INTO notes (body) VALUES ($1)", []any{"hi"}, true)
//	rows, err := db.FetchAll(ctx, "SELECT id, body FROM notes")
//	row, err := db.FetchOne(ctx, "SELECT body FROM notes WHERE id = $1", 1)
//
// # Transactions
//
// Every Execute joins the open transaction, starting one when needed. Passing
// commit=true commits after the statement; passing false leaves it open for
// later statements. A failing statement rolls the transaction back. Fetches
// run inside the open transaction when there is one.
//
// All DB methods share one mutex, so the connection is used by one request at
// a time.
//
// Schema is owned by the application; the package does not manage
// migrations.
//
// # Health
//
//	r.Get("/health/ready", health.Readiness(log, pg.Healthcheck(db)))
package pg
