// Package pg provides PostgreSQL connection management with migrations and
// health checking.
//
// It wraps the pgx driver with application-level retry logic and connection
// pool tuning, and applies goose migrations through the database/sql bridge
// that pgx ships in its stdlib package.
//
// # Key Features
//
//   - Connect: creates a pool with exponential-backoff retries and a verifying ping
//   - DB: exposes the pool as *sql.DB for database/sql consumers
//   - Migrate: applies goose migrations from any fs.FS (typically embedded)
//   - Healthcheck: returns a health check function for readiness probes
//
// # Configuration
//
//	type Config struct {
//		ConnectionString  string        `env:"PG_CONN_URL"`
//		MaxOpenConns      int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
//		MaxIdleConns      int32         `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`
//		HealthCheckPeriod time.Duration `env:"PG_HEALTHCHECK_PERIOD" envDefault:"1m"`
//		MaxConnIdleTime   time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"10m"`
//		MaxConnLifetime   time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m"`
//		RetryAttempts     int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
//		RetryInterval     time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"`
//	}
//
// # Usage Example
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal("Failed to connect to PostgreSQL:", err)
//	}
//	defer pool.Close()
//
//	db := pg.DB(pool)
//	if err := pg.Migrate(ctx, db, migrations, logger); err != nil {
//		log.Fatal("Migration failed:", err)
//	}
//
// # Error Handling
//
//	ErrEmptyConnectionString    - PG_CONN_URL is empty
//	ErrFailedToParseDBConfig    - the connection string cannot be parsed
//	ErrFailedToOpenDBConnection - all retry attempts are exhausted
//	ErrFailedToApplyMigrations  - goose failed to load or apply migrations
//	ErrHealthcheckFailed        - the health check ping failed
package pg
