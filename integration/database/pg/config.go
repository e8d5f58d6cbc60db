package pg

import "time"

// Config holds connection settings.
type Config struct {
	ConnectionString string        `env:"PG_CONN_URL,required"`
	RetryAttempts    int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval    time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"`
}
