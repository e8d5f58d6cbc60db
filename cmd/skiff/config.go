package main

import (
	"github.com/dmitrymomot/skiff/app"
	"github.com/dmitrymomot/skiff/pkg/ratelimiter"
)

// Config is the demo configuration. Backend URLs are optional: an empty URL
// leaves that backend out.
type Config struct {
	App       app.Config
	RateLimit ratelimiter.Config

	PostgresURL string `env:"PG_CONN_URL"`
	RedisURL    string `env:"REDIS_URL"`
	MongoURL    string `env:"MONGODB_URL"`
}
