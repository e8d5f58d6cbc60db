// Package redis connects to Redis (redis/go-redis) with retries and provides a
// session store for the session manager.
//
//	type Config struct {
//		ConnectionURL  string        `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"`
//		RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
//		RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
//		ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
//		SessionPrefix  string        `env:"REDIS_SESSION_PREFIX" envDefault:"session:"`
//	}
//
// Connect parses the URL (redis:// or rediss://), then pings until the server
// answers or the attempts run out:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	sessions := session.NewManager(redis.NewSessionStore(client, cfg.SessionPrefix))
//
// Session keys carry the session's remaining lifetime as their Redis TTL.
// Healthcheck plugs into health.Readiness.
package redis
