package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/skiff/app"
	"github.com/dmitrymomot/skiff/core/config"
	"github.com/dmitrymomot/skiff/core/health"
	"github.com/dmitrymomot/skiff/core/logger"
	"github.com/dmitrymomot/skiff/core/static"
	"github.com/dmitrymomot/skiff/integration/database/mongo"
	"github.com/dmitrymomot/skiff/integration/database/pg"
	"github.com/dmitrymomot/skiff/integration/database/redis"
	"github.com/dmitrymomot/skiff/middleware"
	"github.com/dmitrymomot/skiff/pkg/ratelimiter"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg Config
	config.MustLoad(&cfg) // panic on error

	log := logger.NewFromConfig(cfg.App.Log)
	logger.SetAsDefault(log)

	opts := []app.Option{app.WithLogger(log)}
	var checks []health.Check

	// Relational database for the notes demo
	if cfg.PostgresURL != "" {
		var dbCfg pg.Config
		config.MustLoad(&dbCfg)

		db, err := pg.Open(ctx, dbCfg, pg.WithLogger(log))
		if err != nil {
			log.Error("Failed to connect to database", logger.Component("database"), logger.Error(err))
			os.Exit(1)
		}
		if err := db.Execute(ctx, createNotesTable, nil, true); err != nil {
			log.Error("Failed to prepare notes table", logger.Component("database"), logger.Error(err))
			os.Exit(1)
		}

		opts = append(opts, app.WithDB(db))
		checks = append(checks, pg.Healthcheck(db))
	}

	// Session storage: redis, then mongo, then process memory
	switch {
	case cfg.RedisURL != "":
		var redisCfg redis.Config
		config.MustLoad(&redisCfg)

		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			log.Error("Failed to connect to redis", logger.Component("redis"), logger.Error(err))
			os.Exit(1)
		}
		defer client.Close()

		opts = append(opts, app.WithSessionStore(redis.NewSessionStore(client, redisCfg.SessionPrefix)))
		checks = append(checks, redis.Healthcheck(client))

	case cfg.MongoURL != "":
		var mongoCfg mongo.Config
		config.MustLoad(&mongoCfg)

		client, err := mongo.New(ctx, mongoCfg)
		if err != nil {
			log.Error("Failed to connect to mongo", logger.Component("mongo"), logger.Error(err))
			os.Exit(1)
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		coll := client.Database(mongoCfg.Database).Collection(mongo.DefaultSessionCollection)
		if err := mongo.EnsureIndexes(ctx, coll); err != nil {
			log.Error("Failed to create session indexes", logger.Component("mongo"), logger.Error(err))
			os.Exit(1)
		}

		opts = append(opts, app.WithSessionStore(mongo.NewSessionStore(coll)))
		checks = append(checks, mongo.Healthcheck(client))
	}

	// Per-client token bucket
	limiterStore := ratelimiter.NewMemoryStore(ratelimiter.WithMemoryStoreLogger(log))
	limiter, err := ratelimiter.NewBucket(limiterStore, cfg.RateLimit)
	if err != nil {
		log.Error("Invalid rate limit configuration", logger.Component("ratelimit"), logger.Error(err))
		os.Exit(1)
	}
	opts = append(opts, app.WithWorker(limiterStore.Run))

	a, err := app.NewFromConfig(cfg.App, opts...)
	if err != nil {
		log.Error("Failed to create application", logger.Component("app"), logger.Error(err))
		os.Exit(1)
	}

	a.Use(
		middleware.RequestID(),
		middleware.ClientIP(),
		middleware.SecurityHeaders(),
		middleware.RateLimit(middleware.RateLimitConfig{
			Limiter:    limiter,
			SetHeaders: true,
			Skip:       isHealthCheck,
		}),
	)

	// Health check endpoints
	a.Get("/live", health.Liveness)
	a.Get("/ready", health.Readiness(log, checks...))

	a.Get("/robots.txt", static.File("static/robots.txt", "text/plain; charset=utf-8"))
	a.Get("/", indexHandler(a))
	a.Get("/hello/<name>", helloHandler)
	a.Route("/echo", echoHandler, http.MethodGet, http.MethodPost)
	a.Get("/counter", counterHandler)
	a.Post("/counter/reset", resetCounterHandler)
	if a.DB() != nil {
		a.Get("/notes", listNotesHandler(a.DB()))
		a.Post("/notes", createNoteHandler(a.DB()))
	}

	if err := a.Run(ctx); err != nil {
		log.Error("Failed to run server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	log.Info("Application stopped")
}
