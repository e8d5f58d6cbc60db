// Package mongo connects to MongoDB (mongo-driver v2) with retries and
// provides a session store for the session manager.
//
// New and NewWithDatabase retry the initial connect and ping to ride out
// MongoDB Atlas cold starts (5-8 seconds) and brief network interruptions.
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, "")
//	if err != nil {
//		return err
//	}
//	defer db.Client().Disconnect(context.Background())
//
//	coll := db.Collection(mongo.DefaultSessionCollection)
//	if err := mongo.EnsureIndexes(ctx, coll); err != nil {
//		return err
//	}
//	sessions := session.NewManager(mongo.NewSessionStore(coll))
//
// # Configuration
//
//	MONGODB_URL                 (required)
//	MONGODB_DATABASE            (default: skiff)
//	MONGODB_CONNECT_TIMEOUT     (default: 10s)
//	MONGODB_MAX_POOL_SIZE       (default: 100)
//	MONGODB_MIN_POOL_SIZE       (default: 1)
//	MONGODB_MAX_CONN_IDLE_TIME  (default: 300s)
//	MONGODB_RETRY_WRITES        (default: true)
//	MONGODB_RETRY_READS         (default: true)
//	MONGODB_RETRY_ATTEMPTS      (default: 3)
//	MONGODB_RETRY_INTERVAL      (default: 5s)
//
// EnsureIndexes adds a TTL index on expires_at, so the server drops expired
// sessions; DeleteExpired covers deployments without it.
//
// Healthcheck plugs into health.Readiness.
package mongo
