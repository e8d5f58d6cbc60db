// Package logger builds the slog loggers used across skiff and defines the
// attribute keys every component logs with.
//
// # Basic Usage
//
//	log := logger.New(
//		logger.WithDevelopment("myapp"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	log.Info("server started",
//		logger.Component("server"),
//		slog.String("addr", addr),
//	)
//
// NewFromConfig picks a preset from APP_ENV (development, staging,
// production) and applies LOG_LEVEL and LOG_FORMAT overrides.
//
// # Context-Aware Logging
//
// Extractors add attributes taken from the context passed to the *Context
// logging methods:
//
//	log := logger.New(
//		logger.WithProduction("myapp"),
//		logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	log.InfoContext(ctx, "Processing request")
//
// # Attribute Helpers
//
// Helpers return an empty slog.Attr for nil errors and empty identifiers, so
// they can be passed unconditionally:
//
//	log.Info("request completed",
//		logger.Method("GET"),
//		logger.Path("/hello/Ada"),
//		logger.StatusCode(200),
//		logger.Outcome("route"),
//		logger.Latency(time.Since(start)),
//		logger.RequestID(id),
//		logger.Error(err),
//	)
//
// Library packages default to Discard and accept a logger through their
// WithLogger option.
package logger
