// Package health provides route handlers for service health probes.
//
//   - Liveness: the process is serving, no dependency checks
//   - Readiness: every dependency check passes, otherwise 503
//   - NoContent: 204 for cheap pings
//
//	r.Get("/health/live", health.Liveness)
//	r.Get("/health/ready", health.Readiness(log, pg.Healthcheck(db)))
//	r.Get("/ping", health.NoContent)
package health
