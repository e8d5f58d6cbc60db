// Package server runs an http.Handler with production timeouts and graceful
// shutdown.
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, dispatcher))
//	return g.Wait()
//
// Run serves until the context is canceled, then calls Stop, which waits up to
// the shutdown timeout for in-flight requests. Start and Stop can also be used
// directly.
//
// Defaults: 15s read and write timeouts, 60s idle timeout, 30s shutdown
// timeout and 1 MB of request headers. Config reads SERVER_ADDR,
// SERVER_READ_TIMEOUT, SERVER_WRITE_TIMEOUT, SERVER_IDLE_TIMEOUT,
// SERVER_SHUTDOWN_TIMEOUT and SERVER_MAX_HEADER_BYTES.
package server
