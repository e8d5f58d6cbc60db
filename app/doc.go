// Package app wires the framework into a single application object.
//
// An App owns a router, a dispatcher with its middleware chain, a session
// manager, a template renderer, a static file fallback, an HTTP server and,
// optionally, a PostgreSQL handle:
//
//	a, err := app.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	a.Get("/hello/<name>", func(req *request.Request, p handler.Params) (any, error) {
//		return "Hello, " + p["name"], nil
//	})
//	if err := a.Run(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// New reads Config from the environment (and .env). NewFromConfig takes an
// explicit Config, which is handy in tests. Run blocks until ctx is canceled
// and then shuts the server down gracefully.
package app
