// Package dispatcher implements the request pipeline that turns one inbound
// request into one response.
//
// Every request goes through the same states:
//
//	build request -> resolve session -> run middleware -> match route
//	    -> handler | static fallback | 404 -> send response
//
// A middleware returning a response settles the request immediately, skipping
// routing and the static fallback. When no route matches, the static fallback
// is consulted, and when it finds nothing the response becomes 404 "Not Found".
// The session cookie issued while resolving the session is kept on handler
// results written into the default response and on 404s.
//
// Errors returned by any stage and panics raised by middleware or handlers
// are caught by a single error boundary, logged and converted into an error
// response: 500 by default, or the status reported by an error implementing
// StatusCode() int (e.g. 413 for an oversized body).
//
//	r := router.New()
//	r.Get("/hello/<name>", func(req *request.Request, p handler.Params) (any, error) {
//		return "Hello, " + p.Get("name"), nil
//	})
//
//	d := dispatcher.New(r,
//		dispatcher.WithSessions(session.NewManager(nil)),
//		dispatcher.WithStatic(static.New("static")),
//		dispatcher.WithLogger(log),
//	)
//	http.ListenAndServe(":8080", d)
//
// After a request settles, the session is handed to session.Manager.Save so
// persistent stores see handler changes. Concurrency is unbounded unless
// WithMaxConcurrent is set; waiting requests whose context ends get 503.
package dispatcher
