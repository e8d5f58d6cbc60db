// Package router provides an ordered route registry with simple path
// templates.
//
// Templates are literal paths with <name> placeholders. A placeholder matches
// one or more characters other than '/', and the whole path must match:
//
//	r := router.New()
//	r.Get("/hello/<name>", func(req *request.Request, p handler.Params) (any, error) {
//		return "Hello, " + p.Get("name"), nil
//	})
//	r.Handle("/items/<id>", updateItem, http.MethodPut, http.MethodPatch)
//
//	route, params, ok := r.Match("GET", "/hello/Ada")
//	// ok == true, params["name"] == "Ada"
//
// Routes are tried in registration order and the first route matching both
// path and method wins. A route whose pattern matches but whose methods do
// not is skipped, so a later route may still handle the request; the router
// never answers 405 on its own.
//
// Registration panics on malformed templates (ErrInvalidPattern), repeated
// placeholder names (ErrDuplicateParam) and unknown methods (ErrInvalidMethod),
// surfacing configuration mistakes at startup.
package router
