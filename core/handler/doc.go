// Package handler defines the function types the dispatch pipeline is built
// from: route handlers, pre-routing middleware and the ordered middleware chain.
//
// Route handlers receive the request and the named path parameters and return
// a value for the response body:
//
//	func hello(req *request.Request, p handler.Params) (any, error) {
//		return "Hello, " + p.Get("name"), nil
//	}
//
// Returning a *response.Response gives the handler full control over status,
// headers and cookies.
//
// Middleware runs before routing, in registration order, exactly once per
// request. Returning a response short-circuits the pipeline:
//
//	var chain handler.Chain
//	chain.Use(func(req *request.Request, resp *response.Response) (*response.Response, error) {
//		if req.Header.Get("X-Api-Key") == "" {
//			return response.TextWithStatus("Forbidden", http.StatusForbidden), nil
//		}
//		return nil, nil
//	})
package handler
