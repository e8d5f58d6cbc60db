// Package response provides the mutable response accumulator handed to
// middleware and handlers, and its serializer onto an http.ResponseWriter.
//
// A Response starts as 200 OK with an empty text body. Handlers and middleware
// adjust the status, headers, cookies and body, and the dispatcher writes it
// once the pipeline settles:
//
//	resp := response.New()
//	resp.SetHeader("X-Frame-Options", "DENY")
//	resp.SetCookie("theme", "dark", cookie.WithAttr("max_age", 3600))
//	resp.SetText("Hello, Ada")
//	err := resp.Write(w)
//
// The body is either text or raw bytes, exactly one at a time. No content type
// is inferred: a response written without a Content-Type header goes out
// without one.
//
// # Errors
//
// HTTPError values carry a status code. AsHTTPError maps any error onto one,
// honouring errors that implement StatusCode() int, and Error renders it as a
// plain-text response that never leaks the cause to the client.
package response
