// Package static serves files from a directory as the last step before a 404.
//
// A Fallback is consulted by the dispatcher only when no route matched. When
// the request path starts with the configured prefix (default "/static/"),
// the remainder is resolved inside the root directory (default "static") and,
// if it names a regular file, the file contents become the response body:
//
//	fb := static.New("public", static.WithPrefix("/assets/"))
//	ok, err := fb.Serve(req, resp)
//
// Files are opened through os.Root, so ".." segments and symlinks pointing
// outside the root never resolve. Such requests, like missing files and
// directories, report no match and end in a 404. The body is sent as raw
// bytes with status 200 and no inferred content type.
//
// File serves one fixed file from a route:
//
//	r.Get("/favicon.ico", static.File("public/favicon.ico", "image/x-icon"))
package static
