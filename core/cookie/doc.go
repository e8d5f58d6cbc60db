// Package cookie models Set-Cookie directives and parses Cookie request headers.
//
// A directive is built from a name, a value and functional options:
//
//	c := cookie.New("SESSION_ID", id, cookie.WithPath("/"))
//	c.String() // "SESSION_ID=<id>; Path=/"
//
// Attributes may also be given by loose key name. Internal underscore keys are
// rewritten to their hyphenated wire form:
//
//	cookie.New("theme", "dark",
//		cookie.WithAttr("max_age", 3600),   // Max-Age=3600
//		cookie.WithAttr("http_only", true), // HttpOnly
//	)
//
// Parse turns a raw Cookie header into a map and never fails: an absent header
// yields an empty map and malformed pairs are skipped.
package cookie
