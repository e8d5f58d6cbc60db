// Package request turns a raw transport request into the Request value seen
// by middleware and handlers.
//
// Build splits the target into path and query, decodes the query string into
// ordered multi-values, parses the Cookie header and, for POST requests only,
// reads exactly Content-Length bytes of body. A form-encoded body (or one sent
// without a content type) is decoded into Form:
//
//	req, err := request.Build(ctx, request.Input{
//		Method: "POST",
//		Target: "/submit",
//		Header: http.Header{"Content-Length": {"11"}},
//		Body:   strings.NewReader("a=1&a=2&b=x"),
//	})
//	// req.Form.All("a") == []string{"1", "2"}
//
// Parsing is permissive. A missing or malformed Content-Length reads nothing,
// undecodable query pairs are skipped and a malformed Cookie header yields the
// cookies that could be parsed. The only errors are ErrBodyTooLarge, when the
// declared length exceeds the configured maximum, and ErrReadBody.
package request
