// Package clientip resolves the address of the client behind proxies.
//
// Sources are tried in order and the first valid, specified address wins:
//
//  1. CF-Connecting-IP
//  2. DO-Connecting-IP
//  3. X-Forwarded-For, leftmost entry
//  4. X-Real-IP
//  5. the host part of the transport remote address
//
// When none of them parses, the raw remote address is returned unchanged, so
// the result is never empty for a live connection.
//
//	ip := clientip.GetIP(r)
//	ip = clientip.FromHeader(req.Header, req.RemoteAddr)
//
// The headers are client-controlled unless a trusted proxy overwrites them.
// Use the result for rate limiting and logging, not for authorization.
package clientip
