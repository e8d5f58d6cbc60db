package request

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrymomot/skiff/core/cookie"
)

const formContentType = "application/x-www-form-urlencoded"

// Input is the raw request as delivered by the transport.
type Input struct {
	Method     string
	Target     string // path with optional query, e.g. "/search?q=go"
	Header     http.Header
	Body       io.Reader
	Host       string
	RemoteAddr string
}

// Build parses in into a Request. Malformed input is handled permissively:
// an absent or unparsable Content-Length reads no body and bad query pairs
// are dropped. Only an oversized body or a failing transport read is an error.
func Build(ctx context.Context, in Input, opts ...Option) (*Request, error) {
	cfg := applyOptions(opts)

	header := in.Header.Clone()
	if header == nil {
		header = make(http.Header)
	}

	rawPath, rawQuery, _ := strings.Cut(in.Target, "?")
	rawQuery, _, _ = strings.Cut(rawQuery, "#")

	host := in.Host
	if host == "" {
		host = header.Get("Host")
	}

	req := &Request{
		Method:     strings.ToUpper(in.Method),
		Path:       escapedPath(rawPath),
		RawQuery:   rawQuery,
		Host:       host,
		RemoteAddr: in.RemoteAddr,
		Query:      ParseValues(rawQuery),
		Header:     header,
		Cookies:    cookie.Parse(strings.Join(header.Values("Cookie"), "; ")),
		Form:       Values{},
		ctx:        ctx,
	}

	if req.Method != http.MethodPost {
		return req, nil
	}

	length := contentLength(header)
	if length > cfg.MaxBodySize {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrBodyTooLarge, length, cfg.MaxBodySize)
	}

	body, err := readBody(in.Body, length)
	if err != nil {
		return nil, err
	}
	req.Body = body

	if isFormEncoded(header.Get("Content-Type")) {
		req.Form = ParseValues(string(body))
	}

	return req, nil
}

// FromHTTP builds a Request from a net/http request.
func FromHTTP(r *http.Request, opts ...Option) (*Request, error) {
	header := r.Header.Clone()
	if header == nil {
		header = make(http.Header)
	}
	// net/http moves the declared length out of the header map for some requests.
	if header.Get("Content-Length") == "" && r.ContentLength > 0 {
		header.Set("Content-Length", strconv.FormatInt(r.ContentLength, 10))
	}

	return Build(r.Context(), Input{
		Method:     r.Method,
		Target:     r.URL.RequestURI(),
		Header:     header,
		Body:       r.Body,
		Host:       r.Host,
		RemoteAddr: r.RemoteAddr,
	}, opts...)
}

// escapedPath keeps the path as sent so that an encoded "/" never acts as a
// segment separator during matching.
func escapedPath(raw string) string {
	if raw == "" {
		return "/"
	}
	return raw
}

// contentLength returns the declared body length, or 0 when it is absent,
// malformed or negative.
func contentLength(h http.Header) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(h.Get("Content-Length")), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// readBody reads up to length bytes. A body shorter than declared is
// returned as is.
func readBody(r io.Reader, length int64) ([]byte, error) {
	if r == nil || length == 0 {
		return []byte{}, nil
	}
	body, err := io.ReadAll(io.LimitReader(r, length))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadBody, err)
	}
	return body, nil
}

func isFormEncoded(contentType string) bool {
	if strings.TrimSpace(contentType) == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == formContentType
}
