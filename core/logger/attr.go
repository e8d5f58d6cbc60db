package logger

import (
	"log/slog"
	"time"
)

// Helpers below return the zero Attr for nil errors and empty identifiers.
// slog drops zero attributes, so they can be passed unconditionally.

// Error puts err under "error".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component names the package or subsystem emitting the record.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Request pipeline

func Method(method string) slog.Attr {
	return slog.String("method", method)
}

func Path(path string) slog.Attr {
	return slog.String("path", path)
}

// Route is the pattern of the matched route, not the request path.
func Route(pattern string) slog.Attr {
	if pattern == "" {
		return slog.Attr{}
	}
	return slog.String("route", pattern)
}

// Outcome tells how the dispatcher settled a request: route, static,
// not_found, middleware or failed.
func Outcome(outcome string) slog.Attr {
	return slog.String("outcome", outcome)
}

func StatusCode(code int) slog.Attr {
	return slog.Int("status_code", code)
}

func Latency(d time.Duration) slog.Attr {
	return slog.Duration("latency", d)
}

func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// RemoteAddr is the transport peer address as reported by the server.
func RemoteAddr(addr string) slog.Attr {
	if addr == "" {
		return slog.Attr{}
	}
	return slog.String("remote_addr", addr)
}

// BytesOut is the size of the response body.
func BytesOut(n int) slog.Attr {
	return slog.Int("bytes_out", n)
}

// Sessions

// SessionCount reports how many sessions an operation touched.
func SessionCount(n int64) slog.Attr {
	return slog.Int64("sessions", n)
}

// Failures

// StackTrace attaches a stack captured at the failure site.
func StackTrace(stack []byte) slog.Attr {
	if len(stack) == 0 {
		return slog.Attr{}
	}
	return slog.String("stack", string(stack))
}
