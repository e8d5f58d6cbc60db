package clientip

import (
	"net"
	"net/http"
	"strings"
)

// headers are checked in order; the first valid address wins.
var headers = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP returns the client address of r.
func GetIP(r *http.Request) string {
	return FromHeader(r.Header, r.RemoteAddr)
}

// FromHeader returns the client address from proxy headers, falling back to
// the host part of remoteAddr. The raw remoteAddr is returned when nothing
// parses.
func FromHeader(h http.Header, remoteAddr string) string {
	for _, name := range headers {
		v := h.Get(name)
		if v == "" {
			continue
		}
		if name == "X-Forwarded-For" {
			v, _, _ = strings.Cut(v, ",")
		}
		if ip := normalize(v); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	if ip := normalize(host); ip != "" {
		return ip
	}
	return remoteAddr
}

func normalize(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil || ip.IsUnspecified() {
		return ""
	}
	return ip.String()
}
