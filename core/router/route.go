package router

import (
	"net/url"
	"regexp"
	"slices"

	"github.com/dmitrymomot/skiff/core/handler"
)

// Route is a registered (methods, pattern, handler) entry.
type Route struct {
	Pattern string
	Methods []string
	Params  []string
	Handler handler.HandlerFunc

	re      *regexp.Regexp
	methods map[string]struct{}
}

// Allows reports whether the route accepts method.
func (r *Route) Allows(method string) bool {
	_, ok := r.methods[method]
	return ok
}

// MatchPath reports whether the escaped path matches the route pattern and
// returns the captured parameters, percent-decoded. A parameter with a bad
// escape is returned as sent.
func (r *Route) MatchPath(path string) (handler.Params, bool) {
	m := r.re.FindStringSubmatch(path)
	if m == nil {
		return nil, false
	}
	params := make(handler.Params, len(r.Params))
	for i, name := range r.re.SubexpNames() {
		if i > 0 && name != "" {
			params[name] = unescape(m[i])
		}
	}
	return params, true
}

func unescape(s string) string {
	v, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return v
}

// Regexp returns the compiled pattern.
func (r *Route) Regexp() *regexp.Regexp {
	return r.re
}

func newRoute(pattern string, h handler.HandlerFunc, methods []string) (*Route, error) {
	re, params, err := compile(pattern)
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(methods))
	list := make([]string, 0, len(methods))
	for _, m := range methods {
		if _, ok := set[m]; ok {
			continue
		}
		set[m] = struct{}{}
		list = append(list, m)
	}
	slices.Sort(list)

	return &Route{
		Pattern: pattern,
		Methods: list,
		Params:  params,
		Handler: h,
		re:      re,
		methods: set,
	}, nil
}
