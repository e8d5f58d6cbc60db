package router

import (
	"fmt"
	"regexp"
	"strings"
)

// placeholder matches a named segment such as <name>.
var placeholder = regexp.MustCompile(`<(\w+)>`)

// compile turns a path template into an anchored regexp. Each <name>
// placeholder captures one or more non-slash characters; literal text is
// matched verbatim.
func compile(pattern string) (*regexp.Regexp, []string, error) {
	if !strings.HasPrefix(pattern, "/") {
		return nil, nil, fmt.Errorf("%w: '%s' must start with '/'", ErrInvalidPattern, pattern)
	}

	var (
		b     strings.Builder
		names []string
		last  int
	)
	b.WriteByte('^')

	for _, loc := range placeholder.FindAllStringSubmatchIndex(pattern, -1) {
		literal := pattern[last:loc[0]]
		if strings.ContainsAny(literal, "<>") {
			return nil, nil, fmt.Errorf("%w: malformed placeholder in '%s'", ErrInvalidPattern, pattern)
		}

		name := pattern[loc[2]:loc[3]]
		for _, n := range names {
			if n == name {
				return nil, nil, fmt.Errorf("%w: '%s' in '%s'", ErrDuplicateParam, name, pattern)
			}
		}
		names = append(names, name)

		b.WriteString(regexp.QuoteMeta(literal))
		b.WriteString("(?P<")
		b.WriteString(name)
		b.WriteString(">[^/]+)")
		last = loc[1]
	}

	tail := pattern[last:]
	if strings.ContainsAny(tail, "<>") {
		return nil, nil, fmt.Errorf("%w: malformed placeholder in '%s'", ErrInvalidPattern, pattern)
	}
	b.WriteString(regexp.QuoteMeta(tail))
	b.WriteByte('$')

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, nil, fmt.Errorf("%w: '%s': %w", ErrInvalidPattern, pattern, err)
	}
	return re, names, nil
}
