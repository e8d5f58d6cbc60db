package request

import "net/url"

// Values maps a key to its values in the order they appeared.
type Values map[string][]string

// Get returns the first value for key, or an empty string.
func (v Values) Get(key string) string {
	if vs := v[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// All returns every value for key.
func (v Values) All(key string) []string {
	return v[key]
}

// Has reports whether key is present.
func (v Values) Has(key string) bool {
	_, ok := v[key]
	return ok
}

// ParseValues decodes an application/x-www-form-urlencoded string.
// Pairs separated by '&' are split on the first '='. Pairs with invalid
// percent-escapes are skipped instead of failing the whole input.
func ParseValues(s string) Values {
	// ParseQuery keeps every well-formed pair and only reports the first bad one.
	q, _ := url.ParseQuery(s)
	if q == nil {
		return Values{}
	}
	return Values(q)
}
