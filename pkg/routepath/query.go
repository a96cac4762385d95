package routepath

import "strings"

// Query holds parsed query-string values. A value is a string, a []string
// (when the decoded value contains a comma) or true (for valueless keys).
type Query map[string]any

// ParseQuery parses a query string without the leading "?".
//
// Values are URI-decoded. Decoded values that contain a comma are split into
// a []string, even when the comma was part of free text. Keys without a value
// map to true. Empty segments are skipped.
func ParseQuery(qs string) Query {
	q := Query{}
	if qs == "" {
		return q
	}
	for _, segment := range strings.Split(qs, "&") {
		if segment == "" {
			continue
		}
		key, raw, _ := strings.Cut(segment, "=")
		if raw == "" {
			q[key] = true
			continue
		}
		val := decode(raw)
		if strings.Contains(val, ",") {
			q[key] = strings.Split(val, ",")
		} else {
			q[key] = val
		}
	}
	return q
}

// Has reports whether key is present.
func (q Query) Has(key string) bool {
	_, ok := q[key]
	return ok
}

// Get returns the value for key as a string. Lists return their first
// element; boolean keys return "".
func (q Query) Get(key string) string {
	switch v := q[key].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

// Strings returns the value for key as a list.
func (q Query) Strings(key string) []string {
	switch v := q[key].(type) {
	case string:
		return []string{v}
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	}
	return nil
}
