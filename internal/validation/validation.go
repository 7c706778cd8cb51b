// Package validation inspects raw request payloads against per-entity field
// rules and produces human-readable violation lists. Validators never panic
// on malformed values; a structural surprise while walking the payload is
// reported as a generic violation instead.
package validation

import (
	"unicode/utf8"
)

// present reports whether a field carries a usable value. Empty strings,
// explicit nulls, false and numeric zero all count as absent, matching how
// the API's clients omit fields.
func present(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case float64:
		return val != 0
	case int:
		return val != 0
	default:
		return true
	}
}

// stringValue extracts a string field. ok is false when the value is present
// but not a string.
func stringValue(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// lengthIn checks a string field's rune count against inclusive bounds.
// Non-string values fail the check outright.
func lengthIn(v any, min, max int) bool {
	s, ok := stringValue(v)
	if !ok {
		return false
	}
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}

// isSequence reports whether the value decoded from JSON is an array.
func isSequence(v any) bool {
	_, ok := v.([]any)
	if ok {
		return true
	}
	_, ok = v.([]string)
	return ok
}

// numericValue extracts a numeric field. JSON numbers decode as float64;
// numeric strings are also accepted, matching the lenient behavior clients
// rely on for form-sourced values.
func numericValue(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case string:
		return parseNumeric(val)
	default:
		return 0, false
	}
}

func parseNumeric(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	var n float64
	var seenDigit bool
	for i, r := range s {
		if r == '-' && i == 0 {
			continue
		}
		if r < '0' || r > '9' {
			return 0, false
		}
		seenDigit = true
		n = n*10 + float64(r-'0')
	}
	if !seenDigit {
		return 0, false
	}
	if s[0] == '-' {
		n = -n
	}
	return n, true
}
