package dto

// Helpers for pulling typed values out of raw JSON payloads after the field
// validators have accepted them.

// PayloadString returns the string at key, or "" when absent or mistyped.
func PayloadString(payload map[string]any, key string) string {
	s, _ := payload[key].(string)
	return s
}

// PayloadStringPtr returns a pointer to the string at key, or nil when the
// key is absent. Distinguishes "field omitted" from "field empty" for
// partial updates.
func PayloadStringPtr(payload map[string]any, key string) *string {
	v, ok := payload[key]
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

// PayloadStrings returns the string slice at key; non-string entries are
// skipped.
func PayloadStrings(payload map[string]any, key string) []string {
	switch v := payload[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// PayloadBool returns the bool at key, or false when absent or mistyped.
func PayloadBool(payload map[string]any, key string) bool {
	b, _ := payload[key].(bool)
	return b
}

// PayloadInt returns the integer at key. JSON numbers decode as float64;
// numeric strings are also accepted.
func PayloadInt(payload map[string]any, key string) int {
	switch v := payload[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		n := 0
		for _, r := range v {
			if r < '0' || r > '9' {
				return 0
			}
			n = n*10 + int(r-'0')
		}
		return n
	default:
		return 0
	}
}
