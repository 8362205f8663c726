package summary

import (
	"encoding/json"
	"strings"
)

// Normalize coerces a tool input/output value into plain JSON-safe form:
// maps and slices recurse, strings that parse as JSON are expanded, scalars
// pass through, and anything else (typed structs) takes a JSON round trip.
func Normalize(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, elem := range v {
			out[key] = Normalize(elem)
		}
		return out
	case []any:
		out := make([]any, 0, len(v))
		for _, elem := range v {
			out = append(out, Normalize(elem))
		}
		return out
	case string:
		return normalizeString(v)
	case bool, float64, float32, int, int32, int64:
		return v
	default:
		return normalizeStructured(v)
	}
}

func normalizeString(value string) any {
	trimmed := strings.TrimSpace(value)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return value
	}
	var parsed any
	if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
		return value
	}
	return Normalize(parsed)
}

// normalizeStructured converts typed values (domain response structs, typed
// maps and slices) through their JSON encoding.
func normalizeStructured(value any) any {
	raw, err := json.Marshal(value)
	if err != nil {
		return value
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return value
	}
	return Normalize(parsed)
}
