// Package onboarding implements the draft/publish workflow: per-role draft
// schemas with strict and deep-partial validation, draft sanitization, slug
// generation and the publish/finalize transition that turns a complete draft
// into durable domain documents.
package onboarding

// Sanitize recursively prunes empty values from a draft payload: empty
// strings, empty arrays, empty objects and nulls are dropped, including
// objects and arrays that become empty once their members are pruned.
// Numbers and booleans always survive, zero and false included. The input
// map is not modified.
func Sanitize(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		if cleaned, keep := sanitizeValue(v); keep {
			out[k] = cleaned
		}
	}
	return out
}

func sanitizeValue(v any) (any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case string:
		if t == "" {
			return nil, false
		}
		return t, true
	case map[string]any:
		m := Sanitize(t)
		if len(m) == 0 {
			return nil, false
		}
		return m, true
	case []any:
		arr := make([]any, 0, len(t))
		for _, item := range t {
			if cleaned, keep := sanitizeValue(item); keep {
				arr = append(arr, cleaned)
			}
		}
		if len(arr) == 0 {
			return nil, false
		}
		return arr, true
	default:
		return v, true
	}
}
