package normalize

import "math"

// Field projection helpers. Each reads one key and falls back to the zero value
// when the key is missing or holds the wrong JSON type.

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func num(m map[string]any, key string) int {
	f, ok := m[key].(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	if f < math.MinInt32 {
		return math.MinInt32
	}
	return int(f)
}

// count is num floored at zero
func count(m map[string]any, key string) int {
	return max(num(m, key), 0)
}

// strs accepts only a literal array; non-string items are skipped
func strs(m map[string]any, key string) []string {
	items, ok := m[key].([]any)
	out := make([]string, 0, len(items))
	if !ok {
		return out
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
