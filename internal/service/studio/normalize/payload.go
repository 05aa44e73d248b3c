// Package normalize projects loosely typed agent results onto the studio schema.
// Nothing here returns an error: absent or wrong-typed fields take their zero value.
package normalize

import (
	"encoding/json"
	"strings"
)

// Decode turns the envelope's raw result slot into a generic value.
//
// A text payload is decoded as JSON when possible and kept as text otherwise.
// When the value is a mapping, each text field that holds an encoded mapping
// is replaced by the decoded mapping (one level only).
func Decode(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil
	}

	if text, ok := data.(string); ok {
		var inner any
		if err := json.Unmarshal([]byte(text), &inner); err == nil {
			data = inner
		}
	}

	if m, ok := data.(map[string]any); ok {
		for key, value := range m {
			text, ok := value.(string)
			if !ok {
				continue
			}
			var nested any
			if err := json.Unmarshal([]byte(text), &nested); err != nil {
				continue
			}
			if nestedMap, ok := nested.(map[string]any); ok {
				m[key] = nestedMap
			}
		}
	}

	return data
}

// Present reports whether a decoded payload is usable at all.
// Null, empty text, false and zero count as wholly absent.
func Present(data any) bool {
	switch v := data.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(v) != ""
	case bool:
		return v
	case float64:
		return v != 0
	default:
		return true
	}
}
