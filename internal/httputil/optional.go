package httputil

import (
	"bytes"
	"encoding/json"
)

// Optional records whether a JSON field was sent at all, so a PATCH body can
// tell a missing field from an explicit null or empty value.
type Optional[T any] struct {
	Present bool
	Value   *T // nil when the field was JSON null
}

// UnmarshalJSON is only called when the field is present
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// Set reports whether the field carried a non-null value
func (o Optional[T]) Set() bool {
	return o.Present && o.Value != nil
}
