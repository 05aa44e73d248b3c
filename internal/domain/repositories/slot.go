package repositories

import (
	"context"
	"errors"
)

// ErrSlotEmpty is returned by Slot.Read when the key has never been written
var ErrSlotEmpty = errors.New("slot empty")

// Slot is a durable, application-scoped key-value entry.
// Values are overwritten wholesale; there are no partial updates.
type Slot interface {
	// Read returns the stored bytes, or ErrSlotEmpty
	Read(ctx context.Context, key string) ([]byte, error)

	// Write replaces the stored bytes
	Write(ctx context.Context, key string, data []byte) error
}
