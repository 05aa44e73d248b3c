package memory

import (
	"context"
	"errors"
	"testing"

	"campaigner/internal/domain/repositories"
)

func TestSlotRepository(t *testing.T) {
	ctx := context.Background()
	r := NewSlotRepository()

	if _, err := r.Read(ctx, "k"); !errors.Is(err, repositories.ErrSlotEmpty) {
		t.Fatalf("Read on empty = %v, want ErrSlotEmpty", err)
	}

	in := []byte(`[1]`)
	if err := r.Write(ctx, "k", in); err != nil {
		t.Fatalf("Write: %v", err)
	}
	in[0] = 'x'

	got, err := r.Read(ctx, "k")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != `[1]` {
		t.Errorf("Read = %q, want [1] (write must copy)", got)
	}

	if err := r.Write(ctx, "k", []byte(`[]`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got, _ := r.Read(ctx, "k"); string(got) != `[]` {
		t.Errorf("overwrite: Read = %q", got)
	}
}
