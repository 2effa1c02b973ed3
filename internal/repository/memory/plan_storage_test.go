package memory

import (
	"context"
	"testing"
)

func TestPlanStorage(t *testing.T) {
	ctx := context.Background()
	storage := NewPlanStorage()

	if got, err := storage.Get(ctx, "k"); err != nil || got != nil {
		t.Fatalf("Get(missing) = %q, %v", got, err)
	}

	value := []byte("v1")
	if err := storage.Put(ctx, "k", value); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	value[0] = 'x'

	got, err := storage.Get(ctx, "k")
	if err != nil || string(got) != "v1" {
		t.Fatalf("Get() = %q, %v, want stored copy", got, err)
	}
	got[0] = 'y'
	if again, _ := storage.Get(ctx, "k"); string(again) != "v1" {
		t.Errorf("Get() returned shared bytes")
	}

	if err := storage.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if got, _ := storage.Get(ctx, "k"); got != nil {
		t.Errorf("Get() after Delete = %q", got)
	}
}
