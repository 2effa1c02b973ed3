package redis

import (
	"context"
	"os"
	"testing"
)

// Requires a running Redis; set TEST_REDIS_ADDR (e.g. localhost:6379) to run
func TestPlanStorage(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()

	rdb, err := Connect(ctx, addr)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	t.Cleanup(func() { _ = rdb.Close() })

	storage := NewPlanStorage(rdb, "test_"+t.Name()+"_")
	t.Cleanup(func() { _ = storage.Delete(context.Background(), "trim-plan-v2") })

	if got, err := storage.Get(ctx, "trim-plan-v2"); err != nil || got != nil {
		t.Fatalf("Get(missing) = %q, %v", got, err)
	}
	if err := storage.Put(ctx, "trim-plan-v2", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if got, err := storage.Get(ctx, "trim-plan-v2"); err != nil || string(got) != `{"a":1}` {
		t.Fatalf("Get() = %q, %v", got, err)
	}
	if err := storage.Delete(ctx, "trim-plan-v2"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
}

func TestConnect_RequiresAddress(t *testing.T) {
	if _, err := Connect(context.Background(), ""); err == nil {
		t.Errorf("Connect(\"\") error = nil")
	}
}
