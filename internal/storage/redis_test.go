package storage_test

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/inventory-orders/internal/models"
	"github.com/rogerio-castellano/inventory-orders/internal/storage"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestRedisBackend_RoundTrip(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	prefix := "inventory-test:"
	client.Del(ctx, prefix+"produtos")
	t.Cleanup(func() { client.Del(ctx, prefix+"produtos") })

	coll := storage.NewCollection[models.Product](storage.NewRedisBackend(client, prefix), "produtos")

	empty, err := coll.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty collection, got %d records", len(empty))
	}

	if err := coll.Save(ctx, sampleProducts()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := coll.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Widget" {
		t.Errorf("unexpected records: %+v", got)
	}
}
