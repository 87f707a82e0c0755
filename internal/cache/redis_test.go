package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client, time.Minute, zap.NewNop()), mr
}

type cachedProduct struct {
	Handle string `json:"handle"`
	Title  string `json:"title"`
}

func TestSetThenGetRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	store.Set(ctx, "product:acme-cup", cachedProduct{Handle: "acme-cup", Title: "Acme Cup"}, TagProducts)

	var got cachedProduct
	if !store.Get(ctx, "product:acme-cup", &got) {
		t.Fatal("expected a cache hit")
	}
	if got.Handle != "acme-cup" || got.Title != "Acme Cup" {
		t.Errorf("cached value = %+v", got)
	}
}

func TestGetMissingKeyIsMiss(t *testing.T) {
	store, _ := newTestStore(t)

	var got cachedProduct
	if store.Get(context.Background(), "product:nope", &got) {
		t.Error("expected a cache miss")
	}
}

func TestInvalidateDropsTaggedEntries(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	store.Set(ctx, "product:cup", cachedProduct{Handle: "cup"}, TagProducts)
	store.Set(ctx, "product:shirt", cachedProduct{Handle: "shirt"}, TagProducts)
	store.Set(ctx, "collections", []string{"apparel"}, TagCollections)

	dropped, err := store.Invalidate(ctx, TagProducts)
	if err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if dropped != 2 {
		t.Errorf("dropped = %d, want 2", dropped)
	}

	var product cachedProduct
	if store.Get(ctx, "product:cup", &product) || store.Get(ctx, "product:shirt", &product) {
		t.Error("tagged entries survived invalidation")
	}

	// Entries under other tags are untouched.
	var collections []string
	if !store.Get(ctx, "collections", &collections) {
		t.Error("entry under a different tag was dropped")
	}
}

func TestInvalidateEmptyTag(t *testing.T) {
	store, _ := newTestStore(t)

	dropped, err := store.Invalidate(context.Background(), TagProducts)
	if err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if dropped != 0 {
		t.Errorf("dropped = %d, want 0", dropped)
	}
}

func TestEntryUnderMultipleTags(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	store.Set(ctx, "collection-products:apparel", []string{"shirt"}, TagCollections, TagProducts)

	if _, err := store.Invalidate(ctx, TagProducts); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}

	var got []string
	if store.Get(ctx, "collection-products:apparel", &got) {
		t.Error("entry survived invalidation of one of its tags")
	}
}

func TestEntriesExpire(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	store.Set(ctx, "product:cup", cachedProduct{Handle: "cup"}, TagProducts)
	mr.FastForward(2 * time.Minute)

	var got cachedProduct
	if store.Get(ctx, "product:cup", &got) {
		t.Error("entry survived past its TTL")
	}
}

func TestRedisFailureDegradesToMiss(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()

	var got cachedProduct
	if store.Get(context.Background(), "product:cup", &got) {
		t.Error("a broken cache must read as a miss")
	}
	// Set on a broken cache must not panic.
	store.Set(context.Background(), "product:cup", cachedProduct{Handle: "cup"}, TagProducts)
}
