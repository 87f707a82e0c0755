package cache

import "context"

// The cache tag vocabulary. Tags label reads and serve as the invalidation
// keys webhooks fire against.
const (
	TagProducts    = "products"
	TagCollections = "collections"
)

// Store is a tag-indexed cache for serialized read results. Get reports a
// hit by returning true after unmarshaling into dest; Set records the entry
// under every given tag; Invalidate drops every entry recorded under a tag
// and returns how many were dropped.
type Store interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, tags ...string)
	Invalidate(ctx context.Context, tag string) (int, error)
}

// Noop disables caching: every Get misses, Set and Invalidate do nothing.
type Noop struct{}

func (Noop) Get(ctx context.Context, key string, dest any) bool             { return false }
func (Noop) Set(ctx context.Context, key string, value any, tags ...string) {}
func (Noop) Invalidate(ctx context.Context, tag string) (int, error)        { return 0, nil }
