package service

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

// recordingStore misses every Get and remembers the keys handed to Set.
type recordingStore struct {
	keys []string
}

func (s *recordingStore) Get(ctx context.Context, key string, dest any) bool { return false }
func (s *recordingStore) Set(ctx context.Context, key string, value any, tags ...string) {
	s.keys = append(s.keys, key)
}
func (s *recordingStore) Invalidate(ctx context.Context, tag string) (int, error) { return 0, nil }

func TestListingCacheKeysDoNotCollide(t *testing.T) {
	// Each pair of calls would produce identical keys under plain separator
	// joining; the parts must stay distinguishable even when they contain
	// the separator themselves.
	tests := []struct {
		name string
		run  func(ctx context.Context, svc CatalogService)
	}{
		{
			name: "query vs sort key boundary",
			run: func(ctx context.Context, svc CatalogService) {
				svc.GetProducts(ctx, "a:x", "y", false)
				svc.GetProducts(ctx, "a", "x:y", false)
			},
		},
		{
			name: "handle vs sort key boundary",
			run: func(ctx context.Context, svc CatalogService) {
				svc.GetCollectionProducts(ctx, "summer:sale", "", false)
				svc.GetCollectionProducts(ctx, "summer", "sale:", false)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &recordingStore{}
			src := &mockCatalogSource{members: map[string][]string{
				"summer:sale": {}, "summer": {},
			}}
			svc := NewCatalogService(src, store, "https://demo.example.com", zap.NewNop())

			tt.run(context.Background(), svc)

			if len(store.keys) != 2 {
				t.Fatalf("recorded %d cache keys, want 2: %v", len(store.keys), store.keys)
			}
			if store.keys[0] == store.keys[1] {
				t.Errorf("cache key collision: both calls produced %q", store.keys[0])
			}
		})
	}
}
