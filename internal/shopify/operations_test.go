package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// capturingServer records the variables of the last request and answers
// with the given data payload.
func capturingServer(data map[string]any, vars *map[string]any) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Variables map[string]any `json:"variables"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		*vars = body.Variables
		json.NewEncoder(w).Encode(map[string]any{"data": data})
	}))
}

func TestProductsSortKeyMappedToUpstreamEnum(t *testing.T) {
	var vars map[string]any
	srv := capturingServer(map[string]any{"products": map[string]any{"edges": []any{}}}, &vars)
	defer srv.Close()
	client := newTestClient(srv, "t")

	tests := []struct {
		sortKey string
		want    string
	}{
		{"title", "TITLE"},
		{"PRICE", "PRICE"},
		{"created-at", "CREATED_AT"},
		{"best-selling", "BEST_SELLING"},
	}
	for _, tt := range tests {
		if _, err := client.Products(context.Background(), "", tt.sortKey, false); err != nil {
			t.Fatalf("Products(sortKey=%q): %v", tt.sortKey, err)
		}
		if got := vars["sortKey"]; got != tt.want {
			t.Errorf("sortKey %q sent upstream as %v, want %q", tt.sortKey, got, tt.want)
		}
	}
}

func TestProductsDropUnrecognizedSortKey(t *testing.T) {
	var vars map[string]any
	srv := capturingServer(map[string]any{"products": map[string]any{"edges": []any{}}}, &vars)
	defer srv.Close()
	client := newTestClient(srv, "t")

	for _, sortKey := range []string{"bogus-key", "", "titles"} {
		if _, err := client.Products(context.Background(), "", sortKey, false); err != nil {
			t.Fatalf("Products(sortKey=%q): %v", sortKey, err)
		}
		if got, present := vars["sortKey"]; present {
			t.Errorf("sortKey %q leaked onto the wire as %v", sortKey, got)
		}
	}
}

func TestCollectionProductsSortKeyMapping(t *testing.T) {
	var vars map[string]any
	srv := capturingServer(map[string]any{
		"collection": map[string]any{"products": map[string]any{"edges": []any{}}},
	}, &vars)
	defer srv.Close()
	client := newTestClient(srv, "t")

	if _, err := client.CollectionProducts(context.Background(), "apparel", "created-at", false); err != nil {
		t.Fatalf("CollectionProducts: %v", err)
	}
	if got := vars["sortKey"]; got != "CREATED" {
		t.Errorf("collection sortKey sent upstream as %v, want CREATED", got)
	}

	if _, err := client.CollectionProducts(context.Background(), "apparel", "bogus-key", true); err != nil {
		t.Fatalf("CollectionProducts: %v", err)
	}
	if got, present := vars["sortKey"]; present {
		t.Errorf("unrecognized collection sortKey leaked onto the wire as %v", got)
	}
	if got := vars["reverse"]; got != true {
		t.Errorf("reverse sent upstream as %v, want true", got)
	}
}
