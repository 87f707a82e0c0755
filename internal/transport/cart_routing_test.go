package transport

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"storefront-adapter/internal/cache"
	"storefront-adapter/internal/domain"
	"storefront-adapter/internal/service"
	"storefront-adapter/internal/source"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Cart ids are gids with slashes, so they travel percent-encoded in the
// path. This wires the real fixture through the real router to make sure a
// freshly issued id round-trips through every cart route.
func TestCartRoutesAcceptEncodedCartIDs(t *testing.T) {
	fixture := source.NewFixture()
	catalog := service.NewCatalogService(fixture, cache.Noop{}, "https://demo.example.com", zap.NewNop())
	carts := service.NewCartService(fixture, zap.NewNop())
	router := chi.NewRouter()
	NewStorefrontHandler(catalog, carts, zap.NewNop()).RegisterRoutes(router)

	w := doRequest(router, http.MethodPost, "/api/cart", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("create cart: got status %d, want %d", w.Code, http.StatusCreated)
	}

	var cart domain.Cart
	if err := json.Unmarshal(w.Body.Bytes(), &cart); err != nil {
		t.Fatalf("decoding created cart: %v", err)
	}
	if !strings.Contains(cart.ID, "/") {
		t.Fatalf("expected a gid cart id with slashes, got %q", cart.ID)
	}

	cartPath := "/api/cart/" + url.PathEscape(cart.ID)

	w = doRequest(router, http.MethodGet, cartPath, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get cart by encoded id: got status %d, want %d", w.Code, http.StatusOK)
	}

	addBody := `{"lines":[{"merchandiseId":"gid://shopify/ProductVariant/11","quantity":2}]}`
	w = doRequest(router, http.MethodPost, cartPath+"/lines", addBody)
	if w.Code != http.StatusOK {
		t.Fatalf("add lines by encoded id: got status %d, want %d", w.Code, http.StatusOK)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &cart); err != nil {
		t.Fatalf("decoding cart after add: %v", err)
	}
	if cart.TotalQuantity != 2 {
		t.Errorf("total quantity after add: got %d, want 2", cart.TotalQuantity)
	}
	if len(cart.Lines) != 1 {
		t.Fatalf("expected one cart line, got %d", len(cart.Lines))
	}

	updateBody := `{"lines":[{"id":"` + cart.Lines[0].ID + `","merchandiseId":"gid://shopify/ProductVariant/11","quantity":3}]}`
	w = doRequest(router, http.MethodPut, cartPath+"/lines", updateBody)
	if w.Code != http.StatusOK {
		t.Fatalf("update lines by encoded id: got status %d, want %d", w.Code, http.StatusOK)
	}

	removeBody := `{"lineIds":["` + cart.Lines[0].ID + `"]}`
	w = doRequest(router, http.MethodDelete, cartPath+"/lines", removeBody)
	if w.Code != http.StatusOK {
		t.Fatalf("remove lines by encoded id: got status %d, want %d", w.Code, http.StatusOK)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &cart); err != nil {
		t.Fatalf("decoding cart after remove: %v", err)
	}
	if cart.TotalQuantity != 0 {
		t.Errorf("total quantity after remove: got %d, want 0", cart.TotalQuantity)
	}
}
