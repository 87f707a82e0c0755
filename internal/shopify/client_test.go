package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestClient(srv *httptest.Server, token string) *Client {
	return &Client{
		endpoint: srv.URL,
		token:    token,
		http:     &http.Client{Timeout: 5 * time.Second},
		logger:   zap.NewNop(),
	}
}

func TestDoSendsCredentialAndContentType(t *testing.T) {
	var gotToken, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Shopify-Storefront-Access-Token")
		gotContentType = r.Header.Get("Content-Type")
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{}})
	}))
	defer srv.Close()

	client := newTestClient(srv, "secret-token")
	if _, err := client.Do(context.Background(), "query { shop { name } }"); err != nil {
		t.Fatalf("Do: %v", err)
	}

	if gotToken != "secret-token" {
		t.Errorf("token header = %q", gotToken)
	}
	if gotContentType != "application/json" {
		t.Errorf("content type = %q", gotContentType)
	}
}

func TestDoCallerHeadersCannotOverrideCredential(t *testing.T) {
	var gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Shopify-Storefront-Access-Token")
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{}})
	}))
	defer srv.Close()

	client := newTestClient(srv, "real-token")
	_, err := client.Do(context.Background(), "query { shop { name } }",
		WithHeader("X-Shopify-Storefront-Access-Token", "spoofed"),
		WithHeader("X-Request-Source", "test"),
	)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if gotToken != "real-token" {
		t.Errorf("token header = %q, want the configured credential", gotToken)
	}
}

func TestDoOmitsEmptyVariables(t *testing.T) {
	var body map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{}})
	}))
	defer srv.Close()

	client := newTestClient(srv, "t")
	if _, err := client.Do(context.Background(), "query { shop { name } }", WithVariables(map[string]any{})); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if _, present := body["variables"]; present {
		t.Error("empty variables were serialized onto the wire")
	}

	if _, err := client.Do(context.Background(), "query { shop { name } }", WithVariables(map[string]any{"handle": "cup"})); err != nil {
		t.Fatalf("Do with variables: %v", err)
	}
	if _, present := body["variables"]; !present {
		t.Error("non-empty variables missing from the wire body")
	}
}

func TestDoFirstErrorPolicy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": nil,
			"errors": []map[string]any{
				{"message": "first failure", "extensions": map[string]any{"code": "THROTTLED"}},
				{"message": "second failure", "extensions": map[string]any{"code": "INTERNAL"}},
			},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv, "t")
	_, err := client.Do(context.Background(), "query { broken }")

	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("err = %v, want *UpstreamError", err)
	}
	if upstreamErr.Message != "first failure" || upstreamErr.Code != "THROTTLED" {
		t.Errorf("classified error = %+v, want the first entry", upstreamErr)
	}
	if upstreamErr.Query == "" {
		t.Error("classified error lost the query document")
	}
}

func TestDoNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := newTestClient(srv, "t")
	_, err := client.Do(context.Background(), "query { shop { name } }")

	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("err = %v, want *UpstreamError", err)
	}
	if upstreamErr.Status != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", upstreamErr.Status)
	}
}

func TestDoErrorsWinOverStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"errors": []map[string]any{
				{"message": "malformed query", "extensions": map[string]any{"code": "GRAPHQL_PARSE_FAILED"}},
			},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv, "t")
	_, err := client.Do(context.Background(), "not graphql")

	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("err = %v, want *UpstreamError", err)
	}
	if upstreamErr.Message != "malformed query" {
		t.Errorf("message = %q, want the structured error", upstreamErr.Message)
	}
	if upstreamErr.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", upstreamErr.Status)
	}
}

func TestDoNetworkFailureClassifiedAsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := newTestClient(srv, "t")
	srv.Close()

	_, err := client.Do(context.Background(), "query { shop { name } }")

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("err = %v, want *TransportError", err)
	}
	if transportErr.Query == "" {
		t.Error("classified error lost the query document")
	}
}

func TestDoUndecodableSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	client := newTestClient(srv, "t")
	_, err := client.Do(context.Background(), "query { shop { name } }")

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("err = %v, want *TransportError", err)
	}
}

func TestDoCarriesCacheAnnotations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{}})
	}))
	defer srv.Close()

	client := newTestClient(srv, "t")
	res, err := client.Do(context.Background(), "query { shop { name } }",
		WithTags("products"),
		WithCacheMode(CacheNoStore),
	)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if len(res.Tags) != 1 || res.Tags[0] != "products" {
		t.Errorf("tags = %v", res.Tags)
	}
	if res.CacheMode != CacheNoStore {
		t.Errorf("cache mode = %q", res.CacheMode)
	}
}

func TestDecodeUnmarshalsDataPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"product": map[string]any{"handle": "acme-cup", "title": "Acme Cup"}},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv, "t")
	var out struct {
		Product *Product `json:"product"`
	}
	if err := client.Decode(context.Background(), "query { product }", &out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.Product == nil || out.Product.Handle != "acme-cup" {
		t.Errorf("decoded product = %+v", out.Product)
	}
}
