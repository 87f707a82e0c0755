package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"storefront-adapter/internal/config"

	"go.uber.org/zap"
)

// CacheMode annotates a request with the caller's caching intent. The client
// performs no caching itself; the annotation travels on the Result so the
// cache layer above can honor it.
type CacheMode string

const (
	CacheDefault    CacheMode = ""
	CacheForceCache CacheMode = "force-cache"
	CacheNoStore    CacheMode = "no-store"
)

const accessTokenHeader = "X-Shopify-Storefront-Access-Token"

// Client issues GraphQL documents against the single configured upstream
// endpoint. It is safe for concurrent use.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	logger   *zap.Logger
}

// Result is a decoded upstream response plus the cache annotations the
// request carried.
type Result struct {
	Status    int
	Data      json.RawMessage
	Tags      []string
	CacheMode CacheMode
}

type request struct {
	query     string
	variables map[string]any
	tags      []string
	cacheMode CacheMode
	headers   map[string]string
}

// RequestOption customizes a single upstream call.
type RequestOption func(*request)

// WithVariables attaches GraphQL variables; an empty map is omitted from the
// wire body entirely.
func WithVariables(vars map[string]any) RequestOption {
	return func(r *request) { r.variables = vars }
}

// WithTags records the cache tags this read belongs to.
func WithTags(tags ...string) RequestOption {
	return func(r *request) { r.tags = append(r.tags, tags...) }
}

// WithCacheMode records the caller's caching intent.
func WithCacheMode(mode CacheMode) RequestOption {
	return func(r *request) { r.cacheMode = mode }
}

// WithHeader adds a request header. Caller headers never override the access
// token or content type.
func WithHeader(key, value string) RequestOption {
	return func(r *request) {
		if r.headers == nil {
			r.headers = make(map[string]string)
		}
		r.headers[key] = value
	}
}

// NewClient builds a client from the validated Shopify configuration.
func NewClient(cfg config.ShopifyConfig, logger *zap.Logger) *Client {
	return &Client{
		endpoint: cfg.Endpoint(),
		token:    cfg.AccessToken,
		http:     &http.Client{Timeout: 30 * time.Second},
		logger:   logger,
	}
}

type wireBody struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type wireError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

type wireResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []wireError     `json:"errors"`
}

// Do executes one query document against the upstream endpoint. Failures are
// always classified: a structured upstream failure surfaces as
// *UpstreamError, anything else as *TransportError. No retries happen here;
// resilience belongs to the caller.
func (c *Client) Do(ctx context.Context, query string, opts ...RequestOption) (*Result, error) {
	req := request{query: query}
	for _, opt := range opts {
		opt(&req)
	}

	body := wireBody{Query: query}
	if len(req.variables) > 0 {
		body.Variables = req.variables
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, classify(err, query)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, classify(err, query)
	}

	// Caller headers first so they can never clobber the credential or
	// content-type headers set below.
	for k, v := range req.headers {
		httpReq.Header.Set(k, v)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(accessTokenHeader, c.token)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, classify(err, query)
	}
	defer resp.Body.Close()

	var decoded wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, &UpstreamError{
				Status:  resp.StatusCode,
				Message: http.StatusText(resp.StatusCode),
				Query:   query,
			}
		}
		return nil, classify(fmt.Errorf("decoding upstream response: %w", err), query)
	}

	// First-error policy: additional entries in the errors list are dropped.
	if len(decoded.Errors) > 0 {
		first := decoded.Errors[0]
		c.logger.Warn("Upstream returned errors",
			zap.Int("count", len(decoded.Errors)),
			zap.String("code", first.Extensions.Code),
			zap.String("message", first.Message),
		)
		return nil, &UpstreamError{
			Status:  resp.StatusCode,
			Code:    first.Extensions.Code,
			Message: first.Message,
			Query:   query,
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &UpstreamError{
			Status:  resp.StatusCode,
			Message: http.StatusText(resp.StatusCode),
			Query:   query,
		}
	}

	return &Result{
		Status:    resp.StatusCode,
		Data:      decoded.Data,
		Tags:      req.tags,
		CacheMode: req.cacheMode,
	}, nil
}

// Decode runs the query and unmarshals the response's data payload into out.
func (c *Client) Decode(ctx context.Context, query string, out any, opts ...RequestOption) error {
	res, err := c.Do(ctx, query, opts...)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(res.Data, out); err != nil {
		return classify(fmt.Errorf("decoding data payload: %w", err), query)
	}
	return nil
}
