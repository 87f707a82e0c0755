package transport

import (
	"net/http"
	"strings"
	"time"

	"storefront-adapter/internal/cache"
	"storefront-adapter/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Webhook topic header and prefixes the handler recognizes.
const (
	topicHeader           = "x-shopify-topic"
	collectionTopicPrefix = "collections/"
	productTopicPrefix    = "products/"
)

// RevalidateResponse is the acknowledgment body. Revalidated and Now are
// only present when an invalidation actually fired.
type RevalidateResponse struct {
	Status      int   `json:"status"`
	Revalidated bool  `json:"revalidated,omitempty"`
	Now         int64 `json:"now,omitempty"`
}

// RevalidateHandler turns authenticated upstream webhooks into cache tag
// invalidations. Every outcome is acknowledged with HTTP 200: webhook
// senders retry indefinitely on anything else, so auth and classification
// failures are swallowed into a benign acknowledgment and logged instead.
type RevalidateHandler struct {
	store  cache.Store
	secret string
	logger *zap.Logger
}

func NewRevalidateHandler(store cache.Store, secret string, logger *zap.Logger) *RevalidateHandler {
	return &RevalidateHandler{store: store, secret: secret, logger: logger}
}

// RegisterRoutes registers the webhook route.
func (h *RevalidateHandler) RegisterRoutes(r chi.Router, rateLimit func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		if rateLimit != nil {
			r.Use(rateLimit)
		}
		r.Post("/api/revalidate", h.Revalidate)
	})
}

// Revalidate runs the three short-circuiting checks: secret, topic
// classification, invalidation. The collection and product checks are
// independent; a topic matching both prefixes would fire both.
func (h *RevalidateHandler) Revalidate(w http.ResponseWriter, r *http.Request) {
	topic := r.Header.Get(topicHeader)
	if topic == "" {
		topic = "unknown"
	}

	if r.URL.Query().Get("secret") != h.secret || h.secret == "" {
		h.logger.Error("Invalid revalidation secret", zap.String("topic", topic))
		middleware.RespondWithJSON(w, http.StatusOK, RevalidateResponse{Status: http.StatusOK})
		return
	}

	isCollection := strings.HasPrefix(topic, collectionTopicPrefix)
	isProduct := strings.HasPrefix(topic, productTopicPrefix)
	if !isCollection && !isProduct {
		h.logger.Info("Unrecognized webhook topic, ignoring", zap.String("topic", topic))
		middleware.RespondWithJSON(w, http.StatusOK, RevalidateResponse{Status: http.StatusOK})
		return
	}

	if isCollection {
		h.invalidate(r, cache.TagCollections, topic)
	}
	if isProduct {
		h.invalidate(r, cache.TagProducts, topic)
	}

	middleware.RespondWithJSON(w, http.StatusOK, RevalidateResponse{
		Status:      http.StatusOK,
		Revalidated: true,
		Now:         time.Now().UnixMilli(),
	})
}

// invalidate is best-effort signaling to the cache system: a failed
// invalidation is logged, never surfaced to the webhook sender.
func (h *RevalidateHandler) invalidate(r *http.Request, tag, topic string) {
	dropped, err := h.store.Invalidate(r.Context(), tag)
	if err != nil {
		h.logger.Error("Cache invalidation failed",
			zap.Error(err),
			zap.String("tag", tag),
			zap.String("topic", topic),
		)
		return
	}
	h.logger.Info("Cache tag invalidated",
		zap.String("tag", tag),
		zap.String("topic", topic),
		zap.Int("entries_dropped", dropped),
	)
}
