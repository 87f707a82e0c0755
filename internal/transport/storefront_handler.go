package transport

import (
	"errors"
	"net/http"
	"net/url"

	"storefront-adapter/internal/domain"
	"storefront-adapter/internal/middleware"
	"storefront-adapter/internal/service"
	"storefront-adapter/internal/shopify"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddLinesRequest is the payload for adding lines to a cart.
type AddLinesRequest struct {
	Lines []LineInput `json:"lines" validate:"required,min=1,dive"`
}

// UpdateLinesRequest is the payload for updating existing cart lines.
type UpdateLinesRequest struct {
	Lines []LineInput `json:"lines" validate:"required,min=1,dive"`
}

// RemoveLinesRequest is the payload for removing cart lines.
type RemoveLinesRequest struct {
	LineIDs []string `json:"lineIds" validate:"required,min=1"`
}

// LineInput identifies merchandise and a quantity; ID is only set for
// updates.
type LineInput struct {
	ID            string `json:"id,omitempty"`
	MerchandiseID string `json:"merchandiseId" validate:"required"`
	Quantity      int    `json:"quantity" validate:"min=0"`
}

// StorefrontHandler exposes the normalized domain model as the JSON surface
// the UI consumes.
type StorefrontHandler struct {
	catalog service.CatalogService
	carts   service.CartService
	logger  *zap.Logger
}

func NewStorefrontHandler(catalog service.CatalogService, carts service.CartService, logger *zap.Logger) *StorefrontHandler {
	return &StorefrontHandler{catalog: catalog, carts: carts, logger: logger}
}

// RegisterRoutes registers all storefront routes.
func (h *StorefrontHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.ListProducts)
		r.Get("/products/{handle}", h.GetProduct)
		r.Get("/products/{handle}/recommendations", h.GetRecommendations)
		r.Get("/collections", h.ListCollections)
		r.Get("/collections/{handle}", h.GetCollection)
		r.Get("/collections/{handle}/products", h.ListCollectionProducts)
		r.Get("/pages", h.ListPages)
		r.Get("/pages/{handle}", h.GetPage)
		r.Get("/menus/{handle}", h.GetMenu)

		r.Post("/cart", h.CreateCart)
		r.Get("/cart/{id}", h.GetCart)
		r.Post("/cart/{id}/lines", h.AddLines)
		r.Put("/cart/{id}/lines", h.UpdateLines)
		r.Delete("/cart/{id}/lines", h.RemoveLines)
	})
}

func (h *StorefrontHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products, err := h.catalog.GetProducts(r.Context(), q.Get("q"), q.Get("sort"), q.Get("reverse") == "true")
	if err != nil {
		h.respondError(w, err, "failed to list products")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

func (h *StorefrontHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetProduct(r.Context(), chi.URLParam(r, "handle"))
	if err != nil {
		h.respondError(w, err, "failed to get product")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

func (h *StorefrontHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")
	product, err := h.catalog.GetProduct(r.Context(), handle)
	if err != nil {
		h.respondError(w, err, "failed to get product")
		return
	}
	recommendations, err := h.catalog.GetProductRecommendations(r.Context(), product.ID)
	if err != nil {
		h.respondError(w, err, "failed to get recommendations")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, recommendations)
}

func (h *StorefrontHandler) ListCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := h.catalog.GetCollections(r.Context())
	if err != nil {
		h.respondError(w, err, "failed to list collections")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, collections)
}

func (h *StorefrontHandler) GetCollection(w http.ResponseWriter, r *http.Request) {
	collection, err := h.catalog.GetCollection(r.Context(), chi.URLParam(r, "handle"))
	if err != nil {
		h.respondError(w, err, "failed to get collection")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, collection)
}

func (h *StorefrontHandler) ListCollectionProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products, err := h.catalog.GetCollectionProducts(r.Context(), chi.URLParam(r, "handle"), q.Get("sort"), q.Get("reverse") == "true")
	if err != nil {
		h.respondError(w, err, "failed to list collection products")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

func (h *StorefrontHandler) ListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.catalog.GetPages(r.Context())
	if err != nil {
		h.respondError(w, err, "failed to list pages")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, pages)
}

func (h *StorefrontHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.GetPage(r.Context(), chi.URLParam(r, "handle"))
	if err != nil {
		h.respondError(w, err, "failed to get page")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, page)
}

func (h *StorefrontHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	menu, err := h.catalog.GetMenu(r.Context(), chi.URLParam(r, "handle"))
	if err != nil {
		h.respondError(w, err, "failed to get menu")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, menu)
}

func (h *StorefrontHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.CreateCart(r.Context())
	if err != nil {
		h.respondError(w, err, "failed to create cart")
		return
	}
	middleware.RespondWithJSON(w, http.StatusCreated, cart)
}

// cartID extracts the cart id path parameter. Cart ids are upstream gids
// containing slashes, so callers percent-encode them and the router hands
// the segment back still escaped.
func cartID(r *http.Request) string {
	raw := chi.URLParam(r, "id")
	if id, err := url.PathUnescape(raw); err == nil {
		return id
	}
	return raw
}

func (h *StorefrontHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.GetCart(r.Context(), cartID(r))
	if err != nil {
		h.respondError(w, err, "failed to get cart")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, cart)
}

func (h *StorefrontHandler) AddLines(w http.ResponseWriter, r *http.Request) {
	var req AddLinesRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.respondInvalid(w, err)
		return
	}
	cart, err := h.carts.AddToCart(r.Context(), cartID(r), toLineInputs(req.Lines))
	if err != nil {
		h.respondError(w, err, "failed to add cart lines")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, cart)
}

func (h *StorefrontHandler) UpdateLines(w http.ResponseWriter, r *http.Request) {
	var req UpdateLinesRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.respondInvalid(w, err)
		return
	}
	cart, err := h.carts.UpdateCart(r.Context(), cartID(r), toLineInputs(req.Lines))
	if err != nil {
		h.respondError(w, err, "failed to update cart lines")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, cart)
}

func (h *StorefrontHandler) RemoveLines(w http.ResponseWriter, r *http.Request) {
	var req RemoveLinesRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.respondInvalid(w, err)
		return
	}
	cart, err := h.carts.RemoveFromCart(r.Context(), cartID(r), req.LineIDs)
	if err != nil {
		h.respondError(w, err, "failed to remove cart lines")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, cart)
}

func toLineInputs(lines []LineInput) []domain.CartLineInput {
	out := make([]domain.CartLineInput, 0, len(lines))
	for _, l := range lines {
		out = append(out, domain.CartLineInput{
			ID:            l.ID,
			MerchandiseID: l.MerchandiseID,
			Quantity:      l.Quantity,
		})
	}
	return out
}

func (h *StorefrontHandler) respondInvalid(w http.ResponseWriter, err error) {
	h.logger.Debug("Request validation failed", zap.Error(err))
	if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
		middleware.RespondWithValidationErrors(w, validationErrors)
		return
	}
	middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
}

// respondError maps the error taxonomy onto HTTP statuses: absence to 404,
// upstream and transport failures to 502, everything else to 500.
func (h *StorefrontHandler) respondError(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, domain.ErrNotFound) {
		middleware.RespondWithError(w, http.StatusNotFound, "not found")
		return
	}

	var upstreamErr *shopify.UpstreamError
	if errors.As(err, &upstreamErr) {
		h.logger.Error("Upstream error",
			zap.Int("upstream_status", upstreamErr.Status),
			zap.String("code", upstreamErr.Code),
			zap.String("message", upstreamErr.Message),
		)
		middleware.RespondWithError(w, http.StatusBadGateway, message)
		return
	}

	var transportErr *shopify.TransportError
	if errors.As(err, &transportErr) {
		h.logger.Error("Transport error", zap.Error(transportErr.Err))
		middleware.RespondWithError(w, http.StatusBadGateway, message)
		return
	}

	h.logger.Error(message, zap.Error(err))
	middleware.RespondWithError(w, http.StatusInternalServerError, message)
}
