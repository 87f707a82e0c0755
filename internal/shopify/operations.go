package shopify

import (
	"context"
	"strings"

	"storefront-adapter/internal/cache"
	"storefront-adapter/internal/domain"
)

// Typed operations over the raw client. Each maps one domain read or write
// to its query document, variables and cache tags, and returns wire shapes
// for the normalize package to flatten. A null upstream entity decodes to a
// nil pointer; translating that into the adapter's absence policy is the
// service layer's job.

func (c *Client) ProductByHandle(ctx context.Context, handle string) (*Product, error) {
	var payload struct {
		Product *Product `json:"product"`
	}
	err := c.Decode(ctx, getProductQuery, &payload,
		WithVariables(map[string]any{"handle": handle}),
		WithTags(cache.TagProducts),
	)
	if err != nil {
		return nil, err
	}
	return payload.Product, nil
}

func (c *Client) Products(ctx context.Context, query, sortKey string, reverse bool) ([]Product, error) {
	vars := map[string]any{"reverse": reverse}
	if query != "" {
		vars["query"] = query
	}
	if key, ok := sortKeyVariable(sortKey); ok {
		vars["sortKey"] = key
	}
	var payload struct {
		Products Connection[Product] `json:"products"`
	}
	err := c.Decode(ctx, getProductsQuery, &payload,
		WithVariables(vars),
		WithTags(cache.TagProducts),
	)
	if err != nil {
		return nil, err
	}
	return payload.Products.Nodes(), nil
}

func (c *Client) ProductRecommendations(ctx context.Context, productID string) ([]Product, error) {
	var payload struct {
		ProductRecommendations []Product `json:"productRecommendations"`
	}
	err := c.Decode(ctx, getProductRecommendationsQuery, &payload,
		WithVariables(map[string]any{"productId": productID}),
		WithTags(cache.TagProducts),
	)
	if err != nil {
		return nil, err
	}
	return payload.ProductRecommendations, nil
}

func (c *Client) CollectionByHandle(ctx context.Context, handle string) (*Collection, error) {
	var payload struct {
		Collection *Collection `json:"collection"`
	}
	err := c.Decode(ctx, getCollectionQuery, &payload,
		WithVariables(map[string]any{"handle": handle}),
		WithTags(cache.TagCollections),
	)
	if err != nil {
		return nil, err
	}
	return payload.Collection, nil
}

func (c *Client) Collections(ctx context.Context) ([]Collection, error) {
	var payload struct {
		Collections Connection[Collection] `json:"collections"`
	}
	err := c.Decode(ctx, getCollectionsQuery, &payload,
		WithTags(cache.TagCollections),
	)
	if err != nil {
		return nil, err
	}
	return payload.Collections.Nodes(), nil
}

func (c *Client) CollectionProducts(ctx context.Context, handle, sortKey string, reverse bool) ([]Product, error) {
	vars := map[string]any{"handle": handle, "reverse": reverse}
	if key, ok := sortKeyVariable(sortKey); ok {
		if key == "CREATED_AT" {
			// ProductCollectionSortKeys spells this member CREATED.
			key = "CREATED"
		}
		vars["sortKey"] = key
	}
	var payload struct {
		Collection *struct {
			Products Connection[Product] `json:"products"`
		} `json:"collection"`
	}
	err := c.Decode(ctx, getCollectionProductsQuery, &payload,
		WithVariables(vars),
		WithTags(cache.TagCollections, cache.TagProducts),
	)
	if err != nil {
		return nil, err
	}
	if payload.Collection == nil {
		return nil, nil
	}
	return payload.Collection.Products.Nodes(), nil
}

func (c *Client) PageByHandle(ctx context.Context, handle string) (*Page, error) {
	var payload struct {
		PageByHandle *Page `json:"pageByHandle"`
	}
	err := c.Decode(ctx, getPageQuery, &payload,
		WithVariables(map[string]any{"handle": handle}),
	)
	if err != nil {
		return nil, err
	}
	return payload.PageByHandle, nil
}

func (c *Client) Pages(ctx context.Context) ([]Page, error) {
	var payload struct {
		Pages Connection[Page] `json:"pages"`
	}
	if err := c.Decode(ctx, getPagesQuery, &payload); err != nil {
		return nil, err
	}
	return payload.Pages.Nodes(), nil
}

func (c *Client) MenuByHandle(ctx context.Context, handle string) ([]MenuItem, error) {
	var payload struct {
		Menu *Menu `json:"menu"`
	}
	err := c.Decode(ctx, getMenuQuery, &payload,
		WithVariables(map[string]any{"handle": handle}),
	)
	if err != nil {
		return nil, err
	}
	if payload.Menu == nil {
		return nil, nil
	}
	return payload.Menu.Items, nil
}

func (c *Client) CreateCart(ctx context.Context) (*Cart, error) {
	var payload struct {
		CartCreate struct {
			Cart *Cart `json:"cart"`
		} `json:"cartCreate"`
	}
	err := c.Decode(ctx, createCartMutation, &payload,
		WithCacheMode(CacheNoStore),
	)
	if err != nil {
		return nil, err
	}
	return payload.CartCreate.Cart, nil
}

func (c *Client) CartByID(ctx context.Context, cartID string) (*Cart, error) {
	var payload struct {
		Cart *Cart `json:"cart"`
	}
	err := c.Decode(ctx, getCartQuery, &payload,
		WithVariables(map[string]any{"cartId": cartID}),
		WithCacheMode(CacheNoStore),
	)
	if err != nil {
		return nil, err
	}
	return payload.Cart, nil
}

func (c *Client) AddCartLines(ctx context.Context, cartID string, lines []domain.CartLineInput) (*Cart, error) {
	var payload struct {
		CartLinesAdd struct {
			Cart *Cart `json:"cart"`
		} `json:"cartLinesAdd"`
	}
	err := c.Decode(ctx, addToCartMutation, &payload,
		WithVariables(map[string]any{"cartId": cartID, "lines": lines}),
		WithCacheMode(CacheNoStore),
	)
	if err != nil {
		return nil, err
	}
	return payload.CartLinesAdd.Cart, nil
}

func (c *Client) RemoveCartLines(ctx context.Context, cartID string, lineIDs []string) (*Cart, error) {
	var payload struct {
		CartLinesRemove struct {
			Cart *Cart `json:"cart"`
		} `json:"cartLinesRemove"`
	}
	err := c.Decode(ctx, removeFromCartMutation, &payload,
		WithVariables(map[string]any{"cartId": cartID, "lineIds": lineIDs}),
		WithCacheMode(CacheNoStore),
	)
	if err != nil {
		return nil, err
	}
	return payload.CartLinesRemove.Cart, nil
}

func (c *Client) UpdateCartLines(ctx context.Context, cartID string, lines []domain.CartLineInput) (*Cart, error) {
	var payload struct {
		CartLinesUpdate struct {
			Cart *Cart `json:"cart"`
		} `json:"cartLinesUpdate"`
	}
	err := c.Decode(ctx, editCartItemsMutation, &payload,
		WithVariables(map[string]any{"cartId": cartID, "lines": lines}),
		WithCacheMode(CacheNoStore),
	)
	if err != nil {
		return nil, err
	}
	return payload.CartLinesUpdate.Cart, nil
}

// sortKeyVariable maps the adapter's sort vocabulary onto the upstream
// ProductSortKeys enum. Anything outside it is dropped before the wire so
// the upstream never rejects the query and listings keep their input order.
func sortKeyVariable(sortKey string) (string, bool) {
	key := strings.ToUpper(strings.ReplaceAll(sortKey, "-", "_"))
	switch key {
	case "TITLE", "PRICE", "CREATED_AT", "BEST_SELLING", "RELEVANCE":
		return key, true
	}
	return "", false
}
