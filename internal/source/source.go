// Package source defines the pluggable backend contract the domain services
// read from. Implementations speak the upstream wire shapes so that the
// fixture, the Postgres repository and the real upstream client are
// interchangeable behind the same normalize seam.
package source

import (
	"context"

	"storefront-adapter/internal/domain"
	"storefront-adapter/internal/shopify"
)

// CatalogSource serves catalog reads. Absent entities are nil, not errors;
// unknown list handles are empty slices.
type CatalogSource interface {
	ProductByHandle(ctx context.Context, handle string) (*shopify.Product, error)
	Products(ctx context.Context, query, sortKey string, reverse bool) ([]shopify.Product, error)
	ProductRecommendations(ctx context.Context, productID string) ([]shopify.Product, error)
	CollectionByHandle(ctx context.Context, handle string) (*shopify.Collection, error)
	Collections(ctx context.Context) ([]shopify.Collection, error)
	CollectionProducts(ctx context.Context, handle, sortKey string, reverse bool) ([]shopify.Product, error)
	PageByHandle(ctx context.Context, handle string) (*shopify.Page, error)
	Pages(ctx context.Context) ([]shopify.Page, error)
	MenuByHandle(ctx context.Context, handle string) ([]shopify.MenuItem, error)
}

// CartSource serves the cart lifecycle. Every mutation returns the complete
// post-transition cart.
type CartSource interface {
	CreateCart(ctx context.Context) (*shopify.Cart, error)
	CartByID(ctx context.Context, cartID string) (*shopify.Cart, error)
	AddCartLines(ctx context.Context, cartID string, lines []domain.CartLineInput) (*shopify.Cart, error)
	RemoveCartLines(ctx context.Context, cartID string, lineIDs []string) (*shopify.Cart, error)
	UpdateCartLines(ctx context.Context, cartID string, lines []domain.CartLineInput) (*shopify.Cart, error)
}
