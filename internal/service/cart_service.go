package service

import (
	"context"

	"storefront-adapter/internal/domain"
	"storefront-adapter/internal/normalize"
	"storefront-adapter/internal/source"

	"go.uber.org/zap"
)

// CartService drives the cart lifecycle. Every call returns a complete,
// freshly normalized cart reflecting post-transition totals; no cart state
// lives inside the adapter. Cart reads and writes are never cached.
type CartService interface {
	CreateCart(ctx context.Context) (*domain.Cart, error)
	GetCart(ctx context.Context, cartID string) (*domain.Cart, error)
	AddToCart(ctx context.Context, cartID string, lines []domain.CartLineInput) (*domain.Cart, error)
	RemoveFromCart(ctx context.Context, cartID string, lineIDs []string) (*domain.Cart, error)
	UpdateCart(ctx context.Context, cartID string, lines []domain.CartLineInput) (*domain.Cart, error)
}

type cartService struct {
	carts  source.CartSource
	logger *zap.Logger
}

func NewCartService(carts source.CartSource, logger *zap.Logger) CartService {
	return &cartService{carts: carts, logger: logger}
}

func (s *cartService) CreateCart(ctx context.Context) (*domain.Cart, error) {
	wire, err := s.carts.CreateCart(ctx)
	if err != nil {
		return nil, err
	}
	cart := normalize.Cart(wire)
	if cart == nil {
		return nil, domain.ErrNotFound
	}
	s.logger.Info("Cart created", zap.String("cart_id", cart.ID))
	return cart, nil
}

func (s *cartService) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	// No cart id means no cart: the uniform absence signal, not a failure.
	if cartID == "" {
		return nil, domain.ErrNotFound
	}
	wire, err := s.carts.CartByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	cart := normalize.Cart(wire)
	if cart == nil {
		return nil, domain.ErrNotFound
	}
	return cart, nil
}

func (s *cartService) AddToCart(ctx context.Context, cartID string, lines []domain.CartLineInput) (*domain.Cart, error) {
	wire, err := s.carts.AddCartLines(ctx, cartID, lines)
	if err != nil {
		return nil, err
	}
	cart := normalize.Cart(wire)
	if cart == nil {
		return nil, domain.ErrNotFound
	}
	return cart, nil
}

func (s *cartService) RemoveFromCart(ctx context.Context, cartID string, lineIDs []string) (*domain.Cart, error) {
	wire, err := s.carts.RemoveCartLines(ctx, cartID, lineIDs)
	if err != nil {
		return nil, err
	}
	cart := normalize.Cart(wire)
	if cart == nil {
		return nil, domain.ErrNotFound
	}
	return cart, nil
}

func (s *cartService) UpdateCart(ctx context.Context, cartID string, lines []domain.CartLineInput) (*domain.Cart, error) {
	wire, err := s.carts.UpdateCartLines(ctx, cartID, lines)
	if err != nil {
		return nil, err
	}
	cart := normalize.Cart(wire)
	if cart == nil {
		return nil, domain.ErrNotFound
	}
	return cart, nil
}
