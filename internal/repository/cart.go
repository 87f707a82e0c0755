package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"storefront-adapter/internal/domain"
	"storefront-adapter/internal/shopify"

	"github.com/google/uuid"
)

// CartStore serves the cart lifecycle from Postgres. Carts persist across
// restarts, unlike the fixture's in-memory map; projections are still
// recomputed from scratch on every call.
type CartStore struct {
	db *sql.DB
}

func NewCartStore(db *sql.DB) *CartStore {
	return &CartStore{db: db}
}

func (s *CartStore) CreateCart(ctx context.Context) (*shopify.Cart, error) {
	id := "gid://shopify/Cart/" + uuid.NewString()

	query := `INSERT INTO carts (id, created_at) VALUES ($1, NOW())`
	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return s.project(ctx, id)
}

func (s *CartStore) CartByID(ctx context.Context, cartID string) (*shopify.Cart, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM carts WHERE id = $1)`
	if err := s.db.QueryRowContext(ctx, query, cartID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to look up cart: %w", err)
	}
	if !exists {
		return nil, nil
	}
	return s.project(ctx, cartID)
}

func (s *CartStore) AddCartLines(ctx context.Context, cartID string, lines []domain.CartLineInput) (*shopify.Cart, error) {
	cart, err := s.CartByID(ctx, cartID)
	if err != nil || cart == nil {
		return cart, err
	}

	// Adding merchandise already in the cart bumps the existing line's
	// quantity instead of creating a duplicate line.
	query := `
		INSERT INTO cart_lines (id, cart_id, merchandise_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cart_id, merchandise_id)
		DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity
	`
	for _, in := range lines {
		lineID := "gid://shopify/CartLine/" + uuid.NewString()
		if _, err := s.db.ExecContext(ctx, query, lineID, cartID, in.MerchandiseID, in.Quantity); err != nil {
			return nil, fmt.Errorf("failed to add cart line: %w", err)
		}
	}
	return s.project(ctx, cartID)
}

func (s *CartStore) RemoveCartLines(ctx context.Context, cartID string, lineIDs []string) (*shopify.Cart, error) {
	cart, err := s.CartByID(ctx, cartID)
	if err != nil || cart == nil {
		return cart, err
	}

	query := `DELETE FROM cart_lines WHERE cart_id = $1 AND id = $2`
	for _, id := range lineIDs {
		if _, err := s.db.ExecContext(ctx, query, cartID, id); err != nil {
			return nil, fmt.Errorf("failed to remove cart line: %w", err)
		}
	}
	return s.project(ctx, cartID)
}

func (s *CartStore) UpdateCartLines(ctx context.Context, cartID string, lines []domain.CartLineInput) (*shopify.Cart, error) {
	cart, err := s.CartByID(ctx, cartID)
	if err != nil || cart == nil {
		return cart, err
	}

	update := `UPDATE cart_lines SET quantity = $1 WHERE cart_id = $2 AND id = $3`
	remove := `DELETE FROM cart_lines WHERE cart_id = $1 AND id = $2`
	for _, in := range lines {
		if in.Quantity <= 0 {
			// A quantity updated to zero removes the line.
			if _, err := s.db.ExecContext(ctx, remove, cartID, in.ID); err != nil {
				return nil, fmt.Errorf("failed to remove cart line: %w", err)
			}
			continue
		}
		if _, err := s.db.ExecContext(ctx, update, in.Quantity, cartID, in.ID); err != nil {
			return nil, fmt.Errorf("failed to update cart line: %w", err)
		}
	}
	return s.project(ctx, cartID)
}

// project recomputes the wire cart: each line joined to its variant and
// product, line totals from quantity times unit price, cart totals from line
// totals. The tax amount is left absent for the normalizer to default.
func (s *CartStore) project(ctx context.Context, cartID string) (*shopify.Cart, error) {
	query := `
		SELECT cl.id, cl.quantity,
		       v.id, v.title, v.price, v.currency, v.selected_options,
		       p.id, p.handle, p.title,
		       p.featured_image_url, p.featured_image_alt, p.featured_image_width, p.featured_image_height
		FROM cart_lines cl
		JOIN product_variants v ON v.id = cl.merchandise_id
		JOIN products p ON p.id = v.product_id
		WHERE cl.cart_id = $1
		ORDER BY cl.id
	`

	rows, err := s.db.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to project cart: %w", err)
	}
	defer rows.Close()

	var (
		edges         []shopify.Edge[shopify.CartLine]
		subtotalCents int64
		totalQuantity int
		currency      string
	)
	for rows.Next() {
		var (
			line        shopify.CartLine
			price       string
			cur         string
			optionsJSON []byte
			img         shopify.Image
		)
		err := rows.Scan(
			&line.ID, &line.Quantity,
			&line.Merchandise.ID, &line.Merchandise.Title, &price, &cur, &optionsJSON,
			&line.Merchandise.Product.ID, &line.Merchandise.Product.Handle, &line.Merchandise.Product.Title,
			&img.URL, &img.AltText, &img.Width, &img.Height,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		if len(optionsJSON) > 0 {
			if err := unmarshalOptions(optionsJSON, &line.Merchandise.SelectedOptions); err != nil {
				return nil, err
			}
		}
		line.Merchandise.Product.FeaturedImage = img

		unitCents, err := domain.ParseCents(price)
		if err != nil {
			return nil, fmt.Errorf("variant %s has malformed price: %w", line.Merchandise.ID, err)
		}
		lineCents := unitCents * int64(line.Quantity)
		line.Cost.TotalAmount = shopify.Money{Amount: domain.FormatCents(lineCents), CurrencyCode: cur}

		subtotalCents += lineCents
		totalQuantity += line.Quantity
		if currency == "" {
			currency = cur
		}
		edges = append(edges, shopify.Edge[shopify.CartLine]{Node: line})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if currency == "" {
		currency = "USD"
	}
	return &shopify.Cart{
		ID:          cartID,
		CheckoutURL: "https://demo.example.com/checkout?cart=" + cartID,
		Cost: shopify.CartCost{
			SubtotalAmount: shopify.Money{Amount: domain.FormatCents(subtotalCents), CurrencyCode: currency},
			TotalAmount:    shopify.Money{Amount: domain.FormatCents(subtotalCents), CurrencyCode: currency},
		},
		Lines:         shopify.Connection[shopify.CartLine]{Edges: edges},
		TotalQuantity: totalQuantity,
	}, nil
}

func unmarshalOptions(raw []byte, dest *[]shopify.SelectedOption) error {
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("failed to decode selected options: %w", err)
	}
	return nil
}
