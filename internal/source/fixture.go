package source

import (
	"context"
	"fmt"
	"sync"

	"storefront-adapter/internal/domain"
	"storefront-adapter/internal/shopify"

	"github.com/google/uuid"
)

// Fixture is the in-process stand-in for the upstream API: a static catalog
// plus mutex-guarded in-memory carts. It satisfies both source contracts so
// the services cannot tell it apart from a real backend.
type Fixture struct {
	mu       sync.Mutex
	carts    map[string]*fixtureCart
	products []shopify.Product
}

type fixtureCart struct {
	id    string
	lines []fixtureLine
}

type fixtureLine struct {
	id            string
	merchandiseID string
	quantity      int
}

func NewFixture() *Fixture {
	return &Fixture{
		carts:    make(map[string]*fixtureCart),
		products: fixtureProducts,
	}
}

func (f *Fixture) ProductByHandle(ctx context.Context, handle string) (*shopify.Product, error) {
	for i := range f.products {
		if f.products[i].Handle == handle {
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (f *Fixture) Products(ctx context.Context, query, sortKey string, reverse bool) ([]shopify.Product, error) {
	// Filtering and sorting are the service layer's job; the fixture hands
	// back the raw catalog like the upstream would for an empty query.
	out := make([]shopify.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *Fixture) ProductRecommendations(ctx context.Context, productID string) ([]shopify.Product, error) {
	out := make([]shopify.Product, 0, len(f.products))
	for i := range f.products {
		if f.products[i].ID != productID {
			out = append(out, f.products[i])
		}
	}
	return out, nil
}

func (f *Fixture) CollectionByHandle(ctx context.Context, handle string) (*shopify.Collection, error) {
	for i := range fixtureCollections {
		if fixtureCollections[i].Handle == handle {
			c := fixtureCollections[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (f *Fixture) Collections(ctx context.Context) ([]shopify.Collection, error) {
	out := make([]shopify.Collection, len(fixtureCollections))
	copy(out, fixtureCollections)
	return out, nil
}

func (f *Fixture) CollectionProducts(ctx context.Context, handle, sortKey string, reverse bool) ([]shopify.Product, error) {
	handles, ok := fixtureCollectionMembers[handle]
	if !ok {
		return nil, nil
	}
	out := make([]shopify.Product, 0, len(handles))
	for _, h := range handles {
		for i := range f.products {
			if f.products[i].Handle == h {
				out = append(out, f.products[i])
			}
		}
	}
	return out, nil
}

func (f *Fixture) PageByHandle(ctx context.Context, handle string) (*shopify.Page, error) {
	for i := range fixturePages {
		if fixturePages[i].Handle == handle {
			p := fixturePages[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (f *Fixture) Pages(ctx context.Context) ([]shopify.Page, error) {
	out := make([]shopify.Page, len(fixturePages))
	copy(out, fixturePages)
	return out, nil
}

func (f *Fixture) MenuByHandle(ctx context.Context, handle string) ([]shopify.MenuItem, error) {
	items, ok := fixtureMenus[handle]
	if !ok {
		return nil, nil
	}
	out := make([]shopify.MenuItem, len(items))
	copy(out, items)
	return out, nil
}

func (f *Fixture) CreateCart(ctx context.Context) (*shopify.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cart := &fixtureCart{id: "gid://shopify/Cart/" + uuid.NewString()}
	f.carts[cart.id] = cart
	return f.project(cart)
}

func (f *Fixture) CartByID(ctx context.Context, cartID string) (*shopify.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cart, ok := f.carts[cartID]
	if !ok {
		return nil, nil
	}
	return f.project(cart)
}

func (f *Fixture) AddCartLines(ctx context.Context, cartID string, lines []domain.CartLineInput) (*shopify.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cart, ok := f.carts[cartID]
	if !ok {
		return nil, nil
	}
	for _, in := range lines {
		if _, _, found := f.variant(in.MerchandiseID); !found {
			return nil, fmt.Errorf("unknown merchandise %q", in.MerchandiseID)
		}
		if existing := cart.findByMerchandise(in.MerchandiseID); existing != nil {
			existing.quantity += in.Quantity
			continue
		}
		cart.lines = append(cart.lines, fixtureLine{
			id:            "gid://shopify/CartLine/" + uuid.NewString(),
			merchandiseID: in.MerchandiseID,
			quantity:      in.Quantity,
		})
	}
	return f.project(cart)
}

func (f *Fixture) RemoveCartLines(ctx context.Context, cartID string, lineIDs []string) (*shopify.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cart, ok := f.carts[cartID]
	if !ok {
		return nil, nil
	}
	drop := make(map[string]bool, len(lineIDs))
	for _, id := range lineIDs {
		drop[id] = true
	}
	kept := cart.lines[:0]
	for _, line := range cart.lines {
		if !drop[line.id] {
			kept = append(kept, line)
		}
	}
	cart.lines = kept
	return f.project(cart)
}

func (f *Fixture) UpdateCartLines(ctx context.Context, cartID string, lines []domain.CartLineInput) (*shopify.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cart, ok := f.carts[cartID]
	if !ok {
		return nil, nil
	}
	for _, in := range lines {
		for i := range cart.lines {
			if cart.lines[i].id != in.ID {
				continue
			}
			if in.MerchandiseID != "" {
				if _, _, found := f.variant(in.MerchandiseID); !found {
					return nil, fmt.Errorf("unknown merchandise %q", in.MerchandiseID)
				}
				cart.lines[i].merchandiseID = in.MerchandiseID
			}
			cart.lines[i].quantity = in.Quantity
		}
	}
	// A quantity updated to zero removes the line, matching upstream
	// behavior.
	kept := cart.lines[:0]
	for _, line := range cart.lines {
		if line.quantity > 0 {
			kept = append(kept, line)
		}
	}
	cart.lines = kept
	return f.project(cart)
}

func (c *fixtureCart) findByMerchandise(merchandiseID string) *fixtureLine {
	for i := range c.lines {
		if c.lines[i].merchandiseID == merchandiseID {
			return &c.lines[i]
		}
	}
	return nil
}

// variant resolves a merchandise id to its variant and owning product.
func (f *Fixture) variant(merchandiseID string) (shopify.ProductVariant, shopify.Product, bool) {
	for i := range f.products {
		for _, edge := range f.products[i].Variants.Edges {
			if edge.Node.ID == merchandiseID {
				return edge.Node, f.products[i], true
			}
		}
	}
	return shopify.ProductVariant{}, shopify.Product{}, false
}

// project recomputes the wire cart from scratch: line totals from quantity
// times unit price, cart totals from line totals. The tax amount is left
// absent so the normalizer's zero default applies, matching the upstream
// mock this fixture replaces.
func (f *Fixture) project(cart *fixtureCart) (*shopify.Cart, error) {
	var subtotalCents int64
	currency := ""
	edges := make([]shopify.Edge[shopify.CartLine], 0, len(cart.lines))

	for _, line := range cart.lines {
		variant, product, found := f.variant(line.merchandiseID)
		if !found {
			return nil, fmt.Errorf("cart %s references unknown merchandise %q", cart.id, line.merchandiseID)
		}
		unitCents, err := domain.ParseCents(variant.Price.Amount)
		if err != nil {
			return nil, fmt.Errorf("variant %s has malformed price: %w", variant.ID, err)
		}
		lineCents := unitCents * int64(line.quantity)
		subtotalCents += lineCents
		if currency == "" {
			currency = variant.Price.CurrencyCode
		}

		var node shopify.CartLine
		node.ID = line.id
		node.Quantity = line.quantity
		node.Cost.TotalAmount = shopify.Money{Amount: domain.FormatCents(lineCents), CurrencyCode: variant.Price.CurrencyCode}
		node.Merchandise.ID = variant.ID
		node.Merchandise.Title = variant.Title
		node.Merchandise.SelectedOptions = variant.SelectedOptions
		node.Merchandise.Product = shopify.CartProduct{
			ID:            product.ID,
			Handle:        product.Handle,
			Title:         product.Title,
			FeaturedImage: product.FeaturedImage,
		}
		edges = append(edges, shopify.Edge[shopify.CartLine]{Node: node})
	}

	if currency == "" {
		currency = "USD"
	}
	totalQuantity := 0
	for _, line := range cart.lines {
		totalQuantity += line.quantity
	}

	return &shopify.Cart{
		ID:          cart.id,
		CheckoutURL: "https://demo.example.com/checkout?cart=" + cart.id,
		Cost: shopify.CartCost{
			SubtotalAmount: shopify.Money{Amount: domain.FormatCents(subtotalCents), CurrencyCode: currency},
			TotalAmount:    shopify.Money{Amount: domain.FormatCents(subtotalCents), CurrencyCode: currency},
		},
		Lines:         shopify.Connection[shopify.CartLine]{Edges: edges},
		TotalQuantity: totalQuantity,
	}, nil
}
