package shopify

import "time"

// Wire types mirror the upstream GraphQL response shapes. Collections of
// child objects arrive as connections (lists of edges wrapping nodes); the
// normalize package flattens them into the domain model.

// Connection is the upstream's paginated collection shape.
type Connection[T any] struct {
	Edges []Edge[T] `json:"edges"`
}

// Nodes unwraps the connection into its ordered node list.
func (c Connection[T]) Nodes() []T {
	out := make([]T, 0, len(c.Edges))
	for _, edge := range c.Edges {
		out = append(out, edge.Node)
	}
	return out
}

type Edge[T any] struct {
	Node T `json:"node"`
}

type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

type SEO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type ProductOption struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type ProductVariant struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	AvailableForSale bool             `json:"availableForSale"`
	SelectedOptions  []SelectedOption `json:"selectedOptions"`
	Price            Money            `json:"price"`
}

type PriceRange struct {
	MinVariantPrice Money `json:"minVariantPrice"`
	MaxVariantPrice Money `json:"maxVariantPrice"`
}

type Product struct {
	ID               string                     `json:"id"`
	Handle           string                     `json:"handle"`
	AvailableForSale bool                       `json:"availableForSale"`
	Title            string                     `json:"title"`
	Description      string                     `json:"description"`
	DescriptionHTML  string                     `json:"descriptionHtml"`
	Options          []ProductOption            `json:"options"`
	PriceRange       PriceRange                 `json:"priceRange"`
	Variants         Connection[ProductVariant] `json:"variants"`
	Images           Connection[Image]          `json:"images"`
	FeaturedImage    Image                      `json:"featuredImage"`
	SEO              SEO                        `json:"seo"`
	Tags             []string                   `json:"tags"`
	UpdatedAt        time.Time                  `json:"updatedAt"`
}

type Collection struct {
	Handle      string    `json:"handle"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	SEO         SEO       `json:"seo"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CartCost struct {
	SubtotalAmount Money  `json:"subtotalAmount"`
	TotalAmount    Money  `json:"totalAmount"`
	TotalTaxAmount *Money `json:"totalTaxAmount"`
}

type CartProduct struct {
	ID            string `json:"id"`
	Handle        string `json:"handle"`
	Title         string `json:"title"`
	FeaturedImage Image  `json:"featuredImage"`
}

type CartLine struct {
	ID          string `json:"id"`
	Quantity    int    `json:"quantity"`
	Cost        struct {
		TotalAmount Money `json:"totalAmount"`
	} `json:"cost"`
	Merchandise struct {
		ID              string           `json:"id"`
		Title           string           `json:"title"`
		SelectedOptions []SelectedOption `json:"selectedOptions"`
		Product         CartProduct      `json:"product"`
	} `json:"merchandise"`
}

type Cart struct {
	ID            string               `json:"id"`
	CheckoutURL   string               `json:"checkoutUrl"`
	Cost          CartCost             `json:"cost"`
	Lines         Connection[CartLine] `json:"lines"`
	TotalQuantity int                  `json:"totalQuantity"`
}

type Page struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Handle      string    `json:"handle"`
	Body        string    `json:"body"`
	BodySummary string    `json:"bodySummary"`
	SEO         SEO       `json:"seo"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type MenuItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type Menu struct {
	Items []MenuItem `json:"items"`
}
