// Package normalize converts upstream wire shapes into the flat domain
// model. Every function is pure and total over its input: absent entities
// come back as nil, never as an error.
package normalize

import (
	"strings"

	"storefront-adapter/internal/domain"
	"storefront-adapter/internal/shopify"
)

// DefaultCurrency is used when a cart carries no currency of its own to
// derive the zero tax amount from.
const DefaultCurrency = "USD"

// Flatten extracts the node of every edge, preserving edge order. It never
// deduplicates.
func Flatten[T any](c shopify.Connection[T]) []T {
	return c.Nodes()
}

// Images flattens an image connection and guarantees alt text on every
// image: a missing altText becomes "{productTitle} - {filename}" where
// filename is the last path segment of the URL without its extension. URLs
// with no extractable segment fall back to the product title alone.
func Images(c shopify.Connection[shopify.Image], productTitle string) []domain.Image {
	flattened := Flatten(c)
	out := make([]domain.Image, 0, len(flattened))
	for _, img := range flattened {
		out = append(out, Image(img, productTitle))
	}
	return out
}

// Image normalizes a single image, deriving alt text when absent.
func Image(img shopify.Image, productTitle string) domain.Image {
	alt := img.AltText
	if alt == "" {
		if name := filenameWithoutExtension(img.URL); name != "" {
			alt = productTitle + " - " + name
		} else {
			alt = productTitle
		}
	}
	return domain.Image{
		URL:     img.URL,
		AltText: alt,
		Width:   img.Width,
		Height:  img.Height,
	}
}

// filenameWithoutExtension returns the trailing path segment of url before
// its final dot, or "" when the URL holds no such segment.
func filenameWithoutExtension(url string) string {
	segment := url
	if i := strings.LastIndex(segment, "/"); i >= 0 {
		segment = segment[i+1:]
	}
	dot := strings.LastIndex(segment, ".")
	if dot <= 0 {
		return ""
	}
	return segment[:dot]
}

// Product converts a wire product, flattening its image and variant
// connections. It returns nil for an absent product, and, when filterHidden
// is set, for a product tagged with the hidden marker.
func Product(p *shopify.Product, filterHidden bool) *domain.Product {
	if p == nil {
		return nil
	}
	if filterHidden && hasHiddenTag(p.Tags) {
		return nil
	}

	options := make([]domain.ProductOption, 0, len(p.Options))
	for _, o := range p.Options {
		options = append(options, domain.ProductOption{ID: o.ID, Name: o.Name, Values: o.Values})
	}

	variants := make([]domain.ProductVariant, 0, len(p.Variants.Edges))
	for _, v := range Flatten(p.Variants) {
		variants = append(variants, Variant(v))
	}

	return &domain.Product{
		ID:               p.ID,
		Handle:           p.Handle,
		Title:            p.Title,
		Description:      p.Description,
		DescriptionHTML:  p.DescriptionHTML,
		AvailableForSale: p.AvailableForSale,
		Options:          options,
		PriceRange: domain.PriceRange{
			MinVariantPrice: money(p.PriceRange.MinVariantPrice),
			MaxVariantPrice: money(p.PriceRange.MaxVariantPrice),
		},
		Variants:      variants,
		Images:        Images(p.Images, p.Title),
		FeaturedImage: Image(p.FeaturedImage, p.Title),
		SEO:           domain.SEO{Title: p.SEO.Title, Description: p.SEO.Description},
		Tags:          p.Tags,
		UpdatedAt:     p.UpdatedAt,
	}
}

// Products normalizes a wire product list with hidden filtering enabled,
// dropping hidden and absent entries while preserving order.
func Products(list []shopify.Product) []domain.Product {
	out := make([]domain.Product, 0, len(list))
	for i := range list {
		if p := Product(&list[i], true); p != nil {
			out = append(out, *p)
		}
	}
	return out
}

// Variant converts a single wire variant.
func Variant(v shopify.ProductVariant) domain.ProductVariant {
	selected := make([]domain.SelectedOption, 0, len(v.SelectedOptions))
	for _, o := range v.SelectedOptions {
		selected = append(selected, domain.SelectedOption{Name: o.Name, Value: o.Value})
	}
	return domain.ProductVariant{
		ID:               v.ID,
		Title:            v.Title,
		AvailableForSale: v.AvailableForSale,
		SelectedOptions:  selected,
		Price:            money(v.Price),
	}
}

// Collection attaches the derived presentation path. It returns nil for an
// absent collection, propagating absence rather than raising.
func Collection(c *shopify.Collection) *domain.Collection {
	if c == nil {
		return nil
	}
	return &domain.Collection{
		Handle:      c.Handle,
		Title:       c.Title,
		Description: c.Description,
		SEO:         domain.SEO{Title: c.SEO.Title, Description: c.SEO.Description},
		UpdatedAt:   c.UpdatedAt,
		Path:        "/search/" + c.Handle,
	}
}

// Collections maps Collection over a list, dropping entries that normalize
// to nothing, order preserving.
func Collections(list []shopify.Collection) []domain.Collection {
	out := make([]domain.Collection, 0, len(list))
	for i := range list {
		if c := Collection(&list[i]); c != nil {
			out = append(out, *c)
		}
	}
	return out
}

// Cart flattens cart lines and guarantees a tax amount: when the upstream
// omits totalTaxAmount it defaults to zero in the cart's own currency. The
// transform is idempotent.
func Cart(c *shopify.Cart) *domain.Cart {
	if c == nil {
		return nil
	}

	tax := domain.Zero(taxCurrency(c))
	if c.Cost.TotalTaxAmount != nil {
		tax = money(*c.Cost.TotalTaxAmount)
	}

	lines := make([]domain.CartLine, 0, len(c.Lines.Edges))
	for _, l := range Flatten(c.Lines) {
		selected := make([]domain.SelectedOption, 0, len(l.Merchandise.SelectedOptions))
		for _, o := range l.Merchandise.SelectedOptions {
			selected = append(selected, domain.SelectedOption{Name: o.Name, Value: o.Value})
		}
		lines = append(lines, domain.CartLine{
			ID:       l.ID,
			Quantity: l.Quantity,
			Cost:     domain.CartLineCost{TotalAmount: money(l.Cost.TotalAmount)},
			Merchandise: domain.Merchandise{
				ID:              l.Merchandise.ID,
				Title:           l.Merchandise.Title,
				SelectedOptions: selected,
				Product: domain.CartProduct{
					ID:            l.Merchandise.Product.ID,
					Handle:        l.Merchandise.Product.Handle,
					Title:         l.Merchandise.Product.Title,
					FeaturedImage: Image(l.Merchandise.Product.FeaturedImage, l.Merchandise.Product.Title),
				},
			},
		})
	}

	return &domain.Cart{
		ID:          c.ID,
		CheckoutURL: c.CheckoutURL,
		Cost: domain.CartCost{
			SubtotalAmount: money(c.Cost.SubtotalAmount),
			TotalAmount:    money(c.Cost.TotalAmount),
			TotalTaxAmount: tax,
		},
		Lines:         lines,
		TotalQuantity: c.TotalQuantity,
	}
}

func taxCurrency(c *shopify.Cart) string {
	if c.Cost.TotalAmount.CurrencyCode != "" {
		return c.Cost.TotalAmount.CurrencyCode
	}
	if c.Cost.SubtotalAmount.CurrencyCode != "" {
		return c.Cost.SubtotalAmount.CurrencyCode
	}
	return DefaultCurrency
}

func money(m shopify.Money) domain.Money {
	return domain.Money{Amount: m.Amount, CurrencyCode: m.CurrencyCode}
}

func hasHiddenTag(tags []string) bool {
	for _, tag := range tags {
		if tag == domain.HiddenProductTag {
			return true
		}
	}
	return false
}
