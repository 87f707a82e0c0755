package domain

import "time"

// HiddenProductTag marks products that must not appear in any listing
// operation unless hidden filtering is explicitly disabled.
const HiddenProductTag = "nextjs-frontend-hidden"

// Product is the normalized, UI-ready projection of an upstream product.
// Variants and images are flat slices, never edge/node connections.
type Product struct {
	ID               string           `json:"id"`
	Handle           string           `json:"handle"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	DescriptionHTML  string           `json:"descriptionHtml"`
	AvailableForSale bool             `json:"availableForSale"`
	Options          []ProductOption  `json:"options"`
	PriceRange       PriceRange       `json:"priceRange"`
	Variants         []ProductVariant `json:"variants"`
	Images           []Image          `json:"images"`
	FeaturedImage    Image            `json:"featuredImage"`
	SEO              SEO              `json:"seo"`
	Tags             []string         `json:"tags"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

type ProductOption struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type PriceRange struct {
	MinVariantPrice Money `json:"minVariantPrice"`
	MaxVariantPrice Money `json:"maxVariantPrice"`
}

type ProductVariant struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	AvailableForSale bool             `json:"availableForSale"`
	SelectedOptions  []SelectedOption `json:"selectedOptions"`
	Price            Money            `json:"price"`
}

type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Image always carries alt text: when the upstream supplies none it is
// derived from the owning product's title and the image filename.
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

// IsHidden reports whether the product carries the hidden marker tag.
func (p *Product) IsHidden() bool {
	for _, tag := range p.Tags {
		if tag == HiddenProductTag {
			return true
		}
	}
	return false
}
