package source

import (
	"time"

	"storefront-adapter/internal/domain"
	"storefront-adapter/internal/shopify"
)

// Static catalog served by the fixture. Handles, tags and menu URLs follow
// the conventions of the storefront platform this adapter fronts.

func fixtureTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

func fixtureImage(url, alt string) shopify.Image {
	return shopify.Image{URL: url, AltText: alt, Width: 1000, Height: 1000}
}

func fixtureVariant(id, title string, amount string, options ...shopify.SelectedOption) shopify.ProductVariant {
	return shopify.ProductVariant{
		ID:               id,
		Title:            title,
		AvailableForSale: true,
		SelectedOptions:  options,
		Price:            shopify.Money{Amount: amount, CurrencyCode: "USD"},
	}
}

func variantConnection(variants ...shopify.ProductVariant) shopify.Connection[shopify.ProductVariant] {
	edges := make([]shopify.Edge[shopify.ProductVariant], 0, len(variants))
	for _, v := range variants {
		edges = append(edges, shopify.Edge[shopify.ProductVariant]{Node: v})
	}
	return shopify.Connection[shopify.ProductVariant]{Edges: edges}
}

func imageConnection(images ...shopify.Image) shopify.Connection[shopify.Image] {
	edges := make([]shopify.Edge[shopify.Image], 0, len(images))
	for _, img := range images {
		edges = append(edges, shopify.Edge[shopify.Image]{Node: img})
	}
	return shopify.Connection[shopify.Image]{Edges: edges}
}

var fixtureProducts = []shopify.Product{
	{
		ID:               "gid://shopify/Product/1",
		Handle:           "acme-circles-t-shirt",
		AvailableForSale: true,
		Title:            "Acme Circles T-Shirt",
		Description:      "60% combed ringspun cotton/40% polyester jersey tee.",
		DescriptionHTML:  "<p>60% combed ringspun cotton/40% polyester jersey tee.</p>",
		Options: []shopify.ProductOption{
			{ID: "gid://shopify/ProductOption/1", Name: "Color", Values: []string{"Black", "White"}},
			{ID: "gid://shopify/ProductOption/2", Name: "Size", Values: []string{"S", "M", "L"}},
		},
		PriceRange: shopify.PriceRange{
			MinVariantPrice: shopify.Money{Amount: "20.00", CurrencyCode: "USD"},
			MaxVariantPrice: shopify.Money{Amount: "20.00", CurrencyCode: "USD"},
		},
		Variants: variantConnection(
			fixtureVariant("gid://shopify/ProductVariant/11", "Black / S", "20.00",
				shopify.SelectedOption{Name: "Color", Value: "Black"},
				shopify.SelectedOption{Name: "Size", Value: "S"},
			),
			fixtureVariant("gid://shopify/ProductVariant/12", "White / M", "20.00",
				shopify.SelectedOption{Name: "Color", Value: "White"},
				shopify.SelectedOption{Name: "Size", Value: "M"},
			),
		),
		FeaturedImage: fixtureImage("https://cdn.example.com/products/t-shirt-circles-black.png", ""),
		Images: imageConnection(
			fixtureImage("https://cdn.example.com/products/t-shirt-circles-black.png", ""),
			fixtureImage("https://cdn.example.com/products/t-shirt-circles-white.png", ""),
		),
		SEO:       shopify.SEO{Title: "Acme Circles T-Shirt", Description: "The classic tee, reimagined."},
		Tags:      []string{"apparel", "t-shirt"},
		UpdatedAt: fixtureTime("2024-03-04T09:00:00Z"),
	},
	{
		ID:               "gid://shopify/Product/2",
		Handle:           "acme-drawstring-bag",
		AvailableForSale: true,
		Title:            "Acme Drawstring Bag",
		Description:      "Lightweight cinch backpack with woven drawstrings.",
		DescriptionHTML:  "<p>Lightweight cinch backpack with woven drawstrings.</p>",
		Options: []shopify.ProductOption{
			{ID: "gid://shopify/ProductOption/3", Name: "Color", Values: []string{"Black"}},
		},
		PriceRange: shopify.PriceRange{
			MinVariantPrice: shopify.Money{Amount: "12.00", CurrencyCode: "USD"},
			MaxVariantPrice: shopify.Money{Amount: "12.00", CurrencyCode: "USD"},
		},
		Variants: variantConnection(
			fixtureVariant("gid://shopify/ProductVariant/21", "Black", "12.00",
				shopify.SelectedOption{Name: "Color", Value: "Black"},
			),
		),
		FeaturedImage: fixtureImage("https://cdn.example.com/products/bag-black.png", "Acme drawstring bag"),
		Images: imageConnection(
			fixtureImage("https://cdn.example.com/products/bag-black.png", "Acme drawstring bag"),
		),
		SEO:       shopify.SEO{Title: "Acme Drawstring Bag", Description: "Carry everything, weigh nothing."},
		Tags:      []string{"accessories"},
		UpdatedAt: fixtureTime("2024-02-18T12:30:00Z"),
	},
	{
		ID:               "gid://shopify/Product/3",
		Handle:           "acme-cup",
		AvailableForSale: true,
		Title:            "Acme Cup",
		Description:      "Double-walled ceramic cup, 12oz.",
		DescriptionHTML:  "<p>Double-walled ceramic cup, 12oz.</p>",
		Options: []shopify.ProductOption{
			{ID: "gid://shopify/ProductOption/4", Name: "Color", Values: []string{"White"}},
		},
		PriceRange: shopify.PriceRange{
			MinVariantPrice: shopify.Money{Amount: "15.00", CurrencyCode: "USD"},
			MaxVariantPrice: shopify.Money{Amount: "15.00", CurrencyCode: "USD"},
		},
		Variants: variantConnection(
			fixtureVariant("gid://shopify/ProductVariant/31", "White", "15.00",
				shopify.SelectedOption{Name: "Color", Value: "White"},
			),
		),
		FeaturedImage: fixtureImage("https://cdn.example.com/products/cup-white.png", ""),
		Images: imageConnection(
			fixtureImage("https://cdn.example.com/products/cup-white.png", ""),
		),
		SEO:       shopify.SEO{Title: "Acme Cup", Description: "Keeps drinks hot. Or cold."},
		Tags:      []string{"kitchen"},
		UpdatedAt: fixtureTime("2024-03-01T16:45:00Z"),
	},
	{
		ID:               "gid://shopify/Product/4",
		Handle:           "acme-hoodie",
		AvailableForSale: false,
		Title:            "Acme Hoodie",
		Description:      "Heavyweight fleece hoodie with kangaroo pocket.",
		DescriptionHTML:  "<p>Heavyweight fleece hoodie with kangaroo pocket.</p>",
		Options: []shopify.ProductOption{
			{ID: "gid://shopify/ProductOption/5", Name: "Size", Values: []string{"M", "L"}},
		},
		PriceRange: shopify.PriceRange{
			MinVariantPrice: shopify.Money{Amount: "50.00", CurrencyCode: "USD"},
			MaxVariantPrice: shopify.Money{Amount: "50.00", CurrencyCode: "USD"},
		},
		Variants: variantConnection(
			fixtureVariant("gid://shopify/ProductVariant/41", "M", "50.00",
				shopify.SelectedOption{Name: "Size", Value: "M"},
			),
		),
		FeaturedImage: fixtureImage("https://cdn.example.com/products/hoodie-gray.png", ""),
		Images: imageConnection(
			fixtureImage("https://cdn.example.com/products/hoodie-gray.png", ""),
		),
		SEO:       shopify.SEO{Title: "Acme Hoodie", Description: "For cold offices everywhere."},
		Tags:      []string{"apparel"},
		UpdatedAt: fixtureTime("2024-01-22T08:15:00Z"),
	},
	{
		ID:               "gid://shopify/Product/5",
		Handle:           "acme-gift-card",
		AvailableForSale: true,
		Title:            "Acme Gift Card",
		Description:      "Store credit, delivered by email.",
		DescriptionHTML:  "<p>Store credit, delivered by email.</p>",
		PriceRange: shopify.PriceRange{
			MinVariantPrice: shopify.Money{Amount: "25.00", CurrencyCode: "USD"},
			MaxVariantPrice: shopify.Money{Amount: "100.00", CurrencyCode: "USD"},
		},
		Variants: variantConnection(
			fixtureVariant("gid://shopify/ProductVariant/51", "$25", "25.00",
				shopify.SelectedOption{Name: "Denomination", Value: "25"},
			),
			fixtureVariant("gid://shopify/ProductVariant/52", "$100", "100.00",
				shopify.SelectedOption{Name: "Denomination", Value: "100"},
			),
		),
		FeaturedImage: fixtureImage("https://cdn.example.com/products/gift-card.png", ""),
		Images: imageConnection(
			fixtureImage("https://cdn.example.com/products/gift-card.png", ""),
		),
		SEO:       shopify.SEO{Title: "Acme Gift Card", Description: "The gift that always fits."},
		Tags:      []string{domain.HiddenProductTag},
		UpdatedAt: fixtureTime("2024-02-02T10:00:00Z"),
	},
}

var fixtureCollections = []shopify.Collection{
	{
		Handle:      "apparel",
		Title:       "Apparel",
		Description: "Shirts, hoodies and everything wearable.",
		SEO:         shopify.SEO{Title: "Apparel", Description: "Acme apparel collection."},
		UpdatedAt:   fixtureTime("2024-03-04T09:00:00Z"),
	},
	{
		Handle:      "accessories",
		Title:       "Accessories",
		Description: "Bags, cups and the rest.",
		SEO:         shopify.SEO{Title: "Accessories", Description: "Acme accessories collection."},
		UpdatedAt:   fixtureTime("2024-02-18T12:30:00Z"),
	},
	{
		Handle:      "hidden-homepage-featured-items",
		Title:       "Homepage Featured Items",
		Description: "Internal collection backing the homepage grid.",
		UpdatedAt:   fixtureTime("2024-03-04T09:00:00Z"),
	},
	{
		Handle:      "hidden-homepage-carousel",
		Title:       "Homepage Carousel",
		Description: "Internal collection backing the homepage carousel.",
		UpdatedAt:   fixtureTime("2024-03-04T09:00:00Z"),
	},
}

var fixtureCollectionMembers = map[string][]string{
	"apparel":                        {"acme-circles-t-shirt", "acme-hoodie"},
	"accessories":                    {"acme-drawstring-bag", "acme-cup"},
	"hidden-homepage-featured-items": {"acme-circles-t-shirt", "acme-drawstring-bag", "acme-cup"},
	"hidden-homepage-carousel":       {"acme-hoodie", "acme-cup"},
}

var fixturePages = []shopify.Page{
	{
		ID:          "gid://shopify/Page/1",
		Title:       "About",
		Handle:      "about",
		Body:        "<p>Acme sells deliberately generic products.</p>",
		BodySummary: "Acme sells deliberately generic products.",
		SEO:         shopify.SEO{Title: "About Acme", Description: "Who we are."},
		CreatedAt:   fixtureTime("2023-11-01T00:00:00Z"),
		UpdatedAt:   fixtureTime("2024-01-05T00:00:00Z"),
	},
	{
		ID:          "gid://shopify/Page/2",
		Title:       "Terms & Conditions",
		Handle:      "terms-conditions",
		Body:        "<p>The usual terms, applied as usual.</p>",
		BodySummary: "The usual terms, applied as usual.",
		CreatedAt:   fixtureTime("2023-11-01T00:00:00Z"),
		UpdatedAt:   fixtureTime("2023-11-01T00:00:00Z"),
	},
}

var fixtureMenus = map[string][]shopify.MenuItem{
	"next-js-frontend-header-menu": {
		{Title: "All", URL: "https://demo.example.com/collections/all"},
		{Title: "Apparel", URL: "https://demo.example.com/collections/apparel"},
		{Title: "Accessories", URL: "https://demo.example.com/collections/accessories"},
	},
	"next-js-frontend-footer-menu": {
		{Title: "About", URL: "https://demo.example.com/pages/about"},
		{Title: "Terms & Conditions", URL: "https://demo.example.com/pages/terms-conditions"},
	},
}
