// Package repository is the Postgres-backed source implementation: the
// "real backend" interchangeable with the fixture behind the same source
// contracts. Rows are projected into the upstream wire shapes so the
// normalize seam stays identical across backends.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"storefront-adapter/internal/shopify"
)

// Catalog serves catalog reads from Postgres.
type Catalog struct {
	db *sql.DB
}

func NewCatalog(db *sql.DB) *Catalog {
	return &Catalog{db: db}
}

const productColumns = `
	id, handle, title, description, description_html, available_for_sale,
	price_min, price_max, currency,
	featured_image_url, featured_image_alt, featured_image_width, featured_image_height,
	seo_title, seo_description, tags, options, updated_at
`

func (c *Catalog) ProductByHandle(ctx context.Context, handle string) (*shopify.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE handle = $1`

	row := c.db.QueryRowContext(ctx, query, handle)
	product, err := c.scanProduct(ctx, row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

func (c *Catalog) Products(ctx context.Context, searchQuery, sortKey string, reverse bool) ([]shopify.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY handle`

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	return c.collectProducts(ctx, rows)
}

func (c *Catalog) ProductRecommendations(ctx context.Context, productID string) ([]shopify.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id <> $1 ORDER BY handle`

	rows, err := c.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	defer rows.Close()

	return c.collectProducts(ctx, rows)
}

func (c *Catalog) CollectionByHandle(ctx context.Context, handle string) (*shopify.Collection, error) {
	query := `
		SELECT handle, title, description, seo_title, seo_description, updated_at
		FROM collections WHERE handle = $1
	`

	var col shopify.Collection
	err := c.db.QueryRowContext(ctx, query, handle).Scan(
		&col.Handle, &col.Title, &col.Description,
		&col.SEO.Title, &col.SEO.Description, &col.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	return &col, nil
}

func (c *Catalog) Collections(ctx context.Context) ([]shopify.Collection, error) {
	query := `
		SELECT handle, title, description, seo_title, seo_description, updated_at
		FROM collections ORDER BY title
	`

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	var out []shopify.Collection
	for rows.Next() {
		var col shopify.Collection
		if err := rows.Scan(
			&col.Handle, &col.Title, &col.Description,
			&col.SEO.Title, &col.SEO.Description, &col.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		out = append(out, col)
	}
	return out, rows.Err()
}

func (c *Catalog) CollectionProducts(ctx context.Context, handle, sortKey string, reverse bool) ([]shopify.Product, error) {
	// Distinguish an unknown collection (nil) from an empty one (empty
	// slice), matching the source contract.
	collection, err := c.CollectionByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if collection == nil {
		return nil, nil
	}

	query := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN collection_products cp ON cp.product_id = p.id
		WHERE cp.collection_handle = $1
		ORDER BY cp.position
	`

	rows, err := c.db.QueryContext(ctx, query, handle)
	if err != nil {
		return nil, fmt.Errorf("failed to list collection products: %w", err)
	}
	defer rows.Close()

	products, err := c.collectProducts(ctx, rows)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []shopify.Product{}
	}
	return products, nil
}

func (c *Catalog) PageByHandle(ctx context.Context, handle string) (*shopify.Page, error) {
	query := `
		SELECT id, title, handle, body, body_summary, seo_title, seo_description, created_at, updated_at
		FROM pages WHERE handle = $1
	`

	var p shopify.Page
	err := c.db.QueryRowContext(ctx, query, handle).Scan(
		&p.ID, &p.Title, &p.Handle, &p.Body, &p.BodySummary,
		&p.SEO.Title, &p.SEO.Description, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get page: %w", err)
	}
	return &p, nil
}

func (c *Catalog) Pages(ctx context.Context) ([]shopify.Page, error) {
	query := `
		SELECT id, title, handle, body, body_summary, seo_title, seo_description, created_at, updated_at
		FROM pages ORDER BY title
	`

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	defer rows.Close()

	var out []shopify.Page
	for rows.Next() {
		var p shopify.Page
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Handle, &p.Body, &p.BodySummary,
			&p.SEO.Title, &p.SEO.Description, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (c *Catalog) MenuByHandle(ctx context.Context, handle string) ([]shopify.MenuItem, error) {
	query := `
		SELECT title, url FROM menu_items
		WHERE menu_handle = $1 ORDER BY position
	`

	rows, err := c.db.QueryContext(ctx, query, handle)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu: %w", err)
	}
	defer rows.Close()

	var out []shopify.MenuItem
	for rows.Next() {
		var item shopify.MenuItem
		if err := rows.Scan(&item.Title, &item.URL); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanProduct reads one product row and loads its variant and image
// connections.
func (c *Catalog) scanProduct(ctx context.Context, row rowScanner) (*shopify.Product, error) {
	var (
		p           shopify.Product
		tagsJSON    []byte
		optionsJSON []byte
		currency    string
		priceMin    string
		priceMax    string
		featuredURL string
		featuredAlt string
		featuredW   int
		featuredH   int
	)
	err := row.Scan(
		&p.ID, &p.Handle, &p.Title, &p.Description, &p.DescriptionHTML, &p.AvailableForSale,
		&priceMin, &priceMax, &currency,
		&featuredURL, &featuredAlt, &featuredW, &featuredH,
		&p.SEO.Title, &p.SEO.Description, &tagsJSON, &optionsJSON, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(tagsJSON) > 0 {
		if err := json.Unmarshal(tagsJSON, &p.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode product tags: %w", err)
		}
	}
	if len(optionsJSON) > 0 {
		if err := json.Unmarshal(optionsJSON, &p.Options); err != nil {
			return nil, fmt.Errorf("failed to decode product options: %w", err)
		}
	}

	p.PriceRange = shopify.PriceRange{
		MinVariantPrice: shopify.Money{Amount: priceMin, CurrencyCode: currency},
		MaxVariantPrice: shopify.Money{Amount: priceMax, CurrencyCode: currency},
	}
	p.FeaturedImage = shopify.Image{URL: featuredURL, AltText: featuredAlt, Width: featuredW, Height: featuredH}

	if err := c.loadVariants(ctx, &p); err != nil {
		return nil, err
	}
	if err := c.loadImages(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Catalog) loadVariants(ctx context.Context, p *shopify.Product) error {
	query := `
		SELECT id, title, available_for_sale, price, currency, selected_options
		FROM product_variants WHERE product_id = $1 ORDER BY position
	`

	rows, err := c.db.QueryContext(ctx, query, p.ID)
	if err != nil {
		return fmt.Errorf("failed to list variants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			v           shopify.ProductVariant
			price       string
			currency    string
			optionsJSON []byte
		)
		if err := rows.Scan(&v.ID, &v.Title, &v.AvailableForSale, &price, &currency, &optionsJSON); err != nil {
			return fmt.Errorf("failed to scan variant: %w", err)
		}
		v.Price = shopify.Money{Amount: price, CurrencyCode: currency}
		if len(optionsJSON) > 0 {
			if err := json.Unmarshal(optionsJSON, &v.SelectedOptions); err != nil {
				return fmt.Errorf("failed to decode variant options: %w", err)
			}
		}
		p.Variants.Edges = append(p.Variants.Edges, shopify.Edge[shopify.ProductVariant]{Node: v})
	}
	return rows.Err()
}

func (c *Catalog) loadImages(ctx context.Context, p *shopify.Product) error {
	query := `
		SELECT url, alt_text, width, height
		FROM product_images WHERE product_id = $1 ORDER BY position
	`

	rows, err := c.db.QueryContext(ctx, query, p.ID)
	if err != nil {
		return fmt.Errorf("failed to list images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var img shopify.Image
		if err := rows.Scan(&img.URL, &img.AltText, &img.Width, &img.Height); err != nil {
			return fmt.Errorf("failed to scan image: %w", err)
		}
		p.Images.Edges = append(p.Images.Edges, shopify.Edge[shopify.Image]{Node: img})
	}
	return rows.Err()
}

func (c *Catalog) collectProducts(ctx context.Context, rows *sql.Rows) ([]shopify.Product, error) {
	var out []shopify.Product
	for rows.Next() {
		p, err := c.scanProduct(ctx, rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}
