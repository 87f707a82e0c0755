package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"storefront-adapter/internal/cache"
	"storefront-adapter/internal/domain"
	"storefront-adapter/internal/normalize"
	"storefront-adapter/internal/shopify"
	"storefront-adapter/internal/source"

	"go.uber.org/zap"
)

// Product sort keys recognized by search and collection listings. Anything
// else is ignored and leaves the input order untouched.
const (
	SortKeyTitle     = "TITLE"
	SortKeyPrice     = "PRICE"
	SortKeyCreatedAt = "CREATED_AT"
)

// CatalogService exposes every catalog read: products, collections, pages
// and menus, fetched from the configured source, normalized, then filtered
// and sorted for presentation.
type CatalogService interface {
	GetProduct(ctx context.Context, handle string) (*domain.Product, error)
	GetProducts(ctx context.Context, query, sortKey string, reverse bool) ([]domain.Product, error)
	GetProductRecommendations(ctx context.Context, productID string) ([]domain.Product, error)
	GetCollection(ctx context.Context, handle string) (*domain.Collection, error)
	GetCollections(ctx context.Context) ([]domain.Collection, error)
	GetCollectionProducts(ctx context.Context, handle, sortKey string, reverse bool) ([]domain.Product, error)
	GetPage(ctx context.Context, handle string) (*domain.Page, error)
	GetPages(ctx context.Context) ([]domain.Page, error)
	GetMenu(ctx context.Context, handle string) ([]domain.MenuItem, error)
}

type catalogService struct {
	catalog  source.CatalogSource
	store    cache.Store
	storeURL string
	logger   *zap.Logger
}

// NewCatalogService creates a new CatalogService. storeURL is the absolute
// store URL menu paths are stripped of.
func NewCatalogService(catalog source.CatalogSource, store cache.Store, storeURL string, logger *zap.Logger) CatalogService {
	return &catalogService{
		catalog:  catalog,
		store:    store,
		storeURL: storeURL,
		logger:   logger,
	}
}

func (s *catalogService) GetProduct(ctx context.Context, handle string) (*domain.Product, error) {
	key := "product:" + handle
	var cached domain.Product
	if s.store.Get(ctx, key, &cached) {
		return &cached, nil
	}

	wire, err := s.catalog.ProductByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	// Single-product lookup keeps hidden products reachable: direct links
	// to a hidden product still resolve, only listings exclude it.
	product := normalize.Product(wire, false)
	if product == nil {
		return nil, domain.ErrNotFound
	}

	s.store.Set(ctx, key, product, cache.TagProducts)
	return product, nil
}

func (s *catalogService) GetProducts(ctx context.Context, query, sortKey string, reverse bool) ([]domain.Product, error) {
	key := listKey("products", reverse, query, sortKey)
	var cached []domain.Product
	if s.store.Get(ctx, key, &cached) {
		return cached, nil
	}

	wire, err := s.catalog.Products(ctx, query, sortKey, reverse)
	if err != nil {
		return nil, err
	}
	products := normalize.Products(wire)
	products = filterByQuery(products, query)
	sortProducts(products, sortKey, reverse)

	s.store.Set(ctx, key, products, cache.TagProducts)
	return products, nil
}

func (s *catalogService) GetProductRecommendations(ctx context.Context, productID string) ([]domain.Product, error) {
	wire, err := s.catalog.ProductRecommendations(ctx, productID)
	if err != nil {
		return nil, err
	}
	return normalize.Products(wire), nil
}

func (s *catalogService) GetCollection(ctx context.Context, handle string) (*domain.Collection, error) {
	key := "collection:" + handle
	var cached domain.Collection
	if s.store.Get(ctx, key, &cached) {
		return &cached, nil
	}

	wire, err := s.catalog.CollectionByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	collection := normalize.Collection(wire)
	if collection == nil {
		return nil, domain.ErrNotFound
	}

	s.store.Set(ctx, key, collection, cache.TagCollections)
	return collection, nil
}

func (s *catalogService) GetCollections(ctx context.Context) ([]domain.Collection, error) {
	key := "collections"
	var cached []domain.Collection
	if s.store.Get(ctx, key, &cached) {
		return cached, nil
	}

	wire, err := s.catalog.Collections(ctx)
	if err != nil {
		return nil, err
	}

	// The synthetic "All" pseudo-collection heads the list. Its empty handle
	// exempts it from the hidden prefix rule by construction.
	collections := []domain.Collection{{
		Handle:      "",
		Title:       "All",
		Description: "All products",
		SEO:         domain.SEO{Title: "All", Description: "All products"},
		Path:        "/search",
	}}
	for _, c := range normalize.Collections(wire) {
		if strings.HasPrefix(c.Handle, domain.HiddenCollectionPrefix) {
			continue
		}
		collections = append(collections, c)
	}

	s.store.Set(ctx, key, collections, cache.TagCollections)
	return collections, nil
}

func (s *catalogService) GetCollectionProducts(ctx context.Context, handle, sortKey string, reverse bool) ([]domain.Product, error) {
	key := listKey("collection-products", reverse, handle, sortKey)
	var cached []domain.Product
	if s.store.Get(ctx, key, &cached) {
		return cached, nil
	}

	wire, err := s.catalog.CollectionProducts(ctx, handle, sortKey, reverse)
	if err != nil {
		return nil, err
	}
	if wire == nil {
		// Unknown collection handle: an empty listing, not an error. Only a
		// lookup of the collection itself reports absence.
		s.logger.Info("No collection found", zap.String("handle", handle))
		return []domain.Product{}, nil
	}
	products := normalize.Products(wire)
	sortProducts(products, sortKey, reverse)

	s.store.Set(ctx, key, products, cache.TagCollections, cache.TagProducts)
	return products, nil
}

func (s *catalogService) GetPage(ctx context.Context, handle string) (*domain.Page, error) {
	wire, err := s.catalog.PageByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if wire == nil {
		return nil, domain.ErrNotFound
	}
	return pageFromWire(wire), nil
}

func (s *catalogService) GetPages(ctx context.Context) ([]domain.Page, error) {
	wire, err := s.catalog.Pages(ctx)
	if err != nil {
		return nil, err
	}
	pages := make([]domain.Page, 0, len(wire))
	for i := range wire {
		pages = append(pages, *pageFromWire(&wire[i]))
	}
	return pages, nil
}

func (s *catalogService) GetMenu(ctx context.Context, handle string) ([]domain.MenuItem, error) {
	key := "menu:" + handle
	var cached []domain.MenuItem
	if s.store.Get(ctx, key, &cached) {
		return cached, nil
	}

	wire, err := s.catalog.MenuByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	items := make([]domain.MenuItem, 0, len(wire))
	for _, item := range wire {
		items = append(items, domain.MenuItem{
			Title: item.Title,
			Path:  s.rewriteMenuPath(item.URL),
		})
	}

	s.store.Set(ctx, key, items, cache.TagCollections)
	return items, nil
}

// listKey builds a cache key for a listing. Caller-controlled parts are
// length-prefixed so values containing the separator cannot collide across
// different part boundaries.
func listKey(prefix string, reverse bool, parts ...string) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, part := range parts {
		fmt.Fprintf(&b, ":%d:%s", len(part), part)
	}
	fmt.Fprintf(&b, ":%t", reverse)
	return b.String()
}

// rewriteMenuPath translates an upstream menu URL into the storefront's own
// routing: the store domain is stripped exactly once, then the upstream
// section prefixes are rewritten (/collections -> /search, /pages removed).
// Already-rewritten paths pass through unchanged.
func (s *catalogService) rewriteMenuPath(url string) string {
	path := url
	if s.storeURL != "" {
		path = strings.Replace(path, s.storeURL, "", 1)
	}
	path = strings.Replace(path, "/collections", "/search", 1)
	path = strings.Replace(path, "/pages", "", 1)
	return path
}

// filterByQuery retains products whose title or description contains the
// query as a case-insensitive substring. An empty query keeps everything.
func filterByQuery(products []domain.Product, query string) []domain.Product {
	if query == "" {
		return products
	}
	needle := strings.ToLower(query)
	out := products[:0]
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			out = append(out, p)
		}
	}
	return out
}

// sortProducts sorts in place by the recognized sort key, ascending unless
// reverse is set. The sort is stable: equal keys keep their prior relative
// order. Unrecognized keys leave the input order alone.
func sortProducts(products []domain.Product, sortKey string, reverse bool) {
	cmp := comparatorFor(sortKey)
	if cmp == nil {
		return
	}
	sort.SliceStable(products, func(i, j int) bool {
		c := cmp(&products[i], &products[j])
		if reverse {
			return c > 0
		}
		return c < 0
	})
}

// comparatorFor returns a three-way comparison for the sort key, or nil when
// the key is unrecognized.
func comparatorFor(sortKey string) func(a, b *domain.Product) int {
	switch strings.ToUpper(strings.ReplaceAll(sortKey, "-", "_")) {
	case SortKeyTitle:
		return func(a, b *domain.Product) int {
			return strings.Compare(a.Title, b.Title)
		}
	case SortKeyPrice:
		return func(a, b *domain.Product) int {
			return compareAmounts(a.PriceRange.MinVariantPrice.Amount, b.PriceRange.MinVariantPrice.Amount)
		}
	case SortKeyCreatedAt:
		// The projection carries updatedAt only; it stands in for creation
		// time the way the listing UI uses it (newest first under reverse).
		return func(a, b *domain.Product) int {
			if a.UpdatedAt.Before(b.UpdatedAt) {
				return -1
			}
			if a.UpdatedAt.After(b.UpdatedAt) {
				return 1
			}
			return 0
		}
	default:
		return nil
	}
}

func compareAmounts(a, b string) int {
	av, aerr := strconv.ParseFloat(a, 64)
	bv, berr := strconv.ParseFloat(b, 64)
	if aerr != nil || berr != nil {
		return strings.Compare(a, b)
	}
	if av < bv {
		return -1
	}
	if av > bv {
		return 1
	}
	return 0
}

func pageFromWire(p *shopify.Page) *domain.Page {
	return &domain.Page{
		ID:          p.ID,
		Title:       p.Title,
		Handle:      p.Handle,
		Body:        p.Body,
		BodySummary: p.BodySummary,
		SEO:         domain.SEO{Title: p.SEO.Title, Description: p.SEO.Description},
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
