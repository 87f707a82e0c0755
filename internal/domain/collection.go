package domain

import "time"

// HiddenCollectionPrefix excludes a collection from listings when its handle
// starts with it. The empty-handle "all products" pseudo-collection is exempt.
const HiddenCollectionPrefix = "hidden"

// Collection is the normalized projection of an upstream collection. Path is
// always derived as /search/{handle} and points at the storefront's own
// search routing, not the upstream's.
type Collection struct {
	Handle      string    `json:"handle"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	SEO         SEO       `json:"seo"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Path        string    `json:"path"`
}
