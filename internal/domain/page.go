package domain

import "time"

// Page is an upstream-managed content page (about, terms, etc).
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

// MenuItem is a navigation entry whose path has been rewritten into the
// storefront's own routing scheme.
type MenuItem struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}
