package domain

import "errors"

var (
	// ErrNotFound is the uniform absence signal for single-entity lookups:
	// product, collection, page and cart misses all return it. List lookups
	// return empty slices instead.
	ErrNotFound = errors.New("not found")
)
