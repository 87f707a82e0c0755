package shopify

import (
	"errors"
	"fmt"
)

// UpstreamError is a structured failure reported by the upstream API: either
// an entry in the response's errors list or a request-level failure carrying
// an HTTP status. When the errors list holds more than one entry only the
// first is kept.
type UpstreamError struct {
	Status  int
	Code    string
	Message string
	Query   string
	Cause   error
}

func (e *UpstreamError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("upstream error (status %d, code %s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("upstream error (status %d): %s", e.Status, e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.Cause }

// TransportError is an unclassified failure: the request never produced a
// decodable upstream response (dial failure, timeout, malformed body).
type TransportError struct {
	Err   error
	Query string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// classify maps an arbitrary failure into the two-kind error taxonomy. An
// error that is already classified passes through untouched; everything else
// becomes a TransportError tied to the query that produced it.
func classify(err error, query string) error {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return err
	}
	var te *TransportError
	if errors.As(err, &te) {
		return err
	}
	return &TransportError{Err: err, Query: query}
}
