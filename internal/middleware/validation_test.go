package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type addLinesPayload struct {
	Lines []linePayload `json:"lines" validate:"required,min=1,dive"`
}

type linePayload struct {
	MerchandiseID string `json:"merchandiseId" validate:"required"`
	Quantity      int    `json:"quantity" validate:"min=0"`
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name: "valid payload",
			body: `{"lines":[{"merchandiseId":"gid://shopify/ProductVariant/11","quantity":2}]}`,
		},
		{
			name:    "empty lines",
			body:    `{"lines":[]}`,
			wantErr: true,
		},
		{
			name:    "missing merchandise id",
			body:    `{"lines":[{"quantity":1}]}`,
			wantErr: true,
		},
		{
			name:    "negative quantity",
			body:    `{"lines":[{"merchandiseId":"gid://shopify/ProductVariant/11","quantity":-1}]}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			body:    `{"lines":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/cart/abc/lines", strings.NewReader(tt.body))
			var payload addLinesPayload
			err := DecodeAndValidate(req, &payload)
			if (err != nil) != tt.wantErr {
				t.Errorf("DecodeAndValidate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFormatValidationErrors(t *testing.T) {
	var payload addLinesPayload
	err := ValidateRequest(&payload)
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	formatted := FormatValidationErrors(err)
	if len(formatted) == 0 {
		t.Fatal("expected formatted validation errors")
	}
	if formatted[0].Field != "Lines" {
		t.Errorf("field = %q, want Lines", formatted[0].Field)
	}
	if formatted[0].Message != "This field is required" {
		t.Errorf("message = %q", formatted[0].Message)
	}
}

func TestFormatValidationErrorsNonValidatorError(t *testing.T) {
	formatted := FormatValidationErrors(http.ErrBodyNotAllowed)
	if len(formatted) != 0 {
		t.Errorf("formatted = %v, want none for a non-validator error", formatted)
	}
}
