package instruction

import (
	"context"
	"errors"
	"testing"

	errorslib "github.com/goliatone/go-errors"
)

func TestAsGoErrorMapping(t *testing.T) {
	cases := []struct {
		err      error
		category errorslib.Category
		code     string
	}{
		{NewError(KindUnknownCategory, "unknown", nil), errorslib.CategoryValidation, "unknown_category"},
		{NewInvalidInput("missing"), errorslib.CategoryValidation, "invalid_input"},
		{NewError(KindNotFound, "missing", nil), errorslib.CategoryNotFound, "not_found"},
		{context.DeadlineExceeded, errorslib.CategoryOperation, "timeout"},
		{context.Canceled, errorslib.CategoryOperation, "canceled"},
		{NewError(KindNotImpl, "nope", nil), errorslib.CategoryOperation, "not_implemented"},
		{errors.New("boom"), errorslib.CategoryInternal, "internal"},
	}

	for _, tc := range cases {
		mapped := AsGoError(tc.err)
		if mapped == nil {
			t.Fatalf("expected mapping for %v", tc.err)
		}
		if mapped.Category != tc.category {
			t.Fatalf("expected category %s, got %s", tc.category, mapped.Category)
		}
		if mapped.TextCode != tc.code {
			t.Fatalf("expected text code %s, got %s", tc.code, mapped.TextCode)
		}
	}
}

func TestAsGoErrorCarriesFieldErrors(t *testing.T) {
	err := NewInvalidInput("required fields missing", errorslib.FieldError{Field: FieldTitle, Message: "is required"})
	mapped := AsGoError(err)
	if len(mapped.ValidationErrors) != 1 {
		t.Fatalf("expected one field error, got %d", len(mapped.ValidationErrors))
	}
	if mapped.ValidationErrors[0].Field != FieldTitle {
		t.Fatalf("expected field %s, got %s", FieldTitle, mapped.ValidationErrors[0].Field)
	}
}

func TestKindFromWrappedError(t *testing.T) {
	base := NewError(KindUnknownCategory, "unknown", nil)
	wrapped := errors.Join(errors.New("context"), base)
	if KindFromError(wrapped) != KindUnknownCategory {
		t.Fatalf("expected unknown_category, got %s", KindFromError(wrapped))
	}
	if KindFromError(nil) != "" {
		t.Fatalf("expected empty kind for nil")
	}
}
