package instruction

import (
	"context"
	"errors"

	errorslib "github.com/goliatone/go-errors"
)

// ErrorKind defines instruction error kinds.
type ErrorKind string

const (
	KindUnknownCategory ErrorKind = "unknown_category"
	KindInvalidInput    ErrorKind = "invalid_input"
	KindNotFound        ErrorKind = "not_found"
	KindTimeout         ErrorKind = "timeout"
	KindCanceled        ErrorKind = "canceled"
	KindInternal        ErrorKind = "internal"
	KindNotImpl         ErrorKind = "not_implemented"
)

// InstructionError wraps errors with a kind and optional field problems.
type InstructionError struct {
	Kind   ErrorKind
	Msg    string
	Err    error
	Fields []errorslib.FieldError
}

func (e *InstructionError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *InstructionError) Unwrap() error {
	return e.Err
}

// NewError creates a new instruction error.
func NewError(kind ErrorKind, msg string, err error) *InstructionError {
	return &InstructionError{Kind: kind, Msg: msg, Err: err}
}

// NewInvalidInput creates an invalid_input error listing the offending fields.
func NewInvalidInput(msg string, fields ...errorslib.FieldError) *InstructionError {
	return &InstructionError{Kind: KindInvalidInput, Msg: msg, Fields: fields}
}

// AsGoError maps an error into a go-errors error.
func AsGoError(err error) *errorslib.Error {
	if err == nil {
		return nil
	}

	var ge *errorslib.Error
	if errors.As(err, &ge) {
		return ge
	}

	kind := KindInternal
	msg := err.Error()
	var fields []errorslib.FieldError

	var instErr *InstructionError
	if errors.As(err, &instErr) {
		kind = instErr.Kind
		fields = instErr.Fields
		if instErr.Msg != "" {
			msg = instErr.Msg
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}
	if errors.Is(err, context.Canceled) {
		kind = KindCanceled
	}

	switch kind {
	case KindUnknownCategory:
		return errorslib.New(msg, errorslib.CategoryValidation).WithTextCode("unknown_category")
	case KindInvalidInput:
		return errorslib.NewValidation(msg, fields...).WithTextCode("invalid_input")
	case KindNotFound:
		return errorslib.New(msg, errorslib.CategoryNotFound).WithTextCode("not_found")
	case KindTimeout:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("timeout")
	case KindCanceled:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("canceled")
	case KindNotImpl:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("not_implemented")
	default:
		return errorslib.New(msg, errorslib.CategoryInternal).WithTextCode("internal")
	}
}

// KindFromError maps an error to its instruction error kind.
func KindFromError(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var instErr *InstructionError
	if errors.As(err, &instErr) {
		return instErr.Kind
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	if errors.Is(err, context.Canceled) {
		return KindCanceled
	}

	return KindInternal
}

// IsUnknownCategory reports whether err is an unknown category failure.
func IsUnknownCategory(err error) bool {
	return KindFromError(err) == KindUnknownCategory
}

// FieldsFromError returns field problems carried by err.
func FieldsFromError(err error) []errorslib.FieldError {
	var instErr *InstructionError
	if errors.As(err, &instErr) {
		return instErr.Fields
	}
	return nil
}
