// Package errors provides a structured error type with wrapping and metadata
package errors

// Always import the project errors package as perr (platform/errors)

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// Category is the stable machine-facing discriminant returned to clients.
// Values are part of the wire contract; add sparingly
type Category string

const (
	// CategoryValidation is for malformed or structurally-rejected input
	CategoryValidation Category = "VALIDATION_ERROR"

	// CategoryInvalidTimestamp is for lexically well-formed timestamps that
	// denote an impossible calendar instant
	CategoryInvalidTimestamp Category = "INVALID_TIMESTAMP"

	// CategoryNotFound is for missing resources
	CategoryNotFound Category = "NOT_FOUND"

	// CategoryInternal is for any unexpected failure; details never leak to callers
	CategoryInternal Category = "INTERNAL_ERROR"
)

// Advisory sub-codes attached to validation errors. Wording of details may
// vary; these stay stable for clients that want finer-grained handling
const (
	CodeInvalidJSON   = "INVALID_JSON"
	CodeExtraProperty = "EXTRA_PROPERTY"
	CodeInvalidType   = "INVALID_TYPE"
	CodeRequired      = "REQUIRED"
	CodeInvalidFormat = "INVALID_FORMAT"
	CodeCannotBeEmpty = "CANNOT_BE_EMPTY"
	CodeEqualWindow   = "EQUAL_WINDOW"
	CodeUnparsable    = "UNPARSABLE_DATE"
)

// HTTPStatusCategory turns a Category into an http status code
func HTTPStatusCategory(c Category) int {
	switch c {
	case CategoryValidation, CategoryInvalidTimestamp:
		return http.StatusBadRequest
	case CategoryNotFound:
		return http.StatusNotFound
	case CategoryInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// ErrNotFound is a sentinel not found error for convenience
var ErrNotFound = New(CategoryNotFound, "not found")

// Error is the structured error type with wrapping and metadata.
// category is machine facing; code/field/details are advisory wire metadata;
// orig is the wrapped cause and is never written to the wire
type Error struct {
	orig     error
	category Category
	code     string
	field    string
	details  string
}

// Wire is the uniform JSON error envelope returned by the API
type Wire struct {
	Error   Category `json:"error"`
	Code    string   `json:"code,omitempty"`
	Field   string   `json:"field,omitempty"`
	Details string   `json:"details,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := string(e.category)
	if e.details != "" {
		msg = msg + ": " + e.details
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", msg, e.orig)
	}
	return msg
}

// Unwrap returns the wrapped cause, if any
func (e *Error) Unwrap() error { return e.orig }

// Category returns the error category
func (e *Error) Category() Category { return e.category }

// Code returns the advisory sub-code, if any
func (e *Error) Code() string { return e.code }

// Field returns the offending dotted field path, if any
func (e *Error) Field() string { return e.field }

// Details returns the human readable detail string, if any
func (e *Error) Details() string { return e.details }

// ToWire converts an *Error to a Wire payload.
// Internal errors are scrubbed: the wrapped cause and details stay server-side
func (e *Error) ToWire() Wire {
	if e.category == CategoryInternal {
		return Wire{Error: CategoryInternal, Details: "Unexpected server error"}
	}
	return Wire{Error: e.category, Code: e.code, Field: e.field, Details: e.details}
}

// WireFrom converts any error into a Wire payload with best-effort mapping.
// Foreign errors are treated as internal so nothing unexpected leaks
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return e.ToWire()
	}
	return Wire{Error: CategoryInternal, Details: "Unexpected server error"}
}

// Root returns the deepest wrapped cause
func Root(err error) error {
	for err != nil {
		u := stderrs.Unwrap(err)
		if u == nil {
			return err
		}
		err = u
	}
	return nil
}

// CategoryOf extracts a Category from any error, defaulting to internal
func CategoryOf(err error) Category {
	if e, ok := As(err); ok {
		return e.category
	}
	return CategoryInternal
}

// IsCategory reports whether err has the given category
func IsCategory(err error, c Category) bool { return CategoryOf(err) == c }

// IsNotFound reports whether err is a not found error
func IsNotFound(err error) bool { return IsCategory(err, CategoryNotFound) }

// HTTPStatus returns the mapped HTTP status for any error
func HTTPStatus(err error) int { return HTTPStatusCategory(CategoryOf(err)) }

// As unwraps and returns (*Error, true) if err is one of ours
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Mutators (copy-on-write)

// WithField attaches a field path to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithField(err error, field string) error {
	if e, ok := As(err); ok {
		c := *e
		c.field = field
		return &c
	}
	return err
}

// WithCode attaches a sub-code to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithCode(err error, code string) error {
	if e, ok := As(err); ok {
		c := *e
		c.code = code
		return &c
	}
	return err
}

// Constructors

// New returns a new *Error with the given category and detail text
func New(c Category, details string) error { return &Error{category: c, details: details} }

// Newf returns a new *Error with category and formatted details
func Newf(c Category, format string, a ...any) error {
	return &Error{category: c, details: fmt.Sprintf(format, a...)}
}

// Wrap returns a new *Error that wraps orig with category and details
func Wrap(orig error, c Category, details string) error {
	return &Error{category: c, details: details, orig: orig}
}

// Wrapf returns a new *Error that wraps orig with category and formatted details
func Wrapf(orig error, c Category, format string, a ...any) error {
	return &Error{category: c, details: fmt.Sprintf(format, a...), orig: orig}
}

// Sugar

// Validation returns a validation error with sub-code, field path and details
func Validation(code, field, details string) error {
	return &Error{category: CategoryValidation, code: code, field: field, details: details}
}

// Validationf returns a validation error with formatted details
func Validationf(code, field, format string, a ...any) error {
	return &Error{category: CategoryValidation, code: code, field: field, details: fmt.Sprintf(format, a...)}
}

// InvalidTimestamp returns an invalid timestamp error for the given field
func InvalidTimestamp(field, details string) error {
	return &Error{category: CategoryInvalidTimestamp, code: CodeUnparsable, field: field, details: details}
}

// NotFoundf returns a not found error
func NotFoundf(format string, a ...any) error { return Newf(CategoryNotFound, format, a...) }

// Internalf returns a generic internal error
func Internalf(format string, a ...any) error { return Newf(CategoryInternal, format, a...) }

// InternalWrap wraps a cause as an internal error
func InternalWrap(orig error, details string) error { return Wrap(orig, CategoryInternal, details) }

// HTTP bundles status + wire in one shot (nice for handlers)
func HTTP(err error) (int, Wire) {
	if err == nil {
		return http.StatusOK, Wire{}
	}
	return HTTPStatus(err), WireFrom(err)
}
