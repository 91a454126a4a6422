package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig   Category = "config"
	CategoryNotFound Category = "not_found"
	CategoryParam    Category = "param"
	CategoryState    Category = "state"
)

// Error implements the error interface so a Category can be used as an
// errors.Is target.
func (c Category) Error() string {
	return string(c) + " error"
}

// Sentinels matched by errors.Is against any RouterError of the same category.
var (
	ErrConfig       error = CategoryConfig
	ErrNotFound     error = CategoryNotFound
	ErrMissingParam error = CategoryParam
	ErrState        error = CategoryState
)

// RouterError is a structured error with a code, the offending path and an
// optional hint.
type RouterError struct {
	// Code is a unique error identifier (e.g., "R010").
	Code string

	// Category is the error type (config, not_found, ...).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Path is the route path the error refers to, if any.
	Path string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *RouterError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, msg)
	}
	if e.Wrapped != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Wrapped)
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *RouterError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is the sentinel for this error's category.
func (e *RouterError) Is(target error) bool {
	c, ok := target.(Category)
	return ok && c == e.Category
}

// WithPath records the route path the error refers to.
func (e *RouterError) WithPath(path string) *RouterError {
	e.Path = path
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *RouterError) WithSuggestion(s string) *RouterError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *RouterError) WithDetail(d string) *RouterError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *RouterError) Wrap(err error) *RouterError {
	e.Wrapped = err
	return e
}

// New creates a RouterError from a registered error code.
func New(code string) *RouterError {
	template, ok := registry[code]
	if !ok {
		return &RouterError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &RouterError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new RouterError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *RouterError {
	return &RouterError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a RouterError.
func FromError(err error, code string) *RouterError {
	if err == nil {
		return nil
	}
	if re, ok := err.(*RouterError); ok {
		return re
	}
	return New(code).Wrap(err)
}
