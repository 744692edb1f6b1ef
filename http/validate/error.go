package validate

import (
	"net/http"

	"github.com/xy-planning-network/switchback"
)

// A Kind classifies why a request failed validation.
type Kind int

const (
	// NoContainer means the request carries no body, parameters, or query string at all.
	NoContainer Kind = iota + 1

	// Absent means a declared field is missing from the container.
	Absent

	// Invalid means a declared field is present but its Predicate rejected the value.
	Invalid
)

// A Detail identifies what failed validation.
type Detail struct {
	Field string `json:"field,omitempty"`
	Value any    `json:"value,omitempty"`
	Path  string `json:"path"`
}

// An Error is a request failing a compiled Validator.
type Error struct {
	Kind   Kind
	Detail Detail
	msg    string
}

func (e *Error) Error() string { return e.msg }

func (*Error) Unwrap() error { return switchback.ErrNotValid }

// StatusCode reports the HTTP status a response to the failed request ought to use.
func (*Error) StatusCode() int { return http.StatusBadRequest }

// ErrorName names the class of error in responses.
func (*Error) ErrorName() string { return "ValidationError" }

// Details exposes Detail to response formatters.
// The value of an Invalid field is always present, even when it is null.
func (e *Error) Details() any {
	if e.Kind != Invalid {
		return e.Detail
	}

	return invalidDetail(e.Detail)
}

type invalidDetail struct {
	Field string `json:"field"`
	Value any    `json:"value"`
	Path  string `json:"path"`
}
