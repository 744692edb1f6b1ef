package validate

import (
	"fmt"
	"net/http"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/req"
)

// A Predicate reports whether a value is acceptable.
type Predicate func(v any) bool

// A Field pairs a name in a request container with the Predicate its value must satisfy.
//
// A nil Check only requires the field be present.
type Field struct {
	Name  string
	Check Predicate
}

// Fields is an ordered set of Field.
type Fields []Field

// Valid asserts every Field is named and no name repeats.
func (fs Fields) Valid() error {
	seen := make(map[string]bool, len(fs))
	for i, f := range fs {
		if f.Name == "" {
			return fmt.Errorf("%w: field at index %d has no name", switchback.ErrNotValid, i)
		}

		if seen[f.Name] {
			return fmt.Errorf("%w: field %q declared more than once", switchback.ErrNotValid, f.Name)
		}

		seen[f.Name] = true
	}

	return nil
}

// A Validator checks a request, returning nil when the request may proceed.
type Validator func(r *http.Request) error

// Adapter converts v into a [middleware.Adapter].
// When v rejects a request, onErr handles it and the wrapped handler is not called.
func Adapter(v Validator, onErr func(http.ResponseWriter, *http.Request, error)) middleware.Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := v(r); err != nil {
				onErr(w, r, err)
				return
			}

			h.ServeHTTP(w, r)
		})
	}
}

// Body compiles fields into a Validator checking the decoded JSON body of a request.
func Body(routePath string, fields Fields) Validator {
	return compile(routePath, fields, bodySource)
}

// Params compiles params into a Validator checking the URL path parameters of a request.
func Params(routePath string, params Fields) Validator {
	return compile(routePath, params, paramsSource)
}

// Query compiles queryFields into a Validator checking the query string parameters of a request.
func Query(routePath string, queryFields Fields) Validator {
	return compile(routePath, queryFields, querySource)
}

// A source describes a request container and how failures against it read.
type source struct {
	read        func(*http.Request) (map[string]any, bool)
	noContainer string
	absent      string
	invalid     string
}

var (
	bodySource = source{
		read:        req.Body,
		noContainer: "no body in request",
		absent:      "no field %q in body of request",
		invalid:     "field %q is not valid",
	}

	paramsSource = source{
		read: func(r *http.Request) (map[string]any, bool) {
			params, ok := req.Params(r)
			if !ok {
				return nil, false
			}

			m := make(map[string]any, len(params))
			for k, v := range params {
				m[k] = v
			}

			return m, true
		},
		noContainer: "no URL parameters in request",
		absent:      "no parameter %q in url",
		invalid:     "URL parameter %q is not valid",
	}

	querySource = source{
		read:        req.Query,
		noContainer: "no query string in request",
		absent:      "no query string param %q in url",
		invalid:     "URL query string param %q is not valid",
	}
)

func compile(routePath string, fields Fields, src source) Validator {
	fs := make(Fields, len(fields))
	copy(fs, fields)

	return func(r *http.Request) error {
		container, ok := src.read(r)
		if !ok {
			return &Error{
				Kind:   NoContainer,
				Detail: Detail{Path: routePath},
				msg:    src.noContainer,
			}
		}

		for _, f := range fs {
			val, ok := container[f.Name]
			if !ok {
				return &Error{
					Kind:   Absent,
					Detail: Detail{Field: f.Name, Path: routePath},
					msg:    fmt.Sprintf(src.absent, f.Name),
				}
			}

			if f.Check != nil && !f.Check(val) {
				return &Error{
					Kind:   Invalid,
					Detail: Detail{Field: f.Name, Value: val, Path: routePath},
					msg:    fmt.Sprintf(src.invalid, f.Name),
				}
			}
		}

		return nil
	}
}
