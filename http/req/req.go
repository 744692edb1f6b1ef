package req

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/switchback"
)

// WithBody stashes the decoded body of a request in ctx.
func WithBody(ctx context.Context, body map[string]any) context.Context {
	return context.WithValue(ctx, switchback.BodyKey, body)
}

// Body retrieves the decoded JSON body of r.
// If no body was decoded for r, Body returns false.
func Body(r *http.Request) (map[string]any, bool) {
	body, ok := r.Context().Value(switchback.BodyKey).(map[string]any)
	if !ok || body == nil {
		return nil, false
	}

	return body, true
}

// Params retrieves the URL path parameters matched for r.
// If the route r matched declares no parameters, Params returns false.
func Params(r *http.Request) (map[string]string, bool) {
	vars := mux.Vars(r)
	if vars == nil {
		return nil, false
	}

	return vars, true
}

// Query retrieves the query string parameters of r.
//
// A parameter set once maps to its string value;
// a parameter set more than once maps to all its values as a []string.
func Query(r *http.Request) (map[string]any, bool) {
	if r.URL == nil {
		return nil, false
	}

	q := make(map[string]any)
	for k, vals := range r.URL.Query() {
		switch len(vals) {
		case 0:
			q[k] = ""
		case 1:
			q[k] = vals[0]
		default:
			q[k] = vals
		}
	}

	return q, true
}
