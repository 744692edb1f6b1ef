package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/xy-planning-network/switchback"
)

// CORS sets "Access-Control-Allow" style headers on a response for requests from origin.
// The router must also answer http.MethodOptions for preflight requests to reach CORS.
//
// If origin is empty, NoopAdapter returns and this middleware does nothing.
func CORS(origin string) Adapter {
	if origin == "" {
		return NoopAdapter
	}

	return handlers.CORS(
		handlers.AllowedHeaders([]string{
			"Content-Type",
			switchback.TransactionIDHeader,
		}),
		handlers.AllowedOrigins([]string{origin}),
		handlers.AllowedMethods([]string{
			http.MethodDelete,
			http.MethodGet,
			http.MethodHead,
			http.MethodOptions,
			http.MethodPatch,
			http.MethodPost,
			http.MethodPut,
		}),
		handlers.ExposedHeaders([]string{switchback.TransactionIDHeader}),
	)
}
