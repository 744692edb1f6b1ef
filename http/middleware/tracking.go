package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/xy-planning-network/switchback"
)

// Tracking assigns every request a transaction ID,
// stashing it in the request context under switchback.TransactionIDKey
// and echoing it in the response's X-Transaction-Id header.
//
// If trust is true, an X-Transaction-Id sent by the client is reused
// instead of generating a new uuid.
func Tracking(trust bool) Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(switchback.TransactionIDHeader)
			if !trust || id == "" {
				id = uuid.NewString()
			}

			w.Header().Set(switchback.TransactionIDHeader, id)
			ctx := context.WithValue(r.Context(), switchback.TransactionIDKey, id)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
