package middleware

import (
	"fmt"
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/switchback"
)

// ReportPanic recovers panics raised by the handler, responding through onErr.
//
// Outside of development, the panic is reported to Sentry before recovering.
func ReportPanic(env switchback.Environment, onErr ErrorHandler) Adapter {
	return func(h http.Handler) http.Handler {
		if !env.IsDevelopment() {
			h = sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle(h)
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					onErr(w, r, fmt.Errorf("recovered from panic: %v", rec))
				}
			}()

			h.ServeHTTP(w, r)
		})
	}
}
