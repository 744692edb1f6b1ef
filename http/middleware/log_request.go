package middleware

import (
	"fmt"
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/logger"
)

// LogRequest logs the request's method, requested URL, response status,
// and originating IP address using the enclosed implementation of logger.Logger.
//
// LogRequest scrubs the values for the following keys:
//   - password
//
// if logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(h, w, r)

			uri := r.URL.Path
			q := r.URL.Query()
			switchback.Mask(q, "password")
			if query := q.Encode(); query != "" {
				uri += "?" + query
			}

			data := map[string]any{
				"duration": m.Duration.String(),
				"method":   r.Method,
				"size":     m.Written,
				"status":   m.Code,
				"uri":      uri,
			}

			if ip, ok := r.Context().Value(switchback.IpAddrKey).(string); ok {
				data["ip"] = ip
			}

			if id, ok := r.Context().Value(switchback.TransactionIDKey).(string); ok {
				data["transaction_id"] = id
			}

			ls.Info(fmt.Sprintf("%s %s %d", r.Method, uri, m.Code), &logger.LogContext{Data: data})
		})
	}
}
