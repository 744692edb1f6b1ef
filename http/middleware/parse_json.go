package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/req"
)

// DefaultBodyLimit is the largest JSON body, in bytes, ParseJSON reads when not told otherwise.
const DefaultBodyLimit = 8 << 10

// ParseJSON decodes JSON request bodies, stashing the result with req.WithBody.
//
// Only requests declaring a JSON media type are decoded; other requests pass through
// without a body container. An empty JSON body decodes as an empty object.
// The body must be a JSON object; a body over limit bytes, malformed,
// or not an object is refused through onErr.
//
// The raw bytes are restored to r.Body for handlers that read it themselves.
func ParseJSON(limit int64, onErr ErrorHandler) Adapter {
	if limit <= 0 {
		limit = DefaultBodyLimit
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || !isJSON(r.Header.Get("Content-Type")) {
				h.ServeHTTP(w, r)
				return
			}

			b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				onErr(w, r, fmt.Errorf("%w: request body exceeds %d bytes", switchback.ErrTooLarge, limit))
				return
			}

			if err != nil {
				onErr(w, r, fmt.Errorf("%w: failed reading request body: %s", switchback.ErrMissingData, err))
				return
			}

			body := make(map[string]any)
			if len(bytes.TrimSpace(b)) > 0 {
				err := json.Unmarshal(b, &body)
				if err == nil && body == nil {
					err = errors.New("got null")
				}

				if err != nil {
					onErr(w, r, fmt.Errorf("%w: request body must be a JSON object: %s", switchback.ErrNotValid, err))
					return
				}
			}

			r.Body = io.NopCloser(bytes.NewReader(b))
			h.ServeHTTP(w, r.WithContext(req.WithBody(r.Context(), body)))
		})
	}
}

func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}
