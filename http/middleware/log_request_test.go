package middleware_test

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/logger"
)

func TestLogRequest(t *testing.T) {
	t.Setenv("SENTRY_DSN", "")

	// Arrange + Act
	actual := middleware.LogRequest(nil)

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))

	// Arrange
	b := new(bytes.Buffer)
	l := logger.New(logger.WithLogger(log.New(b, "", 0)))
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com/ok?param=true&password=hunter2", nil)
	r = r.WithContext(context.WithValue(r.Context(), switchback.IpAddrKey, "1.1.1.1"))

	// Act
	middleware.LogRequest(l)(http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
		wx.WriteHeader(http.StatusTeapot)
	})).ServeHTTP(w, r)

	// Assert
	out := b.String()
	require.Contains(t, out, "[INFO]")
	require.Contains(t, out, "'GET /ok?param=true&password="+switchback.LogMaskVal+" 418'")
	require.Contains(t, out, `"ip":"1.1.1.1"`)
	require.NotContains(t, out, "hunter2")
}
