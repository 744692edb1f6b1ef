package ranger

import (
	"context"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/logger"
)

const (
	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logLevelEnvVar = "LOG_LEVEL"

	// Request handling defaults
	bodyLimitEnvVar          = "BODY_LIMIT"
	corsOriginEnvVar         = "CORS_ORIGIN"
	trustTransactionIDEnvVar = "TRUST_TRANSACTION_ID"

	// Web server defaults
	DefaultHost               = ""
	hostEnvVar                = "HOST"
	DefaultPort               = ":3000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 5 * time.Second
	shutdownTimeoutEnvVar     = "SHUTDOWN_TIMEOUT"
	DefaultShutdownTimeout    = 5 * time.Second
)

// defaultAddr joins HOST and PORT into the address the web server listens on.
func defaultAddr() string {
	port := switchback.EnvVarOrString(portEnvVar, DefaultPort)
	if port[0] != ':' {
		port = ":" + port
	}

	return switchback.EnvVarOrString(hostEnvVar, DefaultHost) + port
}

// defaultLogger constructs a [logger.Logger] configured for use in the application.
func defaultLogger(env switchback.Environment) logger.Logger {
	l := logger.New(
		logger.WithEnv(env.String()),
		logger.WithLevel(logger.NewLogLevel(os.Getenv(logLevelEnvVar))),
	)
	l.Debug("setting up app logger", nil)

	return l
}

// defaultServer constructs a default [*http.Server].
func defaultServer(ctx context.Context, addr string, h http.Handler) *http.Server {
	srv := &http.Server{
		Addr:         addr,
		Handler:      h,
		IdleTimeout:  switchback.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ReadTimeout:  switchback.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout: switchback.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}
	if ctx != nil {
		srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return srv
}

// defaultStack lists, outermost first, the middlewares every request passes through
// before reaching the router.
func (r *Ranger) defaultStack() []middleware.Adapter {
	mws := []middleware.Adapter{
		middleware.ReportPanic(r.env, r.Responder.Err),
		middleware.Tracking(r.trust),
		middleware.InjectIPAddress(),
		middleware.LogRequest(r.l),
		middleware.CORS(r.cors),
		middleware.ParseJSON(r.bodyLimit, r.Responder.Err),
	}

	return append(mws, r.use...)
}
