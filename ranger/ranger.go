package ranger

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	// TODO(dlk): configurable env files
	_ "github.com/joho/godotenv/autoload"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/resp"
	"github.com/xy-planning-network/switchback/http/route"
	"github.com/xy-planning-network/switchback/http/router"
	"github.com/xy-planning-network/switchback/logger"
)

// A Ranger assembles and runs an app from its routes.
type Ranger struct {
	*resp.Responder
	*router.Router

	ctx     context.Context
	env     switchback.Environment
	handler http.Handler
	l       logger.Logger
	srv     *http.Server

	addr         string
	allowed      []string
	bodyLimit    int64
	cors         string
	resolverOpts []route.ResolverOptFn
	shutdown     time.Duration
	trust        bool
	use          []middleware.Adapter
	visitors     *middleware.Visitors
}

// New constructs a Ranger from the provided options.
// Environment variables configure the Ranger first; options passed into New overwrite them.
//
// Any error New returns wraps [switchback.ErrBadConfig];
// route configuration errors are a [*route.ConfigError].
func New(opts ...RangerOption) (*Ranger, error) {
	r := &Ranger{
		ctx:       context.Background(),
		env:       switchback.EnvVarOrEnv(environmentEnvVar, switchback.Development),
		addr:      defaultAddr(),
		bodyLimit: int64(switchback.EnvVarOrInt(bodyLimitEnvVar, middleware.DefaultBodyLimit)),
		cors:      os.Getenv(corsOriginEnvVar),
		shutdown:  switchback.EnvVarOrDuration(shutdownTimeoutEnvVar, DefaultShutdownTimeout),
		trust:     switchback.EnvVarOrBool(trustTransactionIDEnvVar, false),
	}
	followups := make([]OptFollowup, 0)

	for _, opt := range opts {
		fn, err := opt(r)
		if err != nil {
			return nil, badConfig(err)
		}

		if fn != nil {
			followups = append(followups, fn)
		}
	}

	if r.l == nil {
		r.l = defaultLogger(r.env)
	}

	r.Responder = resp.NewResponder(resp.WithLogger(r.l), resp.WithAllowedErrors(r.allowed...))
	r.Router = router.New(r.env, r.Responder)
	r.Router.OnEveryRequest(middleware.RateLimit(r.visitors))

	for _, fn := range followups {
		if err := fn(); err != nil {
			return nil, badConfig(err)
		}
	}

	if err := r.Router.Walk(func(method, path string) {
		r.l.Debug(fmt.Sprintf("routing %s %s", method, path), nil)
	}); err != nil {
		return nil, badConfig(err)
	}

	r.handler = middleware.Chain(r.Router, r.defaultStack()...)
	if r.srv == nil {
		r.srv = defaultServer(r.ctx, r.addr, r.handler)
	} else {
		r.srv.Handler = r.handler
	}

	return r, nil
}

func badConfig(err error) error {
	if errors.Is(err, switchback.ErrBadConfig) {
		return err
	}

	return fmt.Errorf("%w: %s", switchback.ErrBadConfig, err)
}

// Env is the Environment the app runs in.
func (r *Ranger) Env() switchback.Environment { return r.env }

// Handler serves requests through the full middleware stack and the router.
func (r *Ranger) Handler() http.Handler { return r.handler }

// ServeHTTP responds to an HTTP request through [*Ranger.Handler].
func (r *Ranger) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

// Logger is the logger.Logger the app logs with.
func (r *Ranger) Logger() logger.Logger { return r.l }

// Guide begins the web server.
//
// These, and (*Ranger).Shutdown, stop Guide:
//
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
// - cancelling the context.Context passed to WithContext
func (r *Ranger) Guide() error {
	ch := make(chan os.Signal, 1)
	signal.Notify(
		ch,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer signal.Stop(ch)

	errCh := make(chan error, 1)
	go func() {
		r.l.Info(fmt.Sprintf("running web server at %s", r.srv.Addr), nil)
		errCh <- r.srv.ListenAndServe()
	}()

	select {
	case s := <-ch:
		r.l.Info(fmt.Sprint("received shutdown signal: ", s), nil)

	case <-r.ctx.Done():
		r.l.Info("context done", &logger.LogContext{Error: r.ctx.Err()})

	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		err = fmt.Errorf("could not listen: %w", err)
		r.l.Error(err.Error(), nil)
		return err
	}

	return r.Shutdown()
}

// Shutdown shutdowns the web server, waiting on open requests
// for up to SHUTDOWN_TIMEOUT.
func (r *Ranger) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), r.shutdown)
	defer cancel()

	r.l.Info("shutting down web server", nil)
	err := r.srv.Shutdown(shutdownCtx)
	sentry.Flush(r.shutdown)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}
