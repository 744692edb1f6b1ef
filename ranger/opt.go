package ranger

import (
	"context"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/route"
	"github.com/xy-planning-network/switchback/logger"
)

// A RangerOption configures a *Ranger either (1) directly, immediately upon being called
// or (2) in the OptFollowup it returns.
// Some RangerOptions require data in others and thus an OptFollowup can be returned
// in order to be called at a later time when that data is available.
//
// WithCORS is an example of the first.
// An unexported field on the passed in *Ranger is updated with the enclosed value.
//
// WithRoutes is an example of the second.
// Routes can only be bound once the *Ranger has its router,
// which it does only after every RangerOption is called.
type RangerOption func(rng *Ranger) (OptFollowup, error)
type OptFollowup func() error

// WithAddr sets the address the web server listens on, replacing HOST and PORT.
func WithAddr(addr string) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.addr = addr
		return nil, nil
	}
}

// WithAllowedErrors unmasks server errors with these names in responses.
func WithAllowedErrors(names ...string) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.allowed = append(rng.allowed, names...)
		return nil, nil
	}
}

// WithBodyLimit sets the largest JSON request body, in bytes, the app accepts,
// replacing BODY_LIMIT.
func WithBodyLimit(limit int64) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if limit <= 0 {
			return nil, fmt.Errorf("%w: body limit must be positive, got %d", switchback.ErrNotValid, limit)
		}

		rng.bodyLimit = limit
		return nil, nil
	}
}

// WithContext sets the context.Context requests to the app descend from.
// Cancelling ctx stops [*Ranger.Guide].
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.ctx = ctx
		return nil, nil
	}
}

// WithCORS allows cross-origin requests from origin, replacing CORS_ORIGIN.
func WithCORS(origin string) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.cors = origin
		return nil, nil
	}
}

// WithEnv casts the provided string into a valid Environment, replacing ENVIRONMENT.
func WithEnv(env string) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		e := switchback.Environment(env)
		if err := e.Valid(); err != nil {
			return nil, fmt.Errorf("%w: environment %q", err, env)
		}

		rng.env = e
		return nil, nil
	}
}

// WithLogger exposes the provided logger.Logger to the app.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.l = l
		return nil, nil
	}
}

// WithRateLimit limits each client IP address to perSecond requests,
// allowing bursts of up to burst requests.
func WithRateLimit(perSecond float64, burst int) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if perSecond <= 0 || burst <= 0 {
			return nil, fmt.Errorf("%w: rate limit must be positive", switchback.ErrNotValid)
		}

		rng.visitors = middleware.NewVisitors(perSecond, burst)
		return nil, nil
	}
}

// WithResolver configures how route configuration passed to WithRoutes resolves.
func WithResolver(opts ...route.ResolverOptFn) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.resolverOpts = append(rng.resolverOpts, opts...)
		return nil, nil
	}
}

// WithRoutes constructs a followup option that, when called,
// resolves configs and binds them to the app's router.
func WithRoutes(configs ...route.Config) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		return func() error {
			opts := append([]route.ResolverOptFn{route.WithLogger(rng.l)}, rng.resolverOpts...)
			return route.New(opts...).SetupAll(rng.Router, configs)
		}, nil
	}
}

// WithServer exposes the *http.Server to the app.
// The Ranger sets the server's Handler.
func WithServer(s *http.Server) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.srv = s
		return nil, nil
	}
}

// WithTrustTransactionID keeps the X-Transaction-Id header of inbound requests
// rather than assigning a new one, replacing TRUST_TRANSACTION_ID.
func WithTrustTransactionID(trust bool) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.trust = trust
		return nil, nil
	}
}

// WithUse appends middlewares every request passes through after the default stack,
// before reaching the router.
func WithUse(mws ...middleware.Adapter) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.use = append(rng.use, mws...)
		return nil, nil
	}
}
