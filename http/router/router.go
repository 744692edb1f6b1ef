package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/resp"
	"github.com/xy-planning-network/switchback/http/route"
	"github.com/xy-planning-network/switchback/http/validate"
)

var _ route.Binder = (*Router)(nil)

// A Route maps a path and HTTP method to an [http.Handler].
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
type Route struct {
	Path        string
	Method      string
	Handler     http.Handler
	Middlewares []middleware.Adapter
}

// Router routes requests to the handlers of resolved routes.
type Router struct {
	env           switchback.Environment
	everyReqStack []middleware.Adapter
	rp            *resp.Responder
	r             *mux.Router

	// mount is the path prefix the Router is a subrouter of, if any.
	mount string
}

// New constructs a [*Router] for the given environment,
// responding to rejected requests and handler results with rp.
func New(env switchback.Environment, rp *resp.Responder) *Router {
	if rp == nil {
		rp = resp.NewResponder()
	}

	rt := &Router{env: env, rp: rp, r: mux.NewRouter()}
	rt.r.NotFoundHandler = http.HandlerFunc(rp.NotFound)
	rt.r.MethodNotAllowedHandler = http.HandlerFunc(rt.methodNotAllowed)

	return rt
}

// methodNotAllowed lists the methods the requested path does serve in an Allow header
// before responding 405.
func (r *Router) methodNotAllowed(w http.ResponseWriter, req *http.Request) {
	var allow []string
	for _, m := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		alt := req.Clone(req.Context())
		alt.Method = m
		var match mux.RouteMatch
		if r.r.Match(alt, &match) && match.MatchErr == nil {
			allow = append(allow, m)
		}
	}

	w.Header().Set("Allow", strings.Join(allow, ", "))
	r.rp.MethodNotAllowed(w, req)
}

// Bind registers d, mounting its sub routes on a subrouter if it has any.
func (r *Router) Bind(d route.Descriptor) error {
	if d.SubRoutes != nil {
		sub := r.Subrouter(MuxPath(d.Path))
		for _, s := range d.SubRoutes {
			if err := sub.Bind(s); err != nil {
				return err
			}
		}

		return nil
	}

	if d.Handler == nil {
		return fmt.Errorf("%w: route %s %s has no handler", switchback.ErrBadConfig, d.Method, d.Path)
	}

	guards := make([]middleware.Adapter, 0, len(d.Validations))
	for _, v := range d.Validations {
		guards = append(guards, validate.Adapter(v, r.rp.Err))
	}

	path := MuxPath(d.Path)
	if path == "/" && r.mount != "" {
		// A sub route at / serves the mount path itself.
		path = ""
	}

	r.Handle(Route{
		Path:        path,
		Method:      strings.ToUpper(d.Method),
		Handler:     r.serve(d),
		Middlewares: guards,
	})

	return nil
}

// serve calls the handler of d, responding with its result unless d is raw.
func (r *Router) serve(d route.Descriptor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		data, err := d.Handler(w, req)
		if !d.Raw {
			r.rp.Result(w, req, data, err)
			return
		}

		if err != nil {
			r.rp.Err(w, req, err)
		}
	})
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(rt Route) {
	r.HandleRoutes([]Route{rt})
}

// HandleNotFound sets the provided [http.Handler] as the default handler
// for when no other registered Route is matched.
func (r *Router) HandleNotFound(handler http.Handler) {
	r.r.NotFoundHandler = middleware.ReportPanic(r.env, r.rp.Err)(handler)
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, rt := range routes {
		mws := append([]middleware.Adapter{}, r.everyReqStack...)
		mws = append(mws, middlewares...)
		mws = append(mws, rt.Middlewares...)
		handler := middleware.Chain(rt.Handler, mws...)
		r.r.Handle(rt.Path, middleware.ReportPanic(r.env, r.rp.Err)(handler)).Methods(rt.Method)
	}
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every request matching a route registered afterwards.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.r.ServeHTTP(w, req)
}

// Subrouter constructs a [Router] that handles requests to endpoints matching the prefix.
//
// e.g., r.Subrouter("/api/v1") handles requests to endpoints like /api/v1/users
func (r *Router) Subrouter(prefix string) *Router {
	prefix = strings.TrimRight(prefix, "/")
	return &Router{
		env:           r.env,
		r:             r.r.PathPrefix(prefix).Subrouter(),
		rp:            r.rp,
		everyReqStack: append([]middleware.Adapter{}, r.everyReqStack...),
		mount:         r.mount + prefix,
	}
}

// Walk calls fn with the method and path template of every registered route, sub routes included.
func (r *Router) Walk(fn func(method, path string)) error {
	return r.r.Walk(func(rt *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		path, err := rt.GetPathTemplate()
		if err != nil {
			return nil
		}

		methods, err := rt.GetMethods()
		if err != nil {
			return nil
		}

		for _, m := range methods {
			fn(m, path)
		}

		return nil
	})
}

// MuxPath rewrites path parameters written as :name into mux's {name}.
func MuxPath(path string) string {
	segs := strings.Split(path, "/")
	for i, seg := range segs {
		if len(seg) > 1 && seg[0] == ':' {
			segs[i] = "{" + seg[1:] + "}"
		}
	}

	return strings.Join(segs, "/")
}
