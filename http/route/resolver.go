package route

import (
	"net/http"
	"strings"

	"github.com/xy-planning-network/switchback/http/validate"
	"github.com/xy-planning-network/switchback/logger"
)

// DefaultSeparator joins the words of an inferred path.
const DefaultSeparator = "-"

// A Descriptor is a single resolved route, ready for registration on a router.
//
// A Descriptor with SubRoutes mounts them at Path and has no Method or Handler.
type Descriptor struct {
	Method      string
	Path        string
	Handler     Handler
	Validations []validate.Validator
	Raw         bool
	SubRoutes   []Descriptor
}

// A Binder registers resolved routes, typically a router.
type Binder interface {
	Bind(d Descriptor) error
}

// A Resolver turns route configuration into Descriptors.
//
// A Resolver holds no state between calls and is safe for concurrent use.
type Resolver struct {
	log    logger.Logger
	prefix string
	sep    string

	// ancestors are the namespaces being expanded, outermost first.
	ancestors []*Namespace
}

// New constructs a Resolver.
func New(opts ...ResolverOptFn) *Resolver {
	rs := &Resolver{sep: DefaultSeparator}
	for _, opt := range opts {
		opt(rs)
	}

	return rs
}

var std = New()

// ResolveMany resolves configs with the default Resolver.
func ResolveMany(configs []Config) ([]Descriptor, error) { return std.ResolveMany(configs) }

// ResolveOne resolves c with the default Resolver.
func ResolveOne(c Config) (Descriptor, error) { return std.ResolveOne(c) }

// FromNamespace resolves ns with the default Resolver.
func FromNamespace(ns *Namespace) ([]Descriptor, error) { return std.FromNamespace(ns) }

// Setup resolves c with the default Resolver and binds it to target.
func Setup(target Binder, c Config) error { return std.Setup(target, c) }

// SetupAll resolves configs with the default Resolver and binds them to target.
func SetupAll(target Binder, configs []Config) error { return std.SetupAll(target, configs) }

// ResolveMany resolves every config in order, expanding namespaces into their routes.
func (rs *Resolver) ResolveMany(configs []Config) ([]Descriptor, error) {
	if len(configs) == 0 {
		return nil, configErr("setup requires an array of route configs")
	}

	var descs []Descriptor
	for i, c := range configs {
		switch c := c.(type) {
		case *Namespace:
			ds, err := rs.FromNamespace(c)
			if err != nil {
				return nil, err
			}

			descs = append(descs, ds...)

		case Tuple, Object:
			d, err := rs.ResolveOne(c)
			if err != nil {
				return nil, err
			}

			descs = append(descs, d)

		case nil:
			return nil, configErr("setup route config at index %d is nil", i)

		default:
			return nil, configErr("setup route config at index %d is an unknown %T", i, c)
		}
	}

	return descs, nil
}

// ResolveOne resolves a single Tuple or Object.
func (rs *Resolver) ResolveOne(c Config) (Descriptor, error) {
	switch c := c.(type) {
	case Tuple:
		return rs.resolveObject(c.object())
	case Object:
		return rs.resolveObject(c)
	case *Namespace:
		name := "<nil>"
		if c != nil {
			name = c.name
		}

		return Descriptor{}, configErr("setup route requires a single route config, namespace %q may hold many", name)
	default:
		return Descriptor{}, configErr("setup route requires a route config")
	}
}

func (rs *Resolver) resolveObject(o Object) (Descriptor, error) {
	if o.Path == "" {
		return Descriptor{}, configErr("setup route requires route path")
	}

	path := withSlash(o.Path)
	if o.SubRoutes != nil {
		if o.Method != "" || o.Fn != nil || o.Object != nil || o.Function != "" {
			return Descriptor{}, configErr("setup route %q cannot mount sub routes and serve a handler", path)
		}

		if o.Raw || o.Validations != nil || o.Body != nil || o.Params != nil || o.Query != nil {
			return Descriptor{}, configErr("setup route %q cannot mount sub routes and set Raw or validations", path)
		}

		subs, err := rs.child().ResolveMany(o.SubRoutes)
		if err != nil {
			return Descriptor{}, err
		}

		rs.debug("mounting sub routes", map[string]any{"path": path, "routes": len(subs)})
		return Descriptor{Path: path, SubRoutes: subs}, nil
	}

	if o.Method == "" {
		return Descriptor{}, configErr("setup route %q requires a route method", path)
	}

	method := strings.ToLower(o.Method)
	if !supported(method) {
		return Descriptor{}, configErr("setup route %q has unsupported method %q", path, o.Method)
	}

	h, err := handlerOf(path, o)
	if err != nil {
		return Descriptor{}, err
	}

	vs, err := validations(path, o)
	if err != nil {
		return Descriptor{}, err
	}

	rs.debug("adding route", map[string]any{"method": method, "path": path, "raw": o.Raw, "validations": len(vs)})
	return Descriptor{Method: method, Path: path, Handler: h, Validations: vs, Raw: o.Raw}, nil
}

func handlerOf(path string, o Object) (Handler, error) {
	byName := o.Object != nil || o.Function != ""
	switch {
	case o.Fn == nil && !byName:
		return nil, configErr("setup route %q requires a route handler, either Fn or Object and Function", path)
	case o.Fn != nil && byName:
		return nil, configErr("setup route %q requires either Fn or Object and Function, not both", path)
	}

	var (
		h      Handler
		writes bool
		ok     bool
	)
	if o.Fn != nil {
		if isMethod(o.Fn) {
			return nil, configErr("setup route %q: Method handlers need Object and Function", path)
		}

		if h, writes, ok = bind(o.Fn, nil); !ok {
			return nil, configErr("setup route %q requires Fn to be a function, got %T", path, o.Fn)
		}
	} else {
		if o.Object == nil || o.Function == "" {
			return nil, configErr("setup route %q requires both Object and Function", path)
		}

		name := o.Object.Name() + "[" + o.Function + "]"
		fn, exists := o.Object.Member(o.Function)
		if !exists {
			return nil, configErr("setup route %q: handler `%s` should exist", path, name)
		}

		if h, writes, ok = bind(fn, o.Object); !ok {
			return nil, configErr("setup route %q: handler `%s` should be a function", path, name)
		}
	}

	if writes && !o.Raw {
		return nil, configErr("setup route %q handler writes its own response and must be marked Raw", path)
	}

	return h, nil
}

// validations joins o.Validations with those compiled from o's body, params, and query fields, in that order.
func validations(path string, o Object) ([]validate.Validator, error) {
	var vs []validate.Validator
	for i, v := range o.Validations {
		if v == nil {
			return nil, configErr("setup route %q validation at index %d is nil", path, i)
		}

		vs = append(vs, v)
	}

	compiled := []struct {
		kind    string
		fields  validate.Fields
		compile func(string, validate.Fields) validate.Validator
	}{
		{"body", o.Body, validate.Body},
		{"params", o.Params, validate.Params},
		{"query", o.Query, validate.Query},
	}
	for _, c := range compiled {
		if c.fields == nil {
			continue
		}

		if err := c.fields.Valid(); err != nil {
			return nil, configErr("setup route %q %s fields: %s", path, c.kind, err)
		}

		vs = append(vs, c.compile(path, c.fields))
	}

	return vs, nil
}

// Setup resolves c and binds every resulting Descriptor to target.
func (rs *Resolver) Setup(target Binder, c Config) error {
	return rs.SetupAll(target, []Config{c})
}

// SetupAll resolves configs and binds every resulting Descriptor to target.
// No Descriptor is bound unless all configs resolve.
func (rs *Resolver) SetupAll(target Binder, configs []Config) error {
	if target == nil {
		return configErr("setup requires a router target")
	}

	descs, err := rs.ResolveMany(configs)
	if err != nil {
		return err
	}

	for _, d := range descs {
		if err := target.Bind(d); err != nil {
			return err
		}
	}

	return nil
}

// Flatten lists the routes in descs with sub routes expanded in place,
// each Path joined to the paths it is mounted under.
func Flatten(descs []Descriptor) []Descriptor {
	var flat []Descriptor
	for _, d := range descs {
		if d.SubRoutes == nil {
			flat = append(flat, d)
			continue
		}

		for _, sub := range Flatten(d.SubRoutes) {
			sub.Path = mountPath(d.Path, sub.Path)
			flat = append(flat, sub)
		}
	}

	return flat
}

// child is rs for resolving sub routes, whose paths are relative to their mount point.
func (rs *Resolver) child() *Resolver {
	c := *rs
	c.prefix = ""
	return &c
}

func (rs *Resolver) debug(msg string, data map[string]any) {
	if rs.log == nil {
		return
	}

	rs.log.Debug(msg, &logger.LogContext{Data: data})
}

func supported(method string) bool {
	switch strings.ToUpper(method) {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}

	return false
}

// mountPath joins path to the mount it is served under; a path of / is the mount itself.
func mountPath(mount, path string) string {
	mount = strings.TrimRight(mount, "/")
	if path == "/" && mount != "" {
		return mount
	}

	return mount + path
}

func withSlash(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}

	return "/" + path
}
