package route

import "github.com/xy-planning-network/switchback/http/validate"

// A Config is one of the ways to configure routes: a Tuple, an Object, or a *Namespace.
type Config interface {
	isConfig()
}

// A Tuple configures a route positionally.
type Tuple struct {
	Method string
	Path   string
	Fn     any
	Raw    bool
}

// T constructs a Tuple, the shorthand for [method, path, fn, raw?].
func T(method, path string, fn any, raw ...bool) Tuple {
	return Tuple{Method: method, Path: path, Fn: fn, Raw: len(raw) > 0 && raw[0]}
}

func (t Tuple) object() Object {
	return Object{Method: t.Method, Path: t.Path, Fn: t.Fn, Raw: t.Raw}
}

// An Object configures a route by field.
//
// An Object either mounts SubRoutes at Path or serves Method at Path,
// never both.
// A handler is either Fn or the member named Function on Object, never both.
type Object struct {
	Method string
	Path   string

	Fn       any
	Object   Receiver
	Function string

	// Validations run in order, before those compiled from Body, Params, and Query.
	Validations []validate.Validator
	Body        validate.Fields
	Params      validate.Fields
	Query       validate.Fields

	Raw       bool
	SubRoutes []Config
}

func (Tuple) isConfig()      {}
func (Object) isConfig()     {}
func (*Namespace) isConfig() {}

// A Receiver exposes named members a handler may be bound to.
type Receiver interface {
	Name() string
	Member(name string) (any, bool)
}

// Members is a Receiver backed by a plain map.
type Members map[string]any

func (Members) Name() string { return "object" }

func (m Members) Member(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}
