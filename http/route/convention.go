package route

import (
	"strings"
	"unicode"

	"github.com/fatih/camelcase"

	"github.com/xy-planning-network/switchback/http/validate"
)

const (
	pathKey   = "path_"
	bodyKey   = "body_"
	paramsKey = "params_"
	queryKey  = "query_"
	rawKey    = "raw_"

	routesPrefix = "routes"
)

var conventionKeys = []string{pathKey, bodyKey, paramsKey, queryKey, rawKey}

// verbs maps a member name's first word to an HTTP method, checked in order.
var verbs = []struct {
	prefixes []string
	method   string
}{
	{[]string{"get"}, "get"},
	{[]string{"post", "create"}, "post"},
	{[]string{"delete", "remove"}, "delete"},
	{[]string{"patch", "update"}, "patch"},
	{[]string{"put", "replace"}, "put"},
}

// FromNamespace derives a route for every member of ns named for an HTTP method,
// and a sub router for every member named routes_<Name>.
// Routes appear in the order members were added to ns.
func (rs *Resolver) FromNamespace(ns *Namespace) ([]Descriptor, error) {
	if ns == nil {
		return nil, configErr("setup requires a namespace")
	}

	for _, a := range rs.ancestors {
		if a == ns {
			return nil, configErr("setup namespace %q mounts itself", ns.name)
		}
	}

	if err := checkConventions(ns); err != nil {
		return nil, err
	}

	inner := *rs
	inner.ancestors = append(append([]*Namespace(nil), rs.ancestors...), ns)

	descs := make([]Descriptor, 0, len(ns.names))
	for _, name := range ns.names {
		o, ok, err := inner.derive(ns, name)
		if err != nil {
			return nil, err
		}

		if !ok {
			continue
		}

		d, err := inner.resolveObject(o)
		if err != nil {
			return nil, err
		}

		descs = append(descs, d)
	}

	return descs, nil
}

// derive builds the Object for the member name, reporting false if name is not a route.
func (rs *Resolver) derive(ns *Namespace, name string) (Object, bool, error) {
	if conventionOf(name) != "" {
		return Object{}, false, nil
	}

	method, mount := verbOf(name)
	if method == "" && !mount {
		rs.debug("skipping member", map[string]any{"namespace": ns.name, "member": name})
		return Object{}, false, nil
	}

	path := inferPath(name, rs.sep)
	if v, ok := ns.Member(pathKey + name); ok {
		path = v.(string)
	}
	path = rs.prefix + withSlash(path)

	v, _ := ns.Member(name)
	if mount {
		subs, err := subConfigs(ns, name, v)
		if err != nil {
			return Object{}, false, err
		}

		return Object{Path: path, SubRoutes: subs}, true, nil
	}

	if _, _, ok := bind(v, ns); !ok {
		return Object{}, false, configErr("setup namespace %q member %q is not a function", ns.name, name)
	}

	o := Object{Method: method, Path: path, Object: ns, Function: name}
	if v, ok := ns.Member(bodyKey + name); ok {
		o.Body = v.(validate.Fields)
	}

	if v, ok := ns.Member(paramsKey + name); ok {
		o.Params = v.(validate.Fields)
	}

	if v, ok := ns.Member(queryKey + name); ok {
		o.Query = v.(validate.Fields)
	}

	if v, ok := ns.Member(rawKey + name); ok {
		o.Raw = v.(bool)
	}

	return o, true, nil
}

// checkConventions asserts every convention member of ns configures a function in ns
// and holds a value of the type its key requires.
func checkConventions(ns *Namespace) error {
	for _, name := range ns.names {
		key := conventionOf(name)
		if key == "" {
			continue
		}

		target := strings.TrimPrefix(name, key)
		fn, ok := ns.Member(target)
		if !ok {
			return configErr("setup namespace %q member %q configures %q, which does not exist", ns.name, name, target)
		}

		_, mount := verbOf(target)
		if _, _, ok := bind(fn, ns); !ok && !(key == pathKey && mount) {
			return configErr("setup namespace %q member %q configures %q, which is not a function", ns.name, name, target)
		}

		v, _ := ns.Member(name)
		switch key {
		case pathKey:
			if s, ok := v.(string); !ok || s == "" {
				return configErr("setup namespace %q member %q must be a non-empty string", ns.name, name)
			}

		case bodyKey, paramsKey, queryKey:
			fs, ok := v.(validate.Fields)
			if !ok {
				return configErr("setup namespace %q member %q must be validate.Fields, got %T", ns.name, name, v)
			}

			if err := fs.Valid(); err != nil {
				return configErr("setup namespace %q member %q: %s", ns.name, name, err)
			}

		case rawKey:
			if _, ok := v.(bool); !ok {
				return configErr("setup namespace %q member %q must be a bool, got %T", ns.name, name, v)
			}
		}
	}

	return nil
}

func subConfigs(ns *Namespace, name string, v any) ([]Config, error) {
	switch v := v.(type) {
	case *Namespace:
		if v == nil {
			break
		}

		return []Config{v}, nil
	case []Config:
		return v, nil
	case Tuple:
		return []Config{v}, nil
	case Object:
		return []Config{v}, nil
	}

	return nil, configErr("setup namespace %q member %q must be a namespace or route configs, got %T", ns.name, name, v)
}

// conventionOf returns the convention key name begins with, if any.
func conventionOf(name string) string {
	for _, key := range conventionKeys {
		if strings.HasPrefix(name, key) {
			return key
		}
	}

	return ""
}

// verbOf returns the HTTP method a member name begins with,
// or whether the member mounts a sub router.
func verbOf(name string) (method string, mount bool) {
	for _, v := range verbs {
		for _, p := range v.prefixes {
			if strings.HasPrefix(name, p) {
				return v.method, false
			}
		}
	}

	return "", strings.HasPrefix(name, routesPrefix)
}

// inferPath lower cases and joins with sep the words of name after the first.
func inferPath(name, sep string) string {
	var words []string
	for _, w := range camelcase.Split(name) {
		if strings.IndexFunc(w, isWordRune) >= 0 {
			words = append(words, w)
		}
	}

	if len(words) < 2 {
		return ""
	}

	return strings.ToLower(strings.Join(words[1:], sep))
}

func isWordRune(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }
