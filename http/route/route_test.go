package route_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/req"
	"github.com/xy-planning-network/switchback/http/route"
	"github.com/xy-planning-network/switchback/http/validate"
)

func ok(*http.Request) (any, error) { return "ok", nil }

func value(recv route.Receiver, _ *http.Request) (any, error) {
	v, _ := recv.Member("value")
	return v, nil
}

func rawOK(w http.ResponseWriter, _ *http.Request) { w.Write([]byte("raw")) }

func requireConfigErr(t *testing.T, err error, contains string) {
	t.Helper()

	var cerr *route.ConfigError
	require.ErrorAs(t, err, &cerr)
	require.ErrorIs(t, err, switchback.ErrBadConfig)
	require.ErrorContains(t, err, contains)
}

// strip removes the parts of descriptors with identity, leaving what can be compared.
func strip(descs ...route.Descriptor) []route.Descriptor {
	out := make([]route.Descriptor, len(descs))
	for i, d := range descs {
		d.Handler = nil
		d.Validations = nil
		d.SubRoutes = strip(d.SubRoutes...)
		if len(d.SubRoutes) == 0 {
			d.SubRoutes = nil
		}
		out[i] = d
	}

	return out
}

func TestFromNamespaceSingleMember(t *testing.T) {
	// Arrange
	ns := route.NewNamespace("Ok").Add("getOk", route.Func(ok))

	// Act
	descs, err := route.FromNamespace(ns)

	// Assert
	require.NoError(t, err)
	require.Equal(t, []route.Descriptor{{Method: "get", Path: "/ok"}}, strip(descs...))

	actual, err := descs[0].Handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.NoError(t, err)
	require.Equal(t, "ok", actual)
}

func TestFromNamespaceVerbs(t *testing.T) {
	// Arrange
	ns := route.NewNamespace("Verbs")
	for _, name := range []string{
		"getThing",
		"postThing",
		"createThing",
		"deleteThing",
		"removeThing",
		"patchThing",
		"updateThing",
		"putThing",
		"replaceThing",
		"weirdThing",
		"GetThing",
	} {
		ns.Add(name, route.Func(ok))
	}

	// Act
	descs, err := route.FromNamespace(ns)

	// Assert
	require.NoError(t, err)
	require.Equal(t, []route.Descriptor{
		{Method: "get", Path: "/thing"},
		{Method: "post", Path: "/thing"},
		{Method: "post", Path: "/thing"},
		{Method: "delete", Path: "/thing"},
		{Method: "delete", Path: "/thing"},
		{Method: "patch", Path: "/thing"},
		{Method: "patch", Path: "/thing"},
		{Method: "put", Path: "/thing"},
		{Method: "put", Path: "/thing"},
	}, strip(descs...))
}

func TestFromNamespacePaths(t *testing.T) {
	for _, tc := range []struct {
		name     string
		member   string
		opts     []route.ResolverOptFn
		expected string
	}{
		{"Words", "getOkWoo", nil, "/ok-woo"},
		{"Verb-Only", "get", nil, "/"},
		{"Underscores", "get_ok_woo", nil, "/ok-woo"},
		{"Acronym", "getHTTPStatus", nil, "/http-status"},
		{"Digits", "getV2Thing", nil, "/v-2-thing"},
		{"Separator", "getOkWoo", []route.ResolverOptFn{route.WithSeparator("_")}, "/ok_woo"},
		{"Prefix", "getOkWoo", []route.ResolverOptFn{route.WithPathPrefix("api/")}, "/api/ok-woo"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			ns := route.NewNamespace("Paths").Add(tc.member, route.Func(ok))

			// Act
			descs, err := route.New(tc.opts...).FromNamespace(ns)

			// Assert
			require.NoError(t, err)
			require.Len(t, descs, 1)
			require.Equal(t, tc.expected, descs[0].Path)
		})
	}
}

func TestFromNamespacePathOverrideAndParams(t *testing.T) {
	// Arrange
	ns := route.NewNamespace("Ok").
		Add("getOk", route.Func(ok)).
		Add("path_getOk", "ok/:id").
		Add("params_getOk", validate.Fields{{Name: "id", Check: func(v any) bool { return v == "4" }}})

	// Act
	descs, err := route.FromNamespace(ns)

	// Assert
	require.NoError(t, err)
	require.Len(t, descs, 1)
	require.Equal(t, "/ok/:id", descs[0].Path)
	require.Len(t, descs[0].Validations, 1)

	v := descs[0].Validations[0]
	r := httptest.NewRequest(http.MethodGet, "/ok/4", nil)
	require.NoError(t, v(mux.SetURLVars(r, map[string]string{"id": "4"})))

	var verr *validate.Error
	err = v(mux.SetURLVars(r, map[string]string{"id": "nope"}))
	require.ErrorAs(t, err, &verr)
	require.Equal(t, validate.Detail{Field: "id", Value: "nope", Path: "/ok/:id"}, verr.Detail)
}

func TestFromNamespaceValidationOrder(t *testing.T) {
	// Arrange
	ns := route.NewNamespace("Order").
		Add("query_postThing", validate.Fields{{Name: "q"}}).
		Add("params_postThing", validate.Fields{{Name: "p"}}).
		Add("body_postThing", validate.Fields{{Name: "b"}}).
		Add("postThing", route.Func(ok))
	r := httptest.NewRequest(http.MethodPost, "/thing", nil)

	// Act
	descs, err := route.FromNamespace(ns)

	// Assert
	require.NoError(t, err)
	require.Len(t, descs, 1)
	require.Len(t, descs[0].Validations, 3)

	var verr *validate.Error
	for i, expected := range []string{"no body in request", "no URL parameters in request", `no query string param "q" in url`} {
		require.ErrorAs(t, descs[0].Validations[i](r), &verr)
		require.Equal(t, expected, verr.Error())
	}
}

func TestFromNamespaceBindsReceiver(t *testing.T) {
	// Arrange
	ns := route.NewNamespace("Bound")
	ns.Add("value", "okeydokey").Add("getValue", route.Method(value))

	// Act
	descs, err := route.FromNamespace(ns)

	// Assert
	require.NoError(t, err)
	require.Len(t, descs, 1)

	actual, err := descs[0].Handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/value", nil))
	require.NoError(t, err)
	require.Equal(t, "okeydokey", actual)
}

func TestFromNamespaceRaw(t *testing.T) {
	// Arrange
	ns := route.NewNamespace("Raw").
		Add("getRaw", rawOK).
		Add("raw_getRaw", true)
	w := httptest.NewRecorder()

	// Act
	descs, err := route.FromNamespace(ns)

	// Assert
	require.NoError(t, err)
	require.Len(t, descs, 1)
	require.True(t, descs[0].Raw)

	_, err = descs[0].Handler(w, httptest.NewRequest(http.MethodGet, "/raw", nil))
	require.NoError(t, err)
	require.Equal(t, "raw", w.Body.String())
}

func TestFromNamespaceSubRoutes(t *testing.T) {
	// Arrange
	sub := route.NewNamespace("Sub").Add("getOkWoo", route.Func(ok))
	ns := route.NewNamespace("Root").
		Add("getOk", route.Func(ok)).
		Add("routes_Sub", sub).
		Add("routes_Tuples", []route.Config{route.T("get", "/ok2", ok)}).
		Add("routes_Renamed", sub).
		Add("path_routes_Renamed", "/elsewhere")

	// Act
	descs, err := route.New(route.WithPathPrefix("/api")).FromNamespace(ns)

	// Assert
	require.NoError(t, err)
	require.Equal(t, []route.Descriptor{
		{Method: "get", Path: "/api/ok"},
		{Path: "/api/sub", SubRoutes: []route.Descriptor{{Method: "get", Path: "/ok-woo"}}},
		{Path: "/api/tuples", SubRoutes: []route.Descriptor{{Method: "get", Path: "/ok2"}}},
		{Path: "/api/elsewhere", SubRoutes: []route.Descriptor{{Method: "get", Path: "/ok-woo"}}},
	}, strip(descs...))

	require.Equal(t, []string{"/api/ok", "/api/sub/ok-woo", "/api/tuples/ok2", "/api/elsewhere/ok-woo"}, paths(route.Flatten(descs)))
}

func TestFromNamespaceSubRouteAtMount(t *testing.T) {
	// Arrange
	ns := route.NewNamespace("Root").
		Add("routes_Users", route.NewNamespace("Users").Add("get", route.Func(ok)).Add("getAdmins", route.Func(ok)))

	// Act
	descs, err := route.FromNamespace(ns)

	// Assert
	require.NoError(t, err)
	require.Equal(t, []route.Descriptor{
		{Path: "/users", SubRoutes: []route.Descriptor{{Method: "get", Path: "/"}, {Method: "get", Path: "/admins"}}},
	}, strip(descs...))
	require.Equal(t, []string{"/users", "/users/admins"}, paths(route.Flatten(descs)))
}

func paths(descs []route.Descriptor) []string {
	var ps []string
	for _, d := range descs {
		ps = append(ps, d.Path)
	}

	return ps
}

func TestFromNamespaceDeepSubRoutes(t *testing.T) {
	// Arrange
	ns := route.NewNamespace("Level0")
	inner := ns
	for _, name := range []string{"Level1", "Level2", "Level3", "Level4"} {
		next := route.NewNamespace(name)
		inner.Add("routes_"+name, next)
		inner = next
	}
	inner.Add("getBottom", route.Func(ok))

	// Act
	descs, err := route.FromNamespace(ns)

	// Assert
	require.NoError(t, err)
	require.Equal(t, []string{"/level-1/level-2/level-3/level-4/bottom"}, paths(route.Flatten(descs)))
}

func TestFromNamespaceErrors(t *testing.T) {
	loop := route.NewNamespace("Loop")
	loop.Add("routes_Again", loop)

	for _, tc := range []struct {
		name     string
		ns       *route.Namespace
		contains string
	}{
		{"Nil", nil, "requires a namespace"},
		{
			"Convention-Without-Target",
			route.NewNamespace("Typo").Add("body_thing", validate.Fields{{Name: "a"}}),
			`member "body_thing" configures "thing", which does not exist`,
		},
		{
			"Convention-Target-Not-Function",
			route.NewNamespace("Typo").Add("thing", 7).Add("query_thing", validate.Fields{{Name: "a"}}),
			`member "query_thing" configures "thing", which is not a function`,
		},
		{
			"Verb-Not-Function",
			route.NewNamespace("Bad").Add("getThing", "nope"),
			`member "getThing" is not a function`,
		},
		{
			"Path-Not-String",
			route.NewNamespace("Bad").Add("getThing", route.Func(ok)).Add("path_getThing", 7),
			`member "path_getThing" must be a non-empty string`,
		},
		{
			"Fields-Wrong-Type",
			route.NewNamespace("Bad").Add("getThing", route.Func(ok)).Add("body_getThing", map[string]any{}),
			`member "body_getThing" must be validate.Fields`,
		},
		{
			"Fields-Not-Valid",
			route.NewNamespace("Bad").Add("getThing", route.Func(ok)).Add("params_getThing", validate.Fields{{Name: "a"}, {Name: "a"}}),
			`declared more than once`,
		},
		{
			"Raw-Not-Bool",
			route.NewNamespace("Bad").Add("getThing", rawOK).Add("raw_getThing", "yes"),
			`member "raw_getThing" must be a bool`,
		},
		{
			"Raw-Handler-Not-Raw",
			route.NewNamespace("Bad").Add("getThing", rawOK),
			"must be marked Raw",
		},
		{
			"Routes-Not-Configs",
			route.NewNamespace("Bad").Add("routes_Sub", route.Func(ok)),
			`member "routes_Sub" must be a namespace or route configs`,
		},
		{
			"Mounts-Itself",
			loop,
			`namespace "Loop" mounts itself`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			descs, err := route.FromNamespace(tc.ns)

			// Assert
			require.Nil(t, descs)
			requireConfigErr(t, err, tc.contains)
		})
	}
}

func TestNamespaceAdd(t *testing.T) {
	// Arrange
	ns := route.NewNamespace("Add")

	// Act
	ns.Add("b", 1).Add("a", 2).Add("b", 3)

	// Assert
	require.Equal(t, "Add", ns.Name())
	require.Equal(t, []string{"b", "a"}, ns.Names())

	v, ok := ns.Member("b")
	require.True(t, ok)
	require.Equal(t, 3, v)

	_, ok = ns.Member("c")
	require.False(t, ok)
}

func TestResolveManyEmpty(t *testing.T) {
	for _, configs := range [][]route.Config{nil, {}} {
		// Act
		descs, err := route.ResolveMany(configs)

		// Assert
		require.Nil(t, descs)
		requireConfigErr(t, err, "requires an array of route configs")
	}
}

func TestResolveManyMixed(t *testing.T) {
	// Arrange
	configs := []route.Config{
		route.T("get", "/ok2", ok),
		route.Object{Method: "POST", Path: "ok3", Fn: ok},
		route.NewNamespace("Ns").Add("getOk", route.Func(ok)),
		route.Object{Path: "/sub", SubRoutes: []route.Config{
			route.T("delete", "/:id", ok),
			route.Object{Path: "/deeper", SubRoutes: []route.Config{route.T("put", "/ok", ok)}},
		}},
	}

	// Act
	descs, err := route.ResolveMany(configs)

	// Assert
	require.NoError(t, err)
	require.Equal(t, []route.Descriptor{
		{Method: "get", Path: "/ok2"},
		{Method: "post", Path: "/ok3"},
		{Method: "get", Path: "/ok"},
		{Path: "/sub", SubRoutes: []route.Descriptor{
			{Method: "delete", Path: "/:id"},
			{Path: "/deeper", SubRoutes: []route.Descriptor{{Method: "put", Path: "/ok"}}},
		}},
	}, strip(descs...))
}

func TestResolveOneRoundTrip(t *testing.T) {
	// Act
	fromTuple, err := route.ResolveOne(route.T("get", "/ok2", ok))
	require.NoError(t, err)

	fromObject, err := route.ResolveOne(route.Object{Method: "get", Path: "/ok2", Fn: ok})
	require.NoError(t, err)

	// Assert
	require.NotNil(t, fromTuple.Handler)
	require.NotNil(t, fromObject.Handler)
	require.Equal(t, strip(fromTuple), strip(fromObject))
}

func TestResolveOneHandlerShapes(t *testing.T) {
	handler := route.Handler(func(w http.ResponseWriter, _ *http.Request) (any, error) {
		w.Header().Set("X-Seen", "yes")
		return "handler", nil
	})

	for _, tc := range []struct {
		name     string
		config   route.Config
		expected any
		body     string
	}{
		{"Handler", route.T("get", "/", handler), "handler", ""},
		{"Func", route.T("get", "/", route.Func(ok)), "ok", ""},
		{"Func-Literal", route.T("get", "/", ok), "ok", ""},
		{
			"Method-On-Members",
			route.Object{
				Method:   "get",
				Path:     "/",
				Object:   route.Members{"value": "okeydokey", "fn": route.Method(value)},
				Function: "fn",
			},
			"okeydokey",
			"",
		},
		{"Raw-HandlerFunc", route.T("get", "/", http.HandlerFunc(rawOK), true), nil, "raw"},
		{"Raw-Func-Literal", route.T("get", "/", rawOK, true), nil, "raw"},
		{"Raw-Handler", route.T("get", "/", http.NotFoundHandler(), true), nil, "404 page not found\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()

			// Act
			d, err := route.ResolveOne(tc.config)
			require.NoError(t, err)

			actual, err := d.Handler(w, httptest.NewRequest(http.MethodGet, "/", nil))

			// Assert
			require.NoError(t, err)
			require.Equal(t, tc.expected, actual)
			require.Equal(t, tc.body, w.Body.String())
		})
	}
}

func TestResolveOneValidations(t *testing.T) {
	// Arrange
	first := errors.New("first")
	cfg := route.Object{
		Method:      "post",
		Path:        "/ok",
		Fn:          ok,
		Validations: []validate.Validator{func(*http.Request) error { return first }},
		Body:        validate.Fields{{Name: "a"}},
	}
	r := httptest.NewRequest(http.MethodPost, "/ok", nil)
	r = r.WithContext(req.WithBody(r.Context(), map[string]any{}))

	// Act
	d, err := route.ResolveOne(cfg)

	// Assert
	require.NoError(t, err)
	require.Len(t, d.Validations, 2)
	require.ErrorIs(t, d.Validations[0](r), first)
	require.ErrorContains(t, d.Validations[1](r), `no field "a" in body of request`)
}

func TestResolveOneErrors(t *testing.T) {
	for _, tc := range []struct {
		name     string
		config   route.Config
		contains string
	}{
		{"Nil", nil, "requires a route config"},
		{"Namespace", route.NewNamespace("Ns"), `namespace "Ns" may hold many`},
		{"No-Path", route.T("get", "", ok), "requires route path"},
		{
			"Sub-Routes-And-Method",
			route.Object{Method: "get", Path: "/sub", SubRoutes: []route.Config{route.T("get", "/", ok)}},
			`"/sub" cannot mount sub routes and serve a handler`,
		},
		{
			"Sub-Routes-And-Fn",
			route.Object{Path: "/sub", Fn: ok, SubRoutes: []route.Config{route.T("get", "/", ok)}},
			"cannot mount sub routes",
		},
		{
			"Sub-Routes-And-Raw",
			route.Object{Path: "/sub", Raw: true, SubRoutes: []route.Config{route.T("get", "/", ok)}},
			`"/sub" cannot mount sub routes and set Raw or validations`,
		},
		{
			"Sub-Routes-And-Body",
			route.Object{Path: "/sub", Body: validate.Fields{{Name: "a"}}, SubRoutes: []route.Config{route.T("get", "/", ok)}},
			"cannot mount sub routes and set Raw or validations",
		},
		{"Empty-Sub-Routes", route.Object{Path: "/sub", SubRoutes: []route.Config{}}, "requires an array of route configs"},
		{"No-Method", route.T("", "/ok", ok), `"/ok" requires a route method`},
		{"Unsupported-Method", route.T("trace", "/ok", ok), `unsupported method "trace"`},
		{"No-Handler", route.Object{Method: "get", Path: "/ok"}, "requires a route handler"},
		{
			"Fn-And-Object",
			route.Object{Method: "get", Path: "/ok", Fn: ok, Object: route.Members{}, Function: "fn"},
			"requires either Fn or Object and Function",
		},
		{"Fn-Not-Function", route.T("get", "/ok", "ok"), "requires Fn to be a function"},
		{"Fn-Method", route.T("get", "/ok", route.Method(value)), "Method handlers need Object and Function"},
		{"Fn-Method-Literal", route.T("get", "/ok", value), "Method handlers need Object and Function"},
		{"Object-Without-Function", route.Object{Method: "get", Path: "/ok", Object: route.Members{}}, "requires both Object and Function"},
		{"Function-Without-Object", route.Object{Method: "get", Path: "/ok", Function: "fn"}, "requires both Object and Function"},
		{
			"Function-Missing",
			route.Object{Method: "get", Path: "/ok", Object: route.Members{}, Function: "nope"},
			"handler `object[nope]` should exist",
		},
		{
			"Function-Not-Function",
			route.Object{Method: "get", Path: "/ok", Object: route.Members{"nope": 1}, Function: "nope"},
			"handler `object[nope]` should be a function",
		},
		{"Raw-Shape-Not-Raw", route.T("get", "/ok", rawOK), "must be marked Raw"},
		{
			"Nil-Validation",
			route.Object{Method: "get", Path: "/ok", Fn: ok, Validations: []validate.Validator{nil}},
			"validation at index 0 is nil",
		},
		{
			"Fields-Not-Valid",
			route.Object{Method: "get", Path: "/ok", Fn: ok, Query: validate.Fields{{}}},
			"query fields",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			_, err := route.ResolveOne(tc.config)

			// Assert
			requireConfigErr(t, err, tc.contains)
		})
	}
}

type binder struct {
	bound []route.Descriptor
	err   error
}

func (b *binder) Bind(d route.Descriptor) error {
	if b.err != nil {
		return b.err
	}

	b.bound = append(b.bound, d)
	return nil
}

func TestSetup(t *testing.T) {
	// Arrange
	b := new(binder)

	// Act
	err := route.Setup(b, route.NewNamespace("Ns").Add("getOk", route.Func(ok)).Add("postOk", route.Func(ok)))

	// Assert
	require.NoError(t, err)
	require.Equal(t, []route.Descriptor{{Method: "get", Path: "/ok"}, {Method: "post", Path: "/ok"}}, strip(b.bound...))
}

func TestSetupAll(t *testing.T) {
	t.Run("No-Target", func(t *testing.T) {
		// Act
		err := route.SetupAll(nil, []route.Config{route.T("get", "/ok", ok)})

		// Assert
		requireConfigErr(t, err, "requires a router target")
	})

	t.Run("Binds-Nothing-On-Error", func(t *testing.T) {
		// Arrange
		b := new(binder)

		// Act
		err := route.SetupAll(b, []route.Config{route.T("get", "/ok", ok), route.T("get", "", ok)})

		// Assert
		requireConfigErr(t, err, "requires route path")
		require.Empty(t, b.bound)
	})

	t.Run("Bind-Error", func(t *testing.T) {
		// Arrange
		b := &binder{err: errors.New("bind")}

		// Act
		err := route.SetupAll(b, []route.Config{route.T("get", "/ok", ok)})

		// Assert
		require.EqualError(t, err, "bind")
	})
}
