/*
Package route resolves route configuration into a flat, checked table of [Descriptor].

Routes may be configured three ways, each a variant of [Config]:

A [Tuple] names a method, a path, and a handler function positionally:

	route.T("get", "/ok", func(r *http.Request) (any, error) { return "ok", nil })

An [Object] spells each part out, and may bind a handler by name on a [Receiver],
carry validators, or mount sub routes:

	route.Object{Path: "/sub", SubRoutes: []route.Config{
		route.T("get", "/ok", ok),
	}}

A [*Namespace] is a named collection of functions whose HTTP method and path
are inferred from each member's name:

	ns := route.NewNamespace("Users").
		Add("getUser", getUser).
		Add("path_getUser", "/user/:id").
		Add("params_getUser", validate.Fields{{Name: "id", Check: isID}}).
		Add("createUser", createUser).
		Add("body_createUser", validate.Fields{{Name: "email", Check: validate.MustTag("email")}})

getUser serves GET /user/:id; createUser serves POST /user.

# Conventions

The first word of a member's name picks its method, checked in this order:

	get                 GET
	post, create        POST
	delete, remove      DELETE
	patch, update       PATCH
	put, replace        PUT
	routes              mounts a sub router

Members matching none of these are not routes and are skipped.
The remaining words, lower cased and joined by "-", form the path:
getOkWoo serves GET /ok-woo.

Members named after a function with one of these prefixes configure that function's route:

	path_<fn>     string, replaces the inferred path
	body_<fn>     validate.Fields checked against the JSON body
	params_<fn>   validate.Fields checked against URL path parameters
	query_<fn>    validate.Fields checked against the query string
	raw_<fn>      bool, the function writes its own response

Validators run in that order: body, params, query.
A convention member naming no function, or naming a member that is not a function,
(path_ may also name a routes member)
fails resolution so typos surface at startup.

All failures during resolution are a [*ConfigError].
*/
package route
