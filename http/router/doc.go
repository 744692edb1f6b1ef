/*
Package router registers resolved routes on a [mux.Router].

A [*Router] is a [route.Binder]:
each [route.Descriptor] handed to [*Router.Bind] becomes a mux route
guarded by the descriptor's validators, in order.
A validator rejecting a request, or a handler returning an error,
responds through the [*resp.Responder] the Router was built with.
Handlers that are not raw have their returned value written as the JSON response.

Route paths may declare parameters either way:

	/user/:id
	/user/{id}

Descriptors with sub routes mount them on a subrouter at their path.
A sub route at / serves the mount path itself.

Requests for a known path with a method it does not serve answer 405,
listing the methods it does serve in the Allow header.

A [Route] registers a plain [http.Handler] alongside resolved routes,
for handlers that sit outside the route conventions.
*/
package router
