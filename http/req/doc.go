/*
Package req exposes the containers of an HTTP request that validators and handlers read from.

A request carries three keyed containers:
  - the JSON body, decoded by [github.com/xy-planning-network/switchback/http/middleware.ParseJSON]
    and stashed in the request context with [WithBody];
  - URL path parameters, as matched by the router;
  - query string parameters.

Each accessor reports whether the container is present at all,
so callers can distinguish a missing container from a missing key.
*/
package req
