/*
Package resp formats handler outcomes as HTTP responses.

A [Responder] writes JSON envelopes. A successful handler's value is wrapped in a "data" key:

	{"data": "ok"}

An error is described under an "error" key:

	{"error": {"name": "ValidationError", "message": "field \"one\" is not valid", "details": {"field": "one", "value": "nottwo", "path": "/ok"}}}

The status code for an error comes from the error itself when it exposes a StatusCode method,
otherwise from the switchback sentinel error it wraps.
Messages of server errors (5xx) are masked unless the error's name is allowed
with [WithAllowedErrors].
*/
package resp
