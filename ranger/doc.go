/*
Package ranger assembles an app from its routes and runs its web server.

# Ranger

The main entrypoint to package ranger is the [Ranger] type,
constructed with [New]:

	rng, err := ranger.New(
		ranger.WithRoutes(users, route.T("get", "/health", health)),
		ranger.WithCORS("https://example.com"),
	)
	if err != nil {
		log.Fatal(err)
	}

	log.Fatal(rng.Guide())

Route configuration that cannot be resolved fails [New]; an app never serves a partial set of routes.

Every request passes through, in order:
panic recovery, transaction ID tracking, client IP address detection,
request logging, CORS, JSON body parsing, any middlewares set by [WithUse],
and finally the router.
Requests matching no route respond 404 with a JSON error.

[*Ranger.Guide] begins the web server.
Stop that web server with [*Ranger.Shutdown],
by cancelling the context passed to [WithContext],
or send a signal [*Ranger.Guide] listens for.

# Configuration

A developer configures an app through environment variables and [RangerOption]s;
options take precedence.

Environment variables may be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - BODY_LIMIT: the largest JSON request body in bytes; default: 8192
  - CORS_ORIGIN: the origin allowed to make cross-origin requests; default: none
  - ENVIRONMENT: the environment the application is running in; cf. [switchback.Environment]
  - HOST: the host the application listens on; default: all interfaces
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
  - PORT: the port the application should listen on; default: :3000
  - SENTRY_DSN: the Sentry project errors are reported to; default: none
  - SERVER_IDLE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for writing HTTP responses; default: 5s
  - SHUTDOWN_TIMEOUT: the time - as understood by [time.ParseDuration] - open requests have to finish on shutdown; default: 5s
  - TRUST_TRANSACTION_ID: whether to keep the X-Transaction-Id header of inbound requests; default: false
*/
package ranger
