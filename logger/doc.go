/*
Package logger provides leveled logging to a switchback app by defining the required behavior in [Logger]
and providing implementations of it with [ColorLogger] and [SentryLogger].

# Overview

An implementation of Logger is initialized at a certain [LogLevel]
and only emits messages at or above that level of importance.
For example, a [ColorLogger] initialized with [LogLevelWarn]
only produces messages from [*ColorLogger.Warn], [*ColorLogger.Error], and [*ColorLogger.Fatal].

Log messages emitted by [ColorLogger] are composed of a few parts:
  - timestamp
  - log level
  - call site
  - message
  - log context

Here's an example:

	2026/10/15 15:55:21 [DEBUG] route/resolver.go:88 'adding route' log_context: {"data":{"method":"get","path":"/ok"}}

# SentryLogger

When the SENTRY_DSN environment variable is set, [New] wraps the [ColorLogger]
in a [SentryLogger], which additionally ships the error in a [LogContext] to Sentry
for messages at [LogLevelWarn] and above.
*/
package logger
