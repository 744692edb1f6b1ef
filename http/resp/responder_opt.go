package resp

import "github.com/xy-planning-network/switchback/logger"

// A ResponderOptFn mutates the provided *Responder in some way.
// A ResponderOptFn is used when constructing a new Responder.
type ResponderOptFn func(*Responder)

// WithAllowedErrors exposes the message of server errors with one of names,
// as reported by an ErrorName method.
func WithAllowedErrors(names ...string) ResponderOptFn {
	return func(rp *Responder) {
		for _, name := range names {
			rp.allowed[name] = true
		}
	}
}

// WithLogger sets the provided implementation of Logger in order to log all statements through it.
//
// If no Logger is provided through this option, logger.New configures one.
func WithLogger(log logger.Logger) ResponderOptFn {
	return func(rp *Responder) {
		rp.logger = log
	}
}
