package route

import (
	"strings"

	"github.com/xy-planning-network/switchback/logger"
)

// A ResolverOptFn configures a Resolver.
type ResolverOptFn func(*Resolver)

// WithLogger sets the logger route resolution reports added and skipped routes to.
func WithLogger(l logger.Logger) ResolverOptFn {
	return func(rs *Resolver) {
		rs.log = l
	}
}

// WithPathPrefix prepends prefix to every path inferred from a Namespace.
func WithPathPrefix(prefix string) ResolverOptFn {
	return func(rs *Resolver) {
		prefix = strings.TrimRight(prefix, "/")
		if prefix != "" {
			prefix = withSlash(prefix)
		}

		rs.prefix = prefix
	}
}

// WithSeparator sets the string joining the words of an inferred path.
// The default is "-".
func WithSeparator(sep string) ResolverOptFn {
	return func(rs *Resolver) {
		rs.sep = sep
	}
}
