package validate

import (
	"fmt"

	v10 "github.com/go-playground/validator/v10"
	"github.com/xy-planning-network/switchback"
)

var tags = v10.New()

// Tag builds a Predicate from a validator tag, e.g. "required,email" or "oneof=red blue".
//
// Tag errors when the tag names an unknown rule.
func Tag(tag string) (pred Predicate, err error) {
	defer func() {
		if r := recover(); r != nil {
			pred = nil
			err = fmt.Errorf("%w: tag %q: %v", switchback.ErrBadConfig, tag, r)
		}
	}()

	// NOTE: v10 only panics on an unknown rule once it checks a value.
	_ = tags.Var("", tag)

	return func(v any) (ok bool) {
		defer func() {
			if recover() != nil {
				ok = false
			}
		}()

		return tags.Var(v, tag) == nil
	}, nil
}

// MustTag is like Tag but panics if the tag is unknown.
func MustTag(tag string) Predicate {
	pred, err := Tag(tag)
	if err != nil {
		panic(err)
	}

	return pred
}
