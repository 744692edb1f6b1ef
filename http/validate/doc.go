/*
Package validate compiles declared field checks into reusable request validators.

A [Fields] is an ordered list of field names, each paired with a [Predicate].
[Body], [Params], and [Query] compile a Fields once,
returning a [Validator] that checks the matching container of every request it sees:

	v := validate.Params("/ok/:id", validate.Fields{
		{Name: "id", Check: func(v any) bool { return v == "4" }},
	})

A Validator checks fields in their declared order and stops at the first failure.
It reports one of three failures as an [*Error]:
the request carries no such container at all,
a field is absent from the container,
or a field is present but its Predicate rejects the value.

A Predicate receives the value exactly as read from the container; the compiler never coerces it.
*/
package validate
