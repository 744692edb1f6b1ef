package resp

import "errors"

var (
	ErrDone = errors.New("request ctx done")
)

// maskedMsg replaces the message of server errors not explicitly allowed.
const maskedMsg = "Request Error"

type statusCoder interface {
	StatusCode() int
}

type namer interface {
	ErrorName() string
}

type detailer interface {
	Details() any
}
