package route

import "net/http"

// A Handler serves a resolved route.
//
// For routes that are not raw, the returned value or error is handed to the response formatter.
// Raw handlers write their own response to w; only a returned error is formatted.
type Handler func(w http.ResponseWriter, r *http.Request) (any, error)

// A Func is a handler returning the value to respond with.
type Func func(r *http.Request) (any, error)

// A Method is a handler bound to the Receiver it is a member of.
// The Receiver is passed in explicitly on every call.
type Method func(recv Receiver, r *http.Request) (any, error)

// bind adapts fn into a Handler, passing recv to fn if it is a Method.
// bind reports whether fn writes its own response and whether fn is a function at all.
func bind(fn any, recv Receiver) (h Handler, writes bool, ok bool) {
	switch f := fn.(type) {
	case Handler:
		return f, false, f != nil
	case func(http.ResponseWriter, *http.Request) (any, error):
		return f, false, f != nil
	case Func:
		return valueOf(f), false, f != nil
	case func(*http.Request) (any, error):
		return valueOf(f), false, f != nil
	case Method:
		return boundTo(recv, f), false, f != nil
	case func(Receiver, *http.Request) (any, error):
		return boundTo(recv, f), false, f != nil
	case http.HandlerFunc:
		return writer(f), true, f != nil
	case func(http.ResponseWriter, *http.Request):
		return writer(http.HandlerFunc(f)), true, f != nil
	case http.Handler:
		return writer(f), true, true
	default:
		return nil, false, false
	}
}

// isMethod reports whether fn needs a Receiver to be called.
func isMethod(fn any) bool {
	switch fn.(type) {
	case Method, func(Receiver, *http.Request) (any, error):
		return true
	}

	return false
}

func valueOf(f func(*http.Request) (any, error)) Handler {
	return func(_ http.ResponseWriter, r *http.Request) (any, error) { return f(r) }
}

func boundTo(recv Receiver, f func(Receiver, *http.Request) (any, error)) Handler {
	return func(_ http.ResponseWriter, r *http.Request) (any, error) { return f(recv, r) }
}

func writer(h http.Handler) Handler {
	return func(w http.ResponseWriter, r *http.Request) (any, error) {
		h.ServeHTTP(w, r)
		return nil, nil
	}
}
