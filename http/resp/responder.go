package resp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/logger"
)

const jsonMediaType = "application/json; charset=UTF-8"

// Responder maintains reusable pieces for responding to HTTP requests.
//
// Most oftentimes, a single Responder suffices for an application.
type Responder struct {
	allowed map[string]bool
	logger  logger.Logger

	// Pool of *bytes.Buffer to prerender responses into
	pool *sync.Pool
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
func NewResponder(opts ...ResponderOptFn) *Responder {
	rp := &Responder{
		allowed: make(map[string]bool),
		pool:    &sync.Pool{New: func() any { return new(bytes.Buffer) }},
	}
	for _, opt := range opts {
		opt(rp)
	}

	if rp.logger == nil {
		rp.logger = logger.New()
	}

	return rp
}

type dataSchema struct {
	Data any `json:"data"`
}

type errSchema struct {
	Error errBody `json:"error"`
}

type errBody struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Json writes payload encoded as JSON with the status code.
//
// If the request's context is done, nothing is written and ErrDone returns.
func (rp *Responder) Json(w http.ResponseWriter, r *http.Request, code int, payload any) error {
	if err := r.Context().Err(); err != nil {
		return fmt.Errorf("%w: %s", ErrDone, err)
	}

	b := rp.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer rp.pool.Put(b)

	if err := json.NewEncoder(b).Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", jsonMediaType)
	w.WriteHeader(code)
	_, err := b.WriteTo(w)
	return err
}

// Result responds with the outcome of a handler:
// err, if not nil, otherwise data wrapped in a "data" key.
func (rp *Responder) Result(w http.ResponseWriter, r *http.Request, data any, err error) {
	if err != nil {
		rp.Err(w, r, err)
		return
	}

	if err := rp.Json(w, r, http.StatusOK, dataSchema{Data: data}); err != nil {
		rp.Err(w, r, fmt.Errorf("cannot encode response: %w", err))
	}
}

// Err responds with err described under an "error" key, logging server errors.
func (rp *Responder) Err(w http.ResponseWriter, r *http.Request, err error) {
	code := Status(err)
	body := errBody{Name: Name(err), Message: err.Error()}

	var d detailer
	if errors.As(err, &d) {
		body.Details = d.Details()
	}

	lc := &logger.LogContext{Error: err, Request: r}
	if code >= http.StatusInternalServerError {
		rp.logger.Error("request failed", lc)
		if !rp.allowed[body.Name] {
			body.Message = maskedMsg
			body.Details = nil
		}
	} else {
		rp.logger.Debug("request refused", lc)
	}

	if werr := rp.Json(w, r, code, errSchema{Error: body}); werr != nil && !errors.Is(werr, ErrDone) {
		http.Error(w, body.Message, code)
	}
}

// NotFound responds 404 to requests matching no route.
func (rp *Responder) NotFound(w http.ResponseWriter, r *http.Request) {
	rp.Err(w, r, fmt.Errorf("%w: %s %s", switchback.ErrNotExist, r.Method, r.URL.Path))
}

// MethodNotAllowed responds 405 to requests matching a route's path but none of its methods.
func (rp *Responder) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	rp.Err(w, r, fmt.Errorf("%w: %s %s", switchback.ErrNotAllowed, r.Method, r.URL.Path))
}

// Status maps err onto an HTTP status code.
func Status(err error) int {
	var sc statusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}

	switch {
	case errors.Is(err, switchback.ErrNotValid), errors.Is(err, switchback.ErrMissingData):
		return http.StatusBadRequest
	case errors.Is(err, switchback.ErrNotExist):
		return http.StatusNotFound
	case errors.Is(err, switchback.ErrNotAllowed):
		return http.StatusMethodNotAllowed
	case errors.Is(err, switchback.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// Name names the class of err for a response.
func Name(err error) string {
	var n namer
	if errors.As(err, &n) {
		return n.ErrorName()
	}

	switch Status(err) {
	case http.StatusBadRequest:
		return "BadRequestError"
	case http.StatusNotFound:
		return "NotFoundError"
	case http.StatusMethodNotAllowed:
		return "MethodNotAllowedError"
	case http.StatusRequestEntityTooLarge:
		return "PayloadTooLargeError"
	default:
		return "Error"
	}
}
