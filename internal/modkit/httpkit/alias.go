// Package httpkit is the routing surface modules build on. It re-exports
// the platform http seam so module code never imports platform/net/http
package httpkit

import (
	"net/http"

	phttp "vidtally/internal/platform/net/http"
	"vidtally/internal/platform/net/http/bind"
)

type (
	// Envelope is the wire envelope
	Envelope = phttp.Envelope

	// Response is what handlers return
	Response = phttp.Response

	// Handler is the platform handler shape
	Handler = phttp.Handler

	// Router is the platform router seam
	Router = phttp.Router
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// NoContent returns a 204 response
func NoContent() Response { return phttp.NoContent() }

// Error maps an error to its status and envelope
func Error(err error) Response { return phttp.Error(err) }

// respond folds a handler's (out, err) into a Response. Handlers may return
// a ready Response to pick their own status
func respond(out any, err error) Response {
	if err != nil {
		return phttp.Error(err)
	}
	if resp, ok := out.(phttp.Response); ok {
		return resp
	}
	return phttp.OK(out)
}

// JSON binds and validates the body before the handler runs
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return phttp.Error(err)
		}
		return respond(fn(r, in))
	})
}

// Call adapts a handler that takes no body
func Call(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		return respond(fn(r))
	})
}

// Handle adapts a Response-returning function directly
func Handle(fn func(*http.Request) Response) Handler {
	return phttp.Handle(fn)
}
