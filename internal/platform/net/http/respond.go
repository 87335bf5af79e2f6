// Package http is the reply surface. Every response leaves through the
// same JSON envelope no matter which handler produced it
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "vidtally/internal/platform/errors"
	pnet "vidtally/internal/platform/net"
)

// Envelope is the response body every endpoint writes
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

func successEnvelope(status int, reqID string, data any) Envelope {
	return Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		RequestID:  reqID,
		Data:       data,
	}
}

func errorEnvelope(err error, reqID string) (int, Envelope) {
	status := perr.HTTPStatus(err)
	wr := perr.WireFrom(err)
	return status, Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		Code:       wr.Code,
		Error:      wr.Message,
		RequestID:  reqID,
	}
}

// JSON writes v under the given status as application/json
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONStatus sends a bare status, the body stays an empty object
func JSONStatus(w stdhttp.ResponseWriter, status int) {
	JSON(w, status, map[string]any{})
}

// RespondOK writes data straight to w in a 200 envelope
func RespondOK(w stdhttp.ResponseWriter, r *stdhttp.Request, data any) {
	reqID := pnet.RequestID(r.Context())
	JSON(w, stdhttp.StatusOK, successEnvelope(stdhttp.StatusOK, reqID, data))
}

// RespondError maps a project error into its envelope and writes it
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	reqID := pnet.RequestID(r.Context())
	status, env := errorEnvelope(err, reqID)
	JSON(w, status, env)
}

// Response is the return value of return-style handlers
type Response struct {
	Status int
	Body   any
	// optional extra headers
	Header stdhttp.Header
}

// Handle turns a Response-returning func into a net/http handler
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	if resp.Header != nil {
		for k, vv := range resp.Header {
			for _, v := range vv {
				w.Header().Add(k, v)
			}
		}
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(stdhttp.StatusNoContent)
		return
	}

	reqID := pnet.RequestID(r.Context())

	// an error Body decides the status itself
	if err, ok := resp.Body.(error); ok && err != nil {
		st, env := errorEnvelope(err, reqID)
		JSON(w, st, env)
		return
	}

	JSON(w, status, successEnvelope(status, reqID, resp.Body))
}

// OK wraps data in a 200 reply
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// NoContent is the bodyless 204 reply
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error returns a response carrying err; write derives status and envelope
func Error(err error) Response { return Response{Body: err} }
