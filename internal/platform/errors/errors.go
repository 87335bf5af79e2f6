// Package errors is the project error type: a code, a message, an optional
// field and op tag, and a wrapped cause. Imported as perr everywhere else
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies failures for wire payloads and HTTP status mapping.
// The numeric values travel in responses, so they only ever grow
type ErrorCode uint16

const (
	// ErrorCodeUnknown covers anything nothing else claims
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodePanic marks a panic caught by middleware
	ErrorCodePanic

	// ErrorCodeUnavailable marks transient faults worth retrying
	ErrorCodeUnavailable

	// ErrorCodeConflict marks edit conflicts other than duplicate key
	ErrorCodeConflict

	// ErrorCodeInvalidArgument marks bad input parameters
	ErrorCodeInvalidArgument

	// ErrorCodeValidation marks request payloads that fail validation
	ErrorCodeValidation

	// ErrorCodeSchema is for identifiers outside the closed vocabulary
	// (unknown metric, aggregation, scope, or column mapping)
	ErrorCodeSchema

	// ErrorCodeUnparsable is for questions no parse strategy could handle
	ErrorCodeUnparsable

	// ErrorCodeAdapter is for translator adapter failures
	// (unconfigured, network, HTTP status, undecodable reply)
	ErrorCodeAdapter

	// ErrorCodeCompile is for DSL values the SQL compiler cannot render
	ErrorCodeCompile

	// ErrorCodeJSON marks undecodable or invalid JSON
	ErrorCodeJSON

	// ErrorCodeNotFound marks missing resources
	ErrorCodeNotFound

	// ErrorCodeDuplicateKey marks unique constraint violations
	ErrorCodeDuplicateKey

	// ErrorCodeDB marks database errors with no finer classification
	ErrorCodeDB

	// ErrorCodeDeadline marks statement or request timeouts
	ErrorCodeDeadline
)

// HTTPStatusCode maps a code to its canonical HTTP status
func HTTPStatusCode(c ErrorCode) int {
	switch c {
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeInvalidArgument, ErrorCodeUnparsable, ErrorCodeSchema:
		return http.StatusUnprocessableEntity
	case ErrorCodeDuplicateKey, ErrorCodeConflict:
		return http.StatusConflict
	case ErrorCodeValidation, ErrorCodeJSON:
		return http.StatusBadRequest
	case ErrorCodeUnavailable, ErrorCodeAdapter:
		return http.StatusServiceUnavailable
	case ErrorCodeDeadline:
		return http.StatusGatewayTimeout
	case ErrorCodeDB, ErrorCodeCompile, ErrorCodePanic, ErrorCodeUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// ErrNotFound is the shared not-found sentinel
var ErrNotFound = New(ErrorCodeNotFound, "not found")

// Error carries a machine code next to the human message. field names the
// offending input for validation errors, op tags the operation that failed,
// orig is the wrapped cause
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
	op    string
}

// Wire is the JSON shape errors take in API responses
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

// Unwrap exposes the cause to errors.Is and errors.As
func (e *Error) Unwrap() error { return e.orig }

// Code returns the machine code
func (e *Error) Code() ErrorCode { return e.code }

// Field returns the offending field, empty when not a field error
func (e *Error) Field() string { return e.field }

// Op returns the operation tag, empty when unset
func (e *Error) Op() string { return e.op }

// ToWire projects the error into its response shape
func (e *Error) ToWire() Wire { return Wire{Code: e.code, Message: e.msg, Field: e.field} }

// WireFrom projects any error into a Wire. Foreign errors come out as
// Unknown, nil comes out as the zero Wire
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return e.ToWire()
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// Root walks Unwrap to the innermost cause
func Root(err error) error {
	for err != nil {
		u := stderrs.Unwrap(err)
		if u == nil {
			return err
		}
		err = u
	}
	return nil
}

// CodeOf reads the code off any error, Unknown for foreign ones
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err carries the given code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus maps any error to its HTTP status
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// As finds the nearest *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// The With* mutators copy before writing, shared errors stay immutable

// WithField sets the field tag. Foreign errors pass through untouched
func WithField(err error, field string) error {
	if e, ok := As(err); ok {
		c := *e
		c.field = field
		return &c
	}
	return err
}

// WithOp sets the operation tag. Foreign errors pass through untouched
func WithOp(err error, op string) error {
	if e, ok := As(err); ok {
		c := *e
		c.op = op
		return &c
	}
	return err
}

// FieldOf returns the offending field from any error, if it carries one
func FieldOf(err error) string {
	if e, ok := As(err); ok {
		return e.field
	}
	return ""
}

// Constructors

// New builds an *Error from a code and message
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf is New with Sprintf formatting
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap builds an *Error around a cause
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf is Wrap with Sprintf formatting
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// WrapIf wraps only a non-nil err, keeping call sites to one line
func WrapIf(err error, code ErrorCode, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, code, msg)
}

// Per-code shorthands

// NotFoundf builds a not found error
func NotFoundf(format string, a ...any) error { return Newf(ErrorCodeNotFound, format, a...) }

// InvalidArgf builds an invalid argument error
func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

// Validationf builds a validation error
func Validationf(format string, a ...any) error { return Newf(ErrorCodeValidation, format, a...) }

// Schemaf builds a vocabulary violation error
func Schemaf(format string, a ...any) error { return Newf(ErrorCodeSchema, format, a...) }

// Unparsablef builds an unparsable question error
func Unparsablef(format string, a ...any) error { return Newf(ErrorCodeUnparsable, format, a...) }

// Adapterf builds a translator adapter error
func Adapterf(format string, a ...any) error { return Newf(ErrorCodeAdapter, format, a...) }

// Compilef builds a compilation error
func Compilef(format string, a ...any) error { return Newf(ErrorCodeCompile, format, a...) }

// DuplicateKeyf builds a duplicate key error
func DuplicateKeyf(format string, a ...any) error { return Newf(ErrorCodeDuplicateKey, format, a...) }

// DBf builds a database error
func DBf(format string, a ...any) error { return Newf(ErrorCodeDB, format, a...) }

// JSONErrf builds a JSON error
func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }

// PanicErrf builds a recovered panic error
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

// Conflictf builds a conflict error
func Conflictf(format string, a ...any) error { return Newf(ErrorCodeConflict, format, a...) }

// Unavailablef builds an unavailable error
func Unavailablef(format string, a ...any) error { return Newf(ErrorCodeUnavailable, format, a...) }

// Deadlinef builds a timeout error
func Deadlinef(format string, a ...any) error { return Newf(ErrorCodeDeadline, format, a...) }

// Internalf builds a generic internal error
func Internalf(format string, a ...any) error { return Newf(ErrorCodeUnknown, format, a...) }

// HTTP resolves status and wire payload in one call, the shape handlers want
func HTTP(err error) (int, Wire) {
	if err == nil {
		return http.StatusOK, Wire{}
	}
	return HTTPStatus(err), WireFrom(err)
}

// Retryable reports whether a retry could plausibly succeed. Today the
// backend-specific logic lives in pg.go, see IsRetryable
func Retryable(err error) bool { return IsRetryable(err) }
