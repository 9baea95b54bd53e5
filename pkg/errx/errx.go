package errx

import (
	"fmt"
	"net/http"
)

// ErrorType classifies errors for handling and reporting
type ErrorType string

const (
	TypeValidation    ErrorType = "VALIDATION"
	TypeNotFound      ErrorType = "NOT_FOUND"
	TypeConflict      ErrorType = "CONFLICT"
	TypeAuthorization ErrorType = "AUTHORIZATION"
	TypeBusiness      ErrorType = "BUSINESS"
	TypeExternal      ErrorType = "EXTERNAL"
	TypeInternal      ErrorType = "INTERNAL"
)

// Code identifies a registered error within a registry
type Code string

// Error is a structured application error
type Error struct {
	Type       ErrorType      `json:"type"`
	Code       Code           `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail attaches a single detail to the error
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails attaches multiple details to the error
func (e *Error) WithDetails(details map[string]any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any, len(details))
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// ToHTTPResponse returns the JSON body for an HTTP error response
func (e *Error) ToHTTPResponse() map[string]any {
	resp := map[string]any{
		"type":    e.Type,
		"code":    e.Code,
		"message": e.Message,
	}
	if len(e.Details) > 0 {
		resp["details"] = e.Details
	}
	return resp
}

type registeredError struct {
	errType    ErrorType
	httpStatus int
	message    string
}

// Registry holds the error codes of one domain, namespaced by prefix
type Registry struct {
	prefix string
	codes  map[Code]registeredError
}

// NewRegistry creates a registry with the given prefix (e.g. "JOB")
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		codes:  make(map[Code]registeredError),
	}
}

// Register adds an error code to the registry and returns its full code
func (r *Registry) Register(code string, errType ErrorType, httpStatus int, message string) Code {
	full := Code(r.prefix + "_" + code)
	r.codes[full] = registeredError{
		errType:    errType,
		httpStatus: httpStatus,
		message:    message,
	}
	return full
}

// New creates an error from a registered code
func (r *Registry) New(code Code) *Error {
	reg, ok := r.codes[code]
	if !ok {
		return &Error{
			Type:       TypeInternal,
			Code:       code,
			Message:    "unregistered error code",
			HTTPStatus: http.StatusInternalServerError,
		}
	}
	return &Error{
		Type:       reg.errType,
		Code:       code,
		Message:    reg.message,
		HTTPStatus: reg.httpStatus,
	}
}

// NewWithCause creates an error from a registered code wrapping a cause
func (r *Registry) NewWithCause(code Code, cause error) *Error {
	err := r.New(code)
	err.Cause = cause
	return err
}

// Wrap wraps an arbitrary error into an *Error of the given type
func Wrap(err error, message string, errType ErrorType) *Error {
	status := http.StatusInternalServerError
	switch errType {
	case TypeValidation:
		status = http.StatusBadRequest
	case TypeNotFound:
		status = http.StatusNotFound
	case TypeConflict:
		status = http.StatusConflict
	case TypeAuthorization:
		status = http.StatusForbidden
	case TypeBusiness:
		status = http.StatusUnprocessableEntity
	case TypeExternal:
		status = http.StatusBadGateway
	}
	return &Error{
		Type:       errType,
		Code:       Code(string(errType) + "_ERROR"),
		Message:    message,
		HTTPStatus: status,
		Cause:      err,
	}
}
