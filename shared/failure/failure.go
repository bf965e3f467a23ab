package failure

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure is an error that carries the HTTP status it should be answered with.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var (
	InvalidPageParam        = New(http.StatusBadRequest, "invalid page parameter")
	InvalidLimitParam       = New(http.StatusBadRequest, "invalid limit parameter")
	ForbiddenError          = New(http.StatusForbidden, "You don't have the required permissions")
	ResourceRestrictedError = New(http.StatusForbidden, "You don't have permission to access this resource")
)

func (e *Failure) Error() string {
	return e.Message
}

func New(code int, msg string) *Failure {
	return &Failure{Code: code, Message: msg}
}

// BadRequest keeps a nil error nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

func BadRequestf(format string, args ...any) error {
	return New(http.StatusBadRequest, fmt.Sprintf(format, args...))
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return New(http.StatusForbidden, msg)
}

// NotFound takes the full message, e.g. "vehicle not found".
func NotFound(msg string) error {
	return New(http.StatusNotFound, msg)
}

// Conflict marks a request that collides with current state: an overlapping booking,
// an offer that already left pending, a second review for one booking.
func Conflict(msg string) error {
	return New(http.StatusConflict, msg)
}

// InternalError keeps a nil error nil.
func InternalError(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusInternalServerError, err.Error())
}

func Unimplemented(methodName string) error {
	return New(http.StatusNotImplemented, methodName)
}

// GetCode unwraps err looking for a Failure; anything else is a 500.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

func Is(err error, code int) bool {
	var fail *Failure

	return errors.As(err, &fail) && fail.Code == code
}

// IsClient reports whether err is a Failure in the 4xx range.
func IsClient(err error) bool {
	code := GetCode(err)

	return code >= http.StatusBadRequest && code < http.StatusInternalServerError
}
