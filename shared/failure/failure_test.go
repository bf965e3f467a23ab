package failure_test

import (
	"errors"
	"fmt"
	"lankaride/shared/failure"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("invalid dates")), code: http.StatusBadRequest, message: "invalid dates"},
		{name: "bad request from string", err: failure.BadRequestFromString("end before start"), code: http.StatusBadRequest, message: "end before start"},
		{name: "bad request formatted", err: failure.BadRequestf("max %d days", 60), code: http.StatusBadRequest, message: "max 60 days"},
		{name: "unauthorized", err: failure.Unauthorized("token expired"), code: http.StatusUnauthorized, message: "token expired"},
		{name: "forbidden", err: failure.Forbidden("not your booking"), code: http.StatusForbidden, message: "not your booking"},
		{name: "not found", err: failure.NotFound("vehicle not found"), code: http.StatusNotFound, message: "vehicle not found"},
		{name: "conflict", err: failure.Conflict("vehicle already booked"), code: http.StatusConflict, message: "vehicle already booked"},
		{name: "internal", err: failure.InternalError(errors.New("boom")), code: http.StatusInternalServerError, message: "boom"},
		{name: "unimplemented", err: failure.Unimplemented("Export"), code: http.StatusNotImplemented, message: "Export"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.message, tt.err.Error())
			assert.True(t, failure.Is(tt.err, tt.code))
		})
	}
}

func TestNilPassThrough(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode_Wrapped(t *testing.T) {
	err := fmt.Errorf("creating booking: %w", failure.Conflict("overlap"))

	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	assert.True(t, failure.Is(err, http.StatusConflict))
	assert.False(t, failure.Is(err, http.StatusNotFound))
}

func TestGetCode_PlainError(t *testing.T) {
	err := errors.New("dial tcp: refused")

	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	assert.False(t, failure.Is(err, http.StatusInternalServerError))
}

func TestPredefinedFailures(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, failure.InvalidPageParam.Code)
	assert.Equal(t, http.StatusBadRequest, failure.InvalidLimitParam.Code)
	assert.Equal(t, http.StatusForbidden, failure.ForbiddenError.Code)
	assert.Equal(t, http.StatusForbidden, failure.ResourceRestrictedError.Code)
}

func TestIsClient(t *testing.T) {
	assert.True(t, failure.IsClient(failure.Conflict("vehicle already booked")))
	assert.True(t, failure.IsClient(fmt.Errorf("wrapped: %w", failure.NotFound("booking not found"))))
	assert.False(t, failure.IsClient(failure.InternalError(errors.New("boom"))))
	assert.False(t, failure.IsClient(errors.New("dial tcp: refused")))
}
