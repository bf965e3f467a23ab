package otel

import (
	"errors"
	"lankaride/shared/failure"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordedScope(t *testing.T) (Scope, *tracetest.SpanRecorder) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))
	_, span := provider.Tracer("test").Start(t.Context(), "booking.Create")

	return NewScope(span), recorder
}

func TestScope_TraceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus codes.Code
	}{
		{name: "client failure keeps status unset", err: failure.Conflict("vehicle already booked"), wantStatus: codes.Unset},
		{name: "internal error marks span", err: errors.New("connection reset"), wantStatus: codes.Error},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope, recorder := newRecordedScope(t)

			scope.TraceIfError(tt.err)
			scope.End()

			spans := recorder.Ended()
			require.Len(t, spans, 1)
			assert.Equal(t, tt.wantStatus, spans[0].Status().Code)
			require.Len(t, spans[0].Events(), 1)
			assert.Equal(t, "exception", spans[0].Events()[0].Name)
		})
	}
}

func TestScope_TraceIfError_Nil(t *testing.T) {
	scope, recorder := newRecordedScope(t)

	scope.TraceIfError(nil)
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Empty(t, spans[0].Events())
}

func TestScope_SetAttributes(t *testing.T) {
	scope, recorder := newRecordedScope(t)
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	scope.SetAttributes(map[string]any{
		"booking.days":  3,
		"booking.gross": 45000.5,
		"booking.start": start,
		"vehicle.id":    "v-1",
		"offer":         true,
	})
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	got := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		got[kv.Key] = kv.Value
	}

	assert.Equal(t, int64(3), got["booking.days"].AsInt64())
	assert.InDelta(t, 45000.5, got["booking.gross"].AsFloat64(), 0.001)
	assert.Equal(t, "2026-03-01T00:00:00Z", got["booking.start"].AsString())
	assert.Equal(t, "v-1", got["vehicle.id"].AsString())
	assert.True(t, got["offer"].AsBool())
}
