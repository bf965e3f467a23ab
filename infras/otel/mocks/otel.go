package mocks

import (
	"context"
	"lankaride/infras/otel"
	"sync"
)

// Recorder is a no-op otel.Otel that remembers the span names it opened
// and the errors traced on them.
type Recorder struct {
	mu     sync.Mutex
	Spans  []string
	Errors []error
}

func (r *Recorder) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	r.mu.Lock()
	r.Spans = append(r.Spans, spanName)
	r.mu.Unlock()

	return ctx, &scope{recorder: r}
}

func (r *Recorder) Shutdown(_ context.Context) error {
	return nil
}

func (r *Recorder) traced(err error) {
	r.mu.Lock()
	r.Errors = append(r.Errors, err)
	r.mu.Unlock()
}

type scope struct {
	recorder *Recorder
}

func (s *scope) End() {}

func (s *scope) AddEvent(_ string) {}

func (s *scope) SetAttribute(_ string, _ any) {}

func (s *scope) SetAttributes(_ map[string]any) {}

func (s *scope) TraceError(err error) {
	s.recorder.traced(err)
}

func (s *scope) TraceIfError(err error) {
	if err != nil {
		s.recorder.traced(err)
	}
}

func NewOtel() otel.Otel {
	return &Recorder{}
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// NewScope returns a scope that records nowhere.
func NewScope() otel.Scope {
	return &scope{recorder: &Recorder{}}
}
