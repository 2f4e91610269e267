package apperror

import (
	"log"
	"sync"
)

// Handler receives every error reported to the service.
type Handler func(err *Error)

// TelemetryProvider is the pluggable sink errors and messages are forwarded
// to in addition to registered handlers.
type TelemetryProvider interface {
	CaptureError(err *Error)
	CaptureMessage(message string, severity Severity)
	SetContext(key string, value any)
}

// Service normalizes failures and dispatches them to registered handlers
// and the telemetry sink. It is an explicit dependency of its consumers;
// tests construct their own instance and Reset it between cases.
type Service struct {
	mu        sync.Mutex
	handlers  []Handler
	telemetry TelemetryProvider
	context   map[string]any
}

// NewService creates an error service. A nil telemetry provider falls back
// to the log-backed sink.
func NewService(telemetry TelemetryProvider) *Service {
	if telemetry == nil {
		telemetry = LogTelemetry{}
	}
	return &Service{
		telemetry: telemetry,
		context:   make(map[string]any),
	}
}

// Register adds a handler that will be invoked for every reported error.
func (s *Service) Register(h Handler) {
	if h == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, h)
}

// SetContext sets an ambient context value merged into every reported
// error and mirrored to the telemetry sink.
func (s *Service) SetContext(key string, value any) {
	s.mu.Lock()
	s.context[key] = value
	s.mu.Unlock()
	s.telemetry.SetContext(key, value)
}

// Report normalizes v into a typed error, merges ambient context under it
// (call-specific context wins), and dispatches to every handler and the
// telemetry sink. A handler that panics is logged and never prevents the
// remaining handlers from running. The normalized error is returned so
// callers can re-raise it.
func (s *Service) Report(v any) *Error {
	err := Normalize(v)

	s.mu.Lock()
	for k, val := range s.context {
		if err.Context == nil {
			err.Context = make(map[string]any)
		}
		if _, ok := err.Context[k]; !ok {
			err.Context[k] = val
		}
	}
	handlers := make([]Handler, len(s.handlers))
	copy(handlers, s.handlers)
	s.mu.Unlock()

	for _, h := range handlers {
		s.dispatch(h, err)
	}
	s.telemetry.CaptureError(err)

	return err
}

func (s *Service) dispatch(h Handler, err *Error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("error handler panicked: %v", r)
		}
	}()
	h(err)
}

// Reset drops all handlers and ambient context. Used by test harnesses for
// isolation between cases.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = nil
	s.context = make(map[string]any)
}

// LogTelemetry writes captured errors and messages to the standard logger.
type LogTelemetry struct{}

func (LogTelemetry) CaptureError(err *Error) {
	log.Printf("ERROR [%s/%s]: %s", err.Severity, err.Code, err.Message)
}

func (LogTelemetry) CaptureMessage(message string, severity Severity) {
	log.Printf("%s: %s", severity, message)
}

func (LogTelemetry) SetContext(key string, value any) {}
