package service

import (
	"context"
	"net/url"

	"github.com/heartlink/gateway/internal/core/domain"
	"github.com/heartlink/gateway/internal/core/ports"
)

// recordedCall captures one backend call made by a service under test.
type recordedCall struct {
	Backend domain.Backend
	Method  string
	Path    string
	Query   url.Values
	Body    any
}

// stubBackend is a scripted ports.BackendClient. Responses and transport
// errors are keyed by "METHOD path"; unscripted calls succeed with an empty
// JSON object.
type stubBackend struct {
	calls     []recordedCall
	responses map[string]*ports.Response
	errors    map[string]error
}

func newStubBackend() *stubBackend {
	return &stubBackend{
		responses: make(map[string]*ports.Response),
		errors:    make(map[string]error),
	}
}

func (s *stubBackend) respond(method, path string, status int, body string) {
	s.responses[method+" "+path] = &ports.Response{Status: status, Body: []byte(body)}
}

func (s *stubBackend) fail(method, path string, backend domain.Backend) {
	s.errors[method+" "+path] = &domain.BackendDownError{Backend: backend, Err: context.DeadlineExceeded}
}

func (s *stubBackend) Do(_ context.Context, backend domain.Backend, method, path string, query url.Values, body any) (*ports.Response, error) {
	s.calls = append(s.calls, recordedCall{Backend: backend, Method: method, Path: path, Query: query, Body: body})
	key := method + " " + path
	if err, ok := s.errors[key]; ok {
		return nil, err
	}
	if res, ok := s.responses[key]; ok {
		return res, nil
	}
	return &ports.Response{Status: 200, Body: []byte(`{}`)}, nil
}

// called reports whether any call matched the method and path.
func (s *stubBackend) called(method, path string) bool {
	for _, call := range s.calls {
		if call.Method == method && call.Path == path {
			return true
		}
	}
	return false
}
