package ports

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/heartlink/gateway/internal/core/domain"
)

// Response is the outcome of one completed backend call. A non-success
// status is not an error at this layer; the orchestration routine decides
// whether to abort, propagate, or continue.
type Response struct {
	Status int
	Body   []byte
}

// OK reports whether the backend answered with a 2xx status.
func (r *Response) OK() bool {
	return r.Status >= http.StatusOK && r.Status < http.StatusMultipleChoices
}

// JSON unmarshals the response body into v.
func (r *Response) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

// StatusError converts the response into the abort-on-failure error shape,
// preserving the backend's status and body verbatim.
func (r *Response) StatusError(backend domain.Backend) error {
	return &domain.BackendStatusError{Backend: backend, Status: r.Status, Body: r.Body}
}

// BackendClient issues a single HTTP call to a named backend. A nil body
// sends no payload; []byte and json.RawMessage bodies are sent as-is, any
// other value is JSON-encoded. Transport failures and timeouts are returned
// as *domain.BackendDownError.
type BackendClient interface {
	Do(ctx context.Context, backend domain.Backend, method, path string, query url.Values, body any) (*Response, error)
}
