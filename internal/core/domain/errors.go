package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrInvalidToken covers malformed tokens and bad signatures.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned for tokens whose signature is valid but
	// whose expiry has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrProfileIncomplete rejects callers who have not finished onboarding.
	ErrProfileIncomplete = errors.New("profile not completed")
	// ErrProfileComplete rejects onboarding endpoints for finished profiles.
	ErrProfileComplete = errors.New("profile already completed")
	// ErrBackendUnavailable marks transport failures and timeouts talking to
	// a backend. Matched with errors.Is through BackendDownError.
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// BackendDownError wraps a transport-level failure (connection refused,
// timeout) against a named backend.
type BackendDownError struct {
	Backend Backend
	Err     error
}

func (e *BackendDownError) Error() string {
	return fmt.Sprintf("%s service unavailable: %v", e.Backend, e.Err)
}

func (e *BackendDownError) Unwrap() error { return e.Err }

// Is lets callers test with errors.Is(err, ErrBackendUnavailable).
func (e *BackendDownError) Is(target error) bool {
	return target == ErrBackendUnavailable
}

// BackendStatusError reports a backend that answered with a non-success
// status. Orchestration steps documented as abort-on-failure surface it to
// the client with the backend's own status and body.
type BackendStatusError struct {
	Backend Backend
	Status  int
	Body    []byte
}

func (e *BackendStatusError) Error() string {
	return fmt.Sprintf("%s service returned status %d", e.Backend, e.Status)
}

// Detail returns the backend's body for verbatim propagation: parsed JSON
// when the body is valid JSON, otherwise the raw text.
func (e *BackendStatusError) Detail() any {
	if len(e.Body) == 0 {
		return e.Error()
	}
	if json.Valid(e.Body) {
		return json.RawMessage(e.Body)
	}
	return string(e.Body)
}

// AccountDeletionError is returned when the account-deletion fan-out could
// not confirm removal of the auth record. It carries the full per-backend
// outcome map for diagnostic visibility.
type AccountDeletionError struct {
	Report DeletionReport
}

func (e *AccountDeletionError) Error() string {
	return "account deletion failed: auth record was not removed"
}
