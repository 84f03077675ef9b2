package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/heartlink/gateway/internal/core/domain"
)

func handleError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestErrorHandler_BackendStatusPassthrough(t *testing.T) {
	err := &domain.BackendStatusError{
		Backend: domain.BackendUser,
		Status:  http.StatusUnprocessableEntity,
		Body:    []byte(`{"detail":"username taken"}`),
	}
	rec := handleError(t, err)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var resp struct {
		Error struct {
			Detail string `json:"detail"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Error.Detail != "username taken" {
		t.Fatalf("backend body not relayed: %s", rec.Body.String())
	}
}

func TestErrorHandler_BackendStatusNonJSONBody(t *testing.T) {
	err := &domain.BackendStatusError{
		Backend: domain.BackendMatching,
		Status:  http.StatusBadGateway,
		Body:    []byte("upstream offline"),
	}
	rec := handleError(t, err)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Error != "upstream offline" {
		t.Fatalf("expected plain text detail, got %q", resp.Error)
	}
}

func TestErrorHandler_DeletionFailureIncludesReport(t *testing.T) {
	report := domain.DeletionReport{
		Matching: domain.DeletionOutcome{Success: true},
		Chat:     domain.DeletionOutcome{Success: true},
		Profile:  domain.DeletionOutcome{Success: true},
		Auth:     domain.DeletionOutcome{Success: false, Error: "status 500"},
	}
	rec := handleError(t, &domain.AccountDeletionError{Report: report})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp struct {
		Error   string                `json:"error"`
		Results domain.DeletionReport `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Results.Auth.Success || !resp.Results.Profile.Success {
		t.Fatalf("outcome map not relayed: %+v", resp.Results)
	}
	if resp.Error == "" {
		t.Fatalf("expected an error message")
	}
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"expired token", domain.ErrTokenExpired, http.StatusUnauthorized, "Token expired"},
		{"invalid token", domain.ErrInvalidToken, http.StatusUnauthorized, "Invalid token"},
		{"incomplete profile", domain.ErrProfileIncomplete, http.StatusForbidden, "Profile not completed. Please complete your profile first."},
		{"complete profile", domain.ErrProfileComplete, http.StatusForbidden, "Profile already completed. Access denied."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := handleError(t, tt.err)
			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}
			var resp struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal response: %v", err)
			}
			if resp.Error != tt.message {
				t.Fatalf("expected %q, got %q", tt.message, resp.Error)
			}
		})
	}
}

func TestErrorHandler_BackendUnreachable(t *testing.T) {
	err := &domain.BackendDownError{Backend: domain.BackendChat, Err: errors.New("connection refused")}
	rec := handleError(t, err)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestErrorHandler_UnknownErrorIsOpaque(t *testing.T) {
	rec := handleError(t, errors.New("pq: connection reset"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Error != "internal server error" {
		t.Fatalf("internal detail leaked: %q", resp.Error)
	}
}
