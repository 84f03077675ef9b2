package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/heartlink/gateway/internal/core/domain"
)

func gateContext(t *testing.T, claims *domain.Claims) echo.Context {
	t.Helper()
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if claims != nil {
		c.Set(claimsKey, claims)
	}
	return c
}

func runGate(t *testing.T, mw echo.MiddlewareFunc, c echo.Context) (passed bool, err error) {
	t.Helper()
	err = mw(func(c echo.Context) error {
		passed = true
		return nil
	})(c)
	return passed, err
}

// The two gates are complements: for any claims value exactly one passes.
func TestProfileGates_Complementary(t *testing.T) {
	tests := []struct {
		name     string
		complete bool
	}{
		{name: "complete profile", complete: true},
		{name: "incomplete profile", complete: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := &domain.Claims{UserID: 1, CompleteProfile: tt.complete}

			completePassed, completeErr := runGate(t, RequireCompleteProfile(), gateContext(t, claims))
			incompletePassed, incompleteErr := runGate(t, RequireIncompleteProfile(), gateContext(t, claims))

			if completePassed == incompletePassed {
				t.Fatalf("gates must disagree: complete=%v incomplete=%v", completePassed, incompletePassed)
			}
			if tt.complete && (completeErr != nil || incompleteErr == nil) {
				t.Fatalf("complete claims: want complete gate pass, incomplete gate fail")
			}
			if !tt.complete && (completeErr == nil || incompleteErr != nil) {
				t.Fatalf("incomplete claims: want incomplete gate pass, complete gate fail")
			}
		})
	}
}

func TestProfileGates_FailWith403(t *testing.T) {
	claims := &domain.Claims{UserID: 1, CompleteProfile: false}
	_, err := runGate(t, RequireCompleteProfile(), gateContext(t, claims))

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 HTTPError, got %v", err)
	}
}

func TestProfileGates_MissingClaims(t *testing.T) {
	for _, mw := range []echo.MiddlewareFunc{RequireCompleteProfile(), RequireIncompleteProfile()} {
		_, err := runGate(t, mw, gateContext(t, nil))
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 without claims, got %v", err)
		}
	}
}
