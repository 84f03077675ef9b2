package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/heartlink/gateway/internal/core/service"
)

func bearerRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	tokens := service.NewTokenService("secret")
	signed, err := tokens.Generate(42, true, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(bearerRequest(signed), rec)

	called := false
	handler := Auth(tokens)(func(c echo.Context) error {
		called = true
		claims := ClaimsFrom(c)
		if claims == nil {
			t.Fatalf("claims not set")
		}
		if claims.UserID != 42 {
			t.Fatalf("expected user id 42, got %d", claims.UserID)
		}
		if !claims.CompleteProfile {
			t.Fatalf("complete_profile flag lost")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	handler := Auth(service.NewTokenService("secret"))(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(service.NewTokenService("secret"))(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(bearerRequest("not-a-token"), rec)

	handler := Auth(service.NewTokenService("secret"))(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	if err == nil {
		t.Fatalf("expected error")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
	if he.Message != "Invalid token" {
		t.Fatalf("expected 'Invalid token', got %v", he.Message)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	e := echo.New()
	tokens := service.NewTokenService("secret")
	signed, err := tokens.Generate(42, true, -time.Minute)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(bearerRequest(signed), rec)

	handler := Auth(tokens)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err = handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
	if he.Message != "Token expired" {
		t.Fatalf("expected 'Token expired', got %v", he.Message)
	}
}
