package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/heartlink/gateway/internal/core/domain"
)

func TestTokenService_VerifyRoundTrip(t *testing.T) {
	svc := NewTokenService("secret")

	token, err := svc.Generate(42, true, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
	if !claims.CompleteProfile {
		t.Fatalf("expected complete_profile true")
	}
	if claims.Identity() != 42 {
		t.Fatalf("expected identity 42, got %d", claims.Identity())
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	token, err := NewTokenService("other-secret").Generate(42, false, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := NewTokenService("secret").Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_Malformed(t *testing.T) {
	svc := NewTokenService("secret")
	if _, err := svc.Verify("not-a-token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService("secret")
	token, err := svc.Generate(42, true, -time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := svc.Verify(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_WrongAlgorithm(t *testing.T) {
	// "none" tokens must never pass, even with a matching payload.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": 42})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := NewTokenService("secret").Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_SubjectFallback(t *testing.T) {
	// Tokens issued with the id in "sub" instead of "user_id" still resolve
	// an identity.
	signed := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	token, err := signed.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	claims, err := NewTokenService("secret").Verify(token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if claims.Identity() != 7 {
		t.Fatalf("expected identity 7, got %d", claims.Identity())
	}
}
