package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/heartlink/gateway/internal/core/domain"
)

// TokenService verifies and issues HS256 tokens with a single shared secret
// loaded at process start. Verification is a pure function of the token and
// the secret.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Verify decodes the token and validates its signature and expiry.
// Expired tokens map to domain.ErrTokenExpired; every other failure,
// including a wrong signing algorithm, maps to domain.ErrInvalidToken.
func (s *TokenService) Verify(token string) (*domain.Claims, error) {
	claims := &domain.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrInvalidToken
	}
	if !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

// Generate signs a token for the given identity. The backends are the
// normal token issuers; this exists for development tooling and tests.
func (s *TokenService) Generate(userID int64, completeProfile bool, ttl time.Duration) (string, error) {
	claims := &domain.Claims{
		UserID:          userID,
		CompleteProfile: completeProfile,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}
