package ports

import "github.com/heartlink/gateway/internal/core/domain"

// TokenVerifier decodes and validates a signed client token.
type TokenVerifier interface {
	// Verify returns the decoded claims, domain.ErrTokenExpired for tokens
	// past their expiry, or domain.ErrInvalidToken for everything else.
	Verify(token string) (*domain.Claims, error)
}
