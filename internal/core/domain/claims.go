package domain

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the decoded identity asserted by a client token. It is produced
// once per request or stream connection by the token verifier and never
// persisted.
type Claims struct {
	UserID          int64 `json:"user_id"`
	CompleteProfile bool  `json:"complete_profile"`
	jwt.RegisteredClaims
}

// Identity returns the user identifier, falling back to the registered
// subject claim for tokens that carry the id in "sub" instead of "user_id".
func (c *Claims) Identity() int64 {
	if c.UserID != 0 {
		return c.UserID
	}
	if c.Subject != "" {
		if id, err := strconv.ParseInt(c.Subject, 10, 64); err == nil {
			return id
		}
	}
	return 0
}
