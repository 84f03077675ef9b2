package ports

import (
	"context"
	"encoding/json"

	"github.com/heartlink/gateway/internal/core/domain"
)

// CompleteProfileInput carries the validated profile data submitted during
// onboarding. The user identifier is always taken from verified claims, not
// from the payload.
type CompleteProfileInput struct {
	Username            string   `json:"username"`
	Introduction        string   `json:"introduction"`
	Birthday            string   `json:"birthday"`
	SexualOrientationID int64    `json:"sexual_orientation_id"`
	InterestIDs         []int64  `json:"interest_ids"`
	ImageURLs           []string `json:"image_urls"`
}

// MatchService sequences the multi-backend matching workflows.
type MatchService interface {
	// Potential runs the match-discovery orchestration and returns one
	// recommended profile with the compatible-candidate count.
	Potential(ctx context.Context, claims *domain.Claims) (*domain.MatchResult, error)
	// Dismatch dissolves a relationship on the matching backend and
	// best-effort deactivates the associated chat.
	Dismatch(ctx context.Context, claims *domain.Claims, relationshipID int64) (json.RawMessage, error)
	// Connections joins the caller's partner ids with user profiles and
	// projects each to a minimal summary.
	Connections(ctx context.Context, claims *domain.Claims) ([]domain.ConnectionSummary, error)
}

// ProfileService runs the two-phase profile completion across the user and
// auth backends.
type ProfileService interface {
	Complete(ctx context.Context, claims *domain.Claims, input CompleteProfileInput) (*domain.ProfileCompletionResult, error)
}

// AccountService deletes an account across all backends.
type AccountService interface {
	// Delete fans out one delete call per backend. The report always carries
	// all four outcomes; the returned error is non-nil iff the auth-backend
	// deletion did not succeed, in which case it is *domain.AccountDeletionError.
	Delete(ctx context.Context, claims *domain.Claims) (*domain.DeletionReport, error)
}
