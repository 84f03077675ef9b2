package domain

import "encoding/json"

// MatchResult is the aggregate returned by potential-match discovery:
// at most one recommended profile plus the total number of compatible
// candidates reported by the matching backend.
type MatchResult struct {
	Profiles []json.RawMessage `json:"profiles"`
	Count    int               `json:"count"`
}

// ProfileSummary is the subset of a user profile the gateway itself needs to
// understand: joining connections and projecting listing responses. Full
// profile objects are otherwise passed through opaquely.
type ProfileSummary struct {
	ID        int64    `json:"id"`
	Username  string   `json:"username"`
	ImageURLs []string `json:"image_urls"`
}

// ConnectionSummary is the minimal projection of a matched partner returned
// by the connections listing.
type ConnectionSummary struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	ImageURL string `json:"image_url,omitempty"`
}

// ProfileCompletionResult aggregates the two-phase profile completion:
// the user-backend write plus the auth-backend flag flip and token reissue.
// TokenUpdated is false when the profile was created but the auth backend
// could not reissue a token; the client must re-authenticate in that case.
type ProfileCompletionResult struct {
	Message         string `json:"message"`
	ProfileID       int64  `json:"profile_id"`
	UserID          int64  `json:"user_id"`
	AccessToken     string `json:"access_token,omitempty"`
	TokenType       string `json:"token_type,omitempty"`
	CompleteProfile bool   `json:"complete_profile"`
	TokenUpdated    bool   `json:"token_updated"`
	NextEndpoint    string `json:"next_endpoint,omitempty"`
}

// DeletionOutcome records the independent result of one backend's delete
// call during account deletion.
type DeletionOutcome struct {
	Success bool   `json:"success"`
	Detail  any    `json:"detail,omitempty"`
	Error   string `json:"error,omitempty"`
}

// DeletionReport holds one outcome slot per backend touched by the account
// deletion fan-out. All four slots are always populated.
type DeletionReport struct {
	Matching DeletionOutcome `json:"matching"`
	Chat     DeletionOutcome `json:"chat"`
	Profile  DeletionOutcome `json:"profile"`
	Auth     DeletionOutcome `json:"auth"`
}
