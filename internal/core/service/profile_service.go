package service

import (
	"context"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/heartlink/gateway/internal/core/domain"
	"github.com/heartlink/gateway/internal/core/ports"
)

// ProfileService runs the two-phase profile completion: write the profile to
// the user backend, then flip the completeness flag on the auth backend and
// obtain a freshly signed token reflecting it.
type ProfileService struct {
	client ports.BackendClient
	logger zerolog.Logger
}

func NewProfileService(client ports.BackendClient, logger zerolog.Logger) *ProfileService {
	return &ProfileService{client: client, logger: logger}
}

type profilePayload struct {
	ports.CompleteProfileInput
	UserID int64 `json:"user_id"`
}

// Complete submits the profile and refreshes the token. A user-backend
// failure aborts and is surfaced verbatim. A failure of the auth-backend
// flag flip does not abort: the profile was durably created, so the result
// is returned with TokenUpdated=false and the client can re-authenticate
// for a corrected token.
func (s *ProfileService) Complete(ctx context.Context, claims *domain.Claims, input ports.CompleteProfileInput) (*domain.ProfileCompletionResult, error) {
	userID := claims.Identity()

	res, err := s.client.Do(ctx, domain.BackendUser, http.MethodPost, "/user/complete_profile", nil, profilePayload{
		CompleteProfileInput: input,
		UserID:               userID,
	})
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return nil, res.StatusError(domain.BackendUser)
	}

	var profile struct {
		ProfileID int64 `json:"profile_id"`
	}
	if err := res.JSON(&profile); err != nil {
		return nil, err
	}
	profileID := profile.ProfileID
	if profileID == 0 {
		profileID = userID
	}

	result := &domain.ProfileCompletionResult{
		Message:         "Profile completed successfully",
		ProfileID:       profileID,
		UserID:          userID,
		CompleteProfile: true,
	}

	authRes, err := s.client.Do(ctx, domain.BackendAuth, http.MethodPatch, "/auth/users/"+strconv.FormatInt(userID, 10)+"/complete_profile", nil, nil)
	if err != nil || !authRes.OK() {
		if err != nil {
			s.logger.Warn().Err(err).Int64("user_id", userID).Msg("token refresh skipped: auth backend unreachable")
		} else {
			s.logger.Warn().Int("status", authRes.Status).Int64("user_id", userID).Msg("token refresh skipped: auth backend rejected flag flip")
		}
		result.TokenUpdated = false
		return result, nil
	}

	var auth struct {
		AccessToken     string `json:"access_token"`
		TokenType       string `json:"token_type"`
		CompleteProfile *bool  `json:"complete_profile"`
	}
	if err := authRes.JSON(&auth); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", userID).Msg("token refresh skipped: malformed auth response")
		result.TokenUpdated = false
		return result, nil
	}

	result.AccessToken = auth.AccessToken
	result.TokenType = auth.TokenType
	if result.TokenType == "" {
		result.TokenType = "bearer"
	}
	if auth.CompleteProfile != nil {
		result.CompleteProfile = *auth.CompleteProfile
	}
	result.TokenUpdated = true
	result.NextEndpoint = "/home"
	return result, nil
}
