package service

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/heartlink/gateway/internal/core/domain"
	"github.com/heartlink/gateway/internal/core/ports"
)

// recommendationPool is how many of the top-ranked compatible candidates the
// recommendation is drawn from.
const recommendationPool = 5

// MatchService orchestrates the matching workflows across the user,
// matching, and chat backends. It holds no state between requests.
type MatchService struct {
	client ports.BackendClient
	logger zerolog.Logger
}

func NewMatchService(client ports.BackendClient, logger zerolog.Logger) *MatchService {
	return &MatchService{client: client, logger: logger}
}

// compatibilityRequest is the payload submitted to the matching backend's
// compatibility filter.
type compatibilityRequest struct {
	UserProfile json.RawMessage   `json:"user_profile"`
	Candidates  []json.RawMessage `json:"candidates"`
	ExcludedIDs []int64           `json:"excluded_ids"`
}

// compatibilityResponse is the filtered, compatibility-ordered result the
// matching backend returns.
type compatibilityResponse struct {
	Profiles []json.RawMessage `json:"profiles"`
	Count    int               `json:"count"`
}

// Potential runs match discovery for the caller:
//
//  1. fetch the caller's own profile from the user backend
//  2. fetch the caller's excluded user ids from the matching backend
//  3. fetch all candidate profiles from the user backend
//  4. submit profile, candidates, and exclusions to the compatibility filter
//  5. pick one candidate uniformly at random from the top five
//
// A non-success status at steps 1-4 aborts the routine and is surfaced with
// the backend's own status and body. An empty filtered list is not an error.
func (s *MatchService) Potential(ctx context.Context, claims *domain.Claims) (*domain.MatchResult, error) {
	userID := claims.Identity()

	res, err := s.client.Do(ctx, domain.BackendUser, http.MethodGet, "/user/profile/"+strconv.FormatInt(userID, 10), nil, nil)
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return nil, res.StatusError(domain.BackendUser)
	}
	ownProfile := json.RawMessage(res.Body)

	res, err = s.client.Do(ctx, domain.BackendMatching, http.MethodGet, "/matching/excluded-users/"+strconv.FormatInt(userID, 10), nil, nil)
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return nil, res.StatusError(domain.BackendMatching)
	}
	var excluded struct {
		ExcludedIDs []int64 `json:"excluded_ids"`
	}
	if err := res.JSON(&excluded); err != nil {
		return nil, err
	}

	res, err = s.client.Do(ctx, domain.BackendUser, http.MethodGet, "/user/profiles", nil, nil)
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return nil, res.StatusError(domain.BackendUser)
	}
	var candidates []json.RawMessage
	if err := res.JSON(&candidates); err != nil {
		return nil, err
	}

	res, err = s.client.Do(ctx, domain.BackendMatching, http.MethodPost, "/matching/filter", nil, compatibilityRequest{
		UserProfile: ownProfile,
		Candidates:  candidates,
		ExcludedIDs: excluded.ExcludedIDs,
	})
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return nil, res.StatusError(domain.BackendMatching)
	}
	var filtered compatibilityResponse
	if err := res.JSON(&filtered); err != nil {
		return nil, err
	}

	if len(filtered.Profiles) == 0 {
		return &domain.MatchResult{Profiles: []json.RawMessage{}, Count: 0}, nil
	}

	pool := min(len(filtered.Profiles), recommendationPool)
	picked := filtered.Profiles[rand.IntN(pool)]

	count := filtered.Count
	if count == 0 {
		count = len(filtered.Profiles)
	}

	s.logger.Debug().Int64("user_id", userID).Int("count", count).Msg("potential match selected")

	return &domain.MatchResult{Profiles: []json.RawMessage{picked}, Count: count}, nil
}

// Dismatch dissolves a relationship. The matching backend is the source of
// truth for match state: a failure there aborts and is surfaced. Chat
// deactivation is a secondary consistency concern, so any failure at that
// step is swallowed.
func (s *MatchService) Dismatch(ctx context.Context, claims *domain.Claims, relationshipID int64) (json.RawMessage, error) {
	query := url.Values{"current_user_id": {strconv.FormatInt(claims.Identity(), 10)}}
	body := map[string]int64{"relationship_id": relationshipID}

	res, err := s.client.Do(ctx, domain.BackendMatching, http.MethodPost, "/matching/dismatch", query, body)
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return nil, res.StatusError(domain.BackendMatching)
	}
	result := json.RawMessage(res.Body)

	rid := strconv.FormatInt(relationshipID, 10)
	chatRes, err := s.client.Do(ctx, domain.BackendChat, http.MethodPost, "/chats/by-relationship/"+rid+"/deactivate", nil, nil)
	if err != nil {
		s.logger.Warn().Err(err).Int64("relationship_id", relationshipID).Msg("chat deactivation failed")
	} else if !chatRes.OK() {
		s.logger.Warn().Int("status", chatRes.Status).Int64("relationship_id", relationshipID).Msg("chat deactivation rejected")
	}

	return result, nil
}

// Connections lists the caller's active matches. Partner ids come from the
// matching backend, display data from the user backend; a partner id with
// no profile is a consistency gap between backends and is silently dropped.
func (s *MatchService) Connections(ctx context.Context, claims *domain.Claims) ([]domain.ConnectionSummary, error) {
	userID := claims.Identity()

	res, err := s.client.Do(ctx, domain.BackendMatching, http.MethodGet, "/matching/connections/"+strconv.FormatInt(userID, 10), nil, nil)
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return nil, res.StatusError(domain.BackendMatching)
	}
	var partners struct {
		PartnerIDs []int64 `json:"partner_ids"`
	}
	if err := res.JSON(&partners); err != nil {
		return nil, err
	}

	res, err = s.client.Do(ctx, domain.BackendUser, http.MethodGet, "/user/profiles", nil, nil)
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return nil, res.StatusError(domain.BackendUser)
	}
	var profiles []domain.ProfileSummary
	if err := res.JSON(&profiles); err != nil {
		return nil, err
	}

	byID := make(map[int64]domain.ProfileSummary, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	summaries := make([]domain.ConnectionSummary, 0, len(partners.PartnerIDs))
	for _, id := range partners.PartnerIDs {
		profile, ok := byID[id]
		if !ok {
			continue
		}
		summary := domain.ConnectionSummary{UserID: profile.ID, Username: profile.Username}
		if len(profile.ImageURLs) > 0 {
			summary.ImageURL = profile.ImageURLs[0]
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
