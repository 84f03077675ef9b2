package service

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/heartlink/gateway/internal/core/domain"
	"github.com/heartlink/gateway/internal/core/ports"
)

// AccountService deletes an account across every backend. The auth record is
// the system of record for account existence; the other three deletions are
// cleanup that must not block, or be blocked by, account removal.
type AccountService struct {
	client ports.BackendClient
	logger zerolog.Logger
}

func NewAccountService(client ports.BackendClient, logger zerolog.Logger) *AccountService {
	return &AccountService{client: client, logger: logger}
}

// Delete fans out one delete call per backend, scoped by the caller's own
// verified identifier. Each outcome is recorded independently; no failure
// short-circuits the others. The operation succeeds iff the auth-backend
// deletion reports success, and the report always carries all four slots.
func (s *AccountService) Delete(ctx context.Context, claims *domain.Claims) (*domain.DeletionReport, error) {
	userID := claims.Identity()
	id := strconv.FormatInt(userID, 10)

	report := &domain.DeletionReport{
		Matching: s.deleteOne(ctx, domain.BackendMatching, "/matching/users/"+id),
		Chat:     s.deleteOne(ctx, domain.BackendChat, "/chats/users/"+id),
		Profile:  s.deleteOne(ctx, domain.BackendUser, "/user/profiles/"+id),
		Auth:     s.deleteOne(ctx, domain.BackendAuth, "/auth/users/"+id),
	}

	if !report.Auth.Success {
		s.logger.Error().Int64("user_id", userID).Msg("account deletion failed: auth record not removed")
		return report, &domain.AccountDeletionError{Report: *report}
	}

	s.logger.Info().Int64("user_id", userID).
		Bool("matching", report.Matching.Success).
		Bool("chat", report.Chat.Success).
		Bool("profile", report.Profile.Success).
		Msg("account deleted")
	return report, nil
}

// deleteOne captures a single backend's outcome without propagating failure.
func (s *AccountService) deleteOne(ctx context.Context, backend domain.Backend, path string) domain.DeletionOutcome {
	res, err := s.client.Do(ctx, backend, http.MethodDelete, path, nil, nil)
	if err != nil {
		return domain.DeletionOutcome{Success: false, Error: err.Error()}
	}
	if !res.OK() {
		return domain.DeletionOutcome{
			Success: false,
			Error:   "status " + strconv.Itoa(res.Status),
			Detail:  bodyDetail(res.Body),
		}
	}
	return domain.DeletionOutcome{Success: true, Detail: bodyDetail(res.Body)}
}

// bodyDetail keeps JSON bodies structured and falls back to text.
func bodyDetail(body []byte) any {
	if len(body) == 0 {
		return nil
	}
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	return string(body)
}
