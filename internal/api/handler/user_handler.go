package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/heartlink/gateway/internal/core/domain"
	"github.com/heartlink/gateway/internal/core/ports"
)

// UserHandler covers profile endpoints: the onboarding two-phase completion,
// account deletion fan-out, and the simple pass-throughs to the user backend.
type UserHandler struct {
	client   ports.BackendClient
	profiles ports.ProfileService
	accounts ports.AccountService
}

func NewUserHandler(client ports.BackendClient, profiles ports.ProfileService, accounts ports.AccountService) *UserHandler {
	return &UserHandler{client: client, profiles: profiles, accounts: accounts}
}

// --- Request / Response types ---

type completeProfileRequest struct {
	Username            string   `json:"username"              validate:"required"`
	Introduction        string   `json:"introduction"          validate:"required"`
	Birthday            string   `json:"birthday"              validate:"required,datetime=2006-01-02"`
	SexualOrientationID int64    `json:"sexual_orientation_id" validate:"required"`
	InterestIDs         []int64  `json:"interest_ids"`
	ImageURLs           []string `json:"image_urls"            validate:"max=6"`
}

type deleteAccountResponse struct {
	Message string                `json:"message"`
	Results domain.DeletionReport `json:"results"`
}

// ProfileOptions returns the selectable profile options (orientations,
// interests) from the user backend. Public: it is needed before onboarding.
func (h *UserHandler) ProfileOptions(c echo.Context) error {
	return forward(c, h.client, domain.BackendUser, http.MethodGet, "/user/complete_profile", nil, nil)
}

// CompleteProfile validates the onboarding payload and runs the two-phase
// completion across the user and auth backends.
func (h *UserHandler) CompleteProfile(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req completeProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := validateBirthday(req.Birthday); err != nil {
		return err
	}

	result, err := h.profiles.Complete(c.Request().Context(), claims, ports.CompleteProfileInput{
		Username:            req.Username,
		Introduction:        req.Introduction,
		Birthday:            req.Birthday,
		SexualOrientationID: req.SexualOrientationID,
		InterestIDs:         req.InterestIDs,
		ImageURLs:           req.ImageURLs,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// DeleteAccount fans out deletion to every backend, scoped by the caller's
// own verified identity. The per-backend outcome map is always returned.
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	report, err := h.accounts.Delete(c.Request().Context(), claims)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteAccountResponse{
		Message: "Account deleted successfully",
		Results: *report,
	})
}

// Profile returns the caller's own profile from the user backend.
func (h *UserHandler) Profile(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	id := strconv.FormatInt(claims.Identity(), 10)
	return forward(c, h.client, domain.BackendUser, http.MethodGet, "/user/profile/"+id, nil, nil)
}

// UploadImage forwards a profile image upload to the user backend.
func (h *UserHandler) UploadImage(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	body, err := requestBody(c)
	if err != nil {
		return err
	}
	query := userQuery(claims)
	return forward(c, h.client, domain.BackendUser, http.MethodPost, "/user/images", query, body)
}

// DeleteImage removes a profile image on the user backend.
func (h *UserHandler) DeleteImage(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	query := userQuery(claims)
	return forward(c, h.client, domain.BackendUser, http.MethodDelete, "/user/images/"+c.Param("image_id"), query, nil)
}

// validateBirthday enforces the 18-120 age window the user backend also
// checks; rejecting here keeps an obviously bad payload off the network.
func validateBirthday(birthday string) error {
	born, err := time.Parse("2006-01-02", birthday)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "birthday must be a valid date (YYYY-MM-DD)")
	}
	now := time.Now()
	age := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	if age < 18 {
		return echo.NewHTTPError(http.StatusBadRequest, "must be at least 18 years old")
	}
	if age > 120 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid birth date")
	}
	return nil
}
