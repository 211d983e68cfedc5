package http

import (
	"errors"
	"net/http"

	"github.com/pathfinder-tours/pathfinder/internal/api/service"
	"github.com/pathfinder-tours/pathfinder/pkg/httpx"
	"github.com/pathfinder-tours/pathfinder/pkg/slogx"
)

var (
	errInvalidCredentials = httpx.NewAPIError(http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
	errConflict           = httpx.NewAPIError(http.StatusUnauthorized, "conflict", "email or username already taken")
	errMFARequired        = httpx.NewAPIError(http.StatusUnauthorized, "mfa_required", "a one-time code is required")
	errInvalidOTP         = httpx.NewAPIError(http.StatusUnauthorized, "invalid_otp", "invalid one-time code")
	errInvalidToken       = httpx.NewAPIError(http.StatusBadRequest, "invalid_token", "invalid or expired token")
	errTokenNotFound      = httpx.NewAPIError(http.StatusNotFound, "token_not_found", "token not found or expired")
	errUserNotFound       = httpx.NewAPIError(http.StatusNotFound, "not_found", "User not found")
	errCustomerNotFound   = httpx.NewAPIError(http.StatusNotFound, "not_found", "Customer not found")
	errAdminNotFound      = httpx.NewAPIError(http.StatusNotFound, "not_found", "Admin not found")
	errContactNotFound    = httpx.NewAPIError(http.StatusNotFound, "not_found", "Contact not found")
	errNoSubscribers      = httpx.NewAPIError(http.StatusBadRequest, "no_subscribers", "the newsletter has no subscribers")
	errInvalidCode        = httpx.NewAPIError(http.StatusBadRequest, "invalid_code", "invalid TOTP code")
	errMFANotEnrolled     = httpx.NewAPIError(http.StatusBadRequest, "mfa_not_enrolled", "MFA is not enrolled")
	errMFANotEnabled      = httpx.NewAPIError(http.StatusBadRequest, "mfa_not_enabled", "MFA is not enabled")
	errMFAAlreadyEnabled  = httpx.NewAPIError(http.StatusBadRequest, "mfa_already_enabled", "MFA is already enabled")
	errOAuthState         = httpx.NewAPIError(http.StatusBadRequest, "invalid_state", "oauth state mismatch")
	errOAuthProfile       = httpx.NewAPIError(http.StatusBadGateway, "invalid_profile", "provider returned an incomplete profile")
)

var serviceErrors = []struct {
	target error
	api    *httpx.APIError
}{
	{service.ErrInvalidCredentials, errInvalidCredentials},
	{service.ErrConflict, errConflict},
	{service.ErrMFARequired, errMFARequired},
	{service.ErrInvalidOrExpiredToken, errInvalidToken},
	{service.ErrTokenNotFound, errTokenNotFound},
	{service.ErrUserNotFound, errUserNotFound},
	{service.ErrCustomerNotFound, errCustomerNotFound},
	{service.ErrSubscriberNotFound, errUserNotFound},
	{service.ErrAdminNotFound, errAdminNotFound},
	{service.ErrContactNotFound, errContactNotFound},
	{service.ErrNoSubscribers, errNoSubscribers},
	{service.ErrInvalidTOTPCode, errInvalidCode},
	{service.ErrMFANotEnrolled, errMFANotEnrolled},
	{service.ErrMFANotEnabled, errMFANotEnabled},
	{service.ErrMFAAlreadyEnabled, errMFAAlreadyEnabled},
	{service.ErrOAuthState, errOAuthState},
	{service.ErrOAuthProfile, errOAuthProfile},
}

// writeServiceError answers with the API error matching a service sentinel.
// Anything else is logged and reported as 500 without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrWeakPassword) {
		httpx.WriteValidationError(w, err)
		return
	}
	for _, m := range serviceErrors {
		if errors.Is(err, m.target) {
			m.api.Write(w)
			return
		}
	}

	slogx.FromContext(r.Context()).Error("request failed", "err", err)
	httpx.ErrUnexpected.Write(w)
}
