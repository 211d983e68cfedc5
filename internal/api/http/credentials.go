package http

import (
	"errors"
	"net/http"

	"github.com/pathfinder-tours/pathfinder/internal/api/domain"
	"github.com/pathfinder-tours/pathfinder/internal/api/service"
	"github.com/pathfinder-tours/pathfinder/pkg/apisdk"
	"github.com/pathfinder-tours/pathfinder/pkg/httpx"
	"github.com/pathfinder-tours/pathfinder/pkg/slogx"
)

// SigninHandler registers platform users.
type SigninHandler struct {
	Credentials *service.CredentialService
}

// ServeHTTP handles POST /api/signin.
//
//	@Summary		Register a user
//	@Description	Creates a platform user. A taken email or username answers 401, matching the rest of the credential endpoints.
//	@Tags			Credentials
//	@Accept			json
//	@Produce		json
//	@Param			request	body		apisdk.SigninRequest			true	"username, email, password"
//	@Success		200		{object}	apisdk.UserResponse				"Created user"
//	@Failure		400		{object}	apisdk.ValidationErrorResponse	"Missing value"
//	@Failure		401		{object}	apisdk.ErrorResponse			"email or username already taken"
//	@Failure		500		{object}	apisdk.ErrorResponse			"Unexpected error"
//	@Router			/api/signin [post].
func (h *SigninHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req apisdk.SigninRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.ErrInvalidJSON.Write(w)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteValidationError(w, err)
		return
	}

	u, err := h.Credentials.RegisterUser(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

// LoginHandler exchanges credentials for a bearer token within one tier.
type LoginHandler struct {
	Credentials *service.CredentialService
	Tier        domain.Tier
}

// ServeHTTP handles POST /api/login and POST /api/customers/login.
//
//	@Summary		Log in
//	@Description	Checks the credentials against the tier's collections in order and returns a bearer token as a bare JSON string.
//	@Description	Missing fields are answered like wrong ones. Admins with MFA enabled must send otp.
//	@Tags			Credentials
//	@Accept			json
//	@Produce		json
//	@Param			request	body		apisdk.LoginRequest		true	"email, password, optional otp"
//	@Success		200		{string}	string					"Bearer token"
//	@Failure		401		{object}	apisdk.ErrorResponse	"invalid credentials"
//	@Failure		429		{object}	apisdk.ErrorResponse	"Too many attempts"
//	@Failure		500		{object}	apisdk.ErrorResponse	"Unexpected error"
//	@Router			/api/login [post]
//	@Router			/api/customers/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req apisdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		errInvalidCredentials.Write(w)
		return
	}
	if err := req.Validate(); err != nil {
		slogx.FromContext(ctx).Info("login with missing fields", "tier", h.Tier.Name)
		errInvalidCredentials.Write(w)
		return
	}

	res, err := h.Credentials.Login(ctx, h.Tier, req.Email, req.Password, req.OTP)
	if errors.Is(err, service.ErrInvalidTOTPCode) {
		errInvalidOTP.Write(w)
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, res.Token)
}

// LogoutHandler acknowledges a logout and drops any cookie session.
type LogoutHandler struct {
	Credentials  *service.CredentialService
	CookieSecure bool
}

// ServeHTTP handles POST /api/logout.
//
//	@Summary		Log out
//	@Description	Deletes the server-side session behind the sid cookie. Bearer tokens are stateless and stay valid until they expire.
//	@Tags			Credentials
//	@Security		BearerAuth
//	@Produce		plain
//	@Success		200	{string}	string					"work in progress"
//	@Failure		401	{object}	apisdk.ErrorResponse	"No credentials"
//	@Failure		403	{object}	apisdk.ErrorResponse	"Rejected credentials"
//	@Router			/api/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(httpx.SessionCookie); err == nil && c.Value != "" {
		if err := h.Credentials.Logout(r.Context(), c.Value); err != nil {
			writeServiceError(w, r, err)
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     httpx.SessionCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		})
	}
	httpx.WriteText(w, http.StatusOK, "work in progress")
}

// WhoAmIHandler godoc
//
//	@Summary		Current identity
//	@Tags			Credentials
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	apisdk.IdentityResponse	"identity is the caller's email"
//	@Failure		401	{object}	apisdk.ErrorResponse	"No credentials"
//	@Failure		403	{object}	apisdk.ErrorResponse	"Rejected credentials"
//	@Router			/api/whoami [get].
func WhoAmIHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.ErrUnauthorized.Write(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, apisdk.IdentityResponse{Identity: id.Email, Kind: id.Kind})
}
