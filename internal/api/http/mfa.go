package http

import (
	"context"
	"net/http"

	"github.com/pathfinder-tours/pathfinder/internal/api/service"
	"github.com/pathfinder-tours/pathfinder/pkg/apisdk"
	"github.com/pathfinder-tours/pathfinder/pkg/httpx"
)

// MFAHandler handles the admin TOTP endpoints. The admin guard always
// looks the caller up, so the identity carries the admin id.
type MFAHandler struct {
	MFAService *service.MFAService
}

func adminID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok || id.PrincipalID == "" {
		httpx.ErrUnauthorized.Write(w)
		return "", false
	}
	return id.PrincipalID, true
}

// HandleEnroll handles POST /api/admin/mfa/enroll
//
//	@Summary		Enroll in TOTP MFA
//	@Description	Generates a TOTP secret for the admin. Logins keep working without a code until the secret is verified.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	apisdk.MFAEnrollResponse	"TOTP secret and otpauth URL"
//	@Failure		400	{object}	apisdk.ErrorResponse		"MFA already enabled"
//	@Failure		403	{object}	apisdk.ErrorResponse		"Not an admin"
//	@Router			/api/admin/mfa/enroll [post].
func (h *MFAHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	id, ok := adminID(w, r)
	if !ok {
		return
	}

	e, err := h.MFAService.Enroll(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, apisdk.MFAEnrollResponse{
		Secret:     e.Secret,
		OTPAuthURL: e.URL,
		Issuer:     e.Issuer,
		Account:    e.Account,
	})
}

// HandleVerify handles POST /api/admin/mfa/verify
//
//	@Summary		Verify a TOTP code and enable MFA
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		apisdk.MFACodeRequest	true	"TOTP code"
//	@Success		200		{object}	apisdk.TextResponse		"MFA enabled"
//	@Failure		400		{object}	apisdk.ErrorResponse	"Invalid TOTP code or request"
//	@Failure		403		{object}	apisdk.ErrorResponse	"Not an admin"
//	@Router			/api/admin/mfa/verify [post].
func (h *MFAHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	h.withCode(w, r, h.MFAService.Verify, "MFA enabled")
}

// HandleDisable handles DELETE /api/admin/mfa
//
//	@Summary		Disable MFA
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		apisdk.MFACodeRequest	true	"Current TOTP code"
//	@Success		200		{object}	apisdk.TextResponse		"MFA disabled"
//	@Failure		400		{object}	apisdk.ErrorResponse	"Invalid TOTP code or MFA not enabled"
//	@Failure		403		{object}	apisdk.ErrorResponse	"Not an admin"
//	@Router			/api/admin/mfa [delete].
func (h *MFAHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	h.withCode(w, r, h.MFAService.Disable, "MFA disabled")
}

func (h *MFAHandler) withCode(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, adminID, code string) error, done string) {
	id, ok := adminID(w, r)
	if !ok {
		return
	}

	var req apisdk.MFACodeRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.ErrInvalidJSON.Write(w)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteValidationError(w, err)
		return
	}

	if err := fn(r.Context(), id, req.Code); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, apisdk.TextResponse{Text: done})
}
