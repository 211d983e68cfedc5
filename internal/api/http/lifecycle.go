package http

import (
	"context"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/pathfinder-tours/pathfinder/internal/api/domain"
	"github.com/pathfinder-tours/pathfinder/internal/api/service"
	"github.com/pathfinder-tours/pathfinder/pkg/apisdk"
	"github.com/pathfinder-tours/pathfinder/pkg/httpx"
)

const mailSentText = "An email has been sent."

// LifecycleHandler serves email confirmation and password reset.
type LifecycleHandler struct {
	Lifecycle *service.LifecycleService
	Accounts  *service.AccountService
}

// currentUser resolves the caller to a User record. Admins passing the
// user tier have none.
func currentUser(ctx context.Context, accounts *service.AccountService, id httpx.Identity) (domain.User, error) {
	if id.Kind != domain.KindUser.String() {
		return domain.User{}, service.ErrUserNotFound
	}
	if id.PrincipalID != "" {
		return accounts.UserByID(ctx, id.PrincipalID)
	}
	return accounts.UserByEmail(ctx, id.Email)
}

func writeDelivery(w http.ResponseWriter, d service.Delivery) {
	httpx.NoCache(w)
	if d.Token != "" {
		httpx.WriteJSON(w, http.StatusOK, apisdk.DeliveryResponse{Token: d.Token})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, apisdk.DeliveryResponse{Text: mailSentText})
}

// HandleRequestVerification handles GET /api/accounts/verification.
//
//	@Summary		Request email confirmation
//	@Description	Issues a confirmation token for the caller and mails a link. In CI mode the token is returned instead.
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	apisdk.DeliveryResponse	"token (CI) or text"
//	@Failure		401	{object}	apisdk.ErrorResponse	"No credentials"
//	@Failure		403	{object}	apisdk.ErrorResponse	"Rejected credentials"
//	@Failure		404	{object}	apisdk.ErrorResponse	"User not found"
//	@Router			/api/accounts/verification [get].
func (h *LifecycleHandler) HandleRequestVerification(w http.ResponseWriter, r *http.Request) {
	h.forCaller(w, r, h.Lifecycle.RequestEmailConfirmation)
}

// HandleRequestReset handles GET /api/accounts/forgot.
//
//	@Summary		Request a password reset
//	@Description	Issues a reset token for the caller and mails it. In CI mode the token is returned instead.
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	apisdk.DeliveryResponse	"token (CI) or text"
//	@Failure		401	{object}	apisdk.ErrorResponse	"No credentials"
//	@Failure		403	{object}	apisdk.ErrorResponse	"Rejected credentials"
//	@Failure		404	{object}	apisdk.ErrorResponse	"User not found"
//	@Router			/api/accounts/forgot [get].
func (h *LifecycleHandler) HandleRequestReset(w http.ResponseWriter, r *http.Request) {
	h.forCaller(w, r, h.Lifecycle.RequestPasswordReset)
}

func (h *LifecycleHandler) forCaller(w http.ResponseWriter, r *http.Request, issue func(context.Context, string) (service.Delivery, error)) {
	ctx := r.Context()
	id, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		httpx.ErrUnauthorized.Write(w)
		return
	}
	u, err := currentUser(ctx, h.Accounts, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	d, err := issue(ctx, u.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeDelivery(w, d)
}

// HandleAdminVerification handles GET /api/admin/users/{id}/verification.
//
//	@Summary		Request email confirmation for a user
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string					true	"User ID"
//	@Success		200	{object}	apisdk.DeliveryResponse	"token (CI) or text"
//	@Failure		403	{object}	apisdk.ErrorResponse	"Not an admin"
//	@Failure		404	{object}	apisdk.ErrorResponse	"User not found"
//	@Router			/api/admin/users/{id}/verification [get].
func (h *LifecycleHandler) HandleAdminVerification(w http.ResponseWriter, r *http.Request) {
	d, err := h.Lifecycle.RequestEmailConfirmation(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeDelivery(w, d)
}

// HandleAdminReset handles GET /api/admin/users/{id}/forgot.
//
//	@Summary		Request a password reset for a user
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string					true	"User ID"
//	@Success		200	{object}	apisdk.DeliveryResponse	"token (CI) or text"
//	@Failure		403	{object}	apisdk.ErrorResponse	"Not an admin"
//	@Failure		404	{object}	apisdk.ErrorResponse	"User not found"
//	@Router			/api/admin/users/{id}/forgot [get].
func (h *LifecycleHandler) HandleAdminReset(w http.ResponseWriter, r *http.Request) {
	d, err := h.Lifecycle.RequestPasswordReset(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeDelivery(w, d)
}

type confirmQuery struct {
	Email string
	Token string
}

func (q confirmQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Email, validation.Required),
		validation.Field(&q.Token, validation.Required),
	)
}

// HandleConfirm handles GET /api/accounts/confirm.
//
//	@Summary		Confirm an email address
//	@Description	Redeems the token mailed by the verification request. The token must match, be a confirmation token and not be expired.
//	@Tags			Accounts
//	@Produce		json
//	@Param			email	query		string							true	"Account email"
//	@Param			token	query		string							true	"Confirmation token"
//	@Success		200		{object}	apisdk.TextResponse				"Your email has been confirmed."
//	@Failure		400		{object}	apisdk.ErrorResponse			"Invalid or expired token"
//	@Failure		404		{object}	apisdk.ErrorResponse			"User not found"
//	@Router			/api/accounts/confirm [get].
func (h *LifecycleHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	q := confirmQuery{
		Email: r.URL.Query().Get("email"),
		Token: r.URL.Query().Get("token"),
	}
	if err := q.Validate(); err != nil {
		httpx.WriteValidationError(w, err)
		return
	}

	if err := h.Lifecycle.ConfirmEmail(r.Context(), q.Email, q.Token); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, apisdk.TextResponse{Text: "Your email has been confirmed."})
}

// HandleForgot handles POST /api/accounts/forgot.
//
//	@Summary		Start a password reset by email
//	@Description	Always answers the same way so callers cannot discover accounts. In CI mode a known account gets its token back.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		apisdk.ForgotRequest			true	"email"
//	@Success		200		{object}	apisdk.DeliveryResponse			"text, or token in CI mode"
//	@Failure		400		{object}	apisdk.ValidationErrorResponse	"Missing value"
//	@Router			/api/accounts/forgot [post].
func (h *LifecycleHandler) HandleForgot(w http.ResponseWriter, r *http.Request) {
	var req apisdk.ForgotRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.ErrInvalidJSON.Write(w)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteValidationError(w, err)
		return
	}

	d, err := h.Lifecycle.RequestPasswordResetByEmail(r.Context(), req.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeDelivery(w, d)
}

// HandleReset handles POST /api/accounts/reset.
//
//	@Summary		Reset a password
//	@Description	Sets a new password using a reset token. Tokens are single use.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		plain
//	@Param			request	body		apisdk.ResetRequest				true	"token, new_password"
//	@Success		200		{string}	string							"Password succesfully resetted"
//	@Failure		400		{object}	apisdk.ValidationErrorResponse	"Missing value"
//	@Failure		404		{object}	apisdk.ErrorResponse			"token not found or expired"
//	@Router			/api/accounts/reset [post].
func (h *LifecycleHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	var req apisdk.ResetRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.ErrInvalidJSON.Write(w)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteValidationError(w, err)
		return
	}

	if err := h.Lifecycle.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteText(w, http.StatusOK, "Password succesfully resetted")
}
