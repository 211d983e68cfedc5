package http

import (
	"net/http"

	"github.com/pathfinder-tours/pathfinder/internal/api/service"
	"github.com/pathfinder-tours/pathfinder/pkg/apisdk"
	"github.com/pathfinder-tours/pathfinder/pkg/httpx"
	"github.com/pathfinder-tours/pathfinder/pkg/slogx"
)

// AccountHandler serves user account self-service and the admin user list.
type AccountHandler struct {
	Accounts *service.AccountService
}

// HandleList handles GET /api/account and GET /api/admin/users.
//
//	@Summary		List users
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		apisdk.UserResponse
//	@Failure		401	{object}	apisdk.ErrorResponse	"No credentials"
//	@Failure		403	{object}	apisdk.ErrorResponse	"Rejected credentials"
//	@Router			/api/account [get]
//	@Router			/api/admin/users [get].
func (h *AccountHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.Accounts.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponses(users))
}

// HandleGet handles GET /api/account/{username}.
//
//	@Summary		Get a user by username
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Produce		json
//	@Param			username	path		string	true	"Username"
//	@Success		200			{object}	apisdk.UserResponse
//	@Failure		404			{object}	apisdk.ErrorResponse	"User not found"
//	@Router			/api/account/{username} [get].
func (h *AccountHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	u, err := h.Accounts.UserByUsername(r.Context(), r.PathValue("username"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

// HandleUpdate handles PATCH /api/account.
//
//	@Summary		Update the caller's account
//	@Description	Changes username and/or password. Empty fields are left unchanged.
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		apisdk.AccountPatchRequest		true	"Fields to change"
//	@Success		200		{object}	apisdk.UserResponse
//	@Failure		400		{object}	apisdk.ValidationErrorResponse	"Missing value"
//	@Failure		401		{object}	apisdk.ErrorResponse			"username already taken"
//	@Failure		404		{object}	apisdk.ErrorResponse			"User not found"
//	@Router			/api/account [patch].
func (h *AccountHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		httpx.ErrUnauthorized.Write(w)
		return
	}

	var req apisdk.AccountPatchRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.ErrInvalidJSON.Write(w)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteValidationError(w, err)
		return
	}

	u, err := currentUser(ctx, h.Accounts, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	u, err = h.Accounts.UpdateUser(ctx, u.ID, service.AccountPatch{Username: req.Username, Password: req.Password})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

// HandleDelete handles DELETE /api/account.
//
//	@Summary		Delete the caller's account
//	@Description	Removes the user and every cookie session they hold. Issued bearer tokens fail the existence check afterwards.
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Produce		plain
//	@Success		200	{string}	string					"User successfully deleted"
//	@Failure		404	{object}	apisdk.ErrorResponse	"User not found"
//	@Router			/api/account [delete].
func (h *AccountHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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
	h.delete(w, r, u.ID)
}

// HandleAdminDelete handles DELETE /api/admin/users/{id}.
//
//	@Summary		Delete a user
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		plain
//	@Param			id	path		string					true	"User ID"
//	@Success		200	{string}	string					"User successfully deleted"
//	@Failure		403	{object}	apisdk.ErrorResponse	"Not an admin"
//	@Failure		404	{object}	apisdk.ErrorResponse	"User not found"
//	@Router			/api/admin/users/{id} [delete].
func (h *AccountHandler) HandleAdminDelete(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, r.PathValue("id"))
}

func (h *AccountHandler) delete(w http.ResponseWriter, r *http.Request, userID string) {
	if err := h.Accounts.DeleteUser(r.Context(), userID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	slogx.FromContext(r.Context()).Info("user deleted", "user_id", userID)
	httpx.WriteText(w, http.StatusOK, "User successfully deleted")
}
