package http

import (
	"net/http"

	"github.com/pathfinder-tours/pathfinder/internal/api/domain"
	"github.com/pathfinder-tours/pathfinder/internal/api/service"
	"github.com/pathfinder-tours/pathfinder/pkg/apisdk"
	"github.com/pathfinder-tours/pathfinder/pkg/httpx"
)

type ContactHandler struct {
	Contacts *service.ContactService
}

// HandleSubmit handles POST /api/contact.
//
//	@Summary		Send a contact request
//	@Tags			Contact
//	@Accept			json
//	@Produce		json
//	@Param			request	body		apisdk.ContactRequest			true	"name, category, description, email"
//	@Success		200		{object}	apisdk.ContactResponse			"Contact request successfully created"
//	@Failure		400		{object}	apisdk.ValidationErrorResponse	"Missing value"
//	@Router			/api/contact [post].
func (h *ContactHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req apisdk.ContactRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.ErrInvalidJSON.Write(w)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteValidationError(w, err)
		return
	}

	c, err := h.Contacts.Submit(r.Context(), domain.Contact{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Email:       req.Email,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toContactResponse(c))
}

// HandleList handles GET /api/contact.
//
//	@Summary		List contact requests
//	@Tags			Contact
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		apisdk.ContactResponse
//	@Failure		403	{object}	apisdk.ErrorResponse	"Not an admin"
//	@Router			/api/contact [get].
func (h *ContactHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	cs, err := h.Contacts.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toContactResponses(cs))
}

// HandleUpdate handles PATCH /api/contact/{uuid}.
//
//	@Summary		Update a contact request
//	@Tags			Contact
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		plain
//	@Param			uuid	path		string							true	"Contact UUID"
//	@Param			request	body		apisdk.ContactPatchRequest		true	"name, email, processed"
//	@Success		200		{string}	string							"Contact successfully updated"
//	@Failure		400		{object}	apisdk.ValidationErrorResponse	"Missing value"
//	@Failure		403		{object}	apisdk.ErrorResponse			"Not an admin"
//	@Failure		404		{object}	apisdk.ErrorResponse			"Contact not found"
//	@Router			/api/contact/{uuid} [patch].
func (h *ContactHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req apisdk.ContactPatchRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.ErrInvalidJSON.Write(w)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteValidationError(w, err)
		return
	}

	_, err := h.Contacts.Update(r.Context(), r.PathValue("uuid"), domain.ContactUpdate{
		Name:      req.Name,
		Email:     req.Email,
		Processed: *req.Processed,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteText(w, http.StatusOK, "Contact successfully updated")
}

// HandleDelete handles DELETE /api/contact/{uuid}.
//
//	@Summary		Delete a contact request
//	@Tags			Contact
//	@Security		BearerAuth
//	@Produce		plain
//	@Param			uuid	path		string					true	"Contact UUID"
//	@Success		200		{string}	string					"Contact successfully deleted"
//	@Failure		403		{object}	apisdk.ErrorResponse	"Not an admin"
//	@Failure		404		{object}	apisdk.ErrorResponse	"Contact not found"
//	@Router			/api/contact/{uuid} [delete].
func (h *ContactHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Contacts.Delete(r.Context(), r.PathValue("uuid")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteText(w, http.StatusOK, "Contact successfully deleted")
}
