package http

import (
	"net/http"

	"github.com/pathfinder-tours/pathfinder/internal/api/service"
	"github.com/pathfinder-tours/pathfinder/pkg/apisdk"
	"github.com/pathfinder-tours/pathfinder/pkg/httpx"
)

// CustomerHandler serves the customer collection across all three tiers.
type CustomerHandler struct {
	Credentials *service.CredentialService
	Customers   *service.CustomerService
}

// HandleRegister handles POST /api/customers/register and, behind the
// admin guard, POST /api/customers.
//
//	@Summary		Register a customer
//	@Tags			Customers
//	@Accept			json
//	@Produce		json
//	@Param			request	body		apisdk.CustomerRegisterRequest	true	"Customer"
//	@Success		200		{object}	apisdk.CustomerResponse
//	@Failure		400		{object}	apisdk.ValidationErrorResponse	"Missing value"
//	@Failure		401		{object}	apisdk.ErrorResponse			"email or username already taken"
//	@Router			/api/customers/register [post]
//	@Router			/api/customers [post].
func (h *CustomerHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req apisdk.CustomerRegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.ErrInvalidJSON.Write(w)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteValidationError(w, err)
		return
	}

	c, err := h.Credentials.RegisterCustomer(r.Context(), service.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCustomerResponse(c))
}

// HandleMe handles GET /api/customers.
//
//	@Summary		Current customer
//	@Tags			Customers
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	apisdk.CustomerResponse
//	@Failure		401	{object}	apisdk.ErrorResponse	"No credentials"
//	@Failure		403	{object}	apisdk.ErrorResponse	"Rejected credentials"
//	@Failure		404	{object}	apisdk.ErrorResponse	"Customer not found"
//	@Router			/api/customers [get].
func (h *CustomerHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.ErrUnauthorized.Write(w)
		return
	}
	c, err := h.Customers.ByEmail(r.Context(), id.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCustomerResponse(c))
}

// HandleUpdateMe handles PATCH /api/customers.
//
//	@Summary		Update the current customer
//	@Description	Empty fields are left unchanged. Omitting likedSuggestions keeps the list; an empty array clears it.
//	@Tags			Customers
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		apisdk.CustomerPatchRequest		true	"Fields to change"
//	@Success		200		{object}	apisdk.CustomerResponse
//	@Failure		400		{object}	apisdk.ValidationErrorResponse	"Missing value"
//	@Failure		404		{object}	apisdk.ErrorResponse			"Customer not found"
//	@Router			/api/customers [patch].
func (h *CustomerHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		httpx.ErrUnauthorized.Write(w)
		return
	}
	patch, ok := decodeCustomerPatch(w, r)
	if !ok {
		return
	}

	c, err := h.Customers.ByEmail(ctx, id.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.update(w, r, c.ID, patch)
}

// HandleList handles GET /api/customers/all and GET /api/customers/admin.
//
//	@Summary		List customers
//	@Tags			Customers
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		apisdk.CustomerResponse
//	@Failure		401	{object}	apisdk.ErrorResponse	"No credentials"
//	@Failure		403	{object}	apisdk.ErrorResponse	"Rejected credentials"
//	@Router			/api/customers/all [get]
//	@Router			/api/customers/admin [get].
func (h *CustomerHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	cs, err := h.Customers.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCustomerResponses(cs))
}

// HandleAdminUpdate handles PATCH /api/customers/admin/{id}.
//
//	@Summary		Update a customer
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Customer ID"
//	@Param			request	body		apisdk.CustomerPatchRequest		true	"Fields to change"
//	@Success		200		{object}	apisdk.CustomerResponse
//	@Failure		403		{object}	apisdk.ErrorResponse			"Not an admin"
//	@Failure		404		{object}	apisdk.ErrorResponse			"Customer not found"
//	@Router			/api/customers/admin/{id} [patch].
func (h *CustomerHandler) HandleAdminUpdate(w http.ResponseWriter, r *http.Request) {
	patch, ok := decodeCustomerPatch(w, r)
	if !ok {
		return
	}
	h.update(w, r, r.PathValue("id"), patch)
}

func (h *CustomerHandler) update(w http.ResponseWriter, r *http.Request, id string, patch service.CustomerPatch) {
	c, err := h.Customers.Update(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCustomerResponse(c))
}

func decodeCustomerPatch(w http.ResponseWriter, r *http.Request) (service.CustomerPatch, bool) {
	var req apisdk.CustomerPatchRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.ErrInvalidJSON.Write(w)
		return service.CustomerPatch{}, false
	}
	if err := req.Validate(); err != nil {
		httpx.WriteValidationError(w, err)
		return service.CustomerPatch{}, false
	}
	return service.CustomerPatch{
		Username:         req.Username,
		Password:         req.Password,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		PhoneNumber:      req.PhoneNumber,
		LikedSuggestions: req.LikedSuggestions,
	}, true
}
