package http

import (
	"net/http"

	"github.com/pathfinder-tours/pathfinder/internal/api/domain"
	"github.com/pathfinder-tours/pathfinder/internal/api/service"
	"github.com/pathfinder-tours/pathfinder/pkg/apisdk"
	"github.com/pathfinder-tours/pathfinder/pkg/httpx"
	"github.com/pathfinder-tours/pathfinder/pkg/slogx"
)

type NewsletterHandler struct {
	Newsletter *service.NewsletterService
}

// HandleSubscribe handles POST /api/newsletter.
//
//	@Summary		Subscribe to the newsletter
//	@Description	Subscribing an address twice is not an error.
//	@Tags			Newsletter
//	@Accept			json
//	@Produce		plain
//	@Param			request	body		apisdk.SubscribeRequest			true	"email"
//	@Success		200		{string}	string							"User successfully added to newsletter"
//	@Failure		400		{object}	apisdk.ValidationErrorResponse	"Missing value"
//	@Router			/api/newsletter [post].
func (h *NewsletterHandler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req apisdk.SubscribeRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.ErrInvalidJSON.Write(w)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteValidationError(w, err)
		return
	}

	if err := h.Newsletter.Subscribe(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteText(w, http.StatusOK, "User successfully added to newsletter")
}

// HandleList handles GET /api/newsletter.
//
//	@Summary		List subscribers
//	@Tags			Newsletter
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		apisdk.SubscriberResponse
//	@Failure		403	{object}	apisdk.ErrorResponse	"Not an admin"
//	@Router			/api/newsletter [get].
func (h *NewsletterHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	subs, err := h.Newsletter.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSubscriberResponses(subs))
}

// HandleDelete handles DELETE /api/newsletter/{uuid}.
//
//	@Summary		Remove a subscriber
//	@Tags			Newsletter
//	@Security		BearerAuth
//	@Produce		plain
//	@Param			uuid	path		string					true	"Subscriber UUID"
//	@Success		200		{string}	string					"User successfully deleted from newsletter"
//	@Failure		403		{object}	apisdk.ErrorResponse	"Not an admin"
//	@Failure		404		{object}	apisdk.ErrorResponse	"User not found"
//	@Router			/api/newsletter/{uuid} [delete].
func (h *NewsletterHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Newsletter.Unsubscribe(r.Context(), r.PathValue("uuid")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteText(w, http.StatusOK, "User successfully deleted from newsletter")
}

// HandleSend handles POST /api/newsletter/create.
//
//	@Summary		Send a newsletter
//	@Description	Mails every subscriber one at a time and stops at the first failure. Nothing is retried or rolled back;
//	@Description	a partial send answers 502 with the report.
//	@Tags			Newsletter
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		apisdk.NewsletterRequest		true	"subject, text"
//	@Success		200		{object}	apisdk.SendReportResponse		"Every subscriber was mailed"
//	@Failure		400		{object}	apisdk.ValidationErrorResponse	"Missing value"
//	@Failure		403		{object}	apisdk.ErrorResponse			"Not an admin"
//	@Failure		502		{object}	apisdk.SendReportResponse		"Send stopped early"
//	@Router			/api/newsletter/create [post].
func (h *NewsletterHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req apisdk.NewsletterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.ErrInvalidJSON.Write(w)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteValidationError(w, err)
		return
	}

	report, err := h.Newsletter.Send(ctx, domain.Newsletter{Subject: req.Subject, Text: req.Text})
	resp := apisdk.SendReportResponse{Total: report.Total, Sent: report.Sent, FailedFor: report.FailedFor}
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, resp)
	case report.FailedFor != "":
		slogx.FromContext(ctx).Error("newsletter send stopped",
			"sent", report.Sent,
			"total", report.Total,
			"err", err,
		)
		resp.Error = "Mail could not be sent to " + report.FailedFor
		httpx.WriteJSON(w, http.StatusBadGateway, resp)
	default:
		writeServiceError(w, r, err)
	}
}
