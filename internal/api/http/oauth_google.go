package http

import (
	"net/http"
	"time"

	"github.com/pathfinder-tours/pathfinder/internal/api/service"
	"github.com/pathfinder-tours/pathfinder/pkg/httpx"
	"github.com/pathfinder-tours/pathfinder/pkg/slogx"
)

const (
	stateCookie    = "oauth_state"
	stateCookieAge = 10 * time.Minute
)

// GoogleHandler runs the Google sign-in redirect flow and opens a cookie
// session on success.
type GoogleHandler struct {
	OAuth        *service.OAuthService
	CookieSecure bool

	// SuccessRedirect is where the browser lands after a login. Defaults to "/".
	SuccessRedirect string
}

// HandleBegin handles GET /auth/google.
//
//	@Summary		Sign in with Google
//	@Description	Sets a state cookie and redirects to Google's consent screen.
//	@Tags			OAuth
//	@Success		302
//	@Router			/auth/google [get].
func (h *GoogleHandler) HandleBegin(w http.ResponseWriter, r *http.Request) {
	state, target, err := h.OAuth.Begin()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/auth/google",
		MaxAge:   int(stateCookieAge.Seconds()),
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, target, http.StatusFound)
}

// HandleCallback handles GET /auth/google/callback.
//
//	@Summary		Google sign-in callback
//	@Description	Checks state, resolves the Google account to a user and sets the sid session cookie.
//	@Tags			OAuth
//	@Param			state	query	string	true	"State echoed by Google"
//	@Param			code	query	string	true	"Authorization code"
//	@Success		302
//	@Failure		400	{object}	apisdk.ErrorResponse	"State mismatch or provider error"
//	@Router			/auth/google/callback [get].
func (h *GoogleHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	if e := q.Get("error"); e != "" {
		slogx.FromContext(ctx).Warn("google sign-in refused", "error", e)
		httpx.NewAPIError(http.StatusBadRequest, "access_denied", "sign-in was cancelled or refused").Write(w)
		return
	}

	var want string
	if c, err := r.Cookie(stateCookie); err == nil {
		want = c.Value
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Path: "/auth/google", MaxAge: -1})

	login, err := h.OAuth.Callback(ctx, want, q.Get("state"), q.Get("code"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	ttl := h.OAuth.SessionTTL
	if ttl <= 0 {
		ttl = service.DefaultSessionTTL
	}
	http.SetCookie(w, &http.Cookie{
		Name:     httpx.SessionCookie,
		Value:    login.SessionToken,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	target := h.SuccessRedirect
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusFound)
}
