package apisdk

import (
	"context"
	"net/http"
	"net/url"
)

// Session is an authenticated caller. It carries either a bearer token or
// a server-side session id; tokens are never refreshed.
type Session struct {
	client *Client
	token  string
	sid    string
}

// Token returns the bearer token, empty for cookie sessions.
func (s *Session) Token() string {
	return s.token
}

func (s *Session) authorize(req *http.Request) {
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	if s.sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: s.sid})
	}
}

func (s *Session) doAuthRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	return s.client.doRequest(ctx, method, path, body, s.authorize)
}

// call performs an authenticated request and decodes a JSON answer.
func call[T any](ctx context.Context, s *Session, method, path string, body any) (*T, error) {
	resp, err := s.doAuthRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	var out T
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) text(ctx context.Context, method, path string, body any) (string, error) {
	resp, err := s.doAuthRequest(ctx, method, path, body)
	if err != nil {
		return "", err
	}
	return decodeText(resp, http.StatusOK)
}

// ============================================================================
// User tier
// ============================================================================

func (s *Session) WhoAmI(ctx context.Context) (*IdentityResponse, error) {
	return call[IdentityResponse](ctx, s, http.MethodGet, "/api/whoami", nil)
}

// Logout ends a cookie session. Bearer tokens stay valid until they expire.
func (s *Session) Logout(ctx context.Context) (string, error) {
	return s.text(ctx, http.MethodPost, "/api/logout", nil)
}

// RequestVerification asks for an email confirmation token for the caller.
func (s *Session) RequestVerification(ctx context.Context) (*DeliveryResponse, error) {
	return call[DeliveryResponse](ctx, s, http.MethodGet, "/api/accounts/verification", nil)
}

// RequestReset asks for a password reset token for the caller.
func (s *Session) RequestReset(ctx context.Context) (*DeliveryResponse, error) {
	return call[DeliveryResponse](ctx, s, http.MethodGet, "/api/accounts/forgot", nil)
}

func (s *Session) ListAccounts(ctx context.Context) ([]UserResponse, error) {
	out, err := call[[]UserResponse](ctx, s, http.MethodGet, "/api/account", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (s *Session) GetAccount(ctx context.Context, username string) (*UserResponse, error) {
	return call[UserResponse](ctx, s, http.MethodGet, "/api/account/"+url.PathEscape(username), nil)
}

func (s *Session) UpdateAccount(ctx context.Context, req AccountPatchRequest) (*UserResponse, error) {
	return call[UserResponse](ctx, s, http.MethodPatch, "/api/account", req)
}

func (s *Session) DeleteAccount(ctx context.Context) (string, error) {
	return s.text(ctx, http.MethodDelete, "/api/account", nil)
}

// ListCustomers returns every customer. User tier.
func (s *Session) ListCustomers(ctx context.Context) ([]CustomerResponse, error) {
	out, err := call[[]CustomerResponse](ctx, s, http.MethodGet, "/api/customers/all", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// ============================================================================
// Customer tier
// ============================================================================

func (s *Session) Me(ctx context.Context) (*CustomerResponse, error) {
	return call[CustomerResponse](ctx, s, http.MethodGet, "/api/customers", nil)
}

func (s *Session) UpdateMe(ctx context.Context, req CustomerPatchRequest) (*CustomerResponse, error) {
	return call[CustomerResponse](ctx, s, http.MethodPatch, "/api/customers", req)
}

// ============================================================================
// Admin tier
// ============================================================================

func (s *Session) AdminListUsers(ctx context.Context) ([]UserResponse, error) {
	out, err := call[[]UserResponse](ctx, s, http.MethodGet, "/api/admin/users", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (s *Session) AdminDeleteUser(ctx context.Context, id string) (string, error) {
	return s.text(ctx, http.MethodDelete, "/api/admin/users/"+url.PathEscape(id), nil)
}

func (s *Session) AdminRequestVerification(ctx context.Context, id string) (*DeliveryResponse, error) {
	return call[DeliveryResponse](ctx, s, http.MethodGet, "/api/admin/users/"+url.PathEscape(id)+"/verification", nil)
}

func (s *Session) AdminRequestReset(ctx context.Context, id string) (*DeliveryResponse, error) {
	return call[DeliveryResponse](ctx, s, http.MethodGet, "/api/admin/users/"+url.PathEscape(id)+"/forgot", nil)
}

func (s *Session) AdminListCustomers(ctx context.Context) ([]CustomerResponse, error) {
	out, err := call[[]CustomerResponse](ctx, s, http.MethodGet, "/api/customers/admin", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (s *Session) AdminCreateCustomer(ctx context.Context, req CustomerRegisterRequest) (*CustomerResponse, error) {
	return call[CustomerResponse](ctx, s, http.MethodPost, "/api/customers", req)
}

func (s *Session) AdminUpdateCustomer(ctx context.Context, id string, req CustomerPatchRequest) (*CustomerResponse, error) {
	return call[CustomerResponse](ctx, s, http.MethodPatch, "/api/customers/admin/"+url.PathEscape(id), req)
}

func (s *Session) ListSubscribers(ctx context.Context) ([]SubscriberResponse, error) {
	out, err := call[[]SubscriberResponse](ctx, s, http.MethodGet, "/api/newsletter", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (s *Session) Unsubscribe(ctx context.Context, uuid string) (string, error) {
	return s.text(ctx, http.MethodDelete, "/api/newsletter/"+url.PathEscape(uuid), nil)
}

// SendNewsletter mails every subscriber. A send that stopped early comes
// back as an *Error with status 502; the report is in its Body.
func (s *Session) SendNewsletter(ctx context.Context, req NewsletterRequest) (*SendReportResponse, error) {
	return call[SendReportResponse](ctx, s, http.MethodPost, "/api/newsletter/create", req)
}

func (s *Session) ListContacts(ctx context.Context) ([]ContactResponse, error) {
	out, err := call[[]ContactResponse](ctx, s, http.MethodGet, "/api/contact", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (s *Session) UpdateContact(ctx context.Context, uuid string, req ContactPatchRequest) (string, error) {
	return s.text(ctx, http.MethodPatch, "/api/contact/"+url.PathEscape(uuid), req)
}

func (s *Session) DeleteContact(ctx context.Context, uuid string) (string, error) {
	return s.text(ctx, http.MethodDelete, "/api/contact/"+url.PathEscape(uuid), nil)
}

// EnrollMFA creates a TOTP secret for the admin. It is not enforced until
// VerifyMFA succeeds.
func (s *Session) EnrollMFA(ctx context.Context) (*MFAEnrollResponse, error) {
	return call[MFAEnrollResponse](ctx, s, http.MethodPost, "/api/admin/mfa/enroll", nil)
}

func (s *Session) VerifyMFA(ctx context.Context, code string) (*TextResponse, error) {
	return call[TextResponse](ctx, s, http.MethodPost, "/api/admin/mfa/verify", MFACodeRequest{Code: code})
}

func (s *Session) DisableMFA(ctx context.Context, code string) (*TextResponse, error) {
	return call[TextResponse](ctx, s, http.MethodDelete, "/api/admin/mfa", MFACodeRequest{Code: code})
}
