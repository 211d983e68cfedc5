package apisdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the public endpoints of the API and opens Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewSession wraps an existing bearer token.
func (c *Client) NewSession(token string) *Session {
	return &Session{client: c, token: token}
}

// NewCookieSession wraps a server-side session id, as set by the Google
// callback in the sid cookie.
func (c *Client) NewCookieSession(sid string) *Session {
	return &Session{client: c, sid: sid}
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// doRequest sends body (nil, or any value encoded as JSON) to path.
func (c *Client) doRequest(ctx context.Context, method, path string, body any, auth func(*http.Request)) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if auth != nil {
		auth(req)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// decodeJSON reads resp and decodes it into target, or returns an *Error
// when the status is not expectedStatus.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, bodyBytes)
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeText returns a plain text body.
func decodeText(resp *http.Response, expectedStatus int) (string, error) {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != expectedStatus {
		return "", parseErrorResponse(resp, bodyBytes)
	}
	return string(bodyBytes), nil
}

// ============================================================================
// System
// ============================================================================

func (c *Client) Ping(ctx context.Context) (string, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/ping", nil, nil)
	if err != nil {
		return "", err
	}
	return decodeText(resp, http.StatusOK)
}

func (c *Client) Version(ctx context.Context) (*VersionResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/version", nil, nil)
	if err != nil {
		return nil, err
	}
	var out VersionResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Livez reports process liveness.
func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// Readyz reports whether the database answers.
func (c *Client) Readyz(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *Client) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	var out HealthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Credentials
// ============================================================================

// Signin registers a platform user.
func (c *Client) Signin(ctx context.Context, req SigninRequest) (*UserResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/signin", req, nil)
	if err != nil {
		return nil, err
	}
	var out UserResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates against the user tier (users, then the admin).
func (c *Client) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	return c.login(ctx, "/api/login", req)
}

// CustomerRegister creates a customer account.
func (c *Client) CustomerRegister(ctx context.Context, req CustomerRegisterRequest) (*CustomerResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/customers/register", req, nil)
	if err != nil {
		return nil, err
	}
	var out CustomerResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CustomerLogin authenticates against the customer tier.
func (c *Client) CustomerLogin(ctx context.Context, req LoginRequest) (*Session, error) {
	return c.login(ctx, "/api/customers/login", req)
}

func (c *Client) login(ctx context.Context, path string, req LoginRequest) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, path, req, nil)
	if err != nil {
		return nil, err
	}
	// The token comes back as a bare JSON string.
	var token string
	if err := decodeJSON(resp, &token, http.StatusOK); err != nil {
		return nil, err
	}
	return c.NewSession(token), nil
}

// Confirm redeems an email confirmation token.
func (c *Client) Confirm(ctx context.Context, email, token string) (*TextResponse, error) {
	q := url.Values{"email": {email}, "token": {token}}
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/accounts/confirm?"+q.Encode(), nil, nil)
	if err != nil {
		return nil, err
	}
	var out TextResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Forgot starts a password reset for email. The answer is the same whether
// or not the account exists, except in CI mode where a known account gets
// its token back.
func (c *Client) Forgot(ctx context.Context, email string) (*DeliveryResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/accounts/forgot", ForgotRequest{Email: email}, nil)
	if err != nil {
		return nil, err
	}
	var out DeliveryResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reset sets a new password using a reset token.
func (c *Client) Reset(ctx context.Context, req ResetRequest) (string, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/accounts/reset", req, nil)
	if err != nil {
		return "", err
	}
	return decodeText(resp, http.StatusOK)
}

// ============================================================================
// Newsletter
// ============================================================================

func (c *Client) Subscribe(ctx context.Context, email string) (string, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/newsletter", SubscribeRequest{Email: email}, nil)
	if err != nil {
		return "", err
	}
	return decodeText(resp, http.StatusOK)
}

// ============================================================================
// Contact
// ============================================================================

// SubmitContact sends the public contact form and returns the stored request.
func (c *Client) SubmitContact(ctx context.Context, req ContactRequest) (*ContactResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/contact", req, nil)
	if err != nil {
		return nil, err
	}
	var out ContactResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
