package apisdk

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the body of every non-validation error.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ValidationErrorResponse is returned with 400 when request fields are
// missing or malformed.
type ValidationErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// ============================================================================
// Credential Types
// ============================================================================

// SigninRequest registers a platform user.
type SigninRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r SigninRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 64)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 254), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(4, 128)),
	)
}

// LoginRequest exchanges credentials for a bearer token. OTP is only
// needed for admins with MFA enabled.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	OTP      string `json:"otp,omitempty"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// IdentityResponse answers GET /api/whoami.
type IdentityResponse struct {
	Identity string `json:"identity"`
	Kind     string `json:"kind"`
}

// DeliveryResponse answers a confirmation or reset request: Token in CI
// mode, otherwise Text saying the mail went out.
type DeliveryResponse struct {
	Token string `json:"token,omitempty"`
	Text  string `json:"text,omitempty"`
}

// TextResponse carries a human readable outcome.
type TextResponse struct {
	Text string `json:"text"`
}

// ForgotRequest starts an unauthenticated password reset.
type ForgotRequest struct {
	Email string `json:"email"`
}

func (r ForgotRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

type ResetRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func (r ResetRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Token, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(4, 128)),
	)
}

// ============================================================================
// Account Types
// ============================================================================

type UserResponse struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	OrganisationID *string    `json:"organisation_id,omitempty"`
	Confirmed      bool       `json:"confirmed"`
	ConfirmedAt    *time.Time `json:"confirmed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// AccountPatchRequest updates the caller's account. Empty fields are kept.
type AccountPatchRequest struct {
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

func (r AccountPatchRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Length(1, 64)),
		validation.Field(&r.Password, validation.Length(4, 128)),
	)
}

// ============================================================================
// Customer Types
// ============================================================================

type CustomerResponse struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	PhoneNumber      string    `json:"phone_number"`
	LikedSuggestions []string  `json:"likedSuggestions"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type CustomerRegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

func (r CustomerRegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 64)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 254), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(4, 128)),
		validation.Field(&r.FirstName, validation.Length(0, 200)),
		validation.Field(&r.LastName, validation.Length(0, 200)),
		validation.Field(&r.PhoneNumber, validation.Length(0, 32)),
	)
}

// CustomerPatchRequest updates a customer profile. A missing
// likedSuggestions keeps the list; an empty array clears it.
type CustomerPatchRequest struct {
	Username         string   `json:"username,omitempty"`
	Password         string   `json:"password,omitempty"`
	FirstName        string   `json:"first_name,omitempty"`
	LastName         string   `json:"last_name,omitempty"`
	PhoneNumber      string   `json:"phone_number,omitempty"`
	LikedSuggestions []string `json:"likedSuggestions"`
}

func (r CustomerPatchRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Length(1, 64)),
		validation.Field(&r.Password, validation.Length(4, 128)),
		validation.Field(&r.FirstName, validation.Length(0, 200)),
		validation.Field(&r.LastName, validation.Length(0, 200)),
		validation.Field(&r.PhoneNumber, validation.Length(0, 32)),
		validation.Field(&r.LikedSuggestions, validation.Length(0, 500)),
	)
}

// ============================================================================
// Newsletter Types
// ============================================================================

type SubscribeRequest struct {
	Email string `json:"email"`
}

func (r SubscribeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

type SubscriberResponse struct {
	UUID      string    `json:"uuid"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type NewsletterRequest struct {
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

func (r NewsletterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Subject, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Text, validation.Required),
	)
}

// SendReportResponse describes a newsletter fan-out. Error is set when the
// send stopped early.
type SendReportResponse struct {
	Total     int    `json:"total"`
	Sent      int    `json:"sent"`
	FailedFor string `json:"failed_for,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ============================================================================
// Contact Types
// ============================================================================

// ContactRequest is the public contact form.
type ContactRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Email       string `json:"email"`
}

func (r ContactRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 128)),
		validation.Field(&r.Category, validation.Required, validation.Length(1, 64)),
		validation.Field(&r.Description, validation.Required, validation.Length(1, 4000)),
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

// ContactPatchRequest triages a request. Every field is required; Processed
// may be false.
type ContactPatchRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Processed *bool  `json:"processed"`
}

func (r ContactPatchRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 128)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Processed, validation.NotNil),
	)
}

type ContactResponse struct {
	UUID        string    `json:"uuid"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Email       string    `json:"email"`
	Processed   bool      `json:"processed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ============================================================================
// MFA Types
// ============================================================================

type MFAEnrollResponse struct {
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauth_url"`
	Issuer     string `json:"issuer"`
	Account    string `json:"account"`
}

type MFACodeRequest struct {
	Code string `json:"code"`
}

func (r MFACodeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required, validation.Length(6, 6), is.Digit),
	)
}

// ============================================================================
// System Types
// ============================================================================

type VersionResponse struct {
	Version string `json:"version"`
}

// HealthResponse answers /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
}
