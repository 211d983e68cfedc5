package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
)

// APIError is the JSON error body every handler writes:
// {"error": "...", "error_description": "..."}.
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Write sends the error with its status code.
func (e *APIError) Write(w http.ResponseWriter) {
	WriteJSON(w, e.StatusCode, e)
}

func NewAPIError(status int, code, description string) *APIError {
	return &APIError{StatusCode: status, Code: code, Description: description}
}

var (
	ErrUnauthorized = NewAPIError(http.StatusUnauthorized, "unauthorized", "no credentials presented")
	ErrForbidden    = NewAPIError(http.StatusForbidden, "forbidden", "credentials presented but rejected")
	ErrUnexpected   = NewAPIError(http.StatusInternalServerError, "unexpected_error", "unexpected error")
	ErrInvalidJSON  = NewAPIError(http.StatusBadRequest, "invalid_request", "invalid JSON body")
)

// ValidationErrorResponse is written for requests that fail field validation.
type ValidationErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteValidationError writes a 400 for err. Field errors produced by
// ozzo-validation are reported per field in details.
func WriteValidationError(w http.ResponseWriter, err error) {
	resp := ValidationErrorResponse{
		Code:    "validation_error",
		Message: "Missing value",
	}

	var fields validation.Errors
	if errors.As(err, &fields) {
		resp.Details = make(map[string]string, len(fields))
		for name, ferr := range fields {
			resp.Details[name] = ferr.Error()
		}
	} else if err != nil {
		resp.Message = err.Error()
	}

	WriteJSON(w, http.StatusBadRequest, resp)
}

// DecodeJSON reads a JSON body of at most 1 MiB into v.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}
