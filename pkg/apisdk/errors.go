package apisdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is any non-2xx API response.
type Error struct {
	StatusCode  int
	Code        string
	Description string

	// Details holds per-field messages for validation failures.
	Details map[string]string

	// Body is the raw response when it was not a JSON error object.
	Body string
}

func (e *Error) Error() string {
	switch {
	case e.Code != "" && e.Description != "":
		return fmt.Sprintf("apisdk: status %d: %s: %s", e.StatusCode, e.Code, e.Description)
	case e.Code != "":
		return fmt.Sprintf("apisdk: status %d: %s", e.StatusCode, e.Code)
	default:
		return fmt.Sprintf("apisdk: status %d: %s", e.StatusCode, e.Body)
	}
}

// IsStatus reports whether err is an *Error with the given status code.
func IsStatus(err error, status int) bool {
	var e *Error
	return errors.As(err, &e) && e.StatusCode == status
}

func parseErrorResponse(resp *http.Response, body []byte) error {
	out := &Error{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}

	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		return out
	}

	var v ValidationErrorResponse
	if err := json.Unmarshal(body, &v); err == nil && v.Code != "" {
		out.Code = v.Code
		out.Description = v.Message
		out.Details = v.Details
		return out
	}

	var e ErrorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		out.Code = e.Error
		out.Description = e.ErrorDescription
	}
	return out
}
