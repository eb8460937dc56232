package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jmespath-community/go-jmespath"
)

// Backend error codes that drive form-field placement.
const (
	CodeEmailNotFound     = "EMAIL_NOT_FOUND"
	CodePasswordIncorrect = "PASSWORD_INCORRECT"
	CodeEmailTaken        = "EMAIL_TAKEN"
)

// errorShapeExpr accepts both {error: ...} and {message: ...} payloads.
const errorShapeExpr = `{message: error || message, code: code}`

const maxErrorBody = 64 << 10

// Error is a non-2xx response from the backend.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api: %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// CodeOf returns the backend error code carried by err, or "".
func CodeOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ""
}

// MessageOf returns the backend message carried by err, or "".
func MessageOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

func decodeError(resp *http.Response) *Error {
	apiErr := &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var payload any
	if json.Unmarshal(body, &payload) != nil {
		return apiErr
	}
	shaped, err := jmespath.Search(errorShapeExpr, payload)
	if err != nil {
		return apiErr
	}
	fields, ok := shaped.(map[string]any)
	if !ok {
		return apiErr
	}
	if msg, ok := fields["message"].(string); ok && msg != "" {
		apiErr.Message = msg
	}
	if code, ok := fields["code"].(string); ok {
		apiErr.Code = code
	}
	return apiErr
}
