package apierror

import (
	"encoding/json"
	"fmt"

	"github.com/waabox/clubinho/internal/domain"
)

// ResponseError is returned for every response with a status of 400 or above.
// It keeps the raw body so the classifier can decode it lazily.
type ResponseError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Body       []byte
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("clubinho API error: %s %s: %s", e.Method, e.URL, e.Status)
}

// Is lets callers test a 401 with errors.Is(err, domain.ErrUnauthorized).
func (e *ResponseError) Is(target error) bool {
	return target == domain.ErrUnauthorized && e.StatusCode == 401
}

// SessionExpiredError is returned when a 401 could not be recovered because the
// refresh exchange failed. The session has already been invalidated.
type SessionExpiredError struct {
	Err error
}

func (e *SessionExpiredError) Error() string {
	return fmt.Sprintf("session expired: re-authentication required: %v", e.Err)
}

func (e *SessionExpiredError) Unwrap() []error {
	return []error{domain.ErrSessionExpired, e.Err}
}

// Body is the structured error envelope produced by the backend.
type Body struct {
	Success bool      `json:"success"`
	Error   BodyError `json:"error"`
}

// BodyError is the "error" member of Body.
type BodyError struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp string         `json:"timestamp"`
	Path      string         `json:"path"`
}

// Field returns details.field when the backend pinned the error to an input.
func (b BodyError) Field() string {
	if f, ok := b.Details["field"].(string); ok {
		return f
	}
	return ""
}

// ParseBody decodes raw as a structured error envelope. It reports false for
// anything that is not `{"success": false, "error": {"code": ...}}`.
func ParseBody(raw []byte) (Body, bool) {
	if len(raw) == 0 {
		return Body{}, false
	}
	var wire struct {
		Success *bool      `json:"success"`
		Error   *BodyError `json:"error"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return Body{}, false
	}
	if wire.Success == nil || *wire.Success || wire.Error == nil || wire.Error.Code == "" {
		return Body{}, false
	}
	return Body{Success: false, Error: *wire.Error}, true
}
