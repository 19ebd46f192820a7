package session

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

// Request describes one outbound call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	// Body is encoded as JSON. A json.RawMessage or []byte is sent as is.
	Body any
	// SkipGlobalErrorHandling suppresses toasts, events and redirects for this
	// call. The refresh-and-retry on 401 still applies.
	SkipGlobalErrorHandling bool
}

// Response is a successful (status < 400) reply.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

var authEndpoint = regexp.MustCompile(`/auth/(login|google|register|refresh)$`)

// IsAuthEndpoint reports whether path targets one of the endpoints whose own
// 401s must never trigger a refresh.
func IsAuthEndpoint(path string) bool {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	return authEndpoint.MatchString(strings.TrimSuffix(path, "/"))
}

// call is the per-request state carried across the original attempt and its
// single replay.
type call struct {
	req     Request
	id      string
	body    []byte
	retried bool
	token   string
}

func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case json.RawMessage:
		return b, nil
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		return raw, nil
	}
}
