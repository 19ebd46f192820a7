// internal/domain/errors.go
package domain

import "errors"

// ErrUnauthorized matches any API failure answered with HTTP 401.
// Callers can check for it using errors.Is to decide on a token refresh.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNoRefreshToken is returned when a refresh is needed but the session holds no refresh token.
var ErrNoRefreshToken = errors.New("no refresh token available")

// ErrSessionExpired is matched by errors raised once the refresh exchange failed
// and the session was invalidated.
var ErrSessionExpired = errors.New("session expired")
