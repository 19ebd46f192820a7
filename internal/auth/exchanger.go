// Package auth exchanges refresh tokens with the clubinho backend and keeps
// credentials between runs.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/waabox/clubinho/internal/apierror"
	"github.com/waabox/clubinho/internal/domain"
)

// RefreshPath is the backend endpoint that rotates a credential pair.
const RefreshPath = "/auth/refresh"

// ErrIncompleteTokens is returned when the refresh endpoint answers without
// both tokens.
var ErrIncompleteTokens = errors.New("refresh response is missing a token")

// Exchanger calls the refresh endpoint directly, outside the session client,
// so a failing refresh can never re-enter the refresh path.
type Exchanger struct {
	baseURL string
	client  *http.Client
}

// NewExchanger creates an Exchanger for the backend at baseURL.
func NewExchanger(baseURL string, timeout time.Duration) *Exchanger {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Exchanger{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Refresh posts {refreshToken} and returns the rotated pair.
func (e *Exchanger) Refresh(ctx context.Context, refreshToken string) (domain.Credentials, error) {
	if refreshToken == "" {
		return domain.Credentials{}, domain.ErrNoRefreshToken
	}
	payload, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("encoding refresh request: %w", err)
	}

	endpoint, err := url.JoinPath(e.baseURL, RefreshPath)
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("building URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("requesting refresh: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return domain.Credentials{}, &apierror.ResponseError{
			Method:     http.MethodPost,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       body,
		}
	}

	var raw struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return domain.Credentials{}, fmt.Errorf("decoding refresh response: %w", err)
	}
	if raw.AccessToken == "" || raw.RefreshToken == "" {
		return domain.Credentials{}, ErrIncompleteTokens
	}
	return domain.Credentials{AccessToken: raw.AccessToken, RefreshToken: raw.RefreshToken}, nil
}
