// Package clubinho is the admin API of the clubinho backend, spoken through
// the session client.
package clubinho

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/waabox/clubinho/internal/domain"
	"github.com/waabox/clubinho/internal/session"
)

// Adapter exposes the admin endpoints as typed calls.
type Adapter struct {
	client *session.Client
}

// NewAdapter creates an Adapter on top of client.
func NewAdapter(client *session.Client) *Adapter {
	return &Adapter{client: client}
}

// ChildFilter narrows ListChildren.
type ChildFilter struct {
	Search string
	ClubID string
	Page   int
	Limit  int
}

func (f ChildFilter) query() url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.ClubID != "" {
		q.Set("clubId", f.ClubID)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

// Login authenticates with e-mail and password and starts a session.
// Errors are returned without a toast so the login form can show them inline.
func (a *Adapter) Login(ctx context.Context, email, password string) (domain.User, error) {
	return a.authenticate(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// GoogleLogin exchanges a Google ID token for a session.
func (a *Adapter) GoogleLogin(ctx context.Context, idToken string) (domain.User, error) {
	return a.authenticate(ctx, "/auth/google", map[string]string{"token": idToken})
}

// Register creates an account and starts a session.
func (a *Adapter) Register(ctx context.Context, name, email, password string) (domain.User, error) {
	return a.authenticate(ctx, "/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

// Logout ends the session locally. The backend keeps no server-side state
// for access tokens, so there is nothing to call.
func (a *Adapter) Logout() error {
	return a.client.Session().Invalidate()
}

// Me returns the user owning the current session.
func (a *Adapter) Me(ctx context.Context) (domain.User, error) {
	var user domain.User
	if err := a.client.JSON(ctx, session.Request{Method: http.MethodGet, Path: "/auth/me"}, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Dashboard returns the aggregated counters shown on the admin home page.
func (a *Adapter) Dashboard(ctx context.Context) (domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := a.client.JSON(ctx, session.Request{Method: http.MethodGet, Path: "/dashboard/stats"}, &stats); err != nil {
		return domain.DashboardStats{}, err
	}
	return stats, nil
}

// ListChildren returns the children matching f.
func (a *Adapter) ListChildren(ctx context.Context, f ChildFilter) ([]domain.Child, error) {
	var page struct {
		Items []domain.Child `json:"items"`
	}
	req := session.Request{Method: http.MethodGet, Path: "/children", Query: f.query()}
	if err := a.client.JSON(ctx, req, &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

// CreateChild registers a child and returns it as stored.
func (a *Adapter) CreateChild(ctx context.Context, c domain.Child) (domain.Child, error) {
	if c.Name == "" {
		return domain.Child{}, errors.New("child name is required")
	}
	var created domain.Child
	if err := a.client.JSON(ctx, session.Request{Method: http.MethodPost, Path: "/children", Body: c}, &created); err != nil {
		return domain.Child{}, err
	}
	return created, nil
}

// ListClubs returns every club.
func (a *Adapter) ListClubs(ctx context.Context) ([]domain.Club, error) {
	var clubs []domain.Club
	if err := a.client.JSON(ctx, session.Request{Method: http.MethodGet, Path: "/clubs"}, &clubs); err != nil {
		return nil, err
	}
	return clubs, nil
}

func (a *Adapter) authenticate(ctx context.Context, path string, body map[string]string) (domain.User, error) {
	var raw struct {
		AccessToken  string      `json:"accessToken"`
		RefreshToken string      `json:"refreshToken"`
		User         domain.User `json:"user"`
	}
	req := session.Request{
		Method:                  http.MethodPost,
		Path:                    path,
		Body:                    body,
		SkipGlobalErrorHandling: true,
	}
	if err := a.client.JSON(ctx, req, &raw); err != nil {
		return domain.User{}, err
	}
	if raw.AccessToken == "" || raw.RefreshToken == "" {
		return domain.User{}, fmt.Errorf("%s: response is missing a token", path)
	}
	err := a.client.Session().SetCredentials(domain.Credentials{
		AccessToken:  raw.AccessToken,
		RefreshToken: raw.RefreshToken,
	})
	if err != nil {
		return domain.User{}, err
	}
	return raw.User, nil
}
