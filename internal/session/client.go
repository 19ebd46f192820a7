package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/waabox/clubinho/internal/apierror"
	"github.com/waabox/clubinho/internal/domain"
	"github.com/waabox/clubinho/internal/events"
	"github.com/waabox/clubinho/internal/metrics"
)

// Navigator is the UI side that owns the current location.
type Navigator interface {
	Location() string
	Navigate(path string)
	IsPublic(path string) bool
}

// Options configures a Client. Session is required; everything else is optional.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Session    *Manager
	Bus        *events.Bus
	Navigator  Navigator
	Classifier *apierror.Classifier
	// ToastDurations is the auto-hide duration per variant; missing variants use 5s.
	ToastDurations map[domain.ToastVariant]time.Duration
	// PermissionRedirectDelay lets the permission toast render before navigating away.
	PermissionRedirectDelay time.Duration
	Logger                  *slog.Logger
}

// Client performs authenticated calls, replays a call once after refreshing
// an expired access token, and reports terminal failures.
type Client struct {
	baseURL        string
	http           *http.Client
	session        *Manager
	bus            *events.Bus
	nav            Navigator
	classifier     *apierror.Classifier
	toastDurations map[domain.ToastVariant]time.Duration
	redirectDelay  time.Duration
	logger         *slog.Logger
}

const defaultToastDuration = 5 * time.Second

// NewClient creates a Client.
func NewClient(opts Options) *Client {
	c := &Client{
		baseURL:        strings.TrimSuffix(opts.BaseURL, "/"),
		http:           opts.HTTPClient,
		session:        opts.Session,
		bus:            opts.Bus,
		nav:            opts.Navigator,
		classifier:     opts.Classifier,
		toastDurations: opts.ToastDurations,
		redirectDelay:  opts.PermissionRedirectDelay,
		logger:         opts.Logger,
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 15 * time.Second}
	}
	if c.classifier == nil {
		c.classifier = apierror.NewClassifier(apierror.DefaultRoutes)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Session returns the session manager backing the client.
func (c *Client) Session() *Manager {
	return c.session
}

// Do sends req. Failures are always returned to the caller; classification,
// notifications and redirects happen on the side.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}
	cl := &call{req: req, id: uuid.NewString(), body: body}
	log := c.logger.With("request_id", cl.id, "method", req.Method, "path", req.Path)

	resp, err := c.send(ctx, cl)
	if err != nil && c.shouldRefresh(cl, err) {
		cl.retried = true
		log.Debug("access token rejected, refreshing")
		resp, err = c.retryAfterRefresh(ctx, cl, log)
	}

	metrics.RequestLatency.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())
	metrics.RequestsTotal.WithLabelValues(req.Method, statusLabel(resp, err)).Inc()

	if err != nil {
		c.handleFailure(cl, err, log)
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}
	return resp, nil
}

// JSON sends req and decodes a successful body into out (which may be nil).
func (c *Client) JSON(ctx context.Context, req Request, out any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return resp.Decode(out)
}

func (c *Client) shouldRefresh(cl *call, err error) bool {
	var respErr *apierror.ResponseError
	if !errors.As(err, &respErr) || respErr.StatusCode != http.StatusUnauthorized {
		return false
	}
	if cl.retried || IsAuthEndpoint(cl.req.Path) {
		return false
	}
	// A 401 without a structured body is treated as an expired token.
	if body, ok := apierror.ParseBody(respErr.Body); ok && body.Error.Code == apierror.CodeInvalidCredentials.String() {
		return false
	}
	return true
}

func (c *Client) retryAfterRefresh(ctx context.Context, cl *call, log *slog.Logger) (*Response, error) {
	if _, err := c.session.Refresh(ctx, cl.token); err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		log.Warn("session refresh failed", "error", err)
		c.redirectToLogin(c.classifier.Routes().Login)
		return nil, &apierror.SessionExpiredError{Err: err}
	}
	metrics.RetriesTotal.Inc()
	log.Debug("replaying request with refreshed token")
	return c.send(ctx, cl)
}

func (c *Client) send(ctx context.Context, cl *call) (*Response, error) {
	var body io.Reader
	if cl.body != nil {
		body = bytes.NewReader(cl.body)
	}
	req, err := http.NewRequestWithContext(ctx, cl.req.Method, c.url(cl.req), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, v := range cl.req.Header {
		req.Header[k] = append([]string(nil), v...)
	}
	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", cl.id)

	cl.token = c.session.AccessToken()
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, &apierror.ResponseError{
			Method:     cl.req.Method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       raw,
		}
	}
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: raw}, nil
}

func (c *Client) url(req Request) string {
	u := req.Path
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = c.baseURL + "/" + strings.TrimPrefix(u, "/")
	}
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}
	return u
}

func statusLabel(resp *Response, err error) string {
	if err == nil && resp != nil {
		return strconv.Itoa(resp.StatusCode)
	}
	var respErr *apierror.ResponseError
	if errors.As(err, &respErr) {
		return strconv.Itoa(respErr.StatusCode)
	}
	var expired *apierror.SessionExpiredError
	if errors.As(err, &expired) {
		return "401"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	return "network"
}
