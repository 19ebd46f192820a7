package session

import (
	"log/slog"
	"time"

	"github.com/waabox/clubinho/internal/apierror"
	"github.com/waabox/clubinho/internal/domain"
	"github.com/waabox/clubinho/internal/metrics"
)

// handleFailure classifies a terminal failure and applies its side effects.
// Cancelled calls are not classified.
func (c *Client) handleFailure(cl *call, err error, log *slog.Logger) {
	ce, ok := c.classifier.Classify(err)
	if !ok {
		log.Debug("request cancelled")
		return
	}
	metrics.ClassifiedErrorsTotal.WithLabelValues(string(ce.Category)).Inc()
	log.Debug("request failed",
		"category", string(ce.Category),
		"code", ce.Code,
		"status", ce.HTTPStatus,
		"error", err,
	)

	if ce.RequiresLogout {
		if invErr := c.session.Invalidate(); invErr != nil {
			log.Warn("could not clear stored credentials", "error", invErr)
		}
	}
	if cl.req.SkipGlobalErrorHandling {
		return
	}

	if c.bus != nil {
		variant := apierror.Variant(ce)
		c.bus.PublishAPIError(ce)
		c.bus.PublishToast(domain.Toast{
			Message:          ce.Message,
			Variant:          variant,
			AutoHideDuration: c.toastDuration(variant),
		})
	}

	switch {
	case ce.RequiresLogout:
		c.redirectToLogin(ce.RedirectTo)
	case ce.Category == domain.CategoryPermission && ce.RequiresRedirect:
		c.redirectLater(ce.RedirectTo)
	}
}

// redirectToLogin navigates to the login route unless the user is already on
// a public auth-flow page.
func (c *Client) redirectToLogin(to string) {
	if c.nav == nil || to == "" {
		return
	}
	if c.nav.IsPublic(c.nav.Location()) {
		return
	}
	c.nav.Navigate(to)
}

func (c *Client) redirectLater(to string) {
	if c.nav == nil || to == "" {
		return
	}
	nav := c.nav
	time.AfterFunc(c.redirectDelay, func() {
		nav.Navigate(to)
	})
}

func (c *Client) toastDuration(v domain.ToastVariant) time.Duration {
	if d, ok := c.toastDurations[v]; ok && d > 0 {
		return d
	}
	return defaultToastDuration
}
