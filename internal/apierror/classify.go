package apierror

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/waabox/clubinho/internal/domain"
)

// User-facing fallback messages.
const (
	NetworkMessage            = "Erro de conexão. Verifique sua internet e tente novamente."
	InternalServerMessage     = "Erro interno do servidor. Tente novamente mais tarde."
	ServiceUnavailableMessage = "Serviço temporariamente indisponível. Tente novamente em instantes."
	GenericMessage            = "Ocorreu um erro inesperado. Tente novamente."
	SessionExpiredMessage     = "Sua sessão expirou. Faça login novamente."
)

// Routes are the navigation targets attached to classified errors.
type Routes struct {
	Login        string
	AccessDenied string
}

// DefaultRoutes matches the routes served by the admin front end.
var DefaultRoutes = Routes{
	Login:        "/login",
	AccessDenied: "/acesso-negado",
}

// Classifier maps failures onto domain.ClassifiedError. It holds no mutable
// state and is safe for concurrent use.
type Classifier struct {
	routes Routes
}

// NewClassifier creates a Classifier. Empty routes fall back to DefaultRoutes.
func NewClassifier(routes Routes) *Classifier {
	if routes.Login == "" {
		routes.Login = DefaultRoutes.Login
	}
	if routes.AccessDenied == "" {
		routes.AccessDenied = DefaultRoutes.AccessDenied
	}
	return &Classifier{routes: routes}
}

// Routes returns the navigation targets this classifier attaches.
func (c *Classifier) Routes() Routes {
	return c.routes
}

var defaultClassifier = NewClassifier(DefaultRoutes)

// Classify classifies err with DefaultRoutes.
func Classify(err error) (domain.ClassifiedError, bool) {
	return defaultClassifier.Classify(err)
}

// Classify returns the classified form of err. It reports false for a nil
// error and for cancellations, which are never surfaced to the user.
func (c *Classifier) Classify(err error) (domain.ClassifiedError, bool) {
	if err == nil || errors.Is(err, context.Canceled) {
		return domain.ClassifiedError{}, false
	}

	var expired *SessionExpiredError
	if errors.As(err, &expired) {
		out := domain.ClassifiedError{
			Category:   domain.CategoryAuth,
			Code:       CodeRefreshTokenInvalid.String(),
			Message:    SessionExpiredMessage,
			HTTPStatus: http.StatusUnauthorized,
		}
		c.applyRedirect(&out, CodeRefreshTokenInvalid)
		return out, true
	}

	var respErr *ResponseError
	if !errors.As(err, &respErr) {
		// No response at all: refused, reset, DNS, timeout.
		return domain.ClassifiedError{
			Category: domain.CategoryNetwork,
			Message:  NetworkMessage,
		}, true
	}

	out := domain.ClassifiedError{
		Category:   domain.CategoryUnknown,
		HTTPStatus: respErr.StatusCode,
	}
	body, ok := ParseBody(respErr.Body)
	if !ok {
		out.Message = statusMessage(respErr)
		return out, true
	}

	out.Code = body.Error.Code
	out.Message = body.Error.Message
	out.Field = body.Error.Field()
	if out.Message == "" {
		out.Message = statusMessage(respErr)
	}
	if code, known := Lookup(body.Error.Code); known {
		out.Category = CategoryOf(code)
		c.applyRedirect(&out, code)
	}
	return out, true
}

func (c *Classifier) applyRedirect(out *domain.ClassifiedError, code Code) {
	switch out.Category {
	case domain.CategoryAuth:
		if forcesLogout(code) {
			out.RequiresLogout = true
			out.RequiresRedirect = true
			out.RedirectTo = c.routes.Login
		}
	case domain.CategoryPermission:
		out.RequiresRedirect = true
		out.RedirectTo = c.routes.AccessDenied
	}
}

func statusMessage(e *ResponseError) string {
	switch e.StatusCode {
	case http.StatusInternalServerError:
		return InternalServerMessage
	case http.StatusServiceUnavailable:
		return ServiceUnavailableMessage
	}
	if text := strings.TrimSpace(strings.TrimPrefix(e.Status, strconv.Itoa(e.StatusCode))); text != "" {
		return text
	}
	if text := http.StatusText(e.StatusCode); text != "" {
		return text
	}
	return GenericMessage
}

// Variant picks the toast variant for a classified error.
func Variant(ce domain.ClassifiedError) domain.ToastVariant {
	switch {
	case ce.Category == domain.CategoryValidation:
		return domain.ToastWarning
	case ce.Category.ResourceLike():
		switch ce.HTTPStatus {
		case http.StatusConflict:
			return domain.ToastWarning
		case http.StatusNotFound:
			return domain.ToastInfo
		default:
			return domain.ToastError
		}
	default:
		return domain.ToastError
	}
}
