// Package route tracks the console's current location and lets the session
// client force navigation (login, access denied).
package route

import (
	"strings"
	"sync"
)

// Default locations.
const (
	Home         = "/"
	Login        = "/login"
	AccessDenied = "/acesso-negado"
)

// DefaultPublic are the auth-flow routes reachable without a session.
var DefaultPublic = []string{Login, "/cadastro", "/recuperar-senha", "/redefinir-senha"}

// Router is a goroutine-safe navigator. Navigation requests coming from request
// goroutines are published on Changes for the UI loop to pick up.
type Router struct {
	mu      sync.RWMutex
	current string
	public  map[string]bool
	changes chan string
}

// NewRouter creates a Router positioned at initial. Empty public uses DefaultPublic.
func NewRouter(initial string, public []string) *Router {
	if len(public) == 0 {
		public = DefaultPublic
	}
	set := make(map[string]bool, len(public))
	for _, p := range public {
		set[normalize(p)] = true
	}
	if initial == "" {
		initial = Home
	}
	return &Router{
		current: normalize(initial),
		public:  set,
		changes: make(chan string, 8),
	}
}

// Location returns the current path.
func (r *Router) Location() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Navigate moves to path. Navigating to the current location is a no-op.
func (r *Router) Navigate(path string) {
	path = normalize(path)
	r.mu.Lock()
	if r.current == path {
		r.mu.Unlock()
		return
	}
	r.current = path
	r.mu.Unlock()

	select {
	case r.changes <- path:
	default:
		// UI is behind; it still reads the latest location through Location.
	}
}

// IsPublic reports whether path is one of the public auth-flow routes.
func (r *Router) IsPublic(path string) bool {
	return r.public[normalize(path)]
}

// Changes delivers every location the router moved to.
func (r *Router) Changes() <-chan string {
	return r.changes
}

func normalize(path string) string {
	if path == "" {
		return Home
	}
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}
