package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/waabox/clubinho/internal/apierror"
	"github.com/waabox/clubinho/internal/auth"
	"github.com/waabox/clubinho/internal/clubinho"
	"github.com/waabox/clubinho/internal/config"
	"github.com/waabox/clubinho/internal/domain"
	"github.com/waabox/clubinho/internal/events"
	"github.com/waabox/clubinho/internal/metrics"
	"github.com/waabox/clubinho/internal/route"
	"github.com/waabox/clubinho/internal/session"
)

// App is the wired client stack shared by every command.
type App struct {
	Config  config.Config
	Store   auth.CredentialStore
	Session *session.Manager
	Client  *session.Client
	API     *clubinho.Adapter
	Bus     *events.Bus
	Router  *route.Router

	metrics *metrics.Server
}

// Build wires config, credential store, session, event bus and router into
// an App. configPath is where the config store persists tokens.
func Build(cfg config.Config, configPath string, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	store, err := auth.NewStore(&cfg, configPath)
	if err != nil {
		return nil, fmt.Errorf("opening credential store: %w", err)
	}

	baseURL := cfg.BaseURLOrDefault()
	mgr, err := session.NewManager(auth.NewExchanger(baseURL, cfg.TimeoutOrDefault()), store, logger)
	if err != nil {
		store.Close()
		return nil, err
	}

	routes := apierror.Routes{Login: cfg.Routes.Login, AccessDenied: cfg.Routes.AccessDenied}
	classifier := apierror.NewClassifier(routes)
	router := route.NewRouter(route.Home, cfg.Routes.Public)
	bus := events.NewBus()

	client := session.NewClient(session.Options{
		BaseURL:                 baseURL,
		HTTPClient:              &http.Client{Timeout: cfg.TimeoutOrDefault()},
		Session:                 mgr,
		Bus:                     bus,
		Navigator:               router,
		Classifier:              classifier,
		ToastDurations:          toastDurations(cfg),
		PermissionRedirectDelay: cfg.PermissionRedirectDelay(),
		Logger:                  logger,
	})

	return &App{
		Config:  cfg,
		Store:   store,
		Session: mgr,
		Client:  client,
		API:     clubinho.NewAdapter(client),
		Bus:     bus,
		Router:  router,
	}, nil
}

// StartMetrics serves /metrics on addr in the background. Empty addr is a no-op.
func (a *App) StartMetrics(addr string) {
	if addr == "" {
		return
	}
	a.metrics = metrics.NewServer(addr)
	go func() {
		if err := a.metrics.Start(); err != nil {
			slog.Error("Metrics server failed", "addr", addr, "error", err)
		}
	}()
	slog.Debug("Metrics server listening", "addr", addr)
}

// Close releases the credential store and stops the metrics server.
func (a *App) Close() error {
	if a.metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.metrics.Stop(ctx); err != nil {
			slog.Warn("Stopping metrics server", "error", err)
		}
	}
	return a.Store.Close()
}

func toastDurations(cfg config.Config) map[domain.ToastVariant]time.Duration {
	out := make(map[domain.ToastVariant]time.Duration)
	for name, d := range cfg.ToastDurations() {
		out[domain.ToastVariant(name)] = d
	}
	return out
}
