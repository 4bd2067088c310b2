package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/hr"
	"hrms/internal/domain/reports"
	"hrms/internal/platform/config"
	"hrms/internal/platform/crypto"
	"hrms/internal/platform/metrics"
	"hrms/internal/session"
	"hrms/internal/store/instrumented"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/handlers"
	adminhandler "hrms/internal/transport/http/handlers/admin"
	authhandler "hrms/internal/transport/http/handlers/auth"
	dashboardhandler "hrms/internal/transport/http/handlers/dashboard"
	reportshandler "hrms/internal/transport/http/handlers/reports"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/views"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	Config  config.Config
	Logger  *logrus.Logger
	Metrics *metrics.Collector
	Backend *Backend
	Router  http.Handler
}

// New opens the configured backend and builds the router.
func New(ctx context.Context, cfg config.Config, logger *logrus.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	codec, err := newCodec(cfg, logger)
	if err != nil {
		return nil, err
	}
	rv, err := views.New()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	backend, err := OpenBackend(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	m := metrics.New()
	router := NewRouter(Deps{
		Config:  cfg,
		Logger:  logger,
		Metrics: m,
		Backend: backend,
		Codec:   codec,
		Views:   rv,
	})
	return &App{Config: cfg, Logger: logger, Metrics: m, Backend: backend, Router: router}, nil
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	defer a.Backend.Close()

	srv := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		a.Logger.WithFields(logrus.Fields{"addr": a.Config.Addr, "backend": a.Backend.Name}).Info("HRMS console listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newCodec builds the session cookie codec. Outside production a missing
// secret is replaced by a random one, so sessions do not survive a restart.
func newCodec(cfg config.Config, logger *logrus.Logger) (*session.Codec, error) {
	secret := cfg.SessionSecret
	if secret == "" {
		logger.Warn("SESSION_SECRET not set, using an ephemeral secret")
		secret = uuid.NewString() + uuid.NewString()
	}
	key := cfg.SessionSealKey
	if key == "" {
		key = crypto.DeriveKey(secret)
	}
	sealer, err := crypto.New(key)
	if err != nil {
		return nil, err
	}
	return session.NewCodec(secret, sealer, cfg.SessionTTL), nil
}

type Deps struct {
	Config  config.Config
	Logger  *logrus.Logger
	Metrics *metrics.Collector
	Backend *Backend
	Codec   *session.Codec
	Views   *views.Renderer
}

// NewRouter mounts the console pages behind the middleware stack.
func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	data := hr.NewService(instrumented.New(d.Backend.Store, d.Metrics), d.Backend.Bus, cfg.DataTimeout)
	deriver := reports.NewDeriver(data)
	var source reports.Source = deriver
	if d.Backend.Reports != nil {
		source = d.Backend.Reports
	}
	var demo []auth.DemoAccount
	if d.Backend.Name != config.BackendREST {
		demo = auth.DemoAccounts
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(d.Logger, d.Metrics))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Session(middleware.SessionConfig{
		Codec:         d.Codec,
		Authenticator: d.Backend.Authenticator,
		SecureCookies: cfg.CookieSecure,
		TTL:           cfg.SessionTTL,
	}))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute, middleware.WithMetrics(d.Metrics)))
	router.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, time.Minute, d.Metrics))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		api.Respond(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := d.Backend.Ready(ctx); err != nil {
			api.Problem(w, r, http.StatusServiceUnavailable, "not_ready", "data backend not ready")
			return
		}
		api.Respond(w, r, http.StatusOK, map[string]string{"status": "ready", "backend": d.Backend.Name})
	})

	if cfg.MetricsEnabled {
		router.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	authhandler.NewHandler(d.Views, d.Backend.Registrar, demo).RegisterRoutes(router)
	router.Get("/access-denied", handlers.Denied(d.Views))

	wait := handlers.Wait(d.Views)
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuthenticated(wait))

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, session.DashboardPath, http.StatusSeeOther)
		})
		dashboardhandler.NewHandler(d.Views, deriver).RegisterRoutes(r)
		reportshandler.NewHandler(d.Views, source, cfg.PageSize).RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(wait))
			adminhandler.NewHandler(d.Views, data, data, cfg.PageSize).RegisterRoutes(r)
		})
	})

	router.NotFound(handlers.NotFound(d.Views))
	return router
}
