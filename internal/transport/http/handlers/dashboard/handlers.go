package dashboardhandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/reports"
	"hrms/internal/platform/logging"
	"hrms/internal/screen"
	"hrms/internal/session"
	"hrms/internal/transport/http/handlers"
	"hrms/internal/transport/http/views"
)

// Overviewer computes the dashboard headline figures.
type Overviewer interface {
	Overview(ctx context.Context) (reports.Overview, error)
}

type Handler struct {
	Views    *views.Renderer
	Overview Overviewer
}

func NewHandler(rv *views.Renderer, overview Overviewer) *Handler {
	return &Handler{Views: rv, Overview: overview}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get(session.DashboardPath, h.handleDashboard)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	v := views.DashboardView{}
	if p := session.FromContext(r.Context()).Current(); p != nil {
		v.FirstName = p.FirstName
	}

	status := http.StatusOK
	overview, err := h.Overview.Overview(r.Context())
	if err != nil {
		if handlers.Intercept(w, r, err) {
			return
		}
		logging.FromContext(r.Context()).WithError(err).Warn("dashboard load failed")
		failure := screen.NewFailure("Dashboard", err, session.DashboardPath)
		v.Failure = &failure
		status = http.StatusBadGateway
	} else {
		v.Stats = overview.Stats
		v.Activity = overview.Activity
	}
	h.Views.Render(w, r, status, "dashboard", views.NewPage(w, r, "Dashboard", v))
}
