package reportshandler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"hrms/internal/domain/reports"
	"hrms/internal/export"
	"hrms/internal/platform/logging"
	"hrms/internal/screen"
	"hrms/internal/transport/http/handlers"
	"hrms/internal/transport/http/views"
)

type Handler struct {
	Views    *views.Renderer
	Source   reports.Source
	PageSize int
	Now      func() time.Time
}

func NewHandler(rv *views.Renderer, src reports.Source, pageSize int) *Handler {
	return &Handler{Views: rv, Source: src, PageSize: pageSize, Now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/{kind}", h.handleReport)
		r.Get("/{kind}/export/{format}", h.handleExport)
	})
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) (*screen.Report, bool) {
	kind, ok := reports.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		handlers.NotFound(h.Views)(w, r)
		return nil, false
	}
	rep, ok := screen.ReportFor(kind)
	if !ok {
		handlers.NotFound(h.Views)(w, r)
		return nil, false
	}
	return rep, true
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.report(w, r)
	if !ok {
		return
	}
	st := views.StateFromQuery(r.URL.Query())

	data, err := rep.Load(r.Context(), h.Source)
	if err != nil {
		if handlers.Intercept(w, r, err) {
			return
		}
		logging.FromContext(r.Context()).WithError(err).WithField("report", string(rep.Kind)).Warn("report load failed")
		failure := screen.NewFailure(rep.Title, err, views.StateURL(rep.Path(), st))
		h.Views.Render(w, r, http.StatusBadGateway, "report", views.NewPage(w, r, rep.Title, views.ReportView{Failure: &failure}))
		return
	}

	tv, _ := views.NewTableView(rep.Path(), data.Rows, rep.Options(h.PageSize), st, rep.SearchPlaceholder)
	exportState := st
	exportState.Page = 1
	v := views.ReportView{
		Summary:    data.Summary,
		Cards:      data.Cards,
		Table:      tv,
		ExportPDF:  views.StateURL(rep.Path()+"/export/"+string(export.PDF), exportState),
		ExportXLSX: views.StateURL(rep.Path()+"/export/"+string(export.XLSX), exportState),
	}
	if len(data.Rows) == 0 && rep.AllClear != "" {
		v.AllClear = rep.AllClear
	}
	h.Views.Render(w, r, http.StatusOK, "report", views.NewPage(w, r, rep.Title, v))
}

// handleExport downloads the report under the current search and sort.
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.report(w, r)
	if !ok {
		return
	}
	format, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		handlers.NotFound(h.Views)(w, r)
		return
	}

	data, err := rep.Load(r.Context(), h.Source)
	if err != nil {
		if handlers.Intercept(w, r, err) {
			return
		}
		logging.FromContext(r.Context()).WithError(err).WithField("report", string(rep.Kind)).Warn("report export load failed")
		views.SetFlash(w, "error", screen.MessageLoadFailed)
		http.Redirect(w, r, rep.Path(), http.StatusSeeOther)
		return
	}

	now := h.Now()
	sheet := rep.Sheet(data.Rows, views.StateFromQuery(r.URL.Query()), now)
	var buf bytes.Buffer
	if err := export.Write(&buf, format, sheet); err != nil {
		logging.FromContext(r.Context()).WithError(err).WithFields(logrus.Fields{
			"report": string(rep.Kind),
			"format": string(format),
		}).Error("report export failed")
		http.Error(w, "Export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+format.Filename(string(rep.Kind), now)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
