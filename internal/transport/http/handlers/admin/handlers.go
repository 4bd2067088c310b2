package adminhandler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"hrms/internal/domain/hr"
	"hrms/internal/platform/logging"
	"hrms/internal/screen"
	"hrms/internal/transport/http/handlers"
	"hrms/internal/transport/http/views"
	"hrms/internal/view/editor"
	"hrms/internal/view/table"
)

// Handler serves the entity management screens. Reads go through Lister and
// writes through Mutator, which invalidates cached collections on success.
type Handler struct {
	Views    *views.Renderer
	Lister   screen.Lister
	Mutator  editor.Mutator
	PageSize int
}

func NewHandler(rv *views.Renderer, lister screen.Lister, mutator editor.Mutator, pageSize int) *Handler {
	return &Handler{Views: rv, Lister: lister, Mutator: mutator, PageSize: pageSize}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/admin/{entity}", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Post("/{id}", h.handleUpdate)
		r.Post("/{id}/delete", h.handleDelete)
	})
}

func (h *Handler) screen(w http.ResponseWriter, r *http.Request) (*screen.Entity, bool) {
	e, ok := hr.ParseEntity(chi.URLParam(r, "entity"))
	if !ok {
		handlers.NotFound(h.Views)(w, r)
		return nil, false
	}
	s, ok := screen.EntityFor(e)
	if !ok {
		handlers.NotFound(h.Views)(w, r)
		return nil, false
	}
	return s, true
}

// page is one render of an entity screen with at most one dialog open.
type page struct {
	screen  *screen.Entity
	state   table.State
	data    screen.EntityData
	form    *editor.Form
	confirm *views.ConfirmView
	flash   *views.Flash
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, p page) {
	s := p.screen
	listURL := views.StateURL(s.Path(), p.state)
	tv, _ := views.NewTableView(s.Path(), p.data.Rows, s.Options(h.PageSize), p.state, s.SearchPlaceholder)
	tv.Actions = true
	idField := s.Entity.IDField()
	for i := range tv.Rows {
		id := hr.Record(tv.Rows[i].Source).String(idField)
		tv.Rows[i].EditURL = withParam(listURL, "edit", id)
		tv.Rows[i].DeleteURL = withParam(listURL, "delete", id)
	}

	v := views.EntityView{
		Description: s.Description,
		Singular:    p.data.Schema.Singular,
		NewURL:      withParam(listURL, "new", "1"),
		Table:       tv,
		Confirm:     p.confirm,
	}
	if p.form != nil {
		action := s.Path()
		if p.form.Mode == editor.Editing {
			action = s.Path() + "/" + url.PathEscape(p.form.ID)
		}
		fv := views.NewFormView(p.data.Schema, p.form, views.StateURL(action, p.state), listURL)
		v.Form = &fv
	}

	pg := views.NewPage(w, r, s.Title, v)
	if p.flash != nil {
		pg.Flash = p.flash
	}
	h.Views.Render(w, r, status, "entity", pg)
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request, s *screen.Entity, st table.State) (screen.EntityData, bool) {
	data, err := s.Load(r.Context(), h.Lister)
	if err == nil {
		return data, true
	}
	if handlers.Intercept(w, r, err) {
		return data, false
	}
	logging.FromContext(r.Context()).WithError(err).WithField("entity", string(s.Entity)).Warn("screen load failed")
	failure := screen.NewFailure(s.Title, err, views.StateURL(s.Path(), st))
	h.Views.Render(w, r, http.StatusBadGateway, "entity", views.NewPage(w, r, s.Title, views.EntityView{Failure: &failure}))
	return data, false
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	s, ok := h.screen(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	st := views.StateFromQuery(q)
	data, ok := h.load(w, r, s, st)
	if !ok {
		return
	}

	p := page{screen: s, state: st, data: data}
	ed := editor.New(s.Entity, data.Schema, h.Mutator)
	switch {
	case q.Get("new") != "":
		p.form = ed.NewCreateForm()
	case q.Get("edit") != "":
		if rec, found := data.Record(q.Get("edit")); found {
			p.form = ed.NewEditForm(rec)
		}
	case q.Get("delete") != "":
		if _, found := data.Record(q.Get("delete")); found {
			p.confirm = &views.ConfirmView{
				Title:     "Are you sure?",
				Message:   ed.DeletePrompt(),
				Action:    views.StateURL(s.Path()+"/"+url.PathEscape(q.Get("delete"))+"/delete", st),
				CancelURL: views.StateURL(s.Path(), st),
			}
		}
	}
	h.render(w, r, http.StatusOK, p)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, "")
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, chi.URLParam(r, "id"))
}

// submit saves the posted form. Success redirects back to the list with a
// notice; any failure re-renders the screen with the dialog still open.
func (h *Handler) submit(w http.ResponseWriter, r *http.Request, id string) {
	s, ok := h.screen(w, r)
	if !ok {
		return
	}
	st := views.StateFromQuery(r.URL.Query())
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	data, ok := h.load(w, r, s, st)
	if !ok {
		return
	}

	ed := editor.New(s.Entity, data.Schema, h.Mutator)
	form := ed.NewCreateForm()
	if id != "" {
		rec, found := data.Record(id)
		if !found {
			views.SetFlash(w, string(editor.LevelError), "Failed to save "+strings.ToLower(data.Schema.Singular))
			http.Redirect(w, r, views.StateURL(s.Path(), st), http.StatusSeeOther)
			return
		}
		form = ed.NewEditForm(rec)
	}
	form.Values = data.Schema.Decode(r.PostForm)

	outcome, err := ed.Submit(r.Context(), form)
	if err != nil {
		if handlers.Intercept(w, r, err) {
			return
		}
		status := http.StatusBadGateway
		flash := &views.Flash{Level: string(editor.LevelError), Message: outcome.Notice.Message}
		if errors.Is(err, editor.ErrValidationFailed) {
			status = http.StatusUnprocessableEntity
			flash = nil
		}
		h.render(w, r, status, page{screen: s, state: st, data: data, form: form, flash: flash})
		return
	}

	logging.FromContext(r.Context()).WithFields(logrus.Fields{
		"entity": string(s.Entity),
		"id":     form.ID,
	}).Info("record saved")
	views.SetFlash(w, string(outcome.Notice.Level), outcome.Notice.Message)
	http.Redirect(w, r, views.StateURL(s.Path(), st), http.StatusSeeOther)
}

// handleDelete removes the record only when the confirmation was submitted.
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	s, ok := h.screen(w, r)
	if !ok {
		return
	}
	st := views.StateFromQuery(r.URL.Query())
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	ed := editor.New(s.Entity, s.Schema, h.Mutator)
	id := chi.URLParam(r, "id")
	outcome, err := ed.Delete(r.Context(), id, r.PostForm.Get("confirm") == "yes")
	if err != nil && handlers.Intercept(w, r, err) {
		return
	}
	if err == nil && !outcome.Notice.IsZero() {
		logging.FromContext(r.Context()).WithFields(logrus.Fields{
			"entity": string(s.Entity),
			"id":     id,
		}).Info("record deleted")
	}
	if !outcome.Notice.IsZero() {
		views.SetFlash(w, string(outcome.Notice.Level), outcome.Notice.Message)
	}
	http.Redirect(w, r, views.StateURL(s.Path(), st), http.StatusSeeOther)
}

func withParam(rawURL, key, value string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}
