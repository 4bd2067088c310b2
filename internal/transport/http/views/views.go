// Package views renders the console's server-side HTML.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"hrms/internal/domain/auth"
	"hrms/internal/platform/logging"
	"hrms/internal/session"
)

//go:embed templates
var templateFS embed.FS

// Page is the data every page template receives.
type Page struct {
	Title   string
	User    *auth.Principal
	Nav     []NavGroup
	Flash   *Flash
	Content any
}

// NewPage fills the chrome of a page for the request's principal and takes
// any pending flash notice.
func NewPage(w http.ResponseWriter, r *http.Request, title string, content any) Page {
	user := session.FromContext(r.Context()).Current()
	return Page{
		Title:   title,
		User:    user,
		Nav:     Navigation(user, r.URL.Path),
		Flash:   TakeFlash(w, r),
		Content: content,
	}
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"when": func(t time.Time) string { return t.Format("Jan 2, 2006") },
}

func New() (*Renderer, error) {
	names, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	rv := &Renderer{pages: make(map[string]*template.Template, len(names))}
	for _, name := range names {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/partials/*.html",
			name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		rv.pages[strings.TrimSuffix(path.Base(name), ".html")] = tmpl
	}
	return rv, nil
}

// Render writes page name with status. The body is buffered so a template
// error still produces a clean 500.
func (rv *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, name string, page Page) {
	tmpl, ok := rv.pages[name]
	if !ok {
		logging.FromContext(r.Context()).WithField("page", name).Error("unknown page template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		logging.FromContext(r.Context()).WithError(err).WithField("page", name).Error("render failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Has reports whether a page template exists.
func (rv *Renderer) Has(name string) bool {
	_, ok := rv.pages[name]
	return ok
}
