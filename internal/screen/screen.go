// Package screen declares the entity management and report screens and loads
// the data each one renders.
package screen

import (
	"context"
	"errors"
	"html/template"
	"sync"

	"golang.org/x/sync/errgroup"

	"hrms/internal/domain/hr"
	"hrms/internal/export"
	"hrms/internal/view/format"
	"hrms/internal/view/table"
)

// Lister is the read side of the data layer.
type Lister interface {
	List(ctx context.Context, e hr.Entity) ([]hr.Record, error)
}

// col declares a column once for both the HTML table and document export.
type col struct {
	key      string
	label    string
	sortable bool
	text     func(v any, r table.Row) string
	html     func(v any, r table.Row) template.HTML
}

func (c col) column() table.Column {
	out := table.Column{Key: c.key, Label: c.label, Sortable: c.sortable}
	switch {
	case c.html != nil:
		out.Render = c.html
	case c.text != nil:
		text := c.text
		out.Render = func(v any, r table.Row) template.HTML {
			return template.HTML(template.HTMLEscapeString(text(v, r)))
		}
	}
	return out
}

func (c col) export() export.Column {
	return export.Column{Key: c.key, Label: c.label, Text: c.text}
}

func columns(cols []col) []table.Column {
	out := make([]table.Column, 0, len(cols))
	for _, c := range cols {
		out = append(out, c.column())
	}
	return out
}

func exportColumns(cols []col) []export.Column {
	out := make([]export.Column, 0, len(cols))
	for _, c := range cols {
		out = append(out, c.export())
	}
	return out
}

// Cell renders one cell, escaping raw values that have no renderer.
func Cell(c table.Column, row table.Row) template.HTML {
	v := row[c.Key]
	if c.Render != nil {
		return c.Render(v, row)
	}
	return template.HTML(template.HTMLEscapeString(export.Text(v)))
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func num(v any) float64 {
	f, _ := v.(float64)
	return f
}

func dateText(v any, _ table.Row) string {
	return format.Date(str(v))
}

func currencyText(v any, _ table.Row) string {
	return format.Currency(num(v))
}

func fallback(text string) func(any, table.Row) string {
	return func(v any, _ table.Row) string {
		if s := str(v); s != "" {
			return s
		}
		return text
	}
}

// fetch lists every entity concurrently. The first failure cancels the rest
// and is returned alone; no partial result is ever returned.
func fetch(ctx context.Context, src Lister, entities ...hr.Entity) (map[hr.Entity][]hr.Record, error) {
	g, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex
	out := make(map[hr.Entity][]hr.Record, len(entities))
	for _, e := range entities {
		e := e
		g.Go(func() error {
			rows, err := src.List(gctx, e)
			if err != nil {
				return err
			}
			mu.Lock()
			out[e] = rows
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Failure is the explicit error state rendered in place of a screen whose
// initial load failed.
type Failure struct {
	Title    string
	Message  string
	RetryURL string
}

const (
	MessageLoadFailed = "Failed to load data. Please try again."
	MessageTimedOut   = "The data source did not respond in time. Please try again."
)

func NewFailure(title string, err error, retryURL string) Failure {
	msg := MessageLoadFailed
	if errors.Is(err, context.DeadlineExceeded) {
		msg = MessageTimedOut
	}
	return Failure{Title: title, Message: msg, RetryURL: retryURL}
}
