package views

import (
	"html/template"
	"net/url"
	"strconv"

	"hrms/internal/screen"
	"hrms/internal/view/table"
)

// StateFromQuery reads q, sort, dir and page. Missing or bad values keep the defaults.
func StateFromQuery(q url.Values) table.State {
	st := table.State{
		Query:   q.Get("q"),
		SortKey: q.Get("sort"),
		Dir:     table.ParseDirection(q.Get("dir")),
		Page:    1,
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		st.Page = page
	}
	return st
}

// StateURL encodes st onto path. Empty parts are omitted.
func StateURL(path string, st table.State) string {
	q := url.Values{}
	if st.Query != "" {
		q.Set("q", st.Query)
	}
	if st.SortKey != "" {
		q.Set("sort", st.SortKey)
		q.Set("dir", st.Dir.String())
	}
	if st.Page > 1 {
		q.Set("page", strconv.Itoa(st.Page))
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

type Header struct {
	Label    string
	Sortable bool
	SortURL  string
	Active   bool
	Dir      string
}

type RowView struct {
	Source    table.Row
	Cells     []template.HTML
	EditURL   string
	DeleteURL string
}

type PageLink struct {
	Number  int
	URL     string
	Current bool
}

// TableView is a fully resolved table ready for the table partial.
type TableView struct {
	Path              string
	Query             string
	SortKey           string
	Dir               string
	Searchable        bool
	SearchPlaceholder string
	Headers           []Header
	Rows              []RowView
	Actions           bool
	EmptyMessage      string
	Summary           string
	Paginated         bool
	Pages             []PageLink
	PrevURL           string
	NextURL           string
}

// Span is the column count the empty placeholder row covers.
func (t TableView) Span() int {
	if t.Actions {
		return len(t.Headers) + 1
	}
	return len(t.Headers)
}

// NewTableView applies st to rows and resolves every link the table needs.
func NewTableView(path string, rows []table.Row, opts table.Options, st table.State, placeholder string) (TableView, table.Result) {
	res := table.Apply(rows, opts, st)
	tv := TableView{
		Path:              path,
		Query:             st.Query,
		SortKey:           st.SortKey,
		Dir:               st.Dir.String(),
		Searchable:        searchable(opts),
		SearchPlaceholder: placeholder,
		EmptyMessage:      opts.EmptyMessage,
		Summary:           res.Summary(),
		Paginated:         res.Paginated(),
	}
	if tv.EmptyMessage == "" {
		tv.EmptyMessage = table.DefaultEmptyMessage
	}

	for _, c := range opts.Columns {
		h := Header{Label: c.Label, Sortable: c.Sortable}
		if c.Sortable {
			next := st
			next.ToggleSort(c.Key)
			h.SortURL = StateURL(path, next)
			if st.SortKey == c.Key {
				h.Active = true
				h.Dir = st.Dir.String()
			}
		}
		tv.Headers = append(tv.Headers, h)
	}

	for _, row := range res.Rows {
		cells := make([]template.HTML, 0, len(opts.Columns))
		for _, c := range opts.Columns {
			cells = append(cells, screen.Cell(c, row))
		}
		tv.Rows = append(tv.Rows, RowView{Source: row, Cells: cells})
	}

	at := func(page int) string {
		next := st
		next.Page = page
		return StateURL(path, next)
	}
	for _, n := range res.Window() {
		tv.Pages = append(tv.Pages, PageLink{Number: n, URL: at(n), Current: n == res.Page})
	}
	if res.HasPrevious() {
		tv.PrevURL = at(res.Page - 1)
	}
	if res.HasNext() {
		tv.NextURL = at(res.Page + 1)
	}
	return tv, res
}

func searchable(opts table.Options) bool {
	if opts.SearchKeys != nil {
		return len(opts.SearchKeys) > 0
	}
	return len(opts.Columns) > 0
}
