package table

import (
	"fmt"
	"html/template"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Row is one record of a tabular view keyed by column key.
type Row map[string]any

// Column describes one rendered column. Render overrides the cell output and
// receives the raw value plus the whole row.
type Column struct {
	Key      string
	Label    string
	Sortable bool
	Render   func(value any, row Row) template.HTML
}

// Direction is the sort order of a column.
type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// ParseDirection reads "desc" in any case as Desc and anything else as Asc.
func ParseDirection(raw string) Direction {
	if strings.EqualFold(raw, "desc") {
		return Desc
	}
	return Asc
}

// State is the transient view state of one table.
type State struct {
	Query   string
	SortKey string
	Dir     Direction
	Page    int
}

const (
	DefaultPageSize     = 10
	DefaultEmptyMessage = "No data available"
	MaxPageButtons      = 5
)

// Options configures a View. SearchKeys nil means every column key is searchable.
type Options struct {
	Columns      []Column
	SearchKeys   []string
	PageSize     int
	EmptyMessage string
}

// Result is the outcome of applying a State to a row set.
type Result struct {
	Rows       []Row
	Total      int
	Filtered   int
	Page       int
	PageSize   int
	TotalPages int
	From       int
	To         int
}

// SetQuery changes the search text and jumps back to the first page.
func (s *State) SetQuery(q string) {
	s.Query = q
	s.Page = 1
}

// ToggleSort sorts by key ascending, or flips the direction when key is already active.
func (s *State) ToggleSort(key string) {
	if s.SortKey == key {
		if s.Dir == Asc {
			s.Dir = Desc
		} else {
			s.Dir = Asc
		}
		return
	}
	s.SortKey = key
	s.Dir = Asc
}

// Apply runs filter, then stable sort, then pagination. The input is not mutated.
func Apply(rows []Row, opts Options, st State) Result {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	page := st.Page
	if page < 1 {
		page = 1
	}

	filtered := Filter(rows, st.Query, searchKeys(opts))
	Sort(filtered, st.SortKey, st.Dir)

	totalPages := int(math.Ceil(float64(len(filtered)) / float64(pageSize)))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	res := Result{
		Rows:       filtered[start:end],
		Total:      len(rows),
		Filtered:   len(filtered),
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
	if end > start {
		res.From = start + 1
		res.To = end
	}
	return res
}

func searchKeys(opts Options) []string {
	if opts.SearchKeys != nil {
		return opts.SearchKeys
	}
	keys := make([]string, 0, len(opts.Columns))
	for _, c := range opts.Columns {
		keys = append(keys, c.Key)
	}
	return keys
}

// Filter keeps rows where any searchable string or number field contains query,
// case-insensitively. Only an empty query keeps everything; whitespace is
// matched like any other character.
func Filter(rows []Row, query string, keys []string) []Row {
	out := make([]Row, 0, len(rows))
	q := strings.ToLower(query)
	if q == "" {
		return append(out, rows...)
	}
	for _, row := range rows {
		for _, key := range keys {
			text, ok := searchable(row[key])
			if ok && strings.Contains(strings.ToLower(text), q) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

func searchable(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	default:
		return "", false
	}
}

// Sort orders rows in place by key. Missing values sit last in either direction.
func Sort(rows []Row, key string, dir Direction) {
	if key == "" {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, aok := present(rows[i][key])
		b, bok := present(rows[j][key])
		switch {
		case !aok && !bok:
			return false
		case !aok:
			return false
		case !bok:
			return true
		}
		c := compare(a, b)
		if dir == Desc {
			return c > 0
		}
		return c < 0
	})
}

func present(v any) (any, bool) {
	if v == nil {
		return nil, false
	}
	return v, true
}

func compare(a, b any) int {
	if af, ok := number(a); ok {
		if bf, ok := number(b); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ab == bb:
				return 0
			case !ab:
				return -1
			default:
				return 1
			}
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func number(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	default:
		return 0, false
	}
}

// PageWindow returns at most MaxPageButtons page numbers centred on current
// where possible and clamped to [1, totalPages].
func PageWindow(current, totalPages int) []int {
	if totalPages <= 0 {
		return nil
	}
	n := MaxPageButtons
	if totalPages < n {
		n = totalPages
	}
	start := current - MaxPageButtons/2
	if start > totalPages-n+1 {
		start = totalPages - n + 1
	}
	if start < 1 {
		start = 1
	}
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, start+i)
	}
	return out
}

// Summary renders "Showing {from} to {to} of {total} entries" over the filtered set.
func (r Result) Summary() string {
	return fmt.Sprintf("Showing %d to %d of %d entries", r.From, r.To, r.Filtered)
}

// HasPrevious reports whether a page precedes the current one.
func (r Result) HasPrevious() bool {
	return r.Page > 1
}

// HasNext reports whether a page follows the current one.
func (r Result) HasNext() bool {
	return r.Page < r.TotalPages
}

// Paginated reports whether pagination controls should be shown.
func (r Result) Paginated() bool {
	return r.TotalPages > 1
}

// Window lists the page numbers to show around the current page.
func (r Result) Window() []int {
	return PageWindow(r.Page, r.TotalPages)
}
