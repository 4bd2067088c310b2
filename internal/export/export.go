// Package export renders tabular views as downloadable documents.
package export

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"hrms/internal/view/table"
)

type Format string

const (
	PDF  Format = "pdf"
	XLSX Format = "xlsx"
)

var ErrUnknownFormat = errors.New("unknown export format")

func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case PDF, XLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, raw)
	}
}

func (f Format) ContentType() string {
	if f == XLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/pdf"
}

// Filename is "<slug>-<date>.<ext>".
func (f Format) Filename(slug string, at time.Time) string {
	return fmt.Sprintf("%s-%s.%s", slug, at.Format("2006-01-02"), f)
}

// Column is one exported column. Text overrides the default cell text.
type Column struct {
	Key   string
	Label string
	Text  func(value any, row table.Row) string
}

// Sheet is a titled, already filtered and sorted row set.
type Sheet struct {
	Title       string
	Columns     []Column
	Rows        []table.Row
	GeneratedAt time.Time
}

func (c Column) text(row table.Row) string {
	v := row[c.Key]
	if c.Text != nil {
		return c.Text(v, row)
	}
	return Text(v)
}

// Text is the plain rendering of a raw cell value.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "Yes"
		}
		return "No"
	default:
		return fmt.Sprint(t)
	}
}

// Write renders s in the requested format.
func Write(w io.Writer, f Format, s Sheet) error {
	switch f {
	case PDF:
		return WritePDF(w, s)
	case XLSX:
		return WriteXLSX(w, s)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}
