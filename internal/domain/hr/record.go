package hr

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Record is one row of an HR collection keyed by its JSON field names.
// Values are restricted to JSON scalars: string, float64, bool or nil.
type Record map[string]any

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	DateTimeLayout,
	DateLayout,
}

func (r Record) ID(e Entity) string {
	return r.String(e.IDField())
}

func (r Record) String(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

func (r Record) Float(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// Bool treats the string "true" as true, matching how toggles round-trip through forms.
func (r Record) Bool(key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}

// Time parses dates and date-times; an empty or malformed value reports false.
func (r Record) Time(key string) (time.Time, bool) {
	return ParseTime(r.String(key))
}

func ParseTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge overlays patch on a copy of r.
func (r Record) Merge(patch Record) Record {
	out := r.Clone()
	for k, v := range patch {
		out[k] = v
	}
	return out
}

// FullName joins first and last name of an employee record.
func FullName(r Record) string {
	return strings.TrimSpace(r.String("firstName") + " " + r.String("lastName"))
}

// Join denormalises a display name from a referenced record.
type Join struct {
	Key     string
	Target  Entity
	Field   string
	Resolve func(Record) string
}

// Lookup fetches a single record; it returns ErrNotFound when the id is unknown.
type Lookup func(ctx context.Context, e Entity, id string) (Record, error)

// ResolveJoins refreshes every joined display name of rec in place.
// A missing reference clears the display name instead of failing the write.
func ResolveJoins(ctx context.Context, e Entity, rec Record, lookup Lookup) error {
	for _, join := range e.Joins() {
		ref := rec.String(join.Key)
		if ref == "" {
			delete(rec, join.Field)
			continue
		}
		target, err := lookup(ctx, join.Target, ref)
		if errors.Is(err, ErrNotFound) {
			delete(rec, join.Field)
			continue
		}
		if err != nil {
			return err
		}
		if join.Resolve != nil {
			rec[join.Field] = join.Resolve(target)
		} else {
			rec[join.Field] = target.String(join.Field)
		}
	}
	return nil
}

// Stamp formats t the way records store audit timestamps.
func Stamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
