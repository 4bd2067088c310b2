package editor

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"hrms/internal/domain/hr"
)

var ErrValidationFailed = errors.New("validation failed")

type Option struct {
	Value string
	Label string
}

// Field describes how one record attribute is edited. Rules holds extra
// validator tags such as "email" or "oneof=male female".
type Field struct {
	Name        string
	Label       string
	Kind        Kind
	Required    bool
	Options     []Option
	Placeholder string
	Rules       string
}

// SelectPlaceholder is the prompt shown on an empty select.
func (f Field) SelectPlaceholder() string {
	if f.Placeholder != "" {
		return f.Placeholder
	}
	return "Select " + f.Label
}

// Range requires the date in From to be on or before the date in To when both are set.
type Range struct {
	From string
	To   string
}

// Schema is the editable shape of one entity.
type Schema struct {
	Singular string
	Fields   []Field
	Ranges   []Range
}

func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Values is typed form state: string for text-like kinds, float64 for numbers,
// bool for toggles.
type Values map[string]any

func (v Values) String(name string) string {
	switch t := v[name].(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

// Blank is the state of a new form: toggles on, everything else empty.
func (s Schema) Blank() Values {
	out := make(Values, len(s.Fields))
	for _, f := range s.Fields {
		if f.Kind == Toggle {
			out[f.Name] = true
			continue
		}
		out[f.Name] = ""
	}
	return out
}

// FromRecord seeds a form from rec. Missing attributes take the kind's empty value.
func (s Schema) FromRecord(rec hr.Record) Values {
	out := make(Values, len(s.Fields))
	for _, f := range s.Fields {
		raw, ok := rec[f.Name]
		if !ok || raw == nil {
			out[f.Name] = zero(f.Kind)
			continue
		}
		switch f.Kind {
		case Toggle:
			out[f.Name] = toggle(raw)
		case Number:
			n, _ := rec.Float(f.Name)
			out[f.Name] = n
		case DateTime:
			out[f.Name] = TruncateDateTime(rec.String(f.Name))
		default:
			out[f.Name] = rec.String(f.Name)
		}
	}
	return out
}

// Decode reads submitted form values. Unparseable numbers become 0 and an
// absent toggle is off.
func (s Schema) Decode(form url.Values) Values {
	out := make(Values, len(s.Fields))
	for _, f := range s.Fields {
		raw := form.Get(f.Name)
		switch f.Kind {
		case Toggle:
			out[f.Name] = toggle(raw)
		case Number:
			n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				n = 0
			}
			out[f.Name] = n
		default:
			out[f.Name] = raw
		}
	}
	return out
}

func toggle(raw any) bool {
	switch t := raw.(type) {
	case bool:
		return t
	case string:
		return t == "true" || t == "on"
	default:
		return false
	}
}

// TruncateDateTime keeps the first 16 characters of a stored timestamp, which is
// the minute precision of a datetime-local input.
func TruncateDateTime(raw string) string {
	if len(raw) > 16 {
		return raw[:16]
	}
	return raw
}

// Issue is one rejected field.
type Issue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError lists every rejected field. It matches ErrValidationFailed.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, is.Field+": "+is.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrValidationFailed, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// Reasons indexes issues by field name for rendering next to inputs.
func (e *ValidationError) Reasons() map[string]string {
	out := make(map[string]string, len(e.Issues))
	for _, is := range e.Issues {
		if _, seen := out[is.Field]; !seen {
			out[is.Field] = is.Reason
		}
	}
	return out
}

var validate = validator.New()

// Validate checks v against the schema: unknown keys, value types, required
// fields, select options and each field's extra rules.
func (s Schema) Validate(v Values) error {
	var issues []Issue
	add := func(field, reason string) {
		issues = append(issues, Issue{Field: field, Reason: reason})
	}

	for name := range v {
		if _, ok := s.Field(name); !ok {
			add(name, "is not an editable field")
		}
	}

	for _, f := range s.Fields {
		value, present := v[f.Name]
		if !present {
			value = zero(f.Kind)
		}
		if !typed(f.Kind, value) {
			add(f.Name, fmt.Sprintf("must be a %s value", f.Kind))
			continue
		}
		// A decoded number is always present, 0 included.
		if f.Required && f.Kind != Toggle && f.Kind != Number {
			if err := validate.Var(value, "required"); err != nil {
				add(f.Name, f.Label+" is required")
				continue
			}
		}
		text, isText := value.(string)
		if isText && text == "" {
			continue
		}
		if f.Kind == Select && len(f.Options) > 0 && !hasOption(f.Options, text) {
			add(f.Name, f.Label+" must be one of the listed options")
			continue
		}
		if isText {
			if err := checkFormat(f.Kind, text); err != nil {
				add(f.Name, f.Label+" "+err.Error())
				continue
			}
		}
		if f.Rules != "" {
			if err := validate.Var(value, f.Rules); err != nil {
				add(f.Name, ruleReason(f, err))
			}
		}
	}

	for _, rg := range s.Ranges {
		from, fromOK := hr.ParseTime(v.String(rg.From))
		to, toOK := hr.ParseTime(v.String(rg.To))
		if fromOK && toOK && to.Before(from) {
			fromField, _ := s.Field(rg.From)
			toField, _ := s.Field(rg.To)
			add(rg.To, toField.Label+" must be on or after "+fromField.Label)
		}
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

func zero(k Kind) any {
	switch k {
	case Number:
		return 0.0
	case Toggle:
		return false
	default:
		return ""
	}
}

func typed(k Kind, value any) bool {
	switch k {
	case Number:
		_, ok := value.(float64)
		return ok
	case Toggle:
		_, ok := value.(bool)
		return ok
	default:
		_, ok := value.(string)
		return ok
	}
}

func hasOption(options []Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}

func checkFormat(k Kind, text string) error {
	switch k {
	case Date:
		if err := validate.Var(text, "datetime=2006-01-02"); err != nil {
			return errors.New("must be a date (YYYY-MM-DD)")
		}
	case DateTime:
		if _, ok := hr.ParseTime(text); !ok {
			return errors.New("must be a date and time")
		}
	}
	return nil
}

func ruleReason(f Field, err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Tag() {
		case "email":
			return f.Label + " must be a valid email address"
		case "oneof":
			return f.Label + " must be one of: " + verrs[0].Param()
		case "gte", "min":
			return f.Label + " must be at least " + verrs[0].Param()
		}
		return f.Label + " failed the " + verrs[0].Tag() + " rule"
	}
	return f.Label + " is invalid"
}
