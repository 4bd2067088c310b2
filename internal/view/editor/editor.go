package editor

import (
	"context"
	"strings"
	"time"

	"hrms/internal/domain/hr"
	"hrms/internal/platform/logging"
)

// Mutator performs the create, update and delete calls on behalf of the editor.
type Mutator interface {
	Create(ctx context.Context, e hr.Entity, payload hr.Record) (hr.Record, error)
	Update(ctx context.Context, e hr.Entity, id string, payload hr.Record) (hr.Record, error)
	Delete(ctx context.Context, e hr.Entity, id string) error
}

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is a transient notification shown after a mutation.
type Notice struct {
	Level   Level
	Message string
}

func (n Notice) IsZero() bool {
	return n.Message == ""
}

// Mode says whether a form creates or edits a record.
type Mode int

const (
	Creating Mode = iota
	Editing
)

// Form is the open editor dialog.
type Form struct {
	Mode     Mode
	ID       string
	Values   Values
	Original hr.Record
	Issues   map[string]string
}

// Title is "Create <Singular>" or "Edit <Singular>".
func (f *Form) Title(singular string) string {
	if f.Mode == Editing {
		return "Edit " + singular
	}
	return "Create " + singular
}

func (f *Form) SubmitLabel() string {
	if f.Mode == Editing {
		return "Update"
	}
	return "Create"
}

// Outcome reports what a submit or delete did. Closed is true when the dialog
// should close.
type Outcome struct {
	Notice Notice
	Closed bool
}

// Editor drives the create, edit and delete flows for one entity.
type Editor struct {
	Entity  hr.Entity
	Schema  Schema
	Mutator Mutator
}

func New(e hr.Entity, schema Schema, m Mutator) *Editor {
	if schema.Singular == "" {
		schema.Singular = e.Singular()
	}
	return &Editor{Entity: e, Schema: schema, Mutator: m}
}

func (ed *Editor) NewCreateForm() *Form {
	return &Form{Mode: Creating, Values: ed.Schema.Blank()}
}

func (ed *Editor) NewEditForm(rec hr.Record) *Form {
	return &Form{
		Mode:     Editing,
		ID:       rec.ID(ed.Entity),
		Values:   ed.Schema.FromRecord(rec),
		Original: rec,
	}
}

// Submit validates the form and calls the mutator. A validation failure returns
// an error matching ErrValidationFailed without calling the mutator and leaves
// the issues on the form.
func (ed *Editor) Submit(ctx context.Context, form *Form) (Outcome, error) {
	form.Issues = nil
	if err := ed.Schema.Validate(form.Values); err != nil {
		if verr, ok := err.(*ValidationError); ok {
			form.Issues = verr.Reasons()
		}
		return Outcome{}, err
	}

	payload := ed.Payload(form)
	var err error
	verb := "created"
	if form.Mode == Editing {
		verb = "updated"
		_, err = ed.Mutator.Update(ctx, ed.Entity, form.ID, payload)
	} else {
		_, err = ed.Mutator.Create(ctx, ed.Entity, payload)
	}
	if err != nil {
		logging.FromContext(ctx).WithError(err).WithField("entity", string(ed.Entity)).Warn("save rejected")
		return Outcome{Notice: Notice{Level: LevelError, Message: "Failed to save " + strings.ToLower(ed.Schema.Singular)}}, err
	}
	return Outcome{
		Notice: Notice{Level: LevelSuccess, Message: ed.Schema.Singular + " " + verb + " successfully"},
		Closed: true,
	}, nil
}

// DeletePrompt is the confirmation text shown before a delete.
func (ed *Editor) DeletePrompt() string {
	return "This action cannot be undone. This will permanently delete this " + strings.ToLower(ed.Schema.Singular) + "."
}

// Delete removes id only when confirmed. Declining makes no call.
func (ed *Editor) Delete(ctx context.Context, id string, confirmed bool) (Outcome, error) {
	if !confirmed || id == "" {
		return Outcome{Closed: true}, nil
	}
	if err := ed.Mutator.Delete(ctx, ed.Entity, id); err != nil {
		logging.FromContext(ctx).WithError(err).WithField("entity", string(ed.Entity)).Warn("delete rejected")
		return Outcome{Notice: Notice{Level: LevelError, Message: "Failed to delete " + strings.ToLower(ed.Schema.Singular)}}, err
	}
	return Outcome{
		Notice: Notice{Level: LevelSuccess, Message: ed.Schema.Singular + " deleted successfully"},
		Closed: true,
	}, nil
}

// Payload converts validated form values into a record. Date-time values keep
// the stored timestamp when the submitted minute matches it, otherwise the
// minute-precision input is stored as UTC.
func (ed *Editor) Payload(form *Form) hr.Record {
	out := make(hr.Record, len(ed.Schema.Fields))
	for _, f := range ed.Schema.Fields {
		value, ok := form.Values[f.Name]
		if !ok {
			continue
		}
		if f.Kind == DateTime {
			submitted, _ := value.(string)
			out[f.Name] = dateTimeValue(submitted, form.Original.String(f.Name))
			continue
		}
		out[f.Name] = value
	}
	return out
}

func dateTimeValue(submitted, stored string) string {
	if submitted == "" {
		return ""
	}
	if stored != "" && TruncateDateTime(stored) == submitted {
		return stored
	}
	t, err := time.ParseInLocation(hr.DateTimeLayout, submitted, time.UTC)
	if err != nil {
		return submitted
	}
	return hr.Stamp(t)
}
