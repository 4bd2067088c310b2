package views

import (
	"hrms/internal/view/editor"
)

type OptionView struct {
	Value    string
	Label    string
	Selected bool
}

type FieldView struct {
	Name        string
	Label       string
	Kind        string
	InputType   string
	Value       string
	Checked     bool
	Required    bool
	Placeholder string
	Options     []OptionView
	Issue       string
}

// FormView is an open editor dialog ready for the editor partial.
type FormView struct {
	Title       string
	Action      string
	CancelURL   string
	SubmitLabel string
	Fields      []FieldView
}

func NewFormView(schema editor.Schema, form *editor.Form, action, cancel string) FormView {
	fv := FormView{
		Title:       form.Title(schema.Singular),
		Action:      action,
		CancelURL:   cancel,
		SubmitLabel: form.SubmitLabel(),
	}
	for _, f := range schema.Fields {
		field := FieldView{
			Name:        f.Name,
			Label:       f.Label,
			Kind:        f.Kind.String(),
			InputType:   f.Kind.InputType(),
			Value:       form.Values.String(f.Name),
			Required:    f.Required,
			Placeholder: f.Placeholder,
			Issue:       form.Issues[f.Name],
		}
		switch f.Kind {
		case editor.Toggle:
			field.Checked = form.Values.Bool(f.Name)
		case editor.Select:
			field.Placeholder = f.SelectPlaceholder()
			for _, o := range f.Options {
				field.Options = append(field.Options, OptionView{Value: o.Value, Label: o.Label, Selected: o.Value == field.Value})
			}
		}
		fv.Fields = append(fv.Fields, field)
	}
	return fv
}

// ConfirmView is the two-step delete confirmation.
type ConfirmView struct {
	Title     string
	Message   string
	Action    string
	CancelURL string
}
