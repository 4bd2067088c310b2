package views

import (
	"hrms/internal/domain/auth"
	"hrms/internal/domain/reports"
	"hrms/internal/screen"
)

type LoginView struct {
	Email string
	Error string
	Demo  []auth.DemoAccount
}

// RegisterSection is one wizard step. Every section is rendered so earlier
// answers travel with the form; only the current one is visible.
type RegisterSection struct {
	Step   int
	Title  string
	Fields []FieldView
}

type RegisterView struct {
	Step      int
	Total     int
	StepTitle string
	Error     string
	Sections  []RegisterSection
}

type DashboardView struct {
	FirstName string
	Stats     reports.Stats
	Activity  []reports.Activity
	Failure   *screen.Failure
}

type ReportView struct {
	Summary    string
	Cards      []screen.Card
	AllClear   string
	Table      TableView
	ExportPDF  string
	ExportXLSX string
	Failure    *screen.Failure
}

type EntityView struct {
	Description string
	Singular    string
	NewURL      string
	Table       TableView
	Form        *FormView
	Confirm     *ConfirmView
	Failure     *screen.Failure
}
