package screen

import (
	"context"
	"html/template"

	"hrms/internal/domain/hr"
	"hrms/internal/domain/reports"
	"hrms/internal/view/editor"
	"hrms/internal/view/format"
	"hrms/internal/view/status"
	"hrms/internal/view/table"
)

// Reference fills a select field with the records of another collection.
type Reference struct {
	Field  string
	Entity hr.Entity
	Label  func(hr.Record) string
}

// Entity is one admin management screen.
type Entity struct {
	Entity            hr.Entity
	Title             string
	Description       string
	SearchPlaceholder string
	Columns           []table.Column
	SearchKeys        []string
	Schema            editor.Schema
	References        []Reference
	decorate          func(table.Row)
}

// EntityData is what one render of an entity screen needs.
type EntityData struct {
	Rows    []table.Row
	Schema  editor.Schema
	records map[string]hr.Record
}

// Record returns the loaded record with the given id.
func (d EntityData) Record(id string) (hr.Record, bool) {
	rec, ok := d.records[id]
	return rec, ok
}

// Load fetches the screen's collection and every referenced collection
// concurrently, then resolves the select options.
func (s *Entity) Load(ctx context.Context, src Lister) (EntityData, error) {
	entities := []hr.Entity{s.Entity}
	for _, ref := range s.References {
		entities = append(entities, ref.Entity)
	}
	data, err := fetch(ctx, src, entities...)
	if err != nil {
		return EntityData{}, err
	}

	out := EntityData{
		Rows:    make([]table.Row, 0, len(data[s.Entity])),
		records: make(map[string]hr.Record, len(data[s.Entity])),
		Schema:  s.resolve(data),
	}
	for _, rec := range data[s.Entity] {
		out.records[rec.ID(s.Entity)] = rec
		row := table.Row(rec.Clone())
		if s.decorate != nil {
			s.decorate(row)
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

func (s *Entity) resolve(data map[hr.Entity][]hr.Record) editor.Schema {
	schema := s.Schema
	schema.Fields = append([]editor.Field(nil), s.Schema.Fields...)
	for _, ref := range s.References {
		options := make([]editor.Option, 0, len(data[ref.Entity]))
		for _, rec := range data[ref.Entity] {
			options = append(options, editor.Option{Value: rec.ID(ref.Entity), Label: ref.Label(rec)})
		}
		for i := range schema.Fields {
			if schema.Fields[i].Name == ref.Field {
				schema.Fields[i].Options = options
			}
		}
	}
	return schema
}

// Options returns the table options for this screen.
func (s *Entity) Options(pageSize int) table.Options {
	return table.Options{Columns: s.Columns, SearchKeys: s.SearchKeys, PageSize: pageSize}
}

// Path is where the screen is mounted.
func (s *Entity) Path() string {
	return "/admin/" + string(s.Entity)
}

func field(name string) func(hr.Record) string {
	return func(r hr.Record) string { return r.String(name) }
}

func activeBadge(v any, _ table.Row) template.HTML {
	return status.Badge(activeText(v, nil))
}

func activeText(v any, _ table.Row) string {
	if b, _ := v.(bool); b {
		return "Active"
	}
	return "Inactive"
}

var (
	activeColumn  = col{key: "isActive", label: "Status", sortable: true, text: activeText, html: activeBadge}
	createdColumn = col{key: "createdAt", label: "Created At", sortable: true, text: dateText}
	activeField   = editor.Field{Name: "isActive", Label: "Active", Kind: editor.Toggle}
	employeeField = editor.Field{Name: "employeeId", Label: "Employee", Kind: editor.Select, Required: true}
	employeeRef   = Reference{Field: "employeeId", Entity: hr.Employees, Label: hr.FullName}
)

var variantByContract = map[string]status.Variant{
	hr.ContractPermanent:  status.Success,
	hr.ContractTemporary:  status.Warning,
	hr.ContractInternship: status.Info,
}

var variantByLeave = map[string]status.Variant{
	hr.LeavePaid:   status.Success,
	hr.LeaveSick:   status.Warning,
	hr.LeaveUnpaid: status.Error,
}

func typeBadge(variants map[string]status.Variant, otherwise status.Variant) func(any, table.Row) template.HTML {
	return func(v any, _ table.Row) template.HTML {
		variant, ok := variants[str(v)]
		if !ok {
			variant = otherwise
		}
		return status.BadgeAs(str(v), variant)
	}
}

func flagBadge(yes, no string) (func(any, table.Row) string, func(any, table.Row) template.HTML) {
	text := func(v any, _ table.Row) string {
		if truthy(v) {
			return yes
		}
		return no
	}
	html := func(v any, _ table.Row) template.HTML {
		if truthy(v) {
			return status.BadgeAs(yes, status.Success)
		}
		return status.BadgeAs(no, status.Warning)
	}
	return text, html
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != ""
	default:
		return v != nil
	}
}

func regionScreen() *Entity {
	return &Entity{
		Entity:            hr.Regions,
		Title:             "Regions",
		Description:       "Manage geographical regions",
		SearchPlaceholder: "Search regions...",
		Columns: columns([]col{
			{key: "regionName", label: "Region Name", sortable: true},
			{key: "description", label: "Description", sortable: true},
			activeColumn,
			createdColumn,
		}),
		Schema: editor.Schema{Singular: "Region", Fields: []editor.Field{
			{Name: "regionName", Label: "Region Name", Kind: editor.Text, Required: true, Placeholder: "Enter region name"},
			{Name: "description", Label: "Description", Kind: editor.TextArea, Placeholder: "Enter description"},
			activeField,
		}},
	}
}

func countryScreen() *Entity {
	return &Entity{
		Entity:            hr.Countries,
		Title:             "Countries",
		Description:       "Manage countries and their regional associations",
		SearchPlaceholder: "Search countries...",
		Columns: columns([]col{
			{key: "countryName", label: "Country Name", sortable: true},
			{key: "regionName", label: "Region", sortable: true},
			activeColumn,
			createdColumn,
		}),
		Schema: editor.Schema{Singular: "Country", Fields: []editor.Field{
			{Name: "countryName", Label: "Country Name", Kind: editor.Text, Required: true, Placeholder: "Enter country name"},
			{Name: "regionId", Label: "Region", Kind: editor.Select, Required: true},
			activeField,
		}},
		References: []Reference{{Field: "regionId", Entity: hr.Regions, Label: field("regionName")}},
	}
}

func departmentScreen() *Entity {
	return &Entity{
		Entity:            hr.Departments,
		Title:             "Departments",
		Description:       "Manage departments across different countries",
		SearchPlaceholder: "Search departments...",
		Columns: columns([]col{
			{key: "departmentName", label: "Department Name", sortable: true},
			{key: "countryName", label: "Country", sortable: true},
			activeColumn,
			createdColumn,
		}),
		Schema: editor.Schema{Singular: "Department", Fields: []editor.Field{
			{Name: "departmentName", Label: "Department Name", Kind: editor.Text, Required: true, Placeholder: "Enter department name"},
			{Name: "countryId", Label: "Country", Kind: editor.Select, Required: true},
			activeField,
		}},
		References: []Reference{{Field: "countryId", Entity: hr.Countries, Label: field("countryName")}},
	}
}

func positionScreen() *Entity {
	return &Entity{
		Entity:            hr.Positions,
		Title:             "Positions",
		Description:       "Manage job positions",
		SearchPlaceholder: "Search positions...",
		Columns: columns([]col{
			{key: "positionName", label: "Position Name", sortable: true},
			activeColumn,
			createdColumn,
		}),
		Schema: editor.Schema{Singular: "Position", Fields: []editor.Field{
			{Name: "positionName", Label: "Position Name", Kind: editor.Text, Required: true, Placeholder: "Enter position name"},
			activeField,
		}},
	}
}

func employeeScreen() *Entity {
	return &Entity{
		Entity:            hr.Employees,
		Title:             "Employees",
		Description:       "Manage employee records",
		SearchPlaceholder: "Search employees...",
		Columns: columns([]col{
			{key: "fullName", label: "Name", sortable: true},
			{key: "email", label: "Email", sortable: true},
			{key: "phone", label: "Phone", sortable: true},
			{key: "nationality", label: "Nationality", sortable: true},
			{key: "hireDate", label: "Hire Date", sortable: true, text: dateText},
			activeColumn,
		}),
		Schema: editor.Schema{Singular: "Employee", Fields: []editor.Field{
			{Name: "firstName", Label: "First Name", Kind: editor.Text, Required: true, Placeholder: "Enter first name"},
			{Name: "lastName", Label: "Last Name", Kind: editor.Text, Required: true, Placeholder: "Enter last name"},
			{Name: "email", Label: "Email", Kind: editor.Text, Required: true, Placeholder: "Enter email address", Rules: "email"},
			{Name: "phone", Label: "Phone", Kind: editor.Text, Required: true, Placeholder: "Enter phone number"},
			{Name: "dateOfBirth", Label: "Date of Birth", Kind: editor.Date, Required: true},
			{Name: "gender", Label: "Gender", Kind: editor.Select, Options: []editor.Option{
				{Value: hr.GenderMale, Label: "Male"},
				{Value: hr.GenderFemale, Label: "Female"},
			}},
			{Name: "nationality", Label: "Nationality", Kind: editor.Text, Required: true, Placeholder: "Enter nationality"},
			{Name: "addressLine1", Label: "Address Line 1", Kind: editor.Text, Required: true, Placeholder: "Enter address"},
			{Name: "addressLine2", Label: "Address Line 2", Kind: editor.Text, Placeholder: "Enter address line 2 (optional)"},
			{Name: "city", Label: "City", Kind: editor.Text, Required: true, Placeholder: "Enter city"},
			{Name: "state", Label: "State/Province", Kind: editor.Text, Required: true, Placeholder: "Enter state"},
			{Name: "postalCode", Label: "Postal Code", Kind: editor.Text, Required: true, Placeholder: "Enter postal code"},
			{Name: "hireDate", Label: "Hire Date", Kind: editor.Date, Required: true},
			{Name: "terminationDate", Label: "Termination Date", Kind: editor.Date},
			{Name: "emergencyContactName", Label: "Emergency Contact Name", Kind: editor.Text, Placeholder: "Enter contact name"},
			{Name: "emergencyContactPhone", Label: "Emergency Contact Phone", Kind: editor.Text, Placeholder: "Enter contact phone"},
			{Name: "emergencyContactRelationship", Label: "Emergency Contact Relationship", Kind: editor.Text, Placeholder: "e.g., Spouse, Parent"},
			activeField,
		}},
		decorate: func(r table.Row) {
			r["fullName"] = hr.FullName(hr.Record(r))
		},
	}
}

func historyScreen() *Entity {
	return &Entity{
		Entity:            hr.EmployeeHistory,
		Title:             "Employee History",
		Description:       "Manage employee department and position history",
		SearchPlaceholder: "Search history...",
		Columns: columns([]col{
			{key: "employeeName", label: "Employee", sortable: true},
			{key: "departmentName", label: "Department", sortable: true},
			{key: "positionName", label: "Position", sortable: true},
			{key: "validFrom", label: "Valid From", sortable: true},
			{key: "validTo", label: "Valid To", sortable: true, text: fallback("Current")},
		}),
		Schema: editor.Schema{Singular: "Employee history record", Fields: []editor.Field{
			employeeField,
			{Name: "departmentId", Label: "Department", Kind: editor.Select, Required: true},
			{Name: "positionId", Label: "Position", Kind: editor.Select, Required: true},
			{Name: "validFrom", Label: "Valid From", Kind: editor.Date, Required: true},
			{Name: "validTo", Label: "Valid To", Kind: editor.Date},
		}, Ranges: []editor.Range{{From: "validFrom", To: "validTo"}}},
		References: []Reference{
			employeeRef,
			{Field: "departmentId", Entity: hr.Departments, Label: field("departmentName")},
			{Field: "positionId", Entity: hr.Positions, Label: field("positionName")},
		},
	}
}

func clockText(v any, _ table.Row) string {
	return format.Clock(str(v))
}

func attendanceScreen() *Entity {
	return &Entity{
		Entity:            hr.Attendance,
		Title:             "Attendance",
		Description:       "Manage employee attendance records",
		SearchPlaceholder: "Search attendance...",
		Columns: columns([]col{
			{key: "employeeName", label: "Employee", sortable: true},
			{key: "attendanceDate", label: "Date", sortable: true},
			{key: "checkIn", label: "Check In", sortable: true, text: clockText},
			{key: "checkOut", label: "Check Out", sortable: true, text: clockText},
			{key: "hours", label: "Hours", sortable: true, text: func(v any, _ table.Row) string {
				if v == nil {
					return format.Placeholder
				}
				return format.Number(num(v), 2)
			}},
		}),
		Schema: editor.Schema{Singular: "Attendance record", Fields: []editor.Field{
			employeeField,
			{Name: "attendanceDate", Label: "Date", Kind: editor.Date, Required: true},
			{Name: "checkIn", Label: "Check In", Kind: editor.DateTime},
			{Name: "checkOut", Label: "Check Out", Kind: editor.DateTime},
		}, Ranges: []editor.Range{{From: "checkIn", To: "checkOut"}}},
		References: []Reference{employeeRef},
		decorate: func(r table.Row) {
			in, okIn := hr.Record(r).Time("checkIn")
			out, okOut := hr.Record(r).Time("checkOut")
			if okIn && okOut {
				r["hours"] = out.Sub(in).Hours()
			}
		},
	}
}

func contractScreen() *Entity {
	return &Entity{
		Entity:            hr.Contracts,
		Title:             "Contracts",
		Description:       "Manage employee contracts",
		SearchPlaceholder: "Search contracts...",
		Columns: columns([]col{
			{key: "employeeName", label: "Employee", sortable: true},
			{key: "contractType", label: "Type", sortable: true, text: func(v any, _ table.Row) string { return str(v) },
				html: typeBadge(variantByContract, status.Info)},
			{key: "startDate", label: "Start Date", sortable: true},
			{key: "endDate", label: "End Date", sortable: true, text: fallback("No end date")},
			{key: "salary", label: "Salary", sortable: true, text: currencyText},
		}),
		Schema: editor.Schema{Singular: "Contract", Fields: []editor.Field{
			employeeField,
			{Name: "contractType", Label: "Contract Type", Kind: editor.Select, Required: true, Options: []editor.Option{
				{Value: hr.ContractPermanent, Label: "Permanent"},
				{Value: hr.ContractTemporary, Label: "Temporary"},
				{Value: hr.ContractInternship, Label: "Internship"},
			}},
			{Name: "startDate", Label: "Start Date", Kind: editor.Date, Required: true},
			{Name: "endDate", Label: "End Date", Kind: editor.Date},
			{Name: "salary", Label: "Salary", Kind: editor.Number, Required: true, Placeholder: "Enter salary", Rules: "gte=0"},
		}, Ranges: []editor.Range{{From: "startDate", To: "endDate"}}},
		References: []Reference{employeeRef},
	}
}

func payrollScreen() *Entity {
	paidText, paidBadge := flagBadge("Paid", "Pending")
	return &Entity{
		Entity:            hr.Payroll,
		Title:             "Payroll",
		Description:       "Manage employee payroll records",
		SearchPlaceholder: "Search payroll...",
		Columns: columns([]col{
			{key: "employeeName", label: "Employee", sortable: true},
			{key: "payPeriodStart", label: "Period Start", sortable: true},
			{key: "payPeriodEnd", label: "Period End", sortable: true},
			{key: "grossSalary", label: "Gross", sortable: true, text: currencyText},
			{key: "netSalary", label: "Net", sortable: true, text: currencyText},
			{key: "paidAt", label: "Status", sortable: true, text: paidText, html: paidBadge},
		}),
		Schema: editor.Schema{Singular: "Payroll record", Fields: []editor.Field{
			employeeField,
			{Name: "payPeriodStart", Label: "Period Start", Kind: editor.Date, Required: true},
			{Name: "payPeriodEnd", Label: "Period End", Kind: editor.Date, Required: true},
			{Name: "grossSalary", Label: "Gross Salary", Kind: editor.Number, Required: true, Placeholder: "Enter gross salary", Rules: "gte=0"},
			{Name: "netSalary", Label: "Net Salary", Kind: editor.Number, Required: true, Placeholder: "Enter net salary", Rules: "gte=0"},
			{Name: "paidAt", Label: "Paid At", Kind: editor.Date},
		}, Ranges: []editor.Range{{From: "payPeriodStart", To: "payPeriodEnd"}}},
		References: []Reference{employeeRef},
	}
}

func leaveScreen() *Entity {
	approvedText, approvedBadge := flagBadge("Approved", "Pending")
	return &Entity{
		Entity:            hr.Leaves,
		Title:             "Leaves",
		Description:       "Manage employee leave requests",
		SearchPlaceholder: "Search leaves...",
		Columns: columns([]col{
			{key: "employeeName", label: "Employee", sortable: true},
			{key: "leaveType", label: "Type", sortable: true, text: func(v any, _ table.Row) string { return str(v) },
				html: typeBadge(variantByLeave, status.Error)},
			{key: "startDate", label: "Start Date", sortable: true},
			{key: "endDate", label: "End Date", sortable: true},
			{key: "days", label: "Days", sortable: true, text: func(v any, _ table.Row) string {
				if v == nil {
					return format.Placeholder
				}
				return format.Number(num(v), 0)
			}},
			{key: "approved", label: "Status", sortable: true, text: approvedText, html: approvedBadge},
		}),
		Schema: editor.Schema{Singular: "Leave", Fields: []editor.Field{
			employeeField,
			{Name: "leaveType", Label: "Leave Type", Kind: editor.Select, Required: true, Options: []editor.Option{
				{Value: hr.LeavePaid, Label: "Paid Leave"},
				{Value: hr.LeaveSick, Label: "Sick Leave"},
				{Value: hr.LeaveUnpaid, Label: "Unpaid Leave"},
			}},
			{Name: "startDate", Label: "Start Date", Kind: editor.Date, Required: true},
			{Name: "endDate", Label: "End Date", Kind: editor.Date, Required: true},
			{Name: "approved", Label: "Approved", Kind: editor.Toggle},
		}, Ranges: []editor.Range{{From: "startDate", To: "endDate"}}},
		References: []Reference{employeeRef},
		decorate: func(r table.Row) {
			start, okStart := hr.Record(r).Time("startDate")
			end, okEnd := hr.Record(r).Time("endDate")
			if okStart && okEnd {
				r["days"] = float64(reports.InclusiveDays(start, end))
			}
		},
	}
}

// Entities lists every management screen in navigation order.
var Entities = []*Entity{
	regionScreen(),
	countryScreen(),
	departmentScreen(),
	positionScreen(),
	employeeScreen(),
	historyScreen(),
	attendanceScreen(),
	contractScreen(),
	payrollScreen(),
	leaveScreen(),
}

func EntityFor(e hr.Entity) (*Entity, bool) {
	for _, s := range Entities {
		if s.Entity == e {
			return s, true
		}
	}
	return nil, false
}
