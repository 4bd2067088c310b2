package screen

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"hrms/internal/domain/reports"
	"hrms/internal/export"
	"hrms/internal/view/format"
	"hrms/internal/view/status"
	"hrms/internal/view/table"
)

// Card is a headline count shown above a report table.
type Card struct {
	Label   string
	Value   int
	Variant status.Variant
}

// Report is one read-only report screen.
type Report struct {
	Kind              reports.Kind
	Title             string
	SearchPlaceholder string
	SearchKeys        []string
	EmptyMessage      string
	// AllClear replaces the table when the report has no rows.
	AllClear string
	Columns  []table.Column

	summary string
	exports []export.Column
	cards   func([]table.Row) []Card
}

type ReportData struct {
	Rows    []table.Row
	Summary string
	Cards   []Card
}

func (r *Report) Load(ctx context.Context, src reports.Source) (ReportData, error) {
	records, err := src.Report(ctx, r.Kind)
	if err != nil {
		return ReportData{}, err
	}
	rows := make([]table.Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, table.Row(rec))
	}
	out := ReportData{Rows: rows, Summary: fmt.Sprintf(r.summary, len(rows))}
	if r.cards != nil {
		out.Cards = r.cards(rows)
	}
	return out, nil
}

func (r *Report) Options(pageSize int) table.Options {
	return table.Options{Columns: r.Columns, SearchKeys: r.SearchKeys, PageSize: pageSize, EmptyMessage: r.EmptyMessage}
}

func (r *Report) Path() string {
	return "/reports/" + string(r.Kind)
}

// Sheet is the export of rows under the view's search and sort, without pagination.
func (r *Report) Sheet(rows []table.Row, st table.State, at time.Time) export.Sheet {
	out := table.Filter(rows, st.Query, r.SearchKeys)
	table.Sort(out, st.SortKey, st.Dir)
	return export.Sheet{Title: r.Title, Columns: r.exports, Rows: out, GeneratedAt: at}
}

func stacked(main, sub string) template.HTML {
	return template.HTML(`<div>` + template.HTMLEscapeString(main) + `</div><small class="muted">` +
		template.HTMLEscapeString(sub) + `</small>`)
}

func under(sub string, text func(any, table.Row) string) func(any, table.Row) template.HTML {
	return func(v any, r table.Row) template.HTML {
		main := str(v)
		if text != nil {
			main = text(v, r)
		}
		return stacked(main, str(r[sub]))
	}
}

func numberText(precision int, suffix string) func(any, table.Row) string {
	return func(v any, _ table.Row) string {
		return format.Number(num(v), precision) + suffix
	}
}

func autoBadge(v any, _ table.Row) template.HTML {
	return status.Badge(str(v))
}

func activeEmployeesReport() *Report {
	return &Report{
		Kind:              reports.ActiveEmployees,
		Title:             reports.ActiveEmployees.Title(),
		SearchPlaceholder: "Search employees...",
		SearchKeys:        []string{"fullName", "email", "departmentName", "positionName", "countryName"},
		EmptyMessage:      "No active employees found",
		Columns: columns([]col{
			{key: "fullName", label: "Employee", sortable: true, html: under("positionName", nil)},
			{key: "email", label: "Contact", html: under("phone", nil)},
			{key: "departmentName", label: "Department", sortable: true},
			{key: "countryName", label: "Location", sortable: true, html: under("regionName", nil)},
			{key: "hireDate", label: "Hire Date", sortable: true, html: func(v any, r table.Row) template.HTML {
				return stacked(format.Date(str(v)), format.Number(num(r["yearsOfService"]), 0)+" years")
			}},
		}),
		summary: "%d active employees across all departments",
		exports: exportColumns([]col{
			{key: "fullName", label: "Employee"},
			{key: "positionName", label: "Position"},
			{key: "email", label: "Email"},
			{key: "phone", label: "Phone"},
			{key: "departmentName", label: "Department"},
			{key: "countryName", label: "Country"},
			{key: "regionName", label: "Region"},
			{key: "hireDate", label: "Hire Date", text: dateText},
			{key: "yearsOfService", label: "Years of Service"},
		}),
	}
}

func departmentStatisticsReport() *Report {
	return &Report{
		Kind:              reports.DepartmentStatistics,
		Title:             reports.DepartmentStatistics.Title(),
		SearchPlaceholder: "Search departments...",
		SearchKeys:        []string{"departmentName", "countryName", "regionName"},
		EmptyMessage:      "No department statistics found",
		Columns: columns([]col{
			{key: "departmentName", label: "Department", sortable: true, html: under("countryName", nil)},
			{key: "regionName", label: "Region", sortable: true},
			{key: "totalEmployees", label: "Total Employees", sortable: true, text: numberText(0, "")},
			{key: "maleCount", label: "Gender Distribution", text: func(_ any, r table.Row) string {
				return fmt.Sprintf("Male: %s (%s%%) Female: %s (%s%%)",
					format.Number(num(r["maleCount"]), 0), format.Number(num(r["malePercentage"]), 0),
					format.Number(num(r["femaleCount"]), 0), format.Number(num(r["femalePercentage"]), 0))
			}},
			{key: "avgYearsService", label: "Avg. Service", sortable: true, text: numberText(2, " years")},
		}),
		summary: "Overview of %d departments across all regions",
		exports: exportColumns([]col{
			{key: "departmentName", label: "Department"},
			{key: "countryName", label: "Country"},
			{key: "regionName", label: "Region"},
			{key: "totalEmployees", label: "Total Employees"},
			{key: "maleCount", label: "Male"},
			{key: "malePercentage", label: "Male %"},
			{key: "femaleCount", label: "Female"},
			{key: "femalePercentage", label: "Female %"},
			{key: "avgYearsService", label: "Avg. Years of Service"},
		}),
	}
}

func attendanceSummaryReport() *Report {
	return &Report{
		Kind:              reports.AttendanceSummary,
		Title:             reports.AttendanceSummary.Title(),
		SearchPlaceholder: "Search employees...",
		SearchKeys:        []string{"fullName", "departmentName", "positionName"},
		EmptyMessage:      "No attendance records found",
		Columns: columns([]col{
			{key: "fullName", label: "Employee", sortable: true, html: under("positionName", nil)},
			{key: "departmentName", label: "Department", sortable: true},
			{key: "daysWorked", label: "Days Worked", sortable: true, text: numberText(0, "")},
			{key: "totalHoursWorked", label: "Total Hours", sortable: true, text: func(v any, _ table.Row) string { return format.Hours(num(v)) }},
			{key: "avgHoursPerDay", label: "Avg/Day", sortable: true, text: numberText(2, "h")},
			{key: "lateArrivals", label: "Late Arrivals", sortable: true, html: func(v any, _ table.Row) template.HTML {
				n := format.Number(num(v), 0)
				if num(v) > 3 {
					return status.BadgeAs(n, status.Warning)
				}
				return template.HTML(n)
			}},
			{key: "overtimeHours", label: "Overtime", sortable: true, text: func(v any, _ table.Row) string { return format.Hours(num(v)) }},
		}),
		summary: "Monthly attendance report for %d employees",
		exports: exportColumns([]col{
			{key: "fullName", label: "Employee"},
			{key: "positionName", label: "Position"},
			{key: "departmentName", label: "Department"},
			{key: "monthYear", label: "Month"},
			{key: "daysWorked", label: "Days Worked"},
			{key: "totalHoursWorked", label: "Total Hours"},
			{key: "avgHoursPerDay", label: "Avg Hours/Day"},
			{key: "lateArrivals", label: "Late Arrivals"},
			{key: "overtimeHours", label: "Overtime Hours"},
		}),
	}
}

func expiringContractsReport() *Report {
	return &Report{
		Kind:              reports.ExpiringContracts,
		Title:             reports.ExpiringContracts.Title(),
		SearchPlaceholder: "Search employees...",
		SearchKeys:        []string{"fullName", "email", "departmentName", "positionName"},
		EmptyMessage:      "No expiring contracts found",
		AllClear:          fmt.Sprintf("No contracts are expiring in the next %d days.", reports.ExpiryWindowDays),
		Columns: columns([]col{
			{key: "fullName", label: "Employee", sortable: true, html: under("email", nil)},
			{key: "departmentName", label: "Department", sortable: true, html: under("positionName", nil)},
			{key: "contractType", label: "Contract Type", sortable: true, text: func(v any, _ table.Row) string { return format.Label(str(v)) }},
			{key: "endDate", label: "Expiry Date", sortable: true, html: func(v any, r table.Row) template.HTML {
				return stacked(format.Date(str(v)), format.Number(num(r["daysUntilExpiry"]), 0)+" days left")
			}},
			{key: "salary", label: "Salary", sortable: true, text: currencyText},
			{key: "urgencyStatus", label: "Status", sortable: true, html: autoBadge},
		}),
		summary: "%d contracts expiring in the next 90 days",
		exports: exportColumns([]col{
			{key: "fullName", label: "Employee"},
			{key: "email", label: "Email"},
			{key: "departmentName", label: "Department"},
			{key: "positionName", label: "Position"},
			{key: "contractType", label: "Contract Type", text: func(v any, _ table.Row) string { return format.Label(str(v)) }},
			{key: "startDate", label: "Start Date", text: dateText},
			{key: "endDate", label: "Expiry Date", text: dateText},
			{key: "daysUntilExpiry", label: "Days Left"},
			{key: "contractDurationYears", label: "Duration (years)"},
			{key: "salary", label: "Salary"},
			{key: "urgencyStatus", label: "Status"},
		}),
	}
}

func leaveBalanceReport() *Report {
	return &Report{
		Kind:              reports.LeaveBalance,
		Title:             reports.LeaveBalance.Title(),
		SearchPlaceholder: "Search employees...",
		SearchKeys:        []string{"fullName", "departmentName", "positionName"},
		EmptyMessage:      "No leave balance records found",
		Columns: columns([]col{
			{key: "fullName", label: "Employee", sortable: true, html: under("positionName", nil)},
			{key: "departmentName", label: "Department", sortable: true},
			{key: "paidDaysUsed", label: "Leave Usage", text: func(_ any, r table.Row) string {
				return fmt.Sprintf("Paid: %s Sick: %s Unpaid: %s",
					format.Number(num(r["paidDaysUsed"]), 0),
					format.Number(num(r["sickDaysUsed"]), 0),
					format.Number(num(r["unpaidDaysUsed"]), 0))
			}},
			{key: "remainingDays", label: "Remaining", sortable: true, text: func(v any, r table.Row) string {
				return format.Number(num(v), 0) + "/" + format.Number(num(r["totalAllowedDays"]), 0)
			}},
			{key: "scheduledFutureDays", label: "Scheduled", sortable: true, text: func(v any, _ table.Row) string {
				return format.Days(int(num(v)))
			}},
			{key: "usagePercentage", label: "Usage %", sortable: true, text: numberText(0, "%")},
			{key: "balanceStatus", label: "Status", sortable: true, html: autoBadge},
		}),
		summary: "Leave balance overview for %d employees",
		exports: exportColumns([]col{
			{key: "fullName", label: "Employee"},
			{key: "positionName", label: "Position"},
			{key: "departmentName", label: "Department"},
			{key: "totalAllowedDays", label: "Allowed"},
			{key: "paidDaysUsed", label: "Paid Used"},
			{key: "sickDaysUsed", label: "Sick Used"},
			{key: "unpaidDaysUsed", label: "Unpaid Used"},
			{key: "scheduledFutureDays", label: "Scheduled"},
			{key: "remainingDays", label: "Remaining"},
			{key: "usagePercentage", label: "Usage %"},
			{key: "balanceStatus", label: "Status"},
		}),
		cards: balanceCards,
	}
}

func balanceCards(rows []table.Row) []Card {
	good := Card{Label: "Good Standing", Variant: status.Success}
	low := Card{Label: "Low Balance", Variant: status.Warning}
	critical := Card{Label: "Critical", Variant: status.Error}
	for _, r := range rows {
		s := str(r["balanceStatus"])
		switch {
		case s == "OK":
			good.Value++
		case strings.Contains(s, "LOW") || strings.Contains(s, "WARNING"):
			low.Value++
		case strings.Contains(s, "OVERUSED") || strings.Contains(s, "DEPLETED"):
			critical.Value++
		}
	}
	return []Card{good, low, critical}
}

// Reports lists every report screen in navigation order.
var Reports = []*Report{
	activeEmployeesReport(),
	departmentStatisticsReport(),
	attendanceSummaryReport(),
	expiringContractsReport(),
	leaveBalanceReport(),
}

func ReportFor(k reports.Kind) (*Report, bool) {
	for _, r := range Reports {
		if r.Kind == k {
			return r, true
		}
	}
	return nil, false
}
