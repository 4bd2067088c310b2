package views

import (
	"strings"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/hr"
	"hrms/internal/domain/reports"
)

type NavLink struct {
	Label  string
	Href   string
	Active bool
}

type NavGroup struct {
	Title string
	Links []NavLink
}

var adminLabels = map[hr.Entity]string{
	hr.Regions:         "Regions",
	hr.Countries:       "Countries",
	hr.Departments:     "Departments",
	hr.Positions:       "Positions",
	hr.Employees:       "Employees",
	hr.EmployeeHistory: "Employee History",
	hr.Attendance:      "Attendance",
	hr.Contracts:       "Contracts",
	hr.Payroll:         "Payroll",
	hr.Leaves:          "Leaves",
}

// Navigation builds the sidebar for p. Administration links appear only for admins.
func Navigation(p *auth.Principal, current string) []NavGroup {
	if p == nil {
		return nil
	}
	link := func(label, href string) NavLink {
		return NavLink{Label: label, Href: href, Active: current == href || strings.HasPrefix(current, href+"/")}
	}

	groups := []NavGroup{{Links: []NavLink{link("Dashboard", "/dashboard")}}}

	rep := NavGroup{Title: "Reports"}
	for _, k := range reports.Kinds {
		rep.Links = append(rep.Links, link(k.Title(), "/reports/"+string(k)))
	}
	groups = append(groups, rep)

	if p.RoleLevel == auth.LevelAdmin {
		admin := NavGroup{Title: "Administration"}
		for _, e := range hr.Entities {
			admin.Links = append(admin.Links, link(adminLabels[e], "/admin/"+string(e)))
		}
		groups = append(groups, admin)
	}
	return groups
}
