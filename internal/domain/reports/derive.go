package reports

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"hrms/internal/domain/hr"
)

// Deriver computes every report from the entity collections of a Lister.
type Deriver struct {
	Data Lister
	Now  func() time.Time
}

func NewDeriver(data Lister) *Deriver {
	return &Deriver{Data: data, Now: time.Now}
}

var needs = map[Kind][]hr.Entity{
	ActiveEmployees:      {hr.Employees, hr.EmployeeHistory, hr.Departments, hr.Countries},
	DepartmentStatistics: {hr.Employees, hr.EmployeeHistory, hr.Departments, hr.Countries},
	AttendanceSummary:    {hr.Employees, hr.EmployeeHistory, hr.Attendance},
	ExpiringContracts:    {hr.Employees, hr.EmployeeHistory, hr.Contracts},
	LeaveBalance:         {hr.Employees, hr.EmployeeHistory, hr.Leaves},
}

func (d *Deriver) Report(ctx context.Context, k Kind) ([]hr.Record, error) {
	entities, ok := needs[k]
	if !ok {
		return nil, ErrUnknownReport
	}
	data, err := load(ctx, d.Data, entities...)
	if err != nil {
		return nil, err
	}
	ix := newIndex(data)
	today := day(d.Now())

	switch k {
	case ActiveEmployees:
		return ix.activeEmployees(today), nil
	case DepartmentStatistics:
		return ix.departmentStatistics(today), nil
	case AttendanceSummary:
		return ix.attendanceSummary(today), nil
	case ExpiringContracts:
		return ix.expiringContracts(today), nil
	default:
		return ix.leaveBalance(today), nil
	}
}

// load fetches the collections concurrently and fails as a whole on the first error.
func load(ctx context.Context, data Lister, entities ...hr.Entity) (map[hr.Entity][]hr.Record, error) {
	var mu sync.Mutex
	out := make(map[hr.Entity][]hr.Record, len(entities))
	g, gctx := errgroup.WithContext(ctx)
	for _, e := range entities {
		e := e
		g.Go(func() error {
			rows, err := data.List(gctx, e)
			if err != nil {
				return err
			}
			mu.Lock()
			out[e] = rows
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

type index struct {
	data        map[hr.Entity][]hr.Record
	byID        map[hr.Entity]map[string]hr.Record
	currentRole map[string]hr.Record
}

func newIndex(data map[hr.Entity][]hr.Record) *index {
	ix := &index{data: data, byID: map[hr.Entity]map[string]hr.Record{}, currentRole: map[string]hr.Record{}}
	for e, rows := range data {
		m := make(map[string]hr.Record, len(rows))
		for _, r := range rows {
			m[r.ID(e)] = r
		}
		ix.byID[e] = m
	}
	// the open-ended history row with the latest validFrom is the current assignment
	for _, h := range data[hr.EmployeeHistory] {
		if h.String("validTo") != "" {
			continue
		}
		empID := h.String("employeeId")
		if prev, ok := ix.currentRole[empID]; ok && prev.String("validFrom") >= h.String("validFrom") {
			continue
		}
		ix.currentRole[empID] = h
	}
	return ix
}

func (ix *index) get(e hr.Entity, id string) hr.Record {
	return ix.byID[e][id]
}

func (ix *index) activeStaff() []hr.Record {
	var out []hr.Record
	for _, emp := range ix.data[hr.Employees] {
		if emp.Bool("isActive") {
			out = append(out, emp)
		}
	}
	return out
}

// placement returns department and position names of an employee's current role.
func (ix *index) placement(empID string) (department, position string) {
	h := ix.currentRole[empID]
	if h == nil {
		return "", ""
	}
	department = h.String("departmentName")
	if dept := ix.get(hr.Departments, h.String("departmentId")); dept != nil {
		department = dept.String("departmentName")
	}
	return department, h.String("positionName")
}

func (ix *index) activeEmployees(today time.Time) []hr.Record {
	out := []hr.Record{}
	for _, emp := range ix.activeStaff() {
		id := emp.ID(hr.Employees)
		department, position := ix.placement(id)
		var country, region string
		if h := ix.currentRole[id]; h != nil {
			if dept := ix.get(hr.Departments, h.String("departmentId")); dept != nil {
				if c := ix.get(hr.Countries, dept.String("countryId")); c != nil {
					country = c.String("countryName")
					region = c.String("regionName")
				}
			}
		}
		out = append(out, hr.Record{
			"employeeId":     id,
			"fullName":       hr.FullName(emp),
			"email":          emp.String("email"),
			"phone":          emp.String("phone"),
			"departmentName": department,
			"positionName":   position,
			"countryName":    country,
			"regionName":     region,
			"hireDate":       emp.String("hireDate"),
			"yearsOfService": float64(wholeYears(emp, today)),
		})
	}
	return out
}

func (ix *index) departmentStatistics(today time.Time) []hr.Record {
	type tally struct {
		total, male, female int
		service             float64
	}
	tallies := map[string]*tally{}
	for _, emp := range ix.activeStaff() {
		h := ix.currentRole[emp.ID(hr.Employees)]
		if h == nil {
			continue
		}
		deptID := h.String("departmentId")
		t := tallies[deptID]
		if t == nil {
			t = &tally{}
			tallies[deptID] = t
		}
		t.total++
		switch emp.String("gender") {
		case hr.GenderMale:
			t.male++
		case hr.GenderFemale:
			t.female++
		}
		if hired, ok := emp.Time("hireDate"); ok {
			t.service += today.Sub(hired).Hours() / 24 / 365.25
		}
	}

	out := []hr.Record{}
	for _, dept := range ix.data[hr.Departments] {
		t := tallies[dept.ID(hr.Departments)]
		if t == nil {
			t = &tally{}
		}
		row := hr.Record{
			"departmentName":   dept.String("departmentName"),
			"countryName":      dept.String("countryName"),
			"regionName":       "",
			"totalEmployees":   float64(t.total),
			"maleCount":        float64(t.male),
			"femaleCount":      float64(t.female),
			"avgYearsService":  0.0,
			"malePercentage":   0.0,
			"femalePercentage": 0.0,
		}
		if c := ix.get(hr.Countries, dept.String("countryId")); c != nil {
			row["countryName"] = c.String("countryName")
			row["regionName"] = c.String("regionName")
		}
		if t.total > 0 {
			row["avgYearsService"] = round(t.service/float64(t.total), 2)
			row["malePercentage"] = math.Round(float64(t.male) / float64(t.total) * 100)
			row["femalePercentage"] = math.Round(float64(t.female) / float64(t.total) * 100)
		}
		out = append(out, row)
	}
	return out
}

func (ix *index) attendanceSummary(today time.Time) []hr.Record {
	month := today.Format("2006-01")
	type tally struct {
		days, late      int
		hours, overtime float64
	}
	tallies := map[string]*tally{}
	for _, a := range ix.data[hr.Attendance] {
		if !strings.HasPrefix(a.String("attendanceDate"), month) {
			continue
		}
		in, ok := a.Time("checkIn")
		if !ok {
			continue
		}
		empID := a.String("employeeId")
		t := tallies[empID]
		if t == nil {
			t = &tally{}
			tallies[empID] = t
		}
		t.days++
		if in.Hour() > LateAfterHour || (in.Hour() == LateAfterHour && (in.Minute() > 0 || in.Second() > 0)) {
			t.late++
		}
		if left, ok := a.Time("checkOut"); ok && left.After(in) {
			worked := left.Sub(in).Hours()
			t.hours += worked
			if worked > WorkdayHours {
				t.overtime += worked - WorkdayHours
			}
		}
	}

	out := []hr.Record{}
	for _, emp := range ix.activeStaff() {
		id := emp.ID(hr.Employees)
		t := tallies[id]
		if t == nil {
			continue
		}
		department, position := ix.placement(id)
		out = append(out, hr.Record{
			"employeeId":       id,
			"fullName":         hr.FullName(emp),
			"departmentName":   department,
			"positionName":     position,
			"monthYear":        month,
			"daysWorked":       float64(t.days),
			"totalHoursWorked": round(t.hours, 2),
			"avgHoursPerDay":   round(t.hours/float64(t.days), 2),
			"lateArrivals":     float64(t.late),
			"overtimeHours":    round(t.overtime, 2),
		})
	}
	return out
}

// Urgency labels a contract by the days left before it ends.
func Urgency(daysLeft int) string {
	switch {
	case daysLeft <= 30:
		return "CRITICAL - 30 days or less"
	case daysLeft <= 60:
		return "WARNING - 60 days or less"
	default:
		return "NOTICE - 90 days or less"
	}
}

func (ix *index) expiringContracts(today time.Time) []hr.Record {
	out := []hr.Record{}
	for _, c := range ix.data[hr.Contracts] {
		end, ok := c.Time("endDate")
		if !ok {
			continue
		}
		left := int(day(end).Sub(today).Hours() / 24)
		if left < 0 || left > ExpiryWindowDays {
			continue
		}
		empID := c.String("employeeId")
		emp := ix.get(hr.Employees, empID)
		department, position := ix.placement(empID)
		row := hr.Record{
			"employeeId":            empID,
			"fullName":              c.String("employeeName"),
			"email":                 "",
			"departmentName":        department,
			"positionName":          position,
			"contractType":          c.String("contractType"),
			"startDate":             c.String("startDate"),
			"endDate":               c.String("endDate"),
			"daysUntilExpiry":       float64(left),
			"salary":                0.0,
			"urgencyStatus":         Urgency(left),
			"contractDurationYears": 0.0,
		}
		if emp != nil {
			row["fullName"] = hr.FullName(emp)
			row["email"] = emp.String("email")
		}
		if salary, ok := c.Float("salary"); ok {
			row["salary"] = salary
		}
		if start, ok := c.Time("startDate"); ok {
			row["contractDurationYears"] = round(end.Sub(start).Hours()/24/365, 1)
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, _ := out[i].Float("daysUntilExpiry")
		b, _ := out[j].Float("daysUntilExpiry")
		return a < b
	})
	return out
}

// BalanceStatus labels the leave days an employee has left.
func BalanceStatus(remaining int) string {
	switch {
	case remaining <= 0:
		return "DEPLETED - No days remaining"
	case remaining < 3:
		return "LOW - Less than 3 days"
	default:
		return "OK"
	}
}

func (ix *index) leaveBalance(today time.Time) []hr.Record {
	type tally struct {
		paid, sick, unpaid, scheduled int
	}
	year := today.Year()
	tallies := map[string]*tally{}
	for _, l := range ix.data[hr.Leaves] {
		if !l.Bool("approved") {
			continue
		}
		start, ok := l.Time("startDate")
		if !ok || start.Year() != year {
			continue
		}
		end, ok := l.Time("endDate")
		if !ok || end.Before(start) {
			end = start
		}
		days := InclusiveDays(start, end)
		empID := l.String("employeeId")
		t := tallies[empID]
		if t == nil {
			t = &tally{}
			tallies[empID] = t
		}
		kind := l.String("leaveType")
		switch {
		case day(start).After(today):
			if kind == hr.LeavePaid {
				t.scheduled += days
			}
		case kind == hr.LeavePaid:
			t.paid += days
		case kind == hr.LeaveSick:
			t.sick += days
		case kind == hr.LeaveUnpaid:
			t.unpaid += days
		}
	}

	out := []hr.Record{}
	for _, emp := range ix.activeStaff() {
		id := emp.ID(hr.Employees)
		t := tallies[id]
		if t == nil {
			t = &tally{}
		}
		remaining := AnnualLeaveAllowance - t.paid - t.scheduled
		if remaining < 0 {
			remaining = 0
		}
		department, position := ix.placement(id)
		out = append(out, hr.Record{
			"employeeId":          id,
			"fullName":            hr.FullName(emp),
			"departmentName":      department,
			"positionName":        position,
			"totalAllowedDays":    float64(AnnualLeaveAllowance),
			"paidDaysUsed":        float64(t.paid),
			"sickDaysUsed":        float64(t.sick),
			"unpaidDaysUsed":      float64(t.unpaid),
			"remainingDays":       float64(remaining),
			"scheduledFutureDays": float64(t.scheduled),
			"balanceStatus":       BalanceStatus(remaining),
			"usagePercentage":     math.Round(float64(t.paid+t.scheduled) / AnnualLeaveAllowance * 100),
		})
	}
	return out
}

// InclusiveDays counts calendar days from start through end.
func InclusiveDays(start, end time.Time) int {
	return int(day(end).Sub(day(start)).Hours()/24) + 1
}

func wholeYears(emp hr.Record, today time.Time) int {
	hired, ok := emp.Time("hireDate")
	if !ok {
		return 0
	}
	years := today.Year() - hired.Year()
	if today.Month() < hired.Month() || (today.Month() == hired.Month() && today.Day() < hired.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

func day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
