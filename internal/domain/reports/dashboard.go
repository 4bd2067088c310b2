package reports

import (
	"context"
	"sort"
	"time"

	"hrms/internal/domain/hr"
)

// Stats are the dashboard headline counts.
type Stats struct {
	TotalEmployees  int
	Departments     int
	ActiveContracts int
	PendingLeaves   int
}

// Activity is one line of the dashboard's recent activity feed.
type Activity struct {
	Action string
	Name   string
	At     time.Time
	Tone   string
}

// Overview is everything the dashboard shows besides the greeting.
type Overview struct {
	Stats    Stats
	Activity []Activity
}

// Overview loads the dashboard collections in one fan-out.
func (d *Deriver) Overview(ctx context.Context) (Overview, error) {
	data, err := load(ctx, d.Data, hr.Employees, hr.Departments, hr.Contracts, hr.Leaves, hr.Attendance)
	if err != nil {
		return Overview{}, err
	}
	today := day(d.Now())
	return Overview{Stats: stats(data, today), Activity: activity(data, today)}, nil
}

func stats(data map[hr.Entity][]hr.Record, today time.Time) Stats {
	var s Stats
	for _, emp := range data[hr.Employees] {
		if emp.Bool("isActive") {
			s.TotalEmployees++
		}
	}
	for _, dept := range data[hr.Departments] {
		if dept.Bool("isActive") {
			s.Departments++
		}
	}
	for _, c := range data[hr.Contracts] {
		end, ok := c.Time("endDate")
		if !ok || !day(end).Before(today) {
			s.ActiveContracts++
		}
	}
	for _, l := range data[hr.Leaves] {
		if !l.Bool("approved") {
			s.PendingLeaves++
		}
	}
	return s
}

// activity picks the latest event of each kind, newest first.
func activity(data map[hr.Entity][]hr.Record, today time.Time) []Activity {
	var out []Activity
	pick := func(rows []hr.Record, keep func(hr.Record) bool, at func(hr.Record) (time.Time, bool), better func(a, b time.Time) bool) (hr.Record, time.Time) {
		var best hr.Record
		var bestAt time.Time
		for _, r := range rows {
			if !keep(r) {
				continue
			}
			t, ok := at(r)
			if !ok {
				continue
			}
			if best == nil || better(t, bestAt) {
				best, bestAt = r, t
			}
		}
		return best, bestAt
	}
	all := func(hr.Record) bool { return true }
	field := func(key string) func(hr.Record) (time.Time, bool) {
		return func(r hr.Record) (time.Time, bool) { return r.Time(key) }
	}
	later := func(a, b time.Time) bool { return a.After(b) }
	sooner := func(a, b time.Time) bool { return a.Before(b) }

	if emp, at := pick(data[hr.Employees], all, field("hireDate"), later); emp != nil {
		out = append(out, Activity{Action: "New employee onboarded", Name: hr.FullName(emp), At: at, Tone: "success"})
	}
	expiring := func(r hr.Record) bool {
		end, ok := r.Time("endDate")
		return ok && !day(end).Before(today) && day(end).Sub(today) <= ExpiryWindowDays*24*time.Hour
	}
	if c, at := pick(data[hr.Contracts], expiring, field("endDate"), sooner); c != nil {
		out = append(out, Activity{Action: "Contract expiring soon", Name: c.String("employeeName"), At: at, Tone: "warning"})
	}
	approved := func(r hr.Record) bool {
		created, ok := r.Time("createdAt")
		return ok && r.Bool("approved") && !day(created).After(today)
	}
	if l, at := pick(data[hr.Leaves], approved, field("createdAt"), later); l != nil {
		out = append(out, Activity{Action: "Leave request approved", Name: l.String("employeeName"), At: at, Tone: "primary"})
	}
	if a, at := pick(data[hr.Attendance], all, field("checkIn"), later); a != nil {
		out = append(out, Activity{Action: "Attendance recorded", Name: a.String("employeeName"), At: at, Tone: "info"})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].At.After(out[j].At) })
	return out
}
