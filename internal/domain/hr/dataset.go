package hr

import (
	"math"
	"time"
)

type seedEmployee struct {
	first, last, email, phone, dob, gender, nationality string
	address, city, state, postal, hireDate              string
	department, position, manager                       int
	contractType                                        string
	contractEndInDays                                   int
	salary                                              float64
	pendingPay                                          bool
}

var seedEmployees = []seedEmployee{
	{"Sarah", "Johnson", "admin@hrms.com", "+1-555-0101", "1985-03-15", GenderFemale, "American", "123 Main Street", "New York", "NY", "10001", "2020-01-15", 0, 0, -1, ContractPermanent, 0, 95000, false},
	{"Michael", "Chen", "specialist@hrms.com", "+1-555-0102", "1988-07-22", GenderMale, "American", "456 Oak Avenue", "San Francisco", "CA", "94102", "2021-03-10", 0, 1, 0, ContractPermanent, 0, 78000, false},
	{"Emily", "Davis", "coordinator@hrms.com", "+1-555-0103", "1992-11-08", GenderFemale, "Canadian", "789 Pine Road", "Toronto", "ON", "M5V 2A1", "2022-06-01", 0, 3, 0, ContractTemporary, 22, 55000, true},
	{"James", "Wilson", "partner@hrms.com", "+1-555-0104", "1983-04-30", GenderMale, "British", "10 Downing Street", "London", "England", "SW1A 2AA", "2019-09-15", 3, 4, 0, ContractPermanent, 0, 88000, false},
	{"Lisa", "Anderson", "lisa.anderson@hrms.com", "+1-555-0105", "1990-08-12", GenderFemale, "American", "555 Elm Street", "Chicago", "IL", "60601", "2023-01-20", 2, 8, -1, ContractTemporary, 43, 72000, false},
	{"Alex", "Thompson", "developer@hrms.com", "+1-555-0106", "1996-02-03", GenderMale, "American", "77 Market Street", "Austin", "TX", "73301", "2024-09-02", 1, 5, 6, ContractInternship, 75, 32000, true},
	{"Priya", "Patel", "priya.patel@hrms.com", "+1-555-0107", "1987-12-19", GenderFemale, "Indian", "12 Harbor Way", "Seattle", "WA", "98101", "2018-05-07", 1, 6, -1, ContractPermanent, 0, 105000, false},
	{"Kenji", "Tanaka", "kenji.tanaka@hrms.com", "+81-3-5555-0108", "1991-06-25", GenderMale, "Japanese", "3-1 Marunouchi", "Tokyo", "Tokyo", "100-0005", "2021-11-01", 4, 7, -1, ContractTemporary, 400, 83000, false},
}

// Dataset builds the demo collections relative to now. The layout is fixed;
// only identifiers come from newID, so two calls with the same clock agree.
func Dataset(now time.Time, newID func() string) map[Entity][]Record {
	today := now.UTC().Truncate(24 * time.Hour)
	created := "2024-01-01T00:00:00Z"
	out := map[Entity][]Record{}

	regions := []Record{
		{"regionName": "North America", "description": "USA and Canada operations"},
		{"regionName": "Europe", "description": "European operations"},
		{"regionName": "Asia Pacific", "description": "APAC operations"},
		{"regionName": "Latin America", "description": "LATAM operations"},
	}
	for _, r := range regions {
		r["regionId"] = newID()
		r["isActive"] = true
		r["createdAt"] = created
	}
	out[Regions] = regions

	countrySeeds := []struct {
		name   string
		region int
	}{{"United States", 0}, {"Canada", 0}, {"United Kingdom", 1}, {"Germany", 1}, {"Japan", 2}}
	for _, c := range countrySeeds {
		out[Countries] = append(out[Countries], Record{
			"countryId":   newID(),
			"countryName": c.name,
			"regionId":    regions[c.region].ID(Regions),
			"regionName":  regions[c.region].String("regionName"),
			"isActive":    true,
			"createdAt":   created,
		})
	}

	deptSeeds := []struct {
		name    string
		country int
	}{{"Human Resources", 0}, {"Engineering", 0}, {"Marketing", 0}, {"Finance", 2}, {"Operations", 4}}
	for _, d := range deptSeeds {
		country := out[Countries][d.country]
		out[Departments] = append(out[Departments], Record{
			"departmentId":   newID(),
			"departmentName": d.name,
			"countryId":      country.ID(Countries),
			"countryName":    country.String("countryName"),
			"isActive":       true,
			"createdAt":      created,
		})
	}

	for _, name := range []string{
		"HR – General Manager", "HR – Senior Specialist", "HR – Specialist", "HR – Coordinator", "HR – HR Partner",
		"Software Engineer", "Senior Developer", "Product Manager", "Marketing Manager", "Financial Analyst",
	} {
		out[Positions] = append(out[Positions], Record{
			"positionId":   newID(),
			"positionName": name,
			"isActive":     true,
			"createdAt":    created,
		})
	}

	employees := make([]Record, 0, len(seedEmployees))
	for _, s := range seedEmployees {
		employees = append(employees, Record{
			"employeeId":                   newID(),
			"firstName":                    s.first,
			"lastName":                     s.last,
			"email":                        s.email,
			"phone":                        s.phone,
			"dateOfBirth":                  s.dob,
			"gender":                       s.gender,
			"nationality":                  s.nationality,
			"addressLine1":                 s.address,
			"city":                         s.city,
			"state":                        s.state,
			"postalCode":                   s.postal,
			"hireDate":                     s.hireDate,
			"emergencyContactName":         "",
			"emergencyContactPhone":        "",
			"emergencyContactRelationship": "",
			"isActive":                     true,
			"createdAt":                    s.hireDate + "T00:00:00Z",
		})
	}
	for i, s := range seedEmployees {
		if s.manager >= 0 {
			employees[i]["managerId"] = employees[s.manager].ID(Employees)
			employees[i]["managerName"] = FullName(employees[s.manager])
		}
	}
	out[Employees] = employees

	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	payStart := monthStart.AddDate(0, -1, 0)
	payEnd := monthStart.AddDate(0, 0, -1)

	for i, s := range seedEmployees {
		emp := employees[i]
		empID := emp.ID(Employees)
		name := FullName(emp)
		dept := out[Departments][s.department]
		pos := out[Positions][s.position]

		out[EmployeeHistory] = append(out[EmployeeHistory], Record{
			"employeeHistoryId": newID(),
			"employeeId":        empID,
			"employeeName":      name,
			"departmentId":      dept.ID(Departments),
			"departmentName":    dept.String("departmentName"),
			"positionId":        pos.ID(Positions),
			"positionName":      pos.String("positionName"),
			"validFrom":         s.hireDate,
			"createdAt":         s.hireDate + "T00:00:00Z",
		})

		contract := Record{
			"contractId":   newID(),
			"employeeId":   empID,
			"employeeName": name,
			"contractType": s.contractType,
			"startDate":    s.hireDate,
			"salary":       s.salary,
			"createdAt":    s.hireDate + "T00:00:00Z",
		}
		if s.contractEndInDays > 0 {
			contract["endDate"] = today.AddDate(0, 0, s.contractEndInDays).Format(DateLayout)
		}
		out[Contracts] = append(out[Contracts], contract)

		gross := math.Round(s.salary / 12)
		payroll := Record{
			"payrollId":      newID(),
			"employeeId":     empID,
			"employeeName":   name,
			"payPeriodStart": payStart.Format(DateLayout),
			"payPeriodEnd":   payEnd.Format(DateLayout),
			"grossSalary":    gross,
			"netSalary":      math.Round(gross * 0.72),
			"createdAt":      Stamp(payStart),
		}
		if !s.pendingPay {
			payroll["paidAt"] = payEnd.Format(DateLayout)
		}
		out[Payroll] = append(out[Payroll], payroll)

		for d := 0; d < 20; d++ {
			day := today.AddDate(0, 0, -d)
			if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
				continue
			}
			checkIn := day.Add(8*time.Hour + time.Duration((i*7+d*13)%90)*time.Minute)
			checkOut := day.Add(17*time.Hour + time.Duration((i*11+d*17)%100)*time.Minute)
			out[Attendance] = append(out[Attendance], Record{
				"attendanceId":   newID(),
				"employeeId":     empID,
				"employeeName":   name,
				"attendanceDate": day.Format(DateLayout),
				"checkIn":        Stamp(checkIn),
				"checkOut":       Stamp(checkOut),
				"createdAt":      Stamp(day),
			})
		}

		out[Leaves] = append(out[Leaves], seedLeaves(today, i, empID, name, newID)...)
	}

	return out
}

func seedLeaves(today time.Time, i int, empID, name string, newID func() string) []Record {
	leave := func(kind string, startOffset, days int, approved bool) Record {
		start := today.AddDate(0, 0, startOffset)
		return Record{
			"leaveId":      newID(),
			"employeeId":   empID,
			"employeeName": name,
			"leaveType":    kind,
			"startDate":    start.Format(DateLayout),
			"endDate":      start.AddDate(0, 0, days-1).Format(DateLayout),
			"approved":     approved,
			"createdAt":    Stamp(start.AddDate(0, 0, -14)),
		}
	}

	out := []Record{
		leave(LeavePaid, -(30 + i*3), i%4+1, true),
		leave(LeaveTypes[i%len(LeaveTypes)], 7+i*5, 2+i%3, i%3 != 0),
	}
	if i%2 == 0 {
		out = append(out, leave(LeaveSick, -(10 + i), 1, true))
	}
	if i == 3 {
		out = append(out, leave(LeavePaid, -60, 16, true))
	}
	return out
}
