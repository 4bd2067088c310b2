package reports

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/internal/domain/hr"
)

type fixture map[hr.Entity][]hr.Record

func (f fixture) List(ctx context.Context, e hr.Entity) ([]hr.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f[e], nil
}

type failing struct{ entity hr.Entity }

func (f failing) List(_ context.Context, e hr.Entity) ([]hr.Record, error) {
	if e == f.entity {
		return nil, errors.New("backend down")
	}
	return nil, nil
}

var now = time.Date(2025, 3, 20, 15, 0, 0, 0, time.UTC)

func sample() fixture {
	return fixture{
		hr.Countries: {
			{"countryId": "c1", "countryName": "United States", "regionName": "North America"},
		},
		hr.Departments: {
			{"departmentId": "d1", "departmentName": "Engineering", "countryId": "c1", "countryName": "United States", "isActive": true},
			{"departmentId": "d2", "departmentName": "Finance", "countryId": "c1", "countryName": "United States", "isActive": true},
		},
		hr.Employees: {
			{"employeeId": "e1", "firstName": "Sarah", "lastName": "Johnson", "email": "sarah@hrms.com", "gender": "female", "hireDate": "2020-03-21", "isActive": true},
			{"employeeId": "e2", "firstName": "Michael", "lastName": "Chen", "email": "michael@hrms.com", "gender": "male", "hireDate": "2022-03-20", "isActive": true},
			{"employeeId": "e3", "firstName": "Gone", "lastName": "Away", "gender": "male", "hireDate": "2010-01-01", "isActive": false},
		},
		hr.EmployeeHistory: {
			{"employeeHistoryId": "h0", "employeeId": "e1", "departmentId": "d2", "positionName": "Analyst", "validFrom": "2020-03-21", "validTo": "2022-01-01"},
			{"employeeHistoryId": "h1", "employeeId": "e1", "departmentId": "d1", "departmentName": "Engineering", "positionName": "Senior Developer", "validFrom": "2022-01-02"},
			{"employeeHistoryId": "h2", "employeeId": "e2", "departmentId": "d1", "departmentName": "Engineering", "positionName": "Software Engineer", "validFrom": "2022-03-20"},
			{"employeeHistoryId": "h3", "employeeId": "e3", "departmentId": "d2", "positionName": "Clerk", "validFrom": "2010-01-01"},
		},
		hr.Attendance: {
			{"attendanceId": "a1", "employeeId": "e1", "attendanceDate": "2025-03-03", "checkIn": "2025-03-03T08:30:00Z", "checkOut": "2025-03-03T18:30:00Z"},
			{"attendanceId": "a2", "employeeId": "e1", "attendanceDate": "2025-03-04", "checkIn": "2025-03-04T09:15:00Z", "checkOut": "2025-03-04T16:15:00Z"},
			{"attendanceId": "a3", "employeeId": "e1", "attendanceDate": "2025-02-28", "checkIn": "2025-02-28T09:30:00Z", "checkOut": "2025-02-28T17:30:00Z"},
			{"attendanceId": "a4", "employeeId": "e2", "attendanceDate": "2025-03-05", "checkIn": "2025-03-05T09:00:00Z"},
		},
		hr.Contracts: {
			{"contractId": "k1", "employeeId": "e1", "employeeName": "Sarah Johnson", "contractType": "temporary", "startDate": "2023-03-20", "endDate": "2025-04-05", "salary": 72000.0},
			{"contractId": "k2", "employeeId": "e2", "employeeName": "Michael Chen", "contractType": "internship", "startDate": "2024-09-20", "endDate": "2025-05-30", "salary": 32000.0},
			{"contractId": "k3", "employeeId": "e2", "contractType": "permanent", "startDate": "2022-03-20"},
			{"contractId": "k4", "employeeId": "e1", "contractType": "temporary", "startDate": "2020-03-21", "endDate": "2025-03-01"},
			{"contractId": "k5", "employeeId": "e1", "contractType": "temporary", "startDate": "2020-03-21", "endDate": "2025-09-01"},
		},
		hr.Leaves: {
			{"leaveId": "l1", "employeeId": "e1", "leaveType": "paid", "startDate": "2025-01-06", "endDate": "2025-01-17", "approved": true},
			{"leaveId": "l2", "employeeId": "e1", "leaveType": "paid", "startDate": "2025-04-01", "endDate": "2025-04-08", "approved": true},
			{"leaveId": "l3", "employeeId": "e1", "leaveType": "sick", "startDate": "2025-02-03", "endDate": "2025-02-04", "approved": true},
			{"leaveId": "l4", "employeeId": "e2", "leaveType": "paid", "startDate": "2025-02-10", "endDate": "2025-02-12", "approved": false},
			{"leaveId": "l5", "employeeId": "e2", "leaveType": "unpaid", "startDate": "2024-12-30", "endDate": "2024-12-31", "approved": true},
		},
	}
}

func report(t *testing.T, data Lister, k Kind) []hr.Record {
	t.Helper()
	d := &Deriver{Data: data, Now: func() time.Time { return now }}
	rows, err := d.Report(context.Background(), k)
	require.NoError(t, err)
	return rows
}

func byEmployee(rows []hr.Record) map[string]hr.Record {
	out := map[string]hr.Record{}
	for _, r := range rows {
		out[r.String("employeeId")] = r
	}
	return out
}

func TestActiveEmployees(t *testing.T) {
	rows := byEmployee(report(t, sample(), ActiveEmployees))
	require.Len(t, rows, 2)

	sarah := rows["e1"]
	assert.Equal(t, "Sarah Johnson", sarah["fullName"])
	assert.Equal(t, "Engineering", sarah["departmentName"])
	assert.Equal(t, "Senior Developer", sarah["positionName"])
	assert.Equal(t, "United States", sarah["countryName"])
	assert.Equal(t, "North America", sarah["regionName"])
	// hired 2020-03-21, the fifth anniversary is tomorrow
	assert.Equal(t, 4.0, sarah["yearsOfService"])
	assert.Equal(t, 3.0, rows["e2"]["yearsOfService"])
}

func TestDepartmentStatistics(t *testing.T) {
	rows := report(t, sample(), DepartmentStatistics)
	require.Len(t, rows, 2)

	eng := rows[0]
	assert.Equal(t, "Engineering", eng["departmentName"])
	assert.Equal(t, "North America", eng["regionName"])
	assert.Equal(t, 2.0, eng["totalEmployees"])
	assert.Equal(t, 1.0, eng["maleCount"])
	assert.Equal(t, 50.0, eng["femalePercentage"])
	assert.InDelta(t, 4.0, eng["avgYearsService"], 0.01)

	finance := rows[1]
	assert.Equal(t, 0.0, finance["totalEmployees"])
	assert.Equal(t, 0.0, finance["malePercentage"])
}

func TestAttendanceSummary(t *testing.T) {
	rows := byEmployee(report(t, sample(), AttendanceSummary))
	require.Len(t, rows, 2)

	sarah := rows["e1"]
	assert.Equal(t, "2025-03", sarah["monthYear"])
	assert.Equal(t, 2.0, sarah["daysWorked"])
	assert.Equal(t, 17.0, sarah["totalHoursWorked"])
	assert.Equal(t, 8.5, sarah["avgHoursPerDay"])
	assert.Equal(t, 1.0, sarah["lateArrivals"])
	assert.Equal(t, 2.0, sarah["overtimeHours"])

	michael := rows["e2"]
	assert.Equal(t, 1.0, michael["daysWorked"])
	assert.Equal(t, 0.0, michael["totalHoursWorked"])
	assert.Equal(t, 0.0, michael["lateArrivals"])
}

func TestExpiringContracts(t *testing.T) {
	rows := report(t, sample(), ExpiringContracts)
	require.Len(t, rows, 2)

	first, second := rows[0], rows[1]
	assert.Equal(t, 16.0, first["daysUntilExpiry"])
	assert.Equal(t, "CRITICAL - 30 days or less", first["urgencyStatus"])
	assert.Equal(t, "sarah@hrms.com", first["email"])
	assert.Equal(t, 2.0, first["contractDurationYears"])
	assert.Equal(t, 72000.0, first["salary"])

	assert.Equal(t, 71.0, second["daysUntilExpiry"])
	assert.Equal(t, "NOTICE - 90 days or less", second["urgencyStatus"])
	assert.Equal(t, 0.7, second["contractDurationYears"])
}

func TestLeaveBalance(t *testing.T) {
	rows := byEmployee(report(t, sample(), LeaveBalance))
	require.Len(t, rows, 2)

	sarah := rows["e1"]
	assert.Equal(t, 12.0, sarah["paidDaysUsed"])
	assert.Equal(t, 8.0, sarah["scheduledFutureDays"])
	assert.Equal(t, 2.0, sarah["sickDaysUsed"])
	assert.Equal(t, 2.0, sarah["remainingDays"])
	assert.Equal(t, "LOW - Less than 3 days", sarah["balanceStatus"])
	assert.Equal(t, 91.0, sarah["usagePercentage"])

	michael := rows["e2"]
	assert.Equal(t, 0.0, michael["paidDaysUsed"])
	assert.Equal(t, 0.0, michael["unpaidDaysUsed"])
	assert.Equal(t, 22.0, michael["remainingDays"])
	assert.Equal(t, "OK", michael["balanceStatus"])
}

func TestLabels(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "critical edge", got: Urgency(30), want: "CRITICAL - 30 days or less"},
		{name: "warning", got: Urgency(31), want: "WARNING - 60 days or less"},
		{name: "warning edge", got: Urgency(60), want: "WARNING - 60 days or less"},
		{name: "notice", got: Urgency(61), want: "NOTICE - 90 days or less"},
		{name: "depleted", got: BalanceStatus(0), want: "DEPLETED - No days remaining"},
		{name: "low", got: BalanceStatus(2), want: "LOW - Less than 3 days"},
		{name: "ok", got: BalanceStatus(3), want: "OK"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.got)
		})
	}
}

func TestReportFailsAsAGroup(t *testing.T) {
	d := &Deriver{Data: failing{entity: hr.EmployeeHistory}, Now: func() time.Time { return now }}
	_, err := d.Report(context.Background(), ActiveEmployees)
	assert.EqualError(t, err, "backend down")

	_, err = d.Report(context.Background(), Kind("payslips"))
	assert.ErrorIs(t, err, ErrUnknownReport)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = (&Deriver{Data: sample(), Now: time.Now}).Report(ctx, LeaveBalance)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOverviewOnDemoData(t *testing.T) {
	n := 0
	data := fixture(hr.Dataset(now, func() string { n++; return fmt.Sprintf("id-%d", n) }))
	d := &Deriver{Data: data, Now: func() time.Time { return now }}

	ov, err := d.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{TotalEmployees: 8, Departments: 5, ActiveContracts: 8, PendingLeaves: 3}, ov.Stats)
	require.Len(t, ov.Activity, 4)
	assert.Equal(t, "Contract expiring soon", ov.Activity[0].Action)
	assert.Equal(t, "Emily Davis", ov.Activity[0].Name)
}

func TestKinds(t *testing.T) {
	for _, k := range Kinds {
		parsed, ok := ParseKind(string(k))
		assert.True(t, ok)
		assert.Equal(t, k, parsed)
		assert.NotEmpty(t, k.Title())
	}
	_, ok := ParseKind("payroll")
	assert.False(t, ok)
}
