package reports

import (
	"context"
	"errors"

	"hrms/internal/domain/hr"
)

// Kind names a report; its value is the URL slug.
type Kind string

const (
	ActiveEmployees      Kind = "active-employees"
	DepartmentStatistics Kind = "department-statistics"
	AttendanceSummary    Kind = "attendance-summary"
	ExpiringContracts    Kind = "expiring-contracts"
	LeaveBalance         Kind = "leave-balance"
)

const (
	ExpiryWindowDays     = 90
	AnnualLeaveAllowance = 22
	WorkdayHours         = 8.0
	LateAfterHour        = 9
)

var Kinds = []Kind{ActiveEmployees, DepartmentStatistics, AttendanceSummary, ExpiringContracts, LeaveBalance}

var ErrUnknownReport = errors.New("unknown report")

var titles = map[Kind]string{
	ActiveEmployees:      "Active Employees",
	DepartmentStatistics: "Department Statistics",
	AttendanceSummary:    "Attendance Summary",
	ExpiringContracts:    "Expiring Contracts",
	LeaveBalance:         "Leave Balance",
}

func (k Kind) Valid() bool {
	_, ok := titles[k]
	return ok
}

func (k Kind) Title() string {
	return titles[k]
}

func ParseKind(raw string) (Kind, bool) {
	k := Kind(raw)
	return k, k.Valid()
}

// Source produces report rows.
type Source interface {
	Report(ctx context.Context, k Kind) ([]hr.Record, error)
}

// Lister reads entity collections.
type Lister interface {
	List(ctx context.Context, e hr.Entity) ([]hr.Record, error)
}
