package hr

import "strings"

// Entity names an HR collection. The value doubles as the REST resource path.
type Entity string

const (
	Regions         Entity = "regions"
	Countries       Entity = "countries"
	Departments     Entity = "departments"
	Positions       Entity = "positions"
	Employees       Entity = "employees"
	EmployeeHistory Entity = "employee-history"
	Attendance      Entity = "attendance"
	Contracts       Entity = "contracts"
	Payroll         Entity = "payroll"
	Leaves          Entity = "leaves"
)

// Entities lists every collection in dependency order: referenced collections come first.
var Entities = []Entity{
	Regions,
	Countries,
	Departments,
	Positions,
	Employees,
	EmployeeHistory,
	Attendance,
	Contracts,
	Payroll,
	Leaves,
}

type entityMeta struct {
	idField  string
	singular string
	joins    []Join
}

var metas = map[Entity]entityMeta{
	Regions:   {idField: "regionId", singular: "Region"},
	Countries: {idField: "countryId", singular: "Country", joins: []Join{{Key: "regionId", Target: Regions, Field: "regionName"}}},
	Departments: {idField: "departmentId", singular: "Department", joins: []Join{
		{Key: "countryId", Target: Countries, Field: "countryName"},
	}},
	Positions: {idField: "positionId", singular: "Position"},
	Employees: {idField: "employeeId", singular: "Employee", joins: []Join{
		{Key: "managerId", Target: Employees, Field: "managerName", Resolve: FullName},
	}},
	EmployeeHistory: {idField: "employeeHistoryId", singular: "Employee history record", joins: []Join{
		{Key: "employeeId", Target: Employees, Field: "employeeName", Resolve: FullName},
		{Key: "departmentId", Target: Departments, Field: "departmentName"},
		{Key: "positionId", Target: Positions, Field: "positionName"},
	}},
	Attendance: {idField: "attendanceId", singular: "Attendance record", joins: []Join{
		{Key: "employeeId", Target: Employees, Field: "employeeName", Resolve: FullName},
	}},
	Contracts: {idField: "contractId", singular: "Contract", joins: []Join{
		{Key: "employeeId", Target: Employees, Field: "employeeName", Resolve: FullName},
	}},
	Payroll: {idField: "payrollId", singular: "Payroll record", joins: []Join{
		{Key: "employeeId", Target: Employees, Field: "employeeName", Resolve: FullName},
	}},
	Leaves: {idField: "leaveId", singular: "Leave", joins: []Join{
		{Key: "employeeId", Target: Employees, Field: "employeeName", Resolve: FullName},
	}},
}

func (e Entity) Valid() bool {
	_, ok := metas[e]
	return ok
}

// IDField is the record key holding the identifier.
func (e Entity) IDField() string {
	return metas[e].idField
}

// Singular is the human noun used in notifications and errors.
func (e Entity) Singular() string {
	if meta, ok := metas[e]; ok {
		return meta.singular
	}
	return strings.TrimSuffix(string(e), "s")
}

func (e Entity) Joins() []Join {
	return metas[e].joins
}

func ParseEntity(raw string) (Entity, bool) {
	e := Entity(strings.ToLower(strings.TrimSpace(raw)))
	return e, e.Valid()
}

const (
	GenderMale   = "male"
	GenderFemale = "female"

	ContractPermanent  = "permanent"
	ContractTemporary  = "temporary"
	ContractInternship = "internship"

	LeavePaid   = "paid"
	LeaveSick   = "sick"
	LeaveUnpaid = "unpaid"
)

var (
	Genders       = []string{GenderMale, GenderFemale}
	ContractTypes = []string{ContractPermanent, ContractTemporary, ContractInternship}
	LeaveTypes    = []string{LeavePaid, LeaveSick, LeaveUnpaid}
)
