package auth

import "strings"

// Principal is the authenticated identity as returned by the login backend.
type Principal struct {
	EmployeeID   string `json:"employeeId"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	PositionName string `json:"positionName"`
	RoleLevel    int    `json:"roleLevel"`
	Role         Role   `json:"role"`
}

func (p Principal) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// EffectiveRole derives the role from the numeric level, which is authoritative.
func (p Principal) EffectiveRole() Role {
	return RoleForLevel(p.RoleLevel)
}

type Account struct {
	Principal
	PasswordHash string
}
