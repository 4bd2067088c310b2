package auth

// Role is the coarse permission tier granted to a principal.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleReadOnly Role = "READ_ONLY"
	RoleNone     Role = "NONE"
)

// Numeric role levels as exchanged with the authentication backend.
const (
	LevelAdmin    = 1
	LevelReadOnly = 0
	LevelNone     = -1
)

func RoleForLevel(level int) Role {
	switch level {
	case LevelAdmin:
		return RoleAdmin
	case LevelReadOnly:
		return RoleReadOnly
	default:
		return RoleNone
	}
}

func (r Role) Level() int {
	switch r {
	case RoleAdmin:
		return LevelAdmin
	case RoleReadOnly:
		return LevelReadOnly
	default:
		return LevelNone
	}
}

// CanRead reports whether the role may see dashboards and reports.
func (r Role) CanRead() bool {
	return r == RoleAdmin || r == RoleReadOnly
}

// CanWrite reports whether the role may manage HR records.
func (r Role) CanWrite() bool {
	return r == RoleAdmin
}
