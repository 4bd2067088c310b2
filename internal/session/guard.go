package session

// Decision is the outcome of a route guard.
type Decision int

const (
	Allow Decision = iota
	Wait
	Redirect
)

type Verdict struct {
	Decision Decision
	Location string
	Message  string
}

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

// RequireAuthenticated lets any signed-in principal through.
func RequireAuthenticated(s *Context) Verdict {
	if s == nil {
		return Verdict{Decision: Redirect, Location: LoginPath}
	}
	switch s.State() {
	case Loading:
		return Verdict{Decision: Wait, Message: "Checking authentication..."}
	case Authenticated:
		return Verdict{Decision: Allow}
	default:
		return Verdict{Decision: Redirect, Location: LoginPath}
	}
}

// RequireAdmin lets only role level 1 through; everyone else lands on the dashboard.
func RequireAdmin(s *Context) Verdict {
	if s == nil {
		return Verdict{Decision: Redirect, Location: DashboardPath}
	}
	if s.State() == Loading {
		return Verdict{Decision: Wait, Message: "Checking permissions..."}
	}
	if !s.IsAdmin() {
		return Verdict{Decision: Redirect, Location: DashboardPath}
	}
	return Verdict{Decision: Allow}
}
