package middleware

import (
	"net/http"

	"hrms/internal/session"
)

// WaitFunc renders the interstitial shown while a session is still settling.
type WaitFunc func(w http.ResponseWriter, r *http.Request, message string)

func RequireAuthenticated(wait WaitFunc) func(http.Handler) http.Handler {
	return guard(session.RequireAuthenticated, wait)
}

func RequireAdmin(wait WaitFunc) func(http.Handler) http.Handler {
	return guard(session.RequireAdmin, wait)
}

func guard(check func(*session.Context) session.Verdict, wait WaitFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			verdict := check(session.FromContext(r.Context()))
			switch verdict.Decision {
			case session.Allow:
				next.ServeHTTP(w, r)
			case session.Wait:
				if wait == nil {
					http.Error(w, verdict.Message, http.StatusServiceUnavailable)
					return
				}
				wait(w, r, verdict.Message)
			default:
				http.Redirect(w, r, verdict.Location, http.StatusSeeOther)
			}
		})
	}
}
