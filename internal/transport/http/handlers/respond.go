// Package handlers holds the console pages. Shared responses live here; each
// area has its own subpackage.
package handlers

import (
	"errors"
	"net/http"

	"hrms/internal/apiclient"
	"hrms/internal/session"
	"hrms/internal/transport/http/views"
)

// Intercept answers the data-layer errors every page treats alike and reports
// whether it wrote a response. An expired authorization has already signed the
// session out, so the user is sent back to login. An insufficient authorization
// is left to the caller's own failure path.
func Intercept(w http.ResponseWriter, r *http.Request, err error) bool {
	if errors.Is(err, apiclient.ErrAuthorizationExpired) {
		http.Redirect(w, r, session.LoginPath, http.StatusSeeOther)
		return true
	}
	return false
}

func Denied(rv *views.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rv.Render(w, r, http.StatusForbidden, "denied", views.NewPage(w, r, "Access Denied", nil))
	}
}

func NotFound(rv *views.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rv.Render(w, r, http.StatusNotFound, "notfound", views.NewPage(w, r, "Page Not Found", nil))
	}
}

// Wait renders the interstitial shown while a session settles. It refreshes itself.
func Wait(rv *views.Renderer) func(http.ResponseWriter, *http.Request, string) {
	return func(w http.ResponseWriter, r *http.Request, message string) {
		rv.Render(w, r, http.StatusOK, "wait", views.NewPage(w, r, "", message))
	}
}
