package authhandler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/form"

	"hrms/internal/domain/auth"
	"hrms/internal/platform/logging"
	"hrms/internal/session"
	"hrms/internal/transport/http/views"
)

// Registrar records a sign-up.
type Registrar interface {
	Register(ctx context.Context, reg auth.Registration) (auth.Principal, error)
}

type Handler struct {
	Views     *views.Renderer
	Registrar Registrar
	// Demo accounts are offered on the login page when set.
	Demo []auth.DemoAccount
	Now  func() time.Time

	decoder *form.Decoder
}

func NewHandler(rv *views.Renderer, registrar Registrar, demo []auth.DemoAccount) *Handler {
	return &Handler{Views: rv, Registrar: registrar, Demo: demo, Now: time.Now, decoder: form.NewDecoder()}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get(session.LoginPath, h.handleLoginPage)
	r.Post(session.LoginPath, h.handleLogin)
	r.Post("/logout", h.handleLogout)
	r.Get("/register", h.handleRegisterPage)
	r.Post("/register", h.handleRegister)
}

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

const (
	messageInvalidCredentials = "Invalid email or password"
	messageLoginFailed        = "Login failed"
)

func (h *Handler) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if session.FromContext(r.Context()).IsAuthenticated() {
		http.Redirect(w, r, session.DashboardPath, http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, http.StatusOK, views.LoginView{})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginForm
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, http.StatusBadRequest, views.LoginView{Error: messageLoginFailed})
		return
	}
	if err := h.decoder.Decode(&payload, r.PostForm); err != nil {
		h.renderLogin(w, r, http.StatusBadRequest, views.LoginView{Error: messageLoginFailed})
		return
	}

	s := session.FromContext(r.Context())
	if s == nil {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}
	_, err := s.Login(r.Context(), payload.Email, payload.Password)
	switch {
	case errors.Is(err, auth.ErrAccessDenied):
		http.Redirect(w, r, "/access-denied", http.StatusSeeOther)
		return
	case errors.Is(err, auth.ErrInvalidCredentials):
		h.renderLogin(w, r, http.StatusUnauthorized, views.LoginView{Email: payload.Email, Error: messageInvalidCredentials})
		return
	case err != nil:
		logging.FromContext(r.Context()).WithError(err).Warn("login failed")
		h.renderLogin(w, r, http.StatusBadGateway, views.LoginView{Email: payload.Email, Error: messageLoginFailed})
		return
	}

	views.SetFlash(w, "success", "Welcome back! You have successfully logged in.")
	http.Redirect(w, r, session.DashboardPath, http.StatusSeeOther)
}

func (h *Handler) renderLogin(w http.ResponseWriter, r *http.Request, status int, v views.LoginView) {
	v.Demo = h.Demo
	h.Views.Render(w, r, status, "login", views.NewPage(w, r, "Sign in", v))
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if s := session.FromContext(r.Context()); s != nil {
		s.Logout()
	}
	http.Redirect(w, r, session.LoginPath, http.StatusSeeOther)
}

func (h *Handler) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	h.renderRegister(w, r, http.StatusOK, 1, auth.Registration{}, "")
}

// handleRegister advances the wizard. Each step is validated before moving on;
// the final step validates everything and hands the account to the registrar.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var reg auth.Registration
	if err := r.ParseForm(); err != nil {
		h.renderRegister(w, r, http.StatusBadRequest, 1, reg, "Registration failed. Please try again.")
		return
	}
	if err := h.decoder.Decode(&reg, r.PostForm); err != nil {
		h.renderRegister(w, r, http.StatusBadRequest, 1, reg, "Registration failed. Please try again.")
		return
	}
	step, err := strconv.Atoi(r.PostForm.Get("step"))
	if err != nil || step < 1 || step > auth.RegistrationSteps {
		step = 1
	}

	now := h.Now()
	switch r.PostForm.Get("action") {
	case "back":
		h.renderRegister(w, r, http.StatusOK, max(step-1, 1), reg, "")
		return
	case "next":
		if msg := reg.ValidateStep(step, now); msg != "" {
			h.renderRegister(w, r, http.StatusUnprocessableEntity, step, reg, msg)
			return
		}
		h.renderRegister(w, r, http.StatusOK, min(step+1, auth.RegistrationSteps), reg, "")
		return
	}

	for s := 1; s <= auth.RegistrationSteps; s++ {
		if msg := reg.ValidateStep(s, now); msg != "" {
			h.renderRegister(w, r, http.StatusUnprocessableEntity, s, reg, msg)
			return
		}
	}
	if h.Registrar == nil {
		h.renderRegister(w, r, http.StatusServiceUnavailable, step, reg, "Registration is not available.")
		return
	}
	if _, err := h.Registrar.Register(r.Context(), reg); err != nil {
		msg := "Registration failed. Please try again."
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, auth.ErrEmailTaken):
			msg, status = "An account with this email already exists.", http.StatusConflict
		case errors.Is(err, auth.ErrPasswordTooShort), errors.Is(err, auth.ErrPasswordTooWeak):
			msg, status = passwordMessage(err), http.StatusUnprocessableEntity
		default:
			logging.FromContext(r.Context()).WithError(err).Warn("registration failed")
		}
		h.renderRegister(w, r, status, auth.RegistrationSteps, reg, msg)
		return
	}

	views.SetFlash(w, "success", "Registration Successful! Your account has been created. Please log in.")
	http.Redirect(w, r, session.LoginPath, http.StatusSeeOther)
}

func passwordMessage(err error) string {
	if errors.Is(err, auth.ErrPasswordTooShort) {
		return "Password must be at least 8 characters long."
	}
	return "Password must contain upper case, lower case and a digit."
}

func (h *Handler) renderRegister(w http.ResponseWriter, r *http.Request, status, step int, reg auth.Registration, msg string) {
	v := views.RegisterView{
		Step:      step,
		Total:     auth.RegistrationSteps,
		StepTitle: auth.RegistrationStepTitles[step-1],
		Error:     msg,
		Sections:  registerSections(reg),
	}
	h.Views.Render(w, r, status, "register", views.NewPage(w, r, "Register", v))
}
