package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	domainauth "github.com/showcase-labs/showcase-console/internal/domain/auth"
	apperrors "github.com/showcase-labs/showcase-console/internal/errors"
	"github.com/showcase-labs/showcase-console/internal/http/validation"
	"github.com/showcase-labs/showcase-console/internal/service"
)

// SessionManager is the session store surface the entry flows drive.
type SessionManager interface {
	SessionSnapshotter
	Login(ctx context.Context, in service.LoginInput) (*service.AuthResult, error)
	Signup(ctx context.Context, in service.SignupInput) (*service.AuthResult, error)
	Logout(ctx context.Context) error
	UpdateUser(u domainauth.User)
}

var _ SessionManager = (*service.SessionStore)(nil)

// EntryHandlers serves the login, signup and admin-login forms plus logout and status.
type EntryHandlers struct {
	Sessions SessionManager
	T        *TemplateRenderer
	Logger   *slog.Logger
}

func (h *EntryHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// entryRequest is the body of every entry form, as JSON or urlencoded.
type entryRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// readEntryRequest decodes the submission. It writes the error response and
// returns false when the body cannot be read.
func readEntryRequest(w http.ResponseWriter, r *http.Request) (entryRequest, bool) {
	if isJSONBody(r) {
		var req entryRequest
		if !DecodeJSON(w, r, &req) {
			return req, false
		}
		return req, true
	}
	if err := r.ParseForm(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
		return entryRequest{}, false
	}
	return entryRequest{
		Name:     r.PostFormValue(FieldName),
		Email:    r.PostFormValue(FieldEmail),
		Password: r.PostFormValue(FieldPassword),
		Role:     r.PostFormValue(FieldRole),
	}, true
}

// formFor echoes non-secret values back into the form.
func (req entryRequest) formFor(page string) FormView {
	form := newFormView()
	form.Values[FieldEmail] = strings.TrimSpace(req.Email)
	if page == PageSignup {
		form.Values[FieldName] = strings.TrimSpace(req.Name)
		form.Values[FieldRole] = req.Role
		form.Roles = domainauth.Roles()
	}
	return form
}

func pageTitle(page string) string {
	switch page {
	case PageLogin:
		return "Log in"
	case PageSignup:
		return "Sign up"
	case PageAdminLogin:
		return "Admin login"
	case PageAdminDashboard:
		return "Admin dashboard"
	case PageDeveloperDashboard:
		return "Developer dashboard"
	case PageProfile:
		return "Profile"
	case PagePasswordReset:
		return "Reset password"
	default:
		return "Home"
	}
}

// renderPage renders a full page, falling back to a plain 500 when templates are unavailable.
func renderPage(w http.ResponseWriter, t *TemplateRenderer, status int, data PageData) {
	if data.Title == "" {
		data.Title = pageTitle(data.Page)
	}
	if data.Form.Values == nil {
		data.Form = newFormView()
	}
	if t == nil {
		http.Error(w, "templates unavailable", http.StatusInternalServerError)
		return
	}
	if err := t.Render(w, status, data); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// LoginPage renders the public login form.
// GET /login.
func (h *EntryHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, entryRequest{}.formFor(PageLogin), PageLogin)
}

// SignupPage renders the signup form with the role picker.
// GET /signup.
func (h *EntryHandlers) SignupPage(w http.ResponseWriter, r *http.Request) {
	form := entryRequest{Role: string(domainauth.RoleUser)}.formFor(PageSignup)
	h.renderForm(w, r, http.StatusOK, form, PageSignup)
}

// AdminLoginPage renders the admin login form.
// GET /admin/login.
func (h *EntryHandlers) AdminLoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, entryRequest{}.formFor(PageAdminLogin), PageAdminLogin)
}

func (h *EntryHandlers) renderForm(w http.ResponseWriter, r *http.Request, status int, form FormView, page string) {
	renderPage(w, h.T, status, PageData{
		Page: page,
		User: h.Sessions.Snapshot().User,
		Form: form,
	})
	if status >= http.StatusInternalServerError {
		h.logger().WarnContext(r.Context(), "entry form failed", "page", page, "status", status)
	}
}

// Login submits the public login form. Developers land on their dashboard,
// everyone else on the home page.
// POST /login.
func (h *EntryHandlers) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := readEntryRequest(w, r)
	if !ok {
		return
	}
	form := req.formFor(PageLogin)
	if !h.validate(w, r, PageLogin, form, loginValidator(req)) {
		return
	}

	res, err := h.Sessions.Login(r.Context(), service.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		h.fail(w, r, PageLogin, form, credentialError(err))
		return
	}
	h.succeed(w, r, res.User, domainauth.LandingPath(res.User.Role))
}

// Signup submits the registration form and routes like Login.
// POST /signup.
func (h *EntryHandlers) Signup(w http.ResponseWriter, r *http.Request) {
	req, ok := readEntryRequest(w, r)
	if !ok {
		return
	}
	form := req.formFor(PageSignup)
	fv := validation.New().
		Validate(FieldName, req.Name, validation.Required("Full name", maxNameLength)).
		Validate(FieldEmail, req.Email, validation.Email("Email")).
		Validate(FieldPassword, req.Password, validation.Present("Password")).
		Validate(FieldRole, req.Role, validation.OneOf("Role", roleOptions()))
	if !h.validate(w, r, PageSignup, form, fv) {
		return
	}

	res, err := h.Sessions.Signup(r.Context(), service.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domainauth.Role(strings.ToLower(strings.TrimSpace(req.Role))),
	})
	if err != nil {
		h.fail(w, r, PageSignup, form, credentialError(err))
		return
	}
	h.succeed(w, r, res.User, domainauth.LandingPath(res.User.Role))
}

// AdminLogin submits the admin form. A successful login whose role is not
// admin stays authenticated and gets the access-denied message.
// POST /admin/login.
func (h *EntryHandlers) AdminLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := readEntryRequest(w, r)
	if !ok {
		return
	}
	form := req.formFor(PageAdminLogin)
	if !h.validate(w, r, PageAdminLogin, form, loginValidator(req)) {
		return
	}

	res, err := h.Sessions.Login(r.Context(), service.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		h.fail(w, r, PageAdminLogin, form, credentialError(err))
		return
	}
	if res.User.Role != domainauth.RoleAdmin {
		h.logger().InfoContext(r.Context(), "admin login by non-admin", "user_id", res.User.ID, "role", res.User.Role)
		h.fail(w, r, PageAdminLogin, form, apperrors.Forbidden(MsgAdminRequired))
		return
	}
	h.succeed(w, r, res.User, domainauth.AdminDashboardPath)
}

// Logout ends the session and returns to the login form.
// POST /logout.
func (h *EntryHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Logout(r.Context()); err != nil {
		h.logger().ErrorContext(r.Context(), "logout failed", "error", err)
		if wantsJSON(r) {
			WriteError(w, ErrorParams{
				Code:    http.StatusInternalServerError,
				ErrCode: "logout_failed",
				Err:     errors.New(MsgGenericFailure),
			})
			return
		}
		http.Error(w, MsgGenericFailure, http.StatusInternalServerError)
		return
	}

	if wantsJSON(r) {
		WriteJSON(w, http.StatusOK, map[string]string{
			"status":      "success",
			"redirect_to": domainauth.LoginPath,
		})
		return
	}
	http.Redirect(w, r, domainauth.LoginPath, http.StatusSeeOther)
}

// Status returns the current session snapshot.
// GET /auth/status.
func (h *EntryHandlers) Status(w http.ResponseWriter, r *http.Request) {
	snap := h.Sessions.Snapshot()
	body := map[string]any{
		"loading":       snap.Loading,
		"authenticated": snap.Authenticated(),
	}
	if snap.User != nil {
		body["user"] = snap.User
	}
	w.Header().Set("Cache-Control", "no-store")
	WriteJSON(w, http.StatusOK, body)
}

func loginValidator(req entryRequest) *validation.FieldValidator {
	return validation.New().
		Validate(FieldEmail, req.Email, validation.Email("Email")).
		Validate(FieldPassword, req.Password, validation.Present("Password"))
}

func roleOptions() []string {
	roles := domainauth.Roles()
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, r.String())
	}
	return out
}

// validate answers 422 with every field error when fv failed.
func (h *EntryHandlers) validate(
	w http.ResponseWriter,
	r *http.Request,
	page string,
	form FormView,
	fv *validation.FieldValidator,
) bool {
	if fv.Valid() {
		return true
	}
	writeValidationErrors(w, r, fv.Errors(), func(status int) {
		for k, v := range fv.Errors() {
			form.Errors[k] = v
		}
		h.renderForm(w, r, status, form, page)
	})
	return false
}

func writeValidationErrors(w http.ResponseWriter, r *http.Request, errs map[string]string, render func(int)) {
	if wantsJSON(r) {
		WriteJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  string(apperrors.ErrCodeValidation),
			"fields": errs,
		})
		return
	}
	render(http.StatusUnprocessableEntity)
}

// fail re-renders the form with err placed on its field, or answers JSON callers.
func (h *EntryHandlers) fail(w http.ResponseWriter, r *http.Request, page string, form FormView, err error) {
	placeError(&form, err)
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger().ErrorContext(r.Context(), "entry flow failed", "page", page, "error", err)
	}

	if wantsJSON(r) {
		field := apperrors.GetField(err)
		msgKey := field
		if msgKey == "" {
			msgKey = FieldForm
		}
		WriteError(w, ErrorParams{
			Code:    status,
			ErrCode: errorCode(err),
			Err:     errors.New(form.Errors[msgKey]),
			Field:   field,
		})
		return
	}
	h.renderForm(w, r, status, form, page)
}

func (h *EntryHandlers) succeed(w http.ResponseWriter, r *http.Request, u domainauth.User, target string) {
	if wantsJSON(r) {
		WriteJSON(w, http.StatusOK, map[string]any{
			"user":        u,
			"redirect_to": target,
		})
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
