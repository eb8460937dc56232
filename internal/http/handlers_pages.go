package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	domainauth "github.com/showcase-labs/showcase-console/internal/domain/auth"
	"github.com/showcase-labs/showcase-console/internal/http/validation"
	"github.com/showcase-labs/showcase-console/internal/service"
)

// AccountService covers the local-only account operations.
type AccountService interface {
	UpdateProfile(ctx context.Context, patch service.ProfilePatch) (domainauth.User, error)
	RequestPasswordReset(ctx context.Context, email string) (service.PasswordResetAck, error)
}

// PreferenceStore reads and flips the admin theme.
type PreferenceStore interface {
	AdminTheme(ctx context.Context) (service.Theme, error)
	ToggleAdminTheme(ctx context.Context) (service.Theme, error)
}

var (
	_ AccountService  = (*service.CredentialService)(nil)
	_ PreferenceStore = (*service.PreferenceService)(nil)
)

// PageHandlers serves the gated console pages.
type PageHandlers struct {
	Sessions    SessionManager
	Accounts    AccountService
	Preferences PreferenceStore
	T           *TemplateRenderer
	Logger      *slog.Logger
}

func (h *PageHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Home is the landing page for any authenticated role.
func (h *PageHandlers) Home(w http.ResponseWriter, r *http.Request) {
	renderPage(w, h.T, http.StatusOK, PageData{Page: PageHome, User: CurrentUser(r.Context())})
}

// DeveloperDashboard is the developer landing page.
func (h *PageHandlers) DeveloperDashboard(w http.ResponseWriter, r *http.Request) {
	renderPage(w, h.T, http.StatusOK, PageData{Page: PageDeveloperDashboard, User: CurrentUser(r.Context())})
}

// AdminDashboard renders the admin area in the stored theme.
func (h *PageHandlers) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	renderPage(w, h.T, http.StatusOK, PageData{
		Page:  PageAdminDashboard,
		User:  CurrentUser(r.Context()),
		Theme: h.adminTheme(r.Context()),
	})
}

func (h *PageHandlers) adminTheme(ctx context.Context) service.Theme {
	if h.Preferences == nil {
		return service.ThemeLight
	}
	theme, err := h.Preferences.AdminTheme(ctx)
	if err != nil {
		h.logger().WarnContext(ctx, "read admin theme", "error", err)
	}
	return theme
}

// ToggleAdminTheme flips the admin theme and returns to the dashboard.
// POST /admin/theme.
func (h *PageHandlers) ToggleAdminTheme(w http.ResponseWriter, r *http.Request) {
	if h.Preferences == nil {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	theme, err := h.Preferences.ToggleAdminTheme(r.Context())
	if err != nil {
		h.logger().ErrorContext(r.Context(), "toggle admin theme", "error", err)
		if wantsJSON(r) {
			WriteError(w, ErrorParams{
				Code:    http.StatusInternalServerError,
				ErrCode: "theme_failed",
				Err:     errors.New(MsgGenericFailure),
			})
			return
		}
		http.Error(w, MsgGenericFailure, http.StatusInternalServerError)
		return
	}
	if wantsJSON(r) {
		WriteJSON(w, http.StatusOK, map[string]string{"theme": string(theme)})
		return
	}
	http.Redirect(w, r, domainauth.AdminDashboardPath, http.StatusSeeOther)
}

func profileForm(u *domainauth.User) FormView {
	form := newFormView()
	if u != nil {
		form.Values[FieldName] = u.Name
		form.Values[FieldProfileImage] = u.ProfileImage
	}
	return form
}

// ProfilePage shows the cached profile for editing.
// GET /profile.
func (h *PageHandlers) ProfilePage(w http.ResponseWriter, r *http.Request) {
	u := CurrentUser(r.Context())
	renderPage(w, h.T, http.StatusOK, PageData{Page: PageProfile, User: u, Form: profileForm(u)})
}

type profileRequest struct {
	Name         *string `json:"name"`
	ProfileImage *string `json:"profileImage"`
}

// UpdateProfile edits the cached user and the live session. The backend is not told.
// POST /profile.
func (h *PageHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if isJSONBody(r) {
		if !DecodeJSON(w, r, &req) {
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
			return
		}
		name := r.PostFormValue(FieldName)
		img := r.PostFormValue(FieldProfileImage)
		req = profileRequest{Name: &name, ProfileImage: &img}
	}

	current := CurrentUser(r.Context())
	form := profileForm(current)
	fv := validation.New()
	if req.Name != nil {
		form.Values[FieldName] = *req.Name
		fv.Validate(FieldName, *req.Name, validation.Required("Full name", maxNameLength))
	}
	if req.ProfileImage != nil {
		form.Values[FieldProfileImage] = *req.ProfileImage
		fv.Validate(FieldProfileImage, *req.ProfileImage, validation.OptionalHTTPURL("Profile image", maxProfileImageLen))
	}
	if !fv.Valid() {
		writeValidationErrors(w, r, fv.Errors(), func(status int) {
			for k, v := range fv.Errors() {
				form.Errors[k] = v
			}
			renderPage(w, h.T, status, PageData{Page: PageProfile, User: current, Form: form})
		})
		return
	}

	u, err := h.Accounts.UpdateProfile(r.Context(), service.ProfilePatch{Name: req.Name, ProfileImage: req.ProfileImage})
	if err != nil {
		status := errorStatus(err)
		if status >= http.StatusInternalServerError {
			h.logger().ErrorContext(r.Context(), "update profile", "error", err)
		}
		placeError(&form, err)
		if wantsJSON(r) {
			WriteError(w, ErrorParams{Code: status, ErrCode: errorCode(err), Err: errors.New(firstError(form))})
			return
		}
		renderPage(w, h.T, status, PageData{Page: PageProfile, User: current, Form: form})
		return
	}
	h.Sessions.UpdateUser(u)

	if wantsJSON(r) {
		WriteJSON(w, http.StatusOK, map[string]any{"user": u})
		return
	}
	renderPage(w, h.T, http.StatusOK, PageData{Page: PageProfile, User: &u, Form: profileForm(&u), Flash: MsgProfileSaved})
}

func firstError(form FormView) string {
	if msg := form.Errors[FieldForm]; msg != "" {
		return msg
	}
	for _, msg := range form.Errors {
		return msg
	}
	return MsgGenericFailure
}

// PasswordResetPage renders the reset request form. It is public.
// GET /password-reset.
func (h *PageHandlers) PasswordResetPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, h.T, http.StatusOK, PageData{Page: PagePasswordReset, User: h.Sessions.Snapshot().User})
}

// RequestPasswordReset acknowledges a reset request without revealing whether the account exists.
// POST /password-reset.
func (h *PageHandlers) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	req, ok := readEntryRequest(w, r)
	if !ok {
		return
	}
	form := newFormView()
	form.Values[FieldEmail] = req.Email
	user := h.Sessions.Snapshot().User

	fv := validation.New().Validate(FieldEmail, req.Email, validation.Email("Email"))
	if !fv.Valid() {
		writeValidationErrors(w, r, fv.Errors(), func(status int) {
			form.Errors[FieldEmail] = fv.Errors()[FieldEmail]
			renderPage(w, h.T, status, PageData{Page: PagePasswordReset, User: user, Form: form})
		})
		return
	}

	ack, err := h.Accounts.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		placeError(&form, err)
		status := errorStatus(err)
		if wantsJSON(r) {
			WriteError(w, ErrorParams{Code: status, ErrCode: errorCode(err), Err: errors.New(firstError(form)), Field: FieldEmail})
			return
		}
		renderPage(w, h.T, status, PageData{Page: PagePasswordReset, User: user, Form: form})
		return
	}

	if wantsJSON(r) {
		WriteJSON(w, http.StatusAccepted, map[string]any{
			"message":      MsgResetRequested,
			"requested_at": ack.RequestedAt,
		})
		return
	}
	renderPage(w, h.T, http.StatusOK, PageData{Page: PagePasswordReset, User: user, Form: form, Flash: MsgResetRequested})
}
