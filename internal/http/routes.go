package httpx

import (
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	domainauth "github.com/showcase-labs/showcase-console/internal/domain/auth"
	"github.com/showcase-labs/showcase-console/internal/ports"
	"github.com/showcase-labs/showcase-console/internal/service"
)

// RouterServices holds all the services needed by the console router.
type RouterServices struct {
	Session     *service.SessionStore
	Credentials *service.CredentialService
	// Optional: defaults to a PreferenceService over Storage.
	Preferences *service.PreferenceService
	Storage     ports.KVStore
	// Configuration
	IsDev  bool         // Development mode flag for template hot reloading
	Logger *slog.Logger // Logger for template and HTTP errors (optional)
}

// NewRouter creates the console router: public entry forms, gated pages and probes.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()

	tr := setupRenderer(services.IsDev, logger)

	var prefs PreferenceStore
	switch {
	case services.Preferences != nil:
		prefs = services.Preferences
	case services.Storage != nil:
		prefs = service.NewPreferenceService(services.Storage)
	}

	var accounts AccountService
	if services.Credentials != nil {
		accounts = services.Credentials
	}

	entry := &EntryHandlers{Sessions: services.Session, T: tr, Logger: logger}
	pages := &PageHandlers{
		Sessions:    services.Session,
		Accounts:    accounts,
		Preferences: prefs,
		T:           tr,
		Logger:      logger,
	}

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /readyz", readinessHandler(services.Session, services.Storage, logger))

	registerEntryRoutes(mux, entry)
	registerPageRoutes(mux, pages, services.Session)

	return mux
}

func registerEntryRoutes(mux *http.ServeMux, h *EntryHandlers) {
	mux.HandleFunc("GET "+domainauth.LoginPath, h.LoginPage)
	mux.HandleFunc("POST "+domainauth.LoginPath, h.Login)
	mux.HandleFunc("GET "+domainauth.SignupPath, h.SignupPage)
	mux.HandleFunc("POST "+domainauth.SignupPath, h.Signup)
	mux.HandleFunc("GET "+domainauth.AdminLoginPath, h.AdminLoginPage)
	mux.HandleFunc("POST "+domainauth.AdminLoginPath, h.AdminLogin)
	mux.HandleFunc("POST "+LogoutPath, h.Logout)
	mux.HandleFunc("GET "+StatusPath, h.Status)
}

func registerPageRoutes(mux *http.ServeMux, h *PageHandlers, sessions SessionSnapshotter) {
	anyRole := RequireRoles(sessions)
	developer := RequireRoles(sessions, domainauth.RoleDeveloper)
	admin := RequireRoles(sessions, domainauth.RoleAdmin)

	mux.Handle("GET /{$}", anyRole(http.HandlerFunc(h.Home)))
	mux.Handle("GET "+ProfilePath, anyRole(http.HandlerFunc(h.ProfilePage)))
	if h.Accounts != nil {
		mux.Handle("POST "+ProfilePath, anyRole(http.HandlerFunc(h.UpdateProfile)))
		mux.HandleFunc("GET "+PasswordResetPath, h.PasswordResetPage)
		mux.HandleFunc("POST "+PasswordResetPath, h.RequestPasswordReset)
	}

	mux.Handle("GET "+domainauth.DeveloperDashboardPath, developer(http.HandlerFunc(h.DeveloperDashboard)))
	mux.Handle("GET "+domainauth.AdminDashboardPath, admin(http.HandlerFunc(h.AdminDashboard)))
	mux.Handle("POST "+AdminThemePath, admin(http.HandlerFunc(h.ToggleAdminTheme)))
}

// setupRenderer loads templates from disk in dev mode when the source tree is
// present, otherwise from the embedded copy.
func setupRenderer(isDev bool, logger *slog.Logger) *TemplateRenderer {
	var templateFS fs.FS
	if isDev {
		if st, err := os.Stat(TemplatePathFromRoot); err == nil && st.IsDir() {
			templateFS = os.DirFS(TemplatePathFromRoot)
		} else {
			logger.Warn("template directory not found; using embedded templates", "path", TemplatePathFromRoot)
		}
	}
	if templateFS == nil {
		templateFS = EmbeddedTemplateFS()
		isDev = false
	}

	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		DevMode:    isDev,
		Logger:     logger,
	})
	if err != nil {
		logger.Error("failed to create template renderer", slog.Any("error", err))
		return nil
	}
	return tr
}
