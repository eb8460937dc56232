package httpx

// Page identifiers used by templates and navigation. Each maps to a
// "page-<id>" template via ContentTemplateFor.
const (
	PageHome               = "home"
	PageLogin              = "login"
	PageSignup             = "signup"
	PageAdminLogin         = "admin-login"
	PageAdminDashboard     = "admin-dashboard"
	PageDeveloperDashboard = "developer-dashboard"
	PageProfile            = "profile"
	PagePasswordReset      = "password-reset"
)

// Console routes outside the gate's own set.
const (
	LogoutPath        = "/logout"
	StatusPath        = "/auth/status"
	ProfilePath       = "/profile"
	PasswordResetPath = "/password-reset"
	AdminThemePath    = "/admin/theme"
)

// Form field keys. FieldForm is the submit-level slot.
const (
	FieldName         = "name"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldRole         = "role"
	FieldProfileImage = "profileImage"
	FieldForm         = "form"
)

// User-facing messages.
const (
	MsgAdminRequired  = "Access denied. Admin privileges required."
	MsgEmailNotFound  = "No account found with that email."
	MsgWrongPassword  = "Incorrect password."
	MsgRejected       = "That request was not accepted. Check your details and try again."
	MsgGenericFailure = "Something went wrong. Please try again."
	MsgProfileSaved   = "Profile updated."
	MsgResetRequested = "If an account exists for that address, reset instructions are on their way."
)

const (
	maxNameLength      = 120
	maxProfileImageLen = 2048
)

const (
	contentTypeJSON = "application/json"
	// retryAfterPending is sent while the session is still hydrating.
	retryAfterPending = "1"
)
