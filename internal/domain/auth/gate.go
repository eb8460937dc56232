package auth

// Console routes the gate and the entry flows navigate to.
const (
	HomePath               = "/"
	LoginPath              = "/login"
	SignupPath             = "/signup"
	AdminLoginPath         = "/admin/login"
	AdminDashboardPath     = "/admin/dashboard"
	DeveloperDashboardPath = "/developer/dashboard"
)

// Decision is the outcome of evaluating the authorization gate for one navigation.
type Decision int

const (
	// DecisionPending means hydration has not finished; render nothing yet.
	DecisionPending Decision = iota
	// DecisionRedirectLogin sends an anonymous visitor to the public login route.
	DecisionRedirectLogin
	// DecisionRedirectAdminLogin is the uniform target for an insufficient role.
	DecisionRedirectAdminLogin
	// DecisionRender lets the protected content render.
	DecisionRender
)

func (d Decision) String() string {
	switch d {
	case DecisionPending:
		return "pending"
	case DecisionRedirectLogin:
		return "redirect_login"
	case DecisionRedirectAdminLogin:
		return "redirect_admin_login"
	case DecisionRender:
		return "render"
	default:
		return "unknown"
	}
}

// RedirectPath returns the navigation target for redirect decisions and "" otherwise.
func (d Decision) RedirectPath() string {
	switch d {
	case DecisionRedirectLogin:
		return LoginPath
	case DecisionRedirectAdminLogin:
		return AdminLoginPath
	case DecisionPending, DecisionRender:
		return ""
	default:
		return ""
	}
}

// RoleSet is a small bitmask over the known roles. The zero value is the
// empty set, which the gate reads as "any authenticated user".
type RoleSet uint8

// NewRoleSet builds a set from roles. Unknown roles are ignored.
func NewRoleSet(roles ...Role) RoleSet {
	var s RoleSet
	for _, r := range roles {
		s |= roleBit(r)
	}
	return s
}

// Empty reports whether no role is in the set.
func (s RoleSet) Empty() bool { return s == 0 }

// Contains reports whether r is in the set. Unknown roles are never contained.
func (s RoleSet) Contains(r Role) bool {
	bit := roleBit(r)
	return bit != 0 && s&bit != 0
}

// Roles lists the members of the set in ascending privilege order.
func (s RoleSet) Roles() []Role {
	out := make([]Role, 0, 3)
	for _, r := range Roles() {
		if s.Contains(r) {
			out = append(out, r)
		}
	}
	return out
}

func roleBit(r Role) RoleSet {
	switch r {
	case RoleUser:
		return 1 << 0
	case RoleDeveloper:
		return 1 << 1
	case RoleAdmin:
		return 1 << 2
	default:
		return 0
	}
}

// Authorize decides whether a protected page may render for the given session.
// It is pure: no state survives between evaluations.
func Authorize(s Session, allowed RoleSet) Decision {
	if s.Loading {
		return DecisionPending
	}
	if s.User == nil {
		return DecisionRedirectLogin
	}
	if !allowed.Empty() && !allowed.Contains(s.User.Role) {
		return DecisionRedirectAdminLogin
	}
	return DecisionRender
}

// LandingPath is where the public login and signup forms navigate after success.
func LandingPath(r Role) string {
	switch r {
	case RoleDeveloper:
		return DeveloperDashboardPath
	case RoleUser, RoleAdmin:
		return HomePath
	default:
		return HomePath
	}
}
