package devapi

// Package devapi is a small in-memory backend that speaks the console's auth
// wire protocol. It exists for local development and end-to-end tests.

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/showcase-labs/showcase-console/internal/apiclient"
	domainauth "github.com/showcase-labs/showcase-console/internal/domain/auth"
)

// Error codes beyond the ones the console places on form fields.
const (
	CodeValidation   = "VALIDATION"
	CodeUnauthorized = "UNAUTHORIZED"
)

// Options configures a Server.
type Options struct {
	Secret   []byte
	TokenTTL time.Duration
	// NameField is the JSON key used for the display name: fullName, full_name or name.
	NameField        string
	AllowAdminSignup bool
	// SeedPassword, when non-empty, seeds one account per role.
	SeedPassword string
	BcryptCost   int
	Logger       *slog.Logger
	Now          func() time.Time
}

// Server owns the account registry and the gin engine.
type Server struct {
	engine     *gin.Engine
	accounts   *accounts
	tokens     *tokenManager
	nameField  string
	allowAdmin bool
	logger     *slog.Logger
}

// Seed accounts, one per role.
var seedAccounts = []struct {
	id, name, email string
	role            domainauth.Role
}{
	{"1", "Uma User", "user@example.com", domainauth.RoleUser},
	{"2", "Dev Eloper", "dev@example.com", domainauth.RoleDeveloper},
	{"adm-3", "Ada Admin", "admin@example.com", domainauth.RoleAdmin},
}

// NewServer builds a Server and seeds its accounts.
func NewServer(opts Options) (*Server, error) {
	if len(opts.Secret) == 0 {
		return nil, errors.New("devapi: signing secret is required")
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		accounts:   newAccounts(opts.BcryptCost),
		tokens:     &tokenManager{secret: opts.Secret, ttl: opts.TokenTTL, now: opts.Now},
		nameField:  opts.NameField,
		allowAdmin: opts.AllowAdminSignup,
		logger:     logger,
	}
	switch s.nameField {
	case "fullName", "full_name", "name":
	default:
		s.nameField = "fullName"
	}

	if opts.SeedPassword != "" {
		for _, a := range seedAccounts {
			if _, err := s.accounts.add(a.id, a.name, a.email, opts.SeedPassword, a.role); err != nil {
				return nil, err
			}
		}
	}

	s.engine = s.routes()
	return s, nil
}

// Handler returns the HTTP handler. Routes live under /api.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	api := r.Group("/api/auth")
	api.POST("/login", s.login)
	api.POST("/signup", s.signup)
	api.GET("/me", s.me)
	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("devapi request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.GetHeader(apiclient.RequestIDHeader),
		)
	}
}

func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message, "code": code})
}

func (s *Server) userBody(a *account) gin.H {
	return gin.H{
		"id":        domainauth.UserID(a.ID),
		s.nameField: a.Name,
		"email":     a.Email,
		"role":      string(a.Role),
	}
}

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeValidation, "invalid request body")
		return
	}

	acct, err := s.accounts.authenticate(req.Email, req.Password)
	switch {
	case errors.Is(err, errEmailNotFound):
		respondError(c, http.StatusUnauthorized, apiclient.CodeEmailNotFound, "No account found with that email")
		return
	case errors.Is(err, errPasswordIncorrect):
		respondError(c, http.StatusUnauthorized, apiclient.CodePasswordIncorrect, "Incorrect password")
		return
	case err != nil:
		respondError(c, http.StatusInternalServerError, "", "login failed")
		return
	}

	s.issue(c, http.StatusOK, acct)
}

type signupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s *Server) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeValidation, "invalid request body")
		return
	}
	name := strings.TrimSpace(req.FullName)
	if name == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, CodeValidation, "fullName, email and password are required")
		return
	}
	role, err := domainauth.ParseRole(req.Role)
	if err != nil {
		respondError(c, http.StatusBadRequest, CodeValidation, err.Error())
		return
	}
	if role == domainauth.RoleAdmin && !s.allowAdmin {
		role = domainauth.RoleUser
	}

	acct, err := s.accounts.add("", name, req.Email, req.Password, role)
	if errors.Is(err, errEmailTaken) {
		respondError(c, http.StatusConflict, apiclient.CodeEmailTaken, "An account with that email already exists")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "", "signup failed")
		return
	}

	s.logger.Info("devapi account created", "user_id", acct.ID, "role", acct.Role)
	s.issue(c, http.StatusCreated, acct)
}

func (s *Server) issue(c *gin.Context, status int, acct *account) {
	token, err := s.tokens.issue(acct)
	if err != nil {
		s.logger.Error("devapi token issue failed", "error", err)
		respondError(c, http.StatusInternalServerError, "", "token issue failed")
		return
	}
	c.JSON(status, gin.H{"token": token, "user": s.userBody(acct)})
}

func (s *Server) me(c *gin.Context) {
	raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		respondError(c, http.StatusUnauthorized, CodeUnauthorized, "missing bearer token")
		return
	}
	sub, err := s.tokens.parse(strings.TrimSpace(raw))
	if err != nil {
		respondError(c, http.StatusUnauthorized, CodeUnauthorized, "invalid or expired token")
		return
	}
	acct, ok := s.accounts.get(sub)
	if !ok {
		respondError(c, http.StatusUnauthorized, CodeUnauthorized, "unknown user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": s.userBody(acct)})
}
