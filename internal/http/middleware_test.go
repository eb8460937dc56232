package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	domainauth "github.com/showcase-labs/showcase-console/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSnapshot domainauth.Session

func (f fixedSnapshot) Snapshot() domainauth.Session { return domainauth.Session(f) }

func sessionAs(role domainauth.Role) fixedSnapshot {
	return fixedSnapshot{User: &domainauth.User{ID: "1", Name: "T", Role: role}}
}

func TestRequireRoles(t *testing.T) {
	admitted := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := CurrentUser(r.Context())
		if u == nil {
			http.Error(w, "no user in context", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name     string
		session  fixedSnapshot
		roles    []domainauth.Role
		wantCode int
		wantLoc  string
	}{
		{"loading", fixedSnapshot{Loading: true}, nil, http.StatusOK, ""},
		{"loading with user", fixedSnapshot{Loading: true, User: &domainauth.User{Role: domainauth.RoleAdmin}}, nil, http.StatusOK, ""},
		{"anonymous", fixedSnapshot{}, nil, http.StatusSeeOther, domainauth.LoginPath},
		{"anonymous on admin route", fixedSnapshot{}, []domainauth.Role{domainauth.RoleAdmin}, http.StatusSeeOther, domainauth.LoginPath},
		{"any role", sessionAs(domainauth.RoleUser), nil, http.StatusNoContent, ""},
		{"wrong role", sessionAs(domainauth.RoleUser), []domainauth.Role{domainauth.RoleDeveloper}, http.StatusSeeOther, domainauth.AdminLoginPath},
		{"allowed role", sessionAs(domainauth.RoleDeveloper), []domainauth.Role{domainauth.RoleDeveloper}, http.StatusNoContent, ""},
		{"unknown role on open route", sessionAs("superuser"), nil, http.StatusNoContent, ""},
		{"unknown role fails closed", sessionAs("superuser"), []domainauth.Role{domainauth.RoleAdmin}, http.StatusSeeOther, domainauth.AdminLoginPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := RequireRoles(tt.session, tt.roles...)(admitted)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantLoc, w.Header().Get("Location"))
			if tt.session.Loading {
				assert.Equal(t, retryAfterPending, w.Header().Get("Retry-After"))
				assert.Empty(t, w.Body.String())
			}
		})
	}
}

func TestRequireRoles_JSONCallers(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.Header.Set("Accept", contentTypeJSON)
	w := httptest.NewRecorder()
	RequireRoles(sessionAs(domainauth.RoleUser), domainauth.RoleAdmin)(next).ServeHTTP(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)
	body := decodeBody(t, w.Body.Bytes())
	assert.Equal(t, "redirect_admin_login", body["error"])
	assert.Equal(t, domainauth.AdminLoginPath, body["redirect"])

	// Browsers advertise JSON alongside HTML and still get redirected.
	r = httptest.NewRequest(http.MethodGet, "/x", nil)
	r.Header.Set("Accept", "text/html,application/json;q=0.9")
	w = httptest.NewRecorder()
	RequireRoles(fixedSnapshot{})(next).ServeHTTP(w, r)
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestLogging_RequestID(t *testing.T) {
	var seen string
	h := Logging(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
	assert.Equal(t, http.StatusTeapot, w.Code)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRecover(t *testing.T) {
	h := Recover(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	w := httptest.NewRecorder()
	assert.NotPanics(t, func() { h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil)) })
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestWantsJSON(t *testing.T) {
	tests := []struct {
		accept string
		want   bool
	}{
		{"", false},
		{"application/json", true},
		{"text/html", false},
		{"text/html, application/json", false},
		{"*/*", false},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.accept != "" {
			r.Header.Set("Accept", tt.accept)
		}
		assert.Equal(t, tt.want, wantsJSON(r), tt.accept)
	}
}
