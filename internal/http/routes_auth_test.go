package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/showcase-labs/showcase-console/internal/apiclient"
	domainauth "github.com/showcase-labs/showcase-console/internal/domain/auth"
	"github.com/showcase-labs/showcase-console/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestRouter_DeveloperLoginThenNavigate(t *testing.T) {
	f := newConsoleFixture(t, fixtureOptions{})
	f.api.LoginFunc = func(_ context.Context, req ports.LoginRequest) (ports.AuthResponse, error) {
		assert.Equal(t, "a@b.com", req.Email)
		assert.Equal(t, "pw", req.Password)
		return ports.AuthResponse{Token: "t1", User: ports.RawUser{"id": 1, "role": "developer"}}, nil
	}

	w := f.postForm(domainauth.LoginPath, loginValues("a@b.com", "pw"))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, domainauth.DeveloperDashboardPath, w.Header().Get("Location"))

	token, ok, err := f.persistence.Token(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "t1", token)

	t.Run("developer route renders", func(t *testing.T) {
		w := f.get(domainauth.DeveloperDashboardPath)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Developer dashboard")
	})

	t.Run("admin route redirects to admin login", func(t *testing.T) {
		w := f.get(domainauth.AdminDashboardPath)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, domainauth.AdminLoginPath, w.Header().Get("Location"))
	})

	t.Run("any-role route renders", func(t *testing.T) {
		w := f.get(domainauth.HomePath)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRouter_NoStoredSessionRedirectsToLogin(t *testing.T) {
	f := newConsoleFixture(t, fixtureOptions{})
	snap := f.session.Snapshot()
	require.False(t, snap.Loading)
	require.Nil(t, snap.User)

	for _, path := range []string{
		domainauth.HomePath,
		ProfilePath,
		domainauth.DeveloperDashboardPath,
		domainauth.AdminDashboardPath,
	} {
		t.Run(path, func(t *testing.T) {
			w := f.get(path)
			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, domainauth.LoginPath, w.Header().Get("Location"))
		})
	}

	t.Run("json caller gets 401", func(t *testing.T) {
		w := f.getJSON(domainauth.AdminDashboardPath)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		body := decodeBody(t, w.Body.Bytes())
		assert.Equal(t, domainauth.LoginPath, body["redirect"])
	})

	t.Run("admin theme toggle is gated", func(t *testing.T) {
		w := f.postForm(AdminThemePath, url.Values{})
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, domainauth.LoginPath, w.Header().Get("Location"))
	})
}

func TestRouter_AdminLoginWithNonAdminStaysAuthenticated(t *testing.T) {
	f := newConsoleFixture(t, fixtureOptions{})
	f.api.LoginFunc = func(context.Context, ports.LoginRequest) (ports.AuthResponse, error) {
		return ports.AuthResponse{Token: "t2", User: ports.RawUser{"id": 4, "name": "Regular", "role": "user"}}, nil
	}

	w := f.postForm(domainauth.AdminLoginPath, loginValues("u@b.com", "pw"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), MsgAdminRequired)

	u := f.session.User()
	require.NotNil(t, u, "session is not logged out")
	assert.Equal(t, domainauth.RoleUser, u.Role)

	_, ok, err := f.persistence.Token(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, http.StatusOK, f.get(domainauth.HomePath).Code)
	w = f.get(domainauth.AdminDashboardPath)
	assert.Equal(t, domainauth.AdminLoginPath, w.Header().Get("Location"))
}

func TestRouter_AdminLoginJSON(t *testing.T) {
	f := newConsoleFixture(t, fixtureOptions{})

	w := f.postJSON(domainauth.AdminLoginPath, `{"email":"user@example.com","password":"password"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	body := decodeBody(t, w.Body.Bytes())
	assert.Equal(t, MsgAdminRequired, body["message"])
	assert.Equal(t, "forbidden", body["error"])

	w = f.postJSON(domainauth.AdminLoginPath, `{"email":"admin@example.com","password":"password"}`)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w.Body.Bytes())
	assert.Equal(t, domainauth.AdminDashboardPath, body["redirect_to"])
}

func TestRouter_PendingHydrationRendersNothing(t *testing.T) {
	f := newConsoleFixture(t, fixtureOptions{SkipHydrate: true})

	w := f.get(domainauth.DeveloperDashboardPath)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, retryAfterPending, w.Header().Get("Retry-After"))
	assert.Empty(t, w.Body.String())

	w = f.get("/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	f.session.Hydrate(context.Background())
	w = f.get(domainauth.DeveloperDashboardPath)
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestRouter_LoginErrorPlacement(t *testing.T) {
	tests := []struct {
		name      string
		loginErr  error
		email     string
		password  string
		wantCode  int
		wantField string
		wantMsg   string
		wantErr   string
	}{
		{
			name:      "unknown email",
			email:     "nobody@example.com",
			password:  "password",
			wantCode:  http.StatusUnauthorized,
			wantField: FieldEmail,
			wantMsg:   "No account with that email.",
			wantErr:   apiclient.CodeEmailNotFound,
		},
		{
			name:      "wrong password",
			email:     "user@example.com",
			password:  "nope",
			wantCode:  http.StatusUnauthorized,
			wantField: FieldPassword,
			wantMsg:   "Incorrect password.",
			wantErr:   apiclient.CodePasswordIncorrect,
		},
		{
			name:     "other backend rejection is submit-level",
			loginErr: &apiclient.Error{Status: http.StatusTooManyRequests, Code: "RATE_LIMITED", Message: "Slow down."},
			email:    "user@example.com",
			password: "password",
			wantCode: http.StatusTooManyRequests,
			wantMsg:  MsgRejected,
			wantErr:  "RATE_LIMITED",
		},
		{
			name:     "server failure is generic",
			loginErr: &apiclient.Error{Status: http.StatusBadGateway, Message: "upstream"},
			email:    "user@example.com",
			password: "password",
			wantCode: http.StatusInternalServerError,
			wantMsg:  MsgGenericFailure,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newConsoleFixture(t, fixtureOptions{})
			if tt.loginErr != nil {
				f.api.LoginFunc = func(context.Context, ports.LoginRequest) (ports.AuthResponse, error) {
					return ports.AuthResponse{}, tt.loginErr
				}
			}

			body, _ := json.Marshal(map[string]string{"email": tt.email, "password": tt.password})
			w := f.postJSON(domainauth.LoginPath, string(body))
			assert.Equal(t, tt.wantCode, w.Code)

			got := decodeBody(t, w.Body.Bytes())
			assert.Equal(t, tt.wantMsg, got["message"])
			if tt.wantField == "" {
				assert.NotContains(t, got, "field")
			} else {
				assert.Equal(t, tt.wantField, got["field"])
			}
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, got["error"])
			}
			assert.Nil(t, f.session.User())
			assert.Equal(t, 1, f.api.Calls("Login"))
		})
	}
}

func TestRouter_LoginFormRerendersWithFieldError(t *testing.T) {
	f := newConsoleFixture(t, fixtureOptions{})

	w := f.postForm(domainauth.LoginPath, loginValues("user@example.com", "nope"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	html := w.Body.String()
	assert.True(t, ContainsAll(html, []string{
		`value="user@example.com"`,
		`<span class="field-error" role="alert">Incorrect password.</span>`,
	}), html)
	assert.NotContains(t, html, `class="form-error"`)
}

func TestRouter_LoginValidationSkipsBackend(t *testing.T) {
	f := newConsoleFixture(t, fixtureOptions{})

	w := f.postJSON(domainauth.LoginPath, `{"email":"not-an-email","password":""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decodeBody(t, w.Body.Bytes())
	fields, ok := body["fields"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, fields, FieldEmail)
	assert.Contains(t, fields, FieldPassword)
	assert.Equal(t, 0, f.api.Calls("Login"))

	w = f.postForm(domainauth.LoginPath, loginValues("", ""))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Email is required.")
}

func TestRouter_LoginLandingByRole(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"user@example.com", domainauth.HomePath},
		{"dev@example.com", domainauth.DeveloperDashboardPath},
		{"admin@example.com", domainauth.HomePath},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			f := newConsoleFixture(t, fixtureOptions{})
			w := f.postForm(domainauth.LoginPath, loginValues(tt.email, "password"))
			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, tt.want, w.Header().Get("Location"))
		})
	}
}

func TestRouter_Signup(t *testing.T) {
	t.Run("developer lands on dashboard", func(t *testing.T) {
		f := newConsoleFixture(t, fixtureOptions{})
		w := f.postForm(domainauth.SignupPath, url.Values{
			FieldName:     {"Dana Dev"},
			FieldEmail:    {"dana@example.com"},
			FieldPassword: {"pw"},
			FieldRole:     {"developer"},
		})
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, domainauth.DeveloperDashboardPath, w.Header().Get("Location"))
		require.NotNil(t, f.session.User())
		assert.Equal(t, "Dana Dev", f.session.User().Name)
	})

	t.Run("email taken is a submit-level error", func(t *testing.T) {
		f := newConsoleFixture(t, fixtureOptions{})
		w := f.postJSON(domainauth.SignupPath,
			`{"name":"Uma","email":"user@example.com","password":"pw","role":"user"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
		body := decodeBody(t, w.Body.Bytes())
		assert.NotContains(t, body, "field")
		assert.Equal(t, MsgRejected, body["message"])
		assert.Equal(t, apiclient.CodeEmailTaken, body["error"])
	})

	t.Run("unknown role is rejected locally", func(t *testing.T) {
		f := newConsoleFixture(t, fixtureOptions{})
		w := f.postJSON(domainauth.SignupPath,
			`{"name":"Root","email":"root@example.com","password":"pw","role":"root"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, 0, f.api.Calls("Signup"))
	})

	t.Run("form lists every role", func(t *testing.T) {
		f := newConsoleFixture(t, fixtureOptions{})
		w := f.get(domainauth.SignupPath)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, ContainsAll(w.Body.String(), []string{
			`value="user" selected`, `value="developer"`, `value="admin"`,
		}))
	})
}

func TestRouter_LogoutAndStatus(t *testing.T) {
	f := newConsoleFixture(t, fixtureOptions{})
	require.Equal(t, http.StatusSeeOther, f.postForm(domainauth.LoginPath, loginValues("user@example.com", "password")).Code)

	w := f.getJSON(StatusPath)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w.Body.Bytes())
	assert.Equal(t, true, body["authenticated"])
	assert.Equal(t, false, body["loading"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "user", user["role"])
	assert.Equal(t, "Uma User", user["name"])

	w = f.postForm(LogoutPath, url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, domainauth.LoginPath, w.Header().Get("Location"))
	assert.Nil(t, f.session.User())

	body = decodeBody(t, f.getJSON(StatusPath).Body.Bytes())
	assert.Equal(t, false, body["authenticated"])
	assert.NotContains(t, body, "user")

	w = f.get(domainauth.HomePath)
	assert.Equal(t, domainauth.LoginPath, w.Header().Get("Location"))
}

func TestRouter_PublicFormsRender(t *testing.T) {
	f := newConsoleFixture(t, fixtureOptions{})
	for _, path := range []string{domainauth.LoginPath, domainauth.SignupPath, domainauth.AdminLoginPath, PasswordResetPath} {
		t.Run(path, func(t *testing.T) {
			w := f.get(path)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
			assert.Contains(t, w.Body.String(), `action="`+path+`"`)
		})
	}
}
