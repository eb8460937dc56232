package httpx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/showcase-labs/showcase-console/internal/adapters/memory"
	mockauth "github.com/showcase-labs/showcase-console/internal/mocks/auth"
	"github.com/showcase-labs/showcase-console/internal/ports"
	"github.com/showcase-labs/showcase-console/internal/service"
	"github.com/showcase-labs/showcase-console/internal/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// consoleFixture wires the real services over an in-memory store and a stub backend.
type consoleFixture struct {
	kv          ports.KVStore
	persistence *service.SessionPersistence
	api         *mockauth.StubCredentialAPI
	creds       *service.CredentialService
	session     *service.SessionStore
	router      http.Handler
}

type fixtureOptions struct {
	// KV defaults to an empty memory store.
	KV ports.KVStore
	// SkipHydrate leaves the session in the loading state.
	SkipHydrate bool
}

func newConsoleFixture(t *testing.T, opts fixtureOptions) *consoleFixture {
	t.Helper()
	kv := opts.KV
	if kv == nil {
		kv = memory.NewKVStore()
	}
	persistence := service.NewSessionPersistence(kv)
	api := mockauth.NewStubCredentialAPI()
	creds := service.NewCredentialService(service.CredentialServiceOptions{
		API:        api,
		Store:      persistence,
		RememberMe: true,
		Logger:     discardLogger(),
		Now:        testutil.FixedTimeFunc(testutil.TestTime()),
	})
	session := service.NewSessionStore(service.SessionStoreOptions{
		Credentials: creds,
		Persistence: persistence,
		Logger:      discardLogger(),
	})
	if !opts.SkipHydrate {
		session.Hydrate(context.Background())
	}
	return &consoleFixture{
		kv:          kv,
		persistence: persistence,
		api:         api,
		creds:       creds,
		session:     session,
		router: NewRouter(RouterServices{
			Session:     session,
			Credentials: creds,
			Storage:     kv,
			Logger:      discardLogger(),
		}),
	}
}

func (f *consoleFixture) get(path string) *httptest.ResponseRecorder {
	return f.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (f *consoleFixture) getJSON(path string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, path, nil)
	r.Header.Set("Accept", contentTypeJSON)
	return f.do(r)
}

func (f *consoleFixture) postForm(path string, values url.Values) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.Header.Set("Accept", "text/html")
	return f.do(r)
}

func (f *consoleFixture) postJSON(path, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	r.Header.Set("Content-Type", contentTypeJSON)
	r.Header.Set("Accept", contentTypeJSON)
	return f.do(r)
}

func (f *consoleFixture) do(r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, r)
	return w
}

func loginValues(email, password string) url.Values {
	return url.Values{FieldEmail: {email}, FieldPassword: {password}}
}

// ContainsAll checks if a string contains all the given substrings.
func ContainsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
