package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/showcase-labs/showcase-console/config"
	"github.com/showcase-labs/showcase-console/internal/adapters/memory"
	domainauth "github.com/showcase-labs/showcase-console/internal/domain/auth"
	"github.com/showcase-labs/showcase-console/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewServices_RequiresConfigAndKV(t *testing.T) {
	_, err := NewServices(nil)
	require.Error(t, err)

	_, err = NewServices(&ServiceDeps{Config: &config.AppConfig{}})
	require.Error(t, err)
}

func TestNewServices_RejectsBadBaseURL(t *testing.T) {
	cfg := &config.AppConfig{API: config.APIConfig{BaseURL: "ftp://example.com"}}
	_, err := NewServices(&ServiceDeps{Config: cfg, KV: memory.NewKVStore(), Logger: discardLogger()})
	require.Error(t, err)
}

func TestNewServices_LoginAgainstDevAPI(t *testing.T) {
	devCfg := config.DevAPIConfig{
		JWTSecret:    "test-secret",
		TokenTTL:     time.Hour,
		NameField:    "full_name",
		SeedPassword: "password",
		BcryptCost:   4,
	}
	handler, err := NewDevAPIHandler(devCfg, discardLogger())
	require.NoError(t, err)
	backend := httptest.NewServer(handler)
	defer backend.Close()

	cfg := &config.AppConfig{API: config.APIConfig{BaseURL: backend.URL + "/api", RememberMe: true}}
	kv := memory.NewKVStore()
	svcs, err := NewServices(&ServiceDeps{Config: cfg, KV: kv, HTTPClient: backend.Client(), Logger: discardLogger()})
	require.NoError(t, err)

	ctx := context.Background()
	svcs.Session.Hydrate(ctx)
	res, err := svcs.Session.Login(ctx, service.LoginInput{Email: "dev@example.com", Password: "password"})
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleDeveloper, res.User.Role)
	assert.NotEmpty(t, res.User.Name)

	me, err := svcs.Credentials.GetMe(ctx)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, me.ID)
}

func TestServe_StopsOnCancel(t *testing.T) {
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler(), ReadHeaderTimeout: time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, []namedServer{{name: "test", server: srv}}, discardLogger()) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

func TestGetEnabledServices_Sorted(t *testing.T) {
	cfg := &config.AppConfig{Services: "devapi,console"}
	assert.Equal(t, []string{"console", "devapi"}, GetEnabledServices(cfg))
	require.NoError(t, ValidateServiceConfig(cfg))

	cfg.Services = "nope"
	assert.Empty(t, GetEnabledServices(cfg))
	require.Error(t, ValidateServiceConfig(cfg))
}
