package config

import (
	"reflect"
	"strings"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestParseServices(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    map[ServiceMode]bool
		expectError bool
	}{
		{
			name:     "single service - console",
			input:    "console",
			expected: map[ServiceMode]bool{ServiceModeConsole: true},
		},
		{
			name:     "single service - devapi",
			input:    "devapi",
			expected: map[ServiceMode]bool{ServiceModeDevAPI: true},
		},
		{
			name:  "both services with whitespace",
			input: " console , devapi ",
			expected: map[ServiceMode]bool{
				ServiceModeConsole: true,
				ServiceModeDevAPI:  true,
			},
		},
		{
			name:     "trailing comma",
			input:    "console,",
			expected: map[ServiceMode]bool{ServiceModeConsole: true},
		},
		{
			name:        "empty string",
			input:       "",
			expectError: true,
		},
		{
			name:        "only commas",
			input:       ",,",
			expectError: true,
		},
		{
			name:        "invalid service",
			input:       "console,scheduler",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseServices(tt.input)
			if tt.expectError {
				if err == nil {
					t.Errorf("expected error for input %q, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for input %q: %v", tt.input, err)
			}
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("ParseServices(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestConfig_ServiceEnabledMethods(t *testing.T) {
	cfg := AppConfig{Services: "console,devapi"}
	if !cfg.IsConsoleEnabled() || !cfg.IsDevAPIEnabled() {
		t.Fatalf("expected both services enabled for %q", cfg.Services)
	}

	cfg.Services = "devapi"
	if cfg.IsConsoleEnabled() {
		t.Error("console should be disabled")
	}

	cfg.Services = "bogus"
	if cfg.IsConsoleEnabled() || cfg.IsDevAPIEnabled() {
		t.Error("invalid services config must disable everything")
	}
}

func TestValidServiceModes(t *testing.T) {
	modes := ValidServiceModes()
	if len(modes) != 2 {
		t.Fatalf("expected 2 service modes, got %d", len(modes))
	}
	for _, m := range modes {
		if _, err := ParseServices(string(m)); err != nil {
			t.Errorf("ValidServiceModes entry %q does not parse: %v", m, err)
		}
	}
}

func TestAppConfig_Defaults(t *testing.T) {
	t.Setenv("NODE_ENV", "")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("env.Parse: %v", err)
	}
	cfg.Sanitize()

	if cfg.HTTP.Addr != "127.0.0.1:8080" {
		t.Errorf("HTTP.Addr = %q", cfg.HTTP.Addr)
	}
	if !cfg.HTTP.Compression || cfg.HTTP.CompressMinSize != 1024 {
		t.Errorf("HTTP compression = %v/%d, want on at 1024 bytes", cfg.HTTP.Compression, cfg.HTTP.CompressMinSize)
	}
	if cfg.API.BaseURL != "http://localhost:5000/api" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 0 {
		t.Errorf("API.Timeout = %v, want no client timeout", cfg.API.Timeout)
	}
	if !cfg.API.RememberMe {
		t.Error("API.RememberMe should default to true")
	}
	if cfg.Storage.Mode != StorageModeSQLite {
		t.Errorf("Storage.Mode = %q", cfg.Storage.Mode)
	}
	if !strings.HasSuffix(cfg.Storage.Path, "console.db") {
		t.Errorf("Storage.Path = %q, want default sqlite path", cfg.Storage.Path)
	}
	if cfg.Log.Format != LogFormatJSON {
		t.Errorf("Log.Format = %q", cfg.Log.Format)
	}
	if cfg.Postgres.Name != "showcase" {
		t.Errorf("Postgres.Name = %q", cfg.Postgres.Name)
	}
	if cfg.DevAPI.NameField != "fullName" {
		t.Errorf("DevAPI.NameField = %q", cfg.DevAPI.NameField)
	}
}

func TestAppConfig_ParseEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")
	t.Setenv("API_BASE_URL", "https://api.example.com/v1/")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("API_REMEMBER_ME", "false")
	t.Setenv("STORAGE_MODE", "File")
	t.Setenv("STORAGE_PATH", "/tmp/showcase/session.yaml")
	t.Setenv("STORAGE_REDIS_TTL", "1h")
	t.Setenv("LOG_LEVEL", " DEBUG ")
	t.Setenv("DEVAPI_NAME_FIELD", "full_name")
	t.Setenv("DEVAPI_ALLOW_ADMIN_SIGNUP", "true")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("env.Parse: %v", err)
	}
	cfg.Sanitize()

	if !cfg.IsDev {
		t.Error("NODE_ENV=development should enable dev mode")
	}
	if cfg.Log.Format != LogFormatText {
		t.Errorf("dev mode should default to text logs, got %q", cfg.Log.Format)
	}
	if cfg.Log.SlogLevel().String() != "DEBUG" {
		t.Errorf("SlogLevel = %v", cfg.Log.SlogLevel())
	}
	if cfg.API.BaseURL != "https://api.example.com/v1" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 5*time.Second || cfg.API.RememberMe {
		t.Errorf("API = %+v", cfg.API)
	}
	if cfg.Storage.Mode != StorageModeFile || cfg.Storage.Path != "/tmp/showcase/session.yaml" {
		t.Errorf("Storage = %+v", cfg.Storage)
	}
	if cfg.Storage.RedisTTL != time.Hour {
		t.Errorf("Storage.RedisTTL = %v", cfg.Storage.RedisTTL)
	}
	if cfg.DevAPI.NameField != "full_name" || !cfg.DevAPI.AllowAdminSignup {
		t.Errorf("DevAPI = %+v", cfg.DevAPI)
	}
}

func TestAppConfig_InvalidStorageMode(t *testing.T) {
	t.Setenv("STORAGE_MODE", "mongo")

	var cfg AppConfig
	if err := env.Parse(&cfg); err == nil {
		t.Fatal("expected error for invalid STORAGE_MODE")
	}
}

func TestAppConfig_InvalidLogFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")

	var cfg AppConfig
	if err := env.Parse(&cfg); err == nil {
		t.Fatal("expected error for invalid LOG_FORMAT")
	}
}

func TestAPIConfig_Sanitize(t *testing.T) {
	a := APIConfig{BaseURL: "  http://x/api//  ", Timeout: -time.Second}
	a.Sanitize()
	if a.BaseURL != "http://x/api" {
		t.Errorf("BaseURL = %q", a.BaseURL)
	}
	if a.Timeout != 0 {
		t.Errorf("Timeout = %v", a.Timeout)
	}
}

func TestDevAPIConfig_Sanitize(t *testing.T) {
	d := DevAPIConfig{NameField: "displayName", TokenTTL: -1, BcryptCost: 99}
	d.Sanitize()
	if d.NameField != "fullName" {
		t.Errorf("NameField = %q", d.NameField)
	}
	if d.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v", d.TokenTTL)
	}
	if d.BcryptCost != 31 {
		t.Errorf("BcryptCost = %d", d.BcryptCost)
	}
}

func TestStorageConfig_SanitizeKeepsExplicitPath(t *testing.T) {
	s := StorageConfig{Mode: StorageModeSQLite, Path: " /data/c.db "}
	s.Sanitize()
	if s.Path != "/data/c.db" {
		t.Errorf("Path = %q", s.Path)
	}

	s = StorageConfig{Mode: StorageModeRedis}
	s.Sanitize()
	if s.Path != "" {
		t.Errorf("redis mode should not resolve a path, got %q", s.Path)
	}
}
