package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - api.go: Backend API client configuration
//   - storage.go: Session persistence backend selection
//   - database.go: Postgres and Redis connection configuration
//   - http.go: Console HTTP server configuration
//   - log.go: Logging configuration
//   - devapi.go: Development backend configuration
//   - services.go: Service mode selection
type AppConfig struct {
	// IsDev controls development mode behavior (text logs, template reloading).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Logging configuration
	Log LogConfig `envPrefix:"LOG_"`

	// Console HTTP server configuration
	HTTP HTTPConfig

	// Backend API configuration
	API APIConfig `envPrefix:"API_"`

	// Session persistence configuration
	Storage StorageConfig `envPrefix:"STORAGE_"`

	// Database configuration (used by the postgres and redis storage modes)
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// Development backend configuration
	DevAPI DevAPIConfig `envPrefix:"DEVAPI_"`

	// Service mode configuration
	Services string `env:"SERVICES" envDefault:"console"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	// Check NODE_ENV for dev mode first; log defaults depend on it
	c.detectDevMode()

	c.Log.Sanitize(c.IsDev)
	c.HTTP.Sanitize()
	c.API.Sanitize()
	c.Storage.Sanitize()
	c.DevAPI.Sanitize()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// This is called by Sanitize() to ensure IsDev is set correctly.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}

// GetEnabledServices returns the enabled services based on the Services field.
func (c *AppConfig) GetEnabledServices() (map[ServiceMode]bool, error) {
	return ParseServices(c.Services)
}

// IsConsoleEnabled returns true if the console HTTP server is enabled.
func (c *AppConfig) IsConsoleEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[ServiceModeConsole]
}

// IsDevAPIEnabled returns true if the in-process development backend is enabled.
func (c *AppConfig) IsDevAPIEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[ServiceModeDevAPI]
}
