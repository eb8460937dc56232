package config

import (
	"strings"
	"time"
)

// APIConfig controls how the console reaches the backend.
type APIConfig struct {
	// BaseURL is the backend API root; endpoint paths are appended to it.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:5000/api"`

	// Timeout bounds each backend call. Zero disables the client-side timeout.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"0s"`

	// RememberMe is sent with every login request.
	RememberMe bool `env:"REMEMBER_ME" envDefault:"true"`

	// UserAgent identifies the console to the backend.
	UserAgent string `env:"USER_AGENT" envDefault:"showcase-console"`
}

// Sanitize applies guardrails to API configuration values.
func (a *APIConfig) Sanitize() {
	a.BaseURL = strings.TrimRight(strings.TrimSpace(a.BaseURL), "/")
	if a.Timeout < 0 {
		a.Timeout = 0
	}
}
