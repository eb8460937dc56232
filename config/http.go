package config

import "strings"

// HTTPConfig contains console HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the console to. Loopback by default: the
	// console serves a single operator and holds their bearer token.
	Addr string `env:"HTTP_ADDR" envDefault:"127.0.0.1:8080"`

	// BaseURL is the externally visible URL of the console (used in log output).
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// Compression gzips text and JSON responses of at least CompressMinSize bytes.
	Compression     bool `env:"HTTP_COMPRESSION"    envDefault:"true"`
	CompressMinSize int  `env:"HTTP_GZIP_MIN_BYTES" envDefault:"1024"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	h.Addr = strings.TrimSpace(h.Addr)
	if h.Addr == "" {
		h.Addr = "127.0.0.1:8080"
	}
	h.BaseURL = strings.TrimRight(strings.TrimSpace(h.BaseURL), "/")
	if h.CompressMinSize <= 0 {
		h.CompressMinSize = 1024
	}
}
