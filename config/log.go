package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// LogFormat selects the slog handler.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

// UnmarshalText implements encoding.TextUnmarshaler for LogFormat.
func (f *LogFormat) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "":
		*f = ""
		return nil
	case "json", "text":
		*f = LogFormat(v)
		return nil
	default:
		return fmt.Errorf("invalid LogFormat: %q (valid options: json, text)", v)
	}
}

// LogConfig contains logging configuration.
type LogConfig struct {
	Level  string    `env:"LEVEL"  envDefault:"info"`
	Format LogFormat `env:"FORMAT"`
}

// Sanitize defaults the format to text in dev mode and JSON otherwise.
func (l *LogConfig) Sanitize(isDev bool) {
	if l.Format == "" {
		l.Format = LogFormatJSON
		if isDev {
			l.Format = LogFormatText
		}
	}
	l.Level = strings.ToLower(strings.TrimSpace(l.Level))
}

// SlogLevel parses Level, falling back to info for unknown values.
func (l LogConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
