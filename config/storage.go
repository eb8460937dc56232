package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// StorageMode selects the key-value backend behind session persistence.
type StorageMode string

const (
	// StorageModeMemory keeps the session in process memory only.
	StorageModeMemory StorageMode = "memory"
	// StorageModeFile keeps the session in a YAML file.
	StorageModeFile StorageMode = "file"
	// StorageModeSQLite keeps the session in an embedded SQLite database.
	StorageModeSQLite StorageMode = "sqlite"
	// StorageModeRedis keeps the session in Redis.
	StorageModeRedis StorageMode = "redis"
	// StorageModePostgres keeps the session in PostgreSQL.
	StorageModePostgres StorageMode = "postgres"
)

// UnmarshalText implements encoding.TextUnmarshaler for StorageMode.
func (m *StorageMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch StorageMode(v) {
	case StorageModeMemory, StorageModeFile, StorageModeSQLite, StorageModeRedis, StorageModePostgres:
		*m = StorageMode(v)
		return nil
	default:
		return fmt.Errorf("invalid StorageMode: %q (valid options: memory, file, sqlite, redis, postgres)", v)
	}
}

// StorageConfig selects and configures the session persistence backend.
type StorageConfig struct {
	Mode StorageMode `env:"MODE" envDefault:"sqlite"`

	// Path is the file or SQLite database location. Empty resolves to the
	// user config directory.
	Path string `env:"PATH"`

	// RedisPrefix namespaces keys in redis mode.
	RedisPrefix string `env:"REDIS_PREFIX" envDefault:"showcase:console:"`
	// RedisTTL expires keys in redis mode; zero keeps them.
	RedisTTL time.Duration `env:"REDIS_TTL" envDefault:"0s"`
}

// Sanitize resolves the default path for file-backed modes.
func (s *StorageConfig) Sanitize() {
	s.Path = strings.TrimSpace(s.Path)
	if s.Path != "" {
		return
	}
	switch s.Mode {
	case StorageModeFile:
		s.Path = defaultStoragePath("session.yaml")
	case StorageModeSQLite:
		s.Path = defaultStoragePath("console.db")
	case StorageModeMemory, StorageModeRedis, StorageModePostgres:
	}
}

func defaultStoragePath(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return name
	}
	return filepath.Join(dir, "showcase", name)
}
