package config

import (
	"strings"
	"time"
)

// DevAPIConfig configures the development backend (cmd/showcase-devapi).
type DevAPIConfig struct {
	Addr string `env:"ADDR" envDefault:"127.0.0.1:5000"`

	// JWTSecret signs HS256 tokens. The default is for local use only.
	JWTSecret string        `env:"JWT_SECRET" envDefault:"showcase-dev-secret-change-me"`
	TokenTTL  time.Duration `env:"TOKEN_TTL"  envDefault:"24h"`

	// NameField is the key the backend uses for the display name
	// (fullName, full_name or name); the console accepts all three.
	NameField string `env:"NAME_FIELD" envDefault:"fullName"`

	// AllowAdminSignup lets signup grant the admin role; otherwise it is downgraded to user.
	AllowAdminSignup bool `env:"ALLOW_ADMIN_SIGNUP" envDefault:"false"`

	// SeedPassword is the password of the seeded user, developer and admin accounts.
	SeedPassword string `env:"SEED_PASSWORD" envDefault:"password"`

	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`
}

// Sanitize applies guardrails to dev backend configuration values.
func (d *DevAPIConfig) Sanitize() {
	switch strings.TrimSpace(d.NameField) {
	case "fullName", "full_name", "name":
		d.NameField = strings.TrimSpace(d.NameField)
	default:
		d.NameField = "fullName"
	}
	if d.TokenTTL <= 0 {
		d.TokenTTL = 24 * time.Hour
	}
	// bcrypt accepts 4..31
	if d.BcryptCost < 4 {
		d.BcryptCost = 4
	}
	if d.BcryptCost > 31 {
		d.BcryptCost = 31
	}
}
