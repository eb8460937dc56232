package service

import (
	"context"
	"fmt"

	"github.com/showcase-labs/showcase-console/internal/ports"
)

// Theme is the admin area's color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// PreferenceService stores console preferences next to, but independent of, the session keys.
type PreferenceService struct {
	kv ports.KVStore
}

// NewPreferenceService constructs a PreferenceService.
func NewPreferenceService(kv ports.KVStore) *PreferenceService {
	return &PreferenceService{kv: kv}
}

// AdminTheme returns the stored theme, defaulting to light for absent or unknown values.
func (s *PreferenceService) AdminTheme(ctx context.Context) (Theme, error) {
	v, ok, err := s.kv.Get(ctx, AdminThemeKey)
	if err != nil {
		return ThemeLight, fmt.Errorf("read admin theme: %w", err)
	}
	if ok && Theme(v) == ThemeDark {
		return ThemeDark, nil
	}
	return ThemeLight, nil
}

// ToggleAdminTheme flips between light and dark and returns the new value.
func (s *PreferenceService) ToggleAdminTheme(ctx context.Context) (Theme, error) {
	cur, err := s.AdminTheme(ctx)
	if err != nil {
		return cur, err
	}
	next := ThemeDark
	if cur == ThemeDark {
		next = ThemeLight
	}
	if err := s.kv.Set(ctx, AdminThemeKey, string(next)); err != nil {
		return cur, fmt.Errorf("write admin theme: %w", err)
	}
	return next, nil
}
