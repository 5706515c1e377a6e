package preferences

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/davidleathers/placeholder-numbers/internal/domain/errors"
	"github.com/davidleathers/placeholder-numbers/internal/infrastructure/kv"
)

// ThemeKey holds the display theme preference
const ThemeKey = "pandaAI_theme"

// Theme is a display preference
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark"
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	}
	return "", errors.NewValidationError(errors.CodeInvalidTheme,
		fmt.Sprintf("theme must be %q or %q", ThemeLight, ThemeDark))
}

// Opposite returns the other theme
func (t Theme) Opposite() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Service reads and writes the theme preference
type Service struct {
	backend kv.Store
	logger  *slog.Logger
}

func NewService(backend kv.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{backend: backend, logger: logger}
}

// Theme returns the stored theme. Missing, unknown or unreadable values read as light.
func (s *Service) Theme(ctx context.Context) Theme {
	raw, err := s.backend.Get(ctx, ThemeKey)
	if err != nil {
		if !kv.IsNotFound(err) {
			s.logger.WarnContext(ctx, "error loading theme", "error", err)
		}
		return ThemeLight
	}

	theme, err := ParseTheme(raw)
	if err != nil {
		return ThemeLight
	}
	return theme
}

// SetTheme stores theme
func (s *Service) SetTheme(ctx context.Context, theme Theme) error {
	if _, err := ParseTheme(string(theme)); err != nil {
		return err
	}

	if err := s.backend.Set(ctx, ThemeKey, string(theme)); err != nil {
		return errors.NewPersistenceError("set", "failed to save theme").WithCause(err)
	}

	s.logger.DebugContext(ctx, "theme saved", "theme", theme)
	return nil
}

// Toggle flips the stored theme and returns the new value
func (s *Service) Toggle(ctx context.Context) (Theme, error) {
	next := s.Theme(ctx).Opposite()
	if err := s.SetTheme(ctx, next); err != nil {
		return s.Theme(ctx), err
	}
	return next, nil
}
