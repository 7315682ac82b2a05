package tui

import (
	"github.com/kyotei-ai/kyotei-cli/internal/session"
	"github.com/kyotei-ai/kyotei-cli/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Analyzer session.Analyzer
	Theme    themes.Theme
	// Venue and Race preselect a race; when both are set the TUI skips the
	// pickers and starts analyzing immediately.
	Venue  string
	Race   int
	Width  int
	Height int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:  themes.Default,
		Width:  80,
		Height: 24,
	}
}

// WithAnalyzer sets the analyzer used to fetch race analyses.
func WithAnalyzer(analyzer session.Analyzer) Option {
	return func(c *Config) {
		c.Analyzer = analyzer
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithRace preselects a venue and race number.
func WithRace(venue string, race int) Option {
	return func(c *Config) {
		c.Venue = venue
		c.Race = race
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}
