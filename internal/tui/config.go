package tui

import (
	"github.com/Veraticus/superstore-dash/internal/model"
	"github.com/Veraticus/superstore-dash/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme     themes.Theme
	Selection *model.FilterSelection
	Source    string
	Records   []model.Record
	Width     int
	Height    int
	// RowLimit caps the rows drawn per table.
	RowLimit int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:    themes.Default,
		Width:    120,
		Height:   36,
		RowLimit: 200,
	}
}

// WithTheme sets the theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithSelection starts the explorer with sel instead of every value.
func WithSelection(sel model.FilterSelection) Option {
	return func(c *Config) {
		c.Selection = &sel
	}
}

// WithRowLimit caps the rows drawn per table.
func WithRowLimit(n int) Option {
	return func(c *Config) {
		c.RowLimit = n
	}
}

// NewConfig builds a configuration for the given records.
func NewConfig(source string, records []model.Record, opts ...Option) Config {
	cfg := defaultConfig()
	cfg.Source = source
	cfg.Records = records
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
