// Package config loads, validates and watches navtree's configuration.
// TOML on disk, NAVTREE_-prefixed environment overrides, defaults for
// everything.
package config

// Config is the root configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging" toml:"logging"`
	Journal JournalConfig `mapstructure:"journal" toml:"journal"`
	Layout  LayoutConfig  `mapstructure:"layout" toml:"layout"`
	Demo    DemoConfig    `mapstructure:"demo" toml:"demo"`
}

// LoggingConfig controls the zerolog root logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level"`
	Format string `mapstructure:"format" toml:"format"`
}

// JournalConfig controls the navigation journal.
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled"`
	Path    string `mapstructure:"path" toml:"path"`
}

// LayoutConfig holds the adaptive-layout parameters the navigator is
// constructed with.
type LayoutConfig struct {
	// WindowSizeClass is "compact" or "expanded".
	WindowSizeClass string `mapstructure:"window_size_class" toml:"window_size_class"`
	// AnimationDurationMS is a hint forwarded to renderers; the core
	// imposes no timing of its own.
	AnimationDurationMS int `mapstructure:"animation_duration_ms" toml:"animation_duration_ms"`
}

// DemoConfig tunes the interactive demo TUI.
type DemoConfig struct {
	ShowKeys    bool `mapstructure:"show_keys" toml:"show_keys"`
	ShowJournal bool `mapstructure:"show_journal" toml:"show_journal"`
}
