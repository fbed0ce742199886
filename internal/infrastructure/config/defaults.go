package config

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Journal: JournalConfig{
			Enabled: true,
			// Path is resolved against the XDG data dir in Load when
			// left empty.
		},
		Layout: LayoutConfig{
			WindowSizeClass:     "compact",
			AnimationDurationMS: 300,
		},
		Demo: DemoConfig{
			ShowKeys:    true,
			ShowJournal: false,
		},
	}
}

func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("journal.enabled", defaults.Journal.Enabled)
	m.viper.SetDefault("journal.path", defaults.Journal.Path)
	m.viper.SetDefault("layout.window_size_class", defaults.Layout.WindowSizeClass)
	m.viper.SetDefault("layout.animation_duration_ms", defaults.Layout.AnimationDurationMS)
	m.viper.SetDefault("demo.show_keys", defaults.Demo.ShowKeys)
	m.viper.SetDefault("demo.show_journal", defaults.Demo.ShowJournal)
}
