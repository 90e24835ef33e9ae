package config

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: "8080",
		},
		Catalog: CatalogConfig{},
		Reader: ReaderConfig{
			HysteresisPages:    1,
			DebounceMs:         300,
			IntersectThreshold: 0.6,
			IntersectMarginPx:  20,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  20,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// withDefaults backfills zero values so a partial config file cannot disable
// the sync guards.
func (r ReaderConfig) withDefaults() ReaderConfig {
	d := DefaultConfig().Reader
	if r.HysteresisPages <= 0 {
		r.HysteresisPages = d.HysteresisPages
	}
	if r.DebounceMs <= 0 {
		r.DebounceMs = d.DebounceMs
	}
	if r.IntersectThreshold <= 0 || r.IntersectThreshold > 1 {
		r.IntersectThreshold = d.IntersectThreshold
	}
	if r.IntersectMarginPx < 0 {
		r.IntersectMarginPx = d.IntersectMarginPx
	}
	return r
}
