package config

// DefaultConfig returns the default configuration: local store mode with a
// 2s poll and the stock 600ms animation window.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Mode: "store",
		},
		Dashboard: DashboardConfig{
			PollIntervalMS: 2000,
			AnimationMS:    600,
			ShowHeader:     true,
		},
	}
}
