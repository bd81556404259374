package config

// SourceConfig selects where open-task snapshots come from.
// Mode is "store" (local SQLite backlog) or "http" (remote backlog API).
type SourceConfig struct {
	Mode    string `json:"mode"`
	DBPath  string `json:"db_path,omitempty"`  // store mode; "" uses ~/.agentboard/backlog.db
	BaseURL string `json:"base_url,omitempty"` // http mode
}

// DashboardConfig controls the open-tasks pane behavior.
type DashboardConfig struct {
	PollIntervalMS int    `json:"poll_interval_ms"` // snapshot cadence
	AnimationMS    int    `json:"animation_ms"`     // entrance/exit flag window
	ShowHeader     bool   `json:"show_header"`      // false = embedded mode, no filter UI
	DefaultFilter  string `json:"default_filter,omitempty"`
}

// Config is the top-level configuration.
type Config struct {
	Source    SourceConfig    `json:"source"`
	Dashboard DashboardConfig `json:"dashboard"`
	Debug     bool            `json:"debug,omitempty"`
}
