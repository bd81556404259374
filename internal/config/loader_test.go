package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, name string, cfg map[string]any) string {
	t.Helper()
	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name          string
		global        map[string]any
		project       map[string]any
		wantMode      string
		wantPollMS    int
		wantFilter    string
		wantHeader    bool
		wantAnimation int
	}{
		{
			name:          "no config files returns defaults",
			wantMode:      "store",
			wantPollMS:    2000,
			wantHeader:    true,
			wantAnimation: 600,
		},
		{
			name: "global only overrides source mode",
			global: map[string]any{
				"source": map[string]any{"mode": "http", "base_url": "http://backlog:8080"},
			},
			wantMode:      "http",
			wantPollMS:    2000,
			wantHeader:    true,
			wantAnimation: 600,
		},
		{
			name: "project overrides global",
			global: map[string]any{
				"dashboard": map[string]any{"poll_interval_ms": 5000},
			},
			project: map[string]any{
				"dashboard": map[string]any{"poll_interval_ms": 500, "default_filter": "auth"},
			},
			wantMode:      "store",
			wantPollMS:    500,
			wantFilter:    "auth",
			wantHeader:    true,
			wantAnimation: 600,
		},
		{
			name: "explicit show_header false survives merge",
			project: map[string]any{
				"dashboard": map[string]any{"show_header": false},
			},
			wantMode:      "store",
			wantPollMS:    2000,
			wantHeader:    false,
			wantAnimation: 600,
		},
		{
			name: "sparse project file keeps global animation",
			global: map[string]any{
				"dashboard": map[string]any{"animation_ms": 300},
			},
			project: map[string]any{
				"source": map[string]any{"db_path": "/tmp/x.db"},
			},
			wantMode:      "store",
			wantPollMS:    2000,
			wantHeader:    true,
			wantAnimation: 300,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var globalPath, projectPath string
			if tt.global != nil {
				globalPath = writeConfig(t, dir, "global-"+tt.name+".json", tt.global)
			}
			if tt.project != nil {
				projectPath = writeConfig(t, dir, "project-"+tt.name+".json", tt.project)
			}

			cfg, err := Load(globalPath, projectPath)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}

			if cfg.Source.Mode != tt.wantMode {
				t.Errorf("Source.Mode = %q, want %q", cfg.Source.Mode, tt.wantMode)
			}
			if cfg.Dashboard.PollIntervalMS != tt.wantPollMS {
				t.Errorf("PollIntervalMS = %d, want %d", cfg.Dashboard.PollIntervalMS, tt.wantPollMS)
			}
			if cfg.Dashboard.DefaultFilter != tt.wantFilter {
				t.Errorf("DefaultFilter = %q, want %q", cfg.Dashboard.DefaultFilter, tt.wantFilter)
			}
			if cfg.Dashboard.ShowHeader != tt.wantHeader {
				t.Errorf("ShowHeader = %v, want %v", cfg.Dashboard.ShowHeader, tt.wantHeader)
			}
			if cfg.Dashboard.AnimationMS != tt.wantAnimation {
				t.Errorf("AnimationMS = %d, want %d", cfg.Dashboard.AnimationMS, tt.wantAnimation)
			}
		})
	}
}

func TestLoadMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Load(path, ""); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")

	cfg := DefaultConfig()
	cfg.Source.Mode = "http"
	cfg.Source.BaseURL = "http://backlog:8080"
	cfg.Dashboard.DefaultFilter = "web"

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Source.BaseURL != "http://backlog:8080" {
		t.Errorf("BaseURL = %q", loaded.Source.BaseURL)
	}
	if loaded.Dashboard.DefaultFilter != "web" {
		t.Errorf("DefaultFilter = %q", loaded.Dashboard.DefaultFilter)
	}
}
