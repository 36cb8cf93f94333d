package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "mainSidebar", cfg.SidebarName)
	assert.Empty(t, cfg.Sidebar)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, ".sidenav/history.db", cfg.History.Path)
	assert.Equal(t, 3000, cfg.Preview.Port)
	assert.Equal(t, LogFormatText, cfg.LogFormat)
	assert.Equal(t, DefaultKnownDuplicates, cfg.KnownDuplicateIDs())
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.sidenav.yml")

	original := DefaultConfig()
	original.Sidebar = "sidebars/core.yml"
	original.ContentDir = "site"
	original.Include = []string{"docs/**/*.md"}
	original.Strict = true
	original.KnownDuplicates = []string{"docs/a"}
	original.History.Enabled = true
	original.Preview.Port = 8080
	original.LogFormat = LogFormatJSON

	require.NoError(t, original.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadListReplacesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".sidenav.yml")
	require.NoError(t, os.WriteFile(path, []byte("known_duplicates: [docs/only]\nhistory:\n  enabled: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/only"}, cfg.KnownDuplicateIDs())
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, ".sidenav/history.db", cfg.History.Path)
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yml")
	require.NoError(t, DefaultConfig().Save(path))

	t.Setenv("SIDENAV_CONTENT_DIR", "website")
	t.Setenv("SIDENAV_STRICT", "true")
	t.Setenv("SIDENAV_HISTORY_PATH", "/tmp/h.db")
	t.Setenv("SIDENAV_PREVIEW_PORT", "9000")
	t.Setenv("SIDENAV_EXCLUDE", "docs/draft/**, blog/**")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "website", loaded.ContentDir)
	assert.True(t, loaded.Strict)
	assert.Equal(t, "/tmp/h.db", loaded.History.Path)
	assert.Equal(t, 9000, loaded.Preview.Port)
	assert.Equal(t, []string{"docs/draft/**", "blog/**"}, loaded.Exclude)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("sidebar: [unclosed\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty sidebar name", func(c *Config) { c.SidebarName = "" }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"upper log level", func(c *Config) { c.LogLevel = "DEBUG" }, false},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, true},
		{"bad scheme", func(c *Config) { c.AllowedSchemes = []string{"https://"} }, true},
		{"history without path", func(c *Config) { c.History = HistoryConfig{Enabled: true} }, true},
		{"negative port", func(c *Config) { c.Preview.Port = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLevel(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, slog.LevelInfo, cfg.Level())
	cfg.LogLevel = "debug"
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	cfg.LogLevel = "nonsense"
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestEnvKey(t *testing.T) {
	key, val := envKey("SIDENAV_HISTORY_ENABLED", "true")
	assert.Equal(t, "history.enabled", key)
	assert.Equal(t, "true", val)

	key, val = envKey("SIDENAV_PREVIEW_ALLOW_ALL_ORIGINS", "1")
	assert.Equal(t, "preview.allow_all_origins", key)
	assert.Equal(t, "1", val)

	key, val = envKey("SIDENAV_KNOWN_DUPLICATES", "a,b")
	assert.Equal(t, "known_duplicates", key)
	assert.Equal(t, []string{"a", "b"}, val)
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"**/*.md", []string{"**/*.md"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitAndTrim(tt.input), tt.input)
	}
}
