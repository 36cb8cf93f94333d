package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

const envPrefix = "SIDENAV_"

// listKeys are settings whose environment value is a comma-separated list.
var listKeys = map[string]bool{
	"include":          true,
	"exclude":          true,
	"known_duplicates": true,
	"allowed_schemes":  true,
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (SIDENAV_*). A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: SIDENAV_CONTENT_DIR -> content_dir,
	// SIDENAV_HISTORY_PATH -> history.path, etc.
	if err := k.Load(env.ProviderWithValue(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps an environment variable to a config key and value.
func envKey(name, value string) (string, interface{}) {
	key := strings.ToLower(strings.TrimPrefix(name, envPrefix))
	for _, section := range []string{"history_", "preview_"} {
		if strings.HasPrefix(key, section) {
			key = strings.TrimSuffix(section, "_") + "." + strings.TrimPrefix(key, section)
			break
		}
	}
	if listKeys[key] {
		return key, splitAndTrim(value)
	}
	return key, value
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validLogLevels maps config values to slog levels.
var validLogLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Level returns the slog level for LogLevel, defaulting to info.
func (c *Config) Level() slog.Level {
	if lvl, ok := validLogLevels[strings.ToLower(c.LogLevel)]; ok {
		return lvl
	}
	return slog.LevelInfo
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.SidebarName == "" {
		return fmt.Errorf("sidebar_name is required")
	}

	if c.LogLevel != "" {
		if _, ok := validLogLevels[strings.ToLower(c.LogLevel)]; !ok {
			return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel)
		}
	}

	switch c.LogFormat {
	case "", LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("invalid log_format %q: must be text or json", c.LogFormat)
	}

	for _, scheme := range c.AllowedSchemes {
		if scheme == "" || strings.ContainsAny(scheme, ":/ ") {
			return fmt.Errorf("invalid allowed_schemes entry %q", scheme)
		}
	}

	if c.History.Enabled && c.History.Path == "" {
		return fmt.Errorf("history.path is required when history is enabled")
	}

	if c.Preview.Port < 0 || c.Preview.Port > 65535 {
		return fmt.Errorf("preview.port must be between 0 and 65535")
	}

	return nil
}
