package config

// LogFormat selects the slog handler.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// Config is the top-level sidenav configuration, corresponding to .sidenav.yml.
type Config struct {
	// Sidebar is the sidebar file to load. Empty means the embedded core sidebar.
	Sidebar     string `yaml:"sidebar" koanf:"sidebar"`
	SidebarName string `yaml:"sidebar_name" koanf:"sidebar_name"`
	// ContentDir is the documentation root document ids resolve against.
	// Empty disables reference resolution.
	ContentDir      string        `yaml:"content_dir" koanf:"content_dir"`
	Include         []string      `yaml:"include,omitempty" koanf:"include"`
	Exclude         []string      `yaml:"exclude,omitempty" koanf:"exclude"`
	Strict          bool          `yaml:"strict" koanf:"strict"`
	KnownDuplicates []string      `yaml:"known_duplicates,omitempty" koanf:"known_duplicates"`
	AllowedSchemes  []string      `yaml:"allowed_schemes,omitempty" koanf:"allowed_schemes"`
	CheckDisabled   bool          `yaml:"check_disabled" koanf:"check_disabled"`
	History         HistoryConfig `yaml:"history" koanf:"history"`
	Preview         PreviewConfig `yaml:"preview" koanf:"preview"`
	LogLevel        string        `yaml:"log_level" koanf:"log_level"`
	LogFormat       LogFormat     `yaml:"log_format" koanf:"log_format"`
}

// HistoryConfig controls recording of validation runs.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled" koanf:"enabled"`
	Path    string `yaml:"path" koanf:"path"`
}

// PreviewConfig holds preview server settings.
type PreviewConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
