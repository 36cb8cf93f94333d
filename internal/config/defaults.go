package config

import "github.com/ziadkadry99/sidenav/sidebars"

// DefaultConfigFile is the configuration file looked up in the working directory.
const DefaultConfigFile = ".sidenav.yml"

// DefaultKnownDuplicates are the document ids the shipped sidebar lists
// twice on purpose.
var DefaultKnownDuplicates = []string{
	"docs/how-to-guides/partition-by",
	"docs/how-to-guides/partition-transform",
}

// DefaultConfig returns a Config with sensible defaults. List settings are
// left nil so a configured list replaces rather than merges with them; see
// KnownDuplicateIDs.
func DefaultConfig() *Config {
	return &Config{
		SidebarName: sidebars.CoreName,
		History: HistoryConfig{
			Enabled: false,
			Path:    ".sidenav/history.db",
		},
		Preview: PreviewConfig{
			Port: 3000,
		},
		LogLevel:  "info",
		LogFormat: LogFormatText,
	}
}

// KnownDuplicateIDs returns the configured known duplicates, or
// DefaultKnownDuplicates when none are configured. An explicit empty list
// disables the defaults.
func (c *Config) KnownDuplicateIDs() []string {
	if c.KnownDuplicates == nil {
		return DefaultKnownDuplicates
	}
	return c.KnownDuplicates
}
