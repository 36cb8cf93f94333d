package cmd

import (
	"context"
	"fmt"

	"github.com/ziadkadry99/sidenav/internal/config"
	"github.com/ziadkadry99/sidenav/internal/content"
	"github.com/ziadkadry99/sidenav/internal/progress"
	"github.com/ziadkadry99/sidenav/internal/sidebar"
	"github.com/ziadkadry99/sidenav/sidebars"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `sidenav init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// loadSidebarFile reads the configured sidebar file, or the built-in one
// when none is configured. It returns the file and a description of where
// it came from.
func loadSidebarFile(cfg *config.Config) (*sidebar.File, string, error) {
	if cfg.Sidebar == "" {
		file, err := sidebar.Parse(sidebars.Core)
		if err != nil {
			return nil, "", fmt.Errorf("built-in sidebar: %w", err)
		}
		return file, "built-in:" + sidebars.CorePath, nil
	}
	file, err := sidebar.LoadFile(cfg.Sidebar)
	if err != nil {
		return nil, "", err
	}
	return file, cfg.Sidebar, nil
}

// selectSidebar returns the configured sidebar from file.
func selectSidebar(file *sidebar.File, name string) (*sidebar.Sidebar, error) {
	sb, ok := file.Sidebar(name)
	if !ok {
		return nil, fmt.Errorf("sidebar %q not found (available: %v)", name, file.Names())
	}
	return sb, nil
}

// scanContent scans the configured content directory. It returns nil when
// no content directory is configured.
func scanContent(ctx context.Context, cfg *config.Config, quiet bool) (*content.Set, error) {
	if cfg.ContentDir == "" {
		return nil, nil
	}
	reporter := progress.NewReporter("Scanning content", quiet)
	set, err := content.Scan(ctx, content.ScanConfig{
		Root:    cfg.ContentDir,
		Include: cfg.Include,
		Exclude: cfg.Exclude,
	}, reporter)
	if err != nil {
		return nil, err
	}
	loggerFrom(ctx).Debug("content scanned", "root", cfg.ContentDir, "documents", set.Len())
	return set, nil
}

// validateOptions builds validation options from config. The resolver is
// only set for a non-nil content set.
func validateOptions(cfg *config.Config, set *content.Set) sidebar.ValidateOptions {
	opts := sidebar.ValidateOptions{
		AllowedSchemes:  cfg.AllowedSchemes,
		Strict:          cfg.Strict,
		KnownDuplicates: cfg.KnownDuplicateIDs(),
		CheckDormant:    cfg.CheckDisabled,
	}
	if set != nil {
		opts.Resolver = set
	}
	return opts
}
