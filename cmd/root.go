package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sidenav/internal/config"
)

var (
	cfgFile     string
	verbose     bool
	sidebarFile string
	sidebarName string
)

// Context keys for values set up before every command runs.
type (
	configKey struct{}
	loggerKey struct{}
)

var rootCmd = &cobra.Command{
	Use:   "sidenav",
	Short: "Load, validate and preview documentation sidebar trees",
	Long: `sidenav loads the documentation sidebar, the ordered tree of documents,
categories and external links a static-site generator renders as site
navigation. It validates every document reference against the content
directory, checks external links, reports duplicates and exports the tree
for site builds, previews and coding agents.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init creates the config file, so it must not require one.
		if cmd.Name() == "init" || cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if sidebarFile != "" {
			cfg.Sidebar = sidebarFile
		}
		if sidebarName != "" {
			cfg.SidebarName = sidebarName
		}
		if verbose {
			cfg.LogLevel = "debug"
		}

		logger := newLogger(cfg)
		logger.Debug("configuration loaded", "config", cfgFile, "sidebar", cfg.Sidebar, "name", cfg.SidebarName)

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx = context.WithValue(ctx, configKey{}, cfg)
		ctx = context.WithValue(ctx, loggerKey{}, logger)
		cmd.SetContext(ctx)
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&sidebarFile, "sidebar", "", "sidebar file (default: the built-in sidebar)")
	rootCmd.PersistentFlags().StringVarP(&sidebarName, "name", "n", "", "sidebar name within the file")
}

// newLogger builds the slog logger for a run. Logs go to stderr so command
// output on stdout stays machine readable.
func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level()}
	if cfg.LogFormat == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// configFrom returns the configuration stored by the root command.
func configFrom(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return config.DefaultConfig()
}

// loggerFrom returns the logger stored by the root command.
func loggerFrom(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
