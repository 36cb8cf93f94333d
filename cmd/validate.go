package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sidenav/internal/config"
	"github.com/ziadkadry99/sidenav/internal/db"
	"github.com/ziadkadry99/sidenav/internal/history"
	"github.com/ziadkadry99/sidenav/internal/sidebar"
)

var (
	validateStrict   bool
	validateContent  string
	validateNoRecord bool
	validateQuiet    bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the sidebar against the documentation content",
	Long: `Loads the sidebar and checks it: every active document reference must
resolve to a page in the content directory, external links must be
absolute URLs, and duplicate references and empty categories are reported.
Exits non-zero when any error is found.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := configFrom(ctx)
		logger := loggerFrom(ctx)
		if validateStrict {
			cfg.Strict = true
		}
		if validateContent != "" {
			cfg.ContentDir = validateContent
		}

		file, source, err := loadSidebarFile(cfg)
		if err != nil {
			return err
		}
		sb, err := selectSidebar(file, cfg.SidebarName)
		if err != nil {
			return err
		}
		set, err := scanContent(ctx, cfg, validateQuiet)
		if err != nil {
			return err
		}

		opts := validateOptions(cfg, set)
		report := sidebar.Validate(sb.Items, opts)
		printReport(cmd.OutOrStdout(), sb.Name, source, report, set != nil)

		if cfg.History.Enabled && !validateNoRecord {
			run := history.NewRun(source, sb.Name, cfg.Strict, set != nil, report)
			if err := recordRun(ctx, cfg, &run); err != nil {
				// History failures are logged, never returned.
				logger.Warn("could not record validation run", "error", err)
			} else {
				logger.Info("validation run recorded", "id", run.ID, "db", cfg.History.Path)
			}
		}

		if n := len(report.Errors()); n > 0 {
			return fmt.Errorf("sidebar %s has %d error(s)", sb.Name, n)
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "treat unexpected duplicate references as errors")
	validateCmd.Flags().StringVar(&validateContent, "content", "", "content root to resolve document ids against (overrides content_dir)")
	validateCmd.Flags().BoolVar(&validateNoRecord, "no-record", false, "do not record this run in the history database")
	validateCmd.Flags().BoolVarP(&validateQuiet, "quiet", "q", false, "hide scan progress")
	rootCmd.AddCommand(validateCmd)
}

func recordRun(ctx context.Context, cfg *config.Config, run *history.Run) error {
	database, err := db.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer database.Close()
	return history.NewStore(database, loggerFrom(ctx)).Record(ctx, run)
}

// printReport writes findings grouped by severity followed by a summary.
func printReport(w io.Writer, name, source string, report *sidebar.Report, resolved bool) {
	fmt.Fprintf(w, "Sidebar %s (%s)\n", name, source)
	c := report.Counts
	fmt.Fprintf(w, "  %d docs, %d categories, %d links, %d disabled, depth %d\n",
		c.Docs, c.Categories, c.Links, c.Dormant, c.MaxDepth)
	if !resolved {
		fmt.Fprintln(w, "  document references not checked (no content_dir configured)")
	}

	for _, f := range report.Findings {
		fmt.Fprintf(w, "%s\n", f)
	}

	errs, warns := len(report.Errors()), len(report.Warnings())
	if errs == 0 {
		fmt.Fprintf(w, "OK: %d warning(s)\n", warns)
		return
	}
	fmt.Fprintf(w, "FAILED: %d error(s), %d warning(s)\n", errs, warns)
}
