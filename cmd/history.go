package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sidenav/internal/db"
	"github.com/ziadkadry99/sidenav/internal/history"
)

var (
	historyLimit int
	historyRun   string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded validation runs",
	Long:  `Lists validation runs recorded by 'sidenav validate' when history is enabled. --run prints the findings of one run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := configFrom(ctx)

		if _, err := os.Stat(cfg.History.Path); errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("no history database at %s; enable history and run `sidenav validate` first", cfg.History.Path)
		}
		database, err := db.Open(cfg.History.Path)
		if err != nil {
			return err
		}
		defer database.Close()
		store := history.NewStore(database, loggerFrom(ctx))

		out := cmd.OutOrStdout()
		if historyRun != "" {
			run, err := store.Get(ctx, historyRun)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Run %s at %s: %s (%s), %d error(s), %d warning(s)\n",
				run.ID, run.StartedAt.Local().Format(time.DateTime), run.Sidebar, run.Source, run.Errors, run.Warnings)
			for _, f := range run.Findings {
				fmt.Fprintf(out, "%s [%s] %s\n", f.Severity, f.Code, f.Message)
			}
			return nil
		}

		runs, err := store.List(ctx, historyLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(out, "No validation runs recorded.")
			return nil
		}

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSTARTED\tSIDEBAR\tERRORS\tWARNINGS\tDOCS\tFLAGS")
		for _, r := range runs {
			var flags []string
			if r.Strict {
				flags = append(flags, "strict")
			}
			if !r.Resolved {
				flags = append(flags, "unresolved")
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
				r.ID, r.StartedAt.Local().Format(time.DateTime), r.Sidebar, r.Errors, r.Warnings, r.Counts.Docs, strings.Join(flags, ","))
		}
		return tw.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of runs to list (0 for all)")
	historyCmd.Flags().StringVar(&historyRun, "run", "", "show the findings of one run")
	rootCmd.AddCommand(historyCmd)
}
