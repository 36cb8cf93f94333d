package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sidenav/internal/render"
	"github.com/ziadkadry99/sidenav/internal/sidebar"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the sidebar as JSON, YAML or HTML",
	Long: `Exports the loaded sidebar file. json writes the object keyed by sidebar
name that site generators consume, yaml writes the canonical sidebar file
and html writes the navigation markup of one sidebar.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := configFrom(ctx)

		file, source, err := loadSidebarFile(cfg)
		if err != nil {
			return err
		}

		var data []byte
		switch exportFormat {
		case "json":
			data, err = sidebar.EncodeJSON(file)
		case "yaml", "yml":
			data, err = sidebar.Encode(file)
		case "html":
			var sb *sidebar.Sidebar
			if sb, err = selectSidebar(file, cfg.SidebarName); err != nil {
				return err
			}
			set, scanErr := scanContent(ctx, cfg, true)
			if scanErr != nil {
				return scanErr
			}
			var out string
			out, err = render.HTML(sb.Items, render.Options{Content: set})
			data = []byte(out)
		default:
			return fmt.Errorf("unknown format %q: must be json, yaml or html", exportFormat)
		}
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if exportOutput != "" && exportOutput != "-" {
			if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", exportOutput, err)
			}
			loggerFrom(ctx).Info("sidebar exported", "source", source, "format", exportFormat, "output", exportOutput)
			return nil
		}
		_, err = w.Write(data)
		return err
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "output format: json, yaml or html")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	rootCmd.AddCommand(exportCmd)
}
