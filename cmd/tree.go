package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sidenav/internal/render"
)

var treeAll bool

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the sidebar as an indented outline",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFrom(cmd.Context())
		file, _, err := loadSidebarFile(cfg)
		if err != nil {
			return err
		}
		sb, err := selectSidebar(file, cfg.SidebarName)
		if err != nil {
			return err
		}
		return render.Outline(cmd.OutOrStdout(), sb.Items, render.OutlineOptions{IncludeDormant: treeAll})
	},
}

func init() {
	treeCmd.Flags().BoolVarP(&treeAll, "all", "a", false, "include disabled entries")
	rootCmd.AddCommand(treeCmd)
}
