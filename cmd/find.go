package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sidenav/internal/sidebar"
)

var findCmd = &cobra.Command{
	Use:   "find <doc-id>",
	Short: "Print every sidebar location of a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFrom(cmd.Context())
		docID := args[0]

		file, _, err := loadSidebarFile(cfg)
		if err != nil {
			return err
		}

		// --name restricts the search; otherwise every sidebar is searched.
		sidebars := file.Sidebars
		if sidebarName != "" {
			sb, err := selectSidebar(file, sidebarName)
			if err != nil {
				return err
			}
			sidebars = []*sidebar.Sidebar{sb}
		}

		found := 0
		for _, sb := range sidebars {
			paths, err := sidebar.Breadcrumbs(sb.Items, docID)
			if err != nil {
				return err
			}
			for _, p := range paths {
				found++
				crumbs := append([]string{sb.Name}, p...)
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(crumbs, " > "))
			}
		}
		if found == 0 {
			return fmt.Errorf("document %q is not in any sidebar", docID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
}
