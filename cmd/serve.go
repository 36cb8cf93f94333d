package cmd

import (
	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/sidenav/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing sidebar lookup and validation tools for coding agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := configFrom(ctx)
		logger := loggerFrom(ctx)

		file, source, err := loadSidebarFile(cfg)
		if err != nil {
			return err
		}
		// Stdout carries the protocol, so scanning stays quiet.
		set, err := scanContent(ctx, cfg, true)
		if err != nil {
			return err
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		documents := 0
		if set != nil {
			documents = set.Len()
		}
		logger.Info("sidenav MCP server started on stdio", "sidebar", source, "sidebars", len(file.Sidebars), "documents", documents)

		srv := mcpserver.NewServer(file, mcpserver.Options{
			DefaultSidebar: cfg.SidebarName,
			Validate:       validateOptions(cfg, set),
			Content:        set,
		})
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
