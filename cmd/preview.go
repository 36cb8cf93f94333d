package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sidenav/internal/preview"
	"github.com/ziadkadry99/sidenav/internal/sidebar"
)

var (
	previewPort  int
	previewWatch bool
	previewOpen  bool
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Serve a live preview of the sidebar",
	Long: `Starts a local HTTP server that renders the sidebar as navigation and
exposes it as JSON. With --watch the sidebar file is reloaded on every save
and open pages refresh over a websocket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg := configFrom(ctx)
		logger := loggerFrom(ctx)
		if cmd.Flags().Changed("port") {
			cfg.Preview.Port = previewPort
		}
		if previewWatch && cfg.Sidebar == "" {
			return errors.New("--watch needs a sidebar file; set --sidebar or sidebar in the config")
		}

		set, err := scanContent(ctx, cfg, false)
		if err != nil {
			return err
		}

		load := func() (*sidebar.File, error) {
			file, _, err := loadSidebarFile(cfg)
			return file, err
		}
		srv, err := preview.New(preview.Config{
			Port:           cfg.Preview.Port,
			AllowAll:       cfg.Preview.AllowAllOrigins,
			DefaultSidebar: cfg.SidebarName,
			Validate:       validateOptions(cfg, set),
			Content:        set,
		}, load, logger)
		if err != nil {
			return err
		}

		if previewWatch {
			go func() {
				if err := srv.Watch(ctx, cfg.Sidebar); err != nil {
					logger.Error("watcher stopped", "error", err)
				}
			}()
		}

		url := fmt.Sprintf("http://localhost:%d", cfg.Preview.Port)
		fmt.Fprintf(cmd.OutOrStdout(), "Previewing sidebar at %s\n", url)
		fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop.")
		if previewOpen {
			go openBrowser(url)
		}

		if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	previewCmd.Flags().IntVarP(&previewPort, "port", "p", 3000, "port to listen on (overrides preview.port)")
	previewCmd.Flags().BoolVarP(&previewWatch, "watch", "w", false, "reload when the sidebar file changes")
	previewCmd.Flags().BoolVar(&previewOpen, "open", false, "open the preview in a browser")
	rootCmd.AddCommand(previewCmd)
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
