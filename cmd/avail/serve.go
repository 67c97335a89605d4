package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ZeeshanAK/my-availability-app/internal/adapters/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve share links over HTTP and MCP",
	Long: `Run the read-only share server: a JSON API for share links, health
probes, and an MCP endpoint for agent access. The server never mutates
schedule data and stops gracefully on interrupt.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		bind, _ := cmd.Flags().GetString("bind")
		if strings.TrimSpace(bind) == "" {
			bind = rt.cfg.Share.Bind
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rt.logger.Info("command flow start", "command", "serve", "bind", bind)
		err = server.Run(ctx, server.Config{
			HTTPBind:      bind,
			ServerName:    rt.appName,
			ServerVersion: version,
		}, rt.svc)
		if err != nil {
			rt.logger.Error("command flow failed", "command", "serve", "err", err)
			return fmt.Errorf("run share server: %w", err)
		}
		rt.logger.Info("command flow complete", "command", "serve")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("bind", "", "listen address (default from share.bind config)")
}
