package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZeeshanAK/my-availability-app/internal/platform"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Print the resolved config and data locations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appName, devMode := resolveIdentity(cmd)
		paths, err := platform.DefaultPathsWithOptions(platform.Options{AppName: appName, DevMode: devMode})
		if err != nil {
			return fmt.Errorf("resolve app paths: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "app: %s\n", appName)
		fmt.Fprintf(out, "dev_mode: %t\n", devMode)
		fmt.Fprintf(out, "config: %s\n", paths.ConfigPath)
		fmt.Fprintf(out, "data_dir: %s\n", paths.DataDir)
		fmt.Fprintf(out, "db: %s\n", paths.DBPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pathsCmd)
}
