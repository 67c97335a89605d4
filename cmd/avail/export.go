package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ZeeshanAK/my-availability-app/internal/ics"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export schedule data",
}

var exportICSCmd = &cobra.Command{
	Use:   "ics",
	Short: "Export every entry as an iCalendar feed",
	Long: `Write the owner's full entry set as an iCalendar document, one VEVENT
per entry with the recurrence rule attached. Entries whose stored data no
longer validates are skipped and counted, never guessed at.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		outPath, _ := cmd.Flags().GetString("out")

		rt.logger.Info("command flow start", "command", "export ics")
		entries, err := rt.svc.ListEntries(cmd.Context(), rt.owner.ID)
		if err != nil {
			rt.logger.Error("command flow failed", "command", "export ics", "err", err)
			return fmt.Errorf("list entries: %w", err)
		}
		document, skipped, err := ics.Export(rt.owner, entries)
		if err != nil {
			rt.logger.Error("command flow failed", "command", "export ics", "err", err)
			return fmt.Errorf("export ics: %w", err)
		}
		if len(skipped) > 0 {
			rt.logger.Warn("entries skipped during export", "count", len(skipped))
		}

		if outPath == "-" {
			if _, err := fmt.Fprint(cmd.OutOrStdout(), document); err != nil {
				return fmt.Errorf("write ics to stdout: %w", err)
			}
			rt.logger.Info("command flow complete", "command", "export ics", "entries", len(entries)-len(skipped))
			return nil
		}
		if dir := filepath.Dir(outPath); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create export output dir: %w", err)
			}
		}
		if err := os.WriteFile(outPath, []byte(document), 0o644); err != nil {
			return fmt.Errorf("write export file: %w", err)
		}
		rt.logger.Info("command flow complete", "command", "export ics", "out", outPath, "entries", len(entries)-len(skipped))
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportICSCmd)
	exportICSCmd.Flags().String("out", "-", "output file path ('-' for stdout)")
}
