package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZeeshanAK/my-availability-app/internal/adapters/server/common"
	"github.com/ZeeshanAK/my-availability-app/internal/domain"
)

var dayCmd = &cobra.Command{
	Use:   "day [date]",
	Short: "Show the resolved schedule for one date",
	Long: `Resolve every entry against one date and print the occurrences in
display-zone wall time. The date defaults to today; --tz renders the same
day for another zone without touching stored data.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		tz, _ := cmd.Flags().GetString("tz")
		asJSON, _ := cmd.Flags().GetBool("json")

		loc, zoneName, err := common.ResolveZone(rt.owner, tz)
		if err != nil {
			return err
		}
		day := domain.DateOf(time.Now().In(loc))
		if len(args) == 1 {
			day, err = domain.ParseDate(args[0])
			if err != nil {
				return err
			}
		}

		ds, err := rt.svc.DaySchedule(cmd.Context(), rt.owner.ID, day)
		if err != nil {
			return fmt.Errorf("resolve day schedule: %w", err)
		}
		view := common.NewDayView(rt.owner, ds, loc, zoneName)
		if view.SkippedEntries > 0 {
			rt.logger.Warn("entries skipped during aggregation", "count", view.SkippedEntries, "date", day.String())
		}

		out := cmd.OutOrStdout()
		if asJSON {
			encoded, err := json.MarshalIndent(view, "", "  ")
			if err != nil {
				return fmt.Errorf("encode day view: %w", err)
			}
			fmt.Fprintln(out, string(encoded))
			return nil
		}

		fmt.Fprintf(out, "%s %s (%s)\n", view.Weekday, view.Date, view.Timezone)
		if len(view.Occurrences) == 0 {
			fmt.Fprintln(out, "  nothing scheduled")
			return nil
		}
		for _, o := range view.Occurrences {
			fmt.Fprintf(out, "  %s-%s  %s\n", o.Start, o.End, o.Activity)
		}
		if view.SkippedEntries > 0 {
			fmt.Fprintf(out, "  (%d entries skipped)\n", view.SkippedEntries)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dayCmd)
	dayCmd.Flags().String("tz", "", "render in this IANA zone instead of the owner zone")
	dayCmd.Flags().Bool("json", false, "print the day view as JSON")
}
