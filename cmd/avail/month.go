package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZeeshanAK/my-availability-app/internal/adapters/server/common"
	"github.com/ZeeshanAK/my-availability-app/internal/domain"
)

var monthCmd = &cobra.Command{
	Use:   "month [YYYY-MM]",
	Short: "Show which days of a month have availability",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		asJSON, _ := cmd.Flags().GetBool("json")

		loc, err := rt.owner.Location()
		if err != nil {
			return err
		}
		month := domain.MonthOf(domain.DateOf(time.Now().In(loc)))
		if len(args) == 1 {
			month, err = domain.ParseYearMonth(args[0])
			if err != nil {
				return err
			}
		}

		mi, err := rt.svc.MonthView(cmd.Context(), rt.owner.ID, month)
		if err != nil {
			return fmt.Errorf("resolve month view: %w", err)
		}
		view := common.NewMonthView(rt.owner, mi)
		if view.SkippedEntries > 0 {
			rt.logger.Warn("entries skipped during aggregation", "count", view.SkippedEntries, "month", month.String())
		}

		out := cmd.OutOrStdout()
		if asJSON {
			encoded, err := json.MarshalIndent(view, "", "  ")
			if err != nil {
				return fmt.Errorf("encode month view: %w", err)
			}
			fmt.Fprintln(out, string(encoded))
			return nil
		}

		fmt.Fprintf(out, "%s: %d of %d days have availability\n", view.Month, len(view.Colors), view.Days)
		if len(view.Colors) == 0 {
			return nil
		}
		dates := make([]string, 0, len(view.Colors))
		for date := range view.Colors {
			dates = append(dates, date)
		}
		sort.Strings(dates)

		w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "DATE\tCOLOR")
		for _, date := range dates {
			fmt.Fprintf(w, "%s\t%s\n", date, view.Colors[date])
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(monthCmd)
	monthCmd.Flags().Bool("json", false, "print the month view as JSON")
}
