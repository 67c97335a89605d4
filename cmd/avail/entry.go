package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZeeshanAK/my-availability-app/internal/app"
	"github.com/ZeeshanAK/my-availability-app/internal/domain"
	"github.com/ZeeshanAK/my-availability-app/internal/schedule"
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Manage schedule entries",
}

var entryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a schedule entry",
	Long: `Create a schedule entry for an activity. Clock values are wall time
in the owner's zone on the anchor date. A repeat of daily or weekly opens a
recurrence window starting at the anchor date; --until closes it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()
		ctx := cmd.Context()

		activityRef, _ := cmd.Flags().GetString("activity")
		dateArg, _ := cmd.Flags().GetString("date")
		start, _ := cmd.Flags().GetString("start")
		end, _ := cmd.Flags().GetString("end")
		repeat, _ := cmd.Flags().GetString("repeat")
		weekdaysArg, _ := cmd.Flags().GetString("weekdays")
		untilArg, _ := cmd.Flags().GetString("until")

		activity, err := resolveActivity(ctx, rt, activityRef)
		if err != nil {
			return err
		}

		loc, err := rt.owner.Location()
		if err != nil {
			return err
		}
		date := domain.DateOf(time.Now().In(loc))
		if strings.TrimSpace(dateArg) != "" {
			date, err = domain.ParseDate(dateArg)
			if err != nil {
				return err
			}
		}

		recurrence, err := buildRecurrence(repeat, weekdaysArg, untilArg, date)
		if err != nil {
			return err
		}

		rt.logger.Info("command flow start", "command", "entry add", "activity_id", activity.ID, "date", date.String())
		entry, err := rt.svc.CreateEntry(ctx, app.CreateEntryInput{
			OwnerID:    rt.owner.ID,
			ActivityID: activity.ID,
			Date:       date,
			Start:      start,
			End:        end,
			Recurrence: recurrence,
		})
		if err != nil {
			rt.logger.Error("command flow failed", "command", "entry add", "err", err)
			return fmt.Errorf("create entry: %w", err)
		}
		rt.logger.Info("command flow complete", "command", "entry add", "entry_id", entry.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "created entry %s: %s %s %s-%s (%s)\n",
			entry.ID, entry.ActivityName, entry.Anchor.String(),
			schedule.Clock(entry.StartUTC, loc), schedule.Clock(entry.EndUTC, loc),
			describeRecurrence(entry.Recurrence))
		return nil
	},
}

var entryLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List schedule entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		entries, err := rt.svc.ListEntries(cmd.Context(), rt.owner.ID)
		if err != nil {
			return fmt.Errorf("list entries: %w", err)
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no entries yet; try: avail entry add")
			return nil
		}
		loc, err := rt.owner.Location()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tACTIVITY\tDATE\tSTART\tEND\tREPEAT")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				e.ID, e.ActivityName, e.Anchor.String(),
				schedule.Clock(e.StartUTC, loc), schedule.Clock(e.EndUTC, loc),
				describeRecurrence(e.Recurrence))
		}
		return w.Flush()
	},
}

var entryRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a schedule entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		entryID := strings.TrimSpace(args[0])
		if err := rt.svc.DeleteEntry(cmd.Context(), rt.owner.ID, entryID); err != nil {
			rt.logger.Error("command flow failed", "command", "entry rm", "entry_id", entryID, "err", err)
			return fmt.Errorf("delete entry: %w", err)
		}
		rt.logger.Info("command flow complete", "command", "entry rm", "entry_id", entryID)
		fmt.Fprintf(cmd.OutOrStdout(), "deleted entry %s\n", entryID)
		return nil
	},
}

// buildRecurrence assembles the recurrence rule from the repeat flags. The
// anchor date opens the window; validation beyond shape lives in the domain
// constructor.
func buildRecurrence(repeat, weekdaysArg, untilArg string, anchor domain.Date) (domain.Recurrence, error) {
	kind, err := parseRepeatFlag(repeat)
	if err != nil {
		return domain.Recurrence{}, err
	}
	rec := domain.Recurrence{Kind: kind}
	if kind == domain.RecurrenceNone {
		return rec, nil
	}

	rec.WindowStart = anchor
	if strings.TrimSpace(untilArg) != "" {
		rec.WindowEnd, err = domain.ParseDate(untilArg)
		if err != nil {
			return domain.Recurrence{}, err
		}
	}
	if kind == domain.RecurrenceWeekly {
		rec.Weekdays, err = parseWeekdayFlag(weekdaysArg)
		if err != nil {
			return domain.Recurrence{}, err
		}
	}
	return rec, nil
}

// parseRepeatFlag maps the --repeat value onto a recurrence kind.
func parseRepeatFlag(s string) (domain.RecurrenceKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return domain.RecurrenceNone, nil
	case "daily":
		return domain.RecurrenceDaily, nil
	case "weekly":
		return domain.RecurrenceWeekly, nil
	default:
		return "", fmt.Errorf("unknown repeat %q (none, daily, weekly)", s)
	}
}

// parseWeekdayFlag parses the --weekdays list. Full names and three-letter
// forms both work, matching what the TUI form accepts.
func parseWeekdayFlag(s string) ([]time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]time.Weekday, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		d, ok := weekdayFromName(p)
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", p)
		}
		out = append(out, d)
	}
	return out, nil
}

func weekdayFromName(s string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, true
		}
	}
	return 0, false
}

// describeRecurrence renders a recurrence rule for list output.
func describeRecurrence(r domain.Recurrence) string {
	switch r.Kind {
	case domain.RecurrenceDaily:
		if r.WindowEnd.IsZero() {
			return "daily"
		}
		return "daily until " + r.WindowEnd.String()
	case domain.RecurrenceWeekly:
		names := make([]string, 0, len(r.Weekdays))
		for _, d := range r.Weekdays {
			names = append(names, strings.ToLower(d.String()[:3]))
		}
		desc := "weekly " + strings.Join(names, ",")
		if !r.WindowEnd.IsZero() {
			desc += " until " + r.WindowEnd.String()
		}
		return desc
	default:
		return "one-off"
	}
}

func init() {
	rootCmd.AddCommand(entryCmd)
	entryCmd.AddCommand(entryAddCmd)
	entryCmd.AddCommand(entryLsCmd)
	entryCmd.AddCommand(entryRmCmd)

	entryAddCmd.Flags().String("activity", "", "activity name or id (required)")
	entryAddCmd.Flags().String("date", "", "anchor date YYYY-MM-DD (default today)")
	entryAddCmd.Flags().String("start", "", "start wall clock HH:MM (required)")
	entryAddCmd.Flags().String("end", "", "end wall clock HH:MM (required)")
	entryAddCmd.Flags().String("repeat", "none", "repeat rule: none, daily, weekly")
	entryAddCmd.Flags().String("weekdays", "", "weekly repeat days, e.g. mon,wed,fri")
	entryAddCmd.Flags().String("until", "", "last date the repeat may fire, YYYY-MM-DD")
	_ = entryAddCmd.MarkFlagRequired("activity")
	_ = entryAddCmd.MarkFlagRequired("start")
	_ = entryAddCmd.MarkFlagRequired("end")
}
