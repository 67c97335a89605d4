package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ZeeshanAK/my-availability-app/internal/domain"
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Manage the activity catalog",
}

var activityAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create an activity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		color, _ := cmd.Flags().GetString("color")
		rt.logger.Info("command flow start", "command", "activity add")
		activity, err := rt.svc.CreateActivity(cmd.Context(), rt.owner.ID, args[0], color)
		if err != nil {
			rt.logger.Error("command flow failed", "command", "activity add", "err", err)
			return fmt.Errorf("create activity: %w", err)
		}
		rt.logger.Info("command flow complete", "command", "activity add", "activity_id", activity.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "created activity %q (%s) color %s\n", activity.Name, activity.ID, activity.Color)
		return nil
	},
}

var activityLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List activities",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		activities, err := rt.svc.ListActivities(cmd.Context(), rt.owner.ID)
		if err != nil {
			return fmt.Errorf("list activities: %w", err)
		}
		if len(activities) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no activities yet; try: avail activity add <name>")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCOLOR\tCREATED")
		for _, a := range activities {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Color, a.CreatedAt.Format("2006-01-02"))
		}
		return w.Flush()
	},
}

var activityRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an activity (entries keep their snapshot of it)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		activity, err := resolveActivity(cmd.Context(), rt, args[0])
		if err != nil {
			return err
		}
		if err := rt.svc.DeleteActivity(cmd.Context(), rt.owner.ID, activity.ID); err != nil {
			rt.logger.Error("command flow failed", "command", "activity rm", "activity_id", activity.ID, "err", err)
			return fmt.Errorf("delete activity: %w", err)
		}
		rt.logger.Info("command flow complete", "command", "activity rm", "activity_id", activity.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "deleted activity %q (%s)\n", activity.Name, activity.ID)
		return nil
	},
}

// resolveActivity accepts an activity ID or a unique name, so scripts can use
// IDs while humans type what they see in the list.
func resolveActivity(ctx context.Context, rt *cliRuntime, ref string) (domain.Activity, error) {
	ref = strings.TrimSpace(ref)
	activities, err := rt.svc.ListActivities(ctx, rt.owner.ID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("list activities: %w", err)
	}
	for _, a := range activities {
		if a.ID == ref {
			return a, nil
		}
	}
	var matched []domain.Activity
	for _, a := range activities {
		if strings.EqualFold(a.Name, ref) {
			matched = append(matched, a)
		}
	}
	switch len(matched) {
	case 1:
		return matched[0], nil
	case 0:
		return domain.Activity{}, fmt.Errorf("unknown activity %q", ref)
	default:
		return domain.Activity{}, fmt.Errorf("activity name %q is ambiguous, use the id", ref)
	}
}

func init() {
	rootCmd.AddCommand(activityCmd)
	activityCmd.AddCommand(activityAddCmd)
	activityCmd.AddCommand(activityLsCmd)
	activityCmd.AddCommand(activityRmCmd)
	activityAddCmd.Flags().String("color", "", "display color as #RRGGBB (default picked for you)")
}
