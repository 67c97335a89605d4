package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZeeshanAK/my-availability-app/internal/app"
	"github.com/ZeeshanAK/my-availability-app/internal/domain"
)

var shareCmd = &cobra.Command{
	Use:   "share [date]",
	Short: "Print the share link for one date",
	Long: `Print the URL a viewer can fetch from a running "avail serve" to see
that date's availability. The link encodes only the owner id and the date.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		loc, err := rt.owner.Location()
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

		ref := app.ShareRef{OwnerID: rt.owner.ID, Date: day}
		fmt.Fprintln(cmd.OutOrStdout(), app.ShareURL(rt.cfg.Share.AdvertiseURL, ref))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(shareCmd)
}
