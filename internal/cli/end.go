package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEndCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "end PLATE|RESERVATION",
		Short: "End an active parking reservation",
		Long:  `Ends an active reservation by license plate or reservation ID and settles the unit balance.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := getCliContext(cmd).Client

			// Refresh first so a plate argument can be resolved to its
			// reservation.
			if err := client.Update(cmd.Context()); err != nil {
				return fmt.Errorf("failed to fetch portal state: %w", err)
			}

			reservationID := args[0]
			if res, ok := client.ActiveReservations()[args[0]]; ok {
				reservationID = res.ID
			}

			if err := client.EndReservation(cmd.Context(), reservationID); err != nil {
				return fmt.Errorf("failed to end reservation: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Reservation %s ended.\n", reservationID)

			if err := client.Update(cmd.Context()); err == nil {
				fmt.Fprintf(out, "Balance: %.1f units.\n", client.Balance())
			}
			return nil
		},
	}
}
