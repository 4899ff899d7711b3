package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stadspark/dvsportal/pkg/dvsportal"
)

// startLayouts are the timestamp forms --from accepts. A bare clock time
// means today.
var startLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"15:04",
}

func newReserveCommand() *cobra.Command {
	var (
		name  string
		hours float64
		from  string
	)

	cmd := &cobra.Command{
		Use:   "reserve PLATE",
		Short: "Create a parking reservation for a license plate",
		Long: `Creates a parking reservation against the permit media's unit balance.
Without --hours the reservation is open-ended and runs until 'dvsctl end'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := getCliContext(cmd).Client
			plate := args[0]

			req := dvsportal.CreateReservationRequest{Plate: plate, Name: name}

			start := time.Now()
			if from != "" {
				parsed, err := parseStart(from, start)
				if err != nil {
					return err
				}
				start = parsed
				req.From = &start
			}
			if hours > 0 {
				until := start.Add(time.Duration(hours * float64(time.Hour)))
				req.Until = &until
			}

			result, err := client.CreateReservation(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to create reservation: %w", err)
			}

			out := cmd.OutOrStdout()
			if req.Until != nil {
				fmt.Fprintf(out, "Reservation %s created for %s until %s.\n",
					result.ReservationID, plate, formatStamp(*req.Until))
			} else {
				fmt.Fprintf(out, "Open-ended reservation %s created for %s.\n",
					result.ReservationID, plate)
			}

			// The reservation exists either way; the balance line is a courtesy.
			if err := client.Update(cmd.Context()); err == nil {
				fmt.Fprintf(out, "Balance: %.1f units.\n", client.Balance())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Label stored alongside the license plate")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Reservation length in hours (0 = open-ended)")
	cmd.Flags().StringVar(&from, "from", "", "Start time, e.g. \"2026-08-22T14:00\" or \"14:00\" (default now)")

	return cmd
}

// parseStart parses a --from value. now supplies the date for bare clock
// times.
func parseStart(value string, now time.Time) (time.Time, error) {
	for _, layout := range startLayouts {
		parsed, err := time.ParseInLocation(layout, value, time.Local)
		if err != nil {
			continue
		}
		if layout == "15:04" {
			parsed = time.Date(now.Year(), now.Month(), now.Day(),
				parsed.Hour(), parsed.Minute(), 0, 0, time.Local)
		}
		return parsed, nil
	}
	return time.Time{}, fmt.Errorf("invalid start time %q", value)
}
