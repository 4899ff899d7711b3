package cli

import (
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show balance, reservations and stored license plates",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := getCliContext(cmd).Client
			if err := client.Update(cmd.Context()); err != nil {
				return fmt.Errorf("failed to fetch portal state: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Permit media %s (type %d)\n", client.DefaultCode(), client.DefaultTypeID())
			fmt.Fprintf(out, "Balance: %.1f units (unit price %.2f)\n", client.Balance(), client.UnitPrice())

			active := client.ActiveReservations()
			fmt.Fprintf(out, "\nActive reservations (%d):\n", len(active))
			if len(active) > 0 {
				w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
				fmt.Fprintln(w, "PLATE\tFROM\tUNTIL\tUNITS\tCOST")
				for _, plate := range sortedKeys(active) {
					res := active[plate]
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\n",
						plate,
						formatStamp(res.ValidFrom),
						untilOrOpen(res.ValidUntil),
						res.Units,
						res.Cost,
					)
				}
				w.Flush()
			}

			plates := client.KnownLicensePlates()
			fmt.Fprintf(out, "\nLicense plates (%d):\n", len(plates))
			if len(plates) > 0 {
				w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
				fmt.Fprintln(w, "PLATE\tNAME")
				for _, plate := range sortedKeys(plates) {
					fmt.Fprintf(w, "%s\t%s\n", plate, plates[plate])
				}
				w.Flush()
			}

			history := client.HistoricReservations()
			fmt.Fprintf(out, "\nFinished reservations (%d):\n", len(history))
			if len(history) > 0 {
				w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
				fmt.Fprintln(w, "PLATE\tFROM\tUNTIL\tUNITS")
				for _, plate := range sortedKeys(history) {
					res := history[plate]
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
						plate,
						formatStamp(res.ValidFrom),
						formatStamp(res.ValidUntil),
						res.Units,
					)
				}
				w.Flush()
			}

			return nil
		},
	}
}

// sortedKeys returns the map keys in lexical order for stable output.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatStamp(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

func untilOrOpen(t time.Time) string {
	if t.IsZero() {
		return "open"
	}
	return formatStamp(t)
}
