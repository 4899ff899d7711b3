package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newPlatesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plates",
		Short: "Manage license plates stored on the permit media",
	}

	cmd.AddCommand(newPlatesListCommand())
	cmd.AddCommand(newPlatesAddCommand())
	cmd.AddCommand(newPlatesRemoveCommand())

	return cmd
}

func newPlatesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the license plates the portal knows for this account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := getCliContext(cmd).Client
			if err := client.Update(cmd.Context()); err != nil {
				return fmt.Errorf("failed to fetch portal state: %w", err)
			}

			plates := client.KnownLicensePlates()
			if len(plates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No license plates stored")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "PLATE\tNAME")
			for _, plate := range sortedKeys(plates) {
				fmt.Fprintf(w, "%s\t%s\n", plate, plates[plate])
			}
			w.Flush()
			return nil
		},
	}
}

func newPlatesAddCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add PLATE",
		Short: "Store a license plate on the permit media",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := getCliContext(cmd).Client
			if err := client.StoreLicensePlate(cmd.Context(), args[0], name); err != nil {
				return fmt.Errorf("failed to store license plate: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "License plate %s stored.\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Label stored alongside the license plate")

	return cmd
}

func newPlatesRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove PLATE",
		Short: "Remove a stored license plate from the permit media",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := getCliContext(cmd).Client

			// The portal wants the stored name alongside the plate on removal.
			if err := client.Update(cmd.Context()); err != nil {
				return fmt.Errorf("failed to fetch portal state: %w", err)
			}
			name := client.KnownLicensePlates()[args[0]]

			if err := client.RemoveLicensePlate(cmd.Context(), args[0], name); err != nil {
				return fmt.Errorf("failed to remove license plate: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "License plate %s removed.\n", args[0])
			return nil
		},
	}
}
