package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the dvsctl configuration",
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the stored configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := GetConfigPath()
			if err != nil {
				return err
			}
			config, err := LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config file: %s\n\n", configPath)

			password := "(not set)"
			if config.Password != "" {
				password = "(set)"
			}

			w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
			fmt.Fprintf(w, "host\t%s\n", config.Host)
			fmt.Fprintf(w, "base-url\t%s\n", config.BaseURL)
			fmt.Fprintf(w, "identifier\t%s\n", config.Identifier)
			fmt.Fprintf(w, "password\t%s\n", password)
			w.Flush()

			return nil
		},
	}
}
