package cli

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/stadspark/dvsportal/pkg/dvsportal"
)

func newLoginCommand() *cobra.Command {
	var (
		identifier string
		password   string
		host       string
		baseURL    string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the portal and store the credentials",
		Long:  `Verifies the permit credentials against the portal and stores them in the dvsctl config file on success.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if host != "" {
				config.Host = host
				// A host given on the command line wins over a stale
				// simulator base URL from an earlier config.
				config.BaseURL = baseURL
			} else if baseURL != "" {
				config.BaseURL = baseURL
			}

			if identifier == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Identifier: ")
				if _, err := fmt.Scanln(&identifier); err != nil {
					return fmt.Errorf("failed to read identifier: %w", err)
				}
			}
			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
				fmt.Fprintln(cmd.OutOrStdout()) // newline after password input
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}
				password = string(passwordBytes)
			}

			config.Identifier = identifier
			config.Password = password

			// Verify the credentials before storing them.
			client, err := newPortalClient(config)
			if err != nil {
				return fmt.Errorf("failed to create portal client: %w", err)
			}
			defer client.Close()

			if err := client.Update(cmd.Context()); err != nil {
				if dvsportal.IsInvalidCredentials(err) {
					return fmt.Errorf("the portal rejected these credentials")
				}
				return fmt.Errorf("could not verify credentials: %w", err)
			}

			if err := SaveConfig(config); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s. Balance: %.1f units.\n",
				identifier, client.Balance())
			return nil
		},
	}

	cmd.Flags().StringVarP(&identifier, "identifier", "u", "", "Permit report code (if not provided, will prompt)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Portal password (if not provided, will prompt)")
	cmd.Flags().StringVar(&host, "host", "", "Portal hostname, e.g. parkeren.gemeente.nl")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Full API base URL, overrides the hostname-derived one")

	return cmd
}
