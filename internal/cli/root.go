package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stadspark/dvsportal/pkg/dvsportal"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const cliContextKey contextKey = "cliContext"

// CliContext holds shared CLI state built once per invocation.
type CliContext struct {
	Config *Config
	Client *dvsportal.Client
	Logger *slog.Logger
}

// NewRootCommand creates the root cobra command
func NewRootCommand() *cobra.Command {
	var ctx CliContext
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "dvsctl",
		Short:         "CLI for the DVSPortal visitor parking API",
		Long:          `A command line interface for managing visitor parking reservations and license plates through the DVSPortal API.`,
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors (main.go handles it)
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(logLevel)
			ctx.Logger = slog.Default().With("component", "cli")

			// login and config work before credentials exist.
			if commandNeedsClient(cmd) {
				config, err := LoadConfig()
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				if config.Identifier == "" || config.Password == "" {
					return fmt.Errorf("not logged in, run 'dvsctl login' first")
				}

				client, err := newPortalClient(config)
				if err != nil {
					return fmt.Errorf("failed to create portal client: %w", err)
				}

				ctx.Config = config
				ctx.Client = client
			}

			cmd.SetContext(context.WithValue(cmd.Context(), cliContextKey, &ctx))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if ctx.Client != nil {
				ctx.Client.Close()
			}
			return nil
		},
	}

	rootCmd.AddCommand(newLoginCommand())
	rootCmd.AddCommand(newStatusCommand())
	rootCmd.AddCommand(newReserveCommand())
	rootCmd.AddCommand(newEndCommand())
	rootCmd.AddCommand(newPlatesCommand())
	rootCmd.AddCommand(newConfigCommand())

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn",
		"Log level (debug, info, warn, error)")

	return rootCmd
}

// commandNeedsClient reports whether the command talks to the portal.
func commandNeedsClient(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "login", "config", "help", "completion", "version":
			return false
		}
	}
	return cmd.Name() != "dvsctl"
}

// newPortalClient builds an API client from the stored configuration.
func newPortalClient(config *Config) (*dvsportal.Client, error) {
	var opts []dvsportal.Option
	if config.BaseURL != "" {
		opts = append(opts, dvsportal.WithBaseURL(config.BaseURL))
	}
	return dvsportal.New(config.Host, config.Identifier, config.Password, opts...)
}

// setupLogging configures the default logger. Command output goes to
// stdout, so logs stay on stderr.
func setupLogging(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}

// getCliContext extracts the CLI context from the command context
func getCliContext(cmd *cobra.Command) *CliContext {
	return cmd.Context().Value(cliContextKey).(*CliContext)
}
