// Package main is the entry point for the relay CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/remotenode/telegram-relay/internal/config"
	"github.com/remotenode/telegram-relay/internal/security"
	"github.com/remotenode/telegram-relay/internal/server"
	"github.com/remotenode/telegram-relay/internal/tracing"
)

// Set by goreleaser ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "relay",
		Short:         "Relay messages and files to Telegram channels, selected by project id",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(versionCmd(), serveCmd(), configCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("relay %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the relay HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			bind, _ := cmd.Flags().GetString("bind")

			settings, err := config.LoadSettings(cfgPath)
			if err != nil {
				return err
			}
			if bind != "" {
				settings.Bind = bind
				if err := settings.Validate(); err != nil {
					return err
				}
			}

			logger := newLogger(settings.LogLevel)

			shutdownTracing, err := tracing.Setup(cmd.Context(), settings.TraceEndpoint, "telegram-relay")
			if err != nil {
				return err
			}

			srv := server.New(settings, logger)
			if err := srv.Start(); err != nil {
				return err
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			sig := <-sigCh
			logger.Info("shutdown signal received", "signal", sig.String())

			ctx := context.Background()
			if err := srv.Stop(ctx); err != nil {
				logger.Error("shutdown failed", "error", err)
			}
			if err := shutdownTracing(ctx); err != nil {
				logger.Error("trace flush failed", "error", err)
			}
			logger.Info("shutdown complete")
			return nil
		},
	}
	cmd.Flags().StringP("config", "c", "", "Path to configuration file")
	cmd.Flags().StringP("bind", "b", "", "Listen address (overrides configuration)")
	return cmd
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check [path]",
		Short: "Validate settings and the project credential list",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}

			settings, err := config.LoadSettings(path)
			if err != nil {
				return err
			}

			projects, err := config.LoadProjects(settings.ProjectsVar)
			if err != nil {
				return err
			}

			fmt.Printf("Configuration OK (%d projects)\n", len(projects))
			for _, p := range projects {
				fmt.Printf("  %s -> %s\n", p.ID, p.ChannelID)
			}
			return nil
		},
	})
	return cmd
}

// newLogger builds the process logger: a text handler wrapped in the
// redacting handler so bot tokens never reach log output.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	inner := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	return slog.New(security.NewRedactingHandler(inner, security.NewRedactor()))
}
