package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"keyhook/internal/config"
	"keyhook/internal/sessionlog"
	"keyhook/internal/singleinstance"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

type daemonOptions struct {
	configPath string
	legacy     bool
	logLevel   string
	pipeName   string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := daemonOptions{}
	cmd := &cobra.Command{
		Use:   "keyhook",
		Short: "Global keyboard shortcut daemon",
		Long: `keyhook installs a low-level keyboard hook and runs the commands bound
to shortcuts in its config file. Use keyhookctl to inspect or control a
running daemon.`,
		Version:      version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
				return fmt.Errorf("invalid --log-level: %w", err)
			}
			ring := sessionlog.NewRing(warningRingSize)
			slog.SetDefault(newLogger(cmd.ErrOrStderr(), level, ring))
			return run(cmd.Context(), opts, ring)
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", config.DefaultPath(), "Config file path")
	cmd.Flags().BoolVar(&opts.legacy, "legacy", false, "Only report preset shortcuts to observers (overrides legacy_mode)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&opts.pipeName, "pipe", "", "Control pipe name (default per-user pipe)")
	return cmd
}

// run holds the single-instance lock for the daemon's lifetime and blocks
// until a signal or a stop request arrives.
func run(ctx context.Context, opts daemonOptions, warnings *sessionlog.Ring) error {
	lock, err := singleinstance.TryLock(singleinstance.DefaultName())
	if errors.Is(err, singleinstance.ErrAlreadyRunning) {
		return fmt.Errorf("keyhook: %w", err)
	}
	if err != nil {
		slog.Warn("[keyhook] instance lock failed, proceeding without single-instance guard", "error", err)
	}
	defer func() {
		if releaseErr := lock.Release(); releaseErr != nil {
			slog.Warn("[keyhook] instance lock release failed", "error", releaseErr)
		}
	}()

	setConsoleUTF8()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := NewApp(opts.configPath, opts.legacy, warnings)
	app.pipeName = opts.pipeName
	if err := app.startup(ctx); err != nil {
		return errors.Join(err, app.shutdown())
	}

	select {
	case <-ctx.Done():
		slog.Info("[keyhook] signal received, shutting down")
	case <-app.Done():
	}
	return app.shutdown()
}
