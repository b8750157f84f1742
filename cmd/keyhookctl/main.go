// Command keyhookctl inspects and controls a running keyhook daemon.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

// exitCodeError carries a daemon-reported exit code through cobra.
type exitCodeError struct {
	code int
}

func (e exitCodeError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func main() {
	if err := newRootCommand().Execute(); err != nil {
		var code exitCodeError
		if errors.As(err, &code) {
			os.Exit(code.code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var pipeName string
	root := &cobra.Command{
		Use:           "keyhookctl",
		Short:         "Control a running keyhook daemon",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&pipeName, "pipe", "", "Control pipe name (default per-user pipe)")

	pipe := func() string { return pipeName }
	root.AddCommand(
		newForwardCommand(pipe, "status", "Show daemon status and recent warnings"),
		newForwardCommand(pipe, "list", "List registered bindings"),
		newForwardCommand(pipe, "reload", "Reload the daemon's config file"),
		newForwardCommand(pipe, "stop", "Stop the daemon"),
		newParseCommand(pipe),
		newInitCommand(),
	)
	return root
}
