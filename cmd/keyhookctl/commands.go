package main

import (
	"errors"
	"fmt"
	"strings"

	"keyhook/internal/config"
	"keyhook/internal/control"
	"keyhook/internal/ipc"
	"keyhook/internal/keys"

	"github.com/spf13/cobra"
)

// sendFn is swapped in tests.
var sendFn = ipc.Send

var errNoDaemon = errors.New("no keyhook daemon running")

// relay sends one request and copies the daemon's output to cmd.
func relay(cmd *cobra.Command, pipeName string, req ipc.Request) error {
	resp, err := sendFn(pipeName, req)
	if err != nil {
		if ipc.IsConnectionError(err) {
			name := pipeName
			if name == "" {
				name = ipc.DefaultPipeName()
			}
			return fmt.Errorf("%w on %s", errNoDaemon, name)
		}
		return err
	}
	if resp.Stdout != "" {
		fmt.Fprint(cmd.OutOrStdout(), resp.Stdout)
	}
	if resp.Stderr != "" {
		fmt.Fprint(cmd.ErrOrStderr(), resp.Stderr)
	}
	if resp.ExitCode != 0 {
		return exitCodeError{code: resp.ExitCode}
	}
	return nil
}

func newForwardCommand(pipe func() string, name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return relay(cmd, pipe(), ipc.NewRequest(name))
		},
	}
}

func newParseCommand(pipe func() string) *cobra.Command {
	var state string
	var offline bool
	cmd := &cobra.Command{
		Use:   "parse <shortcut>...",
		Short: "Show how a shortcut text is normalized",
		Long: `Parse a shortcut such as "Ctrl + Shift + E" and print its canonical and
display forms. Arguments are joined with spaces. Falls back to parsing
locally when no daemon is running.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if !offline {
				err := relay(cmd, pipe(), ipc.NewRequest(control.CmdParse, text, state))
				if !errors.Is(err, errNoDaemon) {
					return err
				}
			}
			st, err := keys.ParseState(state)
			if err != nil {
				return err
			}
			out, err := control.Describe(text, st)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&state, "state", "up", "Trigger state (up or down)")
	cmd.Flags().BoolVar(&offline, "offline", false, "Parse locally without contacting the daemon")
	return cmd
}

func newInitCommand() *cobra.Command {
	var path string
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if force {
				if _, err := config.Save(path, config.DefaultConfig()); err != nil {
					return err
				}
			} else if _, err := config.EnsureFile(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "config: %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "config", "c", config.DefaultPath(), "Config file path")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config with the defaults")
	return cmd
}
