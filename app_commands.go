package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"keyhook/internal/config"
	"keyhook/internal/control"
	"keyhook/internal/ipc"
	"keyhook/internal/keys"
)

const maxStatusWarnings = 10

// ipcHandler routes control requests to the App.
type ipcHandler struct {
	app *App
}

func (h ipcHandler) Execute(req ipc.Request) ipc.Response {
	switch req.Command {
	case control.CmdStatus:
		return okResponse(h.app.statusText())
	case control.CmdList:
		return okResponse(h.app.listText())
	case control.CmdReload:
		return h.app.reloadFromDisk()
	case control.CmdParse:
		return parseCommand(req.Args)
	case control.CmdStop:
		slog.Info("[keyhook] stop requested over control pipe", "request", req.ID)
		h.app.requestStop()
		return okResponse("keyhook stopping\n")
	default:
		return errResponse(2, "unknown command %q", req.Command)
	}
}

func okResponse(stdout string) ipc.Response {
	return ipc.Response{Stdout: stdout}
}

func errResponse(code int, format string, args ...any) ipc.Response {
	return ipc.Response{ExitCode: code, Stderr: fmt.Sprintf(format, args...) + "\n"}
}

func (a *App) statusText() string {
	a.cfgMu.RLock()
	bindings := len(a.bindings)
	a.cfgMu.RUnlock()

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 1, ' ', 0)
	fmt.Fprintf(w, "pid:\t%d\n", os.Getpid())
	fmt.Fprintf(w, "uptime:\t%s\n", time.Since(a.startedAt).Truncate(time.Second))
	fmt.Fprintf(w, "config:\t%s\n", a.configPath)
	fmt.Fprintf(w, "legacy mode:\t%t\n", a.interceptor.LegacyMode())
	fmt.Fprintf(w, "bindings:\t%d\n", bindings)
	fmt.Fprintf(w, "fired:\t%d\n", a.fired.Load())
	if last := a.lastPressed.Load(); last != nil {
		fmt.Fprintf(w, "last pressed:\t%s\n", last.String())
	}
	if a.pipeServer != nil {
		fmt.Fprintf(w, "pipe:\t%s\n", a.pipeServer.PipeName())
	}
	w.Flush()

	if a.warnings != nil {
		entries := a.warnings.Entries()
		if len(entries) > maxStatusWarnings {
			entries = entries[len(entries)-maxStatusWarnings:]
		}
		if len(entries) > 0 {
			b.WriteString("recent warnings:\n")
			for _, e := range entries {
				b.WriteString("  " + e.String() + "\n")
			}
		}
	}
	return b.String()
}

func (a *App) listText() string {
	a.cfgMu.RLock()
	defer a.cfgMu.RUnlock()
	if len(a.bindings) == 0 {
		return "no bindings\n"
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSHORTCUT\tSTATE\tCONSUME\tCOMMAND")
	for _, ab := range a.bindings {
		command := ab.binding.Command
		if len(ab.binding.Args) > 0 {
			command += " " + strings.Join(ab.binding.Args, " ")
		}
		if command == "" {
			command = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n",
			ab.shortcut.Name(), ab.shortcut.DisplayString(), ab.shortcut.State(), ab.binding.Consume, command)
	}
	w.Flush()
	return b.String()
}

func (a *App) reloadFromDisk() ipc.Response {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return errResponse(1, "reload failed, keeping current bindings: %v", err)
	}
	n := a.reload(cfg)
	slog.Info("[keyhook] config reloaded on request", "bindings", n)
	return okResponse(fmt.Sprintf("reloaded %d bindings from %s\n", n, a.configPath))
}

// parseCommand expects the shortcut text and an optional trailing state.
func parseCommand(args []string) ipc.Response {
	if len(args) == 0 {
		return errResponse(2, "parse requires shortcut text")
	}
	text := args[0]
	state := keys.Up
	if len(args) > 1 {
		s, err := keys.ParseState(args[1])
		if err != nil {
			return errResponse(2, "%v", err)
		}
		state = s
	}
	out, err := control.Describe(text, state)
	if err != nil {
		return errResponse(1, "%v", err)
	}
	return okResponse(out)
}
