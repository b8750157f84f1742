package procutil

import (
	"errors"
	"log/slog"
	"os/exec"
)

// Command describes a bound program.
type Command struct {
	Path       string
	Args       []string
	Dir        string
	HideWindow bool
}

// Start launches c without waiting for it to finish. The child is reaped in
// the background and its exit status logged at debug level.
func Start(c Command) (int, error) {
	if c.Path == "" {
		return 0, errors.New("command path is required")
	}
	cmd := exec.Command(c.Path, c.Args...)
	cmd.Dir = c.Dir
	detach(cmd)
	if c.HideWindow {
		HideWindow(cmd)
	}
	if err := cmd.Start(); err != nil {
		return 0, err
	}
	pid := cmd.Process.Pid
	go func() {
		err := cmd.Wait()
		slog.Debug("[DEBUG-PROC] bound command exited", "path", c.Path, "pid", pid, "error", err)
	}()
	return pid, nil
}
