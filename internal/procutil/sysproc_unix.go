//go:build unix

package procutil

import (
	"os/exec"
	"syscall"
)

// HideWindow is a no-op on non-Windows platforms.
func HideWindow(_ *exec.Cmd) {}

// detach puts the child in its own process group so the daemon's SIGINT
// does not reach it.
func detach(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}
