//go:build !windows

package terminal

import (
	"os/exec"
	"syscall"
)

// detach puts the terminal in its own process group so signals sent to the
// launcher do not reach it.
func detach(cmd *exec.Cmd, _ Shell) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
