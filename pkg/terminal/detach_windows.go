//go:build windows

package terminal

import (
	"os/exec"
	"syscall"
)

const detachedProcess = 0x00000008

// detach starts the terminal outside the launcher's console group. cmd.exe
// does not understand the \" escaping os/exec applies to Args, so for cmd
// profiles the command line is passed verbatim.
func detach(cmd *exec.Cmd, shell Shell) {
	attr := &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP | detachedProcess,
	}
	if shell == ShellCmd {
		attr.CmdLine = CmdLine(cmd.Args)
	}
	cmd.SysProcAttr = attr
}
