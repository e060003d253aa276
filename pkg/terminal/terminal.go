package terminal

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// Launcher opens a terminal window that runs command inside dir.
// Implementations must not wait for the terminal to exit.
type Launcher interface {
	Launch(ctx context.Context, dir, command string) (Handle, error)
}

// Handle identifies a launched terminal. PID is 0 when nothing was spawned.
type Handle struct {
	PID  int
	Argv []string
}

type Shell string

const (
	ShellPOSIX Shell = "posix"
	ShellCmd   Shell = "cmd"
)

// Profile describes how to open a terminal on a platform: Program and Args
// are run as-is with the generated script appended as the last argument.
type Profile struct {
	Program string
	Args    []string
	Shell   Shell
}

func DefaultProfile(goos string) Profile {
	if goos == "windows" {
		return Profile{
			Program: "cmd.exe",
			Args:    []string{"/C", "start", "", "cmd.exe", "/K"},
			Shell:   ShellCmd,
		}
	}
	return Profile{
		Program: "gnome-terminal",
		Args:    []string{"--", "bash", "-c"},
		Shell:   ShellPOSIX,
	}
}

func (p Profile) Validate() error {
	if p.Program == "" {
		return errors.New("terminal profile missing program")
	}
	switch p.Shell {
	case ShellPOSIX, ShellCmd:
		return nil
	default:
		return errors.Errorf("unsupported terminal shell %q", p.Shell)
	}
}

// Script changes into dir and runs command.
func (p Profile) Script(dir, command string) string {
	if p.Shell == ShellCmd {
		return `cd /d "` + dir + `" && ` + command
	}
	return "cd " + quotePOSIX(dir) + " && " + command
}

func (p Profile) Argv(dir, command string) []string {
	argv := make([]string, 0, len(p.Args)+2)
	argv = append(argv, p.Program)
	argv = append(argv, p.Args...)
	return append(argv, p.Script(dir, command))
}

// CmdLine renders argv as a raw cmd.exe command line. Leading arguments are
// quoted only when empty or containing blanks; the script is wrapped in one
// pair of quotes so the outer cmd.exe leaves "&&" alone and the inner
// cmd.exe /K strips the pair before running it.
func CmdLine(argv []string) string {
	if len(argv) == 0 {
		return ""
	}
	parts := make([]string, 0, len(argv))
	for _, a := range argv[:len(argv)-1] {
		if a == "" || strings.ContainsAny(a, " \t") {
			a = `"` + a + `"`
		}
		parts = append(parts, a)
	}
	parts = append(parts, `"`+argv[len(argv)-1]+`"`)
	return strings.Join(parts, " ")
}

func quotePOSIX(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
