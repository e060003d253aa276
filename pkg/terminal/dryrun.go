package terminal

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DryRun prints the command line it would run instead of starting it.
type DryRun struct {
	Profile Profile
	Out     io.Writer
}

func (d *DryRun) Launch(ctx context.Context, dir, command string) (Handle, error) {
	if err := ctx.Err(); err != nil {
		return Handle{}, err
	}
	argv := d.Profile.Argv(dir, command)
	_, err := fmt.Fprintln(d.Out, "dry-run:", formatArgv(argv))
	return Handle{Argv: argv}, err
}

func formatArgv(argv []string) string {
	parts := make([]string, len(argv))
	for i, a := range argv {
		if a == "" || strings.ContainsAny(a, " \t\"'") {
			parts[i] = strconv.Quote(a)
		} else {
			parts[i] = a
		}
	}
	return strings.Join(parts, " ")
}
