package terminal

import (
	"context"
	"os"
	"os/exec"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Exec starts the terminal program as a detached child with no stdio attached
// and releases it immediately.
type Exec struct {
	Profile Profile
}

func NewExec(p Profile) *Exec {
	return &Exec{Profile: p}
}

func (e *Exec) Launch(ctx context.Context, dir, command string) (Handle, error) {
	if err := ctx.Err(); err != nil {
		return Handle{}, err
	}
	if err := e.Profile.Validate(); err != nil {
		return Handle{}, err
	}

	argv := e.Profile.Argv(dir, command)

	// #nosec G204 -- terminal program and service commands come from the workspace config.
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = os.Environ()
	detach(cmd, e.Profile.Shell)

	if err := cmd.Start(); err != nil {
		return Handle{}, errors.Wrapf(err, "start %s", argv[0])
	}

	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		log.Debug().Err(err).Int("pid", pid).Msg("release terminal process")
	}
	return Handle{PID: pid, Argv: argv}, nil
}
