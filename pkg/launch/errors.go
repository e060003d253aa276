package launch

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownService          = errors.New("unknown service")
	ErrMissingWorkingDirectory = errors.New("missing working directory")
	ErrUnrecognizedCommand     = errors.New("unrecognized command")
	ErrSpawnFailure            = errors.New("spawn failure")
)

type UnknownServiceError struct {
	ID    string
	Known []string
}

func (e *UnknownServiceError) Error() string {
	quoted := make([]string, len(e.Known))
	for i, k := range e.Known {
		quoted[i] = fmt.Sprintf("%q", k)
	}
	return fmt.Sprintf("invalid service %q. Choose one of: %s", e.ID, strings.Join(quoted, ", "))
}

func (e *UnknownServiceError) Is(target error) bool {
	return target == ErrUnknownService
}

type MissingDirError struct {
	Service string
	Dir     string
	NotDir  bool
}

func (e *MissingDirError) Error() string {
	if e.NotDir {
		return fmt.Sprintf("service path is not a directory: %s", e.Dir)
	}
	return fmt.Sprintf("service path does not exist: %s", e.Dir)
}

func (e *MissingDirError) Is(target error) bool {
	return target == ErrMissingWorkingDirectory
}

type SpawnError struct {
	Service string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("start %s in a new terminal: %v", e.Service, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

func (e *SpawnError) Is(target error) bool {
	return target == ErrSpawnFailure
}

// UnrecognizedCommandError carries the raw arguments that matched no command.
type UnrecognizedCommandError struct {
	Args []string
}

func (e *UnrecognizedCommandError) Error() string {
	return fmt.Sprintf("invalid command: %s\nSee --help for a list of available commands.", strings.Join(e.Args, " "))
}

func (e *UnrecognizedCommandError) Is(target error) bool {
	return target == ErrUnrecognizedCommand
}
