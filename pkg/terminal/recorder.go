package terminal

import (
	"context"
	"sync"
)

type Call struct {
	Dir     string
	Command string
}

// Recorder is a Launcher that only records calls. If Err is set every call
// is still recorded and then fails with Err.
type Recorder struct {
	Profile Profile
	Err     error

	mu    sync.Mutex
	calls []Call
}

func (r *Recorder) Launch(ctx context.Context, dir, command string) (Handle, error) {
	if err := ctx.Err(); err != nil {
		return Handle{}, err
	}
	r.mu.Lock()
	r.calls = append(r.calls, Call{Dir: dir, Command: command})
	r.mu.Unlock()
	if r.Err != nil {
		return Handle{}, r.Err
	}
	h := Handle{}
	if r.Profile.Program != "" {
		h.Argv = r.Profile.Argv(dir, command)
	}
	return h, nil
}

func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}
