package launch

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-go-golems/svclaunch/pkg/registry"
	"github.com/go-go-golems/svclaunch/pkg/styles"
	"github.com/go-go-golems/svclaunch/pkg/terminal"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Request asks for one service to be started in the given mode.
type Request struct {
	Service string
	Mode    registry.Mode
}

type Runner struct {
	Registry *registry.Registry
	Terminal terminal.Launcher
	// Out receives one progress line per launch; nil discards.
	Out io.Writer
}

func New(reg *registry.Registry, l terminal.Launcher, out io.Writer) *Runner {
	return &Runner{Registry: reg, Terminal: l, Out: out}
}

// Resolve validates req against the registry and the filesystem without
// launching anything.
func (r *Runner) Resolve(req Request) (registry.Descriptor, string, error) {
	if !req.Mode.Valid() {
		return registry.Descriptor{}, "", errors.Errorf("unsupported mode %q", req.Mode)
	}
	d, ok := r.Registry.Lookup(req.Service)
	if !ok {
		return registry.Descriptor{}, "", &UnknownServiceError{ID: req.Service, Known: r.Registry.Identifiers()}
	}
	command := d.Command(req.Mode)
	if command == "" {
		return registry.Descriptor{}, "", errors.Errorf("service %q has no %s command", d.ID, req.Mode)
	}
	if err := checkDir(d); err != nil {
		return registry.Descriptor{}, "", err
	}
	return d, command, nil
}

func (r *Runner) Start(ctx context.Context, req Request) (terminal.Handle, error) {
	d, command, err := r.Resolve(req)
	if err != nil {
		return terminal.Handle{}, err
	}
	return r.launch(ctx, d, req.Mode, command)
}

// StartAll launches every registered service in mode. All working
// directories are checked before the first launch; the first launch error
// stops the batch. Services without a command for mode are skipped.
func (r *Runner) StartAll(ctx context.Context, mode registry.Mode) ([]terminal.Handle, error) {
	if !mode.Valid() {
		return nil, errors.Errorf("unsupported mode %q", mode)
	}
	descs := r.Registry.Descriptors()
	if len(descs) == 0 {
		return nil, errors.New("no services configured")
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, d := range descs {
		if d.Command(mode) == "" {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return checkDir(d)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	handles := make([]terminal.Handle, 0, len(descs))
	for _, d := range descs {
		command := d.Command(mode)
		if command == "" {
			log.Warn().Str("service", d.ID).Str("mode", string(mode)).Msg("no command for mode; skipping")
			continue
		}
		h, err := r.launch(ctx, d, mode, command)
		if err != nil {
			return handles, err
		}
		handles = append(handles, h)
	}
	return handles, nil
}

func (r *Runner) launch(ctx context.Context, d registry.Descriptor, mode registry.Mode, command string) (terminal.Handle, error) {
	if r.Out != nil {
		st := styles.DefaultStyles
		_, _ = fmt.Fprintf(r.Out, "Starting %s with script %s in a new terminal...\n  %s\n",
			st.Service.Render(d.ID),
			st.Command.Render(fmt.Sprintf("%q", command)),
			st.Path.Render(d.Dir),
		)
	}

	h, err := r.Terminal.Launch(ctx, d.Dir, command)
	if err != nil {
		return terminal.Handle{}, &SpawnError{Service: d.ID, Err: err}
	}
	// PID 0 means nothing was spawned (dry run)
	ev := log.Info()
	if h.PID == 0 {
		ev = log.Debug()
	}
	ev.Str("service", d.ID).
		Str("mode", string(mode)).
		Str("dir", d.Dir).
		Int("pid", h.PID).
		Msg("terminal launched")
	return h, nil
}

func checkDir(d registry.Descriptor) error {
	info, err := os.Stat(d.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return &MissingDirError{Service: d.ID, Dir: d.Dir}
		}
		return errors.Wrapf(err, "stat service path %s", d.Dir)
	}
	if !info.IsDir() {
		return &MissingDirError{Service: d.ID, Dir: d.Dir, NotDir: true}
	}
	return nil
}
