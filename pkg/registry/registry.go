package registry

import (
	"sort"

	"github.com/pkg/errors"
)

type Mode string

const (
	ModeDev   Mode = "dev"
	ModeStart Mode = "start"
)

func (m Mode) Valid() bool {
	return m == ModeDev || m == ModeStart
}

// Descriptor is the registry entry for a launchable service.
type Descriptor struct {
	ID           string
	Dir          string
	DevCommand   string
	StartCommand string
	Description  string
}

// Command returns the command string for mode, or "" for an unknown mode.
func (d Descriptor) Command(mode Mode) string {
	switch mode {
	case ModeDev:
		return d.DevCommand
	case ModeStart:
		return d.StartCommand
	default:
		return ""
	}
}

// Registry is an immutable set of descriptors keyed by ID.
type Registry struct {
	byID map[string]Descriptor
	ids  []string
}

func New(descs ...Descriptor) (*Registry, error) {
	r := &Registry{
		byID: make(map[string]Descriptor, len(descs)),
		ids:  make([]string, 0, len(descs)),
	}
	for _, d := range descs {
		if d.ID == "" {
			return nil, errors.New("service missing id")
		}
		if _, ok := r.byID[d.ID]; ok {
			return nil, errors.Errorf("duplicate service id %q", d.ID)
		}
		if d.Dir == "" {
			return nil, errors.Errorf("service %q missing path", d.ID)
		}
		if d.DevCommand == "" && d.StartCommand == "" {
			return nil, errors.Errorf("service %q has neither a dev nor a start command", d.ID)
		}
		r.byID[d.ID] = d
		r.ids = append(r.ids, d.ID)
	}
	sort.Strings(r.ids)
	return r, nil
}

func (r *Registry) Lookup(id string) (Descriptor, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// Identifiers returns the known IDs in sorted order.
func (r *Registry) Identifiers() []string {
	return append([]string(nil), r.ids...)
}

func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.byID[id])
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.ids)
}
