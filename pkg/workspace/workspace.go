package workspace

import (
	"path/filepath"
	goruntime "runtime"

	"github.com/go-go-golems/svclaunch/pkg/config"
	"github.com/go-go-golems/svclaunch/pkg/registry"
	"github.com/go-go-golems/svclaunch/pkg/terminal"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Root       string
	ConfigPath string
	// GOOS selects the default terminal profile; empty means the host OS.
	GOOS string
}

// Workspace is the resolved configuration for one invocation.
type Workspace struct {
	Root      string
	ConfigAbs string
	Config    *config.File
	Registry  *registry.Registry
	Terminal  terminal.Profile
}

func Load(opts Options) (*Workspace, error) {
	if opts.Root == "" {
		return nil, errors.New("missing workspace root")
	}
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, err
	}
	// Only the default location may be absent; an explicit path must exist.
	var cfg *config.File
	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = config.DefaultPath(root)
		cfg, err = config.LoadOptional(cfgPath)
	} else {
		if !filepath.IsAbs(cfgPath) {
			cfgPath = filepath.Join(root, cfgPath)
		}
		cfg, err = config.LoadFromFile(cfgPath)
	}
	if err != nil {
		return nil, err
	}
	reg, err := BuildRegistry(cfg, root)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", cfgPath)
	}

	goos := opts.GOOS
	if goos == "" {
		goos = goruntime.GOOS
	}
	profile, err := ResolveProfile(cfg.Terminal, goos)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", cfgPath)
	}

	log.Debug().
		Str("root", root).
		Str("config", cfgPath).
		Strs("services", reg.Identifiers()).
		Str("terminal", profile.Program).
		Msg("workspace loaded")

	return &Workspace{
		Root:      root,
		ConfigAbs: cfgPath,
		Config:    cfg,
		Registry:  reg,
		Terminal:  profile,
	}, nil
}

// BuildRegistry resolves service paths against root.
func BuildRegistry(cfg *config.File, root string) (*registry.Registry, error) {
	if cfg == nil {
		cfg = &config.File{}
	}
	descs := make([]registry.Descriptor, 0, len(cfg.Services))
	for _, s := range cfg.Services {
		dir := s.Path
		if dir != "" && !filepath.IsAbs(dir) {
			dir = filepath.Join(root, dir)
		}
		descs = append(descs, registry.Descriptor{
			ID:           s.ID,
			Dir:          dir,
			DevCommand:   s.Dev,
			StartCommand: s.Start,
			Description:  s.Description,
		})
	}
	return registry.New(descs...)
}

func ResolveProfile(t *config.Terminal, goos string) (terminal.Profile, error) {
	def := terminal.DefaultProfile(goos)
	if t == nil {
		return def, nil
	}
	p := terminal.Profile{
		Program: t.Program,
		Args:    t.Args,
		Shell:   terminal.Shell(t.Shell),
	}
	if p.Shell == "" {
		p.Shell = def.Shell
	}
	if err := p.Validate(); err != nil {
		return terminal.Profile{}, err
	}
	return p, nil
}
