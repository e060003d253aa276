package cmds

import (
	"os"
	"path/filepath"

	"github.com/go-go-golems/svclaunch/pkg/launch"
	"github.com/go-go-golems/svclaunch/pkg/registry"
	"github.com/go-go-golems/svclaunch/pkg/terminal"
	"github.com/go-go-golems/svclaunch/pkg/workspace"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type rootOptions struct {
	WorkspaceRoot string
	Config        string
	DryRun        bool
}

func AddRootFlags(root *cobra.Command) {
	addRootFlags(root.PersistentFlags())
}

func addRootFlags(fs *pflag.FlagSet) {
	fs.String("workspace-root", "", "Workspace root (defaults to current directory)")
	fs.String("config", "", "Path to config file (defaults to .svclaunch.yaml under workspace-root)")
	fs.Bool("dry-run", false, "Print terminal command lines instead of launching them")
}

func getRootOptions(cmd *cobra.Command) (rootOptions, error) {
	root, err := cmd.Root().PersistentFlags().GetString("workspace-root")
	if err != nil {
		return rootOptions{}, err
	}
	if root == "" {
		root, err = os.Getwd()
		if err != nil {
			return rootOptions{}, err
		}
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return rootOptions{}, err
	}

	cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return rootOptions{}, err
	}
	dryRun, err := cmd.Root().PersistentFlags().GetBool("dry-run")
	if err != nil {
		return rootOptions{}, err
	}

	return rootOptions{
		WorkspaceRoot: root,
		Config:        cfgPath,
		DryRun:        dryRun,
	}, nil
}

// Option replaces a piece of the workspace that would otherwise be loaded
// from flags and the config file.
type Option func(*deps)

func WithRegistry(r *registry.Registry) Option {
	return func(d *deps) { d.registry = r }
}

func WithLauncher(l terminal.Launcher) Option {
	return func(d *deps) { d.launcher = l }
}

type deps struct {
	registry *registry.Registry
	launcher terminal.Launcher
}

func (d *deps) resolve(cmd *cobra.Command) (*registry.Registry, terminal.Launcher, error) {
	reg, l := d.registry, d.launcher
	if reg != nil && l != nil {
		return reg, l, nil
	}

	opts, err := getRootOptions(cmd)
	if err != nil {
		return nil, nil, err
	}
	ws, err := workspace.Load(workspace.Options{Root: opts.WorkspaceRoot, ConfigPath: opts.Config})
	if err != nil {
		return nil, nil, err
	}
	if reg == nil {
		reg = ws.Registry
	}
	if l == nil {
		if opts.DryRun {
			l = &terminal.DryRun{Profile: ws.Terminal, Out: cmd.OutOrStdout()}
		} else {
			l = terminal.NewExec(ws.Terminal)
		}
	}
	return reg, l, nil
}

func (d *deps) runner(cmd *cobra.Command) (*launch.Runner, error) {
	reg, l, err := d.resolve(cmd)
	if err != nil {
		return nil, err
	}
	return launch.New(reg, l, cmd.OutOrStdout()), nil
}
