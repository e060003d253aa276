package cmds

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/go-go-golems/glazed/pkg/cli"
	glazedcmds "github.com/go-go-golems/glazed/pkg/cmds"
	"github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"
	"github.com/go-go-golems/svclaunch/pkg/registry"
	"github.com/go-go-golems/svclaunch/pkg/workspace"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const workspaceLayerSlug = "workspace"

type workspaceSettings struct {
	Root   string `glazed.parameter:"workspace-root"`
	Config string `glazed.parameter:"config"`
}

func getWorkspaceLayer() (layers.ParameterLayer, error) {
	return layers.NewParameterLayer(
		workspaceLayerSlug,
		"Workspace",
		layers.WithParameterDefinitions(
			parameters.NewParameterDefinition(
				"workspace-root",
				parameters.ParameterTypeString,
				parameters.WithHelp("Workspace root (defaults to current directory)"),
				parameters.WithDefault(""),
			),
			parameters.NewParameterDefinition(
				"config",
				parameters.ParameterTypeString,
				parameters.WithHelp("Path to config file (defaults to .svclaunch.yaml under workspace-root)"),
				parameters.WithDefault(""),
			),
		),
	)
}

// registryFromParsedLayers loads the workspace named by the workspace layer.
// A nil parsedLayers means the current directory with its default config.
func registryFromParsedLayers(parsedLayers *layers.ParsedLayers) (*registry.Registry, error) {
	var s workspaceSettings
	if parsedLayers != nil {
		if err := parsedLayers.InitializeStruct(workspaceLayerSlug, &s); err != nil {
			return nil, errors.Wrap(err, "read workspace settings")
		}
	}
	if s.Root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		s.Root = cwd
	}
	ws, err := workspace.Load(workspace.Options{Root: s.Root, ConfigPath: s.Config})
	if err != nil {
		return nil, err
	}
	return ws.Registry, nil
}

type ListCommand struct {
	*glazedcmds.CommandDescription
	// registry overrides the workspace layer when set.
	registry *registry.Registry
}

var _ glazedcmds.WriterCommand = (*ListCommand)(nil)

func NewListCommand(reg *registry.Registry) (*ListCommand, error) {
	wsLayer, err := getWorkspaceLayer()
	if err != nil {
		return nil, err
	}

	return &ListCommand{
		CommandDescription: glazedcmds.NewCommandDescription(
			"list",
			glazedcmds.WithShort("List configured services and whether their paths exist"),
			glazedcmds.WithLayersList(wsLayer),
		),
		registry: reg,
	}, nil
}

type serviceInfo struct {
	ID          string `json:"id"`
	Path        string `json:"path"`
	PathExists  bool   `json:"path_exists"`
	Dev         string `json:"dev,omitempty"`
	Start       string `json:"start,omitempty"`
	Description string `json:"description,omitempty"`
}

func (c *ListCommand) RunIntoWriter(ctx context.Context, parsedLayers *layers.ParsedLayers, w io.Writer) error {
	reg := c.registry
	if reg == nil {
		var err error
		reg, err = registryFromParsedLayers(parsedLayers)
		if err != nil {
			return err
		}
	}

	infos := make([]serviceInfo, 0, reg.Len())
	for _, d := range reg.Descriptors() {
		info, err := os.Stat(d.Dir)
		infos = append(infos, serviceInfo{
			ID:          d.ID,
			Path:        d.Dir,
			PathExists:  err == nil && info.IsDir(),
			Dev:         d.DevCommand,
			Start:       d.StartCommand,
			Description: d.Description,
		})
	}

	b, err := json.MarshalIndent(map[string]any{"services": infos}, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal output")
	}
	_, _ = fmt.Fprintln(w, string(b))
	return nil
}

func newListCmd(d *deps) (*cobra.Command, error) {
	c, err := NewListCommand(d.registry)
	if err != nil {
		return nil, err
	}

	cmd, err := cli.BuildCobraCommand(c, cli.WithParserConfig(cli.CobraParserConfig{AppName: "svclaunch"}))
	if err != nil {
		return nil, err
	}
	cmd.SilenceUsage = true
	return cmd, nil
}
