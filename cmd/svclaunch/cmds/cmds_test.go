package cmds

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-go-golems/svclaunch/pkg/launch"
	"github.com/go-go-golems/svclaunch/pkg/registry"
	"github.com/go-go-golems/svclaunch/pkg/terminal"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	root string
	reg  *registry.Registry
	rec  *terminal.Recorder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	for _, id := range []string{"sa", "sb"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, "apps", id), 0o755))
	}
	reg, err := registry.New(
		registry.Descriptor{ID: "sa", Dir: filepath.Join(root, "apps", "sa"), DevCommand: "npm run dev", StartCommand: "npm run start"},
		registry.Descriptor{ID: "sb", Dir: filepath.Join(root, "apps", "sb"), DevCommand: "yarn dev", StartCommand: "yarn start"},
	)
	require.NoError(t, err)
	return &testEnv{root: root, reg: reg, rec: &terminal.Recorder{Profile: terminal.DefaultProfile("linux")}}
}

func (e *testEnv) execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "svclaunch", Version: "test"}
	AddRootFlags(root)
	require.NoError(t, AddCommands(root, WithRegistry(e.reg), WithLauncher(e.rec)))

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	if args == nil {
		// cobra falls back to os.Args on nil
		args = []string{}
	}
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestStartDev_SingleService(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.execute(t, "start:dev", "sa")
	require.NoError(t, err)
	require.Contains(t, out, "in a new terminal...")

	calls := env.rec.Calls()
	require.Len(t, calls, 1)
	argv := env.rec.Profile.Argv(calls[0].Dir, calls[0].Command)
	script := argv[len(argv)-1]
	require.Contains(t, script, filepath.Join(env.root, "apps", "sa"))
	require.Contains(t, script, "npm run dev")
}

func TestStartProd_SingleService(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.execute(t, "start:prod", "sb")
	require.NoError(t, err)
	require.Equal(t, []terminal.Call{{Dir: filepath.Join(env.root, "apps", "sb"), Command: "yarn start"}}, env.rec.Calls())
}

func TestStart_UnknownService(t *testing.T) {
	for _, command := range []string{"start:dev", "start:prod"} {
		env := newTestEnv(t)

		_, err := env.execute(t, command, "xyz")
		require.Error(t, err)
		require.True(t, errors.Is(err, launch.ErrUnknownService))
		require.Contains(t, err.Error(), `"xyz"`)
		require.Empty(t, env.rec.Calls())
	}
}

func TestStart_MissingWorkingDirectory(t *testing.T) {
	for _, command := range []string{"start:dev", "start:prod"} {
		for _, id := range []string{"sa", "sb"} {
			env := newTestEnv(t)
			missing := filepath.Join(env.root, "apps", id)
			require.NoError(t, os.RemoveAll(missing))

			_, err := env.execute(t, command, id)
			require.Error(t, err)
			require.True(t, errors.Is(err, launch.ErrMissingWorkingDirectory))
			require.Contains(t, err.Error(), missing)
			require.Empty(t, env.rec.Calls())
		}
	}
}

func TestStart_RequiresExactlyOneService(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.execute(t, "start:dev")
	require.Error(t, err)
	_, err = env.execute(t, "start:dev", "sa", "sb")
	require.Error(t, err)
	require.Empty(t, env.rec.Calls())
}

func TestStartAll(t *testing.T) {
	cases := []struct {
		command  string
		commands map[string]string
	}{
		{"start:dev:all", map[string]string{"sa": "npm run dev", "sb": "yarn dev"}},
		{"start:prod:all", map[string]string{"sa": "npm run start", "sb": "yarn start"}},
	}
	for _, tc := range cases {
		t.Run(tc.command, func(t *testing.T) {
			env := newTestEnv(t)

			_, err := env.execute(t, tc.command)
			require.NoError(t, err)

			calls := env.rec.Calls()
			require.Len(t, calls, len(tc.commands))
			seen := map[string]string{}
			for _, c := range calls {
				seen[filepath.Base(c.Dir)] = c.Command
			}
			require.Equal(t, tc.commands, seen)
		})
	}
}

func TestStartAll_RejectsArgs(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.execute(t, "start:dev:all", "sa")
	require.Error(t, err)
	require.Empty(t, env.rec.Calls())
}

func TestRoot_InvalidCommand(t *testing.T) {
	for _, args := range [][]string{nil, {"start:debug", "sa"}, {"bogus"}} {
		env := newTestEnv(t)

		_, err := env.execute(t, args...)
		require.Error(t, err)
		require.True(t, errors.Is(err, launch.ErrUnrecognizedCommand))
		require.Contains(t, err.Error(), "invalid command")
		require.Contains(t, err.Error(), "See --help")
		require.Empty(t, env.rec.Calls())
	}
}

func TestRoot_HelpAndVersion(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.execute(t, "--help")
	require.NoError(t, err)
	require.Contains(t, out, "start:dev:all")
	require.Contains(t, out, "start:prod")

	out, err = env.execute(t, "--version")
	require.NoError(t, err)
	require.Contains(t, out, "test")
	require.Empty(t, env.rec.Calls())
}

func TestStart_SpawnFailure(t *testing.T) {
	env := newTestEnv(t)
	env.rec.Err = errors.New("exec: \"gnome-terminal\": executable file not found in $PATH")

	_, err := env.execute(t, "start:dev", "sa")
	require.Error(t, err)
	require.True(t, errors.Is(err, launch.ErrSpawnFailure))
}

func TestStart_DryRunFromConfig(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "svc", "api"), 0o755))
	cfg := []byte(`terminal:
  program: xterm
  args: ["-e", "bash", "-c"]
  shell: posix
services:
  - id: api
    path: svc/api
    dev: go run .
    start: ./api
`)
	require.NoError(t, os.WriteFile(filepath.Join(root, ".svclaunch.yaml"), cfg, 0o644))

	cmd := &cobra.Command{Use: "svclaunch"}
	AddRootFlags(cmd)
	require.NoError(t, AddCommands(cmd))

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--workspace-root", root, "--dry-run", "start:dev", "api"})
	require.NoError(t, cmd.Execute())

	require.Contains(t, out.String(), "dry-run: xterm -e bash -c")
	require.Contains(t, out.String(), "&& go run .")
	require.Contains(t, out.String(), filepath.Join(root, "svc", "api"))
}

func TestListCommand_RunIntoWriter(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.RemoveAll(filepath.Join(env.root, "apps", "sb")))

	c, err := NewListCommand(env.reg)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.RunIntoWriter(context.Background(), nil, &buf))

	var got struct {
		Services []serviceInfo `json:"services"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Services, 2)
	require.Equal(t, "sa", got.Services[0].ID)
	require.True(t, got.Services[0].PathExists)
	require.Equal(t, "npm run dev", got.Services[0].Dev)
	require.Equal(t, "sb", got.Services[1].ID)
	require.False(t, got.Services[1].PathExists)
}

func TestListCommand_LoadsWorkspaceWithoutOverride(t *testing.T) {
	c, err := NewListCommand(nil)
	require.NoError(t, err)

	// no parsed layers: current directory, default config
	var buf bytes.Buffer
	require.NoError(t, c.RunIntoWriter(context.Background(), nil, &buf))
	require.Contains(t, buf.String(), `"id": "sa"`)
	require.Contains(t, buf.String(), `"id": "sb"`)
}

func (e *testEnv) run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	root := &cobra.Command{Use: "svclaunch"}
	AddRootFlags(root)
	require.NoError(t, AddCommands(root, WithRegistry(e.reg), WithLauncher(e.rec)))

	var out, stderr bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	code := Run(root, &stderr)
	return out.String(), stderr.String(), code
}

func TestRun_PrintsRuntimeErrorsOnceWithoutUsage(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.RemoveAll(filepath.Join(env.root, "apps", "sb")))

	cases := []struct {
		args []string
		msg  string
	}{
		{[]string{"start:dev", "xyz"}, `invalid service "xyz"`},
		{[]string{"start:prod", "sb"}, "service path does not exist"},
		{[]string{"start:dev:all"}, "service path does not exist"},
		{[]string{"bogus"}, "invalid command: bogus"},
		{[]string{}, "invalid command"},
	}
	for _, tc := range cases {
		out, stderr, code := env.run(t, tc.args...)
		require.Equal(t, 1, code)
		combined := out + stderr
		require.Equal(t, 1, strings.Count(combined, tc.msg), combined)
		require.Equal(t, 1, strings.Count(combined, "Error:"), combined)
		require.NotContains(t, combined, "Usage:")
	}
	require.Empty(t, env.rec.Calls())
}

func TestRun_ArgumentErrorsShowUsage(t *testing.T) {
	env := newTestEnv(t)

	out, stderr, code := env.run(t, "start:dev")
	require.Equal(t, 1, code)
	require.Contains(t, out, "Usage:")
	require.Equal(t, 1, strings.Count(out+stderr, "accepts 1 arg(s), received 0"))
}

func TestRun_Success(t *testing.T) {
	env := newTestEnv(t)

	out, stderr, code := env.run(t, "start:dev", "sa")
	require.Equal(t, 0, code)
	require.Empty(t, stderr)
	require.Contains(t, out, "in a new terminal...")
}
