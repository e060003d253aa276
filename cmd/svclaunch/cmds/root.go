package cmds

import (
	"fmt"
	"io"

	"github.com/go-go-golems/svclaunch/pkg/launch"
	"github.com/go-go-golems/svclaunch/pkg/registry"
	"github.com/spf13/cobra"
)

// AddCommands registers the launcher commands on root. Root itself rejects
// anything that does not match a subcommand, including an empty invocation.
// Errors are left to the caller to print; see Run.
func AddCommands(root *cobra.Command, opts ...Option) error {
	d := &deps{}
	for _, o := range opts {
		o(d)
	}

	root.SilenceErrors = true
	root.Args = cobra.ArbitraryArgs
	root.RunE = func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return &launch.UnrecognizedCommandError{Args: args}
	}

	root.AddCommand(newStartCmd(d, "start:dev", registry.ModeDev, "Start a service in development mode in a new terminal"))
	root.AddCommand(newStartCmd(d, "start:prod", registry.ModeStart, "Start a service in production mode in a new terminal"))
	root.AddCommand(newStartAllCmd(d, "start:dev:all", registry.ModeDev, "Start all services in development mode in new terminals"))
	root.AddCommand(newStartAllCmd(d, "start:prod:all", registry.ModeStart, "Start all services in production mode in new terminals"))

	listCmd, err := newListCmd(d)
	if err != nil {
		return err
	}
	root.AddCommand(listCmd)
	return nil
}

// Run executes root and prints a failure once to stderr. It returns the
// process exit code.
func Run(root *cobra.Command, stderr io.Writer) int {
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}
