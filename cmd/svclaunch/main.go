package main

import (
	"os"

	"github.com/go-go-golems/glazed/pkg/cmds/logging"
	"github.com/go-go-golems/svclaunch/cmd/svclaunch/cmds"
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "svclaunch <command>",
		Short: "Start workspace services in new terminal windows",
		Long: "svclaunch maps short service names to directories of the workspace and opens\n" +
			"a terminal per service running its dev or start command.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.InitLoggerFromCobra(cmd)
		},
	}
}

func main() {
	root := newRootCmd()
	cobra.CheckErr(logging.AddLoggingLayerToRootCommand(root, "svclaunch"))
	cmds.AddRootFlags(root)
	cobra.CheckErr(cmds.AddCommands(root))
	os.Exit(cmds.Run(root, os.Stderr))
}
