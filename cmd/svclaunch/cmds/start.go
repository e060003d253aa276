package cmds

import (
	"github.com/go-go-golems/svclaunch/pkg/launch"
	"github.com/go-go-golems/svclaunch/pkg/registry"
	"github.com/spf13/cobra"
)

func newStartCmd(d *deps, name string, mode registry.Mode, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <service>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			reg, _, err := d.resolve(cmd)
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			return reg.Identifiers(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// arguments are valid past this point; failures are not usage errors
			cmd.SilenceUsage = true
			r, err := d.runner(cmd)
			if err != nil {
				return err
			}
			_, err = r.Start(cmd.Context(), launch.Request{Service: args[0], Mode: mode})
			return err
		},
	}
}

func newStartAllCmd(d *deps, name string, mode registry.Mode, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			r, err := d.runner(cmd)
			if err != nil {
				return err
			}
			_, err = r.StartAll(cmd.Context(), mode)
			return err
		},
	}
}
