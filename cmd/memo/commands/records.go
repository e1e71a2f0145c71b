package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newDepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps [command [args...]]",
		Short: "List the recorded dependencies of a command, or of every recorded command",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Deps(cmd.Context(), args, c.options)
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func (c *CLI) newForgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forget command [args...]",
		Short: "Remove the record of a command so it runs next time",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Forget(cmd.Context(), args, c.options)
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}
