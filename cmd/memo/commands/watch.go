package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/memo/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	opts := app.RunOptions{}
	cmd := &cobra.Command{
		Use:   "watch [flags] [--] command [args...]",
		Short: "Re-run a command whenever one of its dependencies changes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Options = c.options
			return c.app.Watch(cmd.Context(), args, opts)
		},
	}
	bindRunFlags(cmd, &opts)
	return cmd
}
