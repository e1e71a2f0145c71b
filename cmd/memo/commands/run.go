package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/memo/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	opts := app.RunOptions{}
	cmd := &cobra.Command{
		Use:   "run [flags] [--] command [args...]",
		Short: "Run a command unless none of the files it read have changed",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			opts.Options = c.options
			code, err := c.app.Run(cmd.Context(), args, opts)
			c.exitCode = code
			return err
		},
	}
	bindRunFlags(cmd, &opts)
	return cmd
}

func bindRunFlags(cmd *cobra.Command, opts *app.RunOptions) {
	// Everything after the first positional argument belongs to the command.
	cmd.Flags().SetInterspersed(false)

	cmd.Flags().BoolVarP(&opts.ModTime, "modtime", "t", false, "Compare modification times instead of content hashes")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Run the command even if it is up to date")
	cmd.Flags().BoolVar(&opts.NoTrace, "no-trace", false, "Run the command without recording its dependencies")
	cmd.Flags().BoolVarP(&opts.ShowSkipped, "show-skipped", "s", false, "Report commands that were skipped")
	cmd.Flags().BoolVarP(&opts.ShowDeps, "show-deps", "D", false, "Print the recorded dependencies after a traced run")
	cmd.Flags().BoolVar(&opts.PTY, "pty", false, "Run the command in a pseudo-terminal when stdout is a terminal")
	cmd.Flags().StringVar(&opts.Digest, "digest", "", "Content hash algorithm: sha256 or xxhash")
	cmd.Flags().StringArrayVarP(&opts.Irrelevant, "irrelevant", "d", nil, "Ignore files under this directory (repeatable)")
}
