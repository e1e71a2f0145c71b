// Package commands implements the CLI commands for memo.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/memo/internal/app"
	"go.trai.ch/memo/internal/build"
)

// CLI represents the command line interface for memo.
type CLI struct {
	app      Application
	rootCmd  *cobra.Command
	options  app.Options
	exitCode int
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, args []string, opts app.RunOptions) (int, error)
	Deps(ctx context.Context, args []string, opts app.Options) error
	Forget(ctx context.Context, args []string, opts app.Options) error
	Clean(ctx context.Context, opts app.Options) error
	Watch(ctx context.Context, args []string, opts app.RunOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "memo",
		Short:         "Skip commands whose input files have not changed",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	// Persistent flags come first so that -v stays with --verbose.
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.options.ConfigPath, "config", "c", "", "Path to the configuration file (default .memo.yaml)")
	flags.BoolVar(&c.options.JSONLog, "json-log", false, "Write log lines as JSON")
	flags.BoolVarP(&c.options.Verbose, "verbose", "v", false, "Explain why commands are re-run")
	flags.StringVar(&c.options.Store, "store", "", "Path to the dependency store (default .deps)")

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newDepsCmd())
	rootCmd.AddCommand(c.newForgetCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// ExitCode is the status reported by the last memoized command.
func (c *CLI) ExitCode() int {
	return c.exitCode
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
