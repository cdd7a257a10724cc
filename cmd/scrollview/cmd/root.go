// Package cmd implements the scrollview CLI commands.
package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/go-drift/scrollview/pkg/errors"
	"github.com/go-drift/scrollview/pkg/logging"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

type globalOptions struct {
	verbose bool
}

// logger builds the command logger and routes core error reports through
// it. The returned func restores the previous error handler.
func (o *globalOptions) logger(cmd *cobra.Command) (zerolog.Logger, func()) {
	logger := logging.New(cmd.ErrOrStderr(), o.verbose)
	prev := errors.SetHandler(errors.NewLogHandler(&logger))
	return logger, func() { errors.SetHandler(prev) }
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:   "scrollview",
		Short: "Replay scroll view scenarios",
		Long: `scrollview mounts a scroll view over an in-memory page and replays a
scenario file against it: user scrolls, programmatic scrolls, viewport
resizes, pull-to-refresh gestures and host refreshing toggles.

Scenario files are YAML (.yaml, .yml) or TOML (.toml).`,
		Version:       Version + " (" + BuildTime + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output (shows debug messages)")

	root.AddCommand(
		newSimulateCmd(opts),
		newWatchCmd(opts),
		newVersionCmd(),
	)
	return root
}

// Execute runs the CLI with os.Args.
func Execute() error {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		root.PrintErrln("Error:", err)
	}
	return err
}
