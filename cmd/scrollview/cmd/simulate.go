package cmd

import (
	"github.com/spf13/cobra"

	"github.com/go-drift/scrollview/cmd/scrollview/internal/config"
	"github.com/go-drift/scrollview/cmd/scrollview/internal/render"
	"github.com/go-drift/scrollview/cmd/scrollview/internal/session"
)

func newSimulateCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "simulate <file>",
		Short: "Replay a scenario on a simulated clock",
		Long: `Replay a scenario instantly on a fake clock. Waits cost no real time and
every timer fires at its exact deadline, so the output is deterministic.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := config.Load(args[0])
			if err != nil {
				return err
			}
			logger, restore := opts.logger(cmd)
			defer restore()

			s := session.Simulate(file, render.NewPrinter(cmd.OutOrStdout()), logger)
			s.Unmount()
			return nil
		},
	}
}
