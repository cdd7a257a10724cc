package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/go-drift/scrollview/cmd/scrollview/internal/config"
	"github.com/go-drift/scrollview/cmd/scrollview/internal/render"
	"github.com/go-drift/scrollview/cmd/scrollview/internal/session"
	"github.com/go-drift/scrollview/cmd/scrollview/internal/watch"
	"github.com/go-drift/scrollview/pkg/scheduler"
)

func newWatchCmd(opts *globalOptions) *cobra.Command {
	var duration time.Duration
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Run a scenario in real time and re-apply it on save",
		Long: `Mount the scenario on the wall clock and replay its steps in real time.
Saving the file re-applies it to the mounted view, so toggling
refreshControl.refreshing starts or completes a refresh. Strategy flags
only change on the next run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := config.Load(args[0])
			if err != nil {
				return err
			}
			logger, restore := opts.logger(cmd)
			defer restore()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}
			return runWatch(ctx, args[0], file, cmd.OutOrStdout(), logger)
		},
	}
	cmd.Flags().DurationVar(&duration, "for", 0, "Stop after this long (0 runs until interrupted)")
	return cmd
}

func runWatch(ctx context.Context, path string, file *config.File, out io.Writer, logger zerolog.Logger) error {
	sched := scheduler.New(scheduler.RealClock{})
	s := session.New(sched, file, render.NewPrinter(out), logger)
	sched.Post(s.Mount)

	fw, err := watch.New(path, func() {
		next, err := config.Load(path)
		if err != nil {
			logger.Warn().Err(err).Msg("reload failed; keeping the previous scenario")
			return
		}
		sched.Post(func() { s.Reload(next) })
	}, logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return sched.Run(gctx) })
	g.Go(func() error { return fw.Run(gctx) })
	g.Go(func() error { return s.Play(gctx, file.Steps) })
	err = g.Wait()

	// The loop has stopped, so the session can be torn down directly.
	s.Unmount()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
