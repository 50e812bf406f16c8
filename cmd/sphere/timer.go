package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"studysphere/internal/bootstrap"
	pomodorodto "studysphere/internal/modules/pomodoro/dto"
)

func newTimerCmd(dataDir *string) *cobra.Command {
	timer := &cobra.Command{Use: "timer", Short: "Pomodoro timer"}

	// transition builds a subcommand around one engine call that returns the
	// new status.
	transition := func(use, short string, args cobra.PositionalArgs, fn func(context.Context, *bootstrap.App, []string) (pomodorodto.StatusOutput, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  args,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
					status, err := fn(ctx, app, args)
					if err != nil {
						return err
					}
					printStatus(cmd.OutOrStdout(), status)
					return nil
				})
			},
		}
	}

	timer.AddCommand(transition("status", "Show the timer", cobra.NoArgs,
		func(_ context.Context, app *bootstrap.App, _ []string) (pomodorodto.StatusOutput, error) {
			return app.TimerCLI.Status(), nil
		}))
	timer.AddCommand(transition("toggle", "Start or pause the timer", cobra.NoArgs,
		func(ctx context.Context, app *bootstrap.App, _ []string) (pomodorodto.StatusOutput, error) {
			return app.TimerCLI.Toggle(ctx)
		}))
	timer.AddCommand(transition("start", "Start the timer", cobra.NoArgs,
		func(ctx context.Context, app *bootstrap.App, _ []string) (pomodorodto.StatusOutput, error) {
			return app.TimerCLI.Start(ctx)
		}))
	timer.AddCommand(transition("pause", "Pause the timer", cobra.NoArgs,
		func(ctx context.Context, app *bootstrap.App, _ []string) (pomodorodto.StatusOutput, error) {
			return app.TimerCLI.Pause(ctx)
		}))
	timer.AddCommand(transition("reset", "Refill the current mode's countdown", cobra.NoArgs,
		func(ctx context.Context, app *bootstrap.App, _ []string) (pomodorodto.StatusOutput, error) {
			return app.TimerCLI.Reset(ctx)
		}))
	timer.AddCommand(transition("mode <focus|short|long>", "Switch the timer mode", cobra.ExactArgs(1),
		func(ctx context.Context, app *bootstrap.App, args []string) (pomodorodto.StatusOutput, error) {
			return app.TimerCLI.SetMode(ctx, args[0])
		}))
	timer.AddCommand(transition("skip", "End the current session now", cobra.NoArgs,
		func(ctx context.Context, app *bootstrap.App, _ []string) (pomodorodto.StatusOutput, error) {
			return app.TimerCLI.Skip(ctx)
		}))

	var focus, short, long int
	durations := &cobra.Command{
		Use:   "durations --focus <min> --short <min> --long <min>",
		Short: "Set session lengths in minutes; out of range values are clamped",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				current := app.TimerCLI.Status()
				if !cmd.Flags().Changed("focus") {
					focus = current.Focus
				}
				if !cmd.Flags().Changed("short") {
					short = current.Short
				}
				if !cmd.Flags().Changed("long") {
					long = current.Long
				}
				status, err := app.TimerCLI.ApplyDurations(ctx, focus, short, long)
				if err != nil {
					return err
				}
				printStatus(cmd.OutOrStdout(), status)
				return nil
			})
		},
	}
	durations.Flags().IntVar(&focus, "focus", 0, "focus minutes (10-90)")
	durations.Flags().IntVar(&short, "short", 0, "short break minutes (3-30)")
	durations.Flags().IntVar(&long, "long", 0, "long break minutes (5-60)")
	timer.AddCommand(durations)

	timer.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Keep the timer ticking in the foreground until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalContext()
			defer cancel()
			app, err := loadApp(ctx, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()

			out := cmd.OutOrStdout()
			unsubscribe := app.TimerCLI.OnComplete(func(done pomodorodto.CompletionOutput) {
				verb := "finished"
				if done.Skipped {
					verb = "skipped"
				}
				_, _ = fmt.Fprintf(out, "%s %s (%d min), next: %s\n", done.Finished, verb, done.Minutes, done.Next)
			})
			defer unsubscribe()

			if err := app.TimerCLI.Resume(ctx); err != nil {
				return err
			}
			status := app.TimerCLI.Status()
			if !status.IsRunning {
				if status, err = app.TimerCLI.Start(ctx); err != nil {
					return err
				}
			}
			printStatus(out, status)
			<-ctx.Done()
			_, _ = fmt.Fprintln(out)
			printStatus(out, app.TimerCLI.Status())
			return nil
		},
	})
	return timer
}

func printStatus(w io.Writer, s pomodorodto.StatusOutput) {
	state := "paused"
	if s.IsRunning {
		state = "running"
	}
	_, _ = fmt.Fprintf(w, "%s %s %s  focus=%d short=%d long=%d sessions=%d\n",
		s.Mode, s.Readout, state, s.Focus, s.Short, s.Long, s.FocusCount)
}
