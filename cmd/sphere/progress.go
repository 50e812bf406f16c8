package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"studysphere/internal/bootstrap"
)

func newGoalCmd(dataDir *string) *cobra.Command {
	goal := &cobra.Command{Use: "goal", Short: "Goals with a 0-100 progress"}

	goal.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List goals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(_ context.Context, app *bootstrap.App) error {
				goals := app.ProgressCLI.Goals()
				if len(goals) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no goals")
					return nil
				}
				for _, g := range goals {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\t%3d%%\t%s\n", doneMark(g.Done), g.ID, g.Title, g.Progress, g.Meta)
				}
				return nil
			})
		},
	})

	var details, meta string
	var progress int
	add := &cobra.Command{
		Use:   "add <title> [--details d] [--meta m] [--progress n]",
		Short: "Add a goal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ProgressCLI.AddGoal(ctx, strings.Join(args, " "), details, meta, progress)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "goal added: %s (%s) %d%%\n", out.Title, out.ID, out.Progress)
				return nil
			})
		},
	}
	add.Flags().StringVar(&details, "details", "", "description")
	add.Flags().StringVar(&meta, "meta", "", "short label, e.g. a deadline")
	add.Flags().IntVar(&progress, "progress", 0, "starting progress 0-100")
	goal.AddCommand(add)

	goal.AddCommand(&cobra.Command{
		Use:   "progress <goal> <0-100>",
		Short: "Set a goal's progress; 100 marks it done",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("progress must be a number, got %q", args[1])
			}
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ProgressCLI.SetGoalProgress(ctx, args[0], value)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %d%%\n", doneMark(out.Done), out.Title, out.Progress)
				return nil
			})
		},
	})

	goal.AddCommand(refCommand(dataDir, "toggle", "goal", "Mark a goal done or reopen it", func(ctx context.Context, app *bootstrap.App, ref string, w io.Writer) error {
		out, err := app.ProgressCLI.ToggleGoal(ctx, ref)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "%s %s %d%%\n", doneMark(out.Done), out.Title, out.Progress)
		return nil
	}))
	goal.AddCommand(refCommand(dataDir, "delete", "goal", "Delete a goal", func(ctx context.Context, app *bootstrap.App, ref string, w io.Writer) error {
		if err := app.ProgressCLI.DeleteGoal(ctx, ref); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "goal deleted: %s\n", ref)
		return nil
	}))
	return goal
}

func newHabitCmd(dataDir *string) *cobra.Command {
	habit := &cobra.Command{Use: "habit", Short: "Daily habits and streaks"}

	habit.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List habits with today's check and the current streak",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(_ context.Context, app *bootstrap.App) error {
				habits := app.ProgressCLI.Habits()
				if len(habits) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no habits")
					return nil
				}
				for _, h := range habits {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\tstreak %d\t%s\n", doneMark(h.DoneToday), h.ID, h.Title, h.Streak, h.Meta)
				}
				return nil
			})
		},
	})

	var details, meta string
	add := &cobra.Command{
		Use:   "add <title> [--details d] [--meta m]",
		Short: "Add a habit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ProgressCLI.AddHabit(ctx, strings.Join(args, " "), details, meta)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "habit added: %s (%s)\n", out.Title, out.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&details, "details", "", "description")
	add.Flags().StringVar(&meta, "meta", "", "short label, e.g. Daily")
	habit.AddCommand(add)

	habit.AddCommand(refCommand(dataDir, "check", "habit", "Toggle today's check for a habit", func(ctx context.Context, app *bootstrap.App, ref string, w io.Writer) error {
		out, err := app.ProgressCLI.ToggleHabit(ctx, ref)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "%s %s streak %d\n", doneMark(out.DoneToday), out.Title, out.Streak)
		return nil
	}))
	habit.AddCommand(refCommand(dataDir, "delete", "habit", "Delete a habit", func(ctx context.Context, app *bootstrap.App, ref string, w io.Writer) error {
		if err := app.ProgressCLI.DeleteHabit(ctx, ref); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "habit deleted: %s\n", ref)
		return nil
	}))
	return habit
}

func newInsightsCmd(dataDir *string) *cobra.Command {
	var recent int
	insights := &cobra.Command{
		Use:   "insights [--recent n]",
		Short: "Summarize goals, habits and study activity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out := cmd.OutOrStdout()
				in := app.ProgressCLI.Insights(ctx)
				_, _ = fmt.Fprintf(out, "day %s\n", in.Day)
				_, _ = fmt.Fprintf(out, "goals done        %d / %d\n", in.GoalsDone, in.GoalsTotal)
				_, _ = fmt.Fprintf(out, "average progress  %d%%\n", in.AverageProgress)
				_, _ = fmt.Fprintf(out, "habits today      %d / %d\n", in.HabitsDoneToday, in.Habits)
				_, _ = fmt.Fprintf(out, "best streak       %d\n", in.BestStreak)
				_, _ = fmt.Fprintf(out, "focus today       %d sessions, %d min\n", in.FocusSessions, in.FocusMinutes)
				_, _ = fmt.Fprintf(out, "quizzes (7 days)  %d, average %d%%\n", in.QuizSessions, in.AverageQuizScore)
				if in.ActivityError != "" {
					_, _ = fmt.Fprintf(out, "activity log unavailable: %s\n", in.ActivityError)
				}
				if recent <= 0 {
					return nil
				}
				entries, err := app.ActivityCLI.Recent(ctx, recent)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out, "\nrecent activity")
				for _, e := range entries {
					at := e.At.Local().Format(time.DateTime)
					switch e.Kind {
					case "quiz":
						_, _ = fmt.Fprintf(out, "%s  quiz   %s %d/%d (%d%%)\n", at, e.Label, e.Correct, e.Total, e.Score)
					default:
						_, _ = fmt.Fprintf(out, "%s  %-6s %s %d min\n", at, e.Kind, e.Label, e.Minutes)
					}
				}
				return nil
			})
		},
	}
	insights.Flags().IntVar(&recent, "recent", 0, "also list the last n activity entries")
	return insights
}

// refCommand builds a subcommand that takes an id or a title.
func refCommand(dataDir *string, name, kind, short string, fn func(context.Context, *bootstrap.App, string, io.Writer) error) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("%s <%s id or title>", name, kind),
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				return fn(ctx, app, strings.Join(args, " "), cmd.OutOrStdout())
			})
		},
	}
}
