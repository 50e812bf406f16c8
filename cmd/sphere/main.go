package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"studysphere/internal/bootstrap"
	"studysphere/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "sphere",
		Short:         "StudySphere terminal study hub",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default $SPHERE_DATA_DIR or ~/.studysphere)")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newTimerCmd(&dataDir))
	root.AddCommand(newDeckCmd(&dataDir))
	root.AddCommand(newCardCmd(&dataDir))
	root.AddCommand(newQuizCmd(&dataDir))
	root.AddCommand(newTaskCmd(&dataDir))
	root.AddCommand(newNoteCmd(&dataDir))
	root.AddCommand(newAssignmentCmd(&dataDir))
	root.AddCommand(newTimetableCmd(&dataDir))
	root.AddCommand(newGoalCmd(&dataDir))
	root.AddCommand(newHabitCmd(&dataDir))
	root.AddCommand(newInsightsCmd(&dataDir))
	root.AddCommand(newThemeCmd(&dataDir))
	root.AddCommand(newBadgesCmd(&dataDir))
	root.AddCommand(newPluginCmd(&dataDir))
	root.AddCommand(newStateCmd(&dataDir))
	return root
}

func loadApp(ctx context.Context, dataDir string) (*bootstrap.App, error) {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(ctx, cfg, os.Stderr)
}

// withApp runs fn against a freshly booted app and closes it afterwards.
func withApp(cmd *cobra.Command, dataDir string, fn func(context.Context, *bootstrap.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app, err := loadApp(ctx, dataDir)
	if err != nil {
		return err
	}
	runErr := fn(ctx, app)
	if err := app.Close(); err != nil && runErr == nil {
		return err
	}
	return runErr
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the StudySphere terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(*dataDir)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
				return fmt.Errorf("create data dir: %w", err)
			}
			logFile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer logFile.Close()

			ctx, cancel := signalContext()
			defer cancel()
			app, err := bootstrap.New(ctx, cfg, logFile)
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(ctx, app)
		},
	}
}

func newThemeCmd(dataDir *string) *cobra.Command {
	theme := &cobra.Command{
		Use:   "theme [light|dark|toggle]",
		Short: "Show or change the color theme",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				prefs := app.PlannerCLI.Preferences()
				var err error
				switch {
				case len(args) == 0:
				case args[0] == "toggle":
					prefs, err = app.PlannerCLI.ToggleTheme(ctx)
				default:
					prefs, err = app.PlannerCLI.SetTheme(ctx, args[0])
				}
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), prefs.Theme)
				return nil
			})
		},
	}
	return theme
}

func newBadgesCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "badges",
		Short: "Show item counts per section",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(_ context.Context, app *bootstrap.App) error {
				summary := app.StateCLI.Summary()
				b := summary.Badges
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "tasks=%d notes=%d assignments=%d decks=%d goals=%d habits=%d\n",
					b.OpenTasks, b.Notes, b.OpenAssignments, b.Decks, b.ActiveGoals, b.Habits)
				_, _ = fmt.Fprintf(out, "theme=%s section=%s\n", summary.Theme, summary.ActiveSection)
				if len(summary.Extra) > 0 {
					_, _ = fmt.Fprintf(out, "preserved keys: %s\n", strings.Join(summary.Extra, ", "))
				}
				return nil
			})
		},
	}
}

func newStateCmd(dataDir *string) *cobra.Command {
	state := &cobra.Command{Use: "state", Short: "Persisted state maintenance"}

	var yes bool
	reset := &cobra.Command{
		Use:   "reset --yes",
		Short: "Replace all persisted data with the defaults",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to reset without --yes")
			}
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.StateCLI.Reset(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "state reset to defaults")
				return nil
			})
		},
	}
	reset.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	state.AddCommand(reset)
	return state
}
