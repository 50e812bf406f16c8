package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	activityinadapter "studysphere/internal/modules/activity/adapter/in"
	activityoutadapter "studysphere/internal/modules/activity/adapter/out"
	activityservice "studysphere/internal/modules/activity/service"
	activityusecase "studysphere/internal/modules/activity/usecase"
	flashcardsinadapter "studysphere/internal/modules/flashcards/adapter/in"
	flashcardsoutadapter "studysphere/internal/modules/flashcards/adapter/out"
	flashcardsservice "studysphere/internal/modules/flashcards/service"
	flashcardsusecase "studysphere/internal/modules/flashcards/usecase"
	plannerinadapter "studysphere/internal/modules/planner/adapter/in"
	planneroutadapter "studysphere/internal/modules/planner/adapter/out"
	plannerservice "studysphere/internal/modules/planner/service"
	plannerusecase "studysphere/internal/modules/planner/usecase"
	plugininadapter "studysphere/internal/modules/plugin/adapter/in"
	pluginoutadapter "studysphere/internal/modules/plugin/adapter/out"
	pluginservice "studysphere/internal/modules/plugin/service"
	pluginusecase "studysphere/internal/modules/plugin/usecase"
	pomodoroinadapter "studysphere/internal/modules/pomodoro/adapter/in"
	pomodorooutadapter "studysphere/internal/modules/pomodoro/adapter/out"
	pomodorodto "studysphere/internal/modules/pomodoro/dto"
	pomodoroservice "studysphere/internal/modules/pomodoro/service"
	pomodorousecase "studysphere/internal/modules/pomodoro/usecase"
	progressinadapter "studysphere/internal/modules/progress/adapter/in"
	progressservice "studysphere/internal/modules/progress/service"
	progressusecase "studysphere/internal/modules/progress/usecase"
	stateinadapter "studysphere/internal/modules/state/adapter/in"
	stateoutadapter "studysphere/internal/modules/state/adapter/out"
	statedto "studysphere/internal/modules/state/dto"
	stateservice "studysphere/internal/modules/state/service"
	stateusecase "studysphere/internal/modules/state/usecase"
	"studysphere/internal/platform/clock"
	"studysphere/internal/platform/config"
	"studysphere/internal/platform/id"
	"studysphere/internal/platform/logging"
	"studysphere/internal/platform/random"
	uiapp "studysphere/internal/ui/app"
)

type App struct {
	Config config.Config
	Logger hclog.Logger

	StateCLI      stateinadapter.CLIHandler
	TimerCLI      pomodoroinadapter.CLIHandler
	FlashcardsCLI flashcardsinadapter.CLIHandler
	PlannerCLI    plannerinadapter.CLIHandler
	ProgressCLI   progressinadapter.CLIHandler
	ActivityCLI   activityinadapter.CLIHandler
	PluginCLI     plugininadapter.CLIHandler

	closers []func() error
}

// New wires every module around one store loaded from cfg.StatePath. Logs go
// to logOutput; a nil writer discards them.
func New(ctx context.Context, cfg config.Config, logOutput io.Writer) (*App, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	logger := logging.Discard()
	if logOutput != nil {
		logger = logging.New("sphere", cfg.LogLevel, logOutput)
	}
	clk := clock.SystemClock{}
	ids := id.NanoID{}

	store := stateusecase.NewStore(
		stateservice.NewStateService(clk, ids),
		stateoutadapter.NewFileBackend(cfg.StatePath),
		logger.Named("state"),
	)
	store.Load(ctx)

	activityLog, err := activityoutadapter.NewSQLiteLog(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open activity log: %w", err)
	}
	app := &App{Config: cfg, Logger: logger}
	if closer, ok := activityLog.(io.Closer); ok {
		app.closers = append(app.closers, closer.Close)
	}
	activityUC := activityusecase.NewInteractor(activityservice.NewActivityService(clk, id.UUIDv7{}, activityLog))

	timerUC := pomodorousecase.NewEngine(
		pomodoroservice.NewTimerService(clk),
		store,
		pomodorooutadapter.NewSystemTickerFactory(),
		pomodorousecase.Options{Interval: cfg.TickInterval, Recorder: activityUC, Logger: logger.Named("timer")},
	)
	app.closers = append(app.closers, func() error {
		timerUC.Close()
		return nil
	})

	flashcardsUC := flashcardsusecase.NewInteractor(
		flashcardsservice.NewDeckService(store, ids),
		flashcardsservice.NewQuizService(random.System{}),
		flashcardsoutadapter.NewMarkdownDeckFiles(),
		activityUC,
		logger.Named("quiz"),
	)

	plannerUC := plannerusecase.NewInteractor(
		plannerservice.NewPlannerService(store, clk, ids),
		plannerservice.NewImportService(planneroutadapter.NewLocalMarkdownReader(), planneroutadapter.NewLocalPDFReader()),
	)

	progressUC := progressusecase.NewInteractor(
		progressservice.NewProgressService(store, clk, ids),
		activityUC,
		logger.Named("progress"),
	)

	pluginUC := pluginusecase.NewInteractor(
		pluginservice.NewPluginService(
			pluginoutadapter.NewFileManifestStore(cfg.DataDir),
			pluginoutadapter.NewGRPCHost(logger.Named("plugin")),
			flashcardsUC,
		),
		cfg.DataDir,
		logger.Named("plugin"),
	)

	app.StateCLI = stateinadapter.NewCLIHandler(stateusecase.NewInteractor(store))
	app.TimerCLI = pomodoroinadapter.NewCLIHandler(timerUC)
	app.FlashcardsCLI = flashcardsinadapter.NewCLIHandler(flashcardsUC)
	app.PlannerCLI = plannerinadapter.NewCLIHandler(plannerUC)
	app.ProgressCLI = progressinadapter.NewCLIHandler(progressUC)
	app.ActivityCLI = activityinadapter.NewCLIHandler(activityUC)
	app.PluginCLI = plugininadapter.NewCLIHandler(pluginUC)
	return app, nil
}

// Close stops the timer loop and releases the activity database.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// RunTUI resumes the timer and redraws on every store change until the user
// quits.
func RunTUI(ctx context.Context, app *App) error {
	if err := app.TimerCLI.Resume(ctx); err != nil {
		return fmt.Errorf("resume timer: %w", err)
	}
	model := uiapp.NewModel(uiapp.Ports{
		State:      app.StateCLI,
		Timer:      app.TimerCLI,
		Flashcards: app.FlashcardsCLI,
		Planner:    app.PlannerCLI,
		Progress:   app.ProgressCLI,
		Plugin:     app.PluginCLI,
	}, app.Config.DataDir)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Observers run synchronously after a save; Send must not block the tick
	// loop while the program is busy.
	cancelState := app.StateCLI.Subscribe(func(statedto.BadgesOutput) {
		go program.Send(uiapp.StateChangedMsg{})
	})
	defer cancelState()
	cancelDone := app.TimerCLI.OnComplete(func(done pomodorodto.CompletionOutput) {
		go program.Send(uiapp.TimerCompletedMsg{Completion: done})
	})
	defer cancelDone()

	_, err := program.Run()
	return err
}
