package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	activitydto "studysphere/internal/modules/activity/dto"
	activityin "studysphere/internal/modules/activity/port/in"
	"studysphere/internal/modules/pomodoro/domain"
	"studysphere/internal/modules/pomodoro/dto"
	pomodoroin "studysphere/internal/modules/pomodoro/port/in"
	pomodoroout "studysphere/internal/modules/pomodoro/port/out"
	"studysphere/internal/modules/pomodoro/service"
	statedomain "studysphere/internal/modules/state/domain"
	statein "studysphere/internal/modules/state/port/in"
	apperrors "studysphere/internal/platform/errors"
	"studysphere/internal/platform/logging"
)

const DefaultTickInterval = 400 * time.Millisecond

var errUnchanged = errors.New("timer unchanged")

type Options struct {
	Interval time.Duration
	Recorder activityin.Recorder
	Logger   hclog.Logger
}

// Engine drives the pomodoro countdown stored in the shared state. It owns
// at most one ticker; every transition goes through the store.
type Engine struct {
	svc      *service.TimerService
	store    statein.Store
	tickers  pomodoroout.TickerFactory
	interval time.Duration
	recorder activityin.Recorder
	logger   hclog.Logger

	mu     sync.Mutex
	ticker pomodoroout.Ticker
	stop   chan struct{}

	hooksMu  sync.Mutex
	nextHook int
	hooks    map[int]func(dto.CompletionOutput)
}

func NewEngine(svc *service.TimerService, store statein.Store, tickers pomodoroout.TickerFactory, opts Options) pomodoroin.Usecase {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Engine{
		svc:      svc,
		store:    store,
		tickers:  tickers,
		interval: interval,
		recorder: opts.Recorder,
		logger:   logging.OrDiscard(opts.Logger),
		hooks:    map[int]func(dto.CompletionOutput){},
	}
}

func (e *Engine) Status() dto.StatusOutput {
	return e.svc.Status(e.store.Snapshot().Pomodoro)
}

func (e *Engine) SetMode(ctx context.Context, mode string) (dto.StatusOutput, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	err := e.mutate(ctx, func(p *statedomain.PomodoroState) error {
		if err := domain.SetMode(p, statedomain.Mode(mode)); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		return nil
	})
	return e.Status(), err
}

func (e *Engine) Reset(ctx context.Context) (dto.StatusOutput, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	err := e.mutate(ctx, func(p *statedomain.PomodoroState) error {
		domain.Reset(p)
		return nil
	})
	return e.Status(), err
}

func (e *Engine) ToggleRun(ctx context.Context) (dto.StatusOutput, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.toggleLocked(ctx)
}

func (e *Engine) Start(ctx context.Context) (dto.StatusOutput, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.store.Snapshot().Pomodoro.IsRunning {
		return e.toggleLocked(ctx)
	}
	if e.ticker != nil {
		return e.Status(), nil
	}
	err := e.resumeLocked(ctx)
	return e.Status(), err
}

func (e *Engine) Pause(ctx context.Context) (dto.StatusOutput, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.store.Snapshot().Pomodoro.IsRunning {
		return e.Status(), nil
	}
	return e.toggleLocked(ctx)
}

func (e *Engine) toggleLocked(ctx context.Context) (dto.StatusOutput, error) {
	running := false
	err := e.mutate(ctx, func(p *statedomain.PomodoroState) error {
		running = e.svc.Toggle(p)
		return nil
	})
	if err != nil {
		return e.Status(), err
	}
	if running {
		e.startLoopLocked()
	} else {
		e.stopLoopLocked()
	}
	return e.Status(), nil
}

// Skip ends the current session immediately. A running timer keeps running
// in the next mode.
func (e *Engine) Skip(ctx context.Context) (dto.StatusOutput, error) {
	e.mu.Lock()
	var done domain.Completion
	err := e.mutate(ctx, func(p *statedomain.PomodoroState) error {
		done = domain.Advance(p)
		done.Skipped = true
		if p.IsRunning {
			e.svc.Anchor(p)
		}
		return nil
	})
	e.mu.Unlock()
	if err != nil {
		return e.Status(), err
	}
	e.completed(ctx, done)
	return e.Status(), nil
}

func (e *Engine) ApplyDurations(ctx context.Context, input dto.DurationsInput) (dto.StatusOutput, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	err := e.mutate(ctx, func(p *statedomain.PomodoroState) error {
		domain.ApplyDurations(p, statedomain.Durations{Focus: input.Focus, Short: input.Short, Long: input.Long})
		return nil
	})
	return e.Status(), err
}

// Tick is the periodic callback. It only writes when whole seconds elapsed.
func (e *Engine) Tick(ctx context.Context) error {
	e.mu.Lock()
	var result domain.TickResult
	err := e.mutate(ctx, func(p *statedomain.PomodoroState) error {
		result = e.svc.Tick(p)
		if !result.Changed {
			return errUnchanged
		}
		return nil
	})
	if err == nil && result.Completion != nil {
		e.stopLoopLocked()
	}
	e.mu.Unlock()
	if err != nil {
		return err
	}
	if result.Completion != nil {
		e.completed(ctx, *result.Completion)
	}
	return nil
}

// Resume restarts the loop for a timer persisted as running. Time spent
// while no process was running is not counted.
func (e *Engine) Resume(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.store.Snapshot().Pomodoro.IsRunning {
		return nil
	}
	return e.resumeLocked(ctx)
}

// resumeLocked re-anchors a timer persisted as running so time spent without
// a live loop is not counted, then starts the loop.
func (e *Engine) resumeLocked(ctx context.Context) error {
	err := e.mutate(ctx, func(p *statedomain.PomodoroState) error {
		e.svc.Anchor(p)
		return nil
	})
	if err != nil {
		return err
	}
	e.startLoopLocked()
	return nil
}

func (e *Engine) OnComplete(fn func(dto.CompletionOutput)) func() {
	e.hooksMu.Lock()
	defer e.hooksMu.Unlock()
	key := e.nextHook
	e.nextHook++
	e.hooks[key] = fn
	return func() {
		e.hooksMu.Lock()
		defer e.hooksMu.Unlock()
		delete(e.hooks, key)
	}
}

func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLoopLocked()
}

func (e *Engine) mutate(ctx context.Context, fn func(*statedomain.PomodoroState) error) error {
	err := e.store.Mutate(ctx, func(state *statedomain.AppState) error {
		return fn(&state.Pomodoro)
	})
	if errors.Is(err, errUnchanged) {
		return nil
	}
	return err
}

func (e *Engine) startLoopLocked() {
	e.stopLoopLocked()
	ticker := e.tickers.NewTicker(e.interval)
	stop := make(chan struct{})
	e.ticker = ticker
	e.stop = stop
	go e.loop(ticker, stop)
}

func (e *Engine) stopLoopLocked() {
	if e.ticker == nil {
		return
	}
	e.ticker.Stop()
	close(e.stop)
	e.ticker = nil
	e.stop = nil
}

func (e *Engine) loop(ticker pomodoroout.Ticker, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-ticker.C():
			if err := e.Tick(context.Background()); err != nil {
				e.logger.Warn("timer tick failed", "error", err)
			}
		}
	}
}

func (e *Engine) completed(ctx context.Context, done domain.Completion) {
	e.logger.Debug("session complete", "finished", done.Finished, "next", done.Next, "skipped", done.Skipped)
	if done.Finished == statedomain.ModeFocus && !done.Skipped && e.recorder != nil {
		if err := e.recorder.RecordFocus(ctx, activitydto.FocusInput{Mode: string(done.Finished), Minutes: done.Minutes}); err != nil {
			e.logger.Warn("record focus session failed", "error", err)
		}
	}

	e.hooksMu.Lock()
	hooks := make([]func(dto.CompletionOutput), 0, len(e.hooks))
	for _, fn := range e.hooks {
		hooks = append(hooks, fn)
	}
	e.hooksMu.Unlock()

	out := dto.CompletionOutput{
		Finished: string(done.Finished),
		Minutes:  done.Minutes,
		Next:     string(done.Next),
		Skipped:  done.Skipped,
	}
	for _, fn := range hooks {
		fn(out)
	}
}
