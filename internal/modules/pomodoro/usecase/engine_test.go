package usecase_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	activitydto "studysphere/internal/modules/activity/dto"
	"studysphere/internal/modules/pomodoro/dto"
	pomodoroin "studysphere/internal/modules/pomodoro/port/in"
	pomodoroout "studysphere/internal/modules/pomodoro/port/out"
	"studysphere/internal/modules/pomodoro/service"
	"studysphere/internal/modules/pomodoro/usecase"
	statedomain "studysphere/internal/modules/state/domain"
	statein "studysphere/internal/modules/state/port/in"
	stateservice "studysphere/internal/modules/state/service"
	stateusecase "studysphere/internal/modules/state/usecase"
	apperrors "studysphere/internal/platform/errors"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type seqID struct {
	mu sync.Mutex
	n  int
}

func (s *seqID) New() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return "id-" + strconv.Itoa(s.n)
}

type memoryBackend struct {
	mu      sync.Mutex
	payload []byte
	writes  int
}

func (m *memoryBackend) Read(context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.payload == nil {
		return nil, apperrors.ErrNotFound
	}
	return m.payload, nil
}

func (m *memoryBackend) Write(_ context.Context, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	m.payload = append([]byte(nil), payload...)
	return nil
}

func (m *memoryBackend) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

type fakeTicker struct {
	factory *fakeTickerFactory
	ch      chan time.Time
	once    sync.Once
}

func (t *fakeTicker) C() <-chan time.Time { return t.ch }

func (t *fakeTicker) Stop() {
	t.once.Do(func() {
		t.factory.mu.Lock()
		t.factory.active--
		t.factory.mu.Unlock()
	})
}

type fakeTickerFactory struct {
	mu      sync.Mutex
	active  int
	created int
}

func (f *fakeTickerFactory) NewTicker(time.Duration) pomodoroout.Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.active++
	f.created++
	return &fakeTicker{factory: f, ch: make(chan time.Time)}
}

func (f *fakeTickerFactory) counts() (active, created int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active, f.created
}

type fakeRecorder struct {
	mu    sync.Mutex
	focus []activitydto.FocusInput
	err   error
}

func (r *fakeRecorder) RecordFocus(_ context.Context, input activitydto.FocusInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.focus = append(r.focus, input)
	return r.err
}

func (r *fakeRecorder) RecordQuiz(context.Context, activitydto.QuizInput) error { return nil }

type harness struct {
	clock    *manualClock
	backend  *memoryBackend
	store    statein.Store
	tickers  *fakeTickerFactory
	recorder *fakeRecorder
	engine   pomodoroin.Usecase
}

func newHarness(t *testing.T, persisted []byte) *harness {
	t.Helper()
	h := &harness{
		clock:    &manualClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)},
		backend:  &memoryBackend{payload: persisted},
		tickers:  &fakeTickerFactory{},
		recorder: &fakeRecorder{},
	}
	h.store = stateusecase.NewStore(stateservice.NewStateService(h.clock, &seqID{}), h.backend, nil)
	h.store.Load(context.Background())
	h.engine = usecase.NewEngine(service.NewTimerService(h.clock), h.store, h.tickers, usecase.Options{Recorder: h.recorder})
	t.Cleanup(h.engine.Close)
	return h
}

func (h *harness) pomodoro() statedomain.PomodoroState {
	return h.store.Snapshot().Pomodoro
}

func TestToggleRunKeepsASingleActiveTicker(t *testing.T) {
	t.Parallel()
	h := newHarness(t, nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := h.engine.ToggleRun(ctx); err != nil {
			t.Fatalf("toggle: %v", err)
		}
		active, _ := h.tickers.counts()
		wantActive := 0
		if i%2 == 0 {
			wantActive = 1
		}
		if active != wantActive {
			t.Fatalf("toggle %d: expected %d active tickers, got %d", i, wantActive, active)
		}
	}
	if err := h.engine.Resume(ctx); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if _, err := h.engine.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if active, created := h.tickers.counts(); active != 1 || created != 4 {
		t.Fatalf("expected 1 active of 4 created tickers, got %d of %d", active, created)
	}
	h.engine.Close()
	if active, _ := h.tickers.counts(); active != 0 {
		t.Fatalf("close must stop the ticker, %d still active", active)
	}
}

func TestTickCountsWholeSecondsAndSkipsNoopWrites(t *testing.T) {
	t.Parallel()
	h := newHarness(t, nil)
	ctx := context.Background()

	if _, err := h.engine.ToggleRun(ctx); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	writes := h.backend.Writes()

	h.clock.Advance(400 * time.Millisecond)
	if err := h.engine.Tick(ctx); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if h.backend.Writes() != writes {
		t.Fatalf("sub-second tick must not write")
	}

	h.clock.Advance(2700 * time.Millisecond)
	if err := h.engine.Tick(ctx); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if got := h.pomodoro().SecondsLeft; got != 1497 {
		t.Fatalf("expected 1497 seconds left, got %d", got)
	}
	if h.backend.Writes() != writes+1 {
		t.Fatalf("expected exactly one write for the elapsed seconds")
	}
	if status := h.engine.Status(); status.Readout != "24:57" || !status.IsRunning {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestCompletionStopsLoopNotifiesAndRecords(t *testing.T) {
	t.Parallel()
	h := newHarness(t, nil)
	ctx := context.Background()

	var completions []dto.CompletionOutput
	cancel := h.engine.OnComplete(func(c dto.CompletionOutput) { completions = append(completions, c) })
	defer cancel()

	if _, err := h.engine.ApplyDurations(ctx, dto.DurationsInput{Focus: 10, Short: 3, Long: 5}); err != nil {
		t.Fatalf("apply durations: %v", err)
	}
	if _, err := h.engine.ToggleRun(ctx); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	h.clock.Advance(11 * time.Minute)
	if err := h.engine.Tick(ctx); err != nil {
		t.Fatalf("tick: %v", err)
	}

	p := h.pomodoro()
	if p.IsRunning || p.Mode != statedomain.ModeShort || p.SecondsLeft != 180 {
		t.Fatalf("expected stopped short break, got %+v", p)
	}
	if active, _ := h.tickers.counts(); active != 0 {
		t.Fatalf("completion must stop the ticker")
	}
	if len(completions) != 1 || completions[0].Finished != "focus" || completions[0].Next != "short" {
		t.Fatalf("unexpected completions %+v", completions)
	}
	if len(h.recorder.focus) != 1 || h.recorder.focus[0].Minutes != 10 {
		t.Fatalf("expected recorded 10 minute focus session, got %+v", h.recorder.focus)
	}
}

func TestRecorderFailureDoesNotFailTimer(t *testing.T) {
	t.Parallel()
	h := newHarness(t, nil)
	h.recorder.err = errors.New("db locked")
	ctx := context.Background()

	if _, err := h.engine.ToggleRun(ctx); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	h.clock.Advance(26 * time.Minute)
	if err := h.engine.Tick(ctx); err != nil {
		t.Fatalf("tick must succeed even when recording fails: %v", err)
	}
	if h.pomodoro().Mode != statedomain.ModeShort {
		t.Fatalf("expected advance to short break")
	}
}

func TestCompletionCadenceThroughEngine(t *testing.T) {
	t.Parallel()
	h := newHarness(t, nil)
	ctx := context.Background()

	var breaks []string
	for len(breaks) < 3 {
		if _, err := h.engine.ToggleRun(ctx); err != nil {
			t.Fatalf("toggle: %v", err)
		}
		h.clock.Advance(time.Hour)
		if err := h.engine.Tick(ctx); err != nil {
			t.Fatalf("tick: %v", err)
		}
		mode := h.pomodoro().Mode
		if mode != statedomain.ModeFocus {
			breaks = append(breaks, string(mode))
		}
	}
	if breaks[0] != "short" || breaks[1] != "short" || breaks[2] != "long" {
		t.Fatalf("expected short,short,long, got %v", breaks)
	}
}

func TestSkipWhileRunningKeepsCounting(t *testing.T) {
	t.Parallel()
	h := newHarness(t, nil)
	ctx := context.Background()

	if _, err := h.engine.ToggleRun(ctx); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	status, err := h.engine.Skip(ctx)
	if err != nil {
		t.Fatalf("skip: %v", err)
	}
	if status.Mode != "short" || !status.IsRunning || status.SecondsLeft != 300 {
		t.Fatalf("unexpected status after skip: %+v", status)
	}
	h.clock.Advance(5 * time.Second)
	if err := h.engine.Tick(ctx); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if got := h.pomodoro().SecondsLeft; got != 295 {
		t.Fatalf("expected countdown to continue in the new mode, got %d", got)
	}
	if len(h.recorder.focus) != 0 {
		t.Fatalf("skipped sessions must not be recorded")
	}
}

func TestSetModeAndResetDoNotTouchRunningFlag(t *testing.T) {
	t.Parallel()
	h := newHarness(t, nil)
	ctx := context.Background()

	status, err := h.engine.SetMode(ctx, "long")
	if err != nil {
		t.Fatalf("set mode: %v", err)
	}
	if status.SecondsLeft != 900 || status.IsRunning {
		t.Fatalf("unexpected status %+v", status)
	}
	if _, err := h.engine.SetMode(ctx, "siesta"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if h.pomodoro().Mode != statedomain.ModeLong {
		t.Fatalf("rejected mode must not change state")
	}
	if _, err := h.engine.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if p := h.pomodoro(); p.LastTickAt != nil || p.SecondsLeft != 900 {
		t.Fatalf("unexpected state after reset %+v", p)
	}
}

func TestResumeReanchorsPersistedRunningTimer(t *testing.T) {
	t.Parallel()
	persisted := []byte(`{"pomodoro":{"mode":"focus","isRunning":true,"secondsLeft":600,"lastTickAt":1000}}`)
	h := newHarness(t, persisted)
	ctx := context.Background()

	if err := h.engine.Resume(ctx); err != nil {
		t.Fatalf("resume: %v", err)
	}
	p := h.pomodoro()
	if p.SecondsLeft != 600 || p.LastTickAt == nil || *p.LastTickAt != h.clock.Now().UnixMilli() {
		t.Fatalf("expected re-anchored timer with no time consumed, got %+v", p)
	}
	if active, _ := h.tickers.counts(); active != 1 {
		t.Fatalf("expected resumed loop")
	}
}

func TestStartReanchorsPersistedRunningTimer(t *testing.T) {
	t.Parallel()
	h := newHarness(t, nil)
	ctx := context.Background()
	stale := h.clock.Now().Add(-time.Hour).UnixMilli()
	err := h.store.Mutate(ctx, func(s *statedomain.AppState) error {
		s.Pomodoro.IsRunning = true
		s.Pomodoro.SecondsLeft = 1500
		s.Pomodoro.LastTickAt = &stale
		return nil
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := h.engine.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	h.clock.Advance(2 * time.Second)
	if err := h.engine.Tick(ctx); err != nil {
		t.Fatalf("tick: %v", err)
	}
	p := h.pomodoro()
	if p.Mode != statedomain.ModeFocus || !p.IsRunning || p.SecondsLeft != 1498 || p.FocusCount != 0 {
		t.Fatalf("expected only live time to count, got %+v", p)
	}
	if len(h.recorder.focus) != 0 {
		t.Fatalf("no focus session should be recorded")
	}
}

func TestPauseAndStartAreIdempotent(t *testing.T) {
	t.Parallel()
	h := newHarness(t, nil)
	ctx := context.Background()

	if status, err := h.engine.Pause(ctx); err != nil || status.IsRunning {
		t.Fatalf("pause on stopped timer: %+v %v", status, err)
	}
	for i := 0; i < 2; i++ {
		if status, err := h.engine.Start(ctx); err != nil || !status.IsRunning {
			t.Fatalf("start: %+v %v", status, err)
		}
	}
	if active, created := h.tickers.counts(); active != 1 || created != 1 {
		t.Fatalf("expected one ticker, got %d active %d created", active, created)
	}
}
