package domain_test

import (
	"testing"

	"studysphere/internal/modules/pomodoro/domain"
	statedomain "studysphere/internal/modules/state/domain"
)

func running(secondsLeft int, lastTickAt int64) statedomain.PomodoroState {
	p := statedomain.DefaultPomodoro()
	p.IsRunning = true
	p.SecondsLeft = secondsLeft
	p.LastTickAt = &lastTickAt
	return p
}

func TestTickIsMonotonicUnderIrregularCallbacks(t *testing.T) {
	t.Parallel()
	p := running(1500, 0)
	previous := p.SecondsLeft
	for _, now := range []int64{399, 800, 1200, 1250, 2999, 3000, 7400, 7401, 9999, 10000} {
		domain.Tick(&p, now)
		if p.SecondsLeft > previous {
			t.Fatalf("secondsLeft increased at %d: %d > %d", now, p.SecondsLeft, previous)
		}
		previous = p.SecondsLeft
	}
	if p.SecondsLeft != 1490 {
		t.Fatalf("expected 10 whole seconds consumed, got %d left", p.SecondsLeft)
	}
	if *p.LastTickAt != 10000 {
		t.Fatalf("expected anchor at 10000, got %d", *p.LastTickAt)
	}
}

func TestTickCarriesSubSecondRemainder(t *testing.T) {
	t.Parallel()
	p := running(60, 0)
	domain.Tick(&p, 1900)
	if p.SecondsLeft != 59 || *p.LastTickAt != 1000 {
		t.Fatalf("expected 59 left anchored at 1000, got %d at %d", p.SecondsLeft, *p.LastTickAt)
	}
	domain.Tick(&p, 2100)
	if p.SecondsLeft != 58 {
		t.Fatalf("expected remainder to count toward the next second, got %d", p.SecondsLeft)
	}
}

func TestTickIgnoredWhenStoppedAndAnchorsMissingTimestamp(t *testing.T) {
	t.Parallel()
	stopped := statedomain.DefaultPomodoro()
	if result := domain.Tick(&stopped, 5000); result.Changed || stopped.SecondsLeft != 1500 {
		t.Fatalf("stopped timer must not change")
	}

	p := statedomain.DefaultPomodoro()
	p.IsRunning = true
	if result := domain.Tick(&p, 5000); !result.Changed || p.LastTickAt == nil || *p.LastTickAt != 5000 {
		t.Fatalf("expected anchor to be set")
	}
	if p.SecondsLeft != 1500 {
		t.Fatalf("anchoring must not consume time")
	}
}

func TestTickCompletesAtZeroAndAdvances(t *testing.T) {
	t.Parallel()
	p := running(3, 0)
	result := domain.Tick(&p, 10_000)
	if result.Completion == nil {
		t.Fatalf("expected completion")
	}
	if result.Completion.Finished != statedomain.ModeFocus || result.Completion.Next != statedomain.ModeShort {
		t.Fatalf("unexpected completion %+v", result.Completion)
	}
	if p.IsRunning || p.Mode != statedomain.ModeShort || p.SecondsLeft != 300 || p.LastTickAt != nil {
		t.Fatalf("expected stopped short break, got %+v", p)
	}
	if p.FocusCount != 1 || p.Cycle != 1 {
		t.Fatalf("expected counters 1/1, got %d/%d", p.FocusCount, p.Cycle)
	}
}

func TestAdvanceCadence(t *testing.T) {
	t.Parallel()
	p := statedomain.DefaultPomodoro()
	var breaks []statedomain.Mode
	for i := 0; i < 6; i++ {
		done := domain.Advance(&p)
		if done.Finished != statedomain.ModeFocus {
			t.Fatalf("expected focus to finish, got %s", done.Finished)
		}
		breaks = append(breaks, p.Mode)
		domain.Advance(&p)
		if p.Mode != statedomain.ModeFocus {
			t.Fatalf("break must return to focus, got %s", p.Mode)
		}
	}
	want := []statedomain.Mode{"short", "short", "long", "short", "short", "long"}
	for i := range want {
		if breaks[i] != want[i] {
			t.Fatalf("break %d: expected %s, got %s", i, want[i], breaks[i])
		}
	}
	if p.Cycle != 12 || p.FocusCount != 6 {
		t.Fatalf("unexpected counters: cycle=%d focus=%d", p.Cycle, p.FocusCount)
	}
}

func TestDurationsAreClampedAndDefaulted(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   statedomain.Durations
		want statedomain.Durations
	}{
		{statedomain.Durations{}, statedomain.Durations{Focus: 25, Short: 5, Long: 15}},
		{statedomain.Durations{Focus: 5, Short: 1, Long: 2}, statedomain.Durations{Focus: 10, Short: 3, Long: 5}},
		{statedomain.Durations{Focus: 200, Short: 99, Long: 61}, statedomain.Durations{Focus: 90, Short: 30, Long: 60}},
		{statedomain.Durations{Focus: -4, Short: 7, Long: 20}, statedomain.Durations{Focus: 10, Short: 7, Long: 20}},
	}
	for _, tc := range cases {
		if got := domain.NormalizeDurations(tc.in); got != tc.want {
			t.Fatalf("normalize %+v: expected %+v, got %+v", tc.in, tc.want, got)
		}
	}

	p := statedomain.DefaultPomodoro()
	p.Mode = statedomain.ModeLong
	domain.ApplyDurations(&p, statedomain.Durations{Focus: 50, Short: 10, Long: 100})
	if p.SecondsLeft != 60*60 || p.Custom == nil || p.Custom.Long != 60 {
		t.Fatalf("expected clamped long break reset, got %+v", p)
	}
}

func TestSetModeRejectsUnknownMode(t *testing.T) {
	t.Parallel()
	p := statedomain.DefaultPomodoro()
	if err := domain.SetMode(&p, "nap"); err == nil {
		t.Fatalf("expected unknown mode error")
	}
	if err := domain.SetMode(&p, statedomain.ModeShort); err != nil || p.SecondsLeft != 300 {
		t.Fatalf("expected short reset, got %+v (%v)", p, err)
	}
}

func TestReadout(t *testing.T) {
	t.Parallel()
	for seconds, want := range map[int]string{0: "00:00", 59: "00:59", 1500: "25:00", 5999: "99:59", -3: "00:00"} {
		if got := domain.Readout(seconds); got != want {
			t.Fatalf("readout(%d): expected %s, got %s", seconds, want, got)
		}
	}
}
