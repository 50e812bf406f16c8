package domain

import (
	"fmt"

	statedomain "studysphere/internal/modules/state/domain"
)

// LongBreakEvery is the number of focus sessions between long breaks.
const LongBreakEvery = 3

var DefaultDurations = statedomain.Durations{Focus: 25, Short: 5, Long: 15}

type bounds struct {
	min, max int
}

var limits = map[statedomain.Mode]bounds{
	statedomain.ModeFocus: {min: 10, max: 90},
	statedomain.ModeShort: {min: 3, max: 30},
	statedomain.ModeLong:  {min: 5, max: 60},
}

// NormalizeDurations replaces zero values with defaults and clamps the rest
// into their allowed ranges.
func NormalizeDurations(d statedomain.Durations) statedomain.Durations {
	return statedomain.Durations{
		Focus: clampMinutes(statedomain.ModeFocus, d.Focus, DefaultDurations.Focus),
		Short: clampMinutes(statedomain.ModeShort, d.Short, DefaultDurations.Short),
		Long:  clampMinutes(statedomain.ModeLong, d.Long, DefaultDurations.Long),
	}
}

func clampMinutes(mode statedomain.Mode, value, fallback int) int {
	if value == 0 {
		value = fallback
	}
	b := limits[mode]
	if value < b.min {
		return b.min
	}
	if value > b.max {
		return b.max
	}
	return value
}

// Effective returns the durations in force for p.
func Effective(p statedomain.PomodoroState) statedomain.Durations {
	if p.Custom == nil {
		return DefaultDurations
	}
	return NormalizeDurations(*p.Custom)
}

func MinutesFor(p statedomain.PomodoroState, mode statedomain.Mode) int {
	d := Effective(p)
	switch mode {
	case statedomain.ModeShort:
		return d.Short
	case statedomain.ModeLong:
		return d.Long
	default:
		return d.Focus
	}
}

// Reset refills the countdown for the current mode. Running state is kept.
func Reset(p *statedomain.PomodoroState) {
	p.SecondsLeft = MinutesFor(*p, p.Mode) * 60
	p.LastTickAt = nil
}

func SetMode(p *statedomain.PomodoroState, mode statedomain.Mode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	p.Mode = mode
	Reset(p)
	return nil
}

func ApplyDurations(p *statedomain.PomodoroState, d statedomain.Durations) {
	normalized := NormalizeDurations(d)
	p.Custom = &normalized
	Reset(p)
}

// Toggle flips the running flag. Starting anchors lastTickAt at now.
func Toggle(p *statedomain.PomodoroState, nowMS int64) bool {
	p.IsRunning = !p.IsRunning
	if p.IsRunning {
		at := nowMS
		p.LastTickAt = &at
	}
	return p.IsRunning
}

// Completion describes a session that has just ended.
type Completion struct {
	Finished statedomain.Mode
	Minutes  int
	Next     statedomain.Mode
	Skipped  bool
}

// Advance moves to the next mode in the focus/short/long cycle. The new mode
// is reset but not started.
func Advance(p *statedomain.PomodoroState) Completion {
	done := Completion{Finished: p.Mode, Minutes: MinutesFor(*p, p.Mode)}
	p.Cycle++
	next := statedomain.ModeFocus
	if p.Mode == statedomain.ModeFocus {
		p.FocusCount++
		next = statedomain.ModeShort
		if p.FocusCount%LongBreakEvery == 0 {
			next = statedomain.ModeLong
		}
	}
	p.Mode = next
	Reset(p)
	done.Next = next
	return done
}

type TickResult struct {
	Changed    bool
	Completion *Completion
}

// Tick consumes whole seconds elapsed since lastTickAt. The anchor moves by
// exactly the consumed seconds; sub-second remainders carry over.
func Tick(p *statedomain.PomodoroState, nowMS int64) TickResult {
	if !p.IsRunning {
		return TickResult{}
	}
	if p.LastTickAt == nil {
		at := nowMS
		p.LastTickAt = &at
		return TickResult{Changed: true}
	}
	elapsed := nowMS - *p.LastTickAt
	if elapsed < 1000 {
		return TickResult{}
	}
	delta := elapsed / 1000
	anchor := *p.LastTickAt + delta*1000
	p.LastTickAt = &anchor

	left := int64(p.SecondsLeft) - delta
	if left < 0 {
		left = 0
	}
	p.SecondsLeft = int(left)
	if p.SecondsLeft > 0 {
		return TickResult{Changed: true}
	}
	p.IsRunning = false
	done := Advance(p)
	return TickResult{Changed: true, Completion: &done}
}

// Readout formats seconds as MM:SS.
func Readout(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
