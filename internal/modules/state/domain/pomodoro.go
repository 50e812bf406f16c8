package domain

import (
	"encoding/json"
	"fmt"
)

type Mode string

const (
	ModeFocus Mode = "focus"
	ModeShort Mode = "short"
	ModeLong  Mode = "long"
)

func (m Mode) Validate() error {
	switch m {
	case ModeFocus, ModeShort, ModeLong:
		return nil
	default:
		return fmt.Errorf("unknown timer mode %q", string(m))
	}
}

func (m *Mode) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode timer mode: %w", err)
	}
	mode := Mode(raw)
	if err := mode.Validate(); err != nil {
		return err
	}
	*m = mode
	return nil
}

// Durations are per-mode lengths in minutes. Zero means "use the default".
type Durations struct {
	Focus int `json:"focus"`
	Short int `json:"short"`
	Long  int `json:"long"`
}

type PomodoroState struct {
	Mode        Mode       `json:"mode"`
	IsRunning   bool       `json:"isRunning"`
	SecondsLeft int        `json:"secondsLeft"`
	LastTickAt  *int64     `json:"lastTickAt"`
	Custom      *Durations `json:"custom,omitempty"`
	FocusCount  int        `json:"focusCount"`
	Cycle       int        `json:"cycle"`
}

func DefaultPomodoro() PomodoroState {
	return PomodoroState{Mode: ModeFocus, SecondsLeft: 25 * 60}
}
