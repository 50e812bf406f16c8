package service

import (
	"studysphere/internal/modules/pomodoro/domain"
	"studysphere/internal/modules/pomodoro/dto"
	statedomain "studysphere/internal/modules/state/domain"
	"studysphere/internal/platform/clock"
)

type TimerService struct {
	clock clock.Clock
}

func NewTimerService(clock clock.Clock) *TimerService {
	return &TimerService{clock: clock}
}

func (s *TimerService) NowMS() int64 {
	return clock.Millis(s.clock.Now())
}

func (s *TimerService) Toggle(p *statedomain.PomodoroState) bool {
	return domain.Toggle(p, s.NowMS())
}

func (s *TimerService) Anchor(p *statedomain.PomodoroState) {
	now := s.NowMS()
	p.LastTickAt = &now
}

func (s *TimerService) Tick(p *statedomain.PomodoroState) domain.TickResult {
	return domain.Tick(p, s.NowMS())
}

func (s *TimerService) Status(p statedomain.PomodoroState) dto.StatusOutput {
	d := domain.Effective(p)
	return dto.StatusOutput{
		Mode:        string(p.Mode),
		IsRunning:   p.IsRunning,
		SecondsLeft: p.SecondsLeft,
		Readout:     domain.Readout(p.SecondsLeft),
		Focus:       d.Focus,
		Short:       d.Short,
		Long:        d.Long,
		FocusCount:  p.FocusCount,
		Cycle:       p.Cycle,
	}
}
