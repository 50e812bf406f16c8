package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"studysphere/internal/modules/progress/domain"
	statedomain "studysphere/internal/modules/state/domain"
	statein "studysphere/internal/modules/state/port/in"
	"studysphere/internal/platform/clock"
	apperrors "studysphere/internal/platform/errors"
	"studysphere/internal/platform/id"
)

type ProgressService struct {
	store statein.Store
	clock clock.Clock
	ids   id.Generator
}

func NewProgressService(store statein.Store, clock clock.Clock, ids id.Generator) *ProgressService {
	return &ProgressService{store: store, clock: clock, ids: ids}
}

func (s *ProgressService) Snapshot() statedomain.AppState {
	return s.store.Snapshot()
}

func (s *ProgressService) Today() time.Time {
	return s.clock.Now()
}

func requireTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", fmt.Errorf("title is required: %w", apperrors.ErrInvalidInput)
	}
	return trimmed, nil
}

func (s *ProgressService) AddGoal(ctx context.Context, title, details, meta string, progress int) (statedomain.Goal, error) {
	trimmed, err := requireTitle(title)
	if err != nil {
		return statedomain.Goal{}, err
	}
	goal := statedomain.Goal{
		ID:        s.ids.New(),
		Title:     trimmed,
		Details:   strings.TrimSpace(details),
		Meta:      strings.TrimSpace(meta),
		CreatedAt: clock.Millis(s.clock.Now()),
	}
	domain.SetProgress(&goal, progress)
	err = s.store.Mutate(ctx, func(state *statedomain.AppState) error {
		state.Goals = append([]statedomain.Goal{goal}, state.Goals...)
		return nil
	})
	return goal, err
}

func (s *ProgressService) updateGoal(ctx context.Context, goalID string, fn func(*statedomain.Goal)) (statedomain.Goal, error) {
	var updated statedomain.Goal
	err := s.store.Mutate(ctx, func(state *statedomain.AppState) error {
		for i := range state.Goals {
			if state.Goals[i].ID == goalID {
				fn(&state.Goals[i])
				updated = state.Goals[i]
				return nil
			}
		}
		return fmt.Errorf("goal %q: %w", goalID, apperrors.ErrNotFound)
	})
	return updated, err
}

func (s *ProgressService) SetGoalProgress(ctx context.Context, goalID string, progress int) (statedomain.Goal, error) {
	return s.updateGoal(ctx, goalID, func(goal *statedomain.Goal) {
		domain.SetProgress(goal, progress)
	})
}

func (s *ProgressService) ToggleGoal(ctx context.Context, goalID string) (statedomain.Goal, error) {
	return s.updateGoal(ctx, goalID, domain.ToggleGoal)
}

func (s *ProgressService) DeleteGoal(ctx context.Context, goalID string) error {
	return s.store.Mutate(ctx, func(state *statedomain.AppState) error {
		for i, goal := range state.Goals {
			if goal.ID == goalID {
				state.Goals = append(state.Goals[:i], state.Goals[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("goal %q: %w", goalID, apperrors.ErrNotFound)
	})
}

func (s *ProgressService) AddHabit(ctx context.Context, title, details, meta string) (statedomain.Habit, error) {
	trimmed, err := requireTitle(title)
	if err != nil {
		return statedomain.Habit{}, err
	}
	meta = strings.TrimSpace(meta)
	if meta == "" {
		meta = domain.DefaultHabitMeta
	}
	habit := statedomain.Habit{
		ID:        s.ids.New(),
		Title:     trimmed,
		Details:   strings.TrimSpace(details),
		Meta:      meta,
		Days:      map[string]bool{},
		CreatedAt: clock.Millis(s.clock.Now()),
	}
	err = s.store.Mutate(ctx, func(state *statedomain.AppState) error {
		state.Habits = append([]statedomain.Habit{habit}, state.Habits...)
		return nil
	})
	return habit, err
}

func (s *ProgressService) ToggleHabitToday(ctx context.Context, habitID string) (statedomain.Habit, error) {
	today := s.clock.Now()
	var updated statedomain.Habit
	err := s.store.Mutate(ctx, func(state *statedomain.AppState) error {
		for i := range state.Habits {
			if state.Habits[i].ID == habitID {
				domain.ToggleDay(&state.Habits[i], today)
				updated = state.Habits[i]
				return nil
			}
		}
		return fmt.Errorf("habit %q: %w", habitID, apperrors.ErrNotFound)
	})
	return updated, err
}

func (s *ProgressService) DeleteHabit(ctx context.Context, habitID string) error {
	return s.store.Mutate(ctx, func(state *statedomain.AppState) error {
		for i, habit := range state.Habits {
			if habit.ID == habitID {
				state.Habits = append(state.Habits[:i], state.Habits[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("habit %q: %w", habitID, apperrors.ErrNotFound)
	})
}
