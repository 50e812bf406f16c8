package in

import (
	"context"
	"fmt"
	"strings"

	"studysphere/internal/modules/progress/dto"
	progressin "studysphere/internal/modules/progress/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Goals() []dto.GoalOutput {
	return h.usecase.ListGoals()
}

func (h CLIHandler) AddGoal(ctx context.Context, title, details, meta string, progress int) (dto.GoalOutput, error) {
	return h.usecase.AddGoal(ctx, dto.GoalInput{Title: title, Details: details, Meta: meta, Progress: progress})
}

func (h CLIHandler) SetGoalProgress(ctx context.Context, ref string, progress int) (dto.GoalOutput, error) {
	id, err := h.goalID(ref)
	if err != nil {
		return dto.GoalOutput{}, err
	}
	return h.usecase.SetGoalProgress(ctx, id, progress)
}

func (h CLIHandler) ToggleGoal(ctx context.Context, ref string) (dto.GoalOutput, error) {
	id, err := h.goalID(ref)
	if err != nil {
		return dto.GoalOutput{}, err
	}
	return h.usecase.ToggleGoal(ctx, id)
}

func (h CLIHandler) DeleteGoal(ctx context.Context, ref string) error {
	id, err := h.goalID(ref)
	if err != nil {
		return err
	}
	return h.usecase.DeleteGoal(ctx, id)
}

func (h CLIHandler) Habits() []dto.HabitOutput {
	return h.usecase.ListHabits()
}

func (h CLIHandler) AddHabit(ctx context.Context, title, details, meta string) (dto.HabitOutput, error) {
	return h.usecase.AddHabit(ctx, dto.HabitInput{Title: title, Details: details, Meta: meta})
}

func (h CLIHandler) ToggleHabit(ctx context.Context, ref string) (dto.HabitOutput, error) {
	id, err := h.habitID(ref)
	if err != nil {
		return dto.HabitOutput{}, err
	}
	return h.usecase.ToggleHabitToday(ctx, id)
}

func (h CLIHandler) DeleteHabit(ctx context.Context, ref string) error {
	id, err := h.habitID(ref)
	if err != nil {
		return err
	}
	return h.usecase.DeleteHabit(ctx, id)
}

func (h CLIHandler) Insights(ctx context.Context) dto.InsightsOutput {
	return h.usecase.Insights(ctx)
}

// goalID accepts an id or a case-insensitive title; unknown refs pass through
// so the usecase reports not found.
func (h CLIHandler) goalID(ref string) (string, error) {
	var matches []string
	for _, goal := range h.usecase.ListGoals() {
		if goal.ID == ref {
			return ref, nil
		}
		if strings.EqualFold(goal.Title, strings.TrimSpace(ref)) {
			matches = append(matches, goal.ID)
		}
	}
	return pick("goal", ref, matches)
}

func (h CLIHandler) habitID(ref string) (string, error) {
	var matches []string
	for _, habit := range h.usecase.ListHabits() {
		if habit.ID == ref {
			return ref, nil
		}
		if strings.EqualFold(habit.Title, strings.TrimSpace(ref)) {
			matches = append(matches, habit.ID)
		}
	}
	return pick("habit", ref, matches)
}

func pick(kind, ref string, matches []string) (string, error) {
	switch len(matches) {
	case 0:
		return ref, nil
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s title %q is ambiguous, use the id", kind, ref)
	}
}
