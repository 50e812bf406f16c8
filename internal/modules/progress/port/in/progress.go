package in

import (
	"context"

	"studysphere/internal/modules/progress/dto"
)

type GoalUsecase interface {
	ListGoals() []dto.GoalOutput
	AddGoal(ctx context.Context, input dto.GoalInput) (dto.GoalOutput, error)
	SetGoalProgress(ctx context.Context, id string, progress int) (dto.GoalOutput, error)
	ToggleGoal(ctx context.Context, id string) (dto.GoalOutput, error)
	DeleteGoal(ctx context.Context, id string) error
}

type HabitUsecase interface {
	ListHabits() []dto.HabitOutput
	AddHabit(ctx context.Context, input dto.HabitInput) (dto.HabitOutput, error)
	ToggleHabitToday(ctx context.Context, id string) (dto.HabitOutput, error)
	DeleteHabit(ctx context.Context, id string) error
}

type Usecase interface {
	GoalUsecase
	HabitUsecase
	Insights(ctx context.Context) dto.InsightsOutput
}
