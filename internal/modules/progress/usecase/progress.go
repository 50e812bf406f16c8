package usecase

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"

	"studysphere/internal/modules/progress/domain"
	"studysphere/internal/modules/progress/dto"
	progressin "studysphere/internal/modules/progress/port/in"
	progressout "studysphere/internal/modules/progress/port/out"
	"studysphere/internal/modules/progress/service"
	statedomain "studysphere/internal/modules/state/domain"
	"studysphere/internal/platform/clock"
	"studysphere/internal/platform/logging"
)

// insightsWindow is how far back quiz activity counts toward insights.
const insightsWindow = 7 * 24 * time.Hour

type Interactor struct {
	svc      *service.ProgressService
	activity progressout.ActivitySource
	logger   hclog.Logger
}

func NewInteractor(svc *service.ProgressService, activity progressout.ActivitySource, logger hclog.Logger) progressin.Usecase {
	return &Interactor{svc: svc, activity: activity, logger: logging.OrDiscard(logger)}
}

func (i *Interactor) ListGoals() []dto.GoalOutput {
	goals := i.svc.Snapshot().Goals
	out := make([]dto.GoalOutput, 0, len(goals))
	for _, goal := range goals {
		out = append(out, toGoal(goal))
	}
	return out
}

func (i *Interactor) AddGoal(ctx context.Context, input dto.GoalInput) (dto.GoalOutput, error) {
	goal, err := i.svc.AddGoal(ctx, input.Title, input.Details, input.Meta, input.Progress)
	if err != nil {
		return dto.GoalOutput{}, err
	}
	return toGoal(goal), nil
}

func (i *Interactor) SetGoalProgress(ctx context.Context, id string, progress int) (dto.GoalOutput, error) {
	goal, err := i.svc.SetGoalProgress(ctx, id, progress)
	if err != nil {
		return dto.GoalOutput{}, err
	}
	return toGoal(goal), nil
}

func (i *Interactor) ToggleGoal(ctx context.Context, id string) (dto.GoalOutput, error) {
	goal, err := i.svc.ToggleGoal(ctx, id)
	if err != nil {
		return dto.GoalOutput{}, err
	}
	return toGoal(goal), nil
}

func (i *Interactor) DeleteGoal(ctx context.Context, id string) error {
	return i.svc.DeleteGoal(ctx, id)
}

func (i *Interactor) ListHabits() []dto.HabitOutput {
	today := i.svc.Today()
	habits := i.svc.Snapshot().Habits
	out := make([]dto.HabitOutput, 0, len(habits))
	for _, habit := range habits {
		out = append(out, toHabit(habit, today))
	}
	return out
}

func (i *Interactor) AddHabit(ctx context.Context, input dto.HabitInput) (dto.HabitOutput, error) {
	habit, err := i.svc.AddHabit(ctx, input.Title, input.Details, input.Meta)
	if err != nil {
		return dto.HabitOutput{}, err
	}
	return toHabit(habit, i.svc.Today()), nil
}

func (i *Interactor) ToggleHabitToday(ctx context.Context, id string) (dto.HabitOutput, error) {
	habit, err := i.svc.ToggleHabitToday(ctx, id)
	if err != nil {
		return dto.HabitOutput{}, err
	}
	return toHabit(habit, i.svc.Today()), nil
}

func (i *Interactor) DeleteHabit(ctx context.Context, id string) error {
	return i.svc.DeleteHabit(ctx, id)
}

// Insights never fails; an unreadable activity log leaves the activity
// totals at zero and reports the reason in ActivityError.
func (i *Interactor) Insights(ctx context.Context) dto.InsightsOutput {
	now := i.svc.Today()
	state := i.svc.Snapshot()
	goals := domain.SummarizeGoals(state.Goals)
	out := dto.InsightsOutput{
		Day:             clock.DayKey(now),
		GoalsTotal:      goals.Total,
		GoalsDone:       goals.Done,
		AverageProgress: goals.AverageProgress,
		Habits:          len(state.Habits),
		BestStreak:      domain.BestStreak(state.Habits, now),
	}
	for _, habit := range state.Habits {
		if domain.DoneOn(habit, now) {
			out.HabitsDoneToday++
		}
	}
	if i.activity == nil {
		return out
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := i.activity.Summary(ctx, midnight)
	if err != nil {
		i.logger.Warn("read focus activity", "error", err)
		out.ActivityError = err.Error()
		return out
	}
	out.FocusSessions = today.FocusSessions
	out.FocusMinutes = today.FocusMinutes

	week, err := i.activity.Summary(ctx, now.Add(-insightsWindow))
	if err != nil {
		i.logger.Warn("read quiz activity", "error", err)
		out.ActivityError = err.Error()
		return out
	}
	out.QuizSessions = week.QuizSessions
	out.AverageQuizScore = week.AverageScore
	return out
}

func toGoal(goal statedomain.Goal) dto.GoalOutput {
	return dto.GoalOutput{
		ID:        goal.ID,
		Title:     goal.Title,
		Details:   goal.Details,
		Meta:      goal.Meta,
		Progress:  goal.Progress,
		Done:      goal.Done,
		CreatedAt: time.UnixMilli(goal.CreatedAt),
	}
}

func toHabit(habit statedomain.Habit, today time.Time) dto.HabitOutput {
	return dto.HabitOutput{
		ID:        habit.ID,
		Title:     habit.Title,
		Details:   habit.Details,
		Meta:      habit.Meta,
		DoneToday: domain.DoneOn(habit, today),
		Streak:    domain.Streak(habit, today),
		CreatedAt: time.UnixMilli(habit.CreatedAt),
	}
}
