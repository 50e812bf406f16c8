package usecase_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	activitydto "studysphere/internal/modules/activity/dto"
	"studysphere/internal/modules/progress/dto"
	progressin "studysphere/internal/modules/progress/port/in"
	progressout "studysphere/internal/modules/progress/port/out"
	"studysphere/internal/modules/progress/service"
	"studysphere/internal/modules/progress/usecase"
	statein "studysphere/internal/modules/state/port/in"
	stateservice "studysphere/internal/modules/state/service"
	stateusecase "studysphere/internal/modules/state/usecase"
	apperrors "studysphere/internal/platform/errors"
)

type manualClock struct{ now time.Time }

func (c *manualClock) Now() time.Time { return c.now }

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return "id-" + strconv.Itoa(s.n)
}

type memoryBackend struct{ payload []byte }

func (m *memoryBackend) Read(context.Context) ([]byte, error) {
	if m.payload == nil {
		return nil, apperrors.ErrNotFound
	}
	return m.payload, nil
}

func (m *memoryBackend) Write(_ context.Context, payload []byte) error {
	m.payload = append([]byte(nil), payload...)
	return nil
}

type fakeActivity struct {
	since []time.Time
	err   error
}

func (f *fakeActivity) Summary(_ context.Context, since time.Time) (activitydto.SummaryOutput, error) {
	f.since = append(f.since, since)
	if f.err != nil {
		return activitydto.SummaryOutput{}, f.err
	}
	if len(f.since) == 1 {
		return activitydto.SummaryOutput{Since: since, FocusSessions: 2, FocusMinutes: 50}, nil
	}
	return activitydto.SummaryOutput{Since: since, FocusSessions: 9, FocusMinutes: 225, QuizSessions: 3, AverageScore: 81}, nil
}

func newProgress(t *testing.T, activity *fakeActivity) (progressin.Usecase, statein.Store, *manualClock) {
	t.Helper()
	clk := &manualClock{now: time.Date(2026, 3, 10, 15, 30, 0, 0, time.Local)}
	ids := &seqID{}
	store := stateusecase.NewStore(stateservice.NewStateService(clk, ids), &memoryBackend{}, nil)
	store.Load(context.Background())
	var source progressout.ActivitySource
	if activity != nil {
		source = activity
	}
	return usecase.NewInteractor(service.NewProgressService(store, clk, ids), source, nil), store, clk
}

func TestGoalLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, store, _ := newProgress(t, nil)

	goal, err := uc.AddGoal(ctx, dto.GoalInput{Title: "Finish calculus unit", Progress: 20})
	if err != nil {
		t.Fatalf("add goal: %v", err)
	}
	if goal.Done || goal.Progress != 20 {
		t.Fatalf("goal = %+v", goal)
	}
	if store.Badges().ActiveGoals != 1 {
		t.Fatalf("active goals = %d", store.Badges().ActiveGoals)
	}

	goal, err = uc.SetGoalProgress(ctx, goal.ID, 120)
	if err != nil || goal.Progress != 100 || !goal.Done {
		t.Fatalf("progress 120 = %+v, %v", goal, err)
	}
	if store.Badges().ActiveGoals != 0 {
		t.Fatalf("active goals = %d", store.Badges().ActiveGoals)
	}
	goal, err = uc.ToggleGoal(ctx, goal.ID)
	if err != nil || goal.Done || goal.Progress != 100 {
		t.Fatalf("toggle off = %+v, %v", goal, err)
	}
	if _, err := uc.AddGoal(ctx, dto.GoalInput{Title: " "}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if err := uc.DeleteGoal(ctx, goal.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := uc.ToggleGoal(ctx, goal.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestHabitStreakAcrossDays(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _, clk := newProgress(t, nil)

	habit, err := uc.AddHabit(ctx, dto.HabitInput{Title: "Review flashcards"})
	if err != nil {
		t.Fatalf("add habit: %v", err)
	}
	if habit.Meta != "daily" {
		t.Fatalf("meta = %q", habit.Meta)
	}
	if _, err := uc.ToggleHabitToday(ctx, habit.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	clk.now = clk.now.AddDate(0, 0, 1)
	habit, err = uc.ToggleHabitToday(ctx, habit.ID)
	if err != nil {
		t.Fatalf("toggle next day: %v", err)
	}
	if !habit.DoneToday || habit.Streak != 2 {
		t.Fatalf("habit = %+v", habit)
	}

	clk.now = clk.now.AddDate(0, 0, 1)
	if got := uc.ListHabits()[0]; got.Streak != 0 || got.DoneToday {
		t.Fatalf("unmarked day should reset streak: %+v", got)
	}
	if err := uc.DeleteHabit(ctx, "missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestInsightsCombinesStateAndActivity(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	activity := &fakeActivity{}
	uc, _, clk := newProgress(t, activity)

	if _, err := uc.AddGoal(ctx, dto.GoalInput{Title: "A", Progress: 100}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := uc.AddGoal(ctx, dto.GoalInput{Title: "B", Progress: 25}); err != nil {
		t.Fatalf("add: %v", err)
	}
	habit, err := uc.AddHabit(ctx, dto.HabitInput{Title: "Read"})
	if err != nil {
		t.Fatalf("add habit: %v", err)
	}
	if _, err := uc.ToggleHabitToday(ctx, habit.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	got := uc.Insights(ctx)
	want := dto.InsightsOutput{
		Day:              "2026-03-10",
		GoalsTotal:       2,
		GoalsDone:        1,
		AverageProgress:  63,
		Habits:           1,
		HabitsDoneToday:  1,
		BestStreak:       1,
		FocusSessions:    2,
		FocusMinutes:     50,
		QuizSessions:     3,
		AverageQuizScore: 81,
	}
	if got != want {
		t.Fatalf("insights = %+v, want %+v", got, want)
	}
	midnight := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	if len(activity.since) != 2 || !activity.since[0].Equal(midnight) || !activity.since[1].Equal(clk.now.Add(-7*24*time.Hour)) {
		t.Fatalf("summary windows = %v", activity.since)
	}
}

func TestInsightsSurvivesActivityFailure(t *testing.T) {
	t.Parallel()
	uc, _, _ := newProgress(t, &fakeActivity{err: errors.New("database is locked")})
	got := uc.Insights(context.Background())
	if got.ActivityError != "database is locked" || got.FocusSessions != 0 {
		t.Fatalf("insights = %+v", got)
	}
}
