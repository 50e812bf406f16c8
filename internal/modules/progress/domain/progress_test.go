package domain_test

import (
	"testing"
	"time"

	"studysphere/internal/modules/progress/domain"
	statedomain "studysphere/internal/modules/state/domain"
)

func TestGoalProgressAndDoneStayInSync(t *testing.T) {
	t.Parallel()
	goal := statedomain.Goal{}
	domain.SetProgress(&goal, 140)
	if goal.Progress != 100 || !goal.Done {
		t.Fatalf("over 100: %+v", goal)
	}
	domain.SetProgress(&goal, 40)
	if goal.Progress != 40 || goal.Done {
		t.Fatalf("back to 40: %+v", goal)
	}
	domain.SetProgress(&goal, -5)
	if goal.Progress != 0 {
		t.Fatalf("negative should clamp: %+v", goal)
	}

	domain.SetProgress(&goal, 30)
	domain.ToggleGoal(&goal)
	if !goal.Done || goal.Progress != 100 {
		t.Fatalf("toggle on: %+v", goal)
	}
	domain.ToggleGoal(&goal)
	if goal.Done || goal.Progress != 100 {
		t.Fatalf("toggle off keeps progress: %+v", goal)
	}
}

func TestStreakCountsBackFromToday(t *testing.T) {
	t.Parallel()
	today := time.Date(2026, 3, 10, 18, 0, 0, 0, time.Local)
	habit := statedomain.Habit{Days: map[string]bool{
		"2026-03-10": true,
		"2026-03-09": true,
		"2026-03-07": true,
	}}
	if got := domain.Streak(habit, today); got != 2 {
		t.Fatalf("streak = %d, want 2", got)
	}
	habit.Days["2026-03-10"] = false
	if got := domain.Streak(habit, today); got != 0 {
		t.Fatalf("streak without today = %d, want 0", got)
	}
}

func TestStreakAcrossMonthBoundary(t *testing.T) {
	t.Parallel()
	today := time.Date(2026, 3, 1, 8, 0, 0, 0, time.Local)
	habit := statedomain.Habit{Days: map[string]bool{"2026-03-01": true, "2026-02-28": true, "2026-02-27": true}}
	if got := domain.Streak(habit, today); got != 3 {
		t.Fatalf("streak = %d, want 3", got)
	}
}

func TestBestStreakAndToggleDay(t *testing.T) {
	t.Parallel()
	today := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	a := statedomain.Habit{}
	if !domain.ToggleDay(&a, today) || !domain.DoneOn(a, today) {
		t.Fatalf("toggle should mark today: %+v", a)
	}
	b := statedomain.Habit{Days: map[string]bool{"2026-03-10": true, "2026-03-09": true, "2026-03-08": true}}
	if got := domain.BestStreak([]statedomain.Habit{a, b}, today); got != 3 {
		t.Fatalf("best = %d, want 3", got)
	}
	if got := domain.BestStreak(nil, today); got != 0 {
		t.Fatalf("best of none = %d", got)
	}
	if domain.ToggleDay(&a, today) {
		t.Fatal("second toggle should clear today")
	}
}

func TestSummarizeGoals(t *testing.T) {
	t.Parallel()
	totals := domain.SummarizeGoals([]statedomain.Goal{
		{Progress: 100, Done: true},
		{Progress: 50},
		{Progress: 0},
	})
	if totals.Total != 3 || totals.Done != 1 || totals.AverageProgress != 50 {
		t.Fatalf("totals = %+v", totals)
	}
	if empty := domain.SummarizeGoals(nil); empty != (domain.GoalTotals{}) {
		t.Fatalf("empty = %+v", empty)
	}
}
