package domain

import (
	"time"

	statedomain "studysphere/internal/modules/state/domain"
	"studysphere/internal/platform/clock"
)

const DefaultHabitMeta = "daily"

// ClampProgress bounds a goal percentage to 0..100.
func ClampProgress(progress int) int {
	return min(max(progress, 0), 100)
}

// SetProgress stores the clamped value and derives done from it.
func SetProgress(goal *statedomain.Goal, progress int) {
	goal.Progress = ClampProgress(progress)
	goal.Done = goal.Progress >= 100
}

// ToggleGoal flips done. Completing forces progress to 100; reopening keeps
// the current progress.
func ToggleGoal(goal *statedomain.Goal) {
	goal.Done = !goal.Done
	if goal.Done {
		goal.Progress = 100
	}
}

// ToggleDay flips the habit mark for the calendar day of at.
func ToggleDay(habit *statedomain.Habit, at time.Time) bool {
	if habit.Days == nil {
		habit.Days = map[string]bool{}
	}
	key := clock.DayKey(at)
	habit.Days[key] = !habit.Days[key]
	return habit.Days[key]
}

func DoneOn(habit statedomain.Habit, at time.Time) bool {
	return habit.Days[clock.DayKey(at)]
}

// Streak counts consecutive marked days ending today. A day without a mark
// today yields zero.
func Streak(habit statedomain.Habit, today time.Time) int {
	streak := 0
	day := today
	for habit.Days[clock.DayKey(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// BestStreak is the longest current streak across habits.
func BestStreak(habits []statedomain.Habit, today time.Time) int {
	best := 0
	for _, habit := range habits {
		best = max(best, Streak(habit, today))
	}
	return best
}

type GoalTotals struct {
	Total           int
	Done            int
	AverageProgress int
}

// SummarizeGoals reports totals and the rounded average progress.
func SummarizeGoals(goals []statedomain.Goal) GoalTotals {
	totals := GoalTotals{Total: len(goals)}
	if len(goals) == 0 {
		return totals
	}
	sum := 0
	for _, goal := range goals {
		if goal.Done {
			totals.Done++
		}
		sum += goal.Progress
	}
	totals.AverageProgress = (sum + len(goals)/2) / len(goals)
	return totals
}
