package dto

import "time"

type GoalInput struct {
	Title    string
	Details  string
	Meta     string
	Progress int
}

type GoalOutput struct {
	ID        string
	Title     string
	Details   string
	Meta      string
	Progress  int
	Done      bool
	CreatedAt time.Time
}

type HabitInput struct {
	Title   string
	Details string
	Meta    string
}

type HabitOutput struct {
	ID        string
	Title     string
	Details   string
	Meta      string
	DoneToday bool
	Streak    int
	CreatedAt time.Time
}

// InsightsOutput combines goal and habit totals with recent study activity.
type InsightsOutput struct {
	Day              string
	GoalsTotal       int
	GoalsDone        int
	AverageProgress  int
	Habits           int
	HabitsDoneToday  int
	BestStreak       int
	FocusSessions    int
	FocusMinutes     int
	QuizSessions     int
	AverageQuizScore int
	ActivityError    string
}
