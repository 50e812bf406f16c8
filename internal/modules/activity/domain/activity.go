package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type Kind string

const (
	KindFocus Kind = "focus"
	KindQuiz  Kind = "quiz"
)

// Entry is one completed focus session or quiz run.
type Entry struct {
	ID      string
	Kind    Kind
	Label   string
	Minutes int
	Correct int
	Total   int
	Score   int
	At      time.Time
}

func (e Entry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("activity id is required")
	}
	switch e.Kind {
	case KindFocus:
		if e.Minutes <= 0 {
			return fmt.Errorf("focus minutes must be positive")
		}
	case KindQuiz:
		if e.Total <= 0 || e.Correct < 0 || e.Correct > e.Total {
			return fmt.Errorf("quiz result %d/%d is invalid", e.Correct, e.Total)
		}
		if e.Score < 0 || e.Score > 100 {
			return fmt.Errorf("quiz score %d out of range", e.Score)
		}
	default:
		return fmt.Errorf("unknown activity kind %q", string(e.Kind))
	}
	return nil
}

type Summary struct {
	FocusSessions int
	FocusMinutes  int
	QuizSessions  int
	AverageScore  int
}

// Summarize folds entries into totals. AverageScore is rounded and zero
// when there were no quizzes.
func Summarize(entries []Entry) Summary {
	summary := Summary{}
	scoreSum := 0
	for _, entry := range entries {
		switch entry.Kind {
		case KindFocus:
			summary.FocusSessions++
			summary.FocusMinutes += entry.Minutes
		case KindQuiz:
			summary.QuizSessions++
			scoreSum += entry.Score
		}
	}
	if summary.QuizSessions > 0 {
		summary.AverageScore = int(math.Round(float64(scoreSum) / float64(summary.QuizSessions)))
	}
	return summary
}
