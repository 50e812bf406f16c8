package in

import (
	"context"
	"time"

	"studysphere/internal/modules/activity/dto"
)

// Recorder is what the timer and quiz engines report completions to.
type Recorder interface {
	RecordFocus(ctx context.Context, input dto.FocusInput) error
	RecordQuiz(ctx context.Context, input dto.QuizInput) error
}

type Usecase interface {
	Recorder
	Summary(ctx context.Context, since time.Time) (dto.SummaryOutput, error)
	Recent(ctx context.Context, limit int) ([]dto.EntryOutput, error)
}
