package usecase

import (
	"context"
	"fmt"
	"time"

	"studysphere/internal/modules/activity/domain"
	"studysphere/internal/modules/activity/dto"
	activityin "studysphere/internal/modules/activity/port/in"
	"studysphere/internal/modules/activity/service"
	apperrors "studysphere/internal/platform/errors"
)

type Interactor struct {
	svc *service.ActivityService
}

func NewInteractor(svc *service.ActivityService) activityin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) RecordFocus(ctx context.Context, input dto.FocusInput) error {
	_, err := i.svc.Record(ctx, domain.Entry{Kind: domain.KindFocus, Label: input.Mode, Minutes: input.Minutes})
	return err
}

func (i *Interactor) RecordQuiz(ctx context.Context, input dto.QuizInput) error {
	_, err := i.svc.Record(ctx, domain.Entry{
		Kind:    domain.KindQuiz,
		Label:   input.DeckName,
		Correct: input.Correct,
		Total:   input.Total,
		Score:   input.Score,
	})
	return err
}

func (i *Interactor) Summary(ctx context.Context, since time.Time) (dto.SummaryOutput, error) {
	summary, err := i.svc.Summary(ctx, since)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	return dto.SummaryOutput{
		Since:         since,
		FocusSessions: summary.FocusSessions,
		FocusMinutes:  summary.FocusMinutes,
		QuizSessions:  summary.QuizSessions,
		AverageScore:  summary.AverageScore,
	}, nil
}

func (i *Interactor) Recent(ctx context.Context, limit int) ([]dto.EntryOutput, error) {
	if limit < 0 {
		return nil, fmt.Errorf("limit must be non-negative: %w", apperrors.ErrInvalidInput)
	}
	entries, err := i.svc.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EntryOutput, 0, len(entries))
	for _, entry := range entries {
		out = append(out, dto.EntryOutput{
			ID:      entry.ID,
			Kind:    string(entry.Kind),
			Label:   entry.Label,
			Minutes: entry.Minutes,
			Correct: entry.Correct,
			Total:   entry.Total,
			Score:   entry.Score,
			At:      entry.At,
		})
	}
	return out, nil
}
