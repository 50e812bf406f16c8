package in

import (
	"context"

	"studysphere/internal/modules/pomodoro/dto"
)

type Usecase interface {
	Status() dto.StatusOutput
	SetMode(ctx context.Context, mode string) (dto.StatusOutput, error)
	Reset(ctx context.Context) (dto.StatusOutput, error)
	ToggleRun(ctx context.Context) (dto.StatusOutput, error)
	Start(ctx context.Context) (dto.StatusOutput, error)
	Pause(ctx context.Context) (dto.StatusOutput, error)
	Skip(ctx context.Context) (dto.StatusOutput, error)
	ApplyDurations(ctx context.Context, input dto.DurationsInput) (dto.StatusOutput, error)
	Tick(ctx context.Context) error
	Resume(ctx context.Context) error
	OnComplete(fn func(dto.CompletionOutput)) (cancel func())
	Close()
}
