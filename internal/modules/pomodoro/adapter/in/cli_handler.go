package in

import (
	"context"

	"studysphere/internal/modules/pomodoro/dto"
	pomodoroin "studysphere/internal/modules/pomodoro/port/in"
)

type CLIHandler struct {
	usecase pomodoroin.Usecase
}

func NewCLIHandler(usecase pomodoroin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Status() dto.StatusOutput {
	return h.usecase.Status()
}

func (h CLIHandler) Toggle(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.ToggleRun(ctx)
}

func (h CLIHandler) Start(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Start(ctx)
}

func (h CLIHandler) Pause(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Pause(ctx)
}

func (h CLIHandler) Reset(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Reset(ctx)
}

func (h CLIHandler) SetMode(ctx context.Context, mode string) (dto.StatusOutput, error) {
	return h.usecase.SetMode(ctx, mode)
}

func (h CLIHandler) Skip(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Skip(ctx)
}

func (h CLIHandler) ApplyDurations(ctx context.Context, focus, short, long int) (dto.StatusOutput, error) {
	return h.usecase.ApplyDurations(ctx, dto.DurationsInput{Focus: focus, Short: short, Long: long})
}

// Resume restarts a timer persisted as running; hosts call it once at boot.
func (h CLIHandler) Resume(ctx context.Context) error {
	return h.usecase.Resume(ctx)
}

func (h CLIHandler) OnComplete(fn func(dto.CompletionOutput)) func() {
	return h.usecase.OnComplete(fn)
}

func (h CLIHandler) Close() {
	h.usecase.Close()
}
