package in

import (
	"context"
	"time"

	"studysphere/internal/modules/activity/dto"
	activityin "studysphere/internal/modules/activity/port/in"
)

type CLIHandler struct {
	usecase activityin.Usecase
}

func NewCLIHandler(usecase activityin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Summary(ctx context.Context, since time.Time) (dto.SummaryOutput, error) {
	return h.usecase.Summary(ctx, since)
}

func (h CLIHandler) Recent(ctx context.Context, limit int) ([]dto.EntryOutput, error) {
	return h.usecase.Recent(ctx, limit)
}
