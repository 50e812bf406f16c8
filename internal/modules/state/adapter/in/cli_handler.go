package in

import (
	"context"

	"studysphere/internal/modules/state/dto"
	statein "studysphere/internal/modules/state/port/in"
)

type CLIHandler struct {
	usecase statein.Usecase
}

func NewCLIHandler(usecase statein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Reset(ctx context.Context) error {
	return h.usecase.Reset(ctx)
}

func (h CLIHandler) Badges() dto.BadgesOutput {
	return h.usecase.Badges()
}

func (h CLIHandler) Summary() dto.SummaryOutput {
	return h.usecase.Summary()
}

// Subscribe forwards badge counters after every successful save.
func (h CLIHandler) Subscribe(fn func(dto.BadgesOutput)) func() {
	return h.usecase.Subscribe(fn)
}
