package in

import (
	"context"

	"studysphere/internal/modules/plugin/dto"
)

// Catalog answers questions about installed plugins without running commands.
type Catalog interface {
	List(ctx context.Context) ([]dto.PluginInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	ListCommands(ctx context.Context, pluginName string) ([]dto.CommandInfo, error)
}

// Runner executes plugin commands. GenerateCards additionally stores the
// returned cards in the target deck.
type Runner interface {
	Execute(ctx context.Context, input dto.ExecuteInput) (dto.ExecuteOutput, error)
	GenerateCards(ctx context.Context, input dto.ExecuteInput) (dto.CardsOutput, error)
}

type Usecase interface {
	Catalog
	Runner
}
