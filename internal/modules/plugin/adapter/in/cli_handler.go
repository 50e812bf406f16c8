package in

import (
	"context"
	"fmt"
	"strings"

	"studysphere/internal/modules/plugin/dto"
	pluginin "studysphere/internal/modules/plugin/port/in"
	apperrors "studysphere/internal/platform/errors"
)

// CLIHandler adapts the plugin usecase to positional arguments shared by the
// cobra commands and the plugins tab.
type CLIHandler struct {
	usecase pluginin.Usecase
}

func NewCLIHandler(usecase pluginin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}

func (h CLIHandler) ListCommands(ctx context.Context, pluginName string) ([]dto.CommandInfo, error) {
	return h.usecase.ListCommands(ctx, strings.TrimSpace(pluginName))
}

// Execute runs a command; a non-empty deckRef sends that deck's cards along.
func (h CLIHandler) Execute(ctx context.Context, pluginName, commandID, inputJSON, deckRef string) (dto.ExecuteOutput, error) {
	return h.usecase.Execute(ctx, request(pluginName, commandID, inputJSON, deckRef))
}

func (h CLIHandler) GenerateCards(ctx context.Context, pluginName, commandID, inputJSON, deckRef string) (dto.CardsOutput, error) {
	if strings.TrimSpace(deckRef) == "" {
		return dto.CardsOutput{}, fmt.Errorf("a target deck is required: %w", apperrors.ErrInvalidInput)
	}
	return h.usecase.GenerateCards(ctx, request(pluginName, commandID, inputJSON, deckRef))
}

func request(pluginName, commandID, inputJSON, deckRef string) dto.ExecuteInput {
	return dto.ExecuteInput{
		PluginName: strings.TrimSpace(pluginName),
		CommandID:  strings.TrimSpace(commandID),
		InputJSON:  strings.TrimSpace(inputJSON),
		DeckRef:    strings.TrimSpace(deckRef),
	}
}
