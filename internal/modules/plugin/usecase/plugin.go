package usecase

import (
	"context"

	"github.com/hashicorp/go-hclog"

	"studysphere/internal/modules/plugin/dto"
	pluginin "studysphere/internal/modules/plugin/port/in"
	"studysphere/internal/modules/plugin/service"
	"studysphere/internal/platform/logging"
)

type Interactor struct {
	svc     *service.PluginService
	dataDir string
	logger  hclog.Logger
}

// NewInteractor fills in dataDir for requests that leave it empty.
func NewInteractor(svc *service.PluginService, dataDir string, logger hclog.Logger) pluginin.Usecase {
	return &Interactor{svc: svc, dataDir: dataDir, logger: logging.OrDiscard(logger)}
}

func (i *Interactor) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) ListCommands(ctx context.Context, pluginName string) ([]dto.CommandInfo, error) {
	return i.svc.ListCommands(ctx, pluginName)
}

func (i *Interactor) Execute(ctx context.Context, input dto.ExecuteInput) (dto.ExecuteOutput, error) {
	out, err := i.svc.Execute(ctx, i.withDefaults(input))
	if err != nil {
		i.logger.Warn("plugin command failed", "plugin", input.PluginName, "command", input.CommandID, "error", err)
	}
	return out, err
}

func (i *Interactor) GenerateCards(ctx context.Context, input dto.ExecuteInput) (dto.CardsOutput, error) {
	out, err := i.svc.GenerateCards(ctx, i.withDefaults(input))
	if err != nil {
		i.logger.Warn("plugin cards failed", "plugin", input.PluginName, "command", input.CommandID, "error", err)
		return out, err
	}
	i.logger.Info("plugin cards imported", "plugin", input.PluginName, "deck", out.DeckID, "added", out.Added)
	return out, nil
}

func (i *Interactor) withDefaults(input dto.ExecuteInput) dto.ExecuteInput {
	if input.DataDir == "" {
		input.DataDir = i.dataDir
	}
	return input
}
