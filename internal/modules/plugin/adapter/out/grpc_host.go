package out

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	pluginrpc "studysphere/internal/modules/plugin/adapter/out/rpc"
	"studysphere/internal/modules/plugin/domain"
	pluginout "studysphere/internal/modules/plugin/port/out"
	"studysphere/internal/platform/logging"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

// GRPCHost starts the plugin binary for every call and kills it afterwards.
type GRPCHost struct {
	logger hclog.Logger
}

func NewGRPCHost(logger hclog.Logger) pluginout.Host {
	return &GRPCHost{logger: logging.OrDiscard(logger)}
}

func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	_, err := h.GetMetadata(ctx, manifest)
	return err
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	var meta *pluginrpc.Metadata
	err := h.withClient(ctx, manifest, defaultCallTimeout, func(callCtx context.Context, client pluginrpc.SpherePluginClient) error {
		var err error
		meta, err = client.GetMetadata(callCtx)
		if err != nil {
			return fmt.Errorf("get metadata: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Metadata{}, err
	}
	capabilities := make([]domain.Capability, 0, len(meta.Capabilities))
	for _, capability := range meta.Capabilities {
		capabilities = append(capabilities, domain.Capability(capability))
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version, Capabilities: capabilities}, nil
}

func (h *GRPCHost) ListCommands(ctx context.Context, manifest domain.Manifest) ([]domain.CommandDescriptor, error) {
	var response *pluginrpc.ListCommandsResponse
	err := h.withClient(ctx, manifest, defaultCallTimeout, func(callCtx context.Context, client pluginrpc.SpherePluginClient) error {
		var err error
		response, err = client.ListCommands(callCtx)
		if err != nil {
			return fmt.Errorf("list commands: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.CommandDescriptor, 0, len(response.Commands))
	for _, cmd := range response.Commands {
		out = append(out, domain.CommandDescriptor{
			ID:              cmd.ID,
			Title:           cmd.Title,
			Description:     cmd.Description,
			Kind:            domain.CommandKind(cmd.Kind),
			InputSchemaJSON: cmd.InputSchemaJSON,
			TimeoutMS:       int(cmd.TimeoutMS),
		})
	}
	return out, nil
}

func (h *GRPCHost) Execute(ctx context.Context, manifest domain.Manifest, input domain.ExecuteRequest) (domain.ExecuteResult, error) {
	request := &pluginrpc.ExecuteRequest{
		CommandID: input.CommandID,
		InputJSON: input.InputJSON,
		Context: pluginrpc.ExecuteContext{
			DataDir:  input.Context.DataDir,
			DeckID:   input.Context.DeckID,
			DeckName: input.Context.DeckName,
			Cards:    make([]pluginrpc.Card, 0, len(input.Context.Cards)),
		},
	}
	for _, card := range input.Context.Cards {
		request.Context.Cards = append(request.Context.Cards, pluginrpc.Card{Front: card.Front, Back: card.Back})
	}

	var response *pluginrpc.ExecuteResponse
	err := h.withClient(ctx, manifest, timeoutFor(input), func(callCtx context.Context, client pluginrpc.SpherePluginClient) error {
		var err error
		response, err = client.Execute(callCtx, request)
		if err != nil {
			if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
				return fmt.Errorf("%w: command %s", domain.ErrPluginTimeout, input.CommandID)
			}
			return fmt.Errorf("execute command: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.ExecuteResult{}, err
	}
	return domain.ExecuteResult{
		Stdout:     response.Stdout,
		Stderr:     response.Stderr,
		OutputJSON: response.OutputJSON,
		ExitCode:   int(response.ExitCode),
	}, nil
}

func (h *GRPCHost) withClient(ctx context.Context, manifest domain.Manifest, timeout time.Duration, fn func(context.Context, pluginrpc.SpherePluginClient) error) error {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  pluginrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          pluginrpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           h.logger.Named(manifest.Name),
	})
	defer client.Kill()

	rpcClient, err := client.Client()
	if err != nil {
		return fmt.Errorf("start plugin client: %w", err)
	}
	raw, err := rpcClient.Dispense(pluginrpc.PluginMapKey)
	if err != nil {
		return fmt.Errorf("dispense plugin: %w", err)
	}
	typed, ok := raw.(pluginrpc.SpherePluginClient)
	if !ok {
		return fmt.Errorf("plugin rpc client type mismatch")
	}

	callCtx, cancel := callContext(ctx, timeout)
	defer cancel()
	return fn(callCtx, typed)
}

// timeoutFor honours the command's declared timeout.
func timeoutFor(input domain.ExecuteRequest) time.Duration {
	if input.TimeoutMS > 0 {
		return time.Duration(input.TimeoutMS) * time.Millisecond
	}
	return defaultCallTimeout
}

func callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
