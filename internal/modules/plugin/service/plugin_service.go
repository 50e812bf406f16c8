package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	flashcardsdto "studysphere/internal/modules/flashcards/dto"
	"studysphere/internal/modules/plugin/domain"
	"studysphere/internal/modules/plugin/dto"
	pluginout "studysphere/internal/modules/plugin/port/out"
	apperrors "studysphere/internal/platform/errors"
)

type PluginService struct {
	store pluginout.ManifestStore
	host  pluginout.Host
	decks pluginout.Decks
}

func NewPluginService(store pluginout.ManifestStore, host pluginout.Host, decks pluginout.Decks) *PluginService {
	return &PluginService{store: store, host: host, decks: decks}
}

func (s *PluginService) List(ctx context.Context) ([]dto.PluginInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PluginInfo, 0, len(manifests))
	for _, m := range manifests {
		caps := make([]string, 0, len(m.Capabilities))
		for _, c := range m.Capabilities {
			caps = append(caps, string(c))
		}
		out = append(out, dto.PluginInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary, Capabilities: caps})
	}
	return out, nil
}

// Doctor reports on every manifest entry, including invalid ones, without
// failing as a whole.
func (s *PluginService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		result.BinaryReachable = fileExists(m.Binary)
		if !result.BinaryReachable {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
			results = append(results, result)
			continue
		}
		result.ChecksumValid = checksumMatches(m.Binary, m.SHA256) == nil
		switch {
		case !result.ChecksumValid:
			result.Error = "checksum mismatch"
		case !m.Enabled:
			result.Error = "disabled"
		case s.host != nil:
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *PluginService) ListCommands(ctx context.Context, pluginName string) ([]dto.CommandInfo, error) {
	manifest, err := s.runnableManifest(ctx, pluginName, "")
	if err != nil {
		return nil, err
	}
	commands, err := s.host.ListCommands(ctx, manifest)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CommandInfo, 0, len(commands))
	for _, command := range commands {
		out = append(out, dto.CommandInfo{
			ID:              command.ID,
			Title:           command.Title,
			Description:     command.Description,
			Kind:            string(command.Kind),
			InputSchemaJSON: command.InputSchemaJSON,
			TimeoutMS:       command.TimeoutMS,
		})
	}
	return out, nil
}

func (s *PluginService) Execute(ctx context.Context, input dto.ExecuteInput) (dto.ExecuteOutput, error) {
	out, _, err := s.run(ctx, input, domain.CapabilityCommand, domain.CommandKindCommand)
	return out, err
}

// GenerateCards runs a cards command against a deck and appends whatever
// cards it returns. Nothing is imported when the output is malformed.
func (s *PluginService) GenerateCards(ctx context.Context, input dto.ExecuteInput) (dto.CardsOutput, error) {
	if strings.TrimSpace(input.DeckRef) == "" {
		return dto.CardsOutput{}, apperrors.ErrNoDeckSelected
	}
	out, deck, err := s.run(ctx, input, domain.CapabilityCards, domain.CommandKindCards)
	if err != nil {
		return dto.CardsOutput{}, err
	}
	result := dto.CardsOutput{ExecuteOutput: out, DeckID: deck.ID, DeckName: deck.Name}
	if out.ExitCode != 0 {
		return result, fmt.Errorf("%w: exit code %d", domain.ErrInvalidOutput, out.ExitCode)
	}
	cards, err := domain.ParseCards(out.OutputJSON)
	if err != nil {
		return result, err
	}
	drafts := make([]flashcardsdto.CardDraft, 0, len(cards))
	for _, card := range cards {
		drafts = append(drafts, flashcardsdto.CardDraft{Front: card.Front, Back: card.Back})
	}
	added, err := s.decks.ImportCards(ctx, deck.ID, drafts)
	if err != nil {
		return result, fmt.Errorf("import generated cards: %w", err)
	}
	result.Added = added
	return result, nil
}

func (s *PluginService) run(ctx context.Context, input dto.ExecuteInput, capability domain.Capability, kind domain.CommandKind) (dto.ExecuteOutput, flashcardsdto.DeckDetailOutput, error) {
	manifest, err := s.runnableManifest(ctx, input.PluginName, capability)
	if err != nil {
		return dto.ExecuteOutput{}, flashcardsdto.DeckDetailOutput{}, err
	}
	deck, err := s.resolveDeck(input.DeckRef)
	if err != nil {
		return dto.ExecuteOutput{}, deck, err
	}
	req := domain.ExecuteRequest{
		CommandID: input.CommandID,
		InputJSON: input.InputJSON,
		Context:   executeContext(input.DataDir, deck),
	}
	if err := req.Validate(); err != nil {
		return dto.ExecuteOutput{}, deck, fmt.Errorf("%v: %w", err, apperrors.ErrInvalidInput)
	}
	commands, err := s.host.ListCommands(ctx, manifest)
	if err != nil {
		return dto.ExecuteOutput{}, deck, err
	}
	command, err := requireCommand(commands, input.CommandID, kind)
	if err != nil {
		return dto.ExecuteOutput{}, deck, err
	}
	req.TimeoutMS = command.TimeoutMS

	result, err := s.host.Execute(ctx, manifest, req)
	if err != nil {
		return dto.ExecuteOutput{}, deck, err
	}
	return dto.ExecuteOutput{
		PluginName: input.PluginName,
		CommandID:  input.CommandID,
		Stdout:     result.Stdout,
		Stderr:     result.Stderr,
		OutputJSON: result.OutputJSON,
		ExitCode:   result.ExitCode,
	}, deck, nil
}

func (s *PluginService) resolveDeck(ref string) (flashcardsdto.DeckDetailOutput, error) {
	if strings.TrimSpace(ref) == "" || s.decks == nil {
		return flashcardsdto.DeckDetailOutput{}, nil
	}
	return s.decks.FindDeck(ref)
}

func executeContext(dataDir string, deck flashcardsdto.DeckDetailOutput) domain.ExecuteContext {
	ctx := domain.ExecuteContext{DataDir: dataDir, DeckID: deck.ID, DeckName: deck.Name}
	for _, card := range deck.Cards {
		ctx.Cards = append(ctx.Cards, domain.Card{Front: card.Front, Back: card.Back})
	}
	return ctx
}

func (s *PluginService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(manifests))
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if seen[manifest.Name] {
			return nil, fmt.Errorf("duplicate plugin name: %s", manifest.Name)
		}
		seen[manifest.Name] = true
	}
	return manifests, nil
}

func (s *PluginService) runnableManifest(ctx context.Context, pluginName string, capability domain.Capability) (domain.Manifest, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	idx := -1
	for i, item := range manifests {
		if item.Name == pluginName {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Manifest{}, fmt.Errorf("%w: %q", domain.ErrPluginNotFound, pluginName)
	}
	manifest := manifests[idx]
	if !manifest.Enabled {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrPluginDisabled, pluginName)
	}
	if capability != "" && !manifest.HasCapability(capability) {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrCapabilityMissing, capability)
	}
	if err := checksumMatches(manifest.Binary, manifest.SHA256); err != nil {
		return domain.Manifest{}, err
	}
	if s.host == nil {
		return domain.Manifest{}, fmt.Errorf("plugin host is not configured")
	}
	if err := s.host.CheckLifecycle(ctx, manifest); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrPluginTimeout, pluginName)
		}
		return domain.Manifest{}, err
	}
	return manifest, nil
}

func requireCommand(commands []domain.CommandDescriptor, commandID string, kind domain.CommandKind) (domain.CommandDescriptor, error) {
	for _, command := range commands {
		if err := command.Validate(); err != nil {
			return domain.CommandDescriptor{}, err
		}
		if command.ID != commandID {
			continue
		}
		if command.Kind != kind {
			return domain.CommandDescriptor{}, fmt.Errorf("command %s is a %s command, want %s", commandID, command.Kind, kind)
		}
		return command, nil
	}
	return domain.CommandDescriptor{}, fmt.Errorf("%w: %s", domain.ErrCommandNotFound, commandID)
}

func checksumMatches(path, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read plugin binary: %w", err)
	}
	sum := sha256.Sum256(payload)
	if hex.EncodeToString(sum[:]) != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
