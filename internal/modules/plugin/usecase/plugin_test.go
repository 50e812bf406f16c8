package usecase_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	flashcardsdto "studysphere/internal/modules/flashcards/dto"
	"studysphere/internal/modules/plugin/domain"
	"studysphere/internal/modules/plugin/dto"
	"studysphere/internal/modules/plugin/service"
	"studysphere/internal/modules/plugin/usecase"
)

type fakeManifestStore struct {
	manifests []domain.Manifest
}

func (s fakeManifestStore) Load(context.Context) ([]domain.Manifest, error) {
	return s.manifests, nil
}

type fakeHost struct {
	lastDataDir *string
}

func (fakeHost) CheckLifecycle(context.Context, domain.Manifest) error { return nil }
func (fakeHost) GetMetadata(context.Context, domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: "p1", Version: "1"}, nil
}
func (fakeHost) ListCommands(context.Context, domain.Manifest) ([]domain.CommandDescriptor, error) {
	return []domain.CommandDescriptor{
		{ID: "echo", Kind: domain.CommandKindCommand, TimeoutMS: 1000},
		{ID: "reverse", Kind: domain.CommandKindCards, TimeoutMS: 1200},
	}, nil
}
func (h fakeHost) Execute(_ context.Context, _ domain.Manifest, req domain.ExecuteRequest) (domain.ExecuteResult, error) {
	*h.lastDataDir = req.Context.DataDir
	if req.CommandID == "reverse" {
		return domain.ExecuteResult{OutputJSON: `{"cards":[{"front":"Unit of life","back":"Cell"}]}`}, nil
	}
	return domain.ExecuteResult{Stdout: "ok", OutputJSON: `{"ok":true}`}, nil
}

type fakeDecks struct{ added int }

func (d *fakeDecks) FindDeck(string) (flashcardsdto.DeckDetailOutput, error) {
	return flashcardsdto.DeckDetailOutput{ID: "d1", Name: "Biology", Cards: []flashcardsdto.CardOutput{{Front: "Cell", Back: "Unit of life"}}}, nil
}

func (d *fakeDecks) ImportCards(_ context.Context, _ string, cards []flashcardsdto.CardDraft) (int, error) {
	d.added += len(cards)
	return len(cards), nil
}

func TestUsecaseListDoctorAndOperations(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	manifest := manifestWithBinary(t)
	dataDir := t.TempDir()
	var seenDataDir string
	decks := &fakeDecks{}
	svc := service.NewPluginService(fakeManifestStore{manifests: []domain.Manifest{manifest}}, fakeHost{lastDataDir: &seenDataDir}, decks)
	uc := usecase.NewInteractor(svc, dataDir, nil)

	list, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "p1" || len(list[0].Capabilities) != 2 {
		t.Fatalf("unexpected list: %+v", list)
	}

	docs, err := uc.Doctor(ctx)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(docs) != 1 || !docs[0].LifecycleOK {
		t.Fatalf("unexpected doctor result: %+v", docs)
	}

	commands, err := uc.ListCommands(ctx, "p1")
	if err != nil {
		t.Fatalf("list commands: %v", err)
	}
	if len(commands) != 2 || commands[1].Kind != "cards" {
		t.Fatalf("unexpected commands: %+v", commands)
	}

	execOut, err := uc.Execute(ctx, dto.ExecuteInput{PluginName: "p1", CommandID: "echo"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if execOut.ExitCode != 0 || seenDataDir != dataDir {
		t.Fatalf("unexpected execute result: %+v (data dir %q)", execOut, seenDataDir)
	}

	cardsOut, err := uc.GenerateCards(ctx, dto.ExecuteInput{PluginName: "p1", CommandID: "reverse", DeckRef: "Biology"})
	if err != nil {
		t.Fatalf("generate cards: %v", err)
	}
	if cardsOut.Added != 1 || decks.added != 1 || cardsOut.DeckID != "d1" {
		t.Fatalf("unexpected cards result: %+v", cardsOut)
	}
}

func manifestWithBinary(t *testing.T) domain.Manifest {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "plugin-bin")
	if err := os.WriteFile(binPath, []byte("binary"), 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	hash := sha256.Sum256([]byte("binary"))
	return domain.Manifest{
		Name:         "p1",
		Version:      "1",
		Binary:       binPath,
		SHA256:       hex.EncodeToString(hash[:]),
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityCommand, domain.CapabilityCards},
	}
}
