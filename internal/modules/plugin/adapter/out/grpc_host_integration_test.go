package out_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	pluginout "studysphere/internal/modules/plugin/adapter/out"
	"studysphere/internal/modules/plugin/domain"
)

func TestGRPCHostIntegrationReferencePlugin(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the reference plugin")
	}
	binPath, checksum := buildReferencePlugin(t)
	manifest := domain.Manifest{
		Name:         "reference",
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       checksum,
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityCommand, domain.CapabilityCards},
	}

	host := pluginout.NewGRPCHost(nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := host.CheckLifecycle(ctx, manifest); err != nil {
		t.Fatalf("check lifecycle: %v", err)
	}
	metadata, err := host.GetMetadata(ctx, manifest)
	if err != nil {
		t.Fatalf("get metadata: %v", err)
	}
	if metadata.Name != "reference" || len(metadata.Capabilities) != 2 {
		t.Fatalf("unexpected metadata: %+v", metadata)
	}
	commands, err := host.ListCommands(ctx, manifest)
	if err != nil {
		t.Fatalf("list commands: %v", err)
	}
	if len(commands) != 4 {
		t.Fatalf("expected 4 commands, got %d", len(commands))
	}

	deckCtx := domain.ExecuteContext{
		DataDir:  t.TempDir(),
		DeckID:   "deck-1",
		DeckName: "Biology",
		Cards:    []domain.Card{{Front: "Powerhouse of the cell", Back: "Mitochondria"}},
	}
	stats, err := host.Execute(ctx, manifest, domain.ExecuteRequest{CommandID: "deck-stats", Context: deckCtx})
	if err != nil {
		t.Fatalf("deck stats: %v", err)
	}
	if stats.ExitCode != 0 || !strings.Contains(stats.Stdout, "1 cards, 5 words") {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	reversed, err := host.Execute(ctx, manifest, domain.ExecuteRequest{CommandID: "reverse", Context: deckCtx})
	if err != nil {
		t.Fatalf("reverse: %v", err)
	}
	cards, err := domain.ParseCards(reversed.OutputJSON)
	if err != nil {
		t.Fatalf("parse reverse output: %v", err)
	}
	if len(cards) != 1 || cards[0].Front != "Mitochondria" {
		t.Fatalf("unexpected cards: %+v", cards)
	}

	glossary, err := host.Execute(ctx, manifest, domain.ExecuteRequest{
		CommandID: "glossary",
		InputJSON: `{"text":"Osmosis: water through a membrane\nnot a card\nDiffusion: high to low"}`,
		Context:   domain.ExecuteContext{DataDir: t.TempDir()},
	})
	if err != nil {
		t.Fatalf("glossary: %v", err)
	}
	cards, err = domain.ParseCards(glossary.OutputJSON)
	if err != nil {
		t.Fatalf("parse glossary output: %v", err)
	}
	if len(cards) != 2 || cards[1].Front != "Diffusion" {
		t.Fatalf("unexpected glossary cards: %+v", cards)
	}
}

func buildReferencePlugin(t *testing.T) (string, string) {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "reference-plugin")
	cmd := exec.Command("go", "build", "-o", binPath, "./plugins/reference")
	cmd.Dir = repositoryRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build reference plugin: %v\n%s", err, string(out))
	}
	payload, err := os.ReadFile(binPath)
	if err != nil {
		t.Fatalf("read built plugin: %v", err)
	}
	hash := sha256.Sum256(payload)
	return binPath, hex.EncodeToString(hash[:])
}

func repositoryRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "../../../../../"))
}
