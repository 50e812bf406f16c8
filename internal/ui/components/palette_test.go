package components_test

import (
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"studysphere/internal/ui/components"
	"studysphere/internal/ui/theme"
)

func typed(t *testing.T, text string) components.Palette {
	t.Helper()
	styles := theme.For("dark")
	p := components.NewPalette(&styles, []string{
		"timer:toggle",
		"timer:mode <focus|short|long>",
		"task:add <title>",
		"task:clear",
	})
	p.Open()
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return p
}

func TestPaletteMatchesByPrefix(t *testing.T) {
	t.Parallel()
	got := typed(t, "task").Matching()
	want := []string{"task:add <title>", "task:clear"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("matching = %v, want %v", got, want)
	}
}

func TestPaletteKeepsHintWhileTypingArguments(t *testing.T) {
	t.Parallel()
	got := typed(t, "timer:mode sh").Matching()
	if len(got) != 1 || got[0] != "timer:mode <focus|short|long>" {
		t.Fatalf("matching = %v", got)
	}
}

func TestPaletteSubmitAndCancel(t *testing.T) {
	t.Parallel()
	p := typed(t, "task:clear")
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.Visible() {
		t.Fatal("palette still visible after enter")
	}
	if msg, ok := cmd().(components.PaletteSubmitMsg); !ok || msg.Input != "task:clear" {
		t.Fatalf("submit msg = %#v", cmd())
	}

	p = typed(t, "x")
	_, cmd = p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := cmd().(components.PaletteCancelMsg); !ok {
		t.Fatalf("cancel msg = %#v", cmd())
	}
}
