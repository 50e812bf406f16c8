package theme_test

import (
	"testing"

	"studysphere/internal/ui/theme"
)

func TestForPicksPalette(t *testing.T) {
	t.Parallel()
	cases := map[string]struct {
		name string
		base string
	}{
		"dark":  {name: "dark", base: string(theme.Mocha.Base)},
		"light": {name: "light", base: string(theme.Latte.Base)},
		"":      {name: "light", base: string(theme.Latte.Base)},
		"neon":  {name: "light", base: string(theme.Latte.Base)},
	}
	for input, want := range cases {
		got := theme.For(input)
		if got.Name != want.name || string(got.Palette.Base) != want.base {
			t.Fatalf("For(%q) = %s/%s, want %s/%s", input, got.Name, got.Palette.Base, want.name, want.base)
		}
	}
}
