package slug_test

import (
	"strings"
	"testing"

	"studysphere/internal/platform/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Biology 101":          "biology-101",
		"  Verbs: irregular! ": "verbs-irregular",
		"Español básico":       "español-básico",
		"***":                  "untitled",
		"":                     "untitled",
	}
	for in, want := range cases {
		if got := slug.Make(in); got != want {
			t.Errorf("Make(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMakeCapsLength(t *testing.T) {
	t.Parallel()
	got := slug.Make(strings.Repeat("ab ", 40))
	if n := len([]rune(got)); n > 64 {
		t.Fatalf("slug has %d runes", n)
	}
	if strings.HasSuffix(got, "-") {
		t.Fatalf("slug ends with a hyphen: %q", got)
	}
}
