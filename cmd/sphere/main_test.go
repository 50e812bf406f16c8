package main

import (
	"bytes"
	"strings"
	"testing"
)

func run(t *testing.T, dataDir, stdin string, args ...string) string {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--data", dataDir}, args...))
	if err := root.Execute(); err != nil {
		t.Fatalf("sphere %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestTaskCommandsPersistAcrossRuns(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	run(t, dir, "", "task", "add", "Read", "chapter", "3", "--priority", "High", "--due", "2026-10-20")
	out := run(t, dir, "", "task", "list")
	if !strings.Contains(out, "Read chapter 3") || !strings.Contains(out, "High") {
		t.Fatalf("task list = %q", out)
	}
	badges := run(t, dir, "", "badges")
	// two open tasks come from the seeded first-run state
	if !strings.Contains(badges, "tasks=3") {
		t.Fatalf("badges = %q", badges)
	}
}

func TestQuizCommandScoresAnswers(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	run(t, dir, "", "deck", "add", "Genetics")
	run(t, dir, "", "card", "add", "Genetics", "--front", "DNA shape?", "--back", "Double helix")
	run(t, dir, "", "card", "add", "Genetics", "--front", "Unit of heredity?", "--back", "Gene")

	out := run(t, dir, "\ny\n\nn\n", "quiz", "genetics")
	if !strings.Contains(out, "score: 50% (1/2)") {
		t.Fatalf("quiz output = %q", out)
	}
}

func TestTimerModeAndDurations(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	out := run(t, dir, "", "timer", "durations", "--focus", "200")
	if !strings.Contains(out, "focus=90") {
		t.Fatalf("durations output = %q", out)
	}
	out = run(t, dir, "", "timer", "mode", "short")
	if !strings.HasPrefix(out, "short 05:00 paused") {
		t.Fatalf("mode output = %q", out)
	}
}

func TestStateResetRequiresConfirmation(t *testing.T) {
	t.Parallel()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--data", t.TempDir(), "state", "reset"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected reset without --yes to fail")
	}
}
