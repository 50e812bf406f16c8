package domain_test

import (
	"errors"
	"testing"

	"studysphere/internal/modules/planner/domain"
	statedomain "studysphere/internal/modules/state/domain"
	apperrors "studysphere/internal/platform/errors"
)

func TestSortByDueKeepsUndatedLast(t *testing.T) {
	t.Parallel()
	tasks := []statedomain.Task{
		{ID: "a", Due: ""},
		{ID: "b", Due: "2026-03-05"},
		{ID: "c", Due: "2026-03-01"},
		{ID: "d", Due: ""},
		{ID: "e", Due: "2026-03-01"},
	}
	domain.SortByDue(tasks, func(t statedomain.Task) string { return t.Due })
	got := ""
	for _, task := range tasks {
		got += task.ID
	}
	if got != "cebad" {
		t.Fatalf("order = %s, want cebad", got)
	}
}

func TestSlotKey(t *testing.T) {
	t.Parallel()
	key, err := domain.SlotKey("wed", "12:00")
	if err != nil {
		t.Fatalf("slot key: %v", err)
	}
	if key != "Wed_12:00" {
		t.Fatalf("key = %q", key)
	}
	for _, tc := range [][2]string{{"Sat", "08:00"}, {"Mon", "09:00"}, {"", "08:00"}} {
		if _, err := domain.SlotKey(tc[0], tc[1]); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("SlotKey(%q, %q) err = %v", tc[0], tc[1], err)
		}
	}
}

func TestToggleAssignmentReopensInProgress(t *testing.T) {
	t.Parallel()
	a := statedomain.Assignment{Status: domain.StatusNotStarted}
	domain.ToggleAssignment(&a)
	if !a.Done || a.Status != domain.StatusDone {
		t.Fatalf("after complete: %+v", a)
	}
	domain.ToggleAssignment(&a)
	if a.Done || a.Status != domain.StatusInProgress {
		t.Fatalf("after reopen: %+v", a)
	}
}

func TestOneOfCanonicalizes(t *testing.T) {
	t.Parallel()
	got, err := domain.OneOf("priority", "high", domain.DefaultPriority, domain.Priorities)
	if err != nil || got != "High" {
		t.Fatalf("OneOf = %q, %v", got, err)
	}
	got, err = domain.OneOf("priority", " ", domain.DefaultPriority, domain.Priorities)
	if err != nil || got != domain.DefaultPriority {
		t.Fatalf("empty OneOf = %q, %v", got, err)
	}
	if _, err := domain.OneOf("priority", "urgent", domain.DefaultPriority, domain.Priorities); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestValidateDueAndColor(t *testing.T) {
	t.Parallel()
	if _, err := domain.ValidateDue("2026-02-30"); err == nil {
		t.Fatal("expected invalid calendar date")
	}
	if due, err := domain.ValidateDue(""); err != nil || due != "" {
		t.Fatalf("empty due = %q, %v", due, err)
	}
	color, err := domain.ValidateColor("#ABCDEF")
	if err != nil || color != "#abcdef" {
		t.Fatalf("color = %q, %v", color, err)
	}
	if _, err := domain.ValidateColor("red"); err == nil {
		t.Fatal("expected invalid color")
	}
}
