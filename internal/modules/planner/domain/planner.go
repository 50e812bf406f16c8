package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	statedomain "studysphere/internal/modules/state/domain"
	apperrors "studysphere/internal/platform/errors"
)

var (
	Categories = []string{"Study", "School", "Homework", "Personal"}
	Priorities = []string{"Low", "Medium", "High"}
	Statuses   = []string{StatusNotStarted, StatusInProgress, StatusDone}

	Days  = []string{"Mon", "Tue", "Wed", "Thu", "Fri"}
	Times = []string{"08:00", "10:00", "12:00", "14:00", "16:00"}
)

const (
	StatusNotStarted = "Not Started"
	StatusInProgress = "In Progress"
	StatusDone       = "Done"

	DefaultCategory = "Study"
	DefaultPriority = "Medium"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), apperrors.ErrInvalidInput)
}

func RequireTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", invalid("title is required")
	}
	return trimmed, nil
}

// OneOf returns the canonical spelling of value, or fallback when empty.
func OneOf(field, value, fallback string, allowed []string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	for _, candidate := range allowed {
		if strings.EqualFold(candidate, value) {
			return candidate, nil
		}
	}
	return "", invalid("%s must be one of %s, got %q", field, strings.Join(allowed, ", "), value)
}

// ValidateDue accepts an empty due date or YYYY-MM-DD.
func ValidateDue(due string) (string, error) {
	due = strings.TrimSpace(due)
	if due == "" {
		return "", nil
	}
	if _, err := time.Parse("2006-01-02", due); err != nil {
		return "", invalid("due date must be YYYY-MM-DD, got %q", due)
	}
	return due, nil
}

func ValidateColor(color string) (string, error) {
	color = strings.TrimSpace(color)
	if color == "" {
		return statedomain.DefaultSubjectColor, nil
	}
	if !hexColor.MatchString(color) {
		return "", invalid("color must look like #4f46e5, got %q", color)
	}
	return strings.ToLower(color), nil
}

// SlotKey builds the "<Day>_<HH:MM>" key used by the timetable.
func SlotKey(day, at string) (string, error) {
	canonicalDay, err := OneOf("day", day, "", Days)
	if err != nil || canonicalDay == "" {
		return "", invalid("day must be one of %s, got %q", strings.Join(Days, ", "), day)
	}
	for _, t := range Times {
		if t == strings.TrimSpace(at) {
			return canonicalDay + "_" + t, nil
		}
	}
	return "", invalid("time must be one of %s, got %q", strings.Join(Times, ", "), at)
}

// SortByDue orders items by due date; items without one go last. The sort
// is stable so equal dates keep their relative order.
func SortByDue[T any](items []T, due func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := due(items[i]), due(items[j])
		if a == "" {
			return false
		}
		if b == "" {
			return true
		}
		return a < b
	})
}

// SetAssignmentStatus keeps status and done consistent.
func SetAssignmentStatus(a *statedomain.Assignment, status string) {
	a.Status = status
	a.Done = status == StatusDone
}

// ToggleAssignment flips done. Completing forces status Done; reopening a
// Done assignment moves it back to In Progress.
func ToggleAssignment(a *statedomain.Assignment) {
	a.Done = !a.Done
	if a.Done {
		a.Status = StatusDone
		return
	}
	if a.Status == StatusDone {
		a.Status = StatusInProgress
	}
}

// SortNotes orders notes newest first.
func SortNotes(notes []statedomain.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].UpdatedAt > notes[j].UpdatedAt
	})
}

// Page is one page of an imported document.
type Page struct {
	Number int
	Text   string
}

// NoteDraft is note content read from an external file.
type NoteDraft struct {
	Title string
	Body  string
}
