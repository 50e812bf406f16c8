package service

import (
	"context"
	"fmt"
	"strings"

	"studysphere/internal/modules/planner/domain"
	statedomain "studysphere/internal/modules/state/domain"
	statein "studysphere/internal/modules/state/port/in"
	"studysphere/internal/platform/clock"
	apperrors "studysphere/internal/platform/errors"
	"studysphere/internal/platform/id"
)

type PlannerService struct {
	store statein.Store
	clock clock.Clock
	ids   id.Generator
}

func NewPlannerService(store statein.Store, clock clock.Clock, ids id.Generator) *PlannerService {
	return &PlannerService{store: store, clock: clock, ids: ids}
}

func (s *PlannerService) Snapshot() statedomain.AppState {
	return s.store.Snapshot()
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, apperrors.ErrNotFound)
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i, item := range items {
		if match(item) {
			return i
		}
	}
	return -1
}

// Tasks

func (s *PlannerService) normalizeTask(title, category, due, priority string) (statedomain.Task, error) {
	var (
		task statedomain.Task
		err  error
	)
	if task.Title, err = domain.RequireTitle(title); err != nil {
		return task, err
	}
	if task.Category, err = domain.OneOf("category", category, domain.DefaultCategory, domain.Categories); err != nil {
		return task, err
	}
	if task.Priority, err = domain.OneOf("priority", priority, domain.DefaultPriority, domain.Priorities); err != nil {
		return task, err
	}
	if task.Due, err = domain.ValidateDue(due); err != nil {
		return task, err
	}
	return task, nil
}

// AddTask inserts at the top of the list. An empty due date means today.
func (s *PlannerService) AddTask(ctx context.Context, title, category, due, priority string) (statedomain.Task, error) {
	if strings.TrimSpace(due) == "" {
		due = clock.DayKey(s.clock.Now())
	}
	task, err := s.normalizeTask(title, category, due, priority)
	if err != nil {
		return task, err
	}
	task.ID = s.ids.New()
	err = s.store.Mutate(ctx, func(state *statedomain.AppState) error {
		state.Tasks = append([]statedomain.Task{task}, state.Tasks...)
		return nil
	})
	return task, err
}

func (s *PlannerService) EditTask(ctx context.Context, taskID, title, category, due, priority string) (statedomain.Task, error) {
	patch, err := s.normalizeTask(title, category, due, priority)
	if err != nil {
		return patch, err
	}
	var edited statedomain.Task
	err = s.store.Mutate(ctx, func(state *statedomain.AppState) error {
		idx := indexOf(state.Tasks, func(t statedomain.Task) bool { return t.ID == taskID })
		if idx < 0 {
			return notFound("task", taskID)
		}
		patch.ID = taskID
		patch.Done = state.Tasks[idx].Done
		state.Tasks[idx] = patch
		edited = patch
		return nil
	})
	return edited, err
}

func (s *PlannerService) ToggleTask(ctx context.Context, taskID string) (statedomain.Task, error) {
	var toggled statedomain.Task
	err := s.store.Mutate(ctx, func(state *statedomain.AppState) error {
		idx := indexOf(state.Tasks, func(t statedomain.Task) bool { return t.ID == taskID })
		if idx < 0 {
			return notFound("task", taskID)
		}
		state.Tasks[idx].Done = !state.Tasks[idx].Done
		toggled = state.Tasks[idx]
		return nil
	})
	return toggled, err
}

func (s *PlannerService) DeleteTask(ctx context.Context, taskID string) error {
	return s.store.Mutate(ctx, func(state *statedomain.AppState) error {
		idx := indexOf(state.Tasks, func(t statedomain.Task) bool { return t.ID == taskID })
		if idx < 0 {
			return notFound("task", taskID)
		}
		state.Tasks = append(state.Tasks[:idx], state.Tasks[idx+1:]...)
		return nil
	})
}

func (s *PlannerService) SortTasksByDue(ctx context.Context) error {
	return s.store.Mutate(ctx, func(state *statedomain.AppState) error {
		domain.SortByDue(state.Tasks, func(t statedomain.Task) string { return t.Due })
		return nil
	})
}

func (s *PlannerService) ClearCompletedTasks(ctx context.Context) (int, error) {
	removed := 0
	err := s.store.Mutate(ctx, func(state *statedomain.AppState) error {
		kept := make([]statedomain.Task, 0, len(state.Tasks))
		for _, task := range state.Tasks {
			if task.Done {
				removed++
				continue
			}
			kept = append(kept, task)
		}
		state.Tasks = kept
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// Notes

func (s *PlannerService) AddNote(ctx context.Context, title, body string) (statedomain.Note, error) {
	trimmed, err := domain.RequireTitle(title)
	if err != nil {
		return statedomain.Note{}, err
	}
	note := statedomain.Note{ID: s.ids.New(), Title: trimmed, Body: body, UpdatedAt: clock.Millis(s.clock.Now())}
	err = s.store.Mutate(ctx, func(state *statedomain.AppState) error {
		state.Notes = append([]statedomain.Note{note}, state.Notes...)
		return nil
	})
	return note, err
}

func (s *PlannerService) EditNote(ctx context.Context, noteID, title, body string) (statedomain.Note, error) {
	trimmed, err := domain.RequireTitle(title)
	if err != nil {
		return statedomain.Note{}, err
	}
	var edited statedomain.Note
	err = s.store.Mutate(ctx, func(state *statedomain.AppState) error {
		idx := indexOf(state.Notes, func(n statedomain.Note) bool { return n.ID == noteID })
		if idx < 0 {
			return notFound("note", noteID)
		}
		state.Notes[idx].Title = trimmed
		state.Notes[idx].Body = body
		state.Notes[idx].UpdatedAt = clock.Millis(s.clock.Now())
		edited = state.Notes[idx]
		return nil
	})
	return edited, err
}

func (s *PlannerService) DeleteNote(ctx context.Context, noteID string) error {
	return s.store.Mutate(ctx, func(state *statedomain.AppState) error {
		idx := indexOf(state.Notes, func(n statedomain.Note) bool { return n.ID == noteID })
		if idx < 0 {
			return notFound("note", noteID)
		}
		state.Notes = append(state.Notes[:idx], state.Notes[idx+1:]...)
		return nil
	})
}

// Assignments

func (s *PlannerService) normalizeAssignment(title, subject, due, status string) (statedomain.Assignment, error) {
	var (
		a   statedomain.Assignment
		err error
	)
	if a.Title, err = domain.RequireTitle(title); err != nil {
		return a, err
	}
	a.Subject = strings.TrimSpace(subject)
	if a.Due, err = domain.ValidateDue(due); err != nil {
		return a, err
	}
	if a.Status, err = domain.OneOf("status", status, domain.StatusNotStarted, domain.Statuses); err != nil {
		return a, err
	}
	return a, nil
}

func (s *PlannerService) AddAssignment(ctx context.Context, title, subject, due, status string) (statedomain.Assignment, error) {
	assignment, err := s.normalizeAssignment(title, subject, due, status)
	if err != nil {
		return assignment, err
	}
	assignment.ID = s.ids.New()
	domain.SetAssignmentStatus(&assignment, assignment.Status)
	err = s.store.Mutate(ctx, func(state *statedomain.AppState) error {
		state.Assignments = append([]statedomain.Assignment{assignment}, state.Assignments...)
		return nil
	})
	return assignment, err
}

func (s *PlannerService) EditAssignment(ctx context.Context, assignmentID, title, subject, due, status string) (statedomain.Assignment, error) {
	patch, err := s.normalizeAssignment(title, subject, due, status)
	if err != nil {
		return patch, err
	}
	var edited statedomain.Assignment
	err = s.store.Mutate(ctx, func(state *statedomain.AppState) error {
		idx := indexOf(state.Assignments, func(a statedomain.Assignment) bool { return a.ID == assignmentID })
		if idx < 0 {
			return notFound("assignment", assignmentID)
		}
		patch.ID = assignmentID
		patch.Done = state.Assignments[idx].Done
		domain.SetAssignmentStatus(&patch, patch.Status)
		state.Assignments[idx] = patch
		edited = patch
		return nil
	})
	return edited, err
}

func (s *PlannerService) ToggleAssignment(ctx context.Context, assignmentID string) (statedomain.Assignment, error) {
	var toggled statedomain.Assignment
	err := s.store.Mutate(ctx, func(state *statedomain.AppState) error {
		idx := indexOf(state.Assignments, func(a statedomain.Assignment) bool { return a.ID == assignmentID })
		if idx < 0 {
			return notFound("assignment", assignmentID)
		}
		domain.ToggleAssignment(&state.Assignments[idx])
		toggled = state.Assignments[idx]
		return nil
	})
	return toggled, err
}

func (s *PlannerService) DeleteAssignment(ctx context.Context, assignmentID string) error {
	return s.store.Mutate(ctx, func(state *statedomain.AppState) error {
		idx := indexOf(state.Assignments, func(a statedomain.Assignment) bool { return a.ID == assignmentID })
		if idx < 0 {
			return notFound("assignment", assignmentID)
		}
		state.Assignments = append(state.Assignments[:idx], state.Assignments[idx+1:]...)
		return nil
	})
}

func (s *PlannerService) SortAssignmentsByDue(ctx context.Context) error {
	return s.store.Mutate(ctx, func(state *statedomain.AppState) error {
		domain.SortByDue(state.Assignments, func(a statedomain.Assignment) string { return a.Due })
		return nil
	})
}

// Timetable

func (s *PlannerService) AddSubject(ctx context.Context, title, color string) (statedomain.Subject, error) {
	trimmed, err := domain.RequireTitle(title)
	if err != nil {
		return statedomain.Subject{}, err
	}
	normalized, err := domain.ValidateColor(color)
	if err != nil {
		return statedomain.Subject{}, err
	}
	subject := statedomain.Subject{ID: s.ids.New(), Title: trimmed, Color: normalized}
	err = s.store.Mutate(ctx, func(state *statedomain.AppState) error {
		state.Timetable.Palette = append([]statedomain.Subject{subject}, state.Timetable.Palette...)
		return nil
	})
	return subject, err
}

// AssignSlot copies the subject's title and color into the slot; later
// palette changes do not affect scheduled blocks.
func (s *PlannerService) AssignSlot(ctx context.Context, day, at, subjectRef string) (string, statedomain.Slot, error) {
	key, err := domain.SlotKey(day, at)
	if err != nil {
		return "", statedomain.Slot{}, err
	}
	var slot statedomain.Slot
	err = s.store.Mutate(ctx, func(state *statedomain.AppState) error {
		idx := indexOf(state.Timetable.Palette, func(sub statedomain.Subject) bool {
			return sub.ID == subjectRef || strings.EqualFold(sub.Title, strings.TrimSpace(subjectRef))
		})
		if idx < 0 {
			return notFound("subject", subjectRef)
		}
		subject := state.Timetable.Palette[idx]
		slot = statedomain.Slot{Title: subject.Title, Color: subject.Color}
		state.Timetable.Slots[key] = slot
		return nil
	})
	return key, slot, err
}

func (s *PlannerService) RemoveSlot(ctx context.Context, day, at string) error {
	key, err := domain.SlotKey(day, at)
	if err != nil {
		return err
	}
	return s.store.Mutate(ctx, func(state *statedomain.AppState) error {
		if _, ok := state.Timetable.Slots[key]; !ok {
			return notFound("slot", key)
		}
		delete(state.Timetable.Slots, key)
		return nil
	})
}

func (s *PlannerService) ClearTimetable(ctx context.Context) error {
	return s.store.Mutate(ctx, func(state *statedomain.AppState) error {
		state.Timetable.Slots = map[string]statedomain.Slot{}
		return nil
	})
}

// Preferences

func (s *PlannerService) SetTheme(ctx context.Context, theme statedomain.Theme) (statedomain.AppState, error) {
	if !theme.Valid() {
		return statedomain.AppState{}, fmt.Errorf("theme must be light or dark, got %q: %w", string(theme), apperrors.ErrInvalidInput)
	}
	return s.mutateReturning(ctx, func(state *statedomain.AppState) {
		state.Theme = theme
	})
}

func (s *PlannerService) ToggleTheme(ctx context.Context) (statedomain.AppState, error) {
	return s.mutateReturning(ctx, func(state *statedomain.AppState) {
		if state.Theme == statedomain.ThemeDark {
			state.Theme = statedomain.ThemeLight
		} else {
			state.Theme = statedomain.ThemeDark
		}
	})
}

func (s *PlannerService) SetSection(ctx context.Context, section statedomain.Section) (statedomain.AppState, error) {
	if err := section.Validate(); err != nil {
		return statedomain.AppState{}, fmt.Errorf("%v: %w", err, apperrors.ErrInvalidInput)
	}
	return s.mutateReturning(ctx, func(state *statedomain.AppState) {
		state.ActiveSection = section
	})
}

func (s *PlannerService) mutateReturning(ctx context.Context, fn func(*statedomain.AppState)) (statedomain.AppState, error) {
	var out statedomain.AppState
	err := s.store.Mutate(ctx, func(state *statedomain.AppState) error {
		fn(state)
		out = state.Clone()
		return nil
	})
	return out, err
}
