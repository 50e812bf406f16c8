package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"studysphere/internal/modules/planner/domain"
	"studysphere/internal/modules/planner/dto"
	plannerin "studysphere/internal/modules/planner/port/in"
	"studysphere/internal/modules/planner/service"
	statedomain "studysphere/internal/modules/state/domain"
	apperrors "studysphere/internal/platform/errors"
)

type Interactor struct {
	svc      *service.PlannerService
	importer *service.ImportService
}

func NewInteractor(svc *service.PlannerService, importer *service.ImportService) plannerin.Usecase {
	return &Interactor{svc: svc, importer: importer}
}

func (i *Interactor) ListTasks() []dto.TaskOutput {
	tasks := i.svc.Snapshot().Tasks
	out := make([]dto.TaskOutput, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, toTask(task))
	}
	return out
}

func (i *Interactor) AddTask(ctx context.Context, input dto.TaskInput) (dto.TaskOutput, error) {
	task, err := i.svc.AddTask(ctx, input.Title, input.Category, input.Due, input.Priority)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	return toTask(task), nil
}

func (i *Interactor) EditTask(ctx context.Context, id string, input dto.TaskInput) (dto.TaskOutput, error) {
	task, err := i.svc.EditTask(ctx, id, input.Title, input.Category, input.Due, input.Priority)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	return toTask(task), nil
}

func (i *Interactor) ToggleTask(ctx context.Context, id string) (dto.TaskOutput, error) {
	task, err := i.svc.ToggleTask(ctx, id)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	return toTask(task), nil
}

func (i *Interactor) DeleteTask(ctx context.Context, id string) error {
	return i.svc.DeleteTask(ctx, id)
}

func (i *Interactor) SortTasksByDue(ctx context.Context) error {
	return i.svc.SortTasksByDue(ctx)
}

func (i *Interactor) ClearCompletedTasks(ctx context.Context) (int, error) {
	return i.svc.ClearCompletedTasks(ctx)
}

func (i *Interactor) ListNotes() []dto.NoteOutput {
	notes := i.svc.Snapshot().Notes
	domain.SortNotes(notes)
	out := make([]dto.NoteOutput, 0, len(notes))
	for _, note := range notes {
		out = append(out, toNote(note))
	}
	return out
}

func (i *Interactor) GetNote(id string) (dto.NoteOutput, error) {
	for _, note := range i.svc.Snapshot().Notes {
		if note.ID == id {
			return toNote(note), nil
		}
	}
	return dto.NoteOutput{}, fmt.Errorf("note %q: %w", id, apperrors.ErrNotFound)
}

func (i *Interactor) AddNote(ctx context.Context, input dto.NoteInput) (dto.NoteOutput, error) {
	note, err := i.svc.AddNote(ctx, input.Title, input.Body)
	if err != nil {
		return dto.NoteOutput{}, err
	}
	return toNote(note), nil
}

func (i *Interactor) EditNote(ctx context.Context, id string, input dto.NoteInput) (dto.NoteOutput, error) {
	note, err := i.svc.EditNote(ctx, id, input.Title, input.Body)
	if err != nil {
		return dto.NoteOutput{}, err
	}
	return toNote(note), nil
}

func (i *Interactor) DeleteNote(ctx context.Context, id string) error {
	return i.svc.DeleteNote(ctx, id)
}

func (i *Interactor) ImportNote(ctx context.Context, input dto.ImportNoteInput) (dto.NoteOutput, error) {
	if i.importer == nil {
		return dto.NoteOutput{}, fmt.Errorf("note import is not configured")
	}
	if strings.TrimSpace(input.Path) == "" {
		return dto.NoteOutput{}, fmt.Errorf("path is required: %w", apperrors.ErrInvalidInput)
	}
	draft, err := i.importer.Import(ctx, input.Path, input.FromPage, input.ToPage)
	if err != nil {
		return dto.NoteOutput{}, err
	}
	title := draft.Title
	if strings.TrimSpace(input.Title) != "" {
		title = input.Title
	}
	return i.AddNote(ctx, dto.NoteInput{Title: title, Body: draft.Body})
}

func (i *Interactor) ListAssignments() []dto.AssignmentOutput {
	assignments := i.svc.Snapshot().Assignments
	out := make([]dto.AssignmentOutput, 0, len(assignments))
	for _, assignment := range assignments {
		out = append(out, toAssignment(assignment))
	}
	return out
}

func (i *Interactor) AddAssignment(ctx context.Context, input dto.AssignmentInput) (dto.AssignmentOutput, error) {
	assignment, err := i.svc.AddAssignment(ctx, input.Title, input.Subject, input.Due, input.Status)
	if err != nil {
		return dto.AssignmentOutput{}, err
	}
	return toAssignment(assignment), nil
}

func (i *Interactor) EditAssignment(ctx context.Context, id string, input dto.AssignmentInput) (dto.AssignmentOutput, error) {
	assignment, err := i.svc.EditAssignment(ctx, id, input.Title, input.Subject, input.Due, input.Status)
	if err != nil {
		return dto.AssignmentOutput{}, err
	}
	return toAssignment(assignment), nil
}

func (i *Interactor) ToggleAssignment(ctx context.Context, id string) (dto.AssignmentOutput, error) {
	assignment, err := i.svc.ToggleAssignment(ctx, id)
	if err != nil {
		return dto.AssignmentOutput{}, err
	}
	return toAssignment(assignment), nil
}

func (i *Interactor) DeleteAssignment(ctx context.Context, id string) error {
	return i.svc.DeleteAssignment(ctx, id)
}

func (i *Interactor) SortAssignmentsByDue(ctx context.Context) error {
	return i.svc.SortAssignmentsByDue(ctx)
}

func (i *Interactor) Timetable() dto.TimetableOutput {
	table := i.svc.Snapshot().Timetable
	out := dto.TimetableOutput{
		Days:    append([]string(nil), domain.Days...),
		Times:   append([]string(nil), domain.Times...),
		Slots:   make([]dto.SlotOutput, 0, len(table.Slots)),
		Palette: make([]dto.SubjectOutput, 0, len(table.Palette)),
	}
	for key, slot := range table.Slots {
		day, at, _ := strings.Cut(key, "_")
		out.Slots = append(out.Slots, dto.SlotOutput{Key: key, Day: day, Time: at, Title: slot.Title, Color: slot.Color})
	}
	sort.Slice(out.Slots, func(a, b int) bool {
		da, db := dayIndex(out.Slots[a].Day), dayIndex(out.Slots[b].Day)
		if da != db {
			return da < db
		}
		return out.Slots[a].Time < out.Slots[b].Time
	})
	for _, subject := range table.Palette {
		out.Palette = append(out.Palette, dto.SubjectOutput{ID: subject.ID, Title: subject.Title, Color: subject.Color})
	}
	return out
}

func (i *Interactor) AddSubject(ctx context.Context, title, color string) (dto.SubjectOutput, error) {
	subject, err := i.svc.AddSubject(ctx, title, color)
	if err != nil {
		return dto.SubjectOutput{}, err
	}
	return dto.SubjectOutput{ID: subject.ID, Title: subject.Title, Color: subject.Color}, nil
}

func (i *Interactor) AssignSlot(ctx context.Context, day, at, subject string) (dto.SlotOutput, error) {
	key, slot, err := i.svc.AssignSlot(ctx, day, at, subject)
	if err != nil {
		return dto.SlotOutput{}, err
	}
	slotDay, slotTime, _ := strings.Cut(key, "_")
	return dto.SlotOutput{Key: key, Day: slotDay, Time: slotTime, Title: slot.Title, Color: slot.Color}, nil
}

func (i *Interactor) RemoveSlot(ctx context.Context, day, at string) error {
	return i.svc.RemoveSlot(ctx, day, at)
}

func (i *Interactor) ClearTimetable(ctx context.Context) error {
	return i.svc.ClearTimetable(ctx)
}

func (i *Interactor) Preferences() dto.PreferencesOutput {
	return toPreferences(i.svc.Snapshot())
}

func (i *Interactor) ToggleTheme(ctx context.Context) (dto.PreferencesOutput, error) {
	state, err := i.svc.ToggleTheme(ctx)
	if err != nil {
		return dto.PreferencesOutput{}, err
	}
	return toPreferences(state), nil
}

func (i *Interactor) SetTheme(ctx context.Context, theme string) (dto.PreferencesOutput, error) {
	state, err := i.svc.SetTheme(ctx, statedomain.Theme(strings.ToLower(strings.TrimSpace(theme))))
	if err != nil {
		return dto.PreferencesOutput{}, err
	}
	return toPreferences(state), nil
}

func (i *Interactor) SetSection(ctx context.Context, section string) (dto.PreferencesOutput, error) {
	state, err := i.svc.SetSection(ctx, statedomain.Section(strings.ToLower(strings.TrimSpace(section))))
	if err != nil {
		return dto.PreferencesOutput{}, err
	}
	return toPreferences(state), nil
}

func dayIndex(day string) int {
	for idx, known := range domain.Days {
		if known == day {
			return idx
		}
	}
	return len(domain.Days)
}

func toTask(task statedomain.Task) dto.TaskOutput {
	return dto.TaskOutput{
		ID:       task.ID,
		Title:    task.Title,
		Category: task.Category,
		Due:      task.Due,
		Priority: task.Priority,
		Done:     task.Done,
	}
}

func toNote(note statedomain.Note) dto.NoteOutput {
	return dto.NoteOutput{ID: note.ID, Title: note.Title, Body: note.Body, UpdatedAt: time.UnixMilli(note.UpdatedAt)}
}

func toAssignment(a statedomain.Assignment) dto.AssignmentOutput {
	return dto.AssignmentOutput{ID: a.ID, Title: a.Title, Subject: a.Subject, Due: a.Due, Status: a.Status, Done: a.Done}
}

func toPreferences(state statedomain.AppState) dto.PreferencesOutput {
	return dto.PreferencesOutput{Theme: string(state.Theme), ActiveSection: string(state.ActiveSection)}
}
