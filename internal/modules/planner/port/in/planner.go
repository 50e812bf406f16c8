package in

import (
	"context"

	"studysphere/internal/modules/planner/dto"
)

type TaskUsecase interface {
	ListTasks() []dto.TaskOutput
	AddTask(ctx context.Context, input dto.TaskInput) (dto.TaskOutput, error)
	EditTask(ctx context.Context, id string, input dto.TaskInput) (dto.TaskOutput, error)
	ToggleTask(ctx context.Context, id string) (dto.TaskOutput, error)
	DeleteTask(ctx context.Context, id string) error
	SortTasksByDue(ctx context.Context) error
	ClearCompletedTasks(ctx context.Context) (int, error)
}

type NoteUsecase interface {
	ListNotes() []dto.NoteOutput
	GetNote(id string) (dto.NoteOutput, error)
	AddNote(ctx context.Context, input dto.NoteInput) (dto.NoteOutput, error)
	EditNote(ctx context.Context, id string, input dto.NoteInput) (dto.NoteOutput, error)
	DeleteNote(ctx context.Context, id string) error
	ImportNote(ctx context.Context, input dto.ImportNoteInput) (dto.NoteOutput, error)
}

type AssignmentUsecase interface {
	ListAssignments() []dto.AssignmentOutput
	AddAssignment(ctx context.Context, input dto.AssignmentInput) (dto.AssignmentOutput, error)
	EditAssignment(ctx context.Context, id string, input dto.AssignmentInput) (dto.AssignmentOutput, error)
	ToggleAssignment(ctx context.Context, id string) (dto.AssignmentOutput, error)
	DeleteAssignment(ctx context.Context, id string) error
	SortAssignmentsByDue(ctx context.Context) error
}

type TimetableUsecase interface {
	Timetable() dto.TimetableOutput
	AddSubject(ctx context.Context, title, color string) (dto.SubjectOutput, error)
	AssignSlot(ctx context.Context, day, at, subject string) (dto.SlotOutput, error)
	RemoveSlot(ctx context.Context, day, at string) error
	ClearTimetable(ctx context.Context) error
}

type PreferencesUsecase interface {
	Preferences() dto.PreferencesOutput
	ToggleTheme(ctx context.Context) (dto.PreferencesOutput, error)
	SetTheme(ctx context.Context, theme string) (dto.PreferencesOutput, error)
	SetSection(ctx context.Context, section string) (dto.PreferencesOutput, error)
}

type Usecase interface {
	TaskUsecase
	NoteUsecase
	AssignmentUsecase
	TimetableUsecase
	PreferencesUsecase
}
