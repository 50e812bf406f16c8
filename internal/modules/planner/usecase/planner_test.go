package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	planneradapter "studysphere/internal/modules/planner/adapter/out"
	"studysphere/internal/modules/planner/domain"
	"studysphere/internal/modules/planner/dto"
	plannerin "studysphere/internal/modules/planner/port/in"
	"studysphere/internal/modules/planner/service"
	"studysphere/internal/modules/planner/usecase"
	statein "studysphere/internal/modules/state/port/in"
	stateservice "studysphere/internal/modules/state/service"
	stateusecase "studysphere/internal/modules/state/usecase"
	apperrors "studysphere/internal/platform/errors"
)

type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time {
	c.now = c.now.Add(time.Minute)
	return c.now
}

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return "id-" + strconv.Itoa(s.n)
}

type memoryBackend struct{ payload []byte }

func (m *memoryBackend) Read(context.Context) ([]byte, error) {
	if m.payload == nil {
		return nil, apperrors.ErrNotFound
	}
	return m.payload, nil
}

func (m *memoryBackend) Write(_ context.Context, payload []byte) error {
	m.payload = append([]byte(nil), payload...)
	return nil
}

type fakePDF struct{ pages []string }

func (f fakePDF) ReadPage(_ context.Context, _ string, page int) (domain.Page, int, error) {
	if page < 1 || page > len(f.pages) {
		return domain.Page{}, len(f.pages), apperrors.ErrInvalidInput
	}
	return domain.Page{Number: page, Text: f.pages[page-1]}, len(f.pages), nil
}

func newPlanner(t *testing.T) (plannerin.Usecase, statein.Store) {
	t.Helper()
	clk := &stepClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	ids := &seqID{}
	store := stateusecase.NewStore(stateservice.NewStateService(clk, ids), &memoryBackend{}, nil)
	store.Load(context.Background())
	importer := service.NewImportService(
		planneradapter.NewLocalMarkdownReader(),
		fakePDF{pages: []string{"cells", "tissues", "organs"}},
	)
	return usecase.NewInteractor(service.NewPlannerService(store, clk, ids), importer), store
}

func TestTaskLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, store := newPlanner(t)
	seeded := len(uc.ListTasks())

	task, err := uc.AddTask(ctx, dto.TaskInput{Title: "  Revise algebra ", Priority: "high"})
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	if task.Title != "Revise algebra" || task.Priority != "High" || task.Category != domain.DefaultCategory {
		t.Fatalf("unexpected task: %+v", task)
	}
	if got := uc.ListTasks(); len(got) != seeded+1 || got[0].ID != task.ID {
		t.Fatalf("new task should be first, got %+v", got)
	}
	if _, err := uc.AddTask(ctx, dto.TaskInput{Title: "   "}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}

	toggled, err := uc.ToggleTask(ctx, task.ID)
	if err != nil || !toggled.Done {
		t.Fatalf("toggle = %+v, %v", toggled, err)
	}
	if store.Badges().OpenTasks != seeded-1 {
		t.Fatalf("open tasks badge = %d", store.Badges().OpenTasks)
	}
	removed, err := uc.ClearCompletedTasks(ctx)
	if err != nil {
		t.Fatalf("clear completed: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	for _, remaining := range uc.ListTasks() {
		if remaining.Done {
			t.Fatalf("done task survived: %+v", remaining)
		}
	}
	if err := uc.DeleteTask(ctx, "missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSortTasksByDue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _ := newPlanner(t)
	// new tasks default to today, so the due date is cleared through edit
	undated, err := uc.AddTask(ctx, dto.TaskInput{Title: "Undated"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if undated.Due == "" {
		t.Fatal("expected a new task to default to today")
	}
	if _, err := uc.EditTask(ctx, undated.ID, dto.TaskInput{Title: "Undated"}); err != nil {
		t.Fatalf("clear due: %v", err)
	}
	if _, err := uc.AddTask(ctx, dto.TaskInput{Title: "Early", Due: "2020-01-01"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := uc.SortTasksByDue(ctx); err != nil {
		t.Fatalf("sort: %v", err)
	}
	tasks := uc.ListTasks()
	if tasks[0].Title != "Early" {
		t.Fatalf("first = %q", tasks[0].Title)
	}
	if tasks[len(tasks)-1].Title != "Undated" {
		t.Fatalf("last = %q", tasks[len(tasks)-1].Title)
	}
}

func TestNotesNewestFirstAndEdit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _ := newPlanner(t)

	first, err := uc.AddNote(ctx, dto.NoteInput{Title: "Older", Body: "a"})
	if err != nil {
		t.Fatalf("add note: %v", err)
	}
	second, err := uc.AddNote(ctx, dto.NoteInput{Title: "Newer", Body: "b"})
	if err != nil {
		t.Fatalf("add note: %v", err)
	}
	if notes := uc.ListNotes(); notes[0].ID != second.ID {
		t.Fatalf("newest note should lead, got %q", notes[0].Title)
	}
	edited, err := uc.EditNote(ctx, first.ID, dto.NoteInput{Title: "Older, revised", Body: "c"})
	if err != nil {
		t.Fatalf("edit note: %v", err)
	}
	if !edited.UpdatedAt.After(second.UpdatedAt) {
		t.Fatalf("edit should bump updatedAt: %v <= %v", edited.UpdatedAt, second.UpdatedAt)
	}
	if notes := uc.ListNotes(); notes[0].ID != first.ID {
		t.Fatalf("edited note should lead, got %q", notes[0].Title)
	}
	got, err := uc.GetNote(first.ID)
	if err != nil || got.Body != "c" {
		t.Fatalf("get note = %+v, %v", got, err)
	}
}

func TestImportMarkdownNote(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _ := newPlanner(t)
	path := filepath.Join(t.TempDir(), "photosynthesis.md")
	content := "# Light reactions\n\nChlorophyll absorbs light.\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	note, err := uc.ImportNote(ctx, dto.ImportNoteInput{Path: path})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if note.Title != "Light reactions" {
		t.Fatalf("title = %q", note.Title)
	}
	if note.Body != "# Light reactions\n\nChlorophyll absorbs light." {
		t.Fatalf("body = %q", note.Body)
	}

	note, err = uc.ImportNote(ctx, dto.ImportNoteInput{Path: path, Title: "Botany"})
	if err != nil || note.Title != "Botany" {
		t.Fatalf("override title = %q, %v", note.Title, err)
	}
}

func TestImportPDFRange(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _ := newPlanner(t)
	note, err := uc.ImportNote(ctx, dto.ImportNoteInput{Path: "/tmp/biology.pdf", FromPage: 2})
	if err != nil {
		t.Fatalf("import pdf: %v", err)
	}
	if note.Title != "biology (pp. 2-3)" || note.Body != "tissues\n\norgans" {
		t.Fatalf("note = %+v", note)
	}
	if _, err := uc.ImportNote(ctx, dto.ImportNoteInput{Path: "/tmp/biology.pdf", FromPage: 5}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := uc.ImportNote(ctx, dto.ImportNoteInput{Path: "/tmp/slides.pptx"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected unsupported type, got %v", err)
	}
}

func TestAssignmentToggleKeepsStatusConsistent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _ := newPlanner(t)
	a, err := uc.AddAssignment(ctx, dto.AssignmentInput{Title: "Lab report", Subject: "Chemistry", Due: "2026-03-10"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if a.Status != domain.StatusNotStarted || a.Done {
		t.Fatalf("new assignment = %+v", a)
	}
	a, err = uc.ToggleAssignment(ctx, a.ID)
	if err != nil || !a.Done || a.Status != domain.StatusDone {
		t.Fatalf("toggle on = %+v, %v", a, err)
	}
	a, err = uc.ToggleAssignment(ctx, a.ID)
	if err != nil || a.Done || a.Status != domain.StatusInProgress {
		t.Fatalf("toggle off = %+v, %v", a, err)
	}
	a, err = uc.EditAssignment(ctx, a.ID, dto.AssignmentInput{Title: "Lab report", Status: "done"})
	if err != nil || !a.Done {
		t.Fatalf("edit to done = %+v, %v", a, err)
	}
	if _, err := uc.AddAssignment(ctx, dto.AssignmentInput{Title: "x", Status: "Paused"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid status, got %v", err)
	}
}

func TestTimetableSlots(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _ := newPlanner(t)

	subject, err := uc.AddSubject(ctx, "Chemistry", "#22C55E")
	if err != nil {
		t.Fatalf("add subject: %v", err)
	}
	if subject.Color != "#22c55e" {
		t.Fatalf("color = %q", subject.Color)
	}
	slot, err := uc.AssignSlot(ctx, "tue", "14:00", "chemistry")
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if slot.Key != "Tue_14:00" || slot.Title != "Chemistry" {
		t.Fatalf("slot = %+v", slot)
	}
	table := uc.Timetable()
	if len(table.Days) != 5 || len(table.Times) != 5 {
		t.Fatalf("grid = %v x %v", table.Days, table.Times)
	}
	for i := 1; i < len(table.Slots); i++ {
		prev, cur := table.Slots[i-1], table.Slots[i]
		if prev.Day == cur.Day && prev.Time > cur.Time {
			t.Fatalf("slots out of order: %+v before %+v", prev, cur)
		}
	}
	if table.Slots[0].Key != "Mon_10:00" {
		t.Fatalf("first slot = %q", table.Slots[0].Key)
	}

	if err := uc.RemoveSlot(ctx, "Tue", "14:00"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := uc.RemoveSlot(ctx, "Tue", "14:00"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := uc.AssignSlot(ctx, "Sat", "08:00", "Math"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid day, got %v", err)
	}
	if err := uc.ClearTimetable(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := uc.Timetable(); len(got.Slots) != 0 || len(got.Palette) == 0 {
		t.Fatalf("clear should keep palette only: %+v", got)
	}
}

func TestPreferences(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _ := newPlanner(t)
	prefs, err := uc.ToggleTheme(ctx)
	if err != nil || prefs.Theme != "dark" {
		t.Fatalf("toggle theme = %+v, %v", prefs, err)
	}
	prefs, err = uc.SetSection(ctx, "Flashcards")
	if err != nil || prefs.ActiveSection != "flashcards" {
		t.Fatalf("section = %+v, %v", prefs, err)
	}
	if _, err := uc.SetTheme(ctx, "sepia"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid theme, got %v", err)
	}
	if got := uc.Preferences(); got.Theme != "dark" {
		t.Fatalf("preferences = %+v", got)
	}
}
