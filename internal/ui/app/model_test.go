package app

import (
	"context"
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	flashcardsdto "studysphere/internal/modules/flashcards/dto"
	plannerdto "studysphere/internal/modules/planner/dto"
	pomodorodto "studysphere/internal/modules/pomodoro/dto"
	progressdto "studysphere/internal/modules/progress/dto"
	statedto "studysphere/internal/modules/state/dto"
)

type fakeState struct{}

func (fakeState) Badges() statedto.BadgesOutput { return statedto.BadgesOutput{OpenTasks: 2} }

type fakeTimer struct{ timerPort }

func (fakeTimer) Status() pomodorodto.StatusOutput {
	return pomodorodto.StatusOutput{Mode: "focus", Readout: "25:00", Focus: 25, Short: 5, Long: 15, SecondsLeft: 1500}
}

type fakeDecks struct{ flashcardsPort }

func (fakeDecks) ListDecks() []flashcardsdto.DeckOutput { return nil }
func (fakeDecks) Quiz() flashcardsdto.QuizOutput {
	return flashcardsdto.QuizOutput{Phase: "inactive"}
}
func (fakeDecks) SelectedDeck() string { return "" }

type fakePlanner struct {
	plannerPort
	prefs   plannerdto.PreferencesOutput
	added   []plannerdto.TaskInput
	section string
}

func (f *fakePlanner) Preferences() plannerdto.PreferencesOutput { return f.prefs }
func (f *fakePlanner) ListTasks() []plannerdto.TaskOutput        { return nil }
func (f *fakePlanner) ListAssignments() []plannerdto.AssignmentOutput {
	return nil
}
func (f *fakePlanner) ListNotes() []plannerdto.NoteOutput { return nil }
func (f *fakePlanner) Timetable() plannerdto.TimetableOutput {
	return plannerdto.TimetableOutput{}
}
func (f *fakePlanner) AddTask(_ context.Context, in plannerdto.TaskInput) (plannerdto.TaskOutput, error) {
	f.added = append(f.added, in)
	return plannerdto.TaskOutput{Title: in.Title}, nil
}
func (f *fakePlanner) SetSection(_ context.Context, section string) (plannerdto.PreferencesOutput, error) {
	f.section = section
	return plannerdto.PreferencesOutput{ActiveSection: section}, nil
}

type fakeProgress struct{ progressPort }

func (fakeProgress) Goals() []progressdto.GoalOutput   { return nil }
func (fakeProgress) Habits() []progressdto.HabitOutput { return nil }

func newTestModel(section string) (Model, *fakePlanner) {
	planner := &fakePlanner{prefs: plannerdto.PreferencesOutput{Theme: "dark", ActiveSection: section}}
	m := NewModel(Ports{
		State:      fakeState{},
		Timer:      fakeTimer{},
		Flashcards: fakeDecks{},
		Planner:    planner,
		Progress:   fakeProgress{},
	}, "/tmp/sphere")
	return m, planner
}

func TestSplitOptions(t *testing.T) {
	t.Parallel()
	text, opts := splitOptions("Read chapter 3 due=2026-10-20 priority=High x+y=z")
	if text != "Read chapter 3 x+y=z" {
		t.Fatalf("text = %q", text)
	}
	want := map[string]string{"due": "2026-10-20", "priority": "High"}
	if !reflect.DeepEqual(opts, want) {
		t.Fatalf("opts = %v, want %v", opts, want)
	}
}

func TestNewModelOpensStoredSection(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel("assignments")
	if m.activeTab != tabPlanner {
		t.Fatalf("active tab = %d, want planner", m.activeTab)
	}
	if m.plannerView.Pane() != "assignments" {
		t.Fatalf("planner pane = %q", m.plannerView.Pane())
	}
	if m.styles.Name != "dark" {
		t.Fatalf("theme = %q", m.styles.Name)
	}
}

func TestPaletteAddsTaskWithOptions(t *testing.T) {
	t.Parallel()
	m, planner := newTestModel("tasks")
	_, cmd := m.executePalette("task:add Lab report due=2026-10-21 priority=High")
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(statusMsg)
	if !ok || msg.err != nil || msg.text != "task added: Lab report" {
		t.Fatalf("status = %#v", msg)
	}
	want := []plannerdto.TaskInput{{Title: "Lab report", Due: "2026-10-21", Priority: "High"}}
	if !reflect.DeepEqual(planner.added, want) {
		t.Fatalf("added = %#v", planner.added)
	}
}

func TestPaletteUsageAndUnknown(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel("tasks")
	next, cmd := m.executePalette("task:add")
	if cmd != nil || next.(Model).status == "ready" {
		t.Fatalf("expected usage status, got %q", next.(Model).status)
	}
	next, _ = m.executePalette("bogus:cmd")
	if got := next.(Model).status; got != "unknown command: bogus:cmd" {
		t.Fatalf("status = %q", got)
	}
}

func TestSwitchTabPersistsSection(t *testing.T) {
	t.Parallel()
	m, planner := newTestModel("tasks")
	next, cmd := m.switchTab(tabNotes)
	if next.(Model).activeTab != tabNotes {
		t.Fatal("tab did not change")
	}
	runBatch(cmd)
	if planner.section != "notes" {
		t.Fatalf("section = %q, want notes", planner.section)
	}
}

// runBatch executes a command and any commands it batches.
func runBatch(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	if batch, ok := cmd().(tea.BatchMsg); ok {
		for _, c := range batch {
			runBatch(c)
		}
	}
}
