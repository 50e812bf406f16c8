package domain

import (
	"time"
)

const DefaultSubjectColor = "#4f46e5"

// Default builds the seeded state a first run starts from. Due dates are
// relative to now.
func Default(now time.Time, newID func() string) AppState {
	day := func(offset int) string {
		return now.AddDate(0, 0, offset).Format("2006-01-02")
	}
	ms := now.UnixMilli()

	return AppState{
		Theme:         ThemeLight,
		ActiveSection: SectionTasks,
		Tasks: []Task{
			{ID: newID(), Title: "Read Chapter 3 (Biology)", Category: "School", Due: day(1), Priority: "Medium"},
			{ID: newID(), Title: "Solve 15 calculus problems", Category: "Homework", Due: day(2), Priority: "High"},
			{ID: newID(), Title: "Prepare flashcards for French vocab", Category: "Study", Due: day(0), Priority: "Low", Done: true},
		},
		Notes: []Note{
			{ID: newID(), Title: "History: Causes of WWI", Body: "Alliance system, militarism, imperialism, nationalism. Trigger: assassination in Sarajevo.", UpdatedAt: ms},
			{ID: newID(), Title: "Chemistry: pH shortcuts", Body: "pH = -log[H+]. Each pH unit is a 10x change in acidity.", UpdatedAt: ms - (8 * time.Hour).Milliseconds()},
		},
		Assignments: []Assignment{
			{ID: newID(), Title: "English Essay Draft", Subject: "English", Due: day(3), Status: "In Progress"},
			{ID: newID(), Title: "Physics Lab Report", Subject: "Physics", Due: day(6), Status: "Not Started"},
			{ID: newID(), Title: "Math Quiz Revision", Subject: "Math", Due: day(1), Status: "Done", Done: true},
		},
		Flashcards: Flashcards{Decks: []Deck{
			{
				ID:   newID(),
				Name: "Biology: Cell Basics",
				Cards: []Card{
					{ID: newID(), Front: "What is the powerhouse of the cell?", Back: "Mitochondria"},
					{ID: newID(), Front: "Cell membrane function?", Back: "Controls what enters and leaves the cell"},
					{ID: newID(), Front: "Where is DNA stored (eukaryotes)?", Back: "Nucleus"},
				},
			},
			{
				ID:   newID(),
				Name: "French: Common Verbs",
				Cards: []Card{
					{ID: newID(), Front: "Être", Back: "To be"},
					{ID: newID(), Front: "Avoir", Back: "To have"},
					{ID: newID(), Front: "Aller", Back: "To go"},
				},
			},
		}},
		Timetable: Timetable{
			Slots: map[string]Slot{
				"Mon_10:00": {Title: "Math", Color: "#4f46e5"},
				"Wed_12:00": {Title: "Biology", Color: "#10b981"},
				"Fri_08:00": {Title: "French", Color: "#f59e0b"},
			},
			Palette: []Subject{
				{ID: newID(), Title: "Math", Color: "#4f46e5"},
				{ID: newID(), Title: "Biology", Color: "#10b981"},
				{ID: newID(), Title: "Physics", Color: "#0ea5e9"},
				{ID: newID(), Title: "History", Color: "#ef4444"},
				{ID: newID(), Title: "French", Color: "#f59e0b"},
			},
		},
		Pomodoro: DefaultPomodoro(),
		Goals:    []Goal{},
		Habits:   []Habit{},
	}
}
