package domain

import (
	"encoding/json"
	"fmt"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

type Section string

const (
	SectionTasks       Section = "tasks"
	SectionNotes       Section = "notes"
	SectionTimetable   Section = "timetable"
	SectionAssignments Section = "assignments"
	SectionFlashcards  Section = "flashcards"
	SectionStudyRoom   Section = "studyroom"
)

var Sections = []Section{SectionTasks, SectionNotes, SectionTimetable, SectionAssignments, SectionFlashcards, SectionStudyRoom}

func (s Section) Validate() error {
	for _, known := range Sections {
		if s == known {
			return nil
		}
	}
	return fmt.Errorf("unknown section %q", string(s))
}

// AppState is the single persisted aggregate. Extra carries top-level keys
// written by newer versions so they survive a load/save cycle.
type AppState struct {
	Theme         Theme                      `json:"theme"`
	ActiveSection Section                    `json:"activeSection"`
	Tasks         []Task                     `json:"tasks"`
	Notes         []Note                     `json:"notes"`
	Assignments   []Assignment               `json:"assignments"`
	Flashcards    Flashcards                 `json:"flashcards"`
	Timetable     Timetable                  `json:"timetable"`
	Pomodoro      PomodoroState              `json:"pomodoro"`
	Goals         []Goal                     `json:"goals"`
	Habits        []Habit                    `json:"habits"`
	Extra         map[string]json.RawMessage `json:"-"`
}

type Task struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Due      string `json:"due"`
	Priority string `json:"priority"`
	Done     bool   `json:"done"`
}

type Note struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	UpdatedAt int64  `json:"updatedAt"`
}

type Assignment struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Subject string `json:"subject"`
	Due     string `json:"due"`
	Status  string `json:"status"`
	Done    bool   `json:"done"`
}

type Flashcards struct {
	Decks []Deck `json:"decks"`
}

type Deck struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Cards []Card `json:"cards"`
}

type Card struct {
	ID    string `json:"id"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

type Timetable struct {
	Slots   map[string]Slot `json:"slots"`
	Palette []Subject       `json:"palette"`
}

type Slot struct {
	Title string `json:"title"`
	Color string `json:"color"`
}

type Subject struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Color string `json:"color"`
}

type Goal struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Details   string `json:"details"`
	Meta      string `json:"meta"`
	Progress  int    `json:"progress"`
	Done      bool   `json:"done"`
	CreatedAt int64  `json:"createdAt"`
}

type Habit struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Details   string          `json:"details"`
	Meta      string          `json:"meta"`
	Days      map[string]bool `json:"days"`
	CreatedAt int64           `json:"createdAt"`
}

// FindDeck returns the index of the deck with id, or -1.
func (s *AppState) FindDeck(id string) int {
	for i, deck := range s.Flashcards.Decks {
		if deck.ID == id {
			return i
		}
	}
	return -1
}

func (s AppState) MarshalJSON() ([]byte, error) {
	type known AppState
	base, err := json.Marshal(known(s))
	if err != nil {
		return nil, err
	}
	if len(s.Extra) == 0 {
		return base, nil
	}
	merged := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for key, value := range s.Extra {
		if _, ok := merged[key]; !ok {
			merged[key] = value
		}
	}
	return json.Marshal(merged)
}

// Normalize replaces nil collections with empty ones and repairs values a
// hand-edited document may carry.
func (s *AppState) Normalize() {
	if !s.Theme.Valid() {
		s.Theme = ThemeLight
	}
	if s.ActiveSection.Validate() != nil {
		s.ActiveSection = SectionTasks
	}
	if s.Tasks == nil {
		s.Tasks = []Task{}
	}
	if s.Notes == nil {
		s.Notes = []Note{}
	}
	if s.Assignments == nil {
		s.Assignments = []Assignment{}
	}
	if s.Flashcards.Decks == nil {
		s.Flashcards.Decks = []Deck{}
	}
	for i := range s.Flashcards.Decks {
		if s.Flashcards.Decks[i].Cards == nil {
			s.Flashcards.Decks[i].Cards = []Card{}
		}
	}
	if s.Timetable.Slots == nil {
		s.Timetable.Slots = map[string]Slot{}
	}
	if s.Timetable.Palette == nil {
		s.Timetable.Palette = []Subject{}
	}
	if s.Goals == nil {
		s.Goals = []Goal{}
	}
	if s.Habits == nil {
		s.Habits = []Habit{}
	}
	for i := range s.Habits {
		if s.Habits[i].Days == nil {
			s.Habits[i].Days = map[string]bool{}
		}
	}
	if s.Pomodoro.SecondsLeft < 0 {
		s.Pomodoro.SecondsLeft = 0
	}
}
