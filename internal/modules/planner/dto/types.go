package dto

import "time"

type TaskInput struct {
	Title    string
	Category string
	Due      string
	Priority string
}

type TaskOutput struct {
	ID       string
	Title    string
	Category string
	Due      string
	Priority string
	Done     bool
}

type NoteInput struct {
	Title string
	Body  string
}

type NoteOutput struct {
	ID        string
	Title     string
	Body      string
	UpdatedAt time.Time
}

// ImportNoteInput reads a markdown file, or pages FromPage..ToPage of a PDF.
// Zero page bounds mean the first and the last page.
type ImportNoteInput struct {
	Path     string
	Title    string
	FromPage int
	ToPage   int
}

type AssignmentInput struct {
	Title   string
	Subject string
	Due     string
	Status  string
}

type AssignmentOutput struct {
	ID      string
	Title   string
	Subject string
	Due     string
	Status  string
	Done    bool
}

type SubjectOutput struct {
	ID    string
	Title string
	Color string
}

type SlotOutput struct {
	Key   string
	Day   string
	Time  string
	Title string
	Color string
}

type TimetableOutput struct {
	Days    []string
	Times   []string
	Slots   []SlotOutput
	Palette []SubjectOutput
}

type PreferencesOutput struct {
	Theme         string
	ActiveSection string
}
