package dto

import "time"

type FocusInput struct {
	Mode    string
	Minutes int
}

type QuizInput struct {
	DeckName string
	Correct  int
	Total    int
	Score    int
}

type EntryOutput struct {
	ID      string
	Kind    string
	Label   string
	Minutes int
	Correct int
	Total   int
	Score   int
	At      time.Time
}

type SummaryOutput struct {
	Since         time.Time
	FocusSessions int
	FocusMinutes  int
	QuizSessions  int
	AverageScore  int
}
