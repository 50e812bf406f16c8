package dto

type BadgesOutput struct {
	OpenTasks       int
	Notes           int
	OpenAssignments int
	Decks           int
	ActiveGoals     int
	Habits          int
}

type SummaryOutput struct {
	Theme         string
	ActiveSection string
	Badges        BadgesOutput
	Extra         []string
}
