package domain

// Badges are the sidebar counters refreshed after every save.
type Badges struct {
	OpenTasks       int
	Notes           int
	OpenAssignments int
	Decks           int
	ActiveGoals     int
	Habits          int
}

func (s AppState) Badges() Badges {
	badges := Badges{
		Notes:  len(s.Notes),
		Decks:  len(s.Flashcards.Decks),
		Habits: len(s.Habits),
	}
	for _, task := range s.Tasks {
		if !task.Done {
			badges.OpenTasks++
		}
	}
	for _, assignment := range s.Assignments {
		if !assignment.Done {
			badges.OpenAssignments++
		}
	}
	for _, goal := range s.Goals {
		if !goal.Done {
			badges.ActiveGoals++
		}
	}
	return badges
}
