package domain

import "encoding/json"

// Clone returns a deep copy; snapshots handed to hosts never alias the store.
func (s AppState) Clone() AppState {
	out := s
	out.Tasks = cloneSlice(s.Tasks)
	out.Notes = cloneSlice(s.Notes)
	out.Assignments = cloneSlice(s.Assignments)
	out.Goals = cloneSlice(s.Goals)

	if s.Flashcards.Decks != nil {
		out.Flashcards.Decks = make([]Deck, len(s.Flashcards.Decks))
		for i, deck := range s.Flashcards.Decks {
			deck.Cards = cloneSlice(deck.Cards)
			out.Flashcards.Decks[i] = deck
		}
	}

	if s.Timetable.Slots != nil {
		out.Timetable.Slots = make(map[string]Slot, len(s.Timetable.Slots))
		for key, slot := range s.Timetable.Slots {
			out.Timetable.Slots[key] = slot
		}
	}
	out.Timetable.Palette = cloneSlice(s.Timetable.Palette)

	if s.Habits != nil {
		out.Habits = make([]Habit, len(s.Habits))
		for i, habit := range s.Habits {
			if habit.Days != nil {
				days := make(map[string]bool, len(habit.Days))
				for day, done := range habit.Days {
					days[day] = done
				}
				habit.Days = days
			}
			out.Habits[i] = habit
		}
	}

	out.Pomodoro = s.Pomodoro.Clone()

	if s.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(s.Extra))
		for key, value := range s.Extra {
			out.Extra[key] = append(json.RawMessage(nil), value...)
		}
	}
	return out
}

func (p PomodoroState) Clone() PomodoroState {
	out := p
	if p.LastTickAt != nil {
		at := *p.LastTickAt
		out.LastTickAt = &at
	}
	if p.Custom != nil {
		custom := *p.Custom
		out.Custom = &custom
	}
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
