package domain

import (
	"encoding/json"
	"fmt"
)

// Merge overlays a persisted document onto base. The returned notes list
// fields that were present but ignored; the error is set only when the
// document is not a JSON object at all.
func Merge(base AppState, raw []byte) (AppState, []string, error) {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return base, nil, fmt.Errorf("decode state document: %w", err)
	}
	if fields == nil {
		return base, nil, fmt.Errorf("decode state document: null document")
	}

	out := base
	var skipped []string

	if value, ok := take(fields, "theme"); ok {
		var theme Theme
		if err := json.Unmarshal(value, &theme); err != nil {
			skipped = append(skipped, fmt.Sprintf("theme: %v", err))
		} else {
			out.Theme = theme
		}
	}
	if value, ok := take(fields, "activeSection"); ok {
		var section Section
		if err := json.Unmarshal(value, &section); err != nil {
			skipped = append(skipped, fmt.Sprintf("activeSection: %v", err))
		} else {
			out.ActiveSection = section
		}
	}

	overlaySlice(fields, "tasks", &out.Tasks, &skipped)
	overlaySlice(fields, "notes", &out.Notes, &skipped)
	overlaySlice(fields, "assignments", &out.Assignments, &skipped)
	overlaySlice(fields, "goals", &out.Goals, &skipped)
	overlaySlice(fields, "habits", &out.Habits, &skipped)

	if value, ok := take(fields, "flashcards"); ok {
		if hasField(value, "decks") {
			var cards Flashcards
			if err := json.Unmarshal(value, &cards); err != nil {
				skipped = append(skipped, fmt.Sprintf("flashcards: %v", err))
			} else {
				out.Flashcards = cards
			}
		} else {
			skipped = append(skipped, "flashcards: missing decks")
		}
	}

	if value, ok := take(fields, "timetable"); ok {
		if hasField(value, "slots") {
			var table Timetable
			if err := json.Unmarshal(value, &table); err != nil {
				skipped = append(skipped, fmt.Sprintf("timetable: %v", err))
			} else {
				out.Timetable = table
			}
		} else {
			skipped = append(skipped, "timetable: missing slots")
		}
	}

	if value, ok := take(fields, "pomodoro"); ok {
		if hasField(value, "secondsLeft") {
			timer := DefaultPomodoro()
			if err := json.Unmarshal(value, &timer); err != nil {
				skipped = append(skipped, fmt.Sprintf("pomodoro: %v", err))
			} else {
				out.Pomodoro = timer
			}
		} else {
			skipped = append(skipped, "pomodoro: missing secondsLeft")
		}
	}

	if len(fields) > 0 {
		out.Extra = fields
	}
	out.Normalize()
	return out, skipped, nil
}

func overlaySlice[T any](fields map[string]json.RawMessage, key string, dst *[]T, skipped *[]string) {
	value, ok := take(fields, key)
	if !ok {
		return
	}
	var decoded []T
	if err := json.Unmarshal(value, &decoded); err != nil {
		*skipped = append(*skipped, fmt.Sprintf("%s: %v", key, err))
		return
	}
	*dst = decoded
}

// take removes key from fields and reports whether it held a non-null value.
func take(fields map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	value, ok := fields[key]
	delete(fields, key)
	if !ok || isNull(value) {
		return nil, false
	}
	return value, true
}

func hasField(object json.RawMessage, key string) bool {
	inner := map[string]json.RawMessage{}
	if err := json.Unmarshal(object, &inner); err != nil {
		return false
	}
	value, ok := inner[key]
	return ok && !isNull(value)
}

func isNull(value json.RawMessage) bool {
	return string(value) == "null"
}
