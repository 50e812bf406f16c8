package in

import (
	"context"

	"studysphere/internal/modules/planner/dto"
	plannerin "studysphere/internal/modules/planner/port/in"
)

// CLIHandler exposes the planner to cobra commands and the TUI. Methods map
// one to one onto the usecase.
type CLIHandler struct {
	plannerin.Usecase
}

func NewCLIHandler(usecase plannerin.Usecase) CLIHandler {
	return CLIHandler{Usecase: usecase}
}

// OpenTasks returns tasks that are not done.
func (h CLIHandler) OpenTasks() []dto.TaskOutput {
	all := h.ListTasks()
	open := make([]dto.TaskOutput, 0, len(all))
	for _, task := range all {
		if !task.Done {
			open = append(open, task)
		}
	}
	return open
}

func (h CLIHandler) ImportNote(ctx context.Context, path, title string, fromPage, toPage int) (dto.NoteOutput, error) {
	return h.Usecase.ImportNote(ctx, dto.ImportNoteInput{Path: path, Title: title, FromPage: fromPage, ToPage: toPage})
}
