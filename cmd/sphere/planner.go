package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"studysphere/internal/bootstrap"
	plannerdto "studysphere/internal/modules/planner/dto"
)

func newTaskCmd(dataDir *string) *cobra.Command {
	task := &cobra.Command{Use: "task", Short: "To-do list"}

	var all bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List open tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(_ context.Context, app *bootstrap.App) error {
				tasks := app.PlannerCLI.OpenTasks()
				if all {
					tasks = app.PlannerCLI.ListTasks()
				}
				if len(tasks) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no tasks")
					return nil
				}
				for _, t := range tasks {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\t%s\t%s\t%s\n", doneMark(t.Done), t.ID, t.Title, t.Category, t.Priority, orDash(t.Due))
				}
				return nil
			})
		},
	}
	list.Flags().BoolVar(&all, "all", false, "include done tasks")
	task.AddCommand(list)

	var in plannerdto.TaskInput
	add := &cobra.Command{
		Use:   "add <title> [--category c] [--due YYYY-MM-DD] [--priority Low|Medium|High]",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Title = strings.Join(args, " ")
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.PlannerCLI.AddTask(ctx, in)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "task added: %s (%s)\n", out.Title, out.ID)
				return nil
			})
		},
	}
	taskFlags(add, &in)
	task.AddCommand(add)

	var patch plannerdto.TaskInput
	edit := &cobra.Command{
		Use:   "edit <id> [--title t] [--category c] [--due d] [--priority p]",
		Short: "Edit a task; omitted flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				var current *plannerdto.TaskOutput
				for _, t := range app.PlannerCLI.ListTasks() {
					if t.ID == args[0] {
						current = &t
						break
					}
				}
				if current == nil {
					return fmt.Errorf("task %q not found", args[0])
				}
				flags := cmd.Flags()
				merged := plannerdto.TaskInput{
					Title:    keep(flags.Changed("title"), patch.Title, current.Title),
					Category: keep(flags.Changed("category"), patch.Category, current.Category),
					Due:      keep(flags.Changed("due"), patch.Due, current.Due),
					Priority: keep(flags.Changed("priority"), patch.Priority, current.Priority),
				}
				out, err := app.PlannerCLI.EditTask(ctx, args[0], merged)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "task updated: %s\n", out.Title)
				return nil
			})
		},
	}
	edit.Flags().StringVar(&patch.Title, "title", "", "task title")
	taskFlags(edit, &patch)
	task.AddCommand(edit)

	task.AddCommand(idCommand(dataDir, "toggle", "Mark a task done or open again", func(ctx context.Context, app *bootstrap.App, id string, w io.Writer) error {
		out, err := app.PlannerCLI.ToggleTask(ctx, id)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "%s %s\n", doneMark(out.Done), out.Title)
		return nil
	}))
	task.AddCommand(idCommand(dataDir, "delete", "Delete a task", func(ctx context.Context, app *bootstrap.App, id string, w io.Writer) error {
		if err := app.PlannerCLI.DeleteTask(ctx, id); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "task deleted: %s\n", id)
		return nil
	}))
	task.AddCommand(&cobra.Command{
		Use:   "sort",
		Short: "Order tasks by due date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				return app.PlannerCLI.SortTasksByDue(ctx)
			})
		},
	})
	task.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove done tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				n, err := app.PlannerCLI.ClearCompletedTasks(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %d done tasks\n", n)
				return nil
			})
		},
	})
	return task
}

func taskFlags(cmd *cobra.Command, in *plannerdto.TaskInput) {
	cmd.Flags().StringVar(&in.Category, "category", "", "category (default General)")
	cmd.Flags().StringVar(&in.Due, "due", "", "due date YYYY-MM-DD")
	cmd.Flags().StringVar(&in.Priority, "priority", "", "Low, Medium or High (default Medium)")
}

func newNoteCmd(dataDir *string) *cobra.Command {
	note := &cobra.Command{Use: "note", Short: "Markdown notes"}

	note.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List notes, most recently edited first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(_ context.Context, app *bootstrap.App) error {
				notes := app.PlannerCLI.ListNotes()
				if len(notes) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no notes")
					return nil
				}
				for _, n := range notes {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", n.ID, n.Title, n.UpdatedAt.Local().Format("2006-01-02 15:04"))
				}
				return nil
			})
		},
	})

	note.AddCommand(idCommand(dataDir, "show", "Print a note", func(_ context.Context, app *bootstrap.App, id string, w io.Writer) error {
		n, err := app.PlannerCLI.GetNote(id)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "# %s\n\n%s\n", n.Title, n.Body)
		return nil
	}))

	var body string
	add := &cobra.Command{
		Use:   "add <title> [--body text]",
		Short: "Add a note",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.PlannerCLI.AddNote(ctx, plannerdto.NoteInput{Title: strings.Join(args, " "), Body: body})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "note added: %s (%s)\n", out.Title, out.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&body, "body", "", "markdown body")
	note.AddCommand(add)

	var editTitle, editBody string
	edit := &cobra.Command{
		Use:   "edit <id> [--title t] [--body text]",
		Short: "Edit a note; omitted flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				current, err := app.PlannerCLI.GetNote(args[0])
				if err != nil {
					return err
				}
				flags := cmd.Flags()
				out, err := app.PlannerCLI.EditNote(ctx, args[0], plannerdto.NoteInput{
					Title: keep(flags.Changed("title"), editTitle, current.Title),
					Body:  keep(flags.Changed("body"), editBody, current.Body),
				})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "note updated: %s\n", out.Title)
				return nil
			})
		},
	}
	edit.Flags().StringVar(&editTitle, "title", "", "note title")
	edit.Flags().StringVar(&editBody, "body", "", "markdown body")
	note.AddCommand(edit)

	note.AddCommand(idCommand(dataDir, "delete", "Delete a note", func(ctx context.Context, app *bootstrap.App, id string, w io.Writer) error {
		if err := app.PlannerCLI.DeleteNote(ctx, id); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "note deleted: %s\n", id)
		return nil
	}))

	var importTitle string
	var fromPage, toPage int
	importCmd := &cobra.Command{
		Use:   "import <path.md|path.pdf> [--title t] [--from n] [--to n]",
		Short: "Create a note from a markdown file or PDF pages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.PlannerCLI.ImportNote(ctx, args[0], importTitle, fromPage, toPage)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "note imported: %s (%s)\n", out.Title, out.ID)
				return nil
			})
		},
	}
	importCmd.Flags().StringVar(&importTitle, "title", "", "note title (default: heading or file name)")
	importCmd.Flags().IntVar(&fromPage, "from", 0, "first PDF page")
	importCmd.Flags().IntVar(&toPage, "to", 0, "last PDF page")
	note.AddCommand(importCmd)
	return note
}

func newAssignmentCmd(dataDir *string) *cobra.Command {
	assignment := &cobra.Command{Use: "assignment", Short: "Assignment tracker"}

	assignment.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List assignments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(_ context.Context, app *bootstrap.App) error {
				items := app.PlannerCLI.ListAssignments()
				if len(items) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no assignments")
					return nil
				}
				for _, a := range items {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\t%s\t%s\t%s\n", doneMark(a.Done), a.ID, a.Title, orDash(a.Subject), a.Status, orDash(a.Due))
				}
				return nil
			})
		},
	})

	var in plannerdto.AssignmentInput
	add := &cobra.Command{
		Use:   "add <title> [--subject s] [--due YYYY-MM-DD] [--status s]",
		Short: "Add an assignment",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Title = strings.Join(args, " ")
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.PlannerCLI.AddAssignment(ctx, in)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "assignment added: %s (%s)\n", out.Title, out.ID)
				return nil
			})
		},
	}
	assignmentFlags(add, &in)
	assignment.AddCommand(add)

	var patch plannerdto.AssignmentInput
	edit := &cobra.Command{
		Use:   "edit <id> [--title t] [--subject s] [--due d] [--status s]",
		Short: "Edit an assignment; omitted flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				var current *plannerdto.AssignmentOutput
				for _, a := range app.PlannerCLI.ListAssignments() {
					if a.ID == args[0] {
						current = &a
						break
					}
				}
				if current == nil {
					return fmt.Errorf("assignment %q not found", args[0])
				}
				flags := cmd.Flags()
				out, err := app.PlannerCLI.EditAssignment(ctx, args[0], plannerdto.AssignmentInput{
					Title:   keep(flags.Changed("title"), patch.Title, current.Title),
					Subject: keep(flags.Changed("subject"), patch.Subject, current.Subject),
					Due:     keep(flags.Changed("due"), patch.Due, current.Due),
					Status:  keep(flags.Changed("status"), patch.Status, current.Status),
				})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "assignment updated: %s [%s]\n", out.Title, out.Status)
				return nil
			})
		},
	}
	edit.Flags().StringVar(&patch.Title, "title", "", "assignment title")
	assignmentFlags(edit, &patch)
	assignment.AddCommand(edit)

	assignment.AddCommand(idCommand(dataDir, "toggle", "Mark an assignment done or reopen it", func(ctx context.Context, app *bootstrap.App, id string, w io.Writer) error {
		out, err := app.PlannerCLI.ToggleAssignment(ctx, id)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "%s %s [%s]\n", doneMark(out.Done), out.Title, out.Status)
		return nil
	}))
	assignment.AddCommand(idCommand(dataDir, "delete", "Delete an assignment", func(ctx context.Context, app *bootstrap.App, id string, w io.Writer) error {
		if err := app.PlannerCLI.DeleteAssignment(ctx, id); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "assignment deleted: %s\n", id)
		return nil
	}))
	assignment.AddCommand(&cobra.Command{
		Use:   "sort",
		Short: "Order assignments by due date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				return app.PlannerCLI.SortAssignmentsByDue(ctx)
			})
		},
	})
	return assignment
}

func assignmentFlags(cmd *cobra.Command, in *plannerdto.AssignmentInput) {
	cmd.Flags().StringVar(&in.Subject, "subject", "", "subject")
	cmd.Flags().StringVar(&in.Due, "due", "", "due date YYYY-MM-DD")
	cmd.Flags().StringVar(&in.Status, "status", "", "Not Started, In Progress or Done")
}

func newTimetableCmd(dataDir *string) *cobra.Command {
	timetable := &cobra.Command{
		Use:   "timetable",
		Short: "Weekly timetable",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(_ context.Context, app *bootstrap.App) error {
				printTimetable(cmd.OutOrStdout(), app.PlannerCLI.Timetable())
				return nil
			})
		},
	}

	var color string
	subject := &cobra.Command{
		Use:   "subject <title> [--color #rrggbb]",
		Short: "Add a subject to the palette",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.PlannerCLI.AddSubject(ctx, strings.Join(args, " "), color)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "subject added: %s %s\n", out.Title, out.Color)
				return nil
			})
		},
	}
	subject.Flags().StringVar(&color, "color", "", "hex color")
	timetable.AddCommand(subject)

	timetable.AddCommand(&cobra.Command{
		Use:   "set <day> <time> <subject>",
		Short: "Put a subject in a slot",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.PlannerCLI.AssignSlot(ctx, args[0], args[1], strings.Join(args[2:], " "))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", out.Day, out.Time, out.Title)
				return nil
			})
		},
	})
	timetable.AddCommand(&cobra.Command{
		Use:   "unset <day> <time>",
		Short: "Empty a slot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				return app.PlannerCLI.RemoveSlot(ctx, args[0], args[1])
			})
		},
	})
	timetable.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Empty every slot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				return app.PlannerCLI.ClearTimetable(ctx)
			})
		},
	})
	return timetable
}

func printTimetable(w io.Writer, tt plannerdto.TimetableOutput) {
	slots := make(map[string]string, len(tt.Slots))
	for _, s := range tt.Slots {
		slots[s.Day+" "+s.Time] = s.Title
	}
	_, _ = fmt.Fprintf(w, "%-6s", "")
	for _, day := range tt.Days {
		_, _ = fmt.Fprintf(w, "%-14s", day)
	}
	_, _ = fmt.Fprintln(w)
	for _, at := range tt.Times {
		_, _ = fmt.Fprintf(w, "%-6s", at)
		for _, day := range tt.Days {
			_, _ = fmt.Fprintf(w, "%-14s", clip(orDash(slots[day+" "+at]), 13))
		}
		_, _ = fmt.Fprintln(w)
	}
	if len(tt.Palette) > 0 {
		names := make([]string, len(tt.Palette))
		for i, s := range tt.Palette {
			names[i] = s.Title + " " + s.Color
		}
		_, _ = fmt.Fprintf(w, "subjects: %s\n", strings.Join(names, ", "))
	}
}

// idCommand builds a subcommand that takes a single id argument.
func idCommand(dataDir *string, name, short string, fn func(context.Context, *bootstrap.App, string, io.Writer) error) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				return fn(ctx, app, args[0], cmd.OutOrStdout())
			})
		},
	}
}

func keep(changed bool, next, current string) string {
	if changed {
		return next
	}
	return current
}

func doneMark(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
