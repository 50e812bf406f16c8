package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	plannerdto "studysphere/internal/modules/planner/dto"
	"studysphere/internal/ui/components"
	"studysphere/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	ListTasks() []plannerdto.TaskOutput
	ToggleTask(ctx context.Context, id string) (plannerdto.TaskOutput, error)
	DeleteTask(ctx context.Context, id string) error
	SortTasksByDue(ctx context.Context) error
	ClearCompletedTasks(ctx context.Context) (int, error)
	ListAssignments() []plannerdto.AssignmentOutput
	ToggleAssignment(ctx context.Context, id string) (plannerdto.AssignmentOutput, error)
	DeleteAssignment(ctx context.Context, id string) error
	SortAssignmentsByDue(ctx context.Context) error
	Timetable() plannerdto.TimetableOutput
}

// ─── messages ────────────────────────────────────────────────────────────────

// ActionDoneMsg reports a finished planner mutation.
type ActionDoneMsg struct {
	Status string
	Err    error
}

// ─── list items ──────────────────────────────────────────────────────────────

type taskItem struct{ task plannerdto.TaskOutput }

func (i taskItem) Title() string { return checkbox(i.task.Done) + i.task.Title }
func (i taskItem) Description() string {
	return strings.Join(nonEmpty(i.task.Category, i.task.Priority, due(i.task.Due)), " · ")
}
func (i taskItem) FilterValue() string { return i.task.Title + " " + i.task.Category }

type assignmentItem struct{ assignment plannerdto.AssignmentOutput }

func (i assignmentItem) Title() string {
	return checkbox(i.assignment.Done) + i.assignment.Title
}
func (i assignmentItem) Description() string {
	return strings.Join(nonEmpty(i.assignment.Subject, i.assignment.Status, due(i.assignment.Due)), " · ")
}
func (i assignmentItem) FilterValue() string {
	return i.assignment.Title + " " + i.assignment.Subject
}

// ─── pane ────────────────────────────────────────────────────────────────────

type Pane string

const (
	PaneTasks       Pane = "tasks"
	PaneAssignments Pane = "assignments"
	PaneTimetable   Pane = "timetable"
)

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port        Port
	styles      *theme.Styles
	pane        Pane
	tasks       list.Model
	assignments list.Model
	timetable   plannerdto.TimetableOutput
	status      string
	width       int
	height      int
}

func New(port Port, styles *theme.Styles) Model {
	m := Model{
		port:        port,
		styles:      styles,
		pane:        PaneTasks,
		tasks:       components.NewList(styles, "Tasks"),
		assignments: components.NewList(styles, "Assignments"),
	}
	m.Refresh()
	return m
}

func (m *Model) Refresh() tea.Cmd {
	if m.port == nil {
		return nil
	}
	tasks := m.port.ListTasks()
	taskItems := make([]list.Item, len(tasks))
	for i, task := range tasks {
		taskItems[i] = taskItem{task: task}
	}
	assignments := m.port.ListAssignments()
	assignmentItems := make([]list.Item, len(assignments))
	for i, a := range assignments {
		assignmentItems[i] = assignmentItem{assignment: a}
	}
	m.timetable = m.port.Timetable()
	return tea.Batch(m.tasks.SetItems(taskItems), m.assignments.SetItems(assignmentItems))
}

func (m *Model) Restyle() {
	components.Restyle(&m.tasks, m.styles)
	components.Restyle(&m.assignments, m.styles)
}

func (m Model) Pane() Pane { return m.pane }

// SetPane switches the visible pane; unknown names are ignored.
func (m *Model) SetPane(p Pane) {
	switch p {
	case PaneTasks, PaneAssignments, PaneTimetable:
		m.pane = p
	}
}

func (m Model) Filtering() bool {
	return m.tasks.FilterState() == list.Filtering || m.assignments.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.tasks.SetSize(m.width, m.height-2)
		m.assignments.SetSize(m.width, m.height-2)
		return m, nil

	case ActionDoneMsg:
		if msg.Err != nil {
			m.status = m.styles.Bad.Render(msg.Err.Error())
		} else {
			m.status = m.styles.Muted.Render(msg.Status)
		}
		return m, nil

	case tea.KeyMsg:
		if m.port != nil && !m.Filtering() {
			if cmd, handled := m.handleKey(msg.String()); handled {
				return m, cmd
			}
		}
	}

	var cmd tea.Cmd
	switch m.pane {
	case PaneTasks:
		m.tasks, cmd = m.tasks.Update(msg)
	case PaneAssignments:
		m.assignments, cmd = m.assignments.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	header := m.renderHeader()
	bodyH := m.height - lipgloss.Height(header) - 1
	if bodyH < 1 {
		bodyH = 1
	}
	var body string
	switch m.pane {
	case PaneTasks:
		body = m.tasks.View()
	case PaneAssignments:
		body = m.assignments.View()
	case PaneTimetable:
		body = m.renderTimetable()
	}
	body = lipgloss.NewStyle().Height(bodyH).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.status)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) handleKey(key string) (tea.Cmd, bool) {
	switch key {
	case "t":
		m.pane = PaneTasks
		return nil, true
	case "a":
		m.pane = PaneAssignments
		return nil, true
	case "w":
		m.pane = PaneTimetable
		return nil, true
	}

	switch m.pane {
	case PaneTasks:
		item, ok := m.tasks.SelectedItem().(taskItem)
		switch key {
		case " ", "enter":
			if ok {
				return m.act("toggled "+item.task.Title, func(ctx context.Context) error {
					_, err := m.port.ToggleTask(ctx, item.task.ID)
					return err
				}), true
			}
		case "x":
			if ok {
				return m.act("deleted "+item.task.Title, func(ctx context.Context) error {
					return m.port.DeleteTask(ctx, item.task.ID)
				}), true
			}
		case "s":
			return m.act("tasks sorted by due date", m.port.SortTasksByDue), true
		case "c":
			return func() tea.Msg {
				n, err := m.port.ClearCompletedTasks(context.Background())
				return ActionDoneMsg{Status: fmt.Sprintf("cleared %d completed tasks", n), Err: err}
			}, true
		}
	case PaneAssignments:
		item, ok := m.assignments.SelectedItem().(assignmentItem)
		switch key {
		case " ", "enter":
			if ok {
				return m.act("toggled "+item.assignment.Title, func(ctx context.Context) error {
					_, err := m.port.ToggleAssignment(ctx, item.assignment.ID)
					return err
				}), true
			}
		case "x":
			if ok {
				return m.act("deleted "+item.assignment.Title, func(ctx context.Context) error {
					return m.port.DeleteAssignment(ctx, item.assignment.ID)
				}), true
			}
		case "s":
			return m.act("assignments sorted by due date", m.port.SortAssignmentsByDue), true
		}
	}
	return nil, false
}

func (m Model) act(status string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return ActionDoneMsg{Status: status, Err: fn(context.Background())}
	}
}

func (m Model) renderHeader() string {
	labels := []struct {
		pane  Pane
		label string
	}{
		{PaneTasks, "t Tasks"},
		{PaneAssignments, "a Assignments"},
		{PaneTimetable, "w Timetable"},
	}
	parts := make([]string, len(labels))
	for i, l := range labels {
		if l.pane == m.pane {
			parts[i] = m.styles.Hot.Render("[" + l.label + "]")
		} else {
			parts[i] = m.styles.Muted.Render(" " + l.label + " ")
		}
	}
	keys := "space: toggle  x: delete  s: sort by due"
	if m.pane == PaneTasks {
		keys += "  c: clear done"
	}
	if m.pane == PaneTimetable {
		keys = ":slot:set <day> <HH:MM> <subject>  :subject:add <title> <#color>"
	}
	return strings.Join(parts, " ") + "   " + m.styles.Muted.Render(keys) + "\n"
}

func (m Model) renderTimetable() string {
	tt := m.timetable
	if len(tt.Days) == 0 {
		return m.styles.Muted.Render("(no timetable)")
	}
	cellW := (m.width - 8) / len(tt.Days)
	if cellW < 10 {
		cellW = 10
	}
	slots := make(map[string]plannerdto.SlotOutput, len(tt.Slots))
	for _, slot := range tt.Slots {
		slots[slot.Day+"_"+slot.Time] = slot
	}
	cell := lipgloss.NewStyle().Width(cellW).MaxWidth(cellW)

	rows := []string{}
	head := []string{lipgloss.NewStyle().Width(7).Render("")}
	for _, day := range tt.Days {
		head = append(head, cell.Inherit(m.styles.Title).Render(day))
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, head...))
	for _, at := range tt.Times {
		row := []string{m.styles.Muted.Width(7).Render(at)}
		for _, day := range tt.Days {
			slot, ok := slots[day+"_"+at]
			if !ok {
				row = append(row, cell.Inherit(m.styles.Muted).Render("·"))
				continue
			}
			style := cell
			if slot.Color != "" {
				style = style.Foreground(lipgloss.Color(slot.Color))
			}
			row = append(row, style.Render(slot.Title))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	if len(tt.Palette) > 0 {
		subjects := make([]string, len(tt.Palette))
		for i, s := range tt.Palette {
			subjects[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Render("■ " + s.Title)
		}
		rows = append(rows, "", strings.Join(subjects, "  "))
	}
	return strings.Join(rows, "\n")
}

func checkbox(done bool) string {
	if done {
		return "[x] "
	}
	return "[ ] "
}

func due(date string) string {
	if date == "" {
		return ""
	}
	return "due " + date
}

func nonEmpty(values ...string) []string {
	out := values[:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
