package progress

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	progressbar "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressdto "studysphere/internal/modules/progress/dto"
	"studysphere/internal/ui/components"
	"studysphere/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Goals() []progressdto.GoalOutput
	Habits() []progressdto.HabitOutput
	ToggleGoal(ctx context.Context, ref string) (progressdto.GoalOutput, error)
	SetGoalProgress(ctx context.Context, ref string, progress int) (progressdto.GoalOutput, error)
	DeleteGoal(ctx context.Context, ref string) error
	ToggleHabit(ctx context.Context, ref string) (progressdto.HabitOutput, error)
	DeleteHabit(ctx context.Context, ref string) error
	Insights(ctx context.Context) progressdto.InsightsOutput
}

// ─── messages ────────────────────────────────────────────────────────────────

type InsightsMsg struct{ Insights progressdto.InsightsOutput }

type ActionDoneMsg struct{ Err error }

const step = 10

// ─── list items ──────────────────────────────────────────────────────────────

type goalItem struct {
	goal progressdto.GoalOutput
	bar  progressbar.Model
}

func (i goalItem) Title() string {
	mark := "○ "
	if i.goal.Done {
		mark = "● "
	}
	return mark + i.goal.Title
}
func (i goalItem) Description() string {
	return i.bar.ViewAs(float64(i.goal.Progress)/100) + fmt.Sprintf(" %3d%%", i.goal.Progress)
}
func (i goalItem) FilterValue() string { return i.goal.Title }

type habitItem struct{ habit progressdto.HabitOutput }

func (i habitItem) Title() string {
	mark := "○ "
	if i.habit.DoneToday {
		mark = "● "
	}
	return mark + i.habit.Title
}
func (i habitItem) Description() string {
	return fmt.Sprintf("%s · streak %d", i.habit.Meta, i.habit.Streak)
}
func (i habitItem) FilterValue() string { return i.habit.Title }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     Port
	styles   *theme.Styles
	goals    list.Model
	habits   list.Model
	onHabits bool
	insights progressdto.InsightsOutput
	loaded   bool
	err      string
	width    int
	height   int
}

func New(port Port, styles *theme.Styles) Model {
	m := Model{
		port:   port,
		styles: styles,
		goals:  components.NewList(styles, "Goals"),
		habits: components.NewList(styles, "Habits"),
	}
	m.Refresh()
	return m
}

// Refresh reloads goals and habits. Insights read the activity database and
// load separately through LoadInsights.
func (m *Model) Refresh() tea.Cmd {
	if m.port == nil {
		return nil
	}
	bar := progressbar.New(
		progressbar.WithSolidFill(string(m.styles.Palette.Green)),
		progressbar.WithoutPercentage(),
		progressbar.WithWidth(24),
	)
	goals := m.port.Goals()
	goalItems := make([]list.Item, len(goals))
	for i, goal := range goals {
		goalItems[i] = goalItem{goal: goal, bar: bar}
	}
	habits := m.port.Habits()
	habitItems := make([]list.Item, len(habits))
	for i, habit := range habits {
		habitItems[i] = habitItem{habit: habit}
	}
	return tea.Batch(m.goals.SetItems(goalItems), m.habits.SetItems(habitItems))
}

func (m *Model) Restyle() {
	components.Restyle(&m.goals, m.styles)
	components.Restyle(&m.habits, m.styles)
}

func (m Model) Filtering() bool {
	return m.goals.FilterState() == list.Filtering || m.habits.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		listW := m.width * 6 / 10
		m.goals.SetSize(listW, m.height/2)
		m.habits.SetSize(listW, m.height-m.height/2)
		return m, nil

	case InsightsMsg:
		m.insights = msg.Insights
		m.loaded = true
		return m, nil

	case ActionDoneMsg:
		m.err = ""
		if msg.Err != nil {
			m.err = msg.Err.Error()
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
	if m.onHabits {
		m.habits, cmd = m.habits.Update(msg)
	} else {
		m.goals, cmd = m.goals.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	listW := m.width * 6 / 10
	goals, habits := m.styles.Pane, m.styles.PaneActive
	if !m.onHabits {
		goals, habits = habits, goals
	}
	left := lipgloss.JoinVertical(lipgloss.Left,
		goals.Width(listW-2).Render(m.goals.View()),
		habits.Width(listW-2).Render(m.habits.View()),
	)
	right := m.styles.Pane.Width(m.width - listW - 2).Height(m.height - 2).Render(m.renderInsights())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) handleKey(key string) (tea.Cmd, bool) {
	switch key {
	case "g":
		m.onHabits = false
		return nil, true
	case "h":
		m.onHabits = true
		return nil, true
	case "i":
		return m.LoadInsights(), true
	}

	if m.onHabits {
		item, ok := m.habits.SelectedItem().(habitItem)
		if !ok {
			return nil, false
		}
		switch key {
		case " ", "enter":
			return m.act(func(ctx context.Context) error {
				_, err := m.port.ToggleHabit(ctx, item.habit.ID)
				return err
			}), true
		case "x":
			return m.act(func(ctx context.Context) error {
				return m.port.DeleteHabit(ctx, item.habit.ID)
			}), true
		}
		return nil, false
	}

	item, ok := m.goals.SelectedItem().(goalItem)
	if !ok {
		return nil, false
	}
	switch key {
	case " ", "enter":
		return m.act(func(ctx context.Context) error {
			_, err := m.port.ToggleGoal(ctx, item.goal.ID)
			return err
		}), true
	case "+", "=", "right":
		return m.setProgress(item.goal, item.goal.Progress+step), true
	case "-", "left":
		return m.setProgress(item.goal, item.goal.Progress-step), true
	case "x":
		return m.act(func(ctx context.Context) error {
			return m.port.DeleteGoal(ctx, item.goal.ID)
		}), true
	}
	return nil, false
}

func (m Model) setProgress(goal progressdto.GoalOutput, value int) tea.Cmd {
	return m.act(func(ctx context.Context) error {
		_, err := m.port.SetGoalProgress(ctx, goal.ID, value)
		return err
	})
}

func (m Model) act(fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return ActionDoneMsg{Err: fn(context.Background())}
	}
}

func (m Model) LoadInsights() tea.Cmd {
	if m.port == nil {
		return nil
	}
	return func() tea.Msg {
		return InsightsMsg{Insights: m.port.Insights(context.Background())}
	}
}

func (m Model) renderInsights() string {
	st := m.styles
	var sb strings.Builder
	sb.WriteString(st.Title.Render("Insights") + "\n\n")
	if !m.loaded {
		sb.WriteString(st.Muted.Render("loading…"))
		return sb.String()
	}
	in := m.insights
	row := func(label string, value any) {
		sb.WriteString(st.Muted.Render(fmt.Sprintf("%-18s", label)) + fmt.Sprint(value) + "\n")
	}
	row("goals done", fmt.Sprintf("%d / %d", in.GoalsDone, in.GoalsTotal))
	row("average progress", fmt.Sprintf("%d%%", in.AverageProgress))
	row("habits today", fmt.Sprintf("%d / %d", in.HabitsDoneToday, in.Habits))
	row("best streak", in.BestStreak)
	sb.WriteString("\n" + st.Title.Render("Today") + "\n")
	row("focus sessions", in.FocusSessions)
	row("focus minutes", in.FocusMinutes)
	sb.WriteString("\n" + st.Title.Render("Last 7 days") + "\n")
	row("quizzes", in.QuizSessions)
	row("average score", fmt.Sprintf("%d%%", in.AverageQuizScore))
	if in.ActivityError != "" {
		sb.WriteString("\n" + st.Bad.Render("activity log: "+in.ActivityError) + "\n")
	}
	if m.err != "" {
		sb.WriteString("\n" + st.Bad.Render(m.err) + "\n")
	}
	sb.WriteString("\n" + st.Muted.Render("g/h: goals/habits  space: toggle  +/-: progress  x: delete  i: refresh"))
	return sb.String()
}
