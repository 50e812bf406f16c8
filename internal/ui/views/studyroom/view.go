package studyroom

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	pomodorodto "studysphere/internal/modules/pomodoro/dto"
	"studysphere/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Port is the slice of the timer engine this tab drives.
type Port interface {
	Status() pomodorodto.StatusOutput
	Toggle(ctx context.Context) (pomodorodto.StatusOutput, error)
	Reset(ctx context.Context) (pomodorodto.StatusOutput, error)
	SetMode(ctx context.Context, mode string) (pomodorodto.StatusOutput, error)
	Skip(ctx context.Context) (pomodorodto.StatusOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// ActionDoneMsg carries the timer after a key-triggered transition.
type ActionDoneMsg struct {
	Status pomodorodto.StatusOutput
	Err    error
}

var modes = []string{"focus", "short", "long"}

var modeLabels = map[string]string{
	"focus": "Focus",
	"short": "Short break",
	"long":  "Long break",
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port   Port
	styles *theme.Styles
	status pomodorodto.StatusOutput
	bar    progress.Model
	last   string
	err    string
	width  int
	height int
}

func New(port Port, styles *theme.Styles) Model {
	m := Model{port: port, styles: styles}
	m.Restyle()
	m.Refresh()
	return m
}

// Refresh re-reads the timer snapshot; called on every store change.
func (m *Model) Refresh() {
	if m.port != nil {
		m.status = m.port.Status()
	}
}

func (m *Model) Restyle() {
	m.bar = progress.New(
		progress.WithSolidFill(string(m.styles.Palette.Peach)),
		progress.WithoutPercentage(),
	)
	m.resize()
}

// SetCompletion records the last finished session for display.
func (m *Model) SetCompletion(done pomodorodto.CompletionOutput) {
	verb := "finished"
	if done.Skipped {
		verb = "skipped"
	}
	m.last = fmt.Sprintf("%s %s (%d min), up next: %s", modeLabels[done.Finished], verb, done.Minutes, modeLabels[done.Next])
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case ActionDoneMsg:
		if msg.Err != nil {
			m.err = msg.Err.Error()
			return m, nil
		}
		m.err = ""
		m.status = msg.Status

	case tea.KeyMsg:
		if m.port == nil {
			return m, nil
		}
		switch msg.String() {
		case " ", "enter":
			return m, m.act(m.port.Toggle)
		case "r":
			return m, m.act(m.port.Reset)
		case "n":
			return m, m.act(m.port.Skip)
		case "1", "2", "3":
			mode := modes[msg.String()[0]-'1']
			return m, m.act(func(ctx context.Context) (pomodorodto.StatusOutput, error) {
				return m.port.SetMode(ctx, mode)
			})
		}
	}
	return m, nil
}

func (m Model) View() string {
	s := m.status
	st := m.styles

	tabs := make([]string, len(modes))
	for i, mode := range modes {
		label := fmt.Sprintf("%d %s", i+1, modeLabels[mode])
		if mode == s.Mode {
			tabs[i] = st.Hot.Render("[" + label + "]")
		} else {
			tabs[i] = st.Muted.Render(" " + label + " ")
		}
	}

	readout := lipgloss.NewStyle().
		Bold(true).
		Foreground(st.Palette.Text).
		Padding(1, 4).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(st.Palette.Lavender).
		Render(s.Readout)

	state := st.Muted.Render("paused")
	if s.IsRunning {
		state = st.Good.Render("running")
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(tabs, "  ") + "\n\n")
	sb.WriteString(readout + "\n\n")
	sb.WriteString(m.bar.ViewAs(elapsed(s)) + "\n\n")
	sb.WriteString(state + st.Muted.Render(fmt.Sprintf("   focus sessions %d   cycle %d", s.FocusCount, s.Cycle)) + "\n")
	sb.WriteString(st.Muted.Render(fmt.Sprintf("durations: focus %d  short %d  long %d min", s.Focus, s.Short, s.Long)) + "\n")
	if m.last != "" {
		sb.WriteString("\n" + st.Title.Render(m.last) + "\n")
	}
	if m.err != "" {
		sb.WriteString("\n" + st.Bad.Render(m.err) + "\n")
	}
	sb.WriteString("\n" + st.Muted.Render("space: start/pause  r: reset  n: skip  1/2/3: mode"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Align(lipgloss.Center).Render(sb.String()))
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	w := m.width / 2
	if w < 20 {
		w = 20
	}
	m.bar.Width = w
}

func (m Model) act(fn func(context.Context) (pomodorodto.StatusOutput, error)) tea.Cmd {
	return func() tea.Msg {
		status, err := fn(context.Background())
		return ActionDoneMsg{Status: status, Err: err}
	}
}

// elapsed is the completed fraction of the current mode.
func elapsed(s pomodorodto.StatusOutput) float64 {
	minutes := map[string]int{"focus": s.Focus, "short": s.Short, "long": s.Long}[s.Mode]
	total := minutes * 60
	if total <= 0 {
		return 0
	}
	done := 1 - float64(s.SecondsLeft)/float64(total)
	switch {
	case done < 0:
		return 0
	case done > 1:
		return 1
	}
	return done
}
