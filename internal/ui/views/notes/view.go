package notes

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	plannerdto "studysphere/internal/modules/planner/dto"
	"studysphere/internal/ui/components"
	"studysphere/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	ListNotes() []plannerdto.NoteOutput
}

// ─── list item ───────────────────────────────────────────────────────────────

type noteItem struct{ note plannerdto.NoteOutput }

func (i noteItem) Title() string { return i.note.Title }

func (i noteItem) Description() string {
	return "edited " + i.note.UpdatedAt.Local().Format(time.DateTime)
}

func (i noteItem) FilterValue() string { return i.note.Title }

// ─── model ───────────────────────────────────────────────────────────────────

// Model lists notes and renders the highlighted one as markdown.
type Model struct {
	port     Port
	styles   *theme.Styles
	list     list.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer
	width    int
	height   int
}

func New(port Port, styles *theme.Styles) Model {
	m := Model{
		port:     port,
		styles:   styles,
		list:     components.NewList(styles, "Notes"),
		viewport: viewport.New(0, 0),
	}
	m.rebuildRenderer()
	m.Refresh()
	return m
}

func (m *Model) Refresh() tea.Cmd {
	if m.port == nil {
		return nil
	}
	notes := m.port.ListNotes()
	items := make([]list.Item, len(notes))
	for i, note := range notes {
		items[i] = noteItem{note: note}
	}
	cmd := m.list.SetItems(items)
	m.renderSelected()
	return cmd
}

// Restyle swaps the glamour style along with the list colors.
func (m *Model) Restyle() {
	components.Restyle(&m.list, m.styles)
	m.rebuildRenderer()
	m.renderSelected()
}

func (m Model) Filtering() bool { return m.list.FilterState() == list.Filtering }

// SelectedNote returns the highlighted note id.
func (m Model) SelectedNote() (string, bool) {
	if item, ok := m.list.SelectedItem().(noteItem); ok {
		return item.note.ID, true
	}
	return "", false
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.renderSelected()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "pgdown", "ctrl+d", "J":
			m.viewport.HalfViewDown()
			return m, nil
		case "pgup", "ctrl+u", "K":
			m.viewport.HalfViewUp()
			return m, nil
		}
	}

	prev := m.list.Index()
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	if m.list.Index() != prev {
		m.renderSelected()
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	listW := m.width * 3 / 10
	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	footer := m.styles.Muted.Render(fmt.Sprintf("%3.0f%%  J/K: scroll", m.viewport.ScrollPercent()*100))
	right := lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
	detail := m.styles.Pane.Width(m.width - listW - 2).Height(m.height - 2).Render(right)
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detail)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 3 / 10
	m.list.SetSize(listW, m.height)
	m.viewport.Width = m.width - listW - 4
	m.viewport.Height = m.height - 3
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
	m.rebuildRenderer()
}

// rebuildRenderer word-wraps at the current pane width.
func (m *Model) rebuildRenderer() {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.styles.Name),
		glamour.WithWordWrap(max(m.viewport.Width-2, 20)),
	)
	if err == nil {
		m.renderer = r
	}
}

func (m *Model) renderSelected() {
	item, ok := m.list.SelectedItem().(noteItem)
	if !ok {
		m.viewport.SetContent(m.styles.Muted.Render("No notes yet. Use :note:add <title> or :note:import <path>."))
		return
	}
	body := "# " + item.note.Title + "\n\n" + item.note.Body
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(body); err == nil {
			m.viewport.SetContent(rendered)
			m.viewport.GotoTop()
			return
		}
	}
	m.viewport.SetContent(body)
	m.viewport.GotoTop()
}
