package flashcards

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	flashcardsdto "studysphere/internal/modules/flashcards/dto"
	"studysphere/internal/ui/components"
	"studysphere/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	ListDecks() []flashcardsdto.DeckOutput
	Deck(ref string) (flashcardsdto.DeckDetailOutput, error)
	SelectDeck(deckID string) error
	SelectedDeck() string
	StartQuiz(ref string) (flashcardsdto.QuizOutput, error)
	Answer(ctx context.Context, gotIt bool) (flashcardsdto.QuizOutput, error)
	Restart() (flashcardsdto.QuizOutput, error)
	Exit() flashcardsdto.QuizOutput
	Quiz() flashcardsdto.QuizOutput
}

// ─── messages ────────────────────────────────────────────────────────────────

// QuizMsg reports the quiz after an answer, which may write the activity log.
type QuizMsg struct {
	Quiz flashcardsdto.QuizOutput
	Err  error
}

// ─── list item ───────────────────────────────────────────────────────────────

type deckItem struct{ deck flashcardsdto.DeckOutput }

func (i deckItem) Title() string       { return i.deck.Name }
func (i deckItem) Description() string { return fmt.Sprintf("%d cards", i.deck.CardCount) }
func (i deckItem) FilterValue() string { return i.deck.Name }

// ─── model ───────────────────────────────────────────────────────────────────

// Model lists decks on the left and runs the quiz on the right.
type Model struct {
	port     Port
	styles   *theme.Styles
	list     list.Model
	preview  viewport.Model
	quiz     flashcardsdto.QuizOutput
	revealed bool
	err      string
	width    int
	height   int
}

func New(port Port, styles *theme.Styles) Model {
	m := Model{
		port:    port,
		styles:  styles,
		list:    components.NewList(styles, "Decks"),
		preview: viewport.New(0, 0),
	}
	m.Refresh()
	return m
}

// Refresh reloads decks and the quiz from the store snapshot.
func (m *Model) Refresh() tea.Cmd {
	if m.port == nil {
		return nil
	}
	decks := m.port.ListDecks()
	items := make([]list.Item, len(decks))
	for i, deck := range decks {
		items[i] = deckItem{deck: deck}
	}
	cmd := m.list.SetItems(items)
	m.quiz = m.port.Quiz()
	m.renderPreview()
	return cmd
}

func (m *Model) Restyle() { components.Restyle(&m.list, m.styles) }

// Filtering reports whether the deck filter is open.
func (m Model) Filtering() bool { return m.list.FilterState() == list.Filtering }

// SelectedDeck returns the highlighted deck id, if any.
func (m Model) SelectedDeck() (string, bool) {
	if item, ok := m.list.SelectedItem().(deckItem); ok {
		return item.deck.ID, true
	}
	return "", false
}

// StartQuiz begins a review of ref, or of the highlighted deck when ref is
// empty.
func (m *Model) StartQuiz(ref string) {
	if ref == "" {
		ref, _ = m.SelectedDeck()
	}
	quiz, err := m.port.StartQuiz(ref)
	m.apply(quiz, err)
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case QuizMsg:
		m.apply(msg.Quiz, msg.Err)
		return m, nil

	case tea.KeyMsg:
		if m.port != nil && !m.Filtering() {
			if cmd, handled := m.handleKey(msg.String()); handled {
				return m, cmd
			}
		}
	}

	if m.quiz.Phase == "active" || m.quiz.Phase == "complete" {
		return m, nil
	}
	prev := m.list.Index()
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	if m.list.Index() != prev {
		if id, ok := m.SelectedDeck(); ok {
			_ = m.port.SelectDeck(id)
		}
		m.renderPreview()
	}
	return m, cmd
}

func (m Model) View() string {
	listW := m.width * 4 / 10
	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())

	var right string
	switch m.quiz.Phase {
	case "active":
		right = m.renderCard()
	case "complete":
		right = m.renderScore()
	default:
		right = m.preview.View()
	}
	if m.err != "" {
		right = m.styles.Bad.Render(m.err) + "\n" + right
	}
	detail := m.styles.Pane.Width(m.width - listW - 2).Height(m.height - 2).Render(right)
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detail)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) handleKey(key string) (tea.Cmd, bool) {
	switch m.quiz.Phase {
	case "active":
		switch key {
		case " ", "f":
			m.revealed = !m.revealed
		case "y":
			return m.answer(true), true
		case "n":
			return m.answer(false), true
		case "esc":
			m.quiz = m.port.Exit()
			m.revealed = false
		default:
			return nil, false
		}
		return nil, true
	case "complete":
		switch key {
		case "r":
			quiz, err := m.port.Restart()
			m.apply(quiz, err)
		case "esc", "enter":
			m.quiz = m.port.Exit()
		default:
			return nil, false
		}
		return nil, true
	}
	if key == "enter" {
		m.StartQuiz("")
		return nil, true
	}
	return nil, false
}

func (m *Model) apply(quiz flashcardsdto.QuizOutput, err error) {
	if err != nil {
		m.err = err.Error()
		return
	}
	m.err = ""
	m.quiz = quiz
	m.revealed = false
}

func (m Model) answer(gotIt bool) tea.Cmd {
	return func() tea.Msg {
		quiz, err := m.port.Answer(context.Background(), gotIt)
		return QuizMsg{Quiz: quiz, Err: err}
	}
}

func (m *Model) resize() {
	listW := m.width * 4 / 10
	m.list.SetSize(listW, m.height)
	m.preview.Width = m.width - listW - 4
	m.preview.Height = m.height - 2
}

func (m *Model) renderPreview() {
	id, ok := m.SelectedDeck()
	if !ok {
		m.preview.SetContent(m.styles.Muted.Render("No decks yet. Use :deck:add <name> or :deck:import <file>."))
		return
	}
	deck, err := m.port.Deck(id)
	if err != nil {
		m.preview.SetContent(m.styles.Bad.Render(err.Error()))
		return
	}
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(deck.Name) + "\n\n")
	for i, card := range deck.Cards {
		sb.WriteString(fmt.Sprintf("%2d. %s\n", i+1, card.Front))
		sb.WriteString(m.styles.Muted.Render("    "+card.Back) + "\n")
	}
	if len(deck.Cards) == 0 {
		sb.WriteString(m.styles.Muted.Render("Empty deck. Use :card:add <front> | <back>.") + "\n")
	}
	sb.WriteString("\n" + m.styles.Muted.Render("enter: start quiz"))
	m.preview.SetContent(sb.String())
	m.preview.GotoTop()
}

func (m Model) renderCard() string {
	q := m.quiz
	if q.Card == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(q.DeckName) + "  ")
	sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("card %d/%d  correct %d", q.Index+1, q.Total, q.Correct)) + "\n\n")
	sb.WriteString(m.styles.Hot.Render(q.Card.Front) + "\n\n")
	if m.revealed {
		sb.WriteString(q.Card.Back + "\n\n")
		sb.WriteString(m.styles.Muted.Render("y: got it  n: missed  esc: stop"))
	} else {
		sb.WriteString(m.styles.Muted.Render("space: flip  y: got it  n: missed  esc: stop"))
	}
	return sb.String()
}

func (m Model) renderScore() string {
	q := m.quiz
	style := m.styles.Good
	if q.Score < 50 {
		style = m.styles.Bad
	}
	return m.styles.Title.Render(q.DeckName+" complete") + "\n\n" +
		style.Render(fmt.Sprintf("%d%%", q.Score)) +
		m.styles.Muted.Render(fmt.Sprintf("  (%d of %d)", q.Correct, q.Total)) + "\n\n" +
		m.styles.Muted.Render("r: restart  enter/esc: back to decks")
}
