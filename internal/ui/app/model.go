package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	flashcardsdto "studysphere/internal/modules/flashcards/dto"
	plannerdto "studysphere/internal/modules/planner/dto"
	pomodorodto "studysphere/internal/modules/pomodoro/dto"
	progressdto "studysphere/internal/modules/progress/dto"
	statedto "studysphere/internal/modules/state/dto"
	"studysphere/internal/ui/components"
	"studysphere/internal/ui/theme"
	flashcardsview "studysphere/internal/ui/views/flashcards"
	notesview "studysphere/internal/ui/views/notes"
	plannerview "studysphere/internal/ui/views/planner"
	pluginsview "studysphere/internal/ui/views/plugins"
	progressview "studysphere/internal/ui/views/progress"
	studyroomview "studysphere/internal/ui/views/studyroom"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port extends the sub-view port with the writes the palette needs.

type statePort interface {
	Badges() statedto.BadgesOutput
}

type flashcardsPort interface {
	flashcardsview.Port
	CreateDeck(ctx context.Context, name string) (flashcardsdto.DeckOutput, error)
	DeleteDeck(ctx context.Context, ref string) error
	AddCard(ctx context.Context, ref, front, back string) (flashcardsdto.CardOutput, error)
	ExportDeck(ctx context.Context, ref, dir string) (flashcardsdto.ExportOutput, error)
	ImportDeck(ctx context.Context, path string) (flashcardsdto.ImportOutput, error)
}

type plannerPort interface {
	plannerview.Port
	notesview.Port
	AddTask(ctx context.Context, input plannerdto.TaskInput) (plannerdto.TaskOutput, error)
	AddAssignment(ctx context.Context, input plannerdto.AssignmentInput) (plannerdto.AssignmentOutput, error)
	AddNote(ctx context.Context, input plannerdto.NoteInput) (plannerdto.NoteOutput, error)
	DeleteNote(ctx context.Context, id string) error
	ImportNote(ctx context.Context, path, title string, fromPage, toPage int) (plannerdto.NoteOutput, error)
	AddSubject(ctx context.Context, title, color string) (plannerdto.SubjectOutput, error)
	AssignSlot(ctx context.Context, day, at, subject string) (plannerdto.SlotOutput, error)
	RemoveSlot(ctx context.Context, day, at string) error
	Preferences() plannerdto.PreferencesOutput
	ToggleTheme(ctx context.Context) (plannerdto.PreferencesOutput, error)
	SetSection(ctx context.Context, section string) (plannerdto.PreferencesOutput, error)
}

type progressPort interface {
	progressview.Port
	AddGoal(ctx context.Context, title, details, meta string, progress int) (progressdto.GoalOutput, error)
	AddHabit(ctx context.Context, title, details, meta string) (progressdto.HabitOutput, error)
}

type timerPort interface {
	studyroomview.Port
	ApplyDurations(ctx context.Context, focus, short, long int) (pomodorodto.StatusOutput, error)
}

// Ports bundles the handlers the TUI drives.
type Ports struct {
	State      statePort
	Timer      timerPort
	Flashcards flashcardsPort
	Planner    plannerPort
	Progress   progressPort
	Plugin     pluginsview.Port
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabStudyRoom tabID = iota
	tabFlashcards
	tabPlanner
	tabNotes
	tabProgress
	tabPlugins
	tabCount
)

var tabLabels = [tabCount]string{
	"Study Room", "Flashcards", "Planner", "Notes", "Progress", "Plugins",
}

// ─── messages ────────────────────────────────────────────────────────────────

// StateChangedMsg is sent by the host after every store save.
type StateChangedMsg struct{}

// TimerCompletedMsg is sent by the host when a pomodoro session ends.
type TimerCompletedMsg struct {
	Completion pomodorodto.CompletionOutput
}

type statusMsg struct {
	text string
	err  error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Theme   key.Binding
	Quit    key.Binding
	Toggle  key.Binding
	Delete  key.Binding
	Sort    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab/shift+tab", "switch tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Theme:   key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "light/dark")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle / start")),
		Delete:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Sort:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort by due")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Theme},
		{k.Toggle, k.Delete, k.Sort},
		{k.Help, k.Palette, k.Quit},
	}
}

// hints must stay in sync with the switch in executePalette.
var paletteHints = []string{
	"timer:toggle",
	"timer:reset",
	"timer:skip",
	"timer:mode <focus|short|long>",
	"timer:durations <focus> <short> <long>",
	"deck:add <name>",
	"deck:delete",
	"deck:import <path>",
	"deck:export [dir]",
	"card:add <front> | <back>",
	"quiz:start [deck]",
	"task:add <title> [due=YYYY-MM-DD] [priority=Low|Medium|High] [category=Study]",
	"assignment:add <title> [subject=...] [due=YYYY-MM-DD] [status=...]",
	"note:add <title>",
	"note:delete",
	"note:import <path> [from=N] [to=N]",
	"subject:add <title> [color=#rrggbb]",
	"slot:set <day> <HH:MM> <subject>",
	"slot:clear <day> <HH:MM>",
	"goal:add <title> [progress=N]",
	"habit:add <title> [meta=daily]",
	"theme:toggle",
	"plugin:exec <plugin> <command> [json]",
	"plugin:cards <plugin> <command> [json]",
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the help overlay
// and the command palette; sub-views render from store snapshots.
type Model struct {
	ports   Ports
	dataDir string
	styles  *theme.Styles

	studyView   studyroomview.Model
	deckView    flashcardsview.Model
	plannerView plannerview.Model
	notesView   notesview.Model
	progView    progressview.Model
	pluginView  pluginsview.Model

	activeTab tabID
	section   string
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	badges    statedto.BadgesOutput
	status    string
	width     int
	height    int
}

func NewModel(ports Ports, dataDir string) Model {
	prefs := ports.Planner.Preferences()
	styles := theme.For(prefs.Theme)
	st := &styles

	m := Model{
		ports:       ports,
		dataDir:     dataDir,
		styles:      st,
		studyView:   studyroomview.New(ports.Timer, st),
		deckView:    flashcardsview.New(ports.Flashcards, st),
		plannerView: plannerview.New(ports.Planner, st),
		notesView:   notesview.New(ports.Planner, st),
		progView:    progressview.New(ports.Progress, st),
		pluginView:  pluginsview.New(ports.Plugin, st),
		section:     prefs.ActiveSection,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(st, paletteHints),
		badges:      ports.State.Badges(),
		status:      "ready",
	}
	m.activeTab = m.tabForSection(prefs.ActiveSection)
	m.pluginView.SetDeck(ports.Flashcards.SelectedDeck())
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.pluginView.Init(),
		m.progView.LoadInsights(),
	)
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case StateChangedMsg:
		return m, m.refresh()

	case TimerCompletedMsg:
		m.studyView.SetCompletion(msg.Completion)
		m.status = "timer: " + strings.ToLower(msg.Completion.Finished) + " session finished"
		return m, m.progView.LoadInsights()

	case statusMsg:
		if msg.err != nil {
			m.status = "error: " + msg.err.Error()
		} else {
			m.status = msg.text
		}
		return m, nil

	case flashcardsview.QuizMsg:
		var cmd tea.Cmd
		m.deckView, cmd = m.deckView.Update(msg)
		if msg.Quiz.Phase == "complete" {
			cmds = append(cmds, m.progView.LoadInsights())
		}
		return m, tea.Batch(append(cmds, cmd)...)

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the sub-view when a filter or text input has the keyboard.
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			return m.switchTab((m.activeTab + 1) % tabCount)
		case "shift+tab":
			return m.switchTab((m.activeTab + tabCount - 1) % tabCount)
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		case "T":
			return m, m.run(func(ctx context.Context) (string, error) {
				prefs, err := m.ports.Planner.ToggleTheme(ctx)
				return "theme: " + prefs.Theme, err
			})
		}
	}

	return m.routeToActive(msg, cmds)
}

func (m Model) routeToActive(msg tea.Msg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	// Async results are routed by type so they land even after a tab switch.
	switch msg.(type) {
	case studyroomview.ActionDoneMsg:
		m.studyView, _ = m.studyView.Update(msg)
		return m, nil
	case plannerview.ActionDoneMsg:
		m.plannerView, _ = m.plannerView.Update(msg)
		return m, nil
	case progressview.ActionDoneMsg, progressview.InsightsMsg:
		m.progView, _ = m.progView.Update(msg)
		return m, nil
	case pluginsview.PluginsLoadedMsg, pluginsview.CommandsLoadedMsg, pluginsview.ExecDoneMsg:
		var cmd tea.Cmd
		m.pluginView, cmd = m.pluginView.Update(msg)
		return m, cmd
	}

	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabStudyRoom:
		m.studyView, tabCmd = m.studyView.Update(msg)
	case tabFlashcards:
		m.deckView, tabCmd = m.deckView.Update(msg)
		m.pluginView.SetDeck(m.ports.Flashcards.SelectedDeck())
	case tabPlanner:
		prev := m.plannerView.Pane()
		m.plannerView, tabCmd = m.plannerView.Update(msg)
		if pane := m.plannerView.Pane(); pane != prev {
			cmds = append(cmds, m.persistSection(string(pane)))
		}
	case tabNotes:
		m.notesView, tabCmd = m.notesView.Update(msg)
	case tabProgress:
		m.progView, tabCmd = m.progView.Update(msg)
	case tabPlugins:
		m.pluginView, tabCmd = m.pluginView.Update(msg)
	}
	cmds = append(cmds, tabCmd)
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys) + "\n\n" + m.styles.Muted.Render(tabHelp[m.activeTab]))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return m.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar))
}

var tabHelp = [tabCount]string{
	"space: start/pause  r: reset  n: skip  1/2/3: focus/short/long",
	"enter: start quiz  space: flip  y/n: got it/missed  r: restart  esc: stop",
	"t/a/w: tasks/assignments/timetable  space: toggle  x: delete  s: sort  c: clear done",
	"↑/↓: pick note  J/K: scroll  :note:add  :note:import",
	"g/h: goals/habits  space: toggle  +/-: progress  x: delete  i: refresh insights",
	"enter: open  esc: back  r: reload",
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabStudyRoom:
		return m.studyView.View()
	case tabFlashcards:
		return m.deckView.View()
	case tabPlanner:
		return m.plannerView.View()
	case tabNotes:
		return m.notesView.View()
	case tabProgress:
		return m.progView.View()
	case tabPlugins:
		return m.pluginView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	counts := [tabCount]int{
		tabFlashcards: m.badges.Decks,
		tabPlanner:    m.badges.OpenTasks + m.badges.OpenAssignments,
		tabNotes:      m.badges.Notes,
		tabProgress:   m.badges.ActiveGoals,
	}
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if counts[i] > 0 {
			label += " " + strconv.Itoa(counts[i])
		}
		if i == m.activeTab {
			parts[i] = m.styles.Hot.Render(" " + label + " ")
		} else {
			parts[i] = m.styles.Muted.Render(" " + label + " ")
		}
	}
	sep := m.styles.Muted.Render(" │ ")
	bar := m.styles.Title.Render("studysphere") + "  " + strings.Join(parts, sep)
	return m.styles.Bar.Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if timer := m.ports.Timer.Status(); timer.IsRunning && m.activeTab != tabStudyRoom {
		left = m.styles.Hot.Render("● "+timer.Mode+" "+timer.Readout) + "  " + left
	}
	right := m.styles.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + m.styles.Bar.Width(m.width).Render(bar)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	rest := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
	text, opts := splitOptions(rest)
	p := m.ports

	switch parts[0] {
	case "timer:toggle", "timer:reset", "timer:skip":
		action := map[string]func(context.Context) (pomodorodto.StatusOutput, error){
			"timer:toggle": p.Timer.Toggle,
			"timer:reset":  p.Timer.Reset,
			"timer:skip":   p.Timer.Skip,
		}[parts[0]]
		return m, m.run(func(ctx context.Context) (string, error) {
			status, err := action(ctx)
			return fmt.Sprintf("timer: %s %s", status.Mode, status.Readout), err
		})

	case "timer:mode":
		if len(parts) < 2 {
			return m.usage("timer:mode <focus|short|long>")
		}
		return m, m.run(func(ctx context.Context) (string, error) {
			status, err := p.Timer.SetMode(ctx, parts[1])
			return "timer: " + status.Mode, err
		})

	case "timer:durations":
		if len(parts) < 4 {
			return m.usage("timer:durations <focus> <short> <long>")
		}
		values, err := atois(parts[1:4])
		if err != nil {
			m.status = "durations must be whole minutes"
			return m, nil
		}
		return m, m.run(func(ctx context.Context) (string, error) {
			s, err := p.Timer.ApplyDurations(ctx, values[0], values[1], values[2])
			return fmt.Sprintf("durations: %d/%d/%d", s.Focus, s.Short, s.Long), err
		})

	case "deck:add":
		if text == "" {
			return m.usage("deck:add <name>")
		}
		return m, m.run(func(ctx context.Context) (string, error) {
			deck, err := p.Flashcards.CreateDeck(ctx, text)
			return "deck created: " + deck.Name, err
		})

	case "deck:delete":
		deckID, ok := m.deckView.SelectedDeck()
		if !ok {
			m.status = "no deck selected"
			return m, nil
		}
		return m, m.run(func(ctx context.Context) (string, error) {
			return "deck deleted", p.Flashcards.DeleteDeck(ctx, deckID)
		})

	case "deck:import":
		if text == "" {
			return m.usage("deck:import <path>")
		}
		return m, m.run(func(ctx context.Context) (string, error) {
			out, err := p.Flashcards.ImportDeck(ctx, text)
			return fmt.Sprintf("imported %d cards into %s", out.Cards, out.Deck.Name), err
		})

	case "deck:export":
		deckID, ok := m.deckView.SelectedDeck()
		if !ok {
			m.status = "no deck selected"
			return m, nil
		}
		dir := text
		if dir == "" {
			dir = m.dataDir
		}
		return m, m.run(func(ctx context.Context) (string, error) {
			out, err := p.Flashcards.ExportDeck(ctx, deckID, dir)
			return "exported to " + out.Path, err
		})

	case "card:add":
		deckID, ok := m.deckView.SelectedDeck()
		front, back, found := strings.Cut(rest, "|")
		if !ok || !found {
			return m.usage("card:add <front> | <back> (select a deck first)")
		}
		return m, m.run(func(ctx context.Context) (string, error) {
			_, err := p.Flashcards.AddCard(ctx, deckID, strings.TrimSpace(front), strings.TrimSpace(back))
			return "card added", err
		})

	case "quiz:start":
		m.activeTab = tabFlashcards
		m.deckView.StartQuiz(text)
		return m, m.persistSection("flashcards")

	case "task:add":
		if text == "" {
			return m.usage("task:add <title> [due=YYYY-MM-DD] [priority=High] [category=Study]")
		}
		input := plannerdto.TaskInput{Title: text, Due: opts["due"], Priority: opts["priority"], Category: opts["category"]}
		return m, m.run(func(ctx context.Context) (string, error) {
			task, err := p.Planner.AddTask(ctx, input)
			return "task added: " + task.Title, err
		})

	case "assignment:add":
		if text == "" {
			return m.usage("assignment:add <title> [subject=...] [due=YYYY-MM-DD] [status=...]")
		}
		input := plannerdto.AssignmentInput{Title: text, Subject: opts["subject"], Due: opts["due"], Status: opts["status"]}
		return m, m.run(func(ctx context.Context) (string, error) {
			a, err := p.Planner.AddAssignment(ctx, input)
			return "assignment added: " + a.Title, err
		})

	case "note:add":
		if text == "" {
			return m.usage("note:add <title>")
		}
		return m, m.run(func(ctx context.Context) (string, error) {
			note, err := p.Planner.AddNote(ctx, plannerdto.NoteInput{Title: text})
			return "note added: " + note.Title, err
		})

	case "note:delete":
		noteID, ok := m.notesView.SelectedNote()
		if !ok {
			m.status = "no note selected"
			return m, nil
		}
		return m, m.run(func(ctx context.Context) (string, error) {
			return "note deleted", p.Planner.DeleteNote(ctx, noteID)
		})

	case "note:import":
		if text == "" {
			return m.usage("note:import <path> [from=N] [to=N]")
		}
		from, _ := strconv.Atoi(opts["from"])
		to, _ := strconv.Atoi(opts["to"])
		return m, m.run(func(ctx context.Context) (string, error) {
			note, err := p.Planner.ImportNote(ctx, text, opts["title"], from, to)
			return "imported note: " + note.Title, err
		})

	case "subject:add":
		if text == "" {
			return m.usage("subject:add <title> [color=#rrggbb]")
		}
		return m, m.run(func(ctx context.Context) (string, error) {
			s, err := p.Planner.AddSubject(ctx, text, opts["color"])
			return "subject added: " + s.Title, err
		})

	case "slot:set":
		if len(parts) < 4 {
			return m.usage("slot:set <day> <HH:MM> <subject>")
		}
		subject := strings.Join(parts[3:], " ")
		return m, m.run(func(ctx context.Context) (string, error) {
			slot, err := p.Planner.AssignSlot(ctx, parts[1], parts[2], subject)
			return "slot " + slot.Key + ": " + slot.Title, err
		})

	case "slot:clear":
		if len(parts) < 3 {
			return m.usage("slot:clear <day> <HH:MM>")
		}
		return m, m.run(func(ctx context.Context) (string, error) {
			return "slot cleared", p.Planner.RemoveSlot(ctx, parts[1], parts[2])
		})

	case "goal:add":
		if text == "" {
			return m.usage("goal:add <title> [progress=N]")
		}
		progress, _ := strconv.Atoi(opts["progress"])
		return m, m.run(func(ctx context.Context) (string, error) {
			goal, err := p.Progress.AddGoal(ctx, text, opts["details"], opts["meta"], progress)
			return "goal added: " + goal.Title, err
		})

	case "habit:add":
		if text == "" {
			return m.usage("habit:add <title> [meta=daily]")
		}
		return m, m.run(func(ctx context.Context) (string, error) {
			habit, err := p.Progress.AddHabit(ctx, text, opts["details"], opts["meta"])
			return "habit added: " + habit.Title, err
		})

	case "theme:toggle":
		return m, m.run(func(ctx context.Context) (string, error) {
			prefs, err := p.Planner.ToggleTheme(ctx)
			return "theme: " + prefs.Theme, err
		})

	case "plugin:exec", "plugin:cards":
		if len(parts) < 3 {
			return m.usage(parts[0] + " <plugin> <command> [json]")
		}
		prefix := parts[0] + " " + parts[1] + " " + parts[2]
		inputJSON := strings.TrimSpace(strings.TrimPrefix(input, prefix))
		m.activeTab = tabPlugins
		return m, m.pluginView.ExecCommand(parts[1], parts[2], inputJSON, parts[0] == "plugin:cards")

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// splitOptions separates key=value options from free text. Only lower-case
// keys count as options; every other token is text.
func splitOptions(rest string) (string, map[string]string) {
	opts := map[string]string{}
	var words []string
	for _, field := range strings.Fields(rest) {
		k, v, ok := strings.Cut(field, "=")
		if ok && k != "" && strings.Trim(k, "abcdefghijklmnopqrstuvwxyz") == "" {
			opts[k] = v
			continue
		}
		words = append(words, field)
	}
	return strings.Join(words, " "), opts
}

func atois(values []string) ([]int, error) {
	out := make([]int, len(values))
	for i, v := range values {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) usage(text string) (tea.Model, tea.Cmd) {
	m.status = "usage: " + text
	return m, nil
}

// subViewFiltering reports whether the active tab's filter or text input is
// open, in which case global key bindings must yield to allow free typing.
func (m Model) subViewFiltering() bool {
	switch m.activeTab {
	case tabFlashcards:
		return m.deckView.Filtering()
	case tabPlanner:
		return m.plannerView.Filtering()
	case tabNotes:
		return m.notesView.Filtering()
	case tabProgress:
		return m.progView.Filtering()
	case tabPlugins:
		return m.pluginView.Filtering()
	}
	return false
}

func (m Model) switchTab(tab tabID) (tea.Model, tea.Cmd) {
	m.activeTab = tab
	var cmds []tea.Cmd
	switch tab {
	case tabStudyRoom:
		cmds = append(cmds, m.persistSection("studyroom"))
	case tabFlashcards:
		cmds = append(cmds, m.persistSection("flashcards"))
	case tabPlanner:
		cmds = append(cmds, m.persistSection(string(m.plannerView.Pane())))
	case tabNotes:
		cmds = append(cmds, m.persistSection("notes"))
	case tabProgress:
		cmds = append(cmds, m.progView.LoadInsights())
	case tabPlugins:
		cmds = append(cmds, m.pluginView.Load())
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) tabForSection(section string) tabID {
	switch section {
	case "studyroom":
		return tabStudyRoom
	case "flashcards":
		return tabFlashcards
	case "notes":
		return tabNotes
	case "tasks", "assignments", "timetable":
		m.plannerView.SetPane(plannerview.Pane(section))
		return tabPlanner
	}
	return tabStudyRoom
}

// persistSection remembers the visible section so the next launch opens it.
func (m *Model) persistSection(section string) tea.Cmd {
	if section == m.section {
		return nil
	}
	m.section = section
	return func() tea.Msg {
		if _, err := m.ports.Planner.SetSection(context.Background(), section); err != nil {
			return statusMsg{err: err}
		}
		return nil
	}
}

// refresh re-reads every view from the store after a save.
func (m *Model) refresh() tea.Cmd {
	m.badges = m.ports.State.Badges()
	if prefs := m.ports.Planner.Preferences(); prefs.Theme != m.styles.Name {
		*m.styles = theme.For(prefs.Theme)
		m.studyView.Restyle()
		m.deckView.Restyle()
		m.plannerView.Restyle()
		m.notesView.Restyle()
		m.progView.Restyle()
		m.pluginView.Restyle()
	}
	m.studyView.Refresh()
	cmds := []tea.Cmd{
		m.deckView.Refresh(),
		m.plannerView.Refresh(),
		m.notesView.Refresh(),
		m.progView.Refresh(),
	}
	m.pluginView.SetDeck(m.ports.Flashcards.SelectedDeck())
	return tea.Batch(cmds...)
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.studyView, _ = m.studyView.Update(sz)
	m.deckView, _ = m.deckView.Update(sz)
	m.plannerView, _ = m.plannerView.Update(sz)
	m.notesView, _ = m.notesView.Update(sz)
	m.progView, _ = m.progView.Update(sz)
	m.pluginView, _ = m.pluginView.Update(sz)
}

// run executes a store mutation off the update loop and reports the result
// in the status bar. The redraw itself arrives as StateChangedMsg.
func (m Model) run(fn func(context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		text, err := fn(context.Background())
		return statusMsg{text: text, err: err}
	}
}
