package plugins

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	plugindto "studysphere/internal/modules/plugin/dto"
	"studysphere/internal/ui/components"
	"studysphere/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Port is the minimal interface this view needs from the plugin handler.
type Port interface {
	List(ctx context.Context) ([]plugindto.PluginInfo, error)
	ListCommands(ctx context.Context, pluginName string) ([]plugindto.CommandInfo, error)
	Execute(ctx context.Context, pluginName, commandID, inputJSON, deckRef string) (plugindto.ExecuteOutput, error)
	GenerateCards(ctx context.Context, pluginName, commandID, inputJSON, deckRef string) (plugindto.CardsOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type PluginsLoadedMsg struct {
	Plugins []plugindto.PluginInfo
	Err     error
}

// CommandsLoadedMsg is sent when plugin commands finish loading.
type CommandsLoadedMsg struct {
	PluginName string
	Commands   []plugindto.CommandInfo
	Err        error
}

// ExecDoneMsg is sent when a plugin command finishes executing. Cards is set
// for cards commands.
type ExecDoneMsg struct {
	Out   plugindto.ExecuteOutput
	Cards *plugindto.CardsOutput
	Err   error
}

// ─── list items ──────────────────────────────────────────────────────────────

type pluginItem struct{ info plugindto.PluginInfo }

func (i pluginItem) Title() string { return i.info.Name }
func (i pluginItem) Description() string {
	state := "enabled"
	if !i.info.Enabled {
		state = "disabled"
	}
	return fmt.Sprintf("v%s  %s  [%s]", i.info.Version, state, strings.Join(i.info.Capabilities, ","))
}
func (i pluginItem) FilterValue() string { return i.info.Name }

type commandItem struct{ cmd plugindto.CommandInfo }

func (i commandItem) Title() string       { return i.cmd.Title }
func (i commandItem) Description() string { return "[" + i.cmd.Kind + "] " + i.cmd.Description }
func (i commandItem) FilterValue() string { return i.cmd.ID + " " + i.cmd.Title }

// ─── pane ────────────────────────────────────────────────────────────────────

type pane int

const (
	panePlugins  pane = iota // user picks a plugin
	paneCommands             // user picks a command
	paneInput                // user edits the JSON input
	paneOutput               // result is displayed
)

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the self-contained Bubble Tea model for the Plugins tab.
type Model struct {
	port       Port
	styles     *theme.Styles
	pane       pane
	pluginList list.Model
	cmdList    list.Model
	jsonInput  textinput.Model
	output     viewport.Model
	spinner    spinner.Model
	plugin     string
	command    plugindto.CommandInfo
	loading    bool
	// deck the quiz tab has selected; travels with every request
	deckRef string
	width   int
	height  int
}

func New(port Port, styles *theme.Styles) Model {
	ti := textinput.New()
	ti.Placeholder = `{"topic": "cells"}`
	ti.CharLimit = 2048

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		port:       port,
		styles:     styles,
		pane:       panePlugins,
		pluginList: components.NewList(styles, "Plugins"),
		cmdList:    components.NewList(styles, "Commands"),
		jsonInput:  ti,
		output:     viewport.New(0, 0),
		spinner:    sp,
	}
	m.Restyle()
	return m
}

func (m *Model) Restyle() {
	components.Restyle(&m.pluginList, m.styles)
	components.Restyle(&m.cmdList, m.styles)
	m.spinner.Style = lipgloss.NewStyle().Foreground(m.styles.Palette.Lavender)
}

// SetDeck updates the deck sent as execution context.
func (m *Model) SetDeck(ref string) { m.deckRef = ref }

// Filtering reports whether a list filter or the JSON input has the keyboard.
func (m Model) Filtering() bool {
	return m.pane == paneInput ||
		m.pluginList.FilterState() == list.Filtering ||
		m.cmdList.FilterState() == list.Filtering
}

// ExecCommand runs a command without the interactive pane flow; used by the
// command palette.
func (m *Model) ExecCommand(pluginName, commandID, inputJSON string, cards bool) tea.Cmd {
	m.loading = true
	m.plugin = pluginName
	m.command = plugindto.CommandInfo{ID: commandID, Kind: "command"}
	if cards {
		m.command.Kind = "cards"
	}
	return tea.Batch(m.execCmd(inputJSON), m.spinner.Tick)
}

// Load refreshes the installed plugin list.
func (m Model) Load() tea.Cmd {
	if m.port == nil {
		return nil
	}
	return func() tea.Msg {
		plugins, err := m.port.List(context.Background())
		return PluginsLoadedMsg{Plugins: plugins, Err: err}
	}
}

func (m Model) Init() tea.Cmd { return m.Load() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case PluginsLoadedMsg:
		if msg.Err != nil {
			m.output.SetContent(m.styles.Bad.Render("Error loading plugins: " + msg.Err.Error()))
			m.pane = paneOutput
			return m, nil
		}
		items := make([]list.Item, len(msg.Plugins))
		for i, p := range msg.Plugins {
			items[i] = pluginItem{info: p}
		}
		cmds = append(cmds, m.pluginList.SetItems(items))

	case CommandsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.output.SetContent(m.styles.Bad.Render("Error loading commands: " + msg.Err.Error()))
			m.pane = paneOutput
			return m, nil
		}
		items := make([]list.Item, len(msg.Commands))
		for i, c := range msg.Commands {
			items[i] = commandItem{cmd: c}
		}
		cmds = append(cmds, m.cmdList.SetItems(items))
		m.pane = paneCommands

	case ExecDoneMsg:
		m.loading = false
		if msg.Err != nil {
			m.output.SetContent(m.styles.Bad.Render("Error: " + msg.Err.Error()))
		} else {
			m.output.SetContent(m.renderOutput(msg))
		}
		m.output.GotoTop()
		m.pane = paneOutput

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if m.port == nil {
			return m, nil
		}
		switch m.pane {
		case panePlugins:
			switch msg.String() {
			case "enter":
				if item, ok := m.pluginList.SelectedItem().(pluginItem); ok {
					m.plugin = item.info.Name
					m.loading = true
					cmds = append(cmds, m.loadCommandsCmd(item.info.Name), m.spinner.Tick)
				}
			case "r":
				cmds = append(cmds, m.Load())
			default:
				var lCmd tea.Cmd
				m.pluginList, lCmd = m.pluginList.Update(msg)
				cmds = append(cmds, lCmd)
			}

		case paneCommands:
			switch msg.String() {
			case "enter":
				if item, ok := m.cmdList.SelectedItem().(commandItem); ok {
					m.command = item.cmd
					m.jsonInput.SetValue("")
					m.pane = paneInput
					cmds = append(cmds, m.jsonInput.Focus())
				}
			case "esc":
				m.pane = panePlugins
			default:
				var lCmd tea.Cmd
				m.cmdList, lCmd = m.cmdList.Update(msg)
				cmds = append(cmds, lCmd)
			}

		case paneInput:
			switch msg.String() {
			case "enter":
				m.jsonInput.Blur()
				m.loading = true
				cmds = append(cmds, m.execCmd(strings.TrimSpace(m.jsonInput.Value())), m.spinner.Tick)
			case "esc":
				m.jsonInput.Blur()
				m.pane = paneCommands
			default:
				var cmd tea.Cmd
				m.jsonInput, cmd = m.jsonInput.Update(msg)
				cmds = append(cmds, cmd)
			}

		case paneOutput:
			switch msg.String() {
			case "esc":
				m.pane = paneCommands
				if m.cmdList.SelectedItem() == nil {
					m.pane = panePlugins
				}
			default:
				var vCmd tea.Cmd
				m.output, vCmd = m.output.Update(msg)
				cmds = append(cmds, vCmd)
			}
		}
		return m, tea.Batch(cmds...)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Working…")
	}

	header := m.renderHeader()
	bodyH := m.height - lipgloss.Height(header)
	if bodyH < 1 {
		bodyH = 1
	}

	var body string
	switch m.pane {
	case panePlugins:
		hint := m.styles.Muted.Render("enter: list commands  r: reload\n\nPlugins are declared in plugins/plugins.json under the data dir.")
		body = m.split(m.pluginList.View(), hint, bodyH)

	case paneCommands:
		hint := m.styles.Muted.Render("enter: run  esc: back to plugins\n\ncards commands add their output to the selected deck.")
		if item, ok := m.cmdList.SelectedItem().(commandItem); ok && item.cmd.InputSchemaJSON != "" {
			hint += "\n\n" + m.styles.Title.Render("input schema") + "\n" + item.cmd.InputSchemaJSON
		}
		body = m.split(m.cmdList.View(), hint, bodyH)

	case paneInput:
		title := m.styles.Title.Render(m.plugin + ":" + m.command.ID)
		hint := m.styles.Muted.Render("JSON input (empty for {}), enter: run  esc: back")
		input := lipgloss.NewStyle().Width(m.width - 4).Render(m.jsonInput.View())
		body = lipgloss.Place(m.width, bodyH, lipgloss.Left, lipgloss.Center, title+"\n"+hint+"\n\n"+input)

	case paneOutput:
		hint := m.styles.Muted.Render("esc: back to commands  ↑/↓: scroll\n")
		vp := m.output
		vp.Height = max(bodyH-lipgloss.Height(hint), 1)
		body = lipgloss.JoinVertical(lipgloss.Left, hint, vp.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	m.pluginList.SetSize(m.width*4/10, m.height-3)
	m.cmdList.SetSize(m.width*4/10, m.height-3)
	m.output.Width = m.width - 4
	m.output.Height = m.height - 4
}

func (m Model) split(left, right string, h int) string {
	listW := m.width * 4 / 10
	listPane := lipgloss.NewStyle().Width(listW).Height(h).Render(left)
	detail := m.styles.Pane.Width(m.width - listW - 2).Height(h - 2).Render(right)
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detail)
}

func (m Model) renderHeader() string {
	name := m.plugin
	if name == "" {
		name = "(none)"
	}
	deck := m.deckRef
	if deck == "" {
		deck = "(none)"
	}
	return m.styles.Title.Render("Plugins") + "  " +
		m.styles.Muted.Render("plugin: "+name+"  deck: "+deck) + "\n"
}

func (m Model) renderOutput(msg ExecDoneMsg) string {
	out := msg.Out
	st := m.styles
	var sb strings.Builder
	sb.WriteString(st.Title.Render(fmt.Sprintf("%s:%s  exit=%d", out.PluginName, out.CommandID, out.ExitCode)) + "\n\n")
	if msg.Cards != nil {
		sb.WriteString(st.Good.Render(fmt.Sprintf("added %d cards to %s", msg.Cards.Added, msg.Cards.DeckName)) + "\n\n")
	}
	if out.Stdout != "" {
		sb.WriteString(st.Muted.Render("stdout:\n") + out.Stdout + "\n")
	}
	if out.Stderr != "" {
		sb.WriteString(st.Hot.Render("stderr:\n") + out.Stderr + "\n")
	}
	if out.OutputJSON != "" {
		sb.WriteString(st.Muted.Render("output JSON:\n") + out.OutputJSON + "\n")
	}
	return sb.String()
}

func (m Model) loadCommandsCmd(pluginName string) tea.Cmd {
	return func() tea.Msg {
		cmds, err := m.port.ListCommands(context.Background(), pluginName)
		return CommandsLoadedMsg{PluginName: pluginName, Commands: cmds, Err: err}
	}
}

func (m Model) execCmd(inputJSON string) tea.Cmd {
	plugin, command, deck := m.plugin, m.command, m.deckRef
	return func() tea.Msg {
		ctx := context.Background()
		if command.Kind == "cards" {
			out, err := m.port.GenerateCards(ctx, plugin, command.ID, inputJSON, deck)
			return ExecDoneMsg{Out: out.ExecuteOutput, Cards: &out, Err: err}
		}
		out, err := m.port.Execute(ctx, plugin, command.ID, inputJSON, deck)
		return ExecDoneMsg{Out: out, Err: err}
	}
}
