package theme

import "github.com/charmbracelet/lipgloss"

// Palette holds the Catppuccin colors a theme is built from.
type Palette struct {
	Base     lipgloss.Color
	Mantle   lipgloss.Color
	Surface0 lipgloss.Color
	Surface1 lipgloss.Color
	Text     lipgloss.Color
	Subtext0 lipgloss.Color
	Lavender lipgloss.Color
	Sapphire lipgloss.Color
	Green    lipgloss.Color
	Peach    lipgloss.Color
	Red      lipgloss.Color
}

// Mocha is the dark flavor.
var Mocha = Palette{
	Base:     "#1e1e2e",
	Mantle:   "#181825",
	Surface0: "#313244",
	Surface1: "#45475a",
	Text:     "#cdd6f4",
	Subtext0: "#a6adc8",
	Lavender: "#b4befe",
	Sapphire: "#74c7ec",
	Green:    "#a6e3a1",
	Peach:    "#fab387",
	Red:      "#f38ba8",
}

// Latte is the light flavor.
var Latte = Palette{
	Base:     "#eff1f5",
	Mantle:   "#e6e9ef",
	Surface0: "#ccd0da",
	Surface1: "#bcc0cc",
	Text:     "#4c4f69",
	Subtext0: "#6c6f85",
	Lavender: "#7287fd",
	Sapphire: "#209fb5",
	Green:    "#40a02b",
	Peach:    "#fe640b",
	Red:      "#d20f39",
}

type Styles struct {
	Name    string
	Palette Palette

	App        lipgloss.Style
	Bar        lipgloss.Style
	Pane       lipgloss.Style
	PaneActive lipgloss.Style
	Title      lipgloss.Style
	Muted      lipgloss.Style
	Hot        lipgloss.Style
	Good       lipgloss.Style
	Bad        lipgloss.Style
	Overlay    lipgloss.Style
}

// For returns the styles of a stored theme name. Anything but "dark" renders
// light, matching the state default.
func For(name string) Styles {
	if name == "dark" {
		return build("dark", Mocha)
	}
	return build("light", Latte)
}

func build(name string, p Palette) Styles {
	pane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Surface1).
		Foreground(p.Text).
		Padding(0, 1)
	return Styles{
		Name:       name,
		Palette:    p,
		App:        lipgloss.NewStyle().Background(p.Base).Foreground(p.Text),
		Bar:        lipgloss.NewStyle().Background(p.Mantle).Foreground(p.Text),
		Pane:       pane,
		PaneActive: pane.BorderForeground(p.Lavender),
		Title:      lipgloss.NewStyle().Foreground(p.Sapphire).Bold(true),
		Muted:      lipgloss.NewStyle().Foreground(p.Subtext0),
		Hot:        lipgloss.NewStyle().Foreground(p.Peach).Bold(true),
		Good:       lipgloss.NewStyle().Foreground(p.Green),
		Bad:        lipgloss.NewStyle().Foreground(p.Red),
		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Peach).
			Background(p.Mantle).
			Foreground(p.Text).
			Padding(0, 1),
	}
}
