package components

import (
	"github.com/charmbracelet/bubbles/list"

	"studysphere/internal/ui/theme"
)

// NewList builds the filterable list used by every tab.
func NewList(styles *theme.Styles, title string) list.Model {
	l := list.New(nil, delegate(styles), 0, 0)
	l.Title = title
	l.Styles.Title = styles.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	return l
}

// Restyle re-applies styles after a theme switch.
func Restyle(l *list.Model, styles *theme.Styles) {
	l.SetDelegate(delegate(styles))
	l.Styles.Title = styles.Title
}

func delegate(styles *theme.Styles) list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.
		Foreground(styles.Palette.Lavender).BorderForeground(styles.Palette.Lavender)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.
		Foreground(styles.Palette.Sapphire).BorderForeground(styles.Palette.Lavender)
	return d
}
