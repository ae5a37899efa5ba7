package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The board must stay readable on both light and dark terminals, so colors
// are adaptive and "faint" styling is only applied on dark backgrounds
// (faint text on light terminals often becomes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if termenv.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted    = ac("240", "243")
	colorAccent   = ac("27", "62") // blue
	colorDanger   = ac("124", "167")
	colorDone     = ac("28", "71")
	colorHeldBg   = ac("#e9e9e9", "#262626")
	colorSelBg    = ac("#e9e9e9", "#262626")
	colorSelFg    = ac("235", "255")
	colorBorder   = ac("250", "243")
	colorBorderOn = ac("232", "255")

	urgencyColors = map[string]lipgloss.AdaptiveColor{
		"High":   ac("124", "167"), // red
		"Medium": ac("130", "179"), // orange
		"Low":    ac("28", "71"),   // green
		"None":   ac("240", "245"), // gray
	}
)

var (
	styleTitle = lipgloss.NewStyle().Bold(true)
	styleMuted = lipgloss.NewStyle().Foreground(colorMuted)
	styleBadge = lipgloss.NewStyle().Foreground(colorAccent)
	styleDone  = lipgloss.NewStyle().Foreground(colorDone).Strikethrough(true)
	styleSel   = lipgloss.NewStyle().Background(colorSelBg).Foreground(colorSelFg)
	styleHeld  = lipgloss.NewStyle().Background(colorHeldBg).Bold(true)
	styleChip  = lipgloss.NewStyle().Padding(0, 1)
)

func quadrantStyle(selected bool, width, height int) lipgloss.Style {
	border := colorBorder
	if selected {
		border = colorBorderOn
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(width).
		Height(height).
		Padding(0, 1)
}

func urgencyTitleStyle(u string) lipgloss.Style {
	c, ok := urgencyColors[u]
	if !ok {
		c = colorMuted
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c)
}
