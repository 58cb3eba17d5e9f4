package main

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title lipgloss.Style
	label lipgloss.Style
	cpu   lipgloss.Style
	video lipgloss.Style
	pass  lipgloss.Style
	fail  lipgloss.Style
	box   lipgloss.Style
}

// ANSI colours: 1 red, 2 green, 3 yellow, 4 blue, 6 cyan, 7 white, 8 grey
func newStyles() styles {
	return styles{
		title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(3)),
		label: lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(8)),
		cpu:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(4)),
		video: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(6)),
		pass:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(2)),
		fail:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(1)),
		box:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}
