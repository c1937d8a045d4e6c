package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Semantic colors, picked for the detected terminal background. The
// ANIMLIB_THEME environment variable (or the theme config key, exported
// by main) forces light or dark.
var (
	colorPrimary   lipgloss.Color
	colorSuccess   lipgloss.Color
	colorError     lipgloss.Color
	colorTextMuted lipgloss.Color
	colorBorder    lipgloss.Color
)

func initializeColors() {
	switch os.Getenv("ANIMLIB_THEME") {
	case "light":
		setLightThemeColors()
		return
	case "dark":
		setDarkThemeColors()
		return
	}
	if lipgloss.HasDarkBackground() {
		setDarkThemeColors()
	} else {
		setLightThemeColors()
	}
}

func setDarkThemeColors() {
	colorPrimary = lipgloss.Color("205")
	colorSuccess = lipgloss.Color("42")
	colorError = lipgloss.Color("196")
	colorTextMuted = lipgloss.Color("245")
	colorBorder = lipgloss.Color("240")
}

func setLightThemeColors() {
	colorPrimary = lipgloss.Color("162")
	colorSuccess = lipgloss.Color("28")
	colorError = lipgloss.Color("124")
	colorTextMuted = lipgloss.Color("243")
	colorBorder = lipgloss.Color("250")
}

var (
	titleStyle  lipgloss.Style
	statusStyle lipgloss.Style
	errorStyle  lipgloss.Style
	helpStyle   lipgloss.Style
	detailStyle lipgloss.Style
)

func initializeStyles() {
	initializeColors()

	titleStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
		Foreground(colorSuccess).
		Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
		Foreground(colorTextMuted).
		Padding(0, 1)

	detailStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)
}
