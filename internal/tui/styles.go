package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor   = lipgloss.Color("#10B981")
	secondaryColor = lipgloss.Color("#6B7280")
	dangerColor    = lipgloss.Color("#EF4444")

	// Status bar
	statusBarStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1)

	// List
	categoryStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	checkedStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Strikethrough(true)

	noteStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Italic(true)

	numberStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// Autocomplete dropdown
	suggestionStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	suggestionSelectedStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Bold(true)

	// Flash line
	flashStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Italic(true)

	flashErrStyle = lipgloss.NewStyle().
			Foreground(dangerColor)

	// Input area
	inputPromptStyle = lipgloss.NewStyle().
				Foreground(primaryColor)
)
