package tui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle is used for screen and summary titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")). // Purple
			MarginBottom(1)

	// SelectedItemStyle is used for highlighted/selected items.
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")). // Light purple
				Bold(true)

	// NormalItemStyle is used for non-selected items.
	NormalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")) // Light gray

	// ErrorStyle is used for error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	// LabelStyle is used for summary field labels.
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")). // Light blue
			Bold(true)

	// ValueStyle is used for summary field values.
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")) // Light gray

	// DescriptionStyle is used for the wrapped database description.
	DescriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241")) // Dark gray
)
