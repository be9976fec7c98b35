package ui

import "github.com/charmbracelet/lipgloss"

type Style struct {
	Sidebar             lipgloss.Style
	SidebarTitle        lipgloss.Style
	SectionLabel        lipgloss.Style
	ConversationItem    lipgloss.Style
	SelectedItem        lipgloss.Style
	ActiveItem          lipgloss.Style
	ItemPreview         lipgloss.Style
	ItemTimestamp       lipgloss.Style
	Header              lipgloss.Style
	RoleUser            lipgloss.Style
	RoleAssistant       lipgloss.Style
	RoleSystem          lipgloss.Style
	Reasoning           lipgloss.Style
	Thinking            lipgloss.Style
	FocusedComposer     lipgloss.Style
	UnfocusedComposer   lipgloss.Style
	StatusLine          lipgloss.Style
	ErrorLine           lipgloss.Style
}

type BorderColors struct {
	Unfocused string
	Focused   string
}

func DefaultStyles() *Style {
	lightModeColors := BorderColors{
		Unfocused: "#CCCCCC",
		Focused:   "#FFB6C1",
	}

	darkModeColors := BorderColors{
		Unfocused: "#444444",
		Focused:   "#DD7090",
	}

	unfocusedBorder := lipgloss.AdaptiveColor{
		Light: lightModeColors.Unfocused,
		Dark:  darkModeColors.Unfocused,
	}
	focusedBorder := lipgloss.AdaptiveColor{
		Light: lightModeColors.Focused,
		Dark:  darkModeColors.Focused,
	}

	subtle := lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	accent := lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}

	return &Style{
		Sidebar: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(unfocusedBorder).
			Padding(0, 1),
		SidebarTitle: lipgloss.NewStyle().Bold(true).Foreground(accent),
		SectionLabel: lipgloss.NewStyle().Foreground(subtle).Bold(true),
		ConversationItem: lipgloss.NewStyle(),
		SelectedItem: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		ActiveItem: lipgloss.NewStyle().
			Foreground(focusedBorder),
		ItemPreview:   lipgloss.NewStyle().Foreground(subtle),
		ItemTimestamp: lipgloss.NewStyle().Foreground(subtle).Italic(true),
		Header: lipgloss.NewStyle().Bold(true).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(unfocusedBorder),
		RoleUser:      lipgloss.NewStyle().Bold(true),
		RoleAssistant: lipgloss.NewStyle().Bold(true).Foreground(accent),
		RoleSystem:    lipgloss.NewStyle().Bold(true).Foreground(subtle),
		Reasoning:     lipgloss.NewStyle().Foreground(subtle).Italic(true),
		Thinking:      lipgloss.NewStyle().Foreground(subtle).Italic(true),
		FocusedComposer: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(focusedBorder).
			Padding(0, 1),
		UnfocusedComposer: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(unfocusedBorder).
			Padding(0, 1),
		StatusLine: lipgloss.NewStyle().Foreground(subtle),
		ErrorLine:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87")),
	}
}
