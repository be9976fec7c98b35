package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	SelectPrevConversation key.Binding
	SelectNextConversation key.Binding
	OpenConversation       key.Binding
	FocusComposer          key.Binding
	UnfocusComposer        key.Binding
	SubmitMessage          key.Binding
	NewConversation        key.Binding
	TogglePin              key.Binding
	RenameConversation     key.Binding
	FocusSearch            key.Binding
	CancelStream           key.Binding
	ScrollUp               key.Binding
	ScrollDown             key.Binding
	Quit                   key.Binding
}

var DefaultKeyMap = KeyMap{
	SelectPrevConversation: key.NewBinding(key.WithKeys("up")),
	SelectNextConversation: key.NewBinding(key.WithKeys("down")),
	OpenConversation:       key.NewBinding(key.WithKeys("enter")),
	FocusComposer:          key.NewBinding(key.WithKeys("tab")),
	UnfocusComposer:        key.NewBinding(key.WithKeys("esc", "ctrl+g")),
	SubmitMessage:          key.NewBinding(key.WithKeys("tab")),
	NewConversation:        key.NewBinding(key.WithKeys("ctrl+n")),
	TogglePin:              key.NewBinding(key.WithKeys("ctrl+p")),
	RenameConversation:     key.NewBinding(key.WithKeys("ctrl+r")),
	FocusSearch:            key.NewBinding(key.WithKeys("ctrl+f", "/")),
	CancelStream:           key.NewBinding(key.WithKeys("ctrl+x")),
	ScrollUp:               key.NewBinding(key.WithKeys("pgup", "shift+up")),
	ScrollDown:             key.NewBinding(key.WithKeys("pgdown", "shift+down")),
	Quit:                   key.NewBinding(key.WithKeys("ctrl+c")),
}
