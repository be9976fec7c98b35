package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/figaro/pkg/conversation"
	"github.com/go-go-golems/figaro/pkg/events"
	"github.com/go-go-golems/figaro/pkg/simulator"
)

type focusArea int

const (
	focusComposer focusArea = iota
	focusSidebar
	focusSearch
	focusRename
)

const sidebarWidth = 36

type Model struct {
	store *conversation.Store
	sim   *simulator.Simulator

	keyMap KeyMap
	style  *Style

	composer    textarea.Model
	searchInput textinput.Model
	titleInput  textinput.Model
	timeline    viewport.Model

	focus    focusArea
	cursor   int
	stream   *simulator.Stream
	renderer *glamour.TermRenderer

	width  int
	height int
	ready  bool
	err    error
}

func NewModel(store *conversation.Store, sim *simulator.Simulator) Model {
	composer := textarea.New()
	composer.Placeholder = "Ask anything. Tab sends, Esc moves to the sidebar."
	composer.CharLimit = 0
	composer.SetHeight(3)
	composer.Focus()

	searchInput := textinput.New()
	searchInput.Placeholder = "Search conversations"

	titleInput := textinput.New()
	titleInput.Placeholder = "Conversation title"

	return Model{
		store:       store,
		sim:         sim,
		keyMap:      DefaultKeyMap,
		style:       DefaultStyles(),
		composer:    composer,
		searchInput: searchInput,
		titleInput:  titleInput,
		timeline:    viewport.New(0, 0),
		focus:       focusComposer,
	}
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg_ := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg_)

	case StreamMsg:
		return m.handleStreamEvent(msg_)

	case tea.KeyMsg:
		return m.handleKeyPress(msg_)
	}

	return m.updateFocusedInput(msg)
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	contentWidth := m.width - sidebarWidth - m.style.Sidebar.GetHorizontalFrameSize()
	if contentWidth < 20 {
		contentWidth = 20
	}

	composerFrame := m.style.FocusedComposer.GetHorizontalFrameSize()
	m.composer.SetWidth(contentWidth - composerFrame)
	m.searchInput.Width = sidebarWidth - 4
	m.titleInput.Width = contentWidth - 4

	headerHeight := 2
	composerHeight := m.composer.Height() + m.style.FocusedComposer.GetVerticalFrameSize()
	statusHeight := 1
	m.timeline.Width = contentWidth
	m.timeline.Height = m.height - headerHeight - composerHeight - statusHeight
	if m.timeline.Height < 1 {
		m.timeline.Height = 1
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(contentWidth),
	)
	if err != nil {
		log.Warn().Err(err).Msg("could not build markdown renderer")
		m.renderer = nil
	} else {
		m.renderer = renderer
	}

	m.refreshTimeline()
	return m, nil
}

func (m Model) handleStreamEvent(msg StreamMsg) (tea.Model, tea.Cmd) {
	switch msg.Event.Type() {
	case events.EventTypeFinal, events.EventTypeInterrupt:
		if m.stream != nil && m.stream.MessageID == msg.Event.Metadata().MessageID {
			m.stream = nil
		}
	}

	m.refreshTimeline()
	m.timeline.GotoBottom()
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keyMap

	switch {
	case key.Matches(msg, k.Quit):
		if m.stream != nil {
			m.stream.Cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, k.CancelStream):
		if m.stream != nil {
			m.stream.Cancel()
			m.stream = nil
			m.refreshTimeline()
		}
		return m, nil

	case key.Matches(msg, k.NewConversation):
		m.store.StartNewConversation()
		m.cursor = m.cursorForSelected()
		m.focus = focusComposer
		cmd := m.composer.Focus()
		m.refreshTimeline()
		return m, cmd

	case key.Matches(msg, k.ScrollUp):
		m.timeline.LineUp(3)
		return m, nil

	case key.Matches(msg, k.ScrollDown):
		m.timeline.LineDown(3)
		return m, nil
	}

	switch m.focus {
	case focusComposer:
		return m.handleComposerKey(msg)
	case focusSidebar:
		return m.handleSidebarKey(msg)
	case focusSearch:
		return m.handleSearchKey(msg)
	case focusRename:
		return m.handleRenameKey(msg)
	}

	return m, nil
}

func (m Model) handleComposerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.SubmitMessage):
		return m.submit()

	case key.Matches(msg, m.keyMap.UnfocusComposer):
		m.composer.Blur()
		m.focus = focusSidebar
		m.cursor = m.cursorForSelected()
		return m, nil
	}

	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	return m, cmd
}

func (m Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visibleConversations()

	switch {
	case key.Matches(msg, m.keyMap.SelectPrevConversation):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keyMap.SelectNextConversation):
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keyMap.OpenConversation):
		if m.cursor >= 0 && m.cursor < len(visible) {
			m.store.SelectConversation(visible[m.cursor].ID)
			m.refreshTimeline()
			m.timeline.GotoBottom()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.TogglePin):
		if m.cursor >= 0 && m.cursor < len(visible) {
			id := visible[m.cursor].ID
			m.store.TogglePin(id)
			m.cursor = m.cursorFor(id)
		}
		return m, nil

	case key.Matches(msg, m.keyMap.RenameConversation):
		if m.cursor >= 0 && m.cursor < len(visible) {
			m.store.SelectConversation(visible[m.cursor].ID)
			m.titleInput.SetValue(visible[m.cursor].Title)
			m.titleInput.CursorEnd()
			m.focus = focusRename
			return m, m.titleInput.Focus()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.FocusSearch):
		m.focus = focusSearch
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keyMap.FocusComposer):
		m.focus = focusComposer
		return m, m.composer.Focus()
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.searchInput.Reset()
		m.searchInput.Blur()
		m.store.ClearSearch()
		m.focus = focusSidebar
		m.cursor = 0
		return m, nil

	case tea.KeyEnter:
		m.searchInput.Blur()
		m.focus = focusSidebar
		m.cursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.store.UpdateSearchTerm(m.searchInput.Value())
	m.cursor = 0
	return m, cmd
}

func (m Model) handleRenameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.titleInput.Blur()
		m.focus = focusSidebar
		return m, nil

	case tea.KeyEnter:
		trimmed := strings.TrimSpace(m.titleInput.Value())
		if c, ok := m.store.ActiveConversation(); ok {
			// empty or unchanged titles revert silently
			if trimmed != "" && trimmed != c.Title {
				m.store.UpdateConversationTitle(c.ID, trimmed)
			}
		}
		m.titleInput.Blur()
		m.focus = focusSidebar
		m.refreshTimeline()
		return m, nil
	}

	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	return m, cmd
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusComposer:
		m.composer, cmd = m.composer.Update(msg)
	case focusSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case focusRename:
		m.titleInput, cmd = m.titleInput.Update(msg)
	}
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	trimmed := strings.TrimSpace(m.composer.Value())
	if trimmed == "" {
		return m, nil
	}
	if m.stream != nil {
		// one response at a time; the composer keeps its text
		return m, nil
	}

	conversationID := m.store.SelectedConversationID()
	if conversationID == "" {
		c := m.store.StartNewConversation()
		conversationID = c.ID
	}

	m.store.AppendMessage(conversationID, conversation.NewMessage(conversation.RoleUser, trimmed))
	m.composer.Reset()

	stream, err := m.sim.Respond(context.Background(), conversationID, trimmed)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.stream = stream
	m.err = nil

	m.cursor = m.cursorForSelected()
	m.refreshTimeline()
	m.timeline.GotoBottom()
	return m, nil
}

func (m *Model) visibleConversations() []*conversation.Conversation {
	return flattenSections(BuildSidebarSections(m.store.Conversations(), time.Now()))
}

func (m *Model) cursorForSelected() int {
	return m.cursorFor(m.store.SelectedConversationID())
}

func (m *Model) cursorFor(conversationID string) int {
	for i, c := range m.visibleConversations() {
		if c.ID == conversationID {
			return i
		}
	}
	return 0
}

func (m *Model) refreshTimeline() {
	c, ok := m.store.ActiveConversation()
	if !ok {
		m.timeline.SetContent(m.style.StatusLine.Render(
			"No conversation selected. Press ctrl+n to start one."))
		return
	}

	blocks := make([]string, 0, len(c.Messages))
	for _, msg := range c.Messages {
		blocks = append(blocks, m.renderMessage(msg))
	}
	m.timeline.SetContent(strings.Join(blocks, "\n\n"))
}

func (m *Model) renderMessage(msg *conversation.Message) string {
	width := m.timeline.Width
	if width <= 0 {
		width = 80
	}

	var header string
	switch msg.Role {
	case conversation.RoleUser:
		header = m.style.RoleUser.Render("You")
	case conversation.RoleAssistant:
		header = m.style.RoleAssistant.Render("Figaro")
	default:
		header = m.style.RoleSystem.Render("System")
	}
	header += m.style.ItemTimestamp.Render("  " + FormatRelativeTime(msg.CreatedAt, time.Now()))

	if msg.Role == conversation.RoleAssistant && msg.Status == conversation.MessageStatusThinking {
		lines := []string{header}
		for _, step := range msg.Reasoning {
			lines = append(lines, m.style.Reasoning.Render(wordwrap.String("· "+step, width)))
		}
		if msg.Content != "" {
			lines = append(lines, wordwrap.String(msg.Content, width))
		}
		lines = append(lines, m.style.Thinking.Render(conversation.ThinkingPreview))
		return strings.Join(lines, "\n")
	}

	body := msg.Content
	if msg.Role == conversation.RoleAssistant && m.renderer != nil {
		if rendered, err := m.renderer.Render(msg.Content); err == nil {
			body = strings.TrimRight(rendered, "\n")
		}
	} else {
		body = wordwrap.String(body, width)
	}

	return header + "\n" + body
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	sidebar := m.viewSidebar()
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(),
		m.timeline.View(),
		m.viewComposer(),
		m.viewStatusLine(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content)
}

func (m Model) viewSidebar() string {
	var b strings.Builder

	b.WriteString(m.style.SidebarTitle.Render("Conversations"))
	b.WriteString("\n")

	if m.focus == focusSearch {
		b.WriteString(m.searchInput.View())
	} else if term := m.store.SearchTerm(); term != "" {
		b.WriteString(m.style.StatusLine.Render("filter: " + term))
	} else {
		b.WriteString(m.style.StatusLine.Render("ctrl+f to search"))
	}
	b.WriteString("\n")

	now := time.Now()
	sections := BuildSidebarSections(m.store.Conversations(), now)
	selectedID := m.store.SelectedConversationID()

	i := 0
	for _, section := range sections {
		b.WriteString("\n")
		b.WriteString(m.style.SectionLabel.Render(section.Label))
		b.WriteString("\n")

		for _, c := range section.Conversations {
			b.WriteString(m.viewSidebarItem(c, i, selectedID, now))
			i++
		}
	}

	if i == 0 {
		b.WriteString("\n")
		b.WriteString(m.style.ItemPreview.Render("No conversations match."))
		b.WriteString("\n")
	}

	return m.style.Sidebar.
		Width(sidebarWidth).
		Height(m.height).
		Render(b.String())
}

func (m Model) viewSidebarItem(c *conversation.Conversation, i int, selectedID string, now time.Time) string {
	itemWidth := sidebarWidth - m.style.Sidebar.GetHorizontalFrameSize()

	marker := "  "
	if c.Pinned {
		marker = "✦ "
	}

	title := truncateRunes(marker+c.Title, itemWidth)
	titleStyle := m.style.ConversationItem
	if m.focus == focusSidebar && i == m.cursor {
		titleStyle = m.style.SelectedItem
	} else if c.ID == selectedID {
		titleStyle = m.style.ActiveItem
	}

	detail := fmt.Sprintf("%s · %s",
		FormatRelativeTime(c.LastActivityAt, now),
		c.Preview,
	)

	return titleStyle.Render(title) + "\n" +
		m.style.ItemPreview.Render("  "+truncateRunes(detail, itemWidth-2)) + "\n"
}

func (m Model) viewHeader() string {
	width := m.timeline.Width

	if m.focus == focusRename {
		return m.style.Header.Width(width).Render("Rename: " + m.titleInput.View())
	}

	title := "Figaro"
	if c, ok := m.store.ActiveConversation(); ok {
		title = c.Title
		if m.stream != nil {
			title += "  " + m.style.Thinking.Render(conversation.ThinkingPreview)
		}
	}
	return m.style.Header.Width(width).Render(truncateRunes(title, width))
}

func (m Model) viewComposer() string {
	style := m.style.UnfocusedComposer
	if m.focus == focusComposer {
		style = m.style.FocusedComposer
	}
	return style.Render(m.composer.View())
}

func (m Model) viewStatusLine() string {
	if m.err != nil {
		return m.style.ErrorLine.Render("error: " + m.err.Error())
	}

	hints := "tab: send · esc: sidebar · ctrl+n: new · ctrl+p: pin · ctrl+r: rename · ctrl+f: search · ctrl+c: quit"
	if m.stream != nil {
		hints = "responding... ctrl+x to stop · " + hints
	}
	return m.style.StatusLine.Render(truncateRunes(hints, m.timeline.Width))
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
