package ui

import (
	"time"

	"github.com/go-go-golems/figaro/pkg/conversation"
)

// SidebarSection is one labelled group of conversations in the sidebar.
type SidebarSection struct {
	Label         string
	Conversations []*conversation.Conversation
}

// PinnedSectionLabel heads the pinned group, which always sorts first.
const PinnedSectionLabel = "Pinned"

// BuildSidebarSections groups conversations for display. Pinned conversations
// go into their own leading section. The rest are bucketed by SectionLabel,
// with sections ordered by the most recent conversation they contain. The
// input is assumed to already be sorted by recency, which the store
// guarantees.
func BuildSidebarSections(conversations []*conversation.Conversation, now time.Time) []SidebarSection {
	sections := []SidebarSection{}

	pinned := []*conversation.Conversation{}
	for _, c := range conversations {
		if c.Pinned {
			pinned = append(pinned, c)
		}
	}
	if len(pinned) > 0 {
		sections = append(sections, SidebarSection{
			Label:         PinnedSectionLabel,
			Conversations: pinned,
		})
	}

	index := map[string]int{}
	for _, c := range conversations {
		if c.Pinned {
			continue
		}
		label := SectionLabel(c.LastActivityAt, now)
		i, ok := index[label]
		if !ok {
			i = len(sections)
			index[label] = i
			sections = append(sections, SidebarSection{Label: label})
		}
		sections[i].Conversations = append(sections[i].Conversations, c)
	}

	return sections
}

// flattenSections returns the conversations in on-screen order, used to drive
// keyboard selection over the section list.
func flattenSections(sections []SidebarSection) []*conversation.Conversation {
	flat := []*conversation.Conversation{}
	for _, s := range sections {
		flat = append(flat, s.Conversations...)
	}
	return flat
}
