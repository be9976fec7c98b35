package conversation

import (
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// Store holds every conversation along with the ambient view state (selected
// conversation, search term, currently streaming message). It is the single
// source of truth: presentation layers get a Store injected and re-read it
// after every mutation.
//
// All operations take the store mutex and run to completion, so each mutation
// is atomic with respect to the simulator's timer goroutines. Selectors
// return deep copies; callers never alias live state.
//
// Mutations against unknown conversation or message IDs are silent no-ops.
type Store struct {
	mu sync.Mutex

	conversations      []*Conversation
	selectedID         string
	searchTerm         string
	streamingMessageID string
}

type StoreOption func(*Store)

func WithConversations(conversations ...*Conversation) StoreOption {
	return func(s *Store) {
		s.conversations = conversations
	}
}

func NewStore(options ...StoreOption) *Store {
	ret := &Store{}
	for _, option := range options {
		option(ret)
	}
	ret.sortLocked()
	return ret
}

// SelectConversation sets the active conversation pointer. The id is not
// validated; selecting an unknown id simply yields no active conversation.
func (s *Store) SelectConversation(conversationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = conversationID
}

// StartNewConversation creates an empty conversation, inserts it at the head
// of the list, makes it active and returns a copy of it.
func (s *Store) StartNewConversation() *Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := NewConversation()
	s.conversations = append([]*Conversation{c}, s.conversations...)
	s.selectedID = c.ID

	log.Debug().Str("conversation_id", c.ID).Msg("started new conversation")

	return c.Clone()
}

func (s *Store) UpdateConversationTitle(conversationID string, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.findLocked(conversationID)
	if !ok {
		return
	}
	c.Title = title
}

// AppendMessage appends a message to the conversation, defaults its status to
// ready, refreshes preview and last activity, re-sorts the list and makes the
// conversation active.
func (s *Store) AppendMessage(conversationID string, message *Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.findLocked(conversationID)
	if !ok {
		log.Debug().Str("conversation_id", conversationID).Msg("append on unknown conversation, skipping")
		return
	}

	msg := message.Clone()
	if msg.Status == "" {
		msg.Status = MessageStatusReady
	}

	c.Messages = append(c.Messages, msg)
	if msg.Content != "" {
		c.Preview = msg.Content
	}
	c.LastActivityAt = msg.CreatedAt

	s.sortLocked()
	s.selectedID = conversationID

	log.Trace().
		Str("conversation_id", conversationID).
		Str("message_id", msg.ID).
		Str("role", string(msg.Role)).
		Int("message_count", len(c.Messages)).
		Msg("appended message")
}

// UpdateMessage merges the patch onto the matching message, then recomputes
// the conversation preview from the trimmed content (falling back to the
// thinking placeholder when empty) and the last activity timestamp, and
// re-sorts the list.
func (s *Store) UpdateMessage(conversationID string, messageID string, patch MessagePatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.findLocked(conversationID)
	if !ok {
		return
	}
	msg, ok := c.findMessage(messageID)
	if !ok {
		return
	}

	patch.apply(msg)

	trimmed := strings.TrimSpace(msg.Content)
	if trimmed != "" {
		c.Preview = trimmed
	} else {
		c.Preview = ThinkingPreview
	}

	switch {
	case patch.CreatedAt != nil:
		c.LastActivityAt = *patch.CreatedAt
	case !msg.CreatedAt.IsZero():
		c.LastActivityAt = msg.CreatedAt
	}

	s.sortLocked()

	log.Trace().
		Str("conversation_id", conversationID).
		Str("message_id", messageID).
		Str("status", string(msg.Status)).
		Msg("updated message")
}

func (s *Store) TogglePin(conversationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.findLocked(conversationID)
	if !ok {
		return
	}
	c.Pinned = !c.Pinned
}

func (s *Store) UpdateSearchTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchTerm = term
}

func (s *Store) ClearSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchTerm = ""
}

// SetStreamingMessage tracks which message is currently receiving streamed
// updates. An empty id means no message is streaming.
func (s *Store) SetStreamingMessage(messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streamingMessageID = messageID
}

// ClearStreamingMessage clears the streaming marker only if it still points
// at the given message, so a finished or cancelled stream cannot clobber the
// marker of a newer one.
func (s *Store) ClearStreamingMessage(messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.streamingMessageID == messageID {
		s.streamingMessageID = ""
	}
}

// Conversations returns the conversation list filtered by the current search
// term (case-insensitive substring match on title and preview), sorted by
// last activity descending.
func (s *Store) Conversations() []*Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	term := strings.TrimSpace(s.searchTerm)
	ret := make([]*Conversation, 0, len(s.conversations))
	for _, c := range s.conversations {
		if term != "" && !matchesTerm(c, term) {
			continue
		}
		ret = append(ret, c.Clone())
	}
	return ret
}

// AllConversations returns the full list regardless of the search term.
func (s *Store) AllConversations() []*Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	ret := make([]*Conversation, 0, len(s.conversations))
	for _, c := range s.conversations {
		ret = append(ret, c.Clone())
	}
	return ret
}

func (s *Store) Conversation(conversationID string) (*Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.findLocked(conversationID)
	if !ok {
		return nil, false
	}
	return c.Clone(), true
}

func (s *Store) ActiveConversation() (*Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selectedID == "" {
		return nil, false
	}
	c, ok := s.findLocked(s.selectedID)
	if !ok {
		return nil, false
	}
	return c.Clone(), true
}

func (s *Store) SelectedConversationID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedID
}

func (s *Store) SearchTerm() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchTerm
}

func (s *Store) StreamingMessageID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streamingMessageID
}

func (s *Store) findLocked(conversationID string) (*Conversation, bool) {
	for _, c := range s.conversations {
		if c.ID == conversationID {
			return c, true
		}
	}
	return nil, false
}

// sortLocked orders conversations by last activity descending. The sort is
// stable: conversations with identical timestamps keep their prior relative
// order.
func (s *Store) sortLocked() {
	sort.SliceStable(s.conversations, func(i, j int) bool {
		return s.conversations[i].LastActivityAt.After(s.conversations[j].LastActivityAt)
	})
}

func matchesTerm(c *Conversation, term string) bool {
	lower := strings.ToLower(term)
	return strings.Contains(strings.ToLower(c.Title), lower) ||
		strings.Contains(strings.ToLower(c.Preview), lower)
}
