package conversation

import (
	"time"

	"github.com/lithammer/shortuuid/v3"
)

const (
	DefaultTitle   = "Untitled conversation"
	DefaultPreview = "Say something to start the conversation…"

	// ThinkingPreview is shown while a streamed message has no visible text yet.
	ThinkingPreview = "Thinking…"
)

// Conversation is a titled, ordered thread of messages. Preview holds a short
// snapshot of the most recent meaningful content and LastActivityAt tracks the
// timestamp of the most recently touched message.
type Conversation struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Pinned         bool       `json:"pinned,omitempty"`
	LastActivityAt time.Time  `json:"lastActivityAt"`
	Preview        string     `json:"preview"`
	Messages       []*Message `json:"messages"`
}

type ConversationOption func(*Conversation)

func WithConversationID(id string) ConversationOption {
	return func(c *Conversation) {
		c.ID = id
	}
}

func WithTitle(title string) ConversationOption {
	return func(c *Conversation) {
		c.Title = title
	}
}

func WithPinned(pinned bool) ConversationOption {
	return func(c *Conversation) {
		c.Pinned = pinned
	}
}

func WithPreview(preview string) ConversationOption {
	return func(c *Conversation) {
		c.Preview = preview
	}
}

func WithLastActivityAt(t time.Time) ConversationOption {
	return func(c *Conversation) {
		c.LastActivityAt = t
	}
}

func WithMessages(messages ...*Message) ConversationOption {
	return func(c *Conversation) {
		c.Messages = messages
	}
}

func NewConversation(options ...ConversationOption) *Conversation {
	ret := &Conversation{
		ID:             NewConversationID(),
		Title:          DefaultTitle,
		Preview:        DefaultPreview,
		LastActivityAt: time.Now(),
	}

	for _, option := range options {
		option(ret)
	}

	return ret
}

// NewConversationID returns an opaque conversation identifier.
func NewConversationID() string {
	return "conv-" + shortuuid.New()
}

func (c *Conversation) Clone() *Conversation {
	if c == nil {
		return nil
	}
	ret := *c
	ret.Messages = make([]*Message, len(c.Messages))
	for i, m := range c.Messages {
		ret.Messages[i] = m.Clone()
	}
	return &ret
}

// LastAssistantMessage returns the most recent assistant turn, if any.
func (c *Conversation) LastAssistantMessage() (*Message, bool) {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleAssistant {
			return c.Messages[i], true
		}
	}
	return nil, false
}

func (c *Conversation) findMessage(messageID string) (*Message, bool) {
	for _, m := range c.Messages {
		if m.ID == messageID {
			return m, true
		}
	}
	return nil, false
}
