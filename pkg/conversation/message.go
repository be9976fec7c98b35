package conversation

import (
	"fmt"
	"strings"
	"time"

	"github.com/lithammer/shortuuid/v3"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleAssistant Role = "assistant"
	RoleUser      Role = "user"
)

type MessageStatus string

const (
	// MessageStatusThinking marks a message that is still being streamed in.
	MessageStatusThinking MessageStatus = "thinking"
	MessageStatusReady    MessageStatus = "ready"
)

// Message is a single turn inside a conversation. Content and Status are
// mutable while the message is streaming and frozen once it is ready.
// Reasoning is assistant-only and fixed at creation time.
type Message struct {
	ID        string        `json:"id"`
	Role      Role          `json:"role"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"createdAt"`
	Status    MessageStatus `json:"status,omitempty"`
	Reasoning []string      `json:"reasoning,omitempty"`
}

type MessageOption func(*Message)

func WithID(id string) MessageOption {
	return func(message *Message) {
		message.ID = id
	}
}

func WithCreatedAt(t time.Time) MessageOption {
	return func(message *Message) {
		message.CreatedAt = t
	}
}

func WithStatus(status MessageStatus) MessageOption {
	return func(message *Message) {
		message.Status = status
	}
}

func WithReasoning(reasoning ...string) MessageOption {
	return func(message *Message) {
		message.Reasoning = reasoning
	}
}

func NewMessage(role Role, content string, options ...MessageOption) *Message {
	ret := &Message{
		ID:        NewMessageID(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}

	for _, option := range options {
		option(ret)
	}

	return ret
}

// NewMessageID returns an opaque message identifier.
func NewMessageID() string {
	return "msg-" + shortuuid.New()
}

func (m *Message) Clone() *Message {
	if m == nil {
		return nil
	}
	ret := *m
	if m.Reasoning != nil {
		ret.Reasoning = append([]string(nil), m.Reasoning...)
	}
	return &ret
}

func (m *Message) View() string {
	return fmt.Sprintf("[%s]: %s", m.Role, strings.TrimRight(m.Content, "\n"))
}

// MessagePatch is a partial update merged onto an existing message. Nil
// fields are left untouched.
type MessagePatch struct {
	Content   *string
	Status    *MessageStatus
	CreatedAt *time.Time
	Reasoning []string
}

func (p MessagePatch) apply(m *Message) {
	if p.Content != nil {
		m.Content = *p.Content
	}
	if p.Status != nil {
		m.Status = *p.Status
	}
	if p.CreatedAt != nil {
		m.CreatedAt = *p.CreatedAt
	}
	if p.Reasoning != nil {
		m.Reasoning = append([]string(nil), p.Reasoning...)
	}
}
