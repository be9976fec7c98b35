package simulator

import (
	"context"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/go-go-golems/figaro/pkg/conversation"
	"github.com/go-go-golems/figaro/pkg/events"
)

const (
	DefaultBaseDelay    = 320 * time.Millisecond
	DefaultJitterWindow = 180 * time.Millisecond
)

// Simulator synthesizes scripted assistant replies and streams them into the
// store chunk by chunk, emulating token-by-token generation. Every call to
// Respond starts an independent stream; streams are not serialized against
// each other, the composer is expected to submit one at a time.
type Simulator struct {
	store            *conversation.Store
	publisherManager *events.PublisherManager

	// baseDelay must stay above jitterWindow or chunk delivery order is no
	// longer guaranteed
	baseDelay    time.Duration
	jitterWindow time.Duration
	sessionID    string
}

type Option func(*Simulator)

func WithBaseDelay(d time.Duration) Option {
	return func(s *Simulator) {
		s.baseDelay = d
	}
}

func WithJitterWindow(d time.Duration) Option {
	return func(s *Simulator) {
		s.jitterWindow = d
	}
}

func WithSessionID(sessionID string) Option {
	return func(s *Simulator) {
		s.sessionID = sessionID
	}
}

func NewSimulator(store *conversation.Store, options ...Option) *Simulator {
	ret := &Simulator{
		store:            store,
		publisherManager: events.NewPublisherManager(),
		baseDelay:        DefaultBaseDelay,
		jitterWindow:     DefaultJitterWindow,
	}

	for _, option := range options {
		option(ret)
	}

	return ret
}

func (s *Simulator) AddPublishedTopic(publisher message.Publisher, topic string) error {
	s.publisherManager.SubscribePublisher(topic, publisher)
	return nil
}

// Stream is the handle for one in-flight simulated response. Cancelling it
// prevents any further scheduled updates from landing in the store.
type Stream struct {
	MessageID      string
	ConversationID string

	cancel context.CancelFunc
	eg     *errgroup.Group
}

func (s *Stream) Cancel() {
	s.cancel()
}

// Wait blocks until the stream has delivered its final chunk or was
// cancelled, in which case it returns the context error.
func (s *Stream) Wait() error {
	return s.eg.Wait()
}

// Respond synchronously appends a placeholder assistant message (empty
// content, thinking status, reasoning trace attached), marks it as streaming,
// and schedules one deferred update per chunk. The final chunk flips the
// message to ready and clears the streaming marker.
func (s *Simulator) Respond(ctx context.Context, conversationID string, prompt string) (*Stream, error) {
	if s.store == nil {
		return nil, errors.New("simulator has no store")
	}

	draft := BuildDraft(prompt)
	if len(draft.Chunks) == 0 {
		return nil, errors.New("draft has no chunks")
	}

	msg := conversation.NewMessage(
		conversation.RoleAssistant, "",
		conversation.WithStatus(conversation.MessageStatusThinking),
		conversation.WithReasoning(draft.Reasoning...),
	)
	s.store.AppendMessage(conversationID, msg)
	s.store.SetStreamingMessage(msg.ID)

	metadata := events.EventMetadata{
		MessageID:      msg.ID,
		ConversationID: conversationID,
		SessionID:      s.sessionID,
	}
	s.publisherManager.PublishBlind(events.NewStartEvent(metadata))

	offsets := Schedule(len(draft.Chunks), s.baseDelay, s.jitterWindow)

	log.Debug().
		Str("conversation_id", conversationID).
		Str("message_id", msg.ID).
		Int("chunks", len(draft.Chunks)).
		Dur("last_offset", offsets[len(offsets)-1]).
		Msg("starting simulated response")

	ctx, cancel := context.WithCancel(ctx)
	eg, ctx := errgroup.WithContext(ctx)

	ret := &Stream{
		MessageID:      msg.ID,
		ConversationID: conversationID,
		cancel:         cancel,
		eg:             eg,
	}

	eg.Go(func() error {
		start := time.Now()
		var assembled strings.Builder

		for idx, chunk := range draft.Chunks {
			select {
			case <-ctx.Done():
				s.store.ClearStreamingMessage(msg.ID)
				s.publisherManager.PublishBlind(
					events.NewInterruptEvent(metadata, strings.TrimSpace(assembled.String())))
				return ctx.Err()
			case <-time.After(time.Until(start.Add(offsets[idx]))):
			}

			assembled.WriteString(chunk)
			content := strings.TrimSpace(assembled.String())
			now := time.Now()
			final := idx == len(draft.Chunks)-1

			status := conversation.MessageStatusThinking
			if final {
				status = conversation.MessageStatusReady
			}

			s.store.UpdateMessage(conversationID, msg.ID, conversation.MessagePatch{
				Content:   &content,
				Status:    &status,
				CreatedAt: &now,
			})

			if final {
				s.store.ClearStreamingMessage(msg.ID)
				s.publisherManager.PublishBlind(events.NewFinalEvent(metadata, content))
			} else {
				s.publisherManager.PublishBlind(events.NewPartialCompletionEvent(metadata, chunk, content))
			}
		}

		return nil
	})

	return ret, nil
}
