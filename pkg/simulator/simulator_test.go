package simulator

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-go-golems/figaro/pkg/conversation"
	"github.com/go-go-golems/figaro/pkg/events"
)

type capturePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (c *capturePublisher) Publish(topic string, messages ...*message.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, msg := range messages {
		c.payloads = append(c.payloads, msg.Payload)
	}
	return nil
}

func (c *capturePublisher) Close() error {
	return nil
}

func (c *capturePublisher) Events(t *testing.T) []events.Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	ret := make([]events.Event, 0, len(c.payloads))
	for _, payload := range c.payloads {
		e, err := events.NewEventFromJson(payload)
		require.NoError(t, err)
		ret = append(ret, e)
	}
	return ret
}

func newTestSimulator(t *testing.T) (*conversation.Store, *Simulator, *capturePublisher) {
	t.Helper()

	store := conversation.NewStore(conversation.WithConversations(
		conversation.NewConversation(conversation.WithConversationID("conv-test")),
	))
	sim := NewSimulator(store,
		WithBaseDelay(5*time.Millisecond),
		WithJitterWindow(2*time.Millisecond),
	)

	publisher := &capturePublisher{}
	err := sim.AddPublishedTopic(publisher, "test")
	require.NoError(t, err)

	return store, sim, publisher
}

func TestRespondSynchronouslyCreatesThinkingMessage(t *testing.T) {
	store := conversation.NewStore(conversation.WithConversations(
		conversation.NewConversation(conversation.WithConversationID("conv-test")),
	))
	// long delays so the first chunk cannot land before the assertions run
	sim := NewSimulator(store,
		WithBaseDelay(time.Second),
		WithJitterWindow(0),
	)

	stream, err := sim.Respond(context.Background(), "conv-test", "Plan my week")
	require.NoError(t, err)
	defer func() {
		stream.Cancel()
		_ = stream.Wait()
	}()

	c, ok := store.Conversation("conv-test")
	require.True(t, ok)
	require.Len(t, c.Messages, 1)

	msg := c.Messages[0]
	assert.Equal(t, conversation.RoleAssistant, msg.Role)
	assert.Equal(t, conversation.MessageStatusThinking, msg.Status)
	assert.Empty(t, msg.Content)
	assert.Len(t, msg.Reasoning, 3)

	assert.Equal(t, msg.ID, store.StreamingMessageID())
	assert.Equal(t, msg.ID, stream.MessageID)
}

func TestRespondStreamsToCompletion(t *testing.T) {
	store, sim, _ := newTestSimulator(t)

	stream, err := sim.Respond(context.Background(), "conv-test", "Plan my week")
	require.NoError(t, err)
	require.NoError(t, stream.Wait())

	c, ok := store.Conversation("conv-test")
	require.True(t, ok)
	require.Len(t, c.Messages, 1)

	msg := c.Messages[0]
	assert.Equal(t, conversation.MessageStatusReady, msg.Status)
	assert.NotEmpty(t, msg.Content)
	assert.True(t, strings.HasSuffix(msg.Content, ClosingOffer))
	assert.Contains(t, msg.Content, "“Plan my week”")

	assert.Equal(t, "", store.StreamingMessageID())
	assert.Equal(t, msg.Content, c.Preview)
}

func TestRespondPublishesStartPartialsAndFinal(t *testing.T) {
	_, sim, publisher := newTestSimulator(t)

	stream, err := sim.Respond(context.Background(), "conv-test", "Plan my week")
	require.NoError(t, err)
	require.NoError(t, stream.Wait())

	evts := publisher.Events(t)
	chunks := len(BuildDraft("Plan my week").Chunks)
	require.Len(t, evts, chunks+1)

	_, ok := evts[0].(*events.EventPartialCompletionStart)
	require.True(t, ok, "first event should be a start event")

	for _, e := range evts[1 : len(evts)-1] {
		partial, ok := e.(*events.EventPartialCompletion)
		require.True(t, ok)
		assert.Equal(t, stream.MessageID, partial.Metadata().MessageID)
		assert.Equal(t, "conv-test", partial.Metadata().ConversationID)
	}

	final, ok := evts[len(evts)-1].(*events.EventFinal)
	require.True(t, ok, "last event should be a final event")
	assert.True(t, strings.HasSuffix(final.Text, ClosingOffer))
}

func TestRespondWithEmptyPromptStillProducesFullReply(t *testing.T) {
	store, sim, _ := newTestSimulator(t)

	stream, err := sim.Respond(context.Background(), "conv-test", "   ")
	require.NoError(t, err)
	require.NoError(t, stream.Wait())

	c, _ := store.Conversation("conv-test")
	require.Len(t, c.Messages, 1)
	assert.True(t, strings.HasPrefix(c.Messages[0].Content, "Here’s what I can help with right now:"))
}

func TestCancelStopsFurtherUpdates(t *testing.T) {
	store := conversation.NewStore(conversation.WithConversations(
		conversation.NewConversation(conversation.WithConversationID("conv-test")),
	))
	sim := NewSimulator(store,
		WithBaseDelay(300*time.Millisecond),
		WithJitterWindow(0),
	)
	publisher := &capturePublisher{}
	require.NoError(t, sim.AddPublishedTopic(publisher, "test"))

	stream, err := sim.Respond(context.Background(), "conv-test", "Plan my week")
	require.NoError(t, err)

	stream.Cancel()
	require.ErrorIs(t, stream.Wait(), context.Canceled)

	// no chunk ever landed and the streaming marker is gone
	c, _ := store.Conversation("conv-test")
	require.Len(t, c.Messages, 1)
	assert.Empty(t, c.Messages[0].Content)
	assert.Equal(t, conversation.MessageStatusThinking, c.Messages[0].Status)
	assert.Equal(t, "", store.StreamingMessageID())

	// nothing fires after cancellation either
	time.Sleep(400 * time.Millisecond)
	c, _ = store.Conversation("conv-test")
	assert.Empty(t, c.Messages[0].Content)

	evts := publisher.Events(t)
	_, ok := evts[len(evts)-1].(*events.EventInterrupt)
	assert.True(t, ok, "last event should be an interrupt")
}

func TestRespondOnUnknownConversationIsSilent(t *testing.T) {
	store, sim, _ := newTestSimulator(t)

	stream, err := sim.Respond(context.Background(), "conv-missing", "hello")
	require.NoError(t, err)
	require.NoError(t, stream.Wait())

	// nothing was created, nothing blew up
	_, ok := store.Conversation("conv-missing")
	assert.False(t, ok)
	c, _ := store.Conversation("conv-test")
	assert.Empty(t, c.Messages)
}

func TestConcurrentRespondsAreIndependent(t *testing.T) {
	store := conversation.NewStore(conversation.WithConversations(
		conversation.NewConversation(conversation.WithConversationID("conv-one")),
		conversation.NewConversation(conversation.WithConversationID("conv-two")),
	))
	sim := NewSimulator(store,
		WithBaseDelay(5*time.Millisecond),
		WithJitterWindow(2*time.Millisecond),
	)

	first, err := sim.Respond(context.Background(), "conv-one", "first")
	require.NoError(t, err)
	second, err := sim.Respond(context.Background(), "conv-two", "second")
	require.NoError(t, err)

	require.NoError(t, first.Wait())
	require.NoError(t, second.Wait())

	one, _ := store.Conversation("conv-one")
	two, _ := store.Conversation("conv-two")
	require.Len(t, one.Messages, 1)
	require.Len(t, two.Messages, 1)
	assert.Equal(t, conversation.MessageStatusReady, one.Messages[0].Status)
	assert.Equal(t, conversation.MessageStatusReady, two.Messages[0].Status)
	assert.Equal(t, "", store.StreamingMessageID())
}
