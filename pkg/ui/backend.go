package ui

import (
	"github.com/ThreeDotsLabs/watermill/message"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/figaro/pkg/events"
)

// StreamMsg wraps a simulator event for delivery into the bubbletea loop.
type StreamMsg struct {
	Event events.Event
}

// StreamForwardFunc returns a watermill handler that decodes simulator events
// and forwards them into the program. The store is updated by the simulator
// itself; the UI only needs a nudge to re-render and to learn when a stream
// has finished.
func StreamForwardFunc(p *tea.Program) func(msg *message.Message) error {
	return func(msg *message.Message) error {
		msg.Ack()

		e, err := events.NewEventFromJson(msg.Payload)
		if err != nil {
			log.Warn().Err(err).Msg("could not decode stream event")
			return err
		}

		log.Debug().
			Object("event_metadata", e.Metadata()).
			Str("type", string(e.Type())).
			Msg("forwarding stream event to UI")
		p.Send(StreamMsg{Event: e})

		return nil
	}
}
