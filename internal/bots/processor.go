package bots

import (
	"context"
	"strings"

	"github.com/viajo-ai/viajo/internal/orchestrator"
	"github.com/viajo-ai/viajo/internal/session"
)

// Processor connects incoming bot messages to the conversational
// orchestrator. The sender's platform identifier doubles as the user id.
type Processor struct {
	orch *orchestrator.Orchestrator
}

// NewProcessor creates a new message processor.
func NewProcessor(orch *orchestrator.Orchestrator) *Processor {
	return &Processor{orch: orch}
}

// HandleMessage runs one conversational turn for the incoming message.
// The orchestrator owns the failure handling, so this always produces
// a reply.
func (p *Processor) HandleMessage(ctx context.Context, msg IncomingMessage) (*OutgoingMessage, error) {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return &OutgoingMessage{
			UserID: msg.UserID,
			Text:   "I received an empty message. Tell me about your trip!",
		}, nil
	}

	out := p.orch.Turn(ctx, orchestrator.Input{
		UserID:   msg.UserID,
		Message:  text,
		Platform: session.PlatformWhatsApp,
	})

	return &OutgoingMessage{
		UserID: msg.UserID,
		Text:   out.Reply,
	}, nil
}
