package bots

import (
	"context"
	"log"
)

// MessageHandler turns an incoming chat message into a reply.
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg IncomingMessage) (*OutgoingMessage, error)
}

// Gateway sits between platform webhooks and the conversational
// handler, so new platforms only need a normalizer.
type Gateway struct {
	handler MessageHandler
}

func NewGateway(handler MessageHandler) *Gateway {
	return &Gateway{handler: handler}
}

// Process routes one normalized message through the handler.
func (g *Gateway) Process(ctx context.Context, msg IncomingMessage) (*OutgoingMessage, error) {
	log.Printf("bots: processing message %s from user %s", msg.MessageID, msg.UserID)
	return g.handler.HandleMessage(ctx, msg)
}
