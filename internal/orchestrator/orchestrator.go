// Package orchestrator handles one conversational turn end to end:
// resolve the session and active trip, persist the exchange, and get a
// reply from the language model with trip state and phase instructions
// in context.
package orchestrator

import (
	"context"
	"fmt"
	"log"

	"github.com/viajo-ai/viajo/internal/llm"
	"github.com/viajo-ai/viajo/internal/profile"
	"github.com/viajo-ai/viajo/internal/session"
	"github.com/viajo-ai/viajo/internal/trip"
)

// historyLimit bounds how many stored messages feed the model's context.
const historyLimit = 20

// Input is one inbound user message with its routing metadata.
type Input struct {
	UserID    string           `json:"userId"`
	Message   string           `json:"message"`
	SessionID string           `json:"sessionId,omitempty"`
	TripID    string           `json:"tripId,omitempty"`
	Platform  session.Platform `json:"platform,omitempty"`
}

// Output is the assistant's reply plus conversation metadata.
type Output struct {
	SessionID      string `json:"sessionId"`
	TripID         string `json:"tripId,omitempty"`
	Reply          string `json:"reply"`
	Phase          string `json:"phase"`
	KnowledgeScore *int   `json:"knowledgeScore,omitempty"`
}

// Orchestrator wires the stores and the language model into a turn
// handler. It holds no per-turn state; everything is re-fetched from
// the stores on each call.
type Orchestrator struct {
	trips    *trip.Store
	sessions *session.Store
	profiles *profile.Store
	provider llm.Provider
	model    string
}

// New creates an orchestrator.
func New(trips *trip.Store, sessions *session.Store, profiles *profile.Store, provider llm.Provider, model string) *Orchestrator {
	return &Orchestrator{
		trips:    trips,
		sessions: sessions,
		profiles: profiles,
		provider: provider,
		model:    model,
	}
}

// Turn processes one inbound message and always produces a reply. Any
// failure along the way is logged and converted into a fixed apology
// with phase ERROR; technical errors never reach the user.
func (o *Orchestrator) Turn(ctx context.Context, in Input) Output {
	out, err := o.run(ctx, in)
	if err != nil {
		log.Printf("orchestrator: turn failed for user %s: %v", in.UserID, err)
		sessionID := in.SessionID
		if out != nil && out.SessionID != "" {
			sessionID = out.SessionID
		}
		if sessionID == "" {
			sessionID = "error"
		}
		return Output{
			SessionID: sessionID,
			Reply:     apologyReply,
			Phase:     "ERROR",
		}
	}
	return *out
}

// run executes the turn sequence. On error it may still return a
// partial Output carrying the resolved session id.
func (o *Orchestrator) run(ctx context.Context, in Input) (*Output, error) {
	sess, err := o.sessions.GetOrCreate(ctx, in.UserID, in.SessionID, in.Platform)
	if err != nil {
		return nil, fmt.Errorf("resolving session: %w", err)
	}
	partial := &Output{SessionID: sess.ID}

	if err := o.profiles.CreateIfAbsent(ctx, in.UserID, ""); err != nil {
		return partial, fmt.Errorf("ensuring profile: %w", err)
	}

	t, err := o.trips.GetContext(ctx, in.UserID, in.TripID)
	if err != nil {
		return partial, fmt.Errorf("resolving trip: %w", err)
	}
	if t != nil && sess.TripID == "" {
		if err := o.sessions.AttachTrip(ctx, sess.ID, t.ID); err != nil {
			return partial, fmt.Errorf("attaching trip: %w", err)
		}
	}

	// The inbound message is persisted before the model is consulted,
	// so a model failure never loses what the user said.
	if _, err := o.sessions.Append(ctx, sess.ID, session.RoleUser, in.Message); err != nil {
		return partial, fmt.Errorf("saving user message: %w", err)
	}

	phase := trip.PhaseKnowledge
	if t != nil {
		phase = t.CurrentPhase
	}

	messages, err := o.buildMessages(ctx, sess.ID, t, phase, in.Message)
	if err != nil {
		return partial, fmt.Errorf("building context: %w", err)
	}

	resp, err := o.provider.Complete(ctx, llm.CompletionRequest{
		Model:       o.model,
		Messages:    messages,
		Temperature: 0.7,
	})
	if err != nil {
		return partial, fmt.Errorf("completing turn: %w", err)
	}
	reply := resp.Content

	if _, err := o.sessions.Append(ctx, sess.ID, session.RoleAssistant, reply); err != nil {
		return partial, fmt.Errorf("saving assistant message: %w", err)
	}
	if err := o.sessions.Touch(ctx, sess.ID, 2); err != nil {
		return partial, fmt.Errorf("touching session: %w", err)
	}
	if t != nil {
		if err := o.trips.RecordInteraction(ctx, t.ID); err != nil {
			return partial, fmt.Errorf("recording interaction: %w", err)
		}
	}

	out := &Output{
		SessionID: sess.ID,
		Reply:     reply,
		Phase:     string(phase),
	}
	if t != nil {
		out.TripID = t.ID
		score := t.KnowledgeScore
		out.KnowledgeScore = &score
	}
	return out, nil
}

// buildMessages assembles the completion request: persona, trip state
// and phase instructions in the system message, then recent history in
// chronological order ending with the inbound message.
func (o *Orchestrator) buildMessages(ctx context.Context, sessionID string, t *trip.Trip, phase trip.Phase, inbound string) ([]llm.Message, error) {
	system := systemPrompt + "\n\n" + buildContext(t)
	if p := phasePrompt(phase); p != "" {
		system += "\n\n" + p
	}
	messages := []llm.Message{{Role: llm.RoleSystem, Content: system}}

	recent, err := o.sessions.Recent(ctx, sessionID, historyLimit)
	if err != nil {
		return nil, err
	}
	// Recent is most-recent-first; replay oldest first. The inbound
	// message is already stored, so it arrives as the final entry.
	for i := len(recent) - 1; i >= 0; i-- {
		m := recent[i]
		if m.Role == session.RoleSystem {
			continue
		}
		role := llm.RoleUser
		if m.Role == session.RoleAssistant {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: m.Content})
	}
	if len(recent) == 0 {
		messages = append(messages, llm.Message{Role: llm.RoleUser, Content: inbound})
	}
	return messages, nil
}
