package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/viajo-ai/viajo/internal/db"
	"github.com/viajo-ai/viajo/internal/llm"
	"github.com/viajo-ai/viajo/internal/profile"
	"github.com/viajo-ai/viajo/internal/session"
	"github.com/viajo-ai/viajo/internal/trip"
)

type stubProvider struct {
	calls []llm.CompletionRequest
	reply string
	err   error
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	s.calls = append(s.calls, req)
	if s.err != nil {
		return nil, s.err
	}
	return &llm.CompletionResponse{Content: s.reply, FinishReason: "stop"}, nil
}

type fixture struct {
	orch     *Orchestrator
	trips    *trip.Store
	sessions *session.Store
	provider *stubProvider
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	trips := trip.NewStore(database, "")
	sessions := session.NewStore(database)
	profiles := profile.NewStore(database)
	provider := &stubProvider{reply: "Sounds great! When do you want to go?"}

	return &fixture{
		orch:     New(trips, sessions, profiles, provider, "test-model"),
		trips:    trips,
		sessions: sessions,
		provider: provider,
	}
}

func TestTurnNewUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out := f.orch.Turn(ctx, Input{
		UserID:   "user-1",
		Message:  "I want to plan a trip",
		Platform: session.PlatformWhatsApp,
	})

	if out.SessionID == "" {
		t.Fatal("no session id in output")
	}
	if out.Reply != "Sounds great! When do you want to go?" {
		t.Errorf("reply = %q", out.Reply)
	}
	if out.Phase != "KNOWLEDGE" {
		t.Errorf("phase = %q, want KNOWLEDGE", out.Phase)
	}
	if out.TripID != "" {
		t.Errorf("new user should have no trip, got %s", out.TripID)
	}
	if out.KnowledgeScore != nil {
		t.Error("knowledgeScore should be absent without a trip")
	}

	// A new user gets the greeting instructions.
	if len(f.provider.calls) != 1 {
		t.Fatalf("provider called %d times, want 1", len(f.provider.calls))
	}
	system := f.provider.calls[0].Messages[0]
	if system.Role != llm.RoleSystem || !strings.Contains(system.Content, "New User") {
		t.Errorf("system message missing new-user context: %q", system.Content)
	}
}

func TestTurnPersistsExchange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out := f.orch.Turn(ctx, Input{UserID: "user-1", Message: "hello"})

	msgs, err := f.sessions.Recent(ctx, out.SessionID, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("stored %d messages, want 2", len(msgs))
	}
	if msgs[0].Role != session.RoleAssistant || msgs[1].Role != session.RoleUser {
		t.Errorf("roles = [%s, %s], want [assistant, user]", msgs[0].Role, msgs[1].Role)
	}

	sess, err := f.sessions.GetByID(ctx, out.SessionID)
	if err != nil || sess == nil {
		t.Fatalf("GetByID: %v", err)
	}
	if sess.MessageCount != 2 {
		t.Errorf("messageCount = %d, want 2", sess.MessageCount)
	}
}

func TestTurnWithActiveTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.trips.Create(ctx, "user-1", "Honeymoon", "Paris")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	out := f.orch.Turn(ctx, Input{UserID: "user-1", Message: "what's next?"})

	if out.TripID != created.ID {
		t.Errorf("tripId = %s, want %s", out.TripID, created.ID)
	}
	if out.KnowledgeScore == nil {
		t.Fatal("knowledgeScore missing for active trip")
	}
	if *out.KnowledgeScore != 30 {
		t.Errorf("knowledgeScore = %d, want 30", *out.KnowledgeScore)
	}

	system := f.provider.calls[0].Messages[0].Content
	if !strings.Contains(system, "Paris") {
		t.Errorf("system message missing trip state: %q", system)
	}
	if !strings.Contains(system, "Current Phase: KNOWLEDGE") {
		t.Error("system message missing phase instructions")
	}
	if strings.Contains(system, "Where would you like to travel?") {
		t.Error("destination already collected, its question should be omitted")
	}
}

func TestTurnProviderFailure(t *testing.T) {
	f := newFixture(t)
	f.provider.err = errors.New("model unavailable")
	ctx := context.Background()

	out := f.orch.Turn(ctx, Input{UserID: "user-1", Message: "hello?"})

	if out.Reply != apologyReply {
		t.Errorf("reply = %q, want the apology", out.Reply)
	}
	if out.Phase != "ERROR" {
		t.Errorf("phase = %q, want ERROR", out.Phase)
	}
	if out.SessionID == "" || out.SessionID == "error" {
		t.Errorf("sessionId = %q, want the resolved session", out.SessionID)
	}

	// The inbound message survives the failure.
	msgs, err := f.sessions.Recent(ctx, out.SessionID, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Role != session.RoleUser {
		t.Fatalf("stored messages = %+v, want just the user turn", msgs)
	}
}

func TestTurnReplaysHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.orch.Turn(ctx, Input{UserID: "user-1", Message: "I want a beach trip"})
	f.orch.Turn(ctx, Input{UserID: "user-1", Message: "somewhere warm", SessionID: first.SessionID})

	if len(f.provider.calls) != 2 {
		t.Fatalf("provider called %d times, want 2", len(f.provider.calls))
	}
	second := f.provider.calls[1].Messages
	// system + first user + first assistant + second user
	if len(second) != 4 {
		t.Fatalf("second call has %d messages, want 4", len(second))
	}
	if second[1].Content != "I want a beach trip" {
		t.Errorf("history out of order: %q", second[1].Content)
	}
	if second[3].Content != "somewhere warm" {
		t.Errorf("inbound message not last: %q", second[3].Content)
	}
}

func TestTurnAttachesTripToSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.trips.Create(ctx, "user-1", "", "Rome")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	out := f.orch.Turn(ctx, Input{UserID: "user-1", Message: "hi"})

	sess, err := f.sessions.GetByID(ctx, out.SessionID)
	if err != nil || sess == nil {
		t.Fatalf("GetByID: %v", err)
	}
	if sess.TripID != created.ID {
		t.Errorf("session tripId = %s, want %s", sess.TripID, created.ID)
	}

	got, err := f.trips.GetByID(ctx, created.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID trip: %v", err)
	}
	if got.InteractionCount != 1 {
		t.Errorf("interactionCount = %d, want 1", got.InteractionCount)
	}
}

func TestBuildContextNewUser(t *testing.T) {
	got := buildContext(nil)
	if !strings.Contains(got, "New User") {
		t.Errorf("context = %q", got)
	}
}

func TestPhasePromptSelection(t *testing.T) {
	if !strings.Contains(phasePrompt(trip.PhaseKnowledge), "KNOWLEDGE") {
		t.Error("knowledge prompt missing")
	}
	if !strings.Contains(phasePrompt(trip.PhasePlanning), "PLANNING") {
		t.Error("planning prompt missing")
	}
	if phasePrompt(trip.PhaseBooking) != "" {
		t.Error("booking phase has no instruction block yet")
	}
}
