package bots

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
)

// echoHandler replies with the received text prefixed by "echo: ".
type echoHandler struct {
	received []IncomingMessage
}

func (e *echoHandler) HandleMessage(_ context.Context, msg IncomingMessage) (*OutgoingMessage, error) {
	e.received = append(e.received, msg)
	return &OutgoingMessage{UserID: msg.UserID, Text: "echo: " + msg.Text}, nil
}

const samplePayload = `{
  "object": "whatsapp_business_account",
  "entry": [{
    "changes": [{
      "field": "messages",
      "value": {
        "contacts": [{"wa_id": "5511999990000", "profile": {"name": "Ana"}}],
        "messages": [{
          "id": "wamid.1",
          "from": "5511999990000",
          "timestamp": "1717000000",
          "type": "text",
          "text": {"body": "I want to visit Paris"}
        }]
      }
    }]
  }]
}`

func TestHandleVerifyChallenge(t *testing.T) {
	h := NewWhatsAppHandler(NewGateway(&echoHandler{}), BotConfig{VerifyToken: "secret-token"})

	req := httptest.NewRequest("GET",
		"/api/bots/whatsapp/webhook?hub.mode=subscribe&hub.verify_token=secret-token&hub.challenge=12345", nil)
	w := httptest.NewRecorder()
	h.HandleVerify(w, req)

	if w.Code != 200 {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "12345" {
		t.Errorf("challenge echo = %q, want 12345", w.Body.String())
	}
}

func TestHandleVerifyWrongToken(t *testing.T) {
	h := NewWhatsAppHandler(NewGateway(&echoHandler{}), BotConfig{VerifyToken: "secret-token"})

	req := httptest.NewRequest("GET",
		"/api/bots/whatsapp/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=12345", nil)
	w := httptest.NewRecorder()
	h.HandleVerify(w, req)

	if w.Code != 403 {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestHandleEventProcessesTextMessage(t *testing.T) {
	handler := &echoHandler{}
	h := NewWhatsAppHandler(NewGateway(handler), BotConfig{})

	req := httptest.NewRequest("POST", "/api/bots/whatsapp/webhook", strings.NewReader(samplePayload))
	w := httptest.NewRecorder()
	h.HandleEvent(w, req)

	if w.Code != 200 {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(handler.received) != 1 {
		t.Fatalf("handler received %d messages, want 1", len(handler.received))
	}
	got := handler.received[0]
	if got.UserID != "5511999990000" || got.UserName != "Ana" {
		t.Errorf("sender = %s (%s)", got.UserID, got.UserName)
	}
	if got.Text != "I want to visit Paris" {
		t.Errorf("text = %q", got.Text)
	}

	var resp struct {
		Status  string            `json:"status"`
		Replies []OutgoingMessage `json:"replies"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Status != "received" || len(resp.Replies) != 1 {
		t.Fatalf("response = %+v", resp)
	}
	if resp.Replies[0].Text != "echo: I want to visit Paris" {
		t.Errorf("reply = %q", resp.Replies[0].Text)
	}
}

func TestHandleEventIgnoresNonWhatsAppPayload(t *testing.T) {
	handler := &echoHandler{}
	h := NewWhatsAppHandler(NewGateway(handler), BotConfig{})

	req := httptest.NewRequest("POST", "/api/bots/whatsapp/webhook",
		strings.NewReader(`{"object": "instagram", "entry": []}`))
	w := httptest.NewRecorder()
	h.HandleEvent(w, req)

	if w.Code != 200 {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(handler.received) != 0 {
		t.Errorf("handler received %d messages, want 0", len(handler.received))
	}
}

func TestHandleEventSignature(t *testing.T) {
	handler := &echoHandler{}
	h := NewWhatsAppHandler(NewGateway(handler), BotConfig{AppSecret: "app-secret"})

	t.Run("missing signature", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/bots/whatsapp/webhook", strings.NewReader(samplePayload))
		w := httptest.NewRecorder()
		h.HandleEvent(w, req)

		if w.Code != 401 {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("valid signature", func(t *testing.T) {
		mac := hmac.New(sha256.New, []byte("app-secret"))
		mac.Write([]byte(samplePayload))
		sig := "sha256=" + hex.EncodeToString(mac.Sum(nil))

		req := httptest.NewRequest("POST", "/api/bots/whatsapp/webhook", strings.NewReader(samplePayload))
		req.Header.Set("X-Hub-Signature-256", sig)
		w := httptest.NewRecorder()
		h.HandleEvent(w, req)

		if w.Code != 200 {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})

	t.Run("tampered body", func(t *testing.T) {
		mac := hmac.New(sha256.New, []byte("app-secret"))
		mac.Write([]byte(samplePayload))
		sig := "sha256=" + hex.EncodeToString(mac.Sum(nil))

		req := httptest.NewRequest("POST", "/api/bots/whatsapp/webhook",
			strings.NewReader(strings.Replace(samplePayload, "Paris", "Tokyo", 1)))
		req.Header.Set("X-Hub-Signature-256", sig)
		w := httptest.NewRecorder()
		h.HandleEvent(w, req)

		if w.Code != 401 {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})
}

func TestNormalizeSkipsNonTextMessages(t *testing.T) {
	payload := `{
	  "object": "whatsapp_business_account",
	  "entry": [{
	    "changes": [{
	      "field": "messages",
	      "value": {
	        "messages": [{"id": "wamid.2", "from": "551", "type": "image"}]
	      }
	    }]
	  }]
	}`

	var p whatsAppPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msgs := normalize(p); len(msgs) != 0 {
		t.Errorf("normalized %d messages, want 0", len(msgs))
	}
}

func TestProcessorEmptyMessage(t *testing.T) {
	p := NewProcessor(nil)

	out, err := p.HandleMessage(context.Background(), IncomingMessage{UserID: "551", Text: "   "})
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if out == nil || out.Text == "" {
		t.Error("empty message should still get a reply")
	}
}
