package bots

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
)

// WhatsAppHandler handles Meta's WhatsApp Cloud API webhooks.
type WhatsAppHandler struct {
	gateway     *Gateway
	verifyToken string
	appSecret   string
}

// NewWhatsAppHandler creates a new WhatsApp webhook handler.
func NewWhatsAppHandler(gateway *Gateway, cfg BotConfig) *WhatsAppHandler {
	return &WhatsAppHandler{
		gateway:     gateway,
		verifyToken: cfg.VerifyToken,
		appSecret:   cfg.AppSecret,
	}
}

// whatsAppPayload is the webhook envelope Meta posts on new messages.
type whatsAppPayload struct {
	Object string `json:"object"`
	Entry  []struct {
		Changes []struct {
			Field string `json:"field"`
			Value struct {
				Contacts []struct {
					WaID    string `json:"wa_id"`
					Profile struct {
						Name string `json:"name"`
					} `json:"profile"`
				} `json:"contacts"`
				Messages []struct {
					ID        string `json:"id"`
					From      string `json:"from"`
					Timestamp string `json:"timestamp"`
					Type      string `json:"type"`
					Text      struct {
						Body string `json:"body"`
					} `json:"text"`
					Context struct {
						ID string `json:"id"`
					} `json:"context"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// HandleVerify answers Meta's webhook verification handshake (HTTP GET).
func (h *WhatsAppHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("hub.mode") == "subscribe" && q.Get("hub.verify_token") == h.verifyToken {
		w.Header().Set("Content-Type", "text/plain")
		io.WriteString(w, q.Get("hub.challenge"))
		return
	}
	http.Error(w, `{"error":"forbidden"}`, http.StatusForbidden)
}

// HandleEvent handles incoming WhatsApp messages (HTTP POST).
func (h *WhatsAppHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	// Verify the payload signature if an app secret is configured.
	if h.appSecret != "" {
		if !h.verifySignature(r, body) {
			http.Error(w, "invalid signature", http.StatusUnauthorized)
			return
		}
	}

	var payload whatsAppPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	// Always 200 to Meta; anything else triggers redelivery storms.
	w.Header().Set("Content-Type", "application/json")

	if payload.Object != "whatsapp_business_account" {
		json.NewEncoder(w).Encode(map[string]string{"status": "ignored"})
		return
	}

	var replies []OutgoingMessage
	for _, msg := range normalize(payload) {
		resp, err := h.gateway.Process(r.Context(), msg)
		if err != nil {
			log.Printf("bots: whatsapp message %s: %v", msg.MessageID, err)
			continue
		}
		if resp != nil {
			replies = append(replies, *resp)
		}
	}

	json.NewEncoder(w).Encode(map[string]any{
		"status":  "received",
		"replies": replies,
	})
}

// normalize flattens the webhook envelope into incoming messages. Only
// text messages are supported; media arrives with an empty Text.
func normalize(payload whatsAppPayload) []IncomingMessage {
	var msgs []IncomingMessage
	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			if change.Field != "messages" {
				continue
			}
			names := make(map[string]string, len(change.Value.Contacts))
			for _, c := range change.Value.Contacts {
				names[c.WaID] = c.Profile.Name
			}
			for _, m := range change.Value.Messages {
				if m.Type != "text" {
					continue
				}
				msgs = append(msgs, IncomingMessage{
					MessageID: m.ID,
					UserID:    m.From,
					UserName:  names[m.From],
					Text:      m.Text.Body,
					ReplyTo:   m.Context.ID,
					Timestamp: m.Timestamp,
				})
			}
		}
	}
	return msgs
}

// verifySignature checks Meta's X-Hub-Signature-256 header, an
// HMAC-SHA256 of the raw body keyed by the app secret.
func (h *WhatsAppHandler) verifySignature(r *http.Request, body []byte) bool {
	signature := r.Header.Get("X-Hub-Signature-256")
	if !strings.HasPrefix(signature, "sha256=") {
		return false
	}

	mac := hmac.New(sha256.New, []byte(h.appSecret))
	mac.Write(body)
	expected := "sha256=" + hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
