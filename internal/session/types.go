// Package session tracks conversations: one session per user and channel,
// with the messages exchanged inside it. Sessions link a user to the trip
// being discussed so the conversation layer can recover context between
// turns.
package session

import "time"

// Platform identifies the channel a session runs on.
type Platform string

const (
	PlatformWhatsApp Platform = "whatsapp"
	PlatformWeb      Platform = "web"
	PlatformAPI      Platform = "api"
)

// ValidPlatform reports whether p is one of the known channels.
func ValidPlatform(p Platform) bool {
	switch p {
	case PlatformWhatsApp, PlatformWeb, PlatformAPI:
		return true
	}
	return false
}

// Role is the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Session is one ongoing conversation with a user.
type Session struct {
	ID             string    `json:"sessionId"`
	UserID         string    `json:"userId"`
	TripID         string    `json:"tripId,omitempty"`
	Platform       Platform  `json:"platform"`
	IsActive       bool      `json:"isActive"`
	StartedAt      time.Time `json:"startedAt"`
	LastActivityAt time.Time `json:"lastActivityAt"`
	MessageCount   int       `json:"messageCount"`
}

// Message is a single utterance within a session.
type Message struct {
	ID        string    `json:"messageId"`
	SessionID string    `json:"sessionId"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
