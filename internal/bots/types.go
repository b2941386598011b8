package bots

// IncomingMessage represents a message received from a messaging platform.
type IncomingMessage struct {
	MessageID string
	UserID    string // sender identifier, the phone number on WhatsApp
	UserName  string
	Text      string
	ReplyTo   string // id of the message being replied to, if any
	Timestamp string
}

// OutgoingMessage represents a response to send back.
type OutgoingMessage struct {
	UserID string
	Text   string
}

// BotConfig holds webhook credentials.
type BotConfig struct {
	VerifyToken string // echoed during Meta's webhook verification handshake
	AppSecret   string // HMAC key for payload signatures
}
