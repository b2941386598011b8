package llm

// Role identifies who authored a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single entry in the conversation sent to the model.
type Message struct {
	Role    Role
	Content string
}

// Assistant replies are short chat messages, so the default completion
// budget is deliberately small.
const defaultMaxTokens = 1024

// CompletionRequest carries one model call. Model falls back to the
// provider's configured model when empty, MaxTokens to defaultMaxTokens
// when zero.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// CompletionResponse is the normalized result of a completion call.
type CompletionResponse struct {
	Content      string
	InputTokens  int
	OutputTokens int
	Model        string
	FinishReason string
}
