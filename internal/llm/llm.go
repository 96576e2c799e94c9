package llm

import "context"

// Role identifies the author of a conversation message. The set is closed.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a conversation, oldest first when sequenced.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Request describes a single chat-completion call.
type Request struct {
	Model       string
	Messages    []Message
	Temperature float64
	MaxTokens   int64
}

// Client is a minimal LLM interface to allow pluggable providers.
// A call either returns the raw reply text or fails; there are no
// retries, partial results, or streaming.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}
