package assistant

import (
	"github.com/iyyappan14/RAG-ChatBot/internal/llm"
)

// WireMessage is the message shape accepted from HTTP clients. Older
// clients label the author with a "type" field instead of "role"; both
// are mapped into one canonical message at the ingress boundary so the
// orchestrator only ever sees llm.Message.
type WireMessage struct {
	Role    string `json:"role,omitempty"`
	Type    string `json:"type,omitempty"`
	Content string `json:"content"`
}

// NormalizeMessages converts wire messages to canonical ones, preserving
// order. A message is user-authored when either field says "user"; a
// "system" role is kept; anything else becomes an assistant turn.
func NormalizeMessages(in []WireMessage) []llm.Message {
	out := make([]llm.Message, 0, len(in))
	for _, m := range in {
		role := llm.RoleAssistant
		switch {
		case m.Role == string(llm.RoleUser) || m.Type == string(llm.RoleUser):
			role = llm.RoleUser
		case m.Role == string(llm.RoleSystem):
			role = llm.RoleSystem
		}
		out = append(out, llm.Message{Role: role, Content: m.Content})
	}
	return out
}

// lastUserQuestion scans the history from the end for the most recent
// user turn. A history without one yields an empty question.
func lastUserQuestion(history []llm.Message) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == llm.RoleUser {
			return history[i].Content
		}
	}
	return ""
}
