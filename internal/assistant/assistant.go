// Package assistant implements chat-completion orchestration for the
// banking assistant: it builds provider requests, parses the structured
// suggestion block out of free-text replies, and transparently falls back
// to a deterministic keyword responder when no provider is available.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/iyyappan14/RAG-ChatBot/internal/llm"
)

const (
	defaultModel       = "gpt-4o"
	defaultTemperature = 0.7

	chatMaxTokens       = 1000
	analysisMaxTokens   = 800
	analysisTemperature = 0.5

	minKeyLength = 8
)

// KeyUsable reports whether an API key looks configured: non-empty and
// above a trivial length threshold after trimming space. This is the
// sole gate between the provider and fallback paths.
func KeyUsable(key string) bool {
	return len(strings.TrimSpace(key)) >= minKeyLength
}

// ChatOptions carries one chat-completion request into the orchestrator.
type ChatOptions struct {
	// SystemPrompt overrides the default assistant prompt when set.
	SystemPrompt string
	// Messages is the conversation history, oldest first.
	Messages []llm.Message
	// Model and Temperature override the service defaults when set.
	Model       string
	Temperature float64
	// SuggestFollowUps asks the model for follow-up questions via the
	// marker protocol and enables suggestion parsing on the reply.
	SuggestFollowUps bool
	// KnowledgeBase optionally scopes the system prompt; it has no
	// retrieval effect.
	KnowledgeBase string
}

// Result is the normalized outcome of a chat completion. Content never
// contains the raw suggestion marker; SuggestedQuestions is empty unless
// follow-ups were requested and parsed.
type Result struct {
	Content            string   `json:"content"`
	SuggestedQuestions []string `json:"suggestedQuestions,omitempty"`
}

// Service orchestrates provider-vs-fallback for chat and document
// analysis. A nil client means no usable credential is configured and
// every request takes the fallback path.
type Service struct {
	llm         llm.Client
	log         *slog.Logger
	model       string
	temperature float64
}

// New builds a Service. client may be nil to force the fallback path.
func New(client llm.Client, log *slog.Logger, model string, temperature float64) *Service {
	if model == "" {
		model = defaultModel
	}
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	return &Service{llm: client, log: log, model: model, temperature: temperature}
}

// Chat answers a conversation. It never returns an error: a provider
// failure is logged and answered by the fallback responder, so callers
// always receive a usable Result.
func (s *Service) Chat(ctx context.Context, opts ChatOptions) Result {
	if s.llm == nil {
		return respondFallback(opts.Messages, opts.KnowledgeBase)
	}

	raw, err := s.llm.Complete(ctx, s.buildChatRequest(opts))
	if err != nil {
		s.log.Warn("provider call failed, using fallback responder", "err", err)
		return respondFallback(opts.Messages, opts.KnowledgeBase)
	}

	content, questions := parseSuggestions(s.log, raw, opts.SuggestFollowUps)
	return Result{Content: content, SuggestedQuestions: questions}
}

func (s *Service) buildChatRequest(opts ChatOptions) llm.Request {
	system := opts.SystemPrompt
	if system == "" {
		system = defaultSystemPrompt
	}
	system += scopeSuffix(opts.KnowledgeBase)

	messages := make([]llm.Message, 0, len(opts.Messages)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: system})
	messages = append(messages, opts.Messages...)
	if opts.SuggestFollowUps {
		messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: followUpInstruction})
	}

	model := opts.Model
	if model == "" {
		model = s.model
	}
	temperature := opts.Temperature
	if temperature <= 0 {
		temperature = s.temperature
	}
	return llm.Request{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   chatMaxTokens,
	}
}

// Analyze answers a question about a document, or summarizes it when the
// query is empty. Like Chat it is total: any provider failure degrades to
// the heuristic fallback analysis.
func (s *Service) Analyze(ctx context.Context, documentText, query string) string {
	if s.llm == nil {
		return analyzeFallback(documentText, query)
	}

	prompt := fmt.Sprintf("Please analyze the following document and provide a summary of its key points: %s", documentText)
	if query != "" {
		prompt = fmt.Sprintf("Please analyze the following document and answer this question: %s\n\nDocument: %s", query, documentText)
	}

	raw, err := s.llm.Complete(ctx, llm.Request{
		Model: s.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: analyzerSystemPrompt},
			{Role: llm.RoleUser, Content: prompt},
		},
		Temperature: analysisTemperature,
		MaxTokens:   analysisMaxTokens,
	})
	if err != nil {
		s.log.Warn("provider analysis failed, using fallback analyzer", "err", err)
		return analyzeFallback(documentText, query)
	}
	return raw
}
