package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/iyyappan14/RAG-ChatBot/internal/llm"
)

func TestKeyUsable(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"", false},
		{"   ", false},
		{"short", false},
		{"sk-test-key-12345", true},
		{"  sk-test-key-12345  ", true},
	}
	for _, tt := range tests {
		if got := KeyUsable(tt.key); got != tt.want {
			t.Errorf("KeyUsable(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestChatWithoutClientUsesFallback(t *testing.T) {
	svc := New(nil, discardLogger(), "", 0)

	result := svc.Chat(context.Background(), ChatOptions{
		Messages: []llm.Message{userMsg("what is murabaha?")},
	})

	if !strings.HasSuffix(result.Content, fallbackDisclaimer) {
		t.Errorf("fallback content missing disclaimer: %q", result.Content)
	}
}

func TestChatProviderSuccessWithSuggestions(t *testing.T) {
	client := new(llm.MockClient)
	client.On("Complete", mock.Anything, mock.MatchedBy(func(req llm.Request) bool {
		if len(req.Messages) < 3 {
			return false
		}
		first := req.Messages[0]
		last := req.Messages[len(req.Messages)-1]
		return first.Role == llm.RoleSystem &&
			strings.Contains(first.Content, "regulatory compliance") &&
			last.Role == llm.RoleSystem &&
			strings.Contains(last.Content, "SUGGESTED_QUESTIONS") &&
			req.Model == "gpt-4o" &&
			req.MaxTokens == 1000
	})).Return("Answer.\nSUGGESTED_QUESTIONS:[\"Q1\",\"Q2\"]", nil).Once()

	svc := New(client, discardLogger(), "", 0)
	result := svc.Chat(context.Background(), ChatOptions{
		Messages:         []llm.Message{userMsg("what are the compliance rules?")},
		SuggestFollowUps: true,
		KnowledgeBase:    ScopeCompliance,
	})

	if result.Content != "Answer." {
		t.Errorf("content = %q, want %q", result.Content, "Answer.")
	}
	if len(result.SuggestedQuestions) != 2 {
		t.Errorf("suggested questions = %v, want two", result.SuggestedQuestions)
	}
	client.AssertExpectations(t)
}

func TestChatWithoutSuggestionsReturnsRawReply(t *testing.T) {
	raw := "Answer.\nSUGGESTED_QUESTIONS:[\"Q1\"]"
	client := new(llm.MockClient)
	client.On("Complete", mock.Anything, mock.MatchedBy(func(req llm.Request) bool {
		// No follow-up instruction appended when suggestions are off.
		for _, m := range req.Messages[1:] {
			if m.Role == llm.RoleSystem {
				return false
			}
		}
		return true
	})).Return(raw, nil).Once()

	svc := New(client, discardLogger(), "", 0)
	result := svc.Chat(context.Background(), ChatOptions{
		Messages: []llm.Message{userMsg("hello")},
	})

	if result.Content != raw {
		t.Errorf("content = %q, want raw reply", result.Content)
	}
	if len(result.SuggestedQuestions) != 0 {
		t.Errorf("unexpected suggestions: %v", result.SuggestedQuestions)
	}
	client.AssertExpectations(t)
}

func TestChatProviderErrorFallsBack(t *testing.T) {
	client := new(llm.MockClient)
	client.On("Complete", mock.Anything, mock.Anything).
		Return("", errors.New("rate limited")).Once()

	svc := New(client, discardLogger(), "", 0)
	result := svc.Chat(context.Background(), ChatOptions{
		Messages:      []llm.Message{userMsg("what is murabaha?")},
		KnowledgeBase: ScopeProducts,
	})

	if !strings.HasSuffix(result.Content, fallbackDisclaimer) {
		t.Errorf("fallback content missing disclaimer: %q", result.Content)
	}
	if !strings.HasPrefix(result.Content, "From the Product Details knowledge base: ") {
		t.Errorf("fallback content missing scope attribution: %q", result.Content)
	}
	client.AssertExpectations(t)
}

func TestChatPreservesHistoryOrder(t *testing.T) {
	history := []llm.Message{
		userMsg("first"),
		assistantMsg("second"),
		userMsg("third"),
	}

	client := new(llm.MockClient)
	client.On("Complete", mock.Anything, mock.MatchedBy(func(req llm.Request) bool {
		if len(req.Messages) != 4 { // system + 3 history turns
			return false
		}
		forwarded := req.Messages[1:]
		for i := range history {
			if forwarded[i] != history[i] {
				return false
			}
		}
		return true
	})).Return("ok", nil).Once()

	svc := New(client, discardLogger(), "", 0)
	svc.Chat(context.Background(), ChatOptions{Messages: history})
	client.AssertExpectations(t)
}

func TestAnalyzeProviderSuccess(t *testing.T) {
	client := new(llm.MockClient)
	client.On("Complete", mock.Anything, mock.MatchedBy(func(req llm.Request) bool {
		return len(req.Messages) == 2 &&
			req.Messages[0].Role == llm.RoleSystem &&
			strings.Contains(req.Messages[0].Content, "document analyzer") &&
			strings.Contains(req.Messages[1].Content, "answer this question: what is the total?") &&
			req.MaxTokens == 800
	})).Return("The total is 42.", nil).Once()

	svc := New(client, discardLogger(), "", 0)
	out := svc.Analyze(context.Background(), "Total: 42", "what is the total?")

	if out != "The total is 42." {
		t.Errorf("analysis = %q", out)
	}
	client.AssertExpectations(t)
}

func TestAnalyzeWithoutQueryAsksForSummary(t *testing.T) {
	client := new(llm.MockClient)
	client.On("Complete", mock.Anything, mock.MatchedBy(func(req llm.Request) bool {
		return strings.Contains(req.Messages[1].Content, "summary of its key points")
	})).Return("Summary.", nil).Once()

	svc := New(client, discardLogger(), "", 0)
	if out := svc.Analyze(context.Background(), "Some document.", ""); out != "Summary." {
		t.Errorf("analysis = %q", out)
	}
	client.AssertExpectations(t)
}

func TestAnalyzeProviderErrorFallsBack(t *testing.T) {
	client := new(llm.MockClient)
	client.On("Complete", mock.Anything, mock.Anything).
		Return("", errors.New("boom")).Once()

	svc := New(client, discardLogger(), "", 0)
	out := svc.Analyze(context.Background(), "Title: Annual Report", "what is the title")

	if !strings.Contains(out, "Annual Report") {
		t.Errorf("fallback analysis missing extracted title: %q", out)
	}
	if !strings.HasSuffix(out, fallbackDisclaimer) {
		t.Errorf("fallback analysis missing disclaimer: %q", out)
	}
	client.AssertExpectations(t)
}

func TestAnalyzeWithoutClientUsesFallback(t *testing.T) {
	svc := New(nil, discardLogger(), "", 0)
	out := svc.Analyze(context.Background(), "Some text.", "")
	if !strings.HasSuffix(out, fallbackDisclaimer) {
		t.Errorf("fallback analysis missing disclaimer: %q", out)
	}
}
