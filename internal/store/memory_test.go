package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestMemoryStoreDocuments(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	doc, err := s.CreateDocument(ctx, Document{Name: "report.pdf", Type: "application/pdf", Size: 1024, KnowledgeBase: "compliance"})
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	if doc.ID == uuid.Nil || doc.CreatedAt.IsZero() {
		t.Error("document should get an id and timestamp")
	}

	got, err := s.GetDocument(ctx, doc.ID)
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if got.Name != "report.pdf" {
		t.Errorf("name = %q", got.Name)
	}

	count, err := s.DocumentCount(ctx)
	if err != nil || count != 1 {
		t.Errorf("DocumentCount = %d, %v; want 1", count, err)
	}

	kbs, err := s.KnowledgeBases(ctx)
	if err != nil {
		t.Fatalf("KnowledgeBases: %v", err)
	}
	for _, kb := range kbs {
		want := 0
		if kb.ID == "compliance" {
			want = 1
		}
		if kb.DocumentCount != want {
			t.Errorf("kb %s: documentCount = %d, want %d", kb.ID, kb.DocumentCount, want)
		}
	}
}

func TestMemoryStoreUnknownKnowledgeBase(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	if _, err := s.CreateDocument(ctx, Document{Name: "a.txt", KnowledgeBase: "does-not-exist"}); err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}

	kbs, _ := s.KnowledgeBases(ctx)
	for _, kb := range kbs {
		if kb.DocumentCount != 0 {
			t.Errorf("kb %s: documentCount = %d, want 0", kb.ID, kb.DocumentCount)
		}
	}
}

func TestMemoryStoreGetDocumentNotFound(t *testing.T) {
	s := NewMemory()
	doc, _ := s.CreateDocument(context.Background(), Document{Name: "a.txt"})

	other := doc
	other.ID[0] ^= 0xff
	if _, err := s.GetDocument(context.Background(), other.ID); err != ErrDocumentNotFound {
		t.Errorf("err = %v, want ErrDocumentNotFound", err)
	}
}

func TestMemoryStoreDailyQuestionCount(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	if _, err := s.CreateMessage(ctx, Message{Role: "user", Content: "q1"}); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if _, err := s.CreateMessage(ctx, Message{Role: "assistant", Content: "a1"}); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if _, err := s.CreateMessage(ctx, Message{Role: "user", Content: "q2"}); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}

	count, err := s.DailyQuestionCount(ctx)
	if err != nil {
		t.Fatalf("DailyQuestionCount: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2 (assistant replies excluded)", count)
	}

	msgs, err := s.ListMessages(ctx)
	if err != nil || len(msgs) != 3 {
		t.Errorf("ListMessages = %d messages, %v; want 3", len(msgs), err)
	}
}
