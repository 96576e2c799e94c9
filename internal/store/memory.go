package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is a mutex-guarded in-memory Store. Counter updates are
// serialized here because handlers run concurrently.
type MemoryStore struct {
	mu             sync.RWMutex
	documents      []Document
	messages       []Message
	knowledgeBases []KnowledgeBase
}

// NewMemory seeds the store with the fixed knowledge-base catalog.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		knowledgeBases: []KnowledgeBase{
			{ID: "islamic-principles", Name: "Islamic Banking Principles", Description: "Core concepts and foundations of Islamic finance"},
			{ID: "products", Name: "Product Details", Description: "Islamic banking products and services information"},
			{ID: "compliance", Name: "Compliance", Description: "Shariah compliance rules and guidelines"},
			{ID: "operations", Name: "Operations", Description: "Day-to-day operational procedures"},
		},
	}
}

func (s *MemoryStore) CreateDocument(_ context.Context, doc Document) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc.ID = uuid.New()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}
	s.documents = append(s.documents, doc)

	// A known knowledge base on the upload counts toward its catalog entry.
	for i := range s.knowledgeBases {
		if s.knowledgeBases[i].ID == doc.KnowledgeBase {
			s.knowledgeBases[i].DocumentCount++
			break
		}
	}
	return doc, nil
}

func (s *MemoryStore) GetDocument(_ context.Context, id uuid.UUID) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, doc := range s.documents {
		if doc.ID == id {
			return doc, nil
		}
	}
	return Document{}, ErrDocumentNotFound
}

func (s *MemoryStore) ListDocuments(_ context.Context) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Document, len(s.documents))
	copy(out, s.documents)
	return out, nil
}

func (s *MemoryStore) CreateMessage(_ context.Context, msg Message) (Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg.ID = uuid.New()
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	s.messages = append(s.messages, msg)
	return msg, nil
}

func (s *MemoryStore) ListMessages(_ context.Context) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out, nil
}

func (s *MemoryStore) KnowledgeBases(_ context.Context) ([]KnowledgeBase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]KnowledgeBase, len(s.knowledgeBases))
	copy(out, s.knowledgeBases)
	return out, nil
}

func (s *MemoryStore) DocumentCount(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents), nil
}

// DailyQuestionCount counts user messages recorded since local midnight.
func (s *MemoryStore) DailyQuestionCount(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	year, month, day := time.Now().Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, time.Local)

	count := 0
	for _, msg := range s.messages {
		if msg.Role == "user" && !msg.CreatedAt.Before(midnight) {
			count++
		}
	}
	return count, nil
}
