package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrDocumentNotFound = errors.New("document not found")

// Document records an uploaded file's metadata.
type Document struct {
	ID            uuid.UUID
	Name          string
	Type          string
	Size          int64
	KnowledgeBase string
	CreatedAt     time.Time
}

// Message records one chat turn for usage statistics.
type Message struct {
	ID        uuid.UUID
	Role      string // "user" or "assistant"
	Content   string
	CreatedAt time.Time
}

// KnowledgeBase describes one of the fixed focus areas offered to users.
type KnowledgeBase struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	DocumentCount int    `json:"documentCount"`
}

// Store tracks uploaded documents and chat messages for usage
// statistics. Nothing survives a process restart.
type Store interface {
	CreateDocument(ctx context.Context, doc Document) (Document, error)
	GetDocument(ctx context.Context, id uuid.UUID) (Document, error)
	ListDocuments(ctx context.Context) ([]Document, error)
	CreateMessage(ctx context.Context, msg Message) (Message, error)
	ListMessages(ctx context.Context) ([]Message, error)
	KnowledgeBases(ctx context.Context) ([]KnowledgeBase, error)
	DocumentCount(ctx context.Context) (int, error)
	DailyQuestionCount(ctx context.Context) (int, error)
}
