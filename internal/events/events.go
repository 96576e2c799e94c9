package events

import "context"

// Subjects for published usage events.
const (
	SubjectChatCompleted    = "assistant.chat.completed"
	SubjectDocumentAnalyzed = "assistant.document.analyzed"
	SubjectDocumentUploaded = "assistant.document.uploaded"
)

// Publisher emits fire-and-forget usage events for external consumers
// (auditing, dashboards). Publish failures never affect request handling;
// callers log and move on.
type Publisher interface {
	Publish(ctx context.Context, subject string, event any) error
	Close()
}
