package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"
	"golang.org/x/sync/errgroup"

	"github.com/iyyappan14/RAG-ChatBot/internal/app"
	"github.com/iyyappan14/RAG-ChatBot/internal/assistant"
	"github.com/iyyappan14/RAG-ChatBot/internal/cache"
	"github.com/iyyappan14/RAG-ChatBot/internal/events"
	"github.com/iyyappan14/RAG-ChatBot/internal/httputil"
	"github.com/iyyappan14/RAG-ChatBot/internal/llm"
	"github.com/iyyappan14/RAG-ChatBot/internal/store"
)

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	defer deps.Events.Close()
	defer func() {
		if err := deps.Cache.Close(); err != nil {
			deps.Log.Warn("failed to close cache", "err", err)
		}
	}()

	r := httputil.NewRouter(deps.Log)

	r.Post("/api/chat", chatHandler(deps))
	r.Post("/api/analyze-document", analyzeDocumentHandler(deps))
	r.Post("/api/documents/upload", uploadHandler(deps))
	r.Get("/api/documents", documentsHandler(deps))
	r.Get("/api/knowledge-bases", knowledgeBasesHandler(deps))
	r.Get("/api/stats", statsHandler(deps))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", deps.Config.Port),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		deps.Log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		deps.Log.Error("server stopped", "err", err)
	}
}

type chatRequest struct {
	Messages                 []assistant.WireMessage `json:"messages" validate:"required,min=1"`
	KnowledgeBase            string                  `json:"knowledgeBase"`
	SystemPrompt             string                  `json:"systemPrompt"`
	Model                    string                  `json:"model"`
	Temperature              float64                 `json:"temperature" validate:"omitempty,min=0,max=2"`
	SuggestFollowUpQuestions *bool                   `json:"suggestFollowUpQuestions"`
}

type chatEvent struct {
	MessageID     string `json:"message_id"`
	KnowledgeBase string `json:"knowledge_base,omitempty"`
	Suggestions   int    `json:"suggestions"`
}

func chatHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		// Follow-up suggestions default to on, matching the chat UI.
		suggest := true
		if req.SuggestFollowUpQuestions != nil {
			suggest = *req.SuggestFollowUpQuestions
		}

		ctx := r.Context()
		messages := assistant.NormalizeMessages(req.Messages)
		result := deps.Assistant.Chat(ctx, assistant.ChatOptions{
			SystemPrompt:     req.SystemPrompt,
			Messages:         messages,
			Model:            req.Model,
			Temperature:      req.Temperature,
			SuggestFollowUps: suggest,
			KnowledgeBase:    req.KnowledgeBase,
		})

		messageID := recordTurn(ctx, deps, messages, result.Content)

		if err := deps.Events.Publish(ctx, events.SubjectChatCompleted, chatEvent{
			MessageID:     messageID,
			KnowledgeBase: req.KnowledgeBase,
			Suggestions:   len(result.SuggestedQuestions),
		}); err != nil {
			deps.Log.Warn("failed to publish chat event", "err", err)
		}

		message := map[string]any{
			"id":      messageID,
			"type":    "assistant",
			"content": result.Content,
		}
		if len(result.SuggestedQuestions) > 0 {
			message["suggestedQuestions"] = result.SuggestedQuestions
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{"message": message})
	}
}

// recordTurn persists the user question and assistant reply for usage
// statistics. Store failures are logged only; the computed response is
// already final and must still reach the caller.
func recordTurn(ctx context.Context, deps app.Deps, messages []llm.Message, answer string) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == llm.RoleUser {
			if _, err := deps.Store.CreateMessage(ctx, store.Message{Role: "user", Content: messages[i].Content}); err != nil {
				deps.Log.Warn("failed to record user message", "err", err)
			}
			break
		}
	}
	saved, err := deps.Store.CreateMessage(ctx, store.Message{Role: "assistant", Content: answer})
	if err != nil {
		deps.Log.Warn("failed to record assistant message", "err", err)
		return uuid.NewString()
	}
	return saved.ID.String()
}

type analyzeRequest struct {
	DocumentText string `json:"documentText" validate:"required"`
	Query        string `json:"query"`
}

type analyzeEvent struct {
	DocumentID string `json:"document_id"`
	Queried    bool   `json:"queried"`
	Cached     bool   `json:"cached"`
}

func analyzeDocumentHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		ctx := r.Context()
		key := cache.Key(req.DocumentText, req.Query)
		analysis, err := deps.Cache.GetAnalysis(ctx, key)
		if err != nil {
			deps.Log.Warn("cache lookup failed", "err", err)
			analysis = ""
		}
		cached := analysis != ""

		if !cached {
			analysis = deps.Assistant.Analyze(ctx, req.DocumentText, req.Query)
			ttl := time.Duration(deps.Config.CacheTTL) * time.Second
			if err := deps.Cache.SetAnalysis(ctx, key, analysis, ttl); err != nil {
				deps.Log.Warn("failed to cache analysis", "err", err)
			}
		}

		documentID := uuid.NewString()
		if err := deps.Events.Publish(ctx, events.SubjectDocumentAnalyzed, analyzeEvent{
			DocumentID: documentID,
			Queried:    req.Query != "",
			Cached:     cached,
		}); err != nil {
			deps.Log.Warn("failed to publish analysis event", "err", err)
		}

		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"analysis":   analysis,
			"documentId": documentID,
			"cached":     cached,
		})
	}
}

type uploadEvent struct {
	DocumentID    string `json:"document_id"`
	Name          string `json:"name"`
	KnowledgeBase string `json:"knowledge_base,omitempty"`
}

func uploadHandler(deps app.Deps) http.HandlerFunc {
	maxFileSize := deps.Config.MaxUploadSize

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if r.ContentLength > maxFileSize {
			httputil.Fail(deps.Log, w, fmt.Sprintf("file too large (max %d bytes)", maxFileSize), nil, http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			httputil.Fail(deps.Log, w, "file is required", err, http.StatusBadRequest)
			return
		}
		defer file.Close()

		if header.Size > maxFileSize {
			httputil.Fail(deps.Log, w, fmt.Sprintf("file too large (max %d bytes)", maxFileSize), nil, http.StatusBadRequest)
			return
		}

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			switch strings.ToLower(filepath.Ext(header.Filename)) {
			case ".txt":
				contentType = "text/plain"
			case ".pdf":
				contentType = "application/pdf"
			}
		}
		allowedTypes := map[string]bool{
			"text/plain":      true,
			"application/pdf": true,
		}
		if !allowedTypes[contentType] {
			httputil.Fail(deps.Log, w, "unsupported file type (only PDF and TXT allowed)", nil, http.StatusBadRequest)
			return
		}

		content, err := io.ReadAll(file)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to read file", err, http.StatusInternalServerError)
			return
		}
		text := extractText(header.Filename, content, deps)

		doc, err := deps.Store.CreateDocument(ctx, store.Document{
			Name:          header.Filename,
			Type:          contentType,
			Size:          header.Size,
			KnowledgeBase: r.FormValue("knowledgeBase"),
		})
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to record document", err, http.StatusInternalServerError)
			return
		}

		if err := deps.Events.Publish(ctx, events.SubjectDocumentUploaded, uploadEvent{
			DocumentID:    doc.ID.String(),
			Name:          doc.Name,
			KnowledgeBase: doc.KnowledgeBase,
		}); err != nil {
			deps.Log.Warn("failed to publish upload event", "err", err)
		}

		httputil.WriteJSON(w, http.StatusCreated, map[string]any{
			"document_id": doc.ID.String(),
			"name":        doc.Name,
			"characters":  len(text),
			"text":        text,
		})
	}
}

func documentsHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs, err := deps.Store.ListDocuments(r.Context())
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to list documents", err, http.StatusInternalServerError)
			return
		}
		out := make([]map[string]any, len(docs))
		for i, d := range docs {
			out[i] = map[string]any{
				"id":            d.ID.String(),
				"name":          d.Name,
				"type":          d.Type,
				"size":          d.Size,
				"knowledgeBase": d.KnowledgeBase,
				"createdAt":     d.CreatedAt,
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{"documents": out})
	}
}

func knowledgeBasesHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kbs, err := deps.Store.KnowledgeBases(r.Context())
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to list knowledge bases", err, http.StatusInternalServerError)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{"knowledgeBases": kbs})
	}
}

func statsHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		docCount, err := deps.Store.DocumentCount(ctx)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to count documents", err, http.StatusInternalServerError)
			return
		}
		questionCount, err := deps.Store.DailyQuestionCount(ctx)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to count questions", err, http.StatusInternalServerError)
			return
		}
		kbs, err := deps.Store.KnowledgeBases(ctx)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to list knowledge bases", err, http.StatusInternalServerError)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"documentCount":      docCount,
			"dailyQuestionCount": questionCount,
			"knowledgeBases":     kbs,
		})
	}
}

// extractText extracts text from uploaded files, with PDF support.
func extractText(filename string, content []byte, deps app.Deps) string {
	if strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		text, err := extractPDF(content)
		if err != nil {
			deps.Log.Warn("pdf extraction failed, using raw bytes", "err", err, "filename", filename)
			return string(content)
		}
		return text
	}
	// Treat other files as plain text
	return string(content)
}

func extractPDF(content []byte) (string, error) {
	reader := bytes.NewReader(content)
	pdfReader, err := pdf.NewReader(reader, int64(len(content)))
	if err != nil {
		return "", err
	}

	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()

	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() || page.V.Key("Contents").Kind() == pdf.Null {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip pages that fail to extract
			continue
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}
