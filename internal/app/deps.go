package app

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/openai/openai-go/v3"

	"github.com/iyyappan14/RAG-ChatBot/internal/assistant"
	"github.com/iyyappan14/RAG-ChatBot/internal/cache"
	"github.com/iyyappan14/RAG-ChatBot/internal/config"
	"github.com/iyyappan14/RAG-ChatBot/internal/events"
	"github.com/iyyappan14/RAG-ChatBot/internal/llm"
	"github.com/iyyappan14/RAG-ChatBot/internal/logger"
	"github.com/iyyappan14/RAG-ChatBot/internal/store"
)

// Deps bundles common runtime dependencies for the server.
type Deps struct {
	Config    config.Config
	Log       *slog.Logger
	Store     store.Store
	Cache     cache.Cache
	Events    events.Publisher
	Assistant *assistant.Service
}

// Build loads env, config, and shared components. The optional pieces
// (cache, events) degrade to no-op implementations; only a misconfigured
// provider client is a hard error.
func Build() (Deps, error) {
	_ = godotenv.Load() // .env is optional

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	client, err := buildLLM(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	return Deps{
		Config:    cfg,
		Log:       log,
		Store:     store.NewMemory(),
		Cache:     buildCache(cfg, log),
		Events:    buildEvents(cfg, log),
		Assistant: assistant.New(client, log, cfg.ChatModel, cfg.Temperature),
	}, nil
}

// buildLLM returns a nil client when no usable credential is configured;
// the assistant then answers everything through its fallback responder.
func buildLLM(cfg config.Config, log *slog.Logger) (llm.Client, error) {
	if !assistant.KeyUsable(cfg.OpenAIKey) {
		log.Warn("no usable OpenAI key configured, fallback responder active")
		return nil, nil
	}
	client, err := llm.NewOpenAIClient(cfg.OpenAIKey, openai.ChatModel(cfg.ChatModel))
	if err != nil {
		return nil, err
	}
	log.Info("using OpenAI LLM client", "model", cfg.ChatModel)
	return client, nil
}

func buildCache(cfg config.Config, log *slog.Logger) cache.Cache {
	if cfg.RedisAddr == "" {
		return cache.NewNoOpCache()
	}
	c, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Warn("redis unavailable, analysis caching disabled", "err", err)
		return cache.NewNoOpCache()
	}
	log.Info("using Redis analysis cache", "addr", cfg.RedisAddr)
	return c
}

func buildEvents(cfg config.Config, log *slog.Logger) events.Publisher {
	if cfg.NATSURL == "" {
		return events.NewNoOpPublisher()
	}
	nc, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		log.Warn("nats unavailable, usage events disabled", "err", err)
		return events.NewNoOpPublisher()
	}
	log.Info("publishing usage events to NATS", "url", cfg.NATSURL)
	return events.NewNATS(log, nc)
}
