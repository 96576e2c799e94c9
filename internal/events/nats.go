package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go"
)

// NewNATS constructs a thin NATS-based publisher.
func NewNATS(log *slog.Logger, nc *nats.Conn) Publisher {
	return &natsPublisher{log: log, nc: nc}
}

type natsPublisher struct {
	log *slog.Logger
	nc  *nats.Conn
}

func (p *natsPublisher) Publish(_ context.Context, subject string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.nc.Publish(subject, body)
}

func (p *natsPublisher) Close() {
	if err := p.nc.Drain(); err != nil {
		p.log.Warn("failed to drain nats connection", "err", err)
	}
}
