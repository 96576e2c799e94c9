package events

import "context"

// NoOpPublisher drops all events; used when no broker is configured.
type NoOpPublisher struct{}

func NewNoOpPublisher() *NoOpPublisher {
	return &NoOpPublisher{}
}

func (p *NoOpPublisher) Publish(ctx context.Context, subject string, event any) error {
	return nil
}

func (p *NoOpPublisher) Close() {}
