package events

import "context"

// Event is a job or booking lifecycle notification fanned out to
// interested consumers (push notifications, realtime UI).
type Event struct {
	Type   string            `json:"type"`
	UserID string            `json:"user_id"`
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Data   map[string]string `json:"data,omitempty"`
}

// Publisher delivers lifecycle events. Publishing is best-effort:
// callers log failures and never fail the request over them.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, event Event) error
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, routingKey string, event Event) error {
	return nil
}
