package events

import "context"

type Publisher interface {
	Publish(ctx context.Context, inv Invocation) error
	Close()
}

// NopPublisher discards invocations.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Invocation) error { return nil }

func (NopPublisher) Close() {}
