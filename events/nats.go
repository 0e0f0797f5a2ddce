package events

import (
	"context"

	"github.com/go-errors/errors"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"
)

// NatsPublisher sends encoded invocations over core NATS, or through JetStream
// once WithJetStream was called.
type NatsPublisher struct {
	natsConn   *nats.Conn
	natsStream jetstream.JetStream
	encoder    Encoder
	prefix     string
}

func NewNatsPublisher(nc *nats.Conn, encoder Encoder, prefix string) (*NatsPublisher, error) {
	if nc == nil || encoder == nil {
		return nil, errors.New("invalid arguments: nats connection and encoder are required")
	}

	return &NatsPublisher{
		natsConn: nc,
		encoder:  encoder,
		prefix:   prefix,
	}, nil
}

// WithJetStream publishes with acknowledgement from a stream bound to the subjects.
func (p *NatsPublisher) WithJetStream() (*NatsPublisher, error) {
	js, err := jetstream.New(p.natsConn)
	if err != nil {
		return nil, errors.New(err)
	}
	p.natsStream = js

	return p, nil
}

func (p *NatsPublisher) Publish(ctx context.Context, inv Invocation) error {
	if p.natsConn.Status() != nats.CONNECTED {
		log.Error().Msg("[NatsPublisher] NATS client is not connected")
		return errors.New("NATS client is not connected")
	}

	subject := inv.Subject(p.prefix)

	data, err := p.encoder.Encode(inv)
	if err != nil {
		log.Error().Err(err).Msg("[NatsPublisher] failed to encode invocation")
		return err
	}

	if p.natsStream != nil {
		if _, err := p.natsStream.Publish(ctx, subject, data); err != nil {
			log.Error().Err(err).Str("subject", subject).Msg("[NatsPublisher] failed to publish to stream")
			return errors.New(err)
		}
	} else {
		if err := p.natsConn.Publish(subject, data); err != nil {
			log.Error().Err(err).Str("subject", subject).Msg("[NatsPublisher] failed to publish")
			return errors.New(err)
		}

		// the execution environment may freeze once the handler returns
		if err := p.natsConn.Flush(); err != nil {
			log.Error().Err(err).Msg("[NatsPublisher] failed to flush")
			return errors.New(err)
		}
	}

	log.Trace().Str("subject", subject).Int("size", len(data)).Msg("[NatsPublisher] published")

	return nil
}

func (p *NatsPublisher) Close() {
	if err := p.natsConn.Drain(); err != nil {
		log.Error().Err(err).Msg("[NatsPublisher] failed to drain NATS connection")
	}
}
