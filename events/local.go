package events

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

const defaultQueueSize = 10

// LocalPublisher delivers invocations to in-process subscribers. Subscriptions
// use NATS subject wildcards. Publish never blocks: a full subscriber drops the
// invocation.
type LocalPublisher struct {
	mu          sync.RWMutex
	prefix      string
	queueSize   int
	closed      bool
	subscribers map[string][]chan Invocation
}

func NewLocalPublisher(prefix string) *LocalPublisher {
	return &LocalPublisher{
		prefix:      prefix,
		queueSize:   defaultQueueSize,
		subscribers: make(map[string][]chan Invocation),
	}
}

func (p *LocalPublisher) WithQueueSize(size int) *LocalPublisher {
	p.queueSize = size

	return p
}

func (p *LocalPublisher) Subscribe(subjects ...string) (<-chan Invocation, func()) {
	ch := make(chan Invocation, p.queueSize)

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	for _, subject := range subjects {
		p.subscribers[subject] = append(p.subscribers[subject], ch)
	}
	p.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()

			if p.closed {
				return
			}

			for _, subject := range subjects {
				chans := p.subscribers[subject]
				for i, sub := range chans {
					if sub == ch {
						p.subscribers[subject] = append(chans[:i], chans[i+1:]...)
						break
					}
				}

				if len(p.subscribers[subject]) == 0 {
					delete(p.subscribers, subject)
				}
			}
			close(ch)
		})
	}

	return ch, unsubscribe
}

func (p *LocalPublisher) Publish(ctx context.Context, inv Invocation) error {
	subject := inv.Subject(p.prefix)

	p.mu.RLock()
	defer p.mu.RUnlock()

	delivered := make(map[chan Invocation]struct{})
	for pattern, chans := range p.subscribers {
		if !matchSubject(pattern, subject) {
			continue
		}

		for _, ch := range chans {
			if _, ok := delivered[ch]; ok {
				continue
			}
			delivered[ch] = struct{}{}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case ch <- inv:
			default:
				log.Warn().Str("subject", subject).Msg("[LocalPublisher.Publish] invocation dismissed, subscriber chan is full")
			}
		}
	}

	log.Trace().Str("subject", subject).Int("subscribers", len(delivered)).Msg("[LocalPublisher.Publish] published")

	return nil
}

// Close closes every subscriber channel. Later subscriptions get a closed channel.
func (p *LocalPublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true

	closed := make(map[chan Invocation]struct{})
	for subject, chans := range p.subscribers {
		for _, ch := range chans {
			if _, ok := closed[ch]; !ok {
				close(ch)
				closed[ch] = struct{}{}
			}
		}
		delete(p.subscribers, subject)
	}
}

// matchSubject checks if a subject matches the subscription pattern.
func matchSubject(pattern, subject string) bool {
	patternTokens := strings.Split(pattern, ".")
	subjectTokens := strings.Split(subject, ".")

	for i, token := range patternTokens {
		if token == ">" {
			// multi-level wildcard needs at least one remaining token
			return i < len(subjectTokens)
		}

		if i >= len(subjectTokens) {
			return false
		}

		if token != "*" && token != subjectTokens[i] {
			return false
		}
	}

	return len(patternTokens) == len(subjectTokens)
}
