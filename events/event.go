package events

import (
	"strings"
	"time"
)

type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusInvalid Status = "invalid"
)

const unknownEvent = "unknown"

// Invocation records the outcome of one dispatched request.
type Invocation struct {
	Event     string        `json:"event"`                // Operation name as received
	Status    Status        `json:"status"`               // ok, failed or invalid
	RequestID string        `json:"request_id,omitempty"` // Lambda request id when available
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration"`
	Timestamp time.Time     `json:"timestamp"`
}

// Subject is "<prefix>.<event>.<status>". Empty or dotted event names collapse
// to a single token so they cannot widen wildcard matches.
func (i Invocation) Subject(prefix string) string {
	event := i.Event
	if event == "" || strings.ContainsAny(event, ".*> ") {
		event = unknownEvent
	}

	return prefix + "." + event + "." + string(i.Status)
}
