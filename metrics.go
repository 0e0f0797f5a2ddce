package lambdaops

import (
	"context"
	"time"

	"github.com/go-errors/errors"
	"github.com/imunhatep/lambdaops/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const (
	MetricsSubsystem = "lambdaops"
)

type Metrics struct {
	Invocations *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
	Redriven    prometheus.Counter

	pusher *push.Pusher
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	var Invocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: MetricsSubsystem,
			Name:      "invocations_total",
			Help:      "Number of dispatched events by outcome",
		},
		[]string{"event", "status"},
	)

	var Duration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Subsystem: MetricsSubsystem,
			Name:      "invocation_duration_seconds",
			Help:      "Time spent in the provider call for an event",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"event"},
	)

	var Redriven = prometheus.NewCounter(
		prometheus.CounterOpts{
			Subsystem: MetricsSubsystem,
			Name:      "redriven_messages_total",
			Help:      "Number of messages moved from a dead-letter queue to its source queue",
		},
	)

	reg.MustRegister(Invocations, Duration, Redriven)

	return &Metrics{
		Invocations: Invocations,
		Duration:    Duration,
		Redriven:    Redriven,
	}
}

// WithPusher pushes the gathered metrics to a Pushgateway after every invocation,
// since nothing scrapes a function instance.
func (m *Metrics) WithPusher(url, job string, gatherer prometheus.Gatherer) *Metrics {
	m.pusher = push.New(url, job).Gatherer(gatherer)

	return m
}

// Observe labels unrecognized and undecodable events as "unknown" to keep
// cardinality bounded.
func (m *Metrics) Observe(event string, status events.Status, elapsed time.Duration) {
	if status == events.StatusInvalid || event == "" {
		event = "unknown"
	}

	m.Invocations.WithLabelValues(event, string(status)).Inc()
	if status != events.StatusInvalid {
		m.Duration.WithLabelValues(event).Observe(elapsed.Seconds())
	}
}

func (m *Metrics) Push(ctx context.Context) error {
	if m.pusher == nil {
		return nil
	}

	if err := m.pusher.PushContext(ctx); err != nil {
		return errors.WrapPrefix(err, "push metrics", 0)
	}

	return nil
}
