package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/imunhatep/lambdaops"
	"github.com/imunhatep/lambdaops/events"
	"github.com/imunhatep/lambdaops/providers"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

func main() {
	ctx := context.Background()

	settings, err := lambdaops.LoadSettings(os.Getenv(lambdaops.EnvPrefix + "_CONFIG"))
	if err != nil {
		log.Fatal().Err(err).Msg("[main] failed to load settings")
	}

	lambdaops.SetupLogger(settings.Log, os.Stdout)

	awsCfg, err := lambdaops.LoadAWSConfig(ctx, settings.AWS)
	if err != nil {
		log.Fatal().Err(err).Msg("[main] failed to load aws config")
	}

	publisher, err := newPublisher(settings.Events)
	if err != nil {
		log.Fatal().Err(err).Msg("[main] failed to create invocation publisher")
	}

	reg := prometheus.NewRegistry()
	metrics := lambdaops.NewMetrics(reg)
	if settings.Metrics.PushURL != "" {
		metrics = metrics.WithPusher(settings.Metrics.PushURL, settings.Metrics.Job, reg)
	}

	handler := lambdaops.NewHandler(providers.New(awsCfg), settings.Defaults).
		WithPublisher(publisher).
		WithMetrics(metrics)

	log.Info().Strs("events", handler.Events()).Msg("[main] handler ready")

	// Start never returns; the publisher is drained on SIGTERM
	lambda.StartWithOptions(handler.Handle, lambda.WithEnableSIGTERM(publisher.Close))
}

func newPublisher(cfg lambdaops.EventsConfig) (events.Publisher, error) {
	if cfg.NatsURL == "" {
		return events.NopPublisher{}, nil
	}

	nc, err := nats.Connect(cfg.NatsURL, nats.Name("lambdaops"))
	if err != nil {
		return nil, err
	}

	publisher, err := events.NewNatsPublisher(nc, &events.JSONEncoder{}, cfg.SubjectPrefix)
	if err != nil {
		return nil, err
	}

	if cfg.JetStream {
		return publisher.WithJetStream()
	}

	return publisher, nil
}
