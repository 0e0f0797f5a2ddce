package events

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
}

func TestLocalPublisher_SubscribePublish(t *testing.T) {
	publisher := NewLocalPublisher("lambdaops")
	defer publisher.Close()

	ch, unsubscribe := publisher.Subscribe("lambdaops.send_sqs_message.ok")
	defer unsubscribe()

	inv := Invocation{Event: "send_sqs_message", Status: StatusOK, RequestID: "req-1"}
	require.NoError(t, publisher.Publish(context.Background(), inv))

	select {
	case got := <-ch:
		assert.Equal(t, inv, got, "invocation should be delivered unchanged")
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for invocation")
	}
}

func TestLocalPublisher_Wildcards(t *testing.T) {
	publisher := NewLocalPublisher("lambdaops")
	defer publisher.Close()

	failed, unsubFailed := publisher.Subscribe("lambdaops.*.failed")
	defer unsubFailed()
	all, unsubAll := publisher.Subscribe("lambdaops.>")
	defer unsubAll()

	ctx := context.Background()
	require.NoError(t, publisher.Publish(ctx, Invocation{Event: "list_sns_topics", Status: StatusOK}))
	require.NoError(t, publisher.Publish(ctx, Invocation{Event: "run_ecs_task", Status: StatusFailed}))

	assert.Len(t, all, 2)
	require.Len(t, failed, 1)
	assert.Equal(t, "run_ecs_task", (<-failed).Event)
}

func TestLocalPublisher_MultipleSubjectsDeliverOnce(t *testing.T) {
	publisher := NewLocalPublisher("lambdaops")
	defer publisher.Close()

	ch, unsubscribe := publisher.Subscribe("lambdaops.>", "lambdaops.*.ok")
	defer unsubscribe()

	require.NoError(t, publisher.Publish(context.Background(), Invocation{Event: "list_s3_objects", Status: StatusOK}))

	assert.Len(t, ch, 1)
}

func TestLocalPublisher_FullSubscriberDrops(t *testing.T) {
	publisher := NewLocalPublisher("lambdaops").WithQueueSize(1)
	defer publisher.Close()

	ch, unsubscribe := publisher.Subscribe("lambdaops.>")
	defer unsubscribe()

	ctx := context.Background()
	require.NoError(t, publisher.Publish(ctx, Invocation{Event: "a", Status: StatusOK}))
	require.NoError(t, publisher.Publish(ctx, Invocation{Event: "b", Status: StatusOK}))

	assert.Len(t, ch, 1)
	assert.Equal(t, "a", (<-ch).Event)
}

func TestLocalPublisher_Unsubscribe(t *testing.T) {
	publisher := NewLocalPublisher("lambdaops")
	defer publisher.Close()

	ch, unsubscribe := publisher.Subscribe("lambdaops.>")
	unsubscribe()
	unsubscribe()

	require.NoError(t, publisher.Publish(context.Background(), Invocation{Event: "a", Status: StatusOK}))

	_, ok := <-ch
	assert.False(t, ok, "Channel should be closed after unsubscribe")
}

func TestLocalPublisher_Close(t *testing.T) {
	publisher := NewLocalPublisher("lambdaops")

	ch, unsubscribe := publisher.Subscribe("lambdaops.>")
	publisher.Close()
	unsubscribe()

	_, ok := <-ch
	assert.False(t, ok, "Channel should be closed after publisher is closed")

	late, _ := publisher.Subscribe("lambdaops.>")
	_, ok = <-late
	assert.False(t, ok, "Subscriptions after close should be closed")
}

func TestMatchSubject(t *testing.T) {
	tests := []struct {
		pattern string
		subject string
		want    bool
	}{
		{"a.b.c", "a.b.c", true},
		{"a.*.c", "a.b.c", true},
		{"a.*", "a.b.c", false},
		{"a.>", "a.b.c", true},
		{"a.>", "a", false},
		{"a.b.c", "a.b", false},
		{"a.b", "a.b.c", false},
		{"a.*.ok", "a.b.failed", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, matchSubject(tt.pattern, tt.subject), "%s ~ %s", tt.pattern, tt.subject)
	}
}

func TestInvocation_Subject(t *testing.T) {
	assert.Equal(t, "ops.query_dynamodb.ok", Invocation{Event: "query_dynamodb", Status: StatusOK}.Subject("ops"))
	assert.Equal(t, "ops.unknown.invalid", Invocation{Status: StatusInvalid}.Subject("ops"))
	assert.Equal(t, "ops.unknown.invalid", Invocation{Event: "a.>", Status: StatusInvalid}.Subject("ops"))
}
