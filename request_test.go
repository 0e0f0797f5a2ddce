package lambdaops

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRequest(t *testing.T) {
	t.Run("object", func(t *testing.T) {
		req, err := DecodeRequest(`{"event": "redrive_sqs_dlq", "source_queue_url": "src", "dlq_url": "dlq", "max_messages": 3}`)
		require.NoError(t, err)

		assert.Equal(t, Request{Event: "redrive_sqs_dlq", SourceQueueURL: "src", DLQURL: "dlq", MaxMessages: 3}, req)
	})

	t.Run("bare event name", func(t *testing.T) {
		req, err := DecodeRequest(` "list_lambda_functions" `)
		require.NoError(t, err)

		assert.Equal(t, Request{Event: "list_lambda_functions"}, req)
	})

	t.Run("empty body", func(t *testing.T) {
		req, err := DecodeRequest("")
		require.NoError(t, err)

		assert.Equal(t, Request{}, req)
	})

	t.Run("times", func(t *testing.T) {
		req, err := DecodeRequest(`{"event": "get_cloudwatch_metric_statistics", "start_time": "2025-01-01T00:00:00Z", "end_time": "2025-01-01T06:00:00Z", "statistics": ["Sum", "Maximum"]}`)
		require.NoError(t, err)

		require.NotNil(t, req.StartTime)
		require.NotNil(t, req.EndTime)
		assert.Equal(t, 6*time.Hour, req.EndTime.Sub(*req.StartTime))
		assert.Equal(t, []cwtypes.Statistic{cwtypes.StatisticSum, cwtypes.StatisticMaximum}, toStatistics(req.Statistics))
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := DecodeRequest(`not json`)
		assert.Error(t, err)
	})
}

func TestToAttributeValues(t *testing.T) {
	req, err := DecodeRequest(`{"item": {
		"id":     {"S": "123"},
		"count":  {"N": "42"},
		"active": {"BOOL": true},
		"gone":   {"NULL": true},
		"tags":   {"SS": ["a", "b"]},
		"scores": {"NS": ["1", "2"]},
		"list":   {"L": [{"S": "x"}, {"N": "1"}]},
		"nested": {"M": {"name": {"S": "inner"}}}
	}}`)
	require.NoError(t, err)

	item, err := toAttributeValues(req.Item)
	require.NoError(t, err)

	assert.Equal(t, map[string]ddbtypes.AttributeValue{
		"id":     &ddbtypes.AttributeValueMemberS{Value: "123"},
		"count":  &ddbtypes.AttributeValueMemberN{Value: "42"},
		"active": &ddbtypes.AttributeValueMemberBOOL{Value: true},
		"gone":   &ddbtypes.AttributeValueMemberNULL{Value: true},
		"tags":   &ddbtypes.AttributeValueMemberSS{Value: []string{"a", "b"}},
		"scores": &ddbtypes.AttributeValueMemberNS{Value: []string{"1", "2"}},
		"list": &ddbtypes.AttributeValueMemberL{Value: []ddbtypes.AttributeValue{
			&ddbtypes.AttributeValueMemberS{Value: "x"},
			&ddbtypes.AttributeValueMemberN{Value: "1"},
		}},
		"nested": &ddbtypes.AttributeValueMemberM{Value: map[string]ddbtypes.AttributeValue{
			"name": &ddbtypes.AttributeValueMemberS{Value: "inner"},
		}},
	}, item)
}

func TestToAttributeValues_Nil(t *testing.T) {
	item, err := toAttributeValues(nil)

	assert.NoError(t, err)
	assert.Nil(t, item)
}

func TestToMetricData(t *testing.T) {
	ts := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	data := toMetricData([]MetricDatum{{
		MetricName: "Latency",
		Value:      12.5,
		Unit:       "Milliseconds",
		Dimensions: []Dimension{{Name: "Service", Value: "api"}},
		Timestamp:  &ts,
	}})

	assert.Equal(t, []cwtypes.MetricDatum{{
		MetricName: aws.String("Latency"),
		Value:      aws.Float64(12.5),
		Unit:       cwtypes.StandardUnitMilliseconds,
		Dimensions: []cwtypes.Dimension{{Name: aws.String("Service"), Value: aws.String("api")}},
		Timestamp:  &ts,
	}}, data)
}
