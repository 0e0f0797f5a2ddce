package providers

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// MetricQuery selects one statistics window for GetCloudWatchMetricStatistics.
type MetricQuery struct {
	Namespace  string
	MetricName string
	Dimensions []types.Dimension
	StartTime  time.Time
	EndTime    time.Time
	Period     int32
	Statistics []types.Statistic
}

func (c *Clients) PutCloudWatchMetric(ctx context.Context, namespace string, data []types.MetricDatum) (*cloudwatch.PutMetricDataOutput, error) {
	return c.CloudWatch.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(namespace),
		MetricData: data,
	})
}

func (c *Clients) GetCloudWatchMetricStatistics(ctx context.Context, q MetricQuery) (*cloudwatch.GetMetricStatisticsOutput, error) {
	return c.CloudWatch.GetMetricStatistics(ctx, &cloudwatch.GetMetricStatisticsInput{
		Namespace:  aws.String(q.Namespace),
		MetricName: aws.String(q.MetricName),
		Dimensions: q.Dimensions,
		StartTime:  aws.Time(q.StartTime),
		EndTime:    aws.Time(q.EndTime),
		Period:     aws.Int32(q.Period),
		Statistics: q.Statistics,
	})
}
