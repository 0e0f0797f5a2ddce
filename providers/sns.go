package providers

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

func (c *Clients) PublishSNSMessage(ctx context.Context, topicArn, message string) (*sns.PublishOutput, error) {
	return c.SNS.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(topicArn),
		Message:  aws.String(message),
	})
}

func (c *Clients) ListSNSTopics(ctx context.Context) (*sns.ListTopicsOutput, error) {
	return c.SNS.ListTopics(ctx, &sns.ListTopicsInput{})
}
